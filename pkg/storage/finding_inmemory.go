package storage

import (
	"sync"

	"github.com/cloudgov/console/pkg/cloud"
)

// InMemoryFindingStorage holds findings in memory. It backs demo mode
// and tests.
type InMemoryFindingStorage struct {
	sync.RWMutex
	findings []cloud.SecurityFinding
}

func NewInMemoryFindingStorage() *InMemoryFindingStorage {
	return &InMemoryFindingStorage{findings: []cloud.SecurityFinding{}}
}

// Seed replaces the stored findings, used once at startup.
func (s *InMemoryFindingStorage) Seed(findings []cloud.SecurityFinding) {
	s.Lock()
	defer s.Unlock()
	s.findings = append([]cloud.SecurityFinding{}, findings...)
}

func (s *InMemoryFindingStorage) List() ([]cloud.SecurityFinding, error) {
	s.RLock()
	defer s.RUnlock()
	return append([]cloud.SecurityFinding{}, s.findings...), nil
}

func (s *InMemoryFindingStorage) ListForStatus(status cloud.FindingStatus) ([]cloud.SecurityFinding, error) {
	s.RLock()
	defer s.RUnlock()

	findings := []cloud.SecurityFinding{}
	for _, f := range s.findings {
		if f.Status == status {
			findings = append(findings, f)
		}
	}
	return findings, nil
}

func (s *InMemoryFindingStorage) Get(id string) (*cloud.SecurityFinding, error) {
	s.RLock()
	defer s.RUnlock()

	for _, f := range s.findings {
		if f.ID == id {
			found := f
			return &found, nil
		}
	}
	return nil, nil
}

func (s *InMemoryFindingStorage) CreateOrUpdate(finding cloud.SecurityFinding) error {
	s.Lock()
	defer s.Unlock()

	for i, f := range s.findings {
		if f.ID == finding.ID {
			s.findings[i] = finding
			return nil
		}
	}
	s.findings = append(s.findings, finding)
	return nil
}

func (s *InMemoryFindingStorage) SetStatus(id string, status cloud.FindingStatus) error {
	s.Lock()
	defer s.Unlock()

	for i, f := range s.findings {
		if f.ID == id {
			s.findings[i].Status = status
			return nil
		}
	}
	return ErrFindingNotFound
}
