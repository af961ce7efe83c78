package storage

import (
	"github.com/cloudgov/console/pkg/cloud"
	"github.com/pkg/errors"

	"github.com/asdine/storm/v3"
)

// BoltFindingStorage persists findings to a local BoltDB file, used for
// single-node deployments without an external database.
type BoltFindingStorage struct {
	db *storm.DB
}

func NewBoltFindingStorage(db *storm.DB) *BoltFindingStorage {
	return &BoltFindingStorage{db: db}
}

func (s *BoltFindingStorage) List() ([]cloud.SecurityFinding, error) {
	findings := []cloud.SecurityFinding{}

	err := s.db.All(&findings)
	if err != nil {
		return nil, errors.Wrap(err, "boltdb list findings")
	}

	return findings, nil
}

func (s *BoltFindingStorage) ListForStatus(status cloud.FindingStatus) ([]cloud.SecurityFinding, error) {
	findings := []cloud.SecurityFinding{}

	err := s.db.Find("Status", status, &findings)
	if err != nil {
		// storm returns an error for an empty result set
		return []cloud.SecurityFinding{}, nil
	}

	return findings, nil
}

func (s *BoltFindingStorage) Get(id string) (*cloud.SecurityFinding, error) {
	var f cloud.SecurityFinding

	err := s.db.One("ID", id, &f)
	if err == storm.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "boltdb get finding")
	}
	return &f, nil
}

func (s *BoltFindingStorage) CreateOrUpdate(finding cloud.SecurityFinding) error {
	return s.db.Save(&finding)
}

func (s *BoltFindingStorage) SetStatus(id string, status cloud.FindingStatus) error {
	f, err := s.Get(id)
	if err != nil {
		return err
	}
	if f == nil {
		return ErrFindingNotFound
	}
	f.Status = status
	return s.db.Save(f)
}
