package storage

import "github.com/cloudgov/console/pkg/cloud"

type notFoundError string

func (e notFoundError) Error() string { return string(e) }

// ErrFindingNotFound is returned by SetStatus when no finding matches the
// given ID. Get returns a nil finding instead so handlers can map the
// miss to a 404.
const ErrFindingNotFound = notFoundError("finding not found")

// FindingStorage stores and loads security findings. Findings are never
// deleted; a status transition is the only mutation after creation.
type FindingStorage interface {
	List() ([]cloud.SecurityFinding, error)
	ListForStatus(status cloud.FindingStatus) ([]cloud.SecurityFinding, error)
	Get(id string) (*cloud.SecurityFinding, error)
	CreateOrUpdate(f cloud.SecurityFinding) error
	SetStatus(id string, status cloud.FindingStatus) error
}
