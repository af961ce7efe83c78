package storage

import (
	"github.com/cloudgov/console/pkg/cloud"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	// postgres driver
	_ "github.com/lib/pq"
)

const findingsSchema = `
CREATE TABLE IF NOT EXISTS findings (
	id            TEXT PRIMARY KEY,
	title         TEXT NOT NULL,
	description   TEXT NOT NULL,
	severity      TEXT NOT NULL,
	resource_id   TEXT NOT NULL,
	resource_type TEXT NOT NULL,
	detected_at   TIMESTAMPTZ NOT NULL,
	status        TEXT NOT NULL,
	remediation   TEXT NOT NULL
)`

// PostgresFindingStorage persists findings to Postgres.
type PostgresFindingStorage struct {
	db *sqlx.DB
}

// NewPostgresFindingStorage ensures the findings table exists and
// returns the store.
func NewPostgresFindingStorage(db *sqlx.DB) (*PostgresFindingStorage, error) {
	if _, err := db.Exec(findingsSchema); err != nil {
		return nil, errors.Wrap(err, "creating findings table")
	}
	return &PostgresFindingStorage{db: db}, nil
}

const findingColumns = `id, title, description, severity, resource_id, resource_type, detected_at, status, remediation`

func (s *PostgresFindingStorage) List() ([]cloud.SecurityFinding, error) {
	findings := []cloud.SecurityFinding{}

	err := s.db.Select(&findings, `SELECT `+findingColumns+` FROM findings ORDER BY detected_at`)
	if err != nil {
		return nil, errors.Wrap(err, "postgres list findings")
	}

	return findings, nil
}

func (s *PostgresFindingStorage) ListForStatus(status cloud.FindingStatus) ([]cloud.SecurityFinding, error) {
	findings := []cloud.SecurityFinding{}

	err := s.db.Select(&findings, `SELECT `+findingColumns+` FROM findings WHERE status=$1 ORDER BY detected_at`, status)
	if err != nil {
		return nil, errors.Wrap(err, "postgres list findings for status")
	}

	return findings, nil
}

func (s *PostgresFindingStorage) Get(id string) (*cloud.SecurityFinding, error) {
	findings := []cloud.SecurityFinding{}

	err := s.db.Select(&findings, `SELECT `+findingColumns+` FROM findings WHERE id=$1`, id)
	if err != nil {
		return nil, errors.Wrap(err, "postgres get finding")
	}
	if len(findings) == 0 {
		return nil, nil
	}

	return &findings[0], nil
}

func (s *PostgresFindingStorage) CreateOrUpdate(f cloud.SecurityFinding) error {
	_, err := s.db.Exec(`INSERT INTO findings (`+findingColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			severity = EXCLUDED.severity,
			resource_id = EXCLUDED.resource_id,
			resource_type = EXCLUDED.resource_type,
			detected_at = EXCLUDED.detected_at,
			status = EXCLUDED.status,
			remediation = EXCLUDED.remediation`,
		f.ID, f.Title, f.Description, f.Severity, f.ResourceID, f.ResourceType, f.DetectedAt, f.Status, f.Remediation,
	)
	return errors.Wrap(err, "postgres upsert finding")
}

func (s *PostgresFindingStorage) SetStatus(id string, status cloud.FindingStatus) error {
	res, err := s.db.Exec(`UPDATE findings SET status=$1 WHERE id=$2`, status, id)
	if err != nil {
		return errors.Wrap(err, "postgres set finding status")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrFindingNotFound
	}
	return nil
}
