package storage

import (
	"os"
	"path"

	"github.com/asdine/storm/v3"
	"github.com/cloudgov/console/pkg/cloud"
)

// OpenBoltDB opens (or creates) the console database under the user's
// home directory and registers the finding bucket.
func OpenBoltDB() (*storm.DB, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	folder := path.Join(home, ".cloudgov")
	if _, err := os.Stat(folder); os.IsNotExist(err) {
		err := os.Mkdir(folder, os.FileMode(0700))
		if err != nil {
			return nil, err
		}
	}
	file := path.Join(folder, "console.db")

	db, err := storm.Open(file)
	if err != nil {
		return nil, err
	}

	err = db.Init(&cloud.SecurityFinding{})
	if err != nil {
		return nil, err
	}

	return db, nil
}
