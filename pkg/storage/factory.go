package storage

import (
	"context"
	"flag"

	"github.com/cloudgov/console/pkg/cloud"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Factory builds the storage backends selected by CLI flags.
type Factory struct {
	Backend           string
	DynamoDBTableName string
	PostgresDSN       string

	ResourceBackend           string
	ResourceDynamoDBTableName string
}

type FactorySetupOpts struct {
	Log *zap.SugaredLogger
}

func NewFactory() *Factory {
	return &Factory{}
}

// AddFlags configures CLI flags
func (f *Factory) AddFlags(fs *flag.FlagSet) {
	fs.StringVar(&f.Backend, "finding-storage-backend", "inmemory", "finding storage backend (must be 'inmemory', 'bolt', 'postgres' or 'dynamodb')")
	fs.StringVar(&f.DynamoDBTableName, "finding-storage-dynamodb-table-name", "cloudgov-findings", "the finding storage table name (only for DynamoDB finding storage backend)")
	fs.StringVar(&f.PostgresDSN, "finding-storage-postgres-dsn", "", "the Postgres connection string (only for Postgres finding storage backend)")
	fs.StringVar(&f.ResourceBackend, "resource-storage-backend", "inmemory", "resource storage backend (must be 'inmemory' or 'dynamodb')")
	fs.StringVar(&f.ResourceDynamoDBTableName, "resource-storage-dynamodb-table-name", "cloudgov-resources", "the resource storage table name (only for DynamoDB resource storage backend)")
}

func (f *Factory) GetFindingStorage(ctx context.Context, opts *FactorySetupOpts) (FindingStorage, error) {
	switch f.Backend {
	case "inmemory":
		return NewInMemoryFindingStorage(), nil

	case "bolt":
		db, err := OpenBoltDB()
		if err != nil {
			return nil, errors.Wrap(err, "opening bolt database")
		}
		return NewBoltFindingStorage(db), nil

	case "postgres":
		db, err := sqlx.ConnectContext(ctx, "postgres", f.PostgresDSN)
		if err != nil {
			return nil, errors.Wrap(err, "connecting to postgres")
		}
		return NewPostgresFindingStorage(db)

	case "dynamodb":
		opts.Log.With("table", f.DynamoDBTableName).Info("using DynamoDB finding storage")
		return NewDynamoDBFindingStorage(ctx, f.DynamoDBTableName)
	}

	return nil, errors.New("finding storage backend must be inmemory, bolt, postgres or dynamodb")
}

// GetResourceStorage builds the resource inventory backend. The seed is
// only loaded into the in-memory backend; DynamoDB tables are maintained
// outside the console.
func (f *Factory) GetResourceStorage(ctx context.Context, seed []cloud.AWSResource, opts *FactorySetupOpts) (ResourceStorage, error) {
	switch f.ResourceBackend {
	case "inmemory":
		return NewInMemoryResourceStorage(seed), nil

	case "dynamodb":
		opts.Log.With("table", f.ResourceDynamoDBTableName).Info("using DynamoDB resource storage")
		return NewDynamoDBResourceStorage(ctx, f.ResourceDynamoDBTableName)
	}

	return nil, errors.New("resource storage backend must be inmemory or dynamodb")
}
