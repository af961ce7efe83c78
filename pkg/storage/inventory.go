package storage

import "github.com/cloudgov/console/pkg/cloud"

// ResourceStorage holds the canonical resource inventory.
type ResourceStorage interface {
	List() ([]cloud.AWSResource, error)
	Get(id string) (*cloud.AWSResource, error)
}

// RoleStorage holds IAM roles. Roles carry their risk score as computed
// when they were added.
type RoleStorage interface {
	List() ([]cloud.IAMRole, error)
	Get(name string) (*cloud.IAMRole, error)
	Add(role cloud.IAMRole) error
}

type UserStorage interface {
	List() ([]cloud.IAMUser, error)
	Add(user cloud.IAMUser) error
}

type PolicyStorage interface {
	List() ([]cloud.IAMPolicy, error)
	Get(id string) (*cloud.IAMPolicy, error)
}
