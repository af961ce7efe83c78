package storage

import (
	"sync"

	"github.com/cloudgov/console/pkg/cloud"
	"github.com/pkg/errors"
)

// InMemoryResourceStorage serves the resource inventory from memory.
type InMemoryResourceStorage struct {
	sync.RWMutex
	resources []cloud.AWSResource
}

func NewInMemoryResourceStorage(resources []cloud.AWSResource) *InMemoryResourceStorage {
	return &InMemoryResourceStorage{resources: resources}
}

func (s *InMemoryResourceStorage) List() ([]cloud.AWSResource, error) {
	s.RLock()
	defer s.RUnlock()
	return append([]cloud.AWSResource{}, s.resources...), nil
}

func (s *InMemoryResourceStorage) Get(id string) (*cloud.AWSResource, error) {
	s.RLock()
	defer s.RUnlock()

	for _, r := range s.resources {
		if r.ID == id {
			found := r
			return &found, nil
		}
	}
	return nil, nil
}

type InMemoryRoleStorage struct {
	sync.RWMutex
	roles []cloud.IAMRole
}

func NewInMemoryRoleStorage(roles []cloud.IAMRole) *InMemoryRoleStorage {
	return &InMemoryRoleStorage{roles: roles}
}

func (s *InMemoryRoleStorage) List() ([]cloud.IAMRole, error) {
	s.RLock()
	defer s.RUnlock()
	return append([]cloud.IAMRole{}, s.roles...), nil
}

func (s *InMemoryRoleStorage) Get(name string) (*cloud.IAMRole, error) {
	s.RLock()
	defer s.RUnlock()

	for _, r := range s.roles {
		if r.Name == name {
			found := r
			return &found, nil
		}
	}
	return nil, nil
}

func (s *InMemoryRoleStorage) Add(role cloud.IAMRole) error {
	s.Lock()
	defer s.Unlock()

	for _, r := range s.roles {
		if r.Name == role.Name {
			return errors.Errorf("role %s already exists", role.Name)
		}
	}
	s.roles = append(s.roles, role)
	return nil
}

type InMemoryUserStorage struct {
	sync.RWMutex
	users []cloud.IAMUser
}

func NewInMemoryUserStorage(users []cloud.IAMUser) *InMemoryUserStorage {
	return &InMemoryUserStorage{users: users}
}

func (s *InMemoryUserStorage) List() ([]cloud.IAMUser, error) {
	s.RLock()
	defer s.RUnlock()
	return append([]cloud.IAMUser{}, s.users...), nil
}

func (s *InMemoryUserStorage) Add(user cloud.IAMUser) error {
	s.Lock()
	defer s.Unlock()

	for _, u := range s.users {
		if u.Username == user.Username {
			return errors.Errorf("user %s already exists", user.Username)
		}
	}
	s.users = append(s.users, user)
	return nil
}

// InMemoryPolicyStorage serves the managed policy catalogue; the
// catalogue is read-only after startup.
type InMemoryPolicyStorage struct {
	policies []cloud.IAMPolicy
}

func NewInMemoryPolicyStorage(policies []cloud.IAMPolicy) *InMemoryPolicyStorage {
	return &InMemoryPolicyStorage{policies: policies}
}

func (s *InMemoryPolicyStorage) List() ([]cloud.IAMPolicy, error) {
	return append([]cloud.IAMPolicy{}, s.policies...), nil
}

func (s *InMemoryPolicyStorage) Get(id string) (*cloud.IAMPolicy, error) {
	for _, p := range s.policies {
		if p.ID == id {
			found := p
			return &found, nil
		}
	}
	return nil, nil
}
