// Package memory contains the process-local, mutex-guarded implementations
// of the domain repositories. Every table lives in a plain map owned by its
// store; uniqueness checks and inserts happen under a single write lock so
// concurrent requests cannot race past them. Listings preserve insertion
// order.
package memory

import (
	"context"
	"sync"
	"time"

	"demoapp/internal/domain/entity"
	"demoapp/internal/domain/repository"
)

// userRepository is the in-memory implementation of repository.UserRepository.
type userRepository struct {
	mu    sync.RWMutex
	users map[string]*entity.User
	order []string // ids in insertion order
}

// NewUserRepository is the constructor for the in-memory user store.
func NewUserRepository() repository.UserRepository {
	return &userRepository{
		users: make(map[string]*entity.User),
	}
}

// FindByID retrieves a single user by their unique ID.
func (r *userRepository) FindByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return cloneUser(user), nil
}

// FindByUsername retrieves a single user by their username.
func (r *userRepository) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		if r.users[id].Username == username {
			return cloneUser(r.users[id]), nil
		}
	}

	return nil, repository.ErrUserNotFound
}

// FindByEmail retrieves a single user by their email address.
func (r *userRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		if r.users[id].Email == email {
			return cloneUser(r.users[id]), nil
		}
	}

	return nil, repository.ErrUserNotFound
}

// Create persists a new user. The uniqueness scan and the insert run under
// one write lock so two simultaneous signups cannot both pass the check.
func (r *userRepository) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range r.order {
		existing := r.users[id]
		if existing.Username == user.Username {
			return repository.ErrDuplicateUsername
		}
		if existing.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}

	r.users[user.ID] = cloneUser(user)
	r.order = append(r.order, user.ID)

	return nil
}

// List returns users in insertion order after applying the active-status
// filter and the skip/limit window.
func (r *userRepository) List(_ context.Context, filter repository.ListUsersFilter) ([]*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	filtered := make([]*entity.User, 0, len(r.order))
	for _, id := range r.order {
		user := r.users[id]
		if filter.IsActive != nil && user.IsActive != *filter.IsActive {
			continue
		}
		filtered = append(filtered, user)
	}

	if filter.Skip >= len(filtered) {
		return []*entity.User{}, nil
	}

	end := len(filtered)
	if filter.Limit > 0 && filter.Skip+filter.Limit < end {
		end = filter.Skip + filter.Limit
	}

	window := make([]*entity.User, 0, end-filter.Skip)
	for _, user := range filtered[filter.Skip:end] {
		window = append(window, cloneUser(user))
	}

	return window, nil
}

// Update applies a partial update; nil fields are left untouched. An email
// change is re-checked for uniqueness under the same lock.
func (r *userRepository) Update(_ context.Context, id string, update entity.UserUpdate) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	if update.Email != nil && *update.Email != user.Email {
		for _, otherID := range r.order {
			if otherID != id && r.users[otherID].Email == *update.Email {
				return nil, repository.ErrDuplicateEmail
			}
		}
		user.Email = *update.Email
	}
	if update.FullName != nil {
		user.FullName = *update.FullName
	}
	if update.IsActive != nil {
		user.IsActive = *update.IsActive
	}
	user.UpdatedAt = time.Now().UTC()

	return cloneUser(user), nil
}

// Delete permanently removes the record.
func (r *userRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return repository.ErrUserNotFound
	}

	delete(r.users, id)
	for i, orderedID := range r.order {
		if orderedID == id {
			r.order = append(r.order[:i], r.order[i+1:]...)

			break
		}
	}

	return nil
}

// cloneUser copies a record so callers never share memory with the store.
func cloneUser(user *entity.User) *entity.User {
	clone := *user

	return &clone
}
