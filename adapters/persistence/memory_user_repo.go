package persistence

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/khoahotran/rentredi/internal/domain/user"
)

type memoryUserRepo struct {
	mu    sync.RWMutex
	users map[string]user.User
}

// NewMemoryUserRepo keeps users in process memory. Contents are lost on restart.
func NewMemoryUserRepo() user.Repository {
	return &memoryUserRepo{users: make(map[string]user.User)}
}

func (r *memoryUserRepo) Create(_ context.Context, d user.Draft) (user.User, error) {
	u := d.WithID(uuid.NewString())

	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = u
	return u, nil
}

func (r *memoryUserRepo) List(_ context.Context) ([]user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]user.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u)
	}
	return users, nil
}

func (r *memoryUserRepo) FindByID(_ context.Context, id string) (user.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	return u, ok, nil
}

func (r *memoryUserRepo) Update(_ context.Context, id string, p user.Patch) (user.User, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.users[id]
	if !ok {
		return user.User{}, false, nil
	}
	merged := current.Apply(p)
	r.users[id] = merged
	return merged, true, nil
}

func (r *memoryUserRepo) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return false, nil
	}
	delete(r.users, id)
	return true, nil
}
