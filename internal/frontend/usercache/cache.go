// Package usercache keeps a client-side copy of the user list. Mutations go to the
// API first and are applied locally only after the server confirmed them.
package usercache

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/khoahotran/rentredi/internal/domain/user"
	"github.com/khoahotran/rentredi/pkg/client"
	"github.com/khoahotran/rentredi/pkg/logger"
)

// Key is the single resource the cache mirrors.
const Key = "/users"

// API is the subset of the HTTP client the cache needs.
type API interface {
	ListUsers(ctx context.Context) ([]user.User, error)
	CreateUser(ctx context.Context, p client.UserPayload) (user.User, error)
	UpdateUser(ctx context.Context, id string, p client.UserPayload) (user.User, error)
	DeleteUser(ctx context.Context, id string) error
	Health(ctx context.Context) error
}

var _ API = (*client.Client)(nil)

type Cache struct {
	api    API
	logger logger.Logger

	mu       sync.RWMutex
	users    []user.User
	resolved bool
	err      error
}

func New(api API, log logger.Logger) *Cache {
	return &Cache{api: api, logger: log}
}

// Load performs the initial fetch. Later calls are no-ops once a fetch resolved.
func (c *Cache) Load(ctx context.Context) error {
	c.mu.RLock()
	resolved := c.resolved
	c.mu.RUnlock()
	if resolved {
		return nil
	}
	return c.Refresh(ctx)
}

// Refresh re-fetches the list and replaces the cached copy. On failure the previous
// data is kept and the error is exposed through Error.
func (c *Cache) Refresh(ctx context.Context) error {
	users, err := c.api.ListUsers(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.resolved = true
	if err != nil {
		c.err = err
		c.logger.Warn("Failed to load users", zap.String("key", Key), zap.Error(err))
		return err
	}
	c.users = users
	c.err = nil
	return nil
}

// Users returns a snapshot of the cached list.
func (c *Cache) Users() []user.User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]user.User(nil), c.users...)
}

// IsLoading reports whether the first fetch is still pending.
func (c *Cache) IsLoading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return !c.resolved
}

func (c *Cache) Error() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}

func (c *Cache) CreateUser(ctx context.Context, p client.UserPayload) (user.User, error) {
	created, err := c.api.CreateUser(ctx, p)
	if err != nil {
		return user.User{}, err
	}
	c.mutate(func(users []user.User) []user.User { return Append(users, created) })
	return created, nil
}

func (c *Cache) UpdateUser(ctx context.Context, id string, p client.UserPayload) (user.User, error) {
	updated, err := c.api.UpdateUser(ctx, id, p)
	if err != nil {
		return user.User{}, err
	}
	c.mutate(func(users []user.User) []user.User { return ReplaceByID(users, updated) })
	return updated, nil
}

func (c *Cache) DeleteUser(ctx context.Context, id string) error {
	if err := c.api.DeleteUser(ctx, id); err != nil {
		return err
	}
	c.mutate(func(users []user.User) []user.User { return RemoveByID(users, id) })
	return nil
}

func (c *Cache) mutate(fn func([]user.User) []user.User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.users = fn(c.users)
	c.err = nil
}

// OnFocus is called when the user returns to the page. Focus does not revalidate.
func (c *Cache) OnFocus(context.Context) {}

// OnReconnect re-fetches after connectivity to the API came back.
func (c *Cache) OnReconnect(ctx context.Context) {
	c.logger.Info("API reachable again, revalidating", zap.String("key", Key))
	_ = c.Refresh(ctx)
}

// Watch checks the API health endpoint every interval until ctx is done and calls
// OnReconnect on every unreachable → reachable transition. A cache whose last fetch
// failed counts as unreachable, so the first healthy check refetches.
func (c *Cache) Watch(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	reachable := c.Error() == nil
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			err := c.api.Health(ctx)
			switch {
			case err != nil && reachable:
				reachable = false
				c.logger.Warn("API unreachable", zap.Error(err))
			case err == nil && !reachable:
				c.OnReconnect(ctx)
				reachable = c.Error() == nil
			}
		}
	}
}
