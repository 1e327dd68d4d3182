package persistence

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/khoahotran/rentredi/internal/config"
	"github.com/khoahotran/rentredi/internal/domain/user"
	"github.com/khoahotran/rentredi/pkg/logger"
)

// Backend names the store selected from the database URL.
type Backend string

const (
	BackendMemory   Backend = "memory"
	BackendRedis    Backend = "redis"
	BackendMongo    Backend = "mongodb"
	BackendPostgres Backend = "postgres"
)

// BackendFor maps a database URL to its backend by scheme. An empty URL selects memory.
func BackendFor(url string) (Backend, error) {
	if url == "" {
		return BackendMemory, nil
	}
	scheme, _, ok := strings.Cut(url, "://")
	if !ok {
		return "", fmt.Errorf("database url %q has no scheme", url)
	}
	switch strings.ToLower(scheme) {
	case "memory":
		return BackendMemory, nil
	case "redis", "rediss":
		return BackendRedis, nil
	case "mongodb", "mongodb+srv":
		return BackendMongo, nil
	case "postgres", "postgresql":
		return BackendPostgres, nil
	default:
		return "", fmt.Errorf("unsupported database scheme %q", scheme)
	}
}

// NewUserRepository connects to the configured store and returns the repository
// together with a function releasing its connection.
func NewUserRepository(ctx context.Context, cfg config.Config, log logger.Logger) (user.Repository, func(), error) {
	backend, err := BackendFor(cfg.DB.URL)
	if err != nil {
		return nil, nil, err
	}
	log.Info("Selected user store", zap.String("backend", string(backend)))

	switch backend {
	case BackendRedis:
		rdb, err := NewRedisClient(ctx, cfg.DB.URL, log)
		if err != nil {
			return nil, nil, err
		}
		return NewRedisUserRepo(rdb, log), func() { _ = rdb.Close() }, nil

	case BackendMongo:
		client, err := NewMongoClient(ctx, cfg.DB.URL, log)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() { _ = client.Disconnect(context.Background()) }
		return NewMongoUserRepo(client.Database(cfg.DB.Name)), closeFn, nil

	case BackendPostgres:
		if cfg.DB.MigrationsPath != "" {
			if err := MigratePostgres(cfg.DB.URL, cfg.DB.MigrationsPath, log); err != nil {
				return nil, nil, err
			}
		}
		pool, err := NewPostgresPool(ctx, cfg.DB.URL, log)
		if err != nil {
			return nil, nil, err
		}
		return NewPostgresUserRepo(pool), pool.Close, nil

	default:
		if cfg.DB.URL == "" {
			log.Warn("No database configured. Users are kept in memory and lost on restart.")
		}
		return NewMemoryUserRepo(), func() {}, nil
	}
}
