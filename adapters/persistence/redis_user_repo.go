package persistence

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/khoahotran/rentredi/internal/domain/user"
	"github.com/khoahotran/rentredi/pkg/apperror"
	"github.com/khoahotran/rentredi/pkg/logger"
)

// UsersCollection is the namespace every backend stores users under.
const UsersCollection = "users"

type redisUserRepo struct {
	rdb    *redis.Client
	key    string
	logger logger.Logger
}

// NewRedisUserRepo stores every user as one field of the "users" hash, keyed by id,
// with the JSON record as value.
func NewRedisUserRepo(rdb *redis.Client, log logger.Logger) user.Repository {
	return &redisUserRepo{rdb: rdb, key: UsersCollection, logger: log}
}

func (r *redisUserRepo) Create(ctx context.Context, d user.Draft) (user.User, error) {
	u := d.WithID(uuid.NewString())
	if err := r.write(ctx, u); err != nil {
		return user.User{}, err
	}
	return u, nil
}

func (r *redisUserRepo) List(ctx context.Context) ([]user.User, error) {
	entries, err := r.rdb.HGetAll(ctx, r.key).Result()
	if err != nil {
		return nil, apperror.NewInternal("failed to list users", err)
	}

	users := make([]user.User, 0, len(entries))
	for id, raw := range entries {
		var u user.User
		if err := json.Unmarshal([]byte(raw), &u); err != nil {
			r.logger.Warn("Undecodable user record", zap.String("user_id", id), zap.Error(err))
			return nil, apperror.NewInternal("failed to decode user", err)
		}
		users = append(users, u)
	}
	return users, nil
}

func (r *redisUserRepo) FindByID(ctx context.Context, id string) (user.User, bool, error) {
	raw, err := r.rdb.HGet(ctx, r.key, id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return user.User{}, false, nil
		}
		return user.User{}, false, apperror.NewInternal("failed to get user", err)
	}

	var u user.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return user.User{}, false, apperror.NewInternal("failed to decode user", err)
	}
	return u, true, nil
}

func (r *redisUserRepo) Update(ctx context.Context, id string, p user.Patch) (user.User, bool, error) {
	current, found, err := r.FindByID(ctx, id)
	if err != nil || !found {
		return user.User{}, found, err
	}

	merged := current.Apply(p)
	if err := r.write(ctx, merged); err != nil {
		return user.User{}, false, err
	}
	return merged, true, nil
}

func (r *redisUserRepo) Delete(ctx context.Context, id string) (bool, error) {
	removed, err := r.rdb.HDel(ctx, r.key, id).Result()
	if err != nil {
		return false, apperror.NewInternal("failed to delete user", err)
	}
	return removed > 0, nil
}

func (r *redisUserRepo) write(ctx context.Context, u user.User) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return apperror.NewInternal("failed to encode user", err)
	}
	if err := r.rdb.HSet(ctx, r.key, u.ID, raw).Err(); err != nil {
		return apperror.NewInternal("failed to save user", err)
	}
	return nil
}
