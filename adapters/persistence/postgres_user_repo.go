package persistence

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/rentredi/internal/domain/user"
	"github.com/khoahotran/rentredi/pkg/apperror"
)

type postgresUserRepo struct {
	db *pgxpool.Pool
}

func NewPostgresUserRepo(db *pgxpool.Pool) user.Repository {
	return &postgresUserRepo{db: db}
}

var psqlUser = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var userColumns = []string{"id", "name", "zip_code", "latitude", "longitude", "timezone"}

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(&u.ID, &u.Name, &u.ZipCode, &u.Latitude, &u.Longitude, &u.Timezone)
	return u, err
}

func (r *postgresUserRepo) Create(ctx context.Context, d user.Draft) (user.User, error) {
	u := d.WithID(uuid.NewString())

	sql, args, err := psqlUser.Insert(UsersCollection).
		Columns(userColumns...).
		Values(u.ID, u.Name, u.ZipCode, u.Latitude, u.Longitude, u.Timezone).
		ToSql()
	if err != nil {
		return user.User{}, apperror.NewInternal("failed to build insert user query", err)
	}
	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return user.User{}, apperror.NewInternal("failed to save user", err)
	}
	return u, nil
}

func (r *postgresUserRepo) List(ctx context.Context) ([]user.User, error) {
	sql, args, err := psqlUser.Select(userColumns...).From(UsersCollection).ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build list users query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to list users", err)
	}
	defer rows.Close()

	users := make([]user.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, apperror.NewInternal("failed to scan user row", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating user rows", err)
	}
	return users, nil
}

func (r *postgresUserRepo) FindByID(ctx context.Context, id string) (user.User, bool, error) {
	sql, args, err := psqlUser.Select(userColumns...).
		From(UsersCollection).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return user.User{}, false, apperror.NewInternal("failed to build get user query", err)
	}

	u, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, false, nil
		}
		return user.User{}, false, apperror.NewInternal("failed to get user", err)
	}
	return u, true, nil
}

func (r *postgresUserRepo) Update(ctx context.Context, id string, p user.Patch) (user.User, bool, error) {
	current, found, err := r.FindByID(ctx, id)
	if err != nil || !found {
		return user.User{}, found, err
	}

	merged := current.Apply(p)
	sql, args, err := psqlUser.Update(UsersCollection).
		Set("name", merged.Name).
		Set("zip_code", merged.ZipCode).
		Set("latitude", merged.Latitude).
		Set("longitude", merged.Longitude).
		Set("timezone", merged.Timezone).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return user.User{}, false, apperror.NewInternal("failed to build update user query", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return user.User{}, false, apperror.NewInternal("failed to update user", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return user.User{}, false, nil
	}
	return merged, true, nil
}

func (r *postgresUserRepo) Delete(ctx context.Context, id string) (bool, error) {
	sql, args, err := psqlUser.Delete(UsersCollection).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return false, apperror.NewInternal("failed to build delete user query", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return false, apperror.NewInternal("failed to delete user", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}
