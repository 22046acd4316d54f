// Package auth_repo persists users and roles.
package auth_repo

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"github.com/nicole276/Api-Stockbar/internal/core/apperror"
	"github.com/nicole276/Api-Stockbar/internal/domain/auth"
	"github.com/nicole276/Api-Stockbar/internal/infrastructure/storage/postgres"
)

var _ auth.UserRepository = (*UserRepository)(nil)

// UserRepository implements auth.UserRepository against Postgres.
type UserRepository struct {
	txManager *postgres.TxManager
	builder   sq.StatementBuilderType
}

// NewUserRepository creates a user repository.
func NewUserRepository(txManager *postgres.TxManager) *UserRepository {
	return &UserRepository{
		txManager: txManager,
		builder:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

const userColumns = "u.id, u.full_name, u.email, u.password_hash, " +
	"u.role_id, r.name AS role_name, u.active, u.created_at"

func (r *UserRepository) selectQuery() sq.SelectBuilder {
	return r.builder.
		Select(userColumns).
		From("users u").
		LeftJoin("roles r ON r.id = u.role_id")
}

func (r *UserRepository) Create(ctx context.Context, u *auth.User) error {
	query := r.builder.
		Insert("users").
		Columns("full_name", "email", "password_hash", "role_id", "active").
		Values(u.FullName, u.Email, u.PasswordHash, u.RoleID, u.Active).
		Suffix("RETURNING id, created_at")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return apperror.NewInternal(err)
	}

	err = r.txManager.GetQuerier(ctx).QueryRow(ctx, sqlStr, args...).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return apperror.NewDatabase(err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*auth.User, error) {
	sqlStr, args, err := r.selectQuery().Where(sq.Eq{"u.id": id}).ToSql()
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	var u auth.User
	err = pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &u, sqlStr, args...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("user", id)
		}
		return nil, apperror.NewDatabase(err)
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	sqlStr, args, err := r.selectQuery().Where(sq.Eq{"u.email": email}).ToSql()
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	var u auth.User
	err = pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &u, sqlStr, args...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("user", email)
		}
		return nil, apperror.NewDatabase(err)
	}
	return &u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]*auth.User, error) {
	sqlStr, args, err := r.selectQuery().OrderBy("u.id").ToSql()
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	var users []*auth.User
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &users, sqlStr, args...); err != nil {
		return nil, apperror.NewDatabase(err)
	}
	return users, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	sqlStr, args, err := r.builder.
		Update("users").
		Set("password_hash", passwordHash).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return apperror.NewInternal(err)
	}

	tag, err := r.txManager.GetQuerier(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return apperror.NewDatabase(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("user", id)
	}
	return nil
}
