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

var _ auth.RoleRepository = (*RoleRepository)(nil)

// RoleRepository implements auth.RoleRepository against Postgres.
type RoleRepository struct {
	txManager *postgres.TxManager
	builder   sq.StatementBuilderType
}

// NewRoleRepository creates a role repository.
func NewRoleRepository(txManager *postgres.TxManager) *RoleRepository {
	return &RoleRepository{
		txManager: txManager,
		builder:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *RoleRepository) Create(ctx context.Context, role *auth.Role) error {
	query := r.builder.
		Insert("roles").
		Columns("name", "description").
		Values(role.Name, role.Description).
		Suffix("RETURNING id")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return apperror.NewInternal(err)
	}

	err = r.txManager.GetQuerier(ctx).QueryRow(ctx, sqlStr, args...).Scan(&role.ID)
	if err != nil {
		return apperror.NewDatabase(err)
	}
	return nil
}

func (r *RoleRepository) GetByID(ctx context.Context, id int64) (*auth.Role, error) {
	sqlStr, args, err := r.builder.
		Select("id", "name", "description").
		From("roles").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	var role auth.Role
	err = pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &role, sqlStr, args...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("role", id)
		}
		return nil, apperror.NewDatabase(err)
	}
	return &role, nil
}

func (r *RoleRepository) List(ctx context.Context) ([]*auth.Role, error) {
	sqlStr, args, err := r.builder.
		Select("id", "name", "description").
		From("roles").
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	var roles []*auth.Role
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &roles, sqlStr, args...); err != nil {
		return nil, apperror.NewDatabase(err)
	}
	return roles, nil
}
