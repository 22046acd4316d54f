package catalog_repo

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"github.com/nicole276/Api-Stockbar/internal/core/apperror"
	"github.com/nicole276/Api-Stockbar/internal/domain/catalogs/client"
	"github.com/nicole276/Api-Stockbar/internal/infrastructure/storage/postgres"
)

var _ client.Repository = (*ClientRepository)(nil)

// ClientRepository implements client.Repository against Postgres.
type ClientRepository struct {
	txManager *postgres.TxManager
	builder   sq.StatementBuilderType
}

// NewClientRepository creates a client repository.
func NewClientRepository(txManager *postgres.TxManager) *ClientRepository {
	return &ClientRepository{
		txManager: txManager,
		builder:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *ClientRepository) Create(ctx context.Context, c *client.Client) error {
	query := r.builder.
		Insert("clients").
		Columns("name", "email", "phone", "address", "active").
		Values(c.Name, c.Email, c.Phone, c.Address, c.Active).
		Suffix("RETURNING id, created_at")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return apperror.NewInternal(err)
	}

	err = r.txManager.GetQuerier(ctx).QueryRow(ctx, sqlStr, args...).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return apperror.NewDatabase(err)
	}
	return nil
}

func (r *ClientRepository) GetByID(ctx context.Context, id int64) (*client.Client, error) {
	sqlStr, args, err := r.builder.
		Select("id", "name", "email", "phone", "address", "active", "created_at").
		From("clients").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	var c client.Client
	err = pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &c, sqlStr, args...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("client", id)
		}
		return nil, apperror.NewDatabase(err)
	}
	return &c, nil
}

func (r *ClientRepository) List(ctx context.Context, activeOnly bool) ([]*client.Client, error) {
	query := r.builder.
		Select("id", "name", "email", "phone", "address", "active", "created_at").
		From("clients").
		OrderBy("name")
	if activeOnly {
		query = query.Where(sq.Eq{"active": true})
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	var clients []*client.Client
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &clients, sqlStr, args...); err != nil {
		return nil, apperror.NewDatabase(err)
	}
	return clients, nil
}

func (r *ClientRepository) Update(ctx context.Context, c *client.Client) error {
	query := r.builder.
		Update("clients").
		Set("name", c.Name).
		Set("email", c.Email).
		Set("phone", c.Phone).
		Set("address", c.Address).
		Where(sq.Eq{"id": c.ID})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return apperror.NewInternal(err)
	}

	tag, err := r.txManager.GetQuerier(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return apperror.NewDatabase(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("client", c.ID)
	}
	return nil
}

func (r *ClientRepository) SetActive(ctx context.Context, id int64, active bool) error {
	sqlStr, args, err := r.builder.
		Update("clients").
		Set("active", active).
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
		return apperror.NewNotFound("client", id)
	}
	return nil
}
