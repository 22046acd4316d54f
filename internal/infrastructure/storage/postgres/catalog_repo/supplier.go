package catalog_repo

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"github.com/nicole276/Api-Stockbar/internal/core/apperror"
	"github.com/nicole276/Api-Stockbar/internal/domain/catalogs/supplier"
	"github.com/nicole276/Api-Stockbar/internal/infrastructure/storage/postgres"
)

var _ supplier.Repository = (*SupplierRepository)(nil)

// SupplierRepository implements supplier.Repository against Postgres.
type SupplierRepository struct {
	txManager *postgres.TxManager
	builder   sq.StatementBuilderType
}

// NewSupplierRepository creates a supplier repository.
func NewSupplierRepository(txManager *postgres.TxManager) *SupplierRepository {
	return &SupplierRepository{
		txManager: txManager,
		builder:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *SupplierRepository) Create(ctx context.Context, s *supplier.Supplier) error {
	query := r.builder.
		Insert("suppliers").
		Columns("name", "email", "phone", "address", "active").
		Values(s.Name, s.Email, s.Phone, s.Address, s.Active).
		Suffix("RETURNING id, created_at")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return apperror.NewInternal(err)
	}

	err = r.txManager.GetQuerier(ctx).QueryRow(ctx, sqlStr, args...).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return apperror.NewDatabase(err)
	}
	return nil
}

func (r *SupplierRepository) GetByID(ctx context.Context, id int64) (*supplier.Supplier, error) {
	sqlStr, args, err := r.builder.
		Select("id", "name", "email", "phone", "address", "active", "created_at").
		From("suppliers").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	var s supplier.Supplier
	err = pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &s, sqlStr, args...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("supplier", id)
		}
		return nil, apperror.NewDatabase(err)
	}
	return &s, nil
}

func (r *SupplierRepository) List(ctx context.Context, activeOnly bool) ([]*supplier.Supplier, error) {
	query := r.builder.
		Select("id", "name", "email", "phone", "address", "active", "created_at").
		From("suppliers").
		OrderBy("name")
	if activeOnly {
		query = query.Where(sq.Eq{"active": true})
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	var suppliers []*supplier.Supplier
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &suppliers, sqlStr, args...); err != nil {
		return nil, apperror.NewDatabase(err)
	}
	return suppliers, nil
}

func (r *SupplierRepository) Update(ctx context.Context, s *supplier.Supplier) error {
	query := r.builder.
		Update("suppliers").
		Set("name", s.Name).
		Set("email", s.Email).
		Set("phone", s.Phone).
		Set("address", s.Address).
		Where(sq.Eq{"id": s.ID})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return apperror.NewInternal(err)
	}

	tag, err := r.txManager.GetQuerier(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return apperror.NewDatabase(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("supplier", s.ID)
	}
	return nil
}

func (r *SupplierRepository) SetActive(ctx context.Context, id int64, active bool) error {
	sqlStr, args, err := r.builder.
		Update("suppliers").
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
		return apperror.NewNotFound("supplier", id)
	}
	return nil
}
