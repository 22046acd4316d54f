// Package catalog_repo persists reference data: products, categories,
// clients, suppliers.
package catalog_repo

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"github.com/nicole276/Api-Stockbar/internal/core/apperror"
	"github.com/nicole276/Api-Stockbar/internal/domain/catalogs/product"
	"github.com/nicole276/Api-Stockbar/internal/infrastructure/storage/postgres"
)

var _ product.Repository = (*ProductRepository)(nil)

// ProductRepository implements product.Repository against Postgres.
type ProductRepository struct {
	txManager *postgres.TxManager
	builder   sq.StatementBuilderType
}

// NewProductRepository creates a product repository.
func NewProductRepository(txManager *postgres.TxManager) *ProductRepository {
	return &ProductRepository{
		txManager: txManager,
		builder:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

const productColumns = "p.id, p.name, p.category_id, c.name AS category_name, " +
	"p.stock, p.purchase_price, p.sale_price, p.active, p.created_at, p.updated_at"

func (r *ProductRepository) selectQuery() sq.SelectBuilder {
	return r.builder.
		Select(productColumns).
		From("products p").
		LeftJoin("categories c ON c.id = p.category_id")
}

// Create inserts a product and assigns its ID.
func (r *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	query := r.builder.
		Insert("products").
		Columns("name", "category_id", "stock", "purchase_price", "sale_price", "active").
		Values(p.Name, p.CategoryID, p.Stock, p.PurchasePrice, p.SalePrice, p.Active).
		Suffix("RETURNING id, created_at, updated_at")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return apperror.NewInternal(err)
	}

	err = r.txManager.GetQuerier(ctx).
		QueryRow(ctx, sqlStr, args...).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return apperror.NewDatabase(err)
	}
	return nil
}

// GetByID returns a product with its category name.
func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	sqlStr, args, err := r.selectQuery().Where(sq.Eq{"p.id": id}).ToSql()
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	var p product.Product
	err = pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &p, sqlStr, args...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("product", id)
		}
		return nil, apperror.NewDatabase(err)
	}
	return &p, nil
}

// List returns products matching the filter, newest first.
func (r *ProductRepository) List(ctx context.Context, filter product.Filter) ([]*product.Product, error) {
	query := r.selectQuery().
		OrderBy("p.id DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset))

	if filter.CategoryID != nil {
		query = query.Where(sq.Eq{"p.category_id": *filter.CategoryID})
	}
	if filter.Active != nil {
		query = query.Where(sq.Eq{"p.active": *filter.Active})
	}
	if filter.Search != "" {
		query = query.Where(sq.ILike{"p.name": "%" + filter.Search + "%"})
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	var products []*product.Product
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &products, sqlStr, args...); err != nil {
		return nil, apperror.NewDatabase(err)
	}
	return products, nil
}

// Update persists product reference fields. Stock is excluded; it only
// moves through the ledger.
func (r *ProductRepository) Update(ctx context.Context, p *product.Product) error {
	query := r.builder.
		Update("products").
		Set("name", p.Name).
		Set("category_id", p.CategoryID).
		Set("purchase_price", p.PurchasePrice).
		Set("sale_price", p.SalePrice).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": p.ID})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return apperror.NewInternal(err)
	}

	tag, err := r.txManager.GetQuerier(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return apperror.NewDatabase(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("product", p.ID)
	}
	return nil
}

// SetActive toggles the soft-delete flag.
func (r *ProductRepository) SetActive(ctx context.Context, id int64, active bool) error {
	query := r.builder.
		Update("products").
		Set("active", active).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return apperror.NewInternal(err)
	}

	tag, err := r.txManager.GetQuerier(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return apperror.NewDatabase(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("product", id)
	}
	return nil
}
