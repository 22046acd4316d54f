// Package ledger_repo persists stock balances on the products table.
package ledger_repo

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"github.com/nicole276/Api-Stockbar/internal/core/apperror"
	"github.com/nicole276/Api-Stockbar/internal/domain/ledger"
	"github.com/nicole276/Api-Stockbar/internal/infrastructure/storage/postgres"
)

// Compile-time check.
var _ ledger.Repository = (*StockRepository)(nil)

// StockRepository implements ledger.Repository against Postgres.
type StockRepository struct {
	txManager *postgres.TxManager
	builder   sq.StatementBuilderType
}

// NewStockRepository creates a stock repository.
func NewStockRepository(txManager *postgres.TxManager) *StockRepository {
	return &StockRepository{
		txManager: txManager,
		builder:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *StockRepository) get(ctx context.Context, productID int64, forUpdate bool) (*ledger.StockLevel, error) {
	query := r.builder.
		Select("id", "name", "stock").
		From("products").
		Where(sq.Eq{"id": productID})
	if forUpdate {
		query = query.Suffix("FOR UPDATE")
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	var level ledger.StockLevel
	err = pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &level, sqlStr, args...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("product", productID)
		}
		return nil, apperror.NewDatabase(err)
	}
	return &level, nil
}

// GetForUpdate reads the stock level taking a row lock.
func (r *StockRepository) GetForUpdate(ctx context.Context, productID int64) (*ledger.StockLevel, error) {
	return r.get(ctx, productID, true)
}

// Get reads the stock level without locking.
func (r *StockRepository) Get(ctx context.Context, productID int64) (*ledger.StockLevel, error) {
	return r.get(ctx, productID, false)
}

// AddStock atomically applies a delta and returns the new level.
func (r *StockRepository) AddStock(ctx context.Context, productID int64, delta int64) (*ledger.StockLevel, error) {
	query := r.builder.
		Update("products").
		Set("stock", sq.Expr("stock + ?", delta)).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": productID}).
		Suffix("RETURNING id, name, stock")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	var level ledger.StockLevel
	err = pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &level, sqlStr, args...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("product", productID)
		}
		return nil, apperror.NewDatabase(err)
	}
	return &level, nil
}
