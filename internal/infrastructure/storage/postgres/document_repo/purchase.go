// Package document_repo persists purchase and sale documents.
package document_repo

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"github.com/nicole276/Api-Stockbar/internal/core/apperror"
	"github.com/nicole276/Api-Stockbar/internal/domain/documents/purchase"
	"github.com/nicole276/Api-Stockbar/internal/infrastructure/storage/postgres"
)

var _ purchase.Repository = (*PurchaseRepository)(nil)

// PurchaseRepository implements purchase.Repository against Postgres.
type PurchaseRepository struct {
	txManager *postgres.TxManager
	builder   sq.StatementBuilderType
}

// NewPurchaseRepository creates a purchase repository.
func NewPurchaseRepository(txManager *postgres.TxManager) *PurchaseRepository {
	return &PurchaseRepository{
		txManager: txManager,
		builder:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *PurchaseRepository) InsertHeader(ctx context.Context, p *purchase.Purchase) error {
	query := r.builder.
		Insert("purchases").
		Columns("supplier_id", "date", "total", "invoice_number", "status").
		Values(p.SupplierID, p.Date, p.Total, p.InvoiceNumber, p.Status).
		Suffix("RETURNING id, created_at")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return apperror.NewInternal(err)
	}

	err = r.txManager.GetQuerier(ctx).QueryRow(ctx, sqlStr, args...).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return apperror.NewDatabase(err)
	}
	return nil
}

func (r *PurchaseRepository) InsertLines(ctx context.Context, purchaseID int64, lines []purchase.Line) error {
	if len(lines) == 0 {
		return nil
	}

	query := r.builder.
		Insert("purchase_lines").
		Columns("purchase_id", "product_id", "quantity", "unit_price", "subtotal")
	for _, line := range lines {
		query = query.Values(purchaseID, line.ProductID, line.Quantity, line.UnitPrice, line.Subtotal)
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return apperror.NewInternal(err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sqlStr, args...); err != nil {
		return apperror.NewDatabase(err)
	}
	return nil
}

const purchaseColumns = "p.id, p.supplier_id, s.name AS supplier_name, " +
	"p.date, p.total, p.invoice_number, p.status, p.created_at"

func (r *PurchaseRepository) selectQuery() sq.SelectBuilder {
	return r.builder.
		Select(purchaseColumns).
		From("purchases p").
		LeftJoin("suppliers s ON s.id = p.supplier_id")
}

func (r *PurchaseRepository) GetByID(ctx context.Context, id int64) (*purchase.Purchase, error) {
	sqlStr, args, err := r.selectQuery().Where(sq.Eq{"p.id": id}).ToSql()
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	var p purchase.Purchase
	err = pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &p, sqlStr, args...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("purchase", id)
		}
		return nil, apperror.NewDatabase(err)
	}
	return &p, nil
}

func (r *PurchaseRepository) GetLines(ctx context.Context, purchaseID int64) ([]purchase.Line, error) {
	sqlStr, args, err := r.builder.
		Select("id", "purchase_id", "product_id", "quantity", "unit_price", "subtotal").
		From("purchase_lines").
		Where(sq.Eq{"purchase_id": purchaseID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	var lines []purchase.Line
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &lines, sqlStr, args...); err != nil {
		return nil, apperror.NewDatabase(err)
	}
	return lines, nil
}

func (r *PurchaseRepository) List(ctx context.Context, filter purchase.Filter) ([]*purchase.Purchase, error) {
	query := r.selectQuery().
		OrderBy("p.id DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset))

	if filter.SupplierID != nil {
		query = query.Where(sq.Eq{"p.supplier_id": *filter.SupplierID})
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	var purchases []*purchase.Purchase
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &purchases, sqlStr, args...); err != nil {
		return nil, apperror.NewDatabase(err)
	}
	return purchases, nil
}
