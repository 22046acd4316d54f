package document_repo

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"github.com/nicole276/Api-Stockbar/internal/core/apperror"
	"github.com/nicole276/Api-Stockbar/internal/domain/documents/sale"
	"github.com/nicole276/Api-Stockbar/internal/infrastructure/storage/postgres"
)

var _ sale.Repository = (*SaleRepository)(nil)

// SaleRepository implements sale.Repository against Postgres.
type SaleRepository struct {
	txManager *postgres.TxManager
	builder   sq.StatementBuilderType
}

// NewSaleRepository creates a sale repository.
func NewSaleRepository(txManager *postgres.TxManager) *SaleRepository {
	return &SaleRepository{
		txManager: txManager,
		builder:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *SaleRepository) InsertHeader(ctx context.Context, s *sale.Sale) error {
	query := r.builder.
		Insert("sales").
		Columns("client_id", "date", "total", "state").
		Values(s.ClientID, s.Date, s.Total, s.State).
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

func (r *SaleRepository) InsertLines(ctx context.Context, saleID int64, lines []sale.Line) error {
	if len(lines) == 0 {
		return nil
	}

	query := r.builder.
		Insert("sale_lines").
		Columns("sale_id", "product_id", "quantity", "unit_price", "subtotal")
	for _, line := range lines {
		query = query.Values(saleID, line.ProductID, line.Quantity, line.UnitPrice, line.Subtotal)
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

const saleColumns = "s.id, s.client_id, c.name AS client_name, " +
	"s.date, s.total, s.state, s.created_at"

func (r *SaleRepository) selectQuery() sq.SelectBuilder {
	return r.builder.
		Select(saleColumns).
		From("sales s").
		LeftJoin("clients c ON c.id = s.client_id")
}

func (r *SaleRepository) get(ctx context.Context, id int64, forUpdate bool) (*sale.Sale, error) {
	query := r.selectQuery().Where(sq.Eq{"s.id": id})
	if forUpdate {
		// Lock the sale row only; the joined client row stays free.
		query = query.Suffix("FOR UPDATE OF s")
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	var doc sale.Sale
	err = pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &doc, sqlStr, args...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("sale", id)
		}
		return nil, apperror.NewDatabase(err)
	}
	return &doc, nil
}

func (r *SaleRepository) GetByID(ctx context.Context, id int64) (*sale.Sale, error) {
	return r.get(ctx, id, false)
}

func (r *SaleRepository) GetByIDForUpdate(ctx context.Context, id int64) (*sale.Sale, error) {
	return r.get(ctx, id, true)
}

func (r *SaleRepository) GetLines(ctx context.Context, saleID int64) ([]sale.Line, error) {
	sqlStr, args, err := r.builder.
		Select("id", "sale_id", "product_id", "quantity", "unit_price", "subtotal").
		From("sale_lines").
		Where(sq.Eq{"sale_id": saleID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	var lines []sale.Line
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &lines, sqlStr, args...); err != nil {
		return nil, apperror.NewDatabase(err)
	}
	return lines, nil
}

func (r *SaleRepository) List(ctx context.Context, filter sale.Filter) ([]*sale.Sale, error) {
	query := r.selectQuery().
		OrderBy("s.id DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset))

	if filter.ClientID != nil {
		query = query.Where(sq.Eq{"s.client_id": *filter.ClientID})
	}
	if filter.State != nil {
		query = query.Where(sq.Eq{"s.state": *filter.State})
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	var sales []*sale.Sale
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &sales, sqlStr, args...); err != nil {
		return nil, apperror.NewDatabase(err)
	}
	return sales, nil
}

func (r *SaleRepository) UpdateState(ctx context.Context, id int64, state sale.State) error {
	sqlStr, args, err := r.builder.
		Update("sales").
		Set("state", state).
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
		return apperror.NewNotFound("sale", id)
	}
	return nil
}

func (r *SaleRepository) DeleteLines(ctx context.Context, saleID int64) error {
	sqlStr, args, err := r.builder.
		Delete("sale_lines").
		Where(sq.Eq{"sale_id": saleID}).
		ToSql()
	if err != nil {
		return apperror.NewInternal(err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sqlStr, args...); err != nil {
		return apperror.NewDatabase(err)
	}
	return nil
}

func (r *SaleRepository) DeleteHeader(ctx context.Context, id int64) error {
	sqlStr, args, err := r.builder.
		Delete("sales").
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
		return apperror.NewNotFound("sale", id)
	}
	return nil
}
