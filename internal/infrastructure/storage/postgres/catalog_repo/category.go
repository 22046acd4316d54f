package catalog_repo

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"github.com/nicole276/Api-Stockbar/internal/core/apperror"
	"github.com/nicole276/Api-Stockbar/internal/domain/catalogs/category"
	"github.com/nicole276/Api-Stockbar/internal/infrastructure/storage/postgres"
)

var _ category.Repository = (*CategoryRepository)(nil)

// CategoryRepository implements category.Repository against Postgres.
type CategoryRepository struct {
	txManager *postgres.TxManager
	builder   sq.StatementBuilderType
}

// NewCategoryRepository creates a category repository.
func NewCategoryRepository(txManager *postgres.TxManager) *CategoryRepository {
	return &CategoryRepository{
		txManager: txManager,
		builder:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *CategoryRepository) Create(ctx context.Context, c *category.Category) error {
	query := r.builder.
		Insert("categories").
		Columns("name", "description").
		Values(c.Name, c.Description).
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

func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*category.Category, error) {
	sqlStr, args, err := r.builder.
		Select("id", "name", "description", "created_at").
		From("categories").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	var c category.Category
	err = pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &c, sqlStr, args...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("category", id)
		}
		return nil, apperror.NewDatabase(err)
	}
	return &c, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]*category.Category, error) {
	sqlStr, args, err := r.builder.
		Select("id", "name", "description", "created_at").
		From("categories").
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	var categories []*category.Category
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &categories, sqlStr, args...); err != nil {
		return nil, apperror.NewDatabase(err)
	}
	return categories, nil
}

func (r *CategoryRepository) Update(ctx context.Context, c *category.Category) error {
	query := r.builder.
		Update("categories").
		Set("name", c.Name).
		Set("description", c.Description).
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
		return apperror.NewNotFound("category", c.ID)
	}
	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	sqlStr, args, err := r.builder.
		Delete("categories").
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
		return apperror.NewNotFound("category", id)
	}
	return nil
}
