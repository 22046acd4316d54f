// Package category manages product categories.
package category

import (
	"context"
	"strings"
	"time"

	"github.com/nicole276/Api-Stockbar/internal/core/apperror"
	"github.com/nicole276/Api-Stockbar/internal/core/tx"
)

// Category groups products for reporting and listing filters.
type Category struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// Validate checks invariants before persistence.
func (c *Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return apperror.NewValidation("category name is required")
	}
	return nil
}

// Repository persists categories.
type Repository interface {
	Create(ctx context.Context, c *Category) error
	GetByID(ctx context.Context, id int64) (*Category, error)
	List(ctx context.Context) ([]*Category, error)
	Update(ctx context.Context, c *Category) error
	Delete(ctx context.Context, id int64) error
}

// Service implements category operations.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{repo: repo, txManager: txManager}
}

func (s *Service) Create(ctx context.Context, c *Category) (*Category, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Category, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Category, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, c *Category) (*Category, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetByID(ctx, c.ID); err != nil {
			return err
		}
		return s.repo.Update(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetByID(ctx, id); err != nil {
			return err
		}
		return s.repo.Delete(ctx, id)
	})
}
