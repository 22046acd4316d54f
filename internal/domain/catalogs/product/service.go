package product

import (
	"context"

	"github.com/nicole276/Api-Stockbar/internal/core/tx"
	"github.com/nicole276/Api-Stockbar/pkg/logger"
)

// Service implements product catalog operations.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a product service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{repo: repo, txManager: txManager}
}

// Create validates and persists a new product.
func (s *Service) Create(ctx context.Context, p *Product) (*Product, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	p.Active = true

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, p)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "product created", "product_id", p.ID, "name", p.Name)
	return p, nil
}

// GetByID returns a product by ID.
func (s *Service) GetByID(ctx context.Context, id int64) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns products matching the filter, newest first.
func (s *Service) List(ctx context.Context, filter Filter) ([]*Product, error) {
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 100
	}
	return s.repo.List(ctx, filter)
}

// Update validates and persists product changes. Stock is not updated
// here; it only moves through the ledger.
func (s *Service) Update(ctx context.Context, p *Product) (*Product, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetByID(ctx, p.ID)
		if err != nil {
			return err
		}
		p.Stock = current.Stock
		p.Active = current.Active
		return s.repo.Update(ctx, p)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "product updated", "product_id", p.ID)
	return s.repo.GetByID(ctx, p.ID)
}

// Deactivate soft-deletes a product so history stays intact.
func (s *Service) Deactivate(ctx context.Context, id int64) error {
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetByID(ctx, id); err != nil {
			return err
		}
		return s.repo.SetActive(ctx, id, false)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "product deactivated", "product_id", id)
	return nil
}
