package ledger

import (
	"context"

	"github.com/nicole276/Api-Stockbar/internal/core/apperror"
	"github.com/nicole276/Api-Stockbar/internal/core/tx"
	"github.com/nicole276/Api-Stockbar/pkg/logger"
)

// Service applies stock deltas with availability enforcement.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a ledger service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{repo: repo, txManager: txManager}
}

// ApplyDelta changes a product's stock by delta inside the ambient
// transaction. Negative deltas take a row lock and verify availability
// first; stock never goes below zero. Returns the updated level.
func (s *Service) ApplyDelta(ctx context.Context, productID int64, delta int64) (*StockLevel, error) {
	if delta == 0 {
		return s.repo.Get(ctx, productID)
	}

	if delta < 0 {
		level, err := s.repo.GetForUpdate(ctx, productID)
		if err != nil {
			return nil, err
		}
		if level.Stock+delta < 0 {
			return nil, apperror.NewInsufficientStock(productID, -delta, level.Stock)
		}
	}

	level, err := s.repo.AddStock(ctx, productID, delta)
	if err != nil {
		return nil, err
	}

	logger.Debug(ctx, "stock delta applied",
		"product_id", productID,
		"delta", delta,
		"stock", level.Stock,
	)
	return level, nil
}

// ApplyDeltas applies a batch of deltas in order. Any failure aborts
// the ambient transaction, so partial application never persists.
func (s *Service) ApplyDeltas(ctx context.Context, deltas []Requirement, sign int64) error {
	for _, d := range deltas {
		if _, err := s.ApplyDelta(ctx, d.ProductID, sign*d.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// CheckAvailability verifies all requirements can be satisfied by
// current stock. It reads without locking, so it is advisory; the
// authoritative check happens in ApplyDelta under the row lock.
func (s *Service) CheckAvailability(ctx context.Context, reqs []Requirement) error {
	for _, req := range reqs {
		level, err := s.repo.Get(ctx, req.ProductID)
		if err != nil {
			return err
		}
		if level.Stock < req.Quantity {
			return apperror.NewInsufficientStock(req.ProductID, req.Quantity, level.Stock)
		}
	}
	return nil
}

// Adjust performs a manual stock correction in its own transaction.
func (s *Service) Adjust(ctx context.Context, productID int64, quantity int64, direction Direction) (*StockLevel, error) {
	if quantity <= 0 {
		return nil, apperror.NewValidation("quantity must be positive")
	}
	if !direction.Valid() {
		return nil, apperror.NewValidation("direction must be 'increase' or 'decrease'")
	}

	delta := quantity
	if direction == DirectionDecrease {
		delta = -quantity
	}

	var level *StockLevel
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		level, err = s.ApplyDelta(ctx, productID, delta)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "stock adjusted",
		"product_id", productID,
		"direction", string(direction),
		"quantity", quantity,
		"stock", level.Stock,
	)
	return level, nil
}
