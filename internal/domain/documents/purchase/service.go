package purchase

import (
	"context"
	"time"

	"github.com/nicole276/Api-Stockbar/internal/core/tx"
	"github.com/nicole276/Api-Stockbar/internal/domain/ledger"
	"github.com/nicole276/Api-Stockbar/pkg/logger"
)

// StockLedger is the slice of the ledger service purchases need.
type StockLedger interface {
	ApplyDelta(ctx context.Context, productID int64, delta int64) (*ledger.StockLevel, error)
}

// Auditor records entity changes; failures must not abort the posting.
type Auditor interface {
	RecordQuiet(ctx context.Context, entityType string, entityID int64, action string, changes any)
}

// Service posts purchase documents.
type Service struct {
	repo      Repository
	stock     StockLedger
	txManager tx.Manager
	auditor   Auditor
}

// NewService creates a purchase service.
func NewService(repo Repository, stock StockLedger, txManager tx.Manager, auditor Auditor) *Service {
	return &Service{repo: repo, stock: stock, txManager: txManager, auditor: auditor}
}

// Create validates and posts a purchase: header, lines, and one
// positive stock delta per line, all in a single transaction.
func (s *Service) Create(ctx context.Context, p *Purchase) (*Purchase, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.Date.IsZero() {
		p.Date = time.Now().UTC()
	}
	if p.Status == 0 {
		p.Status = StatusActive
	}
	p.ComputeTotals()

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.InsertHeader(ctx, p); err != nil {
			return err
		}
		if err := s.repo.InsertLines(ctx, p.ID, p.Lines); err != nil {
			return err
		}
		for _, line := range p.Lines {
			if _, err := s.stock.ApplyDelta(ctx, line.ProductID, line.Quantity); err != nil {
				return err
			}
		}
		s.auditor.RecordQuiet(ctx, "purchase", p.ID, "create", p)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "purchase posted",
		"purchase_id", p.ID,
		"supplier_id", p.SupplierID,
		"lines", len(p.Lines),
		"total", p.Total.String(),
	)
	return p, nil
}

// GetByID returns a purchase with its lines.
func (s *Service) GetByID(ctx context.Context, id int64) (*Purchase, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	lines, err := s.repo.GetLines(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Lines = lines
	return p, nil
}

// List returns purchases matching the filter, newest first.
func (s *Service) List(ctx context.Context, filter Filter) ([]*Purchase, error) {
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 100
	}
	return s.repo.List(ctx, filter)
}
