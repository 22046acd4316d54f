package sale

import (
	"context"
	"time"

	"github.com/nicole276/Api-Stockbar/internal/core/apperror"
	"github.com/nicole276/Api-Stockbar/internal/core/tx"
	"github.com/nicole276/Api-Stockbar/internal/domain/ledger"
	"github.com/nicole276/Api-Stockbar/pkg/logger"
)

// StockLedger is the slice of the ledger service sales need.
type StockLedger interface {
	ApplyDelta(ctx context.Context, productID int64, delta int64) (*ledger.StockLevel, error)
	CheckAvailability(ctx context.Context, reqs []ledger.Requirement) error
}

// Auditor records entity changes; failures must not abort the posting.
type Auditor interface {
	RecordQuiet(ctx context.Context, entityType string, entityID int64, action string, changes any)
}

// Service posts sale documents and drives their state machine.
type Service struct {
	repo      Repository
	stock     StockLedger
	txManager tx.Manager
	auditor   Auditor
}

// NewService creates a sale service.
func NewService(repo Repository, stock StockLedger, txManager tx.Manager, auditor Auditor) *Service {
	return &Service{repo: repo, stock: stock, txManager: txManager, auditor: auditor}
}

// Create validates and posts a sale. Stock-holding states consume
// stock: availability is checked for every line before any delta, then
// each line's quantity leaves the ledger, then header and lines are
// written. A sale created directly in Voided touches no stock. Any
// failure aborts the whole transaction.
func (s *Service) Create(ctx context.Context, doc *Sale) (*Sale, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	if doc.Date.IsZero() {
		doc.Date = time.Now().UTC()
	}
	doc.ComputeTotals()

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if doc.State.HoldsStock() {
			if err := s.stock.CheckAvailability(ctx, requirements(doc.Lines)); err != nil {
				return err
			}
			if err := s.applyLineDeltas(ctx, doc.Lines, -1); err != nil {
				return err
			}
		}
		if err := s.repo.InsertHeader(ctx, doc); err != nil {
			return err
		}
		if err := s.repo.InsertLines(ctx, doc.ID, doc.Lines); err != nil {
			return err
		}
		s.auditor.RecordQuiet(ctx, "sale", doc.ID, "create", doc)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "sale posted",
		"sale_id", doc.ID,
		"client_id", doc.ClientID,
		"state", doc.State.String(),
		"lines", len(doc.Lines),
		"total", doc.Total.String(),
	)
	return doc, nil
}

// ChangeState moves a sale to newState. The header is read FOR UPDATE
// and the lines inside the same transaction, so concurrent transitions
// of one sale serialize. Moving into Voided returns stock; moving out
// of Voided consumes it again under availability checks; transitions
// between stock-holding states leave the ledger untouched. A
// transition to the current state is a no-op.
func (s *Service) ChangeState(ctx context.Context, saleID int64, newState State) (*StateChange, error) {
	if !newState.Valid() {
		return nil, apperror.NewValidation("unknown sale state")
	}

	var change *StateChange
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		doc, err := s.repo.GetByIDForUpdate(ctx, saleID)
		if err != nil {
			return err
		}
		prev := doc.State
		if !prev.Valid() {
			return apperror.NewInvalidState("sale is in an unknown state")
		}

		if prev == newState {
			change = &StateChange{Sale: doc, PreviousState: prev, NewState: newState}
			return nil
		}

		lines, err := s.repo.GetLines(ctx, saleID)
		if err != nil {
			return err
		}
		doc.Lines = lines

		if effect := stockEffect(prev, newState); effect != 0 {
			if err := s.applyLineDeltas(ctx, lines, effect); err != nil {
				return err
			}
		}

		if err := s.repo.UpdateState(ctx, saleID, newState); err != nil {
			return err
		}
		doc.State = newState

		s.auditor.RecordQuiet(ctx, "sale", saleID, auditAction(prev, newState), map[string]any{
			"previous_state": prev,
			"new_state":      newState,
		})
		change = &StateChange{Sale: doc, PreviousState: prev, NewState: newState}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if change.PreviousState != change.NewState {
		logger.Info(ctx, "sale state changed",
			"sale_id", saleID,
			"from", change.PreviousState.String(),
			"to", change.NewState.String(),
		)
	}
	return change, nil
}

// Delete removes a sale and its lines. Stock is returned at most once:
// only sales still holding stock put their quantities back; deleting a
// Voided sale must not credit the ledger a second time.
func (s *Service) Delete(ctx context.Context, saleID int64) error {
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		doc, err := s.repo.GetByIDForUpdate(ctx, saleID)
		if err != nil {
			return err
		}
		lines, err := s.repo.GetLines(ctx, saleID)
		if err != nil {
			return err
		}

		if doc.State.HoldsStock() {
			if err := s.applyLineDeltas(ctx, lines, 1); err != nil {
				return err
			}
		}

		if err := s.repo.DeleteLines(ctx, saleID); err != nil {
			return err
		}
		if err := s.repo.DeleteHeader(ctx, saleID); err != nil {
			return err
		}
		s.auditor.RecordQuiet(ctx, "sale", saleID, "delete", map[string]any{
			"state": doc.State,
			"total": doc.Total,
		})
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "sale deleted", "sale_id", saleID)
	return nil
}

// GetByID returns a sale with its lines.
func (s *Service) GetByID(ctx context.Context, id int64) (*Sale, error) {
	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	lines, err := s.repo.GetLines(ctx, id)
	if err != nil {
		return nil, err
	}
	doc.Lines = lines
	return doc, nil
}

// GetLines returns just the lines of a sale.
func (s *Service) GetLines(ctx context.Context, saleID int64) ([]Line, error) {
	if _, err := s.repo.GetByID(ctx, saleID); err != nil {
		return nil, err
	}
	return s.repo.GetLines(ctx, saleID)
}

// List returns sales matching the filter, newest first.
func (s *Service) List(ctx context.Context, filter Filter) ([]*Sale, error) {
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 100
	}
	return s.repo.List(ctx, filter)
}

// applyLineDeltas moves every line's quantity through the ledger with
// the given sign. Order is line order; the first failure aborts.
func (s *Service) applyLineDeltas(ctx context.Context, lines []Line, sign int64) error {
	for _, line := range lines {
		if _, err := s.stock.ApplyDelta(ctx, line.ProductID, sign*line.Quantity); err != nil {
			return err
		}
	}
	return nil
}

func requirements(lines []Line) []ledger.Requirement {
	reqs := make([]ledger.Requirement, 0, len(lines))
	for _, line := range lines {
		reqs = append(reqs, ledger.Requirement{ProductID: line.ProductID, Quantity: line.Quantity})
	}
	return reqs
}

func auditAction(from, to State) string {
	switch {
	case to == StateVoided:
		return "void"
	case from == StateVoided:
		return "reactivate"
	case to == StateCompleted:
		return "complete"
	}
	return "update"
}
