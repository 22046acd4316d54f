// Package supplier manages the supplier catalog.
package supplier

import (
	"context"
	"strings"
	"time"

	"github.com/nicole276/Api-Stockbar/internal/core/apperror"
	"github.com/nicole276/Api-Stockbar/internal/core/tx"
)

// Supplier is a vendor purchases are received from.
type Supplier struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Phone     string    `db:"phone" json:"phone"`
	Address   string    `db:"address" json:"address"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Validate checks invariants before persistence.
func (s *Supplier) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return apperror.NewValidation("supplier name is required")
	}
	if s.Email != "" && !strings.Contains(s.Email, "@") {
		return apperror.NewValidation("supplier email is invalid")
	}
	return nil
}

// Repository persists suppliers.
type Repository interface {
	Create(ctx context.Context, s *Supplier) error
	GetByID(ctx context.Context, id int64) (*Supplier, error)
	List(ctx context.Context, activeOnly bool) ([]*Supplier, error)
	Update(ctx context.Context, s *Supplier) error
	SetActive(ctx context.Context, id int64, active bool) error
}

// Service implements supplier operations.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{repo: repo, txManager: txManager}
}

func (s *Service) Create(ctx context.Context, sup *Supplier) (*Supplier, error) {
	if err := sup.Validate(); err != nil {
		return nil, err
	}
	sup.Active = true
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, sup)
	})
	if err != nil {
		return nil, err
	}
	return sup, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Supplier, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, activeOnly bool) ([]*Supplier, error) {
	return s.repo.List(ctx, activeOnly)
}

func (s *Service) Update(ctx context.Context, sup *Supplier) (*Supplier, error) {
	if err := sup.Validate(); err != nil {
		return nil, err
	}
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetByID(ctx, sup.ID)
		if err != nil {
			return err
		}
		sup.Active = current.Active
		return s.repo.Update(ctx, sup)
	})
	if err != nil {
		return nil, err
	}
	return sup, nil
}

// Deactivate soft-deletes a supplier; past purchases keep referencing it.
func (s *Service) Deactivate(ctx context.Context, id int64) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetByID(ctx, id); err != nil {
			return err
		}
		return s.repo.SetActive(ctx, id, false)
	})
}
