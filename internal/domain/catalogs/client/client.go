// Package client manages the customer catalog.
package client

import (
	"context"
	"strings"
	"time"

	"github.com/nicole276/Api-Stockbar/internal/core/apperror"
	"github.com/nicole276/Api-Stockbar/internal/core/tx"
)

// Client is a customer sales are issued to.
type Client struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Phone     string    `db:"phone" json:"phone"`
	Address   string    `db:"address" json:"address"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Validate checks invariants before persistence.
func (c *Client) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return apperror.NewValidation("client name is required")
	}
	if c.Email != "" && !strings.Contains(c.Email, "@") {
		return apperror.NewValidation("client email is invalid")
	}
	return nil
}

// Repository persists clients.
type Repository interface {
	Create(ctx context.Context, c *Client) error
	GetByID(ctx context.Context, id int64) (*Client, error)
	List(ctx context.Context, activeOnly bool) ([]*Client, error)
	Update(ctx context.Context, c *Client) error
	SetActive(ctx context.Context, id int64, active bool) error
}

// Service implements client operations.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{repo: repo, txManager: txManager}
}

func (s *Service) Create(ctx context.Context, c *Client) (*Client, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	c.Active = true
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Client, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, activeOnly bool) ([]*Client, error) {
	return s.repo.List(ctx, activeOnly)
}

func (s *Service) Update(ctx context.Context, c *Client) (*Client, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetByID(ctx, c.ID)
		if err != nil {
			return err
		}
		c.Active = current.Active
		return s.repo.Update(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Deactivate soft-deletes a client; past sales keep referencing it.
func (s *Service) Deactivate(ctx context.Context, id int64) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetByID(ctx, id); err != nil {
			return err
		}
		return s.repo.SetActive(ctx, id, false)
	})
}
