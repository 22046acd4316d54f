// Package sale implements outgoing sale documents and their lifecycle.
// Posting a sale consumes stock; voiding returns it; deleting a sale
// returns it at most once. All of it runs under one transaction per
// operation.
package sale

import (
	"time"

	"github.com/nicole276/Api-Stockbar/internal/core/apperror"
	"github.com/nicole276/Api-Stockbar/internal/core/types"
)

// Sale is an outgoing goods document.
type Sale struct {
	ID         int64       `db:"id" json:"id"`
	ClientID   int64       `db:"client_id" json:"client_id"`
	ClientName string      `db:"client_name" json:"client_name,omitempty"`
	Date       time.Time   `db:"date" json:"date"`
	Total      types.Money `db:"total" json:"total"`
	State      State       `db:"state" json:"state"`
	CreatedAt  time.Time   `db:"created_at" json:"created_at"`

	Lines []Line `db:"-" json:"lines,omitempty"`
}

// Line is one product position on a sale.
type Line struct {
	ID        int64       `db:"id" json:"id"`
	SaleID    int64       `db:"sale_id" json:"sale_id"`
	ProductID int64       `db:"product_id" json:"product_id"`
	Quantity  int64       `db:"quantity" json:"quantity"`
	UnitPrice types.Money `db:"unit_price" json:"unit_price"`
	Subtotal  types.Money `db:"subtotal" json:"subtotal"`
}

// Validate checks document invariants before posting.
func (s *Sale) Validate() error {
	if s.ClientID <= 0 {
		return apperror.NewValidation("client is required")
	}
	if !s.State.Valid() {
		return apperror.NewValidation("unknown sale state")
	}
	if len(s.Lines) == 0 {
		return apperror.NewValidation("sale must have at least one line")
	}
	for i := range s.Lines {
		line := &s.Lines[i]
		if line.ProductID <= 0 {
			return apperror.NewValidation("line product is required")
		}
		if line.Quantity <= 0 {
			return apperror.NewValidation("line quantity must be positive")
		}
		if line.UnitPrice.IsNegative() {
			return apperror.NewValidation("line unit price cannot be negative")
		}
	}
	return nil
}

// ComputeTotals fills line subtotals and the document total.
func (s *Sale) ComputeTotals() {
	total := types.ZeroMoney()
	for i := range s.Lines {
		s.Lines[i].Subtotal = types.MoneyFromUnits(s.Lines[i].Quantity, s.Lines[i].UnitPrice)
		total = total.Add(s.Lines[i].Subtotal)
	}
	s.Total = total
}

// StateChange reports the outcome of a state transition.
type StateChange struct {
	Sale          *Sale `json:"sale"`
	PreviousState State `json:"previous_state"`
	NewState      State `json:"new_state"`
}
