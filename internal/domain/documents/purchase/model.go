// Package purchase implements goods intake documents. Posting a
// purchase increases stock for every line in the same transaction that
// writes the document.
package purchase

import (
	"time"

	"github.com/nicole276/Api-Stockbar/internal/core/apperror"
	"github.com/nicole276/Api-Stockbar/internal/core/types"
)

// StatusActive marks a stored purchase header. Purchases have no
// lifecycle; the status is a plain stored attribute.
const StatusActive int16 = 1

// Purchase is a goods intake document.
type Purchase struct {
	ID            int64       `db:"id" json:"id"`
	SupplierID    int64       `db:"supplier_id" json:"supplier_id"`
	SupplierName  string      `db:"supplier_name" json:"supplier_name,omitempty"`
	Date          time.Time   `db:"date" json:"date"`
	Total         types.Money `db:"total" json:"total"`
	InvoiceNumber string      `db:"invoice_number" json:"invoice_number"`
	Status        int16       `db:"status" json:"status"`
	CreatedAt     time.Time   `db:"created_at" json:"created_at"`

	Lines []Line `db:"-" json:"lines,omitempty"`
}

// Line is one product position on a purchase.
type Line struct {
	ID         int64       `db:"id" json:"id"`
	PurchaseID int64       `db:"purchase_id" json:"purchase_id"`
	ProductID  int64       `db:"product_id" json:"product_id"`
	Quantity   int64       `db:"quantity" json:"quantity"`
	UnitPrice  types.Money `db:"unit_price" json:"unit_price"`
	Subtotal   types.Money `db:"subtotal" json:"subtotal"`
}

// Validate checks document invariants before posting.
func (p *Purchase) Validate() error {
	if p.SupplierID <= 0 {
		return apperror.NewValidation("supplier is required")
	}
	if len(p.Lines) == 0 {
		return apperror.NewValidation("purchase must have at least one line")
	}
	for i := range p.Lines {
		line := &p.Lines[i]
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

// ComputeTotals fills line subtotals and the document total from
// quantities and unit prices.
func (p *Purchase) ComputeTotals() {
	total := types.ZeroMoney()
	for i := range p.Lines {
		p.Lines[i].Subtotal = types.MoneyFromUnits(p.Lines[i].Quantity, p.Lines[i].UnitPrice)
		total = total.Add(p.Lines[i].Subtotal)
	}
	p.Total = total
}
