// Package product manages the sellable goods catalog. Stock levels on
// products are owned by the ledger; this package covers the reference
// data around them.
package product

import (
	"strings"
	"time"

	"github.com/nicole276/Api-Stockbar/internal/core/apperror"
	"github.com/nicole276/Api-Stockbar/internal/core/types"
)

// Product is a catalog item with its current stock balance.
type Product struct {
	ID            int64       `db:"id" json:"id"`
	Name          string      `db:"name" json:"name"`
	CategoryID    *int64      `db:"category_id" json:"category_id,omitempty"`
	CategoryName  *string     `db:"category_name" json:"category_name,omitempty"`
	Stock         int64       `db:"stock" json:"stock"`
	PurchasePrice types.Money `db:"purchase_price" json:"purchase_price"`
	SalePrice     types.Money `db:"sale_price" json:"sale_price"`
	Active        bool        `db:"active" json:"active"`
	CreatedAt     time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time   `db:"updated_at" json:"updated_at"`
}

// Validate checks invariants before persistence.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return apperror.NewValidation("product name is required")
	}
	if p.Stock < 0 {
		return apperror.NewValidation("stock cannot be negative")
	}
	if p.PurchasePrice.IsNegative() {
		return apperror.NewValidation("purchase price cannot be negative")
	}
	if p.SalePrice.IsNegative() {
		return apperror.NewValidation("sale price cannot be negative")
	}
	return nil
}

// Filter narrows product listings.
type Filter struct {
	CategoryID *int64
	Active     *bool
	Search     string
	Limit      int
	Offset     int
}
