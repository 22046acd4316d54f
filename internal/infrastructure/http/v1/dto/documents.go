package dto

import (
	"time"

	"github.com/nicole276/Api-Stockbar/internal/core/types"
)

// LineRequest is one product position on a document.
type LineRequest struct {
	ProductID int64       `json:"product_id" binding:"required"`
	Quantity  int64       `json:"quantity" binding:"required"`
	UnitPrice types.Money `json:"unit_price"`
}

// PurchaseRequest posts a goods intake.
type PurchaseRequest struct {
	SupplierID    int64         `json:"supplier_id" binding:"required"`
	Date          *time.Time    `json:"date"`
	InvoiceNumber string        `json:"invoice_number"`
	Lines         []LineRequest `json:"lines" binding:"required"`
}

// PurchaseListQuery filters purchase listings.
type PurchaseListQuery struct {
	ListQuery
	SupplierID *int64 `form:"supplier_id"`
}

// SaleRequest posts a sale. State defaults to pending when omitted.
type SaleRequest struct {
	ClientID int64         `json:"client_id" binding:"required"`
	Date     *time.Time    `json:"date"`
	State    *int16        `json:"state"`
	Lines    []LineRequest `json:"lines" binding:"required"`
}

// SaleListQuery filters sale listings.
type SaleListQuery struct {
	ListQuery
	ClientID *int64 `form:"client_id"`
	State    *int16 `form:"state"`
}

// ChangeStateRequest moves a sale to a new state. A pointer keeps the
// zero state (pending) distinguishable from an absent field.
type ChangeStateRequest struct {
	State *int16 `json:"state" binding:"required"`
}
