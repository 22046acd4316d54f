package dto

import "github.com/nicole276/Api-Stockbar/internal/core/types"

// CategoryRequest creates or updates a category.
type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// PartyRequest creates or updates a client or supplier.
type PartyRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// ProductRequest creates or updates a product.
type ProductRequest struct {
	Name          string      `json:"name" binding:"required"`
	CategoryID    *int64      `json:"category_id"`
	Stock         int64       `json:"stock"`
	PurchasePrice types.Money `json:"purchase_price"`
	SalePrice     types.Money `json:"sale_price"`
}

// ProductListQuery filters product listings.
type ProductListQuery struct {
	ListQuery
	CategoryID *int64 `form:"category_id"`
	Active     *bool  `form:"active"`
	Search     string `form:"search"`
}

// AdjustStockRequest performs a manual stock correction.
type AdjustStockRequest struct {
	Quantity  int64  `json:"quantity" binding:"required"`
	Direction string `json:"direction" binding:"required,oneof=increase decrease"`
}
