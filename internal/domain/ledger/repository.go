package ledger

import "context"

// Repository persists stock balances.
type Repository interface {
	// GetForUpdate reads the current stock level of a product taking a
	// row lock, so concurrent writers serialize on the same product.
	GetForUpdate(ctx context.Context, productID int64) (*StockLevel, error)

	// Get reads the current stock level without locking.
	Get(ctx context.Context, productID int64) (*StockLevel, error)

	// AddStock atomically adds delta (which may be negative) to a
	// product's stock and returns the new level.
	AddStock(ctx context.Context, productID int64, delta int64) (*StockLevel, error)
}
