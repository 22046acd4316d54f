// Package ledger implements stock level accounting. All stock changes
// go through this package so the on-hand quantity of a product is the
// single running balance maintained by applied deltas.
package ledger

// Direction indicates which way a manual adjustment moves stock.
type Direction string

const (
	DirectionIncrease Direction = "increase"
	DirectionDecrease Direction = "decrease"
)

// Valid reports whether the direction is one of the known values.
func (d Direction) Valid() bool {
	return d == DirectionIncrease || d == DirectionDecrease
}

// Requirement is one product demand to check against current stock.
type Requirement struct {
	ProductID int64
	Quantity  int64
}

// StockLevel is the current balance of a product.
type StockLevel struct {
	ProductID int64  `db:"id"`
	Name      string `db:"name"`
	Stock     int64  `db:"stock"`
}
