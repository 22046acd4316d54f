package purchase

import "context"

// Filter narrows purchase listings.
type Filter struct {
	SupplierID *int64
	Limit      int
	Offset     int
}

// Repository persists purchase documents.
type Repository interface {
	// InsertHeader writes the document header and assigns its ID.
	InsertHeader(ctx context.Context, p *Purchase) error

	// InsertLines writes all lines for an already-inserted header.
	InsertLines(ctx context.Context, purchaseID int64, lines []Line) error

	GetByID(ctx context.Context, id int64) (*Purchase, error)
	GetLines(ctx context.Context, purchaseID int64) ([]Line, error)
	List(ctx context.Context, filter Filter) ([]*Purchase, error)
}
