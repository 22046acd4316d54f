package sale

import "context"

// Filter narrows sale listings.
type Filter struct {
	ClientID *int64
	State    *State
	Limit    int
	Offset   int
}

// Repository persists sale documents.
type Repository interface {
	// InsertHeader writes the document header and assigns its ID.
	InsertHeader(ctx context.Context, s *Sale) error

	// InsertLines writes all lines for an already-inserted header.
	InsertLines(ctx context.Context, saleID int64, lines []Line) error

	GetByID(ctx context.Context, id int64) (*Sale, error)

	// GetByIDForUpdate reads the header taking a row lock, so a state
	// change and a delete of the same sale serialize.
	GetByIDForUpdate(ctx context.Context, id int64) (*Sale, error)

	GetLines(ctx context.Context, saleID int64) ([]Line, error)
	List(ctx context.Context, filter Filter) ([]*Sale, error)

	UpdateState(ctx context.Context, id int64, state State) error
	DeleteLines(ctx context.Context, saleID int64) error
	DeleteHeader(ctx context.Context, id int64) error
}
