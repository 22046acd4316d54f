package product

import "context"

// Repository persists products.
type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id int64) (*Product, error)
	List(ctx context.Context, filter Filter) ([]*Product, error)
	Update(ctx context.Context, p *Product) error
	SetActive(ctx context.Context, id int64, active bool) error
}
