package auth

import "context"

// UserRepository persists user accounts.
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

// RoleRepository persists roles.
type RoleRepository interface {
	Create(ctx context.Context, r *Role) error
	GetByID(ctx context.Context, id int64) (*Role, error)
	List(ctx context.Context) ([]*Role, error)
}

// CodeStore keeps short-lived password reset codes. Implementations
// expire entries on their own; Consume removes the code so it can be
// used at most once.
type CodeStore interface {
	Set(ctx context.Context, email, code string) error
	Consume(ctx context.Context, email, code string) (bool, error)
}
