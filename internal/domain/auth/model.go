// Package auth implements users, roles, login, and password reset.
package auth

import (
	"strings"
	"time"

	"github.com/nicole276/Api-Stockbar/internal/core/apperror"
)

// User is an operator account. PasswordHash never serializes.
type User struct {
	ID           int64     `db:"id" json:"id"`
	FullName     string    `db:"full_name" json:"full_name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	RoleID       int64     `db:"role_id" json:"role_id"`
	RoleName     string    `db:"role_name" json:"role_name,omitempty"`
	Active       bool      `db:"active" json:"active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Validate checks invariants before persistence.
func (u *User) Validate() error {
	if strings.TrimSpace(u.FullName) == "" {
		return apperror.NewValidation("full name is required")
	}
	if !strings.Contains(u.Email, "@") {
		return apperror.NewValidation("email is invalid")
	}
	if u.RoleID <= 0 {
		return apperror.NewValidation("role is required")
	}
	return nil
}

// Role groups users for coarse authorization.
type Role struct {
	ID          int64  `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description"`
}

// Validate checks invariants before persistence.
func (r *Role) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return apperror.NewValidation("role name is required")
	}
	return nil
}

// LoginResult is a successful authentication outcome.
type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      *User     `json:"user"`
}
