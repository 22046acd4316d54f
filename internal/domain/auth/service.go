package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/nicole276/Api-Stockbar/internal/core/apperror"
	"github.com/nicole276/Api-Stockbar/internal/core/tx"
	"github.com/nicole276/Api-Stockbar/pkg/logger"
)

const minPasswordLength = 8

// Service implements authentication and account management.
type Service struct {
	users     UserRepository
	roles     RoleRepository
	codes     CodeStore
	issuer    *TokenIssuer
	txManager tx.Manager
}

// NewService creates an auth service.
func NewService(users UserRepository, roles RoleRepository, codes CodeStore, issuer *TokenIssuer, txManager tx.Manager) *Service {
	return &Service{users: users, roles: roles, codes: codes, issuer: issuer, txManager: txManager}
}

// Login verifies credentials and returns a signed token. Accounts
// predating password hashing store the password verbatim; those are
// verified by comparison and upgraded to a bcrypt hash on the spot.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewUnauthorized("invalid credentials")
		}
		return nil, err
	}
	if !user.Active {
		return nil, apperror.NewUnauthorized("account is disabled")
	}

	if err := s.verifyPassword(ctx, user, password); err != nil {
		return nil, err
	}

	token, expiresAt, err := s.issuer.Issue(user)
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "user logged in", "user_id", user.ID, "email", user.Email)
	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

func (s *Service) verifyPassword(ctx context.Context, user *User, password string) error {
	if strings.HasPrefix(user.PasswordHash, "$2") {
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
			return apperror.NewUnauthorized("invalid credentials")
		}
		return nil
	}

	// Legacy row: plain-text password from before hashing was introduced.
	if user.PasswordHash != password {
		return apperror.NewUnauthorized("invalid credentials")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return apperror.NewInternal(err)
	}
	upgradeErr := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.users.UpdatePassword(ctx, user.ID, string(hash))
	})
	if upgradeErr != nil {
		// Login still succeeds; the upgrade retries next time.
		logger.Warn(ctx, "password hash upgrade failed", "user_id", user.ID, "error", upgradeErr)
	} else {
		user.PasswordHash = string(hash)
		logger.Info(ctx, "legacy password upgraded", "user_id", user.ID)
	}
	return nil
}

// ParseToken verifies a token and returns its claims.
func (s *Service) ParseToken(tokenString string) (*Claims, error) {
	return s.issuer.Parse(tokenString)
}

// CreateUser registers a new account with a bcrypt-hashed password.
func (s *Service) CreateUser(ctx context.Context, u *User, password string) (*User, error) {
	if err := u.Validate(); err != nil {
		return nil, err
	}
	if len(password) < minPasswordLength {
		return nil, apperror.NewValidation(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	u.PasswordHash = string(hash)
	u.Active = true

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.users.GetByEmail(ctx, u.Email); err == nil {
			return apperror.NewDuplicate("user", "email", u.Email)
		} else if !apperror.IsNotFound(err) {
			return err
		}
		if _, err := s.roles.GetByID(ctx, u.RoleID); err != nil {
			return err
		}
		return s.users.Create(ctx, u)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "user created", "user_id", u.ID, "email", u.Email)
	return u, nil
}

// GetUser returns a user by ID.
func (s *Service) GetUser(ctx context.Context, id int64) (*User, error) {
	return s.users.GetByID(ctx, id)
}

// ListUsers returns all users.
func (s *Service) ListUsers(ctx context.Context) ([]*User, error) {
	return s.users.List(ctx)
}

// CreateRole registers a new role.
func (s *Service) CreateRole(ctx context.Context, r *Role) (*Role, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.roles.Create(ctx, r)
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// ListRoles returns all roles.
func (s *Service) ListRoles(ctx context.Context) ([]*Role, error) {
	return s.roles.List(ctx)
}

// RequestPasswordReset generates a short-lived reset code for the
// account. The code is returned to the caller for delivery; unknown
// emails still succeed so the endpoint does not leak which accounts
// exist.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if _, err := s.users.GetByEmail(ctx, email); err != nil {
		if apperror.IsNotFound(err) {
			return "", nil
		}
		return "", err
	}

	code, err := generateCode()
	if err != nil {
		return "", apperror.NewInternal(err)
	}
	if err := s.codes.Set(ctx, email, code); err != nil {
		return "", err
	}

	logger.Info(ctx, "password reset requested", "email", email)
	return code, nil
}

// ConfirmPasswordReset consumes a reset code and sets a new password.
func (s *Service) ConfirmPasswordReset(ctx context.Context, email, code, newPassword string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if len(newPassword) < minPasswordLength {
		return apperror.NewValidation(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	ok, err := s.codes.Consume(ctx, email, code)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.NewUnauthorized("invalid or expired reset code")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperror.NewInternal(err)
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.users.UpdatePassword(ctx, user.ID, string(hash))
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "password reset", "user_id", user.ID)
	return nil
}

// generateCode returns a six-digit numeric code.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
