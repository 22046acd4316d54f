package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nicole276/Api-Stockbar/internal/core/apperror"
)

// Claims carried in access tokens.
type Claims struct {
	UserID   int64  `json:"uid"`
	Email    string `json:"email"`
	FullName string `json:"name"`
	RoleID   int64  `json:"role_id"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS256 access tokens. Tokens expire;
// the payload is signed, not encrypted, so no secrets go into claims.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer creates a token issuer.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

// Issue creates a signed token for the user.
func (i *TokenIssuer) Issue(user *User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(i.ttl)

	claims := Claims{
		UserID:   user.ID,
		Email:    user.Email,
		FullName: user.FullName,
		RoleID:   user.RoleID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "stockbar",
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, apperror.NewInternal(err)
	}
	return signed, expiresAt, nil
}

// Parse verifies a token and returns its claims.
func (i *TokenIssuer) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return i.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperror.NewUnauthorized("invalid or expired token")
	}
	return claims, nil
}
