package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/nicole276/Api-Stockbar/internal/core/apperror"
)

type fakeUserRepo struct {
	nextID int64
	users  map[int64]*User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: make(map[int64]*User)}
}

func (r *fakeUserRepo) Create(_ context.Context, u *User) error {
	u.ID = r.nextID
	r.nextID++
	copied := *u
	r.users[u.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, apperror.NewNotFound("user", id)
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperror.NewNotFound("user", email)
}

func (r *fakeUserRepo) List(_ context.Context) ([]*User, error) {
	out := make([]*User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id int64, hash string) error {
	u, ok := r.users[id]
	if !ok {
		return apperror.NewNotFound("user", id)
	}
	u.PasswordHash = hash
	return nil
}

type fakeRoleRepo struct {
	roles map[int64]*Role
}

func (r *fakeRoleRepo) Create(_ context.Context, role *Role) error {
	role.ID = int64(len(r.roles) + 1)
	r.roles[role.ID] = role
	return nil
}

func (r *fakeRoleRepo) GetByID(_ context.Context, id int64) (*Role, error) {
	role, ok := r.roles[id]
	if !ok {
		return nil, apperror.NewNotFound("role", id)
	}
	return role, nil
}

func (r *fakeRoleRepo) List(_ context.Context) ([]*Role, error) {
	out := make([]*Role, 0, len(r.roles))
	for _, role := range r.roles {
		out = append(out, role)
	}
	return out, nil
}

type fakeCodeStore struct {
	codes map[string]string
}

func (s *fakeCodeStore) Set(_ context.Context, email, code string) error {
	s.codes[email] = code
	return nil
}

func (s *fakeCodeStore) Consume(_ context.Context, email, code string) (bool, error) {
	stored, ok := s.codes[email]
	if !ok || stored != code {
		return false, nil
	}
	delete(s.codes, email)
	return true, nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func setup(t *testing.T) (*Service, *fakeUserRepo, *fakeCodeStore) {
	t.Helper()
	users := newFakeUserRepo()
	roles := &fakeRoleRepo{roles: map[int64]*Role{1: {ID: 1, Name: "admin"}}}
	codes := &fakeCodeStore{codes: make(map[string]string)}
	issuer := NewTokenIssuer("test-secret", time.Hour)
	return NewService(users, roles, codes, issuer, passthroughTxManager{}), users, codes
}

func seedUser(t *testing.T, users *fakeUserRepo, email, password string) *User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &User{FullName: "Test User", Email: email, PasswordHash: string(hash), RoleID: 1, Active: true}
	require.NoError(t, users.Create(context.Background(), u))
	return u
}

func TestLogin_Success(t *testing.T) {
	svc, users, _ := setup(t)
	seedUser(t, users, "ana@example.com", "hunter2pass")

	result, err := svc.Login(context.Background(), "Ana@Example.com ", "hunter2pass")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "ana@example.com", result.User.Email)

	claims, err := svc.ParseToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, claims.UserID)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, users, _ := setup(t)
	seedUser(t, users, "ana@example.com", "hunter2pass")

	_, err := svc.Login(context.Background(), "ana@example.com", "wrong")
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)
}

func TestLogin_UnknownEmailSameError(t *testing.T) {
	svc, _, _ := setup(t)

	_, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeUnauthorized, appErr.Code, "unknown accounts must not be distinguishable")
}

func TestLogin_DisabledAccount(t *testing.T) {
	svc, users, _ := setup(t)
	u := seedUser(t, users, "ana@example.com", "hunter2pass")
	users.users[u.ID].Active = false

	_, err := svc.Login(context.Background(), "ana@example.com", "hunter2pass")
	require.Error(t, err)
}

func TestLogin_LegacyPlaintextUpgraded(t *testing.T) {
	svc, users, _ := setup(t)
	u := &User{FullName: "Old User", Email: "old@example.com", PasswordHash: "plaintextpw", RoleID: 1, Active: true}
	require.NoError(t, users.Create(context.Background(), u))

	result, err := svc.Login(context.Background(), "old@example.com", "plaintextpw")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)

	stored := users.users[u.ID].PasswordHash
	assert.True(t, strings.HasPrefix(stored, "$2"), "plaintext password must be upgraded to bcrypt")
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte("plaintextpw")))

	// Second login goes through the bcrypt path.
	_, err = svc.Login(context.Background(), "old@example.com", "plaintextpw")
	require.NoError(t, err)
}

func TestCreateUser(t *testing.T) {
	svc, users, _ := setup(t)

	u, err := svc.CreateUser(context.Background(), &User{
		FullName: "New User",
		Email:    "New@Example.com",
		RoleID:   1,
	}, "longenoughpw")
	require.NoError(t, err)

	assert.Equal(t, "new@example.com", u.Email)
	assert.True(t, u.Active)
	assert.True(t, strings.HasPrefix(u.PasswordHash, "$2"))
	assert.Len(t, users.users, 1)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	svc, users, _ := setup(t)
	seedUser(t, users, "ana@example.com", "hunter2pass")

	_, err := svc.CreateUser(context.Background(), &User{
		FullName: "Other",
		Email:    "ana@example.com",
		RoleID:   1,
	}, "longenoughpw")
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeDuplicate, appErr.Code)
}

func TestCreateUser_Validation(t *testing.T) {
	svc, _, _ := setup(t)

	_, err := svc.CreateUser(context.Background(), &User{FullName: "X", Email: "bad-email", RoleID: 1}, "longenoughpw")
	require.Error(t, err)

	_, err = svc.CreateUser(context.Background(), &User{FullName: "X", Email: "x@example.com", RoleID: 1}, "short")
	require.Error(t, err)

	_, err = svc.CreateUser(context.Background(), &User{FullName: "X", Email: "x@example.com", RoleID: 99}, "longenoughpw")
	assert.True(t, apperror.IsNotFound(err), "unknown role must be rejected")
}

func TestPasswordReset_RoundTrip(t *testing.T) {
	svc, users, codes := setup(t)
	u := seedUser(t, users, "ana@example.com", "hunter2pass")

	code, err := svc.RequestPasswordReset(context.Background(), "ana@example.com")
	require.NoError(t, err)
	require.Len(t, code, 6)
	assert.Equal(t, code, codes.codes["ana@example.com"])

	err = svc.ConfirmPasswordReset(context.Background(), "ana@example.com", code, "brandnewpass")
	require.NoError(t, err)

	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(users.users[u.ID].PasswordHash), []byte("brandnewpass")))

	// Codes are single use.
	err = svc.ConfirmPasswordReset(context.Background(), "ana@example.com", code, "anotherpass1")
	require.Error(t, err)
}

func TestPasswordReset_UnknownEmailSilent(t *testing.T) {
	svc, _, codes := setup(t)

	code, err := svc.RequestPasswordReset(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Empty(t, code)
	assert.Empty(t, codes.codes)
}

func TestPasswordReset_WrongCode(t *testing.T) {
	svc, users, _ := setup(t)
	seedUser(t, users, "ana@example.com", "hunter2pass")

	_, err := svc.RequestPasswordReset(context.Background(), "ana@example.com")
	require.NoError(t, err)

	err = svc.ConfirmPasswordReset(context.Background(), "ana@example.com", "000000", "brandnewpass")
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)
}
