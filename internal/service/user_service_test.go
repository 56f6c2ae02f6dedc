package service

import (
	"context"
	"testing"

	dom "github.com/vbman2012/project1CS50/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------- test fakes --------

type fakeUserRepo struct {
	users  map[string]dom.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]dom.User{}, nextID: 1}
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (dom.User, error) {
	u, ok := f.users[username]
	if !ok {
		return dom.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, username, passwordHash string) (dom.User, error) {
	if _, ok := f.users[username]; ok {
		return dom.User{}, &pgconn.PgError{Code: "23505"}
	}
	u := dom.User{ID: f.nextID, Username: username, PasswordHash: passwordHash}
	f.nextID++
	f.users[username] = u
	return u, nil
}

// -------- tests --------

func TestRegister_DuplicateUsername(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "secret")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice", "other")
	assert.ErrorIs(t, err, ErrUsernameTaken)
	assert.Len(t, repo.users, 1, "no second row may be inserted")
}

func TestRegister_EmptyFields(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, "", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Register(ctx, "alice", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterThenLogin_RoundTrip(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)
	ctx := context.Background()

	created, err := svc.Register(ctx, "bob", "hunter2")
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	assert.NotEqual(t, "hunter2", created.PasswordHash, "password must be stored hashed")

	got, err := svc.ValidateCredentials(ctx, "bob", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestValidateCredentials_EnumerationResistance(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)
	ctx := context.Background()

	_, err := svc.Register(ctx, "carol", "secret")
	require.NoError(t, err)

	_, errUnknown := svc.ValidateCredentials(ctx, "nobody", "secret")
	_, errWrongPw := svc.ValidateCredentials(ctx, "carol", "wrong")

	// Both failure modes must be indistinguishable to the caller.
	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPw, ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrongPw.Error())
}
