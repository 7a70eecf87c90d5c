package auth

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/hanqt132-beep/kost-versi2/model"
	userrepo "github.com/hanqt132-beep/kost-versi2/repository/user"
	"github.com/hanqt132-beep/kost-versi2/util/hash"
)

type mockRepo struct {
	createFn     func(ctx context.Context, u *model.User) error
	byIdentityFn func(ctx context.Context, identity string) (*model.User, error)
	byIDFn       func(ctx context.Context, id int64) (*model.User, error)
	touchFn      func(ctx context.Context, id int64) error
}

var _ userrepo.Repo = (*mockRepo)(nil)

func (m *mockRepo) Create(ctx context.Context, u *model.User) error {
	if m.createFn == nil {
		return nil
	}
	return m.createFn(ctx, u)
}

func (m *mockRepo) ByIdentity(ctx context.Context, identity string) (*model.User, error) {
	if m.byIdentityFn == nil {
		return nil, sql.ErrNoRows
	}
	return m.byIdentityFn(ctx, identity)
}

func (m *mockRepo) ByID(ctx context.Context, id int64) (*model.User, error) {
	if m.byIDFn == nil {
		return nil, sql.ErrNoRows
	}
	return m.byIDFn(ctx, id)
}

func (m *mockRepo) TouchLastLogin(ctx context.Context, id int64) error {
	if m.touchFn == nil {
		return nil
	}
	return m.touchFn(ctx, id)
}

func mustHash(t *testing.T, plain string) string {
	t.Helper()

	h, err := hash.HashPassword(plain)
	require.NoError(t, err)
	return h
}

// --- tests ---

func TestRegister_Success(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		createFn: func(ctx context.Context, u *model.User) error {
			u.ID = 42
			return nil
		},
	}
	svc := New(m, "test-secret")

	u, tok, err := svc.Register(ctx, model.RegisterReq{
		Name:     "Budi Santoso",
		Username: "BudiS",
		Contact:  "Budi@Example.COM",
		Password: "supersecret",
	})
	require.NoError(t, err)
	require.NotNil(t, u)
	require.NotEmpty(t, tok)
	require.Equal(t, int64(42), u.ID)
	require.Equal(t, "budis", u.Username)
	require.Equal(t, "budi@example.com", u.Contact)
	require.Equal(t, "user", u.Role)
	require.NotEmpty(t, u.PasswordHash)
	require.NotEqual(t, "supersecret", u.PasswordHash)
}

func TestRegister_BadInput(t *testing.T) {
	ctx := context.Background()
	svc := New(&mockRepo{}, "test-secret")

	_, _, err := svc.Register(ctx, model.RegisterReq{
		Name:     " ",
		Username: "u",
		Contact:  "c@x.com",
		Password: "123",
	})
	require.Error(t, err)
	require.Equal(t, ErrBadInput, Code(err))
}

func TestRegister_UsernameTaken(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		createFn: func(ctx context.Context, u *model.User) error {
			return &pgconn.PgError{
				Code:           pgerrcode.UniqueViolation,
				ConstraintName: "users_username_key",
			}
		},
	}
	svc := New(m, "test-secret")

	_, _, err := svc.Register(ctx, model.RegisterReq{
		Name:     "Budi",
		Username: "budis",
		Contact:  "budi@example.com",
		Password: "supersecret",
	})
	require.Error(t, err)
	require.Equal(t, ErrUsernameTaken, Code(err))
}

func TestRegister_ContactTaken(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		createFn: func(ctx context.Context, u *model.User) error {
			return &pgconn.PgError{
				Code:           pgerrcode.UniqueViolation,
				ConstraintName: "users_contact_key",
			}
		},
	}
	svc := New(m, "test-secret")

	_, _, err := svc.Register(ctx, model.RegisterReq{
		Name:     "Budi",
		Username: "budis",
		Contact:  "budi@example.com",
		Password: "supersecret",
	})
	require.Error(t, err)
	require.Equal(t, ErrContactTaken, Code(err))
}

func TestRegister_CreateError(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		createFn: func(ctx context.Context, u *model.User) error {
			return errors.New("db down")
		},
	}
	svc := New(m, "test-secret")

	_, _, err := svc.Register(ctx, model.RegisterReq{
		Name:     "Budi",
		Username: "budis",
		Contact:  "budi@example.com",
		Password: "supersecret",
	})
	require.Error(t, err)
	require.Equal(t, ErrCode(""), Code(err))
}

func TestLogin_ByUsername(t *testing.T) {
	ctx := context.Background()
	pw := "supersecret"
	hashed := mustHash(t, pw)

	var touched int64
	m := &mockRepo{
		byIdentityFn: func(ctx context.Context, identity string) (*model.User, error) {
			require.Equal(t, "budis", identity)
			return &model.User{
				ID:           7,
				Username:     "budis",
				Contact:      "budi@example.com",
				PasswordHash: hashed,
				Role:         "user",
			}, nil
		},
		touchFn: func(ctx context.Context, id int64) error {
			touched = id
			return nil
		},
	}
	svc := New(m, "test-secret")

	u, tok, err := svc.Login(ctx, model.LoginReq{Identity: " budis ", Password: pw})
	require.NoError(t, err)
	require.NotNil(t, u)
	require.NotEmpty(t, tok)
	require.Equal(t, int64(7), u.ID)
	require.Equal(t, int64(7), touched)
}

func TestLogin_BadInput(t *testing.T) {
	ctx := context.Background()
	svc := New(&mockRepo{}, "test-secret")

	_, _, err := svc.Login(ctx, model.LoginReq{Identity: " ", Password: ""})
	require.Error(t, err)
	require.Equal(t, ErrBadInput, Code(err))
}

func TestLogin_UnknownIdentity(t *testing.T) {
	ctx := context.Background()
	svc := New(&mockRepo{}, "test-secret")

	_, _, err := svc.Login(ctx, model.LoginReq{Identity: "missing", Password: "whatever"})
	require.Error(t, err)
	require.Equal(t, ErrInvalidCreds, Code(err))
}

func TestLogin_WrongPassword(t *testing.T) {
	ctx := context.Background()
	hashed := mustHash(t, "correct-password")

	m := &mockRepo{
		byIdentityFn: func(ctx context.Context, identity string) (*model.User, error) {
			return &model.User{ID: 101, Username: "budis", PasswordHash: hashed, Role: "user"}, nil
		},
	}
	svc := New(m, "test-secret")

	_, _, err := svc.Login(ctx, model.LoginReq{Identity: "budis", Password: "wrong-password"})
	require.Error(t, err)
	require.Equal(t, ErrInvalidCreds, Code(err))
}

func TestCodeExtractor(t *testing.T) {
	require.Equal(t, ErrInvalidCreds, Code(makeErr(ErrInvalidCreds)))
	require.Equal(t, ErrCode(""), Code(errors.New("plain")))
}
