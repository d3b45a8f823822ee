package services

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"thesis-hand/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	db, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "services.db"))
	require.NoError(t, err)
	require.NoError(t, storage.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return storage.NewStore(db)
}

func TestRegisterLoginLogout(t *testing.T) {
	ctx := context.Background()
	auth := NewAuthService(newTestStore(t), time.Hour, zap.NewNop())

	u, token, err := auth.Register(ctx, RegisterInput{Email: "Ada@Example.org", Password: "secret1", FirstName: "Ada", LastName: "L"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotEqual(t, "secret1", u.PasswordHash)

	_, _, err = auth.Register(ctx, RegisterInput{Email: "ada@example.org", Password: "other12"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, _, err = auth.Login(ctx, "ada@example.org", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = auth.Login(ctx, "nobody@example.org", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	logged, token2, err := auth.Login(ctx, "ADA@example.org", "secret1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, logged.ID)

	me, err := auth.Authenticate(ctx, token2)
	require.NoError(t, err)
	assert.Equal(t, u.ID, me.ID)

	require.NoError(t, auth.Logout(ctx, token2))
	_, err = auth.Authenticate(ctx, token2)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = auth.Authenticate(ctx, "")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthenticateRejectsExpiredSession(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	auth := NewAuthService(store, time.Minute, zap.NewNop())

	_, token, err := auth.Register(ctx, RegisterInput{Email: "a@b.c", Password: "secret1"})
	require.NoError(t, err)

	auth.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = auth.Authenticate(ctx, token)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = store.GetSessionByTokenHash(ctx, hashToken(token))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRegisterRejectsPasswordsBcryptCannotHash(t *testing.T) {
	ctx := context.Background()
	auth := NewAuthService(newTestStore(t), time.Hour, zap.NewNop())

	// 40 Zeichen, aber 80 Bytes
	_, _, err := auth.Register(ctx, RegisterInput{Email: "long@example.org", Password: strings.Repeat("ä", 40)})
	assert.ErrorIs(t, err, ErrPasswordTooLong)

	_, _, err = auth.Register(ctx, RegisterInput{Email: "edge@example.org", Password: strings.Repeat("p", 72)})
	require.NoError(t, err)
	_, _, err = auth.Login(ctx, "edge@example.org", strings.Repeat("p", 72))
	assert.NoError(t, err)
}
