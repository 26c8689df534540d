package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/knagase/wardrobe-api/internal/users"
	pkgAuth "github.com/knagase/wardrobe-api/pkg/auth"
	"github.com/knagase/wardrobe-api/pkg/config"
	pkgerrors "github.com/knagase/wardrobe-api/pkg/errors"
)

func setupAuthTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  username TEXT,
  avatar_url TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)

	return db
}

func newAuthService(t *testing.T, db *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		UserRepo: users.NewRepository(db),
		JWT: config.JWTConfig{
			AccessSecret:      "access-secret",
			RefreshSecret:     "refresh-secret",
			Issuer:            "wardrobe-api",
			AccessTTLMinutes:  15,
			RefreshTTLMinutes: 10080,
		},
		Password: config.PasswordConfig{},
	})
	require.NoError(t, err)
	return svc
}

func requireCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed, "expected typed error, got %v", err)
	require.Equal(t, code, typed.Code())
}

func TestRegisterIssuesTokens(t *testing.T) {
	svc := newAuthService(t, setupAuthTestDB(t))

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "User@Example.COM",
		Password: "hunter2secret",
		Username: "nagi",
	})
	require.NoError(t, err)
	require.Equal(t, "user@example.com", resp.User.Email, "email is stored lowercased")
	require.NotNil(t, resp.User.Username)
	require.Equal(t, "nagi", *resp.User.Username)
	require.NotEmpty(t, resp.Tokens.AccessToken)
	require.NotEmpty(t, resp.Tokens.RefreshToken)
	require.NotEqual(t, resp.Tokens.AccessToken, resp.Tokens.RefreshToken)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc := newAuthService(t, setupAuthTestDB(t))

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "user@example.com",
		Password: "short",
	})
	requireCode(t, err, pkgerrors.CodeValidation)
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	svc := newAuthService(t, setupAuthTestDB(t))

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "user@example.com",
		Password: "hunter2secret",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterRequest{
		Email:    "USER@example.com",
		Password: "otherpassword",
	})
	requireCode(t, err, pkgerrors.CodeConflict)
}

func TestLoginReturnsSameUser(t *testing.T) {
	svc := newAuthService(t, setupAuthTestDB(t))

	registered, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "user@example.com",
		Password: "hunter2secret",
	})
	require.NoError(t, err)

	loggedIn, err := svc.Login(context.Background(), LoginRequest{
		Email:    "user@example.com",
		Password: "hunter2secret",
	})
	require.NoError(t, err)
	require.Equal(t, registered.User.ID, loggedIn.User.ID)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc := newAuthService(t, setupAuthTestDB(t))

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "user@example.com",
		Password: "hunter2secret",
	})
	require.NoError(t, err)

	_, wrongPassword := svc.Login(context.Background(), LoginRequest{
		Email:    "user@example.com",
		Password: "not-the-password",
	})
	_, unknownEmail := svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "hunter2secret",
	})

	requireCode(t, wrongPassword, pkgerrors.CodeUnauthorized)
	requireCode(t, unknownEmail, pkgerrors.CodeUnauthorized)
	require.Equal(t, pkgerrors.As(wrongPassword).Message(), pkgerrors.As(unknownEmail).Message(),
		"wrong password and unknown email must be indistinguishable")
}

func TestRefreshMintsNewPair(t *testing.T) {
	svc := newAuthService(t, setupAuthTestDB(t))

	registered, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "user@example.com",
		Password: "hunter2secret",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), RefreshRequest{
		RefreshToken: registered.Tokens.RefreshToken,
	})
	require.NoError(t, err)
	require.Equal(t, registered.User.ID, refreshed.User.ID)
	require.NotEmpty(t, refreshed.Tokens.AccessToken)
	require.NotEmpty(t, refreshed.Tokens.RefreshToken)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc := newAuthService(t, setupAuthTestDB(t))

	registered, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "user@example.com",
		Password: "hunter2secret",
	})
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), RefreshRequest{
		RefreshToken: registered.Tokens.AccessToken,
	})
	requireCode(t, err, pkgerrors.CodeUnauthorized)
}

func TestRefreshRejectsDeletedUser(t *testing.T) {
	db := setupAuthTestDB(t)
	svc := newAuthService(t, db)

	registered, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "user@example.com",
		Password: "hunter2secret",
	})
	require.NoError(t, err)

	require.NoError(t, db.Exec("DELETE FROM users WHERE id = ?", registered.User.ID).Error)

	_, err = svc.Refresh(context.Background(), RefreshRequest{
		RefreshToken: registered.Tokens.RefreshToken,
	})
	requireCode(t, err, pkgerrors.CodeUnauthorized)
}

func TestRefreshRejectsForgedToken(t *testing.T) {
	svc := newAuthService(t, setupAuthTestDB(t))

	forged, err := pkgAuth.MintTokenPair(config.JWTConfig{
		AccessSecret:      "other-access",
		RefreshSecret:     "other-refresh",
		Issuer:            "wardrobe-api",
		AccessTTLMinutes:  15,
		RefreshTTLMinutes: 10080,
	}, time.Now(), pkgAuth.IdentityPayload{UserID: uuid.New(), Email: "user@example.com"})
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), RefreshRequest{
		RefreshToken: forged.RefreshToken,
	})
	requireCode(t, err, pkgerrors.CodeUnauthorized)
}
