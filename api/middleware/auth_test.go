package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	pkgAuth "github.com/knagase/wardrobe-api/pkg/auth"
	"github.com/knagase/wardrobe-api/pkg/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		AccessSecret:      "access-secret",
		RefreshSecret:     "refresh-secret",
		Issuer:            "wardrobe-api",
		AccessTTLMinutes:  15,
		RefreshTTLMinutes: 10080,
	}
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	called := false
	handler := Auth(testJWTConfig(), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/clothing", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, called, "handler must not run without credentials")
}

func TestAuthRejectsMalformedHeader(t *testing.T) {
	cfg := testJWTConfig()
	pair, err := pkgAuth.MintTokenPair(cfg, time.Now(), pkgAuth.IdentityPayload{
		UserID: uuid.New(),
		Email:  "user@example.com",
	})
	require.NoError(t, err)

	cases := []string{
		pair.AccessToken,              // scheme missing
		"bearer " + pair.AccessToken,  // lowercase scheme
		"Token " + pair.AccessToken,   // wrong scheme
		"Bearer",                      // token missing
		"Bearer a b",                  // extra segment
		"Bearer  " + pair.AccessToken, // doubled separator
		"Bearer\t" + pair.AccessToken, // tab separator
	}

	for _, header := range cases {
		handler := Auth(cfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatalf("handler must not run for header %q", header)
		}))

		req := httptest.NewRequest(http.MethodGet, "/api/clothing", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestAuthRejectsRefreshTokenOnProtectedRoute(t *testing.T) {
	cfg := testJWTConfig()
	pair, err := pkgAuth.MintTokenPair(cfg, time.Now(), pkgAuth.IdentityPayload{
		UserID: uuid.New(),
		Email:  "user@example.com",
	})
	require.NoError(t, err)

	handler := Auth(cfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("refresh token must not authenticate requests")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/clothing", nil)
	req.Header.Set("Authorization", "Bearer "+pair.RefreshToken)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthSeedsContext(t *testing.T) {
	cfg := testJWTConfig()
	userID := uuid.New()
	pair, err := pkgAuth.MintTokenPair(cfg, time.Now(), pkgAuth.IdentityPayload{
		UserID: userID,
		Email:  "user@example.com",
	})
	require.NoError(t, err)

	var gotUserID, gotEmail string
	handler := Auth(cfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = UserIDFromContext(r.Context())
		gotEmail = EmailFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, userID.String(), gotUserID)
	require.Equal(t, "user@example.com", gotEmail)
}

func TestAuthRejectsExpiredToken(t *testing.T) {
	cfg := testJWTConfig()
	pair, err := pkgAuth.MintTokenPair(cfg, time.Now().Add(-24*time.Hour), pkgAuth.IdentityPayload{
		UserID: uuid.New(),
		Email:  "user@example.com",
	})
	require.NoError(t, err)

	handler := Auth(cfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("expired token must not authenticate requests")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/clothing", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
