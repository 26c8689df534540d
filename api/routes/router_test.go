package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	authsvc "github.com/knagase/wardrobe-api/internal/auth"
	"github.com/knagase/wardrobe-api/internal/clothing"
	pkgAuth "github.com/knagase/wardrobe-api/pkg/auth"
	"github.com/knagase/wardrobe-api/pkg/config"
)

type stubAuth struct{}

func (stubAuth) Register(_ context.Context, _ authsvc.RegisterRequest) (authsvc.AuthResponse, error) {
	return authsvc.AuthResponse{}, nil
}

func (stubAuth) Login(_ context.Context, _ authsvc.LoginRequest) (authsvc.AuthResponse, error) {
	return authsvc.AuthResponse{}, nil
}

func (stubAuth) Refresh(_ context.Context, _ authsvc.RefreshRequest) (authsvc.AuthResponse, error) {
	return authsvc.AuthResponse{}, nil
}

type stubClothing struct{}

func (stubClothing) ListClothing(_ context.Context, _ uuid.UUID, _ clothing.ListFilter) (clothing.ClothingPageDTO, error) {
	return clothing.ClothingPageDTO{Items: []clothing.ClothingDTO{}}, nil
}

func (stubClothing) GetClothing(_ context.Context, _, _ uuid.UUID) (clothing.ClothingDTO, error) {
	return clothing.ClothingDTO{}, nil
}

func (stubClothing) CreateClothing(_ context.Context, _ uuid.UUID, _ clothing.CreateClothingRequest) (clothing.ClothingDTO, error) {
	return clothing.ClothingDTO{}, nil
}

func (stubClothing) UpdateClothing(_ context.Context, _, _ uuid.UUID, _ clothing.UpdateClothingRequest) (clothing.ClothingDTO, error) {
	return clothing.ClothingDTO{}, nil
}

func (stubClothing) DeleteClothing(_ context.Context, _, _ uuid.UUID) (clothing.ClothingDTO, error) {
	return clothing.ClothingDTO{}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "dev", Port: "4000"},
		JWT: config.JWTConfig{
			AccessSecret:      "access-secret",
			RefreshSecret:     "refresh-secret",
			Issuer:            "wardrobe-api",
			AccessTTLMinutes:  15,
			RefreshTTLMinutes: 10080,
		},
		Media: config.MediaConfig{
			PublicPath:     "/uploads",
			MaxUploadBytes: 1024 * 1024,
		},
		CORS: config.CORSConfig{AllowedOrigins: []string{"*"}},
	}
}

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	return NewRouter(RouterParams{
		Config:          testConfig(),
		Registry:        prometheus.NewRegistry(),
		AuthService:     stubAuth{},
		ClothingService: stubClothing{},
	})
}

func TestHealthRoutesArePublic(t *testing.T) {
	router := testRouter(t)

	for _, path := range []string{"/health/live", "/health/ready"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestMetricsRouteIsPublic(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestProtectedRoutesRejectAnonymous(t *testing.T) {
	router := testRouter(t)

	protected := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/users/me"},
		{http.MethodGet, "/api/rooms"},
		{http.MethodGet, "/api/clothing"},
		{http.MethodPost, "/api/clothing/upload"},
		{http.MethodPut, "/api/users/me/avatar"},
	}

	for _, route := range protected {
		req := httptest.NewRequest(route.method, route.path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", route.method, route.path)
	}
}

func TestProtectedRouteAcceptsBearerToken(t *testing.T) {
	router := testRouter(t)

	cfg := testConfig()
	pair, err := pkgAuth.MintTokenPair(cfg.JWT, time.Now(), pkgAuth.IdentityPayload{
		UserID: uuid.New(),
		Email:  "user@example.com",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/clothing", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestAuthRoutesArePublic(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}
