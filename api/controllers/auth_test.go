package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/knagase/wardrobe-api/internal/auth"
	"github.com/knagase/wardrobe-api/internal/users"
	pkgAuth "github.com/knagase/wardrobe-api/pkg/auth"
	pkgerrors "github.com/knagase/wardrobe-api/pkg/errors"
)

type stubAuthService struct {
	resp auth.AuthResponse
	err  error
}

func (s stubAuthService) Register(_ context.Context, _ auth.RegisterRequest) (auth.AuthResponse, error) {
	return s.resp, s.err
}

func (s stubAuthService) Login(_ context.Context, _ auth.LoginRequest) (auth.AuthResponse, error) {
	return s.resp, s.err
}

func (s stubAuthService) Refresh(_ context.Context, _ auth.RefreshRequest) (auth.AuthResponse, error) {
	return s.resp, s.err
}

func TestRegisterSuccess(t *testing.T) {
	resp := auth.AuthResponse{
		User:   users.UserDTO{ID: uuid.New(), Email: "user@example.com"},
		Tokens: pkgAuth.TokenPair{AccessToken: "access", RefreshToken: "refresh"},
	}
	handler := Register(stubAuthService{resp: resp}, nil)

	body := `{"email":"user@example.com","password":"hunter2secret"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data auth.AuthResponse `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Tokens.AccessToken != "access" {
		t.Fatalf("token pair missing from response: %+v", envelope.Data)
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	handler := Register(stubAuthService{}, nil)

	body := `{"email":"user@example.com","password":"short"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestRegisterRejectsUnknownFields(t *testing.T) {
	handler := Register(stubAuthService{}, nil)

	body := `{"email":"user@example.com","password":"hunter2secret","admin":true}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	handler := Login(stubAuthService{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")}, nil)

	body := `{"email":"user@example.com","password":"wrong-password"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}

	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error.Message != "invalid credentials" {
		t.Fatalf("unexpected message %q", envelope.Error.Message)
	}
}

func TestRefreshRequiresToken(t *testing.T) {
	handler := Refresh(stubAuthService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestLogoutAlwaysSucceeds(t *testing.T) {
	handler := Logout(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
}
