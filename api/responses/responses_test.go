package responses

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/knagase/wardrobe-api/pkg/errors"
	"github.com/knagase/wardrobe-api/pkg/types"
)

func TestWriteSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteSuccess(rec, map[string]string{"hello": "world"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	var envelope types.SuccessEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if !envelope.Success {
		t.Fatalf("success flag must be true")
	}
}

func TestWriteErrorMapsTypedCodes(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{pkgerrors.New(pkgerrors.CodeValidation, "name is required"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials"), http.StatusUnauthorized, "UNAUTHORIZED"},
		{pkgerrors.New(pkgerrors.CodeForbidden, "access denied"), http.StatusForbidden, "FORBIDDEN"},
		{pkgerrors.New(pkgerrors.CodeNotFound, "clothing not found"), http.StatusNotFound, "NOT_FOUND"},
		{pkgerrors.New(pkgerrors.CodeConflict, "email already registered"), http.StatusConflict, "CONFLICT"},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		WriteError(context.Background(), nil, rec, tt.err)

		if rec.Code != tt.status {
			t.Fatalf("expected status %d got %d", tt.status, rec.Code)
		}
		var envelope types.ErrorEnvelope
		if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
			t.Fatalf("decode envelope: %v", err)
		}
		if envelope.Success {
			t.Fatalf("success flag must be false on error")
		}
		if envelope.Error.Code != tt.code {
			t.Fatalf("expected code %s got %s", tt.code, envelope.Error.Code)
		}
	}
}

func TestWriteErrorHidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(context.Background(), nil, rec, errors.New("password column exploded"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", rec.Code)
	}
	var envelope types.ErrorEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.Error.Message != "internal server error" {
		t.Fatalf("internal detail leaked: %q", envelope.Error.Message)
	}
}
