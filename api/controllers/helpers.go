package controllers

import (
	"context"

	"github.com/google/uuid"

	"github.com/knagase/wardrobe-api/api/middleware"
	pkgerrors "github.com/knagase/wardrobe-api/pkg/errors"
)

// callerID extracts the authenticated user's id seeded by the auth middleware.
func callerID(ctx context.Context) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(ctx)
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing user identity")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user identity")
	}
	return id, nil
}
