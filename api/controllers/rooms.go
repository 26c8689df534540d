package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/knagase/wardrobe-api/api/responses"
	"github.com/knagase/wardrobe-api/api/validators"
	"github.com/knagase/wardrobe-api/internal/rooms"
	pkgerrors "github.com/knagase/wardrobe-api/pkg/errors"
	"github.com/knagase/wardrobe-api/pkg/logger"
)

// RoomsList returns the caller's rooms in display order.
func RoomsList(svc rooms.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "room service unavailable"))
			return
		}

		userID, err := callerID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		listed, err := svc.ListRooms(ctx, userID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, listed)
	}
}

// RoomsGet returns one room owned by the caller.
func RoomsGet(svc rooms.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "room service unavailable"))
			return
		}

		userID, err := callerID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		roomID, err := validators.ParsePathUUID(chi.URLParam(r, "roomID"), "roomID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		room, err := svc.GetRoom(ctx, userID, roomID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, room)
	}
}

// RoomsCreate adds a room for the caller.
func RoomsCreate(svc rooms.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "room service unavailable"))
			return
		}

		userID, err := callerID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var req rooms.CreateRoomRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		created, err := svc.CreateRoom(ctx, userID, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// RoomsUpdate applies partial changes to a room the caller owns.
func RoomsUpdate(svc rooms.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "room service unavailable"))
			return
		}

		userID, err := callerID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		roomID, err := validators.ParsePathUUID(chi.URLParam(r, "roomID"), "roomID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var req rooms.UpdateRoomRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		updated, err := svc.UpdateRoom(ctx, userID, roomID, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

// RoomsDelete removes a room; its clothing becomes unassigned.
func RoomsDelete(svc rooms.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "room service unavailable"))
			return
		}

		userID, err := callerID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		roomID, err := validators.ParsePathUUID(chi.URLParam(r, "roomID"), "roomID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.DeleteRoom(ctx, userID, roomID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"message": "room deleted"})
	}
}
