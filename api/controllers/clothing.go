package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/knagase/wardrobe-api/api/responses"
	"github.com/knagase/wardrobe-api/api/validators"
	"github.com/knagase/wardrobe-api/internal/clothing"
	"github.com/knagase/wardrobe-api/internal/media"
	pkgerrors "github.com/knagase/wardrobe-api/pkg/errors"
	"github.com/knagase/wardrobe-api/pkg/logger"
	"github.com/knagase/wardrobe-api/pkg/pagination"
)

// roomUnassigned is the sentinel query value selecting items with no room.
const roomUnassigned = "null"

// parseListFilter builds the typed filter from the raw listing query.
func parseListFilter(r *http.Request) (clothing.ListFilter, error) {
	filter := clothing.ListFilter{
		Search: validators.SanitizeString(r.URL.Query().Get("search"), 255),
		Sort:   clothing.ParseSortField(r.URL.Query().Get("sort")),
		Order:  clothing.ParseSortOrder(r.URL.Query().Get("order")),
	}

	page, err := validators.ParseQueryInt(r, "page", 1, 1, 1<<30)
	if err != nil {
		return clothing.ListFilter{}, err
	}
	limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
	if err != nil {
		return clothing.ListFilter{}, err
	}
	filter.Page = pagination.Params{Page: page, Limit: limit}

	if raw := strings.TrimSpace(r.URL.Query().Get("roomId")); raw != "" {
		if raw == roomUnassigned {
			filter = filter.WithoutRoom()
		} else {
			roomID, err := validators.ParsePathUUID(raw, "roomId")
			if err != nil {
				return clothing.ListFilter{}, err
			}
			filter = filter.WithRoom(roomID)
		}
	}

	raw := strings.TrimSpace(r.URL.Query().Get("seasonIds"))
	if raw == "" {
		raw = strings.TrimSpace(r.URL.Query().Get("seasonId"))
	}
	if raw != "" {
		ids, err := validators.ParseQueryUUIDList(raw)
		if err != nil {
			return clothing.ListFilter{}, err
		}
		filter.SeasonIDs = ids
	}

	return filter, nil
}

// ClothingList returns a filtered, paginated page of the caller's items.
func ClothingList(svc clothing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "clothing service unavailable"))
			return
		}

		userID, err := callerID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		filter, err := parseListFilter(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		page, err := svc.ListClothing(ctx, userID, filter)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// ClothingGet returns one item owned by the caller.
func ClothingGet(svc clothing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "clothing service unavailable"))
			return
		}

		userID, err := callerID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		itemID, err := validators.ParsePathUUID(chi.URLParam(r, "clothingID"), "clothingID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		item, err := svc.GetClothing(ctx, userID, itemID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

// ClothingCreate adds an item. The endpoint accepts plain JSON, or multipart
// with a "data" JSON part plus an optional image file that is stored first.
func ClothingCreate(svc clothing.Service, mediaSvc media.Service, maxBytes int64, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "clothing service unavailable"))
			return
		}

		userID, err := callerID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var req clothing.CreateClothingRequest
		if isMultipart(r) {
			imageURL, err := decodeMultipartPayload(ctx, r, mediaSvc, maxBytes, &req)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			if imageURL != "" {
				req.ImageURL = &imageURL
			}
			if err := validators.ValidateStruct(&req); err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
		} else if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		created, err := svc.CreateClothing(ctx, userID, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// ClothingUpdate applies partial changes; explicit nulls clear fields. Like
// create, a multipart body may carry a replacement image.
func ClothingUpdate(svc clothing.Service, mediaSvc media.Service, maxBytes int64, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "clothing service unavailable"))
			return
		}

		userID, err := callerID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		itemID, err := validators.ParsePathUUID(chi.URLParam(r, "clothingID"), "clothingID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var req clothing.UpdateClothingRequest
		if isMultipart(r) {
			imageURL, err := decodeMultipartPayload(ctx, r, mediaSvc, maxBytes, &req)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			if imageURL != "" {
				req.ImageURL = clothing.Patch[string]{Set: true, Value: &imageURL}
			}
		} else if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		updated, err := svc.UpdateClothing(ctx, userID, itemID, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

// ClothingDelete removes an item and releases its stored image.
func ClothingDelete(svc clothing.Service, mediaSvc media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "clothing service unavailable"))
			return
		}

		userID, err := callerID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		itemID, err := validators.ParsePathUUID(chi.URLParam(r, "clothingID"), "clothingID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		deleted, err := svc.DeleteClothing(ctx, userID, itemID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if mediaSvc != nil && deleted.ImageURL != nil {
			if err := mediaSvc.RemoveByURL(ctx, *deleted.ImageURL); err != nil && logg != nil {
				logg.Warn(logg.WithField(ctx, "image_url", *deleted.ImageURL), "image cleanup failed")
			}
		}

		responses.WriteSuccess(w, map[string]string{"message": "clothing deleted"})
	}
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(strings.ToLower(r.Header.Get("Content-Type")), "multipart/form-data")
}

// decodeMultipartPayload reads the "data" JSON part into dest and, when an
// image file is attached, stores it and returns the public URL.
func decodeMultipartPayload(ctx context.Context, r *http.Request, mediaSvc media.Service, maxBytes int64, dest any) (string, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBytes+1)

	if err := r.ParseMultipartForm(maxBytes + 1); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart body")
	}

	if raw := r.FormValue("data"); raw != "" {
		if err := json.Unmarshal([]byte(raw), dest); err != nil {
			return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid data payload").
				WithDetails(map[string]any{"field": "data"})
		}
	}

	file, _, err := r.FormFile(imageFormField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid image part")
	}
	defer file.Close()

	if mediaSvc == nil {
		return "", pkgerrors.New(pkgerrors.CodeInternal, "media service unavailable")
	}
	return mediaSvc.SaveImage(ctx, file)
}
