package controllers

import (
	"mime/multipart"
	"net/http"

	"github.com/knagase/wardrobe-api/api/responses"
	"github.com/knagase/wardrobe-api/internal/media"
	pkgerrors "github.com/knagase/wardrobe-api/pkg/errors"
	"github.com/knagase/wardrobe-api/pkg/logger"
)

// imageFormField is the multipart field carrying the uploaded file.
const imageFormField = "image"

// openImagePart pulls the image file out of a multipart request. The size cap
// applies to the whole request body, so an oversized upload fails here rather
// than filling the disk.
func openImagePart(r *http.Request, maxBytes int64) (multipart.File, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBytes+1)

	if err := r.ParseMultipartForm(maxBytes + 1); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart body")
	}

	file, _, err := r.FormFile(imageFormField)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "image file is required").
			WithDetails(map[string]any{"field": imageFormField})
	}
	return file, nil
}

// UploadImage stores a standalone image and returns its public URL. Clients
// use this to stage an image before creating or updating an item.
func UploadImage(mediaSvc media.Service, maxBytes int64, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if mediaSvc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "media service unavailable"))
			return
		}

		if _, err := callerID(ctx); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		file, err := openImagePart(r, maxBytes)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		defer file.Close()

		url, err := mediaSvc.SaveImage(ctx, file)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]string{"url": url})
	}
}
