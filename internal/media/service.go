package media

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/knagase/wardrobe-api/pkg/config"
	pkgerrors "github.com/knagase/wardrobe-api/pkg/errors"
)

// allowedImageTypes maps sniffed mime types to the extension stored on disk.
// The client-supplied filename and content type are never trusted.
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// Service stores uploaded images and hands back their public URLs.
type Service interface {
	SaveImage(ctx context.Context, body io.Reader) (string, error)
	RemoveByURL(ctx context.Context, publicURL string) error
}

type service struct {
	storage    Storage
	publicPath string
	maxBytes   int64
}

func NewService(storage Storage, cfg config.MediaConfig) (Service, error) {
	if storage == nil {
		return nil, fmt.Errorf("storage required")
	}
	publicPath := strings.TrimSuffix(cfg.PublicPath, "/")
	if publicPath == "" {
		return nil, fmt.Errorf("public path required")
	}
	maxBytes := cfg.MaxUploadBytes
	if maxBytes <= 0 {
		maxBytes = 5 * 1024 * 1024
	}
	return &service{
		storage:    storage,
		publicPath: publicPath,
		maxBytes:   maxBytes,
	}, nil
}

// SaveImage reads the upload, verifies it is an allowed image by sniffing its
// bytes, and stores it under a fresh uuid name.
func (s *service) SaveImage(ctx context.Context, body io.Reader) (string, error) {
	if body == nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "image body is required")
	}

	// Read one byte past the cap to tell "exactly at the limit" from "over it".
	data, err := io.ReadAll(io.LimitReader(body, s.maxBytes+1))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "read upload")
	}
	if len(data) == 0 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "image body is empty")
	}
	if int64(len(data)) > s.maxBytes {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "image exceeds the maximum upload size").
			WithDetails(map[string]any{"maxBytes": s.maxBytes})
	}

	detected := mimetype.Detect(data)
	ext, ok := allowedImageTypes[detected.String()]
	if !ok {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "unsupported image type").
			WithDetails(map[string]any{"detected": detected.String()})
	}

	name := newObjectName(ext)
	if err := s.storage.Save(ctx, name, data); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store image")
	}

	return s.publicPath + "/" + name, nil
}

// RemoveByURL deletes a stored image given the public URL previously returned
// by SaveImage. URLs outside the public path are ignored.
func (s *service) RemoveByURL(ctx context.Context, publicURL string) error {
	publicURL = strings.TrimSpace(publicURL)
	if publicURL == "" {
		return nil
	}
	if !strings.HasPrefix(publicURL, s.publicPath+"/") {
		return nil
	}
	name := path.Base(publicURL)
	if name == "" || name == "." || name == "/" {
		return nil
	}
	if err := s.storage.Remove(ctx, name); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "remove image")
	}
	return nil
}
