package controllers

import (
	"net/http"

	"github.com/knagase/wardrobe-api/api/responses"
	"github.com/knagase/wardrobe-api/internal/seasons"
	pkgerrors "github.com/knagase/wardrobe-api/pkg/errors"
	"github.com/knagase/wardrobe-api/pkg/logger"
)

// SeasonsList returns the fixed season catalog. The endpoint is public; the
// catalog carries nothing user-specific.
func SeasonsList(repo *seasons.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if repo == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "season catalog unavailable"))
			return
		}

		rows, err := repo.List(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list seasons"))
			return
		}
		responses.WriteSuccess(w, seasons.ToDTOs(rows))
	}
}
