package controllers

import (
	"net/http"

	"github.com/amara-cosmetics/amara-backend/api/responses"
	statssvc "github.com/amara-cosmetics/amara-backend/internal/stats"
	pkgerrors "github.com/amara-cosmetics/amara-backend/pkg/errors"
	"github.com/amara-cosmetics/amara-backend/pkg/logger"
)

// AdminStats serves the dashboard aggregates for the admin console.
func AdminStats(svc statssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "stats service unavailable"))
			return
		}

		dashboard, err := svc.Dashboard(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"stats": dashboard})
	}
}
