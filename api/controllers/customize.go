package controllers

import (
	"net/http"

	"github.com/solsticegems/solstice-backend/api/responses"
	customizesvc "github.com/solsticegems/solstice-backend/internal/customize"
	pkgerrors "github.com/solsticegems/solstice-backend/pkg/errors"
	"github.com/solsticegems/solstice-backend/pkg/logger"
)

// CompleteCustomization prices a fully chosen setting+stone pair. The flow
// parameters arrive in the query string exactly as they travel through the
// storefront URLs.
func CompleteCustomization(svc customizesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customize service unavailable"))
			return
		}
		quote, err := svc.Complete(r.Context(), r.URL.Query())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quote)
	}
}
