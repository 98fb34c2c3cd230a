package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/solsticegems/solstice-backend/api/responses"
	catalogsvc "github.com/solsticegems/solstice-backend/internal/catalog"
	"github.com/solsticegems/solstice-backend/pkg/enums"
	pkgerrors "github.com/solsticegems/solstice-backend/pkg/errors"
	"github.com/solsticegems/solstice-backend/pkg/logger"
	"github.com/solsticegems/solstice-backend/pkg/metrics"
)

// ListProducts serves the storefront category listing. The response is the
// flat {products,total,page,totalPages} shape the browse clients consume.
func ListProducts(svc catalogsvc.Service, httpMetrics *metrics.HTTPMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		category, err := enums.ParseProductCategory(chi.URLParam(r, "category"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "unknown category"))
			return
		}
		subcategory := chi.URLParam(r, "subcategory")

		result, err := svc.List(r.Context(), category, subcategory, r.URL.Query())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if httpMetrics != nil {
			mode := "fresh"
			if page, convErr := strconv.Atoi(r.URL.Query().Get("page")); convErr == nil && page > 1 {
				mode = "more"
			}
			httpMetrics.IncCatalogFetch(category.String(), mode)
		}

		responses.WriteRaw(w, http.StatusOK, result)
	}
}

// GetProductDetail serves one product's full display surface.
func GetProductDetail(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		detail, err := svc.GetDetail(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}
