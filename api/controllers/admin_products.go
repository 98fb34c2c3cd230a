package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/solsticegems/solstice-backend/api/responses"
	"github.com/solsticegems/solstice-backend/api/validators"
	inventorysvc "github.com/solsticegems/solstice-backend/internal/inventory"
	mediasvc "github.com/solsticegems/solstice-backend/internal/media"
	"github.com/solsticegems/solstice-backend/pkg/enums"
	pkgerrors "github.com/solsticegems/solstice-backend/pkg/errors"
	"github.com/solsticegems/solstice-backend/pkg/logger"
)

const maxSearchLen = 120

// AdminListProducts pages the back-office catalog with search and sorting.
func AdminListProducts(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		category, err := adminCategory(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		page, err := validators.ParseQueryInt(r, "page", 1, 1, 100000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", 0, 1, 100)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		available, err := validators.ParseQueryBool(r, "isAvailable")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), inventorysvc.ListQuery{
			Page:        page,
			Limit:       limit,
			Search:      validators.SanitizeString(r.URL.Query().Get("search"), maxSearchLen),
			SortBy:      validators.SanitizeString(r.URL.Query().Get("sortBy"), 40),
			SortOrder:   validators.SanitizeString(r.URL.Query().Get("sortOrder"), 4),
			Category:    category,
			IsAvailable: available,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteRaw(w, http.StatusOK, result)
	}
}

// AdminGetProduct returns one product for the back-office edit view.
func AdminGetProduct(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}
		dto, err := svc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// AdminCreateProduct creates a catalog row, accepting JSON or multipart
// (files under "images" are uploaded before the row is created).
func AdminCreateProduct(svc inventorysvc.Service, media mediasvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}
		category, err := adminCategory(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := decodeProductInput(r, media, category)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dto, err := svc.Create(r.Context(), *input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// AdminUpdateProduct replaces a catalog row.
func AdminUpdateProduct(svc inventorysvc.Service, media mediasvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}
		category, err := adminCategory(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := decodeProductInput(r, media, category)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dto, err := svc.Update(r.Context(), chi.URLParam(r, "id"), *input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// AdminDeleteProduct removes a catalog row.
func AdminDeleteProduct(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}
		if err := svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

type availabilityRequest struct {
	IsAvailable *bool `json:"isAvailable" validate:"required"`
}

// AdminSetAvailability toggles whether a product appears in the storefront.
func AdminSetAvailability(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}
		var payload availabilityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dto, err := svc.SetAvailability(r.Context(), chi.URLParam(r, "id"), *payload.IsAvailable)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

type adminProductRequest struct {
	SKU            string   `json:"sku" validate:"required"`
	Title          string   `json:"title" validate:"required"`
	Subtitle       *string  `json:"subtitle,omitempty"`
	Description    *string  `json:"description,omitempty"`
	Shape          *string  `json:"shape,omitempty"`
	Color          *string  `json:"color,omitempty"`
	Clarity        *string  `json:"clarity,omitempty"`
	Cut            *string  `json:"cut,omitempty"`
	StoneType      *string  `json:"stoneType,omitempty"`
	Style          *string  `json:"style,omitempty"`
	Metal          *string  `json:"metal,omitempty"`
	Carat          *string  `json:"carat,omitempty"`
	PriceCents     int      `json:"priceCents" validate:"required,min=1"`
	SalePriceCents *int     `json:"salePriceCents,omitempty" validate:"omitempty,min=1"`
	IsAvailable    *bool    `json:"isAvailable,omitempty"`
	IsFeatured     *bool    `json:"isFeatured,omitempty"`
	Tags           []string `json:"tags,omitempty"`
	MediaIDs       []string `json:"mediaIds,omitempty" validate:"omitempty,dive,uuid"`
}

func (p adminProductRequest) toInput(category enums.ProductCategory) (*inventorysvc.ProductInput, error) {
	input := &inventorysvc.ProductInput{
		Category:       category,
		SKU:            p.SKU,
		Title:          p.Title,
		Subtitle:       p.Subtitle,
		Description:    p.Description,
		Shape:          p.Shape,
		Color:          p.Color,
		Clarity:        p.Clarity,
		Cut:            p.Cut,
		StoneType:      p.StoneType,
		Style:          p.Style,
		Metal:          p.Metal,
		PriceCents:     p.PriceCents,
		SalePriceCents: p.SalePriceCents,
		IsAvailable:    p.IsAvailable,
		IsFeatured:     p.IsFeatured,
		Tags:           p.Tags,
		MediaIDs:       p.MediaIDs,
	}
	if p.Carat != nil {
		carat, err := decimal.NewFromString(strings.TrimSpace(*p.Carat))
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid carat weight")
		}
		input.CaratWeight = &carat
	}
	return input, nil
}

// decodeProductInput accepts a JSON body, or multipart form data whose
// "payload" part carries the same JSON plus "images" file parts that are
// uploaded before the row is written.
func decodeProductInput(r *http.Request, media mediasvc.Service, category enums.ProductCategory) (*inventorysvc.ProductInput, error) {
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "multipart/form-data") {
		var payload adminProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			return nil, err
		}
		return payload.toInput(category)
	}

	if media == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "media service unavailable")
	}
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form")
	}

	var payload adminProductRequest
	raw := r.FormValue("payload")
	if raw == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payload part required")
	}
	if err := validators.DecodeJSONString(raw, &payload); err != nil {
		return nil, err
	}
	input, err := payload.toInput(category)
	if err != nil {
		return nil, err
	}

	for _, header := range r.MultipartForm.File["images"] {
		file, err := header.Open()
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read image part")
		}
		asset, err := media.UploadImage(r.Context(), mediasvc.UploadInput{
			FileName:  header.Filename,
			MimeType:  header.Header.Get("Content-Type"),
			SizeBytes: header.Size,
			Body:      file,
		})
		file.Close()
		if err != nil {
			return nil, err
		}
		input.MediaIDs = append(input.MediaIDs, asset.ID.String())
	}
	return input, nil
}

func adminCategory(r *http.Request) (enums.ProductCategory, error) {
	category, err := enums.ParseProductCategory(chi.URLParam(r, "category"))
	if err != nil {
		return "", pkgerrors.New(pkgerrors.CodeNotFound, "unknown category")
	}
	return category, nil
}
