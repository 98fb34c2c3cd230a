package catalog

import (
	"context"
	"errors"
	"math"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/solsticegems/solstice-backend/internal/browse"
	"github.com/solsticegems/solstice-backend/pkg/db/models"
	"github.com/solsticegems/solstice-backend/pkg/enums"
	pkgerrors "github.com/solsticegems/solstice-backend/pkg/errors"
	"github.com/solsticegems/solstice-backend/pkg/logger"
	"github.com/solsticegems/solstice-backend/pkg/pagination"
)

// Service is the storefront catalog read surface.
type Service interface {
	List(ctx context.Context, category enums.ProductCategory, subcategory string, query url.Values) (*ListResult, error)
	GetDetail(ctx context.Context, id string) (*ProductDetailDTO, error)
}

// ProductReader is the persistence surface the service needs.
type ProductReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListProducts(ctx context.Context, filters ListFilters, sortKey string, params pagination.Params) ([]models.Product, int64, error)
}

type service struct {
	repo     ProductReader
	logg     *logger.Logger
	imageURL ImageURLBuilder
}

// NewService wires the catalog service. The image URL builder may be nil
// when media serving is disabled.
func NewService(repo ProductReader, logg *logger.Logger, imageURL ImageURLBuilder) (Service, error) {
	if repo == nil {
		return nil, errors.New("catalog: repository is required")
	}
	if logg == nil {
		return nil, errors.New("catalog: logger is required")
	}
	return &service{repo: repo, logg: logg, imageURL: imageURL}, nil
}

func (s *service) List(ctx context.Context, category enums.ProductCategory, subcategory string, query url.Values) (*ListResult, error) {
	schema := browse.SchemaFor(category)
	if schema == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "unknown category")
	}

	state := browse.DecodeQuery(schema, query)
	filters := filtersFrom(category, state)
	empty, err := applySubcategory(&filters, category, subcategory)
	if err != nil {
		return nil, err
	}

	params := pagination.Params{
		Page:  queryInt(query, "page", 1),
		Limit: queryInt(query, "limit", schema.PageSize),
	}.Normalize(schema.PageSize)

	if empty {
		meta := pagination.NewMeta(0, params)
		return &ListResult{
			Products:   []ProductSummaryDTO{},
			Total:      meta.Total,
			Page:       meta.Page,
			TotalPages: meta.TotalPages,
		}, nil
	}

	rows, total, err := s.repo.ListProducts(ctx, filters, state.Sort(), params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing products")
	}

	meta := pagination.NewMeta(total, params)
	result := &ListResult{
		Products:   make([]ProductSummaryDTO, 0, len(rows)),
		Total:      meta.Total,
		Page:       meta.Page,
		TotalPages: meta.TotalPages,
	}
	for i := range rows {
		result.Products = append(result.Products, toSummaryDTO(&rows[i], s.imageURL))
	}
	return result, nil
}

func (s *service) GetDetail(ctx context.Context, id string) (*ProductDetailDTO, error) {
	productID, err := uuid.Parse(id)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid product id")
	}
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading product")
	}
	dto := toDetailDTO(product, s.imageURL)
	return &dto, nil
}

// filtersFrom maps decoded facet selections onto repository filters. Price
// bounds arrive in major units and are stored in cents.
func filtersFrom(category enums.ProductCategory, state *browse.FilterState) ListFilters {
	filters := ListFilters{
		Category:      category,
		Shapes:        state.Selected(browse.FacetShapes),
		Colors:        state.Selected(browse.FacetColors),
		Clarities:     state.Selected(browse.FacetClarities),
		Cuts:          state.Selected(browse.FacetCuts),
		StoneTypes:    state.Selected(browse.FacetTypes),
		Styles:        state.Selected(browse.FacetStyles),
		Metals:        state.Selected(browse.FacetMetals),
		OnlyAvailable: true,
	}
	if r := state.Range(browse.RangeCarat); r != nil {
		min, max := r.Min, r.Max
		filters.CaratMin, filters.CaratMax = &min, &max
	}
	if r := state.Range(browse.RangePrice); r != nil {
		min, max := int(math.Round(r.Min*100)), int(math.Round(r.Max*100))
		filters.PriceMin, filters.PriceMax = &min, &max
	}
	return filters
}

// applySubcategory narrows the listing: "all" (or empty) is a no-op, a
// style slug narrows jewelry categories and a shape slug narrows stones.
// The slug intersects the matching facet from the query; a selection that
// excludes the slug makes the listing provably empty, reported via the
// first return.
func applySubcategory(filters *ListFilters, category enums.ProductCategory, subcategory string) (bool, error) {
	slug := normalizeSlug(subcategory)
	if slug == "" || slug == "all" {
		return false, nil
	}

	if category.IsStone() {
		for _, shape := range enums.DiamondShapeValues() {
			if normalizeSlug(shape) != slug {
				continue
			}
			if len(filters.Shapes) > 0 && !slices.Contains(filters.Shapes, shape) {
				return true, nil
			}
			filters.Shapes = []string{shape}
			return false, nil
		}
		return false, pkgerrors.New(pkgerrors.CodeNotFound, "unknown subcategory")
	}

	if style, err := enums.ParseStyle(category, slug); err == nil {
		if len(filters.Styles) > 0 && !slices.Contains(filters.Styles, style.String()) {
			return true, nil
		}
		filters.Styles = []string{style.String()}
		return false, nil
	}
	return false, pkgerrors.New(pkgerrors.CodeNotFound, "unknown subcategory")
}

func queryInt(q url.Values, key string, fallback int) int {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
