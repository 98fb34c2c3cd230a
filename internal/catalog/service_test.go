package catalog

import (
	"context"
	"io"
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/solsticegems/solstice-backend/pkg/db/models"
	"github.com/solsticegems/solstice-backend/pkg/enums"
	pkgerrors "github.com/solsticegems/solstice-backend/pkg/errors"
	"github.com/solsticegems/solstice-backend/pkg/logger"
	"github.com/solsticegems/solstice-backend/pkg/pagination"
)

type stubReader struct {
	lastFilters ListFilters
	lastSort    string
	lastParams  pagination.Params

	products []models.Product
	total    int64
	detail   *models.Product
	findErr  error
}

func (s *stubReader) FindByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.detail, nil
}

func (s *stubReader) ListProducts(_ context.Context, filters ListFilters, sortKey string, params pagination.Params) ([]models.Product, int64, error) {
	s.lastFilters = filters
	s.lastSort = sortKey
	s.lastParams = params
	return s.products, s.total, nil
}

func errCode(t *testing.T, err error) pkgerrors.Code {
	t.Helper()
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected a coded error, got %v", err)
	}
	return typed.Code()
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	return logger.New(logger.Options{ServiceName: "catalog-test", Level: zerolog.ErrorLevel, Output: io.Discard})
}

func newTestService(t *testing.T, reader *stubReader) Service {
	t.Helper()
	svc, err := NewService(reader, testLogger(t), func(key string) string {
		return "https://cdn.test/" + key
	})
	if err != nil {
		t.Fatalf("failed to build service: %v", err)
	}
	return svc
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	if _, err := NewService(nil, testLogger(t), nil); err == nil {
		t.Fatal("expected error for nil repository")
	}
	if _, err := NewService(&stubReader{}, nil, nil); err == nil {
		t.Fatal("expected error for nil logger")
	}
}

func TestListMapsQueryToFilters(t *testing.T) {
	reader := &stubReader{total: 0}
	svc := newTestService(t, reader)

	query := url.Values{}
	query.Set("shapes", "Round,Oval")
	query.Set("clarities", "VS1")
	query.Set("minCarat", "1")
	query.Set("maxCarat", "2")
	query.Set("minPrice", "100")
	query.Set("maxPrice", "500")
	query.Set("sort", "carat-desc")

	if _, err := svc.List(context.Background(), enums.ProductCategoryDiamond, "all", query); err != nil {
		t.Fatalf("list failed: %v", err)
	}

	f := reader.lastFilters
	if len(f.Shapes) != 2 || f.Shapes[0] != "Round" || f.Shapes[1] != "Oval" {
		t.Fatalf("unexpected shapes %v", f.Shapes)
	}
	if len(f.Clarities) != 1 || f.Clarities[0] != "VS1" {
		t.Fatalf("unexpected clarities %v", f.Clarities)
	}
	if f.CaratMin == nil || f.CaratMax == nil || *f.CaratMin != 1 || *f.CaratMax != 2 {
		t.Fatalf("unexpected carat bounds %v %v", f.CaratMin, f.CaratMax)
	}
	if f.PriceMin == nil || f.PriceMax == nil || *f.PriceMin != 10000 || *f.PriceMax != 50000 {
		t.Fatal("price bounds should be converted to cents")
	}
	if !f.OnlyAvailable {
		t.Fatal("storefront listings must exclude unavailable products")
	}
	if reader.lastSort != "carat-desc" {
		t.Fatalf("unexpected sort %q", reader.lastSort)
	}
	if reader.lastParams.Limit != pagination.CatalogPageSize {
		t.Fatalf("unexpected page size %d", reader.lastParams.Limit)
	}
}

func TestListDropsInvalidFacetValues(t *testing.T) {
	reader := &stubReader{}
	svc := newTestService(t, reader)

	query := url.Values{}
	query.Set("shapes", "Round,Triangle")
	query.Set("sort", "alphabetical")

	if _, err := svc.List(context.Background(), enums.ProductCategoryDiamond, "", query); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(reader.lastFilters.Shapes) != 1 || reader.lastFilters.Shapes[0] != "Round" {
		t.Fatalf("invalid shape should be dropped, got %v", reader.lastFilters.Shapes)
	}
	if reader.lastSort != enums.SortPriceAsc.String() {
		t.Fatalf("unknown sort should fall back to default, got %q", reader.lastSort)
	}
}

func TestListPriceBoundsRoundToCents(t *testing.T) {
	reader := &stubReader{}
	svc := newTestService(t, reader)

	query := url.Values{}
	query.Set("minPrice", "10.10")
	query.Set("maxPrice", "19.99")

	if _, err := svc.List(context.Background(), enums.ProductCategoryDiamond, "all", query); err != nil {
		t.Fatalf("list failed: %v", err)
	}

	f := reader.lastFilters
	if f.PriceMin == nil || *f.PriceMin != 1010 {
		t.Fatalf("expected min bound 1010 cents, got %v", f.PriceMin)
	}
	if f.PriceMax == nil || *f.PriceMax != 1999 {
		t.Fatalf("expected max bound 1999 cents, got %v", f.PriceMax)
	}
}

func TestListSubcategoryIntersectsShapeFacet(t *testing.T) {
	reader := &stubReader{total: 5}
	svc := newTestService(t, reader)
	ctx := context.Background()

	query := url.Values{}
	query.Set("shapes", "Round,Oval")
	if _, err := svc.List(ctx, enums.ProductCategoryDiamond, "round", query); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(reader.lastFilters.Shapes) != 1 || reader.lastFilters.Shapes[0] != "Round" {
		t.Fatalf("path segment should narrow the shapes facet, got %v", reader.lastFilters.Shapes)
	}

	reader.lastFilters = ListFilters{}
	disjoint := url.Values{}
	disjoint.Set("shapes", "Oval")
	result, err := svc.List(ctx, enums.ProductCategoryDiamond, "round", disjoint)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if result.Total != 0 || len(result.Products) != 0 {
		t.Fatalf("disjoint shape selections cannot match, got total %d", result.Total)
	}
	if reader.lastFilters.Category != "" {
		t.Fatal("a provably empty listing must not hit the repository")
	}
}

func TestListSubcategoryNarrowing(t *testing.T) {
	reader := &stubReader{}
	svc := newTestService(t, reader)
	ctx := context.Background()

	if _, err := svc.List(ctx, enums.ProductCategoryDiamond, "round", url.Values{}); err != nil {
		t.Fatalf("shape subcategory failed: %v", err)
	}
	if len(reader.lastFilters.Shapes) != 1 || reader.lastFilters.Shapes[0] != "Round" {
		t.Fatalf("shape subcategory should pin shapes, got %v", reader.lastFilters.Shapes)
	}

	if _, err := svc.List(ctx, enums.ProductCategorySetting, "solitaire", url.Values{}); err != nil {
		t.Fatalf("style subcategory failed: %v", err)
	}
	if len(reader.lastFilters.Styles) != 1 || reader.lastFilters.Styles[0] != "solitaire" {
		t.Fatalf("style subcategory should pin styles, got %v", reader.lastFilters.Styles)
	}

	_, err := svc.List(ctx, enums.ProductCategorySetting, "brutalist", url.Values{})
	if err == nil {
		t.Fatal("expected error for unknown subcategory")
	}
	if errCode(t, err) != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found code, got %v", errCode(t, err))
	}
}

func TestListBuildsSummaryDTOs(t *testing.T) {
	shape := enums.DiamondShapeRound
	carat := decimal.NewFromFloat(1.25)
	sale := 199900
	reader := &stubReader{
		total: 1,
		products: []models.Product{{
			ID:             uuid.New(),
			Category:       enums.ProductCategoryDiamond,
			SKU:            "D-100",
			Title:          "Round Diamond",
			Shape:          &shape,
			CaratWeight:    &carat,
			PriceCents:     249900,
			SalePriceCents: &sale,
			Images:         []models.ProductImage{{GCSKey: "products/d-100/main.jpg"}},
		}},
	}
	svc := newTestService(t, reader)

	result, err := svc.List(context.Background(), enums.ProductCategoryDiamond, "all", url.Values{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(result.Products) != 1 {
		t.Fatalf("expected one product, got %d", len(result.Products))
	}
	dto := result.Products[0]
	if dto.Price != 249900 {
		t.Fatalf("unexpected price %d", dto.Price)
	}
	if dto.SalePrice == nil || *dto.SalePrice != 199900 {
		t.Fatal("sale price should carry through")
	}
	if dto.Carat != "1.25" {
		t.Fatalf("unexpected carat %q", dto.Carat)
	}
	if dto.ImageURL != "https://cdn.test/products/d-100/main.jpg" {
		t.Fatalf("unexpected image url %q", dto.ImageURL)
	}
	if dto.ProductType != "diamond" {
		t.Fatalf("unexpected product type %q", dto.ProductType)
	}
	if result.TotalPages != 1 {
		t.Fatalf("unexpected total pages %d", result.TotalPages)
	}
}

func TestGetDetailErrorMapping(t *testing.T) {
	reader := &stubReader{findErr: gorm.ErrRecordNotFound}
	svc := newTestService(t, reader)
	ctx := context.Background()

	_, err := svc.GetDetail(ctx, "not-a-uuid")
	if errCode(t, err) != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", errCode(t, err))
	}

	_, err = svc.GetDetail(ctx, uuid.NewString())
	if errCode(t, err) != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found code, got %v", errCode(t, err))
	}
}
