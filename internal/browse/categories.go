package browse

import (
	"github.com/solsticegems/solstice-backend/pkg/enums"
	"github.com/solsticegems/solstice-backend/pkg/pagination"
)

// Facet query keys shared across category schemas.
const (
	FacetShapes    = "shapes"
	FacetColors    = "colors"
	FacetClarities = "clarities"
	FacetCuts      = "cuts"
	FacetTypes     = "types"
	FacetStyles    = "styles"
	FacetMetals    = "metals"

	RangeCarat = "carat"
	RangePrice = "price"
)

var caratRange = RangeFacet{Key: RangeCarat, MinKey: "minCarat", MaxKey: "maxCarat"}
var priceRange = RangeFacet{Key: RangePrice, MinKey: "minPrice", MaxKey: "maxPrice"}

func endpointFor(category enums.ProductCategory) string {
	return "/api/products/" + category.String()
}

func jewelrySchema(category enums.ProductCategory) *Schema {
	return &Schema{
		Category: category,
		Facets: []Facet{
			{Key: FacetStyles, Allowed: enums.StyleValuesFor(category)},
			{Key: FacetMetals, Allowed: enums.MetalValues()},
		},
		Ranges:      []RangeFacet{priceRange},
		SortKeys:    enums.SortKeyValues(),
		DefaultSort: enums.SortPriceAsc.String(),
		PageSize:    pagination.CatalogPageSize,
		Endpoint:    endpointFor(category),
	}
}

// Schemas returns the registry of the seven category browse schemas. Each
// category page differs only by this descriptor; the controller is shared.
func Schemas() map[enums.ProductCategory]*Schema {
	return map[enums.ProductCategory]*Schema{
		enums.ProductCategoryDiamond: {
			Category: enums.ProductCategoryDiamond,
			Facets: []Facet{
				{Key: FacetShapes, Allowed: enums.DiamondShapeValues()},
				{Key: FacetColors, Allowed: enums.DiamondColorValues()},
				{Key: FacetClarities, Allowed: enums.DiamondClarityValues()},
				{Key: FacetCuts, Allowed: enums.DiamondCutValues()},
			},
			Ranges:      []RangeFacet{caratRange, priceRange},
			SortKeys:    enums.SortKeyValues(),
			DefaultSort: enums.SortPriceAsc.String(),
			PageSize:    pagination.CatalogPageSize,
			Endpoint:    endpointFor(enums.ProductCategoryDiamond),
		},
		enums.ProductCategoryGemstone: {
			Category: enums.ProductCategoryGemstone,
			Facets: []Facet{
				{Key: FacetTypes, Allowed: enums.GemstoneTypeValues()},
				{Key: FacetShapes, Allowed: enums.DiamondShapeValues()},
				{Key: FacetColors, Allowed: enums.GemstoneColorValues()},
			},
			Ranges:      []RangeFacet{caratRange, priceRange},
			SortKeys:    enums.SortKeyValues(),
			DefaultSort: enums.SortPriceAsc.String(),
			PageSize:    pagination.CatalogPageSize,
			Endpoint:    endpointFor(enums.ProductCategoryGemstone),
		},
		enums.ProductCategorySetting:  jewelrySchema(enums.ProductCategorySetting),
		enums.ProductCategoryEarring:  jewelrySchema(enums.ProductCategoryEarring),
		enums.ProductCategoryNecklace: jewelrySchema(enums.ProductCategoryNecklace),
		enums.ProductCategoryBracelet: jewelrySchema(enums.ProductCategoryBracelet),
		enums.ProductCategoryMens:     jewelrySchema(enums.ProductCategoryMens),
	}
}

// SchemaFor returns the schema for a category, or nil when the category has
// no browse surface.
func SchemaFor(category enums.ProductCategory) *Schema {
	return Schemas()[category]
}
