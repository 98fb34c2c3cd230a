package enums

import "fmt"

// ProductCategory is the canonical catalog category, matching the slug used
// in storefront routes and API paths.
type ProductCategory string

const (
	ProductCategoryDiamond  ProductCategory = "diamond"
	ProductCategoryGemstone ProductCategory = "gemstone"
	ProductCategorySetting  ProductCategory = "setting"
	ProductCategoryEarring  ProductCategory = "earring"
	ProductCategoryNecklace ProductCategory = "necklace"
	ProductCategoryBracelet ProductCategory = "bracelet"
	ProductCategoryMens     ProductCategory = "mens-jewelry"
)

var validProductCategories = []ProductCategory{
	ProductCategoryDiamond,
	ProductCategoryGemstone,
	ProductCategorySetting,
	ProductCategoryEarring,
	ProductCategoryNecklace,
	ProductCategoryBracelet,
	ProductCategoryMens,
}

// String implements fmt.Stringer.
func (c ProductCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ProductCategory.
func (c ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// IsStone reports whether the category participates in customization as the
// stone half of a configured ring.
func (c ProductCategory) IsStone() bool {
	return c == ProductCategoryDiamond || c == ProductCategoryGemstone
}

// ParseProductCategory converts raw input into a ProductCategory.
func ParseProductCategory(value string) (ProductCategory, error) {
	for _, candidate := range validProductCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}

// ProductCategories returns every known category.
func ProductCategories() []ProductCategory {
	out := make([]ProductCategory, len(validProductCategories))
	copy(out, validProductCategories)
	return out
}
