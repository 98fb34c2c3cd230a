package enums

import "fmt"

// SortKey orders catalog listings. Sorting is always server-side; clients
// never re-order results locally.
type SortKey string

const (
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortCaratAsc  SortKey = "carat-asc"
	SortCaratDesc SortKey = "carat-desc"
	SortNewest    SortKey = "newest"
)

var validSortKeys = []SortKey{
	SortPriceAsc,
	SortPriceDesc,
	SortCaratAsc,
	SortCaratDesc,
	SortNewest,
}

func (s SortKey) String() string { return string(s) }

func (s SortKey) IsValid() bool {
	for _, candidate := range validSortKeys {
		if candidate == s {
			return true
		}
	}
	return false
}

func ParseSortKey(value string) (SortKey, error) {
	for _, candidate := range validSortKeys {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sort key %q", value)
}

// SortKeyValues returns every accepted sort key.
func SortKeyValues() []string {
	return stringValues(validSortKeys)
}
