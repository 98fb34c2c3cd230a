package browse

import (
	"github.com/solsticegems/solstice-backend/pkg/enums"
)

// Facet is a set-valued filter attribute. Allowed holds the full enumeration
// in display order; values outside it are dropped, never rejected wholesale.
type Facet struct {
	Key     string
	Allowed []string
}

// RangeFacet is a closed numeric interval filter. MinKey/MaxKey are the query
// parameter names the interval serializes to.
type RangeFacet struct {
	Key    string
	MinKey string
	MaxKey string
}

// Schema describes one category's browse surface: which facets exist, which
// sort keys are accepted, the fixed page size and the listing endpoint. The
// controller is written once and parameterized by this descriptor.
type Schema struct {
	Category    enums.ProductCategory
	Facets      []Facet
	Ranges      []RangeFacet
	SortKeys    []string
	DefaultSort string
	PageSize    int
	Endpoint    string
}

func (s *Schema) facet(key string) (Facet, bool) {
	for _, f := range s.Facets {
		if f.Key == key {
			return f, true
		}
	}
	return Facet{}, false
}

func (s *Schema) rangeFacet(key string) (RangeFacet, bool) {
	for _, r := range s.Ranges {
		if r.Key == key {
			return r, true
		}
	}
	return RangeFacet{}, false
}

func (s *Schema) allows(facetKey, value string) bool {
	f, ok := s.facet(facetKey)
	if !ok {
		return false
	}
	for _, allowed := range f.Allowed {
		if allowed == value {
			return true
		}
	}
	return false
}

func (s *Schema) sortAllowed(key string) bool {
	for _, candidate := range s.SortKeys {
		if candidate == key {
			return true
		}
	}
	return false
}

// ownedKeys lists every query parameter the filter state serializes to.
// Location sync replaces these and leaves all other parameters untouched.
func (s *Schema) ownedKeys() []string {
	keys := make([]string, 0, len(s.Facets)+2*len(s.Ranges)+1)
	for _, f := range s.Facets {
		keys = append(keys, f.Key)
	}
	for _, r := range s.Ranges {
		keys = append(keys, r.MinKey, r.MaxKey)
	}
	keys = append(keys, sortParam)
	return keys
}
