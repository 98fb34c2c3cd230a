package browse

import (
	"strconv"
	"strings"
)

const sortParam = "sort"

// Range is a closed numeric interval [Min, Max].
type Range struct {
	Min float64
	Max float64
}

// FilterState holds the active facet selection for one browse session. All
// operations are total functions over in-memory state; no I/O happens here.
type FilterState struct {
	schema *Schema
	sets   map[string]map[string]bool
	ranges map[string]*Range
	sort   string
}

// NewFilterState returns an empty selection with the schema's default sort.
func NewFilterState(schema *Schema) *FilterState {
	return &FilterState{
		schema: schema,
		sets:   make(map[string]map[string]bool),
		ranges: make(map[string]*Range),
		sort:   schema.DefaultSort,
	}
}

// Toggle adds value to the named facet set if absent and removes it if
// present. Values outside the facet's allowed enumeration are ignored.
func (s *FilterState) Toggle(facetKey, value string) {
	if !s.schema.allows(facetKey, value) {
		return
	}
	set := s.sets[facetKey]
	if set == nil {
		set = make(map[string]bool)
		s.sets[facetKey] = set
	}
	if set[value] {
		delete(set, value)
		if len(set) == 0 {
			delete(s.sets, facetKey)
		}
		return
	}
	set[value] = true
}

// Has reports whether value is currently selected for the facet.
func (s *FilterState) Has(facetKey, value string) bool {
	return s.sets[facetKey][value]
}

// Selected returns the facet's selected values in the allowed-enumeration
// order, which keeps serialization deterministic.
func (s *FilterState) Selected(facetKey string) []string {
	set := s.sets[facetKey]
	if len(set) == 0 {
		return nil
	}
	facet, ok := s.schema.facet(facetKey)
	if !ok {
		return nil
	}
	values := make([]string, 0, len(set))
	for _, candidate := range facet.Allowed {
		if set[candidate] {
			values = append(values, candidate)
		}
	}
	return values
}

// SetRange replaces the facet's interval wholesale; nil clears it. Intervals
// with Min > Max are ignored.
func (s *FilterState) SetRange(facetKey string, r *Range) {
	if _, ok := s.schema.rangeFacet(facetKey); !ok {
		return
	}
	if r == nil {
		delete(s.ranges, facetKey)
		return
	}
	if r.Min > r.Max {
		return
	}
	stored := *r
	s.ranges[facetKey] = &stored
}

// Range returns the active interval for the facet, or nil.
func (s *FilterState) Range(facetKey string) *Range {
	r := s.ranges[facetKey]
	if r == nil {
		return nil
	}
	out := *r
	return &out
}

// SetSort switches the sort key; unknown keys are ignored.
func (s *FilterState) SetSort(key string) {
	if s.schema.sortAllowed(key) {
		s.sort = key
	}
}

// Sort returns the active sort key. Always present.
func (s *FilterState) Sort() string {
	return s.sort
}

// ClearAll resets every set to empty, every range to nil and sort to the
// schema default.
func (s *FilterState) ClearAll() {
	s.sets = make(map[string]map[string]bool)
	s.ranges = make(map[string]*Range)
	s.sort = s.schema.DefaultSort
}

// Clone returns an independent copy sharing the same schema.
func (s *FilterState) Clone() *FilterState {
	out := NewFilterState(s.schema)
	for key, set := range s.sets {
		copySet := make(map[string]bool, len(set))
		for v := range set {
			copySet[v] = true
		}
		out.sets[key] = copySet
	}
	for key, r := range s.ranges {
		stored := *r
		out.ranges[key] = &stored
	}
	out.sort = s.sort
	return out
}

// Equal reports whether two states select the same values, ranges and sort.
func (s *FilterState) Equal(other *FilterState) bool {
	if other == nil {
		return false
	}
	return s.Signature() == other.Signature()
}

// Signature is the canonical serialized form of the state. Equal states
// produce byte-identical signatures, which makes it usable both as a cache
// key and as the stale-response guard tag for the fetcher.
func (s *FilterState) Signature() string {
	var b strings.Builder
	for _, f := range s.schema.Facets {
		values := s.Selected(f.Key)
		if len(values) == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(f.Key)
		b.WriteByte('=')
		b.WriteString(strings.Join(values, ","))
	}
	for _, rf := range s.schema.Ranges {
		r := s.ranges[rf.Key]
		if r == nil {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(rf.MinKey)
		b.WriteByte('=')
		b.WriteString(formatBound(r.Min))
		b.WriteByte('&')
		b.WriteString(rf.MaxKey)
		b.WriteByte('=')
		b.WriteString(formatBound(r.Max))
	}
	if b.Len() > 0 {
		b.WriteByte('&')
	}
	b.WriteString(sortParam)
	b.WriteByte('=')
	b.WriteString(s.sort)
	return b.String()
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
