package browse

import (
	"net/url"
	"strconv"
	"strings"
)

// EncodeQuery serializes the state into query parameters: each non-empty set
// becomes key=v1,v2,v3, each active range becomes minKey/maxKey, and sort is
// always emitted.
func EncodeQuery(state *FilterState) url.Values {
	q := url.Values{}
	for _, f := range state.schema.Facets {
		values := state.Selected(f.Key)
		if len(values) == 0 {
			continue
		}
		q.Set(f.Key, strings.Join(values, ","))
	}
	for _, rf := range state.schema.Ranges {
		r := state.Range(rf.Key)
		if r == nil {
			continue
		}
		q.Set(rf.MinKey, formatBound(r.Min))
		q.Set(rf.MaxKey, formatBound(r.Max))
	}
	q.Set(sortParam, state.Sort())
	return q
}

// EncodeQueryString renders the state in schema declaration order so equal
// states produce byte-identical query strings.
func EncodeQueryString(state *FilterState) string {
	return state.Signature()
}

// DecodeQuery rebuilds a FilterState from query parameters. Missing keys are
// treated as unset; unknown or invalid values are silently dropped rather
// than failing the whole parse.
func DecodeQuery(schema *Schema, q url.Values) *FilterState {
	state := NewFilterState(schema)
	for _, f := range schema.Facets {
		raw := q.Get(f.Key)
		if raw == "" {
			continue
		}
		for _, value := range strings.Split(raw, ",") {
			value = strings.TrimSpace(value)
			if value == "" || state.Has(f.Key, value) {
				continue
			}
			state.Toggle(f.Key, value)
		}
	}
	for _, rf := range schema.Ranges {
		minRaw := q.Get(rf.MinKey)
		maxRaw := q.Get(rf.MaxKey)
		if minRaw == "" || maxRaw == "" {
			continue
		}
		min, errMin := strconv.ParseFloat(minRaw, 64)
		max, errMax := strconv.ParseFloat(maxRaw, 64)
		if errMin != nil || errMax != nil {
			continue
		}
		state.SetRange(rf.Key, &Range{Min: min, Max: max})
	}
	if sortValue := q.Get(sortParam); sortValue != "" {
		state.SetSort(sortValue)
	}
	return state
}
