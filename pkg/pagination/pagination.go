package pagination

// Page sizes are fixed for the lifetime of a page instance: storefront
// category browse always requests 12 rows, admin lists 10.
const (
	CatalogPageSize = 12
	AdminPageSize   = 10
	// MaxLimit caps how many rows any list query can request.
	MaxLimit = 100
)

// Params holds offset pagination inputs from controllers or services.
type Params struct {
	Page  int
	Limit int
}

// Normalize clamps the params to sane values, applying the given default
// page size when the limit is absent.
func (p Params) Normalize(defaultLimit int) Params {
	out := p
	if out.Page <= 0 {
		out.Page = 1
	}
	if out.Limit <= 0 {
		out.Limit = defaultLimit
	}
	if out.Limit > MaxLimit {
		out.Limit = MaxLimit
	}
	return out
}

// Offset converts the normalized params into a SQL offset.
func (p Params) Offset() int {
	page := p.Page
	if page <= 0 {
		page = 1
	}
	return (page - 1) * p.Limit
}

// Meta is the standardized pagination envelope returned by list endpoints.
type Meta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	TotalPages int   `json:"totalPages"`
	HasMore    bool  `json:"hasMore"`
}

// NewMeta derives the envelope from a total row count and the params that
// produced the page.
func NewMeta(total int64, params Params) Meta {
	totalPages := 0
	if params.Limit > 0 {
		totalPages = int((total + int64(params.Limit) - 1) / int64(params.Limit))
	}
	return Meta{
		Total:      total,
		Page:       params.Page,
		TotalPages: totalPages,
		HasMore:    params.Page < totalPages,
	}
}
