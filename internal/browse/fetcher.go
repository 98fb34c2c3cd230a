package browse

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"github.com/solsticegems/solstice-backend/pkg/errors"
	"github.com/solsticegems/solstice-backend/pkg/logger"
	"github.com/solsticegems/solstice-backend/pkg/metrics"
)

// Status is the fetcher's lifecycle state.
type Status string

const (
	StatusIdle        Status = "idle"
	StatusLoadingNew  Status = "loading-fresh"
	StatusLoadingMore Status = "loading-more"
	StatusError       Status = "error"
)

// ProductSummary is the listing-card shape every category endpoint returns.
type ProductSummary struct {
	ID          string `json:"id"`
	SKU         string `json:"sku,omitempty"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle,omitempty"`
	Price       int    `json:"price"`
	SalePrice   *int   `json:"salePrice,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	ProductType string `json:"productType,omitempty"`
	Carat       string `json:"carat,omitempty"`
}

// pageResponse tolerates both wire shapes: the standard
// {products, total, page, totalPages} and the legacy
// {products, pagination: {total, hasMore}}.
type pageResponse struct {
	Products   []ProductSummary `json:"products"`
	Total      *int             `json:"total"`
	Page       *int             `json:"page"`
	TotalPages *int             `json:"totalPages"`
	Pagination *struct {
		Total   int  `json:"total"`
		HasMore bool `json:"hasMore"`
	} `json:"pagination"`
}

// Fetcher translates filter state into server queries and manages the
// accumulated result list. A fresh fetch replaces results; LoadMore appends.
// Stale responses are discarded by a monotonic generation guard so the latest
// filter change always wins.
type Fetcher struct {
	schema      *Schema
	baseURL     string
	httpClient  *http.Client
	logg        *logger.Logger
	httpMetrics *metrics.HTTPMetrics

	mu         sync.Mutex
	generation uint64
	status     Status
	errMsg     string
	results    []ProductSummary
	page       int
	total      int
	totalPages int
	hasMore    bool
	applied    *FilterState
}

// NewFetcher wires a fetcher for one category schema against a base URL.
func NewFetcher(schema *Schema, baseURL string, client *http.Client, logg *logger.Logger) (*Fetcher, error) {
	if schema == nil {
		return nil, fmt.Errorf("schema is required")
	}
	if baseURL == "" {
		return nil, fmt.Errorf("base url is required")
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{
		schema:     schema,
		baseURL:    baseURL,
		httpClient: client,
		logg:       logg,
		status:     StatusIdle,
	}, nil
}

// WithMetrics attaches request counters. Optional.
func (f *Fetcher) WithMetrics(m *metrics.HTTPMetrics) *Fetcher {
	f.httpMetrics = m
	return f
}

// Status returns the current lifecycle state.
func (f *Fetcher) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

// Err returns the last fetch failure message, empty outside the error state.
func (f *Fetcher) Err() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errMsg
}

// Results returns the accumulated result list.
func (f *Fetcher) Results() []ProductSummary {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]ProductSummary, len(f.results))
	copy(out, f.results)
	return out
}

// Page returns the highest loaded page number, zero before the first fetch.
func (f *Fetcher) Page() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.page
}

// Total returns the server-reported total result count.
func (f *Fetcher) Total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.total
}

// HasMore reports whether pages beyond the loaded set exist. Authoritative
// from the server's totalPages, never inferred from slice length.
func (f *Fetcher) HasMore() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hasMore
}

// Apply resets to page 1 for the given filter state and replaces the result
// list with the response. A response that arrives after a newer Apply has
// been issued is discarded. The applied state only advances on success, so a
// failed apply leaves the previous results and their filters paired up.
func (f *Fetcher) Apply(ctx context.Context, state *FilterState) error {
	f.mu.Lock()
	f.generation++
	gen := f.generation
	f.status = StatusLoadingNew
	f.errMsg = ""
	applied := state.Clone()
	f.mu.Unlock()

	resp, err := f.fetchPage(ctx, applied, 1)

	f.mu.Lock()
	defer f.mu.Unlock()
	if gen != f.generation {
		// a newer filter change superseded this request
		return nil
	}
	if err != nil {
		f.status = StatusError
		f.errMsg = err.Error()
		return err
	}

	f.applied = applied
	f.results = dedupe(resp.Products)
	f.page = 1
	f.total, f.totalPages = resp.totals(f.schema.PageSize)
	f.hasMore = resp.hasMore(f.page)
	f.status = StatusIdle
	f.httpMetrics.IncCatalogFetch(f.schema.Category.String(), "fresh")
	return nil
}

// LoadMore fetches the next page with the last successfully applied filters
// and appends. It is a no-op while any fetch is in flight or when hasMore is
// false.
func (f *Fetcher) LoadMore(ctx context.Context) error {
	f.mu.Lock()
	if f.status == StatusLoadingMore || f.status == StatusLoadingNew || !f.hasMore || f.applied == nil {
		f.mu.Unlock()
		return nil
	}
	gen := f.generation
	nextPage := f.page + 1
	state := f.applied.Clone()
	f.status = StatusLoadingMore
	f.errMsg = ""
	f.mu.Unlock()

	resp, err := f.fetchPage(ctx, state, nextPage)

	f.mu.Lock()
	defer f.mu.Unlock()
	if gen != f.generation {
		return nil
	}
	if err != nil {
		f.status = StatusError
		f.errMsg = err.Error()
		return err
	}

	f.results = appendDedupe(f.results, resp.Products)
	f.page = nextPage
	f.total, f.totalPages = resp.totals(f.schema.PageSize)
	f.hasMore = resp.hasMore(f.page)
	f.status = StatusIdle
	f.httpMetrics.IncCatalogFetch(f.schema.Category.String(), "more")
	return nil
}

func (f *Fetcher) fetchPage(ctx context.Context, state *FilterState, page int) (*pageResponse, error) {
	q := EncodeQuery(state)
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(f.schema.PageSize))

	endpoint := f.baseURL + f.schema.Endpoint + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "building catalog request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "catalog fetch failed")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		if f.logg != nil {
			ctx = f.logg.WithFields(ctx, map[string]any{
				"status":   resp.StatusCode,
				"category": f.schema.Category.String(),
				"page":     page,
			})
			f.logg.Warn(ctx, "catalog fetch returned non-200")
		}
		return nil, errors.New(errors.CodeDependency,
			fmt.Sprintf("catalog fetch returned %d: %s", resp.StatusCode, string(body)))
	}

	var decoded pageResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "decoding catalog response")
	}
	return &decoded, nil
}

// QueryFor exposes the exact query a fetch for the given page would issue.
func (f *Fetcher) QueryFor(state *FilterState, page int) url.Values {
	q := EncodeQuery(state)
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(f.schema.PageSize))
	return q
}

func (r *pageResponse) totals(pageSize int) (total, totalPages int) {
	switch {
	case r.Total != nil && r.TotalPages != nil:
		return *r.Total, *r.TotalPages
	case r.Total != nil:
		return *r.Total, pagesFor(*r.Total, pageSize)
	case r.Pagination != nil:
		return r.Pagination.Total, pagesFor(r.Pagination.Total, pageSize)
	default:
		return len(r.Products), pagesFor(len(r.Products), pageSize)
	}
}

func (r *pageResponse) hasMore(currentPage int) bool {
	if r.TotalPages != nil {
		return currentPage < *r.TotalPages
	}
	if r.Pagination != nil {
		return r.Pagination.HasMore
	}
	return false
}

func pagesFor(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

func dedupe(products []ProductSummary) []ProductSummary {
	return appendDedupe(nil, products)
}

func appendDedupe(existing, incoming []ProductSummary) []ProductSummary {
	seen := make(map[string]bool, len(existing)+len(incoming))
	out := make([]ProductSummary, 0, len(existing)+len(incoming))
	for _, p := range existing {
		if p.ID != "" && seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		out = append(out, p)
	}
	for _, p := range incoming {
		if p.ID != "" && seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		out = append(out, p)
	}
	return out
}
