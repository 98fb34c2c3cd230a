package browse

import (
	"context"
	"net/http"
	"net/url"

	"github.com/solsticegems/solstice-backend/pkg/config"
	"github.com/solsticegems/solstice-backend/pkg/logger"
)

// Session is one browse page instance: the filter state, the fetcher and the
// session's location, kept in sync. Sessions are owned by a single page; no
// cross-session sharing exists.
type Session struct {
	schema  *Schema
	state   *FilterState
	fetcher *Fetcher
	path    string
	query   url.Values
}

// NewSession builds a session for a category against the storefront API.
func NewSession(schema *Schema, cfg config.StorefrontConfig, logg *logger.Logger) (*Session, error) {
	client := &http.Client{Timeout: cfg.RequestTimeout}
	fetcher, err := NewFetcher(schema, cfg.APIBaseURL, client, logg)
	if err != nil {
		return nil, err
	}
	return &Session{
		schema:  schema,
		state:   NewFilterState(schema),
		fetcher: fetcher,
		path:    "/" + schema.Category.String() + "/all",
		query:   url.Values{},
	}, nil
}

// Init restores the session from a location: the filter state is decoded
// from the query with partial recovery, and non-filter parameters (the
// customization flow among them) are preserved as-is.
func (s *Session) Init(path string, query url.Values) {
	if path != "" {
		s.path = path
	}
	s.query = cloneValues(query)
	s.state = DecodeQuery(s.schema, query)
}

// State returns the live filter state for mutation.
func (s *Session) State() *FilterState {
	return s.state
}

// Fetcher exposes the paginator.
func (s *Session) Fetcher() *Fetcher {
	return s.fetcher
}

// Flow returns the customization context carried by the current location.
func (s *Session) Flow() FlowContext {
	return DecodeFlow(s.query)
}

// Step returns the wizard position for the current location.
func (s *Session) Step() Step {
	return DeriveStep(s.query)
}

// Search syncs the location to the current filter state and issues a fresh
// page-1 fetch. The location update is a soft replace: filter-owned keys are
// rewritten, everything else stays.
func (s *Session) Search(ctx context.Context) error {
	s.Navigate()
	return s.fetcher.Apply(ctx, s.state)
}

// LoadMore appends the next page. No-op when no more pages exist or a
// load-more is already in flight.
func (s *Session) LoadMore(ctx context.Context) error {
	return s.fetcher.LoadMore(ctx)
}

// Navigate replaces the session's location in place with the current filter
// state, preserving parameters the filter does not own.
func (s *Session) Navigate() {
	next := cloneValues(s.query)
	for _, key := range s.schema.ownedKeys() {
		next.Del(key)
	}
	for key, values := range EncodeQuery(s.state) {
		for _, v := range values {
			next.Add(key, v)
		}
	}
	s.query = next
}

// Location renders the current address. Equal filter states produce
// byte-identical filter segments via the canonical encoding.
func (s *Session) Location() string {
	if len(s.query) == 0 {
		return s.path
	}
	return s.path + "?" + s.query.Encode()
}

// SelectionTarget computes the click-through destination for a listing card
// in this session, honoring any customization flow in progress.
func (s *Session) SelectionTarget(product ProductRef) Target {
	return SelectionTarget(s.query, product)
}
