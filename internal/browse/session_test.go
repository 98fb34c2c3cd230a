package browse

import (
	"net/url"
	"testing"

	"github.com/solsticegems/solstice-backend/pkg/config"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	session, err := NewSession(diamondSchema(), config.StorefrontConfig{APIBaseURL: "http://localhost:0"}, nil)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return session
}

func TestSessionInitRecoversStateAndFlow(t *testing.T) {
	session := newTestSession(t)
	q, _ := url.ParseQuery("shapes=Round,Triangle&sort=newest&settingId=s1&metal=platinum&size=6")

	session.Init("/diamond/all", q)

	if got := session.State().Selected(FacetShapes); len(got) != 1 || got[0] != "Round" {
		t.Fatalf("expected partial recovery to Round, got %v", got)
	}
	if session.State().Sort() != "newest" {
		t.Fatalf("unexpected sort %s", session.State().Sort())
	}
	if session.Step() != StepAwaitingStone {
		t.Fatalf("expected awaiting-stone step, got %d", session.Step())
	}
	if flow := session.Flow(); flow.SettingID != "s1" || flow.Metal != "platinum" {
		t.Fatalf("flow params not preserved: %+v", flow)
	}
}

func TestNavigatePreservesNonFilterParams(t *testing.T) {
	session := newTestSession(t)
	q, _ := url.ParseQuery("settingId=s1&metal=platinum&size=6&shapes=Round&sort=price-asc")
	session.Init("/diamond/all", q)

	session.State().Toggle(FacetShapes, "Round") // deselect
	session.State().Toggle(FacetClarities, "VS1")
	session.Navigate()

	loc, err := url.Parse(session.Location())
	if err != nil {
		t.Fatalf("parse location: %v", err)
	}
	got := loc.Query()
	if got.Get(ParamSettingID) != "s1" || got.Get(ParamMetal) != "platinum" || got.Get(ParamSize) != "6" {
		t.Fatalf("customization params lost on filter navigation: %v", got)
	}
	if got.Get(FacetShapes) != "" {
		t.Fatal("deselected facet must disappear from the location")
	}
	if got.Get(FacetClarities) != "VS1" {
		t.Fatalf("new selection missing from location: %v", got)
	}
	if got.Get(sortParam) == "" {
		t.Fatal("sort is always emitted")
	}
}

func TestLocationIsStableForEqualStates(t *testing.T) {
	first := newTestSession(t)
	second := newTestSession(t)

	q1, _ := url.ParseQuery("clarities=VS1&shapes=Round")
	q2, _ := url.ParseQuery("shapes=Round&clarities=VS1")
	first.Init("/diamond/all", q1)
	second.Init("/diamond/all", q2)
	first.Navigate()
	second.Navigate()

	if first.Location() != second.Location() {
		t.Fatalf("equal states must render identical locations:\n%s\n%s",
			first.Location(), second.Location())
	}
}

func TestSessionSelectionTargetHonorsFlow(t *testing.T) {
	session := newTestSession(t)
	q, _ := url.ParseQuery("settingId=s1&metal=platinum&size=6")
	session.Init("/diamond/all", q)

	target := session.SelectionTarget(ProductRef{ID: "d1", Category: diamondSchema().Category})
	if target.Path != "/diamond/detail/d1" {
		t.Fatalf("unexpected path %s", target.Path)
	}
	if target.Query.Get(ParamSettingID) != "s1" {
		t.Fatal("setting must carry into the stone detail link")
	}
}
