package browse

import (
	"net/url"

	"github.com/solsticegems/solstice-backend/pkg/enums"
)

// Customization flow parameters carried through the URL across page loads.
const (
	ParamStart      = "start"
	ParamSettingID  = "settingId"
	ParamMetal      = "metal"
	ParamSize       = "size"
	ParamDiamondID  = "diamondId"
	ParamGemstoneID = "gemstoneId"
	ParamEnd        = "end"
	ParamComplete   = "complete"
)

// CompletionPath is where a fully chosen setting+stone pair is combined into
// one configured product.
const CompletionPath = "/customize/complete"

// Step is the wizard position. It is always derived from which identifiers
// are present in the URL; no step counter is ever stored.
type Step int

const (
	// StepStandalone: not in a customization flow at all.
	StepStandalone Step = iota
	// StepStoneFirst: flow started from a stone, no setting chosen yet.
	StepStoneFirst
	// StepAwaitingStone: setting chosen (settingId+metal+size), no stone yet.
	StepAwaitingStone
	// StepAwaitingSetting: stone chosen first, now browsing settings.
	StepAwaitingSetting
	// StepComplete: both a setting and a stone identifier are present.
	StepComplete
)

// FlowContext is the read-only customization state decoded from a query.
type FlowContext struct {
	StartWith  string
	SettingID  string
	Metal      string
	Size       string
	DiamondID  string
	GemstoneID string
}

// DecodeFlow extracts the customization parameters from a query.
func DecodeFlow(q url.Values) FlowContext {
	return FlowContext{
		StartWith:  q.Get(ParamStart),
		SettingID:  q.Get(ParamSettingID),
		Metal:      q.Get(ParamMetal),
		Size:       q.Get(ParamSize),
		DiamondID:  q.Get(ParamDiamondID),
		GemstoneID: q.Get(ParamGemstoneID),
	}
}

// HasSetting reports whether a setting has been fully chosen. The three
// parameters travel together or not at all.
func (f FlowContext) HasSetting() bool {
	return f.SettingID != "" && f.Metal != "" && f.Size != ""
}

// StoneID returns the chosen stone identifier and its category.
func (f FlowContext) StoneID() (string, enums.ProductCategory, bool) {
	if f.DiamondID != "" {
		return f.DiamondID, enums.ProductCategoryDiamond, true
	}
	if f.GemstoneID != "" {
		return f.GemstoneID, enums.ProductCategoryGemstone, true
	}
	return "", "", false
}

// DeriveStep computes the wizard position from a query. This is the single
// shared derivation every page in the flow uses.
func DeriveStep(q url.Values) Step {
	f := DecodeFlow(q)
	_, _, hasStone := f.StoneID()
	hasSetting := f.HasSetting()

	switch {
	case hasSetting && hasStone:
		return StepComplete
	case hasSetting:
		return StepAwaitingStone
	case hasStone:
		return StepAwaitingSetting
	case f.StartWith == enums.ProductCategoryDiamond.String() ||
		f.StartWith == enums.ProductCategoryGemstone.String() ||
		f.StartWith == enums.ProductCategorySetting.String():
		return StepStoneFirst
	default:
		return StepStandalone
	}
}

// ProductRef identifies a clicked listing card.
type ProductRef struct {
	ID       string
	Category enums.ProductCategory
}

// Target is a navigation destination.
type Target struct {
	Path  string
	Query url.Values
}

// String renders the destination as path?query with deterministic encoding.
func (t Target) String() string {
	if len(t.Query) == 0 {
		return t.Path
	}
	return t.Path + "?" + t.Query.Encode()
}

// DetailPath is the product detail route for a category.
func DetailPath(category enums.ProductCategory, id string) string {
	return "/" + category.String() + "/detail/" + id
}

// SelectionTarget computes where clicking a listing card navigates, given
// the page's incoming query. The incoming query is always preserved so an
// earlier choice (setting or stone) is never lost mid-flow.
func SelectionTarget(q url.Values, product ProductRef) Target {
	preserved := cloneValues(q)
	step := DeriveStep(q)

	if step == StepComplete {
		return Target{Path: CompletionPath, Query: preserved}
	}
	return Target{Path: DetailPath(product.Category, product.ID), Query: preserved}
}

// ChooseTarget computes where a detail page's primary action navigates after
// recording the chosen product in the flow parameters. Once both a setting
// and a stone are present the destination is completion, never another
// listing.
func ChooseTarget(q url.Values, product ProductRef) Target {
	next := cloneValues(q)
	switch product.Category {
	case enums.ProductCategoryDiamond:
		next.Set(ParamDiamondID, product.ID)
	case enums.ProductCategoryGemstone:
		next.Set(ParamGemstoneID, product.ID)
	case enums.ProductCategorySetting:
		next.Set(ParamSettingID, product.ID)
	}

	f := DecodeFlow(next)
	_, _, hasStone := f.StoneID()

	if f.HasSetting() && hasStone {
		return Target{Path: CompletionPath, Query: next}
	}
	if hasStone {
		// stone locked in first: browse settings next
		return Target{Path: "/" + enums.ProductCategorySetting.String() + "/all", Query: next}
	}
	if f.SettingID != "" {
		// setting picked, stone still open: browse the stone the flow started
		// with, defaulting to diamonds
		stonePath := enums.ProductCategoryDiamond.String()
		if f.StartWith == enums.ProductCategoryGemstone.String() {
			stonePath = enums.ProductCategoryGemstone.String()
		}
		return Target{Path: "/" + stonePath + "/all", Query: next}
	}
	return Target{Path: DetailPath(product.Category, product.ID), Query: next}
}

func cloneValues(q url.Values) url.Values {
	out := url.Values{}
	for key, values := range q {
		for _, v := range values {
			out.Add(key, v)
		}
	}
	return out
}
