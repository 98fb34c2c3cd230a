package browse

import (
	"net/url"
	"strings"
	"testing"

	"github.com/solsticegems/solstice-backend/pkg/enums"
)

func TestDeriveStep(t *testing.T) {
	cases := []struct {
		name  string
		query string
		want  Step
	}{
		{"standalone", "", StepStandalone},
		{"standalone with filters", "shapes=Round&sort=price-asc", StepStandalone},
		{"stone first", "start=diamond", StepStoneFirst},
		{"gemstone first", "start=gemstone", StepStoneFirst},
		{"setting first start", "start=setting", StepStoneFirst},
		{"setting chosen", "settingId=s1&metal=platinum&size=6", StepAwaitingStone},
		{"stone chosen", "start=diamond&diamondId=d1", StepAwaitingSetting},
		{"gemstone chosen", "gemstoneId=g1", StepAwaitingSetting},
		{"both chosen", "settingId=s1&metal=platinum&size=6&diamondId=d1", StepComplete},
		{"both chosen gemstone", "settingId=s1&metal=platinum&size=6&gemstoneId=g1", StepComplete},
		{"incomplete setting params", "settingId=s1&metal=platinum", StepStandalone},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q, err := url.ParseQuery(tc.query)
			if err != nil {
				t.Fatalf("parse query: %v", err)
			}
			if got := DeriveStep(q); got != tc.want {
				t.Fatalf("expected step %d, got %d", tc.want, got)
			}
		})
	}
}

func TestSelectionTargetPreservesQueryAwaitingStone(t *testing.T) {
	incoming, _ := url.ParseQuery("settingId=s1&metal=platinum&size=6&shapes=Round&sort=price-asc")

	target := SelectionTarget(incoming, ProductRef{ID: "d42", Category: enums.ProductCategoryDiamond})

	if target.Path != "/diamond/detail/d42" {
		t.Fatalf("expected stone detail path, got %s", target.Path)
	}
	for key, values := range incoming {
		if target.Query.Get(key) != values[0] {
			t.Fatalf("incoming query param %s=%s lost in outgoing query", key, values[0])
		}
	}
}

func TestSelectionTargetCarriesStartForward(t *testing.T) {
	incoming, _ := url.ParseQuery("start=diamond")

	target := SelectionTarget(incoming, ProductRef{ID: "d7", Category: enums.ProductCategoryDiamond})

	if target.Path != "/diamond/detail/d7" {
		t.Fatalf("unexpected path %s", target.Path)
	}
	if target.Query.Get(ParamStart) != "diamond" {
		t.Fatal("start parameter must carry forward to the detail page")
	}
}

func TestSelectionTargetStandaloneGoesToDetail(t *testing.T) {
	target := SelectionTarget(url.Values{}, ProductRef{ID: "n3", Category: enums.ProductCategoryNecklace})
	if target.Path != "/necklace/detail/n3" {
		t.Fatalf("unexpected path %s", target.Path)
	}
	if len(target.Query) != 0 {
		t.Fatalf("standalone click must leave the query untouched, got %v", target.Query)
	}
}

func TestSelectionTargetBothChosenRoutesToCompletion(t *testing.T) {
	incoming, _ := url.ParseQuery("settingId=s1&metal=platinum&size=6&diamondId=d1")

	target := SelectionTarget(incoming, ProductRef{ID: "d1", Category: enums.ProductCategoryDiamond})

	if target.Path != CompletionPath {
		t.Fatalf("expected completion destination, got %s", target.Path)
	}
	if target.Query.Get(ParamSettingID) != "s1" || target.Query.Get(ParamDiamondID) != "d1" {
		t.Fatal("completion destination must carry both identifiers")
	}
}

func TestChooseTargetCompletesWhenBothPresent(t *testing.T) {
	incoming, _ := url.ParseQuery("settingId=s1&metal=platinum&size=6")

	target := ChooseTarget(incoming, ProductRef{ID: "d9", Category: enums.ProductCategoryDiamond})

	if target.Path != CompletionPath {
		t.Fatalf("choosing a diamond with a setting in hand must route to completion, got %s", target.Path)
	}
	if target.Query.Get(ParamDiamondID) != "d9" {
		t.Fatal("chosen diamond id must be recorded")
	}
	if target.Query.Get(ParamSettingID) != "s1" || target.Query.Get(ParamMetal) != "platinum" {
		t.Fatal("setting choice must survive")
	}
}

func TestChooseTargetStoneFirstBrowsesSettings(t *testing.T) {
	incoming, _ := url.ParseQuery("start=diamond")

	target := ChooseTarget(incoming, ProductRef{ID: "d5", Category: enums.ProductCategoryDiamond})

	if target.Path != "/setting/all" {
		t.Fatalf("after picking a stone first, next stop is settings, got %s", target.Path)
	}
	if target.Query.Get(ParamDiamondID) != "d5" || target.Query.Get(ParamStart) != "diamond" {
		t.Fatalf("flow params lost: %v", target.Query)
	}
}

func TestChooseTargetSettingFirstBrowsesStones(t *testing.T) {
	incoming, _ := url.ParseQuery("start=gemstone&settingId=s2&metal=platinum&size=7")
	// setting id present without a stone: detail action sends the user to the
	// stone listing the flow started with
	incoming.Del(ParamSettingID)

	target := ChooseTarget(incoming, ProductRef{ID: "s2", Category: enums.ProductCategorySetting})

	if target.Path != "/gemstone/all" {
		t.Fatalf("expected gemstone listing, got %s", target.Path)
	}
	if target.Query.Get(ParamSettingID) != "s2" {
		t.Fatal("setting id must be recorded before browsing stones")
	}
}

func TestTargetStringEncoding(t *testing.T) {
	q, _ := url.ParseQuery("settingId=s1&metal=platinum")
	target := Target{Path: "/diamond/all", Query: q}
	rendered := target.String()
	if !strings.HasPrefix(rendered, "/diamond/all?") {
		t.Fatalf("unexpected rendering %s", rendered)
	}
	if (Target{Path: "/diamond/all"}).String() != "/diamond/all" {
		t.Fatal("empty query must render the bare path")
	}
}
