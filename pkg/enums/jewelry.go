package enums

import "fmt"

// Metal is the alloy a piece is cast in.
type Metal string

const (
	Metal14KWhiteGold  Metal = "14k-white-gold"
	Metal14KYellowGold Metal = "14k-yellow-gold"
	Metal14KRoseGold   Metal = "14k-rose-gold"
	Metal18KWhiteGold  Metal = "18k-white-gold"
	Metal18KYellowGold Metal = "18k-yellow-gold"
	MetalPlatinum      Metal = "platinum"
)

var validMetals = []Metal{
	Metal14KWhiteGold,
	Metal14KYellowGold,
	Metal14KRoseGold,
	Metal18KWhiteGold,
	Metal18KYellowGold,
	MetalPlatinum,
}

func (m Metal) String() string { return string(m) }

func (m Metal) IsValid() bool {
	for _, candidate := range validMetals {
		if candidate == m {
			return true
		}
	}
	return false
}

func ParseMetal(value string) (Metal, error) {
	for _, candidate := range validMetals {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid metal %q", value)
}

// MetalValues returns the allowed metal facet values.
func MetalValues() []string {
	return stringValues(validMetals)
}

// Style is the design family of a finished piece. The valid set depends on
// category; StyleValuesFor narrows it.
type Style string

const (
	// settings
	StyleSolitaire  Style = "solitaire"
	StyleHalo       Style = "halo"
	StylePave       Style = "pave"
	StyleThreeStone Style = "three-stone"
	StyleVintage    Style = "vintage"
	StyleHiddenHalo Style = "hidden-halo"
	// earrings
	StyleStud    Style = "stud"
	StyleHoop    Style = "hoop"
	StyleDrop    Style = "drop"
	StyleDangle  Style = "dangle"
	StyleHuggie  Style = "huggie"
	StyleClimber Style = "climber"
	// necklaces
	StylePendant Style = "pendant"
	StyleStation Style = "station"
	StyleTennis  Style = "tennis"
	StyleLocket  Style = "locket"
	// bracelets
	StyleBangle Style = "bangle"
	StyleCuff   Style = "cuff"
	StyleChain  Style = "chain"
	StyleCharm  Style = "charm"
	// men's
	StyleRing      Style = "ring"
	StyleBand      Style = "band"
	StyleBracelet  Style = "bracelet"
	StyleCufflinks Style = "cufflinks"
)

var stylesByCategory = map[ProductCategory][]Style{
	ProductCategorySetting:  {StyleSolitaire, StyleHalo, StylePave, StyleThreeStone, StyleVintage, StyleHiddenHalo},
	ProductCategoryEarring:  {StyleStud, StyleHoop, StyleDrop, StyleDangle, StyleHuggie, StyleClimber},
	ProductCategoryNecklace: {StylePendant, StyleSolitaire, StyleHalo, StyleStation, StyleTennis, StyleLocket},
	ProductCategoryBracelet: {StyleTennis, StyleBangle, StyleCuff, StyleChain, StyleCharm},
	ProductCategoryMens:     {StyleRing, StyleBand, StyleChain, StyleBracelet, StyleCufflinks},
}

func (s Style) String() string { return string(s) }

// IsValidFor reports whether the style belongs to the category's design set.
func (s Style) IsValidFor(category ProductCategory) bool {
	for _, candidate := range stylesByCategory[category] {
		if candidate == s {
			return true
		}
	}
	return false
}

func ParseStyle(category ProductCategory, value string) (Style, error) {
	for _, candidate := range stylesByCategory[category] {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid %s style %q", category, value)
}

// StyleValuesFor returns the allowed style facet values for a category.
func StyleValuesFor(category ProductCategory) []string {
	return stringValues(stylesByCategory[category])
}

// RingSize is a US ring size carried through the customization flow.
type RingSize string

var validRingSizes = []RingSize{
	"4", "4.5", "5", "5.5", "6", "6.5", "7", "7.5", "8", "8.5", "9", "9.5", "10",
}

func (r RingSize) String() string { return string(r) }

func (r RingSize) IsValid() bool {
	for _, candidate := range validRingSizes {
		if candidate == r {
			return true
		}
	}
	return false
}

// RingSizeValues returns the orderable ring sizes.
func RingSizeValues() []string {
	return stringValues(validRingSizes)
}
