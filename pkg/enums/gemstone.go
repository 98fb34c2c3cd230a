package enums

import "fmt"

// GemstoneType is the mineral species of a colored stone.
type GemstoneType string

const (
	GemstoneTypeSapphire   GemstoneType = "Sapphire"
	GemstoneTypeRuby       GemstoneType = "Ruby"
	GemstoneTypeEmerald    GemstoneType = "Emerald"
	GemstoneTypeAquamarine GemstoneType = "Aquamarine"
	GemstoneTypeMorganite  GemstoneType = "Morganite"
	GemstoneTypeTanzanite  GemstoneType = "Tanzanite"
	GemstoneTypeAmethyst   GemstoneType = "Amethyst"
	GemstoneTypeTopaz      GemstoneType = "Topaz"
	GemstoneTypeOpal       GemstoneType = "Opal"
	GemstoneTypeTourmaline GemstoneType = "Tourmaline"
)

var validGemstoneTypes = []GemstoneType{
	GemstoneTypeSapphire,
	GemstoneTypeRuby,
	GemstoneTypeEmerald,
	GemstoneTypeAquamarine,
	GemstoneTypeMorganite,
	GemstoneTypeTanzanite,
	GemstoneTypeAmethyst,
	GemstoneTypeTopaz,
	GemstoneTypeOpal,
	GemstoneTypeTourmaline,
}

func (g GemstoneType) String() string { return string(g) }

func (g GemstoneType) IsValid() bool {
	for _, candidate := range validGemstoneTypes {
		if candidate == g {
			return true
		}
	}
	return false
}

func ParseGemstoneType(value string) (GemstoneType, error) {
	for _, candidate := range validGemstoneTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid gemstone type %q", value)
}

// GemstoneTypeValues returns the allowed type facet values.
func GemstoneTypeValues() []string {
	return stringValues(validGemstoneTypes)
}

// GemstoneColor is the dominant hue of a colored stone.
type GemstoneColor string

const (
	GemstoneColorBlue   GemstoneColor = "Blue"
	GemstoneColorRed    GemstoneColor = "Red"
	GemstoneColorGreen  GemstoneColor = "Green"
	GemstoneColorPink   GemstoneColor = "Pink"
	GemstoneColorPurple GemstoneColor = "Purple"
	GemstoneColorYellow GemstoneColor = "Yellow"
	GemstoneColorWhite  GemstoneColor = "White"
	GemstoneColorTeal   GemstoneColor = "Teal"
	GemstoneColorPeach  GemstoneColor = "Peach"
)

var validGemstoneColors = []GemstoneColor{
	GemstoneColorBlue,
	GemstoneColorRed,
	GemstoneColorGreen,
	GemstoneColorPink,
	GemstoneColorPurple,
	GemstoneColorYellow,
	GemstoneColorWhite,
	GemstoneColorTeal,
	GemstoneColorPeach,
}

func (g GemstoneColor) String() string { return string(g) }

func (g GemstoneColor) IsValid() bool {
	for _, candidate := range validGemstoneColors {
		if candidate == g {
			return true
		}
	}
	return false
}

func ParseGemstoneColor(value string) (GemstoneColor, error) {
	for _, candidate := range validGemstoneColors {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid gemstone color %q", value)
}

// GemstoneColorValues returns the allowed color facet values.
func GemstoneColorValues() []string {
	return stringValues(validGemstoneColors)
}
