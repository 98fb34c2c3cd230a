package enums

import "fmt"

// DiamondShape is the cut outline of a stone.
type DiamondShape string

const (
	DiamondShapeRound    DiamondShape = "Round"
	DiamondShapePrincess DiamondShape = "Princess"
	DiamondShapeCushion  DiamondShape = "Cushion"
	DiamondShapeEmerald  DiamondShape = "Emerald"
	DiamondShapeOval     DiamondShape = "Oval"
	DiamondShapeRadiant  DiamondShape = "Radiant"
	DiamondShapeAsscher  DiamondShape = "Asscher"
	DiamondShapeMarquise DiamondShape = "Marquise"
	DiamondShapeHeart    DiamondShape = "Heart"
	DiamondShapePear     DiamondShape = "Pear"
)

var validDiamondShapes = []DiamondShape{
	DiamondShapeRound,
	DiamondShapePrincess,
	DiamondShapeCushion,
	DiamondShapeEmerald,
	DiamondShapeOval,
	DiamondShapeRadiant,
	DiamondShapeAsscher,
	DiamondShapeMarquise,
	DiamondShapeHeart,
	DiamondShapePear,
}

func (s DiamondShape) String() string { return string(s) }

func (s DiamondShape) IsValid() bool {
	for _, candidate := range validDiamondShapes {
		if candidate == s {
			return true
		}
	}
	return false
}

func ParseDiamondShape(value string) (DiamondShape, error) {
	for _, candidate := range validDiamondShapes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid diamond shape %q", value)
}

// DiamondShapeValues returns the allowed shape facet values.
func DiamondShapeValues() []string {
	return stringValues(validDiamondShapes)
}

// DiamondColor is the GIA color grade, D (colorless) through K (faint).
type DiamondColor string

const (
	DiamondColorD DiamondColor = "D"
	DiamondColorE DiamondColor = "E"
	DiamondColorF DiamondColor = "F"
	DiamondColorG DiamondColor = "G"
	DiamondColorH DiamondColor = "H"
	DiamondColorI DiamondColor = "I"
	DiamondColorJ DiamondColor = "J"
	DiamondColorK DiamondColor = "K"
)

var validDiamondColors = []DiamondColor{
	DiamondColorD, DiamondColorE, DiamondColorF, DiamondColorG,
	DiamondColorH, DiamondColorI, DiamondColorJ, DiamondColorK,
}

func (c DiamondColor) String() string { return string(c) }

func (c DiamondColor) IsValid() bool {
	for _, candidate := range validDiamondColors {
		if candidate == c {
			return true
		}
	}
	return false
}

func ParseDiamondColor(value string) (DiamondColor, error) {
	for _, candidate := range validDiamondColors {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid diamond color %q", value)
}

// DiamondColorValues returns the allowed color facet values.
func DiamondColorValues() []string {
	return stringValues(validDiamondColors)
}

// DiamondClarity is the GIA clarity grade.
type DiamondClarity string

const (
	DiamondClarityFL   DiamondClarity = "FL"
	DiamondClarityIF   DiamondClarity = "IF"
	DiamondClarityVVS1 DiamondClarity = "VVS1"
	DiamondClarityVVS2 DiamondClarity = "VVS2"
	DiamondClarityVS1  DiamondClarity = "VS1"
	DiamondClarityVS2  DiamondClarity = "VS2"
	DiamondClaritySI1  DiamondClarity = "SI1"
	DiamondClaritySI2  DiamondClarity = "SI2"
	DiamondClarityI1   DiamondClarity = "I1"
)

var validDiamondClarities = []DiamondClarity{
	DiamondClarityFL, DiamondClarityIF,
	DiamondClarityVVS1, DiamondClarityVVS2,
	DiamondClarityVS1, DiamondClarityVS2,
	DiamondClaritySI1, DiamondClaritySI2,
	DiamondClarityI1,
}

func (c DiamondClarity) String() string { return string(c) }

func (c DiamondClarity) IsValid() bool {
	for _, candidate := range validDiamondClarities {
		if candidate == c {
			return true
		}
	}
	return false
}

func ParseDiamondClarity(value string) (DiamondClarity, error) {
	for _, candidate := range validDiamondClarities {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid diamond clarity %q", value)
}

// DiamondClarityValues returns the allowed clarity facet values.
func DiamondClarityValues() []string {
	return stringValues(validDiamondClarities)
}

// DiamondCut is the lab cut grade.
type DiamondCut string

const (
	DiamondCutIdeal     DiamondCut = "Ideal"
	DiamondCutExcellent DiamondCut = "Excellent"
	DiamondCutVeryGood  DiamondCut = "Very Good"
	DiamondCutGood      DiamondCut = "Good"
	DiamondCutFair      DiamondCut = "Fair"
)

var validDiamondCuts = []DiamondCut{
	DiamondCutIdeal,
	DiamondCutExcellent,
	DiamondCutVeryGood,
	DiamondCutGood,
	DiamondCutFair,
}

func (c DiamondCut) String() string { return string(c) }

func (c DiamondCut) IsValid() bool {
	for _, candidate := range validDiamondCuts {
		if candidate == c {
			return true
		}
	}
	return false
}

func ParseDiamondCut(value string) (DiamondCut, error) {
	for _, candidate := range validDiamondCuts {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid diamond cut %q", value)
}

// DiamondCutValues returns the allowed cut facet values.
func DiamondCutValues() []string {
	return stringValues(validDiamondCuts)
}

func stringValues[T fmt.Stringer](values []T) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, v.String())
	}
	return out
}
