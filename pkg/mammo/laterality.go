package mammo

import "strings"

// Laterality is the breast side an image depicts
type Laterality int

const (
	LateralityUnknown Laterality = iota
	LateralityNone
	LateralityLeft
	LateralityRight
	LateralityBilateral
)

// String returns the display name for a laterality
func (l Laterality) String() string {
	switch l {
	case LateralityNone:
		return "None"
	case LateralityLeft:
		return "Left"
	case LateralityRight:
		return "Right"
	case LateralityBilateral:
		return "Bilateral"
	default:
		return "Unknown"
	}
}

// Code returns the single-letter DICOM code, or empty when there is none
func (l Laterality) Code() string {
	switch l {
	case LateralityLeft:
		return "L"
	case LateralityRight:
		return "R"
	case LateralityBilateral:
		return "B"
	}
	return ""
}

// Opposite returns the other side; non-sided values map to themselves
func (l Laterality) Opposite() Laterality {
	switch l {
	case LateralityLeft:
		return LateralityRight
	case LateralityRight:
		return LateralityLeft
	}
	return l
}

// Reduce combines two lateralities into one. Unknown on either side
// yields the other value, conflicting sides collapse to Bilateral, and
// None defers to any sided value.
func (l Laterality) Reduce(other Laterality) Laterality {
	if l == LateralityUnknown {
		return other
	}
	if other == LateralityUnknown {
		return l
	}
	if l == LateralityBilateral || other == LateralityBilateral {
		return LateralityBilateral
	}
	if l == LateralityNone {
		return other
	}
	if other == LateralityNone {
		return l
	}
	if l != other {
		return LateralityBilateral
	}
	return l
}

// ParseLaterality maps a DICOM laterality code to a side.
// Anything other than L or R is Unknown.
func ParseLaterality(s string) Laterality {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "l":
		return LateralityLeft
	case "r":
		return LateralityRight
	}
	return LateralityUnknown
}
