package mammo

import (
	"fmt"
	"strings"
)

// Technique is the breast-imaging acquisition method
type Technique int

const (
	TechniqueUnknown Technique = iota
	TechniqueTomosynthesis
	TechniqueFullFieldDigital
	TechniqueSynthetic2D
	TechniqueFilmScreen
)

// String returns the display name for a technique
func (t Technique) String() string {
	switch t {
	case TechniqueTomosynthesis:
		return "Tomosynthesis"
	case TechniqueFullFieldDigital:
		return "Full-Field Digital"
	case TechniqueSynthetic2D:
		return "Synthetic 2D"
	case TechniqueFilmScreen:
		return "Film-Screen"
	default:
		return "Unknown"
	}
}

// IsUnknown reports whether classification failed to pin a technique
func (t Technique) IsUnknown() bool {
	return t == TechniqueUnknown
}

// Is2D reports whether the technique produces a single 2D projection
func (t Technique) Is2D() bool {
	return t != TechniqueTomosynthesis
}

// Is3D reports whether the technique produces a volume
func (t Technique) Is3D() bool {
	return t == TechniqueTomosynthesis
}

// ParseTechnique maps a display or config name back to a technique
func ParseTechnique(s string) (Technique, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tomo", "tomosynthesis", "dbt":
		return TechniqueTomosynthesis, nil
	case "ffdm", "full-field digital", "digital":
		return TechniqueFullFieldDigital, nil
	case "synth", "synthetic", "synthetic 2d", "c-view":
		return TechniqueSynthetic2D, nil
	case "sfm", "film", "film-screen":
		return TechniqueFilmScreen, nil
	case "unknown":
		return TechniqueUnknown, nil
	}
	return TechniqueUnknown, fmt.Errorf("unrecognized technique %q", s)
}

// MarshalYAML renders the technique as its config name
func (t Technique) MarshalYAML() (interface{}, error) {
	switch t {
	case TechniqueTomosynthesis:
		return "tomo", nil
	case TechniqueFullFieldDigital:
		return "ffdm", nil
	case TechniqueSynthetic2D:
		return "synth", nil
	case TechniqueFilmScreen:
		return "sfm", nil
	}
	return "unknown", nil
}

// UnmarshalYAML accepts any name ParseTechnique recognizes
func (t *Technique) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseTechnique(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// PreferenceOrder is a named ranking strategy over techniques.
// Lower rank means more preferred; Unknown always ranks last.
type PreferenceOrder int

const (
	// OrderDefault prefers 2D digital images over volumes
	OrderDefault PreferenceOrder = iota
	// OrderTomoFirst prefers tomosynthesis volumes when present
	OrderTomoFirst
)

// Rank returns the preference rank of a technique under this order
func (o PreferenceOrder) Rank(t Technique) int {
	switch o {
	case OrderTomoFirst:
		switch t {
		case TechniqueTomosynthesis:
			return 1
		case TechniqueFullFieldDigital:
			return 2
		case TechniqueSynthetic2D:
			return 3
		case TechniqueFilmScreen:
			return 4
		}
	default:
		switch t {
		case TechniqueFullFieldDigital:
			return 1
		case TechniqueSynthetic2D:
			return 2
		case TechniqueTomosynthesis:
			return 3
		case TechniqueFilmScreen:
			return 4
		}
	}
	return 5
}

// String returns the order name
func (o PreferenceOrder) String() string {
	if o == OrderTomoFirst {
		return "tomo-first"
	}
	return "default"
}

// ParsePreferenceOrder maps a CLI/config name to a preference order
func ParsePreferenceOrder(s string) (PreferenceOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return OrderDefault, nil
	case "tomo-first", "tomofirst", "tomo_first":
		return OrderTomoFirst, nil
	}
	return OrderDefault, fmt.Errorf("unrecognized preference order %q", s)
}
