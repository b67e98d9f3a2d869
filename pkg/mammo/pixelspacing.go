package mammo

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/jpfielding/mammo.go/pkg/mammo/tag"
)

// PixelSpacing is the physical spacing between adjacent pixels in
// millimeters, row then column
type PixelSpacing struct {
	Row float64
	Col float64
}

// spacing values show up as "0.1\0.1", "0.1 0.1", "[0.1, 0.1]" and in
// exponential notation
var pixelSpacingRe = regexp.MustCompile(`(\d+\.?\d*(?:[e\-\d]+)?)[^\d.]+(\d+\.?\d*(?:[e\-\d]+)?)`)

// String renders "row x col mm"
func (ps PixelSpacing) String() string {
	return fmt.Sprintf("%g x %g mm", ps.Row, ps.Col)
}

// ParsePixelSpacing parses a two-valued spacing string
func ParsePixelSpacing(s string) (PixelSpacing, error) {
	caps := pixelSpacingRe.FindStringSubmatch(s)
	if caps == nil {
		return PixelSpacing{}, ParseError{
			Tag:     tag.PixelSpacing,
			Value:   s,
			Message: "expected two spacing values",
		}
	}
	row, err := strconv.ParseFloat(caps[1], 64)
	if err != nil {
		return PixelSpacing{}, ParseError{Tag: tag.PixelSpacing, Value: caps[1], Message: "bad row spacing"}
	}
	col, err := strconv.ParseFloat(caps[2], 64)
	if err != nil {
		return PixelSpacing{}, ParseError{Tag: tag.PixelSpacing, Value: caps[2], Message: "bad column spacing"}
	}
	return PixelSpacing{Row: row, Col: col}, nil
}

// ExtractPixelSpacing reads spacing from PixelSpacing, falling back to
// ImagerPixelSpacing. Returns false when neither tag parses.
func ExtractPixelSpacing(r TagReader) (PixelSpacing, bool) {
	for _, t := range []Tag{tag.PixelSpacing, tag.ImagerPixelSpacing} {
		if vals, ok := r.GetFloats(t); ok && len(vals) >= 2 {
			return PixelSpacing{Row: vals[0], Col: vals[1]}, true
		}
		if s, ok := r.GetString(t); ok {
			if ps, err := ParsePixelSpacing(s); err == nil {
				return ps, true
			}
		}
	}
	return PixelSpacing{}, false
}
