package mammo

import (
	"strings"

	"github.com/jpfielding/mammo.go/pkg/mammo/tag"
)

// ImageTypeFields is the multi-valued DICOM ImageType attribute
// decomposed into its positional components
type ImageTypeFields struct {
	Pixels string   // value 1, e.g. "ORIGINAL" or "DERIVED"
	Exam   string   // value 2, e.g. "PRIMARY" or "SECONDARY"
	Flavor *string  // value 3, optional free-text qualifier
	Extras []string // values 4..n
}

// IsValid reports whether both mandatory components are present
func (it ImageTypeFields) IsValid() bool {
	return it.Pixels != "" && it.Exam != ""
}

// Contains reports whether any component equals val exactly
func (it ImageTypeFields) Contains(val string) bool {
	if it.Pixels == val || it.Exam == val {
		return true
	}
	if it.Flavor != nil && *it.Flavor == val {
		return true
	}
	for _, x := range it.Extras {
		if x == val {
			return true
		}
	}
	return false
}

// String renders "pixels|exam|flavor|extras..." with empty flavor shown
// as '' and purely numeric extras skipped
func (it ImageTypeFields) String() string {
	parts := []string{it.Pixels, it.Exam}
	if it.Flavor != nil {
		if *it.Flavor == "" {
			parts = append(parts, "''")
		} else {
			parts = append(parts, *it.Flavor)
		}
	}
	for _, x := range it.Extras {
		if x == "" || isNumeric(x) {
			continue
		}
		parts = append(parts, x)
	}
	return strings.Join(parts, "|")
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// ExtractImageType decomposes the ImageType tag. A missing tag yields
// empty mandatory fields rather than an error.
func ExtractImageType(r TagReader) ImageTypeFields {
	values, ok := r.GetStrings(tag.ImageType)
	if !ok {
		return ImageTypeFields{}
	}
	var it ImageTypeFields
	if len(values) > 0 {
		it.Pixels = values[0]
	}
	if len(values) > 1 {
		it.Exam = values[1]
	}
	if len(values) > 2 {
		flavor := values[2]
		it.Flavor = &flavor
	}
	if len(values) > 3 {
		it.Extras = values[3:]
	}
	return it
}
