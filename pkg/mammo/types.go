package mammo

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/jpfielding/mammo.go/pkg/mammo/tag"
)

// Dataset represents a parsed DICOM metadata set
type Dataset struct {
	Elements map[Tag]*Element
}

// Element represents a single DICOM element
type Element struct {
	Tag   Tag
	VR    string      // Value Representation
	Value interface{} // Parsed value
}

// Tag alias to avoid duplication
type Tag = tag.Tag

// TagReader is the read-only view the classifiers consume. Dataset
// implements it, as does anything else that can answer tag lookups.
type TagReader interface {
	GetString(t Tag) (string, bool)
	GetStrings(t Tag) ([]string, bool)
	GetInt(t Tag) (int, bool)
	GetFloats(t Tag) ([]float64, bool)
	GetItems(t Tag) []*Dataset
}

// FindElement returns an element by tag
func (ds *Dataset) FindElement(group, element uint16) (*Element, bool) {
	elem, ok := ds.Elements[Tag{Group: group, Element: element}]
	return elem, ok
}

// GetString returns a single string value for a tag.
// Multi-valued backslash strings return their first component.
func (ds *Dataset) GetString(t Tag) (string, bool) {
	elem, ok := ds.Elements[t]
	if !ok {
		return "", false
	}
	switch v := elem.Value.(type) {
	case string:
		return v, true
	case []string:
		if len(v) > 0 {
			return v[0], true
		}
	}
	return "", false
}

// GetStrings returns all string components for a tag.
// A scalar string is split on the DICOM multi-value separator.
func (ds *Dataset) GetStrings(t Tag) ([]string, bool) {
	elem, ok := ds.Elements[t]
	if !ok {
		return nil, false
	}
	switch v := elem.Value.(type) {
	case []string:
		return v, true
	case string:
		return strings.Split(v, `\`), true
	}
	return nil, false
}

// GetInt returns an int value for a tag
func (ds *Dataset) GetInt(t Tag) (int, bool) {
	elem, ok := ds.Elements[t]
	if !ok {
		return 0, false
	}
	return elem.GetInt()
}

// GetFloats returns a slice of float64s for a tag
func (ds *Dataset) GetFloats(t Tag) ([]float64, bool) {
	elem, ok := ds.Elements[t]
	if !ok {
		return nil, false
	}
	return elem.GetFloats()
}

// GetItems returns the items of a sequence element.
// Returns nil if the element is absent or not a sequence.
func (ds *Dataset) GetItems(t Tag) []*Dataset {
	elem, ok := ds.Elements[t]
	if !ok {
		return nil
	}
	items, ok := elem.Value.([]*Dataset)
	if !ok {
		return nil
	}
	return items
}

// GetString returns a string value from an element
func (elem *Element) GetString() (string, bool) {
	if s, ok := elem.Value.(string); ok {
		return s, true
	}
	return "", false
}

// GetInt returns an int value from an element
func (elem *Element) GetInt() (int, bool) {
	switch v := elem.Value.(type) {
	case uint16:
		return int(v), true
	case uint32:
		return int(v), true
	case int:
		return v, true
	case int32:
		return int(v), true
	case string:
		var i int
		if _, err := fmt.Sscanf(strings.TrimSpace(v), "%d", &i); err == nil {
			return i, true
		}
	case []byte:
		if len(v) == 2 {
			return int(binary.LittleEndian.Uint16(v)), true
		}
		if len(v) == 4 {
			return int(binary.LittleEndian.Uint32(v)), true
		}
	}
	return 0, false
}

// GetFloats returns a slice of float64s from an element
func (elem *Element) GetFloats() ([]float64, bool) {
	switch v := elem.Value.(type) {
	case []float32:
		res := make([]float64, len(v))
		for i, val := range v {
			res[i] = float64(val)
		}
		return res, true
	case []float64:
		return v, true
	case float32:
		return []float64{float64(v)}, true
	case float64:
		return []float64{v}, true
	case string:
		parts := strings.Split(v, `\`)
		res := make([]float64, 0, len(parts))
		for _, p := range parts {
			var f float64
			if _, err := fmt.Sscanf(strings.TrimSpace(p), "%g", &f); err != nil {
				return nil, false
			}
			res = append(res, f)
		}
		return res, true
	}
	return nil, false
}

// RequireString returns a tag's string value, or a MissingDataError when
// the element is absent. For callers that cannot proceed without the tag;
// the classifiers themselves treat absence as Unknown.
func RequireString(r TagReader, t Tag) (string, error) {
	s, ok := r.GetString(t)
	if !ok {
		return "", MissingDataError{Tag: t}
	}
	return s, nil
}
