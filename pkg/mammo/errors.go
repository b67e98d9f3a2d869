package mammo

import (
	"fmt"

	"github.com/jpfielding/mammo.go/pkg/mammo/tag"
)

// ValidationError reports a value that fails a requested validation,
// such as an unexpected modality code
type ValidationError struct {
	Tag     tag.Tag
	Value   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("(%04X,%04X) %s: %q", e.Tag.Group, e.Tag.Element, e.Message, e.Value)
}

// MissingDataError reports an absent tag on a strict call path
type MissingDataError struct {
	Tag tag.Tag
}

func (e MissingDataError) Error() string {
	name := e.Tag.Name()
	if name == "" {
		name = "element"
	}
	return fmt.Sprintf("missing required %s (%04X,%04X)", name, e.Tag.Group, e.Tag.Element)
}

// ParseError reports a malformed field value
type ParseError struct {
	Tag     tag.Tag
	Value   string
	Message string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("(%04X,%04X) cannot parse %q: %s", e.Tag.Group, e.Tag.Element, e.Value, e.Message)
}
