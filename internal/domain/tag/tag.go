// Package tag provides the tag label attached to persons in the roster.
package tag

import (
	"errors"
	"regexp"
)

// ErrInvalidLabel is returned when a tag label fails format validation.
var ErrInvalidLabel = errors.New("tag label must be alphanumeric")

var labelPattern = regexp.MustCompile(`^[\p{L}\p{N}]+$`)

// Tag is a validated alphanumeric label. Its identity is the label itself.
type Tag struct {
	label string
}

// New creates a Tag from label.
// Returns ErrInvalidLabel if label is empty or not alphanumeric.
func New(label string) (Tag, error) {
	if !labelPattern.MatchString(label) {
		return Tag{}, ErrInvalidLabel
	}
	return Tag{label: label}, nil
}

// Label returns the tag's label.
func (t Tag) Label() string {
	return t.label
}

// SameAs reports whether both tags carry the same label.
func (t Tag) SameAs(other Tag) bool {
	return t.label == other.label
}

// Equal is identical to SameAs; a tag has no attributes beyond its label.
func (t Tag) Equal(other Tag) bool {
	return t.SameAs(other)
}

func (t Tag) String() string {
	return "[" + t.label + "]"
}
