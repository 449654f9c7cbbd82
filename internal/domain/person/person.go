// Package person provides the Person entity and its validated value types.
package person

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"rollcall/internal/domain/tag"
)

// Validation errors
var (
	// ErrInvalidName is returned when a name fails format validation.
	ErrInvalidName = errors.New("name must start with an alphanumeric character and contain only alphanumerics and spaces")
	// ErrInvalidPayRate is returned when a pay rate is negative.
	ErrInvalidPayRate = errors.New("pay rate must be a non-negative integer")
)

var namePattern = regexp.MustCompile(`^[\p{L}\p{N}][\p{L}\p{N} ]*$`)

// Name is a validated person name. It is the person's identity in the roster.
type Name string

// NewName creates a Name from raw.
// Returns ErrInvalidName if raw does not match the name format.
func NewName(raw string) (Name, error) {
	if !namePattern.MatchString(raw) {
		return "", fmt.Errorf("%q: %w", raw, ErrInvalidName)
	}
	return Name(raw), nil
}

// IsValidName reports whether raw matches the name format.
func IsValidName(raw string) bool {
	return namePattern.MatchString(raw)
}

func (n Name) String() string {
	return string(n)
}

// PayRate is an hourly pay rate in whole currency units.
type PayRate int

// NewPayRate creates a PayRate from value.
// Returns ErrInvalidPayRate if value is negative.
func NewPayRate(value int) (PayRate, error) {
	if value < 0 {
		return 0, fmt.Errorf("%d: %w", value, ErrInvalidPayRate)
	}
	return PayRate(value), nil
}

// Int returns the rate as a plain integer.
func (p PayRate) Int() int {
	return int(p)
}

// Field selects a person attribute for sorting.
type Field int

const (
	// FieldName orders persons alphabetically by name.
	FieldName Field = iota
	// FieldPayRate orders persons by ascending hourly rate.
	FieldPayRate
)

func (f Field) String() string {
	switch f {
	case FieldPayRate:
		return "payrate"
	default:
		return "name"
	}
}

// Person represents a roster member. Identity is the name; pay rate and
// tags are attributes covered only by full value equality.
type Person struct {
	name    Name
	payRate PayRate
	tags    []tag.Tag
}

// New creates a Person with the given name, hourly rate, and tags.
// Duplicate tags are collapsed and the tag set is kept sorted by label.
func New(name Name, payRate PayRate, tags ...tag.Tag) Person {
	return Person{
		name:    name,
		payRate: payRate,
		tags:    normalizeTags(tags),
	}
}

// Name returns the person's name.
func (p Person) Name() Name {
	return p.name
}

// PayRate returns the person's hourly rate.
func (p Person) PayRate() PayRate {
	return p.payRate
}

// Tags returns the person's tags sorted by label.
// The returned slice is a read-only view; callers must not mutate it.
func (p Person) Tags() []tag.Tag {
	return p.tags
}

// SameAs reports whether both persons share the same name.
func (p Person) SameAs(other Person) bool {
	return p.name == other.name
}

// Equal reports whether both persons match in name, pay rate, and tags.
func (p Person) Equal(other Person) bool {
	if p.name != other.name || p.payRate != other.payRate {
		return false
	}
	if len(p.tags) != len(other.tags) {
		return false
	}
	for i, t := range p.tags {
		if !t.Equal(other.tags[i]) {
			return false
		}
	}
	return true
}

// Less reports whether p orders before other on the given field.
// Ties fall back to name order so sorting stays deterministic.
func (p Person) Less(other Person, field Field) bool {
	if field == FieldPayRate && p.payRate != other.payRate {
		return p.payRate < other.payRate
	}
	return p.name < other.name
}

func (p Person) String() string {
	var b strings.Builder
	b.WriteString(p.name.String())
	fmt.Fprintf(&b, "; Pay rate: %d/hr", p.payRate.Int())
	if len(p.tags) > 0 {
		b.WriteString("; Tags: ")
		for _, t := range p.tags {
			b.WriteString(t.String())
		}
	}
	return b.String()
}

func normalizeTags(tags []tag.Tag) []tag.Tag {
	seen := make(map[string]struct{}, len(tags))
	result := make([]tag.Tag, 0, len(tags))
	for _, t := range tags {
		if _, ok := seen[t.Label()]; ok {
			continue
		}
		seen[t.Label()] = struct{}{}
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Label() < result[j].Label()
	})
	return result
}
