// Package unique provides an ordered collection that rejects elements
// sharing the same identity, where identity is a weaker relation than
// full value equality.
package unique

import (
	"errors"
	"fmt"
	"sort"
)

// Collection errors
var (
	ErrDuplicate = errors.New("duplicate element for identity")
	ErrNotFound  = errors.New("element not found")
)

// Identified is implemented by element types that distinguish identity
// (the "is this the same record" relation used for uniqueness checks)
// from full value equality.
type Identified[T any] interface {
	// SameAs reports whether the receiver and other share the same identity.
	SameAs(other T) bool
	// Equal reports whether the receiver and other are equal in all fields.
	Equal(other T) bool
}

// List holds elements in insertion order with no two elements sharing
// the identity relation.
type List[T Identified[T]] struct {
	kind     string
	elements []T
}

// NewList creates an empty list. The kind label names the element type
// in error messages, e.g. "person".
func NewList[T Identified[T]](kind string) *List[T] {
	return &List[T]{
		kind:     kind,
		elements: make([]T, 0),
	}
}

// Contains reports whether any stored element shares candidate's identity.
func (l *List[T]) Contains(candidate T) bool {
	return l.indexOf(candidate) >= 0
}

// Add appends element to the list.
// Returns ErrDuplicate if an identity-equal element already exists.
func (l *List[T]) Add(element T) error {
	if l.Contains(element) {
		return fmt.Errorf("add %s: %w", l.kind, ErrDuplicate)
	}
	l.elements = append(l.elements, element)
	return nil
}

// Set overwrites target's position with replacement, preserving its index.
// Returns ErrNotFound if target is absent, and ErrDuplicate if replacement
// collides by identity with a different existing element. A self-replace
// (replacement sharing target's identity) always succeeds.
func (l *List[T]) Set(target, replacement T) error {
	idx := l.indexOf(target)
	if idx < 0 {
		return fmt.Errorf("set %s: %w", l.kind, ErrNotFound)
	}
	for i, existing := range l.elements {
		if i != idx && existing.SameAs(replacement) {
			return fmt.Errorf("set %s: %w", l.kind, ErrDuplicate)
		}
	}
	l.elements[idx] = replacement
	return nil
}

// Remove deletes the element sharing target's identity.
// Returns ErrNotFound if no such element exists.
func (l *List[T]) Remove(target T) error {
	idx := l.indexOf(target)
	if idx < 0 {
		return fmt.Errorf("remove %s: %w", l.kind, ErrNotFound)
	}
	l.elements = append(l.elements[:idx], l.elements[idx+1:]...)
	return nil
}

// ReplaceAll atomically replaces the entire contents with elements.
// Returns ErrDuplicate, without mutating, if elements contains two
// entries sharing an identity.
func (l *List[T]) ReplaceAll(elements []T) error {
	for i := range elements {
		for j := i + 1; j < len(elements); j++ {
			if elements[i].SameAs(elements[j]) {
				return fmt.Errorf("replace %s list: %w", l.kind, ErrDuplicate)
			}
		}
	}
	replaced := make([]T, len(elements))
	copy(replaced, elements)
	l.elements = replaced
	return nil
}

// Elements returns the stored elements in insertion order.
// The returned slice is a read-only view; callers must not mutate it.
func (l *List[T]) Elements() []T {
	return l.elements
}

// Len returns the number of stored elements.
func (l *List[T]) Len() int {
	return len(l.elements)
}

// Sort reorders the list in place using the given ordering.
func (l *List[T]) Sort(less func(a, b T) bool) {
	sort.SliceStable(l.elements, func(i, j int) bool {
		return less(l.elements[i], l.elements[j])
	})
}

// Equal reports whether both lists hold equal elements in the same order,
// using full value equality rather than identity.
func (l *List[T]) Equal(other *List[T]) bool {
	if other == nil || len(l.elements) != len(other.elements) {
		return false
	}
	for i, element := range l.elements {
		if !element.Equal(other.elements[i]) {
			return false
		}
	}
	return true
}

func (l *List[T]) indexOf(target T) int {
	for i, existing := range l.elements {
		if existing.SameAs(target) {
			return i
		}
	}
	return -1
}
