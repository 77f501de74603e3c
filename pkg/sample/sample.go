// Package sample provides a minimal named value type used as a library template.
package sample

import "sync/atomic"

var nextID atomic.Uint64

// Sample holds a name fixed at construction.
//
// Equality, hashing, and string representation are identity based: two samples
// created with the same name are different values.
type Sample struct {
	name string
	id   uint64
}

// New returns a Sample with the given name.
func New(name string) *Sample {
	return &Sample{
		name: name,
		id:   nextID.Add(1),
	}
}

// Name returns the name the sample was created with.
func (s *Sample) Name() string {
	return s.name
}

// Equal reports whether other is the same instance as s.
func (s *Sample) Equal(other *Sample) bool {
	return s == other
}

// Hash returns an identity hash, stable for the lifetime of s.
func (s *Sample) Hash() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// String returns the type name.
func (s *Sample) String() string {
	return "sample.Sample"
}
