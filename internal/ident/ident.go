// Package ident generates identifiers for new catalog entities.
package ident

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/lucsky/cuid"
)

// Generator returns a new unique identifier on each call.
type Generator interface {
	NewID() string
}

// UUID generates random (version 4) UUIDs.
type UUID struct{}

// NewID returns a new UUID string.
func (UUID) NewID() string { return uuid.New().String() }

// CUID generates collision-resistant ids.
type CUID struct{}

// NewID returns a new cuid.
func (CUID) NewID() string { return cuid.New() }

// ForFormat returns the generator configured by ids.format.
func ForFormat(format string) (Generator, error) {
	switch format {
	case "", "uuid":
		return UUID{}, nil
	case "cuid":
		return CUID{}, nil
	default:
		return nil, fmt.Errorf("unknown id format %q", format)
	}
}

// Sequence yields prefix-1, prefix-2, ... and is meant for tests.
type Sequence struct {
	Prefix string

	mu sync.Mutex
	n  int
}

// NewSequence returns a Sequence with the given prefix.
func NewSequence(prefix string) *Sequence {
	return &Sequence{Prefix: prefix}
}

// NewID returns the next id in the sequence.
func (s *Sequence) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("%s-%d", s.Prefix, s.n)
}
