package id

import "github.com/google/uuid"

// Generator produces opaque string identifiers for stored entities.
type Generator interface {
	NewID() string
}

// RandomGenerator produces random UUIDv4 identifiers.
type RandomGenerator struct{}

// NewGenerator returns the default Generator.
func NewGenerator() Generator { return RandomGenerator{} }

// NewID returns a new random identifier.
func (RandomGenerator) NewID() string { return uuid.NewString() }
