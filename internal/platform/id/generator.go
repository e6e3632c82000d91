package id

import (
	"strings"

	"github.com/google/uuid"
)

// Generator creates opaque IDs for requests and stored payloads.
type Generator interface {
	NewID() string
}

type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// Valid reports whether raw is an ID this package could have produced.
func Valid(raw string) bool {
	_, err := uuid.Parse(strings.TrimSpace(raw))
	return err == nil
}
