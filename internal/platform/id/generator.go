package id

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Generator creates opaque ids for job runs.
type Generator interface {
	NewID() string
}

type UUIDGenerator struct {
	prefix string
}

func NewUUIDGenerator(prefix string) *UUIDGenerator {
	return &UUIDGenerator{prefix: strings.TrimSpace(prefix)}
}

func (g *UUIDGenerator) NewID() string {
	raw := uuid.NewString()
	if g == nil || g.prefix == "" {
		return raw
	}
	return g.prefix + "-" + raw
}

// Sequence returns deterministic ids, for tests.
type Sequence struct {
	Prefix string
	next   int
}

func (s *Sequence) NewID() string {
	s.next++
	return s.Prefix + "-" + strconv.Itoa(s.next)
}
