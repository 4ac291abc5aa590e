package fibonacci

import (
	"fmt"
	"strings"
)

// Strategy selects how a single chunk is evaluated.
type Strategy int

const (
	// Iterative recomputes the prefix from F(0) for every chunk.
	Iterative Strategy = iota
	// Doubling seeds each chunk with fast doubling.
	Doubling
)

// String implements fmt.Stringer.
func (s Strategy) String() string {
	switch s {
	case Iterative:
		return "iterative"
	case Doubling:
		return "doubling"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy maps a case-insensitive name to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "iterative":
		return Iterative, nil
	case "doubling":
		return Doubling, nil
	default:
		return Iterative, fmt.Errorf("unknown fibonacci strategy %q (want iterative or doubling)", name)
	}
}

// chunkFunc returns the chunk evaluator for s.
func (s Strategy) chunkFunc() func(start, end int) []uint64 {
	if s == Doubling {
		return ChunkDoubling
	}
	return Chunk
}
