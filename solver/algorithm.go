package solver

import (
	"fmt"
	"strings"
)

// Algorithm selects the solver endpoint and the response shape it returns.
type Algorithm int

const (
	Dijkstra Algorithm = iota // responds with a distance field
	BFS                       // responds with an explicit path
)

// Algorithms lists every supported algorithm in display order.
var Algorithms = []Algorithm{Dijkstra, BFS}

// ParseAlgorithm maps an endpoint name ("dijkstra", "bfs") to an Algorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "dijkstra":
		return Dijkstra, nil
	case "bfs":
		return BFS, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
}

// String returns the endpoint path segment of the algorithm.
func (a Algorithm) String() string {
	switch a {
	case Dijkstra:
		return "dijkstra"
	case BFS:
		return "bfs"
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

// Valid reports whether a is a known algorithm.
func (a Algorithm) Valid() bool {
	return a == Dijkstra || a == BFS
}

// Next cycles through Algorithms.
func (a Algorithm) Next() Algorithm {
	return Algorithms[(int(a)+1)%len(Algorithms)]
}

// MarshalText implements encoding.TextMarshaler.
func (a Algorithm) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAlgorithm, int(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Algorithm) UnmarshalText(text []byte) error {
	parsed, err := ParseAlgorithm(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
