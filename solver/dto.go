package solver

import (
	"encoding/json"

	"github.com/beka-birhanu/vinom-mazeviz/maze"
)

// Request is the body POSTed to /dijkstra and /bfs.
type Request struct {
	Maze  [][]maze.CellState `json:"maze"`
	Start maze.Cell          `json:"start"`
	End   maze.Cell          `json:"end"`
}

// DijkstraResponse is the body returned by /dijkstra.
type DijkstraResponse struct {
	Distances *maze.DistanceField `json:"distances"`
	Visited   []maze.Cell         `json:"visited"`
}

// BFSResponse is the body returned by /bfs. Path stays raw so a missing
// field can be told apart from an explicit null.
type BFSResponse struct {
	Path    json.RawMessage `json:"path"`
	Visited []maze.Cell     `json:"visited"`
}

// Result is a solve outcome resolved for display. Path is always present;
// Distances is only set for Dijkstra. Visited carries no ordering.
type Result struct {
	Algorithm Algorithm          `json:"algorithm"`
	Path      []maze.Cell        `json:"path"`
	Visited   []maze.Cell        `json:"visited"`
	Distances maze.DistanceField `json:"distances,omitempty"`
}
