package i

import (
	"context"

	"github.com/beka-birhanu/vinom-mazeviz/maze"
	"github.com/beka-birhanu/vinom-mazeviz/solver"
)

// Solver resolves a shortest path on a grid through the external solver.
type Solver interface {
	Solve(ctx context.Context, alg solver.Algorithm, grid *maze.Grid, start, end *maze.Cell) (*solver.Result, error)
}
