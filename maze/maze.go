/*
Package maze provides the rectangular obstacle grid shown by the visualizer.

A Grid is a fixed ROWS x COLS matrix of open and wall cells. It is generated
once per "Generate Maze" action and never mutated afterwards; regeneration
replaces it wholesale.

The package also owns the distance-field path reconstructor used to turn the
per-cell distances returned by a Dijkstra solver into an explicit path.
*/
package maze

import (
	"errors"
	"math/rand"
	"strings"
	"time"
)

const (
	DefaultRows            = 20
	DefaultCols            = 30
	DefaultWallProbability = 0.3
)

var (
	ErrInvalidDimensions      = errors.New("maze: rows and cols must be positive")
	ErrInvalidWallProbability = errors.New("maze: wall probability must be within [0, 1]")
	ErrNilRandSource          = errors.New("maze: random source is nil")
	ErrEmptyGrid              = errors.New("maze: grid has no cells")
	ErrNonRectangular         = errors.New("maze: grid rows have different lengths")
	ErrInvalidCellState       = errors.New("maze: cell state must be 0 (open) or 1 (wall)")
)

// Grid is an immutable matrix of cell states.
type Grid struct {
	rows  int
	cols  int
	cells []CellState // row-major
}

// NewRandSource returns a clock-seeded source, giving a fresh maze on every
// generation.
func NewRandSource() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Generate builds a rows x cols grid where every cell is independently a wall
// with probability wallProbability. No connectivity is guaranteed.
func Generate(rows, cols int, wallProbability float64, rng *rand.Rand) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	if wallProbability < 0 || wallProbability > 1 {
		return nil, ErrInvalidWallProbability
	}
	if rng == nil {
		return nil, ErrNilRandSource
	}

	cells := make([]CellState, rows*cols)
	for i := range cells {
		if rng.Float64() < wallProbability {
			cells[i] = Wall
		}
	}

	return &Grid{rows: rows, cols: cols, cells: cells}, nil
}

// NewGrid copies an explicit matrix into a Grid.
func NewGrid(matrix [][]CellState) (*Grid, error) {
	if len(matrix) == 0 || len(matrix[0]) == 0 {
		return nil, ErrEmptyGrid
	}

	rows, cols := len(matrix), len(matrix[0])
	cells := make([]CellState, 0, rows*cols)
	for _, row := range matrix {
		if len(row) != cols {
			return nil, ErrNonRectangular
		}
		for _, s := range row {
			if s != Open && s != Wall {
				return nil, ErrInvalidCellState
			}
			cells = append(cells, s)
		}
	}

	return &Grid{rows: rows, cols: cols, cells: cells}, nil
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Size returns rows*cols.
func (g *Grid) Size() int { return len(g.cells) }

// InBounds reports whether c lies inside the grid.
func (g *Grid) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < g.rows && c.Col >= 0 && c.Col < g.cols
}

// At returns the state of c. Out-of-bounds cells read as walls.
func (g *Grid) At(c Cell) CellState {
	if !g.InBounds(c) {
		return Wall
	}
	return g.cells[c.Index(g.cols)]
}

// IsWall reports whether c is a wall or lies outside the grid.
func (g *Grid) IsWall(c Cell) bool {
	return g.At(c) == Wall
}

// Walls counts the wall cells.
func (g *Grid) Walls() int {
	n := 0
	for _, s := range g.cells {
		if s == Wall {
			n++
		}
	}
	return n
}

// Matrix returns a fresh 0/1 copy of the grid, the form sent to the solver.
func (g *Grid) Matrix() [][]CellState {
	matrix := make([][]CellState, g.rows)
	for r := range matrix {
		matrix[r] = make([]CellState, g.cols)
		copy(matrix[r], g.cells[r*g.cols:(r+1)*g.cols])
	}
	return matrix
}

// String draws the grid with '#' for walls and '.' for open cells.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow(g.rows * (g.cols + 1))
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if g.cells[r*g.cols+c] == Wall {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
