package maze

import (
	"encoding/json"
	"fmt"
)

// CellState marks a grid cell as walkable or blocked.
// Its numeric value is the wire form used by the solver (0 open, 1 wall).
type CellState int

const (
	Open CellState = iota
	Wall
)

func (s CellState) String() string {
	switch s {
	case Open:
		return "open"
	case Wall:
		return "wall"
	default:
		return fmt.Sprintf("CellState(%d)", s)
	}
}

// Cell is a 0-indexed (row, col) coordinate in a grid.
type Cell struct {
	Row int
	Col int
}

// CellAt converts a row-major linear index back to a cell.
func CellAt(index, cols int) Cell {
	return Cell{Row: index / cols, Col: index % cols}
}

// Index returns the row-major linear index of the cell.
func (c Cell) Index(cols int) int {
	return c.Row*cols + c.Col
}

// Adjacent reports whether o is one of the four axis neighbors of c.
func (c Cell) Adjacent(o Cell) bool {
	dr, dc := c.Row-o.Row, c.Col-o.Col
	return dr*dr+dc*dc == 1
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// MarshalJSON encodes the cell as a [row, col] pair.
func (c Cell) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{c.Row, c.Col})
}

// UnmarshalJSON decodes a [row, col] pair.
func (c *Cell) UnmarshalJSON(data []byte) error {
	var pair []int
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("maze: cell must be a [row, col] pair, got %d values", len(pair))
	}
	c.Row, c.Col = pair[0], pair[1]
	return nil
}
