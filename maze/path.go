package maze

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrNoPathExists         = errors.New("maze: no path exists between start and end")
	ErrInvalidDistanceField = errors.New("maze: distance field does not fit the grid")
	ErrCorruptDistanceField = errors.New("maze: distance field is not a shortest-distance field")
)

// Reconstruct derives an ordered start→end path from a shortest-distance
// field by walking backwards from end, always stepping to the neighbor with
// the smallest distance strictly below the current one.
//
// Neighbors are examined up, down, left, right; on ties the first examined
// wins. A left step from column 0 or a right step from the last column is
// never taken, so the walk cannot wrap onto an adjacent row.
//
// The field must be a genuine shortest-distance field rooted at start. The
// walk keeps no visited set; a field that would trap it is reported as
// ErrCorruptDistanceField after at most len(distances) steps.
func Reconstruct(distances DistanceField, start, end Cell, cols int) ([]Cell, error) {
	if cols <= 0 || len(distances) == 0 || len(distances)%cols != 0 {
		return nil, fmt.Errorf("%w: %d distances for %d columns", ErrInvalidDistanceField, len(distances), cols)
	}
	rows := len(distances) / cols
	if !inGrid(start, rows, cols) || !inGrid(end, rows, cols) {
		return nil, fmt.Errorf("%w: endpoints %s, %s outside %dx%d", ErrInvalidDistanceField, start, end, rows, cols)
	}

	target := start.Index(cols)
	current := end.Index(cols)
	if current == target {
		return []Cell{start}, nil
	}
	if !distances.Reachable(current) {
		return nil, ErrNoPathExists
	}

	path := make([]Cell, 0, min(len(distances), rows+cols))
	for steps := 0; current != target; steps++ {
		if steps >= len(distances) {
			return nil, fmt.Errorf("%w: walk exceeded %d steps", ErrCorruptDistanceField, len(distances))
		}
		path = append(path, CellAt(current, cols))

		next := current
		for _, n := range neighbors(current, rows, cols) {
			if distances.Reachable(n) && distances[n] < distances[next] {
				next = n
			}
		}
		if next == current {
			return nil, fmt.Errorf("%w: no smaller neighbor at %s", ErrCorruptDistanceField, CellAt(current, cols))
		}
		current = next
	}

	path = append(path, start)
	slices.Reverse(path)
	return path, nil
}

// neighbors returns the in-range axis neighbors of index in the order
// up, down, left, right.
func neighbors(index, rows, cols int) []int {
	out := make([]int, 0, 4)
	row, col := index/cols, index%cols
	if row > 0 {
		out = append(out, index-cols)
	}
	if row < rows-1 {
		out = append(out, index+cols)
	}
	if col > 0 {
		out = append(out, index-1)
	}
	if col < cols-1 {
		out = append(out, index+1)
	}
	return out
}

func inGrid(c Cell, rows, cols int) bool {
	return c.Row >= 0 && c.Row < rows && c.Col >= 0 && c.Col < cols
}
