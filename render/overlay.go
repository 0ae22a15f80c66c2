// Package render projects a maze and its solve overlay onto per-cell layers.
package render

import (
	"strings"

	"github.com/beka-birhanu/vinom-mazeviz/maze"
)

// Layer is the topmost thing drawn in a cell.
type Layer int

const (
	OpenLayer Layer = iota
	WallLayer
	VisitedLayer
	PathLayer
	EndLayer
	StartLayer
)

// Rune returns the ASCII glyph for the layer.
func (l Layer) Rune() rune {
	switch l {
	case WallLayer:
		return '#'
	case VisitedLayer:
		return 'o'
	case PathLayer:
		return '*'
	case EndLayer:
		return 'E'
	case StartLayer:
		return 'S'
	default:
		return '.'
	}
}

// Scene is everything needed to draw one frame.
type Scene struct {
	Grid    *maze.Grid
	Start   *maze.Cell
	End     *maze.Cell
	Path    []maze.Cell
	Visited []maze.Cell
}

// Project resolves the layer of every cell. Precedence, highest first:
// start, end, path, visited, wall/open. Cells outside the grid are skipped.
func Project(s Scene) [][]Layer {
	if s.Grid == nil {
		return nil
	}

	layers := make([][]Layer, s.Grid.Rows())
	for r := range layers {
		layers[r] = make([]Layer, s.Grid.Cols())
		for c := range layers[r] {
			if s.Grid.IsWall(maze.Cell{Row: r, Col: c}) {
				layers[r][c] = WallLayer
			}
		}
	}

	paint := func(cell maze.Cell, l Layer) {
		if s.Grid.InBounds(cell) && layers[cell.Row][cell.Col] < l {
			layers[cell.Row][cell.Col] = l
		}
	}
	for _, c := range s.Visited {
		paint(c, VisitedLayer)
	}
	for _, c := range s.Path {
		paint(c, PathLayer)
	}
	if s.End != nil {
		paint(*s.End, EndLayer)
	}
	if s.Start != nil {
		paint(*s.Start, StartLayer)
	}
	return layers
}

// ASCII draws the scene one text line per row.
func ASCII(s Scene) string {
	layers := Project(s)
	var sb strings.Builder
	for _, row := range layers {
		for _, l := range row {
			sb.WriteRune(l.Rune())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
