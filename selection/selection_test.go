package selection

import (
	"testing"

	"github.com/beka-birhanu/vinom-mazeviz/maze"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// . # .
// . . .
func testGrid(t *testing.T) *maze.Grid {
	t.Helper()
	g, err := maze.NewGrid([][]maze.CellState{
		{maze.Open, maze.Wall, maze.Open},
		{maze.Open, maze.Open, maze.Open},
	})
	require.NoError(t, err)
	return g
}

func TestSelection(t *testing.T) {
	grid := testGrid(t)
	wall := maze.Cell{Row: 0, Col: 1}
	a, b, c := maze.Cell{Row: 0, Col: 0}, maze.Cell{Row: 1, Col: 2}, maze.Cell{Row: 1, Col: 1}

	t.Run("wall click ignored in every state", func(t *testing.T) {
		var s Selection
		for i, next := range []maze.Cell{a, b, c} {
			before := s
			assert.False(t, s.Click(grid, wall), "state %d", i)
			assert.Equal(t, before, s)
			s.Click(grid, next)
		}
	})

	t.Run("out of bounds ignored", func(t *testing.T) {
		var s Selection
		assert.False(t, s.Click(grid, maze.Cell{Row: 5, Col: 0}))
		assert.Equal(t, NoSelection, s.State())
	})

	t.Run("start then end", func(t *testing.T) {
		var s Selection
		require.True(t, s.Click(grid, a))
		assert.Equal(t, StartSet, s.State())
		start, ok := s.Start()
		assert.True(t, ok)
		assert.Equal(t, a, start)
		_, ok = s.End()
		assert.False(t, ok)

		require.True(t, s.Click(grid, b))
		assert.Equal(t, BothSet, s.State())
		end, ok := s.End()
		assert.True(t, ok)
		assert.Equal(t, b, end)
	})

	t.Run("third click restarts at clicked cell", func(t *testing.T) {
		var s Selection
		s.Click(grid, a)
		s.Click(grid, b)
		s.Click(grid, c)

		assert.Equal(t, StartSet, s.State())
		start, _ := s.Start()
		assert.Equal(t, c, start)
		_, ok := s.End()
		assert.False(t, ok)
	})

	t.Run("same cell as start and end", func(t *testing.T) {
		var s Selection
		s.Click(grid, a)
		s.Click(grid, a)
		start, end := s.Endpoints()
		require.NotNil(t, start)
		require.NotNil(t, end)
		assert.Equal(t, *start, *end)
	})

	t.Run("reset", func(t *testing.T) {
		var s Selection
		s.Click(grid, a)
		s.Click(grid, b)
		s.Reset()
		start, end := s.Endpoints()
		assert.Nil(t, start)
		assert.Nil(t, end)
		assert.Equal(t, NoSelection, s.State())
	})

	t.Run("nil grid", func(t *testing.T) {
		var s Selection
		assert.False(t, s.Click(nil, a))
	})
}
