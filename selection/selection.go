// Package selection tracks which cells a user picked as start and end.
package selection

import (
	"github.com/beka-birhanu/vinom-mazeviz/maze"
)

// State is the phase of endpoint selection.
type State int

const (
	NoSelection State = iota
	StartSet
	BothSet
)

func (s State) String() string {
	switch s {
	case NoSelection:
		return "no_selection"
	case StartSet:
		return "start_set"
	case BothSet:
		return "both_set"
	default:
		return "unknown"
	}
}

// Selection is the start/end state machine driven by cell clicks.
// The zero value is ready to use and holds no selection.
type Selection struct {
	state State
	start maze.Cell
	end   maze.Cell
}

// Click applies a click on cell and reports whether the selection changed.
//
// Walls and cells outside the grid are ignored. The first click sets start,
// the second sets end (it may equal start), a third restarts selection with
// the clicked cell as the new start.
func (s *Selection) Click(grid *maze.Grid, cell maze.Cell) bool {
	if grid == nil || grid.IsWall(cell) {
		return false
	}

	switch s.state {
	case NoSelection:
		s.start = cell
		s.state = StartSet
	case StartSet:
		s.end = cell
		s.state = BothSet
	case BothSet:
		s.start = cell
		s.end = maze.Cell{}
		s.state = StartSet
	}
	return true
}

// Reset drops both endpoints.
func (s *Selection) Reset() {
	*s = Selection{}
}

// State returns the current phase.
func (s *Selection) State() State {
	return s.state
}

// Start returns the start cell, if set.
func (s *Selection) Start() (maze.Cell, bool) {
	return s.start, s.state != NoSelection
}

// End returns the end cell, if set.
func (s *Selection) End() (maze.Cell, bool) {
	return s.end, s.state == BothSet
}

// Endpoints returns pointers to copies of start and end, nil when unset.
func (s *Selection) Endpoints() (start, end *maze.Cell) {
	if c, ok := s.Start(); ok {
		start = &c
	}
	if c, ok := s.End(); ok {
		end = &c
	}
	return start, end
}
