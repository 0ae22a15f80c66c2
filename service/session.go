package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	general_i "github.com/beka-birhanu/vinom-mazeviz/interfaces/general"
	"github.com/beka-birhanu/vinom-mazeviz/maze"
	"github.com/beka-birhanu/vinom-mazeviz/render"
	"github.com/beka-birhanu/vinom-mazeviz/selection"
	"github.com/beka-birhanu/vinom-mazeviz/service/i"
	"github.com/beka-birhanu/vinom-mazeviz/solver"
	"github.com/google/uuid"
)

var (
	ErrSolveInProgress = errors.New("session: a path search is already running")
	ErrStaleResult     = errors.New("session: maze or endpoints changed during the search")
	ErrSessionNotFound = errors.New("session: not found")
	ErrNilSolver       = errors.New("session: solver is nil")
)

// SessionConfig holds the settings of a single visualization session.
type SessionConfig struct {
	ID              uuid.UUID
	Rows            int
	Cols            int
	WallProbability float64
	Algorithm       solver.Algorithm
	Rand            *rand.Rand // defaults to a clock-seeded source
	Solver          i.Solver
	Logger          general_i.Logger
	Now             func() time.Time
}

// Session owns the state of one visualization: grid, endpoint selection,
// chosen algorithm and the last successful solve overlay.
//
// All methods are safe for concurrent use. The lock is never held while the
// solver is being called. At most one solve runs at a time; a solve whose
// grid or endpoints changed before it returned is discarded.
type Session struct {
	id              uuid.UUID
	rows            int
	cols            int
	wallProbability float64
	rng             *rand.Rand
	solver          i.Solver
	logger          general_i.Logger
	now             func() time.Time

	grid      *maze.Grid
	selection selection.Selection
	algorithm solver.Algorithm
	result    *solver.Result
	notice    string
	epoch     uint64 // bumped whenever an in-flight result would be stale
	solving   bool
	lastUsed  time.Time
	sync.Mutex
}

// Snapshot is a read-only copy of a session's state.
type Snapshot struct {
	ID        uuid.UUID          `json:"id"`
	Rows      int                `json:"rows"`
	Cols      int                `json:"cols"`
	Maze      [][]maze.CellState `json:"maze"`
	Selection string             `json:"selection"`
	Start     *maze.Cell         `json:"start"`
	End       *maze.Cell         `json:"end"`
	Algorithm solver.Algorithm   `json:"algorithm"`
	Path      []maze.Cell        `json:"path"`
	Visited   []maze.Cell        `json:"visited"`
	Distances maze.DistanceField `json:"distances,omitempty"`
	Solving   bool               `json:"solving"`
	Notice    string             `json:"notice,omitempty"`

	grid *maze.Grid
}

// Grid returns the grid the snapshot was taken from.
func (s Snapshot) Grid() *maze.Grid {
	return s.grid
}

// Scene converts the snapshot for drawing.
func (s Snapshot) Scene() render.Scene {
	return render.Scene{
		Grid:    s.grid,
		Start:   s.Start,
		End:     s.End,
		Path:    s.Path,
		Visited: s.Visited,
	}
}

// NewSession validates c, generates the first grid and returns the session.
func NewSession(c *SessionConfig) (*Session, error) {
	if c.Solver == nil {
		return nil, ErrNilSolver
	}
	if !c.Algorithm.Valid() {
		return nil, fmt.Errorf("%w: %d", solver.ErrUnknownAlgorithm, int(c.Algorithm))
	}

	s := &Session{
		id:              c.ID,
		rows:            c.Rows,
		cols:            c.Cols,
		wallProbability: c.WallProbability,
		rng:             c.Rand,
		solver:          c.Solver,
		logger:          c.Logger,
		now:             c.Now,
		algorithm:       c.Algorithm,
	}
	if s.id == uuid.Nil {
		s.id = uuid.New()
	}
	if s.rng == nil {
		s.rng = maze.NewRandSource()
	}
	if s.logger == nil {
		s.logger = nopLogger{}
	}
	if s.now == nil {
		s.now = time.Now
	}

	if err := s.Generate(); err != nil {
		return nil, err
	}
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Generate replaces the grid with a fresh random one and clears the
// selection and any overlay.
func (s *Session) Generate() error {
	s.Lock()
	defer s.Unlock()
	s.touch()

	grid, err := maze.Generate(s.rows, s.cols, s.wallProbability, s.rng)
	if err != nil {
		s.logger.Error(fmt.Sprintf("session %s: generating maze: %s", s.id, err))
		return err
	}

	s.grid = grid
	s.selection.Reset()
	s.result = nil
	s.notice = ""
	s.epoch++
	s.logger.Info(fmt.Sprintf("session %s: generated %dx%d maze with %d walls", s.id, s.rows, s.cols, grid.Walls()))
	return nil
}

// Click feeds a cell click to the selection state machine and reports
// whether the endpoints changed. Changing an endpoint clears the overlay.
func (s *Session) Click(row, col int) bool {
	s.Lock()
	defer s.Unlock()
	s.touch()

	if !s.selection.Click(s.grid, maze.Cell{Row: row, Col: col}) {
		return false
	}

	s.result = nil
	s.notice = ""
	s.epoch++
	return true
}

// SetAlgorithm chooses the algorithm used by the next Visualize.
func (s *Session) SetAlgorithm(alg solver.Algorithm) error {
	if !alg.Valid() {
		return fmt.Errorf("%w: %d", solver.ErrUnknownAlgorithm, int(alg))
	}

	s.Lock()
	defer s.Unlock()
	s.touch()
	s.algorithm = alg
	return nil
}

// Algorithm returns the algorithm used by the next Visualize.
func (s *Session) Algorithm() solver.Algorithm {
	s.Lock()
	defer s.Unlock()
	return s.algorithm
}

// Visualize runs the current algorithm between the selected endpoints and,
// on success, replaces the overlay with the result. On any error the grid,
// selection and previous overlay are left as they were and the error is
// recorded as the session notice.
func (s *Session) Visualize(ctx context.Context) error {
	s.Lock()
	s.touch()
	start, end := s.selection.Endpoints()
	if start == nil || end == nil {
		s.notice = Notice(solver.ErrMissingSelection)
		s.Unlock()
		return solver.ErrMissingSelection
	}
	if s.solving {
		s.notice = Notice(ErrSolveInProgress)
		s.Unlock()
		return ErrSolveInProgress
	}
	s.solving = true
	epoch, grid, alg := s.epoch, s.grid, s.algorithm
	s.Unlock()

	res, err := s.solver.Solve(ctx, alg, grid, start, end)

	s.Lock()
	defer s.Unlock()
	s.solving = false
	if err != nil {
		s.notice = Notice(err)
		s.logger.Warning(fmt.Sprintf("session %s: %s %s -> %s: %s", s.id, alg, start, end, err))
		return err
	}
	if s.epoch != epoch {
		s.notice = Notice(ErrStaleResult)
		s.logger.Info(fmt.Sprintf("session %s: discarding stale %s result", s.id, alg))
		return ErrStaleResult
	}

	s.result = res
	s.notice = fmt.Sprintf("%s: path of %d cells, %d cells visited", alg, len(res.Path), len(res.Visited))
	return nil
}

// ClearPath drops the overlay and keeps grid and endpoints.
func (s *Session) ClearPath() {
	s.Lock()
	defer s.Unlock()
	s.touch()

	s.result = nil
	s.notice = ""
	s.epoch++
}

// Snapshot copies the current state.
func (s *Session) Snapshot() Snapshot {
	s.Lock()
	defer s.Unlock()

	start, end := s.selection.Endpoints()
	snap := Snapshot{
		ID:        s.id,
		Rows:      s.grid.Rows(),
		Cols:      s.grid.Cols(),
		Maze:      s.grid.Matrix(),
		Selection: s.selection.State().String(),
		Start:     start,
		End:       end,
		Algorithm: s.algorithm,
		Path:      []maze.Cell{},
		Visited:   []maze.Cell{},
		Solving:   s.solving,
		Notice:    s.notice,
		grid:      s.grid,
	}
	if s.result != nil {
		snap.Path = append(snap.Path, s.result.Path...)
		snap.Visited = append(snap.Visited, s.result.Visited...)
		snap.Distances = append(maze.DistanceField(nil), s.result.Distances...)
	}
	return snap
}

// LastUsed returns when the session was last touched by an operation.
func (s *Session) LastUsed() time.Time {
	s.Lock()
	defer s.Unlock()
	return s.lastUsed
}

func (s *Session) touch() {
	s.lastUsed = s.now()
}

// Notice turns a session error into the message shown to the user.
func Notice(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, solver.ErrMissingSelection):
		return "Select a start and an end cell first."
	case errors.Is(err, maze.ErrNoPathExists):
		return "No path exists between start and end."
	case errors.Is(err, solver.ErrSolverUnavailable):
		return "The solver is unavailable, try again."
	case errors.Is(err, solver.ErrMalformedResponse):
		return "The solver returned an unexpected response."
	case errors.Is(err, ErrSolveInProgress):
		return "A path search is already running."
	case errors.Is(err, ErrStaleResult):
		return "The maze changed during the search; result discarded."
	default:
		return err.Error()
	}
}

type nopLogger struct{}

func (nopLogger) Info(string)    {}
func (nopLogger) Warning(string) {}
func (nopLogger) Error(string)   {}
