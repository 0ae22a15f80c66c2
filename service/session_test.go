package service

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/beka-birhanu/vinom-mazeviz/maze"
	"github.com/beka-birhanu/vinom-mazeviz/solver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSolver returns a straight path from start to end unless err is set.
// When gate is non-nil, Solve blocks until it is closed.
type stubSolver struct {
	err     error
	gate    chan struct{}
	entered chan struct{}
	calls   atomic.Int32
	lastAlg atomic.Int32
}

func (s *stubSolver) Solve(ctx context.Context, alg solver.Algorithm, grid *maze.Grid, start, end *maze.Cell) (*solver.Result, error) {
	s.calls.Add(1)
	s.lastAlg.Store(int32(alg))
	if s.entered != nil {
		s.entered <- struct{}{}
	}
	if s.gate != nil {
		<-s.gate
	}
	if s.err != nil {
		return nil, s.err
	}
	return &solver.Result{
		Algorithm: alg,
		Path:      []maze.Cell{*start, *end},
		Visited:   []maze.Cell{*end, *start},
	}, nil
}

// newOpenSession returns a session over an all-open grid so every click
// lands on an open cell.
func newOpenSession(t *testing.T, s *stubSolver) *Session {
	t.Helper()
	session, err := NewSession(&SessionConfig{
		Rows:            4,
		Cols:            5,
		WallProbability: 0,
		Algorithm:       solver.Dijkstra,
		Rand:            rand.New(rand.NewSource(1)),
		Solver:          s,
	})
	require.NoError(t, err)
	return session
}

func TestSessionVisualize(t *testing.T) {
	ctx := context.Background()

	t.Run("success fills overlay", func(t *testing.T) {
		stub := &stubSolver{}
		s := newOpenSession(t, stub)
		require.True(t, s.Click(0, 0))
		require.True(t, s.Click(0, 1))

		require.NoError(t, s.Visualize(ctx))
		snap := s.Snapshot()
		assert.Equal(t, []maze.Cell{{Row: 0, Col: 0}, {Row: 0, Col: 1}}, snap.Path)
		assert.Len(t, snap.Visited, 2)
		assert.Equal(t, "both_set", snap.Selection)
		assert.Contains(t, snap.Notice, "dijkstra")
		assert.False(t, snap.Solving)
	})

	t.Run("missing end fails without calling solver", func(t *testing.T) {
		stub := &stubSolver{}
		s := newOpenSession(t, stub)
		s.Click(0, 0)

		err := s.Visualize(ctx)
		assert.ErrorIs(t, err, solver.ErrMissingSelection)
		assert.Zero(t, stub.calls.Load())
		assert.Equal(t, Notice(solver.ErrMissingSelection), s.Snapshot().Notice)
	})

	t.Run("failure keeps previous overlay", func(t *testing.T) {
		stub := &stubSolver{}
		s := newOpenSession(t, stub)
		s.Click(1, 1)
		s.Click(2, 2)
		require.NoError(t, s.Visualize(ctx))
		before := s.Snapshot()

		for _, failure := range []error{solver.ErrSolverUnavailable, solver.ErrMalformedResponse, maze.ErrNoPathExists} {
			stub.err = failure
			err := s.Visualize(ctx)
			assert.ErrorIs(t, err, failure)

			after := s.Snapshot()
			assert.Equal(t, before.Path, after.Path)
			assert.Equal(t, before.Visited, after.Visited)
			assert.Equal(t, before.Maze, after.Maze)
			assert.Equal(t, before.Start, after.Start)
			assert.Equal(t, before.End, after.End)
			assert.Equal(t, Notice(failure), after.Notice)
		}
	})

	t.Run("uses chosen algorithm", func(t *testing.T) {
		stub := &stubSolver{}
		s := newOpenSession(t, stub)
		require.NoError(t, s.SetAlgorithm(solver.BFS))
		s.Click(0, 0)
		s.Click(3, 4)
		require.NoError(t, s.Visualize(ctx))
		assert.Equal(t, int32(solver.BFS), stub.lastAlg.Load())
		assert.Equal(t, solver.BFS, s.Snapshot().Algorithm)

		assert.ErrorIs(t, s.SetAlgorithm(solver.Algorithm(9)), solver.ErrUnknownAlgorithm)
		assert.Equal(t, solver.BFS, s.Algorithm())
	})
}

func TestSessionSerializesSolves(t *testing.T) {
	ctx := context.Background()

	t.Run("second solve rejected while first in flight", func(t *testing.T) {
		stub := &stubSolver{gate: make(chan struct{}), entered: make(chan struct{}, 1)}
		s := newOpenSession(t, stub)
		s.Click(0, 0)
		s.Click(0, 4)

		var wg sync.WaitGroup
		var firstErr error
		wg.Add(1)
		go func() {
			defer wg.Done()
			firstErr = s.Visualize(ctx)
		}()
		<-stub.entered

		assert.True(t, s.Snapshot().Solving)
		assert.ErrorIs(t, s.Visualize(ctx), ErrSolveInProgress)

		close(stub.gate)
		wg.Wait()
		require.NoError(t, firstErr)
		assert.Equal(t, int32(1), stub.calls.Load())
		assert.Len(t, s.Snapshot().Path, 2)
	})

	for name, change := range map[string]func(*Session){
		"regenerate": func(s *Session) { require.NoError(t, s.Generate()) },
		"new click":  func(s *Session) { s.Click(2, 2) },
		"clear path": func(s *Session) { s.ClearPath() },
	} {
		t.Run("result discarded after "+name, func(t *testing.T) {
			stub := &stubSolver{gate: make(chan struct{}), entered: make(chan struct{}, 1)}
			s := newOpenSession(t, stub)
			s.Click(0, 0)
			s.Click(0, 4)

			errs := make(chan error, 1)
			go func() { errs <- s.Visualize(ctx) }()
			<-stub.entered

			change(s)
			close(stub.gate)
			assert.ErrorIs(t, <-errs, ErrStaleResult)
			assert.Empty(t, s.Snapshot().Path)
		})
	}
}

func TestSessionGenerateClearsState(t *testing.T) {
	stub := &stubSolver{}
	s := newOpenSession(t, stub)
	s.Click(0, 0)
	s.Click(1, 1)
	require.NoError(t, s.Visualize(context.Background()))

	require.NoError(t, s.Generate())
	snap := s.Snapshot()
	assert.Nil(t, snap.Start)
	assert.Nil(t, snap.End)
	assert.Empty(t, snap.Path)
	assert.Empty(t, snap.Visited)
	assert.Empty(t, snap.Distances)
	assert.Equal(t, "no_selection", snap.Selection)
	assert.Len(t, snap.Maze, 4)
	assert.Len(t, snap.Maze[0], 5)
}

func TestSessionClearPathKeepsGridAndEndpoints(t *testing.T) {
	stub := &stubSolver{}
	s := newOpenSession(t, stub)
	s.Click(0, 0)
	s.Click(1, 1)
	require.NoError(t, s.Visualize(context.Background()))
	before := s.Snapshot()

	s.ClearPath()
	after := s.Snapshot()
	assert.Empty(t, after.Path)
	assert.Empty(t, after.Visited)
	assert.Equal(t, before.Maze, after.Maze)
	assert.Equal(t, before.Start, after.Start)
	assert.Equal(t, before.End, after.End)
}

func TestSessionClickClearsOverlay(t *testing.T) {
	stub := &stubSolver{}
	s := newOpenSession(t, stub)
	s.Click(0, 0)
	s.Click(1, 1)
	require.NoError(t, s.Visualize(context.Background()))

	require.True(t, s.Click(2, 2))
	snap := s.Snapshot()
	assert.Empty(t, snap.Path)
	assert.Equal(t, &maze.Cell{Row: 2, Col: 2}, snap.Start)
	assert.Nil(t, snap.End)
}

func TestSessionWallClickIgnored(t *testing.T) {
	stub := &stubSolver{}
	s, err := NewSession(&SessionConfig{
		Rows:            3,
		Cols:            3,
		WallProbability: 1,
		Algorithm:       solver.BFS,
		Rand:            rand.New(rand.NewSource(1)),
		Solver:          stub,
	})
	require.NoError(t, err)

	before := s.Snapshot()
	assert.False(t, s.Click(1, 1))
	assert.Equal(t, before, s.Snapshot())
}

func TestNewSessionErrors(t *testing.T) {
	_, err := NewSession(&SessionConfig{Rows: 2, Cols: 2})
	assert.ErrorIs(t, err, ErrNilSolver)

	_, err = NewSession(&SessionConfig{Rows: 0, Cols: 2, Solver: &stubSolver{}})
	assert.ErrorIs(t, err, maze.ErrInvalidDimensions)

	_, err = NewSession(&SessionConfig{Rows: 2, Cols: 2, Solver: &stubSolver{}, Algorithm: solver.Algorithm(5)})
	assert.ErrorIs(t, err, solver.ErrUnknownAlgorithm)
}

func TestNotice(t *testing.T) {
	assert.Empty(t, Notice(nil))
	assert.Equal(t, "boom", Notice(errors.New("boom")))
	assert.Equal(t, Notice(maze.ErrNoPathExists), Notice(maze.ErrNoPathExists))
	assert.NotEqual(t, Notice(solver.ErrSolverUnavailable), Notice(solver.ErrMalformedResponse))
}

func TestSessionTouch(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s, err := NewSession(&SessionConfig{
		Rows:   2,
		Cols:   2,
		Solver: &stubSolver{},
		Now:    func() time.Time { return now },
	})
	require.NoError(t, err)
	assert.Equal(t, now, s.LastUsed())
}
