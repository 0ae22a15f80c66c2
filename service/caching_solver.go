package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	general_i "github.com/beka-birhanu/vinom-mazeviz/interfaces/general"
	"github.com/beka-birhanu/vinom-mazeviz/maze"
	"github.com/beka-birhanu/vinom-mazeviz/service/i"
	"github.com/beka-birhanu/vinom-mazeviz/solver"
)

var _ i.Solver = &CachingSolver{}

// CachingSolver answers repeated identical solve requests from a SolveCache.
// Only successful results are cached. Cache errors are logged and the
// request falls through to the wrapped solver.
type CachingSolver struct {
	next   i.Solver
	cache  i.SolveCache
	logger general_i.Logger
}

func NewCachingSolver(next i.Solver, cache i.SolveCache, logger general_i.Logger) *CachingSolver {
	return &CachingSolver{
		next:   next,
		cache:  cache,
		logger: logger,
	}
}

// Solve implements i.Solver.
func (s *CachingSolver) Solve(ctx context.Context, alg solver.Algorithm, grid *maze.Grid, start, end *maze.Cell) (*solver.Result, error) {
	if grid == nil || solver.CheckSelection(grid, start, end) != nil || !alg.Valid() {
		return s.next.Solve(ctx, alg, grid, start, end)
	}

	key := solveKey(alg, grid, *start, *end)
	if res, ok := s.lookup(ctx, key); ok {
		return res, nil
	}

	unlock, err := s.cache.Lock(ctx, key)
	if err != nil {
		s.logger.Warning(fmt.Sprintf("solve cache lock %s: %s", key, err))
	} else {
		defer unlock()
		if res, ok := s.lookup(ctx, key); ok {
			return res, nil
		}
	}

	res, err := s.next.Solve(ctx, alg, grid, start, end)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(res); err != nil {
		s.logger.Error(fmt.Sprintf("encoding solve result %s: %s", key, err))
	} else if err := s.cache.Set(ctx, key, payload); err != nil {
		s.logger.Warning(fmt.Sprintf("solve cache set %s: %s", key, err))
	}
	return res, nil
}

func (s *CachingSolver) lookup(ctx context.Context, key string) (*solver.Result, bool) {
	payload, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warning(fmt.Sprintf("solve cache get %s: %s", key, err))
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var res solver.Result
	if err := json.Unmarshal(payload, &res); err != nil {
		s.logger.Warning(fmt.Sprintf("discarding undecodable cache entry %s: %s", key, err))
		return nil, false
	}
	s.logger.Info(fmt.Sprintf("solve cache hit %s", key))
	return &res, true
}

// solveKey digests everything the solver sees.
func solveKey(alg solver.Algorithm, grid *maze.Grid, start, end maze.Cell) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%dx%d|%s|%s|", alg, grid.Rows(), grid.Cols(), start, end)
	h.Write([]byte(grid.String()))
	return hex.EncodeToString(h.Sum(nil))
}
