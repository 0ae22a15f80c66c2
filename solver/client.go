// Package solver talks to the external maze solver service.
//
// The service exposes one endpoint per algorithm. Dijkstra answers with a
// per-cell distance field that is turned into a path locally; BFS answers
// with the path itself. Callers always receive a Result with Path filled.
package solver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	general_i "github.com/beka-birhanu/vinom-mazeviz/interfaces/general"
	"github.com/beka-birhanu/vinom-mazeviz/maze"
)

const (
	defaultTimeout   = 10 * time.Second
	maxResponseBytes = 8 << 20
)

var (
	ErrMissingSelection  = errors.New("solver: start and end must both be selected on open cells")
	ErrSolverUnavailable = errors.New("solver: service unavailable")
	ErrMalformedResponse = errors.New("solver: malformed response")
	ErrUnknownAlgorithm  = errors.New("solver: unknown algorithm")
	ErrNilGrid           = errors.New("solver: grid is nil")
)

// Config holds settings for a new Client.
type Config struct {
	BaseURL    string           // e.g. http://localhost:8080
	Timeout    time.Duration    // per request; defaults to 10s
	HTTPClient *http.Client     // optional; Timeout is ignored when set
	Logger     general_i.Logger // optional
}

// Client is an HTTP client for the solver service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     general_i.Logger
}

// NewClient validates cfg and returns a Client.
func NewClient(cfg Config) (*Client, error) {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("solver: invalid base URL %q", cfg.BaseURL)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = nopLogger{}
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// Solve asks the service for a path from start to end on grid.
//
// Nil, out-of-bounds or wall endpoints fail with ErrMissingSelection before
// any request is sent. Transport errors, timeouts and non-2xx statuses wrap
// ErrSolverUnavailable; bodies that do not match the algorithm's schema wrap
// ErrMalformedResponse. An unreachable end yields maze.ErrNoPathExists.
//
// Dijkstra responses must mark unreachable cells as null or a negative
// number. A finite sentinel such as 2147483647 is read as a real distance,
// and a field that uses one usually fails reconstruction with
// ErrMalformedResponse rather than maze.ErrNoPathExists.
func (c *Client) Solve(ctx context.Context, alg Algorithm, grid *maze.Grid, start, end *maze.Cell) (*Result, error) {
	if grid == nil {
		return nil, ErrNilGrid
	}
	if err := CheckSelection(grid, start, end); err != nil {
		return nil, err
	}
	if !alg.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAlgorithm, int(alg))
	}

	payload, err := c.post(ctx, alg, &Request{Maze: grid.Matrix(), Start: *start, End: *end})
	if err != nil {
		c.logger.Error(fmt.Sprintf("%s request %s -> %s failed: %s", alg, start, end, err))
		return nil, err
	}

	var result *Result
	switch alg {
	case Dijkstra:
		result, err = decodeDijkstra(payload, grid, *start, *end)
	case BFS:
		result, err = decodeBFS(payload, grid, *start, *end)
	}
	if err != nil {
		c.logger.Warning(fmt.Sprintf("%s response %s -> %s rejected: %s", alg, start, end, err))
		return nil, err
	}

	c.logger.Info(fmt.Sprintf("%s solved %s -> %s: path %d cells, visited %d", alg, start, end, len(result.Path), len(result.Visited)))
	return result, nil
}

// CheckSelection verifies that both endpoints are set, in bounds and open.
func CheckSelection(grid *maze.Grid, start, end *maze.Cell) error {
	if start == nil || end == nil {
		return ErrMissingSelection
	}
	if grid.IsWall(*start) || grid.IsWall(*end) {
		return fmt.Errorf("%w: endpoint on wall or outside grid", ErrMissingSelection)
	}
	return nil
}

func (c *Client) post(ctx context.Context, alg Algorithm, request *Request) ([]byte, error) {
	endpoint, err := url.JoinPath(c.baseURL, alg.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSolverUnavailable, err)
	}

	body, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSolverUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.logger.Info(fmt.Sprintf("sending %s request to %s", alg, endpoint))
	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSolverUnavailable, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, maxResponseBytes))
		return nil, fmt.Errorf("%w: status %s", ErrSolverUnavailable, res.Status)
	}

	payload, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %w", ErrSolverUnavailable, err)
	}
	return payload, nil
}

func decodeDijkstra(payload []byte, grid *maze.Grid, start, end maze.Cell) (*Result, error) {
	var res DijkstraResponse
	if err := json.Unmarshal(payload, &res); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if res.Distances == nil {
		return nil, fmt.Errorf("%w: missing distances", ErrMalformedResponse)
	}
	distances := *res.Distances
	if len(distances) != grid.Size() {
		return nil, fmt.Errorf("%w: %d distances for %d cells", ErrMalformedResponse, len(distances), grid.Size())
	}
	if err := checkCells(grid, "visited", res.Visited); err != nil {
		return nil, err
	}

	path, err := maze.Reconstruct(distances, start, end, grid.Cols())
	if err != nil {
		if errors.Is(err, maze.ErrNoPathExists) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	return &Result{
		Algorithm: Dijkstra,
		Path:      path,
		Visited:   nonNil(res.Visited),
		Distances: distances,
	}, nil
}

func decodeBFS(payload []byte, grid *maze.Grid, start, end maze.Cell) (*Result, error) {
	var res BFSResponse
	if err := json.Unmarshal(payload, &res); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if len(res.Path) == 0 {
		return nil, fmt.Errorf("%w: missing path", ErrMalformedResponse)
	}

	var path []maze.Cell
	if err := json.Unmarshal(res.Path, &path); err != nil {
		return nil, fmt.Errorf("%w: path: %w", ErrMalformedResponse, err)
	}
	if len(path) == 0 {
		return nil, maze.ErrNoPathExists
	}
	if err := checkCells(grid, "path", path); err != nil {
		return nil, err
	}
	if err := checkCells(grid, "visited", res.Visited); err != nil {
		return nil, err
	}
	if path[0] != start || path[len(path)-1] != end {
		return nil, fmt.Errorf("%w: path runs %s -> %s, want %s -> %s", ErrMalformedResponse, path[0], path[len(path)-1], start, end)
	}
	for i := 1; i < len(path); i++ {
		if !path[i-1].Adjacent(path[i]) {
			return nil, fmt.Errorf("%w: path step %s -> %s is not adjacent", ErrMalformedResponse, path[i-1], path[i])
		}
	}

	return &Result{
		Algorithm: BFS,
		Path:      path,
		Visited:   nonNil(res.Visited),
	}, nil
}

func checkCells(grid *maze.Grid, field string, cells []maze.Cell) error {
	for _, c := range cells {
		if !grid.InBounds(c) {
			return fmt.Errorf("%w: %s cell %s outside grid", ErrMalformedResponse, field, c)
		}
	}
	return nil
}

func nonNil(cells []maze.Cell) []maze.Cell {
	if cells == nil {
		return []maze.Cell{}
	}
	return cells
}

type nopLogger struct{}

func (nopLogger) Info(string)    {}
func (nopLogger) Warning(string) {}
func (nopLogger) Error(string)   {}
