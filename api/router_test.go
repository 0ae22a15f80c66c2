package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/beka-birhanu/vinom-mazeviz/api/i"
	"github.com/beka-birhanu/vinom-mazeviz/api/identity"
	visualizerapi "github.com/beka-birhanu/vinom-mazeviz/api/visualizer"
	"github.com/beka-birhanu/vinom-mazeviz/infrastruture/token"
	"github.com/beka-birhanu/vinom-mazeviz/maze"
	"github.com/beka-birhanu/vinom-mazeviz/service"
	"github.com/beka-birhanu/vinom-mazeviz/solver"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSolver struct {
	err error
}

func (s *stubSolver) Solve(_ context.Context, alg solver.Algorithm, _ *maze.Grid, start, end *maze.Cell) (*solver.Result, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &solver.Result{Algorithm: alg, Path: []maze.Cell{*start, *end}, Visited: []maze.Cell{*start}}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string)    {}
func (nopLogger) Warning(string) {}
func (nopLogger) Error(string)   {}

type state struct {
	ID        string   `json:"id"`
	Selection string   `json:"selection"`
	Algorithm string   `json:"algorithm"`
	Path      [][2]int `json:"path"`
	Notice    string   `json:"notice"`
}

type grant struct {
	ID    string `json:"id"`
	Token string `json:"token"`
	State state  `json:"state"`
}

type testAPI struct {
	t      *testing.T
	engine *gin.Engine
	solver *stubSolver
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	stub := &stubSolver{}
	sessions, err := service.NewSessionManager(&service.Config{
		Rows:            4,
		Cols:            4,
		WallProbability: 0,
		Algorithm:       solver.Dijkstra,
		Solver:          stub,
	})
	require.NoError(t, err)

	tokenizer := token.NewJwtService("test-secret", "test")
	visualizer, err := visualizerapi.NewVisualizerController(sessions, nopLogger{})
	require.NoError(t, err)

	router := NewRouter(Config{
		BaseURL: "/api",
		Controllers: []i.Controller{
			identity.NewIdentityServer(sessions, tokenizer, time.Hour, nopLogger{}),
			visualizer,
		},
		AuthorizationMiddleware: identity.Authoriz(tokenizer),
	})
	engine := gin.New()
	router.Register(engine)

	return &testAPI{t: t, engine: engine, solver: stub}
}

func (a *testAPI) do(method, path, tok string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var payload bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&payload).Encode(body))
	}
	req := httptest.NewRequest(method, path, &payload)
	req.Header.Set("Content-Type", "application/json")
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	rec := httptest.NewRecorder()
	a.engine.ServeHTTP(rec, req)
	return rec
}

func (a *testAPI) open() grant {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/api/v1/sessions", "", nil)
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	var g grant
	require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &g))
	return g
}

func decodeState(t *testing.T, rec *httptest.ResponseRecorder) state {
	t.Helper()
	var s state
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &s))
	return s
}

func TestSessionAPIFlow(t *testing.T) {
	a := newTestAPI(t)
	g := a.open()
	base := "/api/v1/sessions/" + g.ID
	assert.Equal(t, g.ID, g.State.ID)
	assert.Equal(t, "no_selection", g.State.Selection)

	rec := a.do(http.MethodPost, base+"/solve", g.Token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = a.do(http.MethodPost, base+"/clicks", g.Token, gin.H{"row": 0, "col": 0})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = a.do(http.MethodPost, base+"/clicks", g.Token, gin.H{"row": 3, "col": 3})
	require.Equal(t, http.StatusOK, rec.Code)
	var click struct {
		Changed bool  `json:"changed"`
		State   state `json:"state"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &click))
	assert.True(t, click.Changed)
	assert.Equal(t, "both_set", click.State.Selection)

	rec = a.do(http.MethodPost, base+"/solve", g.Token, gin.H{"algorithm": "bfs"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	s := decodeState(t, rec)
	assert.Equal(t, "bfs", s.Algorithm)
	assert.Equal(t, [][2]int{{0, 0}, {3, 3}}, s.Path)

	rec = a.do(http.MethodGet, base+"?format=text", g.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "S")
	assert.Contains(t, rec.Body.String(), "E")

	rec = a.do(http.MethodDelete, base+"/path", g.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeState(t, rec).Path)

	rec = a.do(http.MethodPut, base+"/algorithm", g.Token, gin.H{"algorithm": "astar"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = a.do(http.MethodPut, base+"/algorithm", g.Token, gin.H{"algorithm": "dijkstra"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "dijkstra", decodeState(t, rec).Algorithm)

	rec = a.do(http.MethodPost, base+"/maze", g.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no_selection", decodeState(t, rec).Selection)

	rec = a.do(http.MethodDelete, base, g.Token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = a.do(http.MethodGet, base, g.Token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSessionAPISolverErrors(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{solver.ErrSolverUnavailable, http.StatusBadGateway},
		{solver.ErrMalformedResponse, http.StatusBadGateway},
		{maze.ErrNoPathExists, http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			a := newTestAPI(t)
			g := a.open()
			base := "/api/v1/sessions/" + g.ID
			a.do(http.MethodPost, base+"/clicks", g.Token, gin.H{"row": 0, "col": 0})
			a.do(http.MethodPost, base+"/clicks", g.Token, gin.H{"row": 1, "col": 1})

			a.solver.err = tc.err
			rec := a.do(http.MethodPost, base+"/solve", g.Token, nil)
			assert.Equal(t, tc.status, rec.Code)

			var body struct {
				Error string `json:"error"`
				State state  `json:"state"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, service.Notice(tc.err), body.Error)
			assert.Equal(t, "both_set", body.State.Selection)
		})
	}
}

func TestSessionAPIAuthorization(t *testing.T) {
	a := newTestAPI(t)
	first := a.open()
	second := a.open()

	rec := a.do(http.MethodGet, "/api/v1/sessions/"+first.ID, "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = a.do(http.MethodGet, "/api/v1/sessions/"+first.ID, "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = a.do(http.MethodGet, "/api/v1/sessions/"+second.ID, first.Token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = a.do(http.MethodGet, "/api/v1/sessions/"+first.ID, first.Token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSessionAPIBadBodies(t *testing.T) {
	a := newTestAPI(t)
	g := a.open()
	base := "/api/v1/sessions/" + g.ID

	rec := a.do(http.MethodPost, base+"/clicks", g.Token, gin.H{"row": 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = a.do(http.MethodPut, base+"/algorithm", g.Token, gin.H{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
