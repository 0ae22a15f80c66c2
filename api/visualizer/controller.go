package visualizerapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/beka-birhanu/vinom-mazeviz/api/identity"
	general_i "github.com/beka-birhanu/vinom-mazeviz/interfaces/general"
	"github.com/beka-birhanu/vinom-mazeviz/maze"
	"github.com/beka-birhanu/vinom-mazeviz/render"
	"github.com/beka-birhanu/vinom-mazeviz/service"
	"github.com/beka-birhanu/vinom-mazeviz/solver"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var ErrNilStore = errors.New("visualizer api: session store is nil")

// SessionStore looks up live sessions.
type SessionStore interface {
	Session(id uuid.UUID) (*service.Session, error)
	Remove(id uuid.UUID) error
}

// VisualizerController serves the per-session controls.
type VisualizerController struct {
	sessions SessionStore
	logger   general_i.Logger
}

// NewVisualizerController initializes a VisualizerController.
func NewVisualizerController(store SessionStore, logger general_i.Logger) (*VisualizerController, error) {
	if store == nil {
		return nil, ErrNilStore
	}
	return &VisualizerController{
		sessions: store,
		logger:   logger,
	}, nil
}

// RegisterPublic registers public routes.
func (vc *VisualizerController) RegisterPublic(route *gin.RouterGroup) {}

// RegisterProtected registers protected routes.
func (vc *VisualizerController) RegisterProtected(route *gin.RouterGroup) {
	session := route.Group("/sessions/:ID")
	{
		session.GET("", vc.state)
		session.DELETE("", vc.end)
		session.POST("/maze", vc.generate)
		session.POST("/clicks", vc.click)
		session.PUT("/algorithm", vc.setAlgorithm)
		session.POST("/solve", vc.solve)
		session.DELETE("/path", vc.clearPath)
	}
}

// state returns the session as JSON, or as an ASCII drawing with ?format=text.
func (vc *VisualizerController) state(ctx *gin.Context) {
	session, ok := vc.session(ctx)
	if !ok {
		return
	}

	snap := session.Snapshot()
	if ctx.Query("format") == "text" {
		ctx.String(http.StatusOK, render.ASCII(snap.Scene()))
		return
	}
	ctx.JSON(http.StatusOK, snap)
}

// generate replaces the maze.
func (vc *VisualizerController) generate(ctx *gin.Context) {
	session, ok := vc.session(ctx)
	if !ok {
		return
	}

	if err := session.Generate(); err != nil {
		vc.fail(ctx, session, err)
		return
	}
	ctx.JSON(http.StatusOK, session.Snapshot())
}

// click feeds a cell to the endpoint selection.
func (vc *VisualizerController) click(ctx *gin.Context) {
	session, ok := vc.session(ctx)
	if !ok {
		return
	}

	var request ClickRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	changed := session.Click(*request.Row, *request.Col)
	ctx.JSON(http.StatusOK, ClickResponse{Changed: changed, State: session.Snapshot()})
}

// setAlgorithm chooses the algorithm for later solves.
func (vc *VisualizerController) setAlgorithm(ctx *gin.Context) {
	session, ok := vc.session(ctx)
	if !ok {
		return
	}

	var request AlgorithmRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	alg, err := solver.ParseAlgorithm(request.Algorithm)
	if err == nil {
		err = session.SetAlgorithm(alg)
	}
	if err != nil {
		vc.fail(ctx, session, err)
		return
	}
	ctx.JSON(http.StatusOK, session.Snapshot())
}

// solve runs the chosen algorithm, optionally switching it first.
func (vc *VisualizerController) solve(ctx *gin.Context) {
	session, ok := vc.session(ctx)
	if !ok {
		return
	}

	var request SolveRequest
	if err := ctx.ShouldBindJSON(&request); err != nil && !errors.Is(err, io.EOF) {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if request.Algorithm != "" {
		alg, err := solver.ParseAlgorithm(request.Algorithm)
		if err == nil {
			err = session.SetAlgorithm(alg)
		}
		if err != nil {
			vc.fail(ctx, session, err)
			return
		}
	}

	if err := session.Visualize(ctx.Request.Context()); err != nil {
		vc.fail(ctx, session, err)
		return
	}
	ctx.JSON(http.StatusOK, session.Snapshot())
}

// clearPath removes the overlay.
func (vc *VisualizerController) clearPath(ctx *gin.Context) {
	session, ok := vc.session(ctx)
	if !ok {
		return
	}

	session.ClearPath()
	ctx.JSON(http.StatusOK, session.Snapshot())
}

// end removes the session.
func (vc *VisualizerController) end(ctx *gin.Context) {
	id, ok := sessionID(ctx)
	if !ok {
		return
	}
	if err := vc.sessions.Remove(id); err != nil {
		ctx.JSON(StatusFor(err), ErrorResponse{Error: err.Error()})
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (vc *VisualizerController) session(ctx *gin.Context) (*service.Session, bool) {
	id, ok := sessionID(ctx)
	if !ok {
		return nil, false
	}
	session, err := vc.sessions.Session(id)
	if err != nil {
		ctx.JSON(StatusFor(err), ErrorResponse{Error: err.Error()})
		return nil, false
	}
	return session, true
}

func (vc *VisualizerController) fail(ctx *gin.Context, session *service.Session, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		vc.logger.Error(fmt.Sprintf("session %s: %s %s: %s", session.ID(), ctx.Request.Method, ctx.FullPath(), err))
	}
	snap := session.Snapshot()
	ctx.JSON(status, ErrorResponse{Error: service.Notice(err), State: &snap})
}

// sessionID prefers the id the authorization middleware already checked
// against the token, and parses the route parameter otherwise.
func sessionID(ctx *gin.Context) (uuid.UUID, bool) {
	if v, ok := ctx.Get(identity.ContextSessionID); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id, true
		}
	}

	id, err := uuid.Parse(ctx.Param(identity.SessionParam))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid session id"})
		return uuid.Nil, false
	}
	return id, true
}

// StatusFor maps a session error to its HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, solver.ErrMissingSelection),
		errors.Is(err, solver.ErrUnknownAlgorithm):
		return http.StatusBadRequest
	case errors.Is(err, maze.ErrNoPathExists):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrSolveInProgress),
		errors.Is(err, service.ErrStaleResult):
		return http.StatusConflict
	case errors.Is(err, solver.ErrSolverUnavailable),
		errors.Is(err, solver.ErrMalformedResponse):
		return http.StatusBadGateway
	case errors.Is(err, service.ErrSessionNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
