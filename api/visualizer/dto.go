// Package visualizerapi exposes the maze visualizer controls over HTTP.
package visualizerapi

import (
	"github.com/beka-birhanu/vinom-mazeviz/service"
)

// ClickRequest selects the cell at Row, Col.
type ClickRequest struct {
	Row *int `json:"row" binding:"required"`
	Col *int `json:"col" binding:"required"`
}

// AlgorithmRequest chooses the algorithm for the next solve.
type AlgorithmRequest struct {
	Algorithm string `json:"algorithm" binding:"required"`
}

// SolveRequest optionally switches algorithm before solving.
type SolveRequest struct {
	Algorithm string `json:"algorithm"`
}

// ClickResponse reports whether the click changed the endpoints.
type ClickResponse struct {
	Changed bool             `json:"changed"`
	State   service.Snapshot `json:"state"`
}

// ErrorResponse carries the user-facing notice and the unchanged state.
type ErrorResponse struct {
	Error string            `json:"error"`
	State *service.Snapshot `json:"state,omitempty"`
}
