// Command terminal runs the maze visualizer in the terminal.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rivo/tview"

	"github.com/beka-birhanu/vinom-mazeviz/config"
	logger "github.com/beka-birhanu/vinom-mazeviz/infrastruture/log"
	"github.com/beka-birhanu/vinom-mazeviz/service"
	"github.com/beka-birhanu/vinom-mazeviz/solver"
	"github.com/beka-birhanu/vinom-mazeviz/tui"
)

func main() {
	// The screen belongs to tview, so logs go to LOG_FILE or nowhere.
	var out io.Writer = io.Discard
	if config.Envs.LogFile != "" {
		f, err := os.OpenFile(config.Envs.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	appLogger, err := logger.New("TUI", "", out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating logger: %v\n", err)
		os.Exit(1)
	}

	client, err := solver.NewClient(solver.Config{
		BaseURL: config.Envs.SolverURL,
		Timeout: config.Envs.SolverTimeout,
		Logger:  appLogger.WithField("component", "solver"),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating solver client: %v\n", err)
		os.Exit(1)
	}

	session, err := service.NewSession(&service.SessionConfig{
		Rows:            config.Envs.GridRows,
		Cols:            config.Envs.GridCols,
		WallProbability: config.Envs.WallProbability,
		Algorithm:       solver.Dijkstra,
		Solver:          client,
		Logger:          appLogger.WithField("component", "session"),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating session: %v\n", err)
		os.Exit(1)
	}

	app := tview.NewApplication()
	hint := tview.NewTextView()
	board := tui.NewMazeBoard(app, session, hint, appLogger)

	layout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(board.Box, config.Envs.GridRows+2, 0, true).
		AddItem(hint, 3, 0, false)

	app.SetInputCapture(board.HandleKey)
	app.EnableMouse(true)
	appLogger.Info(fmt.Sprintf("starting %dx%d visualizer against %s", config.Envs.GridRows, config.Envs.GridCols, config.Envs.SolverURL))
	if err := app.SetRoot(layout, true).Run(); err != nil {
		appLogger.Error(fmt.Sprintf("terminal UI: %v", err))
		os.Exit(1)
	}
}
