// Package tui draws a visualization session in the terminal and maps keys and
// mouse clicks onto its controls.
package tui

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	general_i "github.com/beka-birhanu/vinom-mazeviz/interfaces/general"
	"github.com/beka-birhanu/vinom-mazeviz/maze"
	"github.com/beka-birhanu/vinom-mazeviz/render"
	"github.com/beka-birhanu/vinom-mazeviz/service"
	"github.com/beka-birhanu/vinom-mazeviz/solver"
)

// Visualizer is the session behind the board.
type Visualizer interface {
	Generate() error
	Click(row, col int) bool
	SetAlgorithm(alg solver.Algorithm) error
	Algorithm() solver.Algorithm
	Visualize(ctx context.Context) error
	ClearPath()
	Snapshot() service.Snapshot
}

// Cell background per layer, indexed by render.Layer.
var layerColors = []tcell.Color{
	render.OpenLayer:    tcell.ColorBlack,
	render.WallLayer:    tcell.ColorGray,
	render.VisitedLayer: tcell.ColorNavy,
	render.PathLayer:    tcell.ColorOlive,
	render.EndLayer:     tcell.ColorMaroon,
	render.StartLayer:   tcell.ColorGreen,
}

const controlsLine = "  g generate   a algorithm   v visualize   c clear   ←↑↓→ move   ⏎ select   q quit"

// MazeBoard is a tview box showing the maze, endpoints and solve overlay.
type MazeBoard struct {
	Box     *tview.Box
	hint    *tview.TextView
	app     *tview.Application
	session Visualizer
	logger  general_i.Logger
	ctx     context.Context
	cancel  context.CancelFunc
	selRow  int
	selCol  int
}

// NewMazeBoard builds the board for session. Solves started from the board
// are cancelled when the board quits.
func NewMazeBoard(app *tview.Application, session Visualizer, hint *tview.TextView, logger general_i.Logger) *MazeBoard {
	ctx, cancel := context.WithCancel(context.Background())
	b := &MazeBoard{
		Box:     tview.NewBox(),
		hint:    hint,
		app:     app,
		session: session,
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
		selRow:  -1,
		selCol:  -1,
	}

	b.Box.SetBorder(true).SetTitle(" maze ")
	b.Box.SetDrawFunc(b.draw)
	b.Box.SetMouseCapture(func(action tview.MouseAction, event *tcell.EventMouse) (tview.MouseAction, *tcell.EventMouse) {
		if action != tview.MouseLeftClick {
			return action, event
		}
		if cell, ok := b.cellAt(event.Position()); ok {
			b.click(cell)
			return tview.MouseConsumed, nil
		}
		return action, event
	})
	b.refreshHint()
	return b
}

// HandleKey runs the control bound to event and swallows it, or passes it on.
func (b *MazeBoard) HandleKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyUp:
		b.MoveSelection(0, -1)
		return nil
	case tcell.KeyDown:
		b.MoveSelection(0, 1)
		return nil
	case tcell.KeyLeft:
		b.MoveSelection(-1, 0)
		return nil
	case tcell.KeyRight:
		b.MoveSelection(1, 0)
		return nil
	case tcell.KeyEnter:
		if b.selRow >= 0 {
			b.click(maze.Cell{Row: b.selRow, Col: b.selCol})
		}
		return nil
	case tcell.KeyRune:
	default:
		return event
	}

	switch event.Rune() {
	case 'g':
		b.generate()
	case 'a':
		b.toggleAlgorithm()
	case 'v':
		b.visualize()
	case 'c':
		b.session.ClearPath()
		b.refreshHint()
	case 'q':
		b.Quit()
	default:
		return event
	}
	return nil
}

// MoveSelection moves the keyboard cursor, placing it in the top-left corner
// the first time.
func (b *MazeBoard) MoveSelection(h, v int) {
	snap := b.session.Snapshot()
	if b.selRow < 0 {
		b.selRow, b.selCol = 0, 0
		return
	}
	if b.selCol+h < 0 || b.selCol+h >= snap.Cols {
		return
	}
	if b.selRow+v < 0 || b.selRow+v >= snap.Rows {
		return
	}
	b.selCol += h
	b.selRow += v
}

// SelectedCell returns the keyboard cursor, or nil before the first move.
func (b *MazeBoard) SelectedCell() *maze.Cell {
	if b.selRow < 0 {
		return nil
	}
	return &maze.Cell{Row: b.selRow, Col: b.selCol}
}

// Quit cancels in-flight solves and stops the application.
func (b *MazeBoard) Quit() {
	b.cancel()
	b.app.Stop()
}

func (b *MazeBoard) click(cell maze.Cell) {
	if b.session.Click(cell.Row, cell.Col) {
		b.logger.Info(fmt.Sprintf("selected %s", cell))
	}
	b.refreshHint()
}

func (b *MazeBoard) generate() {
	if err := b.session.Generate(); err != nil {
		b.logger.Error(fmt.Sprintf("generating maze: %s", err))
	}
	b.refreshHint()
}

func (b *MazeBoard) toggleAlgorithm() {
	next := b.session.Algorithm().Next()
	if err := b.session.SetAlgorithm(next); err != nil {
		b.logger.Error(fmt.Sprintf("switching algorithm: %s", err))
	}
	b.refreshHint()
}

// visualize solves off the event loop and redraws when the answer lands.
func (b *MazeBoard) visualize() {
	alg := b.session.Algorithm()
	b.hint.SetText(fmt.Sprintf("  Searching with %s...\n\n%s", alg, controlsLine))

	go func() {
		if err := b.session.Visualize(b.ctx); err != nil {
			b.logger.Warning(fmt.Sprintf("visualize %s: %s", alg, err))
		}
		b.app.QueueUpdateDraw(b.refreshHint)
	}()
}

func (b *MazeBoard) refreshHint() {
	snap := b.session.Snapshot()

	status := fmt.Sprintf("  Algorithm: %s   Selection: %s", snap.Algorithm, selectionLabel(snap))
	notice := snap.Notice
	if snap.Solving {
		notice = "Searching..."
	}
	b.hint.SetText(fmt.Sprintf("%s\n  %s\n%s", status, notice, controlsLine))
}

func selectionLabel(snap service.Snapshot) string {
	switch {
	case snap.Start == nil:
		return "click a start cell"
	case snap.End == nil:
		return fmt.Sprintf("start %s, click an end cell", snap.Start)
	default:
		return fmt.Sprintf("%s -> %s", snap.Start, snap.End)
	}
}

// origin is the screen position of cell (0,0), inside the border.
func (b *MazeBoard) origin() (int, int) {
	x, y, _, _ := b.Box.GetInnerRect()
	return x, y
}

// cellAt maps a screen position to the cell drawn there.
func (b *MazeBoard) cellAt(x, y int) (maze.Cell, bool) {
	left, top := b.origin()
	if x < left || y < top {
		return maze.Cell{}, false
	}
	cell := maze.Cell{Row: y - top, Col: (x - left) / 2}
	snap := b.session.Snapshot()
	if cell.Row >= snap.Rows || cell.Col >= snap.Cols {
		return maze.Cell{}, false
	}
	return cell, true
}

func (b *MazeBoard) draw(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	left, top := x+1, y+1
	innerW, innerH := width-2, height-2

	snap := b.session.Snapshot()
	for row, layers := range render.Project(snap.Scene()) {
		if row >= innerH {
			break
		}
		for col, layer := range layers {
			if col*2+1 >= innerW {
				break
			}
			style := tcell.StyleDefault.Background(layerColors[layer]).Foreground(tcell.ColorWhite)
			if row == b.selRow && col == b.selCol {
				style = style.Reverse(true)
			}
			drawCell(screen, style, glyph(layer), col, row, left, top)
		}
	}
	return left, top, innerW, innerH
}

func glyph(l render.Layer) rune {
	switch l {
	case render.StartLayer, render.EndLayer:
		return l.Rune()
	default:
		return ' '
	}
}

// drawCell fills the two screen columns of one maze cell.
func drawCell(s tcell.Screen, style tcell.Style, r rune, col, row, left, top int) {
	s.SetContent(left+col*2, top+row, r, nil, style)
	s.SetContent(left+col*2+1, top+row, ' ', nil, style)
}
