// Package view runs the game in a desktop window with ebiten.
package view

import (
	"io"
	"log"
	"time"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/Turret-Defense/internal/game"
)

// panelWidth is the side panel to the right of the playfield.
const panelWidth = 220

// statusTicks is how many frames a panel status line stays up.
const statusTicks = 120

// Muter is implemented by sinks whose output can be silenced.
type Muter interface {
	SetMuted(bool)
	Muted() bool
}

// Option configures a Window.
type Option func(*Window)

// WithSink adds an event sink, typically the sound manager. A sink that
// also implements Muter is toggled by the M key.
func WithSink(s game.EventSink) Option {
	return func(w *Window) {
		w.sinks = append(w.sinks, s)
		if m, ok := s.(Muter); ok {
			w.muter = m
		}
	}
}

// WithClipboard replaces the system clipboard writer.
func WithClipboard(copyText func(string) error) Option {
	return func(w *Window) { w.copyText = copyText }
}

// WithClock replaces the wall clock used to measure frame time.
func WithClock(now func() time.Time) Option {
	return func(w *Window) { w.now = now }
}

// WithLogger sets the logger for degraded paths such as a failed copy.
func WithLogger(l *log.Logger) Option {
	return func(w *Window) { w.logger = l }
}

// Window implements ebiten.Game around a game.Driver.
type Window struct {
	driver *game.Driver
	sinks  []game.EventSink
	muter  Muter

	copyText func(string) error
	now      func() time.Time
	last     time.Time
	logger   *log.Logger

	prevKeys  map[ebiten.Key]bool
	prevMouse bool

	status      string
	statusTimer int

	face text.Face
}

// New wraps e in a window front end.
func New(e *game.Engine, opts ...Option) *Window {
	w := &Window{
		copyText: clipboard.WriteAll,
		now:      time.Now,
		logger:   log.New(io.Discard, "", 0),
		prevKeys: map[ebiten.Key]bool{},
		face:     text.NewGoXFace(basicfont.Face7x13),
	}
	for _, o := range opts {
		o(w)
	}
	w.driver = game.NewDriver(e, w.sinks...)
	return w
}

// Driver exposes the engine glue, for tests and the headless tools.
func (w *Window) Driver() *game.Driver { return w.driver }

// Size is the logical window size: the playfield plus the side panel.
func (w *Window) Size() (int, int) {
	vp := w.driver.Engine().Viewport()
	return int(vp.W) + panelWidth, int(vp.H)
}

func (w *Window) Update() error {
	w.applyInput(pollInput())
	w.driver.Frame(w.elapsed())
	if w.statusTimer > 0 {
		w.statusTimer--
		if w.statusTimer == 0 {
			w.status = ""
		}
	}
	return nil
}

func (w *Window) Layout(_, _ int) (int, int) {
	return w.Size()
}

// elapsed is the wall time since the previous frame. The first frame
// counts as one tick.
func (w *Window) elapsed() time.Duration {
	now := w.now()
	if w.last.IsZero() {
		w.last = now
		return w.driver.Engine().Tuning().TickInterval
	}
	d := now.Sub(w.last)
	w.last = now
	if d < 0 {
		return 0
	}
	return d
}

// watchedKeys are sampled every frame.
var watchedKeys = []ebiten.Key{
	ebiten.KeyW, ebiten.KeyA, ebiten.KeyS, ebiten.KeyD,
	ebiten.KeyArrowUp, ebiten.KeyArrowDown, ebiten.KeyArrowLeft, ebiten.KeyArrowRight,
	ebiten.KeySpace, ebiten.KeyP, ebiten.KeyEscape,
	ebiten.KeyR, ebiten.KeyC, ebiten.KeyM,
}

// inputFrame is the raw input state for one frame.
type inputFrame struct {
	keys      map[ebiten.Key]bool
	cursorX   int
	cursorY   int
	mouseDown bool
}

func pollInput() inputFrame {
	f := inputFrame{keys: make(map[ebiten.Key]bool, len(watchedKeys))}
	for _, k := range watchedKeys {
		f.keys[k] = ebiten.IsKeyPressed(k)
	}
	f.cursorX, f.cursorY = ebiten.CursorPosition()
	f.mouseDown = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	return f
}

// applyInput maps one frame of input onto engine commands. Held keys are
// level-triggered; fire, pause, reset, copy and mute are edge-triggered.
func (w *Window) applyInput(f inputFrame) {
	e := w.driver.Engine()
	pressed := func(k ebiten.Key) bool { return f.keys[k] && !w.prevKeys[k] }

	e.SetMoveKey(game.DirUp, f.keys[ebiten.KeyW] || f.keys[ebiten.KeyArrowUp])
	e.SetMoveKey(game.DirDown, f.keys[ebiten.KeyS] || f.keys[ebiten.KeyArrowDown])
	e.SetMoveKey(game.DirLeft, f.keys[ebiten.KeyA] || f.keys[ebiten.KeyArrowLeft])
	e.SetMoveKey(game.DirRight, f.keys[ebiten.KeyD] || f.keys[ebiten.KeyArrowRight])

	// Cursor positions over the side panel clamp to the field edge.
	e.SetPointer(float64(f.cursorX), float64(f.cursorY))

	e.SetFireHeld(f.mouseDown || f.keys[ebiten.KeySpace])
	if (f.mouseDown && !w.prevMouse) || pressed(ebiten.KeySpace) {
		e.Fire()
	}

	if pressed(ebiten.KeyP) || pressed(ebiten.KeyEscape) {
		e.TogglePause()
	}
	if pressed(ebiten.KeyR) && w.driver.Reset() {
		w.setStatus("new game")
	}
	if pressed(ebiten.KeyC) {
		w.copyReport()
	}
	if pressed(ebiten.KeyM) && w.muter != nil {
		w.muter.SetMuted(!w.muter.Muted())
		if w.muter.Muted() {
			w.setStatus("sound off")
		} else {
			w.setStatus("sound on")
		}
	}

	w.prevKeys = f.keys
	w.prevMouse = f.mouseDown
}

func (w *Window) copyReport() {
	if err := w.copyText(w.driver.ReportText()); err != nil {
		w.logger.Printf("copy report: %v", err)
		w.setStatus("clipboard unavailable")
		return
	}
	w.setStatus("report copied")
}

func (w *Window) setStatus(s string) {
	w.status = s
	w.statusTimer = statusTicks
}
