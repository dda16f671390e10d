// Package term runs the game in a terminal with tcell. Terminals report
// key presses but not releases, so movement and fire count as held for a
// short window after each press or auto-repeat.
package term

import (
	"context"
	"io"
	"log"
	"math"
	"time"
	"unicode"

	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Turret-Defense/internal/game"
)

const (
	frameInterval = 16 * time.Millisecond
	keyHold       = 180 * time.Millisecond
	aimStepDeg    = 10.0
	aimReach      = 120.0
	panelCols     = 28
	minFieldCols  = 20
)

// Muter is implemented by sinks whose output can be silenced.
type Muter interface {
	SetMuted(bool)
	Muted() bool
}

// Option configures a Terminal.
type Option func(*Terminal)

// WithSink adds an event sink. A sink that also implements Muter is
// toggled by the m key.
func WithSink(s game.EventSink) Option {
	return func(t *Terminal) {
		t.sinks = append(t.sinks, s)
		if m, ok := s.(Muter); ok {
			t.muter = m
		}
	}
}

// WithClipboard replaces the system clipboard writer.
func WithClipboard(copyText func(string) error) Option {
	return func(t *Terminal) { t.copyText = copyText }
}

// WithClock replaces the wall clock.
func WithClock(now func() time.Time) Option {
	return func(t *Terminal) { t.now = now }
}

// WithLogger sets the logger for degraded paths.
func WithLogger(l *log.Logger) Option {
	return func(t *Terminal) { t.logger = l }
}

// Terminal draws the field as character cells and maps keys and mouse
// clicks onto engine commands.
type Terminal struct {
	screen tcell.Screen
	driver *game.Driver
	sinks  []game.EventSink
	muter  Muter

	copyText func(string) error
	now      func() time.Time
	last     time.Time
	logger   *log.Logger

	held      map[game.Direction]time.Time
	fireUntil time.Time
	mouseDown bool

	status      string
	statusUntil time.Time
}

// New wraps e for an already initialised screen. Mouse reporting is enabled.
func New(screen tcell.Screen, e *game.Engine, opts ...Option) *Terminal {
	t := &Terminal{
		screen:   screen,
		copyText: clipboard.WriteAll,
		now:      time.Now,
		logger:   log.New(io.Discard, "", 0),
		held:     make(map[game.Direction]time.Time),
	}
	for _, o := range opts {
		o(t)
	}
	t.driver = game.NewDriver(e, t.sinks...)
	screen.EnableMouse()
	return t
}

// Driver exposes the engine glue.
func (t *Terminal) Driver() *game.Driver { return t.driver }

// Run drives the game until q or Ctrl-C is pressed or ctx is cancelled.
// Events are read on a helper goroutine and handled on this one.
func (t *Terminal) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	t.Frame()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if t.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			t.Frame()
		}
	}
}

// Frame applies held input, advances the engine by the wall time since the
// previous frame and redraws.
func (t *Terminal) Frame() {
	now := t.now()
	e := t.driver.Engine()
	for _, d := range []game.Direction{game.DirUp, game.DirDown, game.DirLeft, game.DirRight} {
		at, ok := t.held[d]
		e.SetMoveKey(d, ok && now.Sub(at) < keyHold)
	}
	e.SetFireHeld(t.mouseDown || now.Before(t.fireUntil))

	elapsed := frameInterval
	if !t.last.IsZero() {
		elapsed = now.Sub(t.last)
		if elapsed < 0 {
			elapsed = 0
		}
	}
	t.last = now
	t.driver.Frame(elapsed)

	if !t.statusUntil.IsZero() && !now.Before(t.statusUntil) {
		t.status = ""
		t.statusUntil = time.Time{}
	}
	t.draw()
}

// HandleEvent applies one terminal event and reports whether to quit.
func (t *Terminal) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return t.handleKey(ev)
	case *tcell.EventMouse:
		t.handleMouse(ev)
	case *tcell.EventResize:
		t.screen.Sync()
	}
	return false
}

func (t *Terminal) handleKey(ev *tcell.EventKey) bool {
	now := t.now()
	e := t.driver.Engine()
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return true
	case tcell.KeyEscape:
		e.TogglePause()
	case tcell.KeyUp:
		t.held[game.DirUp] = now
	case tcell.KeyDown:
		t.held[game.DirDown] = now
	case tcell.KeyLeft:
		t.held[game.DirLeft] = now
	case tcell.KeyRight:
		t.held[game.DirRight] = now
	case tcell.KeyRune:
		switch unicode.ToLower(ev.Rune()) {
		case 'q':
			return true
		case 'w':
			t.held[game.DirUp] = now
		case 's':
			t.held[game.DirDown] = now
		case 'a':
			t.held[game.DirLeft] = now
		case 'd':
			t.held[game.DirRight] = now
		case ' ':
			// Auto-repeat refreshes the hold window, so only a fresh press fires.
			if !now.Before(t.fireUntil) {
				e.Fire()
			}
			t.fireUntil = now.Add(keyHold)
		case 'z':
			t.rotateAim(-aimStepDeg)
		case 'x':
			t.rotateAim(aimStepDeg)
		case 'p':
			e.TogglePause()
		case 'r':
			if t.driver.Reset() {
				t.setStatus("new game")
			}
		case 'c':
			t.copyReport()
		case 'm':
			if t.muter != nil {
				t.muter.SetMuted(!t.muter.Muted())
				if t.muter.Muted() {
					t.setStatus("sound off")
				} else {
					t.setStatus("sound on")
				}
			}
		}
	}
	return false
}

func (t *Terminal) handleMouse(ev *tcell.EventMouse) {
	e := t.driver.Engine()
	cx, cy := ev.Position()
	x, y := t.toLogical(cx, cy)
	e.SetPointer(x, y)

	down := ev.Buttons()&tcell.Button1 != 0
	if down && !t.mouseDown {
		e.Fire()
	}
	t.mouseDown = down
}

// rotateAim swings the pointer around the turret for keyboard-only play.
func (t *Terminal) rotateAim(deg float64) {
	e := t.driver.Engine()
	tr := e.Snapshot().Turret
	st := e.State()
	base := tr.Angle
	if dx, dy := st.PointerX-tr.X, st.PointerY-tr.Y; dx != 0 || dy != 0 {
		base = math.Atan2(dy, dx) * 180 / math.Pi
	}
	rad := (base + deg) * math.Pi / 180
	e.SetPointer(tr.X+aimReach*math.Cos(rad), tr.Y+aimReach*math.Sin(rad))
}

func (t *Terminal) copyReport() {
	if err := t.copyText(t.driver.ReportText()); err != nil {
		t.logger.Printf("copy report: %v", err)
		t.setStatus("clipboard unavailable")
		return
	}
	t.setStatus("report copied")
}

func (t *Terminal) setStatus(s string) {
	t.status = s
	t.statusUntil = t.now().Add(2 * time.Second)
}

// fieldSize is the playfield area in cells; the panel takes the rest.
func (t *Terminal) fieldSize() (int, int) {
	cols, rows := t.screen.Size()
	fc := cols - panelCols
	if fc < minFieldCols {
		fc = minFieldCols
	}
	if rows < 1 {
		rows = 1
	}
	return fc, rows
}

// toCell maps a logical point to the cell that contains it.
func (t *Terminal) toCell(x, y float64) (int, int) {
	vp := t.driver.Engine().Viewport()
	fc, fr := t.fieldSize()
	cx := int(x / vp.W * float64(fc))
	cy := int(y / vp.H * float64(fr))
	return clampInt(cx, 0, fc-1), clampInt(cy, 0, fr-1)
}

// toLogical maps a cell to the logical point at its centre.
func (t *Terminal) toLogical(cx, cy int) (float64, float64) {
	vp := t.driver.Engine().Viewport()
	fc, fr := t.fieldSize()
	return (float64(cx) + 0.5) / float64(fc) * vp.W, (float64(cy) + 0.5) / float64(fr) * vp.H
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
