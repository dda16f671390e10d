package term

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Turret-Defense/internal/game"
)

// 108x30 gives an 80x30 field: 10 logical px per column, 20 per row.
func newSimScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(108, 30)
	return screen
}

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newClock() *fakeClock { return &fakeClock{now: time.Unix(1000, 0)} }

func typed(r rune) *tcell.EventKey { return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone) }

func key(k tcell.Key) *tcell.EventKey { return tcell.NewEventKey(k, 0, tcell.ModNone) }

func click(x, y int, b tcell.ButtonMask) tcell.Event {
	return tcell.NewEventMouse(x, y, b, tcell.ModNone)
}

func shots(e *game.Engine) int {
	n := 0
	for _, ev := range e.DrainEvents() {
		if ev.Kind == game.EventShotFired {
			n++
		}
	}
	return n
}

func rowText(s tcell.SimulationScreen, y int) string {
	cols, _ := s.Size()
	var sb strings.Builder
	for x := 0; x < cols; x++ {
		r, _, _, _ := s.GetContent(x, y)
		sb.WriteRune(r)
	}
	return sb.String()
}

func gameOverTerminal(t *testing.T, screen tcell.Screen, opts ...Option) *Terminal {
	t.Helper()
	ts := game.NewTestSim(game.SimHealth(1), game.SimEnemy(game.EnemyNormal, game.SideLeft, 380, 550))
	term := New(screen, ts.Engine, opts...)
	term.Frame()
	if term.Driver().Engine().Phase() != game.PhaseGameOver {
		t.Fatalf("setup: expected game over, got %s", term.Driver().Engine().Phase())
	}
	return term
}

func TestCellMapping(t *testing.T) {
	term := New(newSimScreen(t), game.New(game.WithSeed(1)))
	if x, y := term.toCell(400, 550); x != 40 || y != 27 {
		t.Fatalf("expected cell (40,27), got (%d,%d)", x, y)
	}
	if x, y := term.toCell(-5, 900); x != 0 || y != 29 {
		t.Fatalf("out-of-field points should clamp, got (%d,%d)", x, y)
	}
	if x, y := term.toLogical(40, 27); x != 405 || y != 550 {
		t.Fatalf("expected cell centre (405,550), got (%.1f,%.1f)", x, y)
	}
}

func TestMovementHoldExpires(t *testing.T) {
	clk := newClock()
	term := New(newSimScreen(t), game.New(game.WithSeed(1)), WithClock(clk.Now))
	e := term.Driver().Engine()

	term.HandleEvent(typed('d'))
	term.Frame()
	if e.State().Moving&game.DirRight == 0 {
		t.Fatal("a fresh press should hold right")
	}
	clk.Advance(keyHold + time.Millisecond)
	term.Frame()
	if e.State().Moving != 0 {
		t.Fatalf("the hold should lapse without repeats, got %v", e.State().Moving)
	}

	term.HandleEvent(key(tcell.KeyUp))
	term.Frame()
	if e.State().Moving != game.DirUp {
		t.Fatalf("arrow keys should move too, got %v", e.State().Moving)
	}
}

func TestSpaceFiresOncePerHold(t *testing.T) {
	clk := newClock()
	term := New(newSimScreen(t), game.New(game.WithSeed(1)), WithClock(clk.Now))
	e := term.Driver().Engine()

	term.HandleEvent(typed(' '))
	clk.Advance(50 * time.Millisecond)
	term.HandleEvent(typed(' '))
	if n := shots(e); n != 1 {
		t.Fatalf("auto-repeat must not fire again, got %d shots", n)
	}
	term.Frame()
	if !e.State().FireHeld {
		t.Fatal("repeats should keep fire held")
	}

	clk.Advance(keyHold + time.Millisecond)
	term.HandleEvent(typed(' '))
	if n := shots(e); n != 1 {
		t.Fatalf("a press after the hold lapses should fire, got %d shots", n)
	}
}

func TestMouseAimsAndFiresOnPress(t *testing.T) {
	term := New(newSimScreen(t), game.New(game.WithSeed(1)))
	e := term.Driver().Engine()

	term.HandleEvent(click(40, 10, tcell.Button1))
	term.HandleEvent(click(41, 10, tcell.Button1))
	st := e.State()
	if st.PointerX != 415 || st.PointerY != 210 {
		t.Fatalf("pointer should follow the mouse, got (%.0f,%.0f)", st.PointerX, st.PointerY)
	}
	if n := shots(e); n != 1 {
		t.Fatalf("dragging must not fire twice, got %d", n)
	}
	term.HandleEvent(click(41, 10, tcell.ButtonNone))
	term.Frame()
	if e.State().FireHeld {
		t.Fatal("releasing the button should clear fire held")
	}
}

func TestKeyboardAim(t *testing.T) {
	term := New(newSimScreen(t), game.New(game.WithSeed(1)))
	e := term.Driver().Engine()
	e.SetPointer(500, 550)
	e.Advance()

	term.HandleEvent(typed('x'))
	e.Advance()
	if a := e.Snapshot().Turret.Angle; math.Abs(a-aimStepDeg) > 1e-6 {
		t.Fatalf("x should swing the barrel clockwise by %.0f degrees, got %.3f", aimStepDeg, a)
	}
	term.HandleEvent(typed('z'))
	term.HandleEvent(typed('z'))
	e.Advance()
	if a := e.Snapshot().Turret.Angle; math.Abs(a+aimStepDeg) > 1e-6 {
		t.Fatalf("two z presses should end at -%.0f degrees, got %.3f", aimStepDeg, a)
	}
}

func TestQuitKeys(t *testing.T) {
	term := New(newSimScreen(t), game.New(game.WithSeed(1)))
	for _, ev := range []*tcell.EventKey{typed('q'), typed('Q'), key(tcell.KeyCtrlC)} {
		if !term.HandleEvent(ev) {
			t.Errorf("%v should quit", ev.Name())
		}
	}
	if term.HandleEvent(typed('w')) {
		t.Error("movement must not quit")
	}
}

func TestPauseKeys(t *testing.T) {
	term := New(newSimScreen(t), game.New(game.WithSeed(1)))
	e := term.Driver().Engine()
	term.HandleEvent(typed('p'))
	if e.Phase() != game.PhasePaused {
		t.Fatalf("p should pause, got %s", e.Phase())
	}
	term.HandleEvent(key(tcell.KeyEscape))
	if e.Phase() != game.PhaseRunning {
		t.Fatalf("esc should resume, got %s", e.Phase())
	}
}

func TestResetOnlyAfterGameOver(t *testing.T) {
	screen := newSimScreen(t)
	term := New(screen, game.New(game.WithSeed(1)))
	first := term.Driver().Engine()
	term.HandleEvent(typed('r'))
	if term.Driver().Engine() != first {
		t.Fatal("r must not reset a running game")
	}

	term = gameOverTerminal(t, screen)
	over := term.Driver().Engine()
	term.HandleEvent(typed('r'))
	if term.Driver().Engine() == over || term.Driver().Engine().Phase() != game.PhaseRunning {
		t.Fatal("r should start a new game after game over")
	}
}

func TestCopyReport(t *testing.T) {
	var copied string
	term := gameOverTerminal(t, newSimScreen(t), WithClipboard(func(s string) error {
		copied = s
		return nil
	}))
	term.HandleEvent(typed('c'))
	if !strings.Contains(copied, "game_over at T=1") {
		t.Fatalf("unexpected clipboard text:\n%s", copied)
	}
	if term.status != "report copied" {
		t.Fatalf("expected copy status, got %q", term.status)
	}

	term = New(newSimScreen(t), game.New(game.WithSeed(1)),
		WithClipboard(func(string) error { return errors.New("no clipboard") }))
	term.HandleEvent(typed('c'))
	if term.status != "clipboard unavailable" {
		t.Fatalf("expected failure status, got %q", term.status)
	}
}

func TestStatusExpires(t *testing.T) {
	clk := newClock()
	term := New(newSimScreen(t), game.New(game.WithSeed(1)),
		WithClock(clk.Now), WithClipboard(func(string) error { return nil }))
	term.HandleEvent(typed('c'))
	term.Frame()
	if term.status == "" {
		t.Fatal("status should still be up")
	}
	clk.Advance(3 * time.Second)
	term.Frame()
	if term.status != "" {
		t.Fatalf("status should expire, got %q", term.status)
	}
}

func TestDrawTurretAndBarrel(t *testing.T) {
	screen := newSimScreen(t)
	term := New(screen, game.New(game.WithSeed(1)))
	term.Frame()

	if r, _, _, _ := screen.GetContent(40, 27); r != glyphTurret {
		t.Fatalf("expected turret at (40,27), got %q", r)
	}
	// The pointer starts at the centre, straight above the turret.
	if r, _, _, _ := screen.GetContent(40, 26); r != '|' {
		t.Fatalf("expected a vertical barrel at (40,26), got %q", r)
	}
	if !strings.Contains(rowText(screen, 2), "Score: 0") {
		t.Fatalf("panel should show the score, got %q", rowText(screen, 2))
	}
}

func TestDrawGameOver(t *testing.T) {
	screen := newSimScreen(t)
	gameOverTerminal(t, screen)
	if !strings.Contains(rowText(screen, 14), "Game Over!") {
		t.Fatalf("expected the game over banner, got %q", rowText(screen, 14))
	}
	if !strings.Contains(rowText(screen, 29), "q quit") {
		t.Fatalf("expected game-over help on the last row, got %q", rowText(screen, 29))
	}
}

func TestRunStopsOnQuitKey(t *testing.T) {
	screen := newSimScreen(t)
	term := New(screen, game.New(game.WithSeed(1)))
	done := make(chan error, 1)
	go func() { done <- term.Run(context.Background()) }()
	if err := screen.PostEvent(typed('q')); err != nil {
		t.Fatalf("post event: %v", err)
	}
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("quit should return nil, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop on q")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	term := New(newSimScreen(t), game.New(game.WithSeed(1)))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := term.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestBarrelGlyph(t *testing.T) {
	cases := map[float64]rune{
		0: '-', 180: '-', -180: '-',
		45: '\\', -135: '\\',
		90: '|', -90: '|',
		-45: '/', 135: '/',
	}
	for angle, want := range cases {
		if got := barrelGlyph(angle); got != want {
			t.Errorf("angle %.0f: expected %q, got %q", angle, want, got)
		}
	}
}

func TestEnemyGlyphs(t *testing.T) {
	if enemyGlyph(game.EnemyView{Kind: game.EnemyNormal}) != glyphEnemy {
		t.Fatal("normal enemy glyph")
	}
	if enemyGlyph(game.EnemyView{Kind: game.EnemyFast, VX: -4}) != glyphFastL {
		t.Fatal("fast enemies point the way they walk")
	}
	if enemyGlyph(game.EnemyView{Kind: game.EnemyFast, VX: 4}) != glyphFastR {
		t.Fatal("fast enemies point the way they walk")
	}
}

func TestHelpLines_ResetOnlyWhenOver(t *testing.T) {
	if strings.Contains(strings.Join(helpLines(false), " "), "new game") {
		t.Fatal("reset should not be offered while playing")
	}
	if !strings.Contains(strings.Join(helpLines(true), " "), "r new game") {
		t.Fatal("reset should be offered after game over")
	}
}
