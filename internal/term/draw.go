package term

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Turret-Defense/internal/game"
)

var (
	styleField   = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	styleTurret  = styleField.Foreground(tcell.ColorBlue).Bold(true)
	styleBarrel  = styleField.Foreground(tcell.ColorGray)
	styleEnemy   = styleField.Foreground(tcell.ColorRed)
	styleFast    = styleField.Foreground(tcell.ColorOrange)
	styleFlash   = styleField.Foreground(tcell.ColorWhite).Bold(true)
	styleRapid   = styleField.Foreground(tcell.ColorYellow)
	styleHealth  = styleField.Foreground(tcell.ColorGreen)
	stylePanel   = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleDim     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleBarFill = tcell.StyleDefault.Background(tcell.NewRGBColor(0, 200, 0))
	styleBarBg   = tcell.StyleDefault.Background(tcell.NewRGBColor(50, 50, 50))
	styleOver    = tcell.StyleDefault.Background(tcell.NewRGBColor(255, 50, 0)).Foreground(tcell.ColorWhite).Bold(true)
)

const (
	glyphTurret  = '#'
	glyphEnemy   = 'O'
	glyphFastL   = '<'
	glyphFastR   = '>'
	glyphBullet  = '*'
	glyphHealth  = '+'
	glyphRapidUp = '!'
	healthCells  = 20
)

// barrelGlyph picks the line character closest to angle (degrees, y down).
func barrelGlyph(angle float64) rune {
	a := math.Mod(angle+22.5, 180)
	if a < 0 {
		a += 180
	}
	return [...]rune{'-', '\\', '|', '/'}[int(a/45)%4]
}

func (t *Terminal) draw() {
	s := t.screen
	s.Clear()
	snap := t.driver.Engine().Snapshot()
	fc, fr := t.fieldSize()

	for y := 0; y < fr; y++ {
		for x := 0; x < fc; x++ {
			s.SetContent(x, y, ' ', nil, styleField)
		}
	}
	for _, p := range snap.PowerUps {
		x, y := t.toCell(p.X, p.Y)
		if p.Kind == game.PowerUpRapidFire {
			s.SetContent(x, y, glyphRapidUp, nil, styleRapid)
		} else {
			s.SetContent(x, y, glyphHealth, nil, styleHealth)
		}
	}
	for _, en := range snap.Enemies {
		x, y := t.toCell(en.X, en.Y)
		s.SetContent(x, y, enemyGlyph(en), nil, enemyStyle(en))
	}
	for _, b := range snap.Bullets {
		x, y := t.toCell(b.X, b.Y)
		st := styleField
		if b.Color == game.BulletRapid {
			st = styleRapid
		}
		s.SetContent(x, y, glyphBullet, nil, st)
	}

	tr := snap.Turret
	rad := tr.Angle * math.Pi / 180
	bx, by := t.toCell(tr.X+tr.Barrel*math.Cos(rad), tr.Y+tr.Barrel*math.Sin(rad))
	s.SetContent(bx, by, barrelGlyph(tr.Angle), nil, styleBarrel)
	tx, ty := t.toCell(tr.X, tr.Y)
	s.SetContent(tx, ty, glyphTurret, nil, styleTurret)

	t.drawPanel(snap, fc+1)
	if snap.GameOver {
		t.centre(fc, fr/2-1, " Game Over! ", styleOver)
		t.centre(fc, fr-2, fmt.Sprintf(" Score: %d ", snap.Score), styleOver)
	} else if snap.Paused {
		t.centre(fc, fr/2, " PAUSED ", styleOver)
	}
	s.Show()
}

func enemyGlyph(en game.EnemyView) rune {
	if en.Kind != game.EnemyFast {
		return glyphEnemy
	}
	if en.VX < 0 {
		return glyphFastL
	}
	return glyphFastR
}

func enemyStyle(en game.EnemyView) tcell.Style {
	switch {
	case en.Flashing:
		return styleFlash
	case en.Kind == game.EnemyFast:
		return styleFast
	default:
		return styleEnemy
	}
}

// panelLines is the side panel text, top to bottom, below the health bar.
func panelLines(snap game.Snapshot, status string, muted bool) []string {
	lines := []string{
		fmt.Sprintf("Score: %d", snap.Score),
		fmt.Sprintf("High:  %d", snap.HighScore),
		fmt.Sprintf("Health: %d/%d", snap.Health, snap.MaxHealth),
	}
	if snap.Combo > 1 {
		lines = append(lines, fmt.Sprintf("Combo x%d", snap.Combo))
	}
	if snap.RapidFire {
		lines = append(lines, fmt.Sprintf("Rapid fire %d", snap.RapidFireTicks))
	}
	if snap.Message != "" {
		lines = append(lines, snap.Message)
	}
	if muted {
		lines = append(lines, "[muted]")
	}
	if status != "" {
		lines = append(lines, "> "+status)
	}
	return lines
}

func (t *Terminal) drawPanel(snap game.Snapshot, x0 int) {
	fill := int(math.Floor(healthCells * snap.HealthFraction()))
	for i := 0; i < healthCells; i++ {
		st := styleBarBg
		if i < fill {
			st = styleBarFill
		}
		t.screen.SetContent(x0+i, 0, ' ', nil, st)
	}

	y := 2
	muted := t.muter != nil && t.muter.Muted()
	for _, l := range panelLines(snap, t.status, muted) {
		t.print(x0, y, l, stylePanel)
		y++
	}
	y++
	for _, fe := range t.driver.Feed().Recent() {
		t.print(x0, y, fe.Text, styleDim)
		y++
	}

	help := helpLines(snap.GameOver)
	_, rows := t.screen.Size()
	for i, l := range help {
		t.print(x0, rows-len(help)+i, l, styleDim)
	}
}

// helpLines lists the keys. Reset is only offered once the game is over.
func helpLines(gameOver bool) []string {
	if gameOver {
		return []string{"r new game  c copy", "q quit"}
	}
	return []string{
		"wasd/arrows move",
		"mouse, z/x  aim",
		"click/space fire",
		"p/esc pause  m mute",
		"c copy  q quit",
	}
}

// print writes s from (x,y), clipped at the right edge of the screen.
func (t *Terminal) print(x, y int, s string, st tcell.Style) {
	cols, _ := t.screen.Size()
	for _, r := range s {
		if x >= cols {
			return
		}
		t.screen.SetContent(x, y, r, nil, st)
		x++
	}
}

// centre writes s centred horizontally within the first width columns.
func (t *Terminal) centre(width, y int, s string, st tcell.Style) {
	x := (width - len(s)) / 2
	if x < 0 {
		x = 0
	}
	t.print(x, y, s, st)
}
