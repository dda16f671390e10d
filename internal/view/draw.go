package view

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Turret-Defense/internal/game"
)

const (
	healthBarX = 10
	healthBarY = 10
	healthBarW = 150
	healthBarH = 50

	barrelWidth = 6
	lineH       = 16
)

var (
	colBackground = color.RGBA{A: 255}
	colTurret     = color.RGBA{B: 139, A: 255}
	colBarrel     = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	colBullet     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	colRapid      = color.RGBA{R: 255, G: 220, B: 0, A: 255}
	colEnemy      = color.RGBA{R: 255, A: 255}
	colFast       = color.RGBA{R: 255, G: 120, B: 0, A: 255}
	colFlash      = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	colHealthUp   = color.RGBA{G: 220, B: 90, A: 255}
	colBarFill    = color.RGBA{G: 200, A: 255}
	colBarBg      = color.RGBA{R: 50, G: 50, B: 50, A: 255}
	colGameOver   = color.RGBA{R: 255, G: 50, A: 150}
	colPanel      = color.RGBA{R: 14, G: 14, B: 22, A: 255}
	colPanelEdge  = color.RGBA{R: 60, G: 60, B: 100, A: 255}
	colText       = color.RGBA{R: 230, G: 230, B: 230, A: 255}
	colDim        = color.RGBA{R: 140, G: 140, B: 160, A: 255}
)

func (w *Window) Draw(screen *ebiten.Image) {
	snap := w.driver.Engine().Snapshot()
	screen.Fill(colBackground)
	w.drawField(screen, snap)
	w.drawHealthBar(screen, snap)
	w.drawPanel(screen, snap)
	if snap.GameOver {
		w.drawGameOver(screen, snap)
	} else if snap.Paused {
		w.drawLabel(screen, "PAUSED", snap.Viewport.W/2, snap.Viewport.H/2-20, colText, 3, text.AlignCenter)
	}
}

func (w *Window) drawField(screen *ebiten.Image, snap game.Snapshot) {
	for _, p := range snap.PowerUps {
		c := colHealthUp
		if p.Kind == game.PowerUpRapidFire {
			c = colRapid
		}
		vector.StrokeCircle(screen, float32(p.X), float32(p.Y), float32(p.Radius), 2, c, true)
		vector.FillCircle(screen, float32(p.X), float32(p.Y), float32(p.Radius/2), c, true)
	}
	for _, en := range snap.Enemies {
		vector.FillCircle(screen, float32(en.X), float32(en.Y), float32(en.Radius), enemyColor(en), true)
	}
	for _, b := range snap.Bullets {
		c := colBullet
		if b.Color == game.BulletRapid {
			c = colRapid
		}
		vector.FillCircle(screen, float32(b.X), float32(b.Y), float32(b.Radius), c, true)
	}

	tr := snap.Turret
	vector.FillRect(screen, float32(tr.X-tr.HalfW), float32(tr.Y-tr.HalfH),
		float32(2*tr.HalfW), float32(2*tr.HalfH), colTurret, false)
	mx, my := muzzle(tr)
	vector.StrokeLine(screen, float32(tr.X), float32(tr.Y), float32(mx), float32(my),
		barrelWidth, colBarrel, true)
}

func enemyColor(en game.EnemyView) color.RGBA {
	switch {
	case en.Flashing:
		return colFlash
	case en.Kind == game.EnemyFast:
		return colFast
	default:
		return colEnemy
	}
}

func muzzle(tr game.TurretView) (float64, float64) {
	rad := tr.Angle * math.Pi / 180
	return tr.X + tr.Barrel*math.Cos(rad), tr.Y + tr.Barrel*math.Sin(rad)
}

// healthBarFill is the filled width of the health bar in pixels.
func healthBarFill(snap game.Snapshot) float32 {
	return float32(math.Floor(healthBarW * snap.HealthFraction()))
}

func (w *Window) drawHealthBar(screen *ebiten.Image, snap game.Snapshot) {
	vector.FillRect(screen, healthBarX, healthBarY, healthBarW, healthBarH, colBarBg, false)
	if fill := healthBarFill(snap); fill > 0 {
		vector.FillRect(screen, healthBarX, healthBarY, fill, healthBarH, colBarFill, false)
	}
	vector.StrokeRect(screen, healthBarX, healthBarY, healthBarW, healthBarH, 1, colDim, false)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d/%d", snap.Health, snap.MaxHealth),
		healthBarX+6, healthBarY+healthBarH/2-8)
}

// panelLines is the side panel's HUD block, top to bottom.
func panelLines(snap game.Snapshot, tick time.Duration, status string, muted bool) []string {
	lines := []string{
		fmt.Sprintf("Score: %d", snap.Score),
		fmt.Sprintf("High:  %d", snap.HighScore),
		fmt.Sprintf("Health: %d/%d", snap.Health, snap.MaxHealth),
	}
	if snap.Combo > 1 {
		lines = append(lines, fmt.Sprintf("Combo x%d", snap.Combo))
	}
	if snap.RapidFire {
		lines = append(lines, fmt.Sprintf("Rapid fire %.1fs", (time.Duration(snap.RapidFireTicks)*tick).Seconds()))
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

// helpLines lists the controls. Reset is only offered once the game is over.
func helpLines(gameOver bool) []string {
	lines := []string{
		"WASD/arrows  move",
		"mouse        aim",
		"click/space  fire",
		"P/Esc        pause",
		"C            copy report",
		"M            mute",
	}
	if gameOver {
		lines = append(lines, "R            new game")
	}
	return lines
}

func (w *Window) drawPanel(screen *ebiten.Image, snap game.Snapshot) {
	x0 := float32(snap.Viewport.W)
	h := float32(snap.Viewport.H)
	vector.FillRect(screen, x0, 0, panelWidth, h, colPanel, false)
	vector.StrokeLine(screen, x0, 0, x0, h, 1, colPanelEdge, false)

	px := float64(x0) + 10
	y := 10.0
	muted := w.muter != nil && w.muter.Muted()
	tick := w.driver.Engine().Tuning().TickInterval
	for _, l := range panelLines(snap, tick, w.status, muted) {
		w.drawLabel(screen, l, px, y, messageColor(snap, l), 1, text.AlignStart)
		y += lineH
	}

	y += lineH / 2
	vector.StrokeLine(screen, x0+6, float32(y), x0+panelWidth-6, float32(y), 1, colPanelEdge, false)
	y += lineH / 2
	for _, fe := range w.driver.Feed().Recent() {
		w.drawLabel(screen, fmt.Sprintf("%05d %s", fe.Tick, fe.Text), px, y, colDim, 1, text.AlignStart)
		y += lineH
	}

	help := helpLines(snap.GameOver)
	hy := float64(h) - float64(len(help))*lineH - 8
	for _, l := range help {
		ebitenutil.DebugPrintAt(screen, l, int(px), int(hy))
		hy += lineH
	}
}

// messageColor tints the engine's HUD message line by its tag.
func messageColor(snap game.Snapshot, line string) color.Color {
	if line != snap.Message || snap.Message == "" {
		return colText
	}
	switch snap.MessageColor {
	case game.MessageHealth:
		return colBarFill
	case game.MessageRapidFire:
		return colRapid
	default:
		return colText
	}
}

func (w *Window) drawGameOver(screen *ebiten.Image, snap game.Snapshot) {
	vw, vh := snap.Viewport.W, snap.Viewport.H
	vector.FillRect(screen, 0, 0, float32(vw), float32(vh), colGameOver, false)
	w.drawLabel(screen, "Game Over!", vw/2, vh/2-30, colText, 4, text.AlignCenter)
	w.drawLabel(screen, fmt.Sprintf("Score: %d", snap.Score), vw/2, vh-60, colText, 2, text.AlignCenter)
	if w.driver.Reporter().Report().NewHighScore {
		w.drawLabel(screen, "New high score!", vw/2, vh/2+30, colRapid, 2, text.AlignCenter)
	}
	w.drawLabel(screen, "press R to play again", vw/2, vh-30, colDim, 1, text.AlignCenter)
}

// drawLabel draws s with its top edge at y, scaled about its anchor.
func (w *Window) drawLabel(dst *ebiten.Image, s string, x, y float64, clr color.Color, scale float64, align text.Align) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = align
	text.Draw(dst, s, w.face, op)
}
