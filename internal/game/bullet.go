package game

import "math"

// BulletColor tags how a bullet was fired. Renderers map it to a real colour.
type BulletColor int

const (
	BulletNormal BulletColor = iota
	BulletRapid
)

func (c BulletColor) String() string {
	switch c {
	case BulletNormal:
		return "normal"
	case BulletRapid:
		return "rapid"
	default:
		return "unknown"
	}
}

// Bullet travels in a straight line until it leaves the viewport or hits an enemy.
type Bullet struct {
	X, Y   float64
	VX, VY float64
	Angle  float64 // degrees
	Radius float64
	Color  BulletColor
	Active bool
}

// NewBullet creates an active bullet heading along angle (degrees) at speed px/tick.
func NewBullet(x, y, angle, speed, radius float64, col BulletColor) *Bullet {
	rad := degToRad(angle)
	return &Bullet{
		X:      x,
		Y:      y,
		VX:     speed * math.Cos(rad),
		VY:     speed * math.Sin(rad),
		Angle:  angle,
		Radius: radius,
		Color:  col,
		Active: true,
	}
}

// Advance moves the bullet one tick and deactivates it once it leaves vp.
// A deactivated bullet never comes back.
func (b *Bullet) Advance(vp Viewport) {
	if !b.Active {
		return
	}
	b.X += b.VX
	b.Y += b.VY
	if !vp.Contains(b.X, b.Y) {
		b.Active = false
	}
}
