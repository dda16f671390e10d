package game

import "math"

// Viewport is the logical play area. Every entity lives in [0,W]x[0,H].
type Viewport struct {
	W, H float64
}

// Contains reports whether (x,y) lies inside the closed viewport rectangle.
func (v Viewport) Contains(x, y float64) bool {
	return x >= 0 && x <= v.W && y >= 0 && y <= v.H
}

// Direction is a bitmask of held movement keys.
type Direction uint8

const (
	DirUp Direction = 1 << iota
	DirDown
	DirLeft
	DirRight
)

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case 0:
		return "none"
	default:
		return "combo"
	}
}

// delta returns the unit step implied by the held directions.
// Opposing keys cancel out.
func (d Direction) delta() (dx, dy float64) {
	if d&DirLeft != 0 {
		dx--
	}
	if d&DirRight != 0 {
		dx++
	}
	if d&DirUp != 0 {
		dy--
	}
	if d&DirDown != 0 {
		dy++
	}
	return dx, dy
}

// Turret is the player's gun emplacement.
type Turret struct {
	X, Y  float64
	Angle float64 // degrees, 0 points along +x, positive is clockwise on screen
	HalfW float64
	HalfH float64

	vp Viewport
}

// NewTurret places a turret at (x,y) inside vp, clamped to its half size.
func NewTurret(x, y, width, height float64, vp Viewport) *Turret {
	t := &Turret{
		HalfW: width / 2,
		HalfH: height / 2,
		vp:    vp,
	}
	t.X = clamp(x, t.HalfW, vp.W-t.HalfW)
	t.Y = clamp(y, t.HalfH, vp.H-t.HalfH)
	return t
}

// UpdateAim points the barrel at (tx,ty). Position is unchanged.
func (t *Turret) UpdateAim(tx, ty float64) {
	t.Angle = radToDeg(math.Atan2(ty-t.Y, tx-t.X))
}

// Move shifts the turret by (dx,dy), keeping its whole body on screen.
func (t *Turret) Move(dx, dy float64) {
	t.X = clamp(t.X+dx, t.HalfW, t.vp.W-t.HalfW)
	t.Y = clamp(t.Y+dy, t.HalfH, t.vp.H-t.HalfH)
}

// HitRadius is the contact radius used against enemies and pickups.
func (t *Turret) HitRadius() float64 {
	return t.HalfH
}

// Muzzle returns the barrel tip for a barrel of the given length.
func (t *Turret) Muzzle(barrel float64) (float64, float64) {
	rad := degToRad(t.Angle)
	return t.X + barrel*math.Cos(rad), t.Y + barrel*math.Sin(rad)
}
