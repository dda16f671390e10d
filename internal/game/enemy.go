package game

// EnemyKind is the enemy class. It decides speed and kill bonus.
type EnemyKind int

const (
	EnemyNormal EnemyKind = iota
	EnemyFast
)

func (k EnemyKind) String() string {
	switch k {
	case EnemyNormal:
		return "normal"
	case EnemyFast:
		return "fast"
	default:
		return "unknown"
	}
}

// Side is the screen edge an enemy enters from.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

func (s Side) String() string {
	if s == SideLeft {
		return "left"
	}
	return "right"
}

// Enemy walks horizontally across the field at a constant speed.
type Enemy struct {
	X, Y     float64
	VX       float64
	Radius   float64
	Kind     EnemyKind
	Active   bool
	HitFlash int // ticks of hit-flash colour left to render
}

// NewEnemy creates an enemy just off-screen on side, moving inward at speed.
func NewEnemy(kind EnemyKind, side Side, y, speed, radius float64, vp Viewport) *Enemy {
	e := &Enemy{
		Y:      y,
		Radius: radius,
		Kind:   kind,
		Active: true,
	}
	if side == SideLeft {
		e.X = -radius
		e.VX = speed
	} else {
		e.X = vp.W + radius
		e.VX = -speed
	}
	return e
}

// Advance moves the enemy one tick, expiring it once it walks past either
// horizontal bound, and counts down any hit flash.
func (e *Enemy) Advance(vp Viewport) {
	if e.HitFlash > 0 {
		e.HitFlash--
	}
	if !e.Active {
		return
	}
	e.X += e.VX
	if e.X < -e.Radius || e.X > vp.W+e.Radius {
		e.Active = false
	}
}

// Flashing reports whether the hit-flash colour should be drawn.
func (e *Enemy) Flashing() bool {
	return e.HitFlash > 0
}
