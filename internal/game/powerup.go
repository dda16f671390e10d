package game

// PowerUpKind is the effect a pickup applies.
type PowerUpKind int

const (
	PowerUpHealth PowerUpKind = iota
	PowerUpRapidFire
	powerUpKindCount
)

func (k PowerUpKind) String() string {
	switch k {
	case PowerUpHealth:
		return "health"
	case PowerUpRapidFire:
		return "rapid_fire"
	default:
		return "unknown"
	}
}

// PowerUp is a static pickup collected by touching it with the turret.
type PowerUp struct {
	X, Y   float64
	Radius float64
	Kind   PowerUpKind
	Active bool
}

// NewPowerUp creates an active pickup at (x,y).
func NewPowerUp(kind PowerUpKind, x, y, radius float64) *PowerUp {
	return &PowerUp{X: x, Y: y, Radius: radius, Kind: kind, Active: true}
}

// Advance is a no-op; pickups never move.
func (p *PowerUp) Advance() {}
