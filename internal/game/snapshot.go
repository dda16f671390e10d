package game

// Snapshot is a render-ready copy of the engine after a completed tick.
// It shares no memory with the engine.
type Snapshot struct {
	Tick  int
	Phase Phase

	Viewport Viewport
	Turret   TurretView
	Bullets  []BulletView
	Enemies  []EnemyView
	PowerUps []PowerUpView

	Health    int
	MaxHealth int
	Score     int
	HighScore int

	Combo      int
	ComboTimer int

	RapidFire      bool
	RapidFireTicks int

	Message      string
	MessageColor MessageColor

	Paused   bool
	GameOver bool
}

// TurretView is the turret pose.
type TurretView struct {
	X, Y         float64
	Angle        float64
	HalfW, HalfH float64
	Barrel       float64
}

// BulletView is one live bullet.
type BulletView struct {
	X, Y   float64
	Radius float64
	Color  BulletColor
}

// EnemyView is one live enemy.
type EnemyView struct {
	X, Y     float64
	VX       float64
	Radius   float64
	Kind     EnemyKind
	Flashing bool
}

// PowerUpView is one live pickup.
type PowerUpView struct {
	X, Y   float64
	Radius float64
	Kind   PowerUpKind
}

// HealthFraction is health/max clamped to [0,1], for health bars.
func (s Snapshot) HealthFraction() float64 {
	if s.MaxHealth <= 0 {
		return 0
	}
	return clamp(float64(s.Health)/float64(s.MaxHealth), 0, 1)
}

// Snapshot captures the current state. Inactive entities are skipped.
func (e *Engine) Snapshot() Snapshot {
	st := &e.state
	snap := Snapshot{
		Tick:     st.Tick,
		Phase:    st.Phase,
		Viewport: e.vp,
		Turret: TurretView{
			X:      e.turret.X,
			Y:      e.turret.Y,
			Angle:  e.turret.Angle,
			HalfW:  e.turret.HalfW,
			HalfH:  e.turret.HalfH,
			Barrel: e.tuning.BarrelLength,
		},
		Bullets:        make([]BulletView, 0, len(e.bullets)),
		Enemies:        make([]EnemyView, 0, len(e.enemies)),
		PowerUps:       make([]PowerUpView, 0, len(e.powerUps)),
		Health:         st.Health,
		MaxHealth:      e.tuning.MaxHealth,
		Score:          st.Score,
		HighScore:      st.HighScore,
		Combo:          st.Combo,
		ComboTimer:     st.ComboTimer,
		RapidFire:      st.RapidFire,
		RapidFireTicks: st.RapidFireTicks,
		Message:        st.Message,
		MessageColor:   st.MessageColor,
		Paused:         st.Phase == PhasePaused,
		GameOver:       st.Phase == PhaseGameOver,
	}
	for _, b := range e.bullets {
		if b.Active {
			snap.Bullets = append(snap.Bullets, BulletView{X: b.X, Y: b.Y, Radius: b.Radius, Color: b.Color})
		}
	}
	for _, en := range e.enemies {
		if en.Active {
			snap.Enemies = append(snap.Enemies, EnemyView{X: en.X, Y: en.Y, VX: en.VX, Radius: en.Radius, Kind: en.Kind, Flashing: en.Flashing()})
		}
	}
	for _, p := range e.powerUps {
		if p.Active {
			snap.PowerUps = append(snap.PowerUps, PowerUpView{X: p.X, Y: p.Y, Radius: p.Radius, Kind: p.Kind})
		}
	}
	return snap
}
