package game

import "time"

// Tuning holds every gameplay constant. Engines copy it at construction,
// so a Tuning value can be shared and tweaked freely between runs.
type Tuning struct {
	Width  float64 // logical viewport width
	Height float64 // logical viewport height

	// Turret
	TurretWidth     float64
	TurretHeight    float64 // half of this is the turret's hit radius
	TurretStartX    float64
	TurretStartY    float64
	TurretMoveSpeed float64 // px per tick per held direction
	BarrelLength    float64

	// Bullets
	BulletRadius float64
	BulletSpeed  float64 // px per tick

	// Enemies
	EnemyRadius    float64
	EnemySpeed     float64 // normal class, px per tick
	FastEnemySpeed float64
	NormalWeight   int // relative spawn weight of the normal class
	FastWeight     int // relative spawn weight of the fast class
	MaxEnemies     int
	HitFlashTicks  int
	ScoreNormal    int
	ScoreFast      int

	// Health
	StartingHealth int
	MaxHealth      int

	// Power-ups
	PowerUpRadius   float64
	PowerUpMargin   float64 // inset from every viewport edge for spawn positions
	HealthPickup    int
	RapidFireTicks  int
	RapidFirePeriod int // auto-fire when remaining ticks is a multiple of this
	ComboTicks      int
	MessageTicks    int

	// Clocks
	TickInterval         time.Duration
	EnemySpawnInterval   time.Duration
	PowerUpSpawnInterval time.Duration
	MaxCatchUp           time.Duration // elapsed time accepted by one Update call
}

// DefaultTuning returns the stock arcade balance on an 800x600 field.
func DefaultTuning() Tuning {
	return Tuning{
		Width:  800,
		Height: 600,

		TurretWidth:     40,
		TurretHeight:    20,
		TurretStartX:    400,
		TurretStartY:    550,
		TurretMoveSpeed: 5,
		BarrelLength:    30,

		BulletRadius: 5,
		BulletSpeed:  8,

		EnemyRadius:    15,
		EnemySpeed:     2,
		FastEnemySpeed: 4,
		NormalWeight:   4,
		FastWeight:     1,
		MaxEnemies:     100,
		HitFlashTicks:  6,
		ScoreNormal:    10,
		ScoreFast:      25,

		StartingHealth: 20,
		MaxHealth:      50,

		PowerUpRadius:   12,
		PowerUpMargin:   50,
		HealthPickup:    10,
		RapidFireTicks:  300,
		RapidFirePeriod: 3,
		ComboTicks:      120,
		MessageTicks:    90,

		TickInterval:         16 * time.Millisecond,
		EnemySpawnInterval:   800 * time.Millisecond,
		PowerUpSpawnInterval: 10 * time.Second,
		MaxCatchUp:           250 * time.Millisecond,
	}
}

// TurretHitRadius is the radius used for enemy and pickup contact with the turret.
func (t Tuning) TurretHitRadius() float64 {
	return t.TurretHeight / 2
}

// sanitized replaces non-positive sizes and counts with their defaults so a
// partially filled Tuning never produces zero-radius entities or a stuck clock.
func (t Tuning) sanitized() Tuning {
	d := DefaultTuning()
	fixF := func(v *float64, def float64) {
		if *v <= 0 {
			*v = def
		}
	}
	fixI := func(v *int, def int) {
		if *v <= 0 {
			*v = def
		}
	}
	fixD := func(v *time.Duration, def time.Duration) {
		if *v <= 0 {
			*v = def
		}
	}
	fixF(&t.Width, d.Width)
	fixF(&t.Height, d.Height)
	fixF(&t.TurretWidth, d.TurretWidth)
	fixF(&t.TurretHeight, d.TurretHeight)
	fixF(&t.BarrelLength, d.BarrelLength)
	fixF(&t.BulletRadius, d.BulletRadius)
	fixF(&t.BulletSpeed, d.BulletSpeed)
	fixF(&t.EnemyRadius, d.EnemyRadius)
	fixF(&t.EnemySpeed, d.EnemySpeed)
	fixF(&t.FastEnemySpeed, d.FastEnemySpeed)
	fixF(&t.PowerUpRadius, d.PowerUpRadius)
	fixI(&t.MaxHealth, d.MaxHealth)
	fixI(&t.StartingHealth, d.StartingHealth)
	fixI(&t.MaxEnemies, d.MaxEnemies)
	fixI(&t.RapidFirePeriod, d.RapidFirePeriod)
	fixD(&t.TickInterval, d.TickInterval)
	fixD(&t.EnemySpawnInterval, d.EnemySpawnInterval)
	fixD(&t.PowerUpSpawnInterval, d.PowerUpSpawnInterval)
	fixD(&t.MaxCatchUp, d.MaxCatchUp)
	if t.NormalWeight < 0 {
		t.NormalWeight = 0
	}
	if t.FastWeight < 0 {
		t.FastWeight = 0
	}
	if t.NormalWeight+t.FastWeight == 0 {
		t.NormalWeight, t.FastWeight = d.NormalWeight, d.FastWeight
	}
	if t.StartingHealth > t.MaxHealth {
		t.StartingHealth = t.MaxHealth
	}
	return t
}
