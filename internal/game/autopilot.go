package game

import "math"

// Autopilot is a deterministic stand-in player for headless runs. It aims
// at the enemy closest to the turret with a lead on its travel, fires on a
// fixed cadence, holds fire during rapid fire, and walks toward pickups.
type Autopilot struct {
	FireEvery int // ticks between manual shots; <= 0 means every tick
	Chase     bool

	cooldown int
}

// NewAutopilot returns a bot that fires every fireEvery ticks and chases pickups.
func NewAutopilot(fireEvery int) *Autopilot {
	return &Autopilot{FireEvery: fireEvery, Chase: true}
}

// Drive reads the snapshot and issues commands for the coming tick.
func (a *Autopilot) Drive(e *Engine, snap Snapshot) {
	if snap.Paused || snap.GameOver {
		return
	}
	tr := snap.Turret

	if target, ok := nearestEnemy(snap); ok {
		ax, ay := leadTarget(tr.X, tr.Y, target, e.tuning.BulletSpeed)
		e.SetPointer(ax, ay)
		e.SetFireHeld(snap.RapidFire)
		if a.cooldown <= 0 && !snap.RapidFire {
			e.Fire()
			a.cooldown = a.FireEvery
		}
	} else {
		e.SetFireHeld(false)
	}
	if a.cooldown > 0 {
		a.cooldown--
	}

	e.SetMoveKey(DirUp|DirDown|DirLeft|DirRight, false)
	if !a.Chase || len(snap.PowerUps) == 0 {
		return
	}
	p := nearestPowerUp(snap)
	const deadband = 3.0
	if p.X < tr.X-deadband {
		e.SetMoveKey(DirLeft, true)
	} else if p.X > tr.X+deadband {
		e.SetMoveKey(DirRight, true)
	}
	if p.Y < tr.Y-deadband {
		e.SetMoveKey(DirUp, true)
	} else if p.Y > tr.Y+deadband {
		e.SetMoveKey(DirDown, true)
	}
}

func nearestEnemy(snap Snapshot) (EnemyView, bool) {
	best := -1
	bestD := math.Inf(1)
	for i, en := range snap.Enemies {
		if d := Distance(snap.Turret.X, snap.Turret.Y, en.X, en.Y); d < bestD {
			best, bestD = i, d
		}
	}
	if best < 0 {
		return EnemyView{}, false
	}
	return snap.Enemies[best], true
}

func nearestPowerUp(snap Snapshot) PowerUpView {
	best := snap.PowerUps[0]
	bestD := Distance(snap.Turret.X, snap.Turret.Y, best.X, best.Y)
	for _, p := range snap.PowerUps[1:] {
		if d := Distance(snap.Turret.X, snap.Turret.Y, p.X, p.Y); d < bestD {
			best, bestD = p, d
		}
	}
	return best
}

// leadTarget refines the flight time a few times so the aim point is where
// the enemy will be when a bullet fired now arrives.
func leadTarget(sx, sy float64, en EnemyView, speed float64) (float64, float64) {
	if speed <= 0 || en.VX == 0 {
		return en.X, en.Y
	}
	px, py := en.X, en.Y
	for i := 0; i < 3; i++ {
		t := Distance(sx, sy, px, py) / speed
		px = en.X + en.VX*t
	}
	return px, py
}
