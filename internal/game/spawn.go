package game

import "math/rand"

// spawner samples new enemies and pickups from a seeded RNG.
type spawner struct {
	rng *rand.Rand
	t   Tuning
	vp  Viewport
}

// enemyKind picks a class by weight: NormalWeight parts normal, FastWeight parts fast.
func (s *spawner) enemyKind() EnemyKind {
	total := s.t.NormalWeight + s.t.FastWeight
	if s.rng.Intn(total) < s.t.NormalWeight {
		return EnemyNormal
	}
	return EnemyFast
}

func (s *spawner) side() Side {
	if s.rng.Intn(2) == 0 {
		return SideLeft
	}
	return SideRight
}

// uniform returns a value in [lo, hi]. A collapsed range returns its midpoint.
func (s *spawner) uniform(lo, hi float64) float64 {
	if hi <= lo {
		return (lo + hi) / 2
	}
	return lo + s.rng.Float64()*(hi-lo)
}

func (s *spawner) enemy() *Enemy {
	kind := s.enemyKind()
	side := s.side()
	r := s.t.EnemyRadius
	y := s.uniform(r, s.vp.H-r)
	speed := s.t.EnemySpeed
	if kind == EnemyFast {
		speed = s.t.FastEnemySpeed
	}
	return NewEnemy(kind, side, y, speed, r, s.vp)
}

func (s *spawner) powerUp() *PowerUp {
	kind := PowerUpKind(s.rng.Intn(int(powerUpKindCount)))
	m := s.t.PowerUpMargin
	x := s.uniform(m, s.vp.W-m)
	y := s.uniform(m, s.vp.H-m)
	return NewPowerUp(kind, x, y, s.t.PowerUpRadius)
}
