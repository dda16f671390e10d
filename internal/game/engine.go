package game

import (
	"fmt"
	"io"
	"log"
	"math/rand"
	"time"
)

// HighScoreStore is the persistence port for the single saved high score.
// Load returns 0 when nothing usable is stored.
type HighScoreStore interface {
	Load() int
	Save(score int) error
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithTuning replaces the default balance. Non-positive sizes fall back to defaults.
func WithTuning(t Tuning) Option {
	return func(e *Engine) {
		e.tuning = t
	}
}

// WithSeed makes spawning deterministic. Seed 0 seeds from the wall clock.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.seed = seed
	}
}

// WithStore sets the high-score persistence port.
func WithStore(s HighScoreStore) Option {
	return func(e *Engine) {
		e.store = s
	}
}

// WithLogger routes degraded-path diagnostics (failed saves) to l.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithSimLog records machine-readable per-tick events into sl.
func WithSimLog(sl *SimLog) Option {
	return func(e *Engine) {
		e.simLog = sl
	}
}

// Engine owns the whole game world and advances it on a fixed tick.
// It is not safe for concurrent use; drive it from a single goroutine.
type Engine struct {
	tuning Tuning
	vp     Viewport
	seed   int64
	rng    *rand.Rand
	spawn  spawner

	turret   *Turret
	bullets  []*Bullet
	enemies  []*Enemy
	powerUps []*PowerUp

	state  SessionState
	events eventQueue

	store  HighScoreStore
	logger *log.Logger
	simLog *SimLog

	tickClock    *Clock
	enemyClock   *Clock
	powerUpClock *Clock

	opts []Option
}

// New builds a running engine. The high score is loaded from the store once, here.
func New(opts ...Option) *Engine {
	e := &Engine{
		tuning: DefaultTuning(),
		logger: log.New(io.Discard, "", 0),
		opts:   opts,
	}
	for _, o := range opts {
		o(e)
	}
	e.tuning = e.tuning.sanitized()
	t := e.tuning
	e.vp = Viewport{W: t.Width, H: t.Height}

	seed := e.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	e.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- gameplay only
	e.spawn = spawner{rng: e.rng, t: t, vp: e.vp}

	e.turret = NewTurret(t.TurretStartX, t.TurretStartY, t.TurretWidth, t.TurretHeight, e.vp)
	e.state = SessionState{
		Phase:    PhaseRunning,
		Health:   clampInt(t.StartingHealth, 0, t.MaxHealth),
		PointerX: t.Width / 2,
		PointerY: t.Height / 2,
	}
	if e.store != nil {
		if hs := e.store.Load(); hs > 0 {
			e.state.HighScore = hs
		}
	}

	e.tickClock = NewClock(t.TickInterval)
	e.enemyClock = NewClock(t.EnemySpawnInterval)
	e.powerUpClock = NewClock(t.PowerUpSpawnInterval)
	return e
}

// Reset discards this engine and returns a fresh one built from the same
// options, with the high score reloaded from the store. The new engine's
// seed is drawn from this engine's RNG so successive games differ but stay
// reproducible from the first seed.
func (e *Engine) Reset() *Engine {
	opts := make([]Option, 0, len(e.opts)+1)
	opts = append(opts, e.opts...)
	opts = append(opts, WithSeed(e.rng.Int63()|1))
	return New(opts...)
}

// --- Accessors ---

func (e *Engine) Phase() Phase       { return e.state.Phase }
func (e *Engine) Tick() int          { return e.state.Tick }
func (e *Engine) Score() int         { return e.state.Score }
func (e *Engine) Health() int        { return e.state.Health }
func (e *Engine) HighScore() int     { return e.state.HighScore }
func (e *Engine) Combo() int         { return e.state.Combo }
func (e *Engine) Tuning() Tuning     { return e.tuning }
func (e *Engine) Viewport() Viewport { return e.vp }

// State returns a copy of the session counters.
func (e *Engine) State() SessionState { return e.state }

// DrainEvents returns every event raised since the previous drain.
func (e *Engine) DrainEvents() []Event {
	return e.events.drain()
}

func (e *Engine) emit(kind EventKind, value int) {
	e.events.push(Event{Kind: kind, Tick: e.state.Tick, Value: value})
}

func (e *Engine) record(category, key, value string, num float64) {
	if e.simLog == nil {
		return
	}
	e.simLog.Add(e.state.Tick, category, key, value, num)
}

// --- Commands ---

// SetPointer records the aim target, clamped into the viewport.
func (e *Engine) SetPointer(x, y float64) {
	e.state.PointerX = clamp(x, 0, e.vp.W)
	e.state.PointerY = clamp(y, 0, e.vp.H)
}

// SetMoveKey marks a movement direction as held or released.
func (e *Engine) SetMoveKey(d Direction, held bool) {
	if held {
		e.state.Moving |= d
	} else {
		e.state.Moving &^= d
	}
}

// SetFireHeld marks the fire input as held, which auto-fires during rapid fire.
func (e *Engine) SetFireHeld(held bool) {
	e.state.FireHeld = held
}

// TogglePause flips between running and paused. Game over is unaffected.
func (e *Engine) TogglePause() {
	switch e.state.Phase {
	case PhaseRunning:
		e.state.Phase = PhasePaused
		e.emit(EventPauseChanged, 1)
	case PhasePaused:
		e.state.Phase = PhaseRunning
		e.emit(EventPauseChanged, 0)
	default:
		return
	}
	e.record("state", "change", e.state.Phase.String(), 0)
}

// Fire shoots one bullet from the barrel tip along the current aim.
// Ignored while paused or after game over.
func (e *Engine) Fire() {
	if e.state.halted() {
		return
	}
	t := e.tuning
	x, y := e.turret.Muzzle(t.BarrelLength)
	col := BulletNormal
	if e.state.RapidFire {
		col = BulletRapid
	}
	e.bullets = append(e.bullets, NewBullet(x, y, e.turret.Angle, t.BulletSpeed, t.BulletRadius, col))
	e.emit(EventShotFired, int(col))
	e.record("fire", "shot", col.String(), e.turret.Angle)
}

// SpawnEnemy adds one enemy at a random edge unless the field is full or play is halted.
func (e *Engine) SpawnEnemy() {
	if e.state.halted() || len(e.enemies) >= e.tuning.MaxEnemies {
		return
	}
	en := e.spawn.enemy()
	e.enemies = append(e.enemies, en)
	e.record("spawn", "enemy", fmt.Sprintf("%s at (%.0f,%.0f)", en.Kind, en.X, en.Y), float64(len(e.enemies)))
}

// SpawnPowerUp adds one random pickup unless play is halted.
func (e *Engine) SpawnPowerUp() {
	if e.state.halted() {
		return
	}
	p := e.spawn.powerUp()
	e.powerUps = append(e.powerUps, p)
	e.record("spawn", "power_up", fmt.Sprintf("%s at (%.0f,%.0f)", p.Kind, p.X, p.Y), 0)
}

// Update feeds elapsed time to the three logical clocks: the simulation tick,
// the enemy spawner and the power-up spawner, in that order. Elapsed time
// beyond the catch-up cap is dropped.
func (e *Engine) Update(elapsed time.Duration) {
	if elapsed > e.tuning.MaxCatchUp {
		elapsed = e.tuning.MaxCatchUp
	}
	for n := e.tickClock.Advance(elapsed); n > 0; n-- {
		e.Advance()
	}
	for n := e.enemyClock.Advance(elapsed); n > 0; n-- {
		e.SpawnEnemy()
	}
	for n := e.powerUpClock.Advance(elapsed); n > 0; n-- {
		e.SpawnPowerUp()
	}
}

// --- Tick ---

// Advance runs one simulation tick. It is a no-op while paused or after game over.
func (e *Engine) Advance() {
	if e.state.halted() {
		return
	}
	st := &e.state
	t := e.tuning
	st.Tick++

	// 1. MOVE
	if st.Moving != 0 {
		dx, dy := st.Moving.delta()
		e.turret.Move(dx*t.TurretMoveSpeed, dy*t.TurretMoveSpeed)
	}

	// 2. AIM
	e.turret.UpdateAim(st.PointerX, st.PointerY)

	// 3. BULLETS
	for _, b := range e.bullets {
		b.Advance(e.vp)
	}

	// 4. COMBO: the lapse check runs before this tick's kills.
	if st.ComboTimer > 0 {
		st.ComboTimer--
		if st.ComboTimer == 0 {
			st.Combo = 0
			e.emit(EventComboChanged, 0)
			e.record("combo", "reset", "lapsed", 0)
		}
	}

	// 5. RAPID FIRE
	if st.RapidFire {
		st.RapidFireTicks--
		if st.FireHeld && st.RapidFireTicks%t.RapidFirePeriod == 0 {
			e.Fire()
		}
		if st.RapidFireTicks <= 0 {
			st.RapidFire = false
			st.RapidFireTicks = 0
			st.FireHeld = false
			e.emit(EventRapidFireEnded, 0)
			e.record("power_up", "expired", PowerUpRapidFire.String(), 0)
		}
	}

	// 6. HUD MESSAGE
	if st.MessageTimer > 0 {
		st.MessageTimer--
		if st.MessageTimer == 0 {
			st.Message = ""
		}
	}

	// 7. ENEMIES
	e.resolveEnemies()

	// 8. PICKUPS
	if !st.halted() {
		e.resolvePickups()
	}

	// 9. PURGE
	e.purge()
}

func (e *Engine) resolveEnemies() {
	st := &e.state
	tr := e.turret
	for _, en := range e.enemies {
		if st.halted() {
			// Game over landed earlier this tick; nothing else scores or hurts.
			return
		}
		if !en.Active {
			continue
		}
		en.Advance(e.vp)
		if !en.Active {
			continue
		}
		if CirclesOverlap(en.X, en.Y, en.Radius, tr.X, tr.Y, tr.HitRadius()) {
			e.hitTurret(en)
			continue
		}
		for _, b := range e.bullets {
			if !b.Active || !CirclesOverlap(b.X, b.Y, b.Radius, en.X, en.Y, en.Radius) {
				continue
			}
			e.kill(en, b)
			break
		}
	}
}

func (e *Engine) hitTurret(en *Enemy) {
	st := &e.state
	en.Active = false
	st.Health = clampInt(st.Health-1, 0, e.tuning.MaxHealth)
	e.emit(EventHealthChanged, st.Health)
	e.events.push(Event{Kind: EventTurretHit, Tick: st.Tick, Value: st.Health, Enemy: en.Kind})
	e.record("combat", "turret_hit", en.Kind.String(), float64(st.Health))
	if st.Health <= 0 {
		e.gameOver()
	}
}

func (e *Engine) kill(en *Enemy, b *Bullet) {
	st := &e.state
	t := e.tuning
	b.Active = false
	en.Active = false
	en.HitFlash = t.HitFlashTicks

	var points int
	switch en.Kind {
	case EnemyFast:
		points = t.ScoreFast
	default:
		points = t.ScoreNormal
	}
	st.Score += points
	e.emit(EventScoreChanged, st.Score)
	e.events.push(Event{Kind: EventEnemyKilled, Tick: st.Tick, Value: points, Enemy: en.Kind})

	if st.ComboTimer > 0 {
		st.Combo++
	} else {
		st.Combo = 1
	}
	st.ComboTimer = t.ComboTicks
	e.emit(EventComboChanged, st.Combo)
	e.record("combat", "kill", en.Kind.String(), float64(st.Score))
}

// gameOver enters the terminal phase. Only the first call has any effect.
func (e *Engine) gameOver() {
	st := &e.state
	if st.Phase == PhaseGameOver {
		return
	}
	st.Phase = PhaseGameOver
	st.RapidFire = false
	st.FireHeld = false
	e.record("state", "change", PhaseGameOver.String(), float64(st.Score))

	if st.Score > st.HighScore {
		st.HighScore = st.Score
		if e.store != nil {
			if err := e.store.Save(st.Score); err != nil {
				e.logger.Printf("high score %d not saved: %v", st.Score, err)
				e.record("persist", "save_failed", err.Error(), float64(st.Score))
			} else {
				e.record("persist", "save", fmt.Sprintf("%d", st.Score), float64(st.Score))
			}
		}
		e.emit(EventHighScoreChanged, st.HighScore)
	}
	e.emit(EventGameOver, st.Score)
}

func (e *Engine) resolvePickups() {
	st := &e.state
	t := e.tuning
	tr := e.turret
	for _, p := range e.powerUps {
		if !p.Active || !CirclesOverlap(p.X, p.Y, p.Radius, tr.X, tr.Y, tr.HitRadius()) {
			continue
		}
		p.Active = false
		switch p.Kind {
		case PowerUpHealth:
			st.Health = clampInt(st.Health+t.HealthPickup, 0, t.MaxHealth)
			st.showMessage(fmt.Sprintf("+%d HEALTH", t.HealthPickup), MessageHealth, t.MessageTicks)
			e.emit(EventHealthChanged, st.Health)
		case PowerUpRapidFire:
			st.RapidFire = true
			st.RapidFireTicks = t.RapidFireTicks
			st.showMessage("RAPID FIRE!", MessageRapidFire, t.MessageTicks)
		}
		e.events.push(Event{Kind: EventPowerUpCollected, Tick: st.Tick, PowerUp: p.Kind})
		e.record("power_up", "collected", p.Kind.String(), float64(st.Health))
	}
}

// purge drops inactive entities, keeping survivors in order.
func (e *Engine) purge() {
	e.bullets = filterActive(e.bullets, func(b *Bullet) bool { return b.Active })
	e.enemies = filterActive(e.enemies, func(en *Enemy) bool { return en.Active })
	e.powerUps = filterActive(e.powerUps, func(p *PowerUp) bool { return p.Active })
}

func filterActive[T any](items []T, keep func(T) bool) []T {
	kept := items[:0]
	for _, it := range items {
		if keep(it) {
			kept = append(kept, it)
		}
	}
	var zero T
	for i := len(kept); i < len(items); i++ {
		items[i] = zero
	}
	return kept
}
