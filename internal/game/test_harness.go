package game

import "time"

// TestSim is a headless harness around Engine used by tests and the
// headless reporter. It has no rendering dependency, is seeded by default,
// and keeps every drained event plus a Reporter and SimLog for inspection.
type TestSim struct {
	Engine   *Engine
	SimLog   *SimLog
	Reporter *Reporter
	Events   []Event
	Pilot    *Autopilot

	engineOpts []Option
	autoSpawn  bool
	sampleEach int
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptEngine simOptionKind = iota // engine construction options, applied first
	simOptWorld                       // state and entity placement, applied to the built engine
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// SimSeed sets the spawn RNG seed.
func SimSeed(seed int64) SimOption {
	return SimOption{simOptEngine, func(ts *TestSim) {
		ts.engineOpts = append(ts.engineOpts, WithSeed(seed))
	}}
}

// SimTuning replaces the balance table.
func SimTuning(t Tuning) SimOption {
	return SimOption{simOptEngine, func(ts *TestSim) {
		ts.engineOpts = append(ts.engineOpts, WithTuning(t))
	}}
}

// SimStore wires a high-score store.
func SimStore(s HighScoreStore) SimOption {
	return SimOption{simOptEngine, func(ts *TestSim) {
		ts.engineOpts = append(ts.engineOpts, WithStore(s))
	}}
}

// SimAutoSpawn drives the engine through Update so the spawn clocks run.
// Without it ticks are stepped directly and nothing spawns on its own.
func SimAutoSpawn() SimOption {
	return SimOption{simOptEngine, func(ts *TestSim) {
		ts.autoSpawn = true
	}}
}

// SimAutopilot lets an Autopilot play before every tick.
func SimAutopilot(fireEvery int) SimOption {
	return SimOption{simOptEngine, func(ts *TestSim) {
		ts.Pilot = NewAutopilot(fireEvery)
	}}
}

// SimSampleEvery sets how often the reporter samples the field (default every tick).
func SimSampleEvery(n int) SimOption {
	return SimOption{simOptEngine, func(ts *TestSim) {
		ts.sampleEach = n
	}}
}

// SimHealth overrides the starting health.
func SimHealth(h int) SimOption {
	return SimOption{simOptWorld, func(ts *TestSim) {
		ts.Engine.state.Health = clampInt(h, 0, ts.Engine.tuning.MaxHealth)
	}}
}

// SimScore overrides the starting score.
func SimScore(s int) SimOption {
	return SimOption{simOptWorld, func(ts *TestSim) {
		ts.Engine.state.Score = s
	}}
}

// SimEnemy places an enemy at (x,y) travelling away from the given side.
func SimEnemy(kind EnemyKind, from Side, x, y float64) SimOption {
	return SimOption{simOptWorld, func(ts *TestSim) {
		e := ts.Engine
		speed := e.tuning.EnemySpeed
		if kind == EnemyFast {
			speed = e.tuning.FastEnemySpeed
		}
		en := NewEnemy(kind, from, y, speed, e.tuning.EnemyRadius, e.vp)
		en.X = x
		e.enemies = append(e.enemies, en)
	}}
}

// SimBullet places a live bullet at (x,y) heading along angle (degrees).
func SimBullet(x, y, angle float64) SimOption {
	return SimOption{simOptWorld, func(ts *TestSim) {
		e := ts.Engine
		e.bullets = append(e.bullets, NewBullet(x, y, angle, e.tuning.BulletSpeed, e.tuning.BulletRadius, BulletNormal))
	}}
}

// SimPowerUp places a pickup at (x,y).
func SimPowerUp(kind PowerUpKind, x, y float64) SimOption {
	return SimOption{simOptWorld, func(ts *TestSim) {
		e := ts.Engine
		e.powerUps = append(e.powerUps, NewPowerUp(kind, x, y, e.tuning.PowerUpRadius))
	}}
}

// SimTurretAt moves the turret before the first tick.
func SimTurretAt(x, y float64) SimOption {
	return SimOption{simOptWorld, func(ts *TestSim) {
		tr := ts.Engine.turret
		tr.Move(x-tr.X, y-tr.Y)
	}}
}

// NewTestSim constructs a TestSim in two ordered passes:
//  1. Engine options (seed, tuning, store, harness switches), then New
//  2. World setup on the built engine (health, score, placed entities)
//
// The default seed is 1 so runs are reproducible unless overridden.
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		SimLog:     NewSimLog(),
		engineOpts: []Option{WithSeed(1)},
		sampleEach: 1,
	}
	for _, o := range opts {
		if o.kind == simOptEngine {
			o.fn(ts)
		}
	}
	ts.engineOpts = append(ts.engineOpts, WithSimLog(ts.SimLog))
	ts.Engine = New(ts.engineOpts...)
	for _, o := range opts {
		if o.kind == simOptWorld {
			o.fn(ts)
		}
	}
	ts.Reporter = NewReporter(0)
	return ts
}

// Step runs exactly one tick and folds its events into the reporter.
func (ts *TestSim) Step() {
	e := ts.Engine
	if ts.Pilot != nil {
		ts.Pilot.Drive(e, e.Snapshot())
	}
	if ts.autoSpawn {
		e.Update(e.tuning.TickInterval)
	} else {
		e.Advance()
	}
	evs := e.DrainEvents()
	ts.Events = append(ts.Events, evs...)
	ts.Reporter.Observe(evs)
	if ts.sampleEach > 0 && e.state.Tick%ts.sampleEach == 0 {
		ts.Reporter.Collect(e.Snapshot())
	}
}

// RunTicks advances the simulation n ticks.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		ts.Step()
	}
}

// RunUntil advances up to maxTicks, stopping early once predicate holds.
// Returns the engine tick at which it was satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		ts.Step()
		if predicate(ts) {
			return ts.Engine.Tick()
		}
	}
	return -1
}

// RunFor feeds wall-clock time in frame-sized slices through Update, the
// way a render loop would.
func (ts *TestSim) RunFor(total, frame time.Duration) {
	e := ts.Engine
	for total > 0 {
		step := frame
		if step > total {
			step = total
		}
		if ts.Pilot != nil {
			ts.Pilot.Drive(e, e.Snapshot())
		}
		e.Update(step)
		evs := e.DrainEvents()
		ts.Events = append(ts.Events, evs...)
		ts.Reporter.Observe(evs)
		total -= step
	}
	ts.Reporter.Collect(e.Snapshot())
}

// Snapshot returns the engine's current snapshot.
func (ts *TestSim) Snapshot() Snapshot {
	return ts.Engine.Snapshot()
}

// CountEvents returns how many recorded events have the given kind.
func (ts *TestSim) CountEvents(kind EventKind) int {
	n := 0
	for _, ev := range ts.Events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

// EventsOf returns the recorded events of the given kind, in order.
func (ts *TestSim) EventsOf(kind EventKind) []Event {
	var out []Event
	for _, ev := range ts.Events {
		if ev.Kind == kind {
			out = append(out, ev)
		}
	}
	return out
}
