package game

import "time"

const driverSampleTicks = 60

// EventSink receives every batch of events a Driver drains.
type EventSink interface {
	HandleEvents([]Event)
}

// Driver is the glue an interactive front end runs once per frame: it feeds
// wall time to the engine, drains its events into the feed, the reporter and
// any sinks, and samples the field about once a second.
type Driver struct {
	engine   *Engine
	feed     *Feed
	reporter *Reporter
	sinks    []EventSink

	lastSample int
}

// NewDriver wraps e. Sinks see events in the order they were raised.
func NewDriver(e *Engine, sinks ...EventSink) *Driver {
	return &Driver{
		engine:   e,
		feed:     NewFeed(),
		reporter: NewReporter(0),
		sinks:    sinks,
	}
}

func (d *Driver) Engine() *Engine     { return d.engine }
func (d *Driver) Feed() *Feed         { return d.feed }
func (d *Driver) Reporter() *Reporter { return d.reporter }

// Frame advances the engine by elapsed wall time and routes the events it raised.
func (d *Driver) Frame(elapsed time.Duration) []Event {
	d.engine.Update(elapsed)
	return d.pump()
}

func (d *Driver) pump() []Event {
	evs := d.engine.DrainEvents()
	over := false
	if len(evs) > 0 {
		d.feed.PushAll(evs)
		d.reporter.Observe(evs)
		for _, s := range d.sinks {
			s.HandleEvents(evs)
		}
		for _, ev := range evs {
			if ev.Kind == EventGameOver {
				over = true
			}
		}
	}
	if tick := d.engine.Tick(); over || tick-d.lastSample >= driverSampleTicks {
		d.reporter.Collect(d.engine.Snapshot())
		d.lastSample = tick
	}
	return evs
}

// Reset starts a new game, but only once the current one is over. The feed
// and reporter start fresh with it.
func (d *Driver) Reset() bool {
	if d.engine.Phase() != PhaseGameOver {
		return false
	}
	d.engine = d.engine.Reset()
	d.feed = NewFeed()
	d.reporter = NewReporter(0)
	d.lastSample = 0
	return true
}

// ReportText is the run report followed by the latest window summary.
func (d *Driver) ReportText() string {
	return d.reporter.Report().Format() + "\n" + d.reporter.WindowSummary().Format()
}
