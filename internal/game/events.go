package game

import "fmt"

// EventKind identifies an outward notification raised by the engine.
type EventKind int

const (
	EventScoreChanged EventKind = iota
	EventHealthChanged
	EventComboChanged
	EventHighScoreChanged
	EventGameOver
	EventShotFired
	EventEnemyKilled
	EventTurretHit
	EventPowerUpCollected
	EventRapidFireEnded
	EventPauseChanged
)

func (k EventKind) String() string {
	switch k {
	case EventScoreChanged:
		return "score_changed"
	case EventHealthChanged:
		return "health_changed"
	case EventComboChanged:
		return "combo_changed"
	case EventHighScoreChanged:
		return "high_score_changed"
	case EventGameOver:
		return "game_over"
	case EventShotFired:
		return "shot_fired"
	case EventEnemyKilled:
		return "enemy_killed"
	case EventTurretHit:
		return "turret_hit"
	case EventPowerUpCollected:
		return "power_up_collected"
	case EventRapidFireEnded:
		return "rapid_fire_ended"
	case EventPauseChanged:
		return "pause_changed"
	default:
		return "unknown"
	}
}

// Event is one notification. Value carries the new score, health, combo or
// high score for the *Changed kinds; the final score for GameOver; the points
// awarded for EnemyKilled; health left for TurretHit; the BulletColor for
// ShotFired; 1 (paused) or 0 for PauseChanged. Enemy and PowerUp are set only
// on the kinds that concern them.
type Event struct {
	Kind    EventKind
	Tick    int
	Value   int
	Enemy   EnemyKind
	PowerUp PowerUpKind
}

func (e Event) String() string {
	switch e.Kind {
	case EventEnemyKilled:
		return fmt.Sprintf("[T=%04d] %s %s", e.Tick, e.Kind, e.Enemy)
	case EventPowerUpCollected:
		return fmt.Sprintf("[T=%04d] %s %s", e.Tick, e.Kind, e.PowerUp)
	default:
		return fmt.Sprintf("[T=%04d] %s %d", e.Tick, e.Kind, e.Value)
	}
}

// eventQueue buffers events between drains.
type eventQueue struct {
	pending []Event
}

func (q *eventQueue) push(ev Event) {
	q.pending = append(q.pending, ev)
}

// drain hands the buffered events to the caller and starts a fresh buffer.
func (q *eventQueue) drain() []Event {
	out := q.pending
	q.pending = nil
	return out
}
