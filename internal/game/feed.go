package game

import "fmt"

const feedMaxEntries = 12

// FeedEntry is one line of the on-screen event feed.
type FeedEntry struct {
	Tick int
	Kind EventKind
	Text string
}

// Feed is a ring buffer of recent notable events, for the side panel in
// the window and terminal front ends.
type Feed struct {
	entries []FeedEntry
	head    int
	count   int
}

// NewFeed creates a feed with a fixed capacity.
func NewFeed() *Feed {
	return &Feed{
		entries: make([]FeedEntry, feedMaxEntries),
	}
}

// Push appends an event if it is worth showing. Score, health and combo
// changes are already on the HUD so they are skipped.
func (f *Feed) Push(ev Event) {
	text, ok := feedText(ev)
	if !ok {
		return
	}
	f.entries[f.head] = FeedEntry{Tick: ev.Tick, Kind: ev.Kind, Text: text}
	f.head = (f.head + 1) % len(f.entries)
	if f.count < len(f.entries) {
		f.count++
	}
}

// PushAll appends every event in order.
func (f *Feed) PushAll(evs []Event) {
	for _, ev := range evs {
		f.Push(ev)
	}
}

// Recent returns entries in chronological order (oldest first).
func (f *Feed) Recent() []FeedEntry {
	n := len(f.entries)
	result := make([]FeedEntry, f.count)
	for i := 0; i < f.count; i++ {
		idx := (f.head - f.count + i + n) % n
		result[i] = f.entries[idx]
	}
	return result
}

// Len returns the number of buffered entries.
func (f *Feed) Len() int { return f.count }

func feedText(ev Event) (string, bool) {
	switch ev.Kind {
	case EventEnemyKilled:
		return fmt.Sprintf("%s down +%d", ev.Enemy, ev.Value), true
	case EventTurretHit:
		return fmt.Sprintf("hit by %s (%d left)", ev.Enemy, ev.Value), true
	case EventPowerUpCollected:
		return fmt.Sprintf("picked up %s", ev.PowerUp), true
	case EventRapidFireEnded:
		return "rapid fire over", true
	case EventHighScoreChanged:
		return fmt.Sprintf("new high score %d", ev.Value), true
	case EventGameOver:
		return fmt.Sprintf("game over, score %d", ev.Value), true
	case EventPauseChanged:
		if ev.Value == 1 {
			return "paused", true
		}
		return "resumed", true
	default:
		return "", false
	}
}
