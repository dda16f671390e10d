package game

import (
	"fmt"
	"strings"
)

// SimLogEntry is one recorded engine event.
type SimLogEntry struct {
	Tick     int
	Category string  // spawn, fire, combat, combo, power_up, state, persist
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=0042] combat   kill             fast
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%04d] %-8s %-16s %s", e.Tick, e.Category, e.Key, e.Value)
}

// SimLog collects structured engine events. It is unbounded and
// machine-readable; headless runs and tests query it after the fact.
type SimLog struct {
	entries []SimLogEntry
}

// NewSimLog creates an empty SimLog.
func NewSimLog() *SimLog {
	return &SimLog{}
}

// Add records a new entry.
func (sl *SimLog) Add(tick int, category, key, value string, numVal float64) {
	sl.entries = append(sl.entries, SimLogEntry{
		Tick:     tick,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// Entries returns all recorded entries.
func (sl *SimLog) Entries() []SimLogEntry {
	return sl.entries
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterTickRange returns entries within [fromTick, toTick] inclusive.
func (sl *SimLog) FilterTickRange(fromTick, toTick int) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Tick >= fromTick && e.Tick <= toTick {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (sl *SimLog) CountCategory(category, key string) int {
	return len(sl.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (sl *SimLog) LastOf(category, key string) (SimLogEntry, bool) {
	entries := sl.Filter(category, key)
	if len(entries) == 0 {
		return SimLogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (sl *SimLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (sl *SimLog) Format() string {
	return formatEntries(sl.entries)
}

// FormatRange returns a log string filtered to a tick range.
func (sl *SimLog) FormatRange(fromTick, toTick int) string {
	return formatEntries(sl.FilterTickRange(fromTick, toTick))
}

func formatEntries(entries []SimLogEntry) string {
	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary returns a short human-readable summary of a snapshot.
func (sl *SimLog) Summary(snap Snapshot) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at T=%04d (%s) ---\n", snap.Tick, snap.Phase)
	fmt.Fprintf(&sb, "score=%d high=%d health=%d/%d combo=%d\n",
		snap.Score, snap.HighScore, snap.Health, snap.MaxHealth, snap.Combo)

	normal, fast := 0, 0
	for _, en := range snap.Enemies {
		if en.Kind == EnemyFast {
			fast++
		} else {
			normal++
		}
	}
	fmt.Fprintf(&sb, "enemies: normal=%d fast=%d  bullets=%d  power_ups=%d\n",
		normal, fast, len(snap.Bullets), len(snap.PowerUps))
	fmt.Fprintf(&sb, "turret: (%.0f,%.0f) aim=%.1f°\n", snap.Turret.X, snap.Turret.Y, snap.Turret.Angle)
	if snap.RapidFire {
		fmt.Fprintf(&sb, "rapid_fire: %d ticks left\n", snap.RapidFireTicks)
	}
	fmt.Fprintf(&sb, "kills logged: %d  turret hits logged: %d\n",
		sl.CountCategory("combat", "kill"), sl.CountCategory("combat", "turret_hit"))
	return sb.String()
}
