package game

import "testing"

func TestFeed_RingBufferKeepsNewest(t *testing.T) {
	f := NewFeed()
	for i := 1; i <= 20; i++ {
		f.Push(Event{Kind: EventEnemyKilled, Tick: i, Value: 10})
	}
	if f.Len() != feedMaxEntries {
		t.Fatalf("expected %d entries, got %d", feedMaxEntries, f.Len())
	}
	recent := f.Recent()
	if recent[0].Tick != 9 || recent[len(recent)-1].Tick != 20 {
		t.Fatalf("expected ticks 9..20 oldest first, got %d..%d", recent[0].Tick, recent[len(recent)-1].Tick)
	}
}

func TestFeed_SkipsHUDCounters(t *testing.T) {
	f := NewFeed()
	f.PushAll([]Event{
		{Kind: EventScoreChanged, Value: 10},
		{Kind: EventHealthChanged, Value: 19},
		{Kind: EventComboChanged, Value: 2},
		{Kind: EventShotFired},
		{Kind: EventTurretHit, Value: 19, Enemy: EnemyFast},
		{Kind: EventPauseChanged, Value: 1},
	})
	recent := f.Recent()
	if len(recent) != 2 {
		t.Fatalf("expected 2 feed lines, got %v", recent)
	}
	if recent[0].Text != "hit by fast (19 left)" || recent[1].Text != "paused" {
		t.Fatalf("unexpected feed text %q / %q", recent[0].Text, recent[1].Text)
	}
}
