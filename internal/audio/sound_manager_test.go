package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/Garsondee/Turret-Defense/internal/game"
)

// TestSoundManagerGracefulDegradation verifies every call is safe without a device.
func TestSoundManagerGracefulDegradation(t *testing.T) {
	sm := NewSoundManager()
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("sound operations panicked without initialization: %v", r)
		}
	}()

	sm.PlayShot(false)
	sm.PlayShot(true)
	sm.PlayKill(true)
	sm.PlayHurt()
	sm.PlayPickup()
	sm.PlayGameOver()
	sm.HandleEvents([]game.Event{
		{Kind: game.EventShotFired},
		{Kind: game.EventEnemyKilled, Enemy: game.EnemyFast},
		{Kind: game.EventTurretHit},
		{Kind: game.EventPowerUpCollected},
		{Kind: game.EventGameOver},
	})
	sm.Cleanup()
}

// TestSoundManagerInitialization opens and closes the device when one exists.
func TestSoundManagerInitialization(t *testing.T) {
	sm := NewSoundManager()
	if err := sm.Initialize(); err != nil {
		t.Logf("sound initialization failed (expected without an audio device): %v", err)
		return
	}
	if err := sm.Initialize(); err != nil {
		t.Errorf("second initialization should be a no-op, got %v", err)
	}
	sm.PlayPickup()
	sm.Cleanup()
}

func TestSoundManagerMute(t *testing.T) {
	sm := NewSoundManager()
	sm.SetMuted(true)
	if !sm.Muted() {
		t.Fatal("expected muted")
	}
	sm.PlayShot(false)
	sm.SetMuted(false)
	if sm.Muted() {
		t.Fatal("expected unmuted")
	}
}

// drain pulls every sample out of a bounded streamer.
func drain(t *testing.T, s beep.Streamer) [][2]float64 {
	t.Helper()
	var out [][2]float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok || n == 0 {
			return out
		}
		if len(out) > int(sampleRate)*5 {
			t.Fatal("bounded streamer never ended")
		}
	}
}

func TestGenerators_BoundedAndQuiet(t *testing.T) {
	gens := map[string]beep.Streamer{
		"shot":      NewSweepGenerator(sampleRate, shotFreqStartHz, shotFreqEndHz, shotAmplitude, shotDurationMs),
		"pickup":    NewSweepGenerator(sampleRate, pickupFreqStartHz, pickupFreqEndHz, pickupAmplitude, pickupDurationMs),
		"game_over": NewSweepGenerator(sampleRate, gameOverFreqStartHz, gameOverFreqEndHz, gameOverAmplitude, gameOverDurationMs),
		"hurt":      NewBuzzGenerator(sampleRate, hurtBuzzFrequencyHz),
		"kill":      NewCrackleGenerator(sampleRate, killRumbleFrequencyHz, 42),
	}
	const ms = 200
	want := sampleRate.N(ms * time.Millisecond)
	for name, g := range gens {
		t.Run(name, func(t *testing.T) {
			samples := drain(t, beep.Take(want, g))
			if len(samples) != want {
				t.Fatalf("expected %d samples, got %d", want, len(samples))
			}
			peak := 0.0
			for _, s := range samples {
				if s[0] != s[1] {
					t.Fatal("effects are mono; channels must match")
				}
				peak = math.Max(peak, math.Abs(s[0]))
			}
			if peak > 1 {
				t.Fatalf("sample peak %.3f would clip", peak)
			}
			if peak == 0 {
				t.Fatal("generator produced silence")
			}
		})
	}
}

func TestAudioConstants(t *testing.T) {
	for name, ms := range map[string]int{
		"shot":      shotDurationMs,
		"kill":      killDurationMs,
		"hurt":      hurtDurationMs,
		"pickup":    pickupDurationMs,
		"game_over": gameOverDurationMs,
	} {
		if ms <= 0 {
			t.Errorf("%s duration must be positive", name)
		}
	}
	for name, hz := range map[string]float64{
		"shot_start": shotFreqStartHz,
		"pickup_end": pickupFreqEndHz,
		"rumble":     killRumbleFrequencyHz,
		"buzz":       hurtBuzzFrequencyHz,
		"over_end":   gameOverFreqEndHz,
	} {
		if hz < 20 || hz > 2000 {
			t.Errorf("%s frequency %.0fHz outside the audible game range", name, hz)
		}
	}
}
