// Package audio synthesises the game's sound effects with beep and plays
// them through the system speaker. Every operation is safe without an
// audio device: an uninitialised manager silently drops sounds.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/Garsondee/Turret-Defense/internal/game"
)

const (
	sampleRate              = beep.SampleRate(44100)
	speakerBufferDurationMs = 60

	shotDurationMs     = 45
	killDurationMs     = 160
	hurtDurationMs     = 180
	pickupDurationMs   = 220
	gameOverDurationMs = 900

	// minShotGapMs keeps rapid fire from stacking dozens of voices.
	minShotGapMs = 40
)

// SoundManager owns the mixer feeding the speaker.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
	lastShot    time.Time
	now         func() time.Time
}

// NewSoundManager creates a manager. Call Initialize to open the device.
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer: &beep.Mixer{},
		now:   time.Now,
	}
}

// Initialize opens the speaker. Calling it twice is a no-op.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(speakerBufferDurationMs*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup silences everything. The speaker itself stays open.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// SetMuted toggles output without tearing the device down.
func (sm *SoundManager) SetMuted(m bool) {
	sm.mu.Lock()
	sm.muted = m
	sm.mu.Unlock()
}

// Muted reports the mute state.
func (sm *SoundManager) Muted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}

// HandleEvents plays the effect for each engine event that has one.
func (sm *SoundManager) HandleEvents(evs []game.Event) {
	for _, ev := range evs {
		switch ev.Kind {
		case game.EventShotFired:
			sm.PlayShot(game.BulletColor(ev.Value) == game.BulletRapid)
		case game.EventEnemyKilled:
			sm.PlayKill(ev.Enemy == game.EnemyFast)
		case game.EventTurretHit:
			sm.PlayHurt()
		case game.EventPowerUpCollected:
			sm.PlayPickup()
		case game.EventGameOver:
			sm.PlayGameOver()
		}
	}
}

// PlayShot plays a short laser blip. Rapid-fire shots are quieter and throttled.
func (sm *SoundManager) PlayShot(rapid bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.ready() {
		return
	}
	now := sm.now()
	if rapid && now.Sub(sm.lastShot) < minShotGapMs*time.Millisecond {
		return
	}
	sm.lastShot = now
	amp := shotAmplitude
	if rapid {
		amp *= 0.6
	}
	sm.add(shotDurationMs, NewSweepGenerator(sampleRate, shotFreqStartHz, shotFreqEndHz, amp, shotDurationMs))
}

// PlayKill plays a crackle; fast kills are pitched up.
func (sm *SoundManager) PlayKill(fast bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.ready() {
		return
	}
	rumble := killRumbleFrequencyHz
	if fast {
		rumble *= 1.5
	}
	sm.add(killDurationMs, NewCrackleGenerator(sampleRate, rumble, sm.now().UnixNano()))
}

// PlayHurt plays a low buzz when the turret is struck.
func (sm *SoundManager) PlayHurt() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.ready() {
		return
	}
	sm.add(hurtDurationMs, NewBuzzGenerator(sampleRate, hurtBuzzFrequencyHz))
}

// PlayPickup plays a rising chime.
func (sm *SoundManager) PlayPickup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.ready() {
		return
	}
	sm.add(pickupDurationMs, NewSweepGenerator(sampleRate, pickupFreqStartHz, pickupFreqEndHz, pickupAmplitude, pickupDurationMs))
}

// PlayGameOver plays a long falling tone.
func (sm *SoundManager) PlayGameOver() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.ready() {
		return
	}
	sm.add(gameOverDurationMs, NewSweepGenerator(sampleRate, gameOverFreqStartHz, gameOverFreqEndHz, gameOverAmplitude, gameOverDurationMs))
}

// ready must be called with mu held.
func (sm *SoundManager) ready() bool {
	return sm.initialized && !sm.muted
}

// add must be called with mu held.
func (sm *SoundManager) add(ms int, s beep.Streamer) {
	speaker.Lock()
	sm.mixer.Add(beep.Take(sampleRate.N(time.Duration(ms)*time.Millisecond), s))
	speaker.Unlock()
}
