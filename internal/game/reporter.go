package game

import (
	"fmt"
	"strings"
)

// reportWindowTicks is the default sliding window for recent-play summaries (~10s at 60TPS).
const reportWindowTicks = 600

// --- Snapshot types ---

// TickSample is the field state captured at one collection point.
type TickSample struct {
	Tick     int
	Enemies  int
	Fast     int
	Bullets  int
	PowerUps int
	Health   int
	Score    int
	Combo    int
}

// RunReport totals one game from its event stream.
type RunReport struct {
	Ticks         int
	Score         int
	HighScore     int
	Shots         int
	RapidShots    int
	KillsNormal   int
	KillsFast     int
	TurretHits    int
	HealthPickups int
	RapidPickups  int
	PeakCombo     int
	NewHighScore  bool
	GameOverTick  int // -1 while the game is still running
	FinalHealth   int
	PauseToggles  int
}

// Kills is the total enemies destroyed.
func (r RunReport) Kills() int {
	return r.KillsNormal + r.KillsFast
}

// Accuracy is kills per shot in [0,1]; 0 when nothing was fired.
func (r RunReport) Accuracy() float64 {
	if r.Shots == 0 {
		return 0
	}
	return float64(r.Kills()) / float64(r.Shots)
}

// Format returns a multi-line human-readable breakdown.
func (r RunReport) Format() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Run Report (%d ticks) ===\n", r.Ticks)
	fmt.Fprintf(&sb, "  score=%d  high=%d  new_record=%v\n", r.Score, r.HighScore, r.NewHighScore)
	fmt.Fprintf(&sb, "  kills=%d (normal=%d fast=%d)  shots=%d (rapid=%d)  accuracy=%.1f%%\n",
		r.Kills(), r.KillsNormal, r.KillsFast, r.Shots, r.RapidShots, r.Accuracy()*100)
	fmt.Fprintf(&sb, "  turret_hits=%d  final_health=%d  peak_combo=%d\n", r.TurretHits, r.FinalHealth, r.PeakCombo)
	fmt.Fprintf(&sb, "  pickups: health=%d rapid_fire=%d\n", r.HealthPickups, r.RapidPickups)
	if r.GameOverTick >= 0 {
		fmt.Fprintf(&sb, "  game_over at T=%d\n", r.GameOverTick)
	} else {
		sb.WriteString("  still running\n")
	}
	return sb.String()
}

// --- Reporter ---

// Reporter folds engine events into a RunReport and keeps periodic field
// samples for sliding-window summaries.
type Reporter struct {
	report      RunReport
	history     []TickSample
	windowTicks int
}

// NewReporter creates a reporter with the given window size.
func NewReporter(windowTicks int) *Reporter {
	if windowTicks <= 0 {
		windowTicks = reportWindowTicks
	}
	return &Reporter{
		windowTicks: windowTicks,
		report:      RunReport{GameOverTick: -1},
	}
}

// Observe folds a batch of drained events into the totals.
func (r *Reporter) Observe(events []Event) {
	rp := &r.report
	for _, ev := range events {
		switch ev.Kind {
		case EventShotFired:
			rp.Shots++
			if BulletColor(ev.Value) == BulletRapid {
				rp.RapidShots++
			}
		case EventEnemyKilled:
			if ev.Enemy == EnemyFast {
				rp.KillsFast++
			} else {
				rp.KillsNormal++
			}
		case EventTurretHit:
			rp.TurretHits++
		case EventPowerUpCollected:
			switch ev.PowerUp {
			case PowerUpHealth:
				rp.HealthPickups++
			case PowerUpRapidFire:
				rp.RapidPickups++
			}
		case EventComboChanged:
			if ev.Value > rp.PeakCombo {
				rp.PeakCombo = ev.Value
			}
		case EventScoreChanged:
			rp.Score = ev.Value
		case EventHealthChanged:
			rp.FinalHealth = ev.Value
		case EventHighScoreChanged:
			rp.HighScore = ev.Value
			rp.NewHighScore = true
		case EventGameOver:
			if rp.GameOverTick < 0 {
				rp.GameOverTick = ev.Tick
			}
		case EventPauseChanged:
			rp.PauseToggles++
		}
	}
}

// Collect records a field sample and syncs the counters that are not
// carried by events (tick, high score, current health).
func (r *Reporter) Collect(snap Snapshot) {
	fast := 0
	for _, en := range snap.Enemies {
		if en.Kind == EnemyFast {
			fast++
		}
	}
	r.history = append(r.history, TickSample{
		Tick:     snap.Tick,
		Enemies:  len(snap.Enemies),
		Fast:     fast,
		Bullets:  len(snap.Bullets),
		PowerUps: len(snap.PowerUps),
		Health:   snap.Health,
		Score:    snap.Score,
		Combo:    snap.Combo,
	})
	r.report.Ticks = snap.Tick
	r.report.FinalHealth = snap.Health
	r.report.Score = snap.Score
	if snap.HighScore > r.report.HighScore {
		r.report.HighScore = snap.HighScore
	}
}

// Report returns the running totals.
func (r *Reporter) Report() RunReport {
	return r.report
}

// History returns all collected samples.
func (r *Reporter) History() []TickSample {
	return r.history
}

// WindowReport averages the samples inside the most recent window.
type WindowReport struct {
	FromTick, ToTick int
	SampleCount      int
	AvgEnemies       float64
	AvgFastShare     float64 // fraction of on-field enemies that are fast
	AvgBullets       float64
	MinHealth        int
	ScoreGained      int
}

// WindowSummary summarises the last windowTicks of samples, or nil if none.
func (r *Reporter) WindowSummary() *WindowReport {
	if len(r.history) == 0 {
		return nil
	}
	last := r.history[len(r.history)-1]
	from := last.Tick - r.windowTicks + 1
	var window []TickSample
	for _, s := range r.history {
		if s.Tick >= from {
			window = append(window, s)
		}
	}
	wr := &WindowReport{
		FromTick:    window[0].Tick,
		ToTick:      last.Tick,
		SampleCount: len(window),
		MinHealth:   window[0].Health,
		ScoreGained: last.Score - window[0].Score,
	}
	enemies, fast := 0, 0
	for _, s := range window {
		enemies += s.Enemies
		fast += s.Fast
		wr.AvgBullets += float64(s.Bullets)
		if s.Health < wr.MinHealth {
			wr.MinHealth = s.Health
		}
	}
	n := float64(len(window))
	wr.AvgEnemies = float64(enemies) / n
	wr.AvgBullets /= n
	if enemies > 0 {
		wr.AvgFastShare = float64(fast) / float64(enemies)
	}
	return wr
}

// Format returns a human-readable multi-line string of the window summary.
func (wr *WindowReport) Format() string {
	if wr == nil {
		return "No data collected yet.\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Window (T=%d..%d, %d samples) ===\n", wr.FromTick, wr.ToTick, wr.SampleCount)
	fmt.Fprintf(&sb, "  avg_enemies=%.1f  fast_share=%.1f%%  avg_bullets=%.1f\n",
		wr.AvgEnemies, wr.AvgFastShare*100, wr.AvgBullets)
	fmt.Fprintf(&sb, "  min_health=%d  score_gained=%d\n", wr.MinHealth, wr.ScoreGained)
	return sb.String()
}
