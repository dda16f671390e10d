package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/atotto/clipboard"

	"github.com/Garsondee/Turret-Defense/internal/game"
	"github.com/Garsondee/Turret-Defense/internal/highscore"
)

type runStats struct {
	runIndex int
	seed     int64

	report game.RunReport
	window *game.WindowReport

	firstKillTick   int
	firstHitTick    int
	firstPickupTick int

	enemySpawns   int
	powerUpSpawns int
	comboLapses   int
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var fireEvery int
	var copyOut bool

	flag.IntVar(&runs, "runs", 5, "number of headless autopilot runs")
	flag.IntVar(&ticks, "ticks", 3600, "maximum ticks per run")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.IntVar(&fireEvery, "fire-every", 8, "autopilot fire cadence in ticks")
	flag.BoolVar(&copyOut, "copy", false, "also copy the report to the clipboard")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}

	var buf bytes.Buffer
	out := io.MultiWriter(os.Stdout, &buf)

	fmt.Fprintf(out, "=== Headless Turret Report ===\n")
	fmt.Fprintf(out, "runs=%d ticks=%d seed_base=%d seed_step=%d fire_every=%d\n\n", runs, ticks, seedBase, seedStep, fireEvery)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats := runAutopilot(i+1, seed, ticks, fireEvery)
		all = append(all, stats)
		printRun(out, stats)
	}
	printAggregate(out, all)

	if copyOut {
		if err := clipboard.WriteAll(buf.String()); err != nil {
			log.Printf("copy report: %v", err)
		}
	}
}

// runAutopilot plays one game with the bot until game over or the tick limit.
func runAutopilot(runIndex int, seed int64, ticks, fireEvery int) runStats {
	ts := game.NewTestSim(
		game.SimSeed(seed),
		game.SimStore(highscore.NewMemoryStore(0)),
		game.SimAutoSpawn(),
		game.SimAutopilot(fireEvery),
		game.SimSampleEvery(60),
	)
	ts.RunUntil(func(ts *game.TestSim) bool {
		return ts.Engine.Phase() == game.PhaseGameOver
	}, ticks)
	ts.Reporter.Collect(ts.Snapshot())

	entries := ts.SimLog.Entries()
	return runStats{
		runIndex:        runIndex,
		seed:            seed,
		report:          ts.Reporter.Report(),
		window:          ts.Reporter.WindowSummary(),
		firstKillTick:   firstTick(entries, "combat", "kill"),
		firstHitTick:    firstTick(entries, "combat", "turret_hit"),
		firstPickupTick: firstTick(entries, "power_up", "collected"),
		enemySpawns:     ts.SimLog.CountCategory("spawn", "enemy"),
		powerUpSpawns:   ts.SimLog.CountCategory("spawn", "power_up"),
		comboLapses:     ts.SimLog.CountCategory("combo", "reset"),
	}
}

func firstTick(entries []game.SimLogEntry, category, key string) int {
	for _, e := range entries {
		if e.Category == category && e.Key == key {
			return e.Tick
		}
	}
	return -1
}

func printRun(w io.Writer, rs runStats) {
	fmt.Fprintf(w, "--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Fprint(w, rs.report.Format())
	fmt.Fprintf(w, "phase_markers: first_kill=%d first_hit=%d first_pickup=%d\n",
		rs.firstKillTick, rs.firstHitTick, rs.firstPickupTick)
	fmt.Fprintf(w, "spawns: enemies=%d power_ups=%d combo_lapses=%d\n",
		rs.enemySpawns, rs.powerUpSpawns, rs.comboLapses)
	fmt.Fprint(w, rs.window.Format())
	fmt.Fprintln(w)
}

func printAggregate(w io.Writer, all []runStats) {
	totalScore := 0
	totalKills := 0
	totalFast := 0
	totalShots := 0
	totalHits := 0
	totalPickups := 0
	gameOvers := 0
	best := 0
	bestRun := 0

	gameOverTicks := make([]int, 0, len(all))
	killTicks := make([]int, 0, len(all))
	hitTicks := make([]int, 0, len(all))

	for _, rs := range all {
		r := rs.report
		totalScore += r.Score
		totalKills += r.Kills()
		totalFast += r.KillsFast
		totalShots += r.Shots
		totalHits += r.TurretHits
		totalPickups += r.HealthPickups + r.RapidPickups
		if r.GameOverTick >= 0 {
			gameOvers++
			gameOverTicks = append(gameOverTicks, r.GameOverTick)
		}
		if rs.firstKillTick >= 0 {
			killTicks = append(killTicks, rs.firstKillTick)
		}
		if rs.firstHitTick >= 0 {
			hitTicks = append(hitTicks, rs.firstHitTick)
		}
		if r.Score > best {
			best = r.Score
			bestRun = rs.runIndex
		}
	}

	accuracy := 0.0
	if totalShots > 0 {
		accuracy = float64(totalKills) / float64(totalShots) * 100
	}

	fmt.Fprintln(w, "=== Aggregate ===")
	fmt.Fprintf(w, "runs=%d game_overs=%d best_score=%d (run %d)\n", len(all), gameOvers, best, bestRun)
	fmt.Fprintf(w, "avg_per_run: score=%.1f kills=%.1f fast_kills=%.1f shots=%.1f turret_hits=%.1f pickups=%.1f\n",
		avg(totalScore, len(all)), avg(totalKills, len(all)), avg(totalFast, len(all)),
		avg(totalShots, len(all)), avg(totalHits, len(all)), avg(totalPickups, len(all)))
	fmt.Fprintf(w, "overall_accuracy=%.1f%%\n", accuracy)
	fmt.Fprintf(w, "phase_marker_avg_ticks: first_kill=%s first_hit=%s game_over=%s\n",
		avgTickString(killTicks), avgTickString(hitTicks), avgTickString(gameOverTicks))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}
