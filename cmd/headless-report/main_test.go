package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Garsondee/Turret-Defense/internal/game"
)

func TestAvg(t *testing.T) {
	if got := avg(10, 4); got != 2.5 {
		t.Fatalf("expected 2.5, got %.2f", got)
	}
	if got := avg(10, 0); got != 0 {
		t.Fatalf("expected 0 for no runs, got %.2f", got)
	}
}

func TestAvgTickString(t *testing.T) {
	if got := avgTickString(nil); got != "n/a" {
		t.Fatalf("expected n/a, got %q", got)
	}
	if got := avgTickString([]int{100, 201}); got != "150.5" {
		t.Fatalf("expected 150.5, got %q", got)
	}
}

func TestFirstTick(t *testing.T) {
	entries := []game.SimLogEntry{
		{Tick: 3, Category: "spawn", Key: "enemy"},
		{Tick: 9, Category: "combat", Key: "kill"},
		{Tick: 12, Category: "combat", Key: "kill"},
	}
	if got := firstTick(entries, "combat", "kill"); got != 9 {
		t.Fatalf("expected 9, got %d", got)
	}
	if got := firstTick(entries, "combat", "turret_hit"); got != -1 {
		t.Fatalf("expected -1 when absent, got %d", got)
	}
}

func TestRunAutopilot_IsReproducible(t *testing.T) {
	a := runAutopilot(1, 7, 1500, 8)
	b := runAutopilot(1, 7, 1500, 8)
	if a.report != b.report {
		t.Fatalf("same seed should give the same report:\n%+v\n%+v", a.report, b.report)
	}
	if a.enemySpawns == 0 || a.report.Shots == 0 {
		t.Fatalf("autopilot run should spawn and shoot: %+v", a)
	}
	if a.report.Ticks == 0 || a.window == nil {
		t.Fatalf("run should be sampled: ticks=%d window=%v", a.report.Ticks, a.window)
	}
}

func TestPrintRunAndAggregate(t *testing.T) {
	runs := []runStats{
		{
			runIndex: 1, seed: 42,
			report:        game.RunReport{Score: 120, KillsNormal: 7, KillsFast: 2, Shots: 30, GameOverTick: 900},
			firstKillTick: 40, firstHitTick: 300, firstPickupTick: -1,
		},
		{
			runIndex: 2, seed: 43,
			report:        game.RunReport{Score: 60, KillsNormal: 6, Shots: 20, GameOverTick: -1},
			firstKillTick: 60, firstHitTick: -1, firstPickupTick: -1,
		},
	}

	var buf bytes.Buffer
	printRun(&buf, runs[0])
	out := buf.String()
	for _, want := range []string{"--- Run 1 (seed=42) ---", "first_kill=40", "game_over at T=900", "No data collected yet."} {
		if !strings.Contains(out, want) {
			t.Errorf("run output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	printAggregate(&buf, runs)
	out = buf.String()
	for _, want := range []string{
		"runs=2 game_overs=1 best_score=120 (run 1)",
		"score=90.0 kills=7.5",
		"overall_accuracy=30.0%",
		"first_kill=50.0 first_hit=300.0 game_over=900.0",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("aggregate output missing %q:\n%s", want, out)
		}
	}
}
