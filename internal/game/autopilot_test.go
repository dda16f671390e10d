package game

import "testing"

func TestAutopilot_ShootsApproachingEnemy(t *testing.T) {
	ts := NewTestSim(
		SimAutopilot(5),
		SimEnemy(EnemyNormal, SideLeft, 100, 300),
	)
	hit := ts.RunUntil(func(ts *TestSim) bool { return ts.Engine.Score() > 0 }, 300)
	if hit < 0 {
		t.Log(ts.SimLog.Format())
		t.Fatal("autopilot never hit a slow enemy crossing the field")
	}
	if h := ts.Engine.Health(); h != 20 {
		t.Fatalf("enemy should die before reaching the turret, health=%d", h)
	}
}

func TestAutopilot_ChasesPowerUp(t *testing.T) {
	ts := NewTestSim(
		SimAutopilot(5),
		SimPowerUp(PowerUpHealth, 250, 450),
	)
	got := ts.RunUntil(func(ts *TestSim) bool {
		return ts.CountEvents(EventPowerUpCollected) > 0
	}, 200)
	if got < 0 {
		t.Fatalf("autopilot never collected the pickup; turret at %+v", ts.Snapshot().Turret)
	}
}

func TestAutopilot_IdleWhenHalted(t *testing.T) {
	e := New(WithSeed(1))
	e.TogglePause()
	a := NewAutopilot(1)
	a.Drive(e, e.Snapshot())
	if e.State().Moving != 0 || len(e.Snapshot().Bullets) != 0 {
		t.Fatal("autopilot acted while paused")
	}
}

func TestLeadTarget_StationaryIsDirect(t *testing.T) {
	x, y := leadTarget(0, 0, EnemyView{X: 50, Y: 60}, 8)
	if x != 50 || y != 60 {
		t.Fatalf("stationary target should be aimed at directly, got (%.1f,%.1f)", x, y)
	}
	x, _ = leadTarget(400, 550, EnemyView{X: 100, Y: 300, VX: 2}, 8)
	if x <= 100 {
		t.Fatalf("moving target should be led along its travel, got x=%.1f", x)
	}
}
