package main

import (
	"testing"

	"github.com/alexsc6955/space-invaders/internal/game"
)

func sampleEntries() []game.EventEntry {
	return []game.EventEntry{
		{Tick: 3, Entity: "ship", Category: "fire", Key: "shot", Value: "x=398 vx=+0"},
		{Tick: 60, Entity: "A17", Category: "kill", Key: "bullet", Value: "row=1 col=4"},
		{Tick: 90, Entity: "A44", Category: "kill", Key: "beam", Value: "row=3 col=7"},
		{Tick: 400, Entity: "--", Category: "formation", Key: "bounce", Value: "+1 → -1"},
	}
}

func TestFirstTick_MatchesCategoryAndKey(t *testing.T) {
	entries := sampleEntries()

	if got := firstTick(entries, "kill", "", ""); got != 60 {
		t.Fatalf("first kill tick = %d, want 60", got)
	}
	if got := firstTick(entries, "kill", "beam", ""); got != 90 {
		t.Fatalf("first beam kill tick = %d, want 90", got)
	}
	if got := firstTick(entries, "kill", "bullet", "col=4"); got != 60 {
		t.Fatalf("value-filtered tick = %d, want 60", got)
	}
	if got := firstTick(entries, "kill", "bullet", "col=9"); got != -1 {
		t.Fatalf("non-matching value filter = %d, want -1", got)
	}
	if got := firstTick(entries, "missile", "", ""); got != -1 {
		t.Fatalf("absent category = %d, want -1", got)
	}
}

func TestAvg_HandlesEmpty(t *testing.T) {
	if got := avg(10, 4); got != 2.5 {
		t.Fatalf("avg(10,4) = %v, want 2.5", got)
	}
	if got := avg(7, 0); got != 0 {
		t.Fatalf("avg over zero runs = %v, want 0", got)
	}
}

func TestAvgTickString(t *testing.T) {
	if got := avgTickString(nil); got != "n/a" {
		t.Fatalf("empty tick list = %q, want n/a", got)
	}
	if got := avgTickString([]int{100, 200}); got != "150.0" {
		t.Fatalf("avgTickString = %q, want 150.0", got)
	}
}

func TestRunScenarioAutopilot_CollectsCoherentStats(t *testing.T) {
	rs := runScenarioAutopilot(1, 42, 600)

	if rs.runIndex != 1 || rs.seed != 42 {
		t.Fatalf("run identity = (%d,%d), want (1,42)", rs.runIndex, rs.seed)
	}
	if rs.endTick <= 0 || rs.endTick > 600 {
		t.Fatalf("endTick = %d, want within (0,600]", rs.endTick)
	}
	if rs.shots <= 0 {
		t.Error("autopilot fired no shots in 10 seconds")
	}
	if rs.finalScore < 0 {
		t.Errorf("finalScore = %d", rs.finalScore)
	}
	// 10 seconds is not enough to end the wave either way.
	if rs.finalOutcome != game.OutcomePlaying {
		t.Errorf("outcome after 600 ticks = %s, want playing", rs.finalOutcome)
	}
	if rs.outcomeTick != -1 {
		t.Errorf("outcomeTick = %d, want -1 while still playing", rs.outcomeTick)
	}
	if rs.grade.Seed != 42 {
		t.Errorf("grade seed = %d, want 42", rs.grade.Seed)
	}
	if rs.windowSummary == nil {
		t.Error("no window summary after 600 ticks")
	}
}

func TestRunScenarioAutopilot_SameSeedSameStats(t *testing.T) {
	a := runScenarioAutopilot(1, 9, 300)
	b := runScenarioAutopilot(2, 9, 300)

	if a.shots != b.shots || a.alienShots != b.alienShots {
		t.Errorf("shot counts diverged: (%d,%d) vs (%d,%d)", a.shots, a.alienShots, b.shots, b.alienShots)
	}
	if a.finalScore != b.finalScore {
		t.Errorf("scores diverged: %d vs %d", a.finalScore, b.finalScore)
	}
	if a.firstKillTick != b.firstKillTick {
		t.Errorf("first kill ticks diverged: %d vs %d", a.firstKillTick, b.firstKillTick)
	}
}
