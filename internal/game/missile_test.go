package game

import (
	"math"
	"testing"
)

// --- Targeting mode ---

func TestTargeting_ToggleOnPicksFirstAlive(t *testing.T) {
	ts := NewTestSim()
	first := ts.AlienAt(0, 0)

	ts.Step(Intent{TargetToggle: true})
	if !ts.World.Targeting {
		t.Fatal("targeting did not engage")
	}
	if ts.World.Cursor != first.ID {
		t.Fatalf("cursor = A%d, want the first alive alien A%d", ts.World.Cursor, first.ID)
	}
	if !ts.Events.HasEntry("target", "on", "cursor=A1") {
		t.Error("missing target/on event")
	}

	ts.Step(Intent{TargetToggle: true})
	if ts.World.Targeting {
		t.Fatal("second toggle did not disengage")
	}
	if !ts.Events.HasEntry("target", "off", "") {
		t.Error("missing target/off event")
	}
}

func TestTargeting_EntryTickIgnoresCursorKeys(t *testing.T) {
	ts := NewTestSim()
	ts.Step(Intent{TargetToggle: true, TargetRight: true})

	if ts.World.Cursor != ts.AlienAt(0, 0).ID {
		t.Fatalf("cursor moved on the entry tick to A%d", ts.World.Cursor)
	}
}

func TestTargeting_CursorSnapsWhenTargetDies(t *testing.T) {
	ts := NewTestSim()
	ts.Step(Intent{TargetToggle: true})

	ts.World.killAlien(ts.AlienAt(0, 0))
	ts.Step(Intent{})

	want := ts.AlienAt(0, 1).ID
	if ts.World.Cursor != want {
		t.Fatalf("cursor = A%d after its alien died, want snap to A%d", ts.World.Cursor, want)
	}
	if !ts.Events.HasEntry("target", "cursor", "A1 → A2") {
		t.Error("missing target/cursor snap event")
	}
}

func TestTargeting_DropsOutOnEmptyRoster(t *testing.T) {
	ts := NewTestSim()
	ts.Step(Intent{TargetToggle: true})

	ts.World.Aliens = nil
	ts.Step(Intent{})
	if ts.World.Targeting || ts.World.Cursor != 0 {
		t.Fatalf("targeting=%v cursor=%d with no aliens, want off/0",
			ts.World.Targeting, ts.World.Cursor)
	}
}

// --- Cursor cycling ---

// cycle advances the cursor one step and returns the alien now under it.
func cycle(t *testing.T, ts *TestSim, in Intent) *Alien {
	t.Helper()
	ts.Step(in)
	for _, a := range ts.World.Aliens {
		if a.ID == ts.World.Cursor {
			return a
		}
	}
	t.Fatalf("cursor A%d not in roster", ts.World.Cursor)
	return nil
}

func TestTargeting_CyclesAlongRowsAndColumns(t *testing.T) {
	ts := NewTestSim(WithFormation(3, 4))
	ts.Step(Intent{TargetToggle: true})

	steps := []struct {
		in       Intent
		row, col int
	}{
		{Intent{TargetRight: true}, 0, 1},
		{Intent{TargetRight: true}, 0, 2},
		{Intent{TargetDown: true}, 1, 2},
		{Intent{TargetDown: true}, 2, 2},
		{Intent{TargetLeft: true}, 2, 1},
		{Intent{TargetUp: true}, 1, 1},
	}
	for i, s := range steps {
		a := cycle(t, ts, s.in)
		if a.Row != s.row || a.Col != s.col {
			t.Fatalf("step %d: cursor at (%d,%d), want (%d,%d)", i, a.Row, a.Col, s.row, s.col)
		}
	}
}

func TestTargeting_CursorStaysAtEdge(t *testing.T) {
	ts := NewTestSim(WithFormation(3, 4))
	ts.Step(Intent{TargetToggle: true}) // cursor at (0,0)

	a := cycle(t, ts, Intent{TargetLeft: true})
	if a.Row != 0 || a.Col != 0 {
		t.Fatalf("cursor left the grid to (%d,%d)", a.Row, a.Col)
	}
	a = cycle(t, ts, Intent{TargetUp: true})
	if a.Row != 0 || a.Col != 0 {
		t.Fatalf("cursor left the grid to (%d,%d)", a.Row, a.Col)
	}
}

func TestTargeting_DiagonalFallbackWhenLineIsEmpty(t *testing.T) {
	ts := NewTestSim(WithFormation(3, 4))
	w := ts.World

	// Clear the rest of row 0: a rightward move has no on-axis candidate
	// left and falls through to the nearest diagonal.
	w.killAlien(ts.AlienAt(0, 1))
	w.killAlien(ts.AlienAt(0, 2))
	w.killAlien(ts.AlienAt(0, 3))
	ts.Step(Intent{TargetToggle: true}) // cursor at (0,0)

	a := cycle(t, ts, Intent{TargetRight: true})
	if a.Row != 1 || a.Col != 1 {
		t.Fatalf("diagonal fallback landed at (%d,%d), want (1,1)", a.Row, a.Col)
	}
}

func TestTargeting_TieBreaksInRosterOrder(t *testing.T) {
	ts := NewTestSim(WithFormation(3, 4))
	ts.Step(Intent{TargetToggle: true})
	cycle(t, ts, Intent{TargetRight: true})
	cycle(t, ts, Intent{TargetDown: true}) // cursor at (1,1)

	// With (0,1) gone, an upward move sees (0,0) and (0,2) at equal score;
	// the earlier roster entry wins.
	ts.World.killAlien(ts.AlienAt(0, 1))
	a := cycle(t, ts, Intent{TargetUp: true})
	if a.Row != 0 || a.Col != 0 {
		t.Fatalf("tie broke to (%d,%d), want the earlier roster entry (0,0)", a.Row, a.Col)
	}
}

// --- Launch ---

func TestMissile_LaunchNeedsTargetingMode(t *testing.T) {
	ts := NewTestSim()
	ts.Step(Intent{LaunchMissile: true})
	if len(ts.World.Missiles) != 0 {
		t.Fatal("missile launched outside targeting mode")
	}
}

func TestMissile_LaunchLocksTargetAndDropsMode(t *testing.T) {
	ts := NewTestSim()
	ts.Step(Intent{TargetToggle: true})
	want := ts.World.Cursor

	ts.Step(Intent{LaunchMissile: true})

	if len(ts.World.Missiles) != 1 {
		t.Fatalf("missiles = %d, want 1", len(ts.World.Missiles))
	}
	m := ts.World.Missiles[0]
	if m.Target != want {
		t.Fatalf("missile target = A%d, want the cursor A%d", m.Target, want)
	}
	if ts.World.Targeting {
		t.Fatal("launch must drop out of targeting mode")
	}
	if ts.World.MissileTimer != missileCooldown {
		t.Fatalf("launch cooldown = %v, want %v", ts.World.MissileTimer, missileCooldown)
	}
	if !ts.Events.HasEntry("missile", "launch", "target=A1") {
		t.Error("missing missile/launch event")
	}

	// Homing has already swung the velocity onto the pursuit speed.
	if speed := math.Hypot(m.Vel.X, m.Vel.Y); math.Abs(speed-missileSpeed) > 1e-9 {
		t.Fatalf("missile speed = %.3f, want %v", speed, missileSpeed)
	}
	if m.Vel.Y >= 0 {
		t.Fatal("missile should be climbing toward a target above the ship")
	}
}

func TestMissile_LaunchBlockedByCooldown(t *testing.T) {
	ts := NewTestSim()
	ts.Step(Intent{TargetToggle: true})
	ts.Step(Intent{LaunchMissile: true})

	ts.Step(Intent{TargetToggle: true})
	ts.Step(Intent{LaunchMissile: true})
	if got := len(ts.World.Missiles); got != 1 {
		t.Fatalf("missiles = %d, want the second launch blocked by the cooldown", got)
	}
}

func TestMissile_LaunchAfterCursorDeathUsesSnappedTarget(t *testing.T) {
	// The cursor is revalidated before the spawn stage runs, so a launch
	// on the very tick the target died locks onto the replacement.
	ts := NewTestSim()
	ts.Step(Intent{TargetToggle: true})
	ts.World.killAlien(ts.AlienAt(0, 0))

	ts.Step(Intent{LaunchMissile: true})
	if len(ts.World.Missiles) != 1 {
		t.Fatal("launch failed after the cursor revalidated")
	}
	if got, want := ts.World.Missiles[0].Target, ts.AlienAt(0, 1).ID; got != want {
		t.Fatalf("missile target = A%d, want the snapped cursor A%d", got, want)
	}
}

// --- Flight ---

func TestMissile_PursuitClosesAndKills(t *testing.T) {
	ts := NewTestSim()
	ts.Step(Intent{TargetToggle: true})
	ts.Step(Intent{LaunchMissile: true})

	m := ts.World.Missiles[0]
	target := ts.AlienAt(0, 0)

	lastDist := math.MaxFloat64
	for i := 0; i < 150; i++ {
		ts.Step(Intent{})
		if !m.Alive || target.Exploding {
			break
		}
		mc, tc := m.Rect.Center(), target.Rect.Center()
		d := math.Hypot(tc.X-mc.X, tc.Y-mc.Y)
		if d > lastDist+1e-6 {
			t.Fatalf("tick %d: pursuit distance grew %.3f -> %.3f", ts.CurrentTick(), lastDist, d)
		}
		lastDist = d
	}

	if !ts.Events.HasEntry("kill", "missile", "row=0 col=0") {
		t.Fatal("missile never killed its target")
	}
	if len(ts.World.Missiles) != 0 {
		t.Fatal("spent missile still in the world")
	}
}

func TestMissile_FizzlesQuietlyWhenTargetDies(t *testing.T) {
	ts := NewTestSim()
	ts.Step(Intent{TargetToggle: true})
	ts.Step(Intent{LaunchMissile: true})

	ts.World.killAlien(ts.AlienAt(0, 0))
	ts.Step(Intent{})

	if len(ts.World.Missiles) != 0 {
		t.Fatal("missile should fizzle the tick its target stops being alive")
	}
	if len(ts.World.Effects) != 0 {
		t.Fatal("a fizzle is quiet; no impact flash")
	}
}

func TestMissile_OnlyHitsItsOwnTarget(t *testing.T) {
	// Park a missile on top of an alien that is not its target. It must
	// fly through untouched.
	ts := NewTestSim()
	w := ts.World

	bystander := ts.AlienAt(0, 3)
	target := ts.AlienAt(4, 11)
	w.Missiles = append(w.Missiles, &Missile{
		Rect:   Rect{X: bystander.Rect.X + 10, Y: bystander.Rect.Y + 3, W: missileWidth, H: missileHeight},
		Speed:  missileSpeed,
		Target: target.ID,
		Alive:  true,
	})

	ts.Step(Intent{})
	if bystander.Exploding {
		t.Fatal("missile killed an alien that was not its target")
	}
	if !w.Missiles[0].Alive {
		t.Fatal("missile died on a non-target")
	}
}
