package game

import (
	"math"
	"testing"
)

// alienBulletsAlive counts live alien-owned bullets.
func alienBulletsAlive(w *World) int {
	n := 0
	for _, b := range w.Bullets {
		if b.Alive && b.Owner == OwnerAlien {
			n++
		}
	}
	return n
}

// --- Cadence ---

func TestAlienFire_InitialDelay(t *testing.T) {
	ts := NewTestSim()

	ts.RunTicks(55)
	if got := ts.Events.CountCategory("fire", "alien_shot"); got != 0 {
		t.Fatalf("%d alien shots before the initial delay elapsed", got)
	}

	ts.RunTicks(10)
	shots := ts.Events.Filter("fire", "alien_shot")
	if len(shots) != 1 {
		t.Fatalf("alien shots after 65 ticks = %d, want exactly 1", len(shots))
	}
	if tick := shots[0].Tick; tick < 58 || tick > 63 {
		t.Fatalf("first alien shot at tick %d, want ~60", tick)
	}
}

func TestAlienFire_FirstShotComesFromTheFrontLine(t *testing.T) {
	ts := NewTestSim()
	ts.RunUntil(func(ts *TestSim) bool {
		return alienBulletsAlive(ts.World) > 0
	}, 120)

	var bullet *Bullet
	for _, b := range ts.World.Bullets {
		if b.Alive && b.Owner == OwnerAlien {
			bullet = b
		}
	}
	if bullet == nil {
		t.Fatal("no alien bullet appeared")
	}

	// The shooter is the one alien now on a personal cooldown. With the
	// formation intact every column's front line is the bottom row.
	var shooter *Alien
	for _, a := range ts.World.Aliens {
		if a.FireCooldown > 0 {
			shooter = a
		}
	}
	if shooter == nil {
		t.Fatal("no alien went on cooldown after firing")
	}
	if shooter.Row != 4 {
		t.Fatalf("shooter in row %d, want the bottom row", shooter.Row)
	}
	if cd := shooter.FireCooldown; cd < shooterCooldownMin-simDt || cd > shooterCooldownMax {
		t.Fatalf("shooter cooldown = %.3f, want within [%v,%v]", cd, shooterCooldownMin, shooterCooldownMax)
	}

	// Bottom-center spawn, aligned with the shooter.
	if got := bullet.Rect.X + alienBulletWidth/2; math.Abs(got-shooter.Rect.Center().X) > 1e-9 {
		t.Fatalf("bullet center x = %.3f, shooter center x = %.3f", got, shooter.Rect.Center().X)
	}
	if bullet.Rect.Y < 270 || bullet.Rect.Y > 286 {
		t.Fatalf("bullet y = %.1f, want just below the bottom row", bullet.Rect.Y)
	}

	// Bottom rows fire the fast variant.
	if bullet.Kind != ProjectileA || bullet.Vel.Y != projectileASpeed {
		t.Fatalf("first shot kind=%v vy=%v, want A at %v", bullet.Kind, bullet.Vel.Y, projectileASpeed)
	}
	if !ts.Events.HasEntry("fire", "alien_shot", "kind=A") {
		t.Error("missing alien_shot event with the kind")
	}
}

func TestAlienFire_CapAndRetry(t *testing.T) {
	ts := NewTestSim()
	w := ts.World

	// Saturate the cap with two hand-placed bullets parked clear of the
	// shelters and the ship.
	b1 := &Bullet{Rect: Rect{X: 100, Y: 300, W: 6, H: 14}, Vel: Vec2{Y: 300}, Owner: OwnerAlien, Kind: ProjectileB, Alive: true}
	b2 := &Bullet{Rect: Rect{X: 700, Y: 300, W: 6, H: 14}, Vel: Vec2{Y: 300}, Owner: OwnerAlien, Kind: ProjectileB, Alive: true}
	w.Bullets = append(w.Bullets, b1, b2)
	w.AlienFireTimer = 0.01

	ts.Step(Intent{})
	if got := alienBulletsAlive(w); got != 2 {
		t.Fatalf("live alien bullets = %d after a capped attempt, want 2", got)
	}
	if w.AlienFireTimer != alienFireRetry {
		t.Fatalf("capped attempt set timer to %.3f, want the retry interval %.2f",
			w.AlienFireTimer, alienFireRetry)
	}

	// Free a slot; the retry fires within a few ticks instead of waiting a
	// full interval.
	b2.Alive = false
	ts.RunTicks(12)
	if got := alienBulletsAlive(w); got != 2 {
		t.Fatalf("live alien bullets = %d after the retry window, want the slot refilled to 2", got)
	}
	if w.AlienFireTimer < 0.5 {
		t.Fatalf("post-shot timer = %.3f, want a fresh full interval", w.AlienFireTimer)
	}
}

func TestAlienFire_CapHoldsOverLongRun(t *testing.T) {
	ts := NewTestSim(WithSeed(3))
	for i := 0; i < 1800; i++ {
		ts.Step(Intent{})
		if got := alienBulletsAlive(ts.World); got > maxAlienBullets {
			t.Fatalf("tick %d: %d live alien bullets, cap is %d", ts.CurrentTick(), got, maxAlienBullets)
		}
	}
}

func TestAlienFire_SameSeedSameCadence(t *testing.T) {
	a := NewTestSim(WithSeed(9))
	b := NewTestSim(WithSeed(9))
	a.RunTicks(600)
	b.RunTicks(600)

	sa := a.Events.Filter("fire", "alien_shot")
	sb := b.Events.Filter("fire", "alien_shot")
	if len(sa) == 0 {
		t.Fatal("no alien shots in 600 ticks")
	}
	if len(sa) != len(sb) {
		t.Fatalf("shot counts differ: %d vs %d", len(sa), len(sb))
	}
	for i := range sa {
		if sa[i].Tick != sb[i].Tick || sa[i].Value != sb[i].Value {
			t.Fatalf("shot %d differs: [T=%d] %q vs [T=%d] %q",
				i, sa[i].Tick, sa[i].Value, sb[i].Tick, sb[i].Value)
		}
	}
}

// --- Shot variants ---

func TestProjectileKindForRow_Bands(t *testing.T) {
	cases := []struct {
		row, rows int
		want      ProjectileKind
	}{
		{4, 5, ProjectileA},
		{3, 5, ProjectileA},
		{2, 5, ProjectileB},
		{1, 5, ProjectileB},
		{0, 5, ProjectileC},
		{2, 3, ProjectileA},
		{1, 3, ProjectileA},
		{0, 3, ProjectileC},
		{1, 2, ProjectileA},
		{0, 2, ProjectileA},
		{0, 1, ProjectileA},
		{0, 0, ProjectileNone},
	}
	for _, c := range cases {
		if got := projectileKindForRow(c.row, c.rows); got != c.want {
			t.Errorf("projectileKindForRow(%d,%d) = %v, want %v", c.row, c.rows, got, c.want)
		}
	}
}

func TestProjectileSpeed_PerKind(t *testing.T) {
	cases := []struct {
		kind ProjectileKind
		want float64
	}{
		{ProjectileA, 400},
		{ProjectileB, 350},
		{ProjectileC, 300},
		{ProjectileNone, 0},
	}
	for _, c := range cases {
		if got := projectileSpeed(c.kind); got != c.want {
			t.Errorf("projectileSpeed(%v) = %v, want %v", c.kind, got, c.want)
		}
	}
}

// --- Front line selection ---

func TestFrontLine_BottomMostPerColumn(t *testing.T) {
	w := NewWorld(800, 600, 1)

	shooters := frontLine(w.Aliens)
	if len(shooters) != 12 {
		t.Fatalf("front line has %d columns, want 12", len(shooters))
	}
	for i, s := range shooters {
		if s.Row != 4 {
			t.Fatalf("front line slot %d is row %d, want bottom row", i, s.Row)
		}
		if s.Col != i {
			t.Fatalf("front line not ordered by column: slot %d has col %d", i, s.Col)
		}
	}

	// Shooting through a dead column: the row above steps up.
	w.Aliens[4*12+3].Exploding = true // row 4, col 3
	shooters = frontLine(w.Aliens)
	for _, s := range shooters {
		if s.Col == 3 && s.Row != 3 {
			t.Fatalf("col 3 front line is row %d, want the row above the dead alien", s.Row)
		}
	}

	// An alien on personal cooldown is skipped the same way.
	w.Aliens[3*12+3].FireCooldown = 1.0 // row 3, col 3
	shooters = frontLine(w.Aliens)
	for _, s := range shooters {
		if s.Col == 3 && s.Row != 2 {
			t.Fatalf("col 3 front line is row %d with rows 3-4 unavailable, want 2", s.Row)
		}
	}
}

func TestRosterRows_TracksHighestRow(t *testing.T) {
	w := NewWorld(800, 600, 1)
	if got := rosterRows(w.Aliens); got != 5 {
		t.Fatalf("rosterRows = %d, want 5", got)
	}
	w.SpawnFormation(2, 4, 100, 100)
	if got := rosterRows(w.Aliens); got != 2 {
		t.Fatalf("rosterRows = %d after respawn, want 2", got)
	}
	if got := rosterRows(nil); got != 0 {
		t.Fatalf("rosterRows(nil) = %d, want 0", got)
	}
}
