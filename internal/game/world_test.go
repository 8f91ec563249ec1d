package game

import (
	"math"
	"testing"
)

// --- Scene construction ---

func TestNewWorld_SceneLayout(t *testing.T) {
	w := NewWorld(800, 600, 1)

	ship := w.Ship.Rect
	if ship.X != 380 || ship.Y != 550 || ship.W != 40 || ship.H != 20 {
		t.Fatalf("ship rect = %+v, want {380 550 40 20}", ship)
	}
	if w.Ship.Appearance != ArtShip || w.Ship.BaseAppearance != ArtShip {
		t.Fatal("ship should start with its base appearance")
	}

	if len(w.Aliens) != 60 || w.InitialAliens != 60 {
		t.Fatalf("roster = %d (initial %d), want 60", len(w.Aliens), w.InitialAliens)
	}
	first := w.Aliens[0]
	if first.Rect.X != 80 || first.Rect.Y != 60 {
		t.Fatalf("top-left alien at (%.0f,%.0f), want (80,60)", first.Rect.X, first.Rect.Y)
	}
	last := w.Aliens[len(w.Aliens)-1]
	if last.Row != 4 || last.Col != 11 {
		t.Fatalf("last roster entry at (%d,%d), want (4,11)", last.Row, last.Col)
	}
	// Column pitch is alien width plus gap; row pitch likewise.
	if got := w.Aliens[1].Rect.X - first.Rect.X; got != 56 {
		t.Fatalf("column pitch = %.0f, want 56", got)
	}
	if got := w.Aliens[12].Rect.Y - first.Rect.Y; got != 46 {
		t.Fatalf("row pitch = %.0f, want 46", got)
	}

	if len(w.Shelters) != 4 {
		t.Fatalf("shelters = %d, want 4", len(w.Shelters))
	}
	for i, s := range w.Shelters {
		wantX := 112 + float64(i)*172
		if math.Abs(s.Rect.X-wantX) > 1e-9 || s.Rect.Y != 450 {
			t.Errorf("shelter %d at (%.0f,%.0f), want (%.0f,450)", i, s.Rect.X, s.Rect.Y, wantX)
		}
		if !s.Alive || s.Damage != 0 {
			t.Errorf("shelter %d should start pristine", i)
		}
	}

	if w.Direction != 1 {
		t.Fatalf("formation should start sweeping right, direction = %v", w.Direction)
	}
	if w.Outcome != OutcomePlaying {
		t.Fatalf("outcome = %v, want playing", w.Outcome)
	}
}

func TestSpawnFormation_IDsNeverReused(t *testing.T) {
	w := NewWorld(800, 600, 1)

	seen := make(map[AlienID]bool)
	var maxID AlienID
	for _, a := range w.Aliens {
		if seen[a.ID] {
			t.Fatalf("duplicate alien ID %d in fresh roster", a.ID)
		}
		seen[a.ID] = true
		if a.ID > maxID {
			maxID = a.ID
		}
	}

	w.SpawnFormation(2, 3, 100, 100)
	for _, a := range w.Aliens {
		if a.ID <= maxID {
			t.Fatalf("respawned alien reused ID %d (previous max %d)", a.ID, maxID)
		}
		if seen[a.ID] {
			t.Fatalf("respawned alien reused ID %d", a.ID)
		}
	}
	if len(w.Aliens) != 6 {
		t.Fatalf("respawn roster = %d, want 6", len(w.Aliens))
	}
}

func TestInvaderArtForRow_Bands(t *testing.T) {
	cases := []struct {
		row, rows int
		want      Appearance
	}{
		{0, 5, ArtInvaderSmall},
		{1, 5, ArtInvaderMedium},
		{2, 5, ArtInvaderMedium},
		{3, 5, ArtInvaderLarge},
		{4, 5, ArtInvaderLarge},
		{0, 2, ArtInvaderSmall},
		{1, 2, ArtInvaderLarge},
	}
	for _, c := range cases {
		if got := invaderArtForRow(c.row, c.rows); got != c.want {
			t.Errorf("invaderArtForRow(%d,%d) = %v, want %v", c.row, c.rows, got, c.want)
		}
	}
}

// --- Roster queries ---

func TestAliveAliens_ExcludesExploding(t *testing.T) {
	w := NewWorld(800, 600, 1)
	w.killAlien(w.Aliens[0])

	alive := w.AliveAliens()
	if len(alive) != 59 {
		t.Fatalf("alive = %d, want 59", len(alive))
	}
	for _, a := range alive {
		if a.Exploding {
			t.Fatal("AliveAliens returned an exploding alien")
		}
	}

	if w.findAlive(w.Aliens[0].ID) != nil {
		t.Fatal("findAlive must not return an exploding alien")
	}
	if w.findAlive(0) != nil {
		t.Fatal("findAlive(0) must be nil")
	}
	if got := w.findAlive(w.Aliens[1].ID); got != w.Aliens[1] {
		t.Fatal("findAlive should return the live alien by ID")
	}
}

// --- Kill scoring ---

func TestKillAlien_ScoreTiers(t *testing.T) {
	// Tier depends on how much of the original roster is left after the
	// kill. The roster is trimmed down before each kill to set that up.
	cases := []struct {
		keep int // roster size before the kill
		want int
	}{
		{2, scoreTierQuarter},  // 1 of 60 left
		{16, scoreTierQuarter}, // 15 left, 15*4 = 60
		{17, scoreTierHalf},    // 16 left
		{31, scoreTierHalf},    // 30 left, 30*2 = 60
		{32, scoreTierMost},    // 31 left
		{46, scoreTierMost},    // 45 left, 45*4 = 180
		{47, scoreTierBase},    // 46 left
		{60, scoreTierBase},    // 59 left
	}
	for _, c := range cases {
		w := NewWorld(800, 600, 1)
		w.Aliens = w.Aliens[:c.keep]
		w.killAlien(w.Aliens[0])
		if w.Score != c.want {
			t.Errorf("kill with %d left scored %d, want %d", c.keep-1, w.Score, c.want)
		}
	}
}

func TestKillAlien_IdempotentOnExploding(t *testing.T) {
	w := NewWorld(800, 600, 1)
	a := w.Aliens[0]

	w.killAlien(a)
	score := w.Score
	timer := a.ExplodeTimer

	w.killAlien(a)
	if w.Score != score {
		t.Fatalf("double kill changed score %d -> %d", score, w.Score)
	}
	if a.ExplodeTimer != timer {
		t.Fatal("double kill reset the explosion timer")
	}
}

func TestKillAlien_ExplosionSubstate(t *testing.T) {
	w := NewWorld(800, 600, 1)
	a := w.Aliens[0]
	w.killAlien(a)

	if !a.Exploding || a.ExplodeTimer != alienExplosionTime {
		t.Fatalf("kill should start a %.2fs explosion, got exploding=%v timer=%v",
			alienExplosionTime, a.Exploding, a.ExplodeTimer)
	}
	if a.Appearance != ArtInvaderExplosion {
		t.Fatalf("appearance = %v, want explosion art", a.Appearance)
	}
	if len(w.Aliens) != 60 {
		t.Fatal("killing must not remove the alien from the roster immediately")
	}
}

// --- Impact effects ---

func TestSpawnImpact_Placement(t *testing.T) {
	w := NewWorld(800, 600, 1)
	w.spawnImpact(100, 200)

	if len(w.Effects) != 1 {
		t.Fatalf("effects = %d, want 1", len(w.Effects))
	}
	e := w.Effects[0]
	if e.Rect.X != 92 || e.Rect.Y != 192 || e.Rect.W != effectSize || e.Rect.H != effectSize {
		t.Fatalf("effect rect = %+v, want {92 192 24 24}", e.Rect)
	}
	if e.TTL != effectTTL || e.Appearance != ArtImpact {
		t.Fatalf("effect ttl=%v art=%v, want %v/%v", e.TTL, e.Appearance, effectTTL, ArtImpact)
	}
}
