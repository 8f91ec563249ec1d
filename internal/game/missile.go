package game

import "math"

// --- Homing missile constants ---

const (
	missileWidth     = 14.0
	missileHeight    = 22.0
	missileKickSpeed = 250.0 // px/s initial upward kick, before homing takes over
	missileSpeed     = 520.0 // px/s while steering
	missileCooldown  = 1.5   // s between launches

	homingDeadzone = 0.0001 // squared px; closer than this, keep current velocity

	offAxisPenalty = 1000 // cursor search: off-row/off-column candidates rank last
)

// missileTargetSystem runs the targeting cursor. Targeting is a mode the
// player toggles in and out of; while it is on, the cursor holds the ID of
// one live alien and the directional keys walk it across the formation. The
// cursor is revalidated every tick because the alien under it can die at any
// time; a stale cursor snaps to the first live alien in roster order.
type missileTargetSystem struct{}

func (missileTargetSystem) Name() string { return "missile_target" }
func (missileTargetSystem) Order() int   { return orderMissileTarget }

func (missileTargetSystem) Step(w *World, in Intent, dt float64) {
	if w.MissileTimer > 0 {
		w.MissileTimer -= dt
		if w.MissileTimer < 0 {
			w.MissileTimer = 0
		}
	}

	alive := w.AliveAliens()
	if len(alive) == 0 {
		w.Targeting = false
		w.Cursor = 0
		return
	}

	if in.TargetToggle {
		w.Targeting = !w.Targeting
		if w.Targeting && w.findAlive(w.Cursor) == nil {
			w.Cursor = alive[0].ID
		}
		return
	}

	if !w.Targeting {
		return
	}

	cur := w.findAlive(w.Cursor)
	if cur == nil {
		cur = alive[0]
		w.Cursor = cur.ID
	}

	var next *Alien
	switch {
	case in.TargetLeft:
		next = nextTarget(alive, cur, 0, -1)
	case in.TargetRight:
		next = nextTarget(alive, cur, 0, +1)
	case in.TargetUp:
		next = nextTarget(alive, cur, -1, 0)
	case in.TargetDown:
		next = nextTarget(alive, cur, +1, 0)
	}
	if next != nil {
		w.Cursor = next.ID
	}
}

// nextTarget finds the best cursor move in one grid direction. Candidates on
// the wrong side are dropped; the rest score by Manhattan distance with a
// heavy penalty off the shared row or column, so the cursor prefers sliding
// along its own line and only jumps diagonally when the line is empty. Ties
// go to the earliest alien in roster order.
func nextTarget(alive []*Alien, cur *Alien, dRow, dCol int) *Alien {
	var best *Alien
	bestScore := 0

	for _, a := range alive {
		if a == cur {
			continue
		}

		dr := a.Row - cur.Row
		dc := a.Col - cur.Col

		if dRow != 0 && (dr == 0 || (dr > 0) != (dRow > 0)) {
			continue
		}
		if dCol != 0 && (dc == 0 || (dc > 0) != (dCol > 0)) {
			continue
		}

		onAxis := (dCol != 0 && dr == 0) || (dRow != 0 && dc == 0)
		score := intAbs(dr) + intAbs(dc)
		if !onAxis {
			score += offAxisPenalty
		}

		if best == nil || score < bestScore {
			best = a
			bestScore = score
		}
	}
	return best
}

func intAbs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// missileSpawnSystem launches a missile at the cursor's alien. A launch
// needs targeting mode on, the cooldown expired, and a live target under
// the cursor; it then stores the target's ID on the missile and drops out
// of targeting mode.
type missileSpawnSystem struct{}

func (missileSpawnSystem) Name() string { return "missile_spawn" }
func (missileSpawnSystem) Order() int   { return orderMissileSpawn }

func (missileSpawnSystem) Step(w *World, in Intent, dt float64) {
	if !in.LaunchMissile || !w.Targeting || w.MissileTimer > 0 {
		return
	}

	target := w.findAlive(w.Cursor)
	if target == nil {
		return
	}

	ship := w.Ship.Rect
	w.Missiles = append(w.Missiles, &Missile{
		Rect: Rect{
			X: ship.X + ship.W/2 - missileWidth/2,
			Y: ship.Y - missileHeight,
			W: missileWidth,
			H: missileHeight,
		},
		Vel:    Vec2{Y: -missileKickSpeed},
		Speed:  missileSpeed,
		Target: target.ID,
		Alive:  true,
	})

	w.MissileTimer = missileCooldown
	w.Targeting = false
}

// missileHomingSystem steers each live missile toward its stored target and
// integrates its position. A missile whose target is already gone keeps its
// last velocity and flies on; the target-collision pass decides its fate.
type missileHomingSystem struct{}

func (missileHomingSystem) Name() string { return "missile_homing" }
func (missileHomingSystem) Order() int   { return orderMissileHoming }

func (missileHomingSystem) Step(w *World, in Intent, dt float64) {
	if len(w.Missiles) == 0 {
		return
	}

	alive := w.aliveIndex()
	for _, m := range w.Missiles {
		if !m.Alive {
			continue
		}

		if t, ok := alive[m.Target]; ok {
			tc := t.Rect.Center()
			mc := m.Rect.Center()
			dx := tc.X - mc.X
			dy := tc.Y - mc.Y

			if dist2 := dx*dx + dy*dy; dist2 > homingDeadzone {
				dist := math.Sqrt(dist2)
				m.Vel = Vec2{X: dx / dist * m.Speed, Y: dy / dist * m.Speed}
			}
		}

		m.Rect.X += m.Vel.X * dt
		m.Rect.Y += m.Vel.Y * dt
	}
}
