package game

import "sort"

// --- Alien fire constants ---

const (
	alienFireInitialDelay = 1.0  // s before the very first shot
	alienFireIntervalMin  = 0.8  // s, next-shot interval lower bound
	alienFireIntervalMax  = 1.6  // s, upper bound
	alienFireRetry        = 0.15 // s retry when the bullet cap is hit
	maxAlienBullets       = 2    // live alien bullets at once

	shooterCooldownMin = 0.8 // s personal cooldown after firing
	shooterCooldownMax = 2.0

	alienBulletWidth  = 6.0
	alienBulletHeight = 14.0

	projectileASpeed = 400.0 // px/s, bottom rows
	projectileBSpeed = 350.0 // middle band
	projectileCSpeed = 300.0 // top row
)

// alienFireSystem decides when and from where the formation shoots. A global
// timer gates shots; candidates are the bottom-most ready alien per column
// (the "front line"), one of which is picked uniformly. The live-bullet cap
// turns a saturated attempt into a short retry rather than a full interval,
// so a freed slot is used promptly without re-checking every frame.
type alienFireSystem struct{}

func (alienFireSystem) Name() string { return "alien_fire" }
func (alienFireSystem) Order() int   { return orderAlienFire }

func (alienFireSystem) Step(w *World, in Intent, dt float64) {
	if len(w.Aliens) == 0 {
		return
	}

	for _, a := range w.Aliens {
		if a.FireCooldown > 0 {
			a.FireCooldown -= dt
			if a.FireCooldown < 0 {
				a.FireCooldown = 0
			}
		}
	}

	w.AlienFireTimer -= dt
	if w.AlienFireTimer > 0 {
		return
	}

	live := 0
	for _, b := range w.Bullets {
		if b.Alive && b.Owner == OwnerAlien {
			live++
		}
	}
	if live >= maxAlienBullets {
		w.AlienFireTimer = alienFireRetry
		return
	}

	w.AlienFireTimer = w.uniform(alienFireIntervalMin, alienFireIntervalMax)

	shooters := frontLine(w.Aliens)
	if len(shooters) == 0 {
		return
	}
	shooter := shooters[w.rng.Intn(len(shooters))]

	kind := projectileKindForRow(shooter.Row, rosterRows(w.Aliens))
	if kind == ProjectileNone {
		return
	}

	w.Bullets = append(w.Bullets, &Bullet{
		Rect: Rect{
			X: shooter.Rect.X + shooter.Rect.W/2 - alienBulletWidth/2,
			Y: shooter.Rect.Y + shooter.Rect.H,
			W: alienBulletWidth,
			H: alienBulletHeight,
		},
		Vel:   Vec2{Y: projectileSpeed(kind)},
		Owner: OwnerAlien,
		Kind:  kind,
		Alive: true,
	})
	shooter.FireCooldown = w.uniform(shooterCooldownMin, shooterCooldownMax)
}

// frontLine returns the bottom-most non-exploding, cooled-down alien of each
// column, ordered by column. The ordering matters: picking a shooter with the
// seeded RNG must not depend on map iteration order.
func frontLine(aliens []*Alien) []*Alien {
	best := make(map[int]*Alien)
	for _, a := range aliens {
		if a.Exploding || a.FireCooldown > 0 {
			continue
		}
		if cur, ok := best[a.Col]; !ok || a.Row > cur.Row {
			best[a.Col] = a
		}
	}
	if len(best) == 0 {
		return nil
	}

	cols := make([]int, 0, len(best))
	for c := range best {
		cols = append(cols, c)
	}
	sort.Ints(cols)

	out := make([]*Alien, 0, len(cols))
	for _, c := range cols {
		out = append(out, best[c])
	}
	return out
}

// rosterRows infers the row count from the highest row index still present.
func rosterRows(aliens []*Alien) int {
	rows := 0
	for _, a := range aliens {
		if a.Row+1 > rows {
			rows = a.Row + 1
		}
	}
	return rows
}

// projectileKindForRow maps a shooter's row to its shot variant: the bottom
// two rows fire fast A shots, the band above them fires B, the top row fires
// slow C, and anything unmatched falls back to B.
func projectileKindForRow(row, rows int) ProjectileKind {
	if rows <= 0 {
		return ProjectileNone
	}
	if row >= rows-2 {
		return ProjectileA
	}
	if rows >= 4 && (row == rows-4 || row == rows-3) {
		return ProjectileB
	}
	if row == 0 {
		return ProjectileC
	}
	return ProjectileB
}

func projectileSpeed(k ProjectileKind) float64 {
	switch k {
	case ProjectileA:
		return projectileASpeed
	case ProjectileB:
		return projectileBSpeed
	case ProjectileC:
		return projectileCSpeed
	default:
		return 0
	}
}
