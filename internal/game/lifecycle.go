package game

// explosionSystem advances explosion substates. Aliens whose explosion timer
// runs out leave the roster here, and this is the only place the roster
// shrinks. The exploding ship never leaves; it snaps back to its base
// appearance when the timer expires.
type explosionSystem struct{}

func (explosionSystem) Name() string { return "explosions" }
func (explosionSystem) Order() int   { return orderExplosions }

func (explosionSystem) Step(w *World, in Intent, dt float64) {
	kept := w.Aliens[:0]
	for _, a := range w.Aliens {
		if a.Exploding {
			a.ExplodeTimer -= dt
			if a.ExplodeTimer <= 0 {
				continue
			}
		}
		kept = append(kept, a)
	}
	w.Aliens = kept

	ship := &w.Ship
	if ship.Exploding {
		ship.ExplodeTimer -= dt
		if ship.ExplodeTimer <= 0 {
			ship.ExplodeTimer = 0
			ship.Exploding = false
			ship.Appearance = ship.BaseAppearance
		}
	}
}

// bulletCullSystem drops bullets that died in the collision block or left
// the viewport entirely. Runs after every collision pass so a bullet spent
// this frame is gone by frame end.
type bulletCullSystem struct{}

func (bulletCullSystem) Name() string { return "bullet_cull" }
func (bulletCullSystem) Order() int   { return orderCullBullets }

func (bulletCullSystem) Step(w *World, in Intent, dt float64) {
	if len(w.Bullets) == 0 {
		return
	}

	kept := w.Bullets[:0]
	for _, b := range w.Bullets {
		if !b.Alive || b.Rect.Outside(w.ViewW, w.ViewH) {
			continue
		}
		kept = append(kept, b)
	}
	w.Bullets = kept
}

// missileCullSystem is the missile counterpart of bulletCullSystem.
type missileCullSystem struct{}

func (missileCullSystem) Name() string { return "missile_cull" }
func (missileCullSystem) Order() int   { return orderCullMissile }

func (missileCullSystem) Step(w *World, in Intent, dt float64) {
	if len(w.Missiles) == 0 {
		return
	}

	kept := w.Missiles[:0]
	for _, m := range w.Missiles {
		if !m.Alive || m.Rect.Outside(w.ViewW, w.ViewH) {
			continue
		}
		kept = append(kept, m)
	}
	w.Missiles = kept
}

// effectSystem ages impact flashes and drops the expired ones.
type effectSystem struct{}

func (effectSystem) Name() string { return "effects" }
func (effectSystem) Order() int   { return orderEffects }

func (effectSystem) Step(w *World, in Intent, dt float64) {
	if len(w.Effects) == 0 {
		return
	}

	kept := w.Effects[:0]
	for i := range w.Effects {
		w.Effects[i].TTL -= dt
		if w.Effects[i].TTL > 0 {
			kept = append(kept, w.Effects[i])
		}
	}
	w.Effects = kept
}

// outcomeSystem closes the frame: it arms the one-time spread volley when
// the score crosses the threshold, then latches the terminal outcome. Once
// the outcome leaves OutcomePlaying it never changes again.
type outcomeSystem struct{}

func (outcomeSystem) Name() string { return "outcome" }
func (outcomeSystem) Order() int   { return orderOutcome }

func (outcomeSystem) Step(w *World, in Intent, dt float64) {
	if !w.volleySpent && w.Score > volleyScore {
		w.VolleyArmed = true
		w.volleySpent = true
	}

	if w.Outcome != OutcomePlaying {
		return
	}
	w.Outcome = determineOutcome(w)
}
