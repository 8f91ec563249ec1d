package game

// The collision block: ordered pairwise passes over live entities. Every
// destructive hit only flips an alive flag; bodies stay in their collections
// until the culling stage so a bullet spent in an earlier pass can never be
// spent again in a later one. Each pass checks alive flags on both sides
// before acting.

// bulletMoveSystem integrates all live bullets.
type bulletMoveSystem struct{}

func (bulletMoveSystem) Name() string { return "bullet_move" }
func (bulletMoveSystem) Order() int   { return orderBulletMove }

func (bulletMoveSystem) Step(w *World, in Intent, dt float64) {
	for _, b := range w.Bullets {
		if !b.Alive {
			continue
		}
		b.Rect.X += b.Vel.X * dt
		b.Rect.Y += b.Vel.Y * dt
	}
}

// bulletMissileHitSystem lets ship bullets shoot down friendly missiles.
// Mostly a hazard of spray-firing while a missile is in flight.
type bulletMissileHitSystem struct{}

func (bulletMissileHitSystem) Name() string { return "hit_bullet_missile" }
func (bulletMissileHitSystem) Order() int   { return orderHitBulletMissile }

func (bulletMissileHitSystem) Step(w *World, in Intent, dt float64) {
	if len(w.Bullets) == 0 || len(w.Missiles) == 0 {
		return
	}

	for _, b := range w.Bullets {
		if !b.Alive || b.Owner != OwnerShip {
			continue
		}
		for _, m := range w.Missiles {
			if !m.Alive {
				continue
			}
			if b.Rect.Intersects(m.Rect) {
				b.Alive = false
				m.Alive = false
				w.spawnImpact(b.Rect.X, b.Rect.Y)
				break
			}
		}
	}
}

// bulletShelterHitSystem soaks alien bullets into shelters. Ship bullets
// pass straight through; only enemy fire chews shelters down.
type bulletShelterHitSystem struct{}

func (bulletShelterHitSystem) Name() string { return "hit_bullet_shelter" }
func (bulletShelterHitSystem) Order() int   { return orderHitBulletShelter }

func (bulletShelterHitSystem) Step(w *World, in Intent, dt float64) {
	if len(w.Bullets) == 0 || len(w.Shelters) == 0 {
		return
	}

	for _, b := range w.Bullets {
		if !b.Alive || b.Owner != OwnerAlien {
			continue
		}
		for _, s := range w.Shelters {
			if !s.Alive {
				continue
			}
			if b.Rect.Intersects(s.Rect) {
				b.Alive = false
				w.spawnImpact(b.Rect.X, b.Rect.Y)

				if s.Damage < shelterMaxDamage {
					s.Damage++
				}
				if shelterDestroyOnMax && s.Damage >= shelterMaxDamage {
					s.Alive = false
				}
				break
			}
		}
	}
}

// bulletShieldHitSystem burns up alien bullets on an active shield. No
// per-bullet break: the shield eats everything that touches it this tick.
type bulletShieldHitSystem struct{}

func (bulletShieldHitSystem) Name() string { return "hit_bullet_shield" }
func (bulletShieldHitSystem) Order() int   { return orderHitBulletShield }

func (bulletShieldHitSystem) Step(w *World, in Intent, dt float64) {
	if !w.Shield.Active || len(w.Bullets) == 0 {
		return
	}

	shield := shieldRect(w)
	for _, b := range w.Bullets {
		if !b.Alive || b.Owner != OwnerAlien {
			continue
		}
		if shield.Intersects(b.Rect) {
			b.Alive = false
			w.spawnImpact(b.Rect.X, b.Rect.Y)
		}
	}
}

// bulletShipHitSystem puts the ship into its explosion substate when an
// alien bullet connects. The shield pass runs first, so with the shield up
// nothing reaches this far; an already-exploding ship is untouchable.
type bulletShipHitSystem struct{}

func (bulletShipHitSystem) Name() string { return "hit_bullet_ship" }
func (bulletShipHitSystem) Order() int   { return orderHitBulletShip }

func (bulletShipHitSystem) Step(w *World, in Intent, dt float64) {
	ship := &w.Ship
	if ship.Exploding || w.Shield.Active || len(w.Bullets) == 0 {
		return
	}

	for _, b := range w.Bullets {
		if !b.Alive || b.Owner != OwnerAlien {
			continue
		}
		if ship.Rect.Intersects(b.Rect) {
			b.Alive = false

			ship.Exploding = true
			ship.ExplodeTimer = shipExplosionTime
			ship.BaseAppearance = ship.Appearance
			ship.Appearance = ArtShipExplosion
			break
		}
	}
}

// bulletBulletHitSystem resolves head-on bullet trades: one ship bullet and
// one alien bullet destroy each other.
type bulletBulletHitSystem struct{}

func (bulletBulletHitSystem) Name() string { return "hit_bullet_bullet" }
func (bulletBulletHitSystem) Order() int   { return orderHitBulletBullet }

func (bulletBulletHitSystem) Step(w *World, in Intent, dt float64) {
	if len(w.Bullets) == 0 {
		return
	}

	var ours, theirs []*Bullet
	for _, b := range w.Bullets {
		if !b.Alive {
			continue
		}
		if b.Owner == OwnerShip {
			ours = append(ours, b)
		} else {
			theirs = append(theirs, b)
		}
	}
	if len(ours) == 0 || len(theirs) == 0 {
		return
	}

	for _, sb := range ours {
		if !sb.Alive {
			continue
		}
		for _, ab := range theirs {
			if !ab.Alive {
				continue
			}
			if sb.Rect.Intersects(ab.Rect) {
				sb.Alive = false
				ab.Alive = false
				w.spawnImpact(sb.Rect.X, sb.Rect.Y)
				break
			}
		}
	}
}

// missileTargetHitSystem settles each missile against its own stored target
// and nothing else. A missile whose target died some other way fizzles out
// quietly; one that reaches a live target takes it with it.
type missileTargetHitSystem struct{}

func (missileTargetHitSystem) Name() string { return "hit_missile_target" }
func (missileTargetHitSystem) Order() int   { return orderHitMissileTarget }

func (missileTargetHitSystem) Step(w *World, in Intent, dt float64) {
	if len(w.Missiles) == 0 || len(w.Aliens) == 0 {
		return
	}

	alive := w.aliveIndex()
	for _, m := range w.Missiles {
		if !m.Alive || m.Target == 0 {
			continue
		}

		target, ok := alive[m.Target]
		if !ok {
			m.Alive = false
			continue
		}

		if m.Rect.Intersects(target.Rect) {
			m.Alive = false
			w.killAlien(target)
		}
	}
}

// bulletAlienHitSystem is the bread and butter: ship bullets kill aliens.
type bulletAlienHitSystem struct{}

func (bulletAlienHitSystem) Name() string { return "hit_bullet_alien" }
func (bulletAlienHitSystem) Order() int   { return orderHitBulletAlien }

func (bulletAlienHitSystem) Step(w *World, in Intent, dt float64) {
	if len(w.Bullets) == 0 || len(w.Aliens) == 0 {
		return
	}

	for _, b := range w.Bullets {
		if !b.Alive || b.Owner != OwnerShip {
			continue
		}
		for _, a := range w.Aliens {
			if a.Exploding {
				continue
			}
			if b.Rect.Intersects(a.Rect) {
				b.Alive = false
				w.killAlien(a)
				break
			}
		}
	}
}
