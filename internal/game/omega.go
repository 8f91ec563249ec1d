package game

// --- Omega beam constants ---

const (
	omegaChargeTime = 0.8 // s from trigger to beam-on
	omegaFireTime   = 1.2 // s the beam burns
	omegaCooldown   = 2.5 // s after the beam shuts off
	omegaWidth      = 36.0
)

// omegaSystem runs the beam weapon state machine: idle, charging, active,
// cooling down. The beam column is locked from the ship's center the moment
// the charge starts and stays put for the whole burn, so moving the ship
// during a charge is how the player aims ahead of it.
type omegaSystem struct{}

func (omegaSystem) Name() string { return "omega" }
func (omegaSystem) Order() int   { return orderOmega }

func (omegaSystem) Step(w *World, in Intent, dt float64) {
	o := &w.Omega

	if o.CooldownTimer > 0 {
		o.CooldownTimer -= dt
		if o.CooldownTimer < 0 {
			o.CooldownTimer = 0
		}
	}

	if o.Active {
		o.Timer -= dt
		if o.Timer <= 0 {
			o.Active = false
			o.Locked = false
			o.CooldownTimer = omegaCooldown
		}
		return
	}

	if o.ChargeTimer > 0 {
		o.ChargeTimer -= dt
		if o.ChargeTimer <= 0 {
			o.Active = true
			o.Timer = omegaFireTime
		}
		return
	}

	if !in.FireOmega || o.CooldownTimer > 0 {
		return
	}

	ship := w.Ship.Rect
	o.X = ship.X + ship.W/2 - omegaWidth/2
	o.Locked = true
	o.ChargeTimer = omegaChargeTime
}

// omegaDamageSystem kills every alien the active beam touches. The beam is a
// full-height strip from the top of the playfield down to the ship's top
// edge at the locked column.
type omegaDamageSystem struct{}

func (omegaDamageSystem) Name() string { return "omega_damage" }
func (omegaDamageSystem) Order() int   { return orderHitOmegaAlien }

func (omegaDamageSystem) Step(w *World, in Intent, dt float64) {
	o := w.Omega
	if !o.Active || !o.Locked || len(w.Aliens) == 0 {
		return
	}

	beam := Rect{X: o.X, Y: 0, W: omegaWidth, H: w.Ship.Rect.Y}
	if beam.H <= 0 {
		return
	}

	for _, a := range w.Aliens {
		if a.Exploding {
			continue
		}
		if beam.Intersects(a.Rect) {
			w.killAlien(a)
		}
	}
}
