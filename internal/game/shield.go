package game

// --- Shield constants ---

const (
	shieldDuration = 1.0  // s active per activation
	shieldCooldown = 2.0  // s, starts at activation, not expiry
	shieldScale    = 1.35 // shield rect is the ship rect scaled about its center
)

// shieldSystem runs the ship shield timers. Activation is a single pulse:
// the active timer and the cooldown start together, so back-to-back shields
// are separated by cooldown minus duration of downtime.
type shieldSystem struct{}

func (shieldSystem) Name() string { return "shield" }
func (shieldSystem) Order() int   { return orderShield }

func (shieldSystem) Step(w *World, in Intent, dt float64) {
	s := &w.Shield

	if s.CooldownTimer > 0 {
		s.CooldownTimer -= dt
		if s.CooldownTimer < 0 {
			s.CooldownTimer = 0
		}
	}

	if s.Active {
		s.Timer -= dt
		if s.Timer <= 0 {
			s.Timer = 0
			s.Active = false
		}
	}

	if in.ShieldToggle && !s.Active && s.CooldownTimer <= 0 {
		s.Active = true
		s.Timer = shieldDuration
		s.CooldownTimer = shieldCooldown
	}
}

// shieldRect is the shield's collision footprint around the current ship
// position. It tracks the ship; only the beam column is position-locked.
func shieldRect(w *World) Rect {
	return w.Ship.Rect.ScaledAbout(shieldScale)
}
