package game

import (
	"math"
	"math/rand"
)

// Autopilot thresholds.
const (
	botAimDeadband    = 4.0  // px; stop steering inside this
	botFireWindow     = 14.0 // px; fire when aim error is inside this
	botThreatSpanX    = 46.0 // px; alien bullets this close in x count as threats
	botShieldTime     = 0.30 // s to impact that makes the shield worth it
	botEvadeTime      = 0.90 // s to impact that starts a dodge
	botOmegaMinRoster = 8    // don't spend the beam on scraps
	botCursorMovesMax = 3    // random cursor steps before a launch
)

// Autopilot produces one Intent per tick from world state, standing in for a
// player during unattended runs. It works sense-then-act: read threats and
// an aim point, dodge what is about to hit, otherwise line up on the nearest
// column and keep the trigger down, spending shield, beam, and missiles as
// they come off cooldown.
type Autopilot struct {
	rng         *rand.Rand
	cursorMoves int // remaining cursor steps before launching
}

// NewAutopilot creates a deterministic drive policy for the given seed.
func NewAutopilot(seed int64) *Autopilot {
	return &Autopilot{rng: rand.New(rand.NewSource(seed))} // #nosec G404 -- drive policy
}

// Intent computes this tick's commands.
func (b *Autopilot) Intent(w *World) Intent {
	var in Intent
	if w.Outcome != OutcomePlaying {
		return in
	}

	shipC := w.Ship.Rect.Center()
	threat, impact := b.nearestThreat(w, shipC)
	aimX, hasAim := b.aimX(w, shipC)

	// Movement: dodging beats aiming.
	if threat != nil && impact < botEvadeTime {
		if threat.Rect.Center().X >= shipC.X {
			in.MoveLeft = 1
		} else {
			in.MoveRight = 1
		}
	} else if hasAim {
		switch {
		case aimX < shipC.X-botAimDeadband:
			in.MoveLeft = 1
		case aimX > shipC.X+botAimDeadband:
			in.MoveRight = 1
		}
	}

	if hasAim && math.Abs(aimX-shipC.X) < botFireWindow {
		in.Fire = true
	}

	// Shield only for shots that are about to land.
	if threat != nil && impact < botShieldTime &&
		!w.Shield.Active && w.Shield.CooldownTimer <= 0 {
		in.ShieldToggle = true
	}

	// The beam wants a thick formation: fire it when ready and some alien
	// is already near our column, since the beam locks where we stand.
	if !w.Omega.Active && !w.Omega.Charging() && w.Omega.CooldownTimer <= 0 &&
		len(w.AliveAliens()) >= botOmegaMinRoster && hasAim &&
		math.Abs(aimX-shipC.X) < omegaWidth/2 {
		in.FireOmega = true
	}

	b.driveMissiles(w, &in)
	return in
}

// driveMissiles runs the launch cycle: enter targeting when a missile is
// ready, wander the cursor a few random steps, then fire.
func (b *Autopilot) driveMissiles(w *World, in *Intent) {
	if !w.Targeting {
		if w.MissileTimer <= 0 && len(w.AliveAliens()) > 0 {
			in.TargetToggle = true
			b.cursorMoves = b.rng.Intn(botCursorMovesMax + 1)
		}
		return
	}

	if b.cursorMoves > 0 {
		b.cursorMoves--
		switch b.rng.Intn(4) {
		case 0:
			in.TargetLeft = true
		case 1:
			in.TargetRight = true
		case 2:
			in.TargetUp = true
		default:
			in.TargetDown = true
		}
		return
	}

	in.LaunchMissile = true
}

// nearestThreat returns the alien bullet on a collision course with the
// ship's column that will arrive soonest, plus its time to impact.
func (b *Autopilot) nearestThreat(w *World, shipC Vec2) (*Bullet, float64) {
	var best *Bullet
	bestTime := math.MaxFloat64

	shipTop := w.Ship.Rect.Y
	for _, bl := range w.Bullets {
		if !bl.Alive || bl.Owner != OwnerAlien || bl.Vel.Y <= 0 {
			continue
		}
		c := bl.Rect.Center()
		if math.Abs(c.X-shipC.X) > botThreatSpanX {
			continue
		}
		if c.Y > shipTop {
			continue
		}
		t := (shipTop - c.Y) / bl.Vel.Y
		if t < bestTime {
			best = bl
			bestTime = t
		}
	}
	return best, bestTime
}

// aimX picks the column to line up on: the lowest alien in the column whose
// x is currently closest to the ship. Low rows die first, which keeps the
// formation's reach in check.
func (b *Autopilot) aimX(w *World, shipC Vec2) (float64, bool) {
	var best *Alien
	bestScore := math.MaxFloat64

	for _, a := range w.Aliens {
		if a.Exploding {
			continue
		}
		c := a.Rect.Center()
		score := math.Abs(c.X-shipC.X) - float64(a.Row)*12
		if score < bestScore {
			best = a
			bestScore = score
		}
	}
	if best == nil {
		return 0, false
	}
	return best.Rect.Center().X, true
}
