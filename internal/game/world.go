package game

import "math/rand"

// --- Scene constants ---

const (
	viewWidth  = 800.0
	viewHeight = 600.0

	shipWidth     = 40.0
	shipHeight    = 20.0
	shipSpeed     = 300.0 // px/s
	shipStartLift = 50.0  // ship top sits this far above the bottom edge

	formationRows    = 5
	formationCols    = 12
	alienWidth       = 38.0
	alienHeight      = 28.0
	formationGapX    = 18.0
	formationGapY    = 18.0
	formationOriginX = 80.0
	formationOriginY = 60.0
	alienSpeed       = 10.0 // px/s horizontal sweep

	shelterCount     = 4
	shelterWidth     = 60.0
	shelterHeight    = 40.0
	shelterLift      = 150.0 // shelter top above the bottom edge
	shelterMaxDamage = 9
	// A shelter at max damage keeps soaking hits unless this is on.
	shelterDestroyOnMax = false

	alienExplosionTime = 0.20 // s an alien lingers while exploding
	shipExplosionTime  = 0.45 // s the ship is in its explosion substate

	effectTTL  = 0.12 // s impact flashes live
	effectSize = 24.0

	// An alien whose center-y crosses viewH-loseLineLift ends the game.
	loseLineLift = 30.0
)

// Score tiers: a kill is worth more the thinner the roster already is.
const (
	scoreTierQuarter = 10 // ≤ 25% of the roster left
	scoreTierHalf    = 5  // ≤ 50%
	scoreTierMost    = 3  // ≤ 75%
	scoreTierBase    = 1

	// Crossing this score arms the one-time spread volley.
	volleyScore = 50
)

// OmegaState is the beam weapon's global state machine. X is the locked
// beam-left coordinate, captured from the ship center when a charge starts so
// the beam does not follow the ship afterwards; Locked reports whether X is
// currently meaningful.
type OmegaState struct {
	Active        bool
	Timer         float64 // remaining burn while active
	ChargeTimer   float64 // > 0 means charging
	CooldownTimer float64
	X             float64
	Locked        bool
}

// Charging reports whether the beam is mid-charge.
func (o OmegaState) Charging() bool {
	return !o.Active && o.ChargeTimer > 0
}

// ShieldState is the ship shield's global state. The cooldown runs in
// parallel with the active timer: both start together on activation.
type ShieldState struct {
	Active        bool
	Timer         float64
	CooldownTimer float64
}

// Intent is one frame of decoded player commands. Movement and the fire
// fields are held inputs, rate-limited by the weapon cooldowns; the toggles
// and cursor commands are edge-triggered by whoever decodes them.
type Intent struct {
	MoveLeft  float64
	MoveRight float64

	Fire      bool
	FireOmega bool

	ShieldToggle bool

	TargetToggle  bool
	TargetLeft    bool
	TargetRight   bool
	TargetUp      bool
	TargetDown    bool
	LaunchMissile bool
}

// World is the single mutable aggregate the pipeline advances. It owns every
// entity collection by value; the only cross-references are weak alien IDs
// (missile locks, targeting cursor) validated against the roster each tick.
type World struct {
	ViewW, ViewH float64

	Ship     Ship
	Aliens   []*Alien
	Bullets  []*Bullet
	Missiles []*Missile
	Shelters []*Shelter
	Effects  []Effect

	Direction      float64 // formation sweep: +1 right, -1 left
	FireTimer      float64 // ship primary cooldown remaining
	AlienFireTimer float64 // global gate for the next alien shot

	Omega  OmegaState
	Shield ShieldState

	Targeting    bool    // missile targeting mode
	Cursor       AlienID // current target cursor; 0 = none
	MissileTimer float64 // launch cooldown remaining

	Score         int
	InitialAliens int
	VolleyArmed   bool // next primary fire is the three-way spread
	Outcome       Outcome

	volleySpent bool
	rng         *rand.Rand
	nextID      AlienID
}

// NewWorld builds the standard scene: centered ship, a 5×12 formation from
// the fixed origin, and four evenly spaced shelters. The seed drives all
// gameplay randomness (alien fire cadence and shooter choice).
func NewWorld(viewW, viewH float64, seed int64) *World {
	w := &World{
		ViewW:          viewW,
		ViewH:          viewH,
		Direction:      1,
		AlienFireTimer: alienFireInitialDelay,
		rng:            rand.New(rand.NewSource(seed)), // #nosec G404 -- gameplay randomness
	}

	w.Ship = Ship{
		Rect: Rect{
			X: viewW/2 - shipWidth/2,
			Y: viewH - shipStartLift,
			W: shipWidth,
			H: shipHeight,
		},
		Speed:          shipSpeed,
		Appearance:     ArtShip,
		BaseAppearance: ArtShip,
	}

	w.SpawnFormation(formationRows, formationCols, formationOriginX, formationOriginY)
	w.InitialAliens = len(w.Aliens)

	gap := (viewW - shelterCount*shelterWidth) / (shelterCount + 1)
	for i := 0; i < shelterCount; i++ {
		w.Shelters = append(w.Shelters, &Shelter{
			Rect: Rect{
				X: gap + float64(i)*(shelterWidth+gap),
				Y: viewH - shelterLift,
				W: shelterWidth,
				H: shelterHeight,
			},
			Alive: true,
		})
	}

	return w
}

// SpawnFormation replaces the roster with a rows×cols grid anchored at the
// given origin. Row 0 is the top row; appearance varies by row band.
func (w *World) SpawnFormation(rows, cols int, originX, originY float64) {
	w.Aliens = w.Aliens[:0]
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			w.nextID++
			w.Aliens = append(w.Aliens, &Alien{
				ID: w.nextID,
				Rect: Rect{
					X: originX + float64(c)*(alienWidth+formationGapX),
					Y: originY + float64(r)*(alienHeight+formationGapY),
					W: alienWidth,
					H: alienHeight,
				},
				Speed:      alienSpeed,
				Row:        r,
				Col:        c,
				Appearance: invaderArtForRow(r, rows),
			})
		}
	}
}

// invaderArtForRow mirrors the classic sprite bands: small on top, medium in
// the middle, large at the bottom.
func invaderArtForRow(row, rows int) Appearance {
	switch {
	case row == 0:
		return ArtInvaderSmall
	case row >= rows-2:
		return ArtInvaderLarge
	default:
		return ArtInvaderMedium
	}
}

// AliveAliens returns the non-exploding members of the roster in roster
// order. Exploding aliens are still in the collection but no longer part of
// the game: they cannot fire, be targeted, or be hit.
func (w *World) AliveAliens() []*Alien {
	out := make([]*Alien, 0, len(w.Aliens))
	for _, a := range w.Aliens {
		if !a.Exploding {
			out = append(out, a)
		}
	}
	return out
}

// aliveIndex builds this tick's ID → alien lookup over non-exploding aliens.
func (w *World) aliveIndex() map[AlienID]*Alien {
	idx := make(map[AlienID]*Alien, len(w.Aliens))
	for _, a := range w.Aliens {
		if !a.Exploding {
			idx[a.ID] = a
		}
	}
	return idx
}

// findAlive returns the non-exploding alien with the given ID, if any.
func (w *World) findAlive(id AlienID) *Alien {
	if id == 0 {
		return nil
	}
	for _, a := range w.Aliens {
		if a.ID == id && !a.Exploding {
			return a
		}
	}
	return nil
}

// killAlien flips one alien into its explosion substate and scores the kill.
// The tier depends on how much of the original roster is left afterwards, so
// late kills pay better.
func (w *World) killAlien(a *Alien) {
	if a.Exploding {
		return
	}
	a.Exploding = true
	a.ExplodeTimer = alienExplosionTime
	a.Appearance = ArtInvaderExplosion

	w.Score += killReward(w.InitialAliens, len(w.AliveAliens()))
}

// killReward maps a post-kill roster fraction to its score tier.
func killReward(initial, remaining int) int {
	switch {
	case initial <= 0:
		return scoreTierBase
	case remaining*4 <= initial:
		return scoreTierQuarter
	case remaining*2 <= initial:
		return scoreTierHalf
	case remaining*4 <= initial*3:
		return scoreTierMost
	default:
		return scoreTierBase
	}
}

// spawnImpact drops a short-lived impact flash centered near (x, y),
// typically a dying bullet's top-left corner.
func (w *World) spawnImpact(x, y float64) {
	w.Effects = append(w.Effects, Effect{
		Rect:       Rect{X: x - 8, Y: y - 8, W: effectSize, H: effectSize},
		TTL:        effectTTL,
		Appearance: ArtImpact,
	})
}

// uniform returns a random float in [min, max) from the world RNG.
func (w *World) uniform(min, max float64) float64 {
	return min + w.rng.Float64()*(max-min)
}
