package game

import "fmt"

// simDt is the fixed timestep the harness advances by, matching the 60Hz
// display loop.
const simDt = 1.0 / 60.0

// reporterCollectEvery is how often the harness feeds the reporter (1s).
const reporterCollectEvery = 60

// TestSim is a headless simulation harness used by tests and the report
// tool. It drives the same pipeline as the windowed game but has no Ebiten
// dependency, and it derives a structured event log by diffing world state
// across ticks, so the simulation itself stays observation-free.
type TestSim struct {
	World    *World
	Pipeline *Pipeline
	Events   *EventLog
	Reporter *SimReporter
	Dt       float64

	tick int

	// staged by infra options, consumed when the world is built
	viewW, viewH float64
	seed         int64
	verbose      bool

	prev simDigest
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra simOptionKind = iota // viewport, seed, verbose — applied before the world exists
	simOptScene                      // formation, shelters, ship, score — applied to the built world
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithViewport sets the playfield dimensions.
func WithViewport(w, h float64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.viewW = w
		ts.viewH = h
	}}
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.seed = seed
	}}
}

// WithVerbose enables per-tick verbose logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.verbose = v
	}}
}

// WithFormation replaces the default roster with a rows×cols grid at the
// standard origin.
func WithFormation(rows, cols int) SimOption {
	return WithFormationAt(rows, cols, formationOriginX, formationOriginY)
}

// WithFormationAt replaces the default roster with a rows×cols grid anchored
// at the given origin.
func WithFormationAt(rows, cols int, originX, originY float64) SimOption {
	return SimOption{simOptScene, func(ts *TestSim) {
		ts.World.SpawnFormation(rows, cols, originX, originY)
		ts.World.InitialAliens = len(ts.World.Aliens)
	}}
}

// WithDirection sets the formation sweep direction (+1 right, -1 left).
func WithDirection(d float64) SimOption {
	return SimOption{simOptScene, func(ts *TestSim) {
		ts.World.Direction = d
	}}
}

// WithNoShelters removes the shelters, for tests that need a clear line of
// fire between ship and formation.
func WithNoShelters() SimOption {
	return SimOption{simOptScene, func(ts *TestSim) {
		ts.World.Shelters = nil
	}}
}

// WithShipX moves the ship's left edge to x.
func WithShipX(x float64) SimOption {
	return SimOption{simOptScene, func(ts *TestSim) {
		ts.World.Ship.Rect.X = x
	}}
}

// WithScore sets the starting score.
func WithScore(n int) SimOption {
	return SimOption{simOptScene, func(ts *TestSim) {
		ts.World.Score = n
	}}
}

// NewTestSim constructs a TestSim from the given options in two ordered
// passes: infrastructure first (viewport, seed, verbose), then scene edits
// against the freshly built world.
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		viewW: viewWidth,
		viewH: viewHeight,
		seed:  1,
		Dt:    simDt,
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}
	ts.World = NewWorld(ts.viewW, ts.viewH, ts.seed)
	ts.Pipeline = NewPipeline()
	ts.Events = NewEventLog(ts.verbose)
	ts.Reporter = NewSimReporter(reportWindowTicks, false)
	for _, o := range opts {
		if o.kind == simOptScene {
			o.fn(ts)
		}
	}
	ts.prev = digestWorld(ts.World)
	return ts
}

// CurrentTick returns the current simulation tick.
func (ts *TestSim) CurrentTick() int {
	return ts.tick
}

// AlienAt returns the roster alien at the given formation cell, or nil.
func (ts *TestSim) AlienAt(row, col int) *Alien {
	for _, a := range ts.World.Aliens {
		if a.Row == row && a.Col == col {
			return a
		}
	}
	return nil
}

// Step advances the simulation one tick under the given intent, then derives
// log entries from the state diff.
func (ts *TestSim) Step(in Intent) {
	ts.tick++
	ts.Pipeline.Step(ts.World, in, ts.Dt)
	ts.logChanges()
	if ts.tick%reporterCollectEvery == 0 {
		ts.Reporter.Collect(ts.tick, ts.World)
	}
}

// RunTicks advances the simulation n ticks with no player input.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		ts.Step(Intent{})
	}
}

// RunTicksHeld advances the simulation n ticks with the same intent held
// every tick.
func (ts *TestSim) RunTicksHeld(n int, in Intent) {
	for i := 0; i < n; i++ {
		ts.Step(in)
	}
}

// RunUntil advances the simulation up to maxTicks with no input, stopping
// early if predicate returns true. Returns the tick at which the predicate
// was satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		ts.Step(Intent{})
		if predicate(ts) {
			return ts.tick
		}
	}
	return -1
}

// --- State diffing ---

type alienDigest struct {
	Row, Col  int
	CX, CY    float64
	Exploding bool
}

type simDigest struct {
	aliens   map[AlienID]alienDigest // full roster, exploding included
	bullets  map[*Bullet]bool
	missiles map[*Missile]bool

	direction     float64
	shieldOn      bool
	omegaCharging bool
	omegaActive   bool
	shipExploding bool
	targeting     bool
	cursor        AlienID
	score         int
	outcome       Outcome

	shelterDamage []int
	shelterAlive  []bool
}

func digestWorld(w *World) simDigest {
	d := simDigest{
		aliens:        make(map[AlienID]alienDigest, len(w.Aliens)),
		bullets:       make(map[*Bullet]bool, len(w.Bullets)),
		missiles:      make(map[*Missile]bool, len(w.Missiles)),
		direction:     w.Direction,
		shieldOn:      w.Shield.Active,
		omegaCharging: w.Omega.Charging(),
		omegaActive:   w.Omega.Active,
		shipExploding: w.Ship.Exploding,
		targeting:     w.Targeting,
		cursor:        w.Cursor,
		score:         w.Score,
		outcome:       w.Outcome,
	}
	for _, a := range w.Aliens {
		c := a.Rect.Center()
		d.aliens[a.ID] = alienDigest{Row: a.Row, Col: a.Col, CX: c.X, CY: c.Y, Exploding: a.Exploding}
	}
	for _, b := range w.Bullets {
		d.bullets[b] = true
	}
	for _, m := range w.Missiles {
		d.missiles[m] = true
	}
	for _, s := range w.Shelters {
		d.shelterDamage = append(d.shelterDamage, s.Damage)
		d.shelterAlive = append(d.shelterAlive, s.Alive)
	}
	return d
}

func alienLabel(id AlienID) string {
	return fmt.Sprintf("A%d", id)
}

// logChanges compares this tick's digest against the previous one and emits
// one entry per observable transition. Bullets and missiles are tracked by
// identity because a bullet spawned and spent in the same tick never shows
// up in a count.
func (ts *TestSim) logChanges() {
	w := ts.World
	tick := ts.tick
	prev := ts.prev
	now := digestWorld(w)

	for _, b := range w.Bullets {
		if prev.bullets[b] {
			continue
		}
		if b.Owner == OwnerShip {
			ts.Events.Add(tick, "ship", "fire", "shot",
				fmt.Sprintf("x=%.0f vx=%+.0f", b.Rect.X, b.Vel.X), 0)
		} else {
			ts.Events.Add(tick, "--", "fire", "alien_shot",
				fmt.Sprintf("kind=%s x=%.0f", b.Kind, b.Rect.X), 0)
		}
	}
	for _, m := range w.Missiles {
		if !prev.missiles[m] {
			ts.Events.Add(tick, "ship", "missile", "launch",
				fmt.Sprintf("target=%s", alienLabel(m.Target)), float64(m.Target))
		}
	}

	// A previously healthy alien now exploding or gone is a kill this tick.
	// Attribution: a vanished missile locked on it means a missile kill; an
	// active beam over its column means a beam kill; otherwise a bullet.
	for id, pa := range prev.aliens {
		na, inRoster := now.aliens[id]
		if pa.Exploding || (inRoster && !na.Exploding) {
			if !inRoster {
				ts.Events.Add(tick, alienLabel(id), "roster", "removed", "", float64(id))
			}
			continue
		}
		key := "bullet"
		for m := range prev.missiles {
			if m.Target == id && !now.missiles[m] {
				key = "missile"
				break
			}
		}
		if key == "bullet" && now.omegaActive &&
			w.Omega.X < pa.CX+alienWidth/2 && w.Omega.X+omegaWidth > pa.CX-alienWidth/2 {
			key = "beam"
		}
		ts.Events.Add(tick, alienLabel(id), "kill", key,
			fmt.Sprintf("row=%d col=%d", pa.Row, pa.Col), float64(id))
	}

	if now.direction != prev.direction {
		ts.Events.Add(tick, "--", "formation", "bounce",
			fmt.Sprintf("%+.0f → %+.0f", prev.direction, now.direction), now.direction)
	}

	if now.shieldOn != prev.shieldOn {
		if now.shieldOn {
			ts.Events.Add(tick, "ship", "shield", "up", "", 0)
		} else {
			ts.Events.Add(tick, "ship", "shield", "down", "", 0)
		}
	}

	if now.omegaCharging && !prev.omegaCharging {
		ts.Events.Add(tick, "ship", "omega", "charge", fmt.Sprintf("x=%.0f", w.Omega.X), w.Omega.X)
	}
	if now.omegaActive && !prev.omegaActive {
		ts.Events.Add(tick, "ship", "omega", "fire", fmt.Sprintf("x=%.0f", w.Omega.X), w.Omega.X)
	}
	if prev.omegaActive && !now.omegaActive {
		ts.Events.Add(tick, "ship", "omega", "off", "", 0)
	}

	if now.shipExploding && !prev.shipExploding {
		ts.Events.Add(tick, "ship", "ship", "hit", "", 0)
	}
	if prev.shipExploding && !now.shipExploding {
		ts.Events.Add(tick, "ship", "ship", "restored", "", 0)
	}

	if now.targeting != prev.targeting {
		if now.targeting {
			ts.Events.Add(tick, "ship", "target", "on", fmt.Sprintf("cursor=%s", alienLabel(now.cursor)), float64(now.cursor))
		} else {
			ts.Events.Add(tick, "ship", "target", "off", "", 0)
		}
	} else if now.targeting && now.cursor != prev.cursor {
		ts.Events.Add(tick, "ship", "target", "cursor",
			fmt.Sprintf("%s → %s", alienLabel(prev.cursor), alienLabel(now.cursor)), float64(now.cursor))
	}

	for i := range now.shelterDamage {
		if i >= len(prev.shelterDamage) {
			break
		}
		label := fmt.Sprintf("S%d", i)
		if now.shelterDamage[i] != prev.shelterDamage[i] {
			ts.Events.Add(tick, label, "shelter", "damage",
				fmt.Sprintf("%d → %d", prev.shelterDamage[i], now.shelterDamage[i]),
				float64(now.shelterDamage[i]))
		}
		if prev.shelterAlive[i] && !now.shelterAlive[i] {
			ts.Events.Add(tick, label, "shelter", "destroyed", "", 0)
		}
	}

	if now.score != prev.score {
		ts.Events.Add(tick, "--", "score", "gain",
			fmt.Sprintf("+%d → %d", now.score-prev.score, now.score), float64(now.score))
	}

	if now.outcome != prev.outcome {
		ts.Events.Add(tick, "--", "outcome", "final", now.outcome.String(), float64(now.outcome))
	}

	ts.Events.AddVerbose(tick, "ship", "move", "position",
		fmt.Sprintf("(%.1f,%.1f)", w.Ship.Rect.X, w.Ship.Rect.Y), 0)
	ts.Events.AddVerbose(tick, "--", "roster", "alive",
		fmt.Sprintf("%d", len(w.AliveAliens())), float64(len(w.AliveAliens())))

	ts.prev = now
}

// --- Snapshots ---

// SimSnapshot captures a lightweight state summary.
type SimSnapshot struct {
	Tick     int
	ShipX    float64
	Score    int
	Outcome  Outcome
	Bullets  int
	Missiles int
	Aliens   []AlienSnapshot
}

// AlienSnapshot is a lightweight copy of one alien's state at a tick.
type AlienSnapshot struct {
	ID        AlienID
	Row, Col  int
	X, Y      float64
	Exploding bool
}

// Snapshot returns the current state of the world.
func (ts *TestSim) Snapshot() SimSnapshot {
	snap := SimSnapshot{
		Tick:     ts.tick,
		ShipX:    ts.World.Ship.Rect.X,
		Score:    ts.World.Score,
		Outcome:  ts.World.Outcome,
		Bullets:  len(ts.World.Bullets),
		Missiles: len(ts.World.Missiles),
	}
	for _, a := range ts.World.Aliens {
		snap.Aliens = append(snap.Aliens, AlienSnapshot{
			ID:        a.ID,
			Row:       a.Row,
			Col:       a.Col,
			X:         a.Rect.X,
			Y:         a.Rect.Y,
			Exploding: a.Exploding,
		})
	}
	return snap
}
