package game

// AlienID is a never-reused identity handle for one alien. IDs are assigned
// from a monotonic world counter at spawn; looking a stale ID up against the
// current roster simply fails, which is how weak references (missile locks,
// the targeting cursor) detect that their alien is gone.
type AlienID uint64

// Appearance is an opaque sprite handle. The simulation stores and copies
// these but never interprets them; the draw layer owns the mapping to images.
type Appearance int

const (
	ArtNone Appearance = iota
	ArtShip
	ArtShipExplosion
	ArtInvaderSmall
	ArtInvaderMedium
	ArtInvaderLarge
	ArtInvaderExplosion
	ArtImpact
)

// BulletOwner tags who fired a bullet; collision passes use it to decide
// which rules apply.
type BulletOwner int

const (
	OwnerShip BulletOwner = iota
	OwnerAlien
)

func (o BulletOwner) String() string {
	switch o {
	case OwnerShip:
		return "ship"
	case OwnerAlien:
		return "alien"
	default:
		return "unknown"
	}
}

// ProjectileKind selects the speed/visual variant of an alien shot. Ship
// bullets carry ProjectileNone.
type ProjectileKind int

const (
	ProjectileNone ProjectileKind = iota
	ProjectileA                   // fast, fired by the bottom rows
	ProjectileB                   // medium, fired by the middle band
	ProjectileC                   // slow, fired by the top row
)

func (k ProjectileKind) String() string {
	switch k {
	case ProjectileA:
		return "A"
	case ProjectileB:
		return "B"
	case ProjectileC:
		return "C"
	case ProjectileNone:
		return "none"
	default:
		return "unknown"
	}
}

// Ship is the player vessel. Exactly one per world. Explosion is a temporary
// substate: the ship keeps existing, ignores hits, and comes back with its
// base appearance when the timer lapses.
type Ship struct {
	Rect  Rect
	Vel   Vec2
	Speed float64

	Exploding    bool
	ExplodeTimer float64

	Appearance     Appearance // what the draw layer should show right now
	BaseAppearance Appearance // restored when an explosion ends
}

// Alien is one formation member. Row and column are fixed at spawn (row 0 is
// the top row) and drive fire-pattern selection and target cycling.
type Alien struct {
	ID       AlienID
	Rect     Rect
	Vel      Vec2
	Speed    float64
	Row, Col int

	Exploding    bool
	ExplodeTimer float64
	FireCooldown float64

	Appearance Appearance
}

// Bullet is a straight-flying projectile from either side.
type Bullet struct {
	Rect  Rect
	Vel   Vec2
	Owner BulletOwner
	Kind  ProjectileKind
	Alive bool
}

// Missile is a player-launched homing projectile. Target is a weak reference:
// validated against the alive roster every tick, never dereferenced directly.
type Missile struct {
	Rect   Rect
	Vel    Vec2
	Speed  float64
	Target AlienID
	Alive  bool
}

// Shelter is a static defensive block. Damage only ever increases; with the
// destroy-on-max policy off (the default) a fully damaged shelter keeps
// absorbing shots at the cap.
type Shelter struct {
	Rect   Rect
	Damage int
	Alive  bool
}

// Effect is a transient visual marker (impact flashes). It carries no
// gameplay meaning and expires on its own.
type Effect struct {
	Rect       Rect
	TTL        float64
	Appearance Appearance
}
