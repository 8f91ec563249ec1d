package game

// --- Primary weapon constants ---

const (
	shipFireCooldown = 0.20 // s between shots
	shipBulletWidth  = 4.0
	shipBulletHeight = 10.0
	shipBulletSpeed  = 520.0 // px/s straight up

	// Spread volley: the one-time triple shot. Flankers start offset to the
	// sides and drift outward while climbing at full speed.
	volleyOffsetX = 10.0
	volleyDriftX  = 120.0 // px/s horizontal
)

// shipControlSystem integrates the ship from movement intent and clamps it to
// the playfield. Clamping uses the post-move position, so a frame that would
// overshoot the edge lands exactly on it.
type shipControlSystem struct{}

func (shipControlSystem) Name() string { return "ship_control" }
func (shipControlSystem) Order() int   { return orderShipControl }

func (shipControlSystem) Step(w *World, in Intent, dt float64) {
	ship := &w.Ship

	ship.Vel.X = (in.MoveRight - in.MoveLeft) * ship.Speed
	ship.Vel.Y = 0

	ship.Rect.X += ship.Vel.X * dt

	if ship.Rect.X < 0 {
		ship.Rect.X = 0
	}
	if limit := w.ViewW - ship.Rect.W; ship.Rect.X > limit {
		ship.Rect.X = limit
	}
}

// bulletSpawnSystem fires the primary weapon. The cooldown ticks down every
// frame whether or not the player is firing; a shot only happens when the
// intent asks for one and the timer has run out.
type bulletSpawnSystem struct{}

func (bulletSpawnSystem) Name() string { return "bullet_spawn" }
func (bulletSpawnSystem) Order() int   { return orderBulletSpawn }

func (bulletSpawnSystem) Step(w *World, in Intent, dt float64) {
	if w.FireTimer > 0 {
		w.FireTimer -= dt
		if w.FireTimer < 0 {
			w.FireTimer = 0
		}
	}

	if !in.Fire || w.FireTimer > 0 {
		return
	}

	ship := w.Ship.Rect
	cx := ship.X + ship.W/2

	spawn := func(x, vx float64) {
		w.Bullets = append(w.Bullets, &Bullet{
			Rect: Rect{
				X: x - shipBulletWidth/2,
				Y: ship.Y - shipBulletHeight,
				W: shipBulletWidth,
				H: shipBulletHeight,
			},
			Vel:   Vec2{X: vx, Y: -shipBulletSpeed},
			Owner: OwnerShip,
			Alive: true,
		})
	}

	if w.VolleyArmed {
		spawn(cx, 0)
		spawn(cx-volleyOffsetX, -volleyDriftX)
		spawn(cx+volleyOffsetX, volleyDriftX)
		w.VolleyArmed = false
	} else {
		spawn(cx, 0)
	}

	w.FireTimer = shipFireCooldown
}
