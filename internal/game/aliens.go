package game

// formationDropStep is how far the whole block descends on a wall bounce.
const formationDropStep = 18.0

// formationSystem moves the alien block as one rigid unit. Movement is
// look-ahead/commit: every alien's next x is predicted first, and if any one
// of them would cross an edge the whole formation reverses and drops instead
// of moving sideways that tick. The decision is formation-wide so the block
// never deforms at the walls.
type formationSystem struct{}

func (formationSystem) Name() string { return "formation" }
func (formationSystem) Order() int   { return orderFormation }

func (formationSystem) Step(w *World, in Intent, dt float64) {
	if len(w.Aliens) == 0 {
		return
	}

	for _, a := range w.Aliens {
		a.Vel.X = w.Direction * a.Speed
		a.Vel.Y = 0
	}

	hitWall := false
	for _, a := range w.Aliens {
		nextX := a.Rect.X + a.Vel.X*dt
		if nextX <= 0 || nextX+a.Rect.W >= w.ViewW {
			hitWall = true
			break
		}
	}

	if hitWall {
		w.Direction = -w.Direction
		for _, a := range w.Aliens {
			a.Rect.Y += formationDropStep
		}
		return
	}

	for _, a := range w.Aliens {
		a.Rect.X += a.Vel.X * dt
	}
}
