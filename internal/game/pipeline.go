package game

import "sort"

// System is one update stage of the simulation. Step mutates the world in
// place; systems hold no state of their own between frames.
type System interface {
	Name() string
	Order() int
	Step(w *World, in Intent, dt float64)
}

// Execution orders. The numbering is sparse on purpose: control first, then
// spawning, then movement, then the collision block, then lifecycle. Gaps
// leave room to slot a stage in without renumbering everything. Relative
// order is load-bearing; see the collision and culling stages in particular.
const (
	orderShipControl   = 20
	orderMissileTarget = 21
	orderShield        = 22
	orderBulletSpawn   = 25
	orderMissileSpawn  = 26
	orderFormation     = 30
	orderAlienFire     = 32
	orderOmega         = 33
	orderBulletMove    = 35
	orderMissileHoming = 40

	orderHitBulletMissile = 41
	orderHitBulletShelter = 42
	orderHitBulletShield  = 43
	orderHitOmegaAlien    = 44
	orderHitBulletShip    = 45
	orderHitBulletBullet  = 46
	orderHitMissileTarget = 47
	orderHitBulletAlien   = 48

	// Culling runs after the collision block so anything marked dead in
	// this frame's passes is gone by frame end.
	orderExplosions  = 50
	orderCullBullets = 52
	orderCullMissile = 54
	orderEffects     = 70
	orderOutcome     = 80
)

// Pipeline is the fixed-order driver: a stable sort by Order at construction,
// then one synchronous pass per frame. The world is exclusively owned by the
// pipeline for the duration of Step.
type Pipeline struct {
	systems []System
}

// NewPipeline assembles the full simulation pipeline.
func NewPipeline() *Pipeline {
	p := &Pipeline{
		systems: []System{
			shipControlSystem{},
			missileTargetSystem{},
			shieldSystem{},
			bulletSpawnSystem{},
			missileSpawnSystem{},
			formationSystem{},
			alienFireSystem{},
			omegaSystem{},
			bulletMoveSystem{},
			missileHomingSystem{},
			bulletMissileHitSystem{},
			bulletShelterHitSystem{},
			bulletShieldHitSystem{},
			omegaDamageSystem{},
			bulletShipHitSystem{},
			bulletBulletHitSystem{},
			missileTargetHitSystem{},
			bulletAlienHitSystem{},
			explosionSystem{},
			bulletCullSystem{},
			missileCullSystem{},
			effectSystem{},
			outcomeSystem{},
		},
	}
	sort.SliceStable(p.systems, func(i, j int) bool {
		return p.systems[i].Order() < p.systems[j].Order()
	})
	return p
}

// Step advances the world by one frame.
func (p *Pipeline) Step(w *World, in Intent, dt float64) {
	for _, s := range p.systems {
		s.Step(w, in, dt)
	}
}

// Systems returns the stages in execution order.
func (p *Pipeline) Systems() []System {
	return p.systems
}
