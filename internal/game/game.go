package game

import (
	"time"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
)

// Game is the interactive ebiten shell around the simulation. It owns one
// World and advances it at a fixed 60 Hz step; rendering speed and sim speed
// are decoupled through the tick accumulator so pause and fast-forward never
// change per-tick physics.
type Game struct {
	world    *World
	pipeline *Pipeline
	seed     int64
	tick     int

	// Edge-triggered commands captured by handleInput. They accumulate in
	// pending until a sim tick actually runs, so a press made during pause
	// or on a fractional-speed frame still reaches exactly one tick.
	pending  Intent
	prevKeys map[ebiten.Key]bool
	showHUD  bool

	// Simulation speed control.
	simSpeed  float64 // multiplier: 0=paused, 0.5, 1, 2, 4
	tickAccum float64 // fractional tick accumulator for sub-1x speeds

	// Per-tick world snapshots feeding the F2 debug report.
	snaps []WorldDebugSnapshot

	// Analytics reporter, sampled once a second of sim time.
	reporter *SimReporter

	atlas *spriteAtlas
	// Offscreen buffer for HUD text, rendered at 1x then blitted at hudScale.
	hudBuf *ebiten.Image

	// Click-to-inspect entity panel.
	inspector Inspector
	inspBuf   *ebiten.Image
	prevMouse bool

	// Transient HUD notice after a clipboard copy attempt.
	copyNotice      string
	copyNoticeTimer float64
}

func New() *Game {
	g := &Game{
		seed:     time.Now().UnixNano(),
		pipeline: NewPipeline(),
		prevKeys: make(map[ebiten.Key]bool),
		showHUD:  true,
		simSpeed: 1.0,
		reporter: NewSimReporter(reportWindowTicks, false),
		atlas:    newSpriteAtlas(),
		hudBuf:   ebiten.NewImage(viewWidth/hudScale, viewHeight/hudScale),
		inspBuf:  ebiten.NewImage(inspBufW, inspBufH),
	}
	g.world = NewWorld(viewWidth, viewHeight, g.seed)
	return g
}

func (g *Game) Update() error {
	// Handle input every frame regardless of sim speed.
	g.handleInput()

	if g.copyNoticeTimer > 0 {
		g.copyNoticeTimer -= 1.0 / 60.0
	}

	if g.simSpeed <= 0 {
		return nil
	}

	// For speeds > 1 run multiple sim ticks per frame.
	// For speeds < 1 accumulate fractions.
	g.tickAccum += g.simSpeed
	for g.tickAccum >= 1.0 {
		g.tickAccum -= 1.0
		in := g.heldIntent()
		mergeEdges(&in, g.pending)
		g.pending = Intent{}
		g.simTick(in)
	}
	return nil
}

// simTick runs one fixed-step simulation tick.
func (g *Game) simTick(in Intent) {
	g.tick++
	g.pipeline.Step(g.world, in, simDt)
	g.recordSnapshot()
	if g.tick%reporterCollectEvery == 0 {
		g.reporter.Collect(g.tick, g.world)
	}
}

// heldIntent samples the held movement and fire keys. These are re-read for
// every tick in a multi-tick frame; the weapon cooldowns do the rate
// limiting.
func (g *Game) heldIntent() Intent {
	var in Intent
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		in.MoveLeft = 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		in.MoveRight = 1
	}
	in.Fire = ebiten.IsKeyPressed(ebiten.KeySpace)
	in.FireOmega = ebiten.IsKeyPressed(ebiten.KeyO)
	return in
}

// mergeEdges folds the frame's one-shot commands into a held intent.
func mergeEdges(in *Intent, edges Intent) {
	in.ShieldToggle = in.ShieldToggle || edges.ShieldToggle
	in.TargetToggle = in.TargetToggle || edges.TargetToggle
	in.TargetLeft = in.TargetLeft || edges.TargetLeft
	in.TargetRight = in.TargetRight || edges.TargetRight
	in.TargetUp = in.TargetUp || edges.TargetUp
	in.TargetDown = in.TargetDown || edges.TargetDown
	in.LaunchMissile = in.LaunchMissile || edges.LaunchMissile
}

// handleInput processes edge-triggered keypresses once per rendered frame.
func (g *Game) handleInput() {
	currentKeys := map[ebiten.Key]bool{}
	pressed := func(k ebiten.Key) bool {
		currentKeys[k] = ebiten.IsKeyPressed(k)
		return currentKeys[k] && !g.prevKeys[k]
	}

	// Ship systems: C=shield, T=targeting mode, WASD=cursor, M=launch.
	if pressed(ebiten.KeyC) {
		g.pending.ShieldToggle = true
	}
	if pressed(ebiten.KeyT) {
		g.pending.TargetToggle = true
	}
	if pressed(ebiten.KeyA) {
		g.pending.TargetLeft = true
	}
	if pressed(ebiten.KeyD) {
		g.pending.TargetRight = true
	}
	if pressed(ebiten.KeyW) {
		g.pending.TargetUp = true
	}
	if pressed(ebiten.KeyS) {
		g.pending.TargetDown = true
	}
	if pressed(ebiten.KeyM) {
		g.pending.LaunchMissile = true
	}

	// H: toggle HUD key legend. I: toggle inspector raw view.
	if pressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}
	if pressed(ebiten.KeyI) {
		g.inspector.rawView = !g.inspector.rawView
	}

	// Left click: select an entity for the inspector panel.
	mouseDown := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	if mouseDown && !g.prevMouse {
		g.handleInspectorClick(ebiten.CursorPosition())
	}
	g.prevMouse = mouseDown

	// Sim speed controls: P=pause/resume, ,=slower, .=faster.
	speeds := []float64{0, 0.5, 1, 2, 4}
	if pressed(ebiten.KeyP) {
		if g.simSpeed > 0 {
			g.simSpeed = 0
		} else {
			g.simSpeed = 1
		}
	}
	if pressed(ebiten.KeyComma) {
		for i, s := range speeds {
			if s >= g.simSpeed && i > 0 {
				g.simSpeed = speeds[i-1]
				break
			}
		}
	}
	if pressed(ebiten.KeyPeriod) {
		for i, s := range speeds {
			if s <= g.simSpeed && i < len(speeds)-1 {
				if speeds[i+1] > g.simSpeed {
					g.simSpeed = speeds[i+1]
					break
				}
			}
		}
	}

	// R: restart with a fresh seed. Allowed mid-run, not just at game over.
	if pressed(ebiten.KeyR) {
		g.restart()
	}

	// F2: copy the recent-history debug report to the system clipboard.
	if pressed(ebiten.KeyF2) {
		g.copyDebugReport()
	}

	g.prevKeys = currentKeys
}

// restart abandons the current run and reseeds a fresh world. Snapshot
// history and reporter state start over with it.
func (g *Game) restart() {
	g.seed = time.Now().UnixNano()
	g.world = NewWorld(viewWidth, viewHeight, g.seed)
	g.tick = 0
	g.tickAccum = 0
	g.pending = Intent{}
	g.snaps = g.snaps[:0]
	g.inspector = Inspector{}
	g.reporter = NewSimReporter(reportWindowTicks, false)
	if g.simSpeed <= 0 {
		g.simSpeed = 1
	}
}

// copyDebugReport assembles the recent-history report plus the latest
// reporter window and puts the text on the clipboard.
func (g *Game) copyDebugReport() {
	report := g.debugReport(debugReportTicks)
	if wr := g.reporter.WindowSummary(); wr != nil {
		report += "\n" + wr.Format()
	}
	if err := clipboard.WriteAll(report); err != nil {
		g.copyNotice = "clipboard copy failed: " + err.Error()
	} else {
		g.copyNotice = "debug report copied"
	}
	g.copyNoticeTimer = 2.5
}

func (g *Game) Layout(_, _ int) (int, int) {
	return viewWidth, viewHeight
}
