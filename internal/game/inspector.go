package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Inspector panel — rendered into an offscreen buffer at 1x then blitted at
// inspScale, same scheme as the HUD.
const (
	inspScale = 2   // scale factor for inspector text rendering
	inspBufW  = 182 // buffer width in pixels (~29 chars at debug font)
	inspBufH  = 214 // buffer height in pixels
	inspPad   = 5   // padding in buffer-space pixels
	inspLineH = 12  // line height in buffer-space pixels

	// Clicks this close to an alien center still select it.
	inspPickRadius = 20.0
)

type inspectKind int

const (
	inspectNothing inspectKind = iota
	inspectAlien
	inspectShip
	inspectShelter
)

// Inspector holds the current selection and view toggle. The alien selection
// is a weak ID reference like every other cross-entity link: the panel drops
// itself once its alien leaves the roster.
type Inspector struct {
	kind    inspectKind
	alien   AlienID
	shelter int
	rawView bool // false = curated, true = raw field dump
}

// handleInspectorClick maps a click to an entity and selects it. Layout is
// 1:1, so screen coordinates are world coordinates. Returns true on a hit.
func (g *Game) handleInspectorClick(mx, my int) bool {
	p := Vec2{X: float64(mx), Y: float64(my)}
	w := g.world

	// Aliens first: a direct rect hit wins, otherwise the nearest center
	// within the pick radius, so clicks into the formation gaps still land.
	best2 := inspPickRadius * inspPickRadius
	var hit *Alien
	for _, a := range w.Aliens {
		if a.Rect.Contains(p) {
			hit = a
			break
		}
		c := a.Rect.Center()
		d2 := (c.X-p.X)*(c.X-p.X) + (c.Y-p.Y)*(c.Y-p.Y)
		if d2 < best2 {
			best2 = d2
			hit = a
		}
	}
	if hit != nil {
		g.inspector.kind = inspectAlien
		g.inspector.alien = hit.ID
		return true
	}

	if w.Ship.Rect.ScaledAbout(1.5).Contains(p) {
		g.inspector.kind = inspectShip
		return true
	}
	for i, s := range w.Shelters {
		if s.Rect.Contains(p) {
			g.inspector.kind = inspectShelter
			g.inspector.shelter = i
			return true
		}
	}

	// Click on empty space: deselect.
	g.inspector.kind = inspectNothing
	return false
}

// panelWriter lays text lines and cooldown meters into the inspector buffer.
type panelWriter struct {
	buf *ebiten.Image
	x   int
	y   int
}

func (p *panelWriter) line(text string) {
	ebitenutil.DebugPrintAt(p.buf, text, p.x, p.y)
	p.y += inspLineH
}

func (p *panelWriter) section(title string) {
	p.y += 3
	ebitenutil.DebugPrintAt(p.buf, "-- "+title+" --", p.x, p.y)
	p.y += inspLineH
}

// meterCells renders a 12-cell bar filled to the given fraction.
func meterCells(frac float64) string {
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	filled := int(frac * 12)
	b := ""
	for i := 0; i < filled; i++ {
		b += "█"
	}
	for i := filled; i < 12; i++ {
		b += "░"
	}
	return b
}

// meter draws a labelled readiness bar for a cooldown-style timer: full when
// the remaining time hits zero, with the remaining seconds (or RDY) after it.
func (p *panelWriter) meter(label string, remaining, max float64) {
	frac := 0.0
	if max > 0 {
		frac = 1 - remaining/max
	}
	suffix := "RDY"
	if remaining > 0 {
		suffix = fmt.Sprintf("%.1fs", remaining)
	}
	p.line(fmt.Sprintf("%-7s %s %s", label, meterCells(frac), suffix))
}

// drawInspector renders the panel for the current selection into inspBuf at
// 1x and blits it onto the bottom-right of the screen at inspScale.
func (g *Game) drawInspector(screen *ebiten.Image) {
	w := g.world
	ins := &g.inspector

	var a *Alien
	if ins.kind == inspectAlien {
		for _, x := range w.Aliens {
			if x.ID == ins.alien {
				a = x
				break
			}
		}
		if a == nil {
			ins.kind = inspectNothing
		}
	}
	if ins.kind == inspectShelter && ins.shelter >= len(w.Shelters) {
		ins.kind = inspectNothing
	}
	if ins.kind == inspectNothing {
		return
	}

	g.inspBuf.Clear()
	buf := g.inspBuf
	bw := float32(inspBufW)
	bh := float32(inspBufH)

	panelBg := color.RGBA{R: 6, G: 8, B: 16, A: 230}
	panelBorder := color.RGBA{R: 60, G: 80, B: 120, A: 255}
	vector.FillRect(buf, 0, 0, bw, bh, panelBg, false)
	vector.StrokeRect(buf, 0, 0, bw, bh, 1.0, panelBorder, false)
	vector.StrokeLine(buf, 1, 1, bw-1, 1, 1.0, color.RGBA{R: 90, G: 120, B: 170, A: 80}, false)

	p := &panelWriter{buf: buf, x: inspPad, y: inspPad}

	// Title bar.
	switch ins.kind {
	case inspectAlien:
		p.line(fmt.Sprintf("[ %s  R%d C%d ]", alienLabel(a.ID), a.Row, a.Col))
	case inspectShip:
		p.line("[ SHIP ]")
	case inspectShelter:
		p.line(fmt.Sprintf("[ S%d ]", ins.shelter))
	}

	viewName := "CURATED"
	if ins.rawView {
		viewName = "RAW"
	}
	p.line(fmt.Sprintf("view: %s  [I] toggle", viewName))
	vector.StrokeLine(buf, float32(p.x), float32(p.y), bw-inspPad, float32(p.y), 1.0, panelBorder, false)
	p.y += 4

	switch ins.kind {
	case inspectAlien:
		if ins.rawView {
			g.inspectAlienRaw(p, w, a)
		} else {
			g.inspectAlienCurated(p, w, a)
		}
	case inspectShip:
		if ins.rawView {
			g.inspectShipRaw(p, w)
		} else {
			g.inspectShipCurated(p, w)
		}
	case inspectShelter:
		g.inspectShelter(p, w.Shelters[ins.shelter])
	}

	px := float64(viewWidth - inspBufW*inspScale - 8)
	py := float64(viewHeight - inspBufH*inspScale - 8)
	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(inspScale, inspScale)
	opts.GeoM.Translate(px, py)
	screen.DrawImage(buf, opts)
}

// inspectAlienCurated shows the formation member the way a player would ask
// about it: what it is, what it shoots, and what killing it pays.
func (g *Game) inspectAlienCurated(p *panelWriter, w *World, a *Alien) {
	c := a.Rect.Center()
	state := "sweeping"
	if a.Exploding {
		state = fmt.Sprintf("exploding %.2fs", a.ExplodeTimer)
	}
	p.line("state: " + state)
	p.line(fmt.Sprintf("pos:(%.0f,%.0f) vel:%+.1f", c.X, c.Y, a.Vel.X))

	p.section("FIRE")
	kind := projectileKindForRow(a.Row, rosterRows(w.Aliens))
	p.line(fmt.Sprintf("shot: %s @ %.0fpx/s", kind, projectileSpeed(kind)))
	p.meter("ready", a.FireCooldown, shooterCooldownMax)
	onFront := false
	for _, f := range frontLine(w.Aliens) {
		if f == a {
			onFront = true
			break
		}
	}
	p.line(fmt.Sprintf("front line: %v", onFront))

	if !a.Exploding {
		p.section("VALUE")
		p.line(fmt.Sprintf("worth: +%d now", killReward(w.InitialAliens, len(w.AliveAliens())-1)))
	}
}

// inspectAlienRaw dumps the alien's fields verbatim.
func (g *Game) inspectAlienRaw(p *panelWriter, w *World, a *Alien) {
	p.line(fmt.Sprintf("id=%d row=%d col=%d", a.ID, a.Row, a.Col))
	p.line(fmt.Sprintf("rect=(%.1f,%.1f %gx%g)", a.Rect.X, a.Rect.Y, a.Rect.W, a.Rect.H))
	p.line(fmt.Sprintf("vel=(%+.2f,%+.2f) spd=%g", a.Vel.X, a.Vel.Y, a.Speed))
	p.line(fmt.Sprintf("exploding=%v t=%.2f", a.Exploding, a.ExplodeTimer))
	p.line(fmt.Sprintf("fireCd=%.2f art=%d", a.FireCooldown, a.Appearance))
	p.line(fmt.Sprintf("dir=%+.0f roster=%d/%d", w.Direction, len(w.AliveAliens()), len(w.Aliens)))
}

// inspectShipCurated shows every ship weapon's readiness in one column.
func (g *Game) inspectShipCurated(p *panelWriter, w *World) {
	state := "flying"
	if w.Ship.Exploding {
		state = fmt.Sprintf("exploding %.2fs", w.Ship.ExplodeTimer)
	}
	p.line("state: " + state)
	p.line(fmt.Sprintf("pos:(%.0f,%.0f) spd:%g", w.Ship.Rect.X, w.Ship.Rect.Y, w.Ship.Speed))

	p.section("WEAPONS")
	p.meter("gun", w.FireTimer, shipFireCooldown)
	if w.VolleyArmed {
		p.line("volley: ARMED")
	}
	p.meter("missile", w.MissileTimer, missileCooldown)
	if w.Targeting {
		p.line("cursor: " + alienLabel(w.Cursor))
	}

	p.section("SHIELD")
	if w.Shield.Active {
		p.meter("active", w.Shield.Timer, shieldDuration)
	} else {
		p.meter("ready", w.Shield.CooldownTimer, shieldCooldown)
	}

	p.section("BEAM")
	o := w.Omega
	switch {
	case o.Active:
		p.meter("burn", o.Timer, omegaFireTime)
	case o.Charging():
		p.meter("charge", o.ChargeTimer, omegaChargeTime)
	default:
		p.meter("ready", o.CooldownTimer, omegaCooldown)
	}
	if o.Locked {
		p.line(fmt.Sprintf("column x=%.0f", o.X))
	}
}

// inspectShipRaw dumps the ship and weapon state machines verbatim.
func (g *Game) inspectShipRaw(p *panelWriter, w *World) {
	p.line(fmt.Sprintf("rect=(%.1f,%.1f %gx%g)", w.Ship.Rect.X, w.Ship.Rect.Y, w.Ship.Rect.W, w.Ship.Rect.H))
	p.line(fmt.Sprintf("exploding=%v t=%.2f", w.Ship.Exploding, w.Ship.ExplodeTimer))
	p.line(fmt.Sprintf("art=%d base=%d", w.Ship.Appearance, w.Ship.BaseAppearance))
	p.line(fmt.Sprintf("fireTimer=%.3f", w.FireTimer))
	p.line(fmt.Sprintf("volley armed=%v spent=%v", w.VolleyArmed, w.volleySpent))
	p.line(fmt.Sprintf("missileTimer=%.3f", w.MissileTimer))
	p.line(fmt.Sprintf("targeting=%v cursor=%d", w.Targeting, w.Cursor))
	p.line(fmt.Sprintf("shield on=%v t=%.2f cd=%.2f", w.Shield.Active, w.Shield.Timer, w.Shield.CooldownTimer))
	o := w.Omega
	p.line(fmt.Sprintf("omega on=%v lock=%v x=%.1f", o.Active, o.Locked, o.X))
	p.line(fmt.Sprintf("  burn=%.2f chg=%.2f cd=%.2f", o.Timer, o.ChargeTimer, o.CooldownTimer))
	p.line(fmt.Sprintf("score=%d outcome=%s", w.Score, w.Outcome))
}

// inspectShelter has no raw/curated split; the whole state fits either way.
func (g *Game) inspectShelter(p *panelWriter, s *Shelter) {
	state := "standing"
	if !s.Alive {
		state = "destroyed"
	}
	p.line("state: " + state)
	p.line(fmt.Sprintf("pos:(%.0f,%.0f)", s.Rect.X, s.Rect.Y))

	p.section("INTEGRITY")
	left := float64(shelterMaxDamage-s.Damage) / shelterMaxDamage
	p.line(fmt.Sprintf("%-7s %s", "armor", meterCells(left)))
	p.line(fmt.Sprintf("damage: %d/%d", s.Damage, shelterMaxDamage))
	if s.Damage >= shelterMaxDamage {
		p.line("soaking at cap")
	}
}
