package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	text "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// hudScale is the integer upscale factor applied to all HUD text (2 = 2x).
// Text is drawn into hudBuf at 1x then composited onto the screen scaled.
const hudScale = 2

// overlayTextScale is the upscale factor for the outcome banner glyphs.
const overlayTextScale = 4

// Sprite masks. '#' cells are filled; each mask is stretched to its entity's
// rect, so the grid aspect does not have to match exactly.
var (
	shipMask = []string{
		"......#......",
		".....###.....",
		".....###.....",
		".###########.",
		"#############",
		"#############",
		"#############",
	}

	shipExplosionMask = []string{
		"..#...#....#.",
		"#..#.#..#....",
		".#..###..#..#",
		"..##########.",
		"#.###########",
		"############.",
		".##.#####.##.",
	}

	invaderSmallMask = []string{
		"...##...",
		"..####..",
		".######.",
		"##.##.##",
		"########",
		"..#..#..",
		".#.##.#.",
		"#.#..#.#",
	}

	invaderMediumMask = []string{
		"..#.....#..",
		"...#...#...",
		"..#######..",
		".##.###.##.",
		"###########",
		"#.#######.#",
		"#.#.....#.#",
		"...##.##...",
	}

	invaderLargeMask = []string{
		"....####....",
		".##########.",
		"############",
		"###..##..###",
		"############",
		"...##..##...",
		"..##.##.##..",
		"##........##",
	}

	invaderExplosionMask = []string{
		".#...#.#...#.",
		"..#..#.#..#..",
		"...#.....#...",
		"##.........##",
		"...#.....#...",
		"..#..#.#..#..",
		".#...#.#...#.",
	}

	impactMask = []string{
		"#..#..#",
		".#.#.#.",
		"..###..",
		"###.###",
		"..###..",
		".#.#.#.",
		"#..#..#",
	}
)

// spriteAtlas holds the procedurally rendered sprites plus the banner font.
// Everything is generated once at startup; there are no asset files.
type spriteAtlas struct {
	sprites map[Appearance]*ebiten.Image
	banner  text.Face
}

func newSpriteAtlas() *spriteAtlas {
	a := &spriteAtlas{
		sprites: make(map[Appearance]*ebiten.Image),
		banner:  text.NewGoXFace(basicfont.Face7x13),
	}
	a.add(ArtShip, shipMask, shipWidth, shipHeight, color.RGBA{R: 90, G: 230, B: 110, A: 255})
	a.add(ArtShipExplosion, shipExplosionMask, shipWidth, shipHeight, color.RGBA{R: 255, G: 120, B: 60, A: 255})
	a.add(ArtInvaderSmall, invaderSmallMask, alienWidth, alienHeight, color.RGBA{R: 170, G: 235, B: 255, A: 255})
	a.add(ArtInvaderMedium, invaderMediumMask, alienWidth, alienHeight, color.RGBA{R: 235, G: 235, B: 245, A: 255})
	a.add(ArtInvaderLarge, invaderLargeMask, alienWidth, alienHeight, color.RGBA{R: 200, G: 170, B: 255, A: 255})
	a.add(ArtInvaderExplosion, invaderExplosionMask, alienWidth, alienHeight, color.RGBA{R: 255, G: 170, B: 60, A: 255})
	a.add(ArtImpact, impactMask, effectSize, effectSize, color.RGBA{R: 255, G: 240, B: 150, A: 255})
	return a
}

func (a *spriteAtlas) add(art Appearance, mask []string, w, h float64, col color.RGBA) {
	a.sprites[art] = renderMask(mask, int(w), int(h), col)
}

// renderMask rasterizes a '#'-mask into a w×h image with chunky cells.
func renderMask(mask []string, w, h int, col color.RGBA) *ebiten.Image {
	img := ebiten.NewImage(w, h)
	cw := float32(w) / float32(len(mask[0]))
	ch := float32(h) / float32(len(mask))
	for ry, row := range mask {
		for rx := 0; rx < len(row); rx++ {
			if row[rx] != '#' {
				continue
			}
			vector.FillRect(img, float32(rx)*cw, float32(ry)*ch, cw, ch, col, false)
		}
	}
	return img
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 4, G: 6, B: 14, A: 255})

	w := g.world
	g.drawBeam(screen, w)
	g.drawShelters(screen, w)
	for _, a := range w.Aliens {
		g.drawSprite(screen, a.Appearance, a.Rect)
	}
	g.drawProjectiles(screen, w)
	g.drawShip(screen, w)
	g.drawEffects(screen, w)
	g.drawTargeting(screen, w)

	g.drawHUD(screen)

	switch {
	case w.Outcome != OutcomePlaying:
		g.drawOutcomeOverlay(screen, w)
	case g.simSpeed <= 0:
		g.drawBanner(screen, "PAUSED", color.RGBA{R: 230, G: 230, B: 240, A: 255}, viewHeight/2)
	}

	// The inspector stays on top so a paused or finished game can still be
	// picked apart.
	g.drawInspector(screen)
}

// drawSprite stretches the sprite for art over the given rect.
func (g *Game) drawSprite(dst *ebiten.Image, art Appearance, r Rect) {
	img := g.atlas.sprites[art]
	if img == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	b := img.Bounds()
	op.GeoM.Scale(r.W/float64(b.Dx()), r.H/float64(b.Dy()))
	op.GeoM.Translate(r.X, r.Y)
	dst.DrawImage(img, op)
}

func (g *Game) drawShip(screen *ebiten.Image, w *World) {
	g.drawSprite(screen, w.Ship.Appearance, w.Ship.Rect)
	if w.Shield.Active {
		sr := shieldRect(w)
		vector.FillRect(screen, float32(sr.X), float32(sr.Y), float32(sr.W), float32(sr.H),
			color.RGBA{R: 80, G: 200, B: 255, A: 36}, false)
		vector.StrokeRect(screen, float32(sr.X), float32(sr.Y), float32(sr.W), float32(sr.H),
			2.0, color.RGBA{R: 110, G: 215, B: 255, A: 210}, false)
	}
}

func (g *Game) drawShelters(screen *ebiten.Image, w *World) {
	for _, s := range w.Shelters {
		if !s.Alive {
			continue
		}
		// Healthy shelters are green; damage shifts them toward scorched rust.
		t := float64(s.Damage) / shelterMaxDamage
		col := color.RGBA{
			R: uint8(45 + 120*t),
			G: uint8(205 - 145*t),
			B: 70,
			A: 255,
		}
		r := s.Rect
		vector.FillRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), col, false)
		vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H),
			1.0, color.RGBA{R: 20, G: 60, B: 25, A: 255}, false)
	}
}

func (g *Game) drawProjectiles(screen *ebiten.Image, w *World) {
	for _, b := range w.Bullets {
		if !b.Alive {
			continue
		}
		r := b.Rect
		vector.FillRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), bulletColor(b), false)
	}
	for _, m := range w.Missiles {
		if !m.Alive {
			continue
		}
		r := m.Rect
		vector.FillRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H),
			color.RGBA{R: 210, G: 215, B: 225, A: 255}, false)
		// Exhaust flame trailing below the body.
		vector.FillRect(screen, float32(r.X+2), float32(r.Y+r.H), float32(r.W-4), 5,
			color.RGBA{R: 255, G: 170, B: 60, A: 200}, false)
	}
}

// bulletColor codes alien bullets by projectile kind so the speed classes
// read at a glance; ship bullets are plain white-green.
func bulletColor(b *Bullet) color.RGBA {
	if b.Owner == OwnerShip {
		return color.RGBA{R: 225, G: 250, B: 225, A: 255}
	}
	switch b.Kind {
	case ProjectileA:
		return color.RGBA{R: 255, G: 90, B: 90, A: 255}
	case ProjectileB:
		return color.RGBA{R: 255, G: 170, B: 70, A: 255}
	default:
		return color.RGBA{R: 255, G: 230, B: 90, A: 255}
	}
}

// drawBeam renders the omega column: a narrow building strip while charging,
// the full locked column with a bright core and a base flare while firing.
func (g *Game) drawBeam(screen *ebiten.Image, w *World) {
	o := w.Omega
	if !o.Locked {
		return
	}
	h := float32(w.Ship.Rect.Y)
	if h <= 0 {
		return
	}
	x := float32(o.X)
	switch {
	case o.Active:
		vector.FillRect(screen, x, 0, omegaWidth, h,
			color.RGBA{R: 180, G: 60, B: 255, A: 130}, false)
		vector.FillRect(screen, x+omegaWidth/2-8, 0, 16, h,
			color.RGBA{R: 240, G: 210, B: 255, A: 220}, false)
		base := float32(180)
		if base > h {
			base = h
		}
		vector.FillRect(screen, x-6, h-base, omegaWidth+12, base,
			color.RGBA{R: 200, G: 120, B: 255, A: 70}, false)
	case o.Charging():
		frac := 1 - o.ChargeTimer/omegaChargeTime
		width := float32(4 + frac*10)
		cx := x + omegaWidth/2
		vector.FillRect(screen, cx-width/2, 0, width, h,
			color.RGBA{R: 150, G: 80, B: 220, A: uint8(40 + 120*frac)}, false)
	}
}

func (g *Game) drawEffects(screen *ebiten.Image, w *World) {
	for _, e := range w.Effects {
		img := g.atlas.sprites[e.Appearance]
		if img == nil {
			continue
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(e.Rect.X, e.Rect.Y)
		op.ColorScale.ScaleAlpha(float32(e.TTL / effectTTL))
		screen.DrawImage(img, op)
	}
}

// drawTargeting renders the corner-bracket reticle around the cursor alien.
func (g *Game) drawTargeting(screen *ebiten.Image, w *World) {
	if !w.Targeting {
		return
	}
	a := w.findAlive(w.Cursor)
	if a == nil {
		return
	}
	r := a.Rect.ScaledAbout(1.35)
	red := color.RGBA{R: 255, G: 70, B: 70, A: 230}
	x0, y0 := float32(r.X), float32(r.Y)
	x1, y1 := float32(r.X+r.W), float32(r.Y+r.H)
	const l = 7
	vector.StrokeLine(screen, x0, y0, x0+l, y0, 1.5, red, false)
	vector.StrokeLine(screen, x0, y0, x0, y0+l, 1.5, red, false)
	vector.StrokeLine(screen, x1, y0, x1-l, y0, 1.5, red, false)
	vector.StrokeLine(screen, x1, y0, x1, y0+l, 1.5, red, false)
	vector.StrokeLine(screen, x0, y1, x0+l, y1, 1.5, red, false)
	vector.StrokeLine(screen, x0, y1, x0, y1-l, 1.5, red, false)
	vector.StrokeLine(screen, x1, y1, x1-l, y1, 1.5, red, false)
	vector.StrokeLine(screen, x1, y1, x1, y1-l, 1.5, red, false)
}

// readiness formats a weapon's state for the status line.
func readiness(active bool, activeLabel string, cooldown float64) string {
	switch {
	case active:
		return activeLabel
	case cooldown > 0:
		return fmt.Sprintf("%.1fs", cooldown)
	default:
		return "RDY"
	}
}

// drawHUD renders the status readout (always) and the key legend (toggle
// with H). Text goes into hudBuf at 1x and is composited at hudScale.
func (g *Game) drawHUD(screen *ebiten.Image) {
	w := g.world
	g.hudBuf.Clear()

	beam := "RDY"
	switch {
	case w.Omega.Active:
		beam = "FIRING"
	case w.Omega.Charging():
		beam = "CHARGING"
	case w.Omega.CooldownTimer > 0:
		beam = fmt.Sprintf("%.1fs", w.Omega.CooldownTimer)
	}
	missile := readiness(false, "", w.MissileTimer)
	if w.Targeting {
		missile += "  TGT " + alienLabel(w.Cursor)
	}
	volley := ""
	if w.VolleyArmed {
		volley = "  VOLLEY ARMED"
	}

	status := []string{
		fmt.Sprintf("SCORE %04d  ALIENS %d/%d%s", w.Score, len(w.AliveAliens()), w.InitialAliens, volley),
		fmt.Sprintf("SHIELD %s  BEAM %s  MISSILE %s",
			readiness(w.Shield.Active, "ON", w.Shield.CooldownTimer), beam, missile),
	}
	if g.copyNoticeTimer > 0 && g.copyNotice != "" {
		status = append(status, g.copyNotice)
	}
	g.hudPanel(4, 4, status)

	if g.showHUD {
		speedStr := "1x"
		if g.simSpeed == 0 {
			speedStr = "PAUSED"
		} else if g.simSpeed != 1 {
			speedStr = fmt.Sprintf("%.2gx", g.simSpeed)
		}
		legend := []string{
			fmt.Sprintf("SIM: %s  P=pause  ,/. speed", speedStr),
			"arrows=move  Space=fire  O=beam",
			"C=shield  T=target  WASD=cursor  M=missile",
			"click=inspect  I=raw view",
			"R=restart  F2=copy report  [H] hide help",
		}
		const lineH = 12
		const padY = 4
		boxH := float32(len(legend)*lineH + padY*2)
		g.hudPanel(4, float32(viewHeight/hudScale)-boxH-4, legend)
	}

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(hudScale, hudScale)
	screen.DrawImage(g.hudBuf, opts)
}

// hudPanel paints one boxed text block into hudBuf at 1x coordinates.
func (g *Game) hudPanel(bx, by float32, lines []string) {
	const lineH = 12 // debug font line height at 1x
	const charW = 6  // debug font char width at 1x
	const padX = 5
	const padY = 4

	maxLen := 0
	for _, l := range lines {
		if len(l) > maxLen {
			maxLen = len(l)
		}
	}
	boxW := float32(maxLen*charW + padX*2)
	boxH := float32(len(lines)*lineH + padY*2)

	vector.FillRect(g.hudBuf, bx, by, boxW, boxH,
		color.RGBA{R: 6, G: 8, B: 16, A: 210}, false)
	vector.StrokeRect(g.hudBuf, bx, by, boxW, boxH,
		1.0, color.RGBA{R: 60, G: 80, B: 120, A: 180}, false)
	vector.StrokeLine(g.hudBuf, bx+1, by+1, bx+boxW-1, by+1,
		1.0, color.RGBA{R: 90, G: 120, B: 170, A: 80}, false)

	for i, line := range lines {
		ebitenutil.DebugPrintAt(g.hudBuf, line, int(bx)+padX, int(by)+padY+i*lineH)
	}
}

func (g *Game) drawOutcomeOverlay(screen *ebiten.Image, w *World) {
	vector.FillRect(screen, 0, 0, viewWidth, viewHeight, color.RGBA{A: 150}, false)
	msg := "YOU WIN"
	col := color.RGBA{R: 120, G: 255, B: 140, A: 255}
	if w.Outcome == OutcomeLost {
		msg = "GAME OVER"
		col = color.RGBA{R: 255, G: 95, B: 80, A: 255}
	}
	g.drawBanner(screen, msg, col, viewHeight/2-56)
	g.drawBanner(screen, fmt.Sprintf("SCORE %d", w.Score), color.RGBA{R: 235, G: 235, B: 245, A: 255}, viewHeight/2)
	g.drawBanner(screen, "press R to restart", color.RGBA{R: 170, G: 175, B: 190, A: 255}, viewHeight/2+48)
}

// drawBanner centers one line of scaled-up text on the given y.
func (g *Game) drawBanner(screen *ebiten.Image, msg string, col color.Color, y float64) {
	tw, th := text.Measure(msg, g.atlas.banner, 0)
	op := &text.DrawOptions{}
	op.GeoM.Scale(overlayTextScale, overlayTextScale)
	op.GeoM.Translate(viewWidth/2-tw*overlayTextScale/2, y-th*overlayTextScale/2)
	op.ColorScale.ScaleWithColor(col)
	text.Draw(screen, msg, g.atlas.banner, op)
}
