package game

import (
	"fmt"
	"strings"
)

const (
	// debugReportTicks is how much history the F2 report covers (5s at 60Hz).
	debugReportTicks = 300
	// debugSnapshotCap bounds the snapshot ring (15s of history).
	debugSnapshotCap = 900
	// debugStoryEventCap truncates the event list in the report.
	debugStoryEventCap = 24
)

// WorldDebugSnapshot is one tick of coarse world state kept for the F2
// report. It is intentionally flat so stages and story events can diff it
// field by field.
type WorldDebugSnapshot struct {
	Tick          int
	ShipX         float64
	ShipExploding bool
	ShieldOn      bool
	OmegaCharging bool
	OmegaActive   bool
	Targeting     bool
	Cursor        AlienID
	AliensAlive   int
	AliensDying   int
	LowestY       float64 // lowest alien center-y; 0 when the roster is empty
	ShipBullets   int
	AlienBullets  int
	Missiles      int
	SheltersAlive int
	Score         int
	Outcome       Outcome
}

// CompactString renders one snapshot as a single dense line.
func (s WorldDebugSnapshot) CompactString() string {
	omega := "-"
	switch {
	case s.OmegaActive:
		omega = "FIRE"
	case s.OmegaCharging:
		omega = "chg"
	}
	shield := "-"
	if s.ShieldOn {
		shield = "on"
	}
	ship := fmt.Sprintf("x=%.0f", s.ShipX)
	if s.ShipExploding {
		ship += "(boom)"
	}
	tgt := "-"
	if s.Targeting {
		tgt = alienLabel(s.Cursor)
	}
	return fmt.Sprintf("T=%04d ship:%s shield:%s omega:%s tgt:%s roster:%d+%d low:%.0f b:%d/%d m:%d shelters:%d score:%d %s",
		s.Tick, ship, shield, omega, tgt,
		s.AliensAlive, s.AliensDying, s.LowestY,
		s.ShipBullets, s.AlienBullets, s.Missiles,
		s.SheltersAlive, s.Score, s.Outcome)
}

// recordSnapshot appends the current tick's snapshot to the ring.
func (g *Game) recordSnapshot() {
	w := g.world
	snap := WorldDebugSnapshot{
		Tick:          g.tick,
		ShipX:         w.Ship.Rect.X,
		ShipExploding: w.Ship.Exploding,
		ShieldOn:      w.Shield.Active,
		OmegaCharging: w.Omega.Charging(),
		OmegaActive:   w.Omega.Active,
		Targeting:     w.Targeting,
		Cursor:        w.Cursor,
		Score:         w.Score,
		Outcome:       w.Outcome,
	}
	for _, a := range w.Aliens {
		if a.Exploding {
			snap.AliensDying++
			continue
		}
		snap.AliensAlive++
		if cy := a.Rect.Center().Y; cy > snap.LowestY {
			snap.LowestY = cy
		}
	}
	for _, b := range w.Bullets {
		if !b.Alive {
			continue
		}
		if b.Owner == OwnerShip {
			snap.ShipBullets++
		} else {
			snap.AlienBullets++
		}
	}
	for _, m := range w.Missiles {
		if m.Alive {
			snap.Missiles++
		}
	}
	for _, s := range w.Shelters {
		if s.Alive {
			snap.SheltersAlive++
		}
	}
	g.snaps = append(g.snaps, snap)
	if len(g.snaps) > debugSnapshotCap {
		g.snaps = g.snaps[len(g.snaps)-debugSnapshotCap:]
	}
}

// snapshotRange returns the recorded snapshots with Tick in [fromTick, toTick].
func (g *Game) snapshotRange(fromTick, toTick int) []WorldDebugSnapshot {
	lo := 0
	for lo < len(g.snaps) && g.snaps[lo].Tick < fromTick {
		lo++
	}
	hi := len(g.snaps)
	for hi > lo && g.snaps[hi-1].Tick > toTick {
		hi--
	}
	return g.snaps[lo:hi]
}

// debugReport builds the clipboard-ready report covering the last lastTicks
// ticks: a one-line summary, notable transitions, then a compacted stage
// timeline.
func (g *Game) debugReport(lastTicks int) string {
	if lastTicks <= 0 {
		lastTicks = 120
	}
	toTick := g.tick
	fromTick := toTick - lastTicks + 1
	if fromTick < 0 {
		fromTick = 0
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- space-invaders debug report ---\n")
	fmt.Fprintf(&b, "seed=%d tick_range=[%d..%d] ticks=%d speed=%.2gx\n\n",
		g.seed, fromTick, toTick, toTick-fromTick+1, g.simSpeed)

	snaps := g.snapshotRange(fromTick, toTick)
	if len(snaps) == 0 {
		b.WriteString("(no snapshots recorded yet)\n")
		return b.String()
	}

	sum := summarizeWorldSnapshots(snaps)
	fmt.Fprintf(&b,
		"summary: kills=%d score=+%d shieldTicks=%d omegaTicks=%d shipDownTicks=%d targetingTicks=%d\n",
		sum.kills,
		sum.scoreGain,
		sum.shieldTicks,
		sum.omegaTicks,
		sum.shipDownTicks,
		sum.targetingTicks,
	)
	fmt.Fprintf(&b,
		"         shipX[min/max]=%.0f/%.0f advance=%.0f peakAlienBullets=%d peakMissiles=%d sheltersLost=%d\n",
		sum.minShipX,
		sum.maxShipX,
		sum.advance,
		sum.peakAlienBullets,
		sum.peakMissiles,
		sum.sheltersLost,
	)

	events := worldStoryEvents(snaps)
	if len(events) > 0 {
		b.WriteString("events:\n")
		for _, e := range events {
			b.WriteString("  - ")
			b.WriteString(e)
			b.WriteByte('\n')
		}
	}

	stages := buildWorldStages(snaps)
	b.WriteString("stages:\n")
	for i, st := range stages {
		tag := ""
		if st.calm {
			tag = " [CALM]"
		}
		fmt.Fprintf(&b,
			"  %02d) T=%d..%d (%dt)%s roster:%d->%d score:%d->%d shipX:%.0f->%.0f low:%.0f->%.0f\n",
			i+1,
			st.startTick,
			st.endTick,
			st.count,
			tag,
			st.first.AliensAlive,
			st.last.AliensAlive,
			st.first.Score,
			st.last.Score,
			st.first.ShipX,
			st.last.ShipX,
			st.first.LowestY,
			st.last.LowestY,
		)
		if st.count <= 3 {
			for _, ss := range snaps[st.startIdx : st.endIdx+1] {
				b.WriteString("      ")
				b.WriteString(ss.CompactString())
				b.WriteByte('\n')
			}
		} else {
			b.WriteString("      first: ")
			b.WriteString(st.first.CompactString())
			b.WriteByte('\n')
			b.WriteString("      last:  ")
			b.WriteString(st.last.CompactString())
			b.WriteByte('\n')
		}
	}
	return b.String()
}

type worldSnapshotSummary struct {
	kills            int
	scoreGain        int
	shieldTicks      int
	omegaTicks       int
	shipDownTicks    int
	targetingTicks   int
	minShipX         float64
	maxShipX         float64
	advance          float64 // formation descent over the window, px
	peakAlienBullets int
	peakMissiles     int
	sheltersLost     int
}

func summarizeWorldSnapshots(snaps []WorldDebugSnapshot) worldSnapshotSummary {
	if len(snaps) == 0 {
		return worldSnapshotSummary{}
	}
	first := snaps[0]
	last := snaps[len(snaps)-1]
	res := worldSnapshotSummary{
		kills:     first.AliensAlive - last.AliensAlive,
		scoreGain: last.Score - first.Score,
		minShipX:  first.ShipX,
		maxShipX:  first.ShipX,
	}
	if first.LowestY > 0 && last.LowestY > 0 {
		res.advance = last.LowestY - first.LowestY
	}
	if lost := first.SheltersAlive - last.SheltersAlive; lost > 0 {
		res.sheltersLost = lost
	}
	for _, s := range snaps {
		if s.ShieldOn {
			res.shieldTicks++
		}
		if s.OmegaActive {
			res.omegaTicks++
		}
		if s.ShipExploding {
			res.shipDownTicks++
		}
		if s.Targeting {
			res.targetingTicks++
		}
		if s.ShipX < res.minShipX {
			res.minShipX = s.ShipX
		}
		if s.ShipX > res.maxShipX {
			res.maxShipX = s.ShipX
		}
		if s.AlienBullets > res.peakAlienBullets {
			res.peakAlienBullets = s.AlienBullets
		}
		if s.Missiles > res.peakMissiles {
			res.peakMissiles = s.Missiles
		}
	}
	return res
}

// omegaPhase names the beam state for story events and stage keys.
func omegaPhase(s WorldDebugSnapshot) string {
	switch {
	case s.OmegaActive:
		return "firing"
	case s.OmegaCharging:
		return "charging"
	default:
		return "idle"
	}
}

// worldStoryEvents lists the notable transitions between consecutive
// snapshots, oldest first, truncated to debugStoryEventCap entries.
func worldStoryEvents(snaps []WorldDebugSnapshot) []string {
	if len(snaps) == 0 {
		return nil
	}
	var out []string
	prev := snaps[0]
	for i := 1; i < len(snaps); i++ {
		cur := snaps[i]
		if cur.ShieldOn != prev.ShieldOn {
			state := "down"
			if cur.ShieldOn {
				state = "up"
			}
			out = append(out, fmt.Sprintf("T=%d shield %s", cur.Tick, state))
		}
		if op, pp := omegaPhase(cur), omegaPhase(prev); op != pp {
			out = append(out, fmt.Sprintf("T=%d omega %s -> %s", cur.Tick, pp, op))
		}
		if cur.ShipExploding != prev.ShipExploding {
			if cur.ShipExploding {
				out = append(out, fmt.Sprintf("T=%d ship hit", cur.Tick))
			} else {
				out = append(out, fmt.Sprintf("T=%d ship restored", cur.Tick))
			}
		}
		if cur.Targeting != prev.Targeting {
			state := "off"
			if cur.Targeting {
				state = "on"
			}
			out = append(out, fmt.Sprintf("T=%d targeting %s", cur.Tick, state))
		} else if cur.Targeting && cur.Cursor != prev.Cursor {
			out = append(out, fmt.Sprintf("T=%d cursor %s -> %s", cur.Tick, alienLabel(prev.Cursor), alienLabel(cur.Cursor)))
		}
		if cur.Missiles > prev.Missiles {
			out = append(out, fmt.Sprintf("T=%d missile away (%d aloft)", cur.Tick, cur.Missiles))
		}
		if cur.AliensAlive < prev.AliensAlive {
			out = append(out, fmt.Sprintf("T=%d kill x%d (%d left)", cur.Tick, prev.AliensAlive-cur.AliensAlive, cur.AliensAlive))
		}
		if cur.SheltersAlive < prev.SheltersAlive {
			out = append(out, fmt.Sprintf("T=%d shelter destroyed (%d left)", cur.Tick, cur.SheltersAlive))
		}
		if cur.Outcome != prev.Outcome {
			out = append(out, fmt.Sprintf("T=%d outcome %s -> %s", cur.Tick, prev.Outcome, cur.Outcome))
		}
		prev = cur
	}
	if len(out) > debugStoryEventCap {
		out = append(out[:debugStoryEventCap], fmt.Sprintf("... (%d more events)", len(out)-debugStoryEventCap))
	}
	return out
}

type worldStage struct {
	startIdx  int
	endIdx    int
	startTick int
	endTick   int
	count     int
	first     WorldDebugSnapshot
	last      WorldDebugSnapshot
	calm      bool // no combat state and no roster or score movement
}

// buildWorldStages compacts the snapshot run into stages of identical mode:
// a stage breaks whenever the shield, beam, ship substate, targeting cursor,
// outcome, or the rough roster size changes.
func buildWorldStages(snaps []WorldDebugSnapshot) []worldStage {
	if len(snaps) == 0 {
		return nil
	}
	keyOf := func(s WorldDebugSnapshot) string {
		return fmt.Sprintf("sh=%t|om=%s|ex=%t|tg=%t|cur=%d|out=%d|r=%d|m=%t",
			s.ShieldOn,
			omegaPhase(s),
			s.ShipExploding,
			s.Targeting,
			s.Cursor,
			s.Outcome,
			s.AliensAlive/5,
			s.Missiles > 0,
		)
	}

	stages := make([]worldStage, 0, 16)
	start := 0
	curKey := keyOf(snaps[0])
	for i := 1; i < len(snaps); i++ {
		k := keyOf(snaps[i])
		if k == curKey {
			continue
		}
		stages = append(stages, makeWorldStage(snaps, start, i-1))
		start = i
		curKey = k
	}
	stages = append(stages, makeWorldStage(snaps, start, len(snaps)-1))
	return stages
}

func makeWorldStage(snaps []WorldDebugSnapshot, start, end int) worldStage {
	first := snaps[start]
	last := snaps[end]
	calm := first.AliensAlive == last.AliensAlive && first.Score == last.Score
	if calm {
		for i := start; i <= end; i++ {
			s := snaps[i]
			if s.ShieldOn || s.OmegaActive || s.OmegaCharging || s.ShipExploding {
				calm = false
				break
			}
		}
	}
	return worldStage{
		startIdx:  start,
		endIdx:    end,
		startTick: first.Tick,
		endTick:   last.Tick,
		count:     end - start + 1,
		first:     first,
		last:      last,
		calm:      calm,
	}
}
