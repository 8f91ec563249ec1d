package game

import (
	"fmt"
	"strings"
)

// reportWindowTicks is the default sliding window for recent-behaviour reports (~10s at 60TPS).
const reportWindowTicks = 600

// SimReport is a snapshot of the simulation at one tick.
type SimReport struct {
	Tick int

	AliensAlive   int
	AliensDying   int // exploding, still in the roster
	RowsOccupied  int
	LowestCenterY float64 // deepest alien center; how close the wave is to the ship

	ShipBullets  int
	AlienBullets int
	Missiles     int

	ShieldActive  bool
	OmegaActive   bool
	ShipExploding bool

	SheltersAlive      int
	ShelterDamageTotal int

	Score   int
	Outcome Outcome
}

// SimReporter collects periodic reports from the simulation and can produce
// summaries over sliding time windows.
type SimReporter struct {
	history     []SimReport
	windowTicks int
	verbose     bool
}

// NewSimReporter creates a reporter with the given window size.
func NewSimReporter(windowTicks int, verbose bool) *SimReporter {
	if windowTicks <= 0 {
		windowTicks = reportWindowTicks
	}
	return &SimReporter{
		windowTicks: windowTicks,
		verbose:     verbose,
	}
}

// Collect gathers a snapshot from the current world state.
// Call this periodically (e.g. every 60 ticks / 1s).
func (r *SimReporter) Collect(tick int, w *World) {
	report := SimReport{
		Tick:          tick,
		ShieldActive:  w.Shield.Active,
		OmegaActive:   w.Omega.Active,
		ShipExploding: w.Ship.Exploding,
		Score:         w.Score,
		Outcome:       w.Outcome,
	}

	rows := make(map[int]bool)
	for _, a := range w.Aliens {
		if a.Exploding {
			report.AliensDying++
		} else {
			report.AliensAlive++
			rows[a.Row] = true
		}
		if cy := a.Rect.Center().Y; cy > report.LowestCenterY {
			report.LowestCenterY = cy
		}
	}
	report.RowsOccupied = len(rows)

	for _, b := range w.Bullets {
		if !b.Alive {
			continue
		}
		if b.Owner == OwnerShip {
			report.ShipBullets++
		} else {
			report.AlienBullets++
		}
	}
	for _, m := range w.Missiles {
		if m.Alive {
			report.Missiles++
		}
	}

	for _, s := range w.Shelters {
		if s.Alive {
			report.SheltersAlive++
		}
		report.ShelterDamageTotal += s.Damage
	}

	r.history = append(r.history, report)

	// Prune old history beyond 2x window to prevent unbounded growth.
	maxKeep := r.windowTicks / 60 * 2 // reports per second * 2 windows
	if maxKeep < 100 {
		maxKeep = 100
	}
	if len(r.history) > maxKeep {
		r.history = r.history[len(r.history)-maxKeep:]
	}
}

// Latest returns the most recent report, or nil if none collected yet.
func (r *SimReporter) Latest() *SimReport {
	if len(r.history) == 0 {
		return nil
	}
	return &r.history[len(r.history)-1]
}

// History returns all collected reports.
func (r *SimReporter) History() []SimReport {
	return r.history
}

// WindowReport is an aggregated summary over a time window.
type WindowReport struct {
	FromTick, ToTick int
	SampleCount      int

	// Roster progress.
	AvgAliensAlive float64
	Kills          int // roster shrinkage across the window
	ScoreDelta     int

	// Traffic averages.
	AvgShipBullets  float64
	AvgAlienBullets float64
	AvgMissiles     float64

	// Defensive systems: fraction of samples with the system engaged.
	ShieldUptimePct float64
	OmegaUptimePct  float64

	// Attrition on our side.
	ShelterDamageDelta int
	SheltersLost       int

	// AdvanceDepth is how many px the deepest alien centre dropped across
	// the window; positive means the wave is closing in.
	AdvanceDepth float64

	Outcome Outcome
}

// WindowSummary returns an aggregated summary over the recent time window.
func (r *SimReporter) WindowSummary() *WindowReport {
	if len(r.history) == 0 {
		return nil
	}

	// Find reports within the window, newest first.
	latestTick := r.history[len(r.history)-1].Tick
	cutoff := latestTick - r.windowTicks
	var window []SimReport
	for i := len(r.history) - 1; i >= 0; i-- {
		if r.history[i].Tick < cutoff {
			break
		}
		window = append(window, r.history[i])
	}
	if len(window) == 0 {
		return nil
	}

	newest := window[0]
	oldest := window[len(window)-1]

	n := float64(len(window))
	wr := &WindowReport{
		FromTick:    oldest.Tick,
		ToTick:      newest.Tick,
		SampleCount: len(window),
		Outcome:     newest.Outcome,
	}

	shieldSamples, omegaSamples := 0, 0
	for _, rpt := range window {
		wr.AvgAliensAlive += float64(rpt.AliensAlive)
		wr.AvgShipBullets += float64(rpt.ShipBullets)
		wr.AvgAlienBullets += float64(rpt.AlienBullets)
		wr.AvgMissiles += float64(rpt.Missiles)
		if rpt.ShieldActive {
			shieldSamples++
		}
		if rpt.OmegaActive {
			omegaSamples++
		}
	}

	wr.AvgAliensAlive /= n
	wr.AvgShipBullets /= n
	wr.AvgAlienBullets /= n
	wr.AvgMissiles /= n
	wr.ShieldUptimePct = float64(shieldSamples) / n * 100
	wr.OmegaUptimePct = float64(omegaSamples) / n * 100

	wr.Kills = oldest.AliensAlive - newest.AliensAlive
	wr.ScoreDelta = newest.Score - oldest.Score
	wr.ShelterDamageDelta = newest.ShelterDamageTotal - oldest.ShelterDamageTotal
	wr.SheltersLost = oldest.SheltersAlive - newest.SheltersAlive
	wr.AdvanceDepth = newest.LowestCenterY - oldest.LowestCenterY

	return wr
}

// Format returns a human-readable multi-line string of the window summary.
func (wr *WindowReport) Format() string {
	if wr == nil {
		return "No data collected yet.\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Behaviour Report (T=%d..%d, %d samples) ===\n",
		wr.FromTick, wr.ToTick, wr.SampleCount)

	sb.WriteString("\n--- Roster ---\n")
	fmt.Fprintf(&sb, "  avg alive=%.1f  kills=%d  score_delta=%+d\n",
		wr.AvgAliensAlive, wr.Kills, wr.ScoreDelta)
	fmt.Fprintf(&sb, "  advance_depth=%+.0fpx (%s)\n",
		wr.AdvanceDepth, pressureLabel(wr.AdvanceDepth))

	sb.WriteString("\n--- Traffic ---\n")
	fmt.Fprintf(&sb, "  avg bullets: ship=%.1f alien=%.1f  avg missiles=%.1f\n",
		wr.AvgShipBullets, wr.AvgAlienBullets, wr.AvgMissiles)

	sb.WriteString("\n--- Ship Systems ---\n")
	fmt.Fprintf(&sb, "  shield_uptime=%.0f%%  omega_uptime=%.0f%%\n",
		wr.ShieldUptimePct, wr.OmegaUptimePct)

	sb.WriteString("\n--- Attrition ---\n")
	fmt.Fprintf(&sb, "  shelter_damage=%+d  shelters_lost=%d\n",
		wr.ShelterDamageDelta, wr.SheltersLost)

	fmt.Fprintf(&sb, "\noutcome=%s\n", wr.Outcome)
	return sb.String()
}

func pressureLabel(depth float64) string {
	switch {
	case depth > 72:
		return "wave closing fast"
	case depth > 36:
		return "wave advancing"
	case depth > 0:
		return "slow descent"
	default:
		return "holding"
	}
}

// FormatLatest returns a concise snapshot of the most recent collected report.
func (r *SimReporter) FormatLatest() string {
	rpt := r.Latest()
	if rpt == nil {
		return "No data.\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Snapshot T=%d ---\n", rpt.Tick)
	fmt.Fprintf(&sb, "Aliens: alive=%d dying=%d rows=%d deepest_cy=%.0f\n",
		rpt.AliensAlive, rpt.AliensDying, rpt.RowsOccupied, rpt.LowestCenterY)
	fmt.Fprintf(&sb, "Bullets: ship=%d alien=%d  missiles=%d\n",
		rpt.ShipBullets, rpt.AlienBullets, rpt.Missiles)
	fmt.Fprintf(&sb, "Ship: exploding=%v shield=%v omega=%v\n",
		rpt.ShipExploding, rpt.ShieldActive, rpt.OmegaActive)
	fmt.Fprintf(&sb, "Shelters: alive=%d total_damage=%d\n",
		rpt.SheltersAlive, rpt.ShelterDamageTotal)
	fmt.Fprintf(&sb, "Score: %d  outcome=%s\n", rpt.Score, rpt.Outcome)
	return sb.String()
}
