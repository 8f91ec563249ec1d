package game

import (
	"fmt"
	"sort"
	"strings"
)

// Performance grading thresholds.
const (
	perfMinShots      = 5    // don't grade gunnery on fewer shots than this
	perfGunneryPar    = 0.35 // bullet kills per shot that scores 100
	perfTempoPar      = 30.0 // kills per minute that scores 100
	perfShipHitCost   = 25.0 // defense points lost per ship hit
	perfShelterCost   = 2.5  // shelter points lost per damage increment
	perfShelterLost   = 15.0 // shelter points lost per destroyed shelter
	perfWinBonus      = 10.0
	perfLossScoreCap  = 55.0
	perfMinGradeTicks = 600 // a run shorter than this grades tempo as no-data
)

// RunGrade is the computed performance grade for one run.
type RunGrade struct {
	Seed          int64
	Grade         string  // A+, A, B+, B, C+, C, D, F
	Score         float64 // 0-100
	Won           bool
	Outcome       Outcome
	DurationTicks int

	// Facet scores (0-100; -1 = not enough data to grade).
	GunneryScore  float64
	OrdnanceScore float64
	DefenseScore  float64
	TempoScore    float64
	ShelterScore  float64

	// Key stats.
	Shots           int
	Kills           int
	BulletKills     int
	MissileLaunches int
	MissileKills    int
	BeamKills       int
	ShipHits        int
	ShelterDamage   int
	SheltersLost    int
	PointsScored    int

	// Observed traits.
	GoodTraits []string
	BadTraits  []string
}

// Grade computes the run grade for the simulation so far.
func (ts *TestSim) Grade() RunGrade {
	return GradeRun(ts.seed, ts.Events, ts.World, ts.tick)
}

// GradeRun computes a grade from a run's event log and final world state.
// Every number it needs comes out of the log, so it can grade any finished
// or in-progress run without having watched it.
func GradeRun(seed int64, events *EventLog, w *World, ticks int) RunGrade {
	g := RunGrade{
		Seed:          seed,
		DurationTicks: ticks,
		Won:           w.Outcome == OutcomeWon,
		Outcome:       w.Outcome,
		PointsScored:  w.Score,
		GunneryScore:  -1,
		OrdnanceScore: -1,
		DefenseScore:  -1,
		TempoScore:    -1,
		ShelterScore:  -1,
	}

	g.Shots = events.CountCategory("fire", "shot")
	g.BulletKills = events.CountCategory("kill", "bullet")
	g.MissileKills = events.CountCategory("kill", "missile")
	g.BeamKills = events.CountCategory("kill", "beam")
	g.Kills = g.BulletKills + g.MissileKills + g.BeamKills
	g.MissileLaunches = events.CountCategory("missile", "launch")
	g.ShipHits = events.CountCategory("ship", "hit")
	g.ShelterDamage = events.CountCategory("shelter", "damage")
	g.SheltersLost = events.CountCategory("shelter", "destroyed")

	if g.Shots >= perfMinShots {
		g.GunneryScore = perfClamp(perfFrac(g.BulletKills, g.Shots) / perfGunneryPar * 100)
	}
	if g.MissileLaunches > 0 {
		g.OrdnanceScore = perfClamp(perfFrac(g.MissileKills, g.MissileLaunches) * 100)
	}
	g.DefenseScore = perfClamp(100 - perfShipHitCost*float64(g.ShipHits))
	if ticks >= perfMinGradeTicks {
		minutes := float64(ticks) / 3600.0
		g.TempoScore = perfClamp(float64(g.Kills) / minutes / perfTempoPar * 100)
	}
	if len(w.Shelters) > 0 {
		g.ShelterScore = perfClamp(100 - perfShelterCost*float64(g.ShelterDamage) - perfShelterLost*float64(g.SheltersLost))
	}

	// Weighted overall across the facets that have data.
	type facet struct {
		score  float64
		weight float64
	}
	facets := []facet{
		{g.GunneryScore, 0.30},
		{g.TempoScore, 0.25},
		{g.DefenseScore, 0.20},
		{g.OrdnanceScore, 0.15},
		{g.ShelterScore, 0.10},
	}
	sum, wsum := 0.0, 0.0
	for _, f := range facets {
		if f.score < 0 {
			continue
		}
		sum += f.score * f.weight
		wsum += f.weight
	}
	if wsum > 0 {
		g.Score = sum / wsum
	}
	if g.Won {
		g.Score = perfClamp(g.Score + perfWinBonus)
	} else if w.Outcome == OutcomeLost && g.Score > perfLossScoreCap {
		g.Score = perfLossScoreCap
	}

	g.GoodTraits, g.BadTraits = perfDetectTraits(&g, events)
	g.Grade = PerfLetterGrade(g.Score)
	return g
}

// perfDetectTraits names the behaviours that stood out, good and bad.
func perfDetectTraits(g *RunGrade, events *EventLog) (good, bad []string) {
	if g.Won {
		good = append(good, "closer")
	}
	if g.GunneryScore >= 85 {
		good = append(good, "sharpshooter")
	}
	if g.MissileLaunches >= 3 && g.MissileKills == g.MissileLaunches {
		good = append(good, "missile_ace")
	}
	if g.BeamKills >= 10 {
		good = append(good, "beam_reaper")
	}
	if g.ShipHits == 0 && g.DurationTicks >= perfMinGradeTicks {
		good = append(good, "untouchable")
	}

	if g.Shots >= 40 && perfFrac(g.BulletKills, g.Shots) < 0.10 {
		bad = append(bad, "spray_and_pray")
	}
	if g.MissileLaunches >= 3 && g.MissileKills == 0 {
		bad = append(bad, "wasted_ordnance")
	}
	if g.ShipHits >= 3 {
		bad = append(bad, "bullet_magnet")
	}
	incoming := events.CountCategory("fire", "alien_shot")
	shields := events.CountCategory("shield", "up")
	if incoming >= 20 && shields == 0 {
		bad = append(bad, "shield_idle")
	}
	if g.SheltersLost > 0 {
		bad = append(bad, "shelters_flattened")
	}
	if g.Outcome == OutcomeLost {
		bad = append(bad, "wave_reached_floor")
	}
	return good, bad
}

// FormatGrade returns a human-readable performance report for one run.
func FormatGrade(g RunGrade) string {
	var sb strings.Builder
	sb.WriteString("\n=== Run Performance ===\n")

	fmt.Fprintf(&sb, "  %-3s  seed=%d  [%s]  points=%d  kills=%d/%d shots  ship_hits=%d\n",
		g.Grade, g.Seed, g.Outcome, g.PointsScored, g.Kills, g.Shots, g.ShipHits)

	if len(g.GoodTraits) > 0 {
		fmt.Fprintf(&sb, "       Good: %s\n", strings.Join(g.GoodTraits, ", "))
	}
	if len(g.BadTraits) > 0 {
		fmt.Fprintf(&sb, "       Bad:  %s\n", strings.Join(g.BadTraits, ", "))
	}

	var scores []string
	if g.GunneryScore >= 0 {
		scores = append(scores, fmt.Sprintf("Gunnery=%.0f", g.GunneryScore))
	}
	if g.TempoScore >= 0 {
		scores = append(scores, fmt.Sprintf("Tempo=%.0f", g.TempoScore))
	}
	if g.DefenseScore >= 0 {
		scores = append(scores, fmt.Sprintf("Defense=%.0f", g.DefenseScore))
	}
	if g.OrdnanceScore >= 0 {
		scores = append(scores, fmt.Sprintf("Ordnance=%.0f", g.OrdnanceScore))
	}
	if g.ShelterScore >= 0 {
		scores = append(scores, fmt.Sprintf("Shelter=%.0f", g.ShelterScore))
	}
	if len(scores) > 0 {
		fmt.Fprintf(&sb, "       Scores: %s\n", strings.Join(scores, "  "))
	}

	return sb.String()
}

// FormatRunsSummary returns a compact summary across several runs.
func FormatRunsSummary(grades []RunGrade) string {
	if len(grades) == 0 {
		return "No runs.\n"
	}

	var sb strings.Builder
	scoreSum := 0.0
	won := 0
	goodCount := map[string]int{}
	badCount := map[string]int{}
	for _, g := range grades {
		scoreSum += g.Score
		if g.Won {
			won++
		}
		for _, t := range g.GoodTraits {
			goodCount[t]++
		}
		for _, t := range g.BadTraits {
			badCount[t]++
		}
	}

	avg := scoreSum / float64(len(grades))
	fmt.Fprintf(&sb, "  avg_score=%.1f (%s)  won=%d/%d\n",
		avg, PerfLetterGrade(avg), won, len(grades))
	if len(goodCount) > 0 {
		fmt.Fprintf(&sb, "    Top good: %s\n", perfTopTraits(goodCount, 4))
	}
	if len(badCount) > 0 {
		fmt.Fprintf(&sb, "    Top bad:  %s\n", perfTopTraits(badCount, 4))
	}
	return sb.String()
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func perfFrac(num, denom int) float64 {
	if denom <= 0 {
		return 0
	}
	return float64(num) / float64(denom)
}

func perfClamp(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

// PerfLetterGrade maps a 0-100 score to a letter grade.
func PerfLetterGrade(score float64) string {
	switch {
	case score >= 93:
		return "A+"
	case score >= 85:
		return "A"
	case score >= 78:
		return "B+"
	case score >= 70:
		return "B"
	case score >= 62:
		return "C+"
	case score >= 55:
		return "C"
	case score >= 45:
		return "D"
	default:
		return "F"
	}
}

func perfTopTraits(counts map[string]int, n int) string {
	type kv struct {
		trait string
		count int
	}
	var items []kv
	for k, v := range counts {
		items = append(items, kv{k, v})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].count != items[j].count {
			return items[i].count > items[j].count
		}
		return items[i].trait < items[j].trait
	})
	if len(items) > n {
		items = items[:n]
	}
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = fmt.Sprintf("%s(%d)", it.trait, it.count)
	}
	return strings.Join(parts, ", ")
}
