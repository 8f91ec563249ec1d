package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/alexsc6955/space-invaders/internal/game"
)

type runStats struct {
	runIndex int
	seed     int64

	firstKillTick    int
	firstBounceTick  int
	firstShipHitTick int
	firstBeamTick    int
	firstMissileTick int
	firstShieldTick  int
	outcomeTick      int

	shots           int
	alienShots      int
	missileLaunches int
	bulletKills     int
	missileKills    int
	beamKills       int
	shieldUps       int
	shipHits        int
	shelterDamage   int
	sheltersLost    int
	bounces         int

	endTick      int
	finalScore   int
	finalOutcome game.Outcome

	windowSummary *game.WindowReport
	grade         game.RunGrade
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var scenario string

	flag.IntVar(&runs, "runs", 5, "number of headless simulation runs")
	flag.IntVar(&ticks, "ticks", 3600, "ticks per run")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&scenario, "scenario", "autopilot", "scenario name")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}
	if scenario != "autopilot" {
		fmt.Printf("error: unsupported scenario %q (supported: autopilot)\n", scenario)
		return
	}

	fmt.Printf("=== Headless Wave Report ===\n")
	fmt.Printf("scenario=%s runs=%d ticks=%d seed_base=%d seed_step=%d\n\n", scenario, runs, ticks, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats := runScenarioAutopilot(i+1, seed, ticks)
		all = append(all, stats)
		printRun(stats)
	}

	printAggregate(all)
}

// runScenarioAutopilot plays one full wave with the scripted pilot on the
// standard scene and collects its event statistics. The run ends at the tick
// limit or as soon as the outcome latches, whichever comes first.
func runScenarioAutopilot(runIndex int, seed int64, ticks int) runStats {
	ts := game.NewTestSim(game.WithSeed(seed))
	pilot := game.NewAutopilot(seed)
	for t := 0; t < ticks; t++ {
		ts.Step(pilot.Intent(ts.World))
		if ts.World.Outcome != game.OutcomePlaying {
			break
		}
	}

	entries := ts.Events.Entries()
	return runStats{
		runIndex:         runIndex,
		seed:             seed,
		firstKillTick:    firstTick(entries, "kill", "", ""),
		firstBounceTick:  firstTick(entries, "formation", "bounce", ""),
		firstShipHitTick: firstTick(entries, "ship", "hit", ""),
		firstBeamTick:    firstTick(entries, "omega", "fire", ""),
		firstMissileTick: firstTick(entries, "missile", "launch", ""),
		firstShieldTick:  firstTick(entries, "shield", "up", ""),
		outcomeTick:      firstTick(entries, "outcome", "final", ""),
		shots:            ts.Events.CountCategory("fire", "shot"),
		alienShots:       ts.Events.CountCategory("fire", "alien_shot"),
		missileLaunches:  ts.Events.CountCategory("missile", "launch"),
		bulletKills:      ts.Events.CountCategory("kill", "bullet"),
		missileKills:     ts.Events.CountCategory("kill", "missile"),
		beamKills:        ts.Events.CountCategory("kill", "beam"),
		shieldUps:        ts.Events.CountCategory("shield", "up"),
		shipHits:         ts.Events.CountCategory("ship", "hit"),
		shelterDamage:    ts.Events.CountCategory("shelter", "damage"),
		sheltersLost:     ts.Events.CountCategory("shelter", "destroyed"),
		bounces:          ts.Events.CountCategory("formation", "bounce"),
		endTick:          ts.CurrentTick(),
		finalScore:       ts.World.Score,
		finalOutcome:     ts.World.Outcome,
		windowSummary:    ts.Reporter.WindowSummary(),
		grade:            ts.Grade(),
	}
}

func firstTick(entries []game.EventEntry, category, key, contains string) int {
	for _, e := range entries {
		if e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			return e.Tick
		}
	}
	return -1
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("phase_markers: first_kill=%d first_bounce=%d first_ship_hit=%d first_beam=%d first_missile=%d first_shield=%d outcome=%d\n",
		rs.firstKillTick, rs.firstBounceTick, rs.firstShipHitTick, rs.firstBeamTick, rs.firstMissileTick, rs.firstShieldTick, rs.outcomeTick)
	fmt.Printf("event_totals: shots=%d alien_shots=%d kills=%d (bullet=%d missile=%d beam=%d) launches=%d shield_ups=%d ship_hits=%d\n",
		rs.shots, rs.alienShots, rs.bulletKills+rs.missileKills+rs.beamKills,
		rs.bulletKills, rs.missileKills, rs.beamKills, rs.missileLaunches, rs.shieldUps, rs.shipHits)
	fmt.Printf("attrition: shelter_damage=%d shelters_destroyed=%d bounces=%d\n",
		rs.shelterDamage, rs.sheltersLost, rs.bounces)
	fmt.Printf("result: outcome=%s score=%d ticks=%d\n", rs.finalOutcome, rs.finalScore, rs.endTick)
	if rs.windowSummary != nil {
		fmt.Printf("window_samples=%d window_tick_range=%d..%d\n",
			rs.windowSummary.SampleCount, rs.windowSummary.FromTick, rs.windowSummary.ToTick)
		fmt.Printf("window_roster: avg_alive=%.1f kills=%d score_delta=%+d advance=%+.0fpx\n",
			rs.windowSummary.AvgAliensAlive, rs.windowSummary.Kills,
			rs.windowSummary.ScoreDelta, rs.windowSummary.AdvanceDepth)
		fmt.Printf("window_traffic: ship_bullets=%.1f alien_bullets=%.1f missiles=%.1f shield_uptime=%.0f%% omega_uptime=%.0f%%\n",
			rs.windowSummary.AvgShipBullets, rs.windowSummary.AvgAlienBullets,
			rs.windowSummary.AvgMissiles, rs.windowSummary.ShieldUptimePct, rs.windowSummary.OmegaUptimePct)
	}
	fmt.Print(game.FormatGrade(rs.grade))
	fmt.Println()
}

func printAggregate(all []runStats) {
	totalShots := 0
	totalAlienShots := 0
	totalBullet := 0
	totalMissile := 0
	totalBeam := 0
	totalLaunches := 0
	totalShieldUps := 0
	totalShipHits := 0
	totalShelterDamage := 0
	totalSheltersLost := 0
	totalBounces := 0
	totalScore := 0
	wins := 0

	killTicks := make([]int, 0, len(all))
	bounceTicks := make([]int, 0, len(all))
	shipHitTicks := make([]int, 0, len(all))
	outcomeTicks := make([]int, 0, len(all))
	grades := make([]game.RunGrade, 0, len(all))

	for _, rs := range all {
		totalShots += rs.shots
		totalAlienShots += rs.alienShots
		totalBullet += rs.bulletKills
		totalMissile += rs.missileKills
		totalBeam += rs.beamKills
		totalLaunches += rs.missileLaunches
		totalShieldUps += rs.shieldUps
		totalShipHits += rs.shipHits
		totalShelterDamage += rs.shelterDamage
		totalSheltersLost += rs.sheltersLost
		totalBounces += rs.bounces
		totalScore += rs.finalScore
		if rs.finalOutcome == game.OutcomeWon {
			wins++
		}
		if rs.firstKillTick >= 0 {
			killTicks = append(killTicks, rs.firstKillTick)
		}
		if rs.firstBounceTick >= 0 {
			bounceTicks = append(bounceTicks, rs.firstBounceTick)
		}
		if rs.firstShipHitTick >= 0 {
			shipHitTicks = append(shipHitTicks, rs.firstShipHitTick)
		}
		if rs.outcomeTick >= 0 {
			outcomeTicks = append(outcomeTicks, rs.outcomeTick)
		}
		grades = append(grades, rs.grade)
	}

	n := len(all)
	fmt.Println("=== Aggregate Wave Inputs ===")
	fmt.Printf("runs=%d wins=%d (%.0f%%) avg_score=%.1f\n", n, wins, avg(wins, n)*100, avg(totalScore, n))
	fmt.Printf("avg_events_per_run: shots=%.1f alien_shots=%.1f kills=%.1f launches=%.1f shield_ups=%.1f ship_hits=%.1f\n",
		avg(totalShots, n), avg(totalAlienShots, n),
		avg(totalBullet+totalMissile+totalBeam, n),
		avg(totalLaunches, n), avg(totalShieldUps, n), avg(totalShipHits, n))
	fmt.Printf("kill_sources_total: bullet=%d missile=%d beam=%d\n", totalBullet, totalMissile, totalBeam)
	fmt.Printf("avg_attrition_per_run: shelter_damage=%.1f shelters_destroyed=%.1f bounces=%.1f\n",
		avg(totalShelterDamage, n), avg(totalSheltersLost, n), avg(totalBounces, n))
	fmt.Printf("phase_marker_avg_ticks: first_kill=%s first_bounce=%s first_ship_hit=%s outcome=%s\n",
		avgTickString(killTicks), avgTickString(bounceTicks), avgTickString(shipHitTicks), avgTickString(outcomeTicks))

	fmt.Println("\n--- Pilot Summary (across all runs) ---")
	fmt.Print(game.FormatRunsSummary(grades))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}
