package game

// Outcome is the terminal state of one game. It latches: once a world leaves
// OutcomePlaying the outcome system never rewrites it.
type Outcome int

const (
	OutcomePlaying Outcome = iota
	OutcomeWon
	OutcomeLost
)

func (o Outcome) String() string {
	switch o {
	case OutcomePlaying:
		return "playing"
	case OutcomeWon:
		return "won"
	case OutcomeLost:
		return "lost"
	default:
		return "unknown"
	}
}

// determineOutcome checks the end conditions against the current roster:
// an empty roster is a win, any alien whose center has sunk to the lose line
// is a loss. Exploding aliens still count for the loss check; a dying alien
// at the bottom edge has still breached the line.
func determineOutcome(w *World) Outcome {
	if len(w.Aliens) == 0 {
		return OutcomeWon
	}
	loseY := w.ViewH - loseLineLift
	for _, a := range w.Aliens {
		if a.Rect.Center().Y >= loseY {
			return OutcomeLost
		}
	}
	return OutcomePlaying
}
