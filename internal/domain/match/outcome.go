package match

// Outcome is a match result seen from one team's perspective.
type Outcome string

const (
	OutcomeWin       Outcome = "win"
	OutcomeDraw      Outcome = "draw"
	OutcomeLoss      Outcome = "loss"
	OutcomeUndecided Outcome = "undecided"
)

// Opposite returns the outcome from the other side's perspective.
func (o Outcome) Opposite() Outcome {
	switch o {
	case OutcomeWin:
		return OutcomeLoss
	case OutcomeLoss:
		return OutcomeWin
	default:
		return o
	}
}

// ResolveOutcome resolves the match result from teamID's perspective.
//
// A level main score is settled by the shootout when both shootout scores are
// recorded. A level score without shootout data, and the unreachable case of a
// level shootout, both resolve to OutcomeUndecided: the show's rules credit a
// win or a loss (never a draw) once penalties are possible, so such matches
// must not increment any counter. Callers are expected to flag them.
func ResolveOutcome(m Match, teamID int64) Outcome {
	goalsFor, goalsAgainst, ok := m.ScoreFor(teamID)
	if !ok {
		return OutcomeUndecided
	}

	if goalsFor > goalsAgainst {
		return OutcomeWin
	}
	if goalsFor < goalsAgainst {
		return OutcomeLoss
	}

	if !m.WentToShootout() {
		return OutcomeUndecided
	}

	penFor, penAgainst := *m.PenaltyHomeScore, *m.PenaltyAwayScore
	if teamID == m.AwayTeamID {
		penFor, penAgainst = penAgainst, penFor
	}
	if penFor > penAgainst {
		return OutcomeWin
	}
	if penFor < penAgainst {
		return OutcomeLoss
	}
	return OutcomeUndecided
}
