package headtohead

import "fmt"

// PairKey identifies an unordered team pair. The constructor canonicalizes the
// two ids into (small, large) numeric order, so looking up (A,B) and (B,A)
// always hits the same stored row.
type PairKey struct {
	SmallID int64
	LargeID int64
}

func NewPairKey(teamAID, teamBID int64) (PairKey, error) {
	if teamAID <= 0 || teamBID <= 0 {
		return PairKey{}, fmt.Errorf("team ids must be > 0")
	}
	if teamAID == teamBID {
		return PairKey{}, fmt.Errorf("a pair needs two distinct teams")
	}
	if teamAID < teamBID {
		return PairKey{SmallID: teamAID, LargeID: teamBID}, nil
	}
	return PairKey{SmallID: teamBID, LargeID: teamAID}, nil
}

func (k PairKey) Contains(teamID int64) bool {
	return k.SmallID == teamID || k.LargeID == teamID
}

func (k PairKey) String() string {
	return fmt.Sprintf("%d-%d", k.SmallID, k.LargeID)
}

// PairStats is the perspective-free stored aggregate for one team pair. All
// counters are expressed in terms of the canonical (small, large) ordering;
// perspective only enters when a summary is produced.
type PairStats struct {
	Key          PairKey
	TotalMatches int
	SmallWins    int
	LargeWins    int
	Draws        int
	SmallGoals   int
	LargeGoals   int
}

func (s PairStats) CheckInvariants() error {
	if s.TotalMatches != s.SmallWins+s.LargeWins+s.Draws {
		return fmt.Errorf("total_matches=%d does not equal small_wins+large_wins+draws=%d",
			s.TotalMatches, s.SmallWins+s.LargeWins+s.Draws)
	}
	return nil
}

// Summary is the head-to-head record seen from one team's perspective.
type Summary struct {
	Wins         int
	Draws        int
	Losses       int
	GoalsFor     int
	GoalsAgainst int
}

// SummaryFor maps the stored pair row into teamID's perspective. This swap is
// the only place perspective-dependent logic lives.
func (s PairStats) SummaryFor(teamID int64) (Summary, error) {
	if !s.Key.Contains(teamID) {
		return Summary{}, fmt.Errorf("team %d is not part of pair %s", teamID, s.Key)
	}
	if teamID == s.Key.SmallID {
		return Summary{
			Wins:         s.SmallWins,
			Draws:        s.Draws,
			Losses:       s.LargeWins,
			GoalsFor:     s.SmallGoals,
			GoalsAgainst: s.LargeGoals,
		}, nil
	}
	return Summary{
		Wins:         s.LargeWins,
		Draws:        s.Draws,
		Losses:       s.SmallWins,
		GoalsFor:     s.LargeGoals,
		GoalsAgainst: s.SmallGoals,
	}, nil
}
