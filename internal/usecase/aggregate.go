package usecase

import (
	"fmt"
	"sort"

	"github.com/ftbarchive/show-stats/internal/domain/headtohead"
	"github.com/ftbarchive/show-stats/internal/domain/match"
	"github.com/ftbarchive/show-stats/internal/domain/participation"
	"github.com/ftbarchive/show-stats/internal/domain/seasonstats"
	"github.com/ftbarchive/show-stats/internal/domain/standing"
)

// SkippedMatch flags a completed match the aggregators excluded instead of
// guessing at its result.
type SkippedMatch struct {
	MatchID int64  `json:"match_id"`
	Reason  string `json:"reason"`
}

// countableOutcome classifies one completed match for aggregation. Matches the
// resolver cannot decide are returned with a skip reason instead of a result.
func countableOutcome(m match.Match) (match.Outcome, string) {
	if m.HasInconsistentShootout() {
		return match.OutcomeUndecided, "one shootout score is recorded without the other"
	}

	outcome := match.ResolveOutcome(m, m.HomeTeamID)
	if outcome != match.OutcomeUndecided {
		return outcome, ""
	}

	if !m.IsDecided() {
		return match.OutcomeUndecided, "main score is not recorded"
	}
	if m.WentToShootout() {
		return match.OutcomeUndecided, "shootout ended level"
	}
	return match.OutcomeUndecided, "level score has no shootout result recorded"
}

// ComputeStandings folds a season's matches into one standings row per team.
// Rows come back in the order teams first appear in the match list; callers
// wanting a table rank them with RankStandings. Completed matches that cannot
// be decided are skipped and reported, never counted.
func ComputeStandings(seasonID int64, matches []match.Match) ([]standing.Row, []SkippedMatch) {
	byTeam := make(map[int64]*standing.Row)
	order := make([]int64, 0, len(matches)*2)
	var skipped []SkippedMatch

	rowFor := func(teamID int64) *standing.Row {
		if row, ok := byTeam[teamID]; ok {
			return row
		}
		row := &standing.Row{TeamID: teamID, SeasonID: seasonID}
		byTeam[teamID] = row
		order = append(order, teamID)
		return row
	}

	for _, m := range matches {
		if m.Status != match.StatusCompleted {
			continue
		}

		homeOutcome, reason := countableOutcome(m)
		if reason != "" {
			skipped = append(skipped, SkippedMatch{MatchID: m.ID, Reason: reason})
			continue
		}

		home := rowFor(m.HomeTeamID)
		away := rowFor(m.AwayTeamID)

		home.Played++
		away.Played++
		home.GoalsFor += *m.HomeScore
		home.GoalsAgainst += *m.AwayScore
		away.GoalsFor += *m.AwayScore
		away.GoalsAgainst += *m.HomeScore

		switch homeOutcome {
		case match.OutcomeWin:
			home.Wins++
			away.Losses++
		case match.OutcomeLoss:
			home.Losses++
			away.Wins++
		case match.OutcomeDraw:
			home.Draws++
			away.Draws++
		}
	}

	rows := make([]standing.Row, 0, len(order))
	for _, teamID := range order {
		row := byTeam[teamID]
		row.GoalDifference = row.GoalsFor - row.GoalsAgainst
		row.Points = row.Wins*3 + row.Draws
		rows = append(rows, *row)
	}
	return rows, skipped
}

// RankStandings orders rows by points, then goal difference, then goals for,
// all descending. Remaining ties keep their incoming order.
func RankStandings(rows []standing.Row) []standing.Row {
	ranked := make([]standing.Row, len(rows))
	copy(ranked, rows)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Points != ranked[j].Points {
			return ranked[i].Points > ranked[j].Points
		}
		if ranked[i].GoalDifference != ranked[j].GoalDifference {
			return ranked[i].GoalDifference > ranked[j].GoalDifference
		}
		return ranked[i].GoalsFor > ranked[j].GoalsFor
	})
	return ranked
}

// TeamRowsFromStandings projects standings rows into the team season totals
// table shape. Both families are derived from the same fold so they can never
// disagree with each other, only with what is persisted.
func TeamRowsFromStandings(rows []standing.Row) []seasonstats.TeamRow {
	out := make([]seasonstats.TeamRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, seasonstats.TeamRow{
			TeamID:       row.TeamID,
			SeasonID:     row.SeasonID,
			Played:       row.Played,
			Wins:         row.Wins,
			Draws:        row.Draws,
			Losses:       row.Losses,
			GoalsFor:     row.GoalsFor,
			GoalsAgainst: row.GoalsAgainst,
			Points:       row.Points,
		})
	}
	return out
}

// ComputePlayerSeasonStats sums per-match participation records into one row
// per player. Players with no participation in scope are omitted, not
// zero-filled. Rows come back ordered by player id.
func ComputePlayerSeasonStats(seasonID int64, parts []participation.Participation) []seasonstats.PlayerRow {
	byPlayer := make(map[int64]*seasonstats.PlayerRow)
	for _, p := range parts {
		if p.SeasonID != seasonID {
			continue
		}
		row, ok := byPlayer[p.PlayerID]
		if !ok {
			row = &seasonstats.PlayerRow{PlayerID: p.PlayerID, SeasonID: seasonID}
			byPlayer[p.PlayerID] = row
		}
		row.Played++
		row.Goals += p.Goals
		row.Assists += p.Assists
		row.MinutesPlayed += p.MinutesPlayed
		row.YellowCards += p.YellowCards
		row.RedCards += p.RedCards
	}

	out := make([]seasonstats.PlayerRow, 0, len(byPlayer))
	for _, row := range byPlayer {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })
	return out
}

// ComputeHeadToHeadPairs folds matches into perspective-free pair rows keyed
// by the canonical (small, large) team ordering. Counters are accumulated from
// the small side's perspective; the output is ordered by canonical key.
func ComputeHeadToHeadPairs(matches []match.Match) ([]headtohead.PairStats, []SkippedMatch) {
	byKey := make(map[headtohead.PairKey]*headtohead.PairStats)
	var skipped []SkippedMatch

	for _, m := range matches {
		if m.Status != match.StatusCompleted {
			continue
		}

		key, err := headtohead.NewPairKey(m.HomeTeamID, m.AwayTeamID)
		if err != nil {
			skipped = append(skipped, SkippedMatch{MatchID: m.ID, Reason: fmt.Sprintf("invalid team pair: %v", err)})
			continue
		}

		outcome, reason := countableOutcome(m)
		if reason != "" {
			skipped = append(skipped, SkippedMatch{MatchID: m.ID, Reason: reason})
			continue
		}

		stats, ok := byKey[key]
		if !ok {
			stats = &headtohead.PairStats{Key: key}
			byKey[key] = stats
		}

		smallOutcome := outcome
		smallGoals, largeGoals := *m.HomeScore, *m.AwayScore
		if m.HomeTeamID != key.SmallID {
			smallOutcome = outcome.Opposite()
			smallGoals, largeGoals = largeGoals, smallGoals
		}

		stats.TotalMatches++
		stats.SmallGoals += smallGoals
		stats.LargeGoals += largeGoals
		switch smallOutcome {
		case match.OutcomeWin:
			stats.SmallWins++
		case match.OutcomeLoss:
			stats.LargeWins++
		case match.OutcomeDraw:
			stats.Draws++
		}
	}

	out := make([]headtohead.PairStats, 0, len(byKey))
	for _, stats := range byKey {
		out = append(out, *stats)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Key.SmallID != out[j].Key.SmallID {
			return out[i].Key.SmallID < out[j].Key.SmallID
		}
		return out[i].Key.LargeID < out[j].Key.LargeID
	})
	return out, skipped
}
