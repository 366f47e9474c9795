package memory

import (
	"time"

	"github.com/ftbarchive/show-stats/internal/domain/headtohead"
	"github.com/ftbarchive/show-stats/internal/domain/match"
	"github.com/ftbarchive/show-stats/internal/domain/matchevent"
	"github.com/ftbarchive/show-stats/internal/domain/participation"
	"github.com/ftbarchive/show-stats/internal/domain/seasonstats"
	"github.com/ftbarchive/show-stats/internal/domain/standing"
)

// Demo archive used when no database is configured. The aggregate seed rows
// are consistent with the event seed rows, so a fresh validation run reports
// zero issues until someone mutates a table.
const SeedSeasonID int64 = 1

func SeedMatches() []match.Match {
	return []match.Match{
		{
			ID: 1, SeasonID: SeedSeasonID, HomeTeamID: 1, AwayTeamID: 2,
			HomeScore: match.IntPtr(3), AwayScore: match.IntPtr(1),
			Status: match.StatusCompleted, PlayedAt: time.Date(2026, 3, 7, 19, 0, 0, 0, time.UTC),
		},
		{
			ID: 2, SeasonID: SeedSeasonID, HomeTeamID: 3, AwayTeamID: 4,
			HomeScore: match.IntPtr(2), AwayScore: match.IntPtr(2),
			PenaltyHomeScore: match.IntPtr(5), PenaltyAwayScore: match.IntPtr(4),
			Status: match.StatusCompleted, PlayedAt: time.Date(2026, 3, 8, 19, 0, 0, 0, time.UTC),
		},
		{
			ID: 3, SeasonID: SeedSeasonID, HomeTeamID: 2, AwayTeamID: 3,
			HomeScore: match.IntPtr(0), AwayScore: match.IntPtr(2),
			Status: match.StatusCompleted, PlayedAt: time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC),
		},
		{
			ID: 4, SeasonID: SeedSeasonID, HomeTeamID: 4, AwayTeamID: 1,
			HomeScore: match.IntPtr(1), AwayScore: match.IntPtr(2),
			Status: match.StatusCompleted, PlayedAt: time.Date(2026, 3, 15, 19, 0, 0, 0, time.UTC),
		},
		{
			ID: 5, SeasonID: SeedSeasonID, HomeTeamID: 1, AwayTeamID: 3,
			Status: match.StatusScheduled, PlayedAt: time.Date(2026, 3, 21, 19, 0, 0, 0, time.UTC),
		},
	}
}

func SeedGoals() []matchevent.Goal {
	return []matchevent.Goal{
		{ID: 1, MatchID: 1, PlayerID: 10, TeamID: 1, Minute: 12},
		{ID: 2, MatchID: 1, PlayerID: 10, TeamID: 1, Minute: 55},
		{ID: 3, MatchID: 1, PlayerID: 11, TeamID: 1, Minute: 78},
		{ID: 4, MatchID: 1, PlayerID: 20, TeamID: 2, Minute: 83},
		{ID: 5, MatchID: 2, PlayerID: 30, TeamID: 3, Minute: 9},
		{ID: 6, MatchID: 2, PlayerID: 30, TeamID: 3, Minute: 61},
		{ID: 7, MatchID: 2, PlayerID: 40, TeamID: 4, Minute: 33},
		{ID: 8, MatchID: 2, PlayerID: 40, TeamID: 4, Minute: 88},
		{ID: 9, MatchID: 3, PlayerID: 30, TeamID: 3, Minute: 41},
		{ID: 10, MatchID: 3, PlayerID: 31, TeamID: 3, Minute: 72},
		{ID: 11, MatchID: 4, PlayerID: 40, TeamID: 4, Minute: 28},
		{ID: 12, MatchID: 4, PlayerID: 10, TeamID: 1, Minute: 50},
		{ID: 13, MatchID: 4, PlayerID: 11, TeamID: 1, Minute: 90},
	}
}

func SeedAssists() []matchevent.Assist {
	return []matchevent.Assist{
		{ID: 1, MatchID: 1, PlayerID: 11, TeamID: 1, GoalID: 1},
	}
}

func SeedSeasonByMatch() map[int64]int64 {
	out := make(map[int64]int64)
	for _, m := range SeedMatches() {
		out[m.ID] = m.SeasonID
	}
	return out
}

func SeedParticipations() []participation.Participation {
	return []participation.Participation{
		{ID: 1, MatchID: 1, SeasonID: SeedSeasonID, PlayerID: 10, TeamID: 1, MinutesPlayed: 90, Goals: 2},
		{ID: 2, MatchID: 1, SeasonID: SeedSeasonID, PlayerID: 11, TeamID: 1, MinutesPlayed: 90, Goals: 1, Assists: 1},
		{ID: 3, MatchID: 1, SeasonID: SeedSeasonID, PlayerID: 20, TeamID: 2, MinutesPlayed: 90, Goals: 1},
		{ID: 4, MatchID: 2, SeasonID: SeedSeasonID, PlayerID: 30, TeamID: 3, MinutesPlayed: 90, Goals: 2},
		{ID: 5, MatchID: 2, SeasonID: SeedSeasonID, PlayerID: 40, TeamID: 4, MinutesPlayed: 90, Goals: 2},
		{ID: 6, MatchID: 3, SeasonID: SeedSeasonID, PlayerID: 30, TeamID: 3, MinutesPlayed: 90, Goals: 1},
		{ID: 7, MatchID: 3, SeasonID: SeedSeasonID, PlayerID: 31, TeamID: 3, MinutesPlayed: 90, Goals: 1},
		{ID: 8, MatchID: 3, SeasonID: SeedSeasonID, PlayerID: 20, TeamID: 2, MinutesPlayed: 90},
		{ID: 9, MatchID: 4, SeasonID: SeedSeasonID, PlayerID: 40, TeamID: 4, MinutesPlayed: 90, Goals: 1},
		{ID: 10, MatchID: 4, SeasonID: SeedSeasonID, PlayerID: 10, TeamID: 1, MinutesPlayed: 90, Goals: 1},
		{ID: 11, MatchID: 4, SeasonID: SeedSeasonID, PlayerID: 11, TeamID: 1, MinutesPlayed: 90, Goals: 1},
	}
}

func SeedStandings() []standing.Row {
	return []standing.Row{
		{TeamID: 1, SeasonID: SeedSeasonID, Played: 2, Wins: 2, GoalsFor: 5, GoalsAgainst: 2, GoalDifference: 3, Points: 6},
		{TeamID: 2, SeasonID: SeedSeasonID, Played: 2, Losses: 2, GoalsFor: 1, GoalsAgainst: 5, GoalDifference: -4},
		{TeamID: 3, SeasonID: SeedSeasonID, Played: 2, Wins: 2, GoalsFor: 4, GoalsAgainst: 2, GoalDifference: 2, Points: 6},
		{TeamID: 4, SeasonID: SeedSeasonID, Played: 2, Losses: 2, GoalsFor: 3, GoalsAgainst: 4, GoalDifference: -1},
	}
}

func SeedTeamSeasonStats() []seasonstats.TeamRow {
	return []seasonstats.TeamRow{
		{TeamID: 1, SeasonID: SeedSeasonID, Played: 2, Wins: 2, GoalsFor: 5, GoalsAgainst: 2, Points: 6},
		{TeamID: 2, SeasonID: SeedSeasonID, Played: 2, Losses: 2, GoalsFor: 1, GoalsAgainst: 5},
		{TeamID: 3, SeasonID: SeedSeasonID, Played: 2, Wins: 2, GoalsFor: 4, GoalsAgainst: 2, Points: 6},
		{TeamID: 4, SeasonID: SeedSeasonID, Played: 2, Losses: 2, GoalsFor: 3, GoalsAgainst: 4},
	}
}

func SeedPlayerSeasonStats() []seasonstats.PlayerRow {
	return []seasonstats.PlayerRow{
		{PlayerID: 10, SeasonID: SeedSeasonID, Played: 2, Goals: 3, MinutesPlayed: 180},
		{PlayerID: 11, SeasonID: SeedSeasonID, Played: 2, Goals: 2, Assists: 1, MinutesPlayed: 180},
		{PlayerID: 20, SeasonID: SeedSeasonID, Played: 2, Goals: 1, MinutesPlayed: 180},
		{PlayerID: 30, SeasonID: SeedSeasonID, Played: 2, Goals: 3, MinutesPlayed: 180},
		{PlayerID: 31, SeasonID: SeedSeasonID, Played: 1, Goals: 1, MinutesPlayed: 90},
		{PlayerID: 40, SeasonID: SeedSeasonID, Played: 2, Goals: 3, MinutesPlayed: 180},
	}
}

func SeedHeadToHeadPairs() []headtohead.PairStats {
	return []headtohead.PairStats{
		{Key: headtohead.PairKey{SmallID: 1, LargeID: 2}, TotalMatches: 1, SmallWins: 1, SmallGoals: 3, LargeGoals: 1},
		{Key: headtohead.PairKey{SmallID: 1, LargeID: 4}, TotalMatches: 1, SmallWins: 1, SmallGoals: 2, LargeGoals: 1},
		{Key: headtohead.PairKey{SmallID: 2, LargeID: 3}, TotalMatches: 1, LargeWins: 1, SmallGoals: 0, LargeGoals: 2},
		{Key: headtohead.PairKey{SmallID: 3, LargeID: 4}, TotalMatches: 1, SmallWins: 1, SmallGoals: 2, LargeGoals: 2},
	}
}
