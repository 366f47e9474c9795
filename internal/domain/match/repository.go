package match

import "context"

// Repository exposes read-only queries over the match event table. Matches are
// written by admin tooling outside this service; aggregation only reads them.
type Repository interface {
	GetByID(ctx context.Context, matchID int64) (Match, bool, error)
	ListBySeason(ctx context.Context, seasonID int64) ([]Match, error)
	ListByTeamAndSeason(ctx context.Context, teamID, seasonID int64) ([]Match, error)
	// ListBetweenTeams returns every match the two teams contested, in either
	// home/away orientation, across all seasons.
	ListBetweenTeams(ctx context.Context, teamAID, teamBID int64) ([]Match, error)
	ListSeasonIDs(ctx context.Context) ([]int64, error)
}
