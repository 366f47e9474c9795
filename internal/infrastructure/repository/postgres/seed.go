package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ftbarchive/show-stats/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the demo archive into an empty database so a fresh
// deployment has data to validate against. It is a no-op once any match row
// exists.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM matches`); err != nil {
		return fmt.Errorf("count matches for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, m := range memory.SeedMatches() {
		if err := namedExec(ctx, tx, `
INSERT INTO matches (id, season_id, home_team_id, away_team_id, home_score, away_score, penalty_home_score, penalty_away_score, status, played_at)
VALUES (:id, :season_id, :home_team_id, :away_team_id, :home_score, :away_score, :penalty_home_score, :penalty_away_score, :status, :played_at)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":                 m.ID,
			"season_id":          m.SeasonID,
			"home_team_id":       m.HomeTeamID,
			"away_team_id":       m.AwayTeamID,
			"home_score":         m.HomeScore,
			"away_score":         m.AwayScore,
			"penalty_home_score": m.PenaltyHomeScore,
			"penalty_away_score": m.PenaltyAwayScore,
			"status":             m.Status,
			"played_at":          m.PlayedAt.UTC(),
		}); err != nil {
			return fmt.Errorf("seed match %d: %w", m.ID, err)
		}
	}

	for _, g := range memory.SeedGoals() {
		if err := namedExec(ctx, tx, `
INSERT INTO goals (id, match_id, player_id, team_id, minute)
VALUES (:id, :match_id, :player_id, :team_id, :minute)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":        g.ID,
			"match_id":  g.MatchID,
			"player_id": g.PlayerID,
			"team_id":   g.TeamID,
			"minute":    g.Minute,
		}); err != nil {
			return fmt.Errorf("seed goal %d: %w", g.ID, err)
		}
	}

	for _, a := range memory.SeedAssists() {
		if err := namedExec(ctx, tx, `
INSERT INTO assists (id, match_id, player_id, team_id, goal_id)
VALUES (:id, :match_id, :player_id, :team_id, :goal_id)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":        a.ID,
			"match_id":  a.MatchID,
			"player_id": a.PlayerID,
			"team_id":   a.TeamID,
			"goal_id":   a.GoalID,
		}); err != nil {
			return fmt.Errorf("seed assist %d: %w", a.ID, err)
		}
	}

	for _, p := range memory.SeedParticipations() {
		if err := namedExec(ctx, tx, `
INSERT INTO match_participations (id, match_id, season_id, player_id, team_id, minutes_played, goals, assists, yellow_cards, red_cards)
VALUES (:id, :match_id, :season_id, :player_id, :team_id, :minutes_played, :goals, :assists, :yellow_cards, :red_cards)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":             p.ID,
			"match_id":       p.MatchID,
			"season_id":      p.SeasonID,
			"player_id":      p.PlayerID,
			"team_id":        p.TeamID,
			"minutes_played": p.MinutesPlayed,
			"goals":          p.Goals,
			"assists":        p.Assists,
			"yellow_cards":   p.YellowCards,
			"red_cards":      p.RedCards,
		}); err != nil {
			return fmt.Errorf("seed participation %d: %w", p.ID, err)
		}
	}

	for _, row := range memory.SeedStandings() {
		if err := namedExec(ctx, tx, `
INSERT INTO standings (team_id, season_id, played, wins, draws, losses, goals_for, goals_against, goal_difference, points)
VALUES (:team_id, :season_id, :played, :wins, :draws, :losses, :goals_for, :goals_against, :goal_difference, :points)
ON CONFLICT (team_id, season_id) DO NOTHING`, map[string]any{
			"team_id":         row.TeamID,
			"season_id":       row.SeasonID,
			"played":          row.Played,
			"wins":            row.Wins,
			"draws":           row.Draws,
			"losses":          row.Losses,
			"goals_for":       row.GoalsFor,
			"goals_against":   row.GoalsAgainst,
			"goal_difference": row.GoalDifference,
			"points":          row.Points,
		}); err != nil {
			return fmt.Errorf("seed standing team=%d: %w", row.TeamID, err)
		}
	}

	for _, row := range memory.SeedPlayerSeasonStats() {
		if err := namedExec(ctx, tx, `
INSERT INTO player_season_stats (player_id, season_id, played, goals, assists, minutes_played, yellow_cards, red_cards)
VALUES (:player_id, :season_id, :played, :goals, :assists, :minutes_played, :yellow_cards, :red_cards)
ON CONFLICT (player_id, season_id) DO NOTHING`, map[string]any{
			"player_id":      row.PlayerID,
			"season_id":      row.SeasonID,
			"played":         row.Played,
			"goals":          row.Goals,
			"assists":        row.Assists,
			"minutes_played": row.MinutesPlayed,
			"yellow_cards":   row.YellowCards,
			"red_cards":      row.RedCards,
		}); err != nil {
			return fmt.Errorf("seed player stats player=%d: %w", row.PlayerID, err)
		}
	}

	for _, row := range memory.SeedTeamSeasonStats() {
		if err := namedExec(ctx, tx, `
INSERT INTO team_season_stats (team_id, season_id, played, wins, draws, losses, goals_for, goals_against, points)
VALUES (:team_id, :season_id, :played, :wins, :draws, :losses, :goals_for, :goals_against, :points)
ON CONFLICT (team_id, season_id) DO NOTHING`, map[string]any{
			"team_id":       row.TeamID,
			"season_id":     row.SeasonID,
			"played":        row.Played,
			"wins":          row.Wins,
			"draws":         row.Draws,
			"losses":        row.Losses,
			"goals_for":     row.GoalsFor,
			"goals_against": row.GoalsAgainst,
			"points":        row.Points,
		}); err != nil {
			return fmt.Errorf("seed team stats team=%d: %w", row.TeamID, err)
		}
	}

	for _, pair := range memory.SeedHeadToHeadPairs() {
		if err := namedExec(ctx, tx, `
INSERT INTO h2h_pair_stats (team_small_id, team_large_id, total_matches, small_wins, large_wins, draws, small_goals, large_goals)
VALUES (:team_small_id, :team_large_id, :total_matches, :small_wins, :large_wins, :draws, :small_goals, :large_goals)
ON CONFLICT (team_small_id, team_large_id) DO NOTHING`, map[string]any{
			"team_small_id": pair.Key.SmallID,
			"team_large_id": pair.Key.LargeID,
			"total_matches": pair.TotalMatches,
			"small_wins":    pair.SmallWins,
			"large_wins":    pair.LargeWins,
			"draws":         pair.Draws,
			"small_goals":   pair.SmallGoals,
			"large_goals":   pair.LargeGoals,
		}); err != nil {
			return fmt.Errorf("seed pair stats %s: %w", pair.Key.String(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}

	return nil
}

func namedExec(ctx context.Context, tx *sqlx.Tx, query string, args map[string]any) error {
	bound, boundArgs, err := sqlx.Named(query, args)
	if err != nil {
		return fmt.Errorf("bind query: %w", err)
	}
	bound = tx.Rebind(bound)
	if _, err := tx.ExecContext(ctx, bound, boundArgs...); err != nil {
		return err
	}
	return nil
}
