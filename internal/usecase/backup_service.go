package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/ftbarchive/show-stats/internal/domain/headtohead"
	"github.com/ftbarchive/show-stats/internal/domain/seasonstats"
	"github.com/ftbarchive/show-stats/internal/domain/standing"
	"github.com/ftbarchive/show-stats/internal/platform/cache"
	"github.com/ftbarchive/show-stats/internal/platform/logging"
)

const (
	familyStandings   = "standings"
	familyPlayerStats = "player_season_stats"
	familyTeamStats   = "team_season_stats"
	familyPairStats   = "h2h_pair_stats"
)

// Snapshot is the wire and file format of one backup. Rows are copied
// verbatim from the aggregate tables: no recomputation, no validation.
type Snapshot struct {
	CreatedAt         time.Time             `json:"created_at"`
	SeasonID          *int64                `json:"season_id,omitempty"`
	Standings         []StandingSnapshot    `json:"standings"`
	PlayerSeasonStats []PlayerStatsSnapshot `json:"player_season_stats"`
	TeamSeasonStats   []TeamStatsSnapshot   `json:"team_season_stats"`
	H2HPairStats      []PairStatsSnapshot   `json:"h2h_pair_stats"`
}

type StandingSnapshot struct {
	TeamID         int64 `json:"team_id"`
	SeasonID       int64 `json:"season_id"`
	Played         int   `json:"played"`
	Wins           int   `json:"wins"`
	Draws          int   `json:"draws"`
	Losses         int   `json:"losses"`
	GoalsFor       int   `json:"goals_for"`
	GoalsAgainst   int   `json:"goals_against"`
	GoalDifference int   `json:"goal_difference"`
	Points         int   `json:"points"`
}

type PlayerStatsSnapshot struct {
	PlayerID      int64 `json:"player_id"`
	SeasonID      int64 `json:"season_id"`
	Played        int   `json:"played"`
	Goals         int   `json:"goals"`
	Assists       int   `json:"assists"`
	MinutesPlayed int   `json:"minutes_played"`
	YellowCards   int   `json:"yellow_cards"`
	RedCards      int   `json:"red_cards"`
}

type TeamStatsSnapshot struct {
	TeamID       int64 `json:"team_id"`
	SeasonID     int64 `json:"season_id"`
	Played       int   `json:"played"`
	Wins         int   `json:"wins"`
	Draws        int   `json:"draws"`
	Losses       int   `json:"losses"`
	GoalsFor     int   `json:"goals_for"`
	GoalsAgainst int   `json:"goals_against"`
	Points       int   `json:"points"`
}

type PairStatsSnapshot struct {
	TeamSmallID  int64 `json:"team_small_id"`
	TeamLargeID  int64 `json:"team_large_id"`
	TotalMatches int   `json:"total_matches"`
	SmallWins    int   `json:"small_wins"`
	LargeWins    int   `json:"large_wins"`
	Draws        int   `json:"draws"`
	SmallGoals   int   `json:"small_goals"`
	LargeGoals   int   `json:"large_goals"`
}

type BackupResult struct {
	Message  string         `json:"message"`
	File     string         `json:"backup_file"`
	Snapshot Snapshot       `json:"data"`
	Stats    map[string]int `json:"stats"`
}

type BackupService struct {
	standingRepo    standing.Repository
	playerStatsRepo seasonstats.PlayerRepository
	teamStatsRepo   seasonstats.TeamRepository
	pairRepo        headtohead.Repository
	cache           *cache.Store
	dir             string
	logger          *logging.Logger
	now             func() time.Time
}

func NewBackupService(
	standingRepo standing.Repository,
	playerStatsRepo seasonstats.PlayerRepository,
	teamStatsRepo seasonstats.TeamRepository,
	pairRepo headtohead.Repository,
	store *cache.Store,
	dir string,
	logger *logging.Logger,
) *BackupService {
	if logger == nil {
		logger = logging.Default()
	}
	return &BackupService{
		standingRepo:    standingRepo,
		playerStatsRepo: playerStatsRepo,
		teamStatsRepo:   teamStatsRepo,
		pairRepo:        pairRepo,
		cache:           store,
		dir:             dir,
		logger:          logger,
		now:             time.Now,
	}
}

// Backup serializes the current aggregate rows, optionally filtered to one
// season, and writes the snapshot to a timestamped file. Pair rows carry no
// season scope, so the full pair table is included either way.
func (s *BackupService) Backup(ctx context.Context, seasonID *int64) (BackupResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BackupService.Backup")
	defer span.End()

	if seasonID != nil && *seasonID <= 0 {
		return BackupResult{}, fmt.Errorf("%w: season id must be greater than zero", ErrInvalidInput)
	}

	snap := Snapshot{CreatedAt: s.now().UTC(), SeasonID: seasonID}

	var (
		standings []standing.Row
		players   []seasonstats.PlayerRow
		teams     []seasonstats.TeamRow
		err       error
	)
	if seasonID != nil {
		standings, err = s.standingRepo.ListBySeason(ctx, *seasonID)
	} else {
		standings, err = s.standingRepo.ListAll(ctx)
	}
	if err != nil {
		return BackupResult{}, fmt.Errorf("read standings: %w", err)
	}
	if seasonID != nil {
		players, err = s.playerStatsRepo.ListBySeason(ctx, *seasonID)
	} else {
		players, err = s.playerStatsRepo.ListAll(ctx)
	}
	if err != nil {
		return BackupResult{}, fmt.Errorf("read player season stats: %w", err)
	}
	if seasonID != nil {
		teams, err = s.teamStatsRepo.ListBySeason(ctx, *seasonID)
	} else {
		teams, err = s.teamStatsRepo.ListAll(ctx)
	}
	if err != nil {
		return BackupResult{}, fmt.Errorf("read team season stats: %w", err)
	}
	pairs, err := s.pairRepo.List(ctx, 0)
	if err != nil {
		return BackupResult{}, fmt.Errorf("read pair stats: %w", err)
	}

	snap.Standings = standingsToSnapshot(standings)
	snap.PlayerSeasonStats = playerRowsToSnapshot(players)
	snap.TeamSeasonStats = teamRowsToSnapshot(teams)
	snap.H2HPairStats = pairsToSnapshot(pairs)

	file, err := s.writeSnapshotFile(snap)
	if err != nil {
		return BackupResult{}, err
	}

	result := BackupResult{
		Message:  fmt.Sprintf("snapshot written to %s", file),
		File:     file,
		Snapshot: snap,
		Stats: map[string]int{
			familyStandings:   len(snap.Standings),
			familyPlayerStats: len(snap.PlayerSeasonStats),
			familyTeamStats:   len(snap.TeamSeasonStats),
			familyPairStats:   len(snap.H2HPairStats),
		},
	}
	s.logger.InfoContext(ctx, "aggregate snapshot written",
		"file", file,
		"standings", len(snap.Standings),
		"player_season_stats", len(snap.PlayerSeasonStats),
		"team_season_stats", len(snap.TeamSeasonStats),
		"h2h_pair_stats", len(snap.H2HPairStats),
	)
	return result, nil
}

// Restore deletes the in-scope rows of every aggregate family and bulk-inserts
// the snapshot's rows in their place, one transaction per family. It is
// destructive and unconditional: validating the snapshot first is the
// caller's job. With a season scope, only snapshot rows of that season are
// applied; the pair table is always restored whole.
func (s *BackupService) Restore(ctx context.Context, snap Snapshot, seasonID *int64) (map[string]int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BackupService.Restore")
	defer span.End()

	if seasonID != nil && *seasonID <= 0 {
		return nil, fmt.Errorf("%w: season id must be greater than zero", ErrInvalidInput)
	}

	standings := standingsFromSnapshot(snap.Standings)
	players := playerRowsFromSnapshot(snap.PlayerSeasonStats)
	teams := teamRowsFromSnapshot(snap.TeamSeasonStats)
	pairs, err := pairsFromSnapshot(snap.H2HPairStats)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if seasonID != nil {
		standings = filterStandingsBySeason(standings, *seasonID)
		players = filterPlayerRowsBySeason(players, *seasonID)
		teams = filterTeamRowsBySeason(teams, *seasonID)

		if err := s.standingRepo.ReplaceSeason(ctx, *seasonID, standings); err != nil {
			return nil, fmt.Errorf("restore standings season=%d: %w", *seasonID, err)
		}
		if err := s.playerStatsRepo.ReplaceSeason(ctx, *seasonID, players); err != nil {
			return nil, fmt.Errorf("restore player season stats season=%d: %w", *seasonID, err)
		}
		if err := s.teamStatsRepo.ReplaceSeason(ctx, *seasonID, teams); err != nil {
			return nil, fmt.Errorf("restore team season stats season=%d: %w", *seasonID, err)
		}
	} else {
		if err := s.standingRepo.ReplaceAll(ctx, standings); err != nil {
			return nil, fmt.Errorf("restore standings: %w", err)
		}
		if err := s.playerStatsRepo.ReplaceAll(ctx, players); err != nil {
			return nil, fmt.Errorf("restore player season stats: %w", err)
		}
		if err := s.teamStatsRepo.ReplaceAll(ctx, teams); err != nil {
			return nil, fmt.Errorf("restore team season stats: %w", err)
		}
	}
	if err := s.pairRepo.ReplaceAll(ctx, pairs); err != nil {
		return nil, fmt.Errorf("restore pair stats: %w", err)
	}

	if s.cache != nil {
		s.cache.DeletePrefix(ctx, headToHeadCachePrefix)
	}

	restored := map[string]int{
		familyStandings:   len(standings),
		familyPlayerStats: len(players),
		familyTeamStats:   len(teams),
		familyPairStats:   len(pairs),
	}
	s.logger.InfoContext(ctx, "aggregate snapshot restored",
		"standings", restored[familyStandings],
		"player_season_stats", restored[familyPlayerStats],
		"team_season_stats", restored[familyTeamStats],
		"h2h_pair_stats", restored[familyPairStats],
	)
	return restored, nil
}

func (s *BackupService) writeSnapshotFile(snap Snapshot) (string, error) {
	name := "stats_backup_" + snap.CreatedAt.Format("20060102T150405Z")
	if snap.SeasonID != nil {
		name += fmt.Sprintf("_season_%d", *snap.SeasonID)
	}
	path := filepath.Join(s.dir, name+".json")

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(snap); err != nil {
		return "", errors.Wrap(err, "encode snapshot")
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", errors.Wrapf(err, "create backup dir %s", s.dir)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", errors.Wrapf(err, "write snapshot file %s", path)
	}
	return path, nil
}

func standingsToSnapshot(rows []standing.Row) []StandingSnapshot {
	out := make([]StandingSnapshot, 0, len(rows))
	for _, r := range rows {
		out = append(out, StandingSnapshot{
			TeamID:         r.TeamID,
			SeasonID:       r.SeasonID,
			Played:         r.Played,
			Wins:           r.Wins,
			Draws:          r.Draws,
			Losses:         r.Losses,
			GoalsFor:       r.GoalsFor,
			GoalsAgainst:   r.GoalsAgainst,
			GoalDifference: r.GoalDifference,
			Points:         r.Points,
		})
	}
	return out
}

func standingsFromSnapshot(rows []StandingSnapshot) []standing.Row {
	out := make([]standing.Row, 0, len(rows))
	for _, r := range rows {
		out = append(out, standing.Row{
			TeamID:         r.TeamID,
			SeasonID:       r.SeasonID,
			Played:         r.Played,
			Wins:           r.Wins,
			Draws:          r.Draws,
			Losses:         r.Losses,
			GoalsFor:       r.GoalsFor,
			GoalsAgainst:   r.GoalsAgainst,
			GoalDifference: r.GoalDifference,
			Points:         r.Points,
		})
	}
	return out
}

func playerRowsToSnapshot(rows []seasonstats.PlayerRow) []PlayerStatsSnapshot {
	out := make([]PlayerStatsSnapshot, 0, len(rows))
	for _, r := range rows {
		out = append(out, PlayerStatsSnapshot{
			PlayerID:      r.PlayerID,
			SeasonID:      r.SeasonID,
			Played:        r.Played,
			Goals:         r.Goals,
			Assists:       r.Assists,
			MinutesPlayed: r.MinutesPlayed,
			YellowCards:   r.YellowCards,
			RedCards:      r.RedCards,
		})
	}
	return out
}

func playerRowsFromSnapshot(rows []PlayerStatsSnapshot) []seasonstats.PlayerRow {
	out := make([]seasonstats.PlayerRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, seasonstats.PlayerRow{
			PlayerID:      r.PlayerID,
			SeasonID:      r.SeasonID,
			Played:        r.Played,
			Goals:         r.Goals,
			Assists:       r.Assists,
			MinutesPlayed: r.MinutesPlayed,
			YellowCards:   r.YellowCards,
			RedCards:      r.RedCards,
		})
	}
	return out
}

func teamRowsToSnapshot(rows []seasonstats.TeamRow) []TeamStatsSnapshot {
	out := make([]TeamStatsSnapshot, 0, len(rows))
	for _, r := range rows {
		out = append(out, TeamStatsSnapshot{
			TeamID:       r.TeamID,
			SeasonID:     r.SeasonID,
			Played:       r.Played,
			Wins:         r.Wins,
			Draws:        r.Draws,
			Losses:       r.Losses,
			GoalsFor:     r.GoalsFor,
			GoalsAgainst: r.GoalsAgainst,
			Points:       r.Points,
		})
	}
	return out
}

func teamRowsFromSnapshot(rows []TeamStatsSnapshot) []seasonstats.TeamRow {
	out := make([]seasonstats.TeamRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, seasonstats.TeamRow{
			TeamID:       r.TeamID,
			SeasonID:     r.SeasonID,
			Played:       r.Played,
			Wins:         r.Wins,
			Draws:        r.Draws,
			Losses:       r.Losses,
			GoalsFor:     r.GoalsFor,
			GoalsAgainst: r.GoalsAgainst,
			Points:       r.Points,
		})
	}
	return out
}

func pairsToSnapshot(rows []headtohead.PairStats) []PairStatsSnapshot {
	out := make([]PairStatsSnapshot, 0, len(rows))
	for _, r := range rows {
		out = append(out, PairStatsSnapshot{
			TeamSmallID:  r.Key.SmallID,
			TeamLargeID:  r.Key.LargeID,
			TotalMatches: r.TotalMatches,
			SmallWins:    r.SmallWins,
			LargeWins:    r.LargeWins,
			Draws:        r.Draws,
			SmallGoals:   r.SmallGoals,
			LargeGoals:   r.LargeGoals,
		})
	}
	return out
}

func pairsFromSnapshot(rows []PairStatsSnapshot) ([]headtohead.PairStats, error) {
	out := make([]headtohead.PairStats, 0, len(rows))
	for _, r := range rows {
		key, err := headtohead.NewPairKey(r.TeamSmallID, r.TeamLargeID)
		if err != nil {
			return nil, fmt.Errorf("pair (%d,%d): %v", r.TeamSmallID, r.TeamLargeID, err)
		}
		out = append(out, headtohead.PairStats{
			Key:          key,
			TotalMatches: r.TotalMatches,
			SmallWins:    r.SmallWins,
			LargeWins:    r.LargeWins,
			Draws:        r.Draws,
			SmallGoals:   r.SmallGoals,
			LargeGoals:   r.LargeGoals,
		})
	}
	return out, nil
}

func filterStandingsBySeason(rows []standing.Row, seasonID int64) []standing.Row {
	out := make([]standing.Row, 0, len(rows))
	for _, r := range rows {
		if r.SeasonID == seasonID {
			out = append(out, r)
		}
	}
	return out
}

func filterPlayerRowsBySeason(rows []seasonstats.PlayerRow, seasonID int64) []seasonstats.PlayerRow {
	out := make([]seasonstats.PlayerRow, 0, len(rows))
	for _, r := range rows {
		if r.SeasonID == seasonID {
			out = append(out, r)
		}
	}
	return out
}

func filterTeamRowsBySeason(rows []seasonstats.TeamRow, seasonID int64) []seasonstats.TeamRow {
	out := make([]seasonstats.TeamRow, 0, len(rows))
	for _, r := range rows {
		if r.SeasonID == seasonID {
			out = append(out, r)
		}
	}
	return out
}
