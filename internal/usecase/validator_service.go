package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/pool"

	"github.com/ftbarchive/show-stats/internal/domain/headtohead"
	"github.com/ftbarchive/show-stats/internal/domain/match"
	"github.com/ftbarchive/show-stats/internal/domain/matchevent"
	"github.com/ftbarchive/show-stats/internal/domain/participation"
	"github.com/ftbarchive/show-stats/internal/domain/seasonstats"
	"github.com/ftbarchive/show-stats/internal/domain/standing"
	"github.com/ftbarchive/show-stats/internal/platform/logging"
)

const (
	defaultH2HSampleLimit      = 50
	defaultValidatorMaxWorkers = 2
)

type ValidatorConfig struct {
	// H2HSampleLimit bounds how many stored pair rows a run revalidates. The
	// pairwise space is unbounded, so the check samples instead of sweeping.
	H2HSampleLimit int
	// MaxWorkers bounds the per-season workers of an unscoped run.
	MaxWorkers int
}

type ValidationCounts struct {
	Standings         int `json:"standings"`
	PlayerSeasonStats int `json:"player_season_stats"`
	TeamSeasonStats   int `json:"team_season_stats"`
	H2HPairStats      int `json:"h2h_pair_stats"`
}

// ValidationReport is the successful output of a validation run. Issues are
// findings, not errors: a run that discovers drift still succeeds.
type ValidationReport struct {
	Message  string           `json:"message"`
	Valid    bool             `json:"valid"`
	Issues   []string         `json:"issues"`
	Checked  ValidationCounts `json:"checked"`
	SeasonID *int64           `json:"season_id"`
}

type ValidatorService struct {
	matchRepo         match.Repository
	eventRepo         matchevent.Repository
	participationRepo participation.Repository
	standingRepo      standing.Repository
	playerStatsRepo   seasonstats.PlayerRepository
	teamStatsRepo     seasonstats.TeamRepository
	pairRepo          headtohead.Repository
	cfg               ValidatorConfig
	logger            *logging.Logger
}

func NewValidatorService(
	matchRepo match.Repository,
	eventRepo matchevent.Repository,
	participationRepo participation.Repository,
	standingRepo standing.Repository,
	playerStatsRepo seasonstats.PlayerRepository,
	teamStatsRepo seasonstats.TeamRepository,
	pairRepo headtohead.Repository,
	cfg ValidatorConfig,
	logger *logging.Logger,
) *ValidatorService {
	if cfg.H2HSampleLimit <= 0 {
		cfg.H2HSampleLimit = defaultH2HSampleLimit
	}
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = defaultValidatorMaxWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &ValidatorService{
		matchRepo:         matchRepo,
		eventRepo:         eventRepo,
		participationRepo: participationRepo,
		standingRepo:      standingRepo,
		playerStatsRepo:   playerStatsRepo,
		teamStatsRepo:     teamStatsRepo,
		pairRepo:          pairRepo,
		cfg:               cfg,
		logger:            logger,
	}
}

// Validate recomputes every aggregate family from the event tables and diffs
// the results field-by-field against the persisted rows. With a season id the
// run covers that season; without one it covers every season that has matches,
// chunked season-by-season on a bounded worker pool. The pair table carries no
// season scope, so its sampled check runs once either way. The validator never
// mutates anything.
func (s *ValidatorService) Validate(ctx context.Context, seasonID *int64) (ValidationReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ValidatorService.Validate")
	defer span.End()

	if seasonID != nil && *seasonID <= 0 {
		return ValidationReport{}, fmt.Errorf("%w: season id must be greater than zero", ErrInvalidInput)
	}

	issues := make([]string, 0)
	var counts ValidationCounts
	seasonCount := 0

	if seasonID != nil {
		check, err := s.validateSeason(ctx, *seasonID)
		if err != nil {
			return ValidationReport{}, err
		}
		issues = append(issues, check.issues...)
		counts.Standings = check.standings
		counts.PlayerSeasonStats = check.players
		counts.TeamSeasonStats = check.teams
		seasonCount = 1
	} else {
		seasonIDs, err := s.matchRepo.ListSeasonIDs(ctx)
		if err != nil {
			return ValidationReport{}, fmt.Errorf("list season ids: %w", err)
		}
		checks, err := s.validateSeasons(ctx, seasonIDs)
		if err != nil {
			return ValidationReport{}, err
		}
		for _, check := range checks {
			issues = append(issues, check.issues...)
			counts.Standings += check.standings
			counts.PlayerSeasonStats += check.players
			counts.TeamSeasonStats += check.teams
		}
		seasonCount = len(seasonIDs)
	}

	pairIssues, pairsChecked, err := s.validatePairSample(ctx)
	if err != nil {
		return ValidationReport{}, err
	}
	issues = append(issues, pairIssues...)
	counts.H2HPairStats = pairsChecked

	report := ValidationReport{
		Valid:    len(issues) == 0,
		Issues:   issues,
		Checked:  counts,
		SeasonID: seasonID,
		Message: fmt.Sprintf(
			"validation completed: %d issue(s) across %d season(s); head-to-head checked against a sample of %d stored pair(s) (limit %d)",
			len(issues), seasonCount, pairsChecked, s.cfg.H2HSampleLimit,
		),
	}

	s.logger.InfoContext(ctx, "validation run finished",
		"valid", report.Valid,
		"issues", len(report.Issues),
		"seasons", seasonCount,
		"pairs_checked", pairsChecked,
	)
	return report, nil
}

type seasonCheck struct {
	seasonID  int64
	issues    []string
	standings int
	players   int
	teams     int
}

func (s *ValidatorService) validateSeasons(ctx context.Context, seasonIDs []int64) ([]seasonCheck, error) {
	if len(seasonIDs) == 0 {
		return nil, nil
	}

	workers := s.cfg.MaxWorkers
	if workers > len(seasonIDs) {
		workers = len(seasonIDs)
	}

	workerPool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("create validation worker pool: %w", err)
	}
	defer workerPool.Release()

	results := make(chan seasonCheck, len(seasonIDs))
	errs := make(chan error, len(seasonIDs))

	var wg sync.WaitGroup
	for _, id := range seasonIDs {
		id := id
		wg.Add(1)
		if err := workerPool.Submit(func() {
			defer wg.Done()
			check, checkErr := s.validateSeason(ctx, id)
			if checkErr != nil {
				errs <- checkErr
				return
			}
			results <- check
		}); err != nil {
			wg.Done()
			return nil, fmt.Errorf("submit season validation task: %w", err)
		}
	}

	wg.Wait()
	close(results)
	close(errs)

	// Any infrastructure failure aborts the whole run; findings never do.
	if err := <-errs; err != nil {
		return nil, err
	}

	checks := make([]seasonCheck, 0, len(seasonIDs))
	for check := range results {
		checks = append(checks, check)
	}
	sort.Slice(checks, func(i, j int) bool { return checks[i].seasonID < checks[j].seasonID })
	return checks, nil
}

func (s *ValidatorService) validateSeason(ctx context.Context, seasonID int64) (seasonCheck, error) {
	var (
		matches         []match.Match
		parts           []participation.Participation
		storedStandings []standing.Row
		storedPlayers   []seasonstats.PlayerRow
		storedTeams     []seasonstats.TeamRow
		goalCounts      map[int64]int
		assistCounts    map[int64]int
	)

	// The reads are independent and read-only, so fan them out. The folds
	// below stay single-threaded per season.
	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		var err error
		matches, err = s.matchRepo.ListBySeason(ctx, seasonID)
		if err != nil {
			return fmt.Errorf("list matches season=%d: %w", seasonID, err)
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		var err error
		parts, err = s.participationRepo.ListBySeason(ctx, seasonID)
		if err != nil {
			return fmt.Errorf("list participations season=%d: %w", seasonID, err)
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		var err error
		storedStandings, err = s.standingRepo.ListBySeason(ctx, seasonID)
		if err != nil {
			return fmt.Errorf("list persisted standings season=%d: %w", seasonID, err)
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		var err error
		storedPlayers, err = s.playerStatsRepo.ListBySeason(ctx, seasonID)
		if err != nil {
			return fmt.Errorf("list persisted player stats season=%d: %w", seasonID, err)
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		var err error
		storedTeams, err = s.teamStatsRepo.ListBySeason(ctx, seasonID)
		if err != nil {
			return fmt.Errorf("list persisted team stats season=%d: %w", seasonID, err)
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		var err error
		goalCounts, err = s.eventRepo.CountGoalsByPlayer(ctx, seasonID)
		if err != nil {
			return fmt.Errorf("count goal events season=%d: %w", seasonID, err)
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		var err error
		assistCounts, err = s.eventRepo.CountAssistsByPlayer(ctx, seasonID)
		if err != nil {
			return fmt.Errorf("count assist events season=%d: %w", seasonID, err)
		}
		return nil
	})
	if err := p.Wait(); err != nil {
		return seasonCheck{}, err
	}

	check := seasonCheck{seasonID: seasonID}

	recomputedStandings, skipped := ComputeStandings(seasonID, matches)
	for _, item := range skipped {
		check.issues = append(check.issues, fmt.Sprintf(
			"match id=%d season=%d skipped: %s", item.MatchID, seasonID, item.Reason))
	}

	standingIssues, standingCount := diffStandings(seasonID, recomputedStandings, storedStandings)
	check.issues = append(check.issues, standingIssues...)
	check.standings = standingCount

	teamIssues, teamCount := diffTeamRows(seasonID, TeamRowsFromStandings(recomputedStandings), storedTeams)
	check.issues = append(check.issues, teamIssues...)
	check.teams = teamCount

	recomputedPlayers := ComputePlayerSeasonStats(seasonID, parts)
	playerIssues, playerCount := diffPlayerRows(seasonID, recomputedPlayers, storedPlayers)
	check.issues = append(check.issues, playerIssues...)
	check.players = playerCount

	check.issues = append(check.issues, crossCheckEvents(seasonID, recomputedPlayers, goalCounts, assistCounts)...)
	return check, nil
}

func (s *ValidatorService) validatePairSample(ctx context.Context) ([]string, int, error) {
	stored, err := s.pairRepo.List(ctx, s.cfg.H2HSampleLimit)
	if err != nil {
		return nil, 0, fmt.Errorf("list persisted pair rows: %w", err)
	}

	issues := make([]string, 0)
	for _, row := range stored {
		matches, err := s.matchRepo.ListBetweenTeams(ctx, row.Key.SmallID, row.Key.LargeID)
		if err != nil {
			return nil, 0, fmt.Errorf("list matches for pair %s: %w", row.Key, err)
		}

		recomputed := headtohead.PairStats{Key: row.Key}
		pairs, skipped := ComputeHeadToHeadPairs(matches)
		for _, item := range pairs {
			if item.Key == row.Key {
				recomputed = item
				break
			}
		}
		for _, item := range skipped {
			issues = append(issues, fmt.Sprintf(
				"h2h pair=%s match id=%d excluded from recompute: %s", row.Key, item.MatchID, item.Reason))
		}
		issues = append(issues, diffPairRow(row, recomputed)...)
	}
	return issues, len(stored), nil
}

type fieldDiff struct {
	name       string
	stored     int
	recomputed int
}

func diffFields(diffs []fieldDiff, format func(fieldDiff) string, out *[]string) {
	for _, d := range diffs {
		if d.stored != d.recomputed {
			*out = append(*out, format(d))
		}
	}
}

func diffStandings(seasonID int64, recomputed, stored []standing.Row) ([]string, int) {
	storedByTeam := make(map[int64]standing.Row, len(stored))
	for _, row := range stored {
		storedByTeam[row.TeamID] = row
	}

	issues := make([]string, 0)
	seen := make(map[int64]struct{}, len(recomputed))
	for _, want := range recomputed {
		seen[want.TeamID] = struct{}{}
		got, ok := storedByTeam[want.TeamID]
		if !ok {
			issues = append(issues, fmt.Sprintf("standings team=%d season=%d missing persisted row", want.TeamID, seasonID))
			continue
		}
		diffFields([]fieldDiff{
			{"played", got.Played, want.Played},
			{"wins", got.Wins, want.Wins},
			{"draws", got.Draws, want.Draws},
			{"losses", got.Losses, want.Losses},
			{"goals_for", got.GoalsFor, want.GoalsFor},
			{"goals_against", got.GoalsAgainst, want.GoalsAgainst},
			{"goal_difference", got.GoalDifference, want.GoalDifference},
			{"points", got.Points, want.Points},
		}, func(d fieldDiff) string {
			return fmt.Sprintf("standings team=%d season=%d field=%s stored=%d recomputed=%d",
				want.TeamID, seasonID, d.name, d.stored, d.recomputed)
		}, &issues)
	}

	storedIDs := make([]int64, 0, len(stored))
	for _, row := range stored {
		storedIDs = append(storedIDs, row.TeamID)
	}
	issues = append(issues, orphanIssues("standings", "team", seasonID, storedIDs, seen)...)

	total := len(recomputed)
	for _, id := range storedIDs {
		if _, ok := seen[id]; !ok {
			total++
		}
	}
	return issues, total
}

func diffTeamRows(seasonID int64, recomputed, stored []seasonstats.TeamRow) ([]string, int) {
	storedByTeam := make(map[int64]seasonstats.TeamRow, len(stored))
	for _, row := range stored {
		storedByTeam[row.TeamID] = row
	}

	issues := make([]string, 0)
	seen := make(map[int64]struct{}, len(recomputed))
	for _, want := range recomputed {
		seen[want.TeamID] = struct{}{}
		got, ok := storedByTeam[want.TeamID]
		if !ok {
			issues = append(issues, fmt.Sprintf("team_season_stats team=%d season=%d missing persisted row", want.TeamID, seasonID))
			continue
		}
		diffFields([]fieldDiff{
			{"played", got.Played, want.Played},
			{"wins", got.Wins, want.Wins},
			{"draws", got.Draws, want.Draws},
			{"losses", got.Losses, want.Losses},
			{"goals_for", got.GoalsFor, want.GoalsFor},
			{"goals_against", got.GoalsAgainst, want.GoalsAgainst},
			{"points", got.Points, want.Points},
		}, func(d fieldDiff) string {
			return fmt.Sprintf("team_season_stats team=%d season=%d field=%s stored=%d recomputed=%d",
				want.TeamID, seasonID, d.name, d.stored, d.recomputed)
		}, &issues)
	}

	storedIDs := make([]int64, 0, len(stored))
	for _, row := range stored {
		storedIDs = append(storedIDs, row.TeamID)
	}
	issues = append(issues, orphanIssues("team_season_stats", "team", seasonID, storedIDs, seen)...)

	total := len(recomputed)
	for _, id := range storedIDs {
		if _, ok := seen[id]; !ok {
			total++
		}
	}
	return issues, total
}

func diffPlayerRows(seasonID int64, recomputed, stored []seasonstats.PlayerRow) ([]string, int) {
	storedByPlayer := make(map[int64]seasonstats.PlayerRow, len(stored))
	for _, row := range stored {
		storedByPlayer[row.PlayerID] = row
	}

	issues := make([]string, 0)
	seen := make(map[int64]struct{}, len(recomputed))
	for _, want := range recomputed {
		seen[want.PlayerID] = struct{}{}
		got, ok := storedByPlayer[want.PlayerID]
		if !ok {
			issues = append(issues, fmt.Sprintf("player_season_stats player=%d season=%d missing persisted row", want.PlayerID, seasonID))
			continue
		}
		diffFields([]fieldDiff{
			{"played", got.Played, want.Played},
			{"goals", got.Goals, want.Goals},
			{"assists", got.Assists, want.Assists},
			{"minutes_played", got.MinutesPlayed, want.MinutesPlayed},
			{"yellow_cards", got.YellowCards, want.YellowCards},
			{"red_cards", got.RedCards, want.RedCards},
		}, func(d fieldDiff) string {
			return fmt.Sprintf("player_season_stats player=%d season=%d field=%s stored=%d recomputed=%d",
				want.PlayerID, seasonID, d.name, d.stored, d.recomputed)
		}, &issues)
	}

	storedIDs := make([]int64, 0, len(stored))
	for _, row := range stored {
		storedIDs = append(storedIDs, row.PlayerID)
	}
	issues = append(issues, orphanIssues("player_season_stats", "player", seasonID, storedIDs, seen)...)

	total := len(recomputed)
	for _, id := range storedIDs {
		if _, ok := seen[id]; !ok {
			total++
		}
	}
	return issues, total
}

func diffPairRow(stored, recomputed headtohead.PairStats) []string {
	issues := make([]string, 0)
	diffFields([]fieldDiff{
		{"total_matches", stored.TotalMatches, recomputed.TotalMatches},
		{"small_wins", stored.SmallWins, recomputed.SmallWins},
		{"large_wins", stored.LargeWins, recomputed.LargeWins},
		{"draws", stored.Draws, recomputed.Draws},
		{"small_goals", stored.SmallGoals, recomputed.SmallGoals},
		{"large_goals", stored.LargeGoals, recomputed.LargeGoals},
	}, func(d fieldDiff) string {
		return fmt.Sprintf("h2h_pair_stats pair=%s field=%s stored=%d recomputed=%d",
			stored.Key, d.name, d.stored, d.recomputed)
	}, &issues)
	return issues
}

// crossCheckEvents compares the participation-derived goal/assist sums against
// the raw goal and assist event counts. The two record the same facts through
// different tables, so any disagreement is drift in the source data itself.
func crossCheckEvents(seasonID int64, players []seasonstats.PlayerRow, goalCounts, assistCounts map[int64]int) []string {
	issues := make([]string, 0)
	seen := make(map[int64]struct{}, len(players))
	for _, row := range players {
		seen[row.PlayerID] = struct{}{}
		if got := goalCounts[row.PlayerID]; got != row.Goals {
			issues = append(issues, fmt.Sprintf(
				"events cross-check player=%d season=%d field=goals participations=%d goal_events=%d",
				row.PlayerID, seasonID, row.Goals, got))
		}
		if got := assistCounts[row.PlayerID]; got != row.Assists {
			issues = append(issues, fmt.Sprintf(
				"events cross-check player=%d season=%d field=assists participations=%d assist_events=%d",
				row.PlayerID, seasonID, row.Assists, got))
		}
	}

	extra := make([]int64, 0)
	for playerID, count := range goalCounts {
		if count == 0 {
			continue
		}
		if _, ok := seen[playerID]; !ok {
			extra = append(extra, playerID)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	for _, playerID := range extra {
		issues = append(issues, fmt.Sprintf(
			"events cross-check player=%d season=%d has goal events but no participation record",
			playerID, seasonID))
	}
	return issues
}

func orphanIssues(family, entity string, seasonID int64, storedIDs []int64, seen map[int64]struct{}) []string {
	orphans := make([]int64, 0)
	for _, id := range storedIDs {
		if _, ok := seen[id]; !ok {
			orphans = append(orphans, id)
		}
	}
	sort.Slice(orphans, func(i, j int) bool { return orphans[i] < orphans[j] })

	issues := make([]string, 0, len(orphans))
	for _, id := range orphans {
		issues = append(issues, fmt.Sprintf("%s %s=%d season=%d orphan persisted row", family, entity, id, seasonID))
	}
	return issues
}
