package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/ftbarchive/show-stats/internal/domain/standing"
	"github.com/ftbarchive/show-stats/internal/platform/logging"
	"github.com/ftbarchive/show-stats/internal/usecase"
)

type Handler struct {
	standingsService   *usecase.StandingsService
	seasonStatsService *usecase.SeasonStatsService
	headToHeadService  *usecase.HeadToHeadService
	validatorService   *usecase.ValidatorService
	backupService      *usecase.BackupService
	recomputeService   *usecase.RecomputeService
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(
	standingsService *usecase.StandingsService,
	seasonStatsService *usecase.SeasonStatsService,
	headToHeadService *usecase.HeadToHeadService,
	validatorService *usecase.ValidatorService,
	backupService *usecase.BackupService,
	recomputeService *usecase.RecomputeService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		standingsService:   standingsService,
		seasonStatsService: seasonStatsService,
		headToHeadService:  headToHeadService,
		validatorService:   validatorService,
		backupService:      backupService,
		recomputeService:   recomputeService,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeJSON(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// ValidateStats runs a read-only consistency sweep over the aggregate tables.
// Without a season_id query parameter the sweep covers every season.
func (h *Handler) ValidateStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ValidateStats")
	defer span.End()

	seasonID, err := optionalSeasonID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	report, err := h.validatorService.Validate(ctx, seasonID)
	if err != nil {
		h.logger.ErrorContext(ctx, "validation run failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, report)
}

// BackupStats snapshots the aggregate tables to a timestamped file and echoes
// the snapshot back in the response body.
func (h *Handler) BackupStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.BackupStats")
	defer span.End()

	seasonID, err := optionalSeasonID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.backupService.Backup(ctx, seasonID)
	if err != nil {
		h.logger.ErrorContext(ctx, "backup failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, result)
}

type restoreStatsRequest struct {
	Data     *usecase.Snapshot `json:"data" validate:"required"`
	SeasonID *int64            `json:"season_id" validate:"omitempty,gt=0"`
}

type restoreStatsResponse struct {
	Message  string         `json:"message"`
	Restored map[string]int `json:"restored"`
	SeasonID *int64         `json:"season_id"`
}

// RestoreStats replaces the aggregate tables with a previously captured
// snapshot. With a season_id only that season's rows are applied.
func (h *Handler) RestoreStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RestoreStats")
	defer span.End()

	var req restoreStatsRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	restored, err := h.backupService.Restore(ctx, *req.Data, req.SeasonID)
	if err != nil {
		h.logger.ErrorContext(ctx, "restore failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, restoreStatsResponse{
		Message:  "snapshot restored",
		Restored: restored,
		SeasonID: req.SeasonID,
	})
}

// MatchHeadToHead serves the stored head-to-head record for the two teams of
// one fixture, expressed from both perspectives.
func (h *Handler) MatchHeadToHead(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.MatchHeadToHead")
	defer span.End()

	matchID, err := pathID(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	summary, err := h.headToHeadService.MatchSummary(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "head-to-head lookup failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, summary)
}

type standingsResponse struct {
	SeasonID  int64                  `json:"season_id"`
	Standings []standingDTO          `json:"standings"`
	Skipped   []usecase.SkippedMatch `json:"skipped,omitempty"`
}

type standingDTO struct {
	Position       int   `json:"position"`
	TeamID         int64 `json:"team_id"`
	Played         int   `json:"played"`
	Wins           int   `json:"wins"`
	Draws          int   `json:"draws"`
	Losses         int   `json:"losses"`
	GoalsFor       int   `json:"goals_for"`
	GoalsAgainst   int   `json:"goals_against"`
	GoalDifference int   `json:"goal_difference"`
	Points         int   `json:"points"`
}

// SeasonStandings serves a season's ranked table. The default recomputes it on
// the fly from match events; source=stored serves the persisted rows as-is.
func (h *Handler) SeasonStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SeasonStandings")
	defer span.End()

	seasonID, err := pathID(r, "seasonID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var (
		rows    []standing.Row
		skipped []usecase.SkippedMatch
	)
	switch source := strings.TrimSpace(r.URL.Query().Get("source")); source {
	case "", "computed":
		rows, skipped, err = h.standingsService.ComputeSeason(ctx, seasonID)
	case "stored":
		rows, err = h.standingsService.ListPersisted(ctx, seasonID)
	default:
		writeError(ctx, w, fmt.Errorf("%w: source must be computed or stored", usecase.ErrInvalidInput))
		return
	}
	if err != nil {
		h.logger.WarnContext(ctx, "standings lookup failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, standingsResponse{
		SeasonID:  seasonID,
		Standings: standingsToDTO(rows),
		Skipped:   skipped,
	})
}

type matchEventsResponse struct {
	MatchID int64       `json:"match_id"`
	Goals   []goalDTO   `json:"goals"`
	Assists []assistDTO `json:"assists"`
}

type goalDTO struct {
	ID       int64 `json:"id"`
	PlayerID int64 `json:"player_id"`
	TeamID   int64 `json:"team_id"`
	Minute   int   `json:"minute"`
}

type assistDTO struct {
	ID       int64 `json:"id"`
	PlayerID int64 `json:"player_id"`
	TeamID   int64 `json:"team_id"`
	GoalID   int64 `json:"goal_id"`
}

// MatchEvents lists the goal and assist records behind one fixture's score.
func (h *Handler) MatchEvents(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.MatchEvents")
	defer span.End()

	matchID, err := pathID(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	goals, assists, err := h.seasonStatsService.MatchEvents(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "match events lookup failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	resp := matchEventsResponse{MatchID: matchID, Goals: make([]goalDTO, 0, len(goals)), Assists: make([]assistDTO, 0, len(assists))}
	for _, g := range goals {
		resp.Goals = append(resp.Goals, goalDTO{ID: g.ID, PlayerID: g.PlayerID, TeamID: g.TeamID, Minute: g.Minute})
	}
	for _, a := range assists {
		resp.Assists = append(resp.Assists, assistDTO{ID: a.ID, PlayerID: a.PlayerID, TeamID: a.TeamID, GoalID: a.GoalID})
	}

	writeJSON(ctx, w, http.StatusOK, resp)
}

type teamSeasonStatsDTO struct {
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

func (h *Handler) TeamSeasonStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.TeamSeasonStats")
	defer span.End()

	seasonID, err := pathID(r, "seasonID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	teamID, err := pathID(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	row, err := h.seasonStatsService.GetTeamStats(ctx, seasonID, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "team stats lookup failed", "season_id", seasonID, "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, teamSeasonStatsDTO(row))
}

type playerSeasonStatsDTO struct {
	PlayerID      int64 `json:"player_id"`
	SeasonID      int64 `json:"season_id"`
	Played        int   `json:"played"`
	Goals         int   `json:"goals"`
	Assists       int   `json:"assists"`
	MinutesPlayed int   `json:"minutes_played"`
	YellowCards   int   `json:"yellow_cards"`
	RedCards      int   `json:"red_cards"`
}

func (h *Handler) PlayerSeasonStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PlayerSeasonStats")
	defer span.End()

	seasonID, err := pathID(r, "seasonID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	playerID, err := pathID(r, "playerID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	row, err := h.seasonStatsService.GetPlayerStats(ctx, seasonID, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "player stats lookup failed", "season_id", seasonID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, playerSeasonStatsDTO(row))
}

type recomputeStatsRequest struct {
	SeasonID int64 `json:"season_id" validate:"required,gt=0"`
}

// RecomputeStats rebuilds one season's aggregate rows from the event tables
// and persists them, overwriting whatever drifted.
func (h *Handler) RecomputeStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecomputeStats")
	defer span.End()

	var req recomputeStatsRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.recomputeService.RecomputeSeason(ctx, req.SeasonID)
	if err != nil {
		h.logger.ErrorContext(ctx, "recompute failed", "season_id", req.SeasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, result)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func standingsToDTO(rows []standing.Row) []standingDTO {
	out := make([]standingDTO, 0, len(rows))
	for i, row := range rows {
		out = append(out, standingDTO{
			Position:       i + 1,
			TeamID:         row.TeamID,
			Played:         row.Played,
			Wins:           row.Wins,
			Draws:          row.Draws,
			Losses:         row.Losses,
			GoalsFor:       row.GoalsFor,
			GoalsAgainst:   row.GoalsAgainst,
			GoalDifference: row.GoalDifference,
			Points:         row.Points,
		})
	}
	return out
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.PathValue(name))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", usecase.ErrInvalidInput, name)
	}
	return id, nil
}

func optionalSeasonID(r *http.Request) (*int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("season_id"))
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("%w: season_id must be a positive integer", usecase.ErrInvalidInput)
	}
	return &id, nil
}
