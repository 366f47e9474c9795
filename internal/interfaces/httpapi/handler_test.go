package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/ftbarchive/show-stats/internal/infrastructure/repository/memory"
	"github.com/ftbarchive/show-stats/internal/platform/cache"
	"github.com/ftbarchive/show-stats/internal/platform/logging"
	"github.com/ftbarchive/show-stats/internal/usecase"
)

const testInternalToken = "test-internal-token"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	matchRepo := memory.NewMatchRepository(memory.SeedMatches())
	eventRepo := memory.NewMatchEventRepository(memory.SeedGoals(), memory.SeedAssists(), memory.SeedSeasonByMatch())
	participationRepo := memory.NewParticipationRepository(memory.SeedParticipations())
	standingRepo := memory.NewStandingRepository(memory.SeedStandings())
	playerStatsRepo := memory.NewPlayerStatsRepository(memory.SeedPlayerSeasonStats())
	teamStatsRepo := memory.NewTeamStatsRepository(memory.SeedTeamSeasonStats())
	pairRepo := memory.NewHeadToHeadRepository(memory.SeedHeadToHeadPairs())
	store := cache.NewStore(time.Minute)
	logger := logging.NewNop()

	handler := NewHandler(
		usecase.NewStandingsService(matchRepo, standingRepo, logger),
		usecase.NewSeasonStatsService(matchRepo, participationRepo, eventRepo),
		usecase.NewHeadToHeadService(matchRepo, pairRepo, store),
		usecase.NewValidatorService(matchRepo, eventRepo, participationRepo, standingRepo, playerStatsRepo, teamStatsRepo, pairRepo, usecase.ValidatorConfig{}, logger),
		usecase.NewBackupService(standingRepo, playerStatsRepo, teamStatsRepo, pairRepo, store, t.TempDir(), logger),
		usecase.NewRecomputeService(matchRepo, participationRepo, standingRepo, playerStatsRepo, teamStatsRepo, pairRepo, store, logger),
		logger,
	)

	return NewRouter(handler, logger, []string{"*"}, testInternalToken)
}

func TestValidateStats_CleanSeed(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/stats/validate?season_id=1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var report usecase.ValidationReport
	if err := sonic.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("unmarshal report: %v", err)
	}
	if !report.Valid {
		t.Fatalf("expected a clean seed to validate, issues: %v", report.Issues)
	}
	if report.SeasonID == nil || *report.SeasonID != 1 {
		t.Fatalf("expected season_id=1 in report, got %v", report.SeasonID)
	}
}

func TestValidateStats_RejectsBadSeasonID(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/stats/validate?season_id=abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestMatchHeadToHead_BothPerspectives(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/matches/1/head-to-head", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var got usecase.MatchHeadToHead
	if err := sonic.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal summary: %v", err)
	}
	if got.MatchID != 1 || got.TeamA != 1 || got.TeamB != 2 {
		t.Fatalf("unexpected teams in summary: %+v", got)
	}
	if got.Summary.TeamA.Wins != 1 || got.Summary.TeamB.Losses != 1 {
		t.Fatalf("unexpected record: %+v", got.Summary)
	}
}

func TestMatchHeadToHead_UnknownMatch(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/matches/999/head-to-head", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestBackupStats_RequiresToken(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/stats/backup", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 without token, got %d", rec.Code)
	}
}

func TestBackupThenRestoreRoundTrip(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/stats/backup", nil)
	req.Header.Set("X-Internal-Stats-Token", testInternalToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result usecase.BackupResult
	if err := sonic.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("unmarshal backup result: %v", err)
	}
	if result.Stats["standings"] != 4 || result.Stats["h2h_pair_stats"] != 4 {
		t.Fatalf("unexpected backup stats: %v", result.Stats)
	}
	if result.Message == "" || result.File == "" {
		t.Fatalf("backup response must carry message and backup_file: %+v", result)
	}

	body, err := sonic.Marshal(map[string]any{"data": result.Snapshot})
	if err != nil {
		t.Fatalf("marshal restore payload: %v", err)
	}

	restoreReq := httptest.NewRequest(http.MethodPut, "/stats/backup", strings.NewReader(string(body)))
	restoreReq.Header.Set("X-Internal-Stats-Token", testInternalToken)
	restoreRec := httptest.NewRecorder()
	router.ServeHTTP(restoreRec, restoreReq)

	if restoreRec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", restoreRec.Code, restoreRec.Body.String())
	}

	var restored restoreStatsResponse
	if err := sonic.Unmarshal(restoreRec.Body.Bytes(), &restored); err != nil {
		t.Fatalf("unmarshal restore response: %v", err)
	}
	if restored.Restored["standings"] != 4 {
		t.Fatalf("unexpected restored counts: %v", restored.Restored)
	}
	if restored.SeasonID != nil {
		t.Fatalf("unscoped restore must report a null season_id, got %v", *restored.SeasonID)
	}
}

func TestRestoreStats_SeasonScopeEchoed(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/stats/backup?season_id=1", nil)
	req.Header.Set("X-Internal-Stats-Token", testInternalToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result usecase.BackupResult
	if err := sonic.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("unmarshal backup result: %v", err)
	}

	body, err := sonic.Marshal(map[string]any{"data": result.Snapshot, "season_id": 1})
	if err != nil {
		t.Fatalf("marshal restore payload: %v", err)
	}

	restoreReq := httptest.NewRequest(http.MethodPut, "/stats/backup", strings.NewReader(string(body)))
	restoreReq.Header.Set("X-Internal-Stats-Token", testInternalToken)
	restoreRec := httptest.NewRecorder()
	router.ServeHTTP(restoreRec, restoreReq)

	if restoreRec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", restoreRec.Code, restoreRec.Body.String())
	}

	var restored restoreStatsResponse
	if err := sonic.Unmarshal(restoreRec.Body.Bytes(), &restored); err != nil {
		t.Fatalf("unmarshal restore response: %v", err)
	}
	if restored.SeasonID == nil || *restored.SeasonID != 1 {
		t.Fatalf("scoped restore must echo season_id=1, got %v", restored.SeasonID)
	}
	if restored.Message == "" {
		t.Fatalf("restore response must carry a message")
	}
}

func TestRestoreStats_RejectsMissingData(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPut, "/stats/backup", strings.NewReader(`{}`))
	req.Header.Set("X-Internal-Stats-Token", testInternalToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestSeasonStandings_RanksTable(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/seasons/1/standings", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var got standingsResponse
	if err := sonic.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal standings: %v", err)
	}
	if len(got.Standings) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(got.Standings))
	}
	if got.Standings[0].TeamID != 1 || got.Standings[0].Position != 1 {
		t.Fatalf("expected team 1 on top, got %+v", got.Standings[0])
	}
}

func TestSeasonStandings_StoredSource(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/seasons/1/standings?source=stored", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var got standingsResponse
	if err := sonic.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal standings: %v", err)
	}
	if len(got.Standings) != 4 || got.Standings[0].TeamID != 1 {
		t.Fatalf("unexpected stored standings: %+v", got.Standings)
	}

	badReq := httptest.NewRequest(http.MethodGet, "/seasons/1/standings?source=guess", nil)
	badRec := httptest.NewRecorder()
	router.ServeHTTP(badRec, badReq)
	if badRec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for unknown source, got %d", badRec.Code)
	}
}

func TestMatchEvents_ListsGoalsAndAssists(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/matches/1/events", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var got matchEventsResponse
	if err := sonic.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal events: %v", err)
	}
	if got.MatchID != 1 || len(got.Goals) != 4 || len(got.Assists) != 1 {
		t.Fatalf("unexpected events: %+v", got)
	}

	missing := httptest.NewRequest(http.MethodGet, "/matches/999/events", nil)
	missingRec := httptest.NewRecorder()
	router.ServeHTTP(missingRec, missing)
	if missingRec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 for unknown match, got %d", missingRec.Code)
	}
}

func TestRecomputeStats_TokenAndSeason(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/internal/stats/recompute", strings.NewReader(`{"season_id":1}`))
	req.Header.Set("X-Internal-Stats-Token", testInternalToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result usecase.RecomputeResult
	if err := sonic.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("unmarshal recompute result: %v", err)
	}
	if result.SeasonID != 1 || result.Persisted["standings"] != 4 {
		t.Fatalf("unexpected recompute result: %+v", result)
	}
}
