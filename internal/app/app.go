package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"

	"github.com/ftbarchive/show-stats/internal/config"
	"github.com/ftbarchive/show-stats/internal/domain/headtohead"
	"github.com/ftbarchive/show-stats/internal/domain/match"
	"github.com/ftbarchive/show-stats/internal/domain/matchevent"
	"github.com/ftbarchive/show-stats/internal/domain/participation"
	"github.com/ftbarchive/show-stats/internal/domain/seasonstats"
	"github.com/ftbarchive/show-stats/internal/domain/standing"
	cachedrepo "github.com/ftbarchive/show-stats/internal/infrastructure/repository/cache"
	"github.com/ftbarchive/show-stats/internal/infrastructure/repository/memory"
	"github.com/ftbarchive/show-stats/internal/infrastructure/repository/postgres"
	"github.com/ftbarchive/show-stats/internal/interfaces/httpapi"
	"github.com/ftbarchive/show-stats/internal/platform/cache"
	"github.com/ftbarchive/show-stats/internal/platform/logging"
	"github.com/ftbarchive/show-stats/internal/usecase"
)

// repositories groups every store the stats services depend on, so the
// postgres and in-memory wirings stay interchangeable.
type repositories struct {
	matches        match.Repository
	events         matchevent.Repository
	participations participation.Repository
	standings      standing.Repository
	playerStats    seasonstats.PlayerRepository
	teamStats      seasonstats.TeamRepository
	pairs          headtohead.Repository
}

// NewHTTPServer wires repositories, services, and the router into a ready
// http.Server. When DB_URL is empty the server runs on seeded in-memory
// repositories, which is how local development and the e2e tests operate.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}

	var (
		repos   repositories
		usingDB bool
		err     error
	)
	if strings.TrimSpace(cfg.DBURL) == "" {
		logger.Info("DB_URL not set, using in-memory repositories")
		repos = newMemoryRepositories()
	} else {
		repos, err = newPostgresRepositories(cfg)
		if err != nil {
			return nil, err
		}
		usingDB = true
	}

	var store *cache.Store
	if cfg.CacheEnabled {
		store = cache.NewStore(cfg.CacheTTL)
	}
	if store != nil && usingDB {
		repos.matches = cachedrepo.NewMatchRepository(repos.matches, store)
	}

	standingsSvc := usecase.NewStandingsService(repos.matches, repos.standings, logger)
	seasonStatsSvc := usecase.NewSeasonStatsService(repos.matches, repos.participations, repos.events)
	headToHeadSvc := usecase.NewHeadToHeadService(repos.matches, repos.pairs, store)
	validatorSvc := usecase.NewValidatorService(
		repos.matches,
		repos.events,
		repos.participations,
		repos.standings,
		repos.playerStats,
		repos.teamStats,
		repos.pairs,
		usecase.ValidatorConfig{
			H2HSampleLimit: cfg.ValidatorH2HSampleLimit,
			MaxWorkers:     cfg.ValidatorMaxWorkers,
		},
		logger,
	)
	backupSvc := usecase.NewBackupService(
		repos.standings,
		repos.playerStats,
		repos.teamStats,
		repos.pairs,
		store,
		cfg.BackupDir,
		logger,
	)
	recomputeSvc := usecase.NewRecomputeService(
		repos.matches,
		repos.participations,
		repos.standings,
		repos.playerStats,
		repos.teamStats,
		repos.pairs,
		store,
		logger,
	)

	handler := httpapi.NewHandler(
		standingsSvc,
		seasonStatsSvc,
		headToHeadSvc,
		validatorSvc,
		backupSvc,
		recomputeSvc,
		logger,
	)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalStatsToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

func newMemoryRepositories() repositories {
	return repositories{
		matches:        memory.NewMatchRepository(memory.SeedMatches()),
		events:         memory.NewMatchEventRepository(memory.SeedGoals(), memory.SeedAssists(), memory.SeedSeasonByMatch()),
		participations: memory.NewParticipationRepository(memory.SeedParticipations()),
		standings:      memory.NewStandingRepository(memory.SeedStandings()),
		playerStats:    memory.NewPlayerStatsRepository(memory.SeedPlayerSeasonStats()),
		teamStats:      memory.NewTeamStatsRepository(memory.SeedTeamSeasonStats()),
		pairs:          memory.NewHeadToHeadRepository(memory.SeedHeadToHeadPairs()),
	}
}

func newPostgresRepositories(cfg config.Config) (repositories, error) {
	db, err := openDB(cfg)
	if err != nil {
		return repositories{}, err
	}

	if err := postgres.BootstrapSeed(context.Background(), db); err != nil {
		return repositories{}, fmt.Errorf("bootstrap seed: %w", err)
	}

	return repositories{
		matches:        postgres.NewMatchRepository(db),
		events:         postgres.NewMatchEventRepository(db),
		participations: postgres.NewParticipationRepository(db),
		standings:      postgres.NewStandingRepository(db),
		playerStats:    postgres.NewPlayerStatsRepository(db),
		teamStats:      postgres.NewTeamStatsRepository(db),
		pairs:          postgres.NewHeadToHeadRepository(db),
	}, nil
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	opts := []otelsql.Option{
		otelsql.WithAttributes(semconv.DBSystemNamePostgreSQL),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	}
	if name := dbNameFromURL(cfg.DBURL); name != "" {
		opts = append(opts, otelsql.WithDBName(name))
	}

	db, err := otelsqlx.Connect("postgres", dsn, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	return db, nil
}
