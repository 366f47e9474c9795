package usecase

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/require"

	"github.com/ftbarchive/show-stats/internal/domain/seasonstats"
	"github.com/ftbarchive/show-stats/internal/infrastructure/repository/memory"
	"github.com/ftbarchive/show-stats/internal/platform/logging"
)

func newBackupService(t *testing.T, f validatorFixture) *BackupService {
	t.Helper()
	return NewBackupService(f.standings, f.playerStats, f.teamStats, f.pairs, nil, t.TempDir(), logging.NewNop())
}

func TestBackupWritesSnapshotFile(t *testing.T) {
	t.Parallel()

	f := newValidatorFixture()
	svc := newBackupService(t, f)
	seasonID := memory.SeedSeasonID

	result, err := svc.Backup(context.Background(), &seasonID)
	require.NoError(t, err)

	require.Equal(t, 4, result.Stats[familyStandings])
	require.Equal(t, 6, result.Stats[familyPlayerStats])
	require.Equal(t, 4, result.Stats[familyTeamStats])
	require.Equal(t, 4, result.Stats[familyPairStats])
	require.Contains(t, result.Message, result.File)

	raw, err := os.ReadFile(result.File)
	require.NoError(t, err)

	var fromDisk Snapshot
	require.NoError(t, sonic.Unmarshal(raw, &fromDisk))
	require.Equal(t, result.Snapshot.Standings, fromDisk.Standings)
	require.Equal(t, result.Snapshot.H2HPairStats, fromDisk.H2HPairStats)
}

func TestBackupRestoreRoundTrip(t *testing.T) {
	t.Parallel()

	f := newValidatorFixture()
	svc := newBackupService(t, f)
	ctx := context.Background()
	seasonID := memory.SeedSeasonID

	before, err := f.standings.ListBySeason(ctx, seasonID)
	require.NoError(t, err)
	beforePlayers, err := f.playerStats.ListBySeason(ctx, seasonID)
	require.NoError(t, err)
	beforePairs, err := f.pairs.List(ctx, 0)
	require.NoError(t, err)

	result, err := svc.Backup(ctx, &seasonID)
	require.NoError(t, err)

	// Wreck every family, then restore.
	require.NoError(t, f.standings.ReplaceSeason(ctx, seasonID, nil))
	require.NoError(t, f.playerStats.ReplaceSeason(ctx, seasonID, nil))
	require.NoError(t, f.teamStats.ReplaceSeason(ctx, seasonID, nil))
	require.NoError(t, f.pairs.ReplaceAll(ctx, nil))

	restored, err := svc.Restore(ctx, result.Snapshot, &seasonID)
	require.NoError(t, err)
	require.Equal(t, result.Stats, restored)

	after, err := f.standings.ListBySeason(ctx, seasonID)
	require.NoError(t, err)
	require.Equal(t, before, after)

	afterPlayers, err := f.playerStats.ListBySeason(ctx, seasonID)
	require.NoError(t, err)
	require.Equal(t, beforePlayers, afterPlayers)

	afterPairs, err := f.pairs.List(ctx, 0)
	require.NoError(t, err)
	require.Equal(t, beforePairs, afterPairs)
}

func TestRestoreSeasonScopeFiltersForeignRows(t *testing.T) {
	t.Parallel()

	f := newValidatorFixture()
	svc := newBackupService(t, f)
	ctx := context.Background()
	seasonID := memory.SeedSeasonID

	result, err := svc.Backup(ctx, &seasonID)
	require.NoError(t, err)

	// A snapshot row from another season must not leak into a season-scoped
	// restore.
	result.Snapshot.TeamSeasonStats = append(result.Snapshot.TeamSeasonStats, TeamStatsSnapshot{
		TeamID: 8, SeasonID: 2, Played: 1, Wins: 1, Points: 3,
	})

	restored, err := svc.Restore(ctx, result.Snapshot, &seasonID)
	require.NoError(t, err)
	require.Equal(t, 4, restored[familyTeamStats])

	other, err := f.teamStats.ListBySeason(ctx, 2)
	require.NoError(t, err)
	require.Empty(t, other)
}

type failingTeamStatsRepo struct {
	seasonstats.TeamRepository
}

func (failingTeamStatsRepo) ReplaceSeason(context.Context, int64, []seasonstats.TeamRow) error {
	return errors.New("disk full")
}

func TestRestoreFailingFamilyLeavesOthersReported(t *testing.T) {
	t.Parallel()

	f := newValidatorFixture()
	ctx := context.Background()
	seasonID := memory.SeedSeasonID

	healthy := newBackupService(t, f)
	result, err := healthy.Backup(ctx, &seasonID)
	require.NoError(t, err)

	beforePairs, err := f.pairs.List(ctx, 0)
	require.NoError(t, err)

	svc := NewBackupService(f.standings, f.playerStats, failingTeamStatsRepo{f.teamStats}, f.pairs, nil, t.TempDir(), logging.NewNop())
	_, err = svc.Restore(ctx, result.Snapshot, &seasonID)
	require.Error(t, err)

	// The failing family aborts the run before the pair table is touched, and
	// the family's own rows stay as they were.
	afterTeams, err := f.teamStats.ListBySeason(ctx, seasonID)
	require.NoError(t, err)
	require.Len(t, afterTeams, 4)

	afterPairs, err := f.pairs.List(ctx, 0)
	require.NoError(t, err)
	require.Equal(t, beforePairs, afterPairs)
}

func TestBackupRejectsNonPositiveSeason(t *testing.T) {
	t.Parallel()

	svc := newBackupService(t, newValidatorFixture())
	bad := int64(-1)
	_, err := svc.Backup(context.Background(), &bad)
	require.ErrorIs(t, err, ErrInvalidInput)
}
