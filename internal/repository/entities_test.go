package repository

import (
	"context"
	"testing"
	"time"

	"dota-stats/internal/domain"
	"dota-stats/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timeRef(t time.Time) *time.Time { return &t }

func TestLeagueRefreshableIDs(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)

	leagues := []domain.League{
		{ID: 15100, Tier: 2},
		{ID: 15200, Tier: 3},
		{ID: 15300, Tier: 1},
		{ID: 14000, Tier: 4},
		{ID: 15400, Tier: 4, IsOver: true},
		{ID: 15500, Tier: 2},
	}
	for i := range leagues {
		require.NoError(t, r.leagues.Upsert(ctx, &leagues[i]))
	}
	require.NoError(t, r.leagues.SoftDelete(ctx, 15500))

	got, err := r.leagues.RefreshableIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{15200, 15100}, got)
}

func TestLeagueMarkFinished(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)

	ended := &domain.League{ID: 16001, Tier: 3, EndAt: timeRef(testutil.Epoch.Add(-time.Hour))}
	running := &domain.League{ID: 16002, Tier: 3, EndAt: timeRef(testutil.Epoch.Add(48 * time.Hour))}
	open := &domain.League{ID: 16003, Tier: 3}
	for _, l := range []*domain.League{ended, running, open} {
		require.NoError(t, r.leagues.Upsert(ctx, l))
	}

	n, err := r.leagues.MarkFinished(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := r.leagues.Get(ctx, 16001)
	require.NoError(t, err)
	assert.True(t, got.IsOver)

	ids, err := r.leagues.RefreshableIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{16003, 16002}, ids)

	r.clock.Add(72 * time.Hour)
	n, err = r.leagues.MarkFinished(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestLeagueRestoreMissing(t *testing.T) {
	r := newRepos(t)
	assert.True(t, IsNotFound(r.leagues.Restore(context.Background(), 1)))
	assert.True(t, IsNotFound(r.leagues.SoftDeleteSeries(context.Background(), 1)))
}

func TestTeamProIDs(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)

	teams := []domain.Team{
		{ID: 1, Name: "A", Rank: 1500, IsPro: true},
		{ID: 2, Name: "B", Rank: 1199, IsPro: true},
		{ID: 3, Name: "C", Rank: 1800, IsPro: true},
		{ID: 4, Name: "D", Rank: 2000},
		{ID: 5, Name: "E", Rank: 1200, IsPro: true},
	}
	for i := range teams {
		require.NoError(t, r.teams.Upsert(ctx, &teams[i]))
	}

	got, err := r.teams.ProIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 1, 5}, got)

	exists, err := r.teams.Exists(ctx, 4)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = r.teams.Exists(ctx, 99)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestTeamSyncIDs(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)

	require.NoError(t, r.teams.Upsert(ctx, &domain.Team{ID: 50, Name: "pro", IsPro: true}))
	require.NoError(t, r.leagues.Upsert(ctx, &domain.League{ID: 100, Tier: 3}))
	require.NoError(t, r.leagues.Upsert(ctx, &domain.League{ID: 200, Tier: 1}))
	require.NoError(t, r.leagues.Upsert(ctx, &domain.League{ID: 300, Tier: 4, IsOver: true}))
	require.NoError(t, r.matches.UpsertBatch(ctx, []domain.Match{
		testutil.Match(1, 100, 7, 8),
		testutil.Match(2, 200, 9, 10),
		testutil.Match(3, 300, 11, 12),
	}, nil))
	require.NoError(t, r.teams.Ensure(ctx, 13))
	require.NoError(t, r.teams.Ensure(ctx, 50))

	got, err := r.teams.SyncIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{7, 8, 50}, got)
}

func TestLeagueEnsure(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)

	require.NoError(t, r.leagues.Ensure(ctx, 17000))
	require.NoError(t, r.leagues.Upsert(ctx, &domain.League{ID: 17000, Name: "Open", Tier: 2}))
	require.NoError(t, r.leagues.Ensure(ctx, 17000))

	got, err := r.leagues.Get(ctx, 17000)
	require.NoError(t, err)
	assert.Equal(t, "Open", got.Name)
	assert.Equal(t, 2, got.Tier)
}

func TestPlayerProIDs(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)

	require.NoError(t, r.players.Upsert(ctx, &domain.Player{SteamAccountID: 30, Name: "x", IsPro: true}))
	require.NoError(t, r.players.Upsert(ctx, &domain.Player{SteamAccountID: 10, Name: "y", IsPro: true, TeamID: 4}))
	require.NoError(t, r.players.Upsert(ctx, &domain.Player{SteamAccountID: 20, Name: "z"}))

	got, err := r.players.ProIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{10, 30}, got)
}

func TestHeroUpsertBatch(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)

	heroes := []domain.Hero{{ID: 1, Name: "antimage"}, {ID: 2, Name: "axe"}}
	require.NoError(t, r.heroes.UpsertBatch(ctx, heroes))
	require.NoError(t, r.heroes.UpsertBatch(ctx, heroes))
	require.NoError(t, r.heroes.UpsertBatch(ctx, nil))

	n, err := r.heroes.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
