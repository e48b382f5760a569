package service

import (
	"context"
	"testing"

	"dota-stats/internal/domain"
	"dota-stats/internal/testutil"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeagueServiceDeleteRestore(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, "")
	svc := NewLeagueService(e.leagues, zerolog.Nop())

	m := testutil.Match(1, 16935, 2163, 15)
	m.SeriesID = 880001
	m.PickBans = testutil.Draft(1, testutil.Pick(74, true))
	require.NoError(t, e.matches.UpsertBatch(ctx, []domain.Match{m, testutil.Match(2, 16935, 2163, 15)}, nil))

	require.NoError(t, svc.DeleteSeries(ctx, 880001))
	assert.ErrorIs(t, svc.DeleteSeries(ctx, 880001), ErrEntityNotFound)

	require.NoError(t, svc.DeleteLeague(ctx, 16935))
	assert.ErrorIs(t, svc.DeleteLeague(ctx, 16935), ErrEntityNotFound)

	_, err := e.popularity.RefreshIfStale(ctx, domain.Scope{Kind: domain.ScopeLeague, ID: 16935})
	assert.ErrorIs(t, err, ErrEntityNotFound)

	require.NoError(t, svc.RestoreLeague(ctx, 16935))
	assert.ErrorIs(t, svc.RestoreLeague(ctx, 16935), ErrEntityNotFound)

	refreshed, err := e.popularity.RefreshIfStale(ctx, domain.Scope{Kind: domain.ScopeLeague, ID: 16935})
	require.NoError(t, err)
	assert.True(t, refreshed)

	n, err := e.matches.CountActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
