package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dota-stats/internal/api"
	"dota-stats/internal/config"
	"dota-stats/internal/domain"
	"dota-stats/internal/heroes"
	"dota-stats/internal/repository"
	"dota-stats/internal/service"
	"dota-stats/internal/testutil"

	"connectrpc.com/connect"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"
)

type harness struct {
	baseURL string
	matches *repository.MatchRepository
	leagues *repository.LeagueRepository
	players *repository.PlayerRepository
}

func newHarness(t *testing.T) harness {
	t.Helper()

	cfg := &config.Config{
		HeroImageBaseURL:     "https://cdn.example/heroes",
		SnapshotTTL:          24 * time.Hour,
		RefreshWorkers:       2,
		CurrentGameVersionID: 175,
	}
	sqlDB, queries := testutil.NewDB(t)
	clk := testutil.NewClock()
	log := zerolog.Nop()

	catalog, err := heroes.NewCatalog(cfg)
	require.NoError(t, err)

	h := harness{
		matches: repository.NewMatchRepository(sqlDB, queries, clk, log),
		leagues: repository.NewLeagueRepository(sqlDB, queries, clk, log),
		players: repository.NewPlayerRepository(sqlDB, queries, clk, log),
	}
	teams := repository.NewTeamRepository(sqlDB, queries, clk, log)
	snapshots := repository.NewSnapshotRepository(sqlDB, queries, clk, log)
	resolver := service.NewMatchResolver(h.matches, log)
	popularity := service.NewPopularityService(resolver, h.matches, snapshots, h.leagues, teams, h.players, catalog, clk, cfg, log)
	ingest := service.NewIngestService(
		api.NewStratzClient(cfg, clk), h.matches, h.leagues, teams, h.players,
		repository.NewHeroRepository(sqlDB, queries, clk, log), catalog, log,
	)

	path, handler := NewStatsServer(resolver, popularity, ingest, service.NewLeagueService(h.leagues, log), cfg, log).Handler()
	mux := http.NewServeMux()
	mux.Handle(path, handler)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	h.baseURL = srv.URL
	return h
}

func (h harness) call(t *testing.T, procedure string, fields map[string]any) (*structpb.Struct, error) {
	t.Helper()
	msg, err := structpb.NewStruct(fields)
	require.NoError(t, err)

	client := connect.NewClient[structpb.Struct, structpb.Struct](http.DefaultClient, h.baseURL+procedure)
	resp, err := client.CallUnary(context.Background(), connect.NewRequest(msg))
	if err != nil {
		return nil, err
	}
	return resp.Msg, nil
}

func seed(t *testing.T, h harness) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, h.leagues.Upsert(ctx, &domain.League{ID: 16000, Tier: 3}))

	a := testutil.Match(1, 16000, 15, 2)
	a.PickBans = testutil.Draft(1, testutil.Pick(1, true), testutil.Pick(2, true), testutil.Ban(3, false))
	b := testutil.Match(2, 16000, 4, 15)
	b.PickBans = testutil.Draft(2, testutil.Pick(1, false), testutil.Ban(3, true))
	old := testutil.Match(3, 16000, 15, 2)
	old.GameVersionID = 170
	old.PickBans = testutil.Draft(3, testutil.Pick(9, true))

	require.NoError(t, h.matches.UpsertBatch(ctx, []domain.Match{a, b, old}, []domain.MatchPlayer{
		{MatchID: 1, SteamAccountID: 111, HeroID: 74},
		{MatchID: 2, SteamAccountID: 111, HeroID: 74},
	}))
}

func nodeIDs(t *testing.T, s *structpb.Struct, key string) []float64 {
	t.Helper()
	var ids []float64
	for _, v := range s.GetFields()[key].GetListValue().GetValues() {
		ids = append(ids, v.GetStructValue().GetFields()["id"].GetNumberValue())
	}
	return ids
}

func TestGetHeroGraph(t *testing.T) {
	h := newHarness(t)
	seed(t, h)

	tests := map[string]struct {
		fields    map[string]any
		wantPicks []float64
		wantLinks int
	}{
		"league uses current patch": {
			fields:    map[string]any{"type_obj": "league", "id_obj": 16000},
			wantPicks: []float64{1, 2},
			wantLinks: 1,
		},
		"explicit game version": {
			fields:    map[string]any{"type_obj": "league", "id_obj": "16000", "game_version_id": 170},
			wantPicks: []float64{9},
			wantLinks: 0,
		},
		"unknown type falls back to all": {
			fields:    map[string]any{"type_obj": "tournament", "id_obj": 1},
			wantPicks: []float64{1, 2},
			wantLinks: 1,
		},
		"team keeps own side": {
			fields:    map[string]any{"type_obj": "team", "id_obj": 15, "duration_seconds": 600},
			wantPicks: []float64{1, 2},
			wantLinks: 1,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			out, err := h.call(t, GetHeroGraphProcedure, tc.fields)
			require.NoError(t, err)

			assert.Equal(t, tc.wantPicks, nodeIDs(t, out, "nodes_picks"))
			assert.Len(t, out.GetFields()["links_picks"].GetListValue().GetValues(), tc.wantLinks)
			assert.Contains(t, out.GetFields(), "nodes_bans")
			assert.Contains(t, out.GetFields(), "links_bans")
		})
	}
}

func TestGetHeroGraphPlayer(t *testing.T) {
	h := newHarness(t)
	seed(t, h)

	out, err := h.call(t, GetHeroGraphProcedure, map[string]any{"type_obj": "player", "id_obj": 111})
	require.NoError(t, err)

	assert.Equal(t, []float64{74}, nodeIDs(t, out, "nodes_picks"))
	assert.NotContains(t, out.GetFields(), "links_picks")

	node := out.GetFields()["nodes_picks"].GetListValue().GetValues()[0].GetStructValue().GetFields()
	assert.Equal(t, 2.0, node["count"].GetNumberValue())
	assert.Equal(t, 65.0, node["size"].GetNumberValue())
	assert.Equal(t, "invoker", node["name"].GetStringValue())
}

func TestGetHeroGraphInvalidArguments(t *testing.T) {
	h := newHarness(t)

	tests := map[string]map[string]any{
		"missing type":      {"id_obj": 1},
		"missing id":        {"type_obj": "league"},
		"id not a number":   {"type_obj": "league", "id_obj": "abc"},
		"fractional id":     {"type_obj": "league", "id_obj": 1.5},
		"type not a string": {"type_obj": 3, "id_obj": 1},
		"bad filter":        {"type_obj": "league", "id_obj": 1, "team_id": true},
	}

	for name, fields := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := h.call(t, GetHeroGraphProcedure, fields)
			assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
		})
	}
}

func TestPopularPickBansRoundTrip(t *testing.T) {
	h := newHarness(t)
	seed(t, h)

	_, err := h.call(t, GetPopularPickBansProcedure, map[string]any{"entity_type": "league", "entity_id": 16000})
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))

	out, err := h.call(t, RefreshPopularPickBansProcedure, map[string]any{"entity_type": "league", "entity_id": 16000})
	require.NoError(t, err)
	assert.True(t, out.GetFields()["refreshed"].GetBoolValue())

	out, err = h.call(t, RefreshPopularPickBansProcedure, map[string]any{"entity_type": "league", "entity_id": 16000})
	require.NoError(t, err)
	assert.False(t, out.GetFields()["refreshed"].GetBoolValue())

	out, err = h.call(t, GetPopularPickBansProcedure, map[string]any{"entity_type": "league", "entity_id": 16000})
	require.NoError(t, err)
	assert.Equal(t, "league", out.GetFields()["entity_type"].GetStringValue())
	assert.Equal(t, "2024-06-01T12:00:00Z", out.GetFields()["time_stamp_at"].GetStringValue())
	assert.Equal(t, []float64{1, 9, 2}, nodeIDs(t, out, "hero_picks"))
	assert.Equal(t, []float64{3}, nodeIDs(t, out, "hero_bans"))

	_, err = h.call(t, RefreshPopularPickBansProcedure, map[string]any{"entity_type": "team", "entity_id": 404})
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
}

func TestImportMatchWithoutToken(t *testing.T) {
	h := newHarness(t)

	_, err := h.call(t, ImportMatchProcedure, map[string]any{"match_id": 7900000001})
	assert.Equal(t, connect.CodeFailedPrecondition, connect.CodeOf(err))

	_, err = h.call(t, ImportMatchProcedure, map[string]any{})
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))

	_, err = h.call(t, ImportLeagueProcedure, map[string]any{"league_id": 16935})
	assert.Equal(t, connect.CodeFailedPrecondition, connect.CodeOf(err))

	_, err = h.call(t, ImportTeamProcedure, map[string]any{"team_id": 2163})
	assert.Equal(t, connect.CodeFailedPrecondition, connect.CodeOf(err))
}

func TestDeleteRestoreLeague(t *testing.T) {
	h := newHarness(t)
	seed(t, h)
	refresh := map[string]any{"entity_type": "league", "entity_id": 16000}

	tests := []struct {
		procedure string
		fields    map[string]any
		wantCode  connect.Code
	}{
		{DeleteSeriesProcedure, map[string]any{"series_id": 404}, connect.CodeNotFound},
		{DeleteLeagueProcedure, map[string]any{"league_id": 16000}, 0},
		{DeleteLeagueProcedure, map[string]any{"league_id": 16000}, connect.CodeNotFound},
		{RefreshPopularPickBansProcedure, refresh, connect.CodeNotFound},
		{RestoreLeagueProcedure, map[string]any{"league_id": 16000}, 0},
		{RefreshPopularPickBansProcedure, refresh, 0},
		{RestoreLeagueProcedure, map[string]any{}, connect.CodeInvalidArgument},
	}

	for i, tc := range tests {
		_, err := h.call(t, tc.procedure, tc.fields)
		if tc.wantCode == 0 {
			require.NoError(t, err, "step %d", i)
			continue
		}
		assert.Equal(t, tc.wantCode, connect.CodeOf(err), "step %d", i)
	}
}

func TestToConnectError(t *testing.T) {
	tests := map[string]struct {
		err  error
		want connect.Code
	}{
		"missing entity":  {err: fmt.Errorf("wrap: %w", service.ErrEntityNotFound), want: connect.CodeNotFound},
		"ingest disabled": {err: service.ErrIngestDisabled, want: connect.CodeFailedPrecondition},
		"hour budget":     {err: fmt.Errorf("failed to fetch match 1: %w", api.ErrRateLimited), want: connect.CodeResourceExhausted},
		"upstream 404":    {err: &api.APIError{StatusCode: http.StatusNotFound}, want: connect.CodeNotFound},
		"upstream 502":    {err: &api.APIError{StatusCode: http.StatusBadGateway}, want: connect.CodeUnavailable},
		"other":           {err: errors.New("boom"), want: connect.CodeInternal},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, toConnectError(tc.err).Code())
		})
	}
}
