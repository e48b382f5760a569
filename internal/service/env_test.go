package service

import (
	"testing"
	"time"

	"dota-stats/internal/api"
	"dota-stats/internal/config"
	"dota-stats/internal/heroes"
	"dota-stats/internal/repository"
	"dota-stats/internal/testutil"

	"github.com/itbasis/go-clock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type env struct {
	cfg        *config.Config
	clock      *clock.Mock
	catalog    *heroes.Catalog
	matches    *repository.MatchRepository
	leagues    *repository.LeagueRepository
	teams      *repository.TeamRepository
	players    *repository.PlayerRepository
	snapshots  *repository.SnapshotRepository
	heroRepo   *repository.HeroRepository
	resolver   *MatchResolver
	popularity *PopularityService
	ingest     *IngestService
}

func newEnv(t *testing.T, stratzURL string) *env {
	t.Helper()

	cfg := &config.Config{
		StratzAPIKey:     "test-key",
		StratzBaseURL:    stratzURL,
		HeroImageBaseURL: "https://cdn.example/heroes",
		SnapshotTTL:      24 * time.Hour,
		RefreshWorkers:   4,
	}
	if stratzURL == "" {
		cfg.StratzAPIKey = ""
	}

	sqlDB, queries := testutil.NewDB(t)
	clk := testutil.NewClock()
	log := zerolog.Nop()

	catalog, err := heroes.NewCatalog(cfg)
	require.NoError(t, err)

	e := &env{
		cfg:       cfg,
		clock:     clk,
		catalog:   catalog,
		matches:   repository.NewMatchRepository(sqlDB, queries, clk, log),
		leagues:   repository.NewLeagueRepository(sqlDB, queries, clk, log),
		teams:     repository.NewTeamRepository(sqlDB, queries, clk, log),
		players:   repository.NewPlayerRepository(sqlDB, queries, clk, log),
		snapshots: repository.NewSnapshotRepository(sqlDB, queries, clk, log),
		heroRepo:  repository.NewHeroRepository(sqlDB, queries, clk, log),
	}
	e.resolver = NewMatchResolver(e.matches, log)
	e.popularity = NewPopularityService(e.resolver, e.matches, e.snapshots, e.leagues, e.teams, e.players, catalog, clk, cfg, log)
	e.ingest = NewIngestService(api.NewStratzClient(cfg, clk), e.matches, e.leagues, e.teams, e.players, e.heroRepo, catalog, log)
	return e
}
