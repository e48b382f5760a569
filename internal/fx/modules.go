package fx

import (
	"database/sql"

	"dota-stats/internal/api"
	"dota-stats/internal/config"
	"dota-stats/internal/database"
	"dota-stats/internal/db"
	"dota-stats/internal/heroes"
	"dota-stats/internal/logger"
	"dota-stats/internal/repository"
	"dota-stats/internal/scheduler"
	"dota-stats/internal/server"
	"dota-stats/internal/service"
	"dota-stats/internal/stats"

	"github.com/itbasis/go-clock"
	"go.uber.org/fx"
)

func ProvideQueries(sqlDB *sql.DB) *db.Queries {
	return db.New(sqlDB)
}

func ProvideClock() clock.Clock {
	return clock.New()
}

// ProvideHeroLookup exposes the catalog to the aggregator by interface.
func ProvideHeroLookup(catalog *heroes.Catalog) stats.HeroLookup {
	return catalog
}

var Module = fx.Options(
	logger.Module,
	config.Module,
	fx.Provide(ProvideClock),
	fx.Provide(database.New),
	fx.Provide(ProvideQueries),
	// repos
	fx.Provide(repository.NewMatchRepository),
	fx.Provide(repository.NewLeagueRepository),
	fx.Provide(repository.NewTeamRepository),
	fx.Provide(repository.NewPlayerRepository),
	fx.Provide(repository.NewHeroRepository),
	fx.Provide(repository.NewSnapshotRepository),
	// heroes
	fx.Provide(heroes.NewCatalog),
	fx.Provide(ProvideHeroLookup),
	// api client
	fx.Provide(api.NewStratzClient),
	// svc
	fx.Provide(service.NewMatchResolver),
	fx.Provide(service.NewPopularityService),
	fx.Provide(service.NewIngestService),
	fx.Provide(service.NewLeagueService),
	fx.Provide(scheduler.New),
	// server
	fx.Provide(server.NewStatsServer),
)
