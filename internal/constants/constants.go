package constants

import "time"

const (
	MatchScanLimit     = 500
	SnapshotTopN       = 30
	SnapshotRefreshTTL = 24 * time.Hour
)

const (
	ProTeamMinRank  = 1200
	LeagueMinTier   = 2
	LeagueMinID     = 15000
	LeagueMatchPage = 100
	LeagueListCount = 250
	SeriesPage      = 100
)

const (
	PickBanBatchSize   = 100
	PickBanLoadWorkers = 4
	ImportWorkers      = 4
)

const (
	ExternalAPITimeout = 10 * time.Second
	DatabaseTimeout    = 5 * time.Second
	RequestTimeout     = 30 * time.Second
	RefreshTimeout     = 2 * time.Minute
)

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
	DBBatchSize       = 100
)

const (
	ShutdownTimeout = 5 * time.Second
)
