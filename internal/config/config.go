package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"dota-stats/internal/constants"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	StratzAPIKey          string
	StratzBaseURL         string
	DBPath                string
	ServerPort            string
	LogLevel              string
	HeroImageBaseURL      string
	SnapshotTTL           time.Duration
	RefreshWorkers        int
	CurrentGameVersionID  int64
	LeagueRefreshSchedule string
	TeamRefreshSchedule   string
	PlayerRefreshSchedule string
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	snapshotTTL, err := time.ParseDuration(getEnv("SNAPSHOT_TTL", constants.SnapshotRefreshTTL.String()))
	if err != nil {
		return nil, fmt.Errorf("invalid SNAPSHOT_TTL: %w", err)
	}
	workers, err := strconv.Atoi(getEnv("REFRESH_WORKERS", "8"))
	if err != nil || workers < 1 {
		return nil, fmt.Errorf("invalid REFRESH_WORKERS %q", os.Getenv("REFRESH_WORKERS"))
	}
	gameVersion, err := strconv.ParseInt(getEnv("CURRENT_GAME_VERSION_ID", "175"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid CURRENT_GAME_VERSION_ID: %w", err)
	}

	cfg := &Config{
		StratzAPIKey:          getEnv("STRATZ_API_KEY", ""),
		StratzBaseURL:         getEnv("STRATZ_BASE_URL", "https://api.stratz.com/api/v1"),
		DBPath:                getEnv("DB_PATH", "dota.db"),
		ServerPort:            getEnv("SERVER_PORT", "8080"),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		HeroImageBaseURL:      getEnv("HERO_IMAGE_BASE_URL", "https://dj.binetc.site/static/images/heroes"),
		SnapshotTTL:           snapshotTTL,
		RefreshWorkers:        workers,
		CurrentGameVersionID:  gameVersion,
		LeagueRefreshSchedule: getEnv("LEAGUE_REFRESH_SCHEDULE", "0 */6 * * *"),
		TeamRefreshSchedule:   getEnv("TEAM_REFRESH_SCHEDULE", "20 3 * * *"),
		PlayerRefreshSchedule: getEnv("PLAYER_REFRESH_SCHEDULE", "40 3 * * *"),
	}

	if cfg.StratzAPIKey == "" {
		logger.Warn().Msg("STRATZ_API_KEY is not set, match import is disabled")
	}

	logger.Info().
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Dur("snapshot_ttl", cfg.SnapshotTTL).
		Int("refresh_workers", cfg.RefreshWorkers).
		Int64("game_version_id", cfg.CurrentGameVersionID).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var Module = fx.Provide(Load)
