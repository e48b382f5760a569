package repository

import (
	"context"
	"database/sql"
	"fmt"

	"dota-stats/internal/db"
	"dota-stats/internal/domain"

	"github.com/itbasis/go-clock"
	"github.com/rs/zerolog"
)

type PlayerRepository struct {
	queries *db.Queries
	db      *sql.DB
	clock   clock.Clock
	logger  zerolog.Logger
}

func NewPlayerRepository(sqlDB *sql.DB, queries *db.Queries, clk clock.Clock, logger zerolog.Logger) *PlayerRepository {
	return &PlayerRepository{
		queries: queries,
		db:      sqlDB,
		clock:   clk,
		logger:  logger,
	}
}

func (r *PlayerRepository) Upsert(ctx context.Context, player *domain.Player) error {
	now := r.clock.Now().UTC()
	err := r.queries.UpsertPlayer(ctx, db.UpsertPlayerParams{
		SteamAccountID: player.SteamAccountID,
		Name:           player.Name,
		IsPro:          player.IsPro,
		TeamID:         nullInt64(player.TeamID),
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert player %d: %w", player.SteamAccountID, err)
	}
	return nil
}

func (r *PlayerRepository) Exists(ctx context.Context, steamAccountID int64) (bool, error) {
	exists, err := r.queries.PlayerExists(ctx, steamAccountID)
	if err != nil {
		r.logger.Error().Err(err).Int64("steam_account_id", steamAccountID).Msg("failed to check player")
		return false, err
	}
	return exists, nil
}

// ProIDs lists players flagged as professionals.
func (r *PlayerRepository) ProIDs(ctx context.Context) ([]int64, error) {
	ids, err := r.queries.ListProPlayerIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pro players: %w", err)
	}
	return ids, nil
}
