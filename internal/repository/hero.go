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

type HeroRepository struct {
	queries *db.Queries
	db      *sql.DB
	clock   clock.Clock
	logger  zerolog.Logger
}

func NewHeroRepository(sqlDB *sql.DB, queries *db.Queries, clk clock.Clock, logger zerolog.Logger) *HeroRepository {
	return &HeroRepository{
		queries: queries,
		db:      sqlDB,
		clock:   clk,
		logger:  logger,
	}
}

func (r *HeroRepository) UpsertBatch(ctx context.Context, heroes []domain.Hero) error {
	if len(heroes) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)
	now := r.clock.Now().UTC()

	for _, h := range heroes {
		err := qtx.UpsertHero(ctx, db.UpsertHeroParams{
			ID:          h.ID,
			Name:        h.Name,
			DisplayName: h.DisplayName,
			ShortName:   h.ShortName,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return fmt.Errorf("failed to upsert hero %d: %w", h.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	r.logger.Debug().Int("count", len(heroes)).Msg("heroes upserted")
	return nil
}

func (r *HeroRepository) Count(ctx context.Context) (int64, error) {
	return r.queries.CountHeroes(ctx)
}
