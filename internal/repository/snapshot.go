package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"dota-stats/internal/db"
	"dota-stats/internal/domain"

	"github.com/itbasis/go-clock"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type SnapshotRepository struct {
	queries *db.Queries
	db      *sql.DB
	clock   clock.Clock
	logger  zerolog.Logger
}

func NewSnapshotRepository(sqlDB *sql.DB, queries *db.Queries, clk clock.Clock, logger zerolog.Logger) *SnapshotRepository {
	return &SnapshotRepository{
		queries: queries,
		db:      sqlDB,
		clock:   clk,
		logger:  logger,
	}
}

// Get returns the stored snapshot for the entity, or nil when none exists.
func (r *SnapshotRepository) Get(ctx context.Context, kind domain.ScopeKind, entityID int64) (*domain.PopularPickBan, error) {
	row, err := r.queries.GetPopularPickBan(ctx, db.GetPopularPickBanParams{
		EntityType: kind.String(),
		EntityID:   entityID,
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	parsed, _ := domain.ParseScopeKind(row.EntityType)
	return &domain.PopularPickBan{
		ID:          row.ID,
		EntityType:  parsed,
		EntityID:    row.EntityID,
		HeroPicks:   []byte(row.HeroPicks),
		HeroBans:    []byte(row.HeroBans),
		TimeStampAt: row.TimeStampAt,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}, nil
}

// Upsert overwrites the single row for (entity_type, entity_id). The row id
// is only used on first insert.
func (r *SnapshotRepository) Upsert(ctx context.Context, snap *domain.PopularPickBan) error {
	id := snap.ID
	if id == "" {
		var err error
		id, err = gonanoid.New()
		if err != nil {
			return fmt.Errorf("failed to generate nanoid: %w", err)
		}
	}

	now := r.clock.Now().UTC()
	stamp := snap.TimeStampAt
	if stamp.IsZero() {
		stamp = now
	}

	err := r.queries.UpsertPopularPickBan(ctx, db.UpsertPopularPickBanParams{
		ID:          id,
		EntityType:  snap.EntityType.String(),
		EntityID:    snap.EntityID,
		HeroPicks:   string(snap.HeroPicks),
		HeroBans:    string(snap.HeroBans),
		TimeStampAt: stamp.UTC(),
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert snapshot %s:%d: %w", snap.EntityType, snap.EntityID, err)
	}
	return nil
}

func (r *SnapshotRepository) ShouldRefresh(ctx context.Context, kind domain.ScopeKind, entityID int64, ttl time.Duration) (bool, error) {
	snap, err := r.Get(ctx, kind, entityID)
	if err != nil {
		r.logger.Error().Err(err).Str("entity_type", kind.String()).Int64("entity_id", entityID).Msg("failed to get snapshot")
		return false, err
	}
	if snap == nil {
		r.logger.Debug().Str("entity_type", kind.String()).Int64("entity_id", entityID).Msg("snapshot not found, should refresh")
		return true, nil
	}

	timeSince := r.clock.Now().Sub(snap.TimeStampAt)
	shouldRefresh := timeSince > ttl
	r.logger.Debug().
		Str("entity_type", kind.String()).
		Int64("entity_id", entityID).
		Time("time_stamp_at", snap.TimeStampAt).
		Dur("time_since", timeSince).
		Dur("ttl", ttl).
		Bool("should_refresh", shouldRefresh).
		Msg("checking if snapshot should refresh")

	return shouldRefresh, nil
}

func (r *SnapshotRepository) Count(ctx context.Context, kind domain.ScopeKind, entityID int64) (int64, error) {
	return r.queries.CountPopularPickBans(ctx, db.CountPopularPickBansParams{
		EntityType: kind.String(),
		EntityID:   entityID,
	})
}
