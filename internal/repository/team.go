package repository

import (
	"context"
	"database/sql"
	"fmt"

	"dota-stats/internal/constants"
	"dota-stats/internal/db"
	"dota-stats/internal/domain"

	"github.com/itbasis/go-clock"
	"github.com/rs/zerolog"
)

type TeamRepository struct {
	queries *db.Queries
	db      *sql.DB
	clock   clock.Clock
	logger  zerolog.Logger
}

func NewTeamRepository(sqlDB *sql.DB, queries *db.Queries, clk clock.Clock, logger zerolog.Logger) *TeamRepository {
	return &TeamRepository{
		queries: queries,
		db:      sqlDB,
		clock:   clk,
		logger:  logger,
	}
}

func (r *TeamRepository) Upsert(ctx context.Context, team *domain.Team) error {
	now := r.clock.Now().UTC()
	err := r.queries.UpsertTeam(ctx, db.UpsertTeamParams{
		ID:        team.ID,
		Name:      team.Name,
		Tag:       team.Tag,
		Rank:      int64(team.Rank),
		IsPro:     team.IsPro,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert team %d: %w", team.ID, err)
	}
	return nil
}

// Ensure stores a bare team row unless the id is already known.
func (r *TeamRepository) Ensure(ctx context.Context, teamID int64) error {
	now := r.clock.Now().UTC()
	if err := r.queries.EnsureTeam(ctx, db.EnsureTeamParams{ID: teamID, CreatedAt: now, UpdatedAt: now}); err != nil {
		return fmt.Errorf("failed to ensure team %d: %w", teamID, err)
	}
	return nil
}

func (r *TeamRepository) Exists(ctx context.Context, teamID int64) (bool, error) {
	return r.queries.TeamExists(ctx, teamID)
}

// ProIDs lists pro teams at or above the ranking cut, best first.
func (r *TeamRepository) ProIDs(ctx context.Context) ([]int64, error) {
	ids, err := r.queries.ListProTeamIDs(ctx, constants.ProTeamMinRank)
	if err != nil {
		return nil, fmt.Errorf("failed to list pro teams: %w", err)
	}
	return ids, nil
}

// SyncIDs lists teams whose profile should be pulled from upstream: pro
// teams and every team playing in a running league of tier 2 or above.
func (r *TeamRepository) SyncIDs(ctx context.Context) ([]int64, error) {
	ids, err := r.queries.ListTeamSyncIDs(ctx, constants.LeagueMinTier)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams to sync: %w", err)
	}
	return ids, nil
}
