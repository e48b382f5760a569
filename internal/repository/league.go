package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"dota-stats/internal/constants"
	"dota-stats/internal/db"
	"dota-stats/internal/domain"

	"github.com/itbasis/go-clock"
	"github.com/rs/zerolog"
)

type LeagueRepository struct {
	queries *db.Queries
	db      *sql.DB
	clock   clock.Clock
	logger  zerolog.Logger
}

func NewLeagueRepository(sqlDB *sql.DB, queries *db.Queries, clk clock.Clock, logger zerolog.Logger) *LeagueRepository {
	return &LeagueRepository{
		queries: queries,
		db:      sqlDB,
		clock:   clk,
		logger:  logger,
	}
}

func (r *LeagueRepository) Upsert(ctx context.Context, league *domain.League) error {
	now := r.clock.Now().UTC()
	err := r.queries.UpsertLeague(ctx, db.UpsertLeagueParams{
		ID:        league.ID,
		Name:      league.Name,
		Tier:      int64(league.Tier),
		IsOver:    league.IsOver,
		StartAt:   nullTime(league.StartAt),
		EndAt:     nullTime(league.EndAt),
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert league %d: %w", league.ID, err)
	}
	return nil
}

// Ensure stores a bare league row unless the id is already known.
func (r *LeagueRepository) Ensure(ctx context.Context, leagueID int64) error {
	now := r.clock.Now().UTC()
	if err := r.queries.EnsureLeague(ctx, db.EnsureLeagueParams{ID: leagueID, CreatedAt: now, UpdatedAt: now}); err != nil {
		return fmt.Errorf("failed to ensure league %d: %w", leagueID, err)
	}
	return nil
}

func (r *LeagueRepository) Get(ctx context.Context, leagueID int64) (*domain.League, error) {
	row, err := r.queries.GetLeague(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	return &domain.League{
		ID:        row.ID,
		Name:      row.Name,
		Tier:      int(row.Tier),
		IsOver:    row.IsOver,
		StartAt:   timePtr(row.StartAt),
		EndAt:     timePtr(row.EndAt),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
		DeletedAt: timePtr(row.DeletedAt),
	}, nil
}

// Exists reports whether a non-deleted league with the id is stored.
func (r *LeagueRepository) Exists(ctx context.Context, leagueID int64) (bool, error) {
	return r.queries.LeagueExists(ctx, leagueID)
}

// RefreshableIDs lists running leagues of tier 2 and above, newest first.
func (r *LeagueRepository) RefreshableIDs(ctx context.Context) ([]int64, error) {
	ids, err := r.queries.ListRefreshableLeagueIDs(ctx, db.ListRefreshableLeagueIDsParams{
		MinTier: constants.LeagueMinTier,
		MinID:   constants.LeagueMinID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list refreshable leagues: %w", err)
	}
	return ids, nil
}

// MarkFinished flags every league whose end time has passed.
func (r *LeagueRepository) MarkFinished(ctx context.Context) (int64, error) {
	n, err := r.queries.MarkFinishedLeagues(ctx, r.clock.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to mark finished leagues: %w", err)
	}
	if n > 0 {
		r.logger.Info().Int64("count", n).Msg("leagues marked as over")
	}
	return n, nil
}

// SoftDelete hides the league together with its series and matches.
func (r *LeagueRepository) SoftDelete(ctx context.Context, leagueID int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)
	now := r.clock.Now().UTC()
	deletedAt := sql.NullTime{Time: now, Valid: true}
	leagueRef := sql.NullInt64{Int64: leagueID, Valid: true}

	n, err := qtx.SoftDeleteLeague(ctx, db.SoftDeleteLeagueParams{DeletedAt: deletedAt, UpdatedAt: now, ID: leagueID})
	if err != nil {
		return fmt.Errorf("failed to delete league %d: %w", leagueID, err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	series, err := qtx.SoftDeleteSeriesByLeague(ctx, db.SoftDeleteSeriesByLeagueParams{DeletedAt: deletedAt, UpdatedAt: now, LeagueID: leagueRef})
	if err != nil {
		return fmt.Errorf("failed to delete series of league %d: %w", leagueID, err)
	}
	matches, err := qtx.SoftDeleteMatchesByLeague(ctx, db.SoftDeleteMatchesByLeagueParams{DeletedAt: deletedAt, UpdatedAt: now, LeagueID: leagueRef})
	if err != nil {
		return fmt.Errorf("failed to delete matches of league %d: %w", leagueID, err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	r.logger.Info().
		Int64("league_id", leagueID).
		Int64("series", series).
		Int64("matches", matches).
		Msg("league soft-deleted")
	return nil
}

// Restore reverses SoftDelete.
func (r *LeagueRepository) Restore(ctx context.Context, leagueID int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)
	now := r.clock.Now().UTC()
	leagueRef := sql.NullInt64{Int64: leagueID, Valid: true}

	n, err := qtx.RestoreLeague(ctx, db.RestoreLeagueParams{UpdatedAt: now, ID: leagueID})
	if err != nil {
		return fmt.Errorf("failed to restore league %d: %w", leagueID, err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	if _, err := qtx.RestoreSeriesByLeague(ctx, db.RestoreSeriesByLeagueParams{UpdatedAt: now, LeagueID: leagueRef}); err != nil {
		return fmt.Errorf("failed to restore series of league %d: %w", leagueID, err)
	}
	if _, err := qtx.RestoreMatchesByLeague(ctx, db.RestoreMatchesByLeagueParams{UpdatedAt: now, LeagueID: leagueRef}); err != nil {
		return fmt.Errorf("failed to restore matches of league %d: %w", leagueID, err)
	}
	return tx.Commit()
}

func (r *LeagueRepository) UpsertSeries(ctx context.Context, series *domain.Series) error {
	now := r.clock.Now().UTC()
	err := r.queries.UpsertSeries(ctx, db.UpsertSeriesParams{
		ID:         series.ID,
		LeagueID:   nullInt64(series.LeagueID),
		TeamOneID:  nullInt64(series.TeamOneID),
		TeamTwoID:  nullInt64(series.TeamTwoID),
		SeriesType: series.SeriesType,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert series %d: %w", series.ID, err)
	}
	return nil
}

func (r *LeagueRepository) GetSeries(ctx context.Context, seriesID int64) (*domain.Series, error) {
	row, err := r.queries.GetSeries(ctx, seriesID)
	if err != nil {
		return nil, err
	}
	return &domain.Series{
		ID:         row.ID,
		LeagueID:   row.LeagueID.Int64,
		TeamOneID:  row.TeamOneID.Int64,
		TeamTwoID:  row.TeamTwoID.Int64,
		SeriesType: row.SeriesType,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
		DeletedAt:  timePtr(row.DeletedAt),
	}, nil
}

// SoftDeleteSeries hides the series and its matches.
func (r *LeagueRepository) SoftDeleteSeries(ctx context.Context, seriesID int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)
	now := r.clock.Now().UTC()
	deletedAt := sql.NullTime{Time: now, Valid: true}

	n, err := qtx.SoftDeleteSeries(ctx, db.SoftDeleteSeriesParams{DeletedAt: deletedAt, UpdatedAt: now, ID: seriesID})
	if err != nil {
		return fmt.Errorf("failed to delete series %d: %w", seriesID, err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	if _, err := qtx.SoftDeleteMatchesBySeries(ctx, db.SoftDeleteMatchesBySeriesParams{
		DeletedAt: deletedAt,
		UpdatedAt: now,
		SeriesID:  sql.NullInt64{Int64: seriesID, Valid: true},
	}); err != nil {
		return fmt.Errorf("failed to delete matches of series %d: %w", seriesID, err)
	}
	return tx.Commit()
}

func IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
