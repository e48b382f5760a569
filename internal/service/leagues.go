package service

import (
	"context"
	"fmt"

	"dota-stats/internal/constants"
	"dota-stats/internal/repository"

	"github.com/rs/zerolog"
)

// LeagueService hides and restores leagues and series. Hidden rows drop out of
// every graph, snapshot and selector until restored.
type LeagueService struct {
	leagues *repository.LeagueRepository
	logger  zerolog.Logger
}

func NewLeagueService(leagues *repository.LeagueRepository, logger zerolog.Logger) *LeagueService {
	return &LeagueService{leagues: leagues, logger: logger}
}

func (s *LeagueService) DeleteLeague(ctx context.Context, leagueID int64) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if err := s.leagues.SoftDelete(ctx, leagueID); err != nil {
		return notFound(err, "league", leagueID)
	}
	return nil
}

func (s *LeagueService) RestoreLeague(ctx context.Context, leagueID int64) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if err := s.leagues.Restore(ctx, leagueID); err != nil {
		return notFound(err, "league", leagueID)
	}
	s.logger.Info().Int64("league_id", leagueID).Msg("league restored")
	return nil
}

func (s *LeagueService) DeleteSeries(ctx context.Context, seriesID int64) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if err := s.leagues.SoftDeleteSeries(ctx, seriesID); err != nil {
		return notFound(err, "series", seriesID)
	}
	s.logger.Info().Int64("series_id", seriesID).Msg("series soft-deleted")
	return nil
}

func notFound(err error, kind string, id int64) error {
	if repository.IsNotFound(err) {
		return fmt.Errorf("%w: %s:%d", ErrEntityNotFound, kind, id)
	}
	return err
}
