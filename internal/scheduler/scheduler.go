package scheduler

import (
	"context"
	"fmt"

	"dota-stats/internal/config"
	"dota-stats/internal/domain"
	"dota-stats/internal/repository"
	"dota-stats/internal/service"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Scheduler pulls leagues and teams from upstream and then refreshes the
// snapshots of leagues, teams and players on cron schedules.
type Scheduler struct {
	cron       *cron.Cron
	popularity *service.PopularityService
	ingest     *service.IngestService
	leagues    *repository.LeagueRepository
	teams      *repository.TeamRepository
	players    *repository.PlayerRepository
	logger     zerolog.Logger
}

func New(
	cfg *config.Config,
	popularity *service.PopularityService,
	ingest *service.IngestService,
	leagues *repository.LeagueRepository,
	teams *repository.TeamRepository,
	players *repository.PlayerRepository,
	logger zerolog.Logger,
) (*Scheduler, error) {
	cl := cronLogger{logger: logger}
	s := &Scheduler{
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		popularity: popularity,
		ingest:     ingest,
		leagues:    leagues,
		teams:      teams,
		players:    players,
		logger:     logger,
	}

	jobs := []struct {
		name     string
		schedule string
		run      func(context.Context)
	}{
		{"leagues", cfg.LeagueRefreshSchedule, func(ctx context.Context) {
			s.SyncLeagues(ctx)
			s.RefreshLeagues(ctx)
		}},
		{"teams", cfg.TeamRefreshSchedule, func(ctx context.Context) {
			s.SyncTeams(ctx)
			s.RefreshTeams(ctx)
		}},
		{"players", cfg.PlayerRefreshSchedule, func(ctx context.Context) {
			s.RefreshPlayers(ctx)
		}},
	}
	for _, job := range jobs {
		run := job.run
		if _, err := s.cron.AddFunc(job.schedule, func() { run(context.Background()) }); err != nil {
			return nil, fmt.Errorf("failed to schedule %s refresh %q: %w", job.name, job.schedule, err)
		}
		logger.Debug().Str("job", job.name).Str("schedule", job.schedule).Msg("refresh job scheduled")
	}

	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info().Int("jobs", len(s.cron.Entries())).Msg("scheduler started")
}

// Stop halts the scheduler and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.logger.Info().Msg("scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SyncLeagues imports the latest league list, then the series and matches
// of every running tier 2+ league. It is a no-op without an API token.
func (s *Scheduler) SyncLeagues(ctx context.Context) []service.ImportFailure {
	if !s.ingest.Enabled() {
		s.logger.Debug().Msg("ingest disabled, skipping league sync")
		return nil
	}

	if _, err := s.ingest.ImportLeagues(ctx); err != nil {
		s.logger.Error().Err(err).Msg("failed to import leagues")
	}
	ids, err := s.leagues.RefreshableIDs(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to select leagues")
		return nil
	}

	var failures []service.ImportFailure
	for _, id := range ids {
		if _, f, err := s.ingest.ImportLeagueSeries(ctx, id); err != nil {
			s.logger.Error().Err(err).Int64("league_id", id).Msg("failed to import league series")
		} else {
			failures = append(failures, f...)
		}
		if _, f, err := s.ingest.ImportLeagueMatches(ctx, id); err != nil {
			s.logger.Error().Err(err).Int64("league_id", id).Msg("failed to import league matches")
		} else {
			failures = append(failures, f...)
		}
	}

	for _, f := range failures {
		s.logger.Warn().Err(f.Err).Int64("match_id", f.ID).Msg("match import failed")
	}
	s.logger.Info().Int("leagues", len(ids)).Int("failed", len(failures)).Msg("league sync finished")
	return failures
}

// SyncTeams imports the profile and roster of every pro team and every team
// playing in a running tier 2+ league.
func (s *Scheduler) SyncTeams(ctx context.Context) []service.ImportFailure {
	if !s.ingest.Enabled() {
		s.logger.Debug().Msg("ingest disabled, skipping team sync")
		return nil
	}

	ids, err := s.teams.SyncIDs(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to select teams")
		return nil
	}

	var failures []service.ImportFailure
	for _, id := range ids {
		if _, err := s.ingest.ImportTeam(ctx, id); err != nil {
			s.logger.Warn().Err(err).Int64("team_id", id).Msg("team import failed")
			failures = append(failures, service.ImportFailure{ID: id, Err: err})
		}
	}

	s.logger.Info().Int("teams", len(ids)).Int("failed", len(failures)).Msg("team sync finished")
	return failures
}

// RefreshLeagues marks finished leagues, then refreshes every running
// tier 2+ league.
func (s *Scheduler) RefreshLeagues(ctx context.Context) []service.RefreshFailure {
	if _, err := s.leagues.MarkFinished(ctx); err != nil {
		s.logger.Error().Err(err).Msg("failed to mark finished leagues")
	}
	ids, err := s.leagues.RefreshableIDs(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to select leagues")
		return nil
	}
	return s.refresh(ctx, domain.ScopeLeague, ids)
}

func (s *Scheduler) RefreshTeams(ctx context.Context) []service.RefreshFailure {
	ids, err := s.teams.ProIDs(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to select teams")
		return nil
	}
	return s.refresh(ctx, domain.ScopeTeam, ids)
}

func (s *Scheduler) RefreshPlayers(ctx context.Context) []service.RefreshFailure {
	ids, err := s.players.ProIDs(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to select players")
		return nil
	}
	return s.refresh(ctx, domain.ScopePlayer, ids)
}

func (s *Scheduler) refresh(ctx context.Context, kind domain.ScopeKind, ids []int64) []service.RefreshFailure {
	failures := s.popularity.RefreshMany(ctx, kind, ids)
	for _, f := range failures {
		s.logger.Error().
			Err(f.Err).
			Str("entity_type", kind.String()).
			Int64("entity_id", f.ID).
			Msg("snapshot refresh failed")
	}
	return failures
}

type cronLogger struct {
	logger zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
