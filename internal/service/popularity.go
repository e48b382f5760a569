package service

import (
	"context"
	"encoding/json"
	"fmt"

	"dota-stats/internal/config"
	"dota-stats/internal/constants"
	"dota-stats/internal/domain"
	"dota-stats/internal/repository"
	"dota-stats/internal/stats"

	"github.com/itbasis/go-clock"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type PopularityService struct {
	resolver  *MatchResolver
	matches   *repository.MatchRepository
	snapshots *repository.SnapshotRepository
	leagues   *repository.LeagueRepository
	teams     *repository.TeamRepository
	players   *repository.PlayerRepository
	heroes    stats.HeroLookup
	clock     clock.Clock
	cfg       *config.Config
	logger    zerolog.Logger
}

// RefreshFailure records one entity whose snapshot could not be rebuilt.
type RefreshFailure struct {
	ID  int64
	Err error
}

func NewPopularityService(
	resolver *MatchResolver,
	matches *repository.MatchRepository,
	snapshots *repository.SnapshotRepository,
	leagues *repository.LeagueRepository,
	teams *repository.TeamRepository,
	players *repository.PlayerRepository,
	heroes stats.HeroLookup,
	clk clock.Clock,
	cfg *config.Config,
	logger zerolog.Logger,
) *PopularityService {
	return &PopularityService{
		resolver:  resolver,
		matches:   matches,
		snapshots: snapshots,
		leagues:   leagues,
		teams:     teams,
		players:   players,
		heroes:    heroes,
		clock:     clk,
		cfg:       cfg,
		logger:    logger,
	}
}

// HeroGraph builds the pick and ban co-occurrence graph for a non-player scope.
func (s *PopularityService) HeroGraph(ctx context.Context, scope domain.Scope, filters domain.MatchFilters) (*stats.Graph, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	matches, err := s.resolver.Resolve(ctx, scope, filters)
	if err != nil {
		return nil, err
	}

	graph := stats.BuildGraph(s.heroes, stats.Aggregate(matches, scope))

	s.logger.Debug().
		Str("scope", scope.String()).
		Int("match_count", len(matches)).
		Int("pick_nodes", len(graph.NodesPicks)).
		Int("ban_nodes", len(graph.NodesBans)).
		Msg("hero graph built")

	return &graph, nil
}

// PlayerHeroGraph counts the heroes one player played across active matches.
func (s *PopularityService) PlayerHeroGraph(ctx context.Context, steamAccountID int64, filters domain.MatchFilters) (*stats.PlayerGraph, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	appearances, err := s.matches.PlayerAppearances(ctx, steamAccountID, filters)
	if err != nil {
		s.logger.Error().Err(err).Int64("steam_account_id", steamAccountID).Msg("failed to load player appearances")
		return nil, err
	}

	graph := stats.BuildPlayerGraph(s.heroes, stats.CountPlayerHeroes(appearances))
	return &graph, nil
}

// Snapshot returns the stored snapshot for the entity.
func (s *PopularityService) Snapshot(ctx context.Context, scope domain.Scope) (*domain.PopularPickBan, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	snap, err := s.snapshots.Get(ctx, scope.Kind, scope.ID)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, scope)
	}
	return snap, nil
}

// RefreshIfStale recomputes and stores the top pick and ban nodes for a
// league, team or player. It reports whether a new snapshot was written.
// Snapshots younger than the configured TTL are left untouched.
func (s *PopularityService) RefreshIfStale(ctx context.Context, scope domain.Scope) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RefreshTimeout)
	defer cancel()

	log := s.logger.With().Str("entity_type", scope.Kind.String()).Int64("entity_id", scope.ID).Logger()

	switch scope.Kind {
	case domain.ScopeLeague, domain.ScopeTeam, domain.ScopePlayer:
	default:
		log.Warn().Msg("snapshots are kept for leagues, teams and players only, skipping")
		return false, nil
	}

	stale, err := s.snapshots.ShouldRefresh(ctx, scope.Kind, scope.ID, s.cfg.SnapshotTTL)
	if err != nil {
		return false, err
	}
	if !stale {
		log.Debug().Msg("snapshot is fresh, skipping")
		return false, nil
	}

	exists, err := s.entityExists(ctx, scope)
	if err != nil {
		return false, err
	}
	if !exists {
		log.Error().Msg("entity not found, snapshot not refreshed")
		return false, fmt.Errorf("%w: %s", ErrEntityNotFound, scope)
	}

	var picks, bans []stats.Node
	if scope.Kind == domain.ScopePlayer {
		graph, err := s.PlayerHeroGraph(ctx, scope.ID, domain.MatchFilters{})
		if err != nil {
			return false, err
		}
		picks = graph.NodesPicks
	} else {
		graph, err := s.HeroGraph(ctx, scope, domain.MatchFilters{})
		if err != nil {
			return false, err
		}
		picks, bans = graph.NodesPicks, graph.NodesBans
	}

	heroPicks, err := marshalTop(picks)
	if err != nil {
		return false, err
	}
	heroBans, err := marshalTop(bans)
	if err != nil {
		return false, err
	}

	err = s.snapshots.Upsert(ctx, &domain.PopularPickBan{
		EntityType:  scope.Kind,
		EntityID:    scope.ID,
		HeroPicks:   heroPicks,
		HeroBans:    heroBans,
		TimeStampAt: s.clock.Now().UTC(),
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to store snapshot")
		return false, err
	}

	log.Info().Int("pick_nodes", len(picks)).Int("ban_nodes", len(bans)).Msg("snapshot refreshed")
	return true, nil
}

// RefreshMany refreshes every id of one kind on a bounded pool. A failing id
// never stops the others; all failures are returned.
func (s *PopularityService) RefreshMany(ctx context.Context, kind domain.ScopeKind, ids []int64) []RefreshFailure {
	errs := make([]error, len(ids))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.RefreshWorkers)
	for i, id := range ids {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			_, errs[i] = s.RefreshIfStale(gCtx, domain.Scope{Kind: kind, ID: id})
			return nil
		})
	}
	_ = g.Wait()

	var failures []RefreshFailure
	for i, err := range errs {
		if err != nil {
			failures = append(failures, RefreshFailure{ID: ids[i], Err: err})
		}
	}

	s.logger.Info().
		Str("entity_type", kind.String()).
		Int("total", len(ids)).
		Int("failed", len(failures)).
		Msg("batch refresh finished")

	return failures
}

func (s *PopularityService) entityExists(ctx context.Context, scope domain.Scope) (bool, error) {
	switch scope.Kind {
	case domain.ScopeLeague:
		return s.leagues.Exists(ctx, scope.ID)
	case domain.ScopeTeam:
		return s.teams.Exists(ctx, scope.ID)
	case domain.ScopePlayer:
		return s.players.Exists(ctx, scope.ID)
	}
	return false, fmt.Errorf("%w: %s", ErrUnsupportedScope, scope)
}

func marshalTop(nodes []stats.Node) ([]byte, error) {
	top := stats.TopNodes(nodes, constants.SnapshotTopN)
	out, err := json.Marshal(top)
	if err != nil {
		return nil, fmt.Errorf("failed to encode nodes: %w", err)
	}
	return out, nil
}
