package service

import (
	"context"
	"fmt"

	"dota-stats/internal/constants"
	"dota-stats/internal/domain"
	"dota-stats/internal/repository"

	"github.com/rs/zerolog"
)

type MatchResolver struct {
	matches *repository.MatchRepository
	logger  zerolog.Logger
}

func NewMatchResolver(matches *repository.MatchRepository, logger zerolog.Logger) *MatchResolver {
	return &MatchResolver{matches: matches, logger: logger}
}

// ScopeFor builds a scope from an entity type name. Unknown names resolve to
// every match.
func (r *MatchResolver) ScopeFor(kind string, id int64) domain.Scope {
	parsed, ok := domain.ParseScopeKind(kind)
	if !ok {
		r.logger.Warn().Str("type_obj", kind).Int64("id_obj", id).Msg("unknown scope type, using all matches")
		return domain.Scope{Kind: domain.ScopeAll, ID: id}
	}
	return domain.Scope{Kind: parsed, ID: id}
}

// Resolve returns at most MatchScanLimit active matches for the scope, highest
// id first, with their drafts loaded.
func (r *MatchResolver) Resolve(ctx context.Context, scope domain.Scope, filters domain.MatchFilters) ([]domain.Match, error) {
	switch scope.Kind {
	case domain.ScopeAll, domain.ScopeLeague, domain.ScopeSeries, domain.ScopeTeam:
	case domain.ScopePlayer:
		return nil, fmt.Errorf("%w: player matches are resolved through appearances", ErrUnsupportedScope)
	default:
		r.logger.Warn().Str("scope", scope.String()).Msg("unknown scope kind, using all matches")
		scope = domain.Scope{Kind: domain.ScopeAll, ID: scope.ID}
	}

	matches, err := r.matches.ListActive(ctx, scope, filters, constants.MatchScanLimit)
	if err != nil {
		r.logger.Error().Err(err).Str("scope", scope.String()).Msg("failed to resolve matches")
		return nil, err
	}
	return matches, nil
}
