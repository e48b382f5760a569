package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"dota-stats/internal/api"
	"dota-stats/internal/config"
	"dota-stats/internal/domain"
	"dota-stats/internal/service"

	"connectrpc.com/connect"
	"github.com/rs/zerolog"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

const StatsServicePath = "/dota.v1.StatsService/"

const (
	GetHeroGraphProcedure           = StatsServicePath + "GetHeroGraph"
	GetPopularPickBansProcedure     = StatsServicePath + "GetPopularPickBans"
	RefreshPopularPickBansProcedure = StatsServicePath + "RefreshPopularPickBans"
	ImportMatchProcedure            = StatsServicePath + "ImportMatch"
	ImportLeagueProcedure           = StatsServicePath + "ImportLeague"
	ImportTeamProcedure             = StatsServicePath + "ImportTeam"
	DeleteLeagueProcedure           = StatsServicePath + "DeleteLeague"
	RestoreLeagueProcedure          = StatsServicePath + "RestoreLeague"
	DeleteSeriesProcedure           = StatsServicePath + "DeleteSeries"
)

type StatsServer struct {
	resolver   *service.MatchResolver
	popularity *service.PopularityService
	ingest     *service.IngestService
	leagues    *service.LeagueService
	cfg        *config.Config
	logger     zerolog.Logger
}

func NewStatsServer(
	resolver *service.MatchResolver,
	popularity *service.PopularityService,
	ingest *service.IngestService,
	leagues *service.LeagueService,
	cfg *config.Config,
	logger zerolog.Logger,
) *StatsServer {
	return &StatsServer{
		resolver:   resolver,
		popularity: popularity,
		ingest:     ingest,
		leagues:    leagues,
		cfg:        cfg,
		logger:     logger,
	}
}

// Handler mounts every procedure under StatsServicePath.
func (s *StatsServer) Handler(opts ...connect.HandlerOption) (string, http.Handler) {
	mux := http.NewServeMux()
	mux.Handle(GetHeroGraphProcedure, connect.NewUnaryHandler(GetHeroGraphProcedure, s.GetHeroGraph, opts...))
	mux.Handle(GetPopularPickBansProcedure, connect.NewUnaryHandler(GetPopularPickBansProcedure, s.GetPopularPickBans, opts...))
	mux.Handle(RefreshPopularPickBansProcedure, connect.NewUnaryHandler(RefreshPopularPickBansProcedure, s.RefreshPopularPickBans, opts...))
	mux.Handle(ImportMatchProcedure, connect.NewUnaryHandler(ImportMatchProcedure, s.ImportMatch, opts...))
	mux.Handle(ImportLeagueProcedure, connect.NewUnaryHandler(ImportLeagueProcedure, s.ImportLeague, opts...))
	mux.Handle(ImportTeamProcedure, connect.NewUnaryHandler(ImportTeamProcedure, s.ImportTeam, opts...))
	mux.Handle(DeleteLeagueProcedure, connect.NewUnaryHandler(DeleteLeagueProcedure, s.DeleteLeague, opts...))
	mux.Handle(RestoreLeagueProcedure, connect.NewUnaryHandler(RestoreLeagueProcedure, s.RestoreLeague, opts...))
	mux.Handle(DeleteSeriesProcedure, connect.NewUnaryHandler(DeleteSeriesProcedure, s.DeleteSeries, opts...))
	return StatsServicePath, mux
}

// GetHeroGraph computes the pick/ban graph for type_obj/id_obj on demand.
func (s *StatsServer) GetHeroGraph(ctx context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[structpb.Struct], error) {
	msg := req.Msg
	kind, err := requiredString(msg, "type_obj")
	if err != nil {
		return nil, err
	}
	id, err := requiredInt(msg, "id_obj")
	if err != nil {
		return nil, err
	}
	filters, err := s.parseFilters(msg)
	if err != nil {
		return nil, err
	}

	scope := s.resolver.ScopeFor(kind, id)

	var graph any
	if scope.Kind == domain.ScopePlayer {
		graph, err = s.popularity.PlayerHeroGraph(ctx, scope.ID, filters)
	} else {
		graph, err = s.popularity.HeroGraph(ctx, scope, filters)
	}
	if err != nil {
		return nil, toConnectError(err)
	}

	out, err := toStruct(graph)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(out), nil
}

func (s *StatsServer) GetPopularPickBans(ctx context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[structpb.Struct], error) {
	scope, err := s.entityScope(req.Msg)
	if err != nil {
		return nil, err
	}

	snap, err := s.popularity.Snapshot(ctx, scope)
	if err != nil {
		return nil, toConnectError(err)
	}

	var picks, bans []any
	if err := json.Unmarshal(snap.HeroPicks, &picks); err != nil {
		return nil, connect.NewError(connect.CodeDataLoss, fmt.Errorf("failed to decode hero_picks: %w", err))
	}
	if err := json.Unmarshal(snap.HeroBans, &bans); err != nil {
		return nil, connect.NewError(connect.CodeDataLoss, fmt.Errorf("failed to decode hero_bans: %w", err))
	}

	out, err := structpb.NewStruct(map[string]any{
		"entity_type":   snap.EntityType.String(),
		"entity_id":     snap.EntityID,
		"hero_picks":    nonNil(picks),
		"hero_bans":     nonNil(bans),
		"time_stamp_at": snap.TimeStampAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(out), nil
}

func (s *StatsServer) RefreshPopularPickBans(ctx context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[structpb.Struct], error) {
	scope, err := s.entityScope(req.Msg)
	if err != nil {
		return nil, err
	}

	refreshed, err := s.popularity.RefreshIfStale(ctx, scope)
	if err != nil {
		return nil, toConnectError(err)
	}

	out, err := structpb.NewStruct(map[string]any{"refreshed": refreshed})
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(out), nil
}

func (s *StatsServer) ImportMatch(ctx context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[structpb.Struct], error) {
	matchID, err := requiredInt(req.Msg, "match_id")
	if err != nil {
		return nil, err
	}

	match, err := s.ingest.ImportMatch(ctx, matchID)
	if err != nil {
		return nil, toConnectError(err)
	}

	out, err := structpb.NewStruct(map[string]any{
		"match_id":  match.ID,
		"pick_bans": len(match.PickBans),
	})
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(out), nil
}

// ImportLeague pulls a league's series and matches from upstream.
func (s *StatsServer) ImportLeague(ctx context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[structpb.Struct], error) {
	leagueID, err := requiredInt(req.Msg, "league_id")
	if err != nil {
		return nil, err
	}

	series, seriesFailures, err := s.ingest.ImportLeagueSeries(ctx, leagueID)
	if err != nil {
		return nil, toConnectError(err)
	}
	saved, matchFailures, err := s.ingest.ImportLeagueMatches(ctx, leagueID)
	if err != nil {
		return nil, toConnectError(err)
	}

	failed := make([]any, 0, len(seriesFailures)+len(matchFailures))
	for _, f := range append(seriesFailures, matchFailures...) {
		failed = append(failed, f.ID)
	}

	out, err := structpb.NewStruct(map[string]any{
		"league_id":     leagueID,
		"series":        series,
		"matches_saved": saved,
		"failed":        failed,
	})
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(out), nil
}

func (s *StatsServer) ImportTeam(ctx context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[structpb.Struct], error) {
	teamID, err := requiredInt(req.Msg, "team_id")
	if err != nil {
		return nil, err
	}

	team, err := s.ingest.ImportTeam(ctx, teamID)
	if err != nil {
		return nil, toConnectError(err)
	}

	out, err := structpb.NewStruct(map[string]any{
		"team_id": team.ID,
		"name":    team.Name,
		"rank":    team.Rank,
		"is_pro":  team.IsPro,
	})
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(out), nil
}

func (s *StatsServer) DeleteLeague(ctx context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[structpb.Struct], error) {
	return s.adminAction(ctx, req.Msg, "league_id", s.leagues.DeleteLeague)
}

func (s *StatsServer) RestoreLeague(ctx context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[structpb.Struct], error) {
	return s.adminAction(ctx, req.Msg, "league_id", s.leagues.RestoreLeague)
}

func (s *StatsServer) DeleteSeries(ctx context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[structpb.Struct], error) {
	return s.adminAction(ctx, req.Msg, "series_id", s.leagues.DeleteSeries)
}

func (s *StatsServer) adminAction(
	ctx context.Context,
	msg *structpb.Struct,
	key string,
	action func(context.Context, int64) error,
) (*connect.Response[structpb.Struct], error) {
	id, err := requiredInt(msg, key)
	if err != nil {
		return nil, err
	}
	if err := action(ctx, id); err != nil {
		return nil, toConnectError(err)
	}

	out, err := structpb.NewStruct(map[string]any{key: id, "ok": true})
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(out), nil
}

func (s *StatsServer) entityScope(msg *structpb.Struct) (domain.Scope, error) {
	kind, err := requiredString(msg, "entity_type")
	if err != nil {
		return domain.Scope{}, err
	}
	id, err := requiredInt(msg, "entity_id")
	if err != nil {
		return domain.Scope{}, err
	}
	return s.resolver.ScopeFor(kind, id), nil
}

func (s *StatsServer) parseFilters(msg *structpb.Struct) (domain.MatchFilters, error) {
	filters := domain.MatchFilters{GameVersionID: s.cfg.CurrentGameVersionID}

	fields := []struct {
		key string
		dst *int64
	}{
		{"game_version_id", &filters.GameVersionID},
		{"league_id", &filters.LeagueID},
		{"team_id", &filters.TeamID},
		{"duration_seconds", &filters.MinDuration},
	}
	for _, f := range fields {
		v, ok, err := optionalInt(msg, f.key)
		if err != nil {
			return filters, err
		}
		if ok {
			*f.dst = v
		}
	}

	start, ok, err := optionalInt(msg, "start_date_time")
	if err != nil {
		return filters, err
	}
	if ok && start > 0 {
		filters.MinStartTime = time.Unix(start, 0).UTC()
	}
	return filters, nil
}

func requiredString(msg *structpb.Struct, key string) (string, error) {
	v, ok := msg.GetFields()[key]
	if !ok {
		return "", connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("%s is required", key))
	}
	str, isString := v.GetKind().(*structpb.Value_StringValue)
	if !isString {
		return "", connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("%s must be a string", key))
	}
	return str.StringValue, nil
}

func requiredInt(msg *structpb.Struct, key string) (int64, error) {
	v, ok, err := optionalInt(msg, key)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("%s is required", key))
	}
	return v, nil
}

// optionalInt reads a whole number sent either as a JSON number or a
// decimal string. Null counts as absent.
func optionalInt(msg *structpb.Struct, key string) (int64, bool, error) {
	v, ok := msg.GetFields()[key]
	if !ok {
		return 0, false, nil
	}
	switch kind := v.GetKind().(type) {
	case *structpb.Value_NullValue:
		return 0, false, nil
	case *structpb.Value_NumberValue:
		n := kind.NumberValue
		if n != float64(int64(n)) {
			return 0, false, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("%s must be an integer", key))
		}
		return int64(n), true, nil
	case *structpb.Value_StringValue:
		n, err := strconv.ParseInt(strings.TrimSpace(kind.StringValue), 10, 64)
		if err != nil {
			return 0, false, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("%s must be an integer: %w", key, err))
		}
		return n, true, nil
	default:
		return 0, false, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("%s must be an integer", key))
	}
}

// toStruct round-trips a JSON-tagged value into a protobuf Struct.
func toStruct(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode response: %w", err)
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(raw, out); err != nil {
		return nil, fmt.Errorf("failed to convert response: %w", err)
	}
	return out, nil
}

func nonNil(v []any) []any {
	if v == nil {
		return []any{}
	}
	return v
}

func toConnectError(err error) *connect.Error {
	var apiErr *api.APIError
	switch {
	case errors.Is(err, service.ErrEntityNotFound), errors.Is(err, service.ErrSnapshotNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, service.ErrUnsupportedScope), errors.Is(err, service.ErrMissingEndTime):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, service.ErrIngestDisabled):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, api.ErrRateLimited):
		return connect.NewError(connect.CodeResourceExhausted, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	case errors.As(err, &apiErr):
		if apiErr.StatusCode == http.StatusNotFound {
			return connect.NewError(connect.CodeNotFound, err)
		}
		return connect.NewError(connect.CodeUnavailable, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
