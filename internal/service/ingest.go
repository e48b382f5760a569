package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"dota-stats/internal/api"
	"dota-stats/internal/constants"
	"dota-stats/internal/domain"
	"dota-stats/internal/heroes"
	"dota-stats/internal/repository"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const teamRosterSize = 5

type IngestService struct {
	stratz  *api.StratzClient
	matches *repository.MatchRepository
	leagues *repository.LeagueRepository
	teams   *repository.TeamRepository
	players *repository.PlayerRepository
	heroes  *repository.HeroRepository
	catalog *heroes.Catalog
	logger  zerolog.Logger
}

// ImportFailure records one upstream id that could not be imported.
type ImportFailure struct {
	ID  int64
	Err error
}

func NewIngestService(
	stratz *api.StratzClient,
	matches *repository.MatchRepository,
	leagues *repository.LeagueRepository,
	teams *repository.TeamRepository,
	players *repository.PlayerRepository,
	heroRepo *repository.HeroRepository,
	catalog *heroes.Catalog,
	logger zerolog.Logger,
) *IngestService {
	return &IngestService{
		stratz:  stratz,
		matches: matches,
		leagues: leagues,
		teams:   teams,
		players: players,
		heroes:  heroRepo,
		catalog: catalog,
		logger:  logger,
	}
}

// Enabled reports whether upstream ingest is configured.
func (s *IngestService) Enabled() bool {
	return s.stratz.Enabled()
}

func (s *IngestService) ImportMatch(ctx context.Context, matchID int64) (*domain.Match, error) {
	if !s.stratz.Enabled() {
		return nil, ErrIngestDisabled
	}

	apiCtx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	payload, err := s.stratz.GetMatch(apiCtx, matchID)
	if err != nil {
		s.logger.Error().Err(err).Int64("match_id", matchID).Msg("failed to fetch match")
		return nil, fmt.Errorf("failed to fetch match %d: %w", matchID, err)
	}

	return s.SaveMatch(ctx, payload)
}

// SaveMatch persists a match payload together with its draft and players.
func (s *IngestService) SaveMatch(ctx context.Context, payload *api.MatchPayload) (*domain.Match, error) {
	match, players, err := MatchFromPayload(payload)
	if err != nil {
		s.logger.Error().Err(err).Int64("match_id", payload.ID).Msg("rejected match payload")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if err := s.matches.Save(ctx, match, players); err != nil {
		s.logger.Error().Err(err).Int64("match_id", match.ID).Msg("failed to save match")
		return nil, err
	}

	s.logger.Info().
		Int64("match_id", match.ID).
		Int("pick_bans", len(match.PickBans)).
		Int("players", len(players)).
		Msg("match saved")

	return &match, nil
}

// ImportLeagueMatches pages through a league's matches and saves each page
// payload on a bounded pool. Per-match failures are returned, not raised.
func (s *IngestService) ImportLeagueMatches(ctx context.Context, leagueID int64) (int, []ImportFailure, error) {
	if !s.stratz.Enabled() {
		return 0, nil, ErrIngestDisabled
	}

	var payloads []api.MatchPayload
	for skip := 0; ; skip += constants.LeagueMatchPage {
		apiCtx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
		page, err := s.stratz.GetLeagueMatches(apiCtx, leagueID, constants.LeagueMatchPage, skip)
		cancel()
		if err != nil {
			return 0, nil, fmt.Errorf("failed to list matches of league %d: %w", leagueID, err)
		}
		payloads = append(payloads, page...)
		if len(page) < constants.LeagueMatchPage {
			break
		}
	}

	s.logger.Info().Int64("league_id", leagueID).Int("match_count", len(payloads)).Msg("importing league matches")

	saved, failures := s.saveMatches(ctx, payloads)
	return saved, failures, nil
}

// ImportLeagueSeries pages through a league's series, stores each series
// with its two teams, and saves the matches embedded in the payload.
func (s *IngestService) ImportLeagueSeries(ctx context.Context, leagueID int64) (int, []ImportFailure, error) {
	if !s.stratz.Enabled() {
		return 0, nil, ErrIngestDisabled
	}

	if err := s.leagues.Ensure(ctx, leagueID); err != nil {
		return 0, nil, err
	}

	var (
		count    int
		payloads []api.MatchPayload
	)
	for skip := 0; ; skip += constants.SeriesPage {
		apiCtx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
		page, err := s.stratz.GetLeagueSeries(apiCtx, leagueID, constants.SeriesPage, skip)
		cancel()
		if err != nil {
			return 0, nil, fmt.Errorf("failed to list series of league %d: %w", leagueID, err)
		}

		for _, sp := range page {
			if err := s.saveSeries(ctx, leagueID, sp); err != nil {
				return count, nil, err
			}
			count++
			payloads = append(payloads, sp.Matches...)
		}
		if len(page) < constants.SeriesPage {
			break
		}
	}

	s.logger.Info().
		Int64("league_id", leagueID).
		Int("series_count", count).
		Int("match_count", len(payloads)).
		Msg("importing league series")

	_, failures := s.saveMatches(ctx, payloads)
	return count, failures, nil
}

func (s *IngestService) saveSeries(ctx context.Context, leagueID int64, sp api.SeriesPayload) error {
	series := &domain.Series{
		ID:        sp.ID,
		LeagueID:  leagueID,
		TeamOneID: abs(deref(sp.TeamOneID)),
		TeamTwoID: abs(deref(sp.TeamTwoID)),
	}
	if sp.LeagueID != nil && *sp.LeagueID != 0 {
		series.LeagueID = *sp.LeagueID
	}
	if sp.Type != nil {
		series.SeriesType = strconv.Itoa(*sp.Type)
	}

	for _, teamID := range []int64{series.TeamOneID, series.TeamTwoID} {
		if teamID == 0 {
			continue
		}
		if err := s.teams.Ensure(ctx, teamID); err != nil {
			return err
		}
	}
	return s.leagues.UpsertSeries(ctx, series)
}

// ImportLeagues stores the latest upstream leagues and flags the ones whose
// end time has passed.
func (s *IngestService) ImportLeagues(ctx context.Context) (int, error) {
	if !s.stratz.Enabled() {
		return 0, ErrIngestDisabled
	}

	apiCtx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	list, err := s.stratz.GetLeagues(apiCtx, constants.LeagueListCount)
	cancel()
	if err != nil {
		return 0, fmt.Errorf("failed to list leagues: %w", err)
	}

	for _, lp := range list {
		league := &domain.League{
			ID:      lp.ID,
			Name:    lp.Name,
			StartAt: unixPtr(lp.StartDateTime),
			EndAt:   unixPtr(lp.EndDateTime),
		}
		if league.Name == "" {
			league.Name = lp.DisplayName
		}
		if lp.Tier != nil {
			league.Tier = *lp.Tier
		}
		if err := s.leagues.Upsert(ctx, league); err != nil {
			return 0, err
		}
	}

	finished, err := s.leagues.MarkFinished(ctx)
	if err != nil {
		return len(list), err
	}

	s.logger.Info().Int("leagues", len(list)).Int64("finished", finished).Msg("leagues imported")
	return len(list), nil
}

func (s *IngestService) saveMatches(ctx context.Context, payloads []api.MatchPayload) (int, []ImportFailure) {
	errs := make([]error, len(payloads))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(constants.ImportWorkers)
	for i := range payloads {
		g.Go(func() error {
			_, errs[i] = s.SaveMatch(gCtx, &payloads[i])
			return nil
		})
	}
	_ = g.Wait()

	saved := 0
	var failures []ImportFailure
	for i, err := range errs {
		if err != nil {
			failures = append(failures, ImportFailure{ID: payloads[i].ID, Err: err})
			continue
		}
		saved++
	}
	return saved, failures
}

// ImportTeam stores a team and links its most recently active members.
func (s *IngestService) ImportTeam(ctx context.Context, teamID int64) (*domain.Team, error) {
	if !s.stratz.Enabled() {
		return nil, ErrIngestDisabled
	}

	apiCtx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	payload, err := s.stratz.GetTeam(apiCtx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch team %d: %w", teamID, err)
	}

	team := &domain.Team{
		ID:    payload.ID,
		Name:  payload.Name,
		Tag:   payload.Tag,
		IsPro: payload.IsProfessional,
	}
	if payload.Rank != nil {
		team.Rank = *payload.Rank
	}
	if err := s.teams.Upsert(ctx, team); err != nil {
		return nil, err
	}

	members := payload.Members
	sort.SliceStable(members, func(i, j int) bool {
		return members[i].LastMatchID > members[j].LastMatchID
	})
	if len(members) > teamRosterSize {
		members = members[:teamRosterSize]
	}
	for _, m := range members {
		err := s.players.Upsert(ctx, &domain.Player{
			SteamAccountID: m.SteamAccount.ID,
			Name:           m.SteamAccount.Name,
			IsPro:          payload.IsProfessional,
			TeamID:         payload.ID,
		})
		if err != nil {
			return nil, err
		}
	}

	s.logger.Info().Int64("team_id", team.ID).Int("members", len(members)).Msg("team imported")
	return team, nil
}

// SyncHeroes writes the embedded hero catalog into the heroes table.
func (s *IngestService) SyncHeroes(ctx context.Context) (int, error) {
	ids := s.catalog.IDs()
	list := make([]domain.Hero, 0, len(ids))
	for _, id := range ids {
		name, _ := s.catalog.Lookup(id)
		list = append(list, domain.Hero{ID: id, Name: name, ShortName: name})
	}
	if err := s.heroes.UpsertBatch(ctx, list); err != nil {
		return 0, err
	}
	return len(list), nil
}

// MatchFromPayload converts an upstream match. Team ids are stored as
// absolute values and draft events without a hero are dropped.
func MatchFromPayload(p *api.MatchPayload) (domain.Match, []domain.MatchPlayer, error) {
	if p.EndDateTime == nil || *p.EndDateTime == 0 {
		return domain.Match{}, nil, fmt.Errorf("match %d: %w", p.ID, ErrMissingEndTime)
	}

	m := domain.Match{
		ID:              p.ID,
		LeagueID:        deref(p.LeagueID),
		SeriesID:        deref(p.SeriesID),
		RadiantTeamID:   abs(deref(p.RadiantTeamID)),
		DireTeamID:      abs(deref(p.DireTeamID)),
		DidRadiantWin:   p.DidRadiantWin,
		DurationSeconds: p.DurationSeconds,
		StartDateTime:   time.Unix(p.StartDateTime, 0).UTC(),
		EndDateTime:     time.Unix(*p.EndDateTime, 0).UTC(),
		GameVersionID:   deref(p.GameVersionID),
		GameMode:        p.GameMode,
		LobbyType:       p.LobbyType,
	}

	for _, pb := range p.PickBans {
		if pb.HeroID == nil || *pb.HeroID == 0 {
			continue
		}
		event := domain.PickBan{
			MatchID:      p.ID,
			Order:        pb.Order,
			HeroID:       *pb.HeroID,
			IsPick:       pb.IsPick,
			PlayerIndex:  pb.PlayerIndex,
			BannedHeroID: pb.BannedHeroID,
		}
		if pb.IsRadiant != nil {
			event.IsRadiant = *pb.IsRadiant
		}
		if pb.WasBannedSuccessfully != nil {
			event.WasBannedSuccessfully = *pb.WasBannedSuccessfully
		}
		m.PickBans = append(m.PickBans, event)
	}

	players := make([]domain.MatchPlayer, 0, len(p.Players))
	for _, pl := range p.Players {
		if pl.SteamAccountID == 0 {
			continue
		}
		players = append(players, domain.MatchPlayer{
			MatchID:        p.ID,
			SteamAccountID: pl.SteamAccountID,
			HeroID:         pl.HeroID,
			IsRadiant:      pl.IsRadiant,
			PlayerSlot:     pl.PlayerSlot,
			Kills:          pl.NumKills,
			Deaths:         pl.NumDeaths,
			Assists:        pl.NumAssists,
			IsVictory:      pl.IsVictory,
		})
	}

	return m, players, nil
}

func unixPtr(v *int64) *time.Time {
	if v == nil || *v == 0 {
		return nil
	}
	t := time.Unix(*v, 0).UTC()
	return &t
}

func deref(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
