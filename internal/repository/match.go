package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"dota-stats/internal/constants"
	"dota-stats/internal/db"
	"dota-stats/internal/domain"

	"github.com/itbasis/go-clock"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

var ErrPlayerScope = errors.New("player scope is resolved through appearances, not match rows")

type MatchRepository struct {
	queries *db.Queries
	db      *sql.DB
	clock   clock.Clock
	logger  zerolog.Logger
}

func NewMatchRepository(sqlDB *sql.DB, queries *db.Queries, clk clock.Clock, logger zerolog.Logger) *MatchRepository {
	return &MatchRepository{
		queries: queries,
		db:      sqlDB,
		clock:   clk,
		logger:  logger,
	}
}

// ListActive returns up to limit non-deleted matches in the scope that pass
// every filter, highest id first, with their drafts attached.
func (r *MatchRepository) ListActive(ctx context.Context, scope domain.Scope, filters domain.MatchFilters, limit int) ([]domain.Match, error) {
	params := db.ListActiveMatchesParams{
		GameVersionID: nullInt64(filters.GameVersionID),
		LeagueID:      nullInt64(filters.LeagueID),
		TeamID:        nullInt64(filters.TeamID),
		MinDuration:   nullInt64(filters.MinDuration),
		Limit:         int64(limit),
	}
	if !filters.MinStartTime.IsZero() {
		params.MinStartTime = sql.NullInt64{Int64: filters.MinStartTime.Unix(), Valid: true}
	}

	switch scope.Kind {
	case domain.ScopeLeague:
		params.ScopeLeagueID = sql.NullInt64{Int64: scope.ID, Valid: true}
	case domain.ScopeSeries:
		params.ScopeSeriesID = sql.NullInt64{Int64: scope.ID, Valid: true}
	case domain.ScopeTeam:
		params.ScopeTeamID = sql.NullInt64{Int64: scope.ID, Valid: true}
	case domain.ScopePlayer:
		return nil, ErrPlayerScope
	}

	rows, err := r.queries.ListActiveMatches(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}

	matches := make([]domain.Match, len(rows))
	for i, row := range rows {
		matches[i] = toDomainMatch(row)
	}

	if err := r.attachPickBans(ctx, matches); err != nil {
		return nil, err
	}

	r.logger.Debug().
		Str("scope", scope.String()).
		Int("match_count", len(matches)).
		Msg("matches resolved")

	return matches, nil
}

// attachPickBans loads drafts in fixed-size id batches on a bounded pool.
// Each batch writes only its own slot so no locking is needed.
func (r *MatchRepository) attachPickBans(ctx context.Context, matches []domain.Match) error {
	if len(matches) == 0 {
		return nil
	}

	var batches [][]int64
	for i := 0; i < len(matches); i += constants.PickBanBatchSize {
		end := min(i+constants.PickBanBatchSize, len(matches))
		ids := make([]int64, 0, end-i)
		for _, m := range matches[i:end] {
			ids = append(ids, m.ID)
		}
		batches = append(batches, ids)
	}

	results := make([][]db.MatchPickBan, len(batches))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(constants.PickBanLoadWorkers)
	for i, ids := range batches {
		g.Go(func() error {
			rows, err := r.queries.ListPickBansByMatchIDs(gCtx, ids)
			if err != nil {
				return fmt.Errorf("failed to load pick bans: %w", err)
			}
			results[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	byMatch := make(map[int64][]domain.PickBan, len(matches))
	for _, rows := range results {
		for _, row := range rows {
			byMatch[row.MatchID] = append(byMatch[row.MatchID], toDomainPickBan(row))
		}
	}
	for i := range matches {
		matches[i].PickBans = byMatch[matches[i].ID]
	}
	return nil
}

func (r *MatchRepository) Get(ctx context.Context, matchID int64) (*domain.Match, error) {
	row, err := r.queries.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	m := []domain.Match{toDomainMatch(row)}
	if err := r.attachPickBans(ctx, m); err != nil {
		return nil, err
	}
	return &m[0], nil
}

func (r *MatchRepository) CountActive(ctx context.Context) (int64, error) {
	return r.queries.CountActiveMatches(ctx)
}

// PlayerAppearances lists the rows of every non-deleted match the player
// took part in, newest match first.
func (r *MatchRepository) PlayerAppearances(ctx context.Context, steamAccountID int64, filters domain.MatchFilters) ([]domain.MatchPlayer, error) {
	params := db.ListPlayerAppearancesParams{
		SteamAccountID: steamAccountID,
		GameVersionID:  nullInt64(filters.GameVersionID),
		LeagueID:       nullInt64(filters.LeagueID),
		TeamID:         nullInt64(filters.TeamID),
		MinDuration:    nullInt64(filters.MinDuration),
	}
	if !filters.MinStartTime.IsZero() {
		params.MinStartTime = sql.NullInt64{Int64: filters.MinStartTime.Unix(), Valid: true}
	}

	rows, err := r.queries.ListPlayerAppearances(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list player appearances: %w", err)
	}

	result := make([]domain.MatchPlayer, len(rows))
	for i, row := range rows {
		result[i] = toDomainMatchPlayer(row)
	}
	return result, nil
}

func (r *MatchRepository) Save(ctx context.Context, match domain.Match, players []domain.MatchPlayer) error {
	return r.UpsertBatch(ctx, []domain.Match{match}, players)
}

// UpsertBatch writes matches, their drafts, and player rows in one
// transaction. Leagues, series, teams and players a match refers to get a
// bare row first when they are not stored yet.
func (r *MatchRepository) UpsertBatch(ctx context.Context, matches []domain.Match, matchPlayers []domain.MatchPlayer) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)
	now := r.clock.Now().UTC()

	for i := 0; i < len(matches); i += constants.DBBatchSize {
		end := min(i+constants.DBBatchSize, len(matches))

		for _, match := range matches[i:end] {
			if err := ensureMatchRefs(ctx, qtx, match, now); err != nil {
				return err
			}

			err := qtx.UpsertMatch(ctx, db.UpsertMatchParams{
				ID:              match.ID,
				LeagueID:        nullInt64(match.LeagueID),
				SeriesID:        nullInt64(match.SeriesID),
				RadiantTeamID:   nullInt64(match.RadiantTeamID),
				DireTeamID:      nullInt64(match.DireTeamID),
				DidRadiantWin:   match.DidRadiantWin,
				DurationSeconds: match.DurationSeconds,
				StartDateTime:   unixOrZero(match.StartDateTime),
				EndDateTime:     unixOrZero(match.EndDateTime),
				GameVersionID:   match.GameVersionID,
				GameMode:        match.GameMode,
				LobbyType:       match.LobbyType,
				CreatedAt:       now,
				UpdatedAt:       now,
			})
			if err != nil {
				return fmt.Errorf("failed to upsert match %d: %w", match.ID, err)
			}

			for _, pb := range match.PickBans {
				err := qtx.UpsertMatchPickBan(ctx, db.UpsertMatchPickBanParams{
					MatchID:               match.ID,
					DraftOrder:            int64(pb.Order),
					HeroID:                pb.HeroID,
					IsPick:                pb.IsPick,
					IsRadiant:             pb.IsRadiant,
					PlayerIndex:           nullIntPtr(pb.PlayerIndex),
					BannedHeroID:          nullInt64Ptr(pb.BannedHeroID),
					WasBannedSuccessfully: pb.WasBannedSuccessfully,
				})
				if err != nil {
					return fmt.Errorf("failed to upsert pick ban %d/%d: %w", match.ID, pb.Order, err)
				}
			}
		}
	}

	for i := 0; i < len(matchPlayers); i += constants.DBBatchSize {
		end := min(i+constants.DBBatchSize, len(matchPlayers))

		for _, mp := range matchPlayers[i:end] {
			if err := qtx.EnsurePlayer(ctx, db.EnsurePlayerParams{
				SteamAccountID: mp.SteamAccountID,
				CreatedAt:      now,
				UpdatedAt:      now,
			}); err != nil {
				return fmt.Errorf("failed to ensure player %d: %w", mp.SteamAccountID, err)
			}

			err := qtx.UpsertMatchPlayer(ctx, db.UpsertMatchPlayerParams{
				MatchID:        mp.MatchID,
				SteamAccountID: mp.SteamAccountID,
				HeroID:         mp.HeroID,
				IsRadiant:      mp.IsRadiant,
				PlayerSlot:     int64(mp.PlayerSlot),
				Kills:          int64(mp.Kills),
				Deaths:         int64(mp.Deaths),
				Assists:        int64(mp.Assists),
				IsVictory:      mp.IsVictory,
			})
			if err != nil {
				return fmt.Errorf("failed to upsert match player %d/%d: %w", mp.MatchID, mp.SteamAccountID, err)
			}
		}
	}

	return tx.Commit()
}

func ensureMatchRefs(ctx context.Context, qtx *db.Queries, match domain.Match, now time.Time) error {
	if match.LeagueID != 0 {
		if err := qtx.EnsureLeague(ctx, db.EnsureLeagueParams{ID: match.LeagueID, CreatedAt: now, UpdatedAt: now}); err != nil {
			return fmt.Errorf("failed to ensure league %d: %w", match.LeagueID, err)
		}
	}
	if match.SeriesID != 0 {
		err := qtx.EnsureSeries(ctx, db.EnsureSeriesParams{
			ID:        match.SeriesID,
			LeagueID:  nullInt64(match.LeagueID),
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return fmt.Errorf("failed to ensure series %d: %w", match.SeriesID, err)
		}
	}
	for _, teamID := range []int64{match.RadiantTeamID, match.DireTeamID} {
		if teamID == 0 {
			continue
		}
		if err := qtx.EnsureTeam(ctx, db.EnsureTeamParams{ID: teamID, CreatedAt: now, UpdatedAt: now}); err != nil {
			return fmt.Errorf("failed to ensure team %d: %w", teamID, err)
		}
	}
	return nil
}

func toDomainMatch(row db.Match) domain.Match {
	m := domain.Match{
		ID:              row.ID,
		LeagueID:        row.LeagueID.Int64,
		SeriesID:        row.SeriesID.Int64,
		RadiantTeamID:   row.RadiantTeamID.Int64,
		DireTeamID:      row.DireTeamID.Int64,
		DidRadiantWin:   row.DidRadiantWin,
		DurationSeconds: row.DurationSeconds,
		StartDateTime:   fromUnix(row.StartDateTime),
		EndDateTime:     fromUnix(row.EndDateTime),
		GameVersionID:   row.GameVersionID,
		GameMode:        row.GameMode,
		LobbyType:       row.LobbyType,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
	if row.DeletedAt.Valid {
		t := row.DeletedAt.Time
		m.DeletedAt = &t
	}
	return m
}

func toDomainPickBan(row db.MatchPickBan) domain.PickBan {
	pb := domain.PickBan{
		MatchID:               row.MatchID,
		Order:                 int(row.DraftOrder),
		HeroID:                row.HeroID,
		IsPick:                row.IsPick,
		IsRadiant:             row.IsRadiant,
		WasBannedSuccessfully: row.WasBannedSuccessfully,
	}
	if row.PlayerIndex.Valid {
		idx := int(row.PlayerIndex.Int64)
		pb.PlayerIndex = &idx
	}
	if row.BannedHeroID.Valid {
		id := row.BannedHeroID.Int64
		pb.BannedHeroID = &id
	}
	return pb
}

func toDomainMatchPlayer(row db.MatchPlayer) domain.MatchPlayer {
	return domain.MatchPlayer{
		MatchID:        row.MatchID,
		SteamAccountID: row.SteamAccountID,
		HeroID:         row.HeroID,
		IsRadiant:      row.IsRadiant,
		PlayerSlot:     int(row.PlayerSlot),
		Kills:          int(row.Kills),
		Deaths:         int(row.Deaths),
		Assists:        int(row.Assists),
		IsVictory:      row.IsVictory,
	}
}
