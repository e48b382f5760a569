package testutil

import (
	"time"

	"dota-stats/internal/domain"
)

// Draft stamps the match id and a zero-based draft order onto events.
func Draft(matchID int64, events ...domain.PickBan) []domain.PickBan {
	out := make([]domain.PickBan, len(events))
	for i, e := range events {
		e.MatchID = matchID
		e.Order = i
		out[i] = e
	}
	return out
}

func Pick(hero int64, radiant bool) domain.PickBan {
	return domain.PickBan{HeroID: hero, IsPick: true, IsRadiant: radiant}
}

func Ban(hero int64, radiant bool) domain.PickBan {
	return domain.PickBan{HeroID: hero, IsPick: false, IsRadiant: radiant}
}

// Match returns a finished league match with sensible defaults.
func Match(id, leagueID, radiant, dire int64) domain.Match {
	start := Epoch.Add(-time.Duration(id) * time.Hour)
	return domain.Match{
		ID:              id,
		LeagueID:        leagueID,
		RadiantTeamID:   radiant,
		DireTeamID:      dire,
		DurationSeconds: 1800,
		StartDateTime:   start,
		EndDateTime:     start.Add(30 * time.Minute),
		GameVersionID:   175,
	}
}
