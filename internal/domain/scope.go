package domain

import (
	"strconv"
	"strings"
	"time"
)

type ScopeKind int

const (
	ScopeAll ScopeKind = iota
	ScopeLeague
	ScopeSeries
	ScopeTeam
	ScopePlayer
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeLeague:
		return "league"
	case ScopeSeries:
		return "series"
	case ScopeTeam:
		return "team"
	case ScopePlayer:
		return "player"
	default:
		return "all"
	}
}

// ParseScopeKind maps a request type string to a ScopeKind. Unrecognized
// values return ScopeAll and false; callers decide whether to warn.
func ParseScopeKind(s string) (ScopeKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "league":
		return ScopeLeague, true
	case "series":
		return ScopeSeries, true
	case "team":
		return ScopeTeam, true
	case "player":
		return ScopePlayer, true
	case "all":
		return ScopeAll, true
	default:
		return ScopeAll, false
	}
}

type Scope struct {
	Kind ScopeKind
	ID   int64
}

func (s Scope) String() string {
	if s.Kind == ScopeAll {
		return s.Kind.String()
	}
	return s.Kind.String() + ":" + strconv.FormatInt(s.ID, 10)
}

// Matches reports whether m belongs to the scope. Player scope is resolved
// through match participation and never matches on the match row alone.
func (s Scope) Matches(m Match) bool {
	switch s.Kind {
	case ScopeLeague:
		return m.LeagueID == s.ID
	case ScopeSeries:
		return m.SeriesID == s.ID
	case ScopeTeam:
		return m.RadiantTeamID == s.ID || m.DireTeamID == s.ID
	case ScopePlayer:
		return false
	default:
		return true
	}
}

// MatchFilters are AND-ed narrowing conditions. A zero field is unset.
type MatchFilters struct {
	GameVersionID int64
	LeagueID      int64
	TeamID        int64
	MinStartTime  time.Time
	MinDuration   int64
}

func (f MatchFilters) Matches(m Match) bool {
	if f.GameVersionID != 0 && m.GameVersionID != f.GameVersionID {
		return false
	}
	if f.LeagueID != 0 && m.LeagueID != f.LeagueID {
		return false
	}
	if f.TeamID != 0 && m.RadiantTeamID != f.TeamID && m.DireTeamID != f.TeamID {
		return false
	}
	if !f.MinStartTime.IsZero() && m.StartDateTime.Before(f.MinStartTime) {
		return false
	}
	if f.MinDuration != 0 && m.DurationSeconds < f.MinDuration {
		return false
	}
	return true
}
