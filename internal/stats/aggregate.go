package stats

import (
	"dota-stats/internal/domain"
)

type Link struct {
	Source int64 `json:"source"`
	Target int64 `json:"target"`
}

type Result struct {
	PickCounts *Counter
	PickLinks  []Link
	BanCounts  *Counter
	BanLinks   []Link
}

func NewResult() Result {
	return Result{
		PickCounts: NewCounter(),
		PickLinks:  []Link{},
		BanCounts:  NewCounter(),
		BanLinks:   []Link{},
	}
}

// Pairs returns every C(n,2) pair of positions in heroes, oriented by
// appearance order. Pairs of the same hero are skipped.
func Pairs(heroes []int64) []Link {
	if len(heroes) < 2 {
		return nil
	}
	links := make([]Link, 0, len(heroes)*(len(heroes)-1)/2)
	for i, a := range heroes {
		for _, b := range heroes[i+1:] {
			if a == b {
				continue
			}
			links = append(links, Link{Source: a, Target: b})
		}
	}
	return links
}

// Aggregate counts picks and bans across matches and emits per-match
// co-occurrence links. For a team scope only the scoped team's side of
// each draft is considered.
func Aggregate(matches []domain.Match, scope domain.Scope) Result {
	res := NewResult()
	for _, m := range matches {
		picks, bans := splitDraft(m, scope)

		res.PickCounts.Update(picks)
		res.BanCounts.Update(bans)
		res.PickLinks = append(res.PickLinks, Pairs(picks)...)
		res.BanLinks = append(res.BanLinks, Pairs(bans)...)
	}
	return res
}

func splitDraft(m domain.Match, scope domain.Scope) (picks, bans []int64) {
	teamRelative := scope.Kind == domain.ScopeTeam
	radiant := scope.ID == m.RadiantTeamID

	for _, pb := range m.PickBans {
		// zero is a missing hero id
		if pb.HeroID == 0 {
			continue
		}
		if teamRelative && pb.IsRadiant != radiant {
			continue
		}
		if pb.IsPick {
			picks = append(picks, pb.HeroID)
		} else {
			bans = append(bans, pb.HeroID)
		}
	}
	return picks, bans
}

// CountPlayerHeroes tallies the hero each appearance row records. Rows with
// no hero are ignored.
func CountPlayerHeroes(appearances []domain.MatchPlayer) *Counter {
	c := NewCounter()
	for _, a := range appearances {
		if a.HeroID == 0 {
			continue
		}
		c.Add(a.HeroID)
	}
	return c
}
