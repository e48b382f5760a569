package stats

import (
	"testing"

	"dota-stats/internal/domain"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func draft(matchID, radiant, dire int64, events ...domain.PickBan) domain.Match {
	for i := range events {
		events[i].MatchID = matchID
		events[i].Order = i
	}
	return domain.Match{ID: matchID, RadiantTeamID: radiant, DireTeamID: dire, PickBans: events}
}

func pick(hero int64, radiant bool) domain.PickBan {
	return domain.PickBan{HeroID: hero, IsPick: true, IsRadiant: radiant}
}

func ban(hero int64, radiant bool) domain.PickBan {
	return domain.PickBan{HeroID: hero, IsPick: false, IsRadiant: radiant}
}

func TestPairs(t *testing.T) {
	tests := map[string]struct {
		heroes []int64
		want   []Link
	}{
		"empty":  {heroes: nil, want: nil},
		"single": {heroes: []int64{1}, want: nil},
		"two":    {heroes: []int64{1, 2}, want: []Link{{1, 2}}},
		"three": {heroes: []int64{1, 2, 3}, want: []Link{
			{1, 2}, {1, 3}, {2, 3},
		}},
		"keeps appearance order": {heroes: []int64{9, 4}, want: []Link{{9, 4}}},
		"skips same hero": {heroes: []int64{5, 5, 6}, want: []Link{
			{5, 6}, {5, 6},
		}},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := Pairs(tc.heroes)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Pairs() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPairsCountIsNChooseTwo(t *testing.T) {
	heroes := []int64{1, 2, 3, 4, 5}
	assert.Len(t, Pairs(heroes), 10)
}

func TestAggregate(t *testing.T) {
	m := draft(100, 1, 2,
		ban(10, true), ban(11, false),
		pick(20, true), pick(21, false), pick(22, true),
	)

	res := Aggregate([]domain.Match{m}, domain.Scope{Kind: domain.ScopeLeague, ID: 5})

	assert.Equal(t, []int64{20, 21, 22}, res.PickCounts.Keys())
	assert.Equal(t, []int64{10, 11}, res.BanCounts.Keys())
	assert.Equal(t, []Link{{20, 21}, {20, 22}, {21, 22}}, res.PickLinks)
	assert.Equal(t, []Link{{10, 11}}, res.BanLinks)
}

func TestAggregateIdenticalMatchesDouble(t *testing.T) {
	a := draft(1, 1, 2, pick(7, true), pick(8, true), ban(9, false), ban(10, true))
	b := draft(2, 1, 2, pick(7, true), pick(8, true), ban(9, false), ban(10, true))

	single := Aggregate([]domain.Match{a}, domain.Scope{})
	double := Aggregate([]domain.Match{a, b}, domain.Scope{})

	for _, id := range single.PickCounts.Keys() {
		assert.Equal(t, 2*single.PickCounts.Count(id), double.PickCounts.Count(id))
	}
	for _, id := range single.BanCounts.Keys() {
		assert.Equal(t, 2*single.BanCounts.Count(id), double.BanCounts.Count(id))
	}
	assert.Len(t, double.PickLinks, 2*len(single.PickLinks))
	assert.Len(t, double.BanLinks, 2*len(single.BanLinks))
}

func TestAggregateTeamScopeUsesOwnSide(t *testing.T) {
	const team = int64(42)
	asRadiant := draft(1, team, 7,
		pick(1, true), pick(2, false), ban(3, true), ban(4, false),
	)
	asDire := draft(2, 7, team,
		pick(5, true), pick(6, false), ban(7, true), ban(8, false),
	)

	res := Aggregate([]domain.Match{asRadiant, asDire}, domain.Scope{Kind: domain.ScopeTeam, ID: team})

	assert.Equal(t, []int64{1, 6}, res.PickCounts.Keys())
	assert.Equal(t, []int64{3, 8}, res.BanCounts.Keys())
	assert.Empty(t, res.PickLinks)
	assert.Empty(t, res.BanLinks)
}

func TestAggregateTeamScopeExcludesOpponent(t *testing.T) {
	const team = int64(42)
	m := draft(1, 7, team, pick(1, true), pick(2, true))

	res := Aggregate([]domain.Match{m}, domain.Scope{Kind: domain.ScopeTeam, ID: team})

	assert.Zero(t, res.PickCounts.Len())
}

func TestAggregateSkipsEmptyAndMissingHeroes(t *testing.T) {
	empty := draft(1, 1, 2)
	missing := draft(2, 1, 2, pick(0, true), pick(15, true))

	res := Aggregate([]domain.Match{empty, missing}, domain.Scope{})

	assert.Equal(t, []int64{15}, res.PickCounts.Keys())
	assert.Empty(t, res.PickLinks)
	assert.Zero(t, res.BanCounts.Len())
}

func TestAggregateNoMatches(t *testing.T) {
	res := Aggregate(nil, domain.Scope{})

	require.NotNil(t, res.PickCounts)
	require.NotNil(t, res.BanCounts)
	assert.Zero(t, res.PickCounts.Len())
	assert.Empty(t, res.PickLinks)
	lo, hi := res.PickCounts.MinMax()
	assert.Equal(t, 0, lo)
	assert.Equal(t, 100, hi)
}

func TestCountPlayerHeroes(t *testing.T) {
	rows := []domain.MatchPlayer{
		{MatchID: 1, SteamAccountID: 9, HeroID: 14},
		{MatchID: 2, SteamAccountID: 9, HeroID: 14},
		{MatchID: 3, SteamAccountID: 9, HeroID: 0},
		{MatchID: 4, SteamAccountID: 9, HeroID: 74},
	}

	c := CountPlayerHeroes(rows)

	assert.Equal(t, []int64{14, 74}, c.Keys())
	assert.Equal(t, 2, c.Count(14))
	assert.Equal(t, 3, c.Total())
}
