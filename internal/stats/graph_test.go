package stats

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHeroes map[int64]string

func (f fakeHeroes) Lookup(heroID int64) (string, string) {
	key, ok := f[heroID]
	if !ok {
		key = "default"
	}
	return key, "img/" + key + ".png"
}

func TestScaleSize(t *testing.T) {
	tests := map[string]struct {
		count, lo, hi int
		want          float64
	}{
		"minimum":          {count: 1, lo: 1, hi: 11, want: 30},
		"maximum":          {count: 11, lo: 1, hi: 11, want: 100},
		"middle":           {count: 6, lo: 1, hi: 11, want: 65},
		"degenerate":       {count: 4, lo: 4, hi: 4, want: 65},
		"empty defaults":   {count: 0, lo: 0, hi: 100, want: 30},
		"quarter of 0-100": {count: 25, lo: 0, hi: 100, want: 47.5},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.InDelta(t, tc.want, ScaleSize(tc.count, tc.lo, tc.hi, MinNodeSize, MaxNodeSize), 1e-9)
		})
	}
}

func TestScaleSizeMonotonicAndBounded(t *testing.T) {
	prev := -1.0
	for count := 3; count <= 40; count++ {
		size := ScaleSize(count, 3, 40, MinNodeSize, MaxNodeSize)
		assert.GreaterOrEqual(t, size, MinNodeSize)
		assert.LessOrEqual(t, size, MaxNodeSize)
		assert.GreaterOrEqual(t, size, prev)
		prev = size
	}
}

func TestBuildNodes(t *testing.T) {
	heroes := fakeHeroes{1: "antimage", 2: "axe"}
	c := NewCounter()
	c.Update([]int64{1, 2, 1, 999, 1})

	nodes := BuildNodes(heroes, c)

	require.Len(t, nodes, 3)
	assert.Equal(t, Node{ID: 1, Name: "antimage", Count: 3, Image: "img/antimage.png", Size: 100}, nodes[0])
	assert.Equal(t, int64(2), nodes[1].ID)
	assert.InDelta(t, 30, nodes[1].Size, 1e-9)
	assert.Equal(t, "default", nodes[2].Name)
	assert.Equal(t, "img/default.png", nodes[2].Image)
}

func TestBuildNodesSingleHeroMidpoint(t *testing.T) {
	c := NewCounter()
	c.AddN(8, 5)

	nodes := BuildNodes(fakeHeroes{}, c)

	require.Len(t, nodes, 1)
	assert.InDelta(t, 65, nodes[0].Size, 1e-9)
}

func TestBuildNodesEmpty(t *testing.T) {
	nodes := BuildNodes(fakeHeroes{}, NewCounter())
	assert.NotNil(t, nodes)
	assert.Empty(t, nodes)
}

func TestBuildGraphJSONShape(t *testing.T) {
	res := NewResult()
	res.PickCounts.Update([]int64{1, 2})
	res.PickLinks = append(res.PickLinks, Link{Source: 1, Target: 2})

	g := BuildGraph(fakeHeroes{1: "antimage", 2: "axe"}, res)
	raw, err := json.Marshal(g)
	require.NoError(t, err)

	var decoded map[string][]map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Len(t, decoded["nodes_picks"], 2)
	assert.Len(t, decoded["links_picks"], 1)
	assert.Empty(t, decoded["nodes_bans"])
	assert.NotNil(t, decoded["links_bans"])
	assert.Equal(t, float64(1), decoded["links_picks"][0]["source"])
	assert.Contains(t, decoded["nodes_picks"][0], "size")
}

func TestTopNodes(t *testing.T) {
	var nodes []Node
	for i := 1; i <= 40; i++ {
		nodes = append(nodes, Node{ID: int64(i), Name: fmt.Sprint(i), Count: i % 7})
	}

	top := TopNodes(nodes, 30)

	require.Len(t, top, 30)
	for i := 1; i < len(top); i++ {
		assert.GreaterOrEqual(t, top[i-1].Count, top[i].Count)
	}
	// ties keep input order
	assert.Equal(t, int64(6), top[0].ID)
	assert.Equal(t, int64(13), top[1].ID)
	assert.Equal(t, int64(1), nodes[0].ID, "input must not be reordered")
}

func TestTopNodesShortInput(t *testing.T) {
	nodes := []Node{{ID: 1, Count: 1}, {ID: 2, Count: 5}}
	top := TopNodes(nodes, 30)
	assert.Equal(t, []Node{{ID: 2, Count: 5}, {ID: 1, Count: 1}}, top)
}
