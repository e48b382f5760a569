package stats

import (
	"sort"
)

const (
	MinNodeSize     = 30.0
	MaxNodeSize     = 100.0
	DefaultMinCount = 0
	DefaultMaxCount = 100
)

// HeroLookup resolves a hero id to its display name and image URL. Unknown
// ids must still return usable placeholder values.
type HeroLookup interface {
	Lookup(heroID int64) (name, image string)
}

type Node struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Count int     `json:"count"`
	Image string  `json:"image"`
	Size  float64 `json:"size"`
}

type Graph struct {
	NodesPicks []Node `json:"nodes_picks"`
	LinksPicks []Link `json:"links_picks"`
	NodesBans  []Node `json:"nodes_bans"`
	LinksBans  []Link `json:"links_bans"`
}

type PlayerGraph struct {
	NodesPicks []Node `json:"nodes_picks"`
}

// ScaleSize maps count linearly from [minCount, maxCount] onto
// [minSize, maxSize]. A degenerate range yields the midpoint.
func ScaleSize(count, minCount, maxCount int, minSize, maxSize float64) float64 {
	if maxCount == minCount {
		return (maxSize + minSize) / 2
	}
	return minSize + float64(count-minCount)*(maxSize-minSize)/float64(maxCount-minCount)
}

func BuildNode(heroes HeroLookup, heroID int64, count, minCount, maxCount int) Node {
	name, image := heroes.Lookup(heroID)
	return Node{
		ID:    heroID,
		Name:  name,
		Count: count,
		Image: image,
		Size:  ScaleSize(count, minCount, maxCount, MinNodeSize, MaxNodeSize),
	}
}

// BuildNodes emits one node per hero in first-seen order, sized against the
// counter's own min and max.
func BuildNodes(heroes HeroLookup, counts *Counter) []Node {
	nodes := make([]Node, 0, counts.Len())
	lo, hi := counts.MinMax()
	for _, id := range counts.order {
		nodes = append(nodes, BuildNode(heroes, id, counts.counts[id], lo, hi))
	}
	return nodes
}

func BuildGraph(heroes HeroLookup, res Result) Graph {
	g := Graph{
		NodesPicks: BuildNodes(heroes, res.PickCounts),
		LinksPicks: res.PickLinks,
		NodesBans:  BuildNodes(heroes, res.BanCounts),
		LinksBans:  res.BanLinks,
	}
	if g.LinksPicks == nil {
		g.LinksPicks = []Link{}
	}
	if g.LinksBans == nil {
		g.LinksBans = []Link{}
	}
	return g
}

func BuildPlayerGraph(heroes HeroLookup, counts *Counter) PlayerGraph {
	return PlayerGraph{NodesPicks: BuildNodes(heroes, counts)}
}

// TopNodes returns at most n nodes ordered by count descending. Ties keep
// their input order. The input slice is not modified.
func TopNodes(nodes []Node, n int) []Node {
	sorted := make([]Node, len(nodes))
	copy(sorted, nodes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Count > sorted[j].Count
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
