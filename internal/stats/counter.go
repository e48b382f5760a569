package stats

// Counter is a hero frequency table that keeps first-seen order, so graphs
// built from it are deterministic.
type Counter struct {
	counts map[int64]int
	order  []int64
}

func NewCounter() *Counter {
	return &Counter{counts: make(map[int64]int)}
}

func (c *Counter) Add(heroID int64) {
	c.AddN(heroID, 1)
}

func (c *Counter) AddN(heroID int64, n int) {
	if c.counts == nil {
		c.counts = make(map[int64]int)
	}
	if _, ok := c.counts[heroID]; !ok {
		c.order = append(c.order, heroID)
	}
	c.counts[heroID] += n
}

func (c *Counter) Update(heroIDs []int64) {
	for _, id := range heroIDs {
		c.Add(id)
	}
}

func (c *Counter) Count(heroID int64) int {
	return c.counts[heroID]
}

// Keys returns hero ids in first-seen order.
func (c *Counter) Keys() []int64 {
	out := make([]int64, len(c.order))
	copy(out, c.order)
	return out
}

func (c *Counter) Len() int {
	return len(c.order)
}

func (c *Counter) Total() int {
	total := 0
	for _, n := range c.counts {
		total += n
	}
	return total
}

// MinMax returns the smallest and largest counts. An empty counter reports
// 0 and 100.
func (c *Counter) MinMax() (int, int) {
	if len(c.order) == 0 {
		return DefaultMinCount, DefaultMaxCount
	}
	lo, hi := c.counts[c.order[0]], c.counts[c.order[0]]
	for _, id := range c.order[1:] {
		n := c.counts[id]
		if n < lo {
			lo = n
		}
		if n > hi {
			hi = n
		}
	}
	return lo, hi
}
