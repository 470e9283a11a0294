package analyzer

import "sort"

// entry is a key with its tally
type entry[K comparable] struct {
	Key   K
	Count int
}

// counter is a frequency table that remembers the order in which keys were
// first seen. Ranking is stable, so equal counts keep first-seen order.
type counter[K comparable] struct {
	keys   []K
	counts map[K]int
}

func newCounter[K comparable]() *counter[K] {
	return &counter[K]{counts: make(map[K]int)}
}

// add increments key by n. A zero increment still registers the key.
func (c *counter[K]) add(key K, n int) {
	if _, ok := c.counts[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.counts[key] += n
}

func (c *counter[K]) get(key K) int {
	return c.counts[key]
}

func (c *counter[K]) len() int {
	return len(c.keys)
}

func (c *counter[K]) total() int {
	sum := 0
	for _, n := range c.counts {
		sum += n
	}
	return sum
}

// entries returns all keys in first-seen order
func (c *counter[K]) entries() []entry[K] {
	out := make([]entry[K], 0, len(c.keys))
	for _, k := range c.keys {
		out = append(out, entry[K]{Key: k, Count: c.counts[k]})
	}
	return out
}

// mostCommon returns the n highest counts, descending. n <= 0 returns all keys.
func (c *counter[K]) mostCommon(n int) []entry[K] {
	out := c.entries()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// merge adds every tally of other into c, in other's key order
func (c *counter[K]) merge(other *counter[K]) {
	for _, k := range other.keys {
		c.add(k, other.counts[k])
	}
}
