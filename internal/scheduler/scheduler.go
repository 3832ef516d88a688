// Package scheduler picks the next combo to call out.
package scheduler

import (
	"math/rand"
	"time"
)

// MaxDraws bounds rejection sampling so a degenerate source cannot stall a tick.
const MaxDraws = 32

// Source yields uniform integers in [0, n). *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// NewSource returns a Source seeded with seed, or with the current time when
// seed is zero.
func NewSource(seed int64) Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Combo is a non-repeating random selector over a fixed pool size.
type Combo struct {
	size    int
	current int
	rnd     Source
}

// New returns a selector over size combos starting at index 0.
func New(size int, rnd Source) *Combo {
	return &Combo{size: size, rnd: rnd}
}

// Current returns the index of the combo being called out.
func (c *Combo) Current() int {
	return c.current
}

// Tick moves to a uniformly chosen index different from the current one.
// Pools of one combo never rotate.
func (c *Combo) Tick() int {
	if c.size <= 1 {
		return c.current
	}
	for i := 0; i < MaxDraws; i++ {
		next := c.rnd.Intn(c.size)
		if next != c.current && next >= 0 && next < c.size {
			c.current = next
			return next
		}
	}
	// Offset draw over the size-1 other indices.
	next := clamp(c.rnd.Intn(c.size-1), c.size-1)
	if next >= c.current {
		next++
	}
	c.current = next
	return next
}

func clamp(v, n int) int {
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}
