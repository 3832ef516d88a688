// Package sequence builds the pool of drills a session draws from.
package sequence

import "github.com/verte-zerg/shadow/internal/catalog"

// Pool is the ordered set of drills eligible during one session.
type Pool []catalog.Drill

// Build concatenates the drills of every checked exercise, keeping catalog
// order. Flags missing for trailing exercises count as unchecked.
func Build(exercises []catalog.Exercise, flags []bool) Pool {
	size := 0
	for i, ex := range exercises {
		if i < len(flags) && flags[i] {
			size += len(ex.Drills)
		}
	}
	pool := make(Pool, 0, size)
	for i, ex := range exercises {
		if i >= len(flags) || !flags[i] {
			continue
		}
		pool = append(pool, ex.Drills...)
	}
	return pool
}
