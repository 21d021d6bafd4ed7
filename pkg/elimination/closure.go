// Package elimination provides the closure engine for process-of-elimination puzzles.
//
// The engine removes a requested set of edges and then every edge that
// becomes impossible as a consequence, until a fixed point is reached.
// All work goes through one explicit queue so the depth of the Go call stack
// does not grow with the puzzle:
//
//	removal queue:   (position, category, mask) requests
//	dirty queue:     assertions touched by a removal, verified once the
//	                 removal queue drains; their removals are queued again
//
// Consequences of removing the edges of p in category c:
//
//  1. Shared connections. Whatever p keeps in other categories must also be
//     reachable from one of p's remaining partners in c, since one of them
//     ends up in p's final row.
//  2. Forced match. If p has a single partner q left in c, p and q are the
//     same row and both rows shrink to their intersection.
//  3. The same reasoning applies to every item that lost its edge to p,
//     against p's home category.
//
// An item with no partner left in a category is a contradiction. Nothing is
// derived from it; Solver.Check reports it.
package elimination

import (
	"time"
)

// anyCategory marks a removal whose category has not been split out yet.
const anyCategory = -1

// removal asks the engine to remove the edges between pos and the
// positions in mask that belong to cat.
type removal struct {
	pos  int
	cat  int
	mask bitset
}

// engine owns all mutation of a matrix and its assertion registry.
type engine struct {
	x     *matrix
	reg   *registry
	stats *Stats

	queue []removal
	dirty []*assertion

	// Optional hooks, set when a tracer is attached.
	onUnlink    func(p, q int)
	onSatisfied func(a *assertion)
}

func newEngine(x *matrix, stats *Stats) *engine {
	return &engine{x: x, reg: newRegistry(), stats: stats}
}

// propagate applies the seeds and their consequences to a fixed point and
// returns the number of edges removed.
func (e *engine) propagate(seeds ...removal) int {
	start := time.Now()
	e.stats.Propagations++
	e.queue = append(e.queue, seeds...)

	count := e.drain()
	for len(e.dirty) > 0 {
		a := e.dirty[0]
		e.dirty = e.dirty[1:]
		a.queued = false
		if !a.registered {
			continue
		}

		e.stats.Verifications++
		if more := a.verify(e.x); len(more) > 0 {
			e.queue = append(e.queue, more...)
			// Verify again only if the removals changed the matrix; the
			// update hooks may not see them when other work got to the
			// edges first.
			if removed := e.drain(); removed > 0 {
				count += removed
				e.markDirty(a)
			}
			continue
		}
		if a.satisfied(e.x) {
			e.reg.remove(a)
			e.stats.AssertionsSatisfied++
			if e.onSatisfied != nil {
				e.onSatisfied(a)
			}
		}
	}

	e.stats.EdgesRemoved += count
	e.stats.PropagationTime += time.Since(start)
	return count
}

// drain processes the removal queue until it is empty and returns the
// number of edges removed.
func (e *engine) drain() int {
	count := 0
	for len(e.queue) > 0 {
		if len(e.queue) > e.stats.PeakQueue {
			e.stats.PeakQueue = len(e.queue)
		}
		item := e.queue[len(e.queue)-1]
		e.queue = e.queue[:len(e.queue)-1]
		count += e.process(item)
	}
	return count
}

// register adds a to the registry and schedules its first verification.
// The caller runs propagate to apply it.
func (e *engine) register(a *assertion) {
	e.reg.add(a)
	e.stats.AssertionsRegistered++
	e.markDirty(a)
}

func (e *engine) markDirty(a *assertion) {
	if a.queued {
		return
	}
	a.queued = true
	e.dirty = append(e.dirty, a)
}

// reset drops all queued work and every assertion.
func (e *engine) reset() {
	e.queue = e.queue[:0]
	for _, a := range e.dirty {
		a.queued = false
	}
	e.dirty = e.dirty[:0]
	e.reg.clear()
	e.x.reset()
}

// process handles one removal request and returns the edges it removed.
func (e *engine) process(item removal) int {
	e.stats.WorkItems++
	p := item.pos
	home := e.x.home(p)

	if item.cat == anyCategory {
		mask := item.mask
		found := false
		for c := 0; c < e.x.m; c++ {
			if c == home || !mask.intersects(e.x.blocks[c]) {
				continue
			}
			part := mask.clone()
			part.and(e.x.blocks[c])
			if !found {
				found = true
				item = removal{pos: p, cat: c, mask: part}
				continue
			}
			e.queue = append(e.queue, removal{pos: p, cat: c, mask: part})
		}
		if !found {
			return 0
		}
	}

	// The diagonal is the only link inside the home block.
	if item.cat == home {
		return 0
	}

	actual := item.mask.clone()
	actual.and(e.x.rows[p])
	actual.and(e.x.blocks[item.cat])
	if actual.empty() {
		return 0
	}

	others := actual.positions()
	for _, o := range others {
		e.x.unlink(p, o)
		if e.onUnlink != nil {
			e.onUnlink(p, o)
		}
	}

	for _, a := range e.reg.at(p, item.cat) {
		for _, o := range others {
			if a.update(e.x, p, o) {
				e.markDirty(a)
				break
			}
		}
	}
	for _, o := range others {
		for _, a := range e.reg.at(o, home) {
			if a.update(e.x, o, p) {
				e.markDirty(a)
			}
		}
	}

	e.tighten(p, item.cat)
	for _, o := range others {
		e.tighten(o, home)
	}
	return len(others)
}

// tighten queues the removals implied for p by its remaining partners in
// category c.
func (e *engine) tighten(p, c int) {
	linked := e.x.linkedIn(p, c)
	n := linked.count()
	if n == 0 {
		return
	}

	union := newBitset(e.x.size())
	linked.each(func(q int) { union.or(e.x.rows[q]) })

	drop := e.x.rows[p].clone()
	drop.andNot(union)
	if !drop.empty() {
		e.queue = append(e.queue, removal{pos: p, cat: anyCategory, mask: drop})
	}

	if n == 1 {
		q := linked.first()
		keep := e.x.rows[p].clone()
		keep.and(union)
		dropQ := e.x.rows[q].clone()
		dropQ.andNot(keep)
		if !dropQ.empty() {
			e.queue = append(e.queue, removal{pos: q, cat: anyCategory, mask: dropQ})
		}
	}
}
