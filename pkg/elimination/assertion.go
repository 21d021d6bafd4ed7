// Package elimination provides deferred assertions for process-of-elimination puzzles.
//
// An assertion ties two endpoint items through a linking category: "the
// position of the Englishman is one less than the position of the red
// house". It cannot always be applied in one step because the candidates of
// both endpoints keep shrinking as other rules are applied. Assertions are
// therefore registered with the closure engine under both endpoints and
// re-verified whenever one of their candidate edges in the linking category
// is removed. Once both endpoints are resolved to a single candidate the
// assertion has nothing left to contribute and is deregistered.
package elimination

// keyTable holds the comparison key of every item of one category.
type keyTable struct {
	base  int // first position of the category
	keys  []float64
	exact bool // every key is integral
}

func (t keyTable) of(pos int) float64 { return t.keys[pos-t.base] }

// keySet is a duplicate-free collection of candidate keys.
type keySet struct {
	list []float64
	has  map[float64]struct{}
}

func newKeySet(t keyTable, positions []int) keySet {
	s := keySet{has: make(map[float64]struct{}, len(positions))}
	for _, p := range positions {
		k := t.of(p)
		if _, dup := s.has[k]; dup {
			continue
		}
		s.has[k] = struct{}{}
		s.list = append(s.list, k)
	}
	return s
}

// assertion is a registered relation between pos1 and pos2 through cat.
type assertion struct {
	id         int
	pos1, pos2 int
	cat        int
	rel        relation
	keys       keyTable
	desc       string

	registered bool
	queued     bool
}

// satisfied reports whether both endpoints are resolved in the linking
// category.
func (a *assertion) satisfied(x *matrix) bool {
	return x.countIn(a.pos1, a.cat) == 1 && x.countIn(a.pos2, a.cat) == 1
}

// update reports whether removing the edge between changed and other can
// affect the assertion: changed must be an endpoint and other an item of the
// linking category.
func (a *assertion) update(x *matrix, changed, other int) bool {
	if changed != a.pos1 && changed != a.pos2 {
		return false
	}
	return x.home(other) == a.cat
}

// verify returns the removals needed to drop every candidate of either
// endpoint that has no partner on the other side. The second endpoint is
// checked against the candidates of the first that survived.
func (a *assertion) verify(x *matrix) []removal {
	cands1 := x.linkedIn(a.pos1, a.cat).positions()
	cands2 := x.linkedIn(a.pos2, a.cat).positions()

	keys2 := newKeySet(a.keys, cands2)
	drop1 := newBitset(x.size())
	kept := make([]int, 0, len(cands1))
	for _, q := range cands1 {
		if a.supported(a.keys.of(q), keys2, false) {
			kept = append(kept, q)
		} else {
			drop1.set(q)
		}
	}

	keys1 := newKeySet(a.keys, kept)
	drop2 := newBitset(x.size())
	for _, q := range cands2 {
		if !a.supported(a.keys.of(q), keys1, true) {
			drop2.set(q)
		}
	}

	// An endpoint of the linking category is its own only candidate. It
	// cannot be removed; it only withdraws support from the other side.
	var out []removal
	if !drop1.empty() && x.home(a.pos1) != a.cat {
		out = append(out, removal{pos: a.pos1, cat: a.cat, mask: drop1})
	}
	if !drop2.empty() && x.home(a.pos2) != a.cat {
		out = append(out, removal{pos: a.pos2, cat: a.cat, mask: drop2})
	}
	return out
}

// supported reports whether some key in others satisfies the relation with
// k. With reverse set, k belongs to the second endpoint.
func (a *assertion) supported(k float64, others keySet, reverse bool) bool {
	if a.keys.exact {
		if partners, ok := a.rel.partners(k, reverse, len(others.list)); ok {
			for _, o := range partners {
				if _, in := others.has[o]; in && a.holds(k, o, reverse) {
					return true
				}
			}
			return false
		}
	}
	for _, o := range others.list {
		if a.holds(k, o, reverse) {
			return true
		}
	}
	return false
}

func (a *assertion) holds(k, o float64, reverse bool) bool {
	if reverse {
		return a.rel.holds(o, k)
	}
	return a.rel.holds(k, o)
}

// slot identifies the registration of an endpoint in a linking category.
type slot struct{ pos, cat int }

// registry indexes live assertions by both of their endpoint slots.
type registry struct {
	bySlot map[slot][]*assertion
	live   int
	nextID int
}

func newRegistry() *registry {
	return &registry{bySlot: make(map[slot][]*assertion)}
}

func (r *registry) add(a *assertion) {
	r.nextID++
	a.id = r.nextID
	a.registered = true
	r.live++
	for _, s := range []slot{{a.pos1, a.cat}, {a.pos2, a.cat}} {
		r.bySlot[s] = append(r.bySlot[s], a)
	}
}

func (r *registry) remove(a *assertion) {
	if !a.registered {
		return
	}
	a.registered = false
	r.live--
	for _, s := range []slot{{a.pos1, a.cat}, {a.pos2, a.cat}} {
		list := r.bySlot[s]
		for i, b := range list {
			if b == a {
				list = append(list[:i:i], list[i+1:]...)
				break
			}
		}
		if len(list) == 0 {
			delete(r.bySlot, s)
		} else {
			r.bySlot[s] = list
		}
	}
}

func (r *registry) at(pos, cat int) []*assertion {
	return r.bySlot[slot{pos, cat}]
}

func (r *registry) clear() {
	for _, list := range r.bySlot {
		for _, a := range list {
			a.registered = false
		}
	}
	r.bySlot = make(map[slot][]*assertion)
	r.live = 0
}
