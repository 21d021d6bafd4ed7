package elimination

// monitor.go: statistics for the closure engine

import (
	"time"
)

// Stats holds counters about the work a Solver has done since it was
// created. Reset does not clear them.
type Stats struct {
	// Rule statistics
	Rules int // High-level rule calls that passed validation

	// Propagation statistics
	Propagations    int           // Calls into the closure engine
	WorkItems       int           // Removal requests processed
	EdgesRemoved    int           // Edges removed in total
	PeakQueue       int           // Largest removal queue observed
	PropagationTime time.Duration // Time spent propagating

	// Assertion statistics
	Verifications        int // Assertion verification passes
	AssertionsRegistered int // Assertions created by ordering rules
	AssertionsSatisfied  int // Assertions deregistered once resolved
}

// Stats returns a copy of the solver's counters.
func (s *Solver) Stats() Stats {
	return *s.stats
}
