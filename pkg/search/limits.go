package search

import "go.uber.org/atomic"

// nodePollInterval is how often the node loop checks the stop flag: every
// 1024 nodes, to keep the atomic load off the hot path.
const nodePollInterval = 1024

// Limits bounds a single FindBestMove call: a hard depth ceiling, an
// optional soft node-count cap, and the shared stop flag every worker
// polls.
type Limits struct {
	MaxDepth int
	MaxNodes uint64
	Stop     *atomic.Bool
}

// stopped reports whether the search should abandon the current node,
// checked every nodePollInterval nodes rather than every node to keep the
// atomic load off the hot path.
func (l Limits) stopped(nodes uint64) bool {
	if l.Stop != nil && nodes%nodePollInterval == 0 && l.Stop.Load() {
		return true
	}
	if l.MaxNodes > 0 && nodes >= l.MaxNodes {
		return true
	}
	return false
}
