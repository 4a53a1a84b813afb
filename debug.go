package rampart

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// debugStats holds per-frame timing metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	tickTime     time.Duration
	lateTickTime time.Duration
	serviceCount int
	activeCount  int
}

// debugLog logs timing stats at debug level.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	s.log.WithFields(logrus.Fields{
		"frame":    s.frame,
		"tick":     stats.tickTime,
		"lateTick": stats.lateTickTime,
		"total":    stats.tickTime + stats.lateTickTime,
		"services": stats.serviceCount,
		"active":   stats.activeCount,
	}).Debug("frame stats")
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. In release mode callers skip this entirely.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("rampart debug: %s on disposed node %q (ID was %d)", op, n.Name, n.ID))
	}
}

// debugCheckTreeDepth warns if widget tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(w *Widget) {
	depth := 0
	for p := w; p != nil; p = p.owner {
		depth++
	}
	if depth > debugMaxTreeDepth {
		w.logger().Warnf("tree depth %d exceeds %d", depth, debugMaxTreeDepth)
	}
}

// debugCheckChildCount warns if a widget has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(w *Widget) {
	if len(w.children) > debugMaxChildCount {
		w.logger().Warnf("widget has %d children (threshold %d)", len(w.children), debugMaxChildCount)
	}
}
