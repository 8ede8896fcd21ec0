package quota

import (
	"strconv"
	"time"

	"github.com/frank-couchman/seoscribe-tui/internal/store"
)

// DemoCooldown is how long an anonymous user waits between demo generations.
const DemoCooldown = 30 * 24 * time.Hour

// DemoGate limits anonymous, pre-signup trial generations to one per
// cooldown. It stores a single millisecond timestamp, a simpler cousin of
// the tiered tracker.
type DemoGate struct {
	store store.Store
	now   func() time.Time
}

// NewDemoGate creates a demo gate backed by the given store.
func NewDemoGate(s store.Store) *DemoGate {
	return &DemoGate{store: s, now: time.Now}
}

// Allowed reports whether a demo generation may run now, and if not, when
// the cooldown expires. An unreadable or garbage timestamp allows the run.
func (g *DemoGate) Allowed() (bool, time.Time) {
	raw, ok := g.store.GetItem(store.KeyDemoUsed)
	if !ok || raw == "" {
		return true, time.Time{}
	}

	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return true, time.Time{}
	}

	used := time.UnixMilli(ms)
	resetAt := used.Add(DemoCooldown)
	if g.now().Before(resetAt) {
		return false, resetAt
	}
	return true, time.Time{}
}

// MarkUsed records that the demo ran now.
func (g *DemoGate) MarkUsed() {
	g.store.SetItem(store.KeyDemoUsed, strconv.FormatInt(g.now().UnixMilli(), 10))
}
