// Package quota implements the client-local generation quota tracker. It is
// an optimistic mirror of the server's entitlement counters, consulted before
// a generation call to skip a round-trip for an already-exhausted quota. It
// may drift from the server (there is no request dedup); the next profile
// fetch overwrites anything displayed from here.
package quota

import (
	"time"

	"github.com/frank-couchman/seoscribe-tui/internal/store"
)

// Window identifies the quota accounting period.
type Window string

const (
	// WindowDay buckets usage per local calendar day.
	WindowDay Window = "day"
	// WindowMonth buckets usage per local calendar month.
	WindowMonth Window = "month"
)

// Plan limits are product policy: Free = 1/month, Pro = 15/day.
const (
	FreeMonthlyLimit = 1
	ProDailyLimit    = 15
)

// PlanWindow describes the limit and accounting window for a plan tier.
type PlanWindow struct {
	Limit  int
	Window Window
}

// PlanWindowFor returns the quota policy for the given tier.
func PlanWindowFor(isPro bool) PlanWindow {
	if isPro {
		return PlanWindow{Limit: ProDailyLimit, Window: WindowDay}
	}
	return PlanWindow{Limit: FreeMonthlyLimit, Window: WindowMonth}
}

// Usage is the counter state for the current period.
type Usage struct {
	Key    string
	Count  int
	Window Window
}

// LockState is the local gate decision for a generation attempt.
type LockState struct {
	Locked bool
	Count  int
	Limit  int
	Window Window
}

// Tracker counts generations per period key in the local store. It holds no
// identity state; the caller supplies the plan tier on every call.
type Tracker struct {
	store store.Store
	now   func() time.Time
}

// NewTracker creates a tracker backed by the given store.
func NewTracker(s store.Store) *Tracker {
	return &Tracker{store: s, now: time.Now}
}

// periodKey formats the bucket key for a window in local time. Keys are
// stable within a calendar day/month and change at local midnight or on the
// first of the month.
func periodKey(w Window, now time.Time) string {
	if w == WindowDay {
		return now.Format("2006-01-02")
	}
	return now.Format("2006-01")
}

// Usage returns the count for the current period, zero if none recorded.
func (t *Tracker) Usage(isPro bool) Usage {
	counts := store.Read(t.store, store.KeyUsage, map[string]int{})
	w := PlanWindowFor(isPro).Window
	key := periodKey(w, t.now())
	return Usage{Key: key, Count: counts[key], Window: w}
}

// Increment bumps the counter for the current period and persists it.
// Callers must invoke it at most once per successful generation; the tracker
// performs no deduplication of its own.
func (t *Tracker) Increment(isPro bool) Usage {
	counts := store.Read(t.store, store.KeyUsage, map[string]int{})
	w := PlanWindowFor(isPro).Window
	key := periodKey(w, t.now())
	counts[key]++
	store.Write(t.store, store.KeyUsage, counts)
	return Usage{Key: key, Count: counts[key], Window: w}
}

// Locked reports whether the local gate blocks a new generation:
// locked iff count >= limit for the tier's current window.
func (t *Tracker) Locked(isPro bool) LockState {
	plan := PlanWindowFor(isPro)
	usage := t.Usage(isPro)
	return LockState{
		Locked: usage.Count >= plan.Limit,
		Count:  usage.Count,
		Limit:  plan.Limit,
		Window: plan.Window,
	}
}

// NextResetAt returns when the current period rolls over: the next local
// midnight for daily windows, the first instant of the next calendar month
// for monthly ones. Display only; enforcement is by period-key comparison.
func (t *Tracker) NextResetAt(isPro bool) time.Time {
	now := t.now()
	if PlanWindowFor(isPro).Window == WindowDay {
		return time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
	}
	return time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, now.Location())
}
