package quota

import (
	"testing"
	"time"

	"github.com/frank-couchman/seoscribe-tui/internal/store"
)

func newTestTracker(now time.Time) *Tracker {
	t := NewTracker(store.NewMemStore())
	t.now = func() time.Time { return now }
	return t
}

func TestPlanWindowFor(t *testing.T) {
	if got := PlanWindowFor(true); got.Limit != 15 || got.Window != WindowDay {
		t.Errorf("PlanWindowFor(pro) = %+v, want {15 day}", got)
	}
	if got := PlanWindowFor(false); got.Limit != 1 || got.Window != WindowMonth {
		t.Errorf("PlanWindowFor(free) = %+v, want {1 month}", got)
	}
}

func TestPeriodKey(t *testing.T) {
	now := time.Date(2025, 3, 7, 23, 59, 0, 0, time.Local)
	if got := periodKey(WindowDay, now); got != "2025-03-07" {
		t.Errorf("day key = %q, want 2025-03-07", got)
	}
	if got := periodKey(WindowMonth, now); got != "2025-03" {
		t.Errorf("month key = %q, want 2025-03", got)
	}

	// Stable within the same day, changes across midnight.
	sameDay := time.Date(2025, 3, 7, 0, 0, 1, 0, time.Local)
	if periodKey(WindowDay, now) != periodKey(WindowDay, sameDay) {
		t.Error("day key should be stable within a calendar day")
	}
	nextDay := time.Date(2025, 3, 8, 0, 0, 0, 0, time.Local)
	if periodKey(WindowDay, now) == periodKey(WindowDay, nextDay) {
		t.Error("day key must change at midnight")
	}
}

func TestIncrementWithinPeriod(t *testing.T) {
	now := time.Date(2025, 5, 10, 10, 0, 0, 0, time.Local)
	tr := newTestTracker(now)

	for i := 1; i <= 5; i++ {
		got := tr.Increment(true)
		if got.Count != i {
			t.Fatalf("Increment #%d count = %d, want %d", i, got.Count, i)
		}
	}

	if got := tr.Usage(true); got.Count != 5 {
		t.Errorf("Usage count = %d, want 5", got.Count)
	}
}

func TestPeriodRolloverResetsCount(t *testing.T) {
	t.Run("ProDaily", func(t *testing.T) {
		tr := newTestTracker(time.Date(2025, 5, 10, 10, 0, 0, 0, time.Local))
		tr.Increment(true)
		tr.Increment(true)

		tr.now = func() time.Time { return time.Date(2025, 5, 11, 0, 0, 1, 0, time.Local) }
		if got := tr.Increment(true); got.Count != 1 {
			t.Errorf("count after daily rollover = %d, want 1", got.Count)
		}
	})

	t.Run("FreeMonthly", func(t *testing.T) {
		tr := newTestTracker(time.Date(2025, 5, 31, 23, 0, 0, 0, time.Local))
		tr.Increment(false)

		tr.now = func() time.Time { return time.Date(2025, 6, 1, 0, 0, 1, 0, time.Local) }
		if got := tr.Usage(false); got.Count != 0 {
			t.Errorf("count after monthly rollover = %d, want fresh 0", got.Count)
		}
		if got := tr.Increment(false); got.Count != 1 {
			t.Errorf("increment after monthly rollover = %d, want 1", got.Count)
		}
	})
}

func TestLocked(t *testing.T) {
	now := time.Date(2025, 5, 10, 10, 0, 0, 0, time.Local)

	t.Run("FreeLockedAfterOne", func(t *testing.T) {
		tr := newTestTracker(now)
		if got := tr.Locked(false); got.Locked {
			t.Error("free account with 0 generations should not be locked")
		}
		tr.Increment(false)
		got := tr.Locked(false)
		if !got.Locked || got.Count != 1 || got.Limit != 1 {
			t.Errorf("Locked(free) after 1 = %+v, want locked at 1/1", got)
		}
	})

	t.Run("ProLockedAtFifteen", func(t *testing.T) {
		tr := newTestTracker(now)
		for i := 0; i < 14; i++ {
			tr.Increment(true)
		}
		if got := tr.Locked(true); got.Locked {
			t.Errorf("pro with 14 today should not be locked: %+v", got)
		}
		tr.Increment(true)
		if got := tr.Locked(true); !got.Locked {
			t.Errorf("pro with 15 today should be locked: %+v", got)
		}
	})
}

func TestNextResetAt(t *testing.T) {
	now := time.Date(2025, 5, 10, 18, 30, 0, 0, time.Local)
	tr := newTestTracker(now)

	if got, want := tr.NextResetAt(true), time.Date(2025, 5, 11, 0, 0, 0, 0, time.Local); !got.Equal(want) {
		t.Errorf("NextResetAt(pro) = %v, want next local midnight %v", got, want)
	}
	if got, want := tr.NextResetAt(false), time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local); !got.Equal(want) {
		t.Errorf("NextResetAt(free) = %v, want first of next month %v", got, want)
	}

	// December rolls into January of the next year.
	tr.now = func() time.Time { return time.Date(2025, 12, 20, 8, 0, 0, 0, time.Local) }
	if got, want := tr.NextResetAt(false), time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local); !got.Equal(want) {
		t.Errorf("NextResetAt(free) across year = %v, want %v", got, want)
	}
}

func TestDemoGate(t *testing.T) {
	now := time.Date(2025, 5, 10, 10, 0, 0, 0, time.UTC)
	g := NewDemoGate(store.NewMemStore())
	g.now = func() time.Time { return now }

	if ok, _ := g.Allowed(); !ok {
		t.Fatal("fresh gate should allow a demo run")
	}

	g.MarkUsed()
	ok, resetAt := g.Allowed()
	if ok {
		t.Error("gate should block within the cooldown")
	}
	if want := now.Add(DemoCooldown); !resetAt.Equal(want) {
		t.Errorf("resetAt = %v, want %v", resetAt, want)
	}

	// 29 days later: still blocked. 31 days later: allowed again.
	g.now = func() time.Time { return now.Add(29 * 24 * time.Hour) }
	if ok, _ := g.Allowed(); ok {
		t.Error("gate should still block at day 29")
	}
	g.now = func() time.Time { return now.Add(31 * 24 * time.Hour) }
	if ok, _ := g.Allowed(); !ok {
		t.Error("gate should reopen after the cooldown")
	}
}

func TestDemoGateGarbageTimestampAllows(t *testing.T) {
	s := store.NewMemStore()
	s.SetItem(store.KeyDemoUsed, "not-a-number")

	g := NewDemoGate(s)
	if ok, _ := g.Allowed(); !ok {
		t.Error("garbage timestamp should fail open")
	}
}
