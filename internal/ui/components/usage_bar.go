// Package components provides reusable UI components for the TUI.
package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/frank-couchman/seoscribe-tui/internal/quota"
	"github.com/frank-couchman/seoscribe-tui/internal/ui/styles"
)

// RenderUsageBar renders a generation counter as a progress bar, colored by
// how close the count is to the limit.
func RenderUsageBar(count, limit, width int) string {
	if width < 10 {
		width = 10
	}
	if limit <= 0 {
		limit = 1
	}
	if count > limit {
		count = limit
	}

	filled := int(float64(count) / float64(limit) * float64(width))
	if filled > width {
		filled = width
	}

	style := styles.GetUsageStyle(count, limit)
	bar := style.Render(strings.Repeat("█", filled)) +
		styles.HelpStyle.Render(strings.Repeat("░", width-filled))

	label := style.Render(fmt.Sprintf(" %d/%d", count, limit))
	return bar + label
}

// RenderUsageSummary renders the lock state with the window and reset time.
func RenderUsageSummary(lock quota.LockState, resetAt time.Time) string {
	window := "this month"
	if lock.Window == quota.WindowDay {
		window = "today"
	}

	if lock.Locked {
		return styles.UsageLockedStyle.Render(
			fmt.Sprintf("Limit reached (%d/%d %s) — resets %s", lock.Count, lock.Limit, window, formatReset(resetAt)))
	}

	remaining := lock.Limit - lock.Count
	plural := "s"
	if remaining == 1 {
		plural = ""
	}
	return styles.GetUsageStyle(lock.Count, lock.Limit).Render(
		fmt.Sprintf("%d generation%s left %s", remaining, plural, window))
}

// formatReset renders a reset time relative to now.
func formatReset(resetAt time.Time) string {
	if resetAt.IsZero() {
		return "soon"
	}
	d := time.Until(resetAt)
	if d <= 0 {
		return "soon"
	}
	if d < time.Hour {
		return fmt.Sprintf("in %dm", int(d.Minutes()))
	}
	if d < 48*time.Hour {
		return fmt.Sprintf("in %dh", int(d.Hours()))
	}
	return fmt.Sprintf("in %dd", int(d.Hours()/24))
}

// RenderPlanBadge renders a colored plan label.
func RenderPlanBadge(plan string) string {
	label := strings.ToUpper(plan)
	if label == "" {
		label = "DEMO"
	}
	return styles.GetPlanStyle(plan).Render(label)
}
