// Package models defines data structures and domain types.
package models

// GenerationCount holds the generation counter for one server-side window.
type GenerationCount struct {
	Generations int `json:"generations"`
}

// ProfileUsage mirrors the server's authoritative usage counters.
type ProfileUsage struct {
	Today GenerationCount `json:"today"`
	Month GenerationCount `json:"month"`
}

// Profile is the account profile returned by the profile endpoint. The local
// quota tracker is advisory; these counters are the server's source of truth
// and overwrite displayed totals on every fetch.
type Profile struct {
	Plan                string       `json:"plan"`
	Email               string       `json:"email"`
	Usage               ProfileUsage `json:"usage"`
	ToolUsageToday      int          `json:"tool_usage_today"`
	ToolLimitDaily      int          `json:"tool_limit_daily"`
	ProTrialRemaining   int          `json:"pro_trial_remaining"`
	ProTrialUsed        bool         `json:"pro_trial_used"`
	OnboardingCompleted bool         `json:"onboarding_completed"`
}

// IsPro reports whether the account is on the paid plan.
func (p *Profile) IsPro() bool {
	return p != nil && p.Plan == "pro"
}

// Normalize fills in the defaults the server omits for new accounts.
func (p *Profile) Normalize() {
	if p.Plan == "" {
		p.Plan = "free"
	}
	if p.ToolLimitDaily == 0 {
		p.ToolLimitDaily = 1
	}
}
