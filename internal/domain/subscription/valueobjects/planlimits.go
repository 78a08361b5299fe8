package valueobjects

// PlanLimits maps a quota name (max_users, storage_gb, campaigns_per_month)
// to its integer ceiling. A zero or absent limit means unlimited.
type PlanLimits map[string]int64

// NewPlanLimits copies the given map, dropping negative values.
func NewPlanLimits(limits map[string]int64) PlanLimits {
	out := make(PlanLimits, len(limits))
	for k, v := range limits {
		if v < 0 {
			continue
		}
		out[k] = v
	}
	return out
}

// Limit returns the ceiling for a quota name. Zero means unlimited.
func (l PlanLimits) Limit(name string) int64 {
	if l == nil {
		return 0
	}
	return l[name]
}

// IsUnlimited reports whether the quota has no ceiling.
func (l PlanLimits) IsUnlimited(name string) bool {
	return l.Limit(name) == 0
}

// Merge overlays other on top of l; other's entries win. Used to apply
// per-plan feature overrides on top of base plan limits.
func (l PlanLimits) Merge(other PlanLimits) PlanLimits {
	out := make(PlanLimits, len(l)+len(other))
	for k, v := range l {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}
