package payroll

import (
	"fmt"
	"sort"

	"shiftpay.net.au/shiftpay/model"
)

// BreakResult holds the outcome of resolving a shift against a break table.
type BreakResult struct {
	BreakMinutes int32
	TotalHours   float64
	// Clamped is set when the deduction exceeded the raw duration and the
	// total was held at zero instead of going negative.
	Clamped bool
}

// ResolveBreak selects the applicable tier for a shift of rawHours and
// returns the deduction plus the resulting paid hours. The applicable tier
// is the one with the greatest MinHours not exceeding rawHours (boundary
// inclusive). Duplicate thresholds should not exist; if they do, the tier
// with the fewest break minutes wins so the outcome stays deterministic.
func ResolveBreak(rules []model.BreakRule, rawHours float64) (BreakResult, error) {
	if rawHours <= 0 {
		// incomplete or zero-length shift, a legitimate state
		return BreakResult{}, nil
	}

	sorted := sortRules(rules)

	var selected *model.BreakRule
	for i := range sorted {
		if sorted[i].MinHours <= rawHours {
			selected = &sorted[i]
		} else {
			break
		}
	}
	if selected == nil {
		return BreakResult{}, ErrNoApplicableRule
	}

	return applyBreak(rawHours, selected.BreakMinutes), nil
}

func applyBreak(rawHours float64, breakMinutes int32) BreakResult {
	total := rawHours - float64(breakMinutes)/60
	if total < 0 {
		return BreakResult{BreakMinutes: breakMinutes, TotalHours: 0, Clamped: true}
	}
	return BreakResult{BreakMinutes: breakMinutes, TotalHours: total}
}

func sortRules(rules []model.BreakRule) []model.BreakRule {
	sorted := make([]model.BreakRule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].MinHours != sorted[j].MinHours {
			return sorted[i].MinHours < sorted[j].MinHours
		}
		return sorted[i].BreakMinutes < sorted[j].BreakMinutes
	})
	return sorted
}

// ValidateRuleSet rejects a break table before it is saved. A valid table
// has a tier at zero hours, unique non-negative thresholds and non-negative
// deductions. Validating here keeps ResolveBreak total for rawHours >= 0.
func ValidateRuleSet(rules []model.BreakRule) error {
	if len(rules) == 0 {
		return fmt.Errorf("%w: at least one tier is required", ErrInvalidRuleSet)
	}

	hasFloor := false
	seen := make(map[float64]bool, len(rules))
	for _, r := range rules {
		if r.MinHours < 0 {
			return fmt.Errorf("%w: negative threshold %.2f", ErrInvalidRuleSet, r.MinHours)
		}
		if r.BreakMinutes < 0 {
			return fmt.Errorf("%w: negative break minutes %d", ErrInvalidRuleSet, r.BreakMinutes)
		}
		if seen[r.MinHours] {
			return fmt.Errorf("%w: duplicate threshold %.2f", ErrInvalidRuleSet, r.MinHours)
		}
		seen[r.MinHours] = true
		if r.MinHours == 0 {
			hasFloor = true
		}
	}
	if !hasFloor {
		return fmt.Errorf("%w: a tier at 0 hours is required", ErrInvalidRuleSet)
	}
	return nil
}
