// Package eligibility evaluates a category's prioritized allow/deny rules
// against a household composition.
package eligibility

import (
	"sort"

	"github.com/clubkitlabs/clubkit/internal/membership/domain"
)

// Evaluate sorts the rules by priority ascending (stable, so ties keep
// their stored order) and returns the first match. When nothing matches
// the verdict is an explicit DENY with no message; defaulting to ALLOW
// would be a correctness hazard.
func Evaluate(rules []domain.EligibilityRule, hh domain.Household) domain.Outcome {
	ordered := make([]domain.EligibilityRule, len(rules))
	copy(ordered, rules)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority < ordered[j].Priority
	})

	for _, rule := range ordered {
		if rule.Condition.Data().Matches(hh) {
			return domain.Outcome{
				Result:  rule.Result,
				Message: rule.Message,
				Matched: true,
				RuleID:  rule.ID,
			}
		}
	}

	return domain.Outcome{Result: domain.ResultDeny}
}
