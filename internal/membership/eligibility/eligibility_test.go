package eligibility

import (
	"testing"

	"github.com/clubkitlabs/clubkit/internal/membership/domain"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func intp(v int) *int { return &v }

func rule(id int64, priority int, result domain.Result, msg string, cond domain.Condition) domain.EligibilityRule {
	return domain.EligibilityRule{
		ID:        id,
		Priority:  priority,
		Result:    result,
		Message:   msg,
		Condition: datatypes.NewJSONType(cond),
	}
}

func TestEvaluateLowestPriorityWins(t *testing.T) {
	// Both rules match the household; the priority-1 ALLOW must win even
	// though the DENY is listed first.
	rules := []domain.EligibilityRule{
		rule(2, 2, domain.ResultDeny, "too many adults", domain.Condition{MinAdult: intp(1)}),
		rule(1, 1, domain.ResultAllow, "family plan", domain.Condition{MinAdult: intp(1)}),
	}
	hh := domain.Household{AdultCount: 2}

	out := Evaluate(rules, hh)
	assert.Equal(t, domain.ResultAllow, out.Result)
	assert.True(t, out.Matched)
	assert.EqualValues(t, 1, out.RuleID)
	assert.Equal(t, "family plan", out.Message)
}

func TestEvaluateNoMatchDefaultsToDeny(t *testing.T) {
	rules := []domain.EligibilityRule{
		rule(1, 1, domain.ResultAllow, "kids only", domain.Condition{MinChild: intp(1)}),
	}
	hh := domain.Household{AdultCount: 2}

	out := Evaluate(rules, hh)
	assert.Equal(t, domain.ResultDeny, out.Result)
	assert.False(t, out.Matched)
	assert.Zero(t, out.RuleID)
	assert.Empty(t, out.Message)
}

func TestEvaluateEmptyRuleSetDenies(t *testing.T) {
	out := Evaluate(nil, domain.Household{AdultCount: 1})
	assert.Equal(t, domain.ResultDeny, out.Result)
	assert.False(t, out.Matched)
}

func TestEvaluateUnconstrainedRuleMatchesEverything(t *testing.T) {
	rules := []domain.EligibilityRule{
		rule(9, 5, domain.ResultAllow, "open door", domain.Condition{}),
	}
	out := Evaluate(rules, domain.Household{})
	assert.True(t, out.Matched)
	assert.Equal(t, domain.ResultAllow, out.Result)
}

func TestEvaluateTiesKeepStoredOrder(t *testing.T) {
	rules := []domain.EligibilityRule{
		rule(10, 3, domain.ResultDeny, "first", domain.Condition{}),
		rule(11, 3, domain.ResultAllow, "second", domain.Condition{}),
	}
	out := Evaluate(rules, domain.Household{})
	assert.EqualValues(t, 10, out.RuleID)
	assert.Equal(t, domain.ResultDeny, out.Result)
}

func TestEvaluateDoesNotReorderInput(t *testing.T) {
	rules := []domain.EligibilityRule{
		rule(2, 2, domain.ResultDeny, "", domain.Condition{}),
		rule(1, 1, domain.ResultAllow, "", domain.Condition{}),
	}
	Evaluate(rules, domain.Household{})
	assert.EqualValues(t, 2, rules[0].ID)
}
