package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int { return &v }

func TestConditionMatchesBounds(t *testing.T) {
	cond := Condition{MinChild: intp(1), MaxChild: intp(2), MaxAdult: intp(2)}

	assert.True(t, cond.Matches(Household{ChildCount: 1, AdultCount: 2}))
	assert.True(t, cond.Matches(Household{ChildCount: 2}))
	assert.False(t, cond.Matches(Household{ChildCount: 0, AdultCount: 1}), "below min child")
	assert.False(t, cond.Matches(Household{ChildCount: 3}), "above max child")
	assert.False(t, cond.Matches(Household{ChildCount: 1, AdultCount: 3}), "above max adult")
}

func TestConditionAbsentBoundIsUnconstrained(t *testing.T) {
	cond := Condition{MinAdult: intp(1)}
	assert.True(t, cond.Matches(Household{AdultCount: 1, ChildCount: 50, SeniorCount: 50}))
}

func TestSetBoundClearsWithNil(t *testing.T) {
	cond := Condition{MaxAdult: intp(2)}

	require.NoError(t, cond.SetBound(BoundMaxAdult, nil))
	assert.Nil(t, cond.MaxAdult)
	// Cleared means unconstrained, not zero.
	assert.True(t, cond.Matches(Household{AdultCount: 10}))
}

func TestSetBoundZeroIsAConstraint(t *testing.T) {
	cond := Condition{}
	require.NoError(t, cond.SetBound(BoundMaxChild, intp(0)))
	assert.False(t, cond.Matches(Household{ChildCount: 1}))
	assert.True(t, cond.Matches(Household{ChildCount: 0}))
}

func TestSetBoundRejectsUnknownKey(t *testing.T) {
	cond := Condition{}
	err := cond.SetBound(BoundKey("maxPets"), intp(1))
	assert.ErrorIs(t, err, ErrInvalidBound)
}

func TestConditionJSONOmitsAbsentBounds(t *testing.T) {
	raw, err := json.Marshal(Condition{MinChild: intp(1)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"minChild":1}`, string(raw))

	var back Condition
	require.NoError(t, json.Unmarshal(raw, &back))
	require.NotNil(t, back.MinChild)
	assert.Nil(t, back.MaxChild)
}
