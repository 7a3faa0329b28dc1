package service

import (
	"testing"

	"github.com/clubkitlabs/clubkit/internal/bundle/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }

func TestResolveDisplayIncludedIsFreeDespiteStoredDiscount(t *testing.T) {
	recs := []domain.MembershipService{
		{ID: 1, ServiceID: 10, Included: true, Discount: strp("20%"), Active: true},
	}
	names := map[int64]string{10: "Sauna"}

	resolved := ResolveDisplay(recs, names)
	require.Len(t, resolved, 1)
	assert.Equal(t, domain.TagFree, resolved[0].Tag.Kind)
	assert.Nil(t, resolved[0].Tag.Discount, "stale discount must not leak into the tag")
	assert.Equal(t, "FREE", resolved[0].TagDisplay)
}

func TestResolveDisplayPayableCarriesDiscount(t *testing.T) {
	recs := []domain.MembershipService{
		{ID: 1, ServiceID: 10, Included: false, Discount: strp("20%"), Active: true},
		{ID: 2, ServiceID: 11, Included: false, Active: true},
	}
	names := map[int64]string{10: "Sauna", 11: "Towel Hire"}

	resolved := ResolveDisplay(recs, names)
	require.Len(t, resolved, 2)

	assert.Equal(t, domain.TagPayable, resolved[0].Tag.Kind)
	require.NotNil(t, resolved[0].Tag.Discount)
	assert.Equal(t, "20%", resolved[0].TagDisplay)

	assert.Equal(t, domain.TagPayable, resolved[1].Tag.Kind)
	assert.Empty(t, resolved[1].TagDisplay)
}

func TestResolveDisplayUnknownServiceFallback(t *testing.T) {
	recs := []domain.MembershipService{
		{ID: 1, ServiceID: 99, Included: true, Active: true},
	}

	resolved := ResolveDisplay(recs, map[int64]string{})
	require.Len(t, resolved, 1)
	assert.Equal(t, domain.UnknownServiceName, resolved[0].ServiceName)
}

func TestTagOfTogglesWithoutLosingDiscount(t *testing.T) {
	rec := domain.MembershipService{ServiceID: 10, Included: true, Discount: strp("15%")}

	assert.Equal(t, domain.TagFree, domain.TagOf(rec).Kind)

	rec.Included = false
	tag := domain.TagOf(rec)
	assert.Equal(t, domain.TagPayable, tag.Kind)
	require.NotNil(t, tag.Discount)
	assert.Equal(t, "15%", *tag.Discount)
}
