package engine_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/dealsense/internal/engine"
	domain "github.com/donaldgifford/dealsense/pkg/types"
)

func TestSeed(t *testing.T) {
	t.Parallel()

	eng, ms, _ := newTestEngine(t)
	want := len(engine.SampleCandidates(testNow))

	ms.On("CountDeals", mock.Anything).Return(0, nil).Once()
	ms.On("CountProfiles", mock.Anything).Return(0, nil).Once()
	ms.On("InsertDeal", mock.Anything, mock.MatchedBy(func(d *domain.Deal) bool {
		return strings.HasPrefix(d.ID, "d_") && d.Fingerprint != "" && d.DiscountRate != nil
	})).Return(true, nil).Times(want)
	ms.On("UpsertProfile", mock.Anything, mock.MatchedBy(func(p *domain.Profile) bool {
		return p.ID == "p_camping_user" || p.ID == "p_kitchen_user"
	})).Return(nil).Twice()

	got, err := eng.Seed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, engine.SeedResult{Deals: want, Profiles: 2}, *got)
}

func TestSeed_AlreadySeeded(t *testing.T) {
	t.Parallel()

	eng, ms, _ := newTestEngine(t)
	ms.On("CountDeals", mock.Anything).Return(3, nil).Once()
	ms.On("CountProfiles", mock.Anything).Return(0, nil).Once()

	got, err := eng.Seed(context.Background())
	require.NoError(t, err)
	assert.True(t, got.Skipped)
}

func TestSampleCandidates(t *testing.T) {
	t.Parallel()

	candidates := engine.SampleCandidates(testNow)
	require.NotEmpty(t, candidates)

	for _, c := range candidates {
		require.NoError(t, c.Validate(), c.Title)
		require.NotNil(t, c.Popularity)
		assert.GreaterOrEqual(t, *c.Popularity, 0.2)
		assert.LessOrEqual(t, *c.Popularity, 0.95)
		assert.False(t, c.PostedAt.After(testNow))
		assert.Less(t, testNow.Sub(c.PostedAt).Hours(), 168.0)
	}

	assert.Equal(t, "무료배송", candidates[1].Extra.ShippingInfo)
	assert.Equal(t, "배송비 별도", candidates[0].Extra.ShippingInfo)
}
