package score

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	domain "github.com/donaldgifford/dealsense/pkg/types"
)

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func TestTrustAt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		deal domain.Deal
		want float64
	}{
		{
			name: "fresh clean deal",
			deal: domain.Deal{Title: "코베아 텐트", URL: "https://shop.example.org/1", PostedAt: testNow.Add(-time.Hour)},
			want: 1.0,
		},
		{
			name: "ten days old no cues",
			deal: domain.Deal{Title: "코베아 텐트", URL: "https://shop.example.org/1", PostedAt: testNow.Add(-10 * 24 * time.Hour)},
			want: 0.8,
		},
		{
			name: "five days old",
			deal: domain.Deal{Title: "tent", PostedAt: testNow.Add(-5 * 24 * time.Hour)},
			want: 0.9,
		},
		{
			name: "exactly three days is not aging",
			deal: domain.Deal{Title: "tent", PostedAt: testNow.Add(-3 * 24 * time.Hour)},
			want: 1.0,
		},
		{
			name: "one category hit twice penalised once",
			deal: domain.Deal{Title: "옵션 선택 추가금 텐트", PostedAt: testNow},
			want: 0.85,
		},
		{
			name: "two categories stack",
			deal: domain.Deal{Title: "품절임박 옵션 텐트", PostedAt: testNow},
			want: 0.65,
		},
		{
			name: "trusted domain bonus is clamped",
			deal: domain.Deal{Title: "tent", URL: "https://www.coupang.com/vp/1", PostedAt: testNow},
			want: 1.0,
		},
		{
			name: "trusted domain offsets a penalty",
			deal: domain.Deal{Title: "예약 판매 tent", URL: "https://shopping.naver.com/x", PostedAt: testNow},
			want: 0.9,
		},
		{
			name: "every penalty floors at zero",
			deal: domain.Deal{
				Title:    "option sold out random refurb overseas shipping",
				PostedAt: testNow.Add(-30 * 24 * time.Hour),
			},
			want: 0,
		},
		{
			name: "zero posted time treated as fresh",
			deal: domain.Deal{Title: "tent"},
			want: 1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := TrustAt(tt.deal, testNow)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 1.0)
		})
	}
}

func TestDomainBonusFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url  string
		want float64
	}{
		{url: "https://coupang.com/p/1", want: DomainBonus},
		{url: "https://www.11st.co.kr/products/1", want: DomainBonus},
		{url: "https://COUPANG.COM/p/1", want: DomainBonus},
		{url: "https://notcoupang.com/p/1", want: 0},
		{url: "https://coupang.com.evil.io/p/1", want: 0},
		{url: "https://evil.io/?ref=coupang.com", want: 0},
		{url: "not a url", want: 0},
		{url: "", want: 0},
		{url: "://bad", want: 0},
		{url: "coupang.com/vp/products/1", want: DomainBonus},
		{url: "www.ssg.com", want: DomainBonus},
		{url: "evil.io/coupang.com", want: 0},
		{url: "mailto:deals@coupang.com", want: 0},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, DomainBonusFor(tt.url), 1e-9, tt.url)
	}
}

func TestAgeBand(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 10, 2, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		posted  time.Time
		want    int
		penalty float64
	}{
		{name: "unknown posting time", want: BandFresh},
		{name: "just under three days", posted: now.Add(-71 * time.Hour), want: BandFresh},
		{name: "just over three days", posted: now.Add(-73 * time.Hour), want: BandAging, penalty: 0.10},
		{name: "over a week", posted: now.Add(-8 * 24 * time.Hour), want: BandStale, penalty: 0.20},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, AgeBand(tt.posted, now), tt.name)
		assert.InDelta(t, tt.penalty, AgePenalty(tt.posted, now), 1e-9, tt.name)
	}
}

func TestTextTrust(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 1.0, TextTrust("tent", ""), 1e-9)
	assert.InDelta(t, 0.7, TextTrust("중고 텐트", ""), 1e-9)
	assert.InDelta(t, 0.8, TextTrust("중고 텐트", "https://www.gmarket.com/item"), 1e-9)
}

func TestClamp(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.0, Clamp(-3))
	assert.Equal(t, 1.0, Clamp(7))
	assert.Equal(t, 0.42, Clamp(0.42))
}
