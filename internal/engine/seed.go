package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/donaldgifford/dealsense/internal/ingest"
	domain "github.com/donaldgifford/dealsense/pkg/types"
)

// SeedResult reports what Seed inserted.
type SeedResult struct {
	Deals    int  `json:"deals"`
	Profiles int  `json:"profiles"`
	Skipped  bool `json:"skipped"`
}

type sampleDeal struct {
	title    string
	price    int64
	original int64
	category string
	merchant string
}

var sampleDeals = []sampleDeal{
	{"코베아 2인용 텐트 초특가", 45000, 89000, "캠핑", "캠핑코리아"},
	{"스노우피크 침낭 겨울용 무료배송", 120000, 180000, "캠핑", "아웃도어플라자"},
	{"LED 캠핑 랜턴 3개세트 쿠폰적용", 25000, 45000, "캠핑", "11번가"},
	{"티타늄 코펠 세트 옵션선택", 38000, 58000, "캠핑", "지마켓"},
	{"캠핑용 접이식 테이블 특가", 32000, 52000, "캠핑", "쿠팡"},
	{"코베아 버너 리퍼상품", 28000, 65000, "캠핑", "캠핑마트"},
	{"캠핑 의자 2+1 이벤트", 19000, 39000, "캠핑", "네이버쇼핑"},
	{"백패킹 침낭 중고급", 42000, 95000, "캠핑", "중고나라"},
	{"쿠쿠 전기압력밥솥 6인용 핫딜", 89000, 150000, "주방", "쿠팡"},
	{"스테인리스 냄비세트 10종 무료배송", 28000, 58000, "주방", "SSG"},
	{"에어프라이어 5L 대용량 특가", 45000, 89000, "주방", "11번가"},
	{"세라믹 프라이팬 3종세트 옵션", 19000, 35000, "주방", "지마켓"},
	{"쿠쿠 믹서기 리퍼상품", 32000, 78000, "주방", "인터파크"},
	{"주방용품 복주머니 랜덤발송", 9900, 30000, "주방", "티몬"},
	{"전기포트 1.7L 당일배송", 15000, 28000, "주방", "쿠팡"},
	{"삼성 무선이어폰 갤럭시버즈", 68000, 120000, "테크", "네이버쇼핑"},
	{"Apple 에어팟 프로 2세대 품절임박", 289000, 359000, "테크", "애플스토어"},
	{"LG 모니터 27인치 IPS 핫딜", 159000, 289000, "테크", "컴퓨존"},
	{"기계식키보드 청축 RGB 특가", 42000, 89000, "테크", "다나와"},
	{"게이밍마우스 로지텍 중고A급", 28000, 75000, "테크", "중고장터"},
	{"USB-C 허브 8포트 해외배송", 18000, 38000, "테크", "알리익스프레스"},
	{"삼성 외장SSD 1TB 무료배송", 78000, 130000, "테크", "SSG"},
	{"프리미엄 수건세트 10장 호텔용", 19000, 45000, "생활", "쿠팡"},
	{"세탁세제 대용량 6L 특가", 12000, 22000, "생활", "홈플러스"},
	{"LED 스탠드 눈보호 학생용", 23000, 48000, "생활", "11번가"},
	{"공기청정기 소형 예약배송", 55000, 98000, "생활", "지마켓"},
	{"행거 10개입 옷걸이세트", 8900, 18000, "생활", "다이소온라인"},
	{"분유 3단계 800g 6캔 무료배송", 98000, 140000, "육아", "맘스맘"},
	{"기저귀 밴드형 신생아 4팩", 42000, 68000, "육아", "쿠팡"},
	{"유모차 절충형 리퍼상품", 158000, 380000, "육아", "중고마켓"},
	{"아기띠 신생아용 옵션확인", 35000, 78000, "육아", "지마켓"},
	{"젖병소독기 UV 살균 특가", 45000, 89000, "육아", "네이버쇼핑"},
	{"나이키 운동화 에어맥스 핫딜", 79000, 139000, "패션", "무신사"},
	{"아디다스 후드티 3종 옵션", 38000, 79000, "패션", "SSG"},
	{"청바지 스키니핏 배송비별도", 22000, 58000, "패션", "패션플러스"},
	{"겨울패딩 구스다운 품절임박", 128000, 298000, "패션", "쿠팡"},
	{"가죽벨트 남성용 2+1", 15000, 35000, "패션", "11번가"},
}

var sampleProfiles = []ProfileInput{
	{
		ID:              "p_camping_user",
		Categories:      []string{"캠핑", "아웃도어"},
		Keywords:        []string{"텐트", "침낭", "랜턴", "코펠"},
		Brands:          []string{"코베아", "스노우피크"},
		ExcludeKeywords: []string{"중고", "리퍼"},
		PriceMax:        ptr(int64(50000)),
		MinDiscountRate: ptr(20),
	},
	{
		ID:              "p_kitchen_user",
		Categories:      []string{"주방", "생활"},
		Keywords:        []string{"냄비", "프라이팬", "에어프라이어"},
		Brands:          []string{"쿠쿠"},
		ExcludeKeywords: []string{"리퍼"},
		PriceMax:        ptr(int64(30000)),
	},
}

var sampleSources = []domain.Source{domain.SourceCommunity, domain.SourceShop, domain.SourceManual}

// Seed loads sample deals and profiles into an empty store. It does nothing
// when either table already has rows.
func (e *Engine) Seed(ctx context.Context) (*SeedResult, error) {
	deals, err := e.store.CountDeals(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting deals: %w", err)
	}
	profiles, err := e.store.CountProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting profiles: %w", err)
	}
	if deals > 0 || profiles > 0 {
		e.log.Info("store already seeded, skipping", "deals", deals, "profiles", profiles)
		return &SeedResult{Skipped: true}, nil
	}

	res := &SeedResult{}
	now := e.nowFunc()

	for i, c := range SampleCandidates(now) {
		d := ingest.ToDeal(&c, fmt.Sprintf("d_%04d", i+1), now)
		if _, err := e.store.InsertDeal(ctx, &d); err != nil {
			return res, fmt.Errorf("inserting sample deal %s: %w", d.ID, err)
		}
		res.Deals++
	}

	for _, p := range sampleProfiles {
		if _, err := e.UpsertProfile(ctx, p); err != nil {
			return res, fmt.Errorf("inserting sample profile %s: %w", p.ID, err)
		}
		res.Profiles++
	}

	e.log.Info("seeded store", "deals", res.Deals, "profiles", res.Profiles)
	return res, nil
}

// SampleCandidates returns the sample deal set posted relative to now.
// Posting ages spread over the last week and popularity over [0.2, 0.95].
func SampleCandidates(now time.Time) []ingest.Candidate {
	out := make([]ingest.Candidate, 0, len(sampleDeals))
	for i, s := range sampleDeals {
		shipping := "배송비 별도"
		if strings.Contains(s.title, "무료배송") {
			shipping = "무료배송"
		}

		hoursAgo := (i * 37) % 168
		popularity := 0.2 + float64((i*53)%76)/100

		out = append(out, ingest.Candidate{
			Title:         s.title,
			PriceCurrent:  s.price,
			PriceOriginal: ptr(s.original),
			Source:        sampleSources[i%len(sampleSources)],
			Merchant:      s.merchant,
			URL:           fmt.Sprintf("https://example.com/deals/%d", i+1),
			Category:      s.category,
			PostedAt:      now.Add(-time.Duration(hoursAgo) * time.Hour),
			Popularity:    ptr(popularity),
			Extra: &domain.Extra{
				Conditions:   []string{"온라인 한정", "일부 옵션 제외"},
				ShippingInfo: shipping,
			},
		})
	}
	return out
}

func ptr[T any](v T) *T { return &v }
