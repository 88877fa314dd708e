package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	domain "github.com/donaldgifford/dealsense/pkg/types"
)

const (
	defaultNaverURL     = "https://openapi.naver.com/v1/search/shop.json"
	defaultNaverDisplay = 20
	maxNaverDisplay     = 100

	// DefaultNaverDailyLimit is the Naver Open API search quota per day.
	DefaultNaverDailyLimit = 25000
)

// DefaultCategories are the shopping queries issued when none are configured.
var DefaultCategories = []string{"캠핑", "주방", "테크", "생활", "육아", "패션"}

var htmlTag = regexp.MustCompile(`<[^>]*>`)

// NaverSource searches the Naver Shopping API once per category.
type NaverSource struct {
	clientID     string
	clientSecret string
	baseURL      string
	categories   []string
	display      int
	client       *http.Client
	perSecond    float64
	dailyLimit   int64
	limiter      *QuotaLimiter
	nowFunc      func() time.Time
}

// NaverOption configures the NaverSource.
type NaverOption func(*NaverSource)

// WithNaverURL overrides the default search endpoint.
func WithNaverURL(u string) NaverOption {
	return func(s *NaverSource) {
		s.baseURL = u
	}
}

// WithCategories sets the queries issued per fetch.
func WithCategories(categories []string) NaverOption {
	return func(s *NaverSource) {
		s.categories = categories
	}
}

// WithDisplay sets the number of items requested per query, capped at 100.
func WithDisplay(n int) NaverOption {
	return func(s *NaverSource) {
		s.display = min(n, maxNaverDisplay)
	}
}

// WithNaverHTTPClient overrides the default HTTP client.
func WithNaverHTTPClient(hc *http.Client) NaverOption {
	return func(s *NaverSource) {
		s.client = hc
	}
}

// WithRequestRate sets the maximum requests per second across queries.
func WithRequestRate(perSecond float64) NaverOption {
	return func(s *NaverSource) {
		s.perSecond = perSecond
	}
}

// WithDailyLimit sets the daily call quota. Zero disables the quota.
func WithDailyLimit(n int64) NaverOption {
	return func(s *NaverSource) {
		s.dailyLimit = n
	}
}

// WithNaverNowFunc overrides the time function for testing.
func WithNaverNowFunc(f func() time.Time) NaverOption {
	return func(s *NaverSource) {
		s.nowFunc = f
	}
}

// NewNaverSource creates a Naver Shopping source with the given API credentials.
func NewNaverSource(clientID, clientSecret string, opts ...NaverOption) *NaverSource {
	s := &NaverSource{
		clientID:     clientID,
		clientSecret: clientSecret,
		baseURL:      defaultNaverURL,
		categories:   DefaultCategories,
		display:      defaultNaverDisplay,
		client:       &http.Client{Timeout: 30 * time.Second},
		perSecond:    10,
		dailyLimit:   DefaultNaverDailyLimit,
		nowFunc:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.limiter = NewQuotaLimiter(s.perSecond, 1, s.dailyLimit, WithQuotaNowFunc(s.nowFunc))
	return s
}

// Name implements Source.
func (*NaverSource) Name() string { return "naver" }

// QuotaRemaining returns the API calls left today, or -1 when unlimited.
func (s *NaverSource) QuotaRemaining() int64 { return s.limiter.Remaining() }

type naverResponse struct {
	Items []naverItem `json:"items"`
}

type naverItem struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	LPrice    string `json:"lprice"`
	HPrice    string `json:"hprice"`
	MallName  string `json:"mallName"`
	Category1 string `json:"category1"`
}

// Fetch implements Source. A failing category query is recorded and the
// remaining categories are still searched; the joined query errors are
// returned alongside every candidate found. An exhausted quota or a canceled
// context stops the fetch.
func (s *NaverSource) Fetch(ctx context.Context) ([]Candidate, error) {
	var (
		out  []Candidate
		errs []error
	)
	for _, category := range s.categories {
		if err := s.limiter.Wait(ctx); err != nil {
			return out, errors.Join(append(errs, err)...)
		}

		items, err := s.search(ctx, category)
		if err != nil {
			errs = append(errs, fmt.Errorf("searching %q: %w", category, err))
			continue
		}

		now := s.nowFunc()
		for i := range items {
			out = append(out, items[i].toCandidate(now))
		}
	}
	return out, errors.Join(errs...)
}

func (s *NaverSource) search(ctx context.Context, query string) ([]naverItem, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("display", strconv.Itoa(s.display))
	params.Set("sort", "date")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}
	req.Header.Set("X-Naver-Client-Id", s.clientID)
	req.Header.Set("X-Naver-Client-Secret", s.clientSecret)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing search request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("naver API error (status %d): %s", resp.StatusCode, string(body))
	}

	var parsed naverResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decoding search response: %w", err)
	}
	return parsed.Items, nil
}

func (it *naverItem) toCandidate(now time.Time) Candidate {
	c := Candidate{
		Title:    strings.TrimSpace(htmlTag.ReplaceAllString(it.Title, "")),
		Source:   domain.SourceShop,
		Merchant: it.MallName,
		URL:      it.Link,
		Category: it.Category1,
		PostedAt: now,
	}
	if c.Category == "" {
		c.Category = DefaultCategory
	}

	if p, err := strconv.ParseInt(it.LPrice, 10, 64); err == nil {
		c.PriceCurrent = p
	}
	if p, err := strconv.ParseInt(it.HPrice, 10, 64); err == nil && p > 0 {
		c.PriceOriginal = &p
	}
	return c
}
