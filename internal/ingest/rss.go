package ingest

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/donaldgifford/dealsense/pkg/normalize"
	domain "github.com/donaldgifford/dealsense/pkg/types"
)

const (
	// DefaultFeedURL is the ppomppu community deal board feed.
	DefaultFeedURL = "https://www.ppomppu.co.kr/rss.php?id=ppomppu"

	defaultFeedMerchant = "뽐뿌"
)

var (
	merchantPrefix = regexp.MustCompile(`\[(.*?)\]`)
	bracketPrefix  = regexp.MustCompile(`\[.*?\]\s*`)
	wonPrice       = regexp.MustCompile(`(\d{1,3}(?:,\d{3})*)\s*원`)
)

// RSSSource reads community deal posts from an RSS feed.
type RSSSource struct {
	name    string
	feedURL string
	parser  *gofeed.Parser
	nowFunc func() time.Time
}

// RSSOption configures the RSSSource.
type RSSOption func(*RSSSource)

// WithFeedURL overrides the default feed URL.
func WithFeedURL(u string) RSSOption {
	return func(s *RSSSource) {
		s.feedURL = u
	}
}

// WithSourceName overrides the name reported for metrics and logs.
func WithSourceName(name string) RSSOption {
	return func(s *RSSSource) {
		s.name = name
	}
}

// WithRSSHTTPClient overrides the HTTP client used to download the feed.
func WithRSSHTTPClient(hc *http.Client) RSSOption {
	return func(s *RSSSource) {
		s.parser.Client = hc
	}
}

// WithRSSNowFunc overrides the time function for testing.
func WithRSSNowFunc(f func() time.Time) RSSOption {
	return func(s *RSSSource) {
		s.nowFunc = f
	}
}

// NewRSSSource creates a feed source.
func NewRSSSource(opts ...RSSOption) *RSSSource {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: 30 * time.Second}

	s := &RSSSource{
		name:    "rss",
		feedURL: DefaultFeedURL,
		parser:  parser,
		nowFunc: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name implements Source.
func (s *RSSSource) Name() string { return s.name }

// Fetch implements Source.
func (s *RSSSource) Fetch(ctx context.Context) ([]Candidate, error) {
	feed, err := s.parser.ParseURLWithContext(s.feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parsing feed %s: %w", s.feedURL, err)
	}

	now := s.nowFunc()
	out := make([]Candidate, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		out = append(out, itemToCandidate(item, now))
	}
	return out, nil
}

func itemToCandidate(item *gofeed.Item, now time.Time) Candidate {
	c := Candidate{
		Title:        CleanPostTitle(item.Title),
		PriceCurrent: PostPrice(item.Title),
		Source:       domain.SourceCommunity,
		Merchant:     PostMerchant(item.Title),
		URL:          item.Link,
		Category:     DefaultCategory,
		PostedAt:     now,
	}
	if item.PublishedParsed != nil {
		c.PostedAt = *item.PublishedParsed
	}
	return c
}

// PostMerchant returns the bracketed merchant prefix of a post title, or
// the board name when there is none.
func PostMerchant(title string) string {
	m := merchantPrefix.FindStringSubmatch(title)
	if m == nil || strings.TrimSpace(m[1]) == "" {
		return defaultFeedMerchant
	}
	return strings.TrimSpace(m[1])
}

// PostPrice returns the first "12,345원" amount in a post title, or 0.
func PostPrice(title string) int64 {
	m := wonPrice.FindStringSubmatch(title)
	if m == nil {
		return 0
	}
	p, err := strconv.ParseInt(strings.ReplaceAll(m[1], ",", ""), 10, 64)
	if err != nil {
		return 0
	}
	return p
}

// CleanPostTitle removes the first bracketed tag and collapses whitespace.
func CleanPostTitle(title string) string {
	t := title
	if loc := bracketPrefix.FindStringIndex(t); loc != nil {
		t = t[:loc[0]] + t[loc[1]:]
	}
	t = strings.Join(strings.Fields(t), " ")
	return normalize.Truncate(t, MaxTitleLength)
}
