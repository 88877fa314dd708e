// Package main implements a mock deal source server for local development.
// It serves canned Naver Shopping search results and a community hot-deal
// RSS feed from fixtures so ingestion can run without real API credentials.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultDisplay = 10
	maxDisplay     = 100
)

type shopResponse struct {
	LastBuildDate string            `json:"lastBuildDate"`
	Total         int               `json:"total"`
	Start         int               `json:"start"`
	Display       int               `json:"display"`
	Items         []json.RawMessage `json:"items"`
}

type shopItem struct {
	Title     string `json:"title"`
	Category1 string `json:"category1"`
}

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	shopFile := flag.String("fixture", "tools/mock-server/testdata/shop_response.json", "path to shopping search fixture")
	feedFile := flag.String("feed", "tools/mock-server/testdata/hotdeal_feed.xml", "path to RSS feed fixture")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	shop, err := loadFixture(*shopFile)
	if err != nil {
		logger.Error("failed to load fixture", "path", *shopFile, "error", err)
		os.Exit(1)
	}
	feed, err := os.ReadFile(*feedFile) //nolint:gosec // fixture path from trusted CLI flag
	if err != nil {
		logger.Error("failed to load feed", "path", *feedFile, "error", err)
		os.Exit(1)
	}
	logger.Info("loaded fixtures", "items", len(shop.Items), "feed_bytes", len(feed))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/search/shop.json", searchHandler(logger, shop))
	mux.HandleFunc("GET /rss/hotdeal", feedHandler(feed))

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock deal source server", "addr", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func loadFixture(path string) (*shopResponse, error) {
	data, err := os.ReadFile(path) //nolint:gosec // fixture path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	var resp shopResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	return &resp, nil
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path, "query", r.URL.RawQuery)
		next.ServeHTTP(w, r)
	})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	json.NewEncoder(w).Encode(map[string]string{
		"errorCode":    code,
		"errorMessage": message,
	})
}

func searchHandler(logger *slog.Logger, fixture *shopResponse) http.HandlerFunc {
	type indexedItem struct {
		raw      json.RawMessage
		title    string
		category string
	}
	items := make([]indexedItem, 0, len(fixture.Items))
	for _, raw := range fixture.Items {
		var s shopItem
		//nolint:errcheck,gosec // fixture data is trusted; title extraction is best-effort
		json.Unmarshal(raw, &s)
		items = append(items, indexedItem{
			raw:      raw,
			title:    strings.ToLower(s.Title),
			category: s.Category1,
		})
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Naver-Client-Id") == "" || r.Header.Get("X-Naver-Client-Secret") == "" {
			logger.Warn("search request missing client credentials")
			writeError(w, http.StatusUnauthorized, "024", "Authentication failed")
			return
		}

		q := strings.ToLower(r.URL.Query().Get("query"))
		display := defaultDisplay
		if v, err := strconv.Atoi(r.URL.Query().Get("display")); err == nil && v > 0 {
			display = min(v, maxDisplay)
		}
		start := 1
		if v, err := strconv.Atoi(r.URL.Query().Get("start")); err == nil && v > 0 {
			start = v
		}

		// A query matches on title substring or exact category.
		var matched []json.RawMessage
		for _, item := range items {
			if q == "" || strings.Contains(item.title, q) || strings.EqualFold(item.category, q) {
				matched = append(matched, item.raw)
			}
		}
		total := len(matched)

		offset := start - 1
		if offset >= len(matched) {
			matched = nil
		} else {
			matched = matched[offset:min(offset+display, len(matched))]
		}
		if matched == nil {
			matched = []json.RawMessage{}
		}

		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
		json.NewEncoder(w).Encode(shopResponse{
			LastBuildDate: time.Now().Format(time.RFC1123Z),
			Total:         total,
			Start:         start,
			Display:       len(matched),
			Items:         matched,
		})
		logger.Info("search", "query", q, "matched", total, "returned", len(matched), "start", start)
	}
}

func feedHandler(feed []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
		//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
		w.Write(feed)
	}
}
