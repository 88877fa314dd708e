package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/donaldgifford/dealsense/internal/metrics"
	"github.com/donaldgifford/dealsense/pkg/normalize"
)

const (
	colorGreen  = 0x2ECC71 // match 0.9+
	colorYellow = 0xF1C40F // match 0.8-0.9
	colorOrange = 0xE67E22 // below 0.8

	maxEmbeds     = 10
	maxEmbedTitle = 256
)

// DiscordNotifier implements Notifier via Discord webhook.
type DiscordNotifier struct {
	webhookURL string
	client     *http.Client
}

// NewDiscordNotifier creates a new DiscordNotifier.
func NewDiscordNotifier(webhookURL string, opts ...DiscordOption) *DiscordNotifier {
	d := &DiscordNotifier{
		webhookURL: webhookURL,
		client:     http.DefaultClient,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DiscordOption configures a DiscordNotifier.
type DiscordOption func(*DiscordNotifier)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) DiscordOption {
	return func(d *DiscordNotifier) {
		d.client = c
	}
}

type discordWebhookPayload struct {
	Embeds []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title       string              `json:"title"`
	URL         string              `json:"url,omitempty"`
	Color       int                 `json:"color"`
	Description string              `json:"description,omitempty"`
	Fields      []discordEmbedField `json:"fields,omitempty"`
	Footer      *discordFooter      `json:"footer,omitempty"`
}

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type discordFooter struct {
	Text string `json:"text"`
}

// SendAlert sends a single alert as a Discord embed.
func (d *DiscordNotifier) SendAlert(ctx context.Context, alert *AlertPayload) error {
	return d.post(ctx, discordWebhookPayload{
		Embeds: []discordEmbed{buildEmbed(alert)},
	})
}

// SendBatchAlert sends multiple alerts for one profile as a single Discord
// message.
func (d *DiscordNotifier) SendBatchAlert(
	ctx context.Context,
	alerts []AlertPayload,
	profileID string,
) error {
	limit := min(len(alerts), maxEmbeds)
	embeds := make([]discordEmbed, 0, limit+1)
	for i := range limit {
		embeds = append(embeds, buildEmbed(&alerts[i]))
	}

	if len(alerts) > maxEmbeds {
		embeds = append(embeds, discordEmbed{
			Title:       fmt.Sprintf("... and %d more deals for %s", len(alerts)-maxEmbeds, profileID),
			Color:       colorYellow,
			Description: "Query the profile's deals for the full list.",
		})
	}

	return d.post(ctx, discordWebhookPayload{Embeds: embeds})
}

func buildEmbed(alert *AlertPayload) discordEmbed {
	discount := "-"
	if alert.DiscountRate != nil {
		discount = fmt.Sprintf("%d%%", *alert.DiscountRate)
	}

	embed := discordEmbed{
		Title: normalize.Truncate("Deal Alert: "+alert.DealTitle, maxEmbedTitle),
		URL:   alert.URL,
		Color: matchColor(alert.MatchScore),
		Fields: []discordEmbedField{
			{Name: "Match", Value: fmt.Sprintf("%.0f%%", alert.MatchScore*100), Inline: true},
			{Name: "Trust", Value: fmt.Sprintf("%.2f", alert.TrustScore), Inline: true},
			{Name: "Price", Value: alert.Price, Inline: true},
			{Name: "Discount", Value: discount, Inline: true},
			{Name: "Merchant", Value: alert.Merchant, Inline: true},
		},
	}

	if len(alert.Reasons) > 0 {
		embed.Description = strings.Join(alert.Reasons, "\n")
	}
	if alert.RiskNote != nil {
		embed.Fields = append(embed.Fields, discordEmbedField{Name: "Risk", Value: *alert.RiskNote})
	}
	if alert.ProfileSummary != "" {
		embed.Footer = &discordFooter{Text: alert.ProfileSummary}
	}

	return embed
}

func matchColor(match float64) int {
	switch {
	case match >= 0.9:
		return colorGreen
	case match >= 0.8:
		return colorYellow
	default:
		return colorOrange
	}
}

func (d *DiscordNotifier) post(ctx context.Context, payload discordWebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling discord payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating discord request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := d.client.Do(req)
	metrics.NotificationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return fmt.Errorf("sending discord webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("discord rate limited (429)")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return fmt.Errorf("discord returned %d (body unreadable)", resp.StatusCode)
		}
		return fmt.Errorf("discord returned %d: %s", resp.StatusCode, respBody)
	}

	return nil
}
