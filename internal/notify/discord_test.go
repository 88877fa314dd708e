package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/dealsense/internal/metrics"
)

func testAlert(match float64) AlertPayload {
	discount := 40
	note := "options may vary price"
	return AlertPayload{
		ProfileID:      "p_camping_user",
		ProfileSummary: "Categories: 캠핑 | Keywords: 텐트",
		DealID:         "d_001",
		DealTitle:      "코베아 2인용 텐트",
		URL:            "https://www.coupang.com/vp/products/1",
		Price:          "45,000원",
		DiscountRate:   &discount,
		Merchant:       "캠핑코리아",
		MatchScore:     match,
		TrustScore:     0.85,
		Reasons:        []string{"Matches your interest in 캠핑", "Contains keywords: 텐트"},
		RiskNote:       &note,
	}
}

func TestDiscordNotifier_SendAlert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		alert      AlertPayload
		statusCode int
		wantErr    bool
		errMsg     string
		wantColor  int
	}{
		{
			name:       "valid alert sends embed",
			alert:      testAlert(0.85),
			statusCode: http.StatusNoContent,
			wantColor:  colorYellow,
		},
		{
			name:       "match 0.95 uses green color",
			alert:      testAlert(0.95),
			statusCode: http.StatusNoContent,
			wantColor:  colorGreen,
		},
		{
			name:       "match 0.6 uses orange color",
			alert:      testAlert(0.6),
			statusCode: http.StatusNoContent,
			wantColor:  colorOrange,
		},
		{
			name:       "discord returns 429 rate limited",
			alert:      testAlert(0.85),
			statusCode: http.StatusTooManyRequests,
			wantErr:    true,
			errMsg:     "rate limited",
		},
		{
			name:       "discord returns 400 error",
			alert:      testAlert(0.85),
			statusCode: http.StatusBadRequest,
			wantErr:    true,
			errMsg:     "discord returned 400",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var received discordWebhookPayload

			srv := httptest.NewServer(
				http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
					assert.Equal(t, http.MethodPost, r.Method)
					assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
					w.WriteHeader(tt.statusCode)
				}),
			)
			defer srv.Close()

			d := NewDiscordNotifier(srv.URL)
			err := d.SendAlert(context.Background(), &tt.alert)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}

			require.NoError(t, err)
			require.Len(t, received.Embeds, 1)

			embed := received.Embeds[0]
			assert.Equal(t, tt.wantColor, embed.Color)
			assert.Contains(t, embed.Title, tt.alert.DealTitle)
			assert.Equal(t, tt.alert.URL, embed.URL)
			assert.Contains(t, embed.Description, "Contains keywords: 텐트")
			require.NotNil(t, embed.Footer)
			assert.Equal(t, tt.alert.ProfileSummary, embed.Footer.Text)

			fieldMap := make(map[string]string)
			for _, f := range embed.Fields {
				fieldMap[f.Name] = f.Value
			}
			assert.Equal(t, tt.alert.Price, fieldMap["Price"])
			assert.Equal(t, "40%", fieldMap["Discount"])
			assert.Equal(t, tt.alert.Merchant, fieldMap["Merchant"])
			assert.Equal(t, "options may vary price", fieldMap["Risk"])
		})
	}
}

func TestDiscordNotifier_SendAlert_Minimal(t *testing.T) {
	t.Parallel()

	var received discordWebhookPayload

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	d := NewDiscordNotifier(srv.URL)
	err := d.SendAlert(context.Background(), &AlertPayload{DealTitle: "tent", MatchScore: 0.8})
	require.NoError(t, err)

	require.Len(t, received.Embeds, 1)
	embed := received.Embeds[0]
	assert.Nil(t, embed.Footer)
	assert.Empty(t, embed.Description)
	for _, f := range embed.Fields {
		if f.Name == "Discount" {
			assert.Equal(t, "-", f.Value)
		}
		assert.NotEqual(t, "Risk", f.Name)
	}
}

func TestDiscordNotifier_SendBatchAlert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		count      int
		wantEmbeds int
	}{
		{name: "three alerts", count: 3, wantEmbeds: 3},
		{name: "overflow adds summary embed", count: 12, wantEmbeds: maxEmbeds + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var received discordWebhookPayload
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
				w.WriteHeader(http.StatusNoContent)
			}))
			defer srv.Close()

			alerts := make([]AlertPayload, tt.count)
			for i := range alerts {
				alerts[i] = testAlert(0.8)
			}

			d := NewDiscordNotifier(srv.URL)
			require.NoError(t, d.SendBatchAlert(context.Background(), alerts, "p_camping_user"))
			assert.Len(t, received.Embeds, tt.wantEmbeds)
		})
	}
}

func TestDiscordNotifier_NetworkError(t *testing.T) {
	t.Parallel()

	d := NewDiscordNotifier("http://127.0.0.1:1") // nothing listening
	alert := testAlert(0.85)
	err := d.SendAlert(context.Background(), &alert)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sending discord webhook")
}

func TestDiscordNotifier_InvalidWebhookURL(t *testing.T) {
	t.Parallel()

	d := NewDiscordNotifier("://not-a-valid-url")
	alert := testAlert(0.85)
	err := d.SendAlert(context.Background(), &alert)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating discord request")
}

func TestWithHTTPClient(t *testing.T) {
	t.Parallel()

	custom := &http.Client{}
	d := NewDiscordNotifier("https://example.com", WithHTTPClient(custom))
	assert.Same(t, custom, d.client)
}

func notificationSampleCount() uint64 {
	ch := make(chan prometheus.Metric, 1)
	metrics.NotificationDuration.Collect(ch)
	m := <-ch
	pb := &dto.Metric{}
	_ = m.Write(pb)
	return pb.GetHistogram().GetSampleCount()
}

func TestSendAlert_ObservesNotificationDuration(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	before := notificationSampleCount()

	d := NewDiscordNotifier(srv.URL)
	alert := testAlert(0.9)
	require.NoError(t, d.SendAlert(context.Background(), &alert))

	assert.Greater(t, notificationSampleCount(), before)
}
