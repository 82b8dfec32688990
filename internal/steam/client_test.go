package steam

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cs2-case-alerts/internal/config"
)

// testClientConfig 测试用配置，不带随机延迟
func testClientConfig(baseURL string) *config.SteamConfig {
	return &config.SteamConfig{
		BaseURL:        baseURL,
		UserAgent:      "cs2-case-alerts (test)",
		RequestTimeout: 2 * time.Second,
	}
}

func TestPriceOverview(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/market/priceoverview/", r.URL.Path)
		assert.Equal(t, "730", r.URL.Query().Get("appid"))
		assert.Equal(t, "Fracture Case", r.URL.Query().Get("market_hash_name"))
		assert.Equal(t, "2", r.URL.Query().Get("currency"))
		assert.Equal(t, "cs2-case-alerts (test)", r.Header.Get("User-Agent"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"lowest_price":"£0.24","median_price":"£0.26","volume":"12,345"}`))
	}))
	defer server.Close()

	client := NewClient(testClientConfig(server.URL))

	overview, err := client.PriceOverview(context.Background(), 730, "Fracture Case", 2)
	require.NoError(t, err)
	assert.True(t, overview.Success)
	assert.Equal(t, "£0.24", overview.LowestPrice)
	assert.Equal(t, "£0.26", overview.MedianPrice)
	assert.Equal(t, "£0.24", overview.BestPriceText())
}

func TestPriceOverviewFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		errMsg  string
	}{
		{
			name: "success false",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"success":false}`))
			},
			errMsg: "success=false",
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			errMsg: "unexpected status code: 500",
		},
		{
			name: "rate limited",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			},
			errMsg: "unexpected status code: 429",
		},
		{
			name: "malformed json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"success":tru`))
			},
			errMsg: "failed to decode response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client := NewClient(testClientConfig(server.URL))

			_, err := client.PriceOverview(context.Background(), 730, "Fracture Case", 2)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestPriceOverviewTransportError(t *testing.T) {
	// 指向已关闭的服务器
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(testClientConfig(url))

	_, err := client.PriceOverview(context.Background(), 730, "Fracture Case", 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request failed")
}

func TestJitterWaitCancellation(t *testing.T) {
	client := NewClient(&config.SteamConfig{
		BaseURL:        "http://127.0.0.1:1",
		RequestTimeout: time.Second,
		JitterMin:      time.Minute,
		JitterMax:      2 * time.Minute,
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	_, err := client.PriceOverview(ctx, 730, "Fracture Case", 2)
	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Second, "cancelled context should not wait out the jitter")
}

func TestListingURL(t *testing.T) {
	tests := []struct {
		name string
		item string
		want string
	}{
		{
			name: "spaces",
			item: "Fracture Case",
			want: "https://steamcommunity.com/market/listings/730/Fracture%20Case",
		},
		{
			name: "ampersand escaped",
			item: "Dreams & Nightmares Case",
			want: "https://steamcommunity.com/market/listings/730/Dreams%20%26%20Nightmares%20Case",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ListingURL(730, tt.item))
		})
	}
}
