package notifiers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cs2-case-alerts/internal/config"
)

func discordTestConfig() *config.DiscordConfig {
	return &config.DiscordConfig{Timeout: 2 * time.Second}
}

func TestDiscordSend(t *testing.T) {
	var mu sync.Mutex
	var received discordPayload

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		mu.Lock()
		defer mu.Unlock()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	d := NewDiscordNotifier(discordTestConfig(), func() string { return server.URL })

	ts := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	notification := &Notification{
		Type:       TypeBuyAlert,
		Title:      "BUY: Fracture Case",
		Message:    "Now £0.22 (≤ £0.24)",
		ListingURL: "https://steamcommunity.com/market/listings/730/Fracture%20Case",
		Timestamp:  ts,
	}

	require.NoError(t, d.Send(notification))

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, received.Embeds, 1)
	assert.Equal(t, "BUY: Fracture Case", received.Embeds[0].Title)
	assert.Equal(t, "Now £0.22 (≤ £0.24)\nURL: https://steamcommunity.com/market/listings/730/Fracture%20Case", received.Embeds[0].Description)
	assert.Equal(t, "2026-08-30T12:00:00Z", received.Embeds[0].Timestamp)
}

func TestDiscordSendServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	d := NewDiscordNotifier(discordTestConfig(), func() string { return server.URL })

	err := d.Send(&Notification{Title: "t", Message: "m", Timestamp: time.Now()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "webhook returned status 500")
}

func TestDiscordDisabledWhenURLEmpty(t *testing.T) {
	d := NewDiscordNotifier(discordTestConfig(), func() string { return "" })

	assert.False(t, d.IsEnabled())
	// 地址为空时发送是空操作
	assert.NoError(t, d.Send(&Notification{Title: "t", Timestamp: time.Now()}))
}

func TestDiscordURLProviderFollowsSettings(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	// 提供函数返回值变化时无需重建通知器
	url := ""
	d := NewDiscordNotifier(discordTestConfig(), func() string { return url })

	assert.False(t, d.IsEnabled())

	url = server.URL
	assert.True(t, d.IsEnabled())
	assert.NoError(t, d.Send(&Notification{Title: "t", Message: "m", Timestamp: time.Now()}))
}

func TestDesktopNotifierDisabled(t *testing.T) {
	d := NewDesktopNotifier(&config.DesktopConfig{Enabled: false})

	assert.False(t, d.IsEnabled())
	assert.Equal(t, "desktop", d.Name())
	// 禁用时发送是空操作，不触碰系统通知
	assert.NoError(t, d.Send(&Notification{Title: "t", Message: "m"}))
	assert.NoError(t, d.Close())
}
