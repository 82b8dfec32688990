package notifiers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"cs2-case-alerts/internal/config"
)

// DiscordNotifier Discord Webhook 通知器
// Webhook 地址由提供函数在每次发送时读取，设置变更无需重启即可生效；
// 地址为空表示禁用
type DiscordNotifier struct {
	webhookURL func() string
	httpClient *http.Client
}

// discordEmbed Discord 消息嵌入块
type discordEmbed struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Timestamp   string `json:"timestamp"`
}

// discordPayload Webhook 请求体
type discordPayload struct {
	Embeds []discordEmbed `json:"embeds"`
}

// NewDiscordNotifier 创建 Discord 通知器
func NewDiscordNotifier(cfg *config.DiscordConfig, webhookURL func() string) *DiscordNotifier {
	if webhookURL == nil {
		webhookURL = func() string { return "" }
	}
	return &DiscordNotifier{
		webhookURL: webhookURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Send 发送 Webhook 通知
func (d *DiscordNotifier) Send(notification *Notification) error {
	url := d.webhookURL()
	if url == "" {
		return nil
	}

	description := notification.Message
	if notification.ListingURL != "" {
		description += "\nURL: " + notification.ListingURL
	}

	payload := discordPayload{
		Embeds: []discordEmbed{
			{
				Title:       notification.Title,
				Description: description,
				Timestamp:   notification.Timestamp.UTC().Format(time.RFC3339),
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	resp, err := d.httpClient.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}

// Close 关闭通知器
func (d *DiscordNotifier) Close() error {
	return nil
}

// IsEnabled 是否启用
func (d *DiscordNotifier) IsEnabled() bool {
	return d.webhookURL() != ""
}

// Name 通知器名称
func (d *DiscordNotifier) Name() string {
	return "discord"
}
