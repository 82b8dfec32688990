package steam

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"cs2-case-alerts/internal/config"
)

// communityBaseURL 物品详情页的固定地址
const communityBaseURL = "https://steamcommunity.com"

// Client Steam 社区市场客户端
// 同一周期内的连续请求之间插入随机延迟，作为对上游的限流礼让
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	jitterMin  time.Duration
	jitterMax  time.Duration
}

// NewClient 使用配置创建市场客户端
func NewClient(cfg *config.SteamConfig) *Client {
	return &Client{
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		jitterMin: cfg.JitterMin,
		jitterMax: cfg.JitterMax,
	}
}

// PriceOverview 查询单个物品的价格概览
// 传输错误、非 2xx 状态、响应格式错误、success=false 都作为普通错误返回，
// 调用方记录日志后跳过该物品即可
func (c *Client) PriceOverview(ctx context.Context, appID int, marketHashName string, currency int) (*PriceOverview, error) {
	if err := c.jitterWait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("appid", strconv.Itoa(appID))
	params.Set("market_hash_name", marketHashName)
	params.Set("currency", strconv.Itoa(currency))

	reqURL := fmt.Sprintf("%s/market/priceoverview/?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var overview PriceOverview
	if err := json.NewDecoder(resp.Body).Decode(&overview); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if !overview.Success {
		return nil, fmt.Errorf("market returned success=false for %q", marketHashName)
	}

	return &overview, nil
}

// jitterWait 在请求前等待一段随机时间
func (c *Client) jitterWait(ctx context.Context) error {
	if c.jitterMax <= 0 {
		return nil
	}

	delay := c.jitterMin
	if span := c.jitterMax - c.jitterMin; span > 0 {
		delay += time.Duration(rand.Int63n(int64(span)))
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// ListingURL 返回物品在社区市场的详情页地址
// PathEscape 会保留路径段里的 &，这里也转义掉
func ListingURL(appID int, marketHashName string) string {
	escaped := strings.ReplaceAll(url.PathEscape(marketHashName), "&", "%26")
	return fmt.Sprintf("%s/market/listings/%d/%s", communityBaseURL, appID, escaped)
}
