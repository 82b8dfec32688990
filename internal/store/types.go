package store

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Currency 显示货币
type Currency int

const (
	CurrencyUSD Currency = 1 // 美元
	CurrencyGBP Currency = 2 // 英镑
	CurrencyEUR Currency = 3 // 欧元
)

// Symbol 返回货币符号
func (c Currency) Symbol() string {
	switch c {
	case CurrencyUSD:
		return "$"
	case CurrencyGBP:
		return "£"
	case CurrencyEUR:
		return "€"
	default:
		return ""
	}
}

// Format 按两位小数格式化价格，带货币符号
func (c Currency) Format(v decimal.Decimal) string {
	return c.Symbol() + v.StringFixed(2)
}

// Settings 监控设置，由外部界面修改，每个监控周期重新读取
type Settings struct {
	Currency             Currency `json:"currency"`             // 显示货币（1=$ 2=£ 3=€）
	CheckEverySeconds    int      `json:"checkEverySeconds"`    // 轮询间隔（秒）
	AlertCooldownMinutes int      `json:"alertCooldownMinutes"` // 同方向报警冷却（分钟）
	FeeRate              float64  `json:"feeRate"`              // 市场手续费率，仅用于净价显示
	DiscordWebhook       string   `json:"discordWebhook"`       // Discord Webhook 地址，为空则禁用
}

// Watch 单个监控项
type Watch struct {
	ID              string          `json:"id"`                 // 稳定唯一标识，由 AddWatch 生成
	AppID           int             `json:"appid"`              // Steam 应用 ID
	MarketHashName  string          `json:"market_hash_name"`   // 市场物品名称
	BuyBelowOrEqual decimal.Decimal `json:"buyBelowOrEqual"`    // 价格 <= 此值时触发买入报警
	SellAtOrAbove   decimal.Decimal `json:"sellAtOrAbove"`      // 价格 >= 此值时触发卖出报警
	ImageURL        string          `json:"imageUrl,omitempty"` // 展示用图片地址，与报警逻辑无关
}

// Key 返回冷却状态使用的稳定键
// 优先使用持久化 ID，避免同名物品在同一应用下冲突
func (w *Watch) Key() string {
	if w.ID != "" {
		return w.ID
	}
	return fmt.Sprintf("%d:%s", w.AppID, w.MarketHashName)
}
