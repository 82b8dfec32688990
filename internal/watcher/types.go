package watcher

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"cs2-case-alerts/internal/notifiers"
	"cs2-case-alerts/internal/steam"
	"cs2-case-alerts/internal/store"
)

// Direction 报警方向
type Direction int

const (
	DirectionBuy Direction = iota
	DirectionSell
)

func (d Direction) String() string {
	switch d {
	case DirectionBuy:
		return "BUY"
	case DirectionSell:
		return "SELL"
	default:
		return "UNKNOWN"
	}
}

// AlertEvent 一次触发的报警
type AlertEvent struct {
	Direction Direction       `json:"direction"` // 报警方向
	Watch     *store.Watch    `json:"watch"`     // 触发的监控项
	Price     decimal.Decimal `json:"price"`     // 触发时的市场价格
	Threshold decimal.Decimal `json:"threshold"` // 被越过的阈值
}

// Store 监控器消费的存储接口，设置与监控列表每个周期重新读取
type Store interface {
	GetSettings() *store.Settings
	GetWatches() ([]store.Watch, error)
}

// PriceSource 监控器消费的价格查询接口
type PriceSource interface {
	PriceOverview(ctx context.Context, appID int, marketHashName string, currency int) (*steam.PriceOverview, error)
}

// WatchLog 发给展示层的单条日志
type WatchLog struct {
	WatchID string `json:"watch_id"`
	Message string `json:"message"`
}

// Listener 展示层订阅接口，监控器单向推送，不关心消费方
type Listener interface {
	OnLog(entry WatchLog)
}

// Watcher 市场价格监控器
// 单个调度 goroutine 驱动，检查周期串行执行，互不重叠
type Watcher struct {
	store     Store
	market    PriceSource
	notifier  notifiers.NotificationManager
	evaluator *Evaluator
	listeners []Listener

	mu        sync.Mutex
	running   bool
	started   bool
	nextCheck time.Time
	reloadCh  chan struct{}
	cancel    context.CancelFunc
	wg        sync.WaitGroup

	stats *Statistics
}

// HealthStatus 健康状态
type HealthStatus struct {
	Running     bool          `json:"running"`
	Uptime      time.Duration `json:"uptime"`
	NextCheckIn time.Duration `json:"next_check_in"`
	TicksRun    int64         `json:"ticks_run"`
	AlertsFired int64         `json:"alerts_fired"`
	StartTime   time.Time     `json:"start_time"`
}

// Statistics 统计信息
type Statistics struct {
	mu sync.RWMutex

	StartTime         time.Time            `json:"start_time"`
	TicksRun          int64                `json:"ticks_run"`
	ItemsChecked      int64                `json:"items_checked"`
	FetchFailures     int64                `json:"fetch_failures"`
	AlertsFired       int64                `json:"alerts_fired"`
	NotificationsSent int64                `json:"notifications_sent"`
	LastUpdate        time.Time            `json:"last_update"`
	Errors            []string             `json:"errors"`
	ItemStats         map[string]*ItemStat `json:"item_stats"`
}

// ItemStat 单个监控项的统计
type ItemStat struct {
	Key           string    `json:"key"`
	Name          string    `json:"name"`
	LastCheck     time.Time `json:"last_check"`
	CheckCount    int64     `json:"check_count"`
	AlertCount    int64     `json:"alert_count"`
	LastAlert     string    `json:"last_alert"`
	LastAlertTime time.Time `json:"last_alert_time"`
}

// newStatistics 创建统计实例
func newStatistics() *Statistics {
	return &Statistics{
		StartTime:  time.Now(),
		LastUpdate: time.Now(),
		ItemStats:  make(map[string]*ItemStat),
	}
}
