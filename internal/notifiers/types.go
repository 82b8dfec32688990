package notifiers

import (
	"time"
)

// NotificationLevel 通知级别
type NotificationLevel int

const (
	LevelInfo NotificationLevel = iota
	LevelWarning
	LevelError
	LevelCritical
)

func (l NotificationLevel) String() string {
	switch l {
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARNING"
	case LevelError:
		return "ERROR"
	case LevelCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// NotificationType 通知类型
type NotificationType int

const (
	TypeBuyAlert NotificationType = iota
	TypeSellAlert
	TypeSystemAlert
)

func (t NotificationType) String() string {
	switch t {
	case TypeBuyAlert:
		return "BUY_ALERT"
	case TypeSellAlert:
		return "SELL_ALERT"
	case TypeSystemAlert:
		return "SYSTEM_ALERT"
	default:
		return "UNKNOWN"
	}
}

// Notification 通知消息结构
type Notification struct {
	ID         string            `json:"id"`          // 通知唯一标识
	Type       NotificationType  `json:"type"`        // 通知类型
	Level      NotificationLevel `json:"level"`       // 通知级别
	WatchID    string            `json:"watch_id"`    // 关联的监控项 ID
	Item       string            `json:"item"`        // 物品名称
	Title      string            `json:"title"`       // 通知标题
	Message    string            `json:"message"`     // 通知内容
	ListingURL string            `json:"listing_url"` // 市场详情页地址
	Timestamp  time.Time         `json:"timestamp"`   // 时间戳
}

// Notifier 通知器接口
type Notifier interface {
	// Send 发送通知
	Send(notification *Notification) error

	// Close 关闭通知器
	Close() error

	// IsEnabled 是否启用
	IsEnabled() bool

	// Name 通知器名称
	Name() string
}

// NotificationManager 通知管理器接口
type NotificationManager interface {
	// AddNotifier 添加通知器
	AddNotifier(notifier Notifier) error

	// RemoveNotifier 移除通知器
	RemoveNotifier(name string) error

	// Send 发送通知到所有启用的通知器
	Send(notification *Notification) error

	// SendTo 发送通知到指定通知器
	SendTo(notifierName string, notification *Notification) error

	// Close 关闭所有通知器
	Close() error

	// GetNotifiers 获取所有通知器
	GetNotifiers() []Notifier
}

// NotificationFilter 通知过滤器
type NotificationFilter struct {
	MinLevel NotificationLevel  // 最小级别
	Types    []NotificationType // 允许的类型，为空表示不限
	Items    []string           // 允许的物品，为空表示不限
}

// ShouldNotify 判断是否应该发送通知
func (f *NotificationFilter) ShouldNotify(notification *Notification) bool {
	if notification.Level < f.MinLevel {
		return false
	}

	if len(f.Types) > 0 {
		matched := false
		for _, t := range f.Types {
			if notification.Type == t {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	if len(f.Items) > 0 {
		matched := false
		for _, item := range f.Items {
			if notification.Item == item {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	return true
}
