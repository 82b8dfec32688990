package notifiers

import (
	"github.com/gen2brain/beeep"

	"cs2-case-alerts/internal/config"
)

// DesktopNotifier 桌面通知器，尽力而为
type DesktopNotifier struct {
	enabled bool
}

// NewDesktopNotifier 创建桌面通知器
func NewDesktopNotifier(cfg *config.DesktopConfig) *DesktopNotifier {
	return &DesktopNotifier{
		enabled: cfg.Enabled,
	}
}

// Send 弹出系统通知
func (d *DesktopNotifier) Send(notification *Notification) error {
	if !d.enabled {
		return nil
	}
	return beeep.Notify(notification.Title, notification.Message, "")
}

// Close 关闭通知器
func (d *DesktopNotifier) Close() error {
	return nil
}

// IsEnabled 是否启用
func (d *DesktopNotifier) IsEnabled() bool {
	return d.enabled
}

// Name 通知器名称
func (d *DesktopNotifier) Name() string {
	return "desktop"
}
