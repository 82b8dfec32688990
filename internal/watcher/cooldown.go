package watcher

import (
	"time"
)

// alertTimes 单个监控项两个方向的最近报警时间
type alertTimes struct {
	buy  time.Time
	sell time.Time
}

// CooldownTracker 按监控项和方向跟踪最近报警时间
// 冷却门控的是报警的产生，与通知投递是否成功无关。
// 只由当前检查周期所在的 goroutine 读写，无需加锁
type CooldownTracker struct {
	alerts map[string]*alertTimes
}

// NewCooldownTracker 创建冷却跟踪器
func NewCooldownTracker() *CooldownTracker {
	return &CooldownTracker{
		alerts: make(map[string]*alertTimes),
	}
}

// Allowed 判断此刻是否允许再次报警
// 从未报过警的监控项总是允许
func (t *CooldownTracker) Allowed(key string, direction Direction, now time.Time, cooldown time.Duration) bool {
	entry, exists := t.alerts[key]
	if !exists {
		return true
	}

	last := entry.buy
	if direction == DirectionSell {
		last = entry.sell
	}

	if last.IsZero() {
		return true
	}

	return now.Sub(last) >= cooldown
}

// Record 记录一次报警时间，无条件覆盖
func (t *CooldownTracker) Record(key string, direction Direction, now time.Time) {
	entry, exists := t.alerts[key]
	if !exists {
		entry = &alertTimes{}
		t.alerts[key] = entry
	}

	if direction == DirectionSell {
		entry.sell = now
	} else {
		entry.buy = now
	}
}
