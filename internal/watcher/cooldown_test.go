package watcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCooldownNeverAlertedIsAllowed(t *testing.T) {
	tracker := NewCooldownTracker()
	now := time.Now()

	assert.True(t, tracker.Allowed("w1", DirectionBuy, now, 20*time.Minute))
	assert.True(t, tracker.Allowed("w1", DirectionSell, now, 20*time.Minute))
}

func TestCooldownWindow(t *testing.T) {
	tracker := NewCooldownTracker()
	cooldown := 20 * time.Minute
	start := time.Now()

	tracker.Record("w1", DirectionBuy, start)

	// 冷却期内拒绝
	assert.False(t, tracker.Allowed("w1", DirectionBuy, start, cooldown))
	assert.False(t, tracker.Allowed("w1", DirectionBuy, start.Add(19*time.Minute), cooldown))

	// 恰好到期允许（闭区间）
	assert.True(t, tracker.Allowed("w1", DirectionBuy, start.Add(cooldown), cooldown))
	assert.True(t, tracker.Allowed("w1", DirectionBuy, start.Add(cooldown+time.Second), cooldown))
}

func TestCooldownDirectionsIndependent(t *testing.T) {
	tracker := NewCooldownTracker()
	cooldown := 20 * time.Minute
	now := time.Now()

	tracker.Record("w1", DirectionBuy, now)

	// 买入方向在冷却，卖出方向不受影响
	assert.False(t, tracker.Allowed("w1", DirectionBuy, now, cooldown))
	assert.True(t, tracker.Allowed("w1", DirectionSell, now, cooldown))
}

func TestCooldownKeysIndependent(t *testing.T) {
	tracker := NewCooldownTracker()
	cooldown := 20 * time.Minute
	now := time.Now()

	tracker.Record("w1", DirectionBuy, now)

	assert.True(t, tracker.Allowed("w2", DirectionBuy, now, cooldown))
}

func TestCooldownRecordOverwrites(t *testing.T) {
	tracker := NewCooldownTracker()
	cooldown := 20 * time.Minute
	start := time.Now()

	tracker.Record("w1", DirectionBuy, start)
	later := start.Add(25 * time.Minute)
	tracker.Record("w1", DirectionBuy, later)

	// 以最新一次报警时间为准
	assert.False(t, tracker.Allowed("w1", DirectionBuy, later.Add(10*time.Minute), cooldown))
	assert.True(t, tracker.Allowed("w1", DirectionBuy, later.Add(cooldown), cooldown))
}

func TestCooldownZeroDuration(t *testing.T) {
	tracker := NewCooldownTracker()
	now := time.Now()

	tracker.Record("w1", DirectionBuy, now)

	// 冷却为零表示每个周期都可以报警
	assert.True(t, tracker.Allowed("w1", DirectionBuy, now, 0))
}
