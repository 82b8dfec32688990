package watcher

import (
	"time"

	"github.com/shopspring/decimal"

	"cs2-case-alerts/internal/store"
)

// Evaluator 阈值评估器
// 买入与卖出两个方向独立判断、独立冷却，
// 两个阈值可以重叠或倒挂，同一周期可能同时触发两个方向
type Evaluator struct {
	cooldowns *CooldownTracker
}

// NewEvaluator 创建评估器
func NewEvaluator() *Evaluator {
	return &Evaluator{
		cooldowns: NewCooldownTracker(),
	}
}

// Evaluate 用当前价格评估监控项，返回触发的报警事件
// 比较使用原始市场价格，扣除手续费的净价只用于展示。
// 阈值比较是闭区间：价格等于阈值也会触发。
// 阈值未设置（非正数）时该方向不参与判断：
// decimal 的零值无法与"填了 0"区分，而市场价格恒为正，
// 把零阈值当作未设置可以避免缺失的卖出阈值每一轮都触发卖出报警
func (e *Evaluator) Evaluate(watch *store.Watch, price decimal.Decimal, now time.Time, cooldown time.Duration) []AlertEvent {
	var events []AlertEvent
	key := watch.Key()

	if watch.BuyBelowOrEqual.IsPositive() &&
		price.Cmp(watch.BuyBelowOrEqual) <= 0 && e.cooldowns.Allowed(key, DirectionBuy, now, cooldown) {
		events = append(events, AlertEvent{
			Direction: DirectionBuy,
			Watch:     watch,
			Price:     price,
			Threshold: watch.BuyBelowOrEqual,
		})
		e.cooldowns.Record(key, DirectionBuy, now)
	}

	if watch.SellAtOrAbove.IsPositive() &&
		price.Cmp(watch.SellAtOrAbove) >= 0 && e.cooldowns.Allowed(key, DirectionSell, now, cooldown) {
		events = append(events, AlertEvent{
			Direction: DirectionSell,
			Watch:     watch,
			Price:     price,
			Threshold: watch.SellAtOrAbove,
		})
		e.cooldowns.Record(key, DirectionSell, now)
	}

	return events
}
