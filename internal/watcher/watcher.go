package watcher

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"cs2-case-alerts/internal/notifiers"
	"cs2-case-alerts/internal/steam"
	"cs2-case-alerts/internal/store"
)

// New 创建监控器，初始状态为运行中
func New(st Store, market PriceSource, notifier notifiers.NotificationManager) *Watcher {
	return &Watcher{
		store:     st,
		market:    market,
		notifier:  notifier,
		evaluator: NewEvaluator(),
		running:   true,
		reloadCh:  make(chan struct{}, 1),
		stats:     newStatistics(),
	}
}

// AddListener 注册展示层订阅者
func (w *Watcher) AddListener(l Listener) {
	if l == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.listeners = append(w.listeners, l)
}

// Start 启动调度循环
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return fmt.Errorf("watcher already started")
	}
	w.started = true

	loopCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.mu.Unlock()

	// 第一轮的截止时间在返回前就已确定
	initial := w.armNext()

	w.wg.Add(1)
	go w.loop(loopCtx, initial)

	return nil
}

// Stop 停止调度循环并等待退出
// 不会中断正在执行的检查周期，周期总是完整跑完
func (w *Watcher) Stop() error {
	w.mu.Lock()
	cancel := w.cancel
	w.started = false
	w.cancel = nil
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	w.wg.Wait()
	return nil
}

// Pause 暂停检查
// 不取消进行中的周期，只阻止下一次定时触发开始新工作；
// 倒计时仍然继续，Resume 后沿用当前节奏
func (w *Watcher) Pause() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.running = false
}

// Resume 恢复检查
func (w *Watcher) Resume() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.running = true
}

// IsRunning 是否处于运行状态
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// Reload 重新读取设置并以新的完整间隔重新定时，运行状态不变
func (w *Watcher) Reload() {
	select {
	case w.reloadCh <- struct{}{}:
	default: // 已有待处理的重载信号
	}
}

// TimeUntilNextCheck 距离下一次检查的时间，最小为零
func (w *Watcher) TimeUntilNextCheck() time.Duration {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.nextCheck.IsZero() {
		return 0
	}
	if remaining := time.Until(w.nextCheck); remaining > 0 {
		return remaining
	}
	return 0
}

// loop 调度循环
// 定时器触发时若处于暂停状态则跳过本轮工作但仍然重新定时；
// 每轮结束后用当时的设置间隔安排下一轮，设置变更下一轮生效
func (w *Watcher) loop(ctx context.Context, initial time.Duration) {
	defer w.wg.Done()

	timer := time.NewTimer(initial)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-w.reloadCh:
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(w.armNext())

		case <-timer.C:
			if w.IsRunning() {
				if err := w.runTick(ctx); err != nil && ctx.Err() == nil {
					log.Printf("❌ 本轮检查失败，下一轮重试: %v", err)
					w.stats.AddError(err.Error())
				}
			}
			timer.Reset(w.armNext())
		}
	}
}

// armNext 按当前设置计算下一次检查的间隔并记录截止时间
func (w *Watcher) armNext() time.Duration {
	interval := time.Duration(w.store.GetSettings().CheckEverySeconds) * time.Second

	w.mu.Lock()
	w.nextCheck = time.Now().Add(interval)
	w.mu.Unlock()

	return interval
}

// RunSingleCheck 立刻执行一次完整检查，用于单次运行模式
func (w *Watcher) RunSingleCheck(ctx context.Context) error {
	return w.runTick(ctx)
}

// runTick 执行一轮检查：重读设置与监控列表，逐项串行处理
// 单个监控项的任何失败只记录日志并继续下一项
func (w *Watcher) runTick(ctx context.Context) error {
	settings := w.store.GetSettings()
	cooldown := time.Duration(settings.AlertCooldownMinutes) * time.Minute

	watches, err := w.store.GetWatches()
	if err != nil {
		return fmt.Errorf("failed to load watches: %w", err)
	}

	w.stats.IncrementTicksRun()

	for i := range watches {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		w.checkWatch(ctx, &watches[i], settings, cooldown)
	}

	return nil
}

// checkWatch 处理单个监控项
func (w *Watcher) checkWatch(ctx context.Context, watch *store.Watch, settings *store.Settings, cooldown time.Duration) {
	if watch.MarketHashName == "" {
		// 名称缺失：不请求，也不建立任何状态
		return
	}

	w.stats.UpdateItemStat(watch.Key(), watch.MarketHashName)

	overview, err := w.market.PriceOverview(ctx, watch.AppID, watch.MarketHashName, int(settings.Currency))
	if err != nil {
		log.Printf("⚠️ [%s] 获取价格失败: %v", watch.MarketHashName, err)
		w.emitLog(watch.ID, fmt.Sprintf("[warn] fetch failed: %v", err))
		w.stats.IncrementFetchFailures()
		return
	}

	priceText := overview.BestPriceText()
	price, ok := steam.ParsePrice(priceText)
	if !ok {
		log.Printf("⚠️ [%s] 无法解析价格: %q", watch.MarketHashName, priceText)
		w.emitLog(watch.ID, fmt.Sprintf("[warn] cannot parse price: %s", priceText))
		w.stats.IncrementFetchFailures()
		return
	}

	w.stats.IncrementItemsChecked()

	currency := settings.Currency
	net := price.Mul(decimal.NewFromFloat(1 - settings.FeeRate))

	w.emitLog(watch.ID, fmt.Sprintf("%s: %s (net≈ %s) | buy≤%s sell≥%s",
		watch.MarketHashName,
		currency.Format(price), currency.Format(net),
		currency.Format(watch.BuyBelowOrEqual), currency.Format(watch.SellAtOrAbove)))

	events := w.evaluator.Evaluate(watch, price, time.Now(), cooldown)
	for i := range events {
		w.dispatchAlert(&events[i], net, currency)
	}
}

// dispatchAlert 把报警事件广播到所有通知器
// 通知投递失败只记录日志：报警在评估时即已成立，冷却不回退
func (w *Watcher) dispatchAlert(event *AlertEvent, net decimal.Decimal, currency store.Currency) {
	watch := event.Watch

	var title, message string
	var notifType notifiers.NotificationType

	switch event.Direction {
	case DirectionSell:
		notifType = notifiers.TypeSellAlert
		title = "SELL: " + watch.MarketHashName
		message = fmt.Sprintf("Now %s (≥ %s) • net≈ %s",
			currency.Format(event.Price), currency.Format(event.Threshold), currency.Format(net))
	default:
		notifType = notifiers.TypeBuyAlert
		title = "BUY: " + watch.MarketHashName
		message = fmt.Sprintf("Now %s (≤ %s)",
			currency.Format(event.Price), currency.Format(event.Threshold))
	}

	log.Printf("🚨 [%s] %s", event.Direction, title)
	w.stats.UpdateAlertStat(watch.Key(), title)

	notification := &notifiers.Notification{
		ID:         uuid.NewString(),
		Type:       notifType,
		Level:      notifiers.LevelInfo,
		WatchID:    watch.ID,
		Item:       watch.MarketHashName,
		Title:      title,
		Message:    message,
		ListingURL: steam.ListingURL(watch.AppID, watch.MarketHashName),
		Timestamp:  time.Now(),
	}

	if err := w.notifier.Send(notification); err != nil {
		log.Printf("⚠️ 通知发送失败: %v", err)
		w.stats.AddError(err.Error())
	} else {
		w.stats.IncrementNotificationsSent()
	}

	w.emitLog(watch.ID, fmt.Sprintf("🔔 %s — %s", title, message))
}

// emitLog 把日志行推送给所有订阅者
func (w *Watcher) emitLog(watchID, message string) {
	w.mu.Lock()
	listeners := w.listeners
	w.mu.Unlock()

	entry := WatchLog{WatchID: watchID, Message: message}
	for _, l := range listeners {
		l.OnLog(entry)
	}
}
