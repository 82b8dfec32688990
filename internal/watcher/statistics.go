package watcher

import (
	"time"
)

// IncrementTicksRun 增加已运行周期数
func (s *Statistics) IncrementTicksRun() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.TicksRun++
	s.LastUpdate = time.Now()
}

// IncrementItemsChecked 增加已检查物品数
func (s *Statistics) IncrementItemsChecked() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ItemsChecked++
	s.LastUpdate = time.Now()
}

// IncrementFetchFailures 增加获取失败数
func (s *Statistics) IncrementFetchFailures() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.FetchFailures++
	s.LastUpdate = time.Now()
}

// IncrementNotificationsSent 增加发送通知数
func (s *Statistics) IncrementNotificationsSent() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.NotificationsSent++
	s.LastUpdate = time.Now()
}

// UpdateItemStat 记录一次物品检查
func (s *Statistics) UpdateItemStat(key, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stat, exists := s.ItemStats[key]
	if !exists {
		stat = &ItemStat{
			Key:  key,
			Name: name,
		}
		s.ItemStats[key] = stat
	}

	stat.LastCheck = time.Now()
	stat.CheckCount++
	s.LastUpdate = time.Now()
}

// UpdateAlertStat 记录一次报警
func (s *Statistics) UpdateAlertStat(key, alert string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stat, exists := s.ItemStats[key]
	if !exists {
		stat = &ItemStat{
			Key: key,
		}
		s.ItemStats[key] = stat
	}

	stat.AlertCount++
	stat.LastAlert = alert
	stat.LastAlertTime = time.Now()
	s.AlertsFired++
	s.LastUpdate = time.Now()
}

// AddError 添加错误信息
func (s *Statistics) AddError(errorMsg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// 保持最新的10个错误
	s.Errors = append(s.Errors, errorMsg)
	if len(s.Errors) > 10 {
		s.Errors = s.Errors[1:]
	}
	s.LastUpdate = time.Now()
}

// clone 克隆统计信息（线程安全）
func (s *Statistics) clone() *Statistics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cloned := &Statistics{
		StartTime:         s.StartTime,
		TicksRun:          s.TicksRun,
		ItemsChecked:      s.ItemsChecked,
		FetchFailures:     s.FetchFailures,
		AlertsFired:       s.AlertsFired,
		NotificationsSent: s.NotificationsSent,
		LastUpdate:        s.LastUpdate,
		Errors:            make([]string, len(s.Errors)),
		ItemStats:         make(map[string]*ItemStat),
	}

	copy(cloned.Errors, s.Errors)

	for k, v := range s.ItemStats {
		cloned.ItemStats[k] = &ItemStat{
			Key:           v.Key,
			Name:          v.Name,
			LastCheck:     v.LastCheck,
			CheckCount:    v.CheckCount,
			AlertCount:    v.AlertCount,
			LastAlert:     v.LastAlert,
			LastAlertTime: v.LastAlertTime,
		}
	}

	return cloned
}

// GetStatistics 获取统计信息的快照
func (w *Watcher) GetStatistics() *Statistics {
	return w.stats.clone()
}

// GetHealth 获取健康状态
func (w *Watcher) GetHealth() HealthStatus {
	stats := w.stats.clone()

	return HealthStatus{
		Running:     w.IsRunning(),
		Uptime:      time.Since(stats.StartTime),
		NextCheckIn: w.TimeUntilNextCheck(),
		TicksRun:    stats.TicksRun,
		AlertsFired: stats.AlertsFired,
		StartTime:   stats.StartTime,
	}
}
