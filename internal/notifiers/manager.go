package notifiers

import (
	"fmt"
	"log"
	"sync"
)

// Manager 通知管理器实现
// 各通知器相互隔离，单个通知器失败不影响其余通知器
type Manager struct {
	notifiers map[string]Notifier
	filter    *NotificationFilter
	mu        sync.RWMutex
}

// NewManager 创建新的通知管理器
func NewManager() *Manager {
	return &Manager{
		notifiers: make(map[string]Notifier),
		filter:    &NotificationFilter{}, // 默认无过滤
	}
}

// AddNotifier 添加通知器
func (m *Manager) AddNotifier(notifier Notifier) error {
	if notifier == nil {
		return fmt.Errorf("notifier cannot be nil")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	name := notifier.Name()
	if _, exists := m.notifiers[name]; exists {
		return fmt.Errorf("notifier with name '%s' already exists", name)
	}

	m.notifiers[name] = notifier
	return nil
}

// RemoveNotifier 移除通知器
func (m *Manager) RemoveNotifier(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	notifier, exists := m.notifiers[name]
	if !exists {
		return fmt.Errorf("notifier with name '%s' not found", name)
	}

	if err := notifier.Close(); err != nil {
		return fmt.Errorf("failed to close notifier '%s': %w", name, err)
	}

	delete(m.notifiers, name)
	return nil
}

// Send 发送通知到所有启用的通知器
// 每个失败的通知器都记录警告日志；部分失败不算错误，
// 全部失败时返回汇总错误由调用方记录
func (m *Manager) Send(notification *Notification) error {
	if notification == nil {
		return fmt.Errorf("notification cannot be nil")
	}

	if !m.filter.ShouldNotify(notification) {
		return nil // 被过滤，不发送
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var errors []error
	successCount := 0
	enabledCount := 0

	for name, notifier := range m.notifiers {
		if !notifier.IsEnabled() {
			continue
		}
		enabledCount++

		if err := notifier.Send(notification); err != nil {
			log.Printf("⚠️ 通知器 '%s' 发送失败: %v", name, err)
			errors = append(errors, fmt.Errorf("notifier '%s': %w", name, err))
		} else {
			successCount++
		}
	}

	if len(errors) > 0 && successCount == 0 && enabledCount > 0 {
		return fmt.Errorf("all notifiers failed: %v", errors)
	}

	return nil
}

// SendTo 发送通知到指定通知器
func (m *Manager) SendTo(notifierName string, notification *Notification) error {
	if notification == nil {
		return fmt.Errorf("notification cannot be nil")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	notifier, exists := m.notifiers[notifierName]
	if !exists {
		return fmt.Errorf("notifier with name '%s' not found", notifierName)
	}

	if !notifier.IsEnabled() {
		return fmt.Errorf("notifier '%s' is disabled", notifierName)
	}

	return notifier.Send(notification)
}

// Close 关闭所有通知器
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var errors []error
	for name, notifier := range m.notifiers {
		if err := notifier.Close(); err != nil {
			errors = append(errors, fmt.Errorf("notifier '%s': %w", name, err))
		}
	}

	m.notifiers = make(map[string]Notifier)

	if len(errors) > 0 {
		return fmt.Errorf("failed to close some notifiers: %v", errors)
	}
	return nil
}

// GetNotifiers 获取所有通知器
func (m *Manager) GetNotifiers() []Notifier {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]Notifier, 0, len(m.notifiers))
	for _, notifier := range m.notifiers {
		result = append(result, notifier)
	}
	return result
}

// SetFilter 设置通知过滤器
func (m *Manager) SetFilter(filter *NotificationFilter) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if filter == nil {
		filter = &NotificationFilter{}
	}
	m.filter = filter
}
