package store

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"cs2-case-alerts/internal/config"
)

const (
	// DefaultAppID CS2 的 Steam 应用 ID
	DefaultAppID = 730

	// MinCheckIntervalSeconds 轮询间隔下限，避免对市场接口造成压力
	MinCheckIntervalSeconds = 10
)

// DefaultSettings 返回默认设置
func DefaultSettings() *Settings {
	return &Settings{
		Currency:             CurrencyGBP,
		CheckEverySeconds:    60,
		AlertCooldownMinutes: 20,
		FeeRate:              0.15,
		DiscordWebhook:       "",
	}
}

// Store 基于 JSON 文件的设置与监控列表存储
// 外部界面通过变更方法修改，监控器每个周期重新读取
type Store struct {
	settingsPath string
	watchesPath  string
	mu           sync.Mutex
}

// New 创建存储实例并确保数据文件存在
func New(cfg *config.StoreConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}

	s := &Store{
		settingsPath: filepath.Join(cfg.DataDir, cfg.SettingsFile),
		watchesPath:  filepath.Join(cfg.DataDir, cfg.WatchesFile),
	}

	if err := s.ensureFiles(); err != nil {
		return nil, err
	}

	return s, nil
}

// ensureFiles 首次运行时写入默认设置与种子监控列表
func (s *Store) ensureFiles() error {
	if _, err := os.Stat(s.settingsPath); os.IsNotExist(err) {
		if err := writeJSON(s.settingsPath, DefaultSettings()); err != nil {
			return fmt.Errorf("failed to seed settings: %w", err)
		}
	}

	if _, err := os.Stat(s.watchesPath); os.IsNotExist(err) {
		settings := s.GetSettings()
		if err := writeJSON(s.watchesPath, seedWatches(settings.FeeRate)); err != nil {
			return fmt.Errorf("failed to seed watches: %w", err)
		}
	}

	return nil
}

// seedWatches 生成种子监控列表
// 卖出阈值按买入价加 15% 目标利润再摊上手续费反推
func seedWatches(feeRate float64) []Watch {
	const targetROI = 0.15

	sellFor := func(buy float64) decimal.Decimal {
		v := (buy * (1 + targetROI)) / (1 - feeRate)
		return decimal.NewFromFloat(v).Round(2)
	}

	seeds := []struct {
		name string
		buy  float64
	}{
		{"Revolution Case", 0.32},
		{"Kilowatt Case", 0.26},
		{"Fracture Case", 0.24},
		{"Dreams & Nightmares Case", 1.37},
	}

	watches := make([]Watch, 0, len(seeds))
	for _, seed := range seeds {
		watches = append(watches, Watch{
			ID:              uuid.NewString(),
			AppID:           DefaultAppID,
			MarketHashName:  seed.name,
			BuyBelowOrEqual: decimal.NewFromFloat(seed.buy),
			SellAtOrAbove:   sellFor(seed.buy),
		})
	}
	return watches
}

// GetSettings 读取设置，任何读取或解析失败都降级为默认值
// 返回前做防御性收敛，坏的设置写入只会降级而不会中断监控
func (s *Store) GetSettings() *Settings {
	settings := DefaultSettings()

	data, err := os.ReadFile(s.settingsPath)
	if err != nil {
		log.Printf("⚠️ 读取设置失败，使用默认设置: %v", err)
		return settings
	}

	if err := json.Unmarshal(data, settings); err != nil {
		log.Printf("⚠️ 解析设置失败，使用默认设置: %v", err)
		return DefaultSettings()
	}

	settings.coerce()
	return settings
}

// coerce 收敛越界的设置值
func (s *Settings) coerce() {
	if s.CheckEverySeconds < MinCheckIntervalSeconds {
		s.CheckEverySeconds = MinCheckIntervalSeconds
	}
	if s.AlertCooldownMinutes < 0 {
		s.AlertCooldownMinutes = 0
	}
	if s.FeeRate < 0 || s.FeeRate >= 1 {
		s.FeeRate = DefaultSettings().FeeRate
	}
	if s.Currency.Symbol() == "" {
		s.Currency = CurrencyGBP
	}
}

// SaveSettings 保存设置
func (s *Store) SaveSettings(settings *Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeJSON(s.settingsPath, settings)
}

// GetWatches 读取监控列表
func (s *Store) GetWatches() ([]Watch, error) {
	data, err := os.ReadFile(s.watchesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read watches: %w", err)
	}

	var watches []Watch
	if err := json.Unmarshal(data, &watches); err != nil {
		return nil, fmt.Errorf("failed to parse watches: %w", err)
	}

	// 旧版文件可能缺少 appid
	for i := range watches {
		if watches[i].AppID == 0 {
			watches[i].AppID = DefaultAppID
		}
	}

	return watches, nil
}

// AddWatch 添加监控项并分配稳定 ID
func (s *Store) AddWatch(w Watch) (*Watch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	watches, err := s.GetWatches()
	if err != nil {
		return nil, err
	}

	w.ID = uuid.NewString()
	if w.AppID == 0 {
		w.AppID = DefaultAppID
	}

	watches = append(watches, w)
	if err := writeJSON(s.watchesPath, watches); err != nil {
		return nil, err
	}

	return &w, nil
}

// RemoveWatch 按 ID 移除监控项
func (s *Store) RemoveWatch(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	watches, err := s.GetWatches()
	if err != nil {
		return err
	}

	kept := watches[:0]
	for _, w := range watches {
		if w.ID != id {
			kept = append(kept, w)
		}
	}

	return writeJSON(s.watchesPath, kept)
}

// UpdateWatch 按 ID 更新监控项，保持 ID 不变
func (s *Store) UpdateWatch(updated Watch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	watches, err := s.GetWatches()
	if err != nil {
		return err
	}

	for i := range watches {
		if watches[i].ID == updated.ID {
			watches[i] = updated
			return writeJSON(s.watchesPath, watches)
		}
	}

	return fmt.Errorf("watch not found: %s", updated.ID)
}

// writeJSON 以缩进格式写入 JSON 文件
func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", path, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}
