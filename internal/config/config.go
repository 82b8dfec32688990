package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			DataDir:      "./data",
			SettingsFile: "settings.json",
			WatchesFile:  "watches.json",
		},
		Steam: SteamConfig{
			BaseURL:        "https://steamcommunity.com",
			UserAgent:      "cs2-case-alerts (watcher)",
			RequestTimeout: 15 * time.Second,
			JitterMin:      120 * time.Millisecond,
			JitterMax:      360 * time.Millisecond,
		},
		Notifiers: NotifiersConfig{
			Desktop: DesktopConfig{
				Enabled: true,
			},
			Discord: DiscordConfig{
				Timeout: 10 * time.Second,
			},
		},
	}
}

// LoadConfig 从文件加载配置
func LoadConfig(filename string) (*Config, error) {
	// 检查文件是否存在
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", filename)
	}

	// 读取文件内容
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// 展开环境变量引用
	data = expandEnvVars(data)

	// 解析 YAML
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// 验证配置
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

// SaveConfig 保存配置到文件
func SaveConfig(config *Config, filename string) error {
	// 验证配置
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// 序列化为 YAML
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// 写入文件
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate 验证配置有效性
func (c *Config) Validate() error {
	if err := c.Store.Validate(); err != nil {
		return fmt.Errorf("store config: %w", err)
	}

	if err := c.Steam.Validate(); err != nil {
		return fmt.Errorf("steam config: %w", err)
	}

	if err := c.Notifiers.Validate(); err != nil {
		return fmt.Errorf("notifiers config: %w", err)
	}

	return nil
}

// Validate 验证数据文件配置
func (c *StoreConfig) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir cannot be empty")
	}
	if c.SettingsFile == "" {
		return fmt.Errorf("settings_file cannot be empty")
	}
	if c.WatchesFile == "" {
		return fmt.Errorf("watches_file cannot be empty")
	}
	return nil
}

// Validate 验证 Steam 市场配置
func (c *SteamConfig) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url cannot be empty")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive")
	}
	if c.JitterMin < 0 {
		return fmt.Errorf("jitter_min cannot be negative")
	}
	if c.JitterMax < c.JitterMin {
		return fmt.Errorf("jitter_max must be >= jitter_min")
	}
	return nil
}

// Validate 验证通知配置
func (c *NotifiersConfig) Validate() error {
	if c.Discord.Timeout <= 0 {
		return fmt.Errorf("discord: timeout must be positive")
	}
	return nil
}
