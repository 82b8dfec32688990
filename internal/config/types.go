package config

import (
	"time"
)

// Config 应用程序配置
type Config struct {
	// 数据文件配置
	Store StoreConfig `yaml:"store"`

	// Steam 市场配置
	Steam SteamConfig `yaml:"steam"`

	// 通知配置
	Notifiers NotifiersConfig `yaml:"notifiers"`
}

// StoreConfig 数据文件配置
type StoreConfig struct {
	DataDir      string `yaml:"data_dir"`      // 设置与监控列表所在目录
	SettingsFile string `yaml:"settings_file"` // 设置文件名
	WatchesFile  string `yaml:"watches_file"`  // 监控列表文件名
}

// SteamConfig Steam 市场配置
type SteamConfig struct {
	BaseURL        string        `yaml:"base_url"`        // Steam 社区市场地址
	UserAgent      string        `yaml:"user_agent"`      // 请求 User-Agent
	RequestTimeout time.Duration `yaml:"request_timeout"` // 单次请求超时
	JitterMin      time.Duration `yaml:"jitter_min"`      // 两次请求间最小随机延迟
	JitterMax      time.Duration `yaml:"jitter_max"`      // 两次请求间最大随机延迟
}

// NotifiersConfig 通知配置
type NotifiersConfig struct {
	Desktop DesktopConfig `yaml:"desktop"` // 桌面通知
	Discord DiscordConfig `yaml:"discord"` // Discord Webhook 通知
}

// DesktopConfig 桌面通知配置
type DesktopConfig struct {
	Enabled bool `yaml:"enabled"` // 是否启用
}

// DiscordConfig Discord Webhook 配置
type DiscordConfig struct {
	Timeout time.Duration `yaml:"timeout"` // Webhook 请求超时
}
