package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cs2-case-alerts/internal/config"
	"cs2-case-alerts/internal/notifiers"
	"cs2-case-alerts/internal/steam"
	"cs2-case-alerts/internal/store"
	"cs2-case-alerts/internal/watcher"
)

var (
	configPath  = flag.String("config", "config.yaml", "配置文件路径")
	version     = flag.Bool("version", false, "显示版本信息")
	healthCheck = flag.Bool("health", false, "健康检查")
	singleRun   = flag.Bool("single-run", false, "单次运行模式（用于定时任务）")
)

const (
	AppName    = "CS2 Case Alerts"
	AppVersion = "1.0.0"
	AppDesc    = "Steam 市场价格报警工具"
)

// consoleListener 把监控日志打印到控制台
// 桌面版里这个位置接的是窗口进程
type consoleListener struct{}

func (consoleListener) OnLog(entry watcher.WatchLog) {
	log.Printf("📋 [%s] %s", entry.WatchID, entry.Message)
}

func main() {
	flag.Parse()

	// 显示版本信息
	if *version {
		fmt.Printf("%s v%s - %s\n", AppName, AppVersion, AppDesc)
		os.Exit(0)
	}

	// 健康检查
	if *healthCheck {
		performHealthCheck()
		return
	}

	// 运行主程序
	if err := run(); err != nil {
		log.Fatalf("应用程序启动失败: %v", err)
	}
}

func run() error {
	// 加载配置
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		return fmt.Errorf("配置加载失败: %w", err)
	}

	log.Printf("=== %s v%s 启动中 ===", AppName, AppVersion)
	log.Printf("配置文件: %s", *configPath)
	log.Printf("数据目录: %s", cfg.Store.DataDir)

	// 初始化存储，首次运行会写入默认设置与种子监控列表
	st, err := store.New(&cfg.Store)
	if err != nil {
		return fmt.Errorf("存储初始化失败: %w", err)
	}

	settings := st.GetSettings()
	log.Printf("轮询间隔: %ds", settings.CheckEverySeconds)
	log.Printf("报警冷却: %d 分钟", settings.AlertCooldownMinutes)

	// 创建市场客户端
	market := steam.NewClient(&cfg.Steam)

	// 创建通知管理器并注册通知器
	manager := notifiers.NewManager()

	desktop := notifiers.NewDesktopNotifier(&cfg.Notifiers.Desktop)
	if err := manager.AddNotifier(desktop); err != nil {
		return fmt.Errorf("桌面通知器注册失败: %w", err)
	}

	// Webhook 地址每次发送时从设置读取，改设置无需重启
	discord := notifiers.NewDiscordNotifier(&cfg.Notifiers.Discord, func() string {
		return st.GetSettings().DiscordWebhook
	})
	if err := manager.AddNotifier(discord); err != nil {
		return fmt.Errorf("Discord 通知器注册失败: %w", err)
	}
	defer manager.Close()

	// 创建监控器
	w := watcher.New(st, market, manager)
	w.AddListener(consoleListener{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 单次运行模式：执行一次检查后退出
	if *singleRun {
		log.Println("=== 单次运行模式 ===")
		return runSingleCheck(ctx, w)
	}

	if err := w.Start(ctx); err != nil {
		return fmt.Errorf("监控器启动失败: %w", err)
	}

	// 设置信号处理
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)

	log.Printf("%s 运行中... (按 Ctrl+C 停止)", AppName)

	// 启动状态报告 goroutine
	go statusReporter(w)

	// 等待停止信号
	<-signalChan
	log.Println("收到停止信号，正在关闭...")

	if err := w.Stop(); err != nil {
		log.Printf("监控器停止失败: %v", err)
	}

	log.Printf("%s 已停止", AppName)
	return nil
}

// runSingleCheck 执行单次检查
func runSingleCheck(ctx context.Context, w *watcher.Watcher) error {
	checkCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	if err := w.RunSingleCheck(checkCtx); err != nil {
		return fmt.Errorf("单次检查失败: %w", err)
	}

	stats := w.GetStatistics()
	log.Printf("=== 单次检查完成 ===")
	log.Printf("检查物品: %d", stats.ItemsChecked)
	log.Printf("获取失败: %d", stats.FetchFailures)
	log.Printf("触发报警: %d", stats.AlertsFired)
	log.Printf("发送通知: %d", stats.NotificationsSent)

	return nil
}

// statusReporter 定期报告状态
func statusReporter(w *watcher.Watcher) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		health := w.GetHealth()
		stats := w.GetStatistics()

		log.Printf("=== 状态报告 ===")
		log.Printf("运行状态: %v", health.Running)
		log.Printf("运行时间: %v", health.Uptime.Round(time.Second))
		log.Printf("下次检查: %v 后", health.NextCheckIn.Round(time.Second))
		log.Printf("已运行周期: %d", stats.TicksRun)
		log.Printf("触发报警: %d", stats.AlertsFired)
		log.Printf("发送通知: %d", stats.NotificationsSent)
	}
}

// performHealthCheck 执行健康检查
func performHealthCheck() {
	log.Println("执行健康检查...")

	// 检查配置文件
	if _, err := os.Stat(*configPath); os.IsNotExist(err) {
		log.Printf("❌ 配置文件不存在: %s", *configPath)
		os.Exit(1)
	}
	log.Printf("✅ 配置文件存在: %s", *configPath)

	// 检查配置文件格式
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Printf("❌ 配置文件格式错误: %v", err)
		os.Exit(1)
	}
	log.Printf("✅ 配置文件格式正确")

	// 检查数据目录可写
	if _, err := store.New(&cfg.Store); err != nil {
		log.Printf("❌ 数据目录不可用: %v", err)
		os.Exit(1)
	}
	log.Printf("✅ 数据目录可用: %s", cfg.Store.DataDir)

	log.Printf("✅ 健康检查完成")
}
