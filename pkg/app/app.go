// Package app 提供屏保应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来：配置日志、加载配置、创建窗口、
// 生成曲线并启动动画。main.go 只负责解析命令行参数和进入事件循环。
package app

import (
	"fmt"
	"io"
	"log"
	"math/rand"
	"time"

	"github.com/decker502/spiros/pkg/canvas"
	"github.com/decker502/spiros/pkg/config"
	"github.com/decker502/spiros/pkg/ecs"
	"github.com/decker502/spiros/pkg/embedded"
	"github.com/decker502/spiros/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
)

const (
	// WindowTitle 窗口标题
	WindowTitle = "Spirograph Screensaver"

	// 窗口模式下的默认尺寸
	windowedWidth  = 1280
	windowedHeight = 720
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 外部配置文件路径，为空则使用嵌入的默认配置
	ConfigPath string
	// Seed 随机种子，0 表示使用当前时间
	Seed int64
	// Windowed 以窗口模式运行（调试用）
	Windowed bool
}

// App 是屏保应用的核心包装器，实现 ebiten.Game 接口
// 曲线和定时器由 SceneManager 持有，通过窗口的回调保持存活
type App struct {
	window *canvas.Window
}

// NewApp 创建并初始化屏保应用
//
// 使用嵌入配置时，调用此函数前必须先调用 embedded.Init()。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	ssConfig, err := loadConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("配置加载失败: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	log.Printf("[App] Random seed: %d", seed)

	windowCfg := canvas.WindowConfig{
		Title:      WindowTitle,
		Fullscreen: !cfg.Windowed,
		Background: ssConfig.BackgroundColor,
		InputGrace: ssConfig.InputGrace(),
	}
	if cfg.Windowed {
		windowCfg.Width = windowedWidth
		windowCfg.Height = windowedHeight
	}

	window, err := canvas.NewWindow(windowCfg)
	if err != nil {
		return nil, fmt.Errorf("窗口创建失败: %w", err)
	}

	sceneManager := game.NewSceneManager(ecs.NewEntityManager(), window, ssConfig, rng)
	n := sceneManager.RandomCurveCount()
	if err := sceneManager.Start(n); err != nil {
		return nil, fmt.Errorf("场景初始化失败: %w", err)
	}
	log.Printf("[App] Started with %d curves", n)

	return &App{window: window}, nil
}

// loadConfig 优先读取外部文件，否则使用嵌入的默认配置
func loadConfig(path string) (*config.ScreensaverConfig, error) {
	if path != "" {
		log.Printf("[Config] 加载配置文件: %s", path)
		return config.LoadScreensaverConfig(path)
	}

	data, err := embedded.ReadFile(config.DefaultConfigPath)
	if err != nil {
		return nil, err
	}
	log.Printf("[Config] 使用嵌入配置: %s", config.DefaultConfigPath)
	return config.ParseScreensaverConfig(data)
}

// Update 更新逻辑，每个 tick 调用一次
func (a *App) Update() error {
	return a.window.Update()
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	a.window.Draw(screen)
}

// Layout 返回逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.window.Layout(outsideWidth, outsideHeight)
}
