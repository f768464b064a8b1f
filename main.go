// Package main 是万花尺屏保的入口
//
// Usage:
//
//	spiros [flags]
//
// Flags:
//
//	--verbose        Enable verbose logging
//	--config <path>  Load screensaver ranges from a YAML file instead of the embedded defaults
//	--seed <n>       Random seed (0 = time based)
//	--windowed       Run in a 1280x720 window instead of fullscreen
//
// 任意按键、鼠标按键或鼠标移动都会立即退出。
package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/decker502/spiros/pkg/app"
	"github.com/decker502/spiros/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verboseFlag  = flag.Bool("verbose", false, "Enable verbose logging")
	configFlag   = flag.String("config", "", "Path to a screensaver YAML config (default: embedded)")
	seedFlag     = flag.Int64("seed", 0, "Random seed, 0 for time based")
	windowedFlag = flag.Bool("windowed", false, "Run in a window instead of fullscreen")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源
	embedded.Init(dataFS)

	a, err := app.NewApp(app.Config{
		Verbose:    *verboseFlag,
		ConfigPath: *configFlag,
		Seed:       *seedFlag,
		Windowed:   *windowedFlag,
	})
	if err != nil {
		fatalf("启动失败: %v", err)
	}

	if err := ebiten.RunGame(a); err != nil && !errors.Is(err, ebiten.Termination) {
		fatalf("运行失败: %v", err)
	}
}

// fatalf 非 verbose 模式下日志输出已被丢弃，致命错误总是写到 stderr
func fatalf(format string, args ...any) {
	log.SetOutput(os.Stderr)
	log.Fatalf(format, args...)
}
