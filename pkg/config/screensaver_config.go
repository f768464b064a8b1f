package config

import (
	"fmt"
	"os"
	"time"

	"github.com/decker502/spiros/pkg/utils"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPath 嵌入的默认配置路径
const DefaultConfigPath = "data/screensaver.yaml"

// IntRange 整数闭区间
type IntRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// FloatRange 浮点区间 [Min, Max)
type FloatRange struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// SmallRadiusConfig 小圆半径下限，上限由大圆半径减去 MinRadiusGap 得到
type SmallRadiusConfig struct {
	Min int `yaml:"min"`
}

// ScreensaverConfig 屏保的随机范围与时序参数
type ScreensaverConfig struct {
	CurveCount       IntRange          `yaml:"curveCount"`       // 曲线数量
	BigRadius        IntRange          `yaml:"bigRadius"`        // 大圆半径
	SmallRadius      SmallRadiusConfig `yaml:"smallRadius"`      // 小圆半径下限
	MinRadiusGap     int               `yaml:"minRadiusGap"`     // 大小圆半径最小差值
	CenterJitter     int               `yaml:"centerJitter"`     // 初始中心偏移
	Velocity         IntRange          `yaml:"velocity"`         // 速度大小
	InitialLineWidth FloatRange        `yaml:"initialLineWidth"` // 初始线宽
	BoundsMargin     int               `yaml:"boundsMargin"`     // 碰撞边界留白
	TickIntervalMs   int               `yaml:"tickIntervalMs"`   // 动画间隔（毫秒）
	BackgroundColor  string            `yaml:"backgroundColor"`  // 背景色
	InputGraceMs     int               `yaml:"inputGraceMs"`     // 启动后忽略指针移动的时长
}

// TickInterval 动画间隔
func (c *ScreensaverConfig) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalMs) * time.Millisecond
}

// InputGrace 启动后忽略指针移动的时长
func (c *ScreensaverConfig) InputGrace() time.Duration {
	return time.Duration(c.InputGraceMs) * time.Millisecond
}

// DefaultScreensaverConfig 返回与嵌入 YAML 一致的默认配置
func DefaultScreensaverConfig() *ScreensaverConfig {
	return &ScreensaverConfig{
		CurveCount:       IntRange{Min: 8, Max: 15},
		BigRadius:        IntRange{Min: 75, Max: 175},
		SmallRadius:      SmallRadiusConfig{Min: 50},
		MinRadiusGap:     10,
		CenterJitter:     100,
		Velocity:         IntRange{Min: 5, Max: 10},
		InitialLineWidth: FloatRange{Min: 0.75, Max: 1.5},
		BoundsMargin:     10,
		TickIntervalMs:   100,
		BackgroundColor:  "#6969CC",
		InputGraceMs:     500,
	}
}

// ParseScreensaverConfig 解析并校验 YAML 配置
// 未出现的字段保留默认值
func ParseScreensaverConfig(data []byte) (*ScreensaverConfig, error) {
	config := DefaultScreensaverConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse screensaver YAML: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid screensaver config: %w", err)
	}

	return config, nil
}

// LoadScreensaverConfig 从 YAML 文件加载屏保配置
func LoadScreensaverConfig(filePath string) (*ScreensaverConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read screensaver config file: %w", err)
	}
	return ParseScreensaverConfig(data)
}

// Validate 验证配置的有效性
func (c *ScreensaverConfig) Validate() error {
	if c.CurveCount.Min < 1 {
		return fmt.Errorf("curveCount.min must be >= 1, got %d", c.CurveCount.Min)
	}
	if c.CurveCount.Max < c.CurveCount.Min {
		return fmt.Errorf("curveCount.max (%d) must be >= curveCount.min (%d)", c.CurveCount.Max, c.CurveCount.Min)
	}

	// 半径必须为正，且每个可能的大圆半径都要留出合法的小圆半径区间
	if c.SmallRadius.Min < 1 {
		return fmt.Errorf("smallRadius.min must be >= 1, got %d", c.SmallRadius.Min)
	}
	if c.MinRadiusGap < 1 {
		return fmt.Errorf("minRadiusGap must be >= 1, got %d", c.MinRadiusGap)
	}
	if c.BigRadius.Max < c.BigRadius.Min {
		return fmt.Errorf("bigRadius.max (%d) must be >= bigRadius.min (%d)", c.BigRadius.Max, c.BigRadius.Min)
	}
	if c.BigRadius.Min-c.MinRadiusGap < c.SmallRadius.Min {
		return fmt.Errorf("bigRadius.min - minRadiusGap (%d) must be >= smallRadius.min (%d)",
			c.BigRadius.Min-c.MinRadiusGap, c.SmallRadius.Min)
	}

	if c.CenterJitter < 0 {
		return fmt.Errorf("centerJitter must be >= 0, got %d", c.CenterJitter)
	}
	if c.Velocity.Min < 0 || c.Velocity.Max < c.Velocity.Min {
		return fmt.Errorf("velocity range [%d, %d] is invalid", c.Velocity.Min, c.Velocity.Max)
	}
	if c.InitialLineWidth.Min <= 0 || c.InitialLineWidth.Max < c.InitialLineWidth.Min {
		return fmt.Errorf("initialLineWidth range [%g, %g) is invalid", c.InitialLineWidth.Min, c.InitialLineWidth.Max)
	}
	if c.BoundsMargin < 0 {
		return fmt.Errorf("boundsMargin must be >= 0, got %d", c.BoundsMargin)
	}
	if c.TickIntervalMs < 1 {
		return fmt.Errorf("tickIntervalMs must be >= 1, got %d", c.TickIntervalMs)
	}
	if c.InputGraceMs < 0 {
		return fmt.Errorf("inputGraceMs must be >= 0, got %d", c.InputGraceMs)
	}
	if _, err := utils.ParseHexColor(c.BackgroundColor); err != nil {
		return fmt.Errorf("backgroundColor: %w", err)
	}

	return nil
}
