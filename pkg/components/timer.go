package components

import "time"

// TimerComponent 曲线自身的重复定时器
// 每个 tick 完成后才会注册下一个 tick
type TimerComponent struct {
	Name     string        // 计时器名称，如 "spiro-3"
	Interval time.Duration // 两次 tick 之间的间隔
	Ticks    int           // 已执行的 tick 数
	Bounces  int           // 已发生的反弹次数（每个轴单独计数）
	Armed    bool          // 是否已注册下一次回调
}
