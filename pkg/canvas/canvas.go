// Package canvas 是屏保与图形界面之间的边界
//
// 上层逻辑只通过 Canvas 接口创建折线图形、平移和改色、注册定时回调以及订阅输入事件。
// Window 是基于 Ebitengine 的实现：图形以保留模式存储，每帧统一绘制；
// 定时器与输入都在游戏循环的同一个 goroutine 上分发，互不抢占。
package canvas

import (
	"time"

	"github.com/jbeda/geom"
)

// ShapeID 图形句柄，0 保留为无效值
type ShapeID uint64

// TimerID 定时回调句柄，0 表示未注册成功
type TimerID uint64

// Canvas 屏保使用的图形界面能力
type Canvas interface {
	// CreateLineShape 用给定的点序列创建一条折线，返回图形句柄
	CreateLineShape(points []geom.Coord, width float64, hexColor string) (ShapeID, error)

	// MoveShape 将图形整体平移 (dx, dy)
	MoveShape(id ShapeID, dx, dy float64)

	// SetShapeColor 修改图形颜色
	SetShapeColor(id ShapeID, hexColor string) error

	// ScheduleCallback 在 delay 之后于游戏循环上调用一次 fn
	ScheduleCallback(delay time.Duration, fn func()) TimerID

	// BindInputEvent 注册输入处理函数；任意按键、鼠标按键或指针移动都会触发
	BindInputEvent(handler func())

	// ScreenSize 返回逻辑屏幕尺寸
	ScreenSize() (width, height int)

	// Close 同步关闭窗口，尚未触发的定时回调全部丢弃
	Close()
}
