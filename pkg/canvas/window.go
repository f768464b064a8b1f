package canvas

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/decker502/spiros/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jbeda/geom"
)

const (
	// fallbackWidth 无法获取显示器尺寸时使用的宽度
	fallbackWidth = 1280
	// fallbackHeight 无法获取显示器尺寸时使用的高度
	fallbackHeight = 720
)

// WindowConfig 定义窗口创建参数
type WindowConfig struct {
	Title      string
	Fullscreen bool
	// Background 背景色，"#RRGGBB"
	Background string
	// Width/Height 逻辑屏幕尺寸，为 0 时使用显示器尺寸
	Width  int
	Height int
	// InputGrace 启动后忽略指针移动的时长
	InputGrace time.Duration
}

// Window 基于 Ebitengine 的 Canvas 实现，同时实现 ebiten.Game 接口
type Window struct {
	title      string
	background color.RGBA
	width      int
	height     int

	shapes    *ShapeStore
	scheduler *Scheduler
	input     *InputWatcher
	onInput   func()
	closed    bool

	// path 每帧复用的绘制路径
	path vector.Path
}

// NewWindow 创建窗口（createWindow）
// 实际的系统窗口在 Run 时由 Ebitengine 创建
func NewWindow(cfg WindowConfig) (*Window, error) {
	width, height := cfg.Width, cfg.Height
	if width <= 0 || height <= 0 {
		width, height = monitorSize()
	}

	w, err := newWindow(cfg, width, height)
	if err != nil {
		return nil, err
	}

	ebiten.SetWindowTitle(cfg.Title)
	if cfg.Fullscreen {
		ebiten.SetFullscreen(true)
		ebiten.SetCursorMode(ebiten.CursorModeHidden)
	} else {
		ebiten.SetWindowSize(width, height)
	}

	log.Printf("[Window] Created %dx%d (fullscreen=%v)", width, height, cfg.Fullscreen)
	return w, nil
}

// newWindow 只构造状态，不触碰 Ebitengine 的全局窗口设置
func newWindow(cfg WindowConfig, width, height int) (*Window, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid window size %dx%d", width, height)
	}
	bg, err := utils.ParseHexColor(cfg.Background)
	if err != nil {
		return nil, fmt.Errorf("window background: %w", err)
	}

	return &Window{
		title:      cfg.Title,
		background: bg,
		width:      width,
		height:     height,
		shapes:     NewShapeStore(),
		scheduler:  NewScheduler(),
		input:      NewInputWatcher(cfg.InputGrace),
	}, nil
}

func monitorSize() (int, int) {
	if m := ebiten.Monitor(); m != nil {
		if w, h := m.Size(); w > 0 && h > 0 {
			return w, h
		}
	}
	log.Printf("[Window] Monitor size unavailable, using %dx%d", fallbackWidth, fallbackHeight)
	return fallbackWidth, fallbackHeight
}

// Run 进入事件循环，直到窗口关闭
func (w *Window) Run() error {
	err := ebiten.RunGame(w)
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// CreateLineShape 实现 Canvas
func (w *Window) CreateLineShape(points []geom.Coord, width float64, hexColor string) (ShapeID, error) {
	return w.shapes.Create(points, width, hexColor)
}

// MoveShape 实现 Canvas
func (w *Window) MoveShape(id ShapeID, dx, dy float64) {
	if !w.shapes.Move(id, dx, dy) {
		log.Printf("[Window] Warning: move on unknown shape %d", id)
	}
}

// SetShapeColor 实现 Canvas
func (w *Window) SetShapeColor(id ShapeID, hexColor string) error {
	return w.shapes.SetColor(id, hexColor)
}

// ScheduleCallback 实现 Canvas
func (w *Window) ScheduleCallback(delay time.Duration, fn func()) TimerID {
	return w.scheduler.Schedule(delay, fn)
}

// BindInputEvent 实现 Canvas
func (w *Window) BindInputEvent(handler func()) {
	w.onInput = handler
}

// ScreenSize 实现 Canvas
func (w *Window) ScreenSize() (int, int) {
	return w.width, w.height
}

// Close 实现 Canvas
func (w *Window) Close() {
	if w.closed {
		return
	}
	w.closed = true
	dropped := w.scheduler.Pending()
	w.scheduler.Stop()
	log.Printf("[Window] Closed at %v with %d shapes, %d pending callbacks discarded",
		w.scheduler.Now(), w.shapes.Len(), dropped)
}

// Update 实现 ebiten.Game
func (w *Window) Update() error {
	return w.step(PollInput(), frameDelta())
}

// step 处理一帧：先分发输入，再推进定时器
// 输入导致关闭时本帧不再执行任何定时回调
func (w *Window) step(state InputState, dt time.Duration) error {
	if w.closed {
		return ebiten.Termination
	}

	if w.input.Observe(state, dt) && w.onInput != nil {
		w.onInput()
	}
	if w.closed {
		return ebiten.Termination
	}

	w.scheduler.Advance(dt)
	if w.closed {
		return ebiten.Termination
	}
	return nil
}

// Draw 实现 ebiten.Game
func (w *Window) Draw(screen *ebiten.Image) {
	screen.Fill(w.background)

	w.shapes.Each(func(_ ShapeID, shape *Shape) {
		w.path.Reset()
		appendPolyline(&w.path, shape)

		strokeOp := &vector.StrokeOptions{
			Width:    float32(shape.Width),
			LineJoin: vector.LineJoinRound,
		}
		drawOp := &vector.DrawPathOptions{}
		drawOp.ColorScale.ScaleWithColor(shape.Color)
		vector.StrokePath(screen, &w.path, strokeOp, drawOp)
	})
}

// appendPolyline 把折线（叠加偏移后）写入路径
func appendPolyline(path *vector.Path, shape *Shape) {
	ox, oy := shape.Offset.X, shape.Offset.Y
	for i, p := range shape.Points {
		x, y := float32(p.X+ox), float32(p.Y+oy)
		if i == 0 {
			path.MoveTo(x, y)
			continue
		}
		path.LineTo(x, y)
	}
}

// Layout 实现 ebiten.Game，逻辑尺寸固定为创建时的屏幕尺寸
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return w.width, w.height
}

// frameDelta 每个 tick 对应的时间
func frameDelta() time.Duration {
	return frameDeltaFor(ebiten.TPS())
}

// frameDeltaFor 向上取整到纳秒，保证 n 帧累计不少于 n/tps 秒
// 否则 60 TPS 下 6 帧只有 99.999996ms，100ms 的回调会拖到第 7 帧
func frameDeltaFor(tps int) time.Duration {
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	d := time.Duration(tps)
	return (time.Second + d - 1) / d
}
