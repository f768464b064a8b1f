// Package canvastest 提供记录调用的 Canvas 实现，供其他包的测试使用
package canvastest

import (
	"fmt"
	"time"

	"github.com/decker502/spiros/pkg/canvas"
	"github.com/jbeda/geom"
)

// RecordedShape 记录的折线
type RecordedShape struct {
	Points []geom.Coord
	Width  float64
	Color  string
	Offset geom.Coord
}

// ColorChange 一次改色调用
type ColorChange struct {
	Shape canvas.ShapeID
	Color string
}

// ScheduledCall 一次定时回调注册
type ScheduledCall struct {
	ID    canvas.TimerID
	Delay time.Duration
	Fn    func()
}

// Recorder 记录所有 Canvas 调用，不做任何绘制
type Recorder struct {
	Width, Height int

	Shapes       map[canvas.ShapeID]*RecordedShape
	ColorChanges []ColorChange
	MoveCount    int
	Pending      []ScheduledCall
	Handler      func()
	Closed       bool

	nextShape canvas.ShapeID
	nextTimer canvas.TimerID
}

var _ canvas.Canvas = (*Recorder)(nil)

// NewRecorder 创建指定屏幕尺寸的记录器
func NewRecorder(width, height int) *Recorder {
	return &Recorder{
		Width:     width,
		Height:    height,
		Shapes:    make(map[canvas.ShapeID]*RecordedShape),
		nextShape: 1,
		nextTimer: 1,
	}
}

// CreateLineShape 实现 canvas.Canvas
func (r *Recorder) CreateLineShape(points []geom.Coord, width float64, hexColor string) (canvas.ShapeID, error) {
	if len(points) < 2 {
		return 0, fmt.Errorf("line shape needs at least 2 points, got %d", len(points))
	}
	id := r.nextShape
	r.nextShape++
	r.Shapes[id] = &RecordedShape{
		Points: append([]geom.Coord(nil), points...),
		Width:  width,
		Color:  hexColor,
	}
	return id, nil
}

// MoveShape 实现 canvas.Canvas
func (r *Recorder) MoveShape(id canvas.ShapeID, dx, dy float64) {
	r.MoveCount++
	if s, ok := r.Shapes[id]; ok {
		s.Offset = s.Offset.Plus(geom.Coord{X: dx, Y: dy})
	}
}

// SetShapeColor 实现 canvas.Canvas
func (r *Recorder) SetShapeColor(id canvas.ShapeID, hexColor string) error {
	s, ok := r.Shapes[id]
	if !ok {
		return fmt.Errorf("set color on shape %d: %w", id, canvas.ErrUnknownShape)
	}
	s.Color = hexColor
	r.ColorChanges = append(r.ColorChanges, ColorChange{Shape: id, Color: hexColor})
	return nil
}

// ScheduleCallback 实现 canvas.Canvas
func (r *Recorder) ScheduleCallback(delay time.Duration, fn func()) canvas.TimerID {
	if r.Closed {
		return 0
	}
	id := r.nextTimer
	r.nextTimer++
	r.Pending = append(r.Pending, ScheduledCall{ID: id, Delay: delay, Fn: fn})
	return id
}

// BindInputEvent 实现 canvas.Canvas
func (r *Recorder) BindInputEvent(handler func()) {
	r.Handler = handler
}

// ScreenSize 实现 canvas.Canvas
func (r *Recorder) ScreenSize() (int, int) {
	return r.Width, r.Height
}

// Close 实现 canvas.Canvas
func (r *Recorder) Close() {
	r.Closed = true
	r.Pending = nil
}

// RunPending 执行当前已注册的全部回调；回调中新注册的留到下一轮
// 返回执行的数量
func (r *Recorder) RunPending() int {
	calls := r.Pending
	r.Pending = nil
	ran := 0
	for _, c := range calls {
		if r.Closed {
			break
		}
		c.Fn()
		ran++
	}
	return ran
}

// FireInput 模拟一次输入事件
func (r *Recorder) FireInput() {
	if r.Handler != nil {
		r.Handler()
	}
}
