package canvas

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputState 存储当前帧的输入状态
// 同时覆盖键盘、鼠标和触摸输入
type InputState struct {
	// 本帧是否有按键刚刚按下
	KeyJustPressed bool
	// 本帧是否有鼠标按键刚刚按下或新的触摸
	ButtonJustPressed bool
	// 指针位置
	X, Y int
}

// PollInput 从 Ebitengine 读取当前帧的输入状态
func PollInput() InputState {
	state := InputState{}

	if keys := inpututil.AppendJustPressedKeys(nil); len(keys) > 0 {
		state.KeyJustPressed = true
	}

	for b := ebiten.MouseButton0; b <= ebiten.MouseButtonMax; b++ {
		if inpututil.IsMouseButtonJustPressed(b) {
			state.ButtonJustPressed = true
			break
		}
	}

	// 触摸视为按键（移动设备）
	if touchIDs := inpututil.AppendJustPressedTouchIDs(nil); len(touchIDs) > 0 {
		state.ButtonJustPressed = true
		state.X, state.Y = ebiten.TouchPosition(touchIDs[0])
		return state
	}

	state.X, state.Y = ebiten.CursorPosition()
	return state
}

// InputWatcher 判断“发生了某种输入”
//
// 切换全屏时窗口系统会移动光标，因此启动后的 grace 时间内只记录指针位置，
// 不把移动当作输入；按键和鼠标按键始终立即生效。
type InputWatcher struct {
	grace   time.Duration
	elapsed time.Duration
	hasLast bool
	lastX   int
	lastY   int
}

// NewInputWatcher 创建输入监视器
func NewInputWatcher(grace time.Duration) *InputWatcher {
	return &InputWatcher{grace: grace}
}

// Observe 处理一帧输入，返回是否应当触发输入事件
func (w *InputWatcher) Observe(state InputState, dt time.Duration) bool {
	w.elapsed += dt

	if state.KeyJustPressed || state.ButtonJustPressed {
		return true
	}

	moved := w.hasLast && (state.X != w.lastX || state.Y != w.lastY)
	w.lastX, w.lastY = state.X, state.Y
	w.hasLast = true

	if w.elapsed <= w.grace {
		return false
	}
	return moved
}
