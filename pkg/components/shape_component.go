package components

import "github.com/decker502/spiros/pkg/canvas"

// ShapeComponent 已绘制折线的句柄
// 只在绘制时创建一次，之后只做平移和改色
type ShapeComponent struct {
	Handle canvas.ShapeID
}
