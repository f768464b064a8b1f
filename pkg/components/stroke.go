package components

// StrokeComponent 曲线线条样式
type StrokeComponent struct {
	Width float64 // 线宽
	Color string  // "#RRGGBB"
}
