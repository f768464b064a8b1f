// Package spiro 计算万花尺曲线（内旋轮线）的几何形状
//
// 曲线由一个半径为 SmallRadius 的小圆在半径为 BigRadius 的大圆内部滚动生成，
// 描点距小圆圆心的偏移比例为 DistanceRatio。
// 所有计算都是纯函数，不依赖任何渲染或随机状态。
package spiro

import (
	"errors"
	"fmt"
	"math"

	"github.com/jbeda/geom"
)

const (
	// AngleStepDegrees 采样角度步长（度）
	AngleStepDegrees = 5

	// MaxRevolutions 曲线最多绘制的整圈数
	// 对于接近互质的半径组合，完整闭合需要的圈数很大，这里截断以限制点数
	MaxRevolutions = 30

	// samplesPerRevolution 每圈的采样数（不含终点）
	samplesPerRevolution = 360 / AngleStepDegrees
)

var (
	// ErrInvalidRadius 半径必须为正整数
	ErrInvalidRadius = errors.New("radius must be positive")

	// ErrRadiusOrder 小圆半径必须严格小于大圆半径
	ErrRadiusOrder = errors.New("small radius must be less than big radius")
)

// Params 一条万花尺曲线的参数
// 半径和偏移比例在创建后不再变化；Center 随动画每个 tick 平移
type Params struct {
	Center        geom.Coord // 曲线中心（屏幕坐标）
	SmallRadius   int        // 滚动小圆半径
	BigRadius     int        // 固定大圆半径
	DistanceRatio float64    // 描点偏移比例 l，取值 [0, 1)
}

// NewParams 创建并校验曲线参数
func NewParams(center geom.Coord, smallRadius, bigRadius int, distanceRatio float64) (*Params, error) {
	if smallRadius <= 0 || bigRadius <= 0 {
		return nil, fmt.Errorf("invalid spiro params (small=%d, big=%d): %w", smallRadius, bigRadius, ErrInvalidRadius)
	}
	if smallRadius >= bigRadius {
		return nil, fmt.Errorf("invalid spiro params (small=%d, big=%d): %w", smallRadius, bigRadius, ErrRadiusOrder)
	}

	return &Params{
		Center:        center,
		SmallRadius:   smallRadius,
		BigRadius:     bigRadius,
		DistanceRatio: distanceRatio,
	}, nil
}

// GCD 欧几里得算法求最大公约数
// b 为 0 时会触发除零 panic，调用方必须保证两个参数都 >= 1
func GCD(a, b int) int {
	for a%b != 0 {
		a, b = b, a%b
	}
	return b
}

// RevolutionCount 曲线闭合所需的整圈数，上限 MaxRevolutions
func (p *Params) RevolutionCount() int {
	n := p.SmallRadius / GCD(p.SmallRadius, p.BigRadius)
	if n > MaxRevolutions {
		return MaxRevolutions
	}
	return n
}

// K 返回半径比 small/big
func (p *Params) K() float64 {
	return float64(p.SmallRadius) / float64(p.BigRadius)
}

// Point 计算角度 theta（弧度）处的曲线坐标
func (p *Params) Point(theta float64) geom.Coord {
	k := p.K()
	l := p.DistanceRatio
	r := float64(p.BigRadius)
	inner := theta * (1/k - 1)

	x := (1-k)*math.Cos(theta) + l*k*math.Cos(inner)
	y := (1-k)*math.Sin(theta) - l*k*math.Sin(inner)

	return geom.Coord{
		X: p.Center.X + r*x,
		Y: p.Center.Y + r*y,
	}
}

// Points 按 AngleStepDegrees 步长采样 [0, 360*RevolutionCount] 度（含两端）
// 返回 72*RevolutionCount+1 个点
func (p *Params) Points() []geom.Coord {
	return PointsFor(p, p.RevolutionCount())
}

// PointsFor 与 Points 相同，但使用指定的圈数
func PointsFor(p *Params, revolutions int) []geom.Coord {
	if revolutions < 0 {
		revolutions = 0
	}
	points := make([]geom.Coord, 0, samplesPerRevolution*revolutions+1)
	for deg := 0; deg <= 360*revolutions; deg += AngleStepDegrees {
		points = append(points, p.Point(float64(deg)*math.Pi/180))
	}
	return points
}
