package systems

import (
	"errors"
	"fmt"
	"log"

	"github.com/decker502/spiros/pkg/canvas"
	"github.com/decker502/spiros/pkg/components"
	"github.com/decker502/spiros/pkg/ecs"
	"github.com/decker502/spiros/pkg/utils"
	"github.com/jbeda/geom"
)

// ErrMissingComponent 实体缺少移动所需的组件
var ErrMissingComponent = errors.New("entity is missing a required component")

// MoveResult 单次移动中各轴是否发生了反弹
type MoveResult struct {
	BouncedX bool
	BouncedY bool
}

// BounceSystem 负责曲线的移动与边界反弹
//
// 每个 tick 先用移动前的中心检查边界，越界的轴速度取反并重新随机颜色和线宽，
// 然后再按（可能已取反的）速度平移中心和图形。
// X、Y 两轴同时越界时各自重新随机一次，后一次覆盖前一次。
type BounceSystem struct {
	entityManager *ecs.EntityManager
	canvas        canvas.Canvas
	rng           utils.Rand
	margin        int
}

// NewBounceSystem 创建反弹系统
// margin 为碰撞边界到屏幕边缘的距离
func NewBounceSystem(em *ecs.EntityManager, cv canvas.Canvas, rng utils.Rand, margin int) *BounceSystem {
	return &BounceSystem{
		entityManager: em,
		canvas:        cv,
		rng:           rng,
		margin:        margin,
	}
}

// Move 对一条曲线执行一个 tick
func (s *BounceSystem) Move(id ecs.EntityID) (MoveResult, error) {
	var result MoveResult

	spiroComp, ok := ecs.GetComponent[*components.SpiroComponent](s.entityManager, id)
	if !ok {
		return result, fmt.Errorf("move entity %d: spiro: %w", id, ErrMissingComponent)
	}
	vel, ok := ecs.GetComponent[*components.VelocityComponent](s.entityManager, id)
	if !ok {
		return result, fmt.Errorf("move entity %d: velocity: %w", id, ErrMissingComponent)
	}
	stroke, ok := ecs.GetComponent[*components.StrokeComponent](s.entityManager, id)
	if !ok {
		return result, fmt.Errorf("move entity %d: stroke: %w", id, ErrMissingComponent)
	}
	shape, ok := ecs.GetComponent[*components.ShapeComponent](s.entityManager, id)
	if !ok {
		return result, fmt.Errorf("move entity %d: shape: %w", id, ErrMissingComponent)
	}

	params := spiroComp.Params
	screenW, screenH := s.canvas.ScreenSize()

	if s.outOfBounds(params.Center.X, params.BigRadius, screenW) {
		vel.VX = -vel.VX
		s.reroll(stroke, shape)
		result.BouncedX = true
	}
	if s.outOfBounds(params.Center.Y, params.BigRadius, screenH) {
		vel.VY = -vel.VY
		s.reroll(stroke, shape)
		result.BouncedY = true
	}

	delta := geom.Coord{X: float64(vel.VX), Y: float64(vel.VY)}
	params.Center = params.Center.Plus(delta)
	s.canvas.MoveShape(shape.Handle, delta.X, delta.Y)

	return result, nil
}

// outOfBounds 中心不在开区间 (margin+R, dim-R-margin) 内
// 半径过大使区间为空时，每个 tick 都会判定越界
func (s *BounceSystem) outOfBounds(center float64, radius, dim int) bool {
	lo := float64(s.margin + radius)
	hi := float64(dim - radius - s.margin)
	return !(lo < center && center < hi)
}

// reroll 重新随机颜色和线宽
// 只有颜色会同步到已绘制的图形上，线宽保存在组件中
func (s *BounceSystem) reroll(stroke *components.StrokeComponent, shape *components.ShapeComponent) {
	stroke.Color = utils.RandomHexColor(s.rng)
	stroke.Width = 1 + s.rng.Float64()

	if err := s.canvas.SetShapeColor(shape.Handle, stroke.Color); err != nil {
		log.Printf("[BounceSystem] Warning: failed to restyle shape %d: %v", shape.Handle, err)
	}
}
