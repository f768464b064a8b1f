package game

import (
	"fmt"
	"log"

	"github.com/decker502/spiros/pkg/canvas"
	"github.com/decker502/spiros/pkg/components"
	"github.com/decker502/spiros/pkg/config"
	"github.com/decker502/spiros/pkg/ecs"
	"github.com/decker502/spiros/pkg/spiro"
	"github.com/decker502/spiros/pkg/systems"
	"github.com/decker502/spiros/pkg/utils"
	"github.com/jbeda/geom"
)

// SceneManager 拥有屏保中的全部曲线，负责生成、绘制、驱动动画和退出
//
// 曲线以实体形式保存在注入的 EntityManager 中，遍历顺序即创建顺序。每条曲线有自己独立的定时器：
// 一个 tick 执行完毕后才注册下一个 tick，曲线之间不保证先后顺序。
type SceneManager struct {
	entityManager *ecs.EntityManager
	canvas        canvas.Canvas
	bounceSystem  *systems.BounceSystem
	config        *config.ScreensaverConfig
	rng           utils.Rand
}

// NewSceneManager 创建场景管理器
func NewSceneManager(em *ecs.EntityManager, cv canvas.Canvas, cfg *config.ScreensaverConfig, rng utils.Rand) *SceneManager {
	return &SceneManager{
		entityManager: em,
		canvas:        cv,
		bounceSystem:  systems.NewBounceSystem(em, cv, rng, cfg.BoundsMargin),
		config:        cfg,
		rng:           rng,
	}
}

// Curves 按创建顺序返回所有曲线实体
func (sm *SceneManager) Curves() []ecs.EntityID {
	return ecs.GetEntitiesWith3[
		*components.SpiroComponent,
		*components.VelocityComponent,
		*components.TimerComponent,
	](sm.entityManager)
}

// RandomCurveCount 在配置范围内随机曲线数量
func (sm *SceneManager) RandomCurveCount() int {
	return utils.RandIntRange(sm.rng, sm.config.CurveCount.Min, sm.config.CurveCount.Max)
}

// Start 生成 n 条曲线，绘制并启动动画，绑定退出事件
func (sm *SceneManager) Start(n int) error {
	if _, err := sm.GenerateCurves(n); err != nil {
		return err
	}
	if err := sm.DrawAll(); err != nil {
		return err
	}
	sm.StartAnimation()
	sm.BindExit()
	return nil
}

// GenerateCurves 在配置范围内随机生成 n 条曲线
func (sm *SceneManager) GenerateCurves(n int) ([]ecs.EntityID, error) {
	screenW, screenH := sm.canvas.ScreenSize()
	created := make([]ecs.EntityID, 0, n)

	for i := 0; i < n; i++ {
		params, err := sm.randomParams(screenW, screenH)
		if err != nil {
			return created, fmt.Errorf("generate curve %d: %w", i, err)
		}

		id := sm.AddCurve(params,
			sm.randomSpeed(), sm.randomSpeed(),
			utils.RandFloatRange(sm.rng, sm.config.InitialLineWidth.Min, sm.config.InitialLineWidth.Max),
			utils.RandomHexColor(sm.rng))
		created = append(created, id)

		log.Printf("[SceneManager] Curve %d: center=(%.0f, %.0f) r=%d R=%d l=%.3f revolutions=%d",
			id, params.Center.X, params.Center.Y, params.SmallRadius, params.BigRadius,
			params.DistanceRatio, params.RevolutionCount())
	}

	return created, nil
}

// AddCurve 用给定参数创建一条曲线实体（尚未绘制）
func (sm *SceneManager) AddCurve(params *spiro.Params, vx, vy int, width float64, hexColor string) ecs.EntityID {
	id := sm.entityManager.CreateEntity()
	sm.entityManager.AddComponent(id, &components.SpiroComponent{Params: params})
	sm.entityManager.AddComponent(id, &components.VelocityComponent{VX: vx, VY: vy})
	sm.entityManager.AddComponent(id, &components.StrokeComponent{Width: width, Color: hexColor})
	sm.entityManager.AddComponent(id, &components.TimerComponent{
		Name:     fmt.Sprintf("spiro-%d", id),
		Interval: sm.config.TickInterval(),
	})
	return id
}

// randomParams 大圆半径 ∈ [75,175]，小圆半径 ∈ [50, R-10]，l ∈ [0,1)，中心在屏幕中心 ±100 内
func (sm *SceneManager) randomParams(screenW, screenH int) (*spiro.Params, error) {
	cfg := sm.config
	bigRadius := utils.RandIntRange(sm.rng, cfg.BigRadius.Min, cfg.BigRadius.Max)
	smallRadius := utils.RandIntRange(sm.rng, cfg.SmallRadius.Min, bigRadius-cfg.MinRadiusGap)
	distanceRatio := sm.rng.Float64()

	cx := utils.RandIntRange(sm.rng, screenW/2-cfg.CenterJitter, screenW/2+cfg.CenterJitter)
	cy := utils.RandIntRange(sm.rng, screenH/2-cfg.CenterJitter, screenH/2+cfg.CenterJitter)

	return spiro.NewParams(geom.Coord{X: float64(cx), Y: float64(cy)}, smallRadius, bigRadius, distanceRatio)
}

func (sm *SceneManager) randomSpeed() int {
	return utils.RandIntRange(sm.rng, sm.config.Velocity.Min, sm.config.Velocity.Max) * utils.RandomSign(sm.rng)
}

// DrawAll 计算每条曲线的点序列并创建折线图形
// 点序列只计算这一次，之后的移动都是对图形的平移
func (sm *SceneManager) DrawAll() error {
	for _, id := range ecs.GetEntitiesWith2[*components.SpiroComponent, *components.StrokeComponent](sm.entityManager) {
		if ecs.HasComponent[*components.ShapeComponent](sm.entityManager, id) {
			continue
		}

		spiroComp, _ := ecs.GetComponent[*components.SpiroComponent](sm.entityManager, id)
		stroke, _ := ecs.GetComponent[*components.StrokeComponent](sm.entityManager, id)

		points := spiroComp.Params.Points()
		handle, err := sm.canvas.CreateLineShape(points, stroke.Width, stroke.Color)
		if err != nil {
			return fmt.Errorf("draw curve %d: %w", id, err)
		}
		sm.entityManager.AddComponent(id, &components.ShapeComponent{Handle: handle})

		log.Printf("[SceneManager] Drew curve %d with %d points (shape %d)", id, len(points), handle)
	}
	return nil
}

// StartAnimation 为每条曲线注册第一个 tick
func (sm *SceneManager) StartAnimation() {
	curves := sm.Curves()
	for _, id := range curves {
		sm.arm(id)
	}
	log.Printf("[SceneManager] Animation started for %d curves", len(curves))
}

// arm 注册曲线的下一个 tick
func (sm *SceneManager) arm(id ecs.EntityID) {
	timer, ok := ecs.GetComponent[*components.TimerComponent](sm.entityManager, id)
	if !ok || timer.Armed {
		return
	}
	timer.Armed = sm.canvas.ScheduleCallback(timer.Interval, func() {
		sm.tick(id)
	}) != 0
}

// tick 执行一次移动，完成后再注册下一次
func (sm *SceneManager) tick(id ecs.EntityID) {
	timer, ok := ecs.GetComponent[*components.TimerComponent](sm.entityManager, id)
	if !ok {
		return
	}
	timer.Armed = false

	result, err := sm.bounceSystem.Move(id)
	if err != nil {
		log.Printf("[SceneManager] Curve %d stopped: %v", id, err)
		return
	}

	timer.Ticks++
	if result.BouncedX {
		timer.Bounces++
	}
	if result.BouncedY {
		timer.Bounces++
	}

	sm.arm(id)
}

// BindExit 任意输入立即关闭窗口
func (sm *SceneManager) BindExit() {
	sm.canvas.BindInputEvent(sm.Quit)
}

// Quit 同步关闭窗口
func (sm *SceneManager) Quit() {
	totalTicks, totalBounces := 0, 0
	for _, id := range ecs.GetEntitiesWith1[*components.TimerComponent](sm.entityManager) {
		timer, _ := ecs.GetComponent[*components.TimerComponent](sm.entityManager, id)
		totalTicks += timer.Ticks
		totalBounces += timer.Bounces
	}
	log.Printf("[SceneManager] Input received, exiting: %d entities, %d ticks, %d bounces",
		sm.entityManager.Count(), totalTicks, totalBounces)
	sm.canvas.Close()
}
