package game

import (
	"math/rand"
	"regexp"
	"testing"
	"time"

	"github.com/decker502/spiros/pkg/canvas/canvastest"
	"github.com/decker502/spiros/pkg/components"
	"github.com/decker502/spiros/pkg/config"
	"github.com/decker502/spiros/pkg/ecs"
)

var hexColorPattern = regexp.MustCompile(`^#[0-9A-F]{6}$`)

func newTestSceneManager(seed int64) (*SceneManager, *ecs.EntityManager, *canvastest.Recorder) {
	em := ecs.NewEntityManager()
	rec := canvastest.NewRecorder(1920, 1080)
	sm := NewSceneManager(em, rec, config.DefaultScreensaverConfig(), rand.New(rand.NewSource(seed)))
	return sm, em, rec
}

func TestRandomCurveCount(t *testing.T) {
	sm, _, _ := newTestSceneManager(1)
	for i := 0; i < 500; i++ {
		n := sm.RandomCurveCount()
		if n < 8 || n > 15 {
			t.Fatalf("curve count %d out of [8, 15]", n)
		}
	}
}

// TestGenerateCurves_Ranges 随机参数必须落在配置范围内
func TestGenerateCurves_Ranges(t *testing.T) {
	sm, em, _ := newTestSceneManager(2)

	ids, err := sm.GenerateCurves(300)
	if err != nil {
		t.Fatalf("GenerateCurves failed: %v", err)
	}
	if len(ids) != 300 || len(sm.Curves()) != 300 {
		t.Fatalf("expected 300 curves, got %d / %d", len(ids), len(sm.Curves()))
	}

	for _, id := range ids {
		sc, _ := ecs.GetComponent[*components.SpiroComponent](em, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](em, id)
		stroke, _ := ecs.GetComponent[*components.StrokeComponent](em, id)
		timer, _ := ecs.GetComponent[*components.TimerComponent](em, id)
		if sc == nil || vel == nil || stroke == nil || timer == nil {
			t.Fatalf("curve %d missing components", id)
		}

		p := sc.Params
		if p.BigRadius < 75 || p.BigRadius > 175 {
			t.Errorf("curve %d: big radius %d out of range", id, p.BigRadius)
		}
		if p.SmallRadius < 50 || p.SmallRadius > p.BigRadius-10 {
			t.Errorf("curve %d: small radius %d out of [50, %d]", id, p.SmallRadius, p.BigRadius-10)
		}
		if p.DistanceRatio < 0 || p.DistanceRatio >= 1 {
			t.Errorf("curve %d: distance ratio %f out of [0, 1)", id, p.DistanceRatio)
		}
		if p.Center.X < 860 || p.Center.X > 1060 || p.Center.Y < 440 || p.Center.Y > 640 {
			t.Errorf("curve %d: center %v too far from screen center", id, p.Center)
		}
		if p.Center.X != float64(int(p.Center.X)) || p.Center.Y != float64(int(p.Center.Y)) {
			t.Errorf("curve %d: center %v should be integral", id, p.Center)
		}

		for _, v := range []int{vel.VX, vel.VY} {
			if v < 0 {
				v = -v
			}
			if v < 5 || v > 10 {
				t.Errorf("curve %d: speed %d out of [5, 10]", id, v)
			}
		}

		if stroke.Width < 0.75 || stroke.Width >= 1.5 {
			t.Errorf("curve %d: initial width %f out of [0.75, 1.5)", id, stroke.Width)
		}
		if !hexColorPattern.MatchString(stroke.Color) {
			t.Errorf("curve %d: bad color %q", id, stroke.Color)
		}
		if timer.Interval != 100*time.Millisecond {
			t.Errorf("curve %d: expected 100ms interval, got %v", id, timer.Interval)
		}
	}
}

// TestDrawAll_OneShapePerCurve 每条曲线只创建一次图形，点数为 72*rev+1
func TestDrawAll_OneShapePerCurve(t *testing.T) {
	sm, em, rec := newTestSceneManager(3)
	ids, _ := sm.GenerateCurves(10)

	if err := sm.DrawAll(); err != nil {
		t.Fatalf("DrawAll failed: %v", err)
	}
	if err := sm.DrawAll(); err != nil {
		t.Fatalf("second DrawAll failed: %v", err)
	}
	if len(rec.Shapes) != 10 {
		t.Fatalf("expected 10 shapes, got %d", len(rec.Shapes))
	}

	for _, id := range ids {
		sc, _ := ecs.GetComponent[*components.SpiroComponent](em, id)
		shape, ok := ecs.GetComponent[*components.ShapeComponent](em, id)
		if !ok {
			t.Fatalf("curve %d has no shape", id)
		}
		recorded := rec.Shapes[shape.Handle]
		want := 72*sc.Params.RevolutionCount() + 1
		if len(recorded.Points) != want {
			t.Errorf("curve %d: expected %d points, got %d", id, want, len(recorded.Points))
		}

		stroke, _ := ecs.GetComponent[*components.StrokeComponent](em, id)
		if recorded.Color != stroke.Color || recorded.Width != stroke.Width {
			t.Errorf("curve %d: shape style does not match stroke", id)
		}
	}
}

// TestAnimation_PerCurveRearm 每条曲线独立注册，tick 完成后才注册下一次
func TestAnimation_PerCurveRearm(t *testing.T) {
	sm, em, rec := newTestSceneManager(4)
	ids, _ := sm.GenerateCurves(5)
	if err := sm.DrawAll(); err != nil {
		t.Fatalf("DrawAll failed: %v", err)
	}

	sm.StartAnimation()
	if len(rec.Pending) != 5 {
		t.Fatalf("expected one pending callback per curve, got %d", len(rec.Pending))
	}
	for _, call := range rec.Pending {
		if call.Delay != 100*time.Millisecond {
			t.Errorf("expected 100ms delay, got %v", call.Delay)
		}
	}

	// 重复启动不应重复注册
	sm.StartAnimation()
	if len(rec.Pending) != 5 {
		t.Fatalf("StartAnimation should not double-arm, got %d pending", len(rec.Pending))
	}

	for round := 1; round <= 3; round++ {
		if ran := rec.RunPending(); ran != 5 {
			t.Fatalf("round %d: expected 5 ticks, got %d", round, ran)
		}
		if len(rec.Pending) != 5 {
			t.Fatalf("round %d: each curve should re-arm once, got %d pending", round, len(rec.Pending))
		}
	}

	for _, id := range ids {
		timer, _ := ecs.GetComponent[*components.TimerComponent](em, id)
		if timer.Ticks != 3 {
			t.Errorf("curve %d: expected 3 ticks, got %d", id, timer.Ticks)
		}
		if !timer.Armed {
			t.Errorf("curve %d: timer should be armed", id)
		}
	}
	if rec.MoveCount != 15 {
		t.Errorf("expected 15 shape moves, got %d", rec.MoveCount)
	}
}

// TestStart_ExitOnInput 输入事件同步关闭窗口，之后不再执行任何 tick
func TestStart_ExitOnInput(t *testing.T) {
	sm, _, rec := newTestSceneManager(5)

	if err := sm.Start(8); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if rec.Handler == nil {
		t.Fatal("input handler should be bound")
	}

	rec.RunPending()
	moves := rec.MoveCount

	rec.FireInput()
	if !rec.Closed {
		t.Fatal("input should close the window")
	}
	if ran := rec.RunPending(); ran != 0 {
		t.Errorf("no tick should run after close, got %d", ran)
	}
	if rec.MoveCount != moves {
		t.Error("shapes must not move after close")
	}
}

func TestGenerateCurves_Deterministic(t *testing.T) {
	a, emA, _ := newTestSceneManager(99)
	b, emB, _ := newTestSceneManager(99)

	idsA, _ := a.GenerateCurves(12)
	idsB, _ := b.GenerateCurves(12)

	for i := range idsA {
		pa, _ := ecs.GetComponent[*components.SpiroComponent](emA, idsA[i])
		pb, _ := ecs.GetComponent[*components.SpiroComponent](emB, idsB[i])
		if *pa.Params != *pb.Params {
			t.Errorf("curve %d differs for identical seeds: %+v vs %+v", i, *pa.Params, *pb.Params)
		}
	}
}

func TestAddCurve(t *testing.T) {
	sm, em, rec := newTestSceneManager(6)
	params, err := sm.randomParams(1920, 1080)
	if err != nil {
		t.Fatalf("randomParams failed: %v", err)
	}

	id := sm.AddCurve(params, 3, -4, 2.0, "#ABCDEF")
	if got := sm.Curves(); len(got) != 1 || got[0] != id {
		t.Fatalf("expected curve list [%d], got %v", id, got)
	}

	vel, _ := ecs.GetComponent[*components.VelocityComponent](em, id)
	if vel.VX != 3 || vel.VY != -4 {
		t.Errorf("unexpected velocity (%d, %d)", vel.VX, vel.VY)
	}
	if len(rec.Shapes) != 0 {
		t.Error("AddCurve must not draw")
	}
}

// TestCurves_QueriedFromEntityStore 曲线列表来自实体存储，不含其他实体
func TestCurves_QueriedFromEntityStore(t *testing.T) {
	sm, em, rec := newTestSceneManager(7)

	other := em.CreateEntity()
	em.AddComponent(other, &components.StrokeComponent{Width: 1, Color: "#000000"})

	ids, err := sm.GenerateCurves(4)
	if err != nil {
		t.Fatalf("GenerateCurves failed: %v", err)
	}

	got := sm.Curves()
	if len(got) != len(ids) {
		t.Fatalf("expected %d curves, got %v", len(ids), got)
	}
	for i := range ids {
		if got[i] != ids[i] {
			t.Errorf("index %d: expected %d, got %d", i, ids[i], got[i])
		}
	}

	if err := sm.DrawAll(); err != nil {
		t.Fatalf("DrawAll failed: %v", err)
	}
	if len(rec.Shapes) != 4 {
		t.Errorf("only curves should be drawn, got %d shapes", len(rec.Shapes))
	}

	sm.StartAnimation()
	if len(rec.Pending) != 4 {
		t.Errorf("only curves should be armed, got %d", len(rec.Pending))
	}
}
