package canvas

import (
	"errors"
	"image/color"
	"testing"

	"github.com/jbeda/geom"
)

func testPoints() []geom.Coord {
	return []geom.Coord{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}
}

func TestShapeStore_Create(t *testing.T) {
	s := NewShapeStore()
	pts := testPoints()

	id, err := s.Create(pts, 1.25, "#FF0000")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if id == 0 {
		t.Fatal("shape id 0 is reserved")
	}

	shape, ok := s.shapes[id]
	if !ok {
		t.Fatal("shape should exist")
	}
	if shape.Width != 1.25 {
		t.Errorf("expected width 1.25, got %f", shape.Width)
	}
	if shape.Color != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("unexpected color %v", shape.Color)
	}

	// 修改调用方的切片不应影响已创建的图形
	pts[0].X = 999
	if shape.Points[0].X != 0 {
		t.Error("points should be copied on create")
	}
}

func TestShapeStore_CreateErrors(t *testing.T) {
	s := NewShapeStore()

	if _, err := s.Create([]geom.Coord{{X: 1, Y: 1}}, 1, "#FFFFFF"); err == nil {
		t.Error("expected error for single point")
	}
	if _, err := s.Create(testPoints(), 1, "red"); err == nil {
		t.Error("expected error for invalid color")
	}
	if s.Len() != 0 {
		t.Errorf("failed creates should not add shapes, got %d", s.Len())
	}
}

func TestShapeStore_MoveAccumulates(t *testing.T) {
	s := NewShapeStore()
	id, _ := s.Create(testPoints(), 1, "#000000")

	s.Move(id, 5, -3)
	s.Move(id, -2, 7)

	shape := s.shapes[id]
	if shape.Offset != (geom.Coord{X: 3, Y: 4}) {
		t.Errorf("expected offset (3, 4), got %v", shape.Offset)
	}

	if shape.Points[2] != (geom.Coord{X: 10, Y: 10}) {
		t.Error("base points must not change on move")
	}

	if s.Move(ShapeID(99), 1, 1) {
		t.Error("move on unknown shape should report false")
	}
}

func TestShapeStore_SetColor(t *testing.T) {
	s := NewShapeStore()
	id, _ := s.Create(testPoints(), 1, "#000000")

	if err := s.SetColor(id, "#00FF00"); err != nil {
		t.Fatalf("SetColor failed: %v", err)
	}
	shape := s.shapes[id]
	if shape.HexColor != "#00FF00" || shape.Color.G != 255 {
		t.Errorf("color not applied: %s %v", shape.HexColor, shape.Color)
	}

	if err := s.SetColor(ShapeID(99), "#00FF00"); !errors.Is(err, ErrUnknownShape) {
		t.Errorf("expected ErrUnknownShape, got %v", err)
	}
}

func TestShapeStore_EachOrder(t *testing.T) {
	s := NewShapeStore()
	var want []ShapeID
	for i := 0; i < 5; i++ {
		id, _ := s.Create(testPoints(), 1, "#123456")
		want = append(want, id)
	}

	var got []ShapeID
	s.Each(func(id ShapeID, _ *Shape) { got = append(got, id) })

	if len(got) != len(want) {
		t.Fatalf("expected %d shapes, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: expected %d, got %d", i, want[i], got[i])
		}
	}
}
