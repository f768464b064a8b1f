package canvas

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/decker502/spiros/pkg/utils"
	"github.com/jbeda/geom"
)

// ErrUnknownShape 句柄不存在
var ErrUnknownShape = errors.New("unknown shape")

// Shape 保留模式下的一条折线
// Points 在创建后不再变化，平移只累加到 Offset
type Shape struct {
	Points   []geom.Coord
	Offset   geom.Coord
	Width    float64
	Color    color.RGBA
	HexColor string
}

// ShapeStore 管理所有已创建的折线
type ShapeStore struct {
	nextID ShapeID
	shapes map[ShapeID]*Shape
	order  []ShapeID // 绘制顺序即创建顺序
}

// NewShapeStore 创建空的图形存储
func NewShapeStore() *ShapeStore {
	return &ShapeStore{
		nextID: 1,
		shapes: make(map[ShapeID]*Shape),
	}
}

// Create 新建折线；点序列会被复制
func (s *ShapeStore) Create(points []geom.Coord, width float64, hexColor string) (ShapeID, error) {
	if len(points) < 2 {
		return 0, fmt.Errorf("line shape needs at least 2 points, got %d", len(points))
	}
	c, err := utils.ParseHexColor(hexColor)
	if err != nil {
		return 0, fmt.Errorf("create line shape: %w", err)
	}

	id := s.nextID
	s.nextID++
	s.shapes[id] = &Shape{
		Points:   append([]geom.Coord(nil), points...),
		Width:    width,
		Color:    c,
		HexColor: hexColor,
	}
	s.order = append(s.order, id)
	return id, nil
}

// Move 平移图形，句柄不存在时返回 false
func (s *ShapeStore) Move(id ShapeID, dx, dy float64) bool {
	shape, ok := s.shapes[id]
	if !ok {
		return false
	}
	shape.Offset = shape.Offset.Plus(geom.Coord{X: dx, Y: dy})
	return true
}

// SetColor 修改图形颜色
func (s *ShapeStore) SetColor(id ShapeID, hexColor string) error {
	shape, ok := s.shapes[id]
	if !ok {
		return fmt.Errorf("set color on shape %d: %w", id, ErrUnknownShape)
	}
	c, err := utils.ParseHexColor(hexColor)
	if err != nil {
		return fmt.Errorf("set color on shape %d: %w", id, err)
	}
	shape.Color = c
	shape.HexColor = hexColor
	return nil
}

// Len 图形数量
func (s *ShapeStore) Len() int {
	return len(s.order)
}

// Each 按创建顺序遍历
func (s *ShapeStore) Each(fn func(id ShapeID, shape *Shape)) {
	for _, id := range s.order {
		fn(id, s.shapes[id])
	}
}
