package components

// VelocityComponent 每个 tick 的位移（像素）
// 碰撞边界时对应轴取反
type VelocityComponent struct {
	VX int
	VY int
}
