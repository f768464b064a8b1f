package components

import "github.com/decker502/spiros/pkg/spiro"

// SpiroComponent 曲线几何参数
// Params.Center 随动画移动；半径与偏移比例在实体生命周期内不变
type SpiroComponent struct {
	Params *spiro.Params
}
