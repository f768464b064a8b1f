package utils

// Rand 是随机数来源的最小接口
// *rand.Rand 满足该接口；测试中可以注入固定种子或脚本化的实现
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// RandIntRange 返回 [lo, hi] 闭区间内的随机整数
// hi < lo 时返回 lo
func RandIntRange(r Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.Intn(hi-lo+1)
}

// RandFloatRange 返回 [lo, hi) 区间内的随机浮点数
func RandFloatRange(r Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + r.Float64()*(hi-lo)
}

// RandomSign 等概率返回 1 或 -1
func RandomSign(r Rand) int {
	if r.Intn(2) == 0 {
		return 1
	}
	return -1
}
