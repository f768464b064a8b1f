package utils

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// maxRGB 24 位颜色的最大值 0xFFFFFF
const maxRGB = 1<<24 - 1

// RandomHexColor 生成随机颜色，格式如 "#FFA500"
func RandomHexColor(r Rand) string {
	return fmt.Sprintf("#%06X", r.Intn(maxRGB+1))
}

// ParseHexColor 解析 "#RRGGBB" 或 "#RGB" 格式的颜色（大小写不敏感）
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}

	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 255,
	}, nil
}
