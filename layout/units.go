package layout

import (
	"fmt"
	"strconv"
	"strings"
)

// 画布上的 1 个逻辑像素对应 canvas 库中的 1mm，光栅化时按 1 像素/毫米输出，
// 因此字体字号（pt）需要按 mm→pt 换算。

// Conversion constants between pt and mm.
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
)

// PxToPt 将逻辑像素字号转换为字体系统使用的 pt。
func PxToPt(px float64) float64 { return px * MmToPt }

// PtToPx 将 pt 转回逻辑像素。
func PtToPx(pt float64) float64 { return pt * PtToMm }

// Unit 表示 DSL 中长度值的原始单位。
type Unit int

const (
	UnitNone Unit = iota
	UnitPX
	UnitPT
)

// UnitToString returns a short string for a Unit value.
func UnitToString(u Unit) string {
	switch u {
	case UnitPX:
		return "px"
	case UnitPT:
		return "pt"
	default:
		return ""
	}
}

// Length 保留数值及其单位。
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// ToPX 将长度换算为逻辑像素，无单位按像素处理。
func (l Length) ToPX() float64 {
	if l.Unit == UnitPT {
		return PtToPx(l.Value)
	}
	return l.Value
}

// ParseLength 解析 "1080"、"1080px"、"24pt" 形式的长度。
func ParseLength(value string) (Length, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return Length{}, fmt.Errorf("长度为空")
	}
	unit := UnitNone
	num := v
	for _, suf := range []struct {
		s string
		u Unit
	}{{"px", UnitPX}, {"pt", UnitPT}} {
		if strings.HasSuffix(v, suf.s) {
			unit = suf.u
			num = strings.TrimSpace(strings.TrimSuffix(v, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{}, fmt.Errorf("无法解析长度 %q: %w", value, err)
	}
	if f <= 0 {
		return Length{}, fmt.Errorf("长度必须为正数: %q", value)
	}
	return Length{Value: f, Unit: unit}, nil
}
