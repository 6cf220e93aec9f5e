package layout

// Measurer 由渲染表面提供，返回文本在给定字号下的渲染宽度（与画布同单位）。
// 对相同的输入必须返回相同的结果，否则缩小循环的结果不可复现。
type Measurer interface {
	MeasureText(content string, fontSize float64, font FontResource) float64
}

// MeasureFunc 让普通函数满足 Measurer。
type MeasureFunc func(content string, fontSize float64, font FontResource) float64

// MeasureText 实现 Measurer。
func (f MeasureFunc) MeasureText(content string, fontSize float64, font FontResource) float64 {
	return f(content, fontSize, font)
}
