package layout

import (
	"math"
	"unicode/utf8"
)

// InitialFontSize 按行数与总字数给出起始字号，只是经验值，不代表已测量通过。
func InitialFontSize(lineCount, chars int) float64 {
	switch lineCount {
	case 1:
		switch {
		case chars <= 2:
			return 300
		case chars <= 4:
			return 260
		case chars <= 6:
			return 220
		case chars <= 8:
			return 200
		case chars <= 12:
			return 180
		default:
			return 160
		}
	case 2:
		switch {
		case chars <= 6:
			return 240
		case chars <= 10:
			return 200
		case chars <= 14:
			return 180
		default:
			return 160
		}
	default:
		return 140
	}
}

// Fit 为给定的行选择字号，使最宽行不超过 availableWidth 的 90%，
// 文本块高度不超过 canvasHeight 的 70%。
//
// 字号每次减小 10，直到满足约束或降到 80；之后若文本块仍侵入上下边距，
// 直接按剩余高度重新计算字号（可能低于 80）。Fit 不会失败。
//
// 起始字号按各行字数之和估计；已知原文时用 Layout，按原文字数（含逗号）估计。
func Fit(lines []string, availableWidth, canvasHeight float64, m Measurer, font FontResource) Result {
	chars := 0
	for _, line := range lines {
		chars += utf8.RuneCountInString(line)
	}
	return fit(lines, chars, availableWidth, canvasHeight, m, font)
}

func fit(lines []string, chars int, availableWidth, canvasHeight float64, m Measurer, font FontResource) Result {
	n := float64(len(lines))
	fontSize := InitialFontSize(len(lines), chars)
	initial := fontSize

	maxSafeHeight := canvasHeight * HeightThreshold
	verticalPadding := canvasHeight * VerticalPaddingRatio
	widthLimit := availableWidth * WidthThreshold

	shrinks := 0
	for {
		maxTextWidth := widestLine(lines, fontSize, m, font)
		totalTextHeight := n * (fontSize * LineHeightFactor)
		tooLarge := maxTextWidth > widthLimit || totalTextHeight > maxSafeHeight
		if tooLarge {
			fontSize -= ShrinkStep
			shrinks++
		}
		if !tooLarge || fontSize <= MinFontSize {
			break
		}
	}

	clamped := false
	budget := canvasHeight - verticalPadding*2
	if n*(fontSize*LineHeightFactor) > budget {
		fontSize = math.Floor(budget / (n * LineHeightFactor))
		if fontSize < 1 {
			fontSize = 1
		}
		clamped = true
	}

	logger().Debug("字号计算完成",
		"lines", len(lines),
		"chars", chars,
		"initial", initial,
		"fontSize", fontSize,
		"shrinks", shrinks,
		"clamped", clamped,
	)

	return Result{
		Lines:           lines,
		FontSize:        fontSize,
		LineHeight:      fontSize * LineHeightFactor,
		InitialFontSize: initial,
		Shrinks:         shrinks,
		Clamped:         clamped,
	}
}

// Layout 串联分行与字号计算，availableWidth 取画布宽度去掉左右 15% 边距。
func Layout(text string, size Size, m Measurer, font FontResource) Result {
	zone := NewSafeZone(size)
	return fit(BreakLines(text), utf8.RuneCountInString(text), zone.AvailableWidth, size.Height, m, font)
}

func widestLine(lines []string, fontSize float64, m Measurer, font FontResource) float64 {
	widest := 0.0
	for _, line := range lines {
		if w := m.MeasureText(line, fontSize, font); w > widest {
			widest = w
		}
	}
	return widest
}

// EstimateTextWidth 在无法测量时粗略估算文本宽度：全角字符按一个字号，其余按半个字号。
func EstimateTextWidth(content string, fontSize float64) float64 {
	width := 0.0
	for _, r := range content {
		if r < 0x2E80 {
			width += fontSize * 0.55
			continue
		}
		width += fontSize
	}
	return width
}
