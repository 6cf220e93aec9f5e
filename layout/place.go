package layout

// 引号字形及其相对字号的比例。
const (
	OpenQuote          = "『"
	CloseQuote         = "』"
	quoteSizeFactor    = 1.5 // 引号字号 = 字号 × 1.5
	quoteDistanceRatio = 1.2 // 引号与文字的距离 = 字号 × 1.2
)

// Place 将排版结果定位到画布上：文字整体水平居中，引号包住整段文字，
// 文字与引号组成的内容块整体垂直居中。
func Place(res Result, size Size, m Measurer, font FontResource) Placement {
	n := float64(len(res.Lines))
	totalHeight := n * res.LineHeight
	quoteHeight := res.FontSize * quoteSizeFactor
	quoteDistance := res.FontSize * quoteDistanceRatio

	contentHeight := totalHeight + quoteDistance*2
	startY := (size.Height - contentHeight) / 2

	textAreaWidth := widestLine(res.Lines, res.FontSize, m, font)
	textLeft := (size.Width - textAreaWidth) / 2
	textRight := textLeft + textAreaWidth

	placed := make([]PlacedLine, 0, len(res.Lines))
	for i, line := range res.Lines {
		placed = append(placed, PlacedLine{
			Content: line,
			X:       size.Width / 2,
			Y:       startY + quoteDistance + float64(i)*res.LineHeight + res.LineHeight/2,
		})
	}

	return Placement{
		Lines: placed,
		Open: Glyph{
			Rune: OpenQuote,
			X:    textLeft - quoteDistance,
			Y:    startY + quoteHeight/2,
			Size: quoteHeight,
		},
		Close: Glyph{
			Rune: CloseQuote,
			X:    textRight + quoteDistance - quoteHeight,
			Y:    startY + quoteDistance + totalHeight + quoteDistance - quoteHeight/2,
			Size: quoteHeight,
		},
		TextLeft:      textLeft,
		TextRight:     textRight,
		StartY:        startY,
		ContentHeight: contentHeight,
	}
}
