package renderer

import "github.com/ByLCY/quotecard/card"

// Renderer 将组合好的卡片输出为最终文件，例如 PNG 图像或 PDF。
// Render 返回生成的二进制数据以及可能的错误。
type Renderer interface {
	Render(c *card.Card) ([]byte, error)
}
