// Package theme 定义卡片的视觉主题：背景绘制、文字绘制与配色。
//
// 主题是封闭集合，由 ID 选择；新增主题即新增一个实现 Theme 的类型并在 registry 中登记。
package theme

import (
	"fmt"
	"image/color"
	"math/rand/v2"
	"strings"

	"github.com/tdewolff/canvas"
)

// ID 枚举可用主题。
type ID string

const (
	Starfield ID = "starfield" // 星空光影
	Ink       ID = "ink"       // 水墨
	Blob      ID = "blob"      // 简约渐变
)

// Default 是未指定主题时使用的主题。
const Default = Starfield

var aliases = map[string]ID{
	"starfield": Starfield,
	"light":     Starfield,
	"ink":       Ink,
	"blob":      Blob,
	"simple":    Blob,
}

var registry = map[ID]Theme{
	Starfield: starfield{},
	Ink:       ink{},
	Blob:      blob{},
}

// ParseID 解析主题名（大小写不敏感，兼容 light/simple 旧名）。
func ParseID(name string) (ID, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return Default, nil
	}
	if id, ok := aliases[key]; ok {
		return id, nil
	}
	return "", fmt.Errorf("未知主题 %q（可选：starfield、ink、blob）", name)
}

// Lookup 返回 ID 对应的主题实现。
func Lookup(id ID) (Theme, error) {
	t, ok := registry[id]
	if !ok {
		return nil, fmt.Errorf("未知主题 %q", id)
	}
	return t, nil
}

// IDs 返回全部主题 ID，顺序固定。
func IDs() []ID { return []ID{Starfield, Ink, Blob} }

// Theme 是主题的公共能力。
type Theme interface {
	ID() ID
	// DrawBackground 铺满整个画布。
	DrawBackground(s *Surface)
	// DrawText 以 (x, y) 为中心绘制一行文字，y 为垂直中线。
	DrawText(s *Surface, line string, x, y, fontSize float64)
	Colors() Colors
}

// Colors 是主题配色；Date 与 Watermark 为空时使用 Decoration。
type Colors struct {
	Text       color.RGBA
	Decoration color.RGBA
	Date       *color.RGBA
	Watermark  *color.RGBA
}

// DateColor 返回日期颜色。
func (c Colors) DateColor() color.RGBA {
	if c.Date != nil {
		return *c.Date
	}
	return c.Decoration
}

// WatermarkColor 返回水印颜色。
func (c Colors) WatermarkColor() color.RGBA {
	if c.Watermark != nil {
		return *c.Watermark
	}
	return c.Decoration
}

// Painter 是主题用到的绘图操作，*canvas.Context 满足该接口。
type Painter interface {
	SetFillColor(col color.Color)
	SetFillGradient(gradient canvas.Gradient)
	SetStrokeColor(col color.Color)
	SetStrokeWidth(width float64)
	DrawPath(x, y float64, paths ...*canvas.Path)
	DrawText(x, y float64, text *canvas.Text)
}

var _ Painter = (*canvas.Context)(nil)

// FaceFunc 按像素字号与颜色返回字体面。
type FaceFunc func(size float64, col color.Color) *canvas.FontFace

// Surface 是一次绘制所需的全部依赖。Rand 由调用方显式设种，相同种子得到相同画面。
type Surface struct {
	Painter Painter
	Width   float64
	Height  float64
	Face    FaceFunc
	Rand    *rand.Rand
}

// NewRand 根据种子创建随机源。
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// between 返回 [lo, hi) 内的随机数。
func (s *Surface) between(lo, hi float64) float64 {
	return lo + s.Rand.Float64()*(hi-lo)
}

// FillRect 以纯色填充矩形。
func (s *Surface) FillRect(x, y, w, h float64, col color.Color) {
	s.Painter.SetFillColor(col)
	s.Painter.DrawPath(x, y, canvas.Rectangle(w, h))
}

// MiddleBaseline 将垂直中线换算为基线位置（画布坐标 y 向下）。
func MiddleBaseline(face *canvas.FontFace, y float64) float64 {
	m := face.Metrics()
	return y + (m.Ascent-m.Descent)/2
}

// DrawCentered 以 (x, y) 为中心绘制一行纯色文字。
func DrawCentered(s *Surface, line string, x, y, fontSize float64, col color.Color) {
	face := s.Face(fontSize, col)
	s.Painter.DrawText(x, MiddleBaseline(face, y), canvas.NewTextLine(face, line, canvas.Center))
}

// rgba 以 0-255 的 RGB 与 0-1 的透明度构造颜色。
func rgba(r, g, b uint8, a float64) color.RGBA {
	return canvas.RGBA(float64(r)/255.0, float64(g)/255.0, float64(b)/255.0, a)
}

func ptr(c color.RGBA) *color.RGBA { return &c }

func linear(x0, y0, x1, y1 float64, stops ...stop) *canvas.LinearGradient {
	g := canvas.NewLinearGradient(canvas.Point{X: x0, Y: y0}, canvas.Point{X: x1, Y: y1})
	for _, st := range stops {
		g.Add(st.t, st.c)
	}
	return g
}

func radial(x, y, r float64, stops ...stop) *canvas.RadialGradient {
	g := canvas.NewRadialGradient(canvas.Point{X: x, Y: y}, 0, canvas.Point{X: x, Y: y}, r)
	for _, st := range stops {
		g.Add(st.t, st.c)
	}
	return g
}

type stop struct {
	t float64
	c color.RGBA
}
