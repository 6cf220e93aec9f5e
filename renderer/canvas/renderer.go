package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"github.com/tdewolff/canvas/renderers/rasterizer"

	"github.com/ByLCY/quotecard/card"
	"github.com/ByLCY/quotecard/export"
	"github.com/ByLCY/quotecard/fonts"
	"github.com/ByLCY/quotecard/layout"
	"github.com/ByLCY/quotecard/renderer"
	"github.com/ByLCY/quotecard/theme"
)

// 页脚的位置与字号（逻辑像素，相对画布底边）。
const (
	dateSize       = 32.0
	dateOffset     = 120.0
	watermarkSize  = 26.0
	watermarkShift = 90.0
	upperRuleShift = 180.0
	upperRuleHalf  = 150.0
	lowerRuleShift = 60.0
	lowerRuleHalf  = 100.0
	ruleWidth      = 1.0
)

// Format 是输出文件格式。
type Format string

const (
	PNG Format = "png"
	PDF Format = "pdf"
)

// ParseFormat 解析输出格式，空字符串视为 PNG。
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "png":
		return PNG, nil
	case "pdf":
		return PDF, nil
	default:
		return "", fmt.Errorf("不支持的输出格式 %q（可选：png、pdf）", s)
	}
}

// Ext 返回带点的文件扩展名。
func (f Format) Ext() string { return "." + string(f) }

// Renderer draws cards via github.com/tdewolff/canvas.
// 1 个画布单位（mm）对应 1 个逻辑像素，PNG 以 DPMM(1) 光栅化，输出尺寸与画布一致。
type Renderer struct {
	baseDir string
	format  Format

	// injected resources
	fontBlobs map[string][]byte // by unique name

	systemFonts []string

	fontMu         sync.Mutex
	fontFamilies   map[string]*fontFamilyEntry
	fallbackFamily *canvas.FontFamily
}

var (
	_ renderer.Renderer = (*Renderer)(nil)
	_ layout.Measurer   = (*Renderer)(nil)
)

type fontFamilyEntry struct {
	family *canvas.FontFamily
	style  canvas.FontStyle
}

// Options configures the canvas renderer.
type Options struct {
	BaseDir string
	Fonts   map[string]Resource // built-in fonts accessible via built-in:<name>
	Format  Format
	// SystemFonts 是未指定字体或字体加载失败时依次尝试的系统字体族名，nil 时使用 fonts.SystemFallbacks。
	SystemFonts []string
}

// Resource can be provided either by Bytes or by Path.
type Resource struct {
	Bytes []byte
	Path  string
}

// NewRenderer creates a PNG renderer rooted at baseDir for resolving fonts.
func NewRenderer(baseDir string) *Renderer { return NewRendererWithOptions(Options{BaseDir: baseDir}) }

// NewRendererWithOptions creates a renderer with injected resources and optional baseDir.
func NewRendererWithOptions(opts Options) *Renderer {
	format := opts.Format
	if format == "" {
		format = PNG
	}
	systemFonts := opts.SystemFonts
	if systemFonts == nil {
		systemFonts = fonts.SystemFallbacks
	}
	r := &Renderer{
		baseDir:      opts.BaseDir,
		format:       format,
		systemFonts:  systemFonts,
		fontBlobs:    map[string][]byte{},
		fontFamilies: map[string]*fontFamilyEntry{},
	}
	for name, res := range opts.Fonts {
		if name == "" {
			continue
		}
		if len(res.Bytes) > 0 {
			r.fontBlobs[name] = res.Bytes
			continue
		}
		if res.Path != "" {
			data, _ := os.ReadFile(res.Path) // 读取失败在实际使用时回退到内置字体
			if len(data) > 0 {
				r.fontBlobs[name] = data
			}
		}
	}
	return r
}

// Format 返回渲染器的输出格式。
func (r *Renderer) Format() Format { return r.format }

// MeasureText 实现 layout.Measurer：以像素字号测量一行文字的宽度（像素）。
func (r *Renderer) MeasureText(content string, fontSize float64, font layout.FontResource) float64 {
	family, style, err := r.ensureFontFamily(font)
	if err != nil {
		return layout.EstimateTextWidth(content, fontSize)
	}
	face := family.Face(layout.PxToPt(fontSize), color.Black, style, canvas.FontNormal)
	return face.TextWidth(content)
}

// Render 绘制卡片并按配置的格式编码。
func (r *Renderer) Render(c *card.Card) ([]byte, error) {
	if c == nil {
		return nil, fmt.Errorf("卡片为空")
	}
	if c.Theme == nil {
		return nil, fmt.Errorf("卡片缺少主题")
	}

	cv := canvas.New(c.Size.Width, c.Size.Height)
	ctx := canvas.NewContext(cv)
	ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与排版保持左上角为原点

	if err := r.draw(ctx, c); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	switch r.format {
	case PDF:
		writer := pdf.New(&buf, c.Size.Width, c.Size.Height, nil)
		writer.SetInfo(c.Quote, "", string(c.Theme.ID()), "", "quotecard")
		cv.RenderTo(writer)
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("写入 PDF 失败: %w", err)
		}
	default:
		img := rasterizer.Draw(cv, canvas.DPMM(1.0), canvas.DefaultColorSpace)
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("编码 PNG 失败: %w", err)
		}
	}
	return buf.Bytes(), nil
}

// draw 依次绘制背景、上引号、正文、下引号与页脚。
func (r *Renderer) draw(ctx *canvas.Context, c *card.Card) error {
	family, style, err := r.ensureFontFamily(c.Font)
	if err != nil {
		return err
	}
	face := func(size float64, col color.Color) *canvas.FontFace {
		return family.Face(layout.PxToPt(size), col, style, canvas.FontNormal)
	}
	s := &theme.Surface{
		Painter: ctx,
		Width:   c.Size.Width,
		Height:  c.Size.Height,
		Face:    face,
		Rand:    theme.NewRand(c.Seed),
	}
	colors := c.Theme.Colors()

	c.Theme.DrawBackground(s)

	drawGlyph(s, c.Placement.Open, colors.Text)
	for _, line := range c.Placement.Lines {
		c.Theme.DrawText(s, line.Content, line.X, line.Y, c.Layout.FontSize)
	}
	drawGlyph(s, c.Placement.Close, colors.Text)

	drawFooter(s, c, colors)
	return nil
}

// drawGlyph 以 g.X 为左边界、g.Y 为垂直中线绘制引号。
func drawGlyph(s *theme.Surface, g layout.Glyph, col color.Color) {
	if g.Rune == "" || g.Size <= 0 {
		return
	}
	face := s.Face(g.Size, col)
	s.Painter.DrawText(g.X, theme.MiddleBaseline(face, g.Y), canvas.NewTextLine(face, g.Rune, canvas.Left))
}

func drawFooter(s *theme.Surface, c *card.Card, colors theme.Colors) {
	cx := s.Width / 2
	theme.DrawCentered(s, export.DateString(c.Date), cx, s.Height-dateOffset, dateSize, colors.DateColor())

	drawRule(s, cx, s.Height-upperRuleShift, upperRuleHalf)
	drawRule(s, cx, s.Height-lowerRuleShift, lowerRuleHalf)

	if c.Watermark != "" {
		theme.DrawCentered(s, c.Watermark, cx, s.Height-watermarkShift, watermarkSize, colors.WatermarkColor())
	}
}

// drawRule 画一条两端淡出的水平细线，渐变范围固定为上方装饰线的宽度。
func drawRule(s *theme.Surface, cx, y, half float64) {
	g := canvas.NewLinearGradient(
		canvas.Point{X: cx - upperRuleHalf, Y: y},
		canvas.Point{X: cx + upperRuleHalf, Y: y},
	)
	g.Add(0, canvas.RGBA(51.0/255, 51.0/255, 51.0/255, 0))
	g.Add(0.5, canvas.RGBA(51.0/255, 51.0/255, 51.0/255, 0.3))
	g.Add(1, canvas.RGBA(51.0/255, 51.0/255, 51.0/255, 0))
	s.Painter.SetFillGradient(g)
	s.Painter.DrawPath(cx-half, y-ruleWidth/2, canvas.Rectangle(half*2, ruleWidth))
}

func (r *Renderer) ensureFontFamily(font layout.FontResource) (*canvas.FontFamily, canvas.FontStyle, error) {
	if font.Src == "" {
		return r.fallback()
	}
	key := fontCacheKey(font)
	r.fontMu.Lock()
	if entry, ok := r.fontFamilies[key]; ok {
		r.fontMu.Unlock()
		return entry.family, entry.style, nil
	}
	r.fontMu.Unlock()

	style := parseFontStyle(font.Style)
	familyName := font.Family
	if familyName == "" {
		familyName = font.Name
	}
	if familyName == "" {
		familyName = "Quote"
	}
	family := canvas.NewFontFamily(familyName)

	if err := r.loadFontIntoFamily(family, font, style); err != nil {
		layout.Logger().Warn("字体加载失败，使用后备字体", "src", font.Src, "err", err)
		fallback, fbStyle, fbErr := r.fallback()
		if fbErr != nil {
			return nil, canvas.FontRegular, err
		}
		family, style = fallback, fbStyle
	}

	r.fontMu.Lock()
	defer r.fontMu.Unlock()
	r.fontFamilies[key] = &fontFamilyEntry{family: family, style: style}
	return family, style, nil
}

func (r *Renderer) loadFontIntoFamily(family *canvas.FontFamily, font layout.FontResource, style canvas.FontStyle) error {
	if name, ok := strings.CutPrefix(font.Src, fonts.SystemPrefix); ok {
		if err := family.LoadSystemFont(name, style); err != nil {
			return fmt.Errorf("加载系统字体 %s 失败: %w", name, err)
		}
		return nil
	}
	data, err := r.loadFontBytes(font)
	if err != nil {
		return err
	}
	return family.LoadFont(data, 0, style)
}

func (r *Renderer) loadFontBytes(font layout.FontResource) ([]byte, error) {
	src := font.Src
	if strings.HasPrefix(src, "built-in:") || strings.HasPrefix(src, "builtin:") {
		name := strings.TrimPrefix(strings.TrimPrefix(src, "built-in:"), "builtin:")
		if blob, ok := r.fontBlobs[name]; ok {
			return blob, nil
		}
		return nil, fmt.Errorf("找不到内置字体资源 built-in:%s", name)
	}
	if strings.HasPrefix(src, "embed:") {
		return fonts.Load(src)
	}
	path := src
	if r.baseDir == "" && !filepath.IsAbs(path) {
		return nil, fmt.Errorf("未指定资源目录时不允许直接使用字体路径：%s（请改用 built-in: 或 embed:）", src)
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.baseDir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取字体文件失败: %w", err)
	}
	return data, nil
}

// fallback 依次尝试 systemFonts 中的系统字体，都不可用时使用内置的 Go 字体。
func (r *Renderer) fallback() (*canvas.FontFamily, canvas.FontStyle, error) {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()
	if r.fallbackFamily != nil {
		return r.fallbackFamily, canvas.FontRegular, nil
	}
	for _, name := range r.systemFonts {
		family := canvas.NewFontFamily("quotecard-fallback")
		if err := family.LoadSystemFont(name, canvas.FontRegular); err != nil {
			continue
		}
		layout.Logger().Info("使用系统字体", "family", name)
		r.fallbackFamily = family
		return family, canvas.FontRegular, nil
	}
	layout.Logger().Warn("未找到系统中文字体，使用内置字体，中文字形可能无法显示", "font", fonts.Default, "tried", r.systemFonts)
	data, err := fonts.Load(fonts.Default)
	if err != nil {
		return nil, canvas.FontRegular, err
	}
	family := canvas.NewFontFamily("quotecard-fallback")
	if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
		return nil, canvas.FontRegular, fmt.Errorf("加载内置字体失败: %w", err)
	}
	r.fallbackFamily = family
	return family, canvas.FontRegular, nil
}

func parseFontStyle(style string) canvas.FontStyle {
	if style == "" {
		return canvas.FontRegular
	}
	s := strings.ToLower(style)
	var result canvas.FontStyle
	switch {
	case strings.Contains(s, "black"):
		result = canvas.FontBlack
	case strings.Contains(s, "extrabold"):
		result = canvas.FontExtraBold
	case strings.Contains(s, "semibold"), strings.Contains(s, "demibold"):
		result = canvas.FontSemiBold
	case strings.Contains(s, "bold"):
		result = canvas.FontBold
	case strings.Contains(s, "medium"):
		result = canvas.FontMedium
	case strings.Contains(s, "light"):
		result = canvas.FontLight
	default:
		result = canvas.FontRegular
	}
	if strings.Contains(s, "italic") || strings.Contains(s, "oblique") {
		result |= canvas.FontItalic
	}
	return result
}

func fontCacheKey(font layout.FontResource) string {
	return fmt.Sprintf("%s|%s|%s", font.Name, font.Src, font.Style)
}
