// Package card 把一段文案组合成可渲染的卡片：规范化、断行、求字号、定位并选定主题。
package card

import (
	"log/slog"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/ByLCY/quotecard/layout"
	"github.com/ByLCY/quotecard/theme"
)

// DefaultWatermark 是卡片底部的默认水印。
const DefaultWatermark = "— 金句卡片 —"

// Request 描述一次渲染所需的全部输入。零值字段使用默认值。
type Request struct {
	Quote     string
	Theme     theme.ID
	Seed      uint64
	Date      time.Time
	Watermark string
	Font      layout.FontResource
	Size      layout.Size
	// Output 为输出路径，空时由调用方按日期命名。
	Output string
	Prefix string
}

// Card 是组合完成的卡片，渲染器只读取它。
type Card struct {
	Quote     string
	Theme     theme.Theme
	Seed      uint64
	Date      time.Time
	Watermark string
	Font      layout.FontResource
	Size      layout.Size
	Layout    layout.Result
	Placement layout.Placement
	Output    string
	Prefix    string
}

// SetLogger 设置 card 与 layout 共用的日志器；传入 nil 恢复静默。
func SetLogger(l *slog.Logger) {
	layout.SetLogger(l)
}

func logger() *slog.Logger { return layout.Logger() }

// Normalize 去除首尾空白并做 NFC 规范化，保证字数统计稳定。
func Normalize(text string) string {
	return norm.NFC.String(strings.TrimSpace(text))
}

// Compose 执行一次完整排版。文案为空时返回 ok=false，不视为错误。
func Compose(req Request, m layout.Measurer) (*Card, bool) {
	quote := Normalize(req.Quote)
	if quote == "" {
		logger().Info("文案为空，跳过渲染", "output", req.Output)
		return nil, false
	}

	size := req.Size
	if size.Width <= 0 || size.Height <= 0 {
		size = layout.CardSize
	}

	th, err := theme.Lookup(req.Theme)
	if err != nil {
		if req.Theme != "" {
			logger().Warn("未知主题，使用默认主题", "theme", req.Theme, "default", theme.Default)
		}
		th, _ = theme.Lookup(theme.Default)
	}

	watermark := req.Watermark
	if watermark == "" {
		watermark = DefaultWatermark
	}

	res := layout.Layout(quote, size, m, req.Font)
	placement := layout.Place(res, size, m, req.Font)

	logger().Debug("卡片排版完成",
		"theme", th.ID(),
		"lines", len(res.Lines),
		"fontSize", res.FontSize,
		"shrinks", res.Shrinks,
		"clamped", res.Clamped,
	)

	return &Card{
		Quote:     quote,
		Theme:     th,
		Seed:      req.Seed,
		Date:      req.date(),
		Watermark: watermark,
		Font:      req.Font,
		Size:      size,
		Layout:    res,
		Placement: placement,
		Output:    req.Output,
		Prefix:    req.Prefix,
	}, true
}

// Debug 返回卡片的排版诊断信息。
func (c *Card) Debug() layout.Debug {
	return layout.Debug{
		Text:      c.Quote,
		Theme:     string(c.Theme.ID()),
		Seed:      c.Seed,
		Canvas:    c.Size,
		SafeZone:  layout.NewSafeZone(c.Size),
		Font:      c.Font.Src,
		Layout:    c.Layout,
		Placement: c.Placement,
	}
}

func (r Request) date() time.Time {
	if r.Date.IsZero() {
		return time.Now()
	}
	return r.Date
}
