package card

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ByLCY/quotecard/binding"
	"github.com/ByLCY/quotecard/dsl"
	"github.com/ByLCY/quotecard/export"
	"github.com/ByLCY/quotecard/layout"
	"github.com/ByLCY/quotecard/theme"
)

// FromDeck 将解析后的卡组展开为渲染请求。
//
// 语句按顺序生效：赋值修改之后的卡片的默认值，card 指令与裸字符串各产生一张卡片。
// 文案与输出路径中的 ${path} 以 data 为数据源插值，另提供 date、theme、seed、index（从 1 开始）。
func FromDeck(doc *dsl.Document, data any, base Request) ([]Request, error) {
	if doc == nil || doc.Body == nil {
		return nil, fmt.Errorf("卡组为空")
	}
	current := base
	var out []Request
	for _, st := range doc.Body.Statements {
		switch {
		case st.Assignment != nil:
			if err := applySetting(&current, st.Assignment.Key, st.Assignment.Value.Text()); err != nil {
				return nil, fmt.Errorf("第 %d 行: %w", st.Assignment.Pos.Line, err)
			}
		case st.Command != nil:
			cmd := st.Command
			if cmd.Name != "card" {
				return nil, fmt.Errorf("第 %d 行: 未知指令 %q", cmd.Pos.Line, cmd.Name)
			}
			req := current
			for key, val := range cmd.ArgMap() {
				if err := applyCardArg(&req, key, val); err != nil {
					return nil, fmt.Errorf("第 %d 行: %w", cmd.Pos.Line, err)
				}
			}
			req.Quote = strings.Join(cmd.Texts(), "")
			out = append(out, expand(req, data, len(out)+1))
		case st.Text != nil:
			req := current
			req.Quote = string(st.Text.Value)
			out = append(out, expand(req, data, len(out)+1))
		}
	}
	return out, nil
}

// expand 对文案与输出路径做插值。
func expand(req Request, data any, index int) Request {
	req.Date = req.date()
	vars := binding.With(data, map[string]any{
		"date":  export.DateString(req.Date),
		"theme": string(renderedTheme(req.Theme)),
		"seed":  req.Seed,
		"index": index,
	})
	for _, path := range binding.Missing(req.Quote, vars) {
		logger().Warn("占位符无法解析", "card", index, "path", path)
	}
	req.Quote = binding.Interpolate(req.Quote, vars)
	req.Output = binding.Interpolate(req.Output, vars)
	return req
}

// renderedTheme 返回 Compose 实际会使用的主题，未知主题按默认主题计。
func renderedTheme(id theme.ID) theme.ID {
	if _, err := theme.Lookup(id); err != nil {
		return theme.Default
	}
	return id
}

func applySetting(req *Request, key, value string) error {
	switch key {
	case "theme", "seed", "output", "watermark":
		return applyCardArg(req, key, value)
	case "font":
		req.Font = layout.FontResource{Name: value, Src: value}
	case "date":
		t, err := ParseDate(value)
		if err != nil {
			return err
		}
		req.Date = t
	case "prefix":
		req.Prefix = value
	case "width", "height":
		length, err := layout.ParseLength(value)
		if err != nil {
			return fmt.Errorf("解析 %s 失败: %w", key, err)
		}
		if req.Size.Width <= 0 || req.Size.Height <= 0 {
			req.Size = layout.CardSize
		}
		if key == "width" {
			req.Size.Width = length.ToPX()
		} else {
			req.Size.Height = length.ToPX()
		}
	default:
		return fmt.Errorf("未知配置项 %q", key)
	}
	return nil
}

func applyCardArg(req *Request, key, value string) error {
	switch key {
	case "theme":
		id, err := theme.ParseID(value)
		if err != nil {
			// 交给 Compose 回退到默认主题并记录警告
			logger().Warn("卡组中的主题无法识别", "theme", value)
			id = theme.ID(value)
		}
		req.Theme = id
	case "seed":
		seed, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return fmt.Errorf("解析 seed 失败: %w", err)
		}
		req.Seed = seed
	case "output":
		req.Output = value
	case "watermark":
		req.Watermark = value
	default:
		return fmt.Errorf("card 不支持参数 %q", key)
	}
	return nil
}

// ParseDate 解析 YYYY.MM.DD 或 YYYY-MM-DD 形式的日期。
func ParseDate(value string) (time.Time, error) {
	for _, format := range []string{"2006.01.02", "2006-01-02"} {
		if t, err := time.ParseInLocation(format, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("无法解析日期 %q（应为 YYYY.MM.DD）", value)
}
