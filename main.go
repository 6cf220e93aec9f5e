package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ByLCY/quotecard/card"
	"github.com/ByLCY/quotecard/dsl"
	"github.com/ByLCY/quotecard/export"
	"github.com/ByLCY/quotecard/fonts"
	"github.com/ByLCY/quotecard/layout"
	"github.com/ByLCY/quotecard/measure"
	"github.com/ByLCY/quotecard/renderer"
	canvasrenderer "github.com/ByLCY/quotecard/renderer/canvas"
	"github.com/ByLCY/quotecard/theme"
)

// options 汇总命令行参数。
type options struct {
	text      string
	input     string
	themeName string
	seed      uint64
	font      string
	output    string
	format    canvasrenderer.Format
	date      time.Time
	data      any
	debugPath string
	dryRun    bool
}

func main() {
	text := flag.String("text", "", "金句文案（与 -in 二选一）")
	input := flag.String("in", "", "卡组 DSL 文件路径")
	themeName := flag.String("theme", string(theme.Default), "主题：starfield、ink、blob")
	seed := flag.Uint64("seed", 0, "装饰随机种子，未指定时按当前时间生成")
	font := flag.String("font", "", "字体：文件路径、system:<族名> 或 embed:<name>；默认依次尝试系统中文字体，最后用内置 "+fonts.Default)
	output := flag.String("out", "output", "输出目录，或单张卡片的文件路径")
	format := flag.String("format", "png", "输出格式：png 或 pdf")
	date := flag.String("date", "", "卡片日期 YYYY.MM.DD，默认今天")
	dataJSON := flag.String("data", "", "绑定到卡组的 JSON 数据")
	debug := flag.String("debug", "", "排版调试 JSON 输出路径")
	verbose := flag.Bool("v", false, "输出排版过程的调试日志")
	dryRun := flag.Bool("dry-run", false, "只做排版并输出调试 JSON，不渲染图片")
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	card.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	opts := options{
		text:      *text,
		input:     *input,
		themeName: *themeName,
		seed:      *seed,
		font:      *font,
		output:    *output,
		debugPath: *debug,
		dryRun:    *dryRun,
	}
	if !flagSet("seed") {
		opts.seed = uint64(time.Now().UnixNano())
	}

	f, err := canvasrenderer.ParseFormat(*format)
	if err != nil {
		log.Fatalf("解析输出格式失败: %v", err)
	}
	opts.format = f

	if *date != "" {
		t, err := card.ParseDate(*date)
		if err != nil {
			log.Fatalf("解析日期失败: %v", err)
		}
		opts.date = t
	}

	if *dataJSON != "" {
		if err := json.Unmarshal([]byte(*dataJSON), &opts.data); err != nil {
			log.Fatalf("解析 data JSON 失败: %v", err)
		}
	}

	baseDir := "."
	if opts.input != "" {
		baseDir = filepath.Dir(opts.input)
	}
	var (
		m layout.Measurer
		r renderer.Renderer
	)
	if opts.dryRun {
		ot := measure.NewOpenType(baseDir)
		defer ot.Close()
		m = ot
	} else {
		cr := canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{BaseDir: baseDir, Format: opts.format})
		m, r = cr, cr
	}

	written, err := run(opts, m, r)
	if err != nil {
		log.Fatalf("生成卡片失败: %v", err)
	}
	for _, path := range written {
		fmt.Printf("已生成卡片：%s\n", path)
	}
}

// run 串联解析、排版、渲染与写入，返回已写入的文件路径。dryRun 时 r 可为空。
func run(opts options, m layout.Measurer, r renderer.Renderer) ([]string, error) {
	if m == nil {
		return nil, fmt.Errorf("measurer 不能为空")
	}
	if r == nil && !opts.dryRun {
		return nil, fmt.Errorf("renderer 不能为空")
	}

	id, err := theme.ParseID(opts.themeName)
	if err != nil {
		return nil, err
	}
	fontSrc, err := absFontPath(opts.font)
	if err != nil {
		return nil, err
	}
	base := card.Request{
		Theme: id,
		Seed:  opts.seed,
		Date:  opts.date,
		Font:  layout.FontResource{Name: "Quote", Src: fontSrc},
	}

	reqs, err := requests(opts, base)
	if err != nil {
		return nil, err
	}

	namer := export.NewNamer()
	var written []string
	var debug []layout.Debug
	for _, req := range reqs {
		c, ok := card.Compose(req, m)
		if !ok {
			continue
		}
		debug = append(debug, c.Debug())
		if opts.dryRun {
			continue
		}
		data, err := r.Render(c)
		if err != nil {
			return written, fmt.Errorf("渲染卡片失败: %w", err)
		}
		path := namer.Next(outputPath(c, opts.output, opts.format, len(reqs) == 1))
		if err := export.Write(path, data); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	if opts.debugPath != "" {
		if err := export.EnsureDir(opts.debugPath); err != nil {
			return written, fmt.Errorf("创建调试目录失败: %w", err)
		}
		if err := layout.WriteDebugJSON(debug, opts.debugPath); err != nil {
			return written, fmt.Errorf("输出调试 JSON 失败: %w", err)
		}
	}
	return written, nil
}

// requests 根据 -in 或 -text 生成渲染请求。
func requests(opts options, base card.Request) ([]card.Request, error) {
	if opts.input == "" {
		if opts.text == "" {
			return nil, fmt.Errorf("需要 -text 或 -in 提供文案")
		}
		req := base
		req.Quote = opts.text
		return []card.Request{req}, nil
	}

	file, err := os.Open(opts.input)
	if err != nil {
		return nil, fmt.Errorf("无法打开卡组文件 %s: %w", opts.input, err)
	}
	defer file.Close()

	doc, err := dsl.Parse(opts.input, file)
	if err != nil {
		return nil, fmt.Errorf("解析卡组失败: %w", err)
	}
	reqs, err := card.FromDeck(doc, opts.data, base)
	if err != nil {
		return nil, fmt.Errorf("展开卡组失败: %w", err)
	}
	return reqs, nil
}

// outputPath 决定卡片的输出路径：卡组指定的路径优先；
// 单张卡片且 -out 带有对应扩展名时直接使用 -out；否则视 -out 为目录并按日期命名。
func outputPath(c *card.Card, out string, format canvasrenderer.Format, single bool) string {
	if c.Output != "" {
		return c.Output
	}
	if single && strings.EqualFold(filepath.Ext(out), format.Ext()) {
		return out
	}
	return filepath.Join(out, export.FileName(c.Prefix, c.Date, format.Ext()))
}

// absFontPath 把 -font 的相对文件路径按当前目录转为绝对路径，
// 卡组内的相对字体路径仍按卡组所在目录解析。
func absFontPath(src string) (string, error) {
	if src == "" || filepath.IsAbs(src) {
		return src, nil
	}
	if strings.HasPrefix(src, "embed:") || strings.HasPrefix(src, "built-in:") || strings.HasPrefix(src, fonts.SystemPrefix) {
		return src, nil
	}
	abs, err := filepath.Abs(src)
	if err != nil {
		return "", fmt.Errorf("解析字体路径 %s 失败: %w", src, err)
	}
	return abs, nil
}

func flagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
