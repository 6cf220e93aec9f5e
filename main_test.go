package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"

	"github.com/ByLCY/quotecard/card"
	"github.com/ByLCY/quotecard/layout"
	"github.com/ByLCY/quotecard/measure"
	canvasrenderer "github.com/ByLCY/quotecard/renderer/canvas"
)

// stubRenderer 以文案作为输出内容，便于断言写入结果。
type stubRenderer struct{}

func (stubRenderer) Render(c *card.Card) ([]byte, error) { return []byte(c.Quote), nil }

var stubMeasurer = layout.MeasureFunc(func(content string, fontSize float64, _ layout.FontResource) float64 {
	return float64(utf8.RuneCountInString(content)) * fontSize
})

var testDate = time.Date(2026, 10, 18, 0, 0, 0, 0, time.Local)

func baseOptions(t *testing.T) options {
	return options{
		themeName: "ink",
		seed:      1,
		font:      "embed:goregular",
		output:    t.TempDir(),
		format:    canvasrenderer.PNG,
		date:      testDate,
	}
}

func TestRunSingleText(t *testing.T) {
	opts := baseOptions(t)
	opts.text = "少壮不努力，老大徒伤悲"
	written, err := run(opts, stubMeasurer, stubRenderer{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	want := []string{filepath.Join(opts.output, "金句卡片_2026.10.18.png")}
	if diff := cmp.Diff(want, written); diff != "" {
		t.Fatalf("written mismatch (-want +got):\n%s", diff)
	}
	got, err := os.ReadFile(written[0])
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(got) != opts.text {
		t.Fatalf("unexpected content %q", got)
	}
}

func TestRunSingleTextExplicitFile(t *testing.T) {
	opts := baseOptions(t)
	opts.text = "Stay hungry, stay foolish"
	opts.output = filepath.Join(opts.output, "cards", "one.png")
	written, err := run(opts, stubMeasurer, stubRenderer{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(written) != 1 || written[0] != opts.output {
		t.Fatalf("expected output at %s, got %v", opts.output, written)
	}
}

func TestRunWhitespaceTextIsNoop(t *testing.T) {
	opts := baseOptions(t)
	opts.text = "   "
	written, err := run(opts, stubMeasurer, stubRenderer{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(written) != 0 {
		t.Fatalf("whitespace quote should not be rendered, got %v", written)
	}
}

func TestRunRequiresInput(t *testing.T) {
	if _, err := run(baseOptions(t), stubMeasurer, stubRenderer{}); err == nil {
		t.Fatalf("expected error without -text or -in")
	}
}

func TestRunUnknownTheme(t *testing.T) {
	opts := baseOptions(t)
	opts.text = "x"
	opts.themeName = "neon"
	if _, err := run(opts, stubMeasurer, stubRenderer{}); err == nil {
		t.Fatalf("expected error for unknown theme flag")
	}
}

func TestRunDeck(t *testing.T) {
	dir := t.TempDir()
	deck := filepath.Join(dir, "daily.deck")
	src := "deck daily v1 {\n" +
		"  theme: blob\n" +
		"  card { \"${quotes[0]}\" }\n" +
		"  card { \"  \" }\n" +
		"  \"${quotes[1]}\"\n" +
		"}\n"
	if err := os.WriteFile(deck, []byte(src), 0o644); err != nil {
		t.Fatalf("write deck: %v", err)
	}

	opts := baseOptions(t)
	opts.input = deck
	opts.data = map[string]any{"quotes": []any{"海阔凭鱼跃", "天高任鸟飞"}}
	opts.debugPath = filepath.Join(dir, "debug", "layout.json")

	written, err := run(opts, stubMeasurer, stubRenderer{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	want := []string{
		filepath.Join(opts.output, "金句卡片_2026.10.18.png"),
		filepath.Join(opts.output, "金句卡片_2026.10.18_02.png"),
	}
	if diff := cmp.Diff(want, written); diff != "" {
		t.Fatalf("written mismatch (-want +got):\n%s", diff)
	}

	raw, err := os.ReadFile(opts.debugPath)
	if err != nil {
		t.Fatalf("read debug: %v", err)
	}
	var entries []layout.Debug
	if err := json.Unmarshal(raw, &entries); err != nil {
		t.Fatalf("decode debug: %v", err)
	}
	if len(entries) != 2 || entries[0].Text != "海阔凭鱼跃" || entries[1].Theme != "blob" {
		t.Fatalf("unexpected debug entries: %+v", entries)
	}
}

func TestRunDeckParseError(t *testing.T) {
	dir := t.TempDir()
	deck := filepath.Join(dir, "bad.deck")
	if err := os.WriteFile(deck, []byte("deck {"), 0o644); err != nil {
		t.Fatalf("write deck: %v", err)
	}
	opts := baseOptions(t)
	opts.input = deck
	if _, err := run(opts, stubMeasurer, stubRenderer{}); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestRunDryRunWritesOnlyDebug(t *testing.T) {
	opts := baseOptions(t)
	opts.text = "Stay hungry, stay foolish"
	opts.dryRun = true
	opts.debugPath = filepath.Join(opts.output, "layout.json")
	written, err := run(opts, measure.NewOpenType("."), nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(written) != 0 {
		t.Fatalf("dry run should not write cards, got %v", written)
	}
	raw, err := os.ReadFile(opts.debugPath)
	if err != nil {
		t.Fatalf("read debug: %v", err)
	}
	var entries []layout.Debug
	if err := json.Unmarshal(raw, &entries); err != nil {
		t.Fatalf("decode debug: %v", err)
	}
	if len(entries) != 1 || len(entries[0].Layout.Lines) != 2 {
		t.Fatalf("unexpected debug entries: %+v", entries)
	}
}

func TestRunWithoutRendererFails(t *testing.T) {
	opts := baseOptions(t)
	opts.text = "x"
	if _, err := run(opts, stubMeasurer, nil); err == nil {
		t.Fatalf("expected error without renderer")
	}
}

func TestRunResolvesRelativeFontAgainstWorkingDir(t *testing.T) {
	dir := t.TempDir()
	deck := filepath.Join(dir, "one.deck")
	if err := os.WriteFile(deck, []byte("deck one { \"海阔凭鱼跃\" }\n"), 0o644); err != nil {
		t.Fatalf("write deck: %v", err)
	}
	want, err := filepath.Abs(filepath.Join("fonts", "quote.ttf"))
	if err != nil {
		t.Fatalf("abs: %v", err)
	}

	var srcs []string
	m := layout.MeasureFunc(func(content string, fontSize float64, font layout.FontResource) float64 {
		srcs = append(srcs, font.Src)
		return stubMeasurer(content, fontSize, font)
	})
	opts := baseOptions(t)
	opts.input = deck
	opts.font = filepath.Join("fonts", "quote.ttf")
	if _, err := run(opts, m, stubRenderer{}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(srcs) == 0 || srcs[0] != want {
		t.Fatalf("font src = %v, want %s", srcs, want)
	}
}

func TestAbsFontPathKeepsSchemes(t *testing.T) {
	for _, src := range []string{"", "embed:goregular", "built-in:Quote", "system:STXingkai", "/usr/share/fonts/a.ttf"} {
		got, err := absFontPath(src)
		if err != nil || got != src {
			t.Fatalf("absFontPath(%q) = %q, %v", src, got, err)
		}
	}
}
