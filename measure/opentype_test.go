package measure

import (
	"math"
	"testing"

	"github.com/ByLCY/quotecard/fonts"
	"github.com/ByLCY/quotecard/layout"
)

var goRegular = layout.FontResource{Name: "Body", Src: "embed:goregular"}

func TestMeasureTextScalesWithSize(t *testing.T) {
	m := NewOpenType("")
	defer m.Close()

	small := m.MeasureText("Stay hungry", 100, goRegular)
	large := m.MeasureText("Stay hungry", 200, goRegular)
	if small <= 0 {
		t.Fatalf("宽度应为正数，实际 %g", small)
	}
	if math.Abs(large-2*small) > 1 {
		t.Fatalf("字号翻倍宽度应约翻倍: %g vs %g", small, large)
	}
}

func TestMeasureTextDeterministic(t *testing.T) {
	m := NewOpenType("")
	defer m.Close()

	a := m.MeasureText("stay foolish", 160, goRegular)
	b := m.MeasureText("stay foolish", 160, goRegular)
	if a != b {
		t.Fatalf("相同输入应得到相同宽度: %g vs %g", a, b)
	}
}

func TestMeasureTextMissingFontFallsBack(t *testing.T) {
	m := NewOpenType(t.TempDir())
	defer m.Close()

	want := m.MeasureText("abc", 100, layout.FontResource{})
	for _, src := range []string{"no-such-font.ttf", "system:quotecard-no-such-font"} {
		got := m.MeasureText("abc", 100, layout.FontResource{Name: "Brush", Src: src})
		if got != want {
			t.Fatalf("%s 应退回后备字体: got=%g want=%g", src, got, want)
		}
	}
}

func TestMeasureTextSystemCJKFont(t *testing.T) {
	name, _, ok := fonts.FindSystem(fonts.SystemFallbacks)
	if !ok {
		t.Skip("系统中没有可用的中文字体")
	}
	m := NewOpenType("")
	defer m.Close()

	sys := m.MeasureText("少壮不努力", 100, layout.FontResource{Src: fonts.SystemPrefix + name})
	if def := m.MeasureText("少壮不努力", 100, layout.FontResource{}); def != sys {
		t.Fatalf("未指定字体时应使用 %s: got=%g want=%g", name, def, sys)
	}
	if notdef := m.MeasureText("少壮不努力", 100, goRegular); sys == notdef {
		t.Fatalf("系统字体宽度不应与内置字体的 .notdef 宽度相同: %g", sys)
	}
}

func TestFitWithRealMetrics(t *testing.T) {
	m := NewOpenType("")
	defer m.Close()

	res := layout.Layout("Stay hungry, stay foolish", layout.CardSize, m, goRegular)
	if len(res.Lines) != 2 {
		t.Fatalf("期望按逗号拆成 2 行，实际 %q", res.Lines)
	}
	zone := layout.NewSafeZone(layout.CardSize)
	for _, line := range res.Lines {
		if w := m.MeasureText(line, res.FontSize, goRegular); w > zone.MaxTextWidth && res.FontSize > layout.MinFontSize {
			t.Fatalf("行 %q 在 %g 号时宽度 %g 超过 %g", line, res.FontSize, w, zone.MaxTextWidth)
		}
	}
	if res.FontSize >= res.InitialFontSize {
		t.Fatalf("长英文行应触发缩小: initial=%g final=%g", res.InitialFontSize, res.FontSize)
	}
}
