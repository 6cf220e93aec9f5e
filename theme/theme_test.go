package theme

import (
	"fmt"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tdewolff/canvas"
	"golang.org/x/image/font/gofont/goregular"
)

// recorder 记录绘图调用，用于断言绘制结构而不依赖具体像素。
type recorder struct {
	ops []string
}

func (r *recorder) SetFillColor(col color.Color) {
	cr, cg, cb, ca := col.RGBA()
	r.ops = append(r.ops, fmt.Sprintf("fill %d %d %d %d", cr, cg, cb, ca))
}

func (r *recorder) SetFillGradient(canvas.Gradient) { r.ops = append(r.ops, "gradient") }

func (r *recorder) SetStrokeColor(col color.Color) {
	_, _, _, ca := col.RGBA()
	r.ops = append(r.ops, fmt.Sprintf("stroke %d", ca))
}

func (r *recorder) SetStrokeWidth(width float64) {
	r.ops = append(r.ops, fmt.Sprintf("width %.2f", width))
}

func (r *recorder) DrawPath(x, y float64, paths ...*canvas.Path) {
	r.ops = append(r.ops, fmt.Sprintf("path %.3f %.3f", x, y))
}

func (r *recorder) DrawText(x, y float64, text *canvas.Text) {
	r.ops = append(r.ops, fmt.Sprintf("text %.3f", x))
}

func (r *recorder) count(prefix string) int {
	n := 0
	for _, op := range r.ops {
		if len(op) >= len(prefix) && op[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

func testFace(t *testing.T) FaceFunc {
	t.Helper()
	family := canvas.NewFontFamily("test")
	if err := family.LoadFont(goregular.TTF, 0, canvas.FontRegular); err != nil {
		t.Fatalf("加载测试字体失败: %v", err)
	}
	return func(size float64, col color.Color) *canvas.FontFace {
		return family.Face(size, col, canvas.FontRegular, canvas.FontNormal)
	}
}

func newSurface(t *testing.T, seed uint64) (*Surface, *recorder) {
	rec := &recorder{}
	return &Surface{
		Painter: rec,
		Width:   1080,
		Height:  1350,
		Face:    testFace(t),
		Rand:    NewRand(seed),
	}, rec
}

func TestParseID(t *testing.T) {
	tests := map[string]ID{
		"":          Starfield,
		"starfield": Starfield,
		"light":     Starfield,
		"INK":       Ink,
		"blob":      Blob,
		" simple ":  Blob,
	}
	for in, want := range tests {
		got, err := ParseID(in)
		if err != nil {
			t.Fatalf("ParseID(%q) error: %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseID(%q) = %q, want %q", in, got, want)
		}
	}
	if _, err := ParseID("neon"); err == nil {
		t.Fatalf("未知主题应返回错误")
	}
}

func TestLookupAllThemes(t *testing.T) {
	for _, id := range IDs() {
		th, err := Lookup(id)
		if err != nil {
			t.Fatalf("Lookup(%q) error: %v", id, err)
		}
		if th.ID() != id {
			t.Fatalf("Lookup(%q).ID() = %q", id, th.ID())
		}
	}
	if _, err := Lookup("neon"); err == nil {
		t.Fatalf("未注册主题应返回错误")
	}
}

func TestBackgroundSameSeedSameOps(t *testing.T) {
	for _, id := range IDs() {
		th, _ := Lookup(id)
		s1, r1 := newSurface(t, 42)
		s2, r2 := newSurface(t, 42)
		th.DrawBackground(s1)
		th.DrawBackground(s2)
		if len(r1.ops) == 0 {
			t.Fatalf("%s: 背景没有任何绘制", id)
		}
		if diff := cmp.Diff(r1.ops, r2.ops); diff != "" {
			t.Fatalf("%s: 相同种子的绘制不一致 (-first +second):\n%s", id, diff)
		}
	}
}

func TestBackgroundSeedChangesDecoration(t *testing.T) {
	for _, id := range []ID{Starfield, Ink} {
		th, _ := Lookup(id)
		s1, r1 := newSurface(t, 1)
		s2, r2 := newSurface(t, 2)
		th.DrawBackground(s1)
		th.DrawBackground(s2)
		if cmp.Equal(r1.ops, r2.ops) {
			t.Fatalf("%s: 不同种子应产生不同的装饰位置", id)
		}
	}
}

func TestStarfieldStructure(t *testing.T) {
	th, _ := Lookup(Starfield)
	s, rec := newSurface(t, 7)
	th.DrawBackground(s)
	// 1 个底色 + 8 道光束
	if got := rec.count("gradient"); got != 9 {
		t.Fatalf("期望 9 次渐变填充，实际 %d", got)
	}
	// 底色 + 光束 + 12 个几何图形 + 至多 50 颗星及其闪光
	if got := rec.count("path"); got < 1+8+12 || got > 1+8+12+100 {
		t.Fatalf("路径数量异常: %d", got)
	}
}

func TestBlobDotsStayOnCanvas(t *testing.T) {
	th, _ := Lookup(Blob)
	for seed := uint64(0); seed < 8; seed++ {
		s, rec := newSurface(t, seed)
		th.DrawBackground(s)
		for _, op := range rec.ops {
			var x, y float64
			if _, err := fmt.Sscanf(op, "path %f %f", &x, &y); err != nil {
				continue
			}
			if x < 0 || x > s.Width || y < 0 || y > s.Height {
				t.Fatalf("seed %d: 装饰超出画布 (%g, %g)", seed, x, y)
			}
		}
	}
}

func TestDrawTextLayers(t *testing.T) {
	tests := []struct {
		id    ID
		texts int
	}{
		{Starfield, 17}, // 两圈辉光各 8 次 + 主体
		{Ink, 10},       // 一圈墨晕 + 两层主体
		{Blob, 1},
	}
	for _, tt := range tests {
		th, _ := Lookup(tt.id)
		s, rec := newSurface(t, 0)
		th.DrawText(s, "Stay hungry", 540, 600, 120)
		if got := rec.count("text"); got != tt.texts {
			t.Fatalf("%s: 期望 %d 次文字绘制，实际 %d", tt.id, tt.texts, got)
		}
		if last := rec.ops[len(rec.ops)-1]; last != "text 540.000" {
			t.Fatalf("%s: 主体文字应以 x=540 居中绘制，实际 %q", tt.id, last)
		}
	}
}

func TestColorsFallback(t *testing.T) {
	sf, _ := Lookup(Starfield)
	c := sf.Colors()
	if c.DateColor() != c.Decoration || c.WatermarkColor() != c.Decoration {
		t.Fatalf("未设置日期/水印颜色时应退回装饰色")
	}
	in, _ := Lookup(Ink)
	ic := in.Colors()
	if ic.DateColor() == ic.Decoration {
		t.Fatalf("水墨主题应使用独立的日期颜色")
	}
}

func TestThemesDrawOnCanvasContext(t *testing.T) {
	for _, id := range IDs() {
		th, _ := Lookup(id)
		cv := canvas.New(1080, 1350)
		s := &Surface{
			Painter: canvas.NewContext(cv),
			Width:   1080,
			Height:  1350,
			Face:    testFace(t),
			Rand:    NewRand(3),
		}
		th.DrawBackground(s)
		th.DrawText(s, "Stay hungry", 540, 600, 120)
		if cv.Empty() {
			t.Fatalf("%s: 画布上没有任何内容", id)
		}
	}
}
