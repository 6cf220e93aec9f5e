package theme

import (
	"image/color"

	"github.com/tdewolff/canvas"
)

// Corner 是渐变色块所在的画布角。
type Corner int

const (
	TopLeft Corner = iota
	TopRight
	BottomLeft
	BottomRight
)

func (c Corner) left() bool { return c == TopLeft || c == BottomLeft }
func (c Corner) top() bool  { return c == TopLeft || c == TopRight }

// blob：紫色纯底，随机一角铺一块贝塞尔渐变色块，再配极简几何装饰；文字为纯白无阴影。
type blob struct{}

func (blob) ID() ID { return Blob }

func (blob) Colors() Colors {
	return Colors{
		Text:       rgba(255, 255, 255, 1),
		Decoration: rgba(255, 255, 255, 0.7),
		Date:       ptr(rgba(255, 255, 255, 0.8)),
		Watermark:  ptr(rgba(255, 255, 255, 0.5)),
	}
}

func (blob) DrawBackground(s *Surface) {
	s.FillRect(0, 0, s.Width, s.Height, canvas.Hex("#8e44ad"))

	corner := Corner(s.Rand.IntN(4))
	drawGradientShape(s, corner)
	drawMinimalistFrame(s)
	drawGeometricGroup(s, corner)
	drawLinePattern(s, corner)
	drawDotMatrix(s, corner)
	drawDecorativeCurves(s)
}

// drawGradientShape 从 corner 出发沿两条边画一条三次贝塞尔曲线围成的色块。
func drawGradientShape(s *Surface, corner Corner) {
	w := s.Width * s.between(0.5, 0.8)
	h := s.Height * s.between(0.5, 0.8)
	control := s.between(0.5, 0.8)
	reach := s.between(0.7, 1.0)

	// 以左上角为基准计算，再按角镜像
	mx := func(x float64) float64 {
		if corner.left() {
			return x
		}
		return s.Width - x
	}
	my := func(y float64) float64 {
		if corner.top() {
			return y
		}
		return s.Height - y
	}

	p := &canvas.Path{}
	p.MoveTo(mx(0), my(0))
	p.CubeTo(mx(w*control), my(0), mx(w*(control-0.1)), my(h*0.6), mx(0), my(h*reach))
	p.Close()

	start := s.Rand.Float64() * 0.2
	end := s.between(0.8, 1.0)
	g := linear(mx(0), my(0), mx(w), my(h),
		stop{start, canvas.Hex("#9b59b6")},
		stop{end, canvas.Hex("#8e44ad")},
	)
	s.Painter.SetFillGradient(g)
	s.Painter.DrawPath(0, 0, p)
}

func strokeOnly(s *Surface, col color.RGBA, width float64) {
	s.Painter.SetFillColor(rgba(0, 0, 0, 0))
	s.Painter.SetStrokeColor(col)
	s.Painter.SetStrokeWidth(width)
}

func clearStroke(s *Surface) {
	s.Painter.SetStrokeColor(rgba(0, 0, 0, 0))
}

// drawMinimalistFrame 只画四个角的折线。
func drawMinimalistFrame(s *Surface) {
	const margin, cornerSize = 50.0, 30.0
	strokeOnly(s, rgba(255, 255, 255, 0.08), 1)
	corners := [][3][2]float64{
		{{margin, margin + cornerSize}, {margin, margin}, {margin + cornerSize, margin}},
		{{s.Width - margin - cornerSize, margin}, {s.Width - margin, margin}, {s.Width - margin, margin + cornerSize}},
		{{margin, s.Height - margin - cornerSize}, {margin, s.Height - margin}, {margin + cornerSize, s.Height - margin}},
		{{s.Width - margin - cornerSize, s.Height - margin}, {s.Width - margin, s.Height - margin}, {s.Width - margin, s.Height - margin - cornerSize}},
	}
	for _, c := range corners {
		p := &canvas.Path{}
		p.MoveTo(c[0][0], c[0][1])
		p.LineTo(c[1][0], c[1][1])
		p.LineTo(c[2][0], c[2][1])
		s.Painter.DrawPath(0, 0, p)
	}
	clearStroke(s)
}

// drawGeometricGroup 在色块同侧画三个递减的三角形。
func drawGeometricGroup(s *Surface, corner Corner) {
	baseX, baseY := 80.0, 80.0
	if !corner.left() {
		baseX = s.Width - 200
	}
	if !corner.top() {
		baseY = s.Height - 200
	}
	strokeOnly(s, rgba(255, 255, 255, 0.15), 1)
	for i := 0; i < 3; i++ {
		size := 40 - float64(i)*8
		off := float64(i) * 15
		p := &canvas.Path{}
		p.MoveTo(baseX+off, baseY+off)
		p.LineTo(baseX+size+off, baseY+off)
		p.LineTo(baseX+size/2+off, baseY-size+off)
		p.Close()
		s.Painter.DrawPath(0, 0, p)
	}
	clearStroke(s)
}

// drawLinePattern 在对角画一组逐渐变短的横线。
func drawLinePattern(s *Surface, corner Corner) {
	startX, startY := 100.0, s.Height-300
	if !corner.left() {
		startX = s.Width - 300
	}
	if !corner.top() {
		startY = 100
	}
	strokeOnly(s, rgba(255, 255, 255, 0.12), 1)
	for i := 0; i < 5; i++ {
		length := 150 - float64(i)*20
		x := startX + float64(i)*20
		p := &canvas.Path{}
		p.MoveTo(x, startY)
		p.LineTo(x+length, startY)
		s.Painter.DrawPath(0, 0, p)
	}
	clearStroke(s)
}

// drawDotMatrix 画 4×4 棋盘格点阵。
func drawDotMatrix(s *Surface, corner Corner) {
	const cols, rows, spacing = 4, 4, 15.0
	startX, startY := s.Width-150, s.Height-150
	if !corner.left() {
		startX = 50
	}
	if !corner.top() {
		startY = 50
	}
	s.Painter.SetFillColor(rgba(255, 255, 255, 0.15))
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if (i+j)%2 != 0 {
				continue
			}
			s.Painter.DrawPath(startX+float64(j)*spacing, startY+float64(i)*spacing, canvas.Circle(2))
		}
	}
}

// drawDecorativeCurves 在画布中心左侧画三道同心半圆弧。
func drawDecorativeCurves(s *Surface) {
	cx, cy := s.Width/2, s.Height/2
	strokeOnly(s, rgba(255, 255, 255, 0.1), 1)
	for i := 0; i < 3; i++ {
		r := 100 + float64(i)*20
		p := &canvas.Path{}
		p.MoveTo(cx, cy+r)
		p.Arc(r, r, 0, 90, 270)
		s.Painter.DrawPath(0, 0, p)
	}
	clearStroke(s)
}

func (blob) DrawText(s *Surface, line string, x, y, fontSize float64) {
	DrawCentered(s, line, x, y, fontSize, rgba(255, 255, 255, 1))
}
