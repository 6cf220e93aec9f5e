package theme

import (
	"math"

	"github.com/tdewolff/canvas"
)

// ink：宣纸底色上叠加墨晕、笔触、远山、竹叶与墨点，文字为半透明深灰。
type ink struct{}

func (ink) ID() ID { return Ink }

func (ink) Colors() Colors {
	return Colors{
		Text:       rgba(51, 51, 51, 1),
		Decoration: rgba(51, 51, 51, 0.4),
		Date:       ptr(rgba(51, 51, 51, 0.6)),
		Watermark:  ptr(rgba(51, 51, 51, 0.3)),
	}
}

func (ink) DrawBackground(s *Surface) {
	paper := linear(0, 0, s.Width, s.Height,
		stop{0, canvas.Hex("#f7f3eb")},
		stop{0.5, canvas.Hex("#f2efe6")},
		stop{1, canvas.Hex("#ece8df")},
	)
	s.Painter.SetFillGradient(paper)
	s.Painter.DrawPath(0, 0, canvas.Rectangle(s.Width, s.Height))

	drawPaperTexture(s)
	drawInkWashes(s, 3, 0.2, 0.6, 400, 500, []stop{
		{0, rgba(0, 0, 0, 0.01)}, {0.5, rgba(0, 0, 0, 0.015)}, {1, rgba(0, 0, 0, 0)},
	})
	drawInkWashes(s, 5, 0.1, 0.8, 200, 300, []stop{
		{0, rgba(0, 0, 0, 0.02)}, {0.6, rgba(0, 0, 0, 0.01)}, {1, rgba(0, 0, 0, 0)},
	})
	drawBrushStrokes(s)
	drawInkDrops(s)
	drawMountains(s)
	drawBambooLeaves(s)
	drawFlyingWhite(s)
	drawInkSpecks(s)
}

// drawPaperTexture 模拟宣纸纤维。
func drawPaperTexture(s *Surface) {
	for i := 0; i < 400; i++ {
		x := s.Rand.Float64() * s.Width
		y := s.Rand.Float64() * s.Height
		alpha := s.between(0.002, 0.01)
		w := s.between(1, 3)
		h := s.between(1, 4)
		s.FillRect(x, y, w, h, rgba(0, 0, 0, alpha))
	}
}

// drawInkWashes 绘制 count 个径向渐变墨晕，位置落在画布 [lo, lo+span] 比例区间内。
func drawInkWashes(s *Surface, count int, lo, span, minRadius, radiusRange float64, stops []stop) {
	for i := 0; i < count; i++ {
		x := s.Width * s.between(lo, lo+span)
		y := s.Height * s.between(lo, lo+span)
		r := s.between(minRadius, minRadius+radiusRange)
		s.Painter.SetFillGradient(radial(x, y, r, stops...))
		s.Painter.DrawPath(0, 0, canvas.Circle(r).Translate(x, y))
	}
}

// drawBrushStrokes 绘制随机方向的细长笔触，两端淡出。
func drawBrushStrokes(s *Surface) {
	for i := 0; i < 8; i++ {
		x := s.Rand.Float64() * s.Width
		y := s.Rand.Float64() * s.Height
		length := s.between(200, 600)
		angle := s.Rand.Float64() * math.Pi
		edge := s.between(0.01, 0.03)
		center := s.between(0.02, 0.05)
		thickness := s.between(2, 6)

		dx, dy := math.Cos(angle)*length, math.Sin(angle)*length
		g := linear(x, y, x+dx, y+dy,
			stop{0, rgba(0, 0, 0, 0)},
			stop{0.2, rgba(0, 0, 0, edge)},
			stop{0.5, rgba(0, 0, 0, center)},
			stop{0.8, rgba(0, 0, 0, edge)},
			stop{1, rgba(0, 0, 0, 0)},
		)
		m := canvas.Identity.Translate(x, y).Rotate(angle * 180 / math.Pi)
		s.Painter.SetFillGradient(g)
		s.Painter.DrawPath(0, 0, canvas.Rectangle(length, thickness).Transform(m))
	}
}

func drawInkDrops(s *Surface) {
	for i := 0; i < 20; i++ {
		x := s.Rand.Float64() * s.Width
		y := s.Rand.Float64() * s.Height
		size := s.between(3, 11)
		s.Painter.SetFillGradient(radial(x, y, size,
			stop{0, rgba(0, 0, 0, 0.03)},
			stop{1, rgba(0, 0, 0, 0)},
		))
		s.Painter.DrawPath(0, 0, canvas.Circle(size).Translate(x, y))
	}
}

// drawMountains 在画布下部绘制远山三角。
func drawMountains(s *Surface) {
	for i := 0; i < 3; i++ {
		x := s.Width * s.between(0.1, 0.9)
		y := s.Height * s.between(0.6, 0.9)
		w := s.between(300, 700)
		h := s.between(100, 300)

		p := &canvas.Path{}
		p.MoveTo(x, y)
		p.LineTo(x+w/2, y-h)
		p.LineTo(x+w, y)
		p.Close()
		s.Painter.SetFillGradient(linear(x, y, x, y-h,
			stop{0, rgba(0, 0, 0, 0.03)},
			stop{1, rgba(0, 0, 0, 0)},
		))
		s.Painter.DrawPath(0, 0, p)
	}
}

func drawBambooLeaves(s *Surface) {
	for i := 0; i < 6; i++ {
		x := s.Width * s.between(0.05, 0.95)
		y := s.Height * s.between(0.1, 0.9)
		size := s.between(40, 100)
		angle := s.between(-math.Pi/6, math.Pi/6)
		alpha := s.between(0.02, 0.04)

		leaf := &canvas.Path{}
		leaf.MoveTo(0, 0)
		leaf.QuadTo(size/2, -size/8, size, 0)
		leaf.QuadTo(size/2, size/8, 0, 0)
		leaf.Close()
		s.Painter.SetFillColor(rgba(0, 0, 0, alpha))
		s.Painter.DrawPath(x, y, leaf.Transform(canvas.Identity.Rotate(angle*180/math.Pi)))
	}
}

// drawFlyingWhite 用极淡的白色晕染模拟飞白留白。
func drawFlyingWhite(s *Surface) {
	for i := 0; i < 4; i++ {
		x := s.Width * s.between(0.2, 0.8)
		y := s.Height * s.between(0.2, 0.8)
		size := s.between(150, 350)
		s.Painter.SetFillGradient(radial(x, y, size,
			stop{0, rgba(255, 255, 255, 0.03)},
			stop{1, rgba(255, 255, 255, 0)},
		))
		s.Painter.DrawPath(0, 0, canvas.Circle(size).Translate(x, y))
	}
}

func drawInkSpecks(s *Surface) {
	for i := 0; i < 30; i++ {
		x := s.Rand.Float64() * s.Width
		y := s.Rand.Float64() * s.Height
		size := s.between(2, 7)
		s.Painter.SetFillColor(rgba(0, 0, 0, s.between(0.01, 0.03)))
		s.Painter.DrawPath(x, y, canvas.Circle(size))
	}
}

func (ink) DrawText(s *Surface, line string, x, y, fontSize float64) {
	// 墨晕：浅色外圈，再叠两层主体加深中心
	drawHalo(s, line, x, y, fontSize, fontSize*0.015, rgba(0, 0, 0, 0.05))
	DrawCentered(s, line, x, y, fontSize, rgba(51, 51, 51, 0.85))
	DrawCentered(s, line, x, y, fontSize, rgba(51, 51, 51, 0.7))
}
