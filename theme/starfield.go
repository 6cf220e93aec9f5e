package theme

import (
	"image/color"
	"math"

	"github.com/tdewolff/canvas"
)

// starfield：蓝色渐变底、放射光束、漂浮几何图形与星光，文字带白色辉光。
type starfield struct{}

func (starfield) ID() ID { return Starfield }

func (starfield) Colors() Colors {
	return Colors{
		Text:       rgba(255, 255, 255, 1),
		Decoration: rgba(255, 255, 255, 0.8),
	}
}

func (starfield) DrawBackground(s *Surface) {
	bg := linear(0, 0, s.Width, s.Height,
		stop{0, canvas.Hex("#2c3e50")},
		stop{1, canvas.Hex("#3498db")},
	)
	s.Painter.SetFillGradient(bg)
	s.Painter.DrawPath(0, 0, canvas.Rectangle(s.Width, s.Height))

	drawLightBeams(s)
	drawFloatingShapes(s)
	drawStars(s)
}

func drawLightBeams(s *Surface) {
	const (
		beamCount = 8
		spread    = 0.2
		alpha     = 0.04
	)
	cx, cy := s.Width/2, s.Height/2
	for i := 0; i < beamCount; i++ {
		angle := math.Pi * 2 * float64(i) / beamCount
		g := linear(cx, cy, cx+math.Cos(angle)*s.Width, cy+math.Sin(angle)*s.Height,
			stop{0, rgba(255, 255, 255, 0.8*alpha)},
			stop{0.5, rgba(255, 255, 255, 0.3*alpha)},
			stop{1, rgba(255, 255, 255, 0)},
		)
		p := &canvas.Path{}
		p.MoveTo(cx, cy)
		p.LineTo(cx+math.Cos(angle-spread)*s.Width, cy+math.Sin(angle-spread)*s.Height)
		p.LineTo(cx+math.Cos(angle+spread)*s.Width, cy+math.Sin(angle+spread)*s.Height)
		p.Close()
		s.Painter.SetFillGradient(g)
		s.Painter.DrawPath(0, 0, p)
	}
}

func drawFloatingShapes(s *Surface) {
	const shapes = 12
	s.Painter.SetFillColor(rgba(255, 255, 255, 0.05))
	for i := 0; i < shapes; i++ {
		x := s.Rand.Float64() * s.Width
		y := s.Rand.Float64() * s.Height
		size := s.between(20, 80)

		switch i % 3 {
		case 0:
			s.Painter.DrawPath(x, y, canvas.Circle(size/2))
		case 1:
			s.Painter.DrawPath(x-size/2, y-size/2, canvas.Rectangle(size, size))
		default:
			s.Painter.DrawPath(x, y, hexagon(size/2))
		}
	}
}

func drawStars(s *Surface) {
	const stars = 50
	for i := 0; i < stars; i++ {
		x := s.Rand.Float64() * s.Width
		y := s.Rand.Float64() * s.Height
		size := s.Rand.Float64() * 2
		opacity := s.between(0.3, 0.8)

		if size > 0 {
			s.Painter.SetFillColor(rgba(255, 255, 255, opacity))
			s.Painter.DrawPath(x, y, canvas.Circle(size))
		}

		// 一半的星星带十字闪光
		if s.Rand.Float64() > 0.5 {
			p := &canvas.Path{}
			p.MoveTo(-size*2, 0)
			p.LineTo(size*2, 0)
			p.MoveTo(0, -size*2)
			p.LineTo(0, size*2)
			s.Painter.SetFillColor(rgba(0, 0, 0, 0))
			s.Painter.SetStrokeColor(rgba(255, 255, 255, opacity*0.5))
			s.Painter.SetStrokeWidth(0.5)
			s.Painter.DrawPath(x, y, p)
			s.Painter.SetStrokeColor(rgba(0, 0, 0, 0))
		}
	}
}

func (starfield) DrawText(s *Surface, line string, x, y, fontSize float64) {
	white := rgba(255, 255, 255, 1)
	// 外发光与内发光：在文字周围一圈半透明描绘
	drawHalo(s, line, x, y, fontSize, fontSize*0.06, rgba(255, 255, 255, 0.08))
	drawHalo(s, line, x, y, fontSize, fontSize*0.03, rgba(255, 255, 255, 0.15))
	DrawCentered(s, line, x, y, fontSize, white)
}

// drawHalo 在 8 个方向偏移 radius 绘制文字，模拟阴影模糊。
func drawHalo(s *Surface, line string, x, y, fontSize, radius float64, col color.RGBA) {
	face := s.Face(fontSize, col)
	baseline := MiddleBaseline(face, y)
	for i := 0; i < 8; i++ {
		angle := math.Pi * 2 * float64(i) / 8
		dx, dy := math.Cos(angle)*radius, math.Sin(angle)*radius
		s.Painter.DrawText(x+dx, baseline+dy, canvas.NewTextLine(face, line, canvas.Center))
	}
}

func hexagon(r float64) *canvas.Path {
	p := &canvas.Path{}
	for j := 0; j < 6; j++ {
		angle := math.Pi * 2 * float64(j) / 6
		px, py := math.Cos(angle)*r, math.Sin(angle)*r
		if j == 0 {
			p.MoveTo(px, py)
		} else {
			p.LineTo(px, py)
		}
	}
	p.Close()
	return p
}
