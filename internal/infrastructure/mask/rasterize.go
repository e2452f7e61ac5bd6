// Package mask строит одноканальные маски брака по контуру разметки.
package mask

import (
	"bytes"
	"image"
	"math"
	"sort"

	"github.com/disintegration/imaging"

	"dlsdk-demos/internal/domain/entity"
)

const (
	Foreground uint8 = 255
	Background uint8 = 0
)

// Rasterize строит маску размера width x height.
// Пустой контур даёт маску, целиком заполненную передним планом.
// Вершины округляются до целых пикселей, контур замыкается, закрашиваются внутренность и граница.
func Rasterize(width, height int, polygon []entity.Point) *image.Gray {
	m := image.NewGray(image.Rect(0, 0, width, height))
	if len(polygon) == 0 {
		for i := range m.Pix {
			m.Pix[i] = Foreground
		}
		return m
	}

	pts := closePolygon(roundPoints(polygon))
	fillInterior(m, pts)
	for i := 1; i < len(pts); i++ {
		drawLine(m, pts[i-1], pts[i])
	}
	if len(pts) == 1 {
		setPixel(m, pts[0].X, pts[0].Y)
	}
	return m
}

// EncodePNG кодирует маску в PNG.
func EncodePNG(m *image.Gray) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, m, imaging.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func roundPoints(polygon []entity.Point) []image.Point {
	out := make([]image.Point, len(polygon))
	for i, p := range polygon {
		out[i] = image.Pt(int(math.RoundToEven(p.X)), int(math.RoundToEven(p.Y)))
	}
	return out
}

func closePolygon(pts []image.Point) []image.Point {
	if len(pts) >= 2 && pts[0] != pts[len(pts)-1] {
		pts = append(pts, pts[0])
	}
	return pts
}

// fillInterior закрашивает внутренность замкнутого контура построчно (правило чётности).
func fillInterior(m *image.Gray, pts []image.Point) {
	if len(pts) < 3 {
		return
	}
	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts {
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}
	b := m.Bounds()
	minY = max(minY, b.Min.Y)
	maxY = min(maxY, b.Max.Y-1)

	xs := make([]float64, 0, len(pts))
	for y := minY; y <= maxY; y++ {
		xs = xs[:0]
		fy := float64(y)
		for i := 1; i < len(pts); i++ {
			p1, p2 := pts[i-1], pts[i]
			if p1.Y == p2.Y {
				continue
			}
			lo, hi := p1, p2
			if lo.Y > hi.Y {
				lo, hi = hi, lo
			}
			if y < lo.Y || y >= hi.Y {
				continue
			}
			t := (fy - float64(lo.Y)) / float64(hi.Y-lo.Y)
			xs = append(xs, float64(lo.X)+t*float64(hi.X-lo.X))
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			x1, x2 := clampSpan(xs[i], xs[i+1], b)
			for x := x1; x <= x2; x++ {
				setPixel(m, x, y)
			}
		}
	}
}

// drawLine рисует отрезок алгоритмом Брезенхема.
func drawLine(m *image.Gray, a, b image.Point) {
	dx := abs(b.X - a.X)
	dy := abs(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	err := dx - dy
	x, y := a.X, a.Y
	for {
		setPixel(m, x, y)
		if x == b.X && y == b.Y {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

// clampSpan переводит пересечения строки в целые столбцы внутри границ маски.
func clampSpan(from, to float64, b image.Rectangle) (int, int) {
	x1 := max(math.Ceil(from), float64(b.Min.X))
	x2 := min(math.Floor(to), float64(b.Max.X-1))
	return int(x1), int(x2)
}

func setPixel(m *image.Gray, x, y int) {
	if !(image.Point{X: x, Y: y}).In(m.Rect) {
		return
	}
	m.Pix[m.PixOffset(x, y)] = Foreground
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
