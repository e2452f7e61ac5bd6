// Package view рисует кадры окон разметки и автосегментации.
package view

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	ColorLine     = color.NRGBA{G: 255, A: 255}
	ColorVertex   = color.NRGBA{R: 255, A: 255}
	ColorLabel    = color.NRGBA{B: 255, A: 255}
	ColorNegative = color.NRGBA{R: 255, A: 255}
)

const (
	lineThickness = 2
	vertexRadius  = 3
)

// drawLine рисует отрезок Брезенхэмом квадратной кистью.
func drawLine(img *image.NRGBA, from, to image.Point, col color.NRGBA, thickness int) {
	x1, y1, x2, y2 := from.X, from.Y, to.X, to.Y
	dx, dy := abs(x2-x1), abs(y2-y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy
	for {
		brush(img, x1, y1, col, thickness)
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func brush(img *image.NRGBA, x, y int, col color.NRGBA, thickness int) {
	lo := -(thickness - 1) / 2
	hi := thickness / 2
	for t := lo; t <= hi; t++ {
		for s := lo; s <= hi; s++ {
			set(img, x+s, y+t, col)
		}
	}
}

// drawDisc рисует закрашенный круг.
func drawDisc(img *image.NRGBA, c image.Point, r int, col color.NRGBA) {
	r2 := r * r
	for y := -r; y <= r; y++ {
		for x := -r; x <= r; x++ {
			if x*x+y*y <= r2 {
				set(img, c.X+x, c.Y+y, col)
			}
		}
	}
}

// drawRect рисует контур прямоугольника, углы включительно.
func drawRect(img *image.NRGBA, r image.Rectangle, col color.NRGBA, thickness int) {
	tl, br := r.Min, r.Max
	tr, bl := image.Pt(br.X, tl.Y), image.Pt(tl.X, br.Y)
	drawLine(img, tl, tr, col, thickness)
	drawLine(img, tr, br, col, thickness)
	drawLine(img, br, bl, col, thickness)
	drawLine(img, bl, tl, col, thickness)
}

// drawText пишет строку растровым шрифтом; p задаёт базовую линию.
func drawText(img *image.NRGBA, text string, p image.Point, col color.NRGBA) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(p.X, p.Y),
	}
	d.DrawString(text)
}

func set(img *image.NRGBA, x, y int, col color.NRGBA) {
	if !(image.Point{X: x, Y: y}).In(img.Rect) {
		return
	}
	img.SetNRGBA(x, y, col)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
