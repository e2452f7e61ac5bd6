package entity

import (
	"image"
	"math"
)

const (
	MinScale   = 0.1 // минимальный масштаб относительно оригинала
	MaxScale   = 10.0
	ZoomFactor = 1.1 // шаг масштабирования на один щелчок колеса
)

// Point точка в координатах исходного изображения (субпиксельная).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Viewport фиксированный размер окна просмотра.
type Viewport struct {
	Width  int
	Height int
}

// ViewTransform отображает координаты исходного изображения в координаты окна и обратно.
type ViewTransform struct {
	Scale   float64
	OffsetX int
	OffsetY int
	Scaled  image.Point // размер изображения после масштабирования
	Cropped bool        // изображение больше окна хотя бы по одной оси
}

// ClampScale ограничивает масштаб диапазоном [MinScale, MaxScale].
func ClampScale(scale float64) float64 {
	return math.Max(MinScale, math.Min(scale, MaxScale))
}

// ZoomIn увеличивает масштаб на один шаг.
func ZoomIn(scale float64) float64 {
	return ClampScale(scale * ZoomFactor)
}

// ZoomOut уменьшает масштаб на один шаг.
func ZoomOut(scale float64) float64 {
	return ClampScale(scale / ZoomFactor)
}

// FitScale возвращает масштаб, при котором изображение целиком помещается в окно.
func (v Viewport) FitScale(size image.Point) float64 {
	if size.X <= 0 || size.Y <= 0 {
		return 1.0
	}
	return ClampScale(math.Min(float64(v.Width)/float64(size.X), float64(v.Height)/float64(size.Y)))
}

// Transform рассчитывает преобразование для изображения заданного размера.
// Если изображение помещается в окно, оно центрируется, иначе обрезается по центру.
func (v Viewport) Transform(size image.Point, scale float64) ViewTransform {
	scale = ClampScale(scale)
	scaled := image.Pt(int(float64(size.X)*scale), int(float64(size.Y)*scale))

	t := ViewTransform{Scale: scale, Scaled: scaled}
	if scaled.X <= v.Width && scaled.Y <= v.Height {
		t.OffsetX = (v.Width - scaled.X) / 2
		t.OffsetY = (v.Height - scaled.Y) / 2
		return t
	}

	t.Cropped = true
	t.OffsetX = -(scaled.X - v.Width) / 2
	t.OffsetY = -(scaled.Y - v.Height) / 2
	return t
}

// ToDisplay переводит точку исходного изображения в координаты окна.
func (t ViewTransform) ToDisplay(p Point) image.Point {
	return image.Pt(
		int(math.Round(p.X*t.Scale))+t.OffsetX,
		int(math.Round(p.Y*t.Scale))+t.OffsetY,
	)
}

// ToOriginal переводит точку окна в субпиксельные координаты исходного изображения.
func (t ViewTransform) ToOriginal(p image.Point) Point {
	return Point{
		X: float64(p.X-t.OffsetX) / t.Scale,
		Y: float64(p.Y-t.OffsetY) / t.Scale,
	}
}

// Accepts сообщает, можно ли принять клик в данной точке окна.
// При обрезке принимается любой клик внутри окна.
func (t ViewTransform) Accepts(p image.Point) bool {
	if t.Cropped {
		return true
	}
	return p.X >= t.OffsetX && p.X <= t.OffsetX+t.Scaled.X &&
		p.Y >= t.OffsetY && p.Y <= t.OffsetY+t.Scaled.Y
}
