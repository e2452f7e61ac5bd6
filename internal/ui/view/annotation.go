package view

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"dlsdk-demos/internal/domain/entity"
)

// LabelOrigin базовая линия подписи состояния в левом верхнем углу.
var LabelOrigin = image.Pt(10, 30)

// Frame собирает кадр окна: изображение в масштабе на чёрном холсте.
// При обрезке видна центральная часть, иначе изображение по центру.
func Frame(img image.Image, vp entity.Viewport, t entity.ViewTransform) *image.NRGBA {
	canvas := imaging.New(vp.Width, vp.Height, color.NRGBA{A: 255})
	if img == nil || t.Scaled.X <= 0 || t.Scaled.Y <= 0 {
		return canvas
	}
	if !t.Cropped {
		scaled := imaging.Resize(img, t.Scaled.X, t.Scaled.Y, imaging.Linear)
		return imaging.Paste(canvas, scaled, image.Pt(t.OffsetX, t.OffsetY))
	}

	src, at, size := visibleRegion(img.Bounds(), vp, t)
	if src.Empty() {
		return canvas
	}
	part := imaging.Resize(imaging.Crop(img, src), size.X, size.Y, imaging.Linear)
	return imaging.Paste(canvas, part, at)
}

// visibleRegion возвращает видимую в окне часть исходного изображения,
// позицию её левого верхнего угла в окне и размер после масштабирования.
func visibleRegion(bounds image.Rectangle, vp entity.Viewport, t entity.ViewTransform) (src image.Rectangle, at, size image.Point) {
	shown := image.Rect(t.OffsetX, t.OffsetY, t.OffsetX+t.Scaled.X, t.OffsetY+t.Scaled.Y).
		Intersect(image.Rect(0, 0, vp.Width, vp.Height))
	if shown.Empty() || t.Scale <= 0 {
		return image.Rectangle{}, image.Point{}, image.Point{}
	}

	r := image.Rect(
		int(math.Floor(float64(shown.Min.X-t.OffsetX)/t.Scale)),
		int(math.Floor(float64(shown.Min.Y-t.OffsetY)/t.Scale)),
		int(math.Ceil(float64(shown.Max.X-t.OffsetX)/t.Scale)),
		int(math.Ceil(float64(shown.Max.Y-t.OffsetY)/t.Scale)),
	).Intersect(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	if r.Empty() {
		return image.Rectangle{}, image.Point{}, image.Point{}
	}

	at = image.Pt(
		t.OffsetX+int(math.Round(float64(r.Min.X)*t.Scale)),
		t.OffsetY+int(math.Round(float64(r.Min.Y)*t.Scale)),
	)
	size = image.Pt(
		max(1, int(math.Round(float64(r.Dx())*t.Scale))),
		max(1, int(math.Round(float64(r.Dy())*t.Scale))),
	)
	return r.Add(bounds.Min), at, size
}

// RenderAnnotation рисует кадр разметки: метку состояния и контур для бракованного изображения.
func RenderAnnotation(img image.Image, vp entity.Viewport, t entity.ViewTransform, ann *entity.Annotation) *image.NRGBA {
	out := Frame(img, vp, t)
	if ann == nil {
		return out
	}

	drawText(out, string(ann.Label()), LabelOrigin, ColorLabel)
	if !ann.IsBad() || len(ann.Polygon) == 0 {
		return out
	}

	for _, s := range ann.Segments() {
		drawLine(out, t.ToDisplay(s.From), t.ToDisplay(s.To), ColorLine, lineThickness)
	}
	for _, p := range ann.Polygon {
		drawDisc(out, t.ToDisplay(p), vertexRadius, ColorVertex)
	}
	return out
}
