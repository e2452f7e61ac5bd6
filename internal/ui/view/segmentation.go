package view

import (
	"image"
	"image/draw"

	"github.com/disintegration/imaging"

	"dlsdk-demos/internal/domain/entity"
	"dlsdk-demos/internal/infrastructure/mask"
)

const (
	baseWeight  = 0.3
	pointRadius = 4
)

// SegmentationMask объединяет полигоны всех объектов в одну маску размера size.
func SegmentationMask(seg *entity.SegmentationResult, size image.Point) *image.Gray {
	out := image.NewGray(image.Rectangle{Max: size})
	if seg == nil {
		return out
	}
	for _, obj := range seg.Objects {
		for _, poly := range obj.Mask.Polygons {
			if len(poly) == 0 {
				continue
			}
			m := mask.Rasterize(size.X, size.Y, poly)
			for i, v := range m.Pix {
				if v == mask.Foreground {
					out.Pix[i] = mask.Foreground
				}
			}
		}
	}
	return out
}

// BlendMask смешивает изображение с его вырезкой по маске: 0.3 оригинала + 0.7 вырезки.
// Пиксели под маской остаются как есть, остальные затемняются.
func BlendMask(img image.Image, m *image.Gray) *image.NRGBA {
	out := imaging.Clone(img)
	b := out.Bounds()
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			if m != nil && m.GrayAt(x, y).Y != 0 {
				continue
			}
			i := out.PixOffset(x, y)
			for c := 0; c < 3; c++ {
				out.Pix[i+c] = uint8(float64(out.Pix[i+c])*baseWeight + 0.5)
			}
		}
	}
	return out
}

// RenderPrompts рисует поверх base подсказки и, если задан, предпросмотр рамки.
func RenderPrompts(base image.Image, prompts entity.PromptSet, preview *entity.Box) *image.NRGBA {
	out := image.NewNRGBA(base.Bounds())
	draw.Draw(out, out.Rect, base, base.Bounds().Min, draw.Src)

	for _, b := range prompts.Boxes {
		drawRect(out, b.Rect(), ColorLine, lineThickness)
	}
	for _, p := range prompts.Points {
		col := ColorLine
		if p.Label == entity.PointNegative {
			col = ColorNegative
		}
		drawDisc(out, image.Pt(p.X, p.Y), pointRadius, col)
	}
	if preview != nil {
		drawRect(out, preview.Rect(), ColorLine, lineThickness)
	}
	return out
}
