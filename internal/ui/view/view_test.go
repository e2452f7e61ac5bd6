package view

import (
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"

	"dlsdk-demos/internal/domain/entity"
)

var (
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	black = color.NRGBA{A: 255}
	vp    = entity.Viewport{Width: 800, Height: 600}
)

func TestFrame_ContainedIsCentered(t *testing.T) {
	img := imaging.New(1000, 500, white)
	tr := vp.Transform(img.Bounds().Size(), vp.FitScale(img.Bounds().Size()))

	out := Frame(img, vp, tr)
	require.Equal(t, image.Rect(0, 0, 800, 600), out.Bounds())
	require.Equal(t, black, out.NRGBAAt(400, 99))
	require.Equal(t, white, out.NRGBAAt(400, 100))
	require.Equal(t, white, out.NRGBAAt(400, 499))
	require.Equal(t, black, out.NRGBAAt(400, 500))
}

func TestFrame_CroppedFillsViewport(t *testing.T) {
	img := imaging.New(1000, 500, white)
	tr := vp.Transform(img.Bounds().Size(), 2.0)
	require.True(t, tr.Cropped)

	out := Frame(img, vp, tr)
	require.Equal(t, white, out.NRGBAAt(0, 0))
	require.Equal(t, white, out.NRGBAAt(799, 599))
}

func TestFrame_MaxScaleUsesVisibleRegion(t *testing.T) {
	img := imaging.New(1200, 900, white)
	img = imaging.Paste(img, imaging.New(600, 900, black), image.Pt(600, 0))
	tr := vp.Transform(img.Bounds().Size(), entity.MaxScale)
	require.True(t, tr.Cropped)

	src, at, size := visibleRegion(img.Bounds(), vp, tr)
	require.Equal(t, image.Rect(560, 420, 640, 480), src)
	require.Equal(t, image.Pt(0, 0), at)
	require.Equal(t, image.Pt(800, 600), size)

	out := Frame(img, vp, tr)
	require.Equal(t, image.Rect(0, 0, 800, 600), out.Bounds())
	require.Equal(t, white, out.NRGBAAt(380, 300))
	require.Equal(t, black, out.NRGBAAt(420, 300))
	require.Equal(t, white, out.NRGBAAt(0, 0))
	require.Equal(t, black, out.NRGBAAt(799, 599))
}

func TestVisibleRegion_CroppedOnOneAxis(t *testing.T) {
	tr := vp.Transform(image.Pt(2000, 100), 1.0)
	require.True(t, tr.Cropped)

	src, at, size := visibleRegion(image.Rect(0, 0, 2000, 100), vp, tr)
	require.Equal(t, image.Rect(600, 0, 1400, 100), src)
	require.Equal(t, image.Pt(0, 250), at)
	require.Equal(t, image.Pt(800, 100), size)
}

func TestFrame_NoImage(t *testing.T) {
	out := Frame(nil, vp, entity.ViewTransform{})
	require.Equal(t, black, out.NRGBAAt(10, 10))
}

func TestRenderAnnotation_DrawsPolygon(t *testing.T) {
	img := imaging.New(400, 300, black)
	tr := vp.Transform(img.Bounds().Size(), 2.0)

	ann := entity.NewAnnotation("a.png")
	ann.MarkBad()
	require.NoError(t, ann.AddPoint(entity.Point{X: 50, Y: 25}))
	require.NoError(t, ann.AddPoint(entity.Point{X: 150, Y: 25}))

	out := RenderAnnotation(img, vp, tr, ann)
	require.Equal(t, ColorVertex, out.NRGBAAt(100, 50))
	require.Equal(t, ColorVertex, out.NRGBAAt(300, 50))
	require.Equal(t, ColorLine, out.NRGBAAt(200, 50))
	require.True(t, hasColor(out, image.Rect(10, 17, 80, 32), ColorLabel), "label must be drawn")
}

func TestRenderAnnotation_GoodHasNoPolygon(t *testing.T) {
	img := imaging.New(400, 300, black)
	tr := vp.Transform(img.Bounds().Size(), 2.0)
	ann := entity.NewAnnotation("a.png")
	ann.MarkGood()

	out := RenderAnnotation(img, vp, tr, ann)
	require.False(t, hasColor(out, out.Bounds(), ColorLine))
	require.True(t, hasColor(out, image.Rect(10, 17, 80, 32), ColorLabel))
}

func TestSegmentationMask_UnionSkipsEmpty(t *testing.T) {
	seg := &entity.SegmentationResult{Objects: []entity.SegmentedObject{
		{Mask: entity.Mask{Polygons: [][]entity.Point{{{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 3, Y: 3}, {X: 0, Y: 3}}}}},
		{Mask: entity.Mask{Polygons: [][]entity.Point{{}, {{X: 6, Y: 6}, {X: 9, Y: 6}, {X: 9, Y: 9}, {X: 6, Y: 9}}}}},
	}}

	m := SegmentationMask(seg, image.Pt(10, 10))
	require.Equal(t, uint8(255), m.GrayAt(1, 1).Y)
	require.Equal(t, uint8(255), m.GrayAt(7, 7).Y)
	require.Equal(t, uint8(0), m.GrayAt(5, 5).Y)

	empty := SegmentationMask(nil, image.Pt(4, 4))
	require.Equal(t, uint8(0), empty.GrayAt(0, 0).Y)
}

func TestBlendMask_DimsOutsideMask(t *testing.T) {
	img := imaging.New(4, 4, color.NRGBA{R: 200, G: 100, B: 10, A: 255})
	m := image.NewGray(image.Rect(0, 0, 4, 4))
	m.SetGray(1, 1, color.Gray{Y: 255})

	out := BlendMask(img, m)
	require.Equal(t, color.NRGBA{R: 200, G: 100, B: 10, A: 255}, out.NRGBAAt(1, 1))
	require.Equal(t, color.NRGBA{R: 60, G: 30, B: 3, A: 255}, out.NRGBAAt(0, 0))
	require.Equal(t, color.NRGBA{R: 200, G: 100, B: 10, A: 255}, img.NRGBAAt(0, 0), "source is untouched")
}

func TestRenderPrompts(t *testing.T) {
	base := imaging.New(100, 100, black)
	prompts := entity.PromptSet{
		Points: []entity.ClickPoint{{X: 20, Y: 20, Label: entity.PointPositive}, {X: 80, Y: 80, Label: entity.PointNegative}},
		Boxes:  []entity.Box{{Start: image.Pt(40, 40), End: image.Pt(60, 60)}},
	}
	preview := &entity.Box{Start: image.Pt(5, 90), End: image.Pt(30, 95)}

	out := RenderPrompts(base, prompts, preview)
	require.Equal(t, ColorLine, out.NRGBAAt(20, 20))
	require.Equal(t, ColorNegative, out.NRGBAAt(80, 80))
	require.Equal(t, ColorLine, out.NRGBAAt(50, 40))
	require.Equal(t, black, out.NRGBAAt(50, 50))
	require.Equal(t, ColorLine, out.NRGBAAt(15, 90))
	require.Equal(t, black, base.NRGBAAt(20, 20))
}

func TestDrawLine_ClipsOutsideImage(t *testing.T) {
	img := imaging.New(10, 10, black)
	drawLine(img, image.Pt(-5, 5), image.Pt(20, 5), ColorLine, 2)
	require.Equal(t, ColorLine, img.NRGBAAt(0, 5))
	require.Equal(t, ColorLine, img.NRGBAAt(9, 5))
}

func hasColor(img *image.NRGBA, r image.Rectangle, col color.NRGBA) bool {
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if img.NRGBAAt(x, y) == col {
				return true
			}
		}
	}
	return false
}
