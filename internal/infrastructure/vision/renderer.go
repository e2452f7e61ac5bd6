//go:build gocv
// +build gocv

package vision

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"gocv.io/x/gocv"

	"dlsdk-demos/internal/domain/entity"
)

// GoCVRenderer рисует результаты инференса средствами OpenCV.
type GoCVRenderer struct {
	Thickness   int
	FontScale   float64
	MaskOpacity float64
	Palette     []color.RGBA
}

// NewGoCVRenderer создаёт рендерер с параметрами по умолчанию.
func NewGoCVRenderer() *GoCVRenderer {
	return &GoCVRenderer{
		Thickness:   2,
		FontScale:   0.6,
		MaskOpacity: 0.4,
		Palette:     defaultPalette,
	}
}

// Visualize накладывает рамки, маски, точки и подписи на изображение и возвращает PNG.
func (r *GoCVRenderer) Visualize(imageData []byte, result entity.Result) ([]byte, error) {
	mat, err := decodeToMat(imageData)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	switch res := result.(type) {
	case *entity.ClassificationResult:
		for i, s := range res.Scores {
			r.label(&mat, fmt.Sprintf("%s: %.2f", s.Label, s.Confidence), image.Pt(10, 30+i*25), i)
		}
	case *entity.DetectionResult:
		if res.Decision != "" {
			r.label(&mat, res.Decision, image.Pt(10, 30), 0)
		}
		for _, d := range res.Detections {
			r.detection(&mat, d)
		}
	case *entity.RotatedDetectionResult:
		for _, d := range res.Detections {
			c := r.color(d.ClassID)
			r.polygon(&mat, rotatedCorners(d.Box), c, false)
			r.label(&mat, fmt.Sprintf("%s: %.2f", d.Label, d.Confidence), image.Pt(int(d.Box.CX), int(d.Box.CY)), d.ClassID)
		}
	case *entity.SegmentationResult:
		for _, o := range res.Objects {
			r.mask(&mat, o.Mask, r.color(o.ClassID))
			r.detection(&mat, o.Detection)
		}
	case *entity.OCRResult:
		for i, it := range res.Items {
			pts := toImagePoints(it.Polygon)
			r.polygon(&mat, pts, r.color(i), false)
			if len(pts) > 0 {
				r.label(&mat, it.Text, pts[0], i)
			}
		}
	case *entity.KeypointResult:
		for _, o := range res.Objects {
			r.detection(&mat, o.Detection)
			for _, k := range o.Keypoints {
				gocv.Circle(&mat, image.Pt(int(k.X), int(k.Y)), 3, r.color(o.ClassID), -1)
			}
		}
	case *entity.MixedResult:
		for _, o := range res.Objects {
			r.detection(&mat, o.Detection)
		}
	case *entity.DefectResult:
		r.mask(&mat, res.Mask, color.RGBA{R: 255, A: 255})
		r.label(&mat, fmt.Sprintf("%s: %.3f", res.Decision, res.DeviationScore), image.Pt(10, 30), 0)
	default:
		return nil, fmt.Errorf("unsupported result type %T", result)
	}

	img, err := mat.ToImage()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *GoCVRenderer) detection(mat *gocv.Mat, d entity.Detection) {
	c := r.color(d.ClassID)
	rect := image.Rect(int(d.Box.X1), int(d.Box.Y1), int(d.Box.X2), int(d.Box.Y2))
	gocv.Rectangle(mat, rect, c, r.Thickness)
	r.label(mat, fmt.Sprintf("%s: %.2f", d.Label, d.Confidence), image.Pt(rect.Min.X, rect.Min.Y-5), d.ClassID)
}

// mask заливает полигоны полупрозрачным цветом и обводит контур.
func (r *GoCVRenderer) mask(mat *gocv.Mat, m entity.Mask, c color.RGBA) {
	if len(m.Polygons) == 0 {
		return
	}
	polys := make([][]image.Point, 0, len(m.Polygons))
	for _, p := range m.Polygons {
		if len(p) >= 3 {
			polys = append(polys, toImagePoints(p))
		}
	}
	if len(polys) == 0 {
		return
	}

	pv := gocv.NewPointsVectorFromPoints(polys)
	defer pv.Close()

	overlay := mat.Clone()
	defer overlay.Close()
	gocv.FillPoly(&overlay, pv, c)
	gocv.AddWeighted(overlay, r.MaskOpacity, *mat, 1-r.MaskOpacity, 0, mat)
	gocv.Polylines(mat, pv, true, c, r.Thickness)
}

func (r *GoCVRenderer) polygon(mat *gocv.Mat, pts []image.Point, c color.RGBA, filled bool) {
	if len(pts) < 2 {
		return
	}
	pv := gocv.NewPointsVectorFromPoints([][]image.Point{pts})
	defer pv.Close()
	if filled {
		gocv.FillPoly(mat, pv, c)
		return
	}
	gocv.Polylines(mat, pv, true, c, r.Thickness)
}

func (r *GoCVRenderer) label(mat *gocv.Mat, text string, org image.Point, idx int) {
	if org.Y < 15 {
		org.Y = 15
	}
	gocv.PutText(mat, text, org, gocv.FontHersheySimplex, r.FontScale, r.color(idx), r.Thickness)
}

func (r *GoCVRenderer) color(idx int) color.RGBA {
	if idx < 0 {
		idx = -idx
	}
	return r.Palette[idx%len(r.Palette)]
}

// rotatedCorners возвращает углы повёрнутой рамки.
func rotatedCorners(b entity.RotatedBox) []image.Point {
	rad := b.Angle * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	hw, hh := b.Width/2, b.Height/2
	corners := [4][2]float64{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}}
	out := make([]image.Point, 0, 4)
	for _, c := range corners {
		x := b.CX + c[0]*cos - c[1]*sin
		y := b.CY + c[0]*sin + c[1]*cos
		out = append(out, image.Pt(int(math.Round(x)), int(math.Round(y))))
	}
	return out
}

func toImagePoints(ps []entity.Point) []image.Point {
	out := make([]image.Point, len(ps))
	for i, p := range ps {
		out[i] = image.Pt(int(math.Round(p.X)), int(math.Round(p.Y)))
	}
	return out
}

// decodeToMat превращает байты изображения в gocv.Mat.
func decodeToMat(imageData []byte) (gocv.Mat, error) {
	mat, err := gocv.IMDecode(imageData, gocv.IMReadColor)
	if err == nil && !mat.Empty() {
		return mat, nil
	}
	if !mat.Empty() {
		mat.Close()
	}
	return gocv.NewMat(), errors.New("failed to decode image")
}
