//go:build !gocv
// +build !gocv

package vision

import (
	"errors"
	"image/color"

	"dlsdk-demos/internal/domain/entity"
)

// ErrNoGoCV сборка без тега gocv не умеет визуализировать результаты.
var ErrNoGoCV = errors.New("gocv build tag is not enabled")

type GoCVRenderer struct {
	Thickness   int
	FontScale   float64
	MaskOpacity float64
	Palette     []color.RGBA
}

// NewGoCVRenderer создаёт рендерер-заглушку (без OpenCV).
func NewGoCVRenderer() *GoCVRenderer {
	return &GoCVRenderer{
		Thickness:   2,
		FontScale:   0.6,
		MaskOpacity: 0.4,
		Palette:     defaultPalette,
	}
}

// Visualize возвращает ошибку, если сборка без тега gocv.
func (r *GoCVRenderer) Visualize(imageData []byte, result entity.Result) ([]byte, error) {
	_ = imageData
	_ = result
	return nil, ErrNoGoCV
}
