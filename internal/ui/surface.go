// Package ui окна fyne для разметки и автосегментации.
package ui

import (
	"image"
	"sync"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

// surface показывает готовый кадр и переводит события мыши в пиксели кадра.
type surface struct {
	widget.BaseWidget

	raster *fynecanvas.Raster
	pixels image.Point

	mu    sync.Mutex
	frame image.Image

	dragging bool
	last     image.Point

	onTap       func(p image.Point)
	onSecondary func(p image.Point)
	onPress     func(p image.Point)
	onMove      func(p image.Point)
	onRelease   func(p image.Point)
	onScroll    func(up bool)
}

func newSurface(pixels image.Point) *surface {
	s := &surface{pixels: pixels}
	s.raster = fynecanvas.NewRaster(s.draw)
	s.raster.ScaleMode = fynecanvas.ImageScalePixels
	s.raster.SetMinSize(fyne.NewSize(float32(pixels.X), float32(pixels.Y)))
	s.ExtendBaseWidget(s)
	return s
}

func (s *surface) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(s.raster)
}

func (s *surface) MinSize() fyne.Size {
	return s.raster.MinSize()
}

// show заменяет кадр и перерисовывает растр.
func (s *surface) show(frame image.Image) {
	s.mu.Lock()
	s.frame = frame
	s.mu.Unlock()
	s.raster.Refresh()
}

func (s *surface) draw(w, h int) image.Image {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.frame == nil {
		return image.NewNRGBA(image.Rect(0, 0, s.pixels.X, s.pixels.Y))
	}
	return s.frame
}

func (s *surface) Tapped(ev *fyne.PointEvent) {
	if s.onTap != nil {
		s.onTap(s.toPixel(ev.Position))
	}
}

func (s *surface) TappedSecondary(ev *fyne.PointEvent) {
	if s.onSecondary != nil {
		s.onSecondary(s.toPixel(ev.Position))
	}
}

func (s *surface) Dragged(ev *fyne.DragEvent) {
	p := s.toPixel(ev.Position)
	if !s.dragging {
		s.dragging = true
		start := s.toPixel(ev.Position.Subtract(fyne.NewPos(ev.Dragged.DX, ev.Dragged.DY)))
		if s.onPress != nil {
			s.onPress(start)
		}
	}
	s.last = p
	if s.onMove != nil {
		s.onMove(p)
	}
}

func (s *surface) DragEnd() {
	if !s.dragging {
		return
	}
	s.dragging = false
	if s.onRelease != nil {
		s.onRelease(s.last)
	}
}

func (s *surface) Scrolled(ev *fyne.ScrollEvent) {
	if s.onScroll == nil {
		return
	}
	if ev.Scrolled.DY > 0 {
		s.onScroll(true)
	} else if ev.Scrolled.DY < 0 {
		s.onScroll(false)
	}
}

// toPixel переводит позицию виджета в пиксели кадра с учётом масштаба окна.
func (s *surface) toPixel(pos fyne.Position) image.Point {
	return toPixel(pos, s.Size(), s.pixels)
}

func toPixel(pos fyne.Position, size fyne.Size, pixels image.Point) image.Point {
	if size.Width <= 0 || size.Height <= 0 {
		return image.Pt(int(pos.X), int(pos.Y))
	}
	return image.Pt(
		int(pos.X*float32(pixels.X)/size.Width),
		int(pos.Y*float32(pixels.Y)/size.Height),
	)
}

var (
	_ fyne.Tappable          = (*surface)(nil)
	_ fyne.SecondaryTappable = (*surface)(nil)
	_ fyne.Draggable         = (*surface)(nil)
	_ fyne.Scrollable        = (*surface)(nil)
)
