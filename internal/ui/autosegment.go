package ui

import (
	"context"
	"image"

	"fyne.io/fyne/v2"
	"go.uber.org/zap"

	app "dlsdk-demos/internal/application"
	"dlsdk-demos/internal/domain/entity"
	"dlsdk-demos/internal/ui/view"
)

const autoSegmentTitle = "Image Viewer"

// AutoSegmenter окно подсказок для автосегментации одного изображения.
// Клик левой кнопкой ставит положительную точку, правой отрицательную,
// протяжка рисует рамку. r сбрасывает подсказки, Esc закрывает окно.
type AutoSegmenter struct {
	ctx     context.Context
	window  fyne.Window
	surface *surface
	svc     *app.AutoSegmentService
	logger  *zap.Logger

	base    image.Image
	blended image.Image
}

func NewAutoSegmenter(ctx context.Context, a fyne.App, svc *app.AutoSegmentService, base image.Image, logger *zap.Logger) *AutoSegmenter {
	size := base.Bounds().Size()
	as := &AutoSegmenter{
		ctx:     ctx,
		window:  a.NewWindow(autoSegmentTitle),
		surface: newSurface(size),
		svc:     svc,
		logger:  logger,
		base:    base,
		blended: base,
	}

	s := as.surface
	s.onTap = as.tap
	s.onSecondary = as.secondary
	s.onPress = as.press
	s.onMove = as.move
	s.onRelease = as.release

	as.window.Canvas().SetOnTypedRune(as.typedRune)
	as.window.Canvas().SetOnTypedKey(as.typedKey)
	as.window.SetPadded(false)
	as.window.SetContent(s)
	as.window.Resize(fyne.NewSize(float32(size.X), float32(size.Y)))
	as.window.SetMaster()
	as.redraw(nil)
	return as
}

func (a *AutoSegmenter) Run() {
	a.window.ShowAndRun()
}

func (a *AutoSegmenter) tap(p image.Point) {
	c := a.svc.Collector()
	c.Press(p)
	if c.Release(p) {
		a.infer()
	}
}

func (a *AutoSegmenter) secondary(p image.Point) {
	a.svc.Collector().Secondary(p)
	a.infer()
}

func (a *AutoSegmenter) press(p image.Point) {
	a.svc.Collector().Press(p)
}

func (a *AutoSegmenter) move(p image.Point) {
	if box, ok := a.svc.Collector().Move(p); ok {
		a.redraw(&box)
	}
}

func (a *AutoSegmenter) release(p image.Point) {
	if a.svc.Collector().Release(p) {
		a.infer()
	}
}

func (a *AutoSegmenter) typedRune(r rune) {
	if r == 'r' || r == 'R' {
		a.svc.Reset()
		a.blended = a.base
		a.redraw(nil)
	}
}

func (a *AutoSegmenter) typedKey(ev *fyne.KeyEvent) {
	if ev.Name == fyne.KeyEscape {
		a.window.Close()
	}
}

func (a *AutoSegmenter) infer() {
	seg, err := a.svc.Run(a.ctx)
	if err != nil {
		a.logger.Error("auto segmentation failed", zap.Error(err))
		a.redraw(nil)
		return
	}
	a.blended = view.BlendMask(a.base, view.SegmentationMask(seg, a.base.Bounds().Size()))
	a.redraw(nil)
}

func (a *AutoSegmenter) redraw(preview *entity.Box) {
	a.surface.show(view.RenderPrompts(a.blended, a.svc.Collector().Prompts, preview))
}
