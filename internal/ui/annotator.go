package ui

import (
	"image"
	"unicode"

	"fyne.io/fyne/v2"
	"go.uber.org/zap"

	app "dlsdk-demos/internal/application"
	"dlsdk-demos/internal/ui/view"
)

const annotatorTitle = "Annotation Tool"

// Annotator окно разметки хороших и бракованных изображений.
type Annotator struct {
	window  fyne.Window
	surface *surface
	svc     *app.AnnotationService
	logger  *zap.Logger
	err     error
}

// NewAnnotator создаёт окно с размером окна просмотра сервиса.
func NewAnnotator(a fyne.App, svc *app.AnnotationService, logger *zap.Logger) *Annotator {
	vp := svc.Viewport()
	an := &Annotator{
		window:  a.NewWindow(annotatorTitle),
		surface: newSurface(image.Pt(vp.Width, vp.Height)),
		svc:     svc,
		logger:  logger,
	}

	an.surface.onTap = an.click
	an.surface.onScroll = an.scroll
	an.window.Canvas().SetOnTypedRune(an.typedRune)
	an.window.SetPadded(false)
	an.window.SetContent(an.surface)
	an.window.Resize(fyne.NewSize(float32(vp.Width), float32(vp.Height)))
	an.window.SetFixedSize(true)
	an.window.SetMaster()
	an.redraw()
	return an
}

// Run показывает окно и ждёт его закрытия.
func (a *Annotator) Run() error {
	a.window.ShowAndRun()
	return a.err
}

func (a *Annotator) typedRune(r rune) {
	out, err := a.svc.HandleKey(unicode.ToLower(r))
	if err != nil {
		a.logger.Error("annotation session stopped", zap.Error(err))
		a.err = err
		a.window.Close()
		return
	}
	if out.Quit {
		a.window.Close()
		return
	}
	if out.Redraw {
		a.redraw()
	}
}

func (a *Annotator) click(p image.Point) {
	if a.svc.Click(p) {
		a.redraw()
	}
}

func (a *Annotator) scroll(up bool) {
	a.svc.Scroll(up)
	a.redraw()
}

func (a *Annotator) redraw() {
	s := a.svc.Session()
	a.window.SetTitle(annotatorTitle + " - " + a.svc.Status())
	a.surface.show(view.RenderAnnotation(a.svc.Image(), a.svc.Viewport(), s.Transform, s.Current()))
}
