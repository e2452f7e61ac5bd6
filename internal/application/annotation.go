package app

import (
	"errors"
	"fmt"
	"image"

	"go.uber.org/zap"

	"dlsdk-demos/internal/domain/entity"
)

// ImageLoader загружает изображение по пути.
type ImageLoader func(path string) (image.Image, error)

// Команды клавиатуры сеанса разметки.
const (
	KeyNext     = 'n'
	KeyPrevious = 'p'
	KeyGood     = 'g'
	KeyBad      = 'b'
	KeyReset    = 'r'
	KeyFinish   = 'f'
	KeyQuit     = 'q'
)

// KeyOutcome что нужно сделать окну после команды.
type KeyOutcome struct {
	Redraw bool
	Quit   bool
}

// AnnotationService ведёт сеанс разметки хороших и бракованных изображений.
type AnnotationService struct {
	session  *entity.InteractionSession
	viewport entity.Viewport
	load     ImageLoader
	logger   *zap.Logger

	image image.Image
	scale float64
}

// NewAnnotationService создаёт сервис поверх готового сеанса.
func NewAnnotationService(session *entity.InteractionSession, viewport entity.Viewport, load ImageLoader, logger *zap.Logger) *AnnotationService {
	return &AnnotationService{
		session:  session,
		viewport: viewport,
		load:     load,
		logger:   logger,
		scale:    1.0,
	}
}

// Session возвращает сеанс.
func (s *AnnotationService) Session() *entity.InteractionSession {
	return s.session
}

// Image возвращает загруженное текущее изображение.
func (s *AnnotationService) Image() image.Image {
	return s.image
}

// Viewport возвращает размер окна просмотра.
func (s *AnnotationService) Viewport() entity.Viewport {
	return s.viewport
}

// LoadCurrent загружает текущее изображение и подбирает масштаб под окно.
// Нечитаемые файлы пропускаются с переходом к следующему.
func (s *AnnotationService) LoadCurrent() error {
	for attempt := 0; attempt < s.session.Len(); attempt++ {
		ann := s.session.Current()
		img, err := s.load(ann.FilePath)
		if err == nil {
			s.image = img
			s.scale = s.viewport.FitScale(img.Bounds().Size())
			s.retransform()
			s.logger.Info("image loaded",
				zap.Int("index", s.session.CurrentIndex+1),
				zap.Int("total", s.session.Len()),
				zap.String("path", ann.FilePath))
			return nil
		}
		s.logger.Warn("failed to load image, skipping", zap.String("path", ann.FilePath), zap.Error(err))
		s.session.Next()
	}
	s.image = nil
	return errors.New("none of the images could be loaded")
}

// HandleKey выполняет команду клавиатуры.
func (s *AnnotationService) HandleKey(key rune) (KeyOutcome, error) {
	ann := s.session.Current()
	switch key {
	case KeyNext:
		s.session.Next()
		return KeyOutcome{Redraw: true}, s.LoadCurrent()
	case KeyPrevious:
		s.session.Previous()
		return KeyOutcome{Redraw: true}, s.LoadCurrent()
	case KeyGood:
		ann.MarkGood()
	case KeyBad:
		ann.MarkBad()
	case KeyReset:
		if err := ann.Reset(); err != nil {
			s.logger.Info("reset ignored", zap.String("path", ann.FilePath), zap.Error(err))
		}
	case KeyFinish:
		if err := ann.Finish(); err != nil {
			s.logger.Warn("cannot finish annotation", zap.String("path", ann.FilePath), zap.Error(err))
			return KeyOutcome{}, nil
		}
		s.logger.Info("annotation finished", zap.String("path", ann.FilePath), zap.Int("points", len(ann.Polygon)))
	case KeyQuit:
		return KeyOutcome{Quit: true}, nil
	default:
		return KeyOutcome{}, nil
	}
	return KeyOutcome{Redraw: true}, nil
}

// Click добавляет точку контура по клику в координатах окна.
// Возвращает true, если точка добавлена.
func (s *AnnotationService) Click(p image.Point) bool {
	ann := s.session.Current()
	if !ann.IsBad() || s.image == nil {
		return false
	}
	t := s.session.Transform
	if !t.Accepts(p) {
		return false
	}
	if err := ann.AddPoint(t.ToOriginal(p)); err != nil {
		return false
	}
	return true
}

// Scroll меняет масштаб на один шаг колеса.
func (s *AnnotationService) Scroll(up bool) {
	if up {
		s.scale = entity.ZoomIn(s.scale)
	} else {
		s.scale = entity.ZoomOut(s.scale)
	}
	s.retransform()
}

// Status возвращает строку состояния текущего изображения.
func (s *AnnotationService) Status() string {
	ann := s.session.Current()
	return fmt.Sprintf("Image %d/%d - %s [%s]", s.session.CurrentIndex+1, s.session.Len(), ann.FilePath, ann.Label())
}

func (s *AnnotationService) retransform() {
	if s.image == nil {
		return
	}
	s.session.Transform = s.viewport.Transform(s.image.Bounds().Size(), s.scale)
}
