package entity

import "errors"

// ErrNoImages в сессии нет ни одного изображения.
var ErrNoImages = errors.New("no images found")

// InteractionMode режим работы указателя.
type InteractionMode int

const (
	ModeIdle InteractionMode = iota
	ModeDragging
)

// InteractionSession состояние активного сеанса разметки.
type InteractionSession struct {
	Items        []*Annotation
	CurrentIndex int
	Transform    ViewTransform
	Mode         InteractionMode
}

// NewInteractionSession создаёт сеанс с неразмеченной аннотацией на каждый файл.
func NewInteractionSession(paths []string) (*InteractionSession, error) {
	if len(paths) == 0 {
		return nil, ErrNoImages
	}
	items := make([]*Annotation, 0, len(paths))
	for _, p := range paths {
		items = append(items, NewAnnotation(p))
	}
	return &InteractionSession{Items: items}, nil
}

// Current возвращает аннотацию текущего изображения.
func (s *InteractionSession) Current() *Annotation {
	return s.Items[s.CurrentIndex]
}

// Next переходит к следующему изображению по кругу.
func (s *InteractionSession) Next() {
	s.CurrentIndex = (s.CurrentIndex + 1) % len(s.Items)
}

// Previous переходит к предыдущему изображению по кругу.
func (s *InteractionSession) Previous() {
	s.CurrentIndex = (s.CurrentIndex - 1 + len(s.Items)) % len(s.Items)
}

// Len возвращает число изображений в сеансе.
func (s *InteractionSession) Len() int {
	return len(s.Items)
}
