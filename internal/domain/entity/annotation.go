package entity

import "errors"

var (
	// ErrNotBad действие допустимо только для изображения, помеченного как брак.
	ErrNotBad = errors.New("image is not marked as bad")
	// ErrTooFewPoints для завершения контура нужно минимум две точки.
	ErrTooFewPoints = errors.New("need at least 2 points to finish annotation")
)

// MinPolygonPoints минимальное число точек завершённого контура.
const MinPolygonPoints = 2

// AnnotationLabel метка изображения, отображаемая в окне.
type AnnotationLabel string

const (
	LabelUnlabeled AnnotationLabel = "Unlabeled"
	LabelGood      AnnotationLabel = "Good"
	LabelBad       AnnotationLabel = "Bad"
)

// Annotation разметка одного изображения.
type Annotation struct {
	FilePath    string  // полный путь к изображению
	IsAnnotated bool    // изображение размечено (хорошее или брак)
	IsGood      bool    // true — хорошее, false — брак
	Finished    bool    // контур брака замкнут
	Polygon     []Point // точки контура в координатах исходного изображения
}

// NewAnnotation создаёт неразмеченную аннотацию для файла.
func NewAnnotation(path string) *Annotation {
	return &Annotation{
		FilePath: path,
		IsGood:   true,
	}
}

// MarkGood помечает изображение как хорошее и удаляет контур.
func (a *Annotation) MarkGood() {
	a.IsAnnotated = true
	a.IsGood = true
	a.Finished = false
	a.Polygon = nil
}

// MarkBad помечает изображение как брак. Ранее поставленные точки удаляются.
func (a *Annotation) MarkBad() {
	a.IsAnnotated = true
	a.IsGood = false
	a.Finished = false
	a.Polygon = nil
}

// IsBad сообщает, помечено ли изображение как брак.
func (a *Annotation) IsBad() bool {
	return a.IsAnnotated && !a.IsGood
}

// AddPoint добавляет точку контура.
func (a *Annotation) AddPoint(p Point) error {
	if !a.IsBad() {
		return ErrNotBad
	}
	a.Polygon = append(a.Polygon, p)
	return nil
}

// Reset очищает контур брака.
func (a *Annotation) Reset() error {
	if !a.IsBad() {
		return ErrNotBad
	}
	a.Polygon = nil
	a.Finished = false
	return nil
}

// Finish замыкает контур. При нехватке точек состояние не меняется.
func (a *Annotation) Finish() error {
	if !a.IsBad() {
		return ErrNotBad
	}
	if len(a.Polygon) < MinPolygonPoints {
		return ErrTooFewPoints
	}
	a.Finished = true
	return nil
}

// Label возвращает текстовую метку для отображения.
func (a *Annotation) Label() AnnotationLabel {
	switch {
	case !a.IsAnnotated:
		return LabelUnlabeled
	case a.IsGood:
		return LabelGood
	default:
		return LabelBad
	}
}

// Segment отрезок контура.
type Segment struct {
	From Point
	To   Point
}

// Segments возвращает отрезки контура для отрисовки.
// У завершённого контура последняя точка соединяется с первой.
func (a *Annotation) Segments() []Segment {
	n := len(a.Polygon)
	if n < 2 {
		return nil
	}
	segs := make([]Segment, 0, n)
	for i := 1; i < n; i++ {
		segs = append(segs, Segment{From: a.Polygon[i-1], To: a.Polygon[i]})
	}
	if a.Finished {
		segs = append(segs, Segment{From: a.Polygon[n-1], To: a.Polygon[0]})
	}
	return segs
}
