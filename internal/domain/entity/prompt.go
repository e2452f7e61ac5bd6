package entity

import "image"

// DefaultDragThreshold смещение в пикселях, после которого показывается рамка.
const DefaultDragThreshold = 5

// PointLabel тип точки-подсказки.
type PointLabel string

const (
	PointPositive PointLabel = "1"
	PointNegative PointLabel = "0"
)

// ClickPoint точка-подсказка для автосегментации.
type ClickPoint struct {
	X     int        `json:"x"`
	Y     int        `json:"y"`
	Label PointLabel `json:"label"`
}

// Box прямоугольная подсказка, заданная двумя углами.
type Box struct {
	Start image.Point `json:"start"`
	End   image.Point `json:"end"`
}

// Rect возвращает нормализованный прямоугольник.
func (b Box) Rect() image.Rectangle {
	return image.Rectangle{Min: b.Start, Max: b.End}.Canon()
}

// PromptSet набор подсказок для одного вызова инференса.
type PromptSet struct {
	Points []ClickPoint `json:"points"`
	Boxes  []Box        `json:"boxes"`
}

// Empty сообщает, что подсказок нет.
func (p *PromptSet) Empty() bool {
	return len(p.Points) == 0 && len(p.Boxes) == 0
}

// Reset очищает точки и рамки вместе.
func (p *PromptSet) Reset() {
	p.Points = nil
	p.Boxes = nil
}

// PromptCollector собирает подсказки из событий указателя.
type PromptCollector struct {
	Prompts       PromptSet
	Mode          InteractionMode
	DragThreshold int
	start         image.Point
}

// NewPromptCollector создаёт сборщик с порогом перетаскивания по умолчанию.
func NewPromptCollector() *PromptCollector {
	return &PromptCollector{DragThreshold: DefaultDragThreshold}
}

// Press начинает нажатие основной кнопки.
func (c *PromptCollector) Press(p image.Point) {
	c.Mode = ModeDragging
	c.start = p
}

// Move возвращает рамку предпросмотра, если указатель сдвинулся дальше порога.
func (c *PromptCollector) Move(p image.Point) (Box, bool) {
	if c.Mode != ModeDragging {
		return Box{}, false
	}
	if abs(p.X-c.start.X) > c.DragThreshold || abs(p.Y-c.start.Y) > c.DragThreshold {
		return Box{Start: c.start, End: p}, true
	}
	return Box{}, false
}

// Release завершает нажатие: без смещения добавляется положительная точка, иначе рамка.
// Возвращает false, если нажатия не было.
func (c *PromptCollector) Release(p image.Point) bool {
	if c.Mode != ModeDragging {
		return false
	}
	c.Mode = ModeIdle
	if p == c.start {
		c.Prompts.Points = append(c.Prompts.Points, ClickPoint{X: p.X, Y: p.Y, Label: PointPositive})
		return true
	}
	c.Prompts.Boxes = append(c.Prompts.Boxes, Box{Start: c.start, End: p})
	return true
}

// Secondary добавляет отрицательную точку.
func (c *PromptCollector) Secondary(p image.Point) {
	c.Prompts.Points = append(c.Prompts.Points, ClickPoint{X: p.X, Y: p.Y, Label: PointNegative})
}

// Reset очищает подсказки и прерывает перетаскивание.
func (c *PromptCollector) Reset() {
	c.Prompts.Reset()
	c.Mode = ModeIdle
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
