package port

import "dlsdk-demos/internal/domain/entity"

// Visualizer рисует результат инференса поверх изображения
type Visualizer interface {
	// Visualize возвращает закодированное изображение с разметкой
	Visualize(imageData []byte, result entity.Result) ([]byte, error)
}
