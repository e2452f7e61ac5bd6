package port

import (
	"context"

	"dlsdk-demos/internal/domain/entity"
)

// InferenceRequest входные данные одного вызова инференса
type InferenceRequest struct {
	Image   []byte            // закодированное изображение (png, jpg, bmp, tiff)
	Prompts *entity.PromptSet // подсказки для автосегментации, может быть nil
}

// Model загруженная модель SDK
type Model interface {
	// Task возвращает задачу модели
	Task() entity.Task

	// Inference выполняет один блокирующий вызов инференса
	Inference(ctx context.Context, req InferenceRequest) (entity.Result, error)

	// Close освобождает модель
	Close() error
}

// ModelLoader загружает модели из файлов .dwm
type ModelLoader interface {
	Load(ctx context.Context, task entity.Task, modelPath string) (Model, error)
}

// ComponentRequest данные для построения компонента сегментации брака без учителя
type ComponentRequest struct {
	Name      string   // имя компонента
	GoodPaths []string // хорошие изображения
	BadPaths  []string // изображения с браком
	MaskPaths []string // маски брака
	SavePath  string   // куда сохранить архив компонента
}

// ComponentTrainer строит архив эталонных эмбеддингов
type ComponentTrainer interface {
	// CreateComponent строит компонент и возвращает путь к сохранённому архиву
	CreateComponent(ctx context.Context, req ComponentRequest) (string, error)
}
