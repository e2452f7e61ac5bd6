package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"dlsdk-demos/internal/domain/entity"
	"dlsdk-demos/internal/domain/port"
)

// AutoSegmentService собирает подсказки для одного изображения и запускает автосегментацию.
type AutoSegmentService struct {
	model     port.Model
	imagePath string
	image     []byte
	collector *entity.PromptCollector
	logger    *zap.Logger
}

// NewAutoSegmentService читает изображение и проверяет задачу модели.
func NewAutoSegmentService(model port.Model, imagePath string, logger *zap.Logger) (*AutoSegmentService, error) {
	if model.Task() != entity.TaskAutoSegmentation {
		return nil, fmt.Errorf("model task is %s, expected %s", model.Task(), entity.TaskAutoSegmentation)
	}
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	return &AutoSegmentService{
		model:     model,
		imagePath: imagePath,
		image:     data,
		collector: entity.NewPromptCollector(),
		logger:    logger,
	}, nil
}

// Collector возвращает сборщик подсказок.
func (s *AutoSegmentService) Collector() *entity.PromptCollector {
	return s.collector
}

// ResultPath путь, куда сохраняется результат.
func (s *AutoSegmentService) ResultPath() string {
	return filepath.Join(filepath.Dir(s.imagePath), "result.json")
}

// Run запускает инференс со всеми накопленными подсказками и сохраняет result.json рядом с изображением.
func (s *AutoSegmentService) Run(ctx context.Context) (*entity.SegmentationResult, error) {
	prompts := s.collector.Prompts
	res, err := s.model.Inference(ctx, port.InferenceRequest{Image: s.image, Prompts: &prompts})
	if err != nil {
		return nil, err
	}
	seg, ok := res.(*entity.SegmentationResult)
	if !ok {
		return nil, fmt.Errorf("unexpected result type %T", res)
	}

	data, err := entity.MarshalResult(seg)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(s.ResultPath(), data, 0o644); err != nil {
		s.logger.Error("could not save result", zap.String("path", s.ResultPath()), zap.Error(err))
	} else {
		s.logger.Info("result saved", zap.String("path", s.ResultPath()),
			zap.Int("points", len(prompts.Points)), zap.Int("boxes", len(prompts.Boxes)))
	}
	return seg, nil
}

// Reset очищает подсказки.
func (s *AutoSegmentService) Reset() {
	s.collector.Reset()
}
