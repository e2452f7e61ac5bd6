package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"dlsdk-demos/internal/domain/entity"
	"dlsdk-demos/internal/domain/port"
)

// InferenceOutput содержит результат инференса, его JSON и картинку с разметкой.
type InferenceOutput struct {
	Result     entity.Result
	JSON       []byte
	Visualized []byte
	Elapsed    time.Duration
}

// DemoReport пути к файлам, записанным демо.
type DemoReport struct {
	*InferenceOutput
	JSONPath  string
	ImagePath string
}

type modelKey struct {
	task entity.Task
	path string
}

// InferenceService загружает модели и выполняет инференс одного изображения.
type InferenceService struct {
	loader     port.ModelLoader
	visualizer port.Visualizer
	logger     *zap.Logger
	models     map[modelKey]port.Model
	mu         sync.Mutex
}

// NewInferenceService создаёт сервис с кэшем загруженных моделей.
func NewInferenceService(loader port.ModelLoader, visualizer port.Visualizer, logger *zap.Logger) *InferenceService {
	return &InferenceService{
		loader:     loader,
		visualizer: visualizer,
		logger:     logger,
		models:     make(map[modelKey]port.Model),
	}
}

// Model возвращает загруженную модель, загружая её при первом обращении.
func (s *InferenceService) Model(ctx context.Context, task entity.Task, modelPath string) (port.Model, error) {
	if s.loader == nil {
		return nil, errors.New("model loader is not configured")
	}

	key := modelKey{task: task, path: modelPath}
	s.mu.Lock()
	m, ok := s.models[key]
	s.mu.Unlock()
	if ok {
		return m, nil
	}

	// Load выполняется без s.mu; повторная загрузка того же ключа закрывается.
	m, err := s.loader.Load(ctx, task, modelPath)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if cached, ok := s.models[key]; ok {
		if err := m.Close(); err != nil {
			s.logger.Warn("close duplicate model", zap.String("path", modelPath), zap.Error(err))
		}
		return cached, nil
	}
	s.models[key] = m
	return m, nil
}

// RunBytes выполняет инференс изображения из памяти.
func (s *InferenceService) RunBytes(ctx context.Context, task entity.Task, modelPath string, imageData []byte) (*InferenceOutput, error) {
	model, err := s.Model(ctx, task, modelPath)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := model.Inference(ctx, port.InferenceRequest{Image: imageData})
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)

	data, err := entity.MarshalResult(result)
	if err != nil {
		return nil, err
	}

	out := &InferenceOutput{Result: result, JSON: data, Elapsed: elapsed}
	if s.visualizer != nil {
		vis, err := s.visualizer.Visualize(imageData, result)
		if err != nil {
			s.logger.Warn("visualization skipped", zap.String("task", string(task)), zap.Error(err))
		} else {
			out.Visualized = vis
		}
	}
	return out, nil
}

// Run выполняет демо: читает изображение, запускает модель и пишет JSON и визуализацию в outDir.
func (s *InferenceService) Run(ctx context.Context, task entity.Task, modelPath, imagePath, outDir string) (*DemoReport, error) {
	imageData, err := os.ReadFile(imagePath)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}

	out, err := s.RunBytes(ctx, task, modelPath, imageData)
	if err != nil {
		return nil, err
	}
	s.logger.Info("inference done", zap.String("task", string(task)), zap.Duration("elapsed", out.Elapsed))

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(imagePath), filepath.Ext(imagePath)) + "_" + string(task) + "_result"
	report := &DemoReport{InferenceOutput: out, JSONPath: filepath.Join(outDir, base+".json")}
	if err := os.WriteFile(report.JSONPath, append(out.JSON, '\n'), 0o644); err != nil {
		return nil, fmt.Errorf("write json: %w", err)
	}

	if out.Visualized != nil {
		report.ImagePath = filepath.Join(outDir, base+".png")
		if err := os.WriteFile(report.ImagePath, out.Visualized, 0o644); err != nil {
			return nil, fmt.Errorf("write result image: %w", err)
		}
	}
	return report, nil
}

// Close выгружает все модели.
func (s *InferenceService) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	for key, m := range s.models {
		if err := m.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s model: %w", key.task, err))
		}
		delete(s.models, key)
	}
	return errors.Join(errs...)
}
