package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"dlsdk-demos/internal/domain/entity"
	"dlsdk-demos/internal/domain/port"
)

// DefectTrainingService строит компонент сегментации брака из выгруженной разметки
// и проверяет его на изображениях с браком.
type DefectTrainingService struct {
	writer     port.DatasetWriter
	trainer    port.ComponentTrainer
	loader     port.ModelLoader
	visualizer port.Visualizer
	logger     *zap.Logger
}

func NewDefectTrainingService(writer port.DatasetWriter, trainer port.ComponentTrainer, loader port.ModelLoader, visualizer port.Visualizer, logger *zap.Logger) *DefectTrainingService {
	return &DefectTrainingService{
		writer:     writer,
		trainer:    trainer,
		loader:     loader,
		visualizer: visualizer,
		logger:     logger,
	}
}

// BuildComponent перечитывает каталоги good/bad/masks и сохраняет архив компонента.
func (s *DefectTrainingService) BuildComponent(ctx context.Context, name, savePath string) (string, error) {
	good, err := s.writer.List(port.BucketGood)
	if err != nil {
		return "", fmt.Errorf("list good images: %w", err)
	}
	bad, err := s.writer.List(port.BucketBad)
	if err != nil {
		return "", fmt.Errorf("list bad images: %w", err)
	}
	masks, err := s.writer.List(port.BucketMasks)
	if err != nil {
		return "", fmt.Errorf("list masks: %w", err)
	}
	if len(good) == 0 {
		return "", errors.New("at least one good image is required to build a component")
	}

	s.logger.Info("building component",
		zap.String("name", name),
		zap.Int("good", len(good)),
		zap.Int("bad", len(bad)),
		zap.Int("masks", len(masks)))

	path, err := s.trainer.CreateComponent(ctx, port.ComponentRequest{
		Name:      name,
		GoodPaths: good,
		BadPaths:  bad,
		MaskPaths: masks,
		SavePath:  savePath,
	})
	if err != nil {
		return "", err
	}
	s.logger.Info("component saved", zap.String("path", path))
	return path, nil
}

// InspectBad прогоняет модель по изображениям с браком и сохраняет визуализации
// как test_unsupervised_result_<i>.png в корне выгрузки.
func (s *DefectTrainingService) InspectBad(ctx context.Context, componentPath string) ([]*entity.DefectResult, error) {
	bad, err := s.writer.List(port.BucketBad)
	if err != nil {
		return nil, fmt.Errorf("list bad images: %w", err)
	}
	if len(bad) == 0 {
		return nil, nil
	}

	model, err := s.loader.Load(ctx, entity.TaskUnsupervisedDefect, componentPath)
	if err != nil {
		return nil, err
	}
	defer model.Close()

	results := make([]*entity.DefectResult, 0, len(bad))
	for i, path := range bad {
		data, err := os.ReadFile(path)
		if err != nil {
			s.logger.Error("read bad image", zap.String("path", path), zap.Error(err))
			continue
		}
		res, err := model.Inference(ctx, port.InferenceRequest{Image: data})
		if err != nil {
			return results, fmt.Errorf("inference on %s: %w", path, err)
		}
		defect, ok := res.(*entity.DefectResult)
		if !ok {
			return results, fmt.Errorf("unexpected result type %T", res)
		}
		results = append(results, defect)
		s.logger.Info("defect score", zap.Int("index", i), zap.String("path", path), zap.Float64("score", defect.DeviationScore))

		vis, err := s.visualizer.Visualize(data, defect)
		if err != nil {
			s.logger.Warn("visualization skipped", zap.Error(err))
			continue
		}
		out := filepath.Join(s.writer.Root(), fmt.Sprintf("test_unsupervised_result_%d.png", i))
		if err := os.WriteFile(out, vis, 0o644); err != nil {
			s.logger.Error("write visualization", zap.String("path", out), zap.Error(err))
			continue
		}
		s.logger.Info("saved visualization", zap.String("path", out))
	}
	return results, nil
}
