package app

import (
	"image"

	"go.uber.org/zap"

	"dlsdk-demos/internal/domain/entity"
	"dlsdk-demos/internal/domain/port"
	"dlsdk-demos/internal/infrastructure/mask"
)

// SizeReader возвращает размер изображения в пикселях.
type SizeReader func(path string) (image.Point, error)

// ExportSummary итог выгрузки разметки.
type ExportSummary struct {
	Good   int
	Bad    int
	Masks  int
	Failed int
}

// Exporter раскладывает размеченные изображения по каталогам good/bad и пишет маски.
type Exporter struct {
	writer port.DatasetWriter
	size   SizeReader
	logger *zap.Logger
}

func NewExporter(writer port.DatasetWriter, size SizeReader, logger *zap.Logger) *Exporter {
	return &Exporter{writer: writer, size: size, logger: logger}
}

// Export выгружает все размеченные изображения. Ошибки по отдельным файлам не прерывают выгрузку.
func (e *Exporter) Export(items []*entity.Annotation) ExportSummary {
	var sum ExportSummary
	for _, ann := range items {
		if !ann.IsAnnotated {
			continue
		}
		if ann.IsGood {
			if _, err := e.writer.CopyToBucket(ann.FilePath, port.BucketGood); err != nil {
				e.logger.Error("copy good image", zap.String("path", ann.FilePath), zap.Error(err))
				sum.Failed++
				continue
			}
			sum.Good++
			continue
		}

		if _, err := e.writer.CopyToBucket(ann.FilePath, port.BucketBad); err != nil {
			e.logger.Error("copy bad image", zap.String("path", ann.FilePath), zap.Error(err))
			sum.Failed++
			continue
		}
		sum.Bad++

		size, err := e.size(ann.FilePath)
		if err != nil {
			e.logger.Error("read image for mask generation", zap.String("path", ann.FilePath), zap.Error(err))
			sum.Failed++
			continue
		}
		if !ann.Finished {
			e.logger.Warn("exporting unfinished polygon", zap.String("path", ann.FilePath), zap.Int("points", len(ann.Polygon)))
		}
		if _, err := e.writer.WriteMask(ann.FilePath, mask.Rasterize(size.X, size.Y, ann.Polygon)); err != nil {
			e.logger.Error("write mask", zap.String("path", ann.FilePath), zap.Error(err))
			sum.Failed++
			continue
		}
		sum.Masks++
	}

	e.logger.Info("annotated images exported",
		zap.String("root", e.writer.Root()),
		zap.Int("good", sum.Good),
		zap.Int("bad", sum.Bad),
		zap.Int("masks", sum.Masks),
		zap.Int("failed", sum.Failed))
	return sum
}
