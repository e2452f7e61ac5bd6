package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"dlsdk-demos/internal/domain/entity"
	"dlsdk-demos/internal/domain/port"
)

// BenchmarkConfig параметры сравнения времени работы моделей.
type BenchmarkConfig struct {
	Task       entity.Task
	ModelPath  string
	Workers    int
	Warmup     int
	Iterations int
}

// WorkerReport замеры одного потока. Каждый поток владеет своей моделью.
type WorkerReport struct {
	Worker   int
	LoadTime time.Duration
	Timings  []time.Duration
	MeanMS   float64
	StdDevMS float64
	Err      error
}

// BenchmarkReport итог по всем потокам.
type BenchmarkReport struct {
	Workers  []WorkerReport
	MeanMS   float64
	StdDevMS float64
	Total    time.Duration
	Images   int
}

// Benchmark параллельно загружает независимые модели и замеряет время инференса.
type Benchmark struct {
	loader port.ModelLoader
	logger *zap.Logger
}

func NewBenchmark(loader port.ModelLoader, logger *zap.Logger) *Benchmark {
	return &Benchmark{loader: loader, logger: logger}
}

// Run запускает потоки и ждёт завершения всех. Ошибка потока попадает в его отчёт.
func (b *Benchmark) Run(ctx context.Context, cfg BenchmarkConfig, imageData []byte) (*BenchmarkReport, error) {
	if cfg.Workers <= 0 {
		return nil, errors.New("workers must be positive")
	}
	if cfg.Iterations <= 0 {
		return nil, errors.New("iterations must be positive")
	}

	start := time.Now()
	reports := make([]WorkerReport, cfg.Workers)

	var wg sync.WaitGroup
	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			reports[slot] = b.runWorker(ctx, slot, cfg, imageData)
		}(i)
	}
	wg.Wait()

	report := &BenchmarkReport{Workers: reports, Total: time.Since(start)}
	var all []float64
	for _, r := range reports {
		if r.Err != nil {
			b.logger.Error("worker failed", zap.Int("worker", r.Worker), zap.Error(r.Err))
			continue
		}
		all = append(all, durationsMS(r.Timings)...)
	}
	report.Images = len(all)
	if len(all) == 0 {
		return report, errors.New("all workers failed")
	}
	report.MeanMS, report.StdDevMS = stat.MeanStdDev(all, nil)
	if len(all) == 1 {
		report.StdDevMS = 0
	}
	return report, nil
}

func (b *Benchmark) runWorker(ctx context.Context, slot int, cfg BenchmarkConfig, imageData []byte) WorkerReport {
	rep := WorkerReport{Worker: slot}

	loadStart := time.Now()
	model, err := b.loader.Load(ctx, cfg.Task, cfg.ModelPath)
	if err != nil {
		rep.Err = err
		return rep
	}
	defer model.Close()
	rep.LoadTime = time.Since(loadStart)

	req := port.InferenceRequest{Image: imageData}
	for i := 0; i < cfg.Warmup; i++ {
		if _, err := model.Inference(ctx, req); err != nil {
			rep.Err = fmt.Errorf("warmup: %w", err)
			return rep
		}
	}

	rep.Timings = make([]time.Duration, 0, cfg.Iterations)
	for i := 0; i < cfg.Iterations; i++ {
		t := time.Now()
		if _, err := model.Inference(ctx, req); err != nil {
			rep.Err = fmt.Errorf("iteration %d: %w", i, err)
			return rep
		}
		rep.Timings = append(rep.Timings, time.Since(t))
	}

	ms := durationsMS(rep.Timings)
	rep.MeanMS, rep.StdDevMS = stat.MeanStdDev(ms, nil)
	if len(ms) == 1 {
		rep.StdDevMS = 0
	}
	b.logger.Debug("worker done", zap.Int("worker", slot), zap.Float64("mean_ms", rep.MeanMS))
	return rep
}

func durationsMS(ds []time.Duration) []float64 {
	out := make([]float64, len(ds))
	for i, d := range ds {
		out[i] = float64(d) / float64(time.Millisecond)
	}
	return out
}
