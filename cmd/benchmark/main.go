package main

import (
	"context"
	"fmt"
	"os"

	"github.com/akamensky/argparse"
	"go.uber.org/zap"

	app "dlsdk-demos/internal/application"
	"dlsdk-demos/internal/container"
	"dlsdk-demos/internal/domain/entity"
)

func main() {
	parser := argparse.NewParser("benchmark", "Load several independent models and time inference in parallel")
	task := parser.String("t", "task", &argparse.Options{Help: "Model task", Default: string(entity.TaskObjectDetection)})
	modelPath := parser.String("m", "model", &argparse.Options{Help: "Path to the model file"})
	imagePath := parser.String("i", "image", &argparse.Options{Help: "Input image", Required: true})
	workers := parser.Int("w", "workers", &argparse.Options{Help: "Number of parallel models, defaults to BENCH_WORKERS"})
	warmup := parser.Int("", "warmup", &argparse.Options{Help: "Untimed inferences per model", Default: 1})
	iterations := parser.Int("n", "iterations", &argparse.Options{Help: "Timed inferences per model", Default: 10})
	if err := parser.Parse(os.Args); err != nil {
		fmt.Print(parser.Usage(err))
		os.Exit(1)
	}

	c, err := container.Load("benchmark")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		os.Exit(1)
	}
	defer c.Close()

	t, err := entity.ParseTask(*task)
	if err != nil {
		c.Logger.Error("invalid task", zap.Error(err))
		c.Close()
		os.Exit(1)
	}
	cfg := app.BenchmarkConfig{
		Task:       t,
		ModelPath:  *modelPath,
		Workers:    *workers,
		Warmup:     *warmup,
		Iterations: *iterations,
	}
	if cfg.ModelPath == "" {
		cfg.ModelPath = c.Config.ModelPath(string(t))
	}
	if cfg.Workers == 0 {
		cfg.Workers = c.Config.BenchWorkers
	}

	if err := run(c, cfg, *imagePath); err != nil {
		c.Logger.Error("benchmark failed", zap.Error(err))
		c.Close()
		os.Exit(1)
	}
}

func run(c *container.Container, cfg app.BenchmarkConfig, imagePath string) error {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return fmt.Errorf("read image: %w", err)
	}

	report, err := c.Benchmark.Run(context.Background(), cfg, data)
	if report != nil {
		for _, w := range report.Workers {
			if w.Err != nil {
				fmt.Printf("Model %d: failed: %v\n", w.Worker+1, w.Err)
				continue
			}
			fmt.Printf("Model %d: load %d ms, mean %.2f ms, std dev %.2f ms over %d images\n",
				w.Worker+1, w.LoadTime.Milliseconds(), w.MeanMS, w.StdDevMS, len(w.Timings))
		}
	}
	if err != nil {
		return err
	}

	fmt.Printf("All models: mean %.2f ms, std dev %.2f ms over %d images, wall time %d ms\n",
		report.MeanMS, report.StdDevMS, report.Images, report.Total.Milliseconds())
	return nil
}
