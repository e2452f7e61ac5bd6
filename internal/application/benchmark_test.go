package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"dlsdk-demos/internal/domain/entity"
)

func TestBenchmark_EachWorkerOwnsModel(t *testing.T) {
	loader := &fakeLoader{newFn: detectionModel}
	b := NewBenchmark(loader, zap.NewNop())

	report, err := b.Run(context.Background(), BenchmarkConfig{
		Task:       entity.TaskObjectDetection,
		ModelPath:  "m.dwm",
		Workers:    3,
		Warmup:     1,
		Iterations: 4,
	}, []byte("img"))
	require.NoError(t, err)

	require.Len(t, report.Workers, 3)
	require.Equal(t, 12, report.Images)
	require.Len(t, loader.models, 3)
	for i, w := range report.Workers {
		require.Equal(t, i, w.Worker)
		require.NoError(t, w.Err)
		require.Len(t, w.Timings, 4)
	}
	for _, m := range loader.models {
		require.Equal(t, 5, m.calls)
		require.True(t, m.closed)
	}
	require.GreaterOrEqual(t, report.MeanMS, 0.0)
}

func TestBenchmark_FailedWorkerDoesNotStopOthers(t *testing.T) {
	loader := &fakeLoader{newFn: detectionModel, fail: map[int]error{0: errBoom}}
	b := NewBenchmark(loader, zap.NewNop())

	report, err := b.Run(context.Background(), BenchmarkConfig{
		Task: entity.TaskObjectDetection, Workers: 2, Iterations: 1,
	}, nil)
	require.NoError(t, err)
	require.Equal(t, 1, report.Images)
	require.Equal(t, 0.0, report.StdDevMS)

	failed := 0
	for _, w := range report.Workers {
		if w.Err != nil {
			require.ErrorIs(t, w.Err, errBoom)
			failed++
		}
	}
	require.Equal(t, 1, failed)
}

func TestBenchmark_AllWorkersFail(t *testing.T) {
	loader := &fakeLoader{newFn: func(task entity.Task) *fakeModel {
		return &fakeModel{task: task, err: errBoom}
	}}
	b := NewBenchmark(loader, zap.NewNop())

	report, err := b.Run(context.Background(), BenchmarkConfig{
		Task: entity.TaskOCR, Workers: 2, Iterations: 2,
	}, nil)
	require.Error(t, err)
	require.Len(t, report.Workers, 2)
	for _, w := range report.Workers {
		require.ErrorIs(t, w.Err, errBoom)
	}
}

func TestBenchmark_InvalidConfig(t *testing.T) {
	b := NewBenchmark(&fakeLoader{newFn: detectionModel}, zap.NewNop())
	_, err := b.Run(context.Background(), BenchmarkConfig{Workers: 0, Iterations: 1}, nil)
	require.Error(t, err)
	_, err = b.Run(context.Background(), BenchmarkConfig{Workers: 1, Iterations: 0}, nil)
	require.Error(t, err)
}
