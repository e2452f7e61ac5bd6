package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("INFERENCE_URL", "")
	t.Setenv("DL_DEVICE", "")
	t.Setenv("VIEWPORT_WIDTH", "")
	t.Setenv("VIEWPORT_HEIGHT", "")
	t.Setenv("BENCH_WORKERS", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, defaultInferenceURL, cfg.InferenceURL)
	require.Equal(t, "GPU", cfg.Device)
	require.Equal(t, 800, cfg.ViewportWidth)
	require.Equal(t, 600, cfg.ViewportHeight)
	require.Equal(t, 2, cfg.BenchWorkers)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DL_DEVICE", "cpu")
	t.Setenv("VIEWPORT_WIDTH", "1024")
	t.Setenv("VIEWPORT_HEIGHT", "768")
	t.Setenv("BENCH_WORKERS", "4")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "CPU", cfg.Device)
	require.Equal(t, 1024, cfg.ViewportWidth)
	require.Equal(t, 768, cfg.ViewportHeight)
	require.Equal(t, 4, cfg.BenchWorkers)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("VIEWPORT_WIDTH", "wide")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("VIEWPORT_WIDTH", "")
	t.Setenv("DL_DEVICE", "TPU")
	_, err = Load()
	require.Error(t, err)
}

func TestConfig_ModelPath(t *testing.T) {
	cfg := &Config{DataDir: "/srv/data"}
	require.Equal(t, "/srv/data/models/ocr.dwm", cfg.ModelPath("ocr"))
}
