package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultInferenceURL   = "http://127.0.0.1:5000"
	defaultDevice         = "GPU"
	defaultLogLevel       = "info"
	defaultLogDir         = "./logs"
	defaultViewportWidth  = 800
	defaultViewportHeight = 600
	defaultDataDir        = "./data"
	defaultBenchWorkers   = 2
)

type Config struct {
	TelegramToken  string
	InferenceURL   string // адрес сервиса инференса DaoAI
	Device         string // GPU или CPU
	LogLevel       string
	LogDir         string
	ViewportWidth  int // ширина окна просмотра в пикселях
	ViewportHeight int // высота окна просмотра в пикселях
	DataDir        string
	BenchWorkers   int // число параллельных моделей в бенчмарке
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := &Config{
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
		InferenceURL:  getString("INFERENCE_URL", defaultInferenceURL),
		Device:        strings.ToUpper(getString("DL_DEVICE", defaultDevice)),
		LogLevel:      getString("LOG_LEVEL", defaultLogLevel),
		LogDir:        getString("LOG_DIR", defaultLogDir),
		DataDir:       getString("DATA_DIR", defaultDataDir),
	}

	var err error
	if cfg.ViewportWidth, err = getInt("VIEWPORT_WIDTH", defaultViewportWidth); err != nil {
		return nil, err
	}
	if cfg.ViewportHeight, err = getInt("VIEWPORT_HEIGHT", defaultViewportHeight); err != nil {
		return nil, err
	}
	if cfg.BenchWorkers, err = getInt("BENCH_WORKERS", defaultBenchWorkers); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет, что значения конфигурации допустимы.
func (c *Config) Validate() error {
	if c.Device != "GPU" && c.Device != "CPU" {
		return fmt.Errorf("DL_DEVICE must be GPU or CPU, got %q", c.Device)
	}
	if c.ViewportWidth <= 0 || c.ViewportHeight <= 0 {
		return fmt.Errorf("viewport must be positive, got %dx%d", c.ViewportWidth, c.ViewportHeight)
	}
	if c.BenchWorkers <= 0 {
		return fmt.Errorf("BENCH_WORKERS must be positive, got %d", c.BenchWorkers)
	}
	return nil
}

// ModelPath путь к файлу модели задачи внутри DATA_DIR.
func (c *Config) ModelPath(task string) string {
	return filepath.Join(c.DataDir, "models", task+".dwm")
}

func getString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return n, nil
}
