package container

import (
	"fmt"

	"go.uber.org/zap"

	"dlsdk-demos/config"
	app "dlsdk-demos/internal/application"
	"dlsdk-demos/internal/domain/port"
	"dlsdk-demos/internal/infrastructure/logging"
	"dlsdk-demos/internal/infrastructure/sdk"
	"dlsdk-demos/internal/infrastructure/storage"
	"dlsdk-demos/internal/infrastructure/vision"
)

type Container struct {
	Config     *config.Config
	Logger     *zap.Logger
	Loader     port.ModelLoader
	Trainer    port.ComponentTrainer
	Visualizer port.Visualizer

	UserService      *app.UserService
	InferenceService *app.InferenceService
	Benchmark        *app.Benchmark
}

func New(cfg *config.Config, userRepo port.UserRepository, loader port.ModelLoader, trainer port.ComponentTrainer, visualizer port.Visualizer, logger *zap.Logger) *Container {
	userService := app.NewUserService(userRepo)
	inferenceService := app.NewInferenceService(loader, visualizer, logger.Named("inference"))
	benchmark := app.NewBenchmark(loader, logger.Named("benchmark"))

	return &Container{
		Config:           cfg,
		Logger:           logger,
		Loader:           loader,
		Trainer:          trainer,
		Visualizer:       visualizer,
		UserService:      userService,
		InferenceService: inferenceService,
		Benchmark:        benchmark,
	}
}

// Load читает конфигурацию и собирает контейнер с клиентом сервиса инференса.
// name задаёт имя логгера и файлов логов.
func Load(name string) (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(name, cfg.LogLevel, cfg.LogDir)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	client := sdk.NewClient(cfg.InferenceURL, cfg.Device, logger.Named("sdk"))
	return New(cfg, storage.NewMemoryUserRepository(), client, client, vision.NewGoCVRenderer(), logger), nil
}

// Close выгружает модели сервиса инференса и сбрасывает буфер логгера.
func (c *Container) Close() error {
	err := c.InferenceService.Close()
	_ = c.Logger.Sync()
	return err
}
