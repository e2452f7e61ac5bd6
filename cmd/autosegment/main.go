package main

import (
	"context"
	"fmt"
	"os"

	fyneapp "fyne.io/fyne/v2/app"
	"github.com/akamensky/argparse"
	"go.uber.org/zap"

	app "dlsdk-demos/internal/application"
	"dlsdk-demos/internal/container"
	"dlsdk-demos/internal/domain/entity"
	"dlsdk-demos/internal/infrastructure/imageio"
	"dlsdk-demos/internal/ui"
)

func main() {
	parser := argparse.NewParser("autosegment", "Interactive auto segmentation with point and box prompts")
	imagePath := parser.String("i", "image", &argparse.Options{Help: "Input image", Required: true})
	modelPath := parser.String("m", "model", &argparse.Options{Help: "Path to the auto segmentation model"})
	if err := parser.Parse(os.Args); err != nil {
		fmt.Print(parser.Usage(err))
		os.Exit(1)
	}

	c, err := container.Load("autosegment")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		os.Exit(1)
	}
	defer c.Close()

	if *modelPath == "" {
		*modelPath = c.Config.ModelPath(string(entity.TaskAutoSegmentation))
	}
	if err := run(c, *imagePath, *modelPath); err != nil {
		c.Logger.Error("auto segmentation failed", zap.Error(err))
		c.Close()
		os.Exit(1)
	}
}

func run(c *container.Container, imagePath, modelPath string) error {
	img, err := imageio.Load(imagePath)
	if err != nil {
		return fmt.Errorf("could not load the image from %s: %w", imagePath, err)
	}

	ctx := context.Background()
	model, err := c.InferenceService.Model(ctx, entity.TaskAutoSegmentation, modelPath)
	if err != nil {
		return fmt.Errorf("initialize model: %w", err)
	}

	svc, err := app.NewAutoSegmentService(model, imagePath, c.Logger.Named("autosegment"))
	if err != nil {
		return err
	}

	ui.NewAutoSegmenter(ctx, fyneapp.New(), svc, img, c.Logger.Named("ui")).Run()
	return nil
}
