package main

import (
	"context"
	"fmt"
	"os"

	"github.com/akamensky/argparse"
	"go.uber.org/zap"

	"dlsdk-demos/internal/container"
	"dlsdk-demos/internal/domain/entity"
)

func main() {
	tasks := make([]string, len(entity.Tasks))
	for i, t := range entity.Tasks {
		tasks[i] = string(t)
	}

	parser := argparse.NewParser("demo", "Run one DaoAI model on one image")
	task := parser.Selector("t", "task", tasks, &argparse.Options{Help: "Model task", Required: true})
	modelPath := parser.String("m", "model", &argparse.Options{Help: "Path to the model file, defaults to DATA_DIR/models/<task>.dwm"})
	imagePath := parser.String("i", "image", &argparse.Options{Help: "Input image", Required: true})
	outDir := parser.String("o", "output", &argparse.Options{Help: "Directory for the JSON result and visualization", Default: "output"})
	if err := parser.Parse(os.Args); err != nil {
		fmt.Print(parser.Usage(err))
		os.Exit(1)
	}

	c, err := container.Load("demo")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		os.Exit(1)
	}
	defer c.Close()

	if *modelPath == "" {
		*modelPath = c.Config.ModelPath(*task)
	}

	if err := run(c, entity.Task(*task), *modelPath, *imagePath, *outDir); err != nil {
		c.Logger.Error("demo failed", zap.String("task", *task), zap.Error(err))
		c.Close()
		os.Exit(1)
	}
}

func run(c *container.Container, task entity.Task, modelPath, imagePath, outDir string) error {
	report, err := c.InferenceService.Run(context.Background(), task, modelPath, imagePath, outDir)
	if err != nil {
		return err
	}

	fmt.Printf("%s result:\n%s", task, report.Result.Summary())
	fmt.Printf("Inference time: %d ms\n", report.Elapsed.Milliseconds())
	fmt.Println("JSON saved to:", report.JSONPath)
	if report.ImagePath != "" {
		fmt.Println("Visualization saved to:", report.ImagePath)
	}
	return nil
}
