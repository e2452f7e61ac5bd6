package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	fyneapp "fyne.io/fyne/v2/app"
	"github.com/akamensky/argparse"
	"go.uber.org/zap"

	app "dlsdk-demos/internal/application"
	"dlsdk-demos/internal/container"
	"dlsdk-demos/internal/domain/entity"
	"dlsdk-demos/internal/infrastructure/imageio"
	"dlsdk-demos/internal/infrastructure/storage"
	"dlsdk-demos/internal/ui"
)

const usage = `Annotation instructions:
 n: Next image
 p: Previous image
 g: Mark current image as GOOD
 b: Mark current image as BAD (use mouse left-click to add polygon points)
 r: Reset polygon for current BAD image
 f: Finish annotation (close polygon by connecting last point to first)
 q: Quit annotation
 Use mouse wheel to zoom in/out.`

func main() {
	parser := argparse.NewParser("annotate", "Annotate good and bad images and build an unsupervised defect component")
	dir := parser.String("d", "dir", &argparse.Options{Help: "Folder with images, asked interactively when empty"})
	train := parser.Flag("", "train", &argparse.Options{Help: "Build component_1.pth from the export and inspect the bad images"})
	name := parser.String("", "name", &argparse.Options{Help: "Component name", Default: "screw"})
	if err := parser.Parse(os.Args); err != nil {
		fmt.Print(parser.Usage(err))
		os.Exit(1)
	}

	c, err := container.Load("annotate")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		os.Exit(1)
	}
	defer c.Close()

	folder := *dir
	if folder == "" {
		fmt.Print("Enter the folder path containing images: ")
		line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		folder = strings.TrimSpace(line)
	}

	if err := run(c, folder, *train, *name); err != nil {
		c.Logger.Error("annotation failed", zap.String("dir", folder), zap.Error(err))
		c.Close()
		os.Exit(1)
	}
}

func run(c *container.Container, folder string, train bool, name string) error {
	if _, err := os.Stat(folder); err != nil {
		return fmt.Errorf("folder does not exist: %w", err)
	}
	paths, err := imageio.Discover(folder)
	if err != nil {
		return err
	}
	session, err := entity.NewInteractionSession(paths)
	if err != nil {
		return fmt.Errorf("%s: %w", folder, err)
	}

	vp := entity.Viewport{Width: c.Config.ViewportWidth, Height: c.Config.ViewportHeight}
	svc := app.NewAnnotationService(session, vp, imageio.Load, c.Logger.Named("annotation"))
	if err := svc.LoadCurrent(); err != nil {
		return err
	}

	fmt.Println(usage)
	if err := ui.NewAnnotator(fyneapp.New(), svc, c.Logger.Named("ui")).Run(); err != nil {
		return err
	}

	writer, err := storage.NewFileDatasetWriter(filepath.Join(folder, "out"))
	if err != nil {
		return err
	}
	sum := app.NewExporter(writer, imageio.Size, c.Logger.Named("export")).Export(session.Items)
	fmt.Printf("Annotated images saved to %s: %d good, %d bad, %d masks, %d failed\n",
		writer.Root(), sum.Good, sum.Bad, sum.Masks, sum.Failed)

	if !train {
		return nil
	}

	ctx := context.Background()
	training := app.NewDefectTrainingService(writer, c.Trainer, c.Loader, c.Visualizer, c.Logger.Named("training"))
	component, err := training.BuildComponent(ctx, name, filepath.Join(folder, "component_1.pth"))
	if err != nil {
		return err
	}
	fmt.Println("Component memory saved to", component)

	results, err := training.InspectBad(ctx, component)
	for i, r := range results {
		fmt.Printf("Defect score [%d]: %.4f\n", i, r.DeviationScore)
	}
	return err
}
