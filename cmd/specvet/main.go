// Command specvet loads the prefab files the game reads at startup and
// reports every one that fails to parse or validate.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/milk9111/freelook/ecs"
	"github.com/milk9111/freelook/ecs/entity"
	"github.com/milk9111/freelook/input"
	"github.com/milk9111/freelook/logger"
	"github.com/milk9111/freelook/prefabs"
)

func main() {
	dir := flag.String("dir", "prefabs", "prefab directory to check")
	embedded := flag.Bool("embedded", false, "fall back to the embedded prefabs for missing files")
	flag.Parse()

	logger.Init(logger.Config{Level: "info", Format: "console"})

	loader := prefabs.NewLoaderFS(os.DirFS(*dir))
	if *embedded {
		loader = prefabs.NewLoader(*dir)
	}

	failed := 0
	for _, check := range []struct {
		file string
		run  func() error
	}{
		{prefabs.CameraFile, func() error {
			_, err := entity.NewCamera(ecs.NewWorld(), loader)
			return err
		}},
		{prefabs.ActionsFile, func() error {
			spec, err := prefabs.LoadActionsSpec(loader)
			if err != nil {
				return err
			}
			_, err = input.BuildActionMap(spec, loader)
			return err
		}},
		{prefabs.SceneFile, func() error {
			_, err := entity.NewScene(ecs.NewWorld(), loader)
			return err
		}},
	} {
		if err := check.run(); err != nil {
			slog.Error("specvet: invalid", "file", check.file, "err", err)
			failed++
			continue
		}
		slog.Info("specvet: ok", "file", check.file)
	}
	if failed > 0 {
		os.Exit(1)
	}
}
