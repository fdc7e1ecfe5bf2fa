package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/freelook/common"
	"github.com/milk9111/freelook/config"
	"github.com/milk9111/freelook/ecs"
	"github.com/milk9111/freelook/ecs/component"
	"github.com/milk9111/freelook/ecs/entity"
	"github.com/milk9111/freelook/ecs/system"
	"github.com/milk9111/freelook/input"
	"github.com/milk9111/freelook/prefabs"
)

type Game struct {
	cfg *config.Config

	world     *ecs.World
	scheduler *ecs.Scheduler
	actions   *input.ActionMap
	render    *system.RenderSystem
	hud       *system.HUDSystem
	camera    ecs.Entity
	watcher   *prefabs.Watcher

	paused  bool
	quit    bool
	pauseUI *ebitenui.UI
}

func NewGame(cfg *config.Config) (*Game, error) {
	loader := prefabs.NewLoader(cfg.Prefabs.Dir)

	actionsSpec, err := prefabs.LoadActionsSpec(loader)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	actions, err := input.BuildActionMap(actionsSpec, loader)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	world := ecs.NewWorld()
	camera, err := entity.NewCamera(world, loader)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	if _, err := entity.NewScene(world, loader); err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	g := &Game{
		cfg:     cfg,
		world:   world,
		actions: actions,
		render:  system.NewRenderSystem(),
		hud:     system.NewHUDSystem(),
		camera:  camera,
	}

	var changes <-chan prefabs.Change
	if cfg.Prefabs.Watch {
		dir := cfg.Prefabs.Dir
		dirs := []string{dir}
		if fi, err := os.Stat(filepath.Join(dir, "scripts")); err == nil && fi.IsDir() {
			dirs = append(dirs, filepath.Join(dir, "scripts"))
		}
		watcher, err := prefabs.NewWatcher(dirs...)
		if err != nil {
			slog.Warn("game: prefab watcher disabled", "dir", dir, "err", err)
		} else {
			g.watcher = watcher
			changes = watcher.Events
			go logWatchErrors(watcher.Errors)
		}
	}

	deltaTime := func() float64 { return 1 / float64(ebiten.TPS()) }
	g.scheduler = ecs.NewScheduler(
		system.NewReloadSystem(changes, loader, actions),
		system.NewLookSystem(actions, deltaTime),
		system.NewInputSystem(actions, input.NewEbitenSource()),
		g.hud,
	)
	g.pauseUI = NewPauseUI(g)

	return g, nil
}

func logWatchErrors(errs <-chan error) {
	for err := range errs {
		slog.Warn("game: prefab watcher", "err", err)
	}
}

func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}

// lookRotator returns the camera's rotator for the settings menu.
func (g *Game) lookRotator() *component.LookRotator {
	rot, _ := ecs.Get(g.world, g.camera, component.LookRotatorComponent.Kind())
	return rot
}

func (g *Game) setPaused(paused bool) {
	if g.paused == paused {
		return
	}
	g.paused = paused
	if paused {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
		return
	}
	ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	// the cursor moved freely in the menu; don't turn that into a look delta
	g.actions.Reset()
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.setPaused(!g.paused)
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}
	g.scheduler.Update(g.world)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(g.world, screen)
	if g.cfg.Debug {
		g.hud.Draw(screen)
	}
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}
