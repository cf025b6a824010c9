// Package app runs the game in an ebiten window: it owns the game loop, the
// renderer, the text overlay and the optional ImGui debug windows.
package app

import (
	"fmt"
	"io/fs"
	"log"
	"reflect"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/blockmap/config"
	"github.com/plus3/blockmap/ecs"
	"github.com/plus3/blockmap/ecs/debugui"
	debugui_ebiten "github.com/plus3/blockmap/ecs/debugui/ebiten"
	"github.com/plus3/blockmap/game"
	"github.com/plus3/blockmap/input"
)

// Options configures New.
type Options struct {
	// Assets holds the configuration, images and UI layout.
	Assets fs.FS
	// AssetsDir is the disk directory behind Assets, if any. Watch needs it.
	AssetsDir string
	Debug     bool
	Watch     bool
}

// Game implements ebiten.Game.
type Game struct {
	assets fs.FS

	storage         *ecs.Storage
	scheduler       *ecs.Scheduler
	renderScheduler *ecs.Scheduler
	render          *RenderSystem
	screen          *ecs.Singleton[Screen]
	state           *ecs.Singleton[input.State]

	handler *input.Handler
	device  *KeyDevice
	overlay *Overlay
	watcher *config.Watcher

	imgui     *debugui_ebiten.ImguiBackend
	showDebug bool
}

// New loads the configuration, opens the window settings and builds the
// world. Call Run to start the loop.
func New(opts Options) (*Game, error) {
	display, err := config.LoadDisplay(opts.Assets)
	if err != nil {
		return nil, err
	}
	bindings, err := config.LoadBindings(opts.Assets)
	if err != nil {
		return nil, err
	}
	layout, err := config.LoadUI(opts.Assets)
	if err != nil {
		return nil, err
	}

	g := &Game{assets: opts.Assets, showDebug: opts.Debug}

	if opts.Debug {
		g.imgui = debugui_ebiten.NewImguiBackend(display.Title, display.Width, display.Height)
	} else {
		ebiten.SetWindowSize(display.Width, display.Height)
		ebiten.SetWindowTitle(display.Title)
	}
	applyDisplay(display)

	g.device, err = NewKeyDevice(bindings)
	if err != nil {
		return nil, err
	}
	g.device.setSize(display.Width, display.Height)
	g.handler = input.NewHandler(bindings)

	g.overlay, err = NewOverlay(layout)
	if err != nil {
		return nil, err
	}

	registry := ecs.NewComponentRegistry()
	game.RegisterComponents(registry)
	debugui.RegisterComponents(registry)
	g.storage = ecs.NewStorage(registry)

	scene, err := game.Setup(g.storage, opts.Assets, game.DefaultPaths())
	if err != nil {
		return nil, err
	}

	g.scheduler = ecs.NewScheduler(g.storage)
	if _, err := game.Schedule(g.scheduler, g.handler, g.device, log.Default()); err != nil {
		return nil, err
	}
	g.scheduler.Register(&LabelSystem{Overlay: g.overlay}, ecs.Named("label_system"), ecs.After(game.RaycastSystemName))
	if g.imgui != nil {
		ecs.NewSingleton[debugui.ImguiInputState](g.storage)
		g.scheduler.Register(&debugui.ImguiSystem{}, ecs.Named("imgui_system"), ecs.After(game.HoverLogSystemName))
		debugui.NewStatsWindow(g.storage, g.scheduler, 120).Spawn(g.storage)
		browser := debugui.NewEntityBrowser(50, reflect.TypeFor[debugui.ImguiItem]())
		browser.Select(scene.Camera)
		browser.Spawn(g.storage)
		debugui.NewComponentInspector(browser, reflect.TypeFor[game.Block](), reflect.TypeFor[game.TileMap]()).Spawn(g.storage)
		spawnHoverWindow(g.storage, scene.Camera)
	}
	if err := g.scheduler.Build(); err != nil {
		return nil, fmt.Errorf("app: schedule: %w", err)
	}

	g.screen = ecs.NewSingleton[Screen](g.storage)
	g.state = ecs.NewSingleton[input.State](g.storage)
	g.render = &RenderSystem{ClearColor: display.ClearColor.NRGBA}
	g.renderScheduler = ecs.NewScheduler(g.storage)
	g.renderScheduler.Register(g.render, ecs.Named("render_system"))

	if opts.Watch {
		if opts.AssetsDir == "" {
			return nil, fmt.Errorf("app: watch needs an assets directory")
		}
		g.watcher, err = config.NewWatcher(opts.AssetsDir, "config", "images", "ui")
		if err != nil {
			return nil, fmt.Errorf("app: watch %s: %w", opts.AssetsDir, err)
		}
		log.Printf("app: watching %s", opts.AssetsDir)
	}

	return g, nil
}

func applyDisplay(d config.Display) {
	if d.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	} else {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	}
	ebiten.SetVsyncEnabled(d.VSync)
}

// Run blocks until the window closes or quit is pressed.
func (g *Game) Run() error {
	defer g.Close()
	return ebiten.RunGame(g)
}

// Close stops the asset watcher.
func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}

func (g *Game) Update() error {
	if g.imgui != nil {
		g.imgui.BeginFrame()
	}
	g.scheduler.Once(1.0 / float64(ebiten.TPS()))
	if g.imgui != nil {
		g.imgui.EndFrame()
	}
	g.overlay.Update()

	if g.watcher != nil {
		g.reload(g.watcher.Poll())
		select {
		case err := <-g.watcher.Errors:
			log.Printf("app: watch: %v", err)
		default:
		}
	}

	if state := g.state.Get(); state != nil {
		if state.JustPressed(game.ActionToggleDebug) {
			g.showDebug = !g.showDebug
		}
		if state.JustPressed(game.ActionQuit) {
			return ebiten.Termination
		}
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.screen.Set(Screen{Image: screen})
	g.renderScheduler.Once(0)
	g.overlay.Draw(screen)
	if g.imgui != nil && g.showDebug {
		g.imgui.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.device.setSize(outsideWidth, outsideHeight)
	if g.imgui != nil {
		g.imgui.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
