package app

import (
	"context"
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/gostruct/internal/config"
	"github.com/philipparndt/gostruct/internal/scene"
	"github.com/philipparndt/gostruct/pkg/analysis"
	"github.com/philipparndt/gostruct/pkg/model"
	"github.com/philipparndt/gostruct/pkg/store"
)

type App struct {
	Camera      CameraState
	Scene       SceneState
	View        ViewSettings
	Interaction InteractionState
	FileWatch   FileWatchState
	Solve       SolveState
	UI          UIState

	cfg    config.Config
	logger *slog.Logger
}

// Options select what the viewer opens
type Options struct {
	Config      config.Config
	ProjectFile string // loaded on start and written by Ctrl+S
	ResultsFile string // watched for results of an external analysis run
	Logger      *slog.Logger
}

func newApp(opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &App{
		Scene: SceneState{
			store:  store.New(logger, opts.Config.StoreOptions()...),
			engine: scene.NewEngine(opts.Config.SceneOptions(), logger),
			meshes: make(map[string]*gpuMesh),
		},
		View: ViewSettings{
			showGrid:   true,
			showAxes:   true,
			showGlyphs: true,
		},
		FileWatch: FileWatchState{
			projectFile: opts.ProjectFile,
			resultsFile: opts.ResultsFile,
			results:     make(chan *model.ResultField, 1),
		},
		Solve: SolveState{
			progress: make(chan analysis.Stage, 1),
			results:  make(chan *model.ResultField, 1),
			failures: make(chan error, 1),
		},
		cfg:    opts.Config,
		logger: logger,
	}
}

// Run opens the viewer window and blocks until it is closed
func Run(ctx context.Context, opts Options) error {
	app := newApp(opts)
	if err := app.loadProject(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := app.setupFileWatcher(ctx); err != nil {
		app.logger.Warn("auto-reload of results is not available", "error", err)
	} else if app.FileWatch.fileWatcher != nil {
		defer app.FileWatch.fileWatcher.Close()
	}
	defer app.stopSolve()

	// Initialize window
	win := app.cfg.Window
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagMsaa4xHint) // Must be before InitWindow
	rl.InitWindow(int32(win.Width), int32(win.Height), win.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(win.FPS))
	// Escape cancels interactions instead of closing the window
	rl.SetExitKey(0)

	app.UI.font = rl.GetFontDefault()
	app.Scene.material = rl.LoadMaterialDefault()
	defer app.unloadMeshes()
	app.initCamera()

	// Main loop
	for !rl.WindowShouldClose() {
		if ctx.Err() != nil {
			break
		}

		// Check for Ctrl+Q to exit
		ctrlPressed := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl)
		if ctrlPressed && rl.IsKeyPressed(rl.KeyQ) {
			break
		}

		// Work finished in the background is applied on the main thread
		app.applyWatchedResults()
		app.collectSolve()
		app.Scene.store.SetViewport(rl.GetScreenWidth(), rl.GetScreenHeight())

		snap, err := app.snapshot()
		if err != nil {
			return err
		}

		app.updateCamera()
		app.Scene.engine.SetCamera(app.sceneCamera())
		app.handleInput(ctx, snap)

		if snap, err = app.snapshot(); err != nil {
			return err
		}
		app.update(snap)
		app.syncMeshes()
		app.updateCursor(snap)

		// Draw
		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(0x1a, 0x1a, 0x1a, 255))

		rl.BeginMode3D(app.Camera.camera)
		app.drawGround()
		app.drawProxies()
		if app.View.showGlyphs {
			app.drawGlyphs()
		}
		app.drawPreview()
		rl.EndMode3D()

		app.drawUI(snap)

		rl.EndDrawing()
	}
	return nil
}

// snapshot returns the store snapshot, taking a new one only when the
// store changed
func (app *App) snapshot() (*model.Snapshot, error) {
	if app.Scene.snapshot != nil && app.Scene.store.Revision() == app.Scene.revision {
		return app.Scene.snapshot, nil
	}
	snap, err := app.Scene.store.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot store: %w", err)
	}
	app.Scene.snapshot = snap
	app.Scene.revision = snap.Revision
	app.Scene.synced = false
	return snap, nil
}

// update runs the engine pass. Build failures are reported once per store
// revision, the engine keeps the last good proxies meanwhile.
func (app *App) update(snap *model.Snapshot) {
	err := app.Scene.engine.Update(snap)
	if err != nil && !app.Scene.synced {
		app.logger.Warn("scene out of sync", "error", err)
		app.setError("%v", err)
	}
	app.Scene.synced = true
}
