package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/philipparndt/gostruct/pkg/analysis"
	"github.com/philipparndt/gostruct/pkg/model"
	"github.com/philipparndt/gostruct/pkg/watcher"
)

const defaultProjectFile = "project.yaml"

// loadProject fills the store from the project file. A missing file starts
// an empty project that is created on the first save.
func (app *App) loadProject() error {
	path := app.FileWatch.projectFile
	if path == "" {
		return nil
	}
	if err := app.Scene.store.LoadFile(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			app.logger.Info("starting new project", "file", path)
			return nil
		}
		return fmt.Errorf("failed to load project %s: %w", path, err)
	}
	return nil
}

// saveProject writes the store to the project file
func (app *App) saveProject() {
	path := app.FileWatch.projectFile
	if path == "" {
		path = defaultProjectFile
		app.FileWatch.projectFile = path
	}
	if err := app.Scene.store.SaveFile(path); err != nil {
		app.logger.Error("save failed", "file", path, "error", err)
		app.setError("Save failed: %v", err)
		return
	}
	app.logger.Info("project saved", "file", path)
	app.setStatus("Saved %s", path)
}

// setupFileWatcher watches the results file for output of an external
// analysis run
func (app *App) setupFileWatcher(ctx context.Context) error {
	if app.FileWatch.resultsFile == "" {
		return nil
	}

	fw, err := watcher.NewFileWatcher(app.cfg.Watch.Debounce, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	// Results that are already there are shown right away
	if results, err := analysis.ReadResultsFile(app.FileWatch.resultsFile); err == nil {
		offer(app.FileWatch.results, results)
	} else if !errors.Is(err, os.ErrNotExist) {
		app.logger.Warn("ignoring results file", "file", app.FileWatch.resultsFile, "error", err)
	}

	err = fw.WatchResults(app.FileWatch.resultsFile, func(results *model.ResultField) {
		offer(app.FileWatch.results, results)
	})
	if err != nil {
		fw.Close()
		return fmt.Errorf("failed to watch %s: %w", app.FileWatch.resultsFile, err)
	}

	app.logger.Info("watching results", "file", app.FileWatch.resultsFile)
	fw.Start(ctx)
	app.FileWatch.fileWatcher = fw
	return nil
}

// offer hands v to the frame loop, replacing a value it has not picked up yet
func offer[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

// applyWatchedResults installs results delivered by the watcher. Must run on
// the main thread.
func (app *App) applyWatchedResults() {
	select {
	case results := <-app.FileWatch.results:
		app.Scene.store.SetResults(results)
		app.setStatus("Results reloaded from %s", app.FileWatch.resultsFile)
	default:
	}
}

// startSolve runs the mock solver in the background on the current model
func (app *App) startSolve(ctx context.Context, snap *model.Snapshot) {
	if app.Solve.running {
		return
	}
	if len(snap.Solids) == 0 {
		app.setError("Nothing to solve")
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	app.Solve.running = true
	app.Solve.cancel = cancel
	app.Solve.lastStage = analysis.Stage{}

	in := analysis.Input{
		Solids:   snap.Solids,
		Loads:    snap.Loads,
		Supports: snap.Supports,
		Material: app.Scene.store.Materials()[0],
	}
	solver := analysis.NewMockSolver(app.logger)
	solver.Progress = func(s analysis.Stage) {
		offer(app.Solve.progress, s)
	}

	go func() {
		defer cancel()
		results, err := solver.Solve(ctx, in)
		if err != nil {
			app.Solve.failures <- err
			return
		}
		app.Solve.results <- results
	}()
}

// collectSolve picks up progress and the outcome of a background solve.
// Must run on the main thread.
func (app *App) collectSolve() {
	select {
	case s := <-app.Solve.progress:
		app.Solve.lastStage = s
	default:
	}
	if !app.Solve.running {
		return
	}

	select {
	case results := <-app.Solve.results:
		app.Solve.running = false
		app.Scene.store.SetResults(results)
		app.setStatus("Analysis complete")
	case err := <-app.Solve.failures:
		app.Solve.running = false
		if !errors.Is(err, context.Canceled) {
			app.logger.Error("analysis failed", "error", err)
			app.setError("Analysis failed: %v", err)
		}
	default:
	}
}

// stopSolve cancels a running solve
func (app *App) stopSolve() {
	if app.Solve.cancel != nil {
		app.Solve.cancel()
	}
}
