package app

import (
	"context"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/gostruct/internal/scene"
	"github.com/philipparndt/gostruct/pkg/model"
)

// handleInput processes user input for one frame
func (app *App) handleInput(ctx context.Context, snap *model.Snapshot) {
	app.handleKeys(ctx, snap)
	app.handlePointer(snap)

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		app.doZoom(wheel)
	}
}

// handlePointer feeds the left mouse button to the engine. Whatever the
// engine does not claim drives the camera.
func (app *App) handlePointer(snap *model.Snapshot) {
	mouse := rl.GetMousePosition()
	moved := mouse != app.Interaction.lastMousePos
	app.Interaction.lastMousePos = mouse

	shiftPressed := rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)

	// Camera panning with Shift + mouse drag or middle mouse button drag
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) && shiftPressed {
		app.Interaction.isPanning = true
	}
	if (rl.IsMouseButtonDown(rl.MouseLeftButton) && app.Interaction.isPanning) || rl.IsMouseButtonDown(rl.MouseMiddleButton) {
		if delta := rl.GetMouseDelta(); delta.X != 0 || delta.Y != 0 {
			app.doPan(delta)
		}
	}
	if rl.IsMouseButtonReleased(rl.MouseLeftButton) && app.Interaction.isPanning {
		app.Interaction.isPanning = false
		return
	}
	if app.Interaction.isPanning {
		return
	}

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		app.dispatch(snap, scene.PointerDown, mouse)
		app.Interaction.isOrbiting = app.Scene.engine.NavigationEnabled()
	}

	if moved {
		if app.Interaction.isOrbiting && rl.IsMouseButtonDown(rl.MouseLeftButton) {
			app.doOrbit(rl.GetMouseDelta())
		}
		app.dispatch(snap, scene.PointerMove, mouse)
	}

	if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		app.Interaction.isOrbiting = false
		app.dispatch(snap, scene.PointerUp, mouse)
	}

	// Right drag always orbits when no session claims the pointer
	if rl.IsMouseButtonDown(rl.MouseRightButton) && app.Scene.engine.NavigationEnabled() {
		if delta := rl.GetMouseDelta(); delta.X != 0 || delta.Y != 0 {
			app.doOrbit(delta)
		}
	}
}

// dispatch sends a pointer event to the engine and applies the resulting
// commands to the store
func (app *App) dispatch(snap *model.Snapshot, kind scene.EventKind, pos rl.Vector2) {
	x, y := scene.PixelToNDC(float64(pos.X), float64(pos.Y), rl.GetScreenWidth(), rl.GetScreenHeight())
	app.apply(app.Scene.engine.HandleEvent(snap, scene.Event{Kind: kind, X: x, Y: y}))
}

func (app *App) apply(cmds []model.Command) {
	if len(cmds) == 0 {
		return
	}
	if err := app.Scene.store.Apply(cmds...); err != nil {
		app.logger.Warn("store rejected command", "error", err)
		app.setError("%v", err)
	}
}

// handleKeys processes keyboard shortcuts
func (app *App) handleKeys(ctx context.Context, snap *model.Snapshot) {
	ctrlPressed := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) ||
		rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper)

	if ctrlPressed {
		switch {
		case rl.IsKeyPressed(rl.KeyS):
			app.saveProject()
		case rl.IsKeyPressed(rl.KeyN):
			app.stopSolve()
			app.Scene.store.Reset()
			app.setStatus("New project")
		}
		return
	}

	if rl.IsKeyPressed(rl.KeyEscape) {
		app.apply(app.Scene.engine.HandleEvent(snap, scene.Event{Kind: scene.Cancel}))
	}

	// Camera view preset shortcuts
	if rl.IsKeyPressed(rl.KeyHome) {
		app.resetCameraView()
	}
	if rl.IsKeyPressed(rl.KeyZ) {
		app.frameScene()
	}
	if rl.IsKeyPressed(rl.KeyT) {
		app.setCameraTopView()
	}
	if rl.IsKeyPressed(rl.KeyOne) {
		app.setCameraFrontView()
	}
	if rl.IsKeyPressed(rl.KeyThree) {
		app.setCameraRightView()
	}
	if rl.IsKeyPressed(rl.KeyG) {
		app.View.showGrid = !app.View.showGrid
	}
	if rl.IsKeyPressed(rl.KeyA) {
		app.View.showAxes = !app.View.showAxes
	}
	if rl.IsKeyPressed(rl.KeyL) {
		app.View.showGlyphs = !app.View.showGlyphs
	}

	if snap.HasResults() {
		app.handleResultKeys(snap)
		return
	}

	// Model editing is only possible without results
	for key, kind := range map[int32]model.ShapeKind{
		rl.KeyB: model.ShapeBox,
		rl.KeyC: model.ShapeCylinder,
		rl.KeyS: model.ShapeSphere,
	} {
		if rl.IsKeyPressed(key) {
			if err := app.Scene.store.ArmCreation(kind); err != nil {
				app.setError("%v", err)
			} else {
				app.setStatus("Drag on the ground to create a %s", kind)
			}
		}
	}
	if rl.IsKeyPressed(rl.KeyDelete) || rl.IsKeyPressed(rl.KeyBackspace) {
		if err := app.Scene.store.RemoveSelected(); err != nil {
			app.setError("%v", err)
		}
	}
	if rl.IsKeyPressed(rl.KeyR) {
		app.startSolve(ctx, snap)
	}
}

// handleResultKeys switches between result views
func (app *App) handleResultKeys(snap *model.Snapshot) {
	update := func(fn func(*model.FieldSettings)) {
		if err := app.Scene.store.UpdateFieldSettings(fn); err != nil {
			app.setError("%v", err)
		}
	}

	if rl.IsKeyPressed(rl.KeyX) {
		app.Scene.store.ClearResults()
		app.setStatus("Results cleared")
		return
	}
	if rl.IsKeyPressed(rl.KeyF) {
		update(func(s *model.FieldSettings) {
			if s.Kind == model.FieldStress {
				s.Kind = model.FieldDisplacement
			} else {
				s.Kind = model.FieldStress
			}
		})
	}
	if rl.IsKeyPressed(rl.KeyD) && snap.View.Kind == model.FieldDisplacement {
		update(func(s *model.FieldSettings) { s.ShowDeformed = !s.ShowDeformed })
	}
	step := app.cfg.Field.ScaleStep
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		update(func(s *model.FieldSettings) { s.DeformationScale *= step })
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		update(func(s *model.FieldSettings) { s.DeformationScale /= step })
	}
}
