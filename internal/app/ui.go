package app

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/gostruct/internal/scene"
	"github.com/philipparndt/gostruct/pkg/model"
	"github.com/philipparndt/gostruct/version"
)

const statusTimeout = 4 * time.Second

var cursors = map[scene.Cursor]int32{
	scene.CursorDefault:   rl.MouseCursorDefault,
	scene.CursorCrosshair: rl.MouseCursorCrosshair,
	scene.CursorMove:      rl.MouseCursorResizeAll,
}

// setStatus shows a transient message in the status bar
func (app *App) setStatus(format string, args ...any) {
	app.UI.status = fmt.Sprintf(format, args...)
	app.UI.statusTime = time.Now()
	app.UI.statusError = false
}

// setError shows a transient error in the status bar
func (app *App) setError(format string, args ...any) {
	app.setStatus(format, args...)
	app.UI.statusError = true
}

// updateCursor switches the mouse cursor when the engine asks for another one
func (app *App) updateCursor(snap *model.Snapshot) {
	cursor := app.Scene.engine.Cursor(snap)
	if cursor == app.UI.cursor {
		return
	}
	app.UI.cursor = cursor
	rl.SetMouseCursor(cursors[cursor])
}

func (app *App) text(s string, x, y, size float32, color rl.Color) {
	rl.DrawTextEx(app.UI.font, s, rl.Vector2{X: x, Y: y}, size, 1, color)
}

// drawUI draws the user interface
func (app *App) drawUI(snap *model.Snapshot) {
	y := float32(10)
	lineHeight := float32(20)
	fontSize16 := float32(16)
	fontSize14 := float32(14)

	screenWidth := float32(rl.GetScreenWidth())
	screenHeight := float32(rl.GetScreenHeight())

	// === MODEL ===
	app.text("Model:", 10, y, fontSize16, rl.Yellow)
	y += lineHeight
	app.text(fmt.Sprintf("  Solids: %d", len(snap.Solids)), 10, y, fontSize14, rl.White)
	y += lineHeight
	app.text(fmt.Sprintf("  Loads: %d | Supports: %d", len(snap.Loads), len(snap.Supports)), 10, y, fontSize14, rl.White)
	y += lineHeight
	if snap.Selection != nil {
		app.text(fmt.Sprintf("  Selected: %s %s", snap.Selection.Kind, app.selectionName(snap)), 10, y, fontSize14, rl.Green)
		y += lineHeight
	}
	if snap.Creation.Armed {
		app.text(fmt.Sprintf("  Creating: %s (Esc cancels)", snap.Creation.Kind), 10, y, fontSize14, rl.SkyBlue)
		y += lineHeight
	}
	y += lineHeight

	// === EDIT ===
	app.text("Edit:", 10, y, fontSize16, rl.Yellow)
	y += lineHeight
	if snap.HasResults() {
		app.text("  F: Field | D: Deformed | +/-: Scale", 10, y, fontSize14, rl.LightGray)
		y += lineHeight
		app.text("  X: Clear results", 10, y, fontSize14, rl.LightGray)
		y += lineHeight
	} else {
		app.text("  B: Box | C: Cylinder | S: Sphere", 10, y, fontSize14, rl.LightGray)
		y += lineHeight
		app.text("  Left Drag: Move solid | Del: Remove", 10, y, fontSize14, rl.LightGray)
		y += lineHeight
		app.text("  R: Run analysis", 10, y, fontSize14, rl.LightGray)
		y += lineHeight
	}
	app.text("  Ctrl+S: Save | Ctrl+N: New", 10, y, fontSize14, rl.LightGray)
	y += lineHeight * 2

	// === VIEW ===
	app.text("View:", 10, y, fontSize16, rl.Yellow)
	y += lineHeight
	app.text("  Home: Reset | Z: Fit | T: Top | 1: Front | 3: Right", 10, y, fontSize14, rl.LightGray)
	y += lineHeight
	app.text("  G: Grid | A: Axes | L: Loads", 10, y, fontSize14, rl.LightGray)
	y += lineHeight
	app.text("  Right Drag: Rotate | Shift+Drag: Pan", 10, y, fontSize14, rl.LightGray)

	if snap.HasResults() {
		app.drawLegend(snap, screenWidth)
	}

	// Solver progress (top-right corner)
	if app.Solve.running {
		stage := app.Solve.lastStage
		progressText := fmt.Sprintf("Analysis %d%% %s", stage.Percent, stage.Message)
		boxWidth := float32(320)
		boxX := screenWidth - boxWidth - 20
		rl.DrawRectangle(int32(boxX), 20, int32(boxWidth), 40, rl.NewColor(0, 0, 0, 180))
		rl.DrawRectangle(int32(boxX), 56, int32(boxWidth*float32(stage.Percent)/100), 4, rl.Yellow)
		rl.DrawRectangleLines(int32(boxX), 20, int32(boxWidth), 40, rl.Yellow)
		app.text(progressText, boxX+10, 30, fontSize14, rl.Yellow)
	}

	// Status bar
	if app.UI.status != "" && time.Since(app.UI.statusTime) < statusTimeout {
		color := rl.LightGray
		if app.UI.statusError {
			color = rl.NewColor(255, 100, 100, 255)
		}
		app.text(app.UI.status, 10, screenHeight-50, fontSize14, color)
	}

	versionText := fmt.Sprintf("gostruct %s", version.GetFullVersion())
	app.text(versionText, 10, screenHeight-25, 12, rl.Gray)
}

// drawLegend draws the color ramp with the range of the visualized field
func (app *App) drawLegend(snap *model.Snapshot, screenWidth float32) {
	const (
		width  = 24
		height = 200
		steps  = 50
	)
	kind := snap.View.Kind
	r := snap.Results.Range(kind)

	x := int32(screenWidth) - 190
	y := int32(90)
	rl.DrawRectangle(x-10, y-40, 180, height+70, rl.NewColor(0, 0, 0, 180))

	title := fmt.Sprintf("%s (%s)", scene.FieldLabel(kind), scene.FieldUnit(kind))
	app.text(title, float32(x), float32(y-30), 14, rl.White)

	// Highest value on top
	stepHeight := int32(height / steps)
	for i := range steps {
		v := 1 - (float64(i)+0.5)/steps
		rl.DrawRectangle(x, y+int32(i)*stepHeight, width, stepHeight, toColor(scene.MapColor(v)))
	}
	rl.DrawRectangleLines(x, y, width, steps*stepHeight, rl.LightGray)

	app.text(scene.FormatFieldValue(kind, r.Max), float32(x+width+8), float32(y), 12, rl.White)
	app.text(scene.FormatFieldValue(kind, r.Min), float32(x+width+8), float32(y+steps*stepHeight-12), 12, rl.White)

	if snap.View.Deforming() {
		app.text(fmt.Sprintf("Deformed %.1fx", snap.View.DeformationScale), float32(x), float32(y+height+8), 12, rl.SkyBlue)
	}
}

func (app *App) selectionName(snap *model.Snapshot) string {
	if snap.Selection.Kind == model.SelectGeometry {
		if s, ok := snap.Solid(snap.Selection.ID); ok && s.Name != "" {
			return s.Name
		}
	}
	return snap.Selection.ID
}
