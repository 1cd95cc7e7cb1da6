package scene

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/philipparndt/gostruct/pkg/model"
)

// Engine keeps the scene converged with store snapshots and turns pointer
// input into store commands. It is driven from a single frame loop.
type Engine struct {
	opts   Options
	logger *slog.Logger
	scene  *Scene
	mapper *FieldMapper
	camera Camera
	state  State
}

// NewEngine creates an engine with an empty scene
func NewEngine(opts Options, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		opts:   opts,
		logger: logger,
		scene:  NewScene(opts, logger),
		mapper: NewFieldMapper(opts.UnitFactor, logger),
		state:  Idle{},
	}
}

// SetCamera sets the camera pointer rays are cast from
func (e *Engine) SetCamera(c Camera) {
	e.camera = c
}

// Camera returns the active camera
func (e *Engine) Camera() Camera {
	return e.camera
}

// State returns the current interaction state
func (e *Engine) State() State {
	return e.state
}

// Scene exposes the proxies and glyph sets for rendering
func (e *Engine) Scene() *Scene {
	return e.scene
}

// Update runs one reactive pass: proxies are synchronized first, then glyphs
// and field visuals are derived from the converged proxy set. The returned
// error only reports proxies that could not be built; everything else was
// still converged.
func (e *Engine) Update(snap *model.Snapshot) error {
	e.abandonStaleSession(snap)

	stats, err := e.scene.Sync(snap.Solids)
	pinned := ""
	if d, ok := e.state.(Dragging); ok {
		pinned = d.TargetID
	}
	err = errors.Join(err, e.scene.Reconcile(snap.Solids, pinned, &stats))
	if stats.Changed() {
		e.logger.Debug("scene synchronized",
			"created", stats.Created, "removed", stats.Removed,
			"rebuilt", stats.Rebuilt, "moved", stats.Moved)
	}

	e.scene.RefreshGlyphs(snap, snap.HasResults())
	e.mapper.Apply(e.scene.Proxies(), snap.Results, snap.View)
	e.updateHighlights(snap)

	if err != nil {
		return fmt.Errorf("update scene: %w", err)
	}
	return nil
}

// abandonStaleSession drops a session the snapshot no longer supports:
// results switch the scene to read-only, and a target may vanish mid drag.
func (e *Engine) abandonStaleSession(snap *model.Snapshot) {
	switch s := e.state.(type) {
	case Creating:
		if snap.HasResults() {
			e.state = Idle{}
		}
	case Dragging:
		if _, ok := snap.Solid(s.TargetID); !ok || snap.HasResults() {
			e.logger.Debug("drag abandoned", "id", s.TargetID)
			e.state = Idle{}
		}
	case Hovering:
		if _, ok := snap.Solid(s.TargetID); !ok {
			e.state = Idle{}
		}
	}
}

func (e *Engine) updateHighlights(snap *model.Snapshot) {
	dragged, hovered := "", ""
	switch s := e.state.(type) {
	case Dragging:
		dragged = s.TargetID
	case Hovering:
		if !snap.Creation.Armed {
			hovered = s.TargetID
		}
	}

	for _, p := range e.scene.Proxies() {
		switch {
		case snap.HasResults():
			p.Highlight = HighlightNone
		case p.ID == dragged:
			p.Highlight = HighlightDragged
		case snap.IsSelected(p.ID):
			p.Highlight = HighlightSelected
		case p.ID == hovered:
			p.Highlight = HighlightHovered
		default:
			p.Highlight = HighlightNone
		}
	}
}
