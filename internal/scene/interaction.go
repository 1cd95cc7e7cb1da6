package scene

import (
	"github.com/philipparndt/gostruct/pkg/geometry"
	"github.com/philipparndt/gostruct/pkg/model"
)

// State is the interaction state. Exactly one of Idle, Hovering, Creating
// or Dragging is active at any time.
type State interface {
	isState()
}

// Idle is the resting state
type Idle struct{}

// Hovering means the pointer is over a proxy
type Hovering struct {
	TargetID string
}

// Creating is a creation drag in progress
type Creating struct {
	Kind   model.ShapeKind
	Anchor geometry.Vector3
	Size   float64
	// Previewing is set once the pointer moved after the press
	Previewing bool
}

// Dragging is a solid being moved over the ground plane
type Dragging struct {
	TargetID string
	// Offset is the ground projection of the solid minus the ground point
	// under the pointer at press time
	Offset geometry.Vector3
	// Origin is the solid's position before the drag, restored on cancel
	Origin geometry.Vector3
}

func (Idle) isState()     {}
func (Hovering) isState() {}
func (Creating) isState() {}
func (Dragging) isState() {}

// EventKind distinguishes pointer and cancel events
type EventKind int

const (
	PointerDown EventKind = iota
	PointerMove
	PointerUp
	Cancel
)

// Event is a pointer event in normalized device coordinates
type Event struct {
	Kind EventKind
	X, Y float64
}

// Preview is the translucent solid shown during a creation drag
type Preview struct {
	Kind     model.ShapeKind
	Dims     model.Dimensions
	Position geometry.Vector3
}

// Cursor is the pointer affordance the front-end should show
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorCrosshair
	CursorMove
)

// HandleEvent advances the interaction state machine and returns the
// mutations the store should apply, in order.
func (e *Engine) HandleEvent(snap *model.Snapshot, ev Event) []model.Command {
	switch ev.Kind {
	case PointerDown:
		return e.pointerDown(snap, ev)
	case PointerMove:
		e.pointerMove(snap, ev)
	case PointerUp:
		return e.pointerUp(snap, ev)
	case Cancel:
		return e.cancel(snap)
	}
	return nil
}

func (e *Engine) ground(ev Event) (geometry.Vector3, bool) {
	return e.camera.Ray(ev.X, ev.Y).IntersectPlane(geometry.HorizontalPlane(e.opts.GroundHeight))
}

// pick returns the nearest proxy hit by the ray
func (e *Engine) pick(r geometry.Ray) (*Proxy, bool) {
	var (
		best    *Proxy
		bestHit float64
	)
	for _, p := range e.scene.Proxies() {
		if d, ok := p.Intersect(r); ok && (best == nil || d < bestHit) {
			best, bestHit = p, d
		}
	}
	return best, best != nil
}

func (e *Engine) pointerDown(snap *model.Snapshot, ev Event) []model.Command {
	if snap.HasResults() {
		return nil
	}
	switch e.state.(type) {
	case Creating, Dragging:
		return nil
	}

	if snap.Creation.Armed {
		point, ok := e.ground(ev)
		if !ok {
			return nil
		}
		e.state = Creating{Kind: snap.Creation.Kind, Anchor: point, Size: e.opts.MinCreateSize}
		e.logger.Debug("creation started", "kind", snap.Creation.Kind, "anchor", point)
		return nil
	}

	p, hit := e.pick(e.camera.Ray(ev.X, ev.Y))
	if !hit {
		e.state = Idle{}
		return []model.Command{model.SetSelection{}}
	}
	selected := []model.Command{model.SetSelection{Selection: &model.Selection{Kind: model.SelectGeometry, ID: p.ID}}}
	point, ok := e.ground(ev)
	if !ok {
		// no ground point to drag along
		e.state = Hovering{TargetID: p.ID}
		return selected
	}
	e.state = Dragging{
		TargetID: p.ID,
		Offset:   p.Position.Ground().Sub(point.Ground()),
		Origin:   p.Position,
	}
	e.logger.Debug("drag started", "id", p.ID)
	return selected
}

func (e *Engine) pointerMove(snap *model.Snapshot, ev Event) {
	switch s := e.state.(type) {
	case Idle, Hovering:
		e.updateHover(snap, ev)

	case Creating:
		point, ok := e.ground(ev)
		if !ok {
			return
		}
		s.Size = max(s.Anchor.Distance(point), e.opts.MinCreateSize)
		s.Previewing = true
		e.state = s

	case Dragging:
		point, ok := e.ground(ev)
		if !ok {
			return
		}
		p, ok := e.scene.Proxy(s.TargetID)
		if !ok {
			return
		}
		target := point.Ground().Add(s.Offset)
		target.Y = e.opts.GroundHeight + p.Shape().RestHeight()
		if p.moveTo(target, p.Rotation) {
			e.scene.RefreshGlyphSet(snap, s.TargetID)
		}
	}
}

func (e *Engine) updateHover(snap *model.Snapshot, ev Event) {
	if snap.Creation.Armed {
		e.state = Idle{}
		return
	}
	if p, hit := e.pick(e.camera.Ray(ev.X, ev.Y)); hit {
		e.state = Hovering{TargetID: p.ID}
		return
	}
	e.state = Idle{}
}

func (e *Engine) pointerUp(snap *model.Snapshot, ev Event) []model.Command {
	switch s := e.state.(type) {
	case Creating:
		if point, ok := e.ground(ev); ok {
			s.Size = max(s.Anchor.Distance(point), e.opts.MinCreateSize)
		}
		e.state = Idle{}
		e.logger.Debug("creation finished", "kind", s.Kind, "size", s.Size)
		return []model.Command{
			model.CreateSolid{
				Kind:     s.Kind,
				Dims:     model.CubeDimensions(s.Kind, s.Size),
				Position: geometry.Vector3{X: s.Anchor.X, Y: s.Anchor.Y + s.Size/2, Z: s.Anchor.Z},
			},
			model.ClearCreationMode{},
		}

	case Dragging:
		e.state = Idle{}
		p, ok := e.scene.Proxy(s.TargetID)
		if !ok {
			return nil
		}
		e.logger.Debug("drag finished", "id", s.TargetID, "position", p.Position)
		return []model.Command{model.UpdateSolidTransform{ID: s.TargetID, Position: p.Position}}
	}
	return nil
}

func (e *Engine) cancel(snap *model.Snapshot) []model.Command {
	switch s := e.state.(type) {
	case Dragging:
		e.state = Idle{}
		if p, ok := e.scene.Proxy(s.TargetID); ok && p.moveTo(s.Origin, p.Rotation) {
			e.scene.RefreshGlyphSet(snap, s.TargetID)
		}
		return nil
	case Creating:
		e.state = Idle{}
		return []model.Command{model.ClearCreationMode{}}
	}
	if snap.Creation.Armed {
		return []model.Command{model.ClearCreationMode{}}
	}
	return nil
}

// Preview returns the creation preview while a creation drag is shown
func (e *Engine) Preview() (Preview, bool) {
	s, ok := e.state.(Creating)
	if !ok || !s.Previewing {
		return Preview{}, false
	}
	return Preview{
		Kind:     s.Kind,
		Dims:     model.CubeDimensions(s.Kind, s.Size),
		Position: geometry.Vector3{X: s.Anchor.X, Y: s.Anchor.Y + s.Size/2, Z: s.Anchor.Z},
	}, true
}

// NavigationEnabled reports whether the camera may consume pointer input
func (e *Engine) NavigationEnabled() bool {
	switch e.state.(type) {
	case Creating, Dragging:
		return false
	}
	return true
}

// Cursor returns the pointer affordance for the current state
func (e *Engine) Cursor(snap *model.Snapshot) Cursor {
	switch e.state.(type) {
	case Dragging:
		return CursorMove
	case Creating:
		return CursorCrosshair
	case Hovering:
		if snap.Creation.Armed {
			return CursorCrosshair
		}
		if !snap.HasResults() {
			return CursorMove
		}
	}
	if snap.Creation.Armed {
		return CursorCrosshair
	}
	return CursorDefault
}
