package store

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"

	"github.com/philipparndt/gostruct/pkg/geometry"
	"github.com/philipparndt/gostruct/pkg/model"
)

var (
	// ErrNotFound is returned when an id does not name a stored entity
	ErrNotFound = errors.New("not found")
	// ErrDanglingTarget is returned when an annotation targets a missing solid
	ErrDanglingTarget = errors.New("annotation target does not exist")
)

// id prefixes per entity list
const (
	solidPrefix   = "geo-"
	loadPrefix    = "load-"
	supportPrefix = "bc-"
)

// Store is the authoritative model: solids, annotations, selection, results
// and view settings. Every mutation bumps Revision so readers can tell when
// to take a new snapshot.
type Store struct {
	mu     sync.RWMutex
	logger *slog.Logger

	revision  uint64
	solids    []model.Solid
	loads     []model.Load
	supports  []model.Support
	materials []model.Material
	selection *model.Selection
	results   *model.ResultField
	view      model.FieldSettings
	creation  model.CreationMode
	viewport  model.Viewport

	// view settings restored when results are cleared or the project is reset
	defaultView model.FieldSettings
}

// Option configures a Store
type Option func(*Store)

// WithDeformationScale sets the deformation scale the view starts with and
// returns to when results are cleared
func WithDeformationScale(scale float64) Option {
	return func(s *Store) {
		if scale > 0 {
			s.defaultView.DeformationScale = scale
		}
	}
}

// New creates an empty store
func New(logger *slog.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		logger:      logger,
		materials:   []model.Material{model.DefaultMaterial()},
		defaultView: model.DefaultFieldSettings(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.view = s.defaultView
	return s
}

func newID(prefix string) string {
	return prefix + uuid.NewString()
}

// changed must be called with the write lock held
func (s *Store) changed() {
	s.revision++
}

// Revision returns the mutation counter
func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// Snapshot returns a deep copy of the entity lists and settings. The result
// field is shared: it is replaced as a whole and never modified in place.
func (s *Store) Snapshot() (*model.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := &model.Snapshot{
		Revision: s.revision,
		Results:  s.results,
		View:     s.view,
		Creation: s.creation,
		Viewport: s.viewport,
	}
	opt := copier.Option{DeepCopy: true}
	if err := copier.CopyWithOption(&snap.Solids, &s.solids, opt); err != nil {
		return nil, fmt.Errorf("copy solids: %w", err)
	}
	if err := copier.CopyWithOption(&snap.Loads, &s.loads, opt); err != nil {
		return nil, fmt.Errorf("copy loads: %w", err)
	}
	if err := copier.CopyWithOption(&snap.Supports, &s.supports, opt); err != nil {
		return nil, fmt.Errorf("copy supports: %w", err)
	}
	if s.selection != nil {
		sel := *s.selection
		snap.Selection = &sel
	}
	return snap, nil
}

// Materials returns a copy of the material list
func (s *Store) Materials() []model.Material {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.materials)
}

// AddSolid validates and stores a solid. An empty id is assigned; the
// stored id is returned.
func (s *Store) AddSolid(solid model.Solid) (string, error) {
	if solid.ID == "" {
		solid.ID = newID(solidPrefix)
	}
	if solid.Name == "" {
		solid.Name = defaultName(solid.Kind)
	}
	if err := solid.Validate(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.solidIndex(solid.ID) >= 0 {
		return "", fmt.Errorf("solid %q already exists", solid.ID)
	}
	s.solids = append(s.solids, solid)
	s.changed()
	s.logger.Debug("solid added", "id", solid.ID, "kind", solid.Kind)
	return solid.ID, nil
}

// UpdateSolid applies fn to a copy of the solid and stores it if it is
// still valid. The id cannot be changed.
func (s *Store) UpdateSolid(id string, fn func(*model.Solid)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.solidIndex(id)
	if i < 0 {
		return fmt.Errorf("solid %q: %w", id, ErrNotFound)
	}
	updated := s.solids[i]
	fn(&updated)
	updated.ID = id
	if err := updated.Validate(); err != nil {
		return err
	}
	s.solids[i] = updated
	s.changed()
	return nil
}

// MoveSolid sets the position of a solid
func (s *Store) MoveSolid(id string, position geometry.Vector3) error {
	return s.UpdateSolid(id, func(solid *model.Solid) {
		solid.Position = position
	})
}

// RemoveSolid deletes a solid together with every annotation targeting it.
// A selection pointing at any of them is cleared.
func (s *Store) RemoveSolid(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.solidIndex(id)
	if i < 0 {
		return fmt.Errorf("solid %q: %w", id, ErrNotFound)
	}
	s.solids = slices.Delete(s.solids, i, i+1)

	removed := map[string]struct{}{id: {}}
	s.loads = slices.DeleteFunc(s.loads, func(l model.Load) bool {
		if l.TargetID == id {
			removed[l.ID] = struct{}{}
			return true
		}
		return false
	})
	s.supports = slices.DeleteFunc(s.supports, func(b model.Support) bool {
		if b.TargetID == id {
			removed[b.ID] = struct{}{}
			return true
		}
		return false
	})
	if s.selection != nil {
		if _, ok := removed[s.selection.ID]; ok {
			s.selection = nil
		}
	}
	s.changed()
	s.logger.Debug("solid removed", "id", id, "cascaded", len(removed)-1)
	return nil
}

// AddLoad validates and stores a load on an existing solid
func (s *Store) AddLoad(load model.Load) (string, error) {
	if load.ID == "" {
		load.ID = newID(loadPrefix)
	}
	if err := load.Validate(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkTarget(load.TargetID); err != nil {
		return "", err
	}
	s.loads = append(s.loads, load)
	s.changed()
	return load.ID, nil
}

// UpdateLoad applies fn to a copy of the load and stores it if it is valid
func (s *Store) UpdateLoad(id string, fn func(*model.Load)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.loads, func(l model.Load) bool { return l.ID == id })
	if i < 0 {
		return fmt.Errorf("load %q: %w", id, ErrNotFound)
	}
	updated := s.loads[i]
	fn(&updated)
	updated.ID = id
	if err := updated.Validate(); err != nil {
		return err
	}
	if err := s.checkTarget(updated.TargetID); err != nil {
		return err
	}
	s.loads[i] = updated
	s.changed()
	return nil
}

// RemoveLoad deletes a load
func (s *Store) RemoveLoad(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.loads, func(l model.Load) bool { return l.ID == id })
	if i < 0 {
		return fmt.Errorf("load %q: %w", id, ErrNotFound)
	}
	s.loads = slices.Delete(s.loads, i, i+1)
	s.clearSelectionOf(id)
	s.changed()
	return nil
}

// AddSupport validates and stores a support on an existing solid
func (s *Store) AddSupport(support model.Support) (string, error) {
	if support.ID == "" {
		support.ID = newID(supportPrefix)
	}
	if err := support.Validate(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkTarget(support.TargetID); err != nil {
		return "", err
	}
	s.supports = append(s.supports, support)
	s.changed()
	return support.ID, nil
}

// UpdateSupport applies fn to a copy of the support and stores it if it is valid
func (s *Store) UpdateSupport(id string, fn func(*model.Support)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.supports, func(b model.Support) bool { return b.ID == id })
	if i < 0 {
		return fmt.Errorf("support %q: %w", id, ErrNotFound)
	}
	updated := s.supports[i]
	fn(&updated)
	updated.ID = id
	if err := updated.Validate(); err != nil {
		return err
	}
	if err := s.checkTarget(updated.TargetID); err != nil {
		return err
	}
	s.supports[i] = updated
	s.changed()
	return nil
}

// RemoveSupport deletes a support
func (s *Store) RemoveSupport(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.supports, func(b model.Support) bool { return b.ID == id })
	if i < 0 {
		return fmt.Errorf("support %q: %w", id, ErrNotFound)
	}
	s.supports = slices.Delete(s.supports, i, i+1)
	s.clearSelectionOf(id)
	s.changed()
	return nil
}

// RemoveSelected deletes whatever entity is selected
func (s *Store) RemoveSelected() error {
	s.mu.RLock()
	sel := s.selection
	s.mu.RUnlock()
	if sel == nil {
		return nil
	}
	switch sel.Kind {
	case model.SelectGeometry:
		return s.RemoveSolid(sel.ID)
	case model.SelectLoad:
		return s.RemoveLoad(sel.ID)
	case model.SelectSupport:
		return s.RemoveSupport(sel.ID)
	}
	return nil
}

// Select replaces the selection; nil clears it
func (s *Store) Select(sel *model.Selection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sel == nil {
		s.selection = nil
	} else {
		c := *sel
		s.selection = &c
	}
	s.changed()
}

// SetResults installs a new result field and switches the view back to
// undeformed stress. A nil field clears the results.
func (s *Store) SetResults(results *model.ResultField) {
	if results == nil {
		s.ClearResults()
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = results
	s.view.Kind = model.FieldStress
	s.view.ShowDeformed = false
	s.changed()
	s.logger.Info("results set", "solids", len(results.Solids))
}

// ClearResults drops the result field and resets the view settings
func (s *Store) ClearResults() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = nil
	s.view = s.defaultView
	s.changed()
}

// HasResults reports whether a result field is installed
func (s *Store) HasResults() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.results != nil
}

// SetFieldSettings replaces the visualization settings
func (s *Store) SetFieldSettings(settings model.FieldSettings) error {
	if settings.Kind != model.FieldDisplacement && settings.Kind != model.FieldStress {
		return fmt.Errorf("unknown field kind %q", settings.Kind)
	}
	if settings.DeformationScale < 0 {
		return fmt.Errorf("deformation scale must not be negative: %g", settings.DeformationScale)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = settings
	s.changed()
	return nil
}

// UpdateFieldSettings applies fn to the current settings
func (s *Store) UpdateFieldSettings(fn func(*model.FieldSettings)) error {
	s.mu.RLock()
	settings := s.view
	s.mu.RUnlock()
	fn(&settings)
	return s.SetFieldSettings(settings)
}

// ArmCreation makes the next press in the scene create a shape of kind
func (s *Store) ArmCreation(kind model.ShapeKind) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: %q", model.ErrUnknownShape, kind)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creation = model.CreationMode{Armed: true, Kind: kind}
	s.changed()
	return nil
}

// DisarmCreation cancels a pending creation
func (s *Store) DisarmCreation() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.creation.Armed {
		return
	}
	s.creation = model.CreationMode{}
	s.changed()
}

// SetViewport records the drawing surface size
func (s *Store) SetViewport(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.viewport.Width == width && s.viewport.Height == height {
		return
	}
	s.viewport = model.Viewport{Width: width, Height: height}
	s.changed()
}

// Reset clears the project. The viewport is kept.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.solids = nil
	s.loads = nil
	s.supports = nil
	s.materials = []model.Material{model.DefaultMaterial()}
	s.selection = nil
	s.results = nil
	s.view = s.defaultView
	s.creation = model.CreationMode{}
	s.changed()
	s.logger.Info("project reset")
}

// Apply performs the commands emitted by the scene, in order. Every command
// is attempted; failures are joined.
func (s *Store) Apply(cmds ...model.Command) error {
	var errs []error
	for _, cmd := range cmds {
		var err error
		switch c := cmd.(type) {
		case model.CreateSolid:
			_, err = s.AddSolid(model.Solid{Kind: c.Kind, Dims: c.Dims, Position: c.Position})
		case model.UpdateSolidTransform:
			err = s.MoveSolid(c.ID, c.Position)
		case model.SetSelection:
			s.Select(c.Selection)
		case model.ClearCreationMode:
			s.DisarmCreation()
		default:
			err = fmt.Errorf("unknown command %T", cmd)
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *Store) solidIndex(id string) int {
	return slices.IndexFunc(s.solids, func(solid model.Solid) bool { return solid.ID == id })
}

func (s *Store) checkTarget(id string) error {
	if s.solidIndex(id) < 0 {
		return fmt.Errorf("target %q: %w", id, ErrDanglingTarget)
	}
	return nil
}

func (s *Store) clearSelectionOf(id string) {
	if s.selection != nil && s.selection.ID == id {
		s.selection = nil
	}
}

func defaultName(kind model.ShapeKind) string {
	switch kind {
	case model.ShapeBox:
		return "Box"
	case model.ShapeCylinder:
		return "Cylinder"
	case model.ShapeSphere:
		return "Sphere"
	}
	return string(kind)
}
