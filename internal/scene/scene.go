package scene

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/philipparndt/gostruct/pkg/model"
)

// Scene owns the proxies and glyph sets. It is only touched from the frame
// loop, so it carries no locks.
type Scene struct {
	opts     Options
	logger   *slog.Logger
	proxies  map[string]*Proxy
	glyphs   map[string]*GlyphSet
	order    []string
	rejected map[string]model.Solid
}

// SyncStats counts what a synchronization pass changed
type SyncStats struct {
	Created int
	Removed int
	Rebuilt int
	Moved   int
}

// Changed reports whether the pass changed anything
func (s SyncStats) Changed() bool {
	return s.Created+s.Removed+s.Rebuilt+s.Moved > 0
}

// NewScene creates an empty scene
func NewScene(opts Options, logger *slog.Logger) *Scene {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scene{
		opts:     opts,
		logger:   logger,
		proxies:  make(map[string]*Proxy),
		glyphs:   make(map[string]*GlyphSet),
		rejected: make(map[string]model.Solid),
	}
}

// Proxy returns the proxy of a solid
func (s *Scene) Proxy(id string) (*Proxy, bool) {
	p, ok := s.proxies[id]
	return p, ok
}

// Proxies returns the proxies in solid list order
func (s *Scene) Proxies() []*Proxy {
	out := make([]*Proxy, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.proxies[id])
	}
	return out
}

// Len returns the number of live proxies
func (s *Scene) Len() int {
	return len(s.proxies)
}

// GlyphSet returns the glyphs of one solid
func (s *Scene) GlyphSet(id string) (*GlyphSet, bool) {
	g, ok := s.glyphs[id]
	return g, ok
}

// GlyphSets returns every glyph set in solid list order
func (s *Scene) GlyphSets() []*GlyphSet {
	out := make([]*GlyphSet, 0, len(s.glyphs))
	for _, id := range s.order {
		if g, ok := s.glyphs[id]; ok {
			out = append(out, g)
		}
	}
	return out
}

// Sync creates proxies for new solids and releases proxies (with their
// pristine snapshot and glyph set) of solids that are gone. Proxies of
// solids still present are not touched. A solid whose mesh cannot be built
// is skipped and reported; the rest of the map is still converged.
func (s *Scene) Sync(solids []model.Solid) (SyncStats, error) {
	var stats SyncStats
	var errs []error

	live := make(map[string]struct{}, len(solids))
	for _, solid := range solids {
		live[solid.ID] = struct{}{}
	}
	for id := range s.proxies {
		if _, ok := live[id]; !ok {
			delete(s.proxies, id)
			delete(s.glyphs, id)
			stats.Removed++
			s.logger.Debug("released proxy", "id", id)
		}
	}
	for id := range s.rejected {
		if _, ok := live[id]; !ok {
			delete(s.rejected, id)
		}
	}

	for _, solid := range solids {
		if _, ok := s.proxies[solid.ID]; ok {
			continue
		}
		if prev, ok := s.rejected[solid.ID]; ok && prev.SameShape(solid) {
			continue
		}
		p, err := newProxy(solid, s.opts)
		if err != nil {
			s.rejected[solid.ID] = solid
			s.logger.Warn("cannot build proxy", "id", solid.ID, "error", err)
			errs = append(errs, err)
			continue
		}
		delete(s.rejected, solid.ID)
		s.proxies[solid.ID] = p
		stats.Created++
		s.logger.Debug("created proxy", "id", solid.ID, "kind", solid.Kind)
	}

	s.updateOrder(solids)
	return stats, errors.Join(errs...)
}

// Reconcile brings existing proxies up to date with their solids: a shape
// change rebuilds the mesh and pristine snapshot, a position or rotation
// change only moves the proxy. The pinned proxy is being dragged and keeps
// its transform.
func (s *Scene) Reconcile(solids []model.Solid, pinned string, stats *SyncStats) error {
	var errs []error
	for _, solid := range solids {
		p, ok := s.proxies[solid.ID]
		if !ok {
			continue
		}
		if !p.shape.SameShape(solid) {
			if err := p.rebuild(solid, s.opts); err != nil {
				s.logger.Warn("cannot rebuild proxy", "id", solid.ID, "error", err)
				errs = append(errs, fmt.Errorf("rebuild %q: %w", solid.ID, err))
			} else {
				stats.Rebuilt++
			}
		}
		if solid.ID == pinned {
			continue
		}
		if p.moveTo(solid.Position, solid.Rotation) {
			stats.Moved++
		}
	}
	return errors.Join(errs...)
}

// RefreshGlyphs rebuilds the glyph set of every solid whose position,
// shape or annotations changed. Glyph placement follows the proxy's
// transform, which leads the store while a drag is in progress. With
// suppress set every glyph set is dropped.
func (s *Scene) RefreshGlyphs(snap *model.Snapshot, suppress bool) int {
	if suppress {
		n := len(s.glyphs)
		clear(s.glyphs)
		return n
	}
	rebuilt := 0
	for _, solid := range snap.Solids {
		if s.refreshGlyphSet(snap, solid) {
			rebuilt++
		}
	}
	return rebuilt
}

// RefreshGlyphSet rebuilds the glyph set of a single solid if needed
func (s *Scene) RefreshGlyphSet(snap *model.Snapshot, id string) bool {
	solid, ok := snap.Solid(id)
	if !ok {
		return false
	}
	return s.refreshGlyphSet(snap, solid)
}

func (s *Scene) refreshGlyphSet(snap *model.Snapshot, solid model.Solid) bool {
	p, ok := s.proxies[solid.ID]
	if !ok {
		return false
	}
	placed := solid
	placed.Position = p.Position
	placed.Rotation = p.Rotation

	annotations := snap.AnnotationsFor(solid.ID)
	if existing, ok := s.glyphs[solid.ID]; ok && existing.matches(placed, annotations) {
		return false
	}
	if len(annotations) == 0 {
		_, had := s.glyphs[solid.ID]
		delete(s.glyphs, solid.ID)
		return had
	}

	for _, a := range annotations {
		if !model.FaceInRange(solid.Kind, a.FaceIndex()) {
			s.logger.Warn("face index out of range, using default face", "annotation", a.AnnotationID(), "face", a.FaceIndex())
		}
	}
	s.glyphs[solid.ID] = newGlyphSet(placed, annotations, s.opts.Glyphs)
	return true
}

func (s *Scene) updateOrder(solids []model.Solid) {
	i := 0
	same := true
	for _, solid := range solids {
		if _, ok := s.proxies[solid.ID]; !ok {
			continue
		}
		if i >= len(s.order) || s.order[i] != solid.ID {
			same = false
			break
		}
		i++
	}
	if same && i == len(s.order) {
		return
	}
	s.order = s.order[:0]
	for _, solid := range solids {
		if _, ok := s.proxies[solid.ID]; ok {
			s.order = append(s.order, solid.ID)
		}
	}
}
