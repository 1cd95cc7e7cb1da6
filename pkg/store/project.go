package store

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/philipparndt/gostruct/pkg/model"
)

// Project is the persisted form of a store
type Project struct {
	Solids    []model.Solid      `yaml:"geometries"`
	Loads     []model.Load       `yaml:"loads,omitempty"`
	Supports  []model.Support    `yaml:"boundaryConditions,omitempty"`
	Materials []model.Material   `yaml:"materials,omitempty"`
	Results   *model.ResultField `yaml:"results,omitempty"`
}

// Validate checks every entity and that annotations reference known solids
func (p Project) Validate() error {
	var errs []error
	ids := make(map[string]struct{}, len(p.Solids))
	for _, s := range p.Solids {
		if err := s.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		if _, dup := ids[s.ID]; dup {
			errs = append(errs, fmt.Errorf("duplicate solid id %q", s.ID))
		}
		ids[s.ID] = struct{}{}
	}
	for _, l := range p.Loads {
		if err := l.Validate(); err != nil {
			errs = append(errs, err)
		} else if _, ok := ids[l.TargetID]; !ok {
			errs = append(errs, fmt.Errorf("load %q: target %q: %w", l.ID, l.TargetID, ErrDanglingTarget))
		}
	}
	for _, b := range p.Supports {
		if err := b.Validate(); err != nil {
			errs = append(errs, err)
		} else if _, ok := ids[b.TargetID]; !ok {
			errs = append(errs, fmt.Errorf("support %q: target %q: %w", b.ID, b.TargetID, ErrDanglingTarget))
		}
	}
	for _, m := range p.Materials {
		if err := m.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Project returns the persistable part of the store
func (s *Store) Project() Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Project{
		Solids:    slices.Clone(s.solids),
		Loads:     slices.Clone(s.loads),
		Supports:  slices.Clone(s.supports),
		Materials: slices.Clone(s.materials),
		Results:   s.results,
	}
}

// LoadProject replaces the store contents with p. Selection, creation mode
// and view settings are reset. Nothing changes if p is invalid.
func (s *Store) LoadProject(p Project) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("invalid project: %w", err)
	}
	for _, a := range p.annotations() {
		if solid, ok := findSolid(p.Solids, a.Target()); ok && !model.FaceInRange(solid.Kind, a.FaceIndex()) {
			s.logger.Warn("face index out of range", "annotation", a.AnnotationID(), "face", a.FaceIndex(), "kind", solid.Kind)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.solids = slices.Clone(p.Solids)
	s.loads = slices.Clone(p.Loads)
	s.supports = slices.Clone(p.Supports)
	s.materials = slices.Clone(p.Materials)
	if len(s.materials) == 0 {
		s.materials = []model.Material{model.DefaultMaterial()}
	}
	s.results = p.Results
	s.selection = nil
	s.creation = model.CreationMode{}
	s.view = s.defaultView
	s.changed()
	s.logger.Info("project loaded", "solids", len(p.Solids), "loads", len(p.Loads), "supports", len(p.Supports))
	return nil
}

// Save writes the project as YAML
func (s *Store) Save(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s.Project()); err != nil {
		return fmt.Errorf("failed to encode project: %w", err)
	}
	return enc.Close()
}

// SaveFile writes the project to path
func (s *Store) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := s.Save(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadProject decodes a YAML project without validating it
func ReadProject(r io.Reader) (Project, error) {
	var p Project
	if err := yaml.NewDecoder(r).Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return Project{}, fmt.Errorf("failed to decode project: %w", err)
	}
	return p, nil
}

// ReadProjectFile decodes the YAML project at path
func ReadProjectFile(path string) (Project, error) {
	f, err := os.Open(path)
	if err != nil {
		return Project{}, fmt.Errorf("failed to open project: %w", err)
	}
	defer f.Close()
	return ReadProject(f)
}

// LoadFile replaces the store contents with the project at path
func (s *Store) LoadFile(path string) error {
	p, err := ReadProjectFile(path)
	if err != nil {
		return err
	}
	return s.LoadProject(p)
}

func (p Project) annotations() []model.Annotation {
	out := make([]model.Annotation, 0, len(p.Loads)+len(p.Supports))
	for _, l := range p.Loads {
		out = append(out, l)
	}
	for _, b := range p.Supports {
		out = append(out, b)
	}
	return out
}

func findSolid(solids []model.Solid, id string) (model.Solid, bool) {
	i := slices.IndexFunc(solids, func(s model.Solid) bool { return s.ID == id })
	if i < 0 {
		return model.Solid{}, false
	}
	return solids[i], true
}
