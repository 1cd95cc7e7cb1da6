package model

import "fmt"

// Material holds the linear elastic properties used by the analysis
type Material struct {
	ID           string  `yaml:"id" json:"id" validate:"required"`
	Name         string  `yaml:"name" json:"name"`
	YoungModulus float64 `yaml:"youngModulus" json:"youngModulus" validate:"gt=0"`
	PoissonRatio float64 `yaml:"poissonRatio" json:"poissonRatio" validate:"gte=0,lt=0.5"`
}

// DefaultMaterial is structural steel
func DefaultMaterial() Material {
	return Material{ID: "mat-default", Name: "Steel", YoungModulus: 200e9, PoissonRatio: 0.3}
}

// Validate checks the elastic constants
func (m Material) Validate() error {
	if err := validate.Struct(m); err != nil {
		return fmt.Errorf("material %q: %w", m.ID, err)
	}
	return nil
}
