package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/philipparndt/gostruct/internal/scene"
	"github.com/philipparndt/gostruct/pkg/store"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Window configures the viewer window
type Window struct {
	Width  int    `yaml:"width" validate:"gte=320"`
	Height int    `yaml:"height" validate:"gte=240"`
	Title  string `yaml:"title"`
	FPS    int    `yaml:"fps" validate:"gte=1,lte=240"`
}

// Interaction configures pointer handling
type Interaction struct {
	GroundHeight  float64 `yaml:"groundHeight"`
	MinCreateSize float64 `yaml:"minCreateSize" validate:"gt=0"`
}

// Glyphs sizes load and support markers
type Glyphs struct {
	SupportOffset       float64 `yaml:"supportOffset" validate:"gte=0"`
	ForceScale          float64 `yaml:"forceScale" validate:"gt=0"`
	MaxArrowLength      float64 `yaml:"maxArrowLength" validate:"gt=0"`
	ForceEpsilon        float64 `yaml:"forceEpsilon" validate:"gte=0"`
	PressureSpacing     float64 `yaml:"pressureSpacing" validate:"gt=0"`
	PressureArrowLength float64 `yaml:"pressureArrowLength" validate:"gt=0"`
}

// Field configures result visualization
type Field struct {
	UnitFactor       float64 `yaml:"unitFactor" validate:"gt=0"`
	DeformationScale float64 `yaml:"deformationScale" validate:"gt=0"`
	ScaleStep        float64 `yaml:"scaleStep" validate:"gt=1"`
}

// Mesh configures tessellation of curved shapes
type Mesh struct {
	RadialSegments int `yaml:"radialSegments" validate:"gte=3,lte=256"`
	SphereSegments int `yaml:"sphereSegments" validate:"gte=3,lte=256"`
}

// Watch configures file hot reload
type Watch struct {
	Debounce time.Duration `yaml:"debounce" validate:"gte=0"`
}

// Config is the viewer configuration
type Config struct {
	Window      Window      `yaml:"window"`
	Interaction Interaction `yaml:"interaction"`
	Glyphs      Glyphs      `yaml:"glyphs"`
	Field       Field       `yaml:"field"`
	Mesh        Mesh        `yaml:"mesh"`
	Watch       Watch       `yaml:"watch"`
}

// Default returns the configuration used when no file is given
func Default() Config {
	opts := scene.DefaultOptions()
	return Config{
		Window: Window{Width: 1280, Height: 800, Title: "gostruct", FPS: 60},
		Interaction: Interaction{
			GroundHeight:  opts.GroundHeight,
			MinCreateSize: opts.MinCreateSize,
		},
		Glyphs: Glyphs{
			SupportOffset:       opts.Glyphs.SupportOffset,
			ForceScale:          opts.Glyphs.ForceScale,
			MaxArrowLength:      opts.Glyphs.MaxArrowLength,
			ForceEpsilon:        opts.Glyphs.ForceEpsilon,
			PressureSpacing:     opts.Glyphs.PressureSpacing,
			PressureArrowLength: opts.Glyphs.PressureArrowLength,
		},
		Field: Field{UnitFactor: opts.UnitFactor, DeformationScale: 1, ScaleStep: 1.5},
		Mesh:  Mesh{RadialSegments: opts.RadialSegments, SphereSegments: opts.SphereSegments},
		Watch: Watch{Debounce: 500 * time.Millisecond},
	}
}

// Load reads the YAML file at path over the defaults. An empty path
// returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every value range
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			var errs []error
			for _, fe := range verrs {
				errs = append(errs, fmt.Errorf("%s: failed %q (%v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
			return errors.Join(errs...)
		}
		return err
	}
	return nil
}

// Save writes the configuration as YAML, creating the directory if needed
func (c Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// SceneOptions converts the configuration into engine options
func (c Config) SceneOptions() scene.Options {
	return scene.Options{
		GroundHeight:   c.Interaction.GroundHeight,
		MinCreateSize:  c.Interaction.MinCreateSize,
		RadialSegments: c.Mesh.RadialSegments,
		SphereSegments: c.Mesh.SphereSegments,
		UnitFactor:     c.Field.UnitFactor,
		Glyphs: scene.GlyphOptions{
			SupportOffset:       c.Glyphs.SupportOffset,
			ForceScale:          c.Glyphs.ForceScale,
			MaxArrowLength:      c.Glyphs.MaxArrowLength,
			ForceEpsilon:        c.Glyphs.ForceEpsilon,
			PressureSpacing:     c.Glyphs.PressureSpacing,
			PressureArrowLength: c.Glyphs.PressureArrowLength,
		},
	}
}

// StoreOptions returns the store settings taken from the configuration
func (c Config) StoreOptions() []store.Option {
	return []store.Option{store.WithDeformationScale(c.Field.DeformationScale)}
}
