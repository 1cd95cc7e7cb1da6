package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/philipparndt/gostruct/pkg/model"
)

// ErrInvalidResults is returned for result files that cannot be displayed
var ErrInvalidResults = errors.New("invalid results")

// ReadResults decodes and checks a JSON result field
func ReadResults(r io.Reader) (*model.ResultField, error) {
	var results model.ResultField
	if err := json.NewDecoder(r).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode results: %w", err)
	}
	if err := CheckResults(&results); err != nil {
		return nil, err
	}
	return &results, nil
}

// ReadResultsFile decodes the result file at path
func ReadResultsFile(path string) (*model.ResultField, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open results: %w", err)
	}
	defer f.Close()
	return ReadResults(f)
}

// WriteResults encodes a result field as indented JSON
func WriteResults(w io.Writer, results *model.ResultField) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	return nil
}

// WriteResultsFile writes a result field to path
func WriteResultsFile(path string, results *model.ResultField) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WriteResults(f, results); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// CheckResults rejects inverted or non-finite ranges. Individual samples
// may be anything; the viewer clamps them.
func CheckResults(r *model.ResultField) error {
	for name, rng := range map[string]model.Range{"displacement": r.Displacement, "stress": r.Stress} {
		if !finite(rng.Min) || !finite(rng.Max) {
			return fmt.Errorf("%w: %s range is not finite", ErrInvalidResults, name)
		}
		if rng.Min > rng.Max {
			return fmt.Errorf("%w: %s min %g exceeds max %g", ErrInvalidResults, name, rng.Min, rng.Max)
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
