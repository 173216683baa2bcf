package ml

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	kindLogistic = "logistic"
	kindLinear   = "linear"
)

type modelFile struct {
	SavedAt   time.Time `json:"saved_at"`
	Kind      string    `json:"kind"`
	Weights   []float64 `json:"weights"`
	Bias      float64   `json:"bias"`
	Synthetic bool      `json:"synthetic"`
}

// SaveLogisticModel writes a trained classifier to path as JSON.
func SaveLogisticModel(path string, m *LogisticModel, synthetic bool) error {
	if !m.Trained() {
		return fmt.Errorf("save %s: %w", path, ErrNotTrained)
	}
	return writeModelFile(path, modelFile{Kind: kindLogistic, Weights: m.Weights, Bias: m.Bias, Synthetic: synthetic})
}

// LoadLogisticModel reads a classifier written by SaveLogisticModel.
func LoadLogisticModel(path string) (*LogisticModel, error) {
	f, err := readModelFile(path, kindLogistic)
	if err != nil {
		return nil, err
	}
	return &LogisticModel{Weights: f.Weights, Bias: f.Bias}, nil
}

// SaveLinearModel writes a trained regressor to path as JSON.
func SaveLinearModel(path string, m *LinearModel, synthetic bool) error {
	if !m.Trained() {
		return fmt.Errorf("save %s: %w", path, ErrNotTrained)
	}
	return writeModelFile(path, modelFile{Kind: kindLinear, Weights: m.Weights, Bias: m.Bias, Synthetic: synthetic})
}

// LoadLinearModel reads a regressor written by SaveLinearModel.
func LoadLinearModel(path string) (*LinearModel, error) {
	f, err := readModelFile(path, kindLinear)
	if err != nil {
		return nil, err
	}
	return &LinearModel{Weights: f.Weights, Bias: f.Bias}, nil
}

func writeModelFile(path string, f modelFile) error {
	f.SavedAt = time.Now().UTC()
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal model: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create model dir: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write model file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename model file: %w", err)
	}
	return nil
}

func readModelFile(path, kind string) (modelFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return modelFile{}, fmt.Errorf("read model file: %w", err)
	}

	var f modelFile
	if err := json.Unmarshal(data, &f); err != nil {
		return modelFile{}, fmt.Errorf("decode model file %s: %w", path, err)
	}
	if f.Kind != kind {
		return modelFile{}, fmt.Errorf("model file %s holds a %q model, want %q", path, f.Kind, kind)
	}
	if len(f.Weights) == 0 {
		return modelFile{}, fmt.Errorf("model file %s: %w", path, ErrNotTrained)
	}
	return f, nil
}
