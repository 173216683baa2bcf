package ml

import (
	"fmt"
	"math"
)

// TrainOptions controls batch gradient descent.
type TrainOptions struct {
	LearningRate float64
	Epochs       int
	// L2 is the ridge penalty applied to the weights (not the bias).
	L2 float64
}

// DefaultTrainOptions returns the options used by the Trainer.
func DefaultTrainOptions() TrainOptions {
	return TrainOptions{LearningRate: 0.1, Epochs: 500, L2: 0.001}
}

func (o TrainOptions) validate() error {
	if o.LearningRate <= 0 {
		return fmt.Errorf("learning rate must be positive, got %v", o.LearningRate)
	}
	if o.Epochs <= 0 {
		return fmt.Errorf("epochs must be positive, got %d", o.Epochs)
	}
	if o.L2 < 0 {
		return fmt.Errorf("l2 penalty must be non-negative, got %v", o.L2)
	}
	return nil
}

// LogisticModel is a binary classifier trained by batch gradient descent on
// the log loss. It implements port.ProbabilityModel. Once trained it is
// read-only and safe for concurrent prediction.
type LogisticModel struct {
	Weights []float64 `json:"weights"`
	Bias    float64   `json:"bias"`
}

// NewLogisticModel returns an untrained classifier.
func NewLogisticModel() *LogisticModel {
	return &LogisticModel{}
}

// Trained reports whether the model has weights.
func (m *LogisticModel) Trained() bool {
	return m != nil && len(m.Weights) > 0
}

// Fit trains the model on the rows of x against binary labels y.
func (m *LogisticModel) Fit(x [][]float64, y []float64, opts TrainOptions) error {
	dim, err := checkShape(x, y)
	if err != nil {
		return err
	}
	if err := opts.validate(); err != nil {
		return err
	}

	w := make([]float64, dim)
	var b float64
	grad := make([]float64, dim)
	n := float64(len(x))

	for epoch := 0; epoch < opts.Epochs; epoch++ {
		clear(grad)
		var gradB float64
		for i, row := range x {
			residual := sigmoid(dot(w, row)+b) - y[i]
			for j, v := range row {
				grad[j] += residual * v
			}
			gradB += residual
		}
		for j := range w {
			w[j] -= opts.LearningRate * (grad[j]/n + opts.L2*w[j])
		}
		b -= opts.LearningRate * gradB / n
	}

	m.Weights = w
	m.Bias = b
	return nil
}

// PredictProbability returns P(default | features).
func (m *LogisticModel) PredictProbability(features []float64) (float64, error) {
	if !m.Trained() {
		return 0, ErrNotTrained
	}
	if len(features) != len(m.Weights) {
		return 0, fmt.Errorf("%w: model expects %d features, got %d", ErrFeatureMismatch, len(m.Weights), len(features))
	}
	return sigmoid(dot(m.Weights, features) + m.Bias), nil
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

func checkShape(x [][]float64, y []float64) (int, error) {
	if len(x) == 0 {
		return 0, ErrEmptyDataset
	}
	if len(x) != len(y) {
		return 0, fmt.Errorf("%w: %d rows, %d labels", ErrFeatureMismatch, len(x), len(y))
	}
	dim := len(x[0])
	if dim == 0 {
		return 0, fmt.Errorf("%w: rows have no features", ErrFeatureMismatch)
	}
	for i, row := range x {
		if len(row) != dim {
			return 0, fmt.Errorf("%w: row %d has %d features, want %d", ErrFeatureMismatch, i, len(row), dim)
		}
	}
	return dim, nil
}
