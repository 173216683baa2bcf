package ml

import "fmt"

// LinearModel is a least-squares regressor trained by batch gradient descent.
// It implements port.RegressionModel.
type LinearModel struct {
	Weights []float64 `json:"weights"`
	Bias    float64   `json:"bias"`
}

// NewLinearModel returns an untrained regressor.
func NewLinearModel() *LinearModel {
	return &LinearModel{}
}

// Trained reports whether the model has weights.
func (m *LinearModel) Trained() bool {
	return m != nil && len(m.Weights) > 0
}

// Fit trains the model on the rows of x against continuous targets y.
func (m *LinearModel) Fit(x [][]float64, y []float64, opts TrainOptions) error {
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
			residual := dot(w, row) + b - y[i]
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

// Predict returns the regression output for one feature row.
func (m *LinearModel) Predict(features []float64) (float64, error) {
	if !m.Trained() {
		return 0, ErrNotTrained
	}
	if len(features) != len(m.Weights) {
		return 0, fmt.Errorf("%w: model expects %d features, got %d", ErrFeatureMismatch, len(m.Weights), len(features))
	}
	return dot(m.Weights, features) + m.Bias, nil
}
