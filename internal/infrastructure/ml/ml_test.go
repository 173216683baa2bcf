package ml_test

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aharo8014/Credit/internal/domain/port"
	"github.com/aharo8014/Credit/internal/domain/service"
	"github.com/aharo8014/Credit/internal/infrastructure/ml"
)

var (
	_ port.ProbabilityModel = (*ml.LogisticModel)(nil)
	_ port.RegressionModel  = (*ml.LinearModel)(nil)
)

func TestLogisticModel_LearnsSeparableData(t *testing.T) {
	x := [][]float64{{0.1}, {0.2}, {0.3}, {0.7}, {0.8}, {0.9}}
	y := []float64{0, 0, 0, 1, 1, 1}

	m := ml.NewLogisticModel()
	require.False(t, m.Trained())
	require.NoError(t, m.Fit(x, y, ml.TrainOptions{LearningRate: 1, Epochs: 2000}))
	require.True(t, m.Trained())

	low, err := m.PredictProbability([]float64{0.05})
	require.NoError(t, err)
	high, err := m.PredictProbability([]float64{0.95})
	require.NoError(t, err)

	assert.Less(t, low, 0.5)
	assert.Greater(t, high, 0.5)
}

func TestLinearModel_FitsLine(t *testing.T) {
	x := [][]float64{{0}, {0.25}, {0.5}, {0.75}, {1}}
	y := []float64{0.1, 0.35, 0.6, 0.85, 1.1}

	m := ml.NewLinearModel()
	require.NoError(t, m.Fit(x, y, ml.TrainOptions{LearningRate: 0.5, Epochs: 5000}))

	got, err := m.Predict([]float64{0.5})
	require.NoError(t, err)
	assert.InDelta(t, 0.6, got, 1e-3)
}

func TestModels_Errors(t *testing.T) {
	_, err := ml.NewLogisticModel().PredictProbability([]float64{1})
	assert.ErrorIs(t, err, ml.ErrNotTrained)

	_, err = ml.NewLinearModel().Predict([]float64{1})
	assert.ErrorIs(t, err, ml.ErrNotTrained)

	m := ml.NewLinearModel()
	assert.ErrorIs(t, m.Fit(nil, nil, ml.DefaultTrainOptions()), ml.ErrEmptyDataset)
	assert.ErrorIs(t, m.Fit([][]float64{{1}, {1, 2}}, []float64{0, 1}, ml.DefaultTrainOptions()), ml.ErrFeatureMismatch)
	assert.Error(t, m.Fit([][]float64{{1}}, []float64{0}, ml.TrainOptions{}))

	require.NoError(t, m.Fit([][]float64{{1, 2}}, []float64{1}, ml.DefaultTrainOptions()))
	_, err = m.Predict([]float64{1})
	assert.ErrorIs(t, err, ml.ErrFeatureMismatch)
}

func TestSyntheticDataset_Shape(t *testing.T) {
	pd := ml.NewSyntheticPDDataset(42, 100)
	require.Equal(t, 100, pd.Len())
	assert.Len(t, pd.Features[0], service.FeatureCount)
	for _, label := range pd.Labels {
		assert.Contains(t, []float64{0, 1}, label)
	}

	lgd := ml.NewSyntheticLGDDataset(42, 50)
	require.Equal(t, 50, lgd.Len())
	assert.Len(t, lgd.Features[0], service.LGDFeatureCount)
	for _, label := range lgd.Labels {
		assert.GreaterOrEqual(t, label, 0.0)
		assert.Less(t, label, 1.0)
	}

	assert.Equal(t, pd, ml.NewSyntheticPDDataset(42, 100), "same seed must reproduce the dataset")
}

func TestStore_RoundTripAndKindCheck(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "pd.json")

	m := &ml.LogisticModel{Weights: []float64{0.5, -1}, Bias: 0.25}
	require.NoError(t, ml.SaveLogisticModel(path, m, true))

	loaded, err := ml.LoadLogisticModel(path)
	require.NoError(t, err)
	assert.Equal(t, m, loaded)

	_, err = ml.LoadLinearModel(path)
	assert.ErrorContains(t, err, "want \"linear\"")

	assert.ErrorIs(t, ml.SaveLinearModel(filepath.Join(dir, "x.json"), ml.NewLinearModel(), true), ml.ErrNotTrained)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{"), 0o644))
	_, err = ml.LoadLinearModel(filepath.Join(dir, "bad.json"))
	assert.Error(t, err)
}

func TestTrainer_TrainAllAndReload(t *testing.T) {
	dir := t.TempDir()
	cfg := ml.TrainerConfig{
		ModelDir: dir,
		Seed:     7,
		Samples:  200,
		Options:  ml.TrainOptions{LearningRate: 0.1, Epochs: 20},
	}

	models, err := ml.NewTrainer(cfg, slog.Default()).TrainAll(context.Background())
	require.NoError(t, err)
	require.True(t, models.PD.Trained())
	require.True(t, models.LGD.Trained())
	assert.Len(t, models.PD.Weights, service.FeatureCount)
	assert.Len(t, models.LGD.Weights, service.LGDFeatureCount)

	assert.FileExists(t, filepath.Join(dir, "pd_logistic.json"))
	assert.FileExists(t, filepath.Join(dir, "lgd_linear.json"))

	reloaded, err := ml.NewTrainer(cfg, slog.Default()).TrainAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.PD, reloaded.PD)
	assert.Equal(t, models.LGD, reloaded.LGD)
}

func TestTrainer_PDModelOutputsProbability(t *testing.T) {
	cfg := ml.TrainerConfig{Seed: 1, Samples: 100, Options: ml.TrainOptions{LearningRate: 0.1, Epochs: 10}}
	models, err := ml.NewTrainer(cfg, slog.Default()).TrainAll(context.Background())
	require.NoError(t, err)

	pd, err := models.PD.PredictProbability(make([]float64, service.FeatureCount))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, pd, 0.0)
	assert.LessOrEqual(t, pd, 1.0)
}

func TestTrainer_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := ml.TrainerConfig{Seed: 1, Samples: 10, Options: ml.DefaultTrainOptions()}
	_, err := ml.NewTrainer(cfg, slog.Default()).TrainAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
