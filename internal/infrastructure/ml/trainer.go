package ml

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	pdModelFile  = "pd_logistic.json"
	lgdModelFile = "lgd_linear.json"
)

// TrainerConfig configures the start-up training run.
type TrainerConfig struct {
	// ModelDir, when set, is checked for previously saved models before
	// training and receives freshly trained ones.
	ModelDir string
	Options  TrainOptions
	Seed     uint64
	Samples  int
}

// Models is the pair of learned estimators used by the risk engine.
type Models struct {
	PD  *LogisticModel
	LGD *LinearModel
}

// Trainer fits the PD classifier and the LGD regressor once at start-up.
// Both are fitted to SyntheticDataset, which makes them development stubs.
type Trainer struct {
	logger *slog.Logger
	cfg    TrainerConfig
}

// NewTrainer creates a Trainer.
func NewTrainer(cfg TrainerConfig, logger *slog.Logger) *Trainer {
	return &Trainer{cfg: cfg, logger: logger}
}

// TrainAll loads or trains both models concurrently.
func (t *Trainer) TrainAll(ctx context.Context) (Models, error) {
	var models Models
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		m, err := t.loadOrTrainPD(ctx)
		if err != nil {
			return fmt.Errorf("PD model: %w", err)
		}
		models.PD = m
		return nil
	})

	g.Go(func() error {
		m, err := t.loadOrTrainLGD(ctx)
		if err != nil {
			return fmt.Errorf("LGD model: %w", err)
		}
		models.LGD = m
		return nil
	})

	if err := g.Wait(); err != nil {
		return Models{}, err
	}
	return models, nil
}

func (t *Trainer) loadOrTrainPD(ctx context.Context) (*LogisticModel, error) {
	path := t.path(pdModelFile)
	if path != "" {
		m, err := LoadLogisticModel(path)
		if err == nil {
			t.logger.Info("loaded PD model", "path", path)
			return m, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	ds := NewSyntheticPDDataset(t.cfg.Seed, t.cfg.Samples)
	m := NewLogisticModel()
	if err := m.Fit(ds.Features, ds.Labels, t.cfg.Options); err != nil {
		return nil, err
	}
	t.logger.Warn("trained PD model on synthetic data; predictions are not meaningful",
		"samples", ds.Len(),
		"duration", time.Since(start),
	)

	if path != "" {
		if err := SaveLogisticModel(path, m, true); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (t *Trainer) loadOrTrainLGD(ctx context.Context) (*LinearModel, error) {
	path := t.path(lgdModelFile)
	if path != "" {
		m, err := LoadLinearModel(path)
		if err == nil {
			t.logger.Info("loaded LGD model", "path", path)
			return m, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	ds := NewSyntheticLGDDataset(t.cfg.Seed+1, t.cfg.Samples)
	m := NewLinearModel()
	if err := m.Fit(ds.Features, ds.Labels, t.cfg.Options); err != nil {
		return nil, err
	}
	t.logger.Warn("trained LGD model on synthetic data; predictions are not meaningful",
		"samples", ds.Len(),
		"duration", time.Since(start),
	)

	if path != "" {
		if err := SaveLinearModel(path, m, true); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (t *Trainer) path(name string) string {
	if t.cfg.ModelDir == "" {
		return ""
	}
	return filepath.Join(t.cfg.ModelDir, name)
}
