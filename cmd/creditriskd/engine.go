package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aharo8014/Credit/internal/domain/service"
	"github.com/aharo8014/Credit/internal/domain/valueobject"
	"github.com/aharo8014/Credit/internal/infrastructure/config"
	"github.com/aharo8014/Credit/internal/infrastructure/ml"
)

// buildEngine assembles the risk engine for the configured strategies and
// returns a readiness check reporting whether its models are usable.
func buildEngine(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*service.RiskEngine, func(context.Context) error, error) {
	policy, err := valueobject.NewZeroIncomePolicy(cfg.ZeroIncomePolicy)
	if err != nil {
		return nil, nil, err
	}

	closedPD := service.NewLogisticPDEstimator()
	closedLGD := service.NewClosedFormLGDEstimator(policy)
	if !cfg.UsesLearnedModels() {
		return service.NewRiskEngine(closedPD, closedLGD), func(context.Context) error { return nil }, nil
	}

	trainer := ml.NewTrainer(ml.TrainerConfig{
		ModelDir: cfg.ModelDir,
		Options:  ml.DefaultTrainOptions(),
		Seed:     cfg.TrainingSeed,
		Samples:  cfg.TrainingSample,
	}, logger)
	models, err := trainer.TrainAll(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("train models: %w", err)
	}

	var pd service.PDEstimator
	switch cfg.PDStrategy {
	case config.StrategyLearned:
		pd = service.NewLearnedPDEstimator(models.PD)
	case config.StrategyBlended:
		pd = service.NewBlendedPDEstimator(closedPD, service.NewLearnedPDEstimator(models.PD), cfg.BlendWeight, logger)
	default:
		pd = closedPD
	}

	var lgd service.LGDEstimator = closedLGD
	if cfg.LGDStrategy == config.StrategyLearned {
		lgd = service.NewLearnedLGDEstimator(models.LGD, policy)
	}

	ready := func(context.Context) error {
		if !models.PD.Trained() || !models.LGD.Trained() {
			return errors.New("models not trained")
		}
		return nil
	}
	return service.NewRiskEngine(pd, lgd), ready, nil
}
