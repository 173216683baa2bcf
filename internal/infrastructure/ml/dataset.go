package ml

import (
	"math/rand/v2"

	"github.com/aharo8014/Credit/internal/domain/service"
)

// SyntheticDataset is a DEVELOPMENT STUB. Features and labels are drawn
// independently and uniformly at random, so a model fitted to it learns
// nothing about credit risk. It exists so the learned strategies can be
// exercised end to end without real outcome data.
type SyntheticDataset struct {
	Features [][]float64
	Labels   []float64
}

// NewSyntheticPDDataset draws n rows of FeatureCount uniform features in
// [0,1) with Bernoulli(0.5) default labels.
func NewSyntheticPDDataset(seed uint64, n int) SyntheticDataset {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	ds := SyntheticDataset{
		Features: make([][]float64, n),
		Labels:   make([]float64, n),
	}
	for i := range n {
		ds.Features[i] = uniformRow(r, service.FeatureCount)
		ds.Labels[i] = float64(r.IntN(2))
	}
	return ds
}

// NewSyntheticLGDDataset draws n rows of LGDFeatureCount uniform features in
// [0,1) with uniform LGD targets in [0,1).
func NewSyntheticLGDDataset(seed uint64, n int) SyntheticDataset {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	ds := SyntheticDataset{
		Features: make([][]float64, n),
		Labels:   make([]float64, n),
	}
	for i := range n {
		ds.Features[i] = uniformRow(r, service.LGDFeatureCount)
		ds.Labels[i] = r.Float64()
	}
	return ds
}

// Len returns the number of rows.
func (d SyntheticDataset) Len() int { return len(d.Features) }

func uniformRow(r *rand.Rand, width int) []float64 {
	row := make([]float64, width)
	for j := range row {
		row[j] = r.Float64()
	}
	return row
}
