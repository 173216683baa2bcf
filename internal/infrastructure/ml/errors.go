package ml

import "errors"

var (
	ErrNotTrained      = errors.New("model is not trained")
	ErrFeatureMismatch = errors.New("feature dimension mismatch")
	ErrEmptyDataset    = errors.New("dataset is empty")
)
