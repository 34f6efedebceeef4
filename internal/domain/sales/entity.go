package sales

import "time"

type Prediction struct {
	ID        string
	Record    RawItemRecord
	Features  FeatureVector
	RawOutput float64
	Sales     Amount
	CreatedAt time.Time
}

func NewPrediction(id string, record RawItemRecord, features FeatureVector, raw float64, at time.Time) (*Prediction, error) {
	if id == "" {
		return nil, ErrMissingField
	}
	return &Prediction{
		ID:        id,
		Record:    record,
		Features:  features,
		RawOutput: raw,
		Sales:     NewAmount(raw),
		CreatedAt: at.UTC(),
	}, nil
}
