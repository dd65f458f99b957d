package ml

import (
	"errors"
	"fmt"
)

type Aggregation string

const (
	AggregateMean Aggregation = "mean"
	AggregateSum  Aggregation = "sum"
)

// TreeEnsemble covers both bagged forests (mean of trees) and boosted trees
// (base score plus learning rate times the sum of trees).
type TreeEnsemble struct {
	FeatureNames []string       `json:"features"`
	Aggregate    Aggregation    `json:"aggregate"`
	BaseScore    float64        `json:"base_score"`
	LearningRate float64        `json:"learning_rate"`
	Trees        []DecisionTree `json:"trees"`
}

func (te *TreeEnsemble) Features() []string {
	return te.FeatureNames
}

func (te *TreeEnsemble) Predict(row Row) (float64, error) {
	if err := checkRow(te.FeatureNames, row); err != nil {
		return 0, err
	}
	var sum float64
	for i := range te.Trees {
		v, err := te.Trees[i].walk(row.Values)
		if err != nil {
			return 0, fmt.Errorf("tree %d: %w", i, err)
		}
		sum += v
	}
	switch te.Aggregate {
	case AggregateMean:
		return sum / float64(len(te.Trees)), nil
	case AggregateSum:
		return te.BaseScore + te.LearningRate*sum, nil
	default:
		return 0, fmt.Errorf("unknown aggregation %q", te.Aggregate)
	}
}

func (te *TreeEnsemble) validate() error {
	if len(te.FeatureNames) == 0 {
		return errors.New("ensemble has no features")
	}
	if len(te.Trees) == 0 {
		return errors.New("ensemble has no trees")
	}
	for i := range te.Trees {
		if err := te.Trees[i].validate(len(te.FeatureNames)); err != nil {
			return fmt.Errorf("tree %d: %w", i, err)
		}
	}
	return nil
}
