package ml

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

const (
	TypeLinear           = "linear"
	TypeDecisionTree     = "decision_tree"
	TypeRandomForest     = "random_forest"
	TypeGradientBoosting = "gradient_boosting"
)

func LoadModel(modelType, path string) (Regressor, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	model, err := decodeModel(modelType, payload)
	if err != nil {
		return nil, fmt.Errorf("load %s model from %s: %w", modelType, path, err)
	}
	return model, nil
}

func decodeModel(modelType string, payload []byte) (Regressor, error) {
	switch modelType {
	case TypeLinear:
		model := &LinearRegression{}
		if err := json.Unmarshal(payload, model); err != nil {
			return nil, err
		}
		if err := model.validate(); err != nil {
			return nil, err
		}
		return model, nil
	case TypeDecisionTree:
		model := &DecisionTree{}
		if err := json.Unmarshal(payload, model); err != nil {
			return nil, err
		}
		if len(model.FeatureNames) == 0 {
			return nil, errors.New("decision tree has no features")
		}
		if err := model.validate(len(model.FeatureNames)); err != nil {
			return nil, err
		}
		return model, nil
	case TypeRandomForest, TypeGradientBoosting:
		model := &TreeEnsemble{}
		if err := json.Unmarshal(payload, model); err != nil {
			return nil, err
		}
		if modelType == TypeRandomForest {
			model.Aggregate = AggregateMean
		} else {
			model.Aggregate = AggregateSum
			if model.LearningRate == 0 {
				model.LearningRate = 1
			}
		}
		if err := model.validate(); err != nil {
			return nil, err
		}
		return model, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedModel, modelType)
	}
}

// SaveModel writes a model artifact that LoadModel can read back.
func SaveModel(path string, model Regressor) error {
	payload, err := json.MarshalIndent(model, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o600)
}
