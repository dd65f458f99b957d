package ml

import "errors"

type LinearRegression struct {
	FeatureNames []string  `json:"features"`
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
}

func (lr *LinearRegression) Features() []string {
	return lr.FeatureNames
}

func (lr *LinearRegression) Predict(row Row) (float64, error) {
	if err := checkRow(lr.FeatureNames, row); err != nil {
		return 0, err
	}
	sum := lr.Intercept
	for i, v := range row.Values {
		sum += lr.Coefficients[i] * v
	}
	return sum, nil
}

func (lr *LinearRegression) validate() error {
	if len(lr.FeatureNames) == 0 {
		return errors.New("linear model has no features")
	}
	if len(lr.Coefficients) != len(lr.FeatureNames) {
		return errors.New("linear model coefficients and features size mismatch")
	}
	return nil
}
