package ml

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrUnsupportedModel = errors.New("unsupported model type")
	ErrSchemaMismatch   = errors.New("feature schema mismatch")
	ErrNotLoaded        = errors.New("model not loaded")
)

// Row is a single-row table: named columns in training order.
type Row struct {
	Columns []string
	Values  []float64
}

// Regressor predicts one scalar from one row.
type Regressor interface {
	Predict(row Row) (float64, error)
	Features() []string
}

// CheckSchema reports whether columns match the training-time feature names
// exactly, including order.
func CheckSchema(expected, columns []string) error {
	if len(expected) != len(columns) {
		return fmt.Errorf("%w: expected %d columns, got %d", ErrSchemaMismatch, len(expected), len(columns))
	}
	for i := range expected {
		if expected[i] != columns[i] {
			return fmt.Errorf("%w: column %d is %q, model expects %q", ErrSchemaMismatch, i, columns[i], expected[i])
		}
	}
	return nil
}

func checkRow(features []string, row Row) error {
	if len(row.Values) != len(row.Columns) {
		return fmt.Errorf("%w: %d columns but %d values", ErrSchemaMismatch, len(row.Columns), len(row.Values))
	}
	if err := CheckSchema(features, row.Columns); err != nil {
		return err
	}
	for i, v := range row.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("column %q is not a finite number", row.Columns[i])
		}
	}
	return nil
}
