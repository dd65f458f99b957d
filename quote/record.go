package quote

import (
	"errors"
	"fmt"
	"strings"

	"insurecast/ml"
)

// Columns is the training-time feature order. Any change here must be
// matched by a retrained model artifact.
var Columns = []string{"age", "gender", "bmi", "children", "smoker", "region"}

var ErrInvalidInput = errors.New("invalid input")

// Record is one Feature Record. It is comparable so it can key the cache.
type Record struct {
	Age      float64 `json:"age"`
	Gender   float64 `json:"gender"`
	BMI      float64 `json:"bmi"`
	Children float64 `json:"children"`
	Smoker   float64 `json:"smoker"`
	Region   float64 `json:"region"`
}

// Values returns the record in Columns order.
func (r Record) Values() []float64 {
	return []float64{r.Age, r.Gender, r.BMI, r.Children, r.Smoker, r.Region}
}

func (r Record) Row() ml.Row {
	return ml.Row{
		Columns: append([]string(nil), Columns...),
		Values:  r.Values(),
	}
}

// CheckTypes requires age, bmi and children to be numbers.
func CheckTypes(in Inputs) error {
	var missing []string
	if in.Age == nil {
		missing = append(missing, "age")
	}
	if in.BMI == nil {
		missing = append(missing, "bmi")
	}
	if in.Children == nil {
		missing = append(missing, "children")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s not numeric", ErrInvalidInput, strings.Join(missing, ", "))
	}
	return nil
}

func Assemble(in Inputs) (Record, error) {
	if err := CheckTypes(in); err != nil {
		return Record{}, err
	}
	smoker := 0.0
	if in.Smoker {
		smoker = 1
	}
	return Record{
		Age:      *in.Age,
		Gender:   float64(in.Gender),
		BMI:      *in.BMI,
		Children: *in.Children,
		Smoker:   smoker,
		Region:   float64(in.Region),
	}, nil
}
