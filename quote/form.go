package quote

import (
	"math"
	"strconv"
	"strings"
)

// Form holds the raw submitted values, exactly as typed or selected.
type Form struct {
	Age      string `json:"age"`
	Gender   string `json:"gender"`
	Height   string `json:"height"`
	Weight   string `json:"weight"`
	Children string `json:"children"`
	Smoker   string `json:"smoker"`
	Region   string `json:"region"`
}

// Inputs are the parsed form values. A nil pointer means the field was
// blank or not a number.
type Inputs struct {
	Age      *float64
	Height   *float64
	Weight   *float64
	Children *float64
	BMI      *float64

	Gender Gender
	Smoker bool
	Region Region

	Unit HeightUnit
}

// Parse never fails: unparseable numbers are left unset.
func Parse(form Form, unit HeightUnit) Inputs {
	in := Inputs{
		Age:      parseNumber(form.Age),
		Height:   parseNumber(form.Height),
		Weight:   parseNumber(form.Weight),
		Children: parseNumber(form.Children),
		Gender:   ParseGender(form.Gender),
		Smoker:   ParseSmoker(form.Smoker),
		Region:   ParseRegion(form.Region),
		Unit:     unit,
	}
	if in.Height != nil && in.Weight != nil {
		if bmi, ok := BMI(*in.Weight, *in.Height, unit); ok {
			in.BMI = &bmi
		}
	}
	return in
}

func parseNumber(s string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
