package quote

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

type Bounds struct {
	Min float64
	Max float64
}

func (b Bounds) Contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

// Limits are plausibility bounds, not hard constraints. Height is in cm.
type Limits struct {
	Age      Bounds
	Height   Bounds
	Weight   Bounds
	BMI      Bounds
	Children Bounds
}

var DefaultLimits = Limits{
	Age:      Bounds{Min: 0, Max: 150},
	Height:   Bounds{Min: 50, Max: 250},
	Weight:   Bounds{Min: 15, Max: 600},
	BMI:      Bounds{Min: 13, Max: 200},
	Children: Bounds{Min: 0, Max: 15},
}

type Warning struct {
	Field string  `json:"field"`
	Value float64 `json:"value"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Unit  string  `json:"unit,omitempty"`
}

func (w Warning) Message() string {
	unit := ""
	if w.Unit != "" {
		unit = " " + w.Unit
	}
	return fmt.Sprintf("%s of %s%s looks implausible (expected %s to %s%s). The prediction may be unreliable.",
		w.Field, num(w.Value), unit, num(w.Min), num(w.Max), unit)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Validate flags present fields outside limits. Absent fields are skipped;
// nothing here blocks a prediction.
func Validate(in Inputs, limits Limits) []Warning {
	var warnings []Warning
	check := func(field string, v *float64, b Bounds, unit string) {
		if v == nil || b.Contains(*v) {
			return
		}
		warnings = append(warnings, Warning{Field: field, Value: *v, Min: b.Min, Max: b.Max, Unit: unit})
	}

	check("Age", in.Age, limits.Age, "")
	if in.Height != nil {
		cm := in.Unit.ToCentimetres(*in.Height)
		check("Height", &cm, limits.Height, "cm")
	}
	check("Weight", in.Weight, limits.Weight, "kg")
	if in.BMI != nil && !limits.BMI.Contains(*in.BMI) {
		warnings = append(warnings, Warning{Field: "BMI", Value: math.Round(*in.BMI*10) / 10, Min: limits.BMI.Min, Max: limits.BMI.Max})
	}
	check("Number of children", in.Children, limits.Children, "")
	return warnings
}

// MarshalJSON adds the rendered message next to the raw fields.
func (w Warning) MarshalJSON() ([]byte, error) {
	type plain Warning
	return json.Marshal(struct {
		plain
		Message string `json:"message"`
	}{plain(w), w.Message()})
}
