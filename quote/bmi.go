package quote

import "math"

type HeightUnit string

const (
	Centimetres HeightUnit = "cm"
	Metres      HeightUnit = "m"
)

// Factor scales weight/height² to kg/m².
func (u HeightUnit) Factor() float64 {
	if u == Metres {
		return 1
	}
	return 10000
}

func (u HeightUnit) ToCentimetres(height float64) float64 {
	if u == Metres {
		return height * 100
	}
	return height
}

// BMI returns weight / height² scaled for unit. ok is false when the result
// is not a finite number.
func BMI(weightKg, height float64, unit HeightUnit) (bmi float64, ok bool) {
	if height == 0 {
		return 0, false
	}
	bmi = weightKg / (height * height) * unit.Factor()
	if math.IsNaN(bmi) || math.IsInf(bmi, 0) {
		return 0, false
	}
	return bmi, true
}
