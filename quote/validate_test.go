package quote

import (
	"math"
	"strings"
	"testing"
)

func TestParseLeavesBadNumbersUnset(t *testing.T) {
	in := Parse(Form{Age: "abc", Height: "", Weight: "70", Children: "NaN"}, Centimetres)
	if in.Age != nil || in.Height != nil || in.Children != nil {
		t.Fatalf("expected unparseable fields to be unset: %+v", in)
	}
	if in.Weight == nil || *in.Weight != 70 {
		t.Fatalf("expected weight 70, got %v", in.Weight)
	}
	if in.BMI != nil {
		t.Fatal("bmi needs both height and weight")
	}
}

func TestParseRadioDefaults(t *testing.T) {
	in := Parse(Form{}, Centimetres)
	if in.Gender != Male || !in.Smoker || in.Region != Southeast {
		t.Fatalf("unexpected defaults: gender=%v smoker=%v region=%v", in.Gender, in.Smoker, in.Region)
	}

	in = Parse(Form{Gender: "FEMALE", Smoker: "No", Region: "northwest"}, Centimetres)
	if in.Gender != Female || in.Smoker || in.Region != Northwest {
		t.Fatalf("unexpected parse: gender=%v smoker=%v region=%v", in.Gender, in.Smoker, in.Region)
	}
}

func TestBMIUnits(t *testing.T) {
	cm, ok := BMI(80, 200, Centimetres)
	if !ok || math.Abs(cm-20) > 1e-9 {
		t.Fatalf("expected 20 for 80kg/200cm, got %v", cm)
	}
	m, ok := BMI(80, 2, Metres)
	if !ok || math.Abs(m-20) > 1e-9 {
		t.Fatalf("expected 20 for 80kg/2m, got %v", m)
	}
	if _, ok := BMI(80, 0, Centimetres); ok {
		t.Fatal("zero height must not yield a bmi")
	}
}

func TestValidateInRange(t *testing.T) {
	in := Parse(Form{Age: "35", Height: "175", Weight: "72", Children: "2"}, Centimetres)
	if warnings := Validate(in, DefaultLimits); len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %+v", warnings)
	}
}

func TestValidateBoundsAreInclusive(t *testing.T) {
	in := Parse(Form{Age: "150", Height: "50", Weight: "15", Children: "0"}, Centimetres)
	for _, w := range Validate(in, DefaultLimits) {
		if w.Field != "BMI" {
			t.Fatalf("unexpected warning on a boundary value: %+v", w)
		}
	}
}

func TestValidateFlagsOutOfRange(t *testing.T) {
	in := Parse(Form{Age: "200", Height: "30", Weight: "700", Children: "20"}, Centimetres)
	warnings := Validate(in, DefaultLimits)

	fields := map[string]Warning{}
	for _, w := range warnings {
		fields[w.Field] = w
	}
	for _, field := range []string{"Age", "Height", "Weight", "BMI", "Number of children"} {
		if _, ok := fields[field]; !ok {
			t.Fatalf("expected warning for %s, got %+v", field, warnings)
		}
	}
	if msg := fields["Age"].Message(); !strings.Contains(msg, "200") || !strings.Contains(msg, "0 to 150") {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestValidateHeightInMetres(t *testing.T) {
	in := Parse(Form{Height: "1.8", Weight: "75"}, Metres)
	if warnings := Validate(in, DefaultLimits); len(warnings) != 0 {
		t.Fatalf("1.8 m is plausible, got %+v", warnings)
	}

	in = Parse(Form{Height: "180", Weight: "75"}, Metres)
	warnings := Validate(in, DefaultLimits)
	if len(warnings) == 0 || warnings[0].Field != "Height" || warnings[0].Value != 18000 {
		t.Fatalf("expected height warning in cm, got %+v", warnings)
	}
}
