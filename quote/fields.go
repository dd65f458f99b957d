package quote

import "strings"

// Gender uses the training-time encoding.
type Gender int

const (
	Female Gender = 0
	Male   Gender = 1
)

func (g Gender) String() string {
	if g == Female {
		return "Female"
	}
	return "Male"
}

// ParseGender falls back to Male, the form's preselected option.
func ParseGender(s string) Gender {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "female", "f", "0":
		return Female
	default:
		return Male
	}
}

// ParseSmoker falls back to true, the form's preselected option.
func ParseSmoker(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "no", "n", "false", "0":
		return false
	default:
		return true
	}
}

// Region codes as used at training time.
type Region int

const (
	Northeast Region = 1
	Northwest Region = 2
	Southeast Region = 3
	Southwest Region = 4
)

// Regions lists the options in the order the form shows them.
var Regions = []Region{Southeast, Southwest, Northwest, Northeast}

func (r Region) String() string {
	switch r {
	case Northeast:
		return "Northeast"
	case Northwest:
		return "Northwest"
	case Southwest:
		return "Southwest"
	default:
		return "Southeast"
	}
}

// ParseRegion accepts a region name or its numeric code and falls back to
// Southeast.
func ParseRegion(s string) Region {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "northeast", "1":
		return Northeast
	case "northwest", "2":
		return Northwest
	case "southwest", "4":
		return Southwest
	default:
		return Southeast
	}
}
