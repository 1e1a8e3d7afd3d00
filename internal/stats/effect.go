package stats

import "math"

// Cliff's delta magnitude thresholds (Romano et al.).
const (
	cliffNegligible = 0.147
	cliffSmall      = 0.33
	cliffMedium     = 0.474
)

// Effect magnitude labels.
const (
	MagnitudeNegligible = "negligible"
	MagnitudeSmall      = "small"
	MagnitudeMedium     = "medium"
	MagnitudeLarge      = "large"
)

// CliffsDelta returns P(x > y) - P(x < y) over every cross pair of the two
// samples, ignoring missing values. The result lies in [-1, 1]; it is NaN when
// either sample is empty.
func CliffsDelta(x, y []float64) float64 {
	var greater, less, total float64
	for _, a := range x {
		if math.IsNaN(a) {
			continue
		}
		for _, b := range y {
			if math.IsNaN(b) {
				continue
			}
			total++
			switch {
			case a > b:
				greater++
			case a < b:
				less++
			}
		}
	}
	if total == 0 {
		return math.NaN()
	}
	return (greater - less) / total
}

// EffectMagnitude classifies |delta| into the standard Cliff's delta bands.
// It returns an empty string for an undefined delta.
func EffectMagnitude(delta float64) string {
	if math.IsNaN(delta) {
		return ""
	}
	abs := math.Abs(delta)
	switch {
	case abs < cliffNegligible:
		return MagnitudeNegligible
	case abs < cliffSmall:
		return MagnitudeSmall
	case abs < cliffMedium:
		return MagnitudeMedium
	default:
		return MagnitudeLarge
	}
}
