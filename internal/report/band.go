package report

import "strings"

// Band is the coarse qualitative tier a category score maps to.
type Band string

const (
	BandHigh   Band = "high"
	BandMedium Band = "medium"
	BandLow    Band = "low"
)

// BandFor maps a score to its display band. Boundary values resolve to the
// higher band: 8.0 is high, 6.0 is medium.
func BandFor(score float64) Band {
	switch {
	case score >= 8:
		return BandHigh
	case score >= 6:
		return BandMedium
	default:
		return BandLow
	}
}

// Tier is the presentation tier of the recommendation text.
type Tier string

const (
	TierStrong    Tier = "strong"
	TierPotential Tier = "potential"
	TierWeak      Tier = "weak"
)

// tierRules is evaluated in order; the first matching substring wins.
var tierRules = []struct {
	substr string
	tier   Tier
}{
	{"Strong", TierStrong},
	{"Potential", TierPotential},
}

// TierFor classifies the recommendation text by substring match. The text
// itself is never altered, only tagged.
func TierFor(recommendation string) Tier {
	for _, rule := range tierRules {
		if strings.Contains(recommendation, rule.substr) {
			return rule.tier
		}
	}

	return TierWeak
}

// Gauge projects the overall score onto a circular progress indicator.
type Gauge struct {
	Score float64
	// Fraction is the sweep fraction, always within [0, 1] even when the
	// service returns an out-of-range score.
	Fraction float64
}

func GaugeFor(score float64) Gauge {
	fraction := score / 10
	if fraction > 1 {
		fraction = 1
	}
	if fraction < 0 {
		fraction = 0
	}

	return Gauge{Score: score, Fraction: fraction}
}
