package carbon

import (
	"math"

	"ecotrip/internal/domain"
)

// Actual-vs-predicted differences below this fraction are reported as equal,
// so sensor noise in post-trip tracking does not flap the comparison.
const equalityBand = 0.02

// Aggregate sums component emissions into a trip total and a per-category
// breakdown. It is a pure fold over the list: calling it twice on the same
// components yields identical results, and order does not matter.
func Aggregate(components []domain.TripComponent) domain.CarbonSummary {
	breakdown := make(domain.CarbonBreakdown, len(domain.Categories))
	for _, cat := range domain.Categories {
		breakdown[cat] = 0
	}

	total := 0.0
	for _, c := range components {
		kg := Estimate(c)
		total += kg
		breakdown[domain.CategoryOf(c.Kind)] += kg
	}

	return domain.CarbonSummary{TotalKg: total, Breakdown: breakdown}
}

// Compare classifies actual emissions against the prediction. Differences
// within 2% of the prediction count as equal.
func Compare(predictedKg, actualKg float64) domain.CarbonComparison {
	cmp := domain.CarbonComparison{
		PredictedKg: predictedKg,
		ActualKg:    actualKg,
	}

	if predictedKg <= 0 {
		if actualKg <= 0 {
			cmp.Comparison = domain.ComparisonEqual
		} else {
			cmp.Comparison = domain.ComparisonWorse
			cmp.PercentageDifference = 100
		}
		return cmp
	}

	diff := actualKg - predictedKg
	cmp.PercentageDifference = diff / predictedKg * 100

	switch {
	case math.Abs(diff)/predictedKg <= equalityBand:
		cmp.Comparison = domain.ComparisonEqual
	case diff < 0:
		cmp.Comparison = domain.ComparisonBetter
	default:
		cmp.Comparison = domain.ComparisonWorse
	}

	return cmp
}
