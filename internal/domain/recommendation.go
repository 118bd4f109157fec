package domain

// RecommendationType discriminates the kind of a recommendation.
type RecommendationType string

const (
	RecommendationTip         RecommendationType = "TIP"
	RecommendationAlternative RecommendationType = "ALTERNATIVE"
	RecommendationWarning     RecommendationType = "WARNING"
)

// Impact is the qualitative weight of a recommendation.
type Impact string

const (
	ImpactLow    Impact = "LOW"
	ImpactMedium Impact = "MEDIUM"
	ImpactHigh   Impact = "HIGH"
)

// Recommendation is a single suggestion produced for a trip. Recommendations
// are generated fresh on every request and never persisted, so they cannot
// go stale relative to a just-edited trip.
type Recommendation struct {
	ID          string
	Type        RecommendationType
	Title       string
	Description string
	Impact      Impact
	Category    Category

	// Set for ALTERNATIVE and WARNING types.
	AppliesToComponentID string

	// Set for ALTERNATIVE types.
	AlternativeComponentID string
	CarbonReductionKg      float64
	CostDeltaUnits         float64
}
