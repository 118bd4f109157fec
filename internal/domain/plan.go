package domain

import "time"

// CarbonBreakdown is a per-category split of trip emissions in kg CO2.
type CarbonBreakdown map[Category]float64

// CarbonSummary is the aggregated carbon estimate for a component list.
type CarbonSummary struct {
	TotalKg   float64
	Breakdown CarbonBreakdown
}

// ComparisonResult classifies actual emissions against the prediction.
type ComparisonResult string

const (
	ComparisonBetter ComparisonResult = "BETTER"
	ComparisonWorse  ComparisonResult = "WORSE"
	ComparisonEqual  ComparisonResult = "EQUAL"
)

// CarbonComparison is the predicted-vs-actual result for a completed trip.
type CarbonComparison struct {
	PredictedKg          float64
	ActualKg             float64
	Comparison           ComparisonResult
	PercentageDifference float64
}

// TripPlan is an ordered itinerary with its cached carbon aggregate.
//
// PredictedCarbonKg is a derived value: any component mutation sets
// CarbonStale, and readers recompute before trusting it. The component list
// is the source of truth, never the cached column.
type TripPlan struct {
	ID           string
	UserID       string
	Name         string
	Destinations []string
	StartDate    time.Time
	EndDate      time.Time
	Travelers    int
	BudgetUnits  float64

	Components []TripComponent

	PredictedCarbonKg float64
	CarbonStale       bool
	ActualCarbonKg    float64 // 0 until post-trip tracking records it
	ActualRecorded    bool

	SustainabilityScore float64

	// History facts badge criteria aggregate over. SavedCarbonKg is fixed
	// when the actual figure is recorded (reference minus actual); Shared and
	// CrisisAdaptations are written by the sharing and crisis-alert
	// collaborators outside this core.
	SavedCarbonKg     float64
	Shared            bool
	CrisisAdaptations int

	CreatedAt time.Time
}

// DurationDays returns the trip length in whole days, at least 1.
func (p *TripPlan) DurationDays() int {
	days := int(p.EndDate.Sub(p.StartDate).Hours() / 24)
	if days < 1 {
		return 1
	}
	return days
}

// ComponentByID returns the component with the given id, or nil.
func (p *TripPlan) ComponentByID(id string) *TripComponent {
	for i := range p.Components {
		if p.Components[i].ID == id {
			return &p.Components[i]
		}
	}
	return nil
}
