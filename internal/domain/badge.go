package domain

import "time"

// BadgeCategory groups badges by the behavior they reward.
type BadgeCategory string

const (
	BadgeCategoryCarbon     BadgeCategory = "CARBON"
	BadgeCategoryExplorer   BadgeCategory = "EXPLORER"
	BadgeCategoryResilience BadgeCategory = "RESILIENCE"
	BadgeCategoryCommunity  BadgeCategory = "COMMUNITY"
)

// UserHistory is the aggregated trip history a badge criterion is evaluated
// against. Criteria only ever see aggregates, never a single trip, so an
// earned badge stays stable when older trips are edited.
type UserHistory struct {
	TripCount            int
	CarbonSavedKg        float64
	DistinctDestinations int
	SharedTripCount      int
	CrisisAdaptations    int
}

// BadgeCriterion is a pure predicate over a user's aggregated history.
type BadgeCriterion func(history UserHistory) bool

// Badge is a static catalog entry. Whether a user has earned it is a fact
// derived from history, never hand-set.
type Badge struct {
	ID          string
	Name        string
	Description string
	Category    BadgeCategory
	Criterion   BadgeCriterion `json:"-"`
}

// EarnedBadge records a one-way locked->earned transition for a user.
type EarnedBadge struct {
	UserID   string
	BadgeID  string
	EarnedAt time.Time
}

// BadgeCatalog is the static set of badges the evaluator knows about.
var BadgeCatalog = []Badge{
	{
		ID:          "first-steps",
		Name:        "First Steps",
		Description: "Complete your first trip",
		Category:    BadgeCategoryExplorer,
		Criterion:   func(h UserHistory) bool { return h.TripCount >= 1 },
	},
	{
		ID:          "frequent-explorer",
		Name:        "Frequent Explorer",
		Description: "Complete ten trips",
		Category:    BadgeCategoryExplorer,
		Criterion:   func(h UserHistory) bool { return h.TripCount >= 10 },
	},
	{
		ID:          "globe-trotter",
		Name:        "Globe Trotter",
		Description: "Visit five distinct destinations",
		Category:    BadgeCategoryExplorer,
		Criterion:   func(h UserHistory) bool { return h.DistinctDestinations >= 5 },
	},
	{
		ID:          "carbon-saver-bronze",
		Name:        "Carbon Saver Bronze",
		Description: "Save 100 kg CO2 versus typical trips",
		Category:    BadgeCategoryCarbon,
		Criterion:   func(h UserHistory) bool { return h.CarbonSavedKg >= 100 },
	},
	{
		ID:          "carbon-saver-silver",
		Name:        "Carbon Saver Silver",
		Description: "Save 500 kg CO2 versus typical trips",
		Category:    BadgeCategoryCarbon,
		Criterion:   func(h UserHistory) bool { return h.CarbonSavedKg >= 500 },
	},
	{
		ID:          "carbon-saver-gold",
		Name:        "Carbon Saver Gold",
		Description: "Save 2000 kg CO2 versus typical trips",
		Category:    BadgeCategoryCarbon,
		Criterion:   func(h UserHistory) bool { return h.CarbonSavedKg >= 2000 },
	},
	{
		ID:          "community-guide",
		Name:        "Community Guide",
		Description: "Share three trips with other travelers",
		Category:    BadgeCategoryCommunity,
		Criterion:   func(h UserHistory) bool { return h.SharedTripCount >= 3 },
	},
	{
		ID:          "storm-rider",
		Name:        "Storm Rider",
		Description: "Adapt a trip around a crisis alert",
		Category:    BadgeCategoryResilience,
		Criterion:   func(h UserHistory) bool { return h.CrisisAdaptations >= 1 },
	},
}

// BadgeByID looks a badge up in the catalog.
func BadgeByID(id string) (Badge, bool) {
	for _, b := range BadgeCatalog {
		if b.ID == id {
			return b, true
		}
	}
	return Badge{}, false
}
