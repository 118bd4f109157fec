package domain

// EcoScore is the normalized sustainability score for a trip, derived from
// its carbon aggregate, the benchmark for its shape, and the owner's badge
// count. Always recomputable; never authoritative on its own.
type EcoScore struct {
	Value      float64 // clamped to [0, 1000]
	Level      string
	BadgeBonus float64
	CarbonKg   float64
	BenchmarkKg float64
}

// ScoreTier maps a score floor to a qualitative level name.
type ScoreTier struct {
	MinScore float64
	Level    string
}

// ScoreTiers is the step function from score to level, ordered by floor
// descending so the first match wins.
var ScoreTiers = []ScoreTier{
	{MinScore: 900, Level: "Eco Legend"},
	{MinScore: 800, Level: "Eco Hero"},
	{MinScore: 600, Level: "Eco Champion"},
	{MinScore: 400, Level: "Eco Friendly"},
	{MinScore: 200, Level: "Eco Aware"},
	{MinScore: 0, Level: "Eco Novice"},
}

// LevelFor returns the tier name for a score value.
func LevelFor(score float64) string {
	for _, tier := range ScoreTiers {
		if score >= tier.MinScore {
			return tier.Level
		}
	}
	return ScoreTiers[len(ScoreTiers)-1].Level
}
