package domain

// RegionClass is a coarse classification of a trip's destination set.
type RegionClass string

const (
	RegionDomestic         RegionClass = "DOMESTIC"
	RegionContinental      RegionClass = "CONTINENTAL"
	RegionIntercontinental RegionClass = "INTERCONTINENTAL"
	RegionGlobal           RegionClass = "GLOBAL" // fallback bucket
)

// BenchmarkSignature is the canonical key for benchmark lookups.
// DurationDays is bucketed to the nearest 3 days and Travelers is capped
// at 6 before lookup, so equivalent trips share a signature.
type BenchmarkSignature struct {
	Region       RegionClass
	DurationDays int
	Travelers    int
}

// Benchmark is the reference emissions figure for a trip shape.
type Benchmark struct {
	Signature         BenchmarkSignature
	ReferenceCarbonKg float64
	ReferenceScore    float64
}
