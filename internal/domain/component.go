package domain

// ComponentKind discriminates the type of a trip component.
type ComponentKind string

const (
	KindFlight          ComponentKind = "FLIGHT"
	KindHotelStay       ComponentKind = "HOTEL_STAY"
	KindActivity        ComponentKind = "ACTIVITY"
	KindGroundTransport ComponentKind = "GROUND_TRANSPORT"
)

// Category groups components for carbon breakdowns and recommendations.
type Category string

const (
	CategoryFlights        Category = "FLIGHTS"
	CategoryAccommodation  Category = "ACCOMMODATION"
	CategoryActivities     Category = "ACTIVITIES"
	CategoryTransportation Category = "TRANSPORTATION"
)

// Categories lists every category in a fixed order, used for exhaustive
// iteration (breakdowns, tip catalogs) so no category is silently dropped.
var Categories = []Category{
	CategoryFlights,
	CategoryAccommodation,
	CategoryActivities,
	CategoryTransportation,
}

// CategoryOf maps a component kind to its breakdown category.
func CategoryOf(kind ComponentKind) Category {
	switch kind {
	case KindFlight:
		return CategoryFlights
	case KindHotelStay:
		return CategoryAccommodation
	case KindActivity:
		return CategoryActivities
	case KindGroundTransport:
		return CategoryTransportation
	default:
		// Unknown kinds are treated as transportation, the broadest bucket.
		return CategoryTransportation
	}
}

// CabinClass is the booked cabin of a flight component.
type CabinClass string

const (
	CabinEconomy  CabinClass = "ECONOMY"
	CabinBusiness CabinClass = "BUSINESS"
	CabinFirst    CabinClass = "FIRST"
)

// TransportMode is the mode of a ground transport component.
type TransportMode string

const (
	ModeRail           TransportMode = "RAIL"
	ModeBus            TransportMode = "BUS"
	ModeCar            TransportMode = "CAR"
	ModeDomesticFlight TransportMode = "DOMESTIC_FLIGHT"
)

// TripComponent is a single element of an itinerary: a flight leg, a hotel
// stay, an activity, or a ground transport segment. Attribute fields are
// interpreted per kind; unused fields are zero. Emissions are always derived
// from the attributes, never stored as ground truth.
type TripComponent struct {
	ID        string
	TripID    string
	LegID     string
	Kind      ComponentKind
	Name      string
	CostUnits float64

	// Flight attributes.
	DistanceKm float64
	Cabin      CabinClass

	// Hotel attributes.
	Nights         int
	Certifications int

	// Activity attributes.
	CarbonFootprintKg float64

	// Ground transport attributes (DistanceKm is shared with flights).
	Mode TransportMode

	// Pinned components are preserved by trip optimization.
	Pinned bool

	// Position preserves itinerary order within the trip.
	Position int
}
