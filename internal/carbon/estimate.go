// Package carbon implements the emissions model and carbon aggregation for
// trip components. All functions are pure and total: malformed inputs are
// recovered with a conservative (highest-factor) substitute rather than an
// error, so an estimate is always produced and never under-counts.
package carbon

import "ecotrip/internal/domain"

// Flight per-km factors in kg CO2 per passenger-km, banded by distance.
// Short hops burn disproportionate fuel on takeoff and climb.
const (
	shortHaulMaxKm  = 1500.0
	mediumHaulMaxKm = 3700.0

	shortHaulFactorKgKm  = 0.255
	mediumHaulFactorKgKm = 0.156
	longHaulFactorKgKm   = 0.139

	// Non-CO2 effects at altitude roughly double a flight's warming impact.
	radiativeForcingMultiplier = 1.9
)

// Cabin multipliers scale with seat footprint.
const (
	economyMultiplier  = 1.0
	businessMultiplier = 1.6
	firstMultiplier    = 2.5
)

// Hotel factors.
const (
	hotelBaseFactorKgNight    = 20.0
	maxCertificationDiscount  = 0.4
	certificationDiscountStep = 0.15
)

// Ground transport factors in kg CO2 per passenger-km. Strictly ordered:
// rail < bus < car < domestic flight.
const (
	railFactorKgKm           = 0.035
	busFactorKgKm            = 0.068
	carFactorKgKm            = 0.17
	domesticFlightFactorKgKm = 0.255
)

// Estimate returns the estimated CO2 mass in kg for a single trip component.
// It never fails: negative or missing numeric fields clamp to zero emissions,
// and unknown cabin classes or transport modes fall back to the
// highest-factor band.
func Estimate(c domain.TripComponent) float64 {
	switch c.Kind {
	case domain.KindFlight:
		return flightEmission(c.DistanceKm, c.Cabin)
	case domain.KindHotelStay:
		return hotelEmission(c.Nights, c.Certifications)
	case domain.KindActivity:
		return activityEmission(c.CarbonFootprintKg)
	case domain.KindGroundTransport:
		return groundEmission(c.DistanceKm, c.Mode)
	default:
		return 0
	}
}

func flightEmission(distanceKm float64, cabin domain.CabinClass) float64 {
	if distanceKm <= 0 {
		return 0
	}
	return distanceKm * perKmFactor(distanceKm) * cabinMultiplier(cabin) * radiativeForcingMultiplier
}

// perKmFactor returns the banded per-km factor: long-haul flights are more
// efficient per km than short hops.
func perKmFactor(distanceKm float64) float64 {
	switch {
	case distanceKm < shortHaulMaxKm:
		return shortHaulFactorKgKm
	case distanceKm <= mediumHaulMaxKm:
		return mediumHaulFactorKgKm
	default:
		return longHaulFactorKgKm
	}
}

func cabinMultiplier(cabin domain.CabinClass) float64 {
	switch cabin {
	case domain.CabinEconomy:
		return economyMultiplier
	case domain.CabinBusiness:
		return businessMultiplier
	case domain.CabinFirst:
		return firstMultiplier
	default:
		// Unknown cabin: assume the most emitting one.
		return firstMultiplier
	}
}

func hotelEmission(nights, certifications int) float64 {
	if nights <= 0 {
		return 0
	}
	return float64(nights) * hotelBaseFactorKgNight * (1 - CertificationDiscount(certifications))
}

// CertificationDiscount maps a hotel's sustainability certification count to
// an emissions discount. Monotone with diminishing returns, capped at 0.4:
// the first certification is worth the most, a fifth is worth almost nothing.
func CertificationDiscount(certifications int) float64 {
	if certifications <= 0 {
		return 0
	}
	discount := 0.0
	step := certificationDiscountStep
	for i := 0; i < certifications; i++ {
		discount += step
		step /= 2
	}
	if discount > maxCertificationDiscount {
		return maxCertificationDiscount
	}
	return discount
}

func activityEmission(footprintKg float64) float64 {
	// Source data is already kg CO2; just guard against bad upstream values.
	if footprintKg < 0 {
		return 0
	}
	return footprintKg
}

func groundEmission(distanceKm float64, mode domain.TransportMode) float64 {
	if distanceKm <= 0 {
		return 0
	}
	return distanceKm * ModeFactor(mode)
}

// ModeFactor returns the per-km factor for a ground transport mode. Unknown
// modes get the domestic-flight factor so optimization never under-counts.
func ModeFactor(mode domain.TransportMode) float64 {
	switch mode {
	case domain.ModeRail:
		return railFactorKgKm
	case domain.ModeBus:
		return busFactorKgKm
	case domain.ModeCar:
		return carFactorKgKm
	case domain.ModeDomesticFlight:
		return domesticFlightFactorKgKm
	default:
		return domesticFlightFactorKgKm
	}
}
