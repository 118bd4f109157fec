package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"ecotrip/internal/carbon"
	"ecotrip/internal/domain"
	"ecotrip/internal/repository"
)

// RecommendationConfig contains recommendation generation tuning.
type RecommendationConfig struct {
	// MinReductionFraction is the relative emissions reduction a substitute
	// must achieve to be suggested.
	MinReductionFraction float64
	// CostToleranceFraction is how much more a substitute may cost relative
	// to the current component.
	CostToleranceFraction float64
	// WarningThresholdsKg holds the per-category single-component emissions
	// level above which a warning is emitted.
	WarningThresholdsKg map[domain.Category]float64
	// HighImpactKg and MediumImpactKg classify an alternative's reduction.
	HighImpactKg   float64
	MediumImpactKg float64
}

// DefaultRecommendationConfig returns the default recommendation tuning.
func DefaultRecommendationConfig() RecommendationConfig {
	return RecommendationConfig{
		MinReductionFraction:  0.10,
		CostToleranceFraction: 0.25,
		WarningThresholdsKg: map[domain.Category]float64{
			domain.CategoryFlights:        500,
			domain.CategoryAccommodation:  300,
			domain.CategoryActivities:     150,
			domain.CategoryTransportation: 250,
		},
		HighImpactKg:   100,
		MediumImpactKg: 25,
	}
}

// tipCatalog holds one static tip per category. Generation caps at one tip
// per category present in the trip, so the list never floods.
var tipCatalog = map[domain.Category]domain.Recommendation{
	domain.CategoryFlights: {
		Type:        domain.RecommendationTip,
		Title:       "Fly economy and direct",
		Description: "Direct economy flights emit less per passenger than connections or premium cabins.",
		Impact:      domain.ImpactMedium,
		Category:    domain.CategoryFlights,
	},
	domain.CategoryAccommodation: {
		Type:        domain.RecommendationTip,
		Title:       "Prefer certified stays",
		Description: "Hotels with sustainability certifications run on lower energy and water footprints.",
		Impact:      domain.ImpactLow,
		Category:    domain.CategoryAccommodation,
	},
	domain.CategoryActivities: {
		Type:        domain.RecommendationTip,
		Title:       "Choose low-impact activities",
		Description: "Walking tours and outdoor activities carry a fraction of the footprint of motorized ones.",
		Impact:      domain.ImpactLow,
		Category:    domain.CategoryActivities,
	},
	domain.CategoryTransportation: {
		Type:        domain.RecommendationTip,
		Title:       "Take the train",
		Description: "Rail emits a fifth of the CO2 of driving the same route.",
		Impact:      domain.ImpactMedium,
		Category:    domain.CategoryTransportation,
	},
}

// RecommendationService proposes lower-carbon substitutes, tips, and
// warnings for a trip. Nothing is persisted: every call recomputes from the
// current trip state, so recommendations never go stale after an edit.
type RecommendationService struct {
	tripRepo    repository.TripRepository
	catalogRepo repository.CatalogRepository
	config      RecommendationConfig
}

// NewRecommendationService creates a new RecommendationService.
func NewRecommendationService(
	tripRepo repository.TripRepository,
	catalogRepo repository.CatalogRepository,
	config RecommendationConfig,
) *RecommendationService {
	return &RecommendationService{
		tripRepo:    tripRepo,
		catalogRepo: catalogRepo,
		config:      config,
	}
}

// ForTrip generates recommendations for a stored trip plan. Alternatives are
// ranked by carbon reduction descending with cost delta ascending as the
// tie-break; tips and warnings follow.
func (s *RecommendationService) ForTrip(ctx context.Context, tripID string) ([]domain.Recommendation, error) {
	if tripID == "" {
		return nil, ErrInvalidTripID
	}

	plan, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	var alternatives []domain.Recommendation
	for _, component := range plan.Components {
		pool, err := s.candidatePool(ctx, plan, component.Kind)
		if err != nil {
			return nil, err
		}
		alternatives = append(alternatives, s.alternativesFor(component, pool)...)
	}

	sort.SliceStable(alternatives, func(i, j int) bool {
		if alternatives[i].CarbonReductionKg != alternatives[j].CarbonReductionKg {
			return alternatives[i].CarbonReductionKg > alternatives[j].CarbonReductionKg
		}
		if alternatives[i].CostDeltaUnits != alternatives[j].CostDeltaUnits {
			return alternatives[i].CostDeltaUnits < alternatives[j].CostDeltaUnits
		}
		return alternatives[i].AlternativeComponentID < alternatives[j].AlternativeComponentID
	})

	recommendations := alternatives
	recommendations = append(recommendations, s.tipsFor(plan)...)
	recommendations = append(recommendations, s.warningsFor(plan)...)

	return recommendations, nil
}

// candidatePool merges catalog candidates of one kind across the trip's
// destinations, deduplicated by catalog id.
func (s *RecommendationService) candidatePool(ctx context.Context, plan *domain.TripPlan, kind domain.ComponentKind) ([]domain.TripComponent, error) {
	seen := make(map[string]bool)
	var pool []domain.TripComponent

	for _, destination := range plan.Destinations {
		candidates, err := s.catalogRepo.GetCandidates(ctx, destination, kind)
		if err != nil {
			return nil, fmt.Errorf("trip %s destination %s: %w", plan.ID, destination, err)
		}
		for _, c := range candidates {
			if !seen[c.ID] {
				seen[c.ID] = true
				pool = append(pool, c)
			}
		}
	}

	return pool, nil
}

func (s *RecommendationService) alternativesFor(component domain.TripComponent, pool []domain.TripComponent) []domain.Recommendation {
	currentKg := carbon.Estimate(component)
	if currentKg <= 0 {
		return nil
	}

	var recs []domain.Recommendation
	for _, candidate := range pool {
		if candidate.ID == component.ID {
			continue
		}

		reduction := currentKg - carbon.Estimate(candidate)
		if reduction <= s.config.MinReductionFraction*currentKg {
			continue
		}

		costDelta := candidate.CostUnits - component.CostUnits
		if costDelta > s.config.CostToleranceFraction*component.CostUnits {
			continue
		}

		recs = append(recs, domain.Recommendation{
			ID:   uuid.New().String(),
			Type: domain.RecommendationAlternative,
			Title: fmt.Sprintf("Swap %s for %s", component.Name, candidate.Name),
			Description: fmt.Sprintf("Saves %.1f kg CO2 for a cost change of %.2f units.",
				reduction, costDelta),
			Impact:                 s.impactFor(reduction),
			Category:               domain.CategoryOf(component.Kind),
			AppliesToComponentID:   component.ID,
			AlternativeComponentID: candidate.ID,
			CarbonReductionKg:      reduction,
			CostDeltaUnits:         costDelta,
		})
	}

	return recs
}

func (s *RecommendationService) tipsFor(plan *domain.TripPlan) []domain.Recommendation {
	present := make(map[domain.Category]bool)
	for _, c := range plan.Components {
		present[domain.CategoryOf(c.Kind)] = true
	}

	var tips []domain.Recommendation
	for _, category := range domain.Categories {
		if !present[category] {
			continue
		}
		tip := tipCatalog[category]
		tip.ID = uuid.New().String()
		tips = append(tips, tip)
	}

	return tips
}

func (s *RecommendationService) warningsFor(plan *domain.TripPlan) []domain.Recommendation {
	var warnings []domain.Recommendation
	for _, component := range plan.Components {
		category := domain.CategoryOf(component.Kind)
		threshold, ok := s.config.WarningThresholdsKg[category]
		if !ok {
			continue
		}

		kg := carbon.Estimate(component)
		if kg <= threshold {
			continue
		}

		warnings = append(warnings, domain.Recommendation{
			ID:   uuid.New().String(),
			Type: domain.RecommendationWarning,
			Title: fmt.Sprintf("High-impact %s", component.Name),
			Description: fmt.Sprintf("This component alone emits %.0f kg CO2, above the %.0f kg threshold for its category.",
				kg, threshold),
			Impact:               domain.ImpactHigh,
			Category:             category,
			AppliesToComponentID: component.ID,
		})
	}

	return warnings
}

func (s *RecommendationService) impactFor(reductionKg float64) domain.Impact {
	switch {
	case reductionKg >= s.config.HighImpactKg:
		return domain.ImpactHigh
	case reductionKg >= s.config.MediumImpactKg:
		return domain.ImpactMedium
	default:
		return domain.ImpactLow
	}
}
