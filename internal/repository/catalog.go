package repository

import (
	"context"

	"ecotrip/internal/domain"
)

// CatalogRepository is the candidate-pool source: for a destination and
// component kind it returns the bookable components with cost and the raw
// attributes the emissions model needs. Inventory freshness is the source's
// problem; this core only reads consistent snapshots.
type CatalogRepository interface {
	// GetCandidates returns all catalog components for a destination and kind.
	GetCandidates(ctx context.Context, destination string, kind domain.ComponentKind) ([]domain.TripComponent, error)
}
