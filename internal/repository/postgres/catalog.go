package postgres

import (
	"context"
	"database/sql"

	"ecotrip/internal/domain"
)

// CatalogRepository is a PostgreSQL implementation of
// repository.CatalogRepository. Rows are loaded by an external inventory
// sync; this core only reads them.
type CatalogRepository struct {
	q Querier
}

// NewCatalogRepository creates a new PostgreSQL catalog repository.
func NewCatalogRepository(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{q: db}
}

// GetCandidates returns all catalog components for a destination and kind.
// Ordered by id so callers see a stable pool ordering.
func (r *CatalogRepository) GetCandidates(ctx context.Context, destination string, kind domain.ComponentKind) ([]domain.TripComponent, error) {
	query := `
		SELECT id, name, cost_units, distance_km, cabin_class, nights,
			certifications, carbon_footprint_kg, mode
		FROM catalog_components
		WHERE destination = $1 AND kind = $2
		ORDER BY id
	`

	rows, err := r.q.QueryContext(ctx, query, destination, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var candidates []domain.TripComponent
	for rows.Next() {
		c := domain.TripComponent{Kind: kind}
		if err := rows.Scan(
			&c.ID,
			&c.Name,
			&c.CostUnits,
			&c.DistanceKm,
			&c.Cabin,
			&c.Nights,
			&c.Certifications,
			&c.CarbonFootprintKg,
			&c.Mode,
		); err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}

	return candidates, rows.Err()
}
