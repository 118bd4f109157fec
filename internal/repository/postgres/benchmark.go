package postgres

import (
	"context"
	"database/sql"
	"errors"

	"ecotrip/internal/domain"
	"ecotrip/internal/repository"
)

// BenchmarkRepository is a PostgreSQL implementation of
// repository.BenchmarkRepository.
type BenchmarkRepository struct {
	q Querier
}

// NewBenchmarkRepository creates a new PostgreSQL benchmark repository.
func NewBenchmarkRepository(db *sql.DB) *BenchmarkRepository {
	return &BenchmarkRepository{q: db}
}

// GetBySignature retrieves the benchmark for an exact signature.
func (r *BenchmarkRepository) GetBySignature(ctx context.Context, sig domain.BenchmarkSignature) (*domain.Benchmark, error) {
	query := `
		SELECT region_class, duration_days, travelers, reference_carbon_kg, reference_score
		FROM benchmarks
		WHERE region_class = $1 AND duration_days = $2 AND travelers = $3
	`
	return r.scan(r.q.QueryRowContext(ctx, query, sig.Region, sig.DurationDays, sig.Travelers))
}

// GetGlobal retrieves the global average benchmark used as the fallback.
func (r *BenchmarkRepository) GetGlobal(ctx context.Context) (*domain.Benchmark, error) {
	query := `
		SELECT region_class, duration_days, travelers, reference_carbon_kg, reference_score
		FROM benchmarks
		WHERE region_class = $1
	`
	return r.scan(r.q.QueryRowContext(ctx, query, domain.RegionGlobal))
}

func (r *BenchmarkRepository) scan(row *sql.Row) (*domain.Benchmark, error) {
	var b domain.Benchmark
	err := row.Scan(
		&b.Signature.Region,
		&b.Signature.DurationDays,
		&b.Signature.Travelers,
		&b.ReferenceCarbonKg,
		&b.ReferenceScore,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}
