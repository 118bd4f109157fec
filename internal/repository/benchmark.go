package repository

import (
	"context"

	"ecotrip/internal/domain"
)

// BenchmarkRepository reads reference emissions figures. Rows are refreshed
// out-of-band; at evaluation time they are read-only.
type BenchmarkRepository interface {
	// GetBySignature retrieves the benchmark for an exact signature.
	// Returns ErrNotFound on a novel signature.
	GetBySignature(ctx context.Context, sig domain.BenchmarkSignature) (*domain.Benchmark, error)

	// GetGlobal retrieves the global average benchmark used as the fallback
	// comparison point.
	GetGlobal(ctx context.Context) (*domain.Benchmark, error)
}
