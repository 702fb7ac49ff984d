package memory

import (
	"context"
	"sync"

	"github.com/simaogato/companystats-backend/internal/domain"
)

// CompanyRepository keeps the dataset in process memory
// It implements domain.CompanyRepository and domain.CompanyWriter
type CompanyRepository struct {
	mu      sync.RWMutex
	records []domain.CompanyRecord
}

// NewCompanyRepository creates an empty in-memory repository
func NewCompanyRepository() *CompanyRepository {
	return &CompanyRepository{}
}

// FetchAll returns a copy of every record in insertion order
func (r *CompanyRepository) FetchAll(ctx context.Context) ([]domain.CompanyRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.CompanyRecord, len(r.records))
	copy(out, r.records)
	return out, nil
}

// Ping always succeeds for the in-memory store
func (r *CompanyRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}

// ReplaceAll swaps the dataset for records, assigning sequential IDs when absent
func (r *CompanyRepository) ReplaceAll(ctx context.Context, records []domain.CompanyRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	next := make([]domain.CompanyRecord, len(records))
	copy(next, records)

	var id int64 = 1
	for i := range next {
		if next[i].ID == 0 {
			next[i].ID = id
		}
		if next[i].ID >= id {
			id = next[i].ID + 1
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = next
	return nil
}
