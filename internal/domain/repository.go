package domain

import "context"

// CompanyRepository defines the read interface of the record source
// Implementations must be safe for concurrent use
type CompanyRepository interface {
	// FetchAll returns a consistent snapshot of every record in storage order (ascending ID)
	// The returned slice belongs to the caller
	FetchAll(ctx context.Context) ([]CompanyRecord, error)

	// Ping verifies the source is reachable
	Ping(ctx context.Context) error
}

// CompanyWriter defines the interface used by the dataset seeder
// The API never writes records
type CompanyWriter interface {
	// ReplaceAll atomically replaces the stored dataset with records, in slice order
	ReplaceAll(ctx context.Context, records []CompanyRecord) error
}
