package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/simaogato/companystats-backend/internal/domain"
)

// Schema creates the company table
// Table and column names follow the legacy api_companyrecord table, so an existing database can be served as is
const Schema = `
	CREATE TABLE IF NOT EXISTS api_companyrecord (
		id                 BIGSERIAL PRIMARY KEY,
		rank               INTEGER NOT NULL,
		"organizationName" VARCHAR(255) NOT NULL,
		country            VARCHAR(255) NOT NULL,
		revenue            NUMERIC(20, 2) NOT NULL,
		profits            NUMERIC(20, 2) NOT NULL,
		assets             NUMERIC(20, 2) NOT NULL,
		"marketValue"      NUMERIC(20, 2) NOT NULL
	)
`

// companyRepository implements domain.CompanyRepository and domain.CompanyWriter
type companyRepository struct {
	db *DB
}

// CompanyRepository is the combined read/write view used by the server and the seeder
type CompanyRepository interface {
	domain.CompanyRepository
	domain.CompanyWriter
}

// NewCompanyRepository creates a new company repository
func NewCompanyRepository(db *DB) CompanyRepository {
	return &companyRepository{db: db}
}

// EnsureSchema creates the company table if it does not exist
func EnsureSchema(ctx context.Context, db *DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("failed to create company table: %w", err)
	}
	return nil
}

// FetchAll retrieves every company record in storage order
// A single SELECT reads one consistent snapshot
func (r *companyRepository) FetchAll(ctx context.Context) ([]domain.CompanyRecord, error) {
	query := `
		SELECT id, rank, "organizationName", country, revenue, profits, assets, "marketValue"
		FROM api_companyrecord
		ORDER BY id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query companies: %w", err)
	}
	defer rows.Close()

	records := make([]domain.CompanyRecord, 0)
	for rows.Next() {
		var record domain.CompanyRecord
		var revenueStr, profitsStr, assetsStr, marketValueStr string

		err := rows.Scan(
			&record.ID,
			&record.Rank,
			&record.OrganizationName,
			&record.Country,
			&revenueStr,
			&profitsStr,
			&assetsStr,
			&marketValueStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}

		// Parse NUMERIC columns
		if err := parseMoney(&record, revenueStr, profitsStr, assetsStr, marketValueStr); err != nil {
			return nil, fmt.Errorf("failed to parse company %d: %w", record.ID, err)
		}

		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating companies: %w", err)
	}

	return records, nil
}

// Ping verifies the database is reachable
func (r *companyRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// ReplaceAll deletes every company and inserts records in one database transaction
func (r *companyRepository) ReplaceAll(ctx context.Context, records []domain.CompanyRecord) error {
	// Start a database transaction
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	if _, err := dbTx.ExecContext(ctx, `TRUNCATE TABLE api_companyrecord RESTART IDENTITY`); err != nil {
		return fmt.Errorf("failed to clear companies: %w", err)
	}

	stmt, err := dbTx.PrepareContext(ctx, `
		INSERT INTO api_companyrecord (rank, "organizationName", country, revenue, profits, assets, "marketValue")
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare company insert: %w", err)
	}
	defer stmt.Close()

	for _, record := range records {
		_, err = stmt.ExecContext(ctx,
			record.Rank,
			record.OrganizationName,
			record.Country,
			record.Revenue.StringFixed(domain.MoneyScale),
			record.Profits.StringFixed(domain.MoneyScale),
			record.Assets.StringFixed(domain.MoneyScale),
			record.MarketValue.StringFixed(domain.MoneyScale),
		)
		if err != nil {
			return fmt.Errorf("failed to insert company rank %d: %w", record.Rank, err)
		}
	}

	// Commit the transaction
	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// parseMoney parses the decimal columns of a scanned row into record
func parseMoney(record *domain.CompanyRecord, revenue, profits, assets, marketValue string) error {
	targets := []struct {
		name string
		raw  string
		dst  *decimal.Decimal
	}{
		{"revenue", revenue, &record.Revenue},
		{"profits", profits, &record.Profits},
		{"assets", assets, &record.Assets},
		{"marketValue", marketValue, &record.MarketValue},
	}

	for _, t := range targets {
		v, err := decimal.NewFromString(t.raw)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", t.name, err)
		}
		*t.dst = v
	}

	return nil
}
