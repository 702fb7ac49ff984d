package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"github.com/shopspring/decimal"

	"github.com/simaogato/companystats-backend/internal/domain"
)

// Money columns are TEXT so decimal values round-trip without float conversion
const schema = `
	CREATE TABLE IF NOT EXISTS api_companyrecord (
		id                 INTEGER PRIMARY KEY AUTOINCREMENT,
		rank               INTEGER NOT NULL,
		"organizationName" TEXT NOT NULL,
		country            TEXT NOT NULL,
		revenue            TEXT NOT NULL,
		profits            TEXT NOT NULL,
		assets             TEXT NOT NULL,
		"marketValue"      TEXT NOT NULL
	)
`

// Store is a file-backed record source
// It implements domain.CompanyRepository and domain.CompanyWriter
type Store struct {
	db *sql.DB
}

// Open opens (and creates if needed) the SQLite database at path
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create company table: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the database is reachable
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// FetchAll retrieves every company record in storage order
func (s *Store) FetchAll(ctx context.Context) ([]domain.CompanyRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, rank, "organizationName", country, revenue, profits, assets, "marketValue"
		FROM api_companyrecord
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query companies: %w", err)
	}
	defer rows.Close()

	records := make([]domain.CompanyRecord, 0)
	for rows.Next() {
		var r domain.CompanyRecord
		var money [4]string
		if err := rows.Scan(&r.ID, &r.Rank, &r.OrganizationName, &r.Country, &money[0], &money[1], &money[2], &money[3]); err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}

		dst := []*decimal.Decimal{&r.Revenue, &r.Profits, &r.Assets, &r.MarketValue}
		for i, raw := range money {
			v, err := decimal.NewFromString(raw)
			if err != nil {
				return nil, fmt.Errorf("failed to parse %s of company %d: %w", domain.Fields[i], r.ID, err)
			}
			*dst[i] = v
		}

		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating companies: %w", err)
	}

	return records, nil
}

// ReplaceAll deletes every company and inserts records in one transaction
func (s *Store) ReplaceAll(ctx context.Context, records []domain.CompanyRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM api_companyrecord`); err != nil {
		return fmt.Errorf("failed to clear companies: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM sqlite_sequence WHERE name = 'api_companyrecord'`); err != nil {
		return fmt.Errorf("failed to reset company ids: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO api_companyrecord (rank, "organizationName", country, revenue, profits, assets, "marketValue")
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare company insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		_, err := stmt.ExecContext(ctx,
			r.Rank,
			r.OrganizationName,
			r.Country,
			r.Revenue.StringFixed(domain.MoneyScale),
			r.Profits.StringFixed(domain.MoneyScale),
			r.Assets.StringFixed(domain.MoneyScale),
			r.MarketValue.StringFixed(domain.MoneyScale),
		)
		if err != nil {
			return fmt.Errorf("failed to insert company rank %d: %w", r.Rank, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
