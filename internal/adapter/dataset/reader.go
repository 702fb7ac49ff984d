package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/simaogato/companystats-backend/internal/domain"
)

// column identifies a record attribute in a dataset header
type column int

const (
	colRank column = iota
	colName
	colCountry
	colRevenue
	colProfits
	colAssets
	colMarketValue
	numColumns
)

// headerAliases maps normalized header names to columns
var headerAliases = map[string]column{
	"rank":             colRank,
	"organizationname": colName,
	"organization":     colName,
	"name":             colName,
	"company":          colName,
	"country":          colCountry,
	"revenue":          colRevenue,
	"sales":            colRevenue,
	"profits":          colProfits,
	"profit":           colProfits,
	"assets":           colAssets,
	"marketvalue":      colMarketValue,
}

var columnNames = [numColumns]string{"rank", "organizationName", "country", "revenue", "profits", "assets", "marketValue"}

// Load reads a dataset file, choosing the format from its extension (.xlsx or .csv)
func Load(path string) ([]domain.CompanyRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return ReadXLSX(f, "")
	case ".csv":
		return ReadCSV(f)
	default:
		return nil, fmt.Errorf("unsupported dataset format %q (want .xlsx or .csv)", filepath.Ext(path))
	}
}

// ReadCSV parses a CSV dataset whose first row is the header
func ReadCSV(r io.Reader) ([]domain.CompanyRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	return parseRows(rows)
}

// ReadXLSX parses a sheet of an xlsx workbook; an empty sheet name selects the first sheet
func ReadXLSX(r io.Reader, sheet string) ([]domain.CompanyRecord, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}

	return parseRows(rows)
}

// parseRows maps the header row to columns and converts every following row
// Blank rows are skipped; any malformed row fails the whole dataset
func parseRows(rows [][]string) ([]domain.CompanyRecord, error) {
	if len(rows) == 0 {
		return nil, errors.New("dataset is empty")
	}

	index, err := mapHeader(rows[0])
	if err != nil {
		return nil, err
	}

	records := make([]domain.CompanyRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if isBlank(row) {
			continue
		}

		lineNo := i + 2
		record, err := parseRow(row, index)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", lineNo, err)
		}
		if err := record.Validate(); err != nil {
			return nil, fmt.Errorf("row %d: %w", lineNo, err)
		}

		records = append(records, record)
	}

	return records, nil
}

// mapHeader returns the cell index of every required column
func mapHeader(header []string) ([numColumns]int, error) {
	var index [numColumns]int
	for i := range index {
		index[i] = -1
	}

	for i, cell := range header {
		if col, ok := headerAliases[NormalizeColumnName(cell)]; ok && index[col] == -1 {
			index[col] = i
		}
	}

	var missing []string
	for col, idx := range index {
		if idx == -1 {
			missing = append(missing, columnNames[col])
		}
	}
	if len(missing) > 0 {
		return index, fmt.Errorf("dataset header is missing columns: %s", strings.Join(missing, ", "))
	}

	return index, nil
}

// NormalizeColumnName lowercases a header cell and drops spaces, underscores, dashes and dots
func NormalizeColumnName(s string) string {
	s = strings.TrimPrefix(strings.TrimSpace(s), "\uFEFF")
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '_', '-', '.', '\t':
			return -1
		}
		return r
	}, strings.ToLower(s))
}

func parseRow(row []string, index [numColumns]int) (domain.CompanyRecord, error) {
	cell := func(col column) string {
		if idx := index[col]; idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	rank, err := strconv.Atoi(strings.ReplaceAll(cell(colRank), ",", ""))
	if err != nil {
		return domain.CompanyRecord{}, fmt.Errorf("invalid rank %q", cell(colRank))
	}

	record := domain.CompanyRecord{
		Rank:             rank,
		OrganizationName: cell(colName),
		Country:          cell(colCountry),
	}

	money := []struct {
		col column
		dst *decimal.Decimal
	}{
		{colRevenue, &record.Revenue},
		{colProfits, &record.Profits},
		{colAssets, &record.Assets},
		{colMarketValue, &record.MarketValue},
	}
	for _, m := range money {
		v, err := ParseMoney(cell(m.col))
		if err != nil {
			return domain.CompanyRecord{}, fmt.Errorf("invalid %s: %w", columnNames[m.col], err)
		}
		*m.dst = v
	}

	return record, nil
}

// ParseMoney parses a money cell, accepting currency symbols and thousands separators
// Values are rounded to the stored 2 fractional digits
func ParseMoney(s string) (decimal.Decimal, error) {
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(strings.TrimSpace(s))
	if cleaned == "" {
		return decimal.Zero, errors.New("value is empty")
	}

	v, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%q is not a number", s)
	}

	return v.Round(domain.MoneyScale), nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// FileLoader loads datasets from the filesystem
type FileLoader struct{}

// Load reads the dataset at path
func (FileLoader) Load(path string) ([]domain.CompanyRecord, error) {
	return Load(path)
}
