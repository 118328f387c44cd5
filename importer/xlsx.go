// Package importer reads and writes the spreadsheet layout the dashboard
// exchanges with users. Import is a single validation pass: every row is
// either coerced into a Transaction or reported with its row number, field
// and message, and bad rows never block good ones.
package importer

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"fincontrol/api/models"
)

// TransactionsSheet is the sheet the importer reads.
const TransactionsSheet = "Transactions"

// RowError reports one rejected cell.
type RowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Preview groups the outcome of a parse for the import confirmation screen.
type Preview struct {
	Valid    []models.Transaction `json:"valid"`
	Invalid  []RowError           `json:"invalid"`
	Imported int                  `json:"imported"`
}

// Column labels are matched case-insensitively in English and Portuguese,
// the two locales the dashboard ships.
var headerAliases = map[string]string{
	"date":        "date",
	"data":        "date",
	"type":        "type",
	"tipo":        "type",
	"category":    "category",
	"categoria":   "category",
	"description": "description",
	"descricao":   "description",
	"descrição":   "description",
	"value":       "value",
	"valor":       "value",
}

var typeAliases = map[string]models.TransactionType{
	"income":  models.TransactionIncome,
	"receita": models.TransactionIncome,
	"expense": models.TransactionExpense,
	"despesa": models.TransactionExpense,
}

var dateLayouts = []string{"2006-01-02", "02/01/2006", "2006-01-02 15:04:05", time.RFC3339}

// ParseTransactions reads the Transactions sheet and validates every data
// row. Rows where all cells are empty are skipped silently (spreadsheets
// routinely carry trailing blanks).
func ParseTransactions(r io.Reader, userID string) (*Preview, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("error opening workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(TransactionsSheet)
	if err != nil {
		return nil, fmt.Errorf("missing sheet %q", TransactionsSheet)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", TransactionsSheet)
	}

	columns, err := mapHeader(rows[0])
	if err != nil {
		return nil, err
	}

	preview := &Preview{Valid: []models.Transaction{}, Invalid: []RowError{}}
	for i, row := range rows[1:] {
		rowNum := i + 2 // 1-based, after the header
		if blankRow(row) {
			continue
		}
		t, errs := parseRow(row, columns, rowNum, userID)
		if len(errs) > 0 {
			preview.Invalid = append(preview.Invalid, errs...)
			continue
		}
		preview.Valid = append(preview.Valid, t)
	}
	return preview, nil
}

// mapHeader resolves localized column labels to field names and checks that
// every required column is present.
func mapHeader(header []string) (map[string]int, error) {
	columns := map[string]int{}
	for i, label := range header {
		if field, ok := headerAliases[normalize(label)]; ok {
			columns[field] = i
		}
	}
	for _, field := range []string{"date", "type", "category", "value"} {
		if _, ok := columns[field]; !ok {
			return nil, fmt.Errorf("missing required column %q", field)
		}
	}
	return columns, nil
}

func parseRow(row []string, columns map[string]int, rowNum int, userID string) (models.Transaction, []RowError) {
	var errs []RowError
	t := models.Transaction{ID: uuid.New(), UserID: userID}

	if date, err := parseDate(cell(row, columns["date"])); err != nil {
		errs = append(errs, RowError{Row: rowNum, Field: "date", Message: err.Error()})
	} else {
		t.Date = date
	}

	if typ, ok := typeAliases[normalize(cell(row, columns["type"]))]; !ok {
		errs = append(errs, RowError{Row: rowNum, Field: "type",
			Message: fmt.Sprintf("unknown type %q", cell(row, columns["type"]))})
	} else {
		t.Type = typ
	}

	if category := strings.TrimSpace(cell(row, columns["category"])); category == "" {
		errs = append(errs, RowError{Row: rowNum, Field: "category", Message: "category is required"})
	} else {
		t.Category = category
	}

	if value, err := parseValue(cell(row, columns["value"])); err != nil {
		errs = append(errs, RowError{Row: rowNum, Field: "value", Message: err.Error()})
	} else {
		t.Value = value
	}

	if col, ok := columns["description"]; ok {
		t.Description = strings.TrimSpace(cell(row, col))
	}
	return t, errs
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}
	for _, layout := range dateLayouts {
		if date, err := time.Parse(layout, raw); err == nil {
			return date, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", raw)
}

// parseValue accepts both "1234.56" and the Brazilian "1.234,56".
func parseValue(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, fmt.Errorf("value is required")
	}
	if strings.Contains(raw, ",") {
		raw = strings.ReplaceAll(raw, ".", "")
		raw = strings.ReplaceAll(raw, ",", ".")
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid value %q", raw)
	}
	if !value.IsPositive() {
		return decimal.Zero, fmt.Errorf("value must be positive")
	}
	return value, nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return row[i]
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
