package importer

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"fincontrol/api/models"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func buildWorkbook(t *testing.T, header []string, rows [][]any) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	_, err := f.NewSheet(TransactionsSheet)
	require.NoError(t, err)
	require.NoError(t, f.DeleteSheet("Sheet1"))

	for i, label := range header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue(TransactionsSheet, cell, label))
	}
	for r, row := range rows {
		for i, v := range row {
			cell, err := excelize.CoordinatesToCellName(i+1, r+2)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(TransactionsSheet, cell, v))
		}
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return bytes.NewReader(buf.Bytes())
}

var englishHeader = []string{"Date", "Type", "Category", "Description", "Value"}

func TestParseTransactions_ValidRows(t *testing.T) {
	r := buildWorkbook(t, englishHeader, [][]any{
		{"2025-01-05", "Income", "salary", "January salary", "5000.00"},
		{"2025-01-10", "Expense", "groceries", "market run", "150.75"},
	})

	preview, err := ParseTransactions(r, "user-1")
	require.NoError(t, err)
	assert.Empty(t, preview.Invalid)
	require.Len(t, preview.Valid, 2)

	first := preview.Valid[0]
	assert.Equal(t, "user-1", first.UserID)
	assert.Equal(t, models.TransactionIncome, first.Type)
	assert.Equal(t, "salary", first.Category)
	assert.Equal(t, "January salary", first.Description)
	assert.Equal(t, "5000.00", first.Value.StringFixed(2))
	assert.Equal(t, 2025, first.Date.Year())

	assert.Equal(t, models.TransactionExpense, preview.Valid[1].Type)
	assert.Equal(t, "150.75", preview.Valid[1].Value.StringFixed(2))
}

func TestParseTransactions_PortugueseHeadersAndLabels(t *testing.T) {
	header := []string{"Data", "Tipo", "Categoria", "Descrição", "Valor"}
	r := buildWorkbook(t, header, [][]any{
		{"05/01/2025", "Receita", "salario", "salário de janeiro", "5.000,00"},
		{"10/01/2025", "Despesa", "mercado", "", "1.150,50"},
	})

	preview, err := ParseTransactions(r, "user-1")
	require.NoError(t, err)
	assert.Empty(t, preview.Invalid)
	require.Len(t, preview.Valid, 2)

	assert.Equal(t, models.TransactionIncome, preview.Valid[0].Type)
	assert.Equal(t, "5000.00", preview.Valid[0].Value.StringFixed(2))
	assert.Equal(t, 5, preview.Valid[0].Date.Day())
	assert.Equal(t, models.TransactionExpense, preview.Valid[1].Type)
	assert.Equal(t, "1150.50", preview.Valid[1].Value.StringFixed(2))
}

func TestParseTransactions_InvalidRowsReported(t *testing.T) {
	r := buildWorkbook(t, englishHeader, [][]any{
		{"NOTADATE", "Income", "salary", "", "100.00"},
		{"2025-01-10", "transfer", "misc", "", "50.00"},
		{"2025-01-11", "Expense", "", "", "10.00"},
		{"2025-01-12", "Expense", "misc", "", "-5.00"},
		{"2025-01-13", "Expense", "misc", "ok row", "5.00"},
	})

	preview, err := ParseTransactions(r, "user-1")
	require.NoError(t, err)
	require.Len(t, preview.Valid, 1)
	assert.Equal(t, "ok row", preview.Valid[0].Description)

	require.Len(t, preview.Invalid, 4)
	assert.Equal(t, 2, preview.Invalid[0].Row)
	assert.Equal(t, "date", preview.Invalid[0].Field)
	assert.Contains(t, preview.Invalid[0].Message, "invalid date")

	assert.Equal(t, 3, preview.Invalid[1].Row)
	assert.Equal(t, "type", preview.Invalid[1].Field)
	assert.Contains(t, preview.Invalid[1].Message, "unknown type")

	assert.Equal(t, 4, preview.Invalid[2].Row)
	assert.Equal(t, "category", preview.Invalid[2].Field)

	assert.Equal(t, 5, preview.Invalid[3].Row)
	assert.Equal(t, "value", preview.Invalid[3].Field)
	assert.Contains(t, preview.Invalid[3].Message, "positive")
}

func TestParseTransactions_RowWithSeveralBadCells(t *testing.T) {
	r := buildWorkbook(t, englishHeader, [][]any{
		{"", "nope", "misc", "", "abc"},
	})

	preview, err := ParseTransactions(r, "user-1")
	require.NoError(t, err)
	assert.Empty(t, preview.Valid)
	// One error per bad field, all pointing at the same row.
	require.Len(t, preview.Invalid, 3)
	for _, rowErr := range preview.Invalid {
		assert.Equal(t, 2, rowErr.Row)
	}
}

func TestParseTransactions_SkipsBlankRows(t *testing.T) {
	r := buildWorkbook(t, englishHeader, [][]any{
		{"2025-01-05", "Income", "salary", "", "100.00"},
		{"", "", "", "", ""},
		{"2025-01-06", "Expense", "misc", "", "20.00"},
	})

	preview, err := ParseTransactions(r, "user-1")
	require.NoError(t, err)
	assert.Empty(t, preview.Invalid)
	assert.Len(t, preview.Valid, 2)
}

func TestParseTransactions_MissingColumn(t *testing.T) {
	r := buildWorkbook(t, []string{"Date", "Type", "Description", "Value"}, nil)

	_, err := ParseTransactions(r, "user-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `missing required column "category"`)
}

func TestParseTransactions_MissingSheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	_, err := ParseTransactions(bytes.NewReader(buf.Bytes()), "user-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing sheet")
}

func TestWriteTransactions_RoundTrip(t *testing.T) {
	transactions := []models.Transaction{
		{UserID: "user-1", Type: models.TransactionIncome, Category: "salary",
			Description: "January salary", Value: d("5000.00"), Date: day("2025-01-05")},
		{UserID: "user-1", Type: models.TransactionExpense, Category: "groceries",
			Description: "market run", Value: d("150.75"), Date: day("2025-01-10")},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteTransactions(&buf, transactions))

	preview, err := ParseTransactions(bytes.NewReader(buf.Bytes()), "user-1")
	require.NoError(t, err)
	assert.Empty(t, preview.Invalid)
	require.Len(t, preview.Valid, 2)
	assert.Equal(t, "salary", preview.Valid[0].Category)
	assert.Equal(t, "5000.00", preview.Valid[0].Value.StringFixed(2))
	assert.Equal(t, models.TransactionExpense, preview.Valid[1].Type)
}
