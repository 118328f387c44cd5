package reports

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fincontrol/api/models"
)

func TestWealthSeries_RunningBalance(t *testing.T) {
	now := day("2025-03-10")
	transactions := []models.Transaction{
		tx(models.TransactionIncome, "salary", "3000.00", "2025-01-05"),
		tx(models.TransactionExpense, "rent", "1000.00", "2025-01-10"),
		tx(models.TransactionIncome, "salary", "3000.00", "2025-02-05"),
	}

	series := WealthSeries(transactions, nil, nil, nil, 3, now)
	require.Len(t, series, 3)

	assert.Equal(t, "2025-01", series[0].Month)
	assert.Equal(t, "2000.00", series[0].Balance.StringFixed(2))
	// February carries January's balance forward.
	assert.Equal(t, "5000.00", series[1].Balance.StringFixed(2))
	// March has no movement, the balance holds.
	assert.Equal(t, "5000.00", series[2].Balance.StringFixed(2))
	assert.Equal(t, "5000.00", series[2].NetWorth.StringFixed(2))
}

func TestWealthSeries_InvestmentsAppearFromTheirMonth(t *testing.T) {
	now := day("2025-02-28")
	investments := []models.Investment{
		{Type: "stocks", Value: d("1500.00"), Date: day("2025-02-10")},
	}

	series := WealthSeries(nil, investments, nil, nil, 2, now)
	require.Len(t, series, 2)
	assert.True(t, series[0].Investments.IsZero())
	assert.Equal(t, "1500.00", series[1].Investments.StringFixed(2))
}

func TestWealthSeries_DebtFromUnpaidInvoices(t *testing.T) {
	now := day("2025-02-28")
	invoices := []models.Invoice{
		{Month: "2025-01", Status: models.InvoiceClosed, Total: d("400.00")},
		{Month: "2025-02", Status: models.InvoiceOpen, Total: d("250.00")},
		{Month: "2025-01", Status: models.InvoicePaid, Total: d("900.00")},
	}

	series := WealthSeries(nil, nil, nil, invoices, 2, now)
	require.Len(t, series, 2)

	// January only sees its own unpaid invoice; paid ones never count.
	assert.Equal(t, "400.00", series[0].Debt.StringFixed(2))
	assert.Equal(t, "-400.00", series[0].NetWorth.StringFixed(2))
	assert.Equal(t, "650.00", series[1].Debt.StringFixed(2))
}

func TestWealthSeries_GoalSavingsSnapshot(t *testing.T) {
	now := day("2025-02-28")
	goals := []models.FinancialGoal{
		{Name: "trip", TargetValue: d("5000.00"), CurrentValue: d("1200.00")},
		{Name: "car", TargetValue: d("30000.00"), CurrentValue: d("800.00")},
	}

	series := WealthSeries(nil, nil, goals, nil, 2, now)
	require.Len(t, series, 2)
	for _, point := range series {
		assert.Equal(t, "2000.00", point.GoalSavings.StringFixed(2))
	}
}
