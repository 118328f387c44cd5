package reports

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fincontrol/api/models"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func tx(typ models.TransactionType, category, value, date string) models.Transaction {
	return models.Transaction{Type: typ, Category: category, Value: d(value), Date: day(date)}
}

func TestMonthlySeries_Buckets(t *testing.T) {
	now := day("2025-03-15")
	transactions := []models.Transaction{
		tx(models.TransactionIncome, "salary", "5000.00", "2025-01-05"),
		tx(models.TransactionExpense, "groceries", "800.00", "2025-01-10"),
		tx(models.TransactionIncome, "salary", "5000.00", "2025-02-05"),
		tx(models.TransactionExpense, "groceries", "900.00", "2025-02-12"),
		tx(models.TransactionExpense, "transport", "300.00", "2025-02-20"),
		// Outside the window, must be ignored.
		tx(models.TransactionExpense, "groceries", "999.00", "2024-11-01"),
	}

	series := MonthlySeries(transactions, nil, 3, now)
	require.Len(t, series, 3)

	assert.Equal(t, "2025-01", series[0].Month)
	assert.Equal(t, "5000.00", series[0].Income.StringFixed(2))
	assert.Equal(t, "800.00", series[0].Expense.StringFixed(2))
	assert.Equal(t, "4200.00", series[0].NetBalance.StringFixed(2))

	assert.Equal(t, "2025-02", series[1].Month)
	assert.Equal(t, "1200.00", series[1].Expense.StringFixed(2))
	assert.Equal(t, "3800.00", series[1].NetBalance.StringFixed(2))

	assert.Equal(t, "2025-03", series[2].Month)
	assert.True(t, series[2].Income.IsZero())
	assert.True(t, series[2].Expense.IsZero())
}

func TestMonthlySeries_PercentDelta(t *testing.T) {
	now := day("2025-02-01")
	transactions := []models.Transaction{
		tx(models.TransactionIncome, "salary", "1000.00", "2025-01-05"),
		tx(models.TransactionIncome, "salary", "1500.00", "2025-02-05"),
	}

	series := MonthlySeries(transactions, nil, 2, now)
	require.Len(t, series, 2)

	// First bucket has no predecessor.
	assert.Equal(t, float64(0), series[0].PercentDelta)
	// 1500 vs 1000 net.
	assert.InDelta(t, 50.0, series[1].PercentDelta, 0.001)
}

func TestMonthlySeries_DeltaAgainstZeroMonth(t *testing.T) {
	now := day("2025-02-01")
	transactions := []models.Transaction{
		tx(models.TransactionIncome, "salary", "100.00", "2025-02-05"),
	}

	series := MonthlySeries(transactions, nil, 2, now)
	require.Len(t, series, 2)
	assert.Equal(t, float64(100), series[1].PercentDelta)
}

func TestMonthlySeries_CategoryBreakdown(t *testing.T) {
	now := day("2025-01-31")
	transactions := []models.Transaction{
		tx(models.TransactionExpense, "groceries", "750.00", "2025-01-02"),
		tx(models.TransactionExpense, "transport", "250.00", "2025-01-03"),
	}

	series := MonthlySeries(transactions, nil, 1, now)
	require.Len(t, series, 1)
	require.Len(t, series[0].ByCategory, 2)

	// Sorted by amount, largest first.
	assert.Equal(t, "groceries", series[0].ByCategory[0].Category)
	assert.InDelta(t, 75.0, series[0].ByCategory[0].PercentOfExpense, 0.001)
	assert.Equal(t, "transport", series[0].ByCategory[1].Category)
	assert.InDelta(t, 25.0, series[0].ByCategory[1].PercentOfExpense, 0.001)
}

func TestMonthlySeries_ProjectsRecurring(t *testing.T) {
	now := day("2025-02-01")
	recurring := []models.RecurringExpense{
		{Description: "rent", Category: "housing", Value: d("2000.00"), DueDay: 5, Active: true, StartDate: day("2024-06-01")},
		{Description: "old gym", Category: "health", Value: d("100.00"), DueDay: 10, Active: true,
			StartDate: day("2024-01-01"), EndDate: ptr(day("2024-12-31"))},
		{Description: "paused", Category: "other", Value: d("50.00"), DueDay: 1, Active: false, StartDate: day("2024-01-01")},
	}

	series := MonthlySeries(nil, recurring, 2, now)
	require.Len(t, series, 2)

	// Only the rent survives the window: the gym ended in 2024, the other is inactive.
	assert.Equal(t, "2000.00", series[0].Expense.StringFixed(2))
	assert.Equal(t, "2000.00", series[1].Expense.StringFixed(2))
	require.Len(t, series[0].ByCategory, 1)
	assert.Equal(t, "housing", series[0].ByCategory[0].Category)
}

func ptr(t time.Time) *time.Time { return &t }

func TestInvestmentBreakdown(t *testing.T) {
	investments := []models.Investment{
		{Type: "stocks", Value: d("6000.00")},
		{Type: "bonds", Value: d("3000.00")},
		{Type: "stocks", Value: d("1000.00")},
	}

	summary := InvestmentBreakdown(investments)
	assert.Equal(t, "10000.00", summary.Total.StringFixed(2))
	require.Len(t, summary.ByType, 2)
	assert.Equal(t, "stocks", summary.ByType[0].Type)
	assert.InDelta(t, 70.0, summary.ByType[0].Percent, 0.001)
	assert.Equal(t, "bonds", summary.ByType[1].Type)
	assert.InDelta(t, 30.0, summary.ByType[1].Percent, 0.001)
}

func TestInvestmentBreakdown_Empty(t *testing.T) {
	summary := InvestmentBreakdown(nil)
	assert.True(t, summary.Total.IsZero())
	assert.Empty(t, summary.ByType)
}
