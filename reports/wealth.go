package reports

import (
	"time"

	"github.com/shopspring/decimal"

	"fincontrol/api/models"
)

// WealthSeries derives the wealth evolution over the last `months` calendar
// months: the running cash balance from every transaction up to each month
// end, investments held by then, goal savings, minus unpaid invoice debt.
// Goal savings have no history, so the current snapshot is carried across
// the whole series.
func WealthSeries(
	transactions []models.Transaction,
	investments []models.Investment,
	goals []models.FinancialGoal,
	invoices []models.Invoice,
	months int,
	now time.Time,
) []models.WealthPoint {
	buckets := lastMonths(now, months)

	goalSavings := decimal.Zero
	for _, g := range goals {
		goalSavings = goalSavings.Add(g.CurrentValue)
	}

	series := make([]models.WealthPoint, 0, len(buckets))
	for _, b := range buckets {
		cutoff := endOfMonth(b)
		key := MonthKey(b)

		balance := decimal.Zero
		for _, t := range transactions {
			if !t.Date.After(cutoff) {
				balance = balance.Add(t.Signed())
			}
		}

		invested := decimal.Zero
		for _, inv := range investments {
			if !inv.Date.After(cutoff) {
				invested = invested.Add(inv.Value)
			}
		}

		debt := decimal.Zero
		for _, inv := range invoices {
			if inv.Status != models.InvoicePaid && inv.Month <= key {
				debt = debt.Add(inv.Total)
			}
		}

		series = append(series, models.WealthPoint{
			Month:       key,
			Balance:     balance,
			Investments: invested,
			GoalSavings: goalSavings,
			Debt:        debt,
			NetWorth:    balance.Add(invested).Add(goalSavings).Sub(debt),
		})
	}
	return series
}
