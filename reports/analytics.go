package reports

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"fincontrol/api/models"
)

// MonthlySeries buckets transactions into the last `months` calendar months
// ending at now, one pass over the data. Active recurring expenses are
// projected into each bucket they cover; they never exist as transaction
// rows.
func MonthlySeries(transactions []models.Transaction, recurring []models.RecurringExpense, months int, now time.Time) []models.MonthlyAnalytics {
	buckets := lastMonths(now, months)

	type acc struct {
		income     decimal.Decimal
		expense    decimal.Decimal
		byCategory map[string]decimal.Decimal
	}
	byMonth := make(map[string]*acc, len(buckets))
	for _, b := range buckets {
		byMonth[MonthKey(b)] = &acc{byCategory: map[string]decimal.Decimal{}}
	}

	for _, t := range transactions {
		a, ok := byMonth[MonthKey(t.Date)]
		if !ok {
			continue
		}
		if t.Type == models.TransactionIncome {
			a.income = a.income.Add(t.Value)
			continue
		}
		a.expense = a.expense.Add(t.Value)
		a.byCategory[t.Category] = a.byCategory[t.Category].Add(t.Value)
	}

	for _, r := range recurring {
		if !r.Active {
			continue
		}
		for _, b := range buckets {
			if !coversMonth(r, b) {
				continue
			}
			a := byMonth[MonthKey(b)]
			a.expense = a.expense.Add(r.Value)
			a.byCategory[r.Category] = a.byCategory[r.Category].Add(r.Value)
		}
	}

	series := make([]models.MonthlyAnalytics, 0, len(buckets))
	prev := decimal.Zero
	for i, b := range buckets {
		a := byMonth[MonthKey(b)]
		net := a.income.Sub(a.expense)

		categories := make([]models.CategoryAmount, 0, len(a.byCategory))
		for category, amount := range a.byCategory {
			categories = append(categories, models.CategoryAmount{
				Category:         category,
				Amount:           amount,
				PercentOfExpense: percentOf(amount, a.expense),
			})
		}
		sort.Slice(categories, func(i, j int) bool {
			if !categories[i].Amount.Equal(categories[j].Amount) {
				return categories[i].Amount.GreaterThan(categories[j].Amount)
			}
			return categories[i].Category < categories[j].Category
		})

		point := models.MonthlyAnalytics{
			Month:      MonthKey(b),
			Income:     a.income,
			Expense:    a.expense,
			NetBalance: net,
			ByCategory: categories,
		}
		if i > 0 {
			point.PercentDelta = percentDelta(net, prev)
		}
		prev = net
		series = append(series, point)
	}
	return series
}

// coversMonth reports whether a recurring expense is in effect during the
// month starting at bucket.
func coversMonth(r models.RecurringExpense, bucket time.Time) bool {
	if r.StartDate.After(endOfMonth(bucket)) {
		return false
	}
	if r.EndDate != nil && r.EndDate.Before(bucket) {
		return false
	}
	return true
}

// InvestmentBreakdown groups holdings by type with percent allocation.
func InvestmentBreakdown(investments []models.Investment) models.InvestmentSummary {
	total := decimal.Zero
	byType := map[string]decimal.Decimal{}
	for _, inv := range investments {
		total = total.Add(inv.Value)
		byType[inv.Type] = byType[inv.Type].Add(inv.Value)
	}

	slices := make([]models.InvestmentSlice, 0, len(byType))
	for typ, value := range byType {
		slices = append(slices, models.InvestmentSlice{
			Type:    typ,
			Value:   value,
			Percent: percentOf(value, total),
		})
	}
	sort.Slice(slices, func(i, j int) bool {
		if !slices[i].Value.Equal(slices[j].Value) {
			return slices[i].Value.GreaterThan(slices[j].Value)
		}
		return slices[i].Type < slices[j].Type
	})

	return models.InvestmentSummary{Total: total, ByType: slices}
}
