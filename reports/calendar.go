package reports

import (
	"sort"

	"github.com/shopspring/decimal"

	"fincontrol/api/models"
)

// InvoiceBill is an invoice joined with the card fields the calendar needs.
type InvoiceBill struct {
	models.Invoice
	CardName string
	DueDay   int
}

// BuildCalendar projects the month's bills onto calendar days: active
// recurring expenses on their (clamped) due day, unpaid card invoices on the
// card's due day, and dated expense transactions on the day they happened.
func BuildCalendar(
	month string,
	recurring []models.RecurringExpense,
	invoices []InvoiceBill,
	transactions []models.Transaction,
) (models.BillsCalendar, error) {
	bucket, err := ParseMonth(month)
	if err != nil {
		return models.BillsCalendar{}, err
	}

	calendar := models.BillsCalendar{
		Month:     month,
		Entries:   []models.CalendarEntry{},
		DayTotals: map[int]decimal.Decimal{},
	}

	add := func(entry models.CalendarEntry) {
		calendar.Entries = append(calendar.Entries, entry)
		calendar.DayTotals[entry.Day] = calendar.DayTotals[entry.Day].Add(entry.Value)
		calendar.Total = calendar.Total.Add(entry.Value)
	}

	for _, r := range recurring {
		if !r.Active || !coversMonth(r, bucket) {
			continue
		}
		add(models.CalendarEntry{
			Day:         ClampDay(r.DueDay, bucket),
			Source:      models.BillRecurring,
			Description: r.Description,
			Category:    r.Category,
			Value:       r.Value,
		})
	}

	for _, inv := range invoices {
		if inv.Month != month || inv.Status == models.InvoicePaid {
			continue
		}
		add(models.CalendarEntry{
			Day:         ClampDay(inv.DueDay, bucket),
			Source:      models.BillInvoice,
			Description: inv.CardName,
			Category:    "credit_card",
			Value:       inv.Total,
		})
	}

	for _, t := range transactions {
		if t.Type != models.TransactionExpense || MonthKey(t.Date) != month {
			continue
		}
		add(models.CalendarEntry{
			Day:         t.Date.Day(),
			Source:      models.BillTransaction,
			Description: t.Description,
			Category:    t.Category,
			Value:       t.Value,
		})
	}

	sort.SliceStable(calendar.Entries, func(i, j int) bool {
		return calendar.Entries[i].Day < calendar.Entries[j].Day
	})
	return calendar, nil
}
