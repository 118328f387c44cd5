package models

import "github.com/shopspring/decimal"

// MonthlyAnalytics is one bucket of the analytics series. PercentDelta
// compares NetBalance against the previous month.
type MonthlyAnalytics struct {
	Month        string           `json:"month"`
	Income       decimal.Decimal  `json:"income"`
	Expense      decimal.Decimal  `json:"expense"`
	NetBalance   decimal.Decimal  `json:"net_balance"`
	PercentDelta float64          `json:"percent_delta"`
	ByCategory   []CategoryAmount `json:"by_category"`
}

type CategoryAmount struct {
	Category         string          `json:"category"`
	Amount           decimal.Decimal `json:"amount"`
	PercentOfExpense float64         `json:"percent_of_expense"`
}

// WealthPoint is one month of the wealth evolution series. Balance is the
// running cash balance, Debt the unpaid invoice total at month end.
type WealthPoint struct {
	Month       string          `json:"month"`
	Balance     decimal.Decimal `json:"balance"`
	Investments decimal.Decimal `json:"investments"`
	GoalSavings decimal.Decimal `json:"goal_savings"`
	Debt        decimal.Decimal `json:"debt"`
	NetWorth    decimal.Decimal `json:"net_worth"`
}

type BillSource string

const (
	BillRecurring   BillSource = "recurring"
	BillInvoice     BillSource = "invoice"
	BillTransaction BillSource = "transaction"
)

// CalendarEntry is a single projected bill on a calendar day.
type CalendarEntry struct {
	Day         int             `json:"day"`
	Source      BillSource      `json:"source"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Value       decimal.Decimal `json:"value"`
}

// BillsCalendar is the month projection returned by the calendar report.
type BillsCalendar struct {
	Month     string                  `json:"month"`
	Entries   []CalendarEntry         `json:"entries"`
	DayTotals map[int]decimal.Decimal `json:"day_totals"`
	Total     decimal.Decimal         `json:"total"`
}
