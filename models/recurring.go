package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecurringExpense is a repeating expense definition. It is projected into
// the bills calendar and analytics, never materialized as transactions.
type RecurringExpense struct {
	ID          uuid.UUID       `json:"id"`
	UserID      string          `json:"user_id"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Value       decimal.Decimal `json:"value"`
	DueDay      int             `json:"due_day"`
	Active      bool            `json:"active"`
	StartDate   time.Time       `json:"start_date"`
	EndDate     *time.Time      `json:"end_date,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}
