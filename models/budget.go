package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Budget is a monthly spending limit for a category. Month is "YYYY-MM".
type Budget struct {
	ID             uuid.UUID       `json:"id"`
	UserID         string          `json:"user_id"`
	Category       string          `json:"category"`
	LimitValue     decimal.Decimal `json:"limit_value"`
	Month          string          `json:"month"`
	AlertThreshold int             `json:"alert_threshold"`
	CreatedAt      time.Time       `json:"created_at"`
}

// DefaultAlertThreshold is applied when a budget is created without one.
const DefaultAlertThreshold = 80

// BudgetStatus is a budget together with its consumption for the month.
type BudgetStatus struct {
	Budget
	Spent       decimal.Decimal `json:"spent"`
	Remaining   decimal.Decimal `json:"remaining"`
	PercentUsed float64         `json:"percent_used"`
	Alert       bool            `json:"alert"`
}
