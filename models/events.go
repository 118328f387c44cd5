package models

import "github.com/shopspring/decimal"

// TransactionEvent is published to Kafka after every expense-side write
// (transactions and card purchases) so budget alerts can be evaluated
// asynchronously. Month is "YYYY-MM".
type TransactionEvent struct {
	UserID   string          `json:"user_id"`
	Category string          `json:"category"`
	Type     TransactionType `json:"type"`
	Value    decimal.Decimal `json:"value"`
	Month    string          `json:"month"`
}

// BudgetAlert is pushed to the client when a budget crosses its threshold.
type BudgetAlert struct {
	UserID     string          `json:"user_id"`
	Category   string          `json:"category"`
	Month      string          `json:"month"`
	LimitValue decimal.Decimal `json:"limit_value"`
	Spent      decimal.Decimal `json:"spent"`
	Percent    float64         `json:"percent"`
}
