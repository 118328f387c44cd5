package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Investment struct {
	ID        uuid.UUID       `json:"id"`
	UserID    string          `json:"user_id"`
	Name      string          `json:"name"`
	Type      string          `json:"type"`
	Value     decimal.Decimal `json:"value"`
	YieldRate decimal.Decimal `json:"yield_rate"`
	Date      time.Time       `json:"date"`
	CreatedAt time.Time       `json:"created_at"`
}

// InvestmentSummary groups holdings by type with their share of the total.
type InvestmentSummary struct {
	Total  decimal.Decimal   `json:"total"`
	ByType []InvestmentSlice `json:"by_type"`
}

type InvestmentSlice struct {
	Type    string          `json:"type"`
	Value   decimal.Decimal `json:"value"`
	Percent float64         `json:"percent"`
}
