package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type FinancialGoal struct {
	ID           uuid.UUID       `json:"id"`
	UserID       string          `json:"user_id"`
	Name         string          `json:"name"`
	TargetValue  decimal.Decimal `json:"target_value"`
	CurrentValue decimal.Decimal `json:"current_value"`
	Deadline     *time.Time      `json:"deadline,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Achieved reports whether the goal has reached its target.
func (g FinancialGoal) Achieved() bool {
	return g.CurrentValue.GreaterThanOrEqual(g.TargetValue)
}
