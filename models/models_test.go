package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransactionSigned(t *testing.T) {
	income := Transaction{Type: TransactionIncome, Value: decimal.RequireFromString("100.50")}
	assert.Equal(t, "100.50", income.Signed().StringFixed(2))

	expense := Transaction{Type: TransactionExpense, Value: decimal.RequireFromString("100.50")}
	assert.Equal(t, "-100.50", expense.Signed().StringFixed(2))
}

func TestGoalAchieved(t *testing.T) {
	goal := FinancialGoal{TargetValue: decimal.NewFromInt(5000), CurrentValue: decimal.NewFromInt(4999)}
	assert.False(t, goal.Achieved())

	goal.CurrentValue = decimal.NewFromInt(5000)
	assert.True(t, goal.Achieved())
}
