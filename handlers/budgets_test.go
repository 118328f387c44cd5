package handlers

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"fincontrol/api/models"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestBuildBudgetStatus(t *testing.T) {
	budget := models.Budget{
		Category:       "groceries",
		LimitValue:     d("1000.00"),
		Month:          "2025-02",
		AlertThreshold: 80,
	}

	status := BuildBudgetStatus(budget, d("850.00"))
	assert.Equal(t, "850.00", status.Spent.StringFixed(2))
	assert.Equal(t, "150.00", status.Remaining.StringFixed(2))
	assert.Equal(t, float64(85), status.PercentUsed)
	assert.True(t, status.Alert)

	status = BuildBudgetStatus(budget, d("799.99"))
	assert.False(t, status.Alert)

	// At the threshold exactly the alert fires.
	status = BuildBudgetStatus(budget, d("800.00"))
	assert.True(t, status.Alert)
}

func TestBuildBudgetStatus_Overspent(t *testing.T) {
	budget := models.Budget{LimitValue: d("500.00"), AlertThreshold: 80}

	status := BuildBudgetStatus(budget, d("650.00"))
	assert.Equal(t, float64(130), status.PercentUsed)
	assert.Equal(t, "-150.00", status.Remaining.StringFixed(2))
	assert.True(t, status.Alert)
}

func TestBudgetRequest_Validate(t *testing.T) {
	valid := BudgetRequest{Category: "groceries", LimitValue: d("1000"), Month: "2025-02", AlertThreshold: 80}
	assert.Empty(t, valid.validate())

	tests := []struct {
		name string
		mod  func(r *BudgetRequest)
		msg  string
	}{
		{"missing category", func(r *BudgetRequest) { r.Category = "" }, "category is required"},
		{"zero limit", func(r *BudgetRequest) { r.LimitValue = decimal.Zero }, "limit_value must be positive"},
		{"negative limit", func(r *BudgetRequest) { r.LimitValue = d("-10") }, "limit_value must be positive"},
		{"bad month", func(r *BudgetRequest) { r.Month = "2025-13" }, "month must be YYYY-MM"},
		{"short month", func(r *BudgetRequest) { r.Month = "2025-2" }, "month must be YYYY-MM"},
		{"threshold over 100", func(r *BudgetRequest) { r.AlertThreshold = 101 }, "alert_threshold must be between 0 and 100"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mod(&req)
			assert.Equal(t, tt.msg, req.validate())
		})
	}
}
