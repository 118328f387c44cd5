package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fincontrol/api/models"
)

func TestTransactionRequest_Validate(t *testing.T) {
	valid := TransactionRequest{Type: models.TransactionExpense, Category: "groceries", Value: d("50.00"), Date: "2025-02-10"}

	parsed, msg := valid.validate()
	require.Empty(t, msg)
	assert.Equal(t, 10, parsed.Day())

	tests := []struct {
		name string
		mod  func(r *TransactionRequest)
		msg  string
	}{
		{"unknown type", func(r *TransactionRequest) { r.Type = "transfer" }, "type must be income or expense"},
		{"missing category", func(r *TransactionRequest) { r.Category = "" }, "category is required"},
		{"zero value", func(r *TransactionRequest) { r.Value = d("0") }, "value must be positive"},
		{"negative value", func(r *TransactionRequest) { r.Value = d("-1") }, "value must be positive"},
		{"bad date", func(r *TransactionRequest) { r.Date = "10/02/2025" }, "date must be YYYY-MM-DD"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mod(&req)
			_, msg := req.validate()
			assert.Equal(t, tt.msg, msg)
		})
	}
}

func TestRecurringRequest_Validate(t *testing.T) {
	valid := RecurringRequest{Description: "rent", Category: "housing", Value: d("2000"), DueDay: 5, StartDate: "2025-01-01"}

	start, end, msg := valid.validate()
	require.Empty(t, msg)
	assert.Equal(t, 2025, start.Year())
	assert.Nil(t, end)

	withEnd := valid
	withEnd.EndDate = "2025-12-31"
	_, end, msg = withEnd.validate()
	require.Empty(t, msg)
	require.NotNil(t, end)
	assert.Equal(t, 31, end.Day())

	backwards := valid
	backwards.StartDate = "2025-06-01"
	backwards.EndDate = "2025-05-01"
	_, _, msg = backwards.validate()
	assert.Equal(t, "end_date must not be before start_date", msg)

	noStart := valid
	noStart.StartDate = ""
	_, _, msg = noStart.validate()
	assert.Equal(t, "start_date must be YYYY-MM-DD", msg)
}

func TestGoalRequest_Validate(t *testing.T) {
	valid := GoalRequest{Name: "trip", TargetValue: d("5000")}

	deadline, msg := valid.validate()
	require.Empty(t, msg)
	assert.Nil(t, deadline)

	withDeadline := valid
	withDeadline.Deadline = "2026-06-01"
	deadline, msg = withDeadline.validate()
	require.Empty(t, msg)
	require.NotNil(t, deadline)
	assert.Equal(t, 2026, deadline.Year())

	noTarget := valid
	noTarget.TargetValue = d("0")
	_, msg = noTarget.validate()
	assert.Equal(t, "target_value must be positive", msg)

	badDeadline := valid
	badDeadline.Deadline = "soon"
	_, msg = badDeadline.validate()
	assert.Equal(t, "deadline must be YYYY-MM-DD", msg)
}
