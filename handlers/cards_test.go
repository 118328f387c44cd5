package handlers

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestInvoiceMonth(t *testing.T) {
	// Closing day 15: purchases before the 15th bill in the current month,
	// from the 15th on they roll into the next cycle.
	assert.Equal(t, "2025-03", InvoiceMonth(date("2025-03-14"), 15))
	assert.Equal(t, "2025-04", InvoiceMonth(date("2025-03-15"), 15))
	assert.Equal(t, "2025-04", InvoiceMonth(date("2025-03-31"), 15))
}

func TestInvoiceMonth_YearRollover(t *testing.T) {
	assert.Equal(t, "2026-01", InvoiceMonth(date("2025-12-20"), 15))
	assert.Equal(t, "2025-12", InvoiceMonth(date("2025-12-10"), 15))
}

func TestInvoiceMonth_ClosingDayClampedInShortMonth(t *testing.T) {
	// Closing day 31 clamps to Feb 28, so the 28th already rolls over.
	assert.Equal(t, "2025-03", InvoiceMonth(date("2025-02-28"), 31))
	assert.Equal(t, "2025-02", InvoiceMonth(date("2025-02-27"), 31))
}

func TestCardRequest_Validate(t *testing.T) {
	valid := CardRequest{Name: "Visa Gold", Brand: "visa", LimitValue: d("5000"), ClosingDay: 25, DueDay: 5}
	assert.Empty(t, valid.validate())

	tests := []struct {
		name string
		mod  func(r *CardRequest)
		msg  string
	}{
		{"missing name", func(r *CardRequest) { r.Name = "" }, "name is required"},
		{"zero limit", func(r *CardRequest) { r.LimitValue = decimal.Zero }, "limit_value must be positive"},
		{"closing day low", func(r *CardRequest) { r.ClosingDay = 0 }, "closing_day must be between 1 and 31"},
		{"closing day high", func(r *CardRequest) { r.ClosingDay = 32 }, "closing_day must be between 1 and 31"},
		{"due day out of range", func(r *CardRequest) { r.DueDay = 0 }, "due_day must be between 1 and 31"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mod(&req)
			assert.Equal(t, tt.msg, req.validate())
		})
	}
}
