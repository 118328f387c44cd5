package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreditCard struct {
	ID         uuid.UUID       `json:"id"`
	UserID     string          `json:"user_id"`
	Name       string          `json:"name"`
	Brand      string          `json:"brand"`
	LimitValue decimal.Decimal `json:"limit_value"`
	ClosingDay int             `json:"closing_day"`
	DueDay     int             `json:"due_day"`
	CreatedAt  time.Time       `json:"created_at"`
}

type InvoiceStatus string

const (
	InvoiceOpen   InvoiceStatus = "open"
	InvoiceClosed InvoiceStatus = "closed"
	InvoicePaid   InvoiceStatus = "paid"
)

// Invoice aggregates the purchases of one card billing cycle. Month is
// "YYYY-MM". Total is maintained transactionally with purchase writes.
type Invoice struct {
	ID        uuid.UUID       `json:"id"`
	CardID    uuid.UUID       `json:"card_id"`
	Month     string          `json:"month"`
	Status    InvoiceStatus   `json:"status"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
}

type Purchase struct {
	ID           uuid.UUID       `json:"id"`
	InvoiceID    uuid.UUID       `json:"invoice_id"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	Value        decimal.Decimal `json:"value"`
	Date         time.Time       `json:"date"`
	Installment  int             `json:"installment"`
	Installments int             `json:"installments"`
	CreatedAt    time.Time       `json:"created_at"`
}

// CardAnalytics summarizes a card's open invoice against its limit.
type CardAnalytics struct {
	CardID      uuid.UUID                  `json:"card_id"`
	Name        string                     `json:"name"`
	LimitValue  decimal.Decimal            `json:"limit_value"`
	OpenTotal   decimal.Decimal            `json:"open_total"`
	LimitUsed   float64                    `json:"limit_used_percent"`
	ByCategory  map[string]decimal.Decimal `json:"by_category"`
	InvoiceID   *uuid.UUID                 `json:"invoice_id,omitempty"`
	InvoiceOpen bool                       `json:"invoice_open"`
}
