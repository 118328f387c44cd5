package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"fincontrol/api/db"
	"fincontrol/api/logger"
	"fincontrol/api/models"
	"fincontrol/api/reports"
)

type CardRequest struct {
	Name       string          `json:"name"`
	Brand      string          `json:"brand"`
	LimitValue decimal.Decimal `json:"limit_value"`
	ClosingDay int             `json:"closing_day"`
	DueDay     int             `json:"due_day"`
}

func (r *CardRequest) validate() string {
	if r.Name == "" {
		return "name is required"
	}
	if !r.LimitValue.IsPositive() {
		return "limit_value must be positive"
	}
	if r.ClosingDay < 1 || r.ClosingDay > 31 {
		return "closing_day must be between 1 and 31"
	}
	if r.DueDay < 1 || r.DueDay > 31 {
		return "due_day must be between 1 and 31"
	}
	return ""
}

func HandleCreateCard(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		return
	}

	var req CardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	card := models.CreditCard{
		ID:         uuid.New(),
		UserID:     claims.Sub,
		Name:       req.Name,
		Brand:      req.Brand,
		LimitValue: req.LimitValue,
		ClosingDay: req.ClosingDay,
		DueDay:     req.DueDay,
	}
	if err := db.CreateCard(&card); err != nil {
		logger.Get().Error("failed to create card", zap.String("user_id", claims.Sub), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating card"})
		return
	}
	c.JSON(http.StatusCreated, card)
}

func HandleListCards(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		return
	}

	cards, err := db.ListCards(claims.Sub)
	if err != nil {
		logger.Get().Error("failed to list cards", zap.String("user_id", claims.Sub), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing cards"})
		return
	}
	c.JSON(http.StatusOK, cards)
}

func HandleUpdateCard(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req CardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	card := models.CreditCard{
		ID:         id,
		UserID:     claims.Sub,
		Name:       req.Name,
		Brand:      req.Brand,
		LimitValue: req.LimitValue,
		ClosingDay: req.ClosingDay,
		DueDay:     req.DueDay,
	}
	if err := db.UpdateCard(&card); err != nil {
		if err == db.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
			return
		}
		logger.Get().Error("failed to update card", zap.String("user_id", claims.Sub), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating card"})
		return
	}
	c.JSON(http.StatusOK, card)
}

func HandleDeleteCard(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := db.DeleteCard(claims.Sub, id); err != nil {
		if err == db.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
			return
		}
		logger.Get().Error("failed to delete card", zap.String("user_id", claims.Sub), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting card"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func HandleListInvoices(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		return
	}
	cardID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	invoices, err := db.ListInvoicesByCard(claims.Sub, cardID)
	if err != nil {
		logger.Get().Error("failed to list invoices", zap.String("user_id", claims.Sub), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing invoices"})
		return
	}
	c.JSON(http.StatusOK, invoices)
}

func HandleListPurchases(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		return
	}
	invoiceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	purchases, err := db.ListPurchasesByInvoice(claims.Sub, invoiceID)
	if err != nil {
		logger.Get().Error("failed to list purchases", zap.String("user_id", claims.Sub), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing purchases"})
		return
	}
	c.JSON(http.StatusOK, purchases)
}

type PurchaseRequest struct {
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	Value        decimal.Decimal `json:"value"`
	Date         string          `json:"date"`
	Installment  int             `json:"installment"`
	Installments int             `json:"installments"`
}

func HandleAddPurchase(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		return
	}
	cardID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category is required"})
		return
	}
	if !req.Value.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "value must be positive"})
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}
	if req.Installments < 1 {
		req.Installment, req.Installments = 1, 1
	}

	card, err := db.GetCardByID(claims.Sub, cardID)
	if err != nil {
		if err == db.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
			return
		}
		logger.Get().Error("failed to get card", zap.String("user_id", claims.Sub), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error adding purchase"})
		return
	}

	purchase := models.Purchase{
		ID:           uuid.New(),
		Description:  req.Description,
		Category:     req.Category,
		Value:        req.Value,
		Date:         date,
		Installment:  req.Installment,
		Installments: req.Installments,
	}
	month := InvoiceMonth(date, card.ClosingDay)

	invoiceID, err := db.AddPurchase(claims.Sub, cardID, month, &purchase)
	if err != nil {
		switch err {
		case db.ErrNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
		case db.ErrConflict:
			c.JSON(http.StatusConflict, gin.H{"error": "Invoice for this cycle is no longer open"})
		default:
			logger.Get().Error("failed to add purchase", zap.String("user_id", claims.Sub), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error adding purchase"})
		}
		return
	}

	publishTransactionEvent(models.Transaction{
		UserID:   claims.Sub,
		Type:     models.TransactionExpense,
		Category: purchase.Category,
		Value:    purchase.Value,
		Date:     date,
	})
	c.JSON(http.StatusCreated, gin.H{"invoice_id": invoiceID, "purchase": purchase})
}

// InvoiceMonth decides which billing cycle a purchase belongs to: purchases
// on or after the closing day roll into the next month's invoice.
func InvoiceMonth(date time.Time, closingDay int) string {
	if date.Day() >= reports.ClampDay(closingDay, date) {
		date = time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location()).AddDate(0, 1, 0)
	}
	return reports.MonthKey(date)
}

func HandleCloseInvoice(c *gin.Context) {
	setInvoiceStatus(c, models.InvoiceClosed, "Only an open invoice can be closed")
}

func HandlePayInvoice(c *gin.Context) {
	setInvoiceStatus(c, models.InvoicePaid, "Only a closed invoice can be paid")
}

func setInvoiceStatus(c *gin.Context, next models.InvoiceStatus, conflictMsg string) {
	claims, ok := getClaims(c)
	if !ok {
		return
	}
	invoiceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := db.SetInvoiceStatus(claims.Sub, invoiceID, next); err != nil {
		switch err {
		case db.ErrNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		case db.ErrConflict:
			c.JSON(http.StatusConflict, gin.H{"error": conflictMsg})
		default:
			logger.Get().Error("failed to update invoice status", zap.String("user_id", claims.Sub), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating invoice"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "status": next})
}

// HandleCardAnalytics summarizes each card's open invoice: total, limit
// usage and category breakdown.
func HandleCardAnalytics(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		return
	}

	cards, err := db.ListCards(claims.Sub)
	if err != nil {
		logger.Get().Error("failed to list cards", zap.String("user_id", claims.Sub), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error computing card analytics"})
		return
	}

	analytics := make([]models.CardAnalytics, 0, len(cards))
	for _, card := range cards {
		entry := models.CardAnalytics{
			CardID:     card.ID,
			Name:       card.Name,
			LimitValue: card.LimitValue,
			ByCategory: map[string]decimal.Decimal{},
		}

		invoices, err := db.ListInvoicesByCard(claims.Sub, card.ID)
		if err != nil {
			logger.Get().Error("failed to list invoices", zap.String("user_id", claims.Sub), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error computing card analytics"})
			return
		}
		for _, inv := range invoices {
			if inv.Status != models.InvoiceOpen {
				continue
			}
			entry.OpenTotal = entry.OpenTotal.Add(inv.Total)
			entry.InvoiceOpen = true
			invoiceID := inv.ID
			entry.InvoiceID = &invoiceID

			purchases, err := db.ListPurchasesByInvoice(claims.Sub, inv.ID)
			if err != nil {
				logger.Get().Error("failed to list purchases", zap.String("user_id", claims.Sub), zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error computing card analytics"})
				return
			}
			for _, p := range purchases {
				entry.ByCategory[p.Category] = entry.ByCategory[p.Category].Add(p.Value)
			}
		}

		if card.LimitValue.IsPositive() {
			used, _ := entry.OpenTotal.Div(card.LimitValue).Mul(decimal.NewFromInt(100)).Round(2).Float64()
			entry.LimitUsed = used
		}
		analytics = append(analytics, entry)
	}
	c.JSON(http.StatusOK, analytics)
}
