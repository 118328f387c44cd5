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
)

type TransactionRequest struct {
	Type        models.TransactionType `json:"type"`
	Category    string                 `json:"category"`
	Description string                 `json:"description"`
	Value       decimal.Decimal        `json:"value"`
	Date        string                 `json:"date"`
}

func (r *TransactionRequest) validate() (time.Time, string) {
	if r.Type != models.TransactionIncome && r.Type != models.TransactionExpense {
		return time.Time{}, "type must be income or expense"
	}
	if r.Category == "" {
		return time.Time{}, "category is required"
	}
	if !r.Value.IsPositive() {
		return time.Time{}, "value must be positive"
	}
	date, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return time.Time{}, "date must be YYYY-MM-DD"
	}
	return date, ""
}

func HandleCreateTransaction(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		return
	}

	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, msg := req.validate()
	if msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	t := models.Transaction{
		ID:          uuid.New(),
		UserID:      claims.Sub,
		Type:        req.Type,
		Category:    req.Category,
		Description: req.Description,
		Value:       req.Value,
		Date:        date,
	}
	if err := db.CreateTransaction(&t); err != nil {
		logger.Get().Error("failed to create transaction", zap.String("user_id", claims.Sub), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating transaction"})
		return
	}

	publishTransactionEvent(t)
	c.JSON(http.StatusCreated, t)
}

func HandleListTransactions(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		return
	}

	filter := db.TransactionFilter{
		Category: c.Query("category"),
		Type:     models.TransactionType(c.Query("type")),
	}
	if from := c.Query("from"); from != "" {
		date, err := time.Parse("2006-01-02", from)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from must be YYYY-MM-DD"})
			return
		}
		filter.From = date
	}
	if to := c.Query("to"); to != "" {
		date, err := time.Parse("2006-01-02", to)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "to must be YYYY-MM-DD"})
			return
		}
		filter.To = date
	}

	transactions, err := db.ListTransactions(claims.Sub, filter)
	if err != nil {
		logger.Get().Error("failed to list transactions", zap.String("user_id", claims.Sub), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing transactions"})
		return
	}
	c.JSON(http.StatusOK, transactions)
}

func HandleUpdateTransaction(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, msg := req.validate()
	if msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	t := models.Transaction{
		ID:          id,
		UserID:      claims.Sub,
		Type:        req.Type,
		Category:    req.Category,
		Description: req.Description,
		Value:       req.Value,
		Date:        date,
	}
	if err := db.UpdateTransaction(&t); err != nil {
		if err == db.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			return
		}
		logger.Get().Error("failed to update transaction", zap.String("user_id", claims.Sub), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating transaction"})
		return
	}

	publishTransactionEvent(t)
	c.JSON(http.StatusOK, t)
}

func HandleDeleteTransaction(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := db.DeleteTransaction(claims.Sub, id); err != nil {
		if err == db.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			return
		}
		logger.Get().Error("failed to delete transaction", zap.String("user_id", claims.Sub), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting transaction"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
