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

type RecurringRequest struct {
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Value       decimal.Decimal `json:"value"`
	DueDay      int             `json:"due_day"`
	Active      *bool           `json:"active"`
	StartDate   string          `json:"start_date"`
	EndDate     string          `json:"end_date"`
}

func (r *RecurringRequest) validate() (start time.Time, end *time.Time, msg string) {
	if r.Description == "" {
		return start, nil, "description is required"
	}
	if r.Category == "" {
		return start, nil, "category is required"
	}
	if !r.Value.IsPositive() {
		return start, nil, "value must be positive"
	}
	if r.DueDay < 1 || r.DueDay > 31 {
		return start, nil, "due_day must be between 1 and 31"
	}
	start, err := time.Parse("2006-01-02", r.StartDate)
	if err != nil {
		return start, nil, "start_date must be YYYY-MM-DD"
	}
	if r.EndDate != "" {
		e, err := time.Parse("2006-01-02", r.EndDate)
		if err != nil {
			return start, nil, "end_date must be YYYY-MM-DD"
		}
		if e.Before(start) {
			return start, nil, "end_date must not be before start_date"
		}
		end = &e
	}
	return start, end, ""
}

func HandleCreateRecurringExpense(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		return
	}

	var req RecurringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	start, end, msg := req.validate()
	if msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	r := models.RecurringExpense{
		ID:          uuid.New(),
		UserID:      claims.Sub,
		Description: req.Description,
		Category:    req.Category,
		Value:       req.Value,
		DueDay:      req.DueDay,
		Active:      true,
		StartDate:   start,
		EndDate:     end,
	}
	if req.Active != nil {
		r.Active = *req.Active
	}

	if err := db.CreateRecurringExpense(&r); err != nil {
		logger.Get().Error("failed to create recurring expense", zap.String("user_id", claims.Sub), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating recurring expense"})
		return
	}
	c.JSON(http.StatusCreated, r)
}

func HandleListRecurringExpenses(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		return
	}

	expenses, err := db.ListRecurringExpenses(claims.Sub, c.Query("active") == "true")
	if err != nil {
		logger.Get().Error("failed to list recurring expenses", zap.String("user_id", claims.Sub), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing recurring expenses"})
		return
	}
	c.JSON(http.StatusOK, expenses)
}

func HandleUpdateRecurringExpense(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req RecurringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	start, end, msg := req.validate()
	if msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	r := models.RecurringExpense{
		ID:          id,
		UserID:      claims.Sub,
		Description: req.Description,
		Category:    req.Category,
		Value:       req.Value,
		DueDay:      req.DueDay,
		Active:      true,
		StartDate:   start,
		EndDate:     end,
	}
	if req.Active != nil {
		r.Active = *req.Active
	}

	if err := db.UpdateRecurringExpense(&r); err != nil {
		if err == db.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recurring expense not found"})
			return
		}
		logger.Get().Error("failed to update recurring expense", zap.String("user_id", claims.Sub), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating recurring expense"})
		return
	}
	c.JSON(http.StatusOK, r)
}

func HandleDeleteRecurringExpense(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := db.DeleteRecurringExpense(claims.Sub, id); err != nil {
		if err == db.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recurring expense not found"})
			return
		}
		logger.Get().Error("failed to delete recurring expense", zap.String("user_id", claims.Sub), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting recurring expense"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
