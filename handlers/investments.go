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

type InvestmentRequest struct {
	Name      string          `json:"name"`
	Type      string          `json:"type"`
	Value     decimal.Decimal `json:"value"`
	YieldRate decimal.Decimal `json:"yield_rate"`
	Date      string          `json:"date"`
}

func (r *InvestmentRequest) validate() (time.Time, string) {
	if r.Name == "" {
		return time.Time{}, "name is required"
	}
	if r.Type == "" {
		return time.Time{}, "type is required"
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

func HandleCreateInvestment(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		return
	}

	var req InvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, msg := req.validate()
	if msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	inv := models.Investment{
		ID:        uuid.New(),
		UserID:    claims.Sub,
		Name:      req.Name,
		Type:      req.Type,
		Value:     req.Value,
		YieldRate: req.YieldRate,
		Date:      date,
	}
	if err := db.CreateInvestment(&inv); err != nil {
		logger.Get().Error("failed to create investment", zap.String("user_id", claims.Sub), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating investment"})
		return
	}
	c.JSON(http.StatusCreated, inv)
}

func HandleListInvestments(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		return
	}

	investments, err := db.ListInvestments(claims.Sub)
	if err != nil {
		logger.Get().Error("failed to list investments", zap.String("user_id", claims.Sub), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing investments"})
		return
	}
	c.JSON(http.StatusOK, investments)
}

func HandleInvestmentSummary(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		return
	}

	investments, err := db.ListInvestments(claims.Sub)
	if err != nil {
		logger.Get().Error("failed to list investments", zap.String("user_id", claims.Sub), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing investments"})
		return
	}
	c.JSON(http.StatusOK, reports.InvestmentBreakdown(investments))
}

func HandleUpdateInvestment(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req InvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, msg := req.validate()
	if msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	inv := models.Investment{
		ID:        id,
		UserID:    claims.Sub,
		Name:      req.Name,
		Type:      req.Type,
		Value:     req.Value,
		YieldRate: req.YieldRate,
		Date:      date,
	}
	if err := db.UpdateInvestment(&inv); err != nil {
		if err == db.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Investment not found"})
			return
		}
		logger.Get().Error("failed to update investment", zap.String("user_id", claims.Sub), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating investment"})
		return
	}
	c.JSON(http.StatusOK, inv)
}

func HandleDeleteInvestment(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := db.DeleteInvestment(claims.Sub, id); err != nil {
		if err == db.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Investment not found"})
			return
		}
		logger.Get().Error("failed to delete investment", zap.String("user_id", claims.Sub), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting investment"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
