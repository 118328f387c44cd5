package handlers

import (
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"fincontrol/api/db"
	"fincontrol/api/logger"
	"fincontrol/api/models"
	"fincontrol/api/reports"
)

var monthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

type BudgetRequest struct {
	Category       string          `json:"category"`
	LimitValue     decimal.Decimal `json:"limit_value"`
	Month          string          `json:"month"`
	AlertThreshold int             `json:"alert_threshold"`
}

func (r *BudgetRequest) validate() string {
	if r.Category == "" {
		return "category is required"
	}
	if !r.LimitValue.IsPositive() {
		return "limit_value must be positive"
	}
	if !monthPattern.MatchString(r.Month) {
		return "month must be YYYY-MM"
	}
	if r.AlertThreshold < 0 || r.AlertThreshold > 100 {
		return "alert_threshold must be between 0 and 100"
	}
	return ""
}

func HandleCreateBudget(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		return
	}

	var req BudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	b := models.Budget{
		ID:             uuid.New(),
		UserID:         claims.Sub,
		Category:       req.Category,
		LimitValue:     req.LimitValue,
		Month:          req.Month,
		AlertThreshold: req.AlertThreshold,
	}
	if b.AlertThreshold == 0 {
		b.AlertThreshold = models.DefaultAlertThreshold
	}

	if err := db.CreateBudget(&b); err != nil {
		if err == db.ErrConflict {
			c.JSON(http.StatusConflict, gin.H{"error": "A budget for this category and month already exists"})
			return
		}
		logger.Get().Error("failed to create budget", zap.String("user_id", claims.Sub), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating budget"})
		return
	}
	c.JSON(http.StatusCreated, b)
}

func HandleListBudgets(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		return
	}

	month := c.Query("month")
	if month != "" && !monthPattern.MatchString(month) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be YYYY-MM"})
		return
	}

	budgets, err := db.ListBudgets(claims.Sub, month)
	if err != nil {
		logger.Get().Error("failed to list budgets", zap.String("user_id", claims.Sub), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing budgets"})
		return
	}
	c.JSON(http.StatusOK, budgets)
}

// HandleBudgetStatus returns every budget of the month with its spent
// amount, remaining value and alert flag.
func HandleBudgetStatus(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		return
	}

	month := c.DefaultQuery("month", reports.MonthKey(timeNow()))
	if !monthPattern.MatchString(month) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be YYYY-MM"})
		return
	}

	budgets, err := db.ListBudgets(claims.Sub, month)
	if err != nil {
		logger.Get().Error("failed to list budgets", zap.String("user_id", claims.Sub), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing budgets"})
		return
	}

	statuses := make([]models.BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		spent, err := db.SumExpensesByCategoryMonth(claims.Sub, b.Category, b.Month)
		if err != nil {
			logger.Get().Error("failed to sum expenses", zap.String("user_id", claims.Sub), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error computing budget status"})
			return
		}
		statuses = append(statuses, BuildBudgetStatus(b, spent))
	}
	c.JSON(http.StatusOK, statuses)
}

// BuildBudgetStatus derives consumption numbers for one budget. Shared with
// the alert worker so the threshold math cannot drift between the two paths.
func BuildBudgetStatus(b models.Budget, spent decimal.Decimal) models.BudgetStatus {
	percent, _ := spent.Div(b.LimitValue).Mul(decimal.NewFromInt(100)).Round(2).Float64()
	return models.BudgetStatus{
		Budget:      b,
		Spent:       spent,
		Remaining:   b.LimitValue.Sub(spent),
		PercentUsed: percent,
		Alert:       percent >= float64(b.AlertThreshold),
	}
}

func HandleUpdateBudget(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		LimitValue     decimal.Decimal `json:"limit_value"`
		AlertThreshold int             `json:"alert_threshold"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.LimitValue.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit_value must be positive"})
		return
	}
	if req.AlertThreshold < 0 || req.AlertThreshold > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "alert_threshold must be between 0 and 100"})
		return
	}
	if req.AlertThreshold == 0 {
		req.AlertThreshold = models.DefaultAlertThreshold
	}

	b := models.Budget{ID: id, UserID: claims.Sub, LimitValue: req.LimitValue, AlertThreshold: req.AlertThreshold}
	if err := db.UpdateBudget(&b); err != nil {
		if err == db.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Budget not found"})
			return
		}
		logger.Get().Error("failed to update budget", zap.String("user_id", claims.Sub), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating budget"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func HandleDeleteBudget(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := db.DeleteBudget(claims.Sub, id); err != nil {
		if err == db.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Budget not found"})
			return
		}
		logger.Get().Error("failed to delete budget", zap.String("user_id", claims.Sub), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting budget"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
