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

type GoalRequest struct {
	Name        string          `json:"name"`
	TargetValue decimal.Decimal `json:"target_value"`
	Deadline    string          `json:"deadline"`
}

func (r *GoalRequest) validate() (*time.Time, string) {
	if r.Name == "" {
		return nil, "name is required"
	}
	if !r.TargetValue.IsPositive() {
		return nil, "target_value must be positive"
	}
	if r.Deadline == "" {
		return nil, ""
	}
	deadline, err := time.Parse("2006-01-02", r.Deadline)
	if err != nil {
		return nil, "deadline must be YYYY-MM-DD"
	}
	return &deadline, ""
}

func HandleCreateGoal(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		return
	}

	var req GoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	deadline, msg := req.validate()
	if msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	g := models.FinancialGoal{
		ID:           uuid.New(),
		UserID:       claims.Sub,
		Name:         req.Name,
		TargetValue:  req.TargetValue,
		CurrentValue: decimal.Zero,
		Deadline:     deadline,
	}
	if err := db.CreateGoal(&g); err != nil {
		logger.Get().Error("failed to create goal", zap.String("user_id", claims.Sub), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating goal"})
		return
	}
	c.JSON(http.StatusCreated, g)
}

func HandleListGoals(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		return
	}

	goals, err := db.ListGoals(claims.Sub)
	if err != nil {
		logger.Get().Error("failed to list goals", zap.String("user_id", claims.Sub), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing goals"})
		return
	}
	c.JSON(http.StatusOK, goals)
}

func HandleUpdateGoal(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req GoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	deadline, msg := req.validate()
	if msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	g := models.FinancialGoal{
		ID:          id,
		UserID:      claims.Sub,
		Name:        req.Name,
		TargetValue: req.TargetValue,
		Deadline:    deadline,
	}
	if err := db.UpdateGoal(&g); err != nil {
		if err == db.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Goal not found"})
			return
		}
		logger.Get().Error("failed to update goal", zap.String("user_id", claims.Sub), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating goal"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// HandleGoalDeposit adds to a goal's saved amount. Deposits beyond the
// target are allowed; the response carries the achieved flag.
func HandleGoalDeposit(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Value decimal.Decimal `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Value.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "value must be positive"})
		return
	}

	g, err := db.DepositToGoal(claims.Sub, id, req.Value)
	if err != nil {
		if err == db.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Goal not found"})
			return
		}
		logger.Get().Error("failed to deposit to goal", zap.String("user_id", claims.Sub), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error depositing to goal"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"goal": g, "achieved": g.Achieved()})
}

func HandleDeleteGoal(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := db.DeleteGoal(claims.Sub, id); err != nil {
		if err == db.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Goal not found"})
			return
		}
		logger.Get().Error("failed to delete goal", zap.String("user_id", claims.Sub), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting goal"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
