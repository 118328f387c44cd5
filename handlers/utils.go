package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"fincontrol/api/kafka"
	"fincontrol/api/logger"
	"fincontrol/api/models"
	"fincontrol/api/reports"
)

// timeNow is swapped out by tests that need a fixed clock.
var timeNow = time.Now

// getClaims pulls the authenticated claims out of the gin context, writing
// the 401 itself so handlers can just return.
func getClaims(c *gin.Context) (*models.AuthClaims, bool) {
	user, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return nil, false
	}

	claims, ok := user.(*models.AuthClaims)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user claims"})
		return nil, false
	}
	return claims, true
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

// publishTransactionEvent feeds the budget-alert pipeline. Failures are
// logged, never surfaced: alerts are advisory and the dashboard re-derives
// them from /api/budgets/status.
func publishTransactionEvent(t models.Transaction) {
	if kafka.EventProducer == nil {
		return
	}
	event := models.TransactionEvent{
		UserID:   t.UserID,
		Category: t.Category,
		Type:     t.Type,
		Value:    t.Value,
		Month:    reports.MonthKey(t.Date),
	}
	if err := kafka.ProduceTransactionEvent(event); err != nil {
		logger.Get().Error("failed to publish transaction event",
			zap.String("user_id", t.UserID),
			zap.Error(err))
	}
}
