package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fincontrol/api/logger"
	"fincontrol/api/models"
	"fincontrol/api/mongodb"
)

type FeedbackRequest struct {
	Rating  int    `json:"rating"`
	Message string `json:"message"`
	Page    string `json:"page"`
}

func HandleCreateFeedback(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		return
	}

	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rating must be between 1 and 5"})
		return
	}

	feedback := &models.Feedback{
		UserID:    claims.Sub,
		Rating:    req.Rating,
		Message:   req.Message,
		Page:      req.Page,
		CreatedAt: timeNow().Unix(),
	}
	if err := mongodb.CreateFeedback(c, feedback); err != nil {
		logger.Get().Error("failed to save feedback", zap.String("user_id", claims.Sub), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving feedback"})
		return
	}
	c.JSON(http.StatusCreated, feedback)
}

func HandleListFeedback(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		return
	}

	feedback, err := mongodb.ListFeedbackByUserID(c, claims.Sub)
	if err != nil {
		logger.Get().Error("failed to list feedback", zap.String("user_id", claims.Sub), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing feedback"})
		return
	}
	c.JSON(http.StatusOK, feedback)
}
