package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fincontrol/api/db"
	"fincontrol/api/logger"
	"fincontrol/api/models"
	"fincontrol/api/mongodb"
)

// HandleGetMe returns the caller's profile row, creating it on first login.
func HandleGetMe(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		return
	}

	if err := db.EnsureUser(claims.Sub, claims.Email); err != nil {
		logger.Get().Error("failed to ensure user", zap.String("user_id", claims.Sub), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading profile"})
		return
	}

	user, err := db.GetUserByID(claims.Sub)
	if err != nil {
		logger.Get().Error("failed to get user", zap.String("user_id", claims.Sub), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading profile"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// HandleDeleteMe removes the caller's data everywhere it lives. Partial
// failures are logged and reported per store; the user row is tombstoned
// last so a retry can finish the job.
func HandleDeleteMe(c *gin.Context) {
	logger.Get().Info("HandleDeleteMe called")

	claims, ok := getClaims(c)
	if !ok {
		return
	}

	failed := []string{}

	if err := db.DeleteUserDataByID(claims.Sub); err != nil {
		logger.Get().Error("Error deleting user data stored in Postgres", zap.Error(err), zap.String("user_id", claims.Sub))
		failed = append(failed, "postgres")
	} else {
		logger.Get().Info("Deleted user data from Postgres", zap.String("user_id", claims.Sub))
	}

	if err := mongodb.DeleteFeedbackByUserID(c, claims.Sub); err != nil {
		logger.Get().Error("Error deleting user feedback", zap.Error(err), zap.String("user_id", claims.Sub))
		failed = append(failed, "mongodb")
	} else {
		logger.Get().Info("Deleted user feedback from MongoDB", zap.String("user_id", claims.Sub))
	}

	if err := db.UpdateStatusByUserID(claims.Sub, models.UserStatusDeleted); err != nil {
		logger.Get().Error("Error updating user status", zap.Error(err), zap.String("user_id", claims.Sub))
		failed = append(failed, "status")
	} else {
		logger.Get().Info("Updated user status to deleted", zap.String("user_id", claims.Sub))
	}

	if len(failed) > 0 {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Deletion incomplete", "failed": failed})
		return
	}

	logger.Get().Info("HandleDeleteMe completed successfully", zap.String("user_id", claims.Sub))
	c.JSON(http.StatusOK, gin.H{"success": true})
}
