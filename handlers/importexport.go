package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fincontrol/api/db"
	"fincontrol/api/importer"
	"fincontrol/api/logger"
)

// HandleImport accepts a multipart .xlsx upload, validates every row and
// returns the grouped preview. With dry_run=true nothing is written;
// otherwise the valid rows are inserted in one transaction.
func HandleImport(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded file"})
		return
	}
	defer file.Close()

	preview, err := importer.ParseTransactions(file, claims.Sub)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if c.DefaultQuery("dry_run", "false") == "true" {
		c.JSON(http.StatusOK, preview)
		return
	}

	if len(preview.Valid) > 0 {
		if err := db.InsertTransactions(preview.Valid); err != nil {
			logger.Get().Error("failed to insert imported transactions",
				zap.String("user_id", claims.Sub),
				zap.Int("rows", len(preview.Valid)),
				zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error importing transactions"})
			return
		}
		for _, t := range preview.Valid {
			publishTransactionEvent(t)
		}
	}
	preview.Imported = len(preview.Valid)

	logger.Get().Info("spreadsheet imported",
		zap.String("user_id", claims.Sub),
		zap.Int("imported", preview.Imported),
		zap.Int("rejected", len(preview.Invalid)))
	c.JSON(http.StatusOK, preview)
}

// HandleExport streams the user's transactions as an .xlsx workbook.
func HandleExport(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		return
	}

	filter := db.TransactionFilter{}
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
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error exporting transactions"})
		return
	}

	filename := fmt.Sprintf("transactions-%s.xlsx", timeNow().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := importer.WriteTransactions(c.Writer, transactions); err != nil {
		logger.Get().Error("failed to write workbook", zap.String("user_id", claims.Sub), zap.Error(err))
	}
}
