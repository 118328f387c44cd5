package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fincontrol/api/db"
	"fincontrol/api/logger"
	"fincontrol/api/models"
	"fincontrol/api/reports"
)

func monthsParam(c *gin.Context) (int, bool) {
	months, err := strconv.Atoi(c.DefaultQuery("months", "12"))
	if err != nil || months < 1 || months > 60 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "months must be between 1 and 60"})
		return 0, false
	}
	return months, true
}

// HandleAnalytics returns the per-month income/expense series with category
// breakdown for the last N months.
func HandleAnalytics(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		return
	}
	months, ok := monthsParam(c)
	if !ok {
		return
	}

	transactions, err := db.ListTransactions(claims.Sub, db.TransactionFilter{})
	if err != nil {
		logger.Get().Error("failed to list transactions", zap.String("user_id", claims.Sub), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error computing analytics"})
		return
	}
	recurring, err := db.ListRecurringExpenses(claims.Sub, true)
	if err != nil {
		logger.Get().Error("failed to list recurring expenses", zap.String("user_id", claims.Sub), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error computing analytics"})
		return
	}

	c.JSON(http.StatusOK, reports.MonthlySeries(transactions, recurring, months, timeNow()))
}

// HandleWealthEvolution returns the month-end net worth series.
func HandleWealthEvolution(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		return
	}
	months, ok := monthsParam(c)
	if !ok {
		return
	}

	transactions, err := db.ListTransactions(claims.Sub, db.TransactionFilter{})
	if err != nil {
		logger.Get().Error("failed to list transactions", zap.String("user_id", claims.Sub), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error computing wealth evolution"})
		return
	}
	investments, err := db.ListInvestments(claims.Sub)
	if err != nil {
		logger.Get().Error("failed to list investments", zap.String("user_id", claims.Sub), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error computing wealth evolution"})
		return
	}
	goals, err := db.ListGoals(claims.Sub)
	if err != nil {
		logger.Get().Error("failed to list goals", zap.String("user_id", claims.Sub), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error computing wealth evolution"})
		return
	}
	withCards, err := db.ListInvoicesForUser(claims.Sub)
	if err != nil {
		logger.Get().Error("failed to list invoices", zap.String("user_id", claims.Sub), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error computing wealth evolution"})
		return
	}
	invoices := make([]models.Invoice, 0, len(withCards))
	for _, iv := range withCards {
		invoices = append(invoices, iv.Invoice)
	}

	c.JSON(http.StatusOK, reports.WealthSeries(transactions, investments, goals, invoices, months, timeNow()))
}

// HandleBillsCalendar projects the month's bills onto calendar days.
func HandleBillsCalendar(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		return
	}

	month := c.DefaultQuery("month", reports.MonthKey(timeNow()))
	if !monthPattern.MatchString(month) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be YYYY-MM"})
		return
	}

	recurring, err := db.ListRecurringExpenses(claims.Sub, true)
	if err != nil {
		logger.Get().Error("failed to list recurring expenses", zap.String("user_id", claims.Sub), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error building calendar"})
		return
	}
	withCards, err := db.ListInvoicesForUser(claims.Sub)
	if err != nil {
		logger.Get().Error("failed to list invoices", zap.String("user_id", claims.Sub), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error building calendar"})
		return
	}
	bills := make([]reports.InvoiceBill, 0, len(withCards))
	for _, iv := range withCards {
		bills = append(bills, reports.InvoiceBill{Invoice: iv.Invoice, CardName: iv.CardName, DueDay: iv.DueDay})
	}
	transactions, err := db.ListTransactions(claims.Sub, db.TransactionFilter{})
	if err != nil {
		logger.Get().Error("failed to list transactions", zap.String("user_id", claims.Sub), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error building calendar"})
		return
	}

	calendar, err := reports.BuildCalendar(month, recurring, bills, transactions)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, calendar)
}
