package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"fincontrol/api/db"
	"fincontrol/api/handlers"
	"fincontrol/api/kafka"
	"fincontrol/api/logger"
	"fincontrol/api/middleware"
	"fincontrol/api/mongodb"
	"fincontrol/api/sse"
	"fincontrol/api/worker"
)

func init() {
	if err := godotenv.Load(); err != nil {
		// Running without a .env file is normal in production.
		os.Stderr.WriteString("Warning: .env file not found\n")
	}
}

func main() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := db.InitDB(); err != nil {
		logger.Get().Fatal("failed to initialize Postgres", zap.Error(err))
	}
	defer db.CloseDB()

	if err := mongodb.InitMongoDB(); err != nil {
		logger.Get().Fatal("failed to initialize MongoDB", zap.Error(err))
	}
	defer mongodb.CloseMongoDB()

	pool := worker.NewPool(4, handlers.EvaluateBudgetEvent, sse.PublishAlert, handlers.NotifyWebSocket)
	pool.Start()
	defer pool.Stop()

	// Budget alerts are advisory; the API stays up without Kafka.
	if err := kafka.InitProducer(); err != nil {
		logger.Get().Warn("Kafka unavailable, budget alerts disabled", zap.Error(err))
	} else if err := kafka.StartAlertConsumer(pool.Submit); err != nil {
		logger.Get().Warn("Kafka consumer unavailable, budget alerts disabled", zap.Error(err))
	}

	router := gin.Default()
	router.SetTrustedProxies([]string{"127.0.0.1", "localhost"})
	router.Use(middleware.CorsMiddleware)

	// Streaming endpoints authenticate via query token inside the handler.
	router.GET("/api/alerts/stream", handlers.HandleAlertStream)
	router.GET("/api/alerts/ws", handlers.HandleAlertWebSocket)
	router.GET("/metrics/worker", gin.WrapF(pool.MetricsHandler))

	api := router.Group("/api")
	api.Use(middleware.AuthMiddleware)
	{
		api.GET("/users/me", handlers.HandleGetMe)
		api.DELETE("/users/me", handlers.HandleDeleteMe)

		api.GET("/transactions", handlers.HandleListTransactions)
		api.POST("/transactions", handlers.HandleCreateTransaction)
		api.PUT("/transactions/:id", handlers.HandleUpdateTransaction)
		api.DELETE("/transactions/:id", handlers.HandleDeleteTransaction)

		api.GET("/budgets", handlers.HandleListBudgets)
		api.POST("/budgets", handlers.HandleCreateBudget)
		api.GET("/budgets/status", handlers.HandleBudgetStatus)
		api.PUT("/budgets/:id", handlers.HandleUpdateBudget)
		api.DELETE("/budgets/:id", handlers.HandleDeleteBudget)

		api.GET("/cards", handlers.HandleListCards)
		api.POST("/cards", handlers.HandleCreateCard)
		api.PUT("/cards/:id", handlers.HandleUpdateCard)
		api.DELETE("/cards/:id", handlers.HandleDeleteCard)
		api.GET("/cards/analytics", handlers.HandleCardAnalytics)
		api.GET("/cards/:id/invoices", handlers.HandleListInvoices)
		api.POST("/cards/:id/purchases", handlers.HandleAddPurchase)
		api.GET("/invoices/:id/purchases", handlers.HandleListPurchases)
		api.PATCH("/invoices/:id/close", handlers.HandleCloseInvoice)
		api.PATCH("/invoices/:id/pay", handlers.HandlePayInvoice)

		api.GET("/investments", handlers.HandleListInvestments)
		api.POST("/investments", handlers.HandleCreateInvestment)
		api.GET("/investments/summary", handlers.HandleInvestmentSummary)
		api.PUT("/investments/:id", handlers.HandleUpdateInvestment)
		api.DELETE("/investments/:id", handlers.HandleDeleteInvestment)

		api.GET("/recurring", handlers.HandleListRecurringExpenses)
		api.POST("/recurring", handlers.HandleCreateRecurringExpense)
		api.PUT("/recurring/:id", handlers.HandleUpdateRecurringExpense)
		api.DELETE("/recurring/:id", handlers.HandleDeleteRecurringExpense)

		api.GET("/goals", handlers.HandleListGoals)
		api.POST("/goals", handlers.HandleCreateGoal)
		api.PUT("/goals/:id", handlers.HandleUpdateGoal)
		api.POST("/goals/:id/deposit", handlers.HandleGoalDeposit)
		api.DELETE("/goals/:id", handlers.HandleDeleteGoal)

		api.GET("/analytics", handlers.HandleAnalytics)
		api.GET("/reports/wealth", handlers.HandleWealthEvolution)
		api.GET("/reports/calendar", handlers.HandleBillsCalendar)

		api.POST("/data/import", handlers.HandleImport)
		api.GET("/data/export", handlers.HandleExport)

		api.POST("/feedback", handlers.HandleCreateFeedback)
		api.GET("/feedback", handlers.HandleListFeedback)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger.Get().Info("server starting", zap.String("port", port))
	if err := router.Run(":" + port); err != nil {
		logger.Get().Fatal("failed to start server", zap.Error(err))
	}
}
