package handlers

import (
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"fincontrol/api/db"
	"fincontrol/api/logger"
	"fincontrol/api/middleware"
	"fincontrol/api/models"
	"fincontrol/api/sse"
)

// EvaluateBudgetEvent is the worker pool's Evaluator: it loads the budget
// matching the event's category and month and reports an alert when the
// month's spending crosses the threshold. Income events and months without
// a budget evaluate to nothing.
func EvaluateBudgetEvent(event models.TransactionEvent) (*models.BudgetAlert, error) {
	if event.Type != models.TransactionExpense {
		return nil, nil
	}

	budget, err := db.GetBudgetByCategoryMonth(event.UserID, event.Category, event.Month)
	if err != nil {
		if err == db.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}

	spent, err := db.SumExpensesByCategoryMonth(event.UserID, event.Category, event.Month)
	if err != nil {
		return nil, err
	}

	status := BuildBudgetStatus(*budget, spent)
	if !status.Alert {
		return nil, nil
	}
	return &models.BudgetAlert{
		UserID:     budget.UserID,
		Category:   budget.Category,
		Month:      budget.Month,
		LimitValue: budget.LimitValue,
		Spent:      spent,
		Percent:    status.PercentUsed,
	}, nil
}

// authenticateStream validates the ?token= query parameter; EventSource and
// browser WebSocket clients cannot set an Authorization header.
func authenticateStream(c *gin.Context) (*models.AuthClaims, bool) {
	tokenString := c.DefaultQuery("token", "")
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid token"})
		return nil, false
	}

	claims, err := middleware.ParseToken(tokenString)
	if err != nil {
		logger.Get().Warn("rejected stream token", zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: " + err.Error()})
		return nil, false
	}
	return claims, true
}

// HandleAlertStream is the SSE feed of budget alerts for the caller.
func HandleAlertStream(c *gin.Context) {
	claims, ok := authenticateStream(c)
	if !ok {
		return
	}

	stream := sse.Register(claims.Sub)
	defer sse.Unregister(claims.Sub, stream)

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.String(http.StatusInternalServerError, "Streaming unsupported!")
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	logger.Get().Info("alert stream established", zap.String("user_id", claims.Sub))

	c.Stream(func(w io.Writer) bool {
		select {
		case alert, ok := <-stream.Alerts:
			if !ok {
				return false
			}
			c.Writer.Write([]byte("data: " + alert + "\n\n"))
			flusher.Flush()
			return true
		case <-c.Request.Context().Done():
			return false
		case <-stream.Done:
			return false
		}
	})
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // origin is enforced by the CORS middleware
	},
}

var (
	wsConnections = make(map[string]*websocket.Conn)
	wsMu          sync.Mutex
)

// HandleAlertWebSocket keeps one socket per user and pushes budget alerts
// to it. Reads are only used to detect the peer going away.
func HandleAlertWebSocket(c *gin.Context) {
	claims, ok := authenticateStream(c)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Get().Error("failed to upgrade connection", zap.Error(err))
		return
	}

	wsMu.Lock()
	if old, exists := wsConnections[claims.Sub]; exists {
		old.Close()
	}
	wsConnections[claims.Sub] = conn
	wsMu.Unlock()

	logger.Get().Info("alert websocket established",
		zap.String("user_id", claims.Sub),
		zap.String("remote", c.Request.RemoteAddr))

	go monitorConnection(claims.Sub, conn)
}

// NotifyWebSocket is a worker pool Notifier delivering alerts over the
// user's socket, if any.
func NotifyWebSocket(alert models.BudgetAlert) {
	wsMu.Lock()
	conn, ok := wsConnections[alert.UserID]
	wsMu.Unlock()
	if !ok {
		return
	}

	if err := conn.WriteJSON(alert); err != nil {
		logger.Get().Warn("failed to write alert to websocket",
			zap.String("user_id", alert.UserID),
			zap.Error(err))
	}
}

func monitorConnection(userID string, conn *websocket.Conn) {
	defer func() {
		conn.Close()
		wsMu.Lock()
		if wsConnections[userID] == conn {
			delete(wsConnections, userID)
		}
		wsMu.Unlock()
		logger.Get().Info("alert websocket closed", zap.String("user_id", userID))
	}()

	for {
		if err := conn.SetReadDeadline(time.Now().Add(60 * time.Second)); err != nil {
			return
		}
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Get().Warn("alert websocket error",
					zap.String("user_id", userID),
					zap.Error(err))
			}
			return
		}
	}
}
