package sse

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"fincontrol/api/logger"
	"fincontrol/api/models"
)

// ClientStream is one open SSE connection. Alerts holds JSON-encoded
// BudgetAlert payloads ready to be written as event data.
type ClientStream struct {
	Alerts chan string
	Done   chan struct{}
}

var (
	connections = make(map[string]*ClientStream)
	mu          sync.RWMutex
)

// Register creates and tracks a stream for the user, replacing any
// previous connection.
func Register(userID string) *ClientStream {
	stream := &ClientStream{
		Alerts: make(chan string, 16),
		Done:   make(chan struct{}),
	}
	mu.Lock()
	if old, ok := connections[userID]; ok {
		close(old.Done)
	}
	connections[userID] = stream
	mu.Unlock()
	return stream
}

// Unregister drops the stream if it is still the user's current one.
func Unregister(userID string, stream *ClientStream) {
	mu.Lock()
	if connections[userID] == stream {
		delete(connections, userID)
	}
	mu.Unlock()
}

// PublishAlert pushes a budget alert to the user's stream. A user with no
// open stream, or a full buffer, drops the alert; the dashboard re-derives
// alerts from /api/budgets/status on load.
func PublishAlert(alert models.BudgetAlert) {
	mu.RLock()
	stream, ok := connections[alert.UserID]
	mu.RUnlock()
	if !ok {
		logger.Get().Debug("no alert stream for user", zap.String("user_id", alert.UserID))
		return
	}

	payload, err := json.Marshal(alert)
	if err != nil {
		logger.Get().Error("failed to marshal budget alert", zap.Error(err))
		return
	}

	select {
	case stream.Alerts <- string(payload):
		logger.Get().Debug("alert sent",
			zap.String("user_id", alert.UserID),
			zap.String("category", alert.Category))
	default:
		logger.Get().Warn("alert stream full, dropping alert",
			zap.String("user_id", alert.UserID))
	}
}
