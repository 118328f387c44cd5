package worker

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fincontrol/api/models"
)

type capture struct {
	mu     sync.Mutex
	alerts []models.BudgetAlert
}

func (c *capture) notify(alert models.BudgetAlert) {
	c.mu.Lock()
	c.alerts = append(c.alerts, alert)
	c.mu.Unlock()
}

func (c *capture) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.alerts)
}

func eventPayload(t *testing.T, userID, category, value string) []byte {
	t.Helper()
	payload, err := json.Marshal(models.TransactionEvent{
		UserID:   userID,
		Category: category,
		Type:     models.TransactionExpense,
		Value:    decimal.RequireFromString(value),
		Month:    "2025-02",
	})
	require.NoError(t, err)
	return payload
}

// thresholdEvaluator alerts whenever the event value reaches 100.
func thresholdEvaluator(event models.TransactionEvent) (*models.BudgetAlert, error) {
	if event.Value.LessThan(decimal.NewFromInt(100)) {
		return nil, nil
	}
	return &models.BudgetAlert{
		UserID:   event.UserID,
		Category: event.Category,
		Month:    event.Month,
		Spent:    event.Value,
		Percent:  100,
	}, nil
}

func TestPool_EmitsAlertOverThreshold(t *testing.T) {
	captured := &capture{}
	pool := NewPool(2, thresholdEvaluator, captured.notify)
	pool.Start()

	pool.Submit(eventPayload(t, "user-1", "groceries", "150.00"), "user-1")

	require.Eventually(t, func() bool {
		return captured.count() == 1
	}, time.Second, 10*time.Millisecond)
	pool.Stop()

	assert.Equal(t, "user-1", captured.alerts[0].UserID)
	assert.Equal(t, "groceries", captured.alerts[0].Category)
}

func TestPool_NoAlertUnderThreshold(t *testing.T) {
	captured := &capture{}
	pool := NewPool(2, thresholdEvaluator, captured.notify)
	pool.Start()

	pool.Submit(eventPayload(t, "user-1", "groceries", "20.00"), "user-1")

	require.Eventually(t, func() bool {
		return poolMetrics(t, pool)["events_processed"] == float64(1)
	}, time.Second, 10*time.Millisecond)
	pool.Stop()

	assert.Equal(t, 0, captured.count())
}

func poolMetrics(t *testing.T, pool *Pool) map[string]float64 {
	t.Helper()
	rec := httptest.NewRecorder()
	pool.MetricsHandler(rec, httptest.NewRequest(http.MethodGet, "/metrics/worker", nil))

	metrics := map[string]float64{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &metrics))
	return metrics
}

func TestPool_MalformedPayloadIsDropped(t *testing.T) {
	captured := &capture{}
	pool := NewPool(1, thresholdEvaluator, captured.notify)
	pool.Start()

	pool.Submit([]byte("not json"), "user-1")
	pool.Submit(eventPayload(t, "user-1", "groceries", "500.00"), "user-1")

	require.Eventually(t, func() bool {
		return captured.count() == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, float64(1), poolMetrics(t, pool)["events_dropped"])
	pool.Stop()
}

func TestPool_SameKeySamePartition(t *testing.T) {
	var mu sync.Mutex
	seen := []string{}
	evaluator := func(event models.TransactionEvent) (*models.BudgetAlert, error) {
		mu.Lock()
		seen = append(seen, event.Category)
		mu.Unlock()
		return nil, nil
	}

	pool := NewPool(4, evaluator)
	pool.Start()

	// All events share a key, so they must be processed in submit order.
	for i := 0; i < 20; i++ {
		pool.Submit(eventPayload(t, "user-1", fmt.Sprintf("cat-%02d", i), "10.00"), "user-1")
	}

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) == 20
	}, time.Second, 10*time.Millisecond)
	pool.Stop()

	for i, category := range seen {
		assert.Equal(t, fmt.Sprintf("cat-%02d", i), category)
	}
}

func TestPool_FansOutToAllNotifiers(t *testing.T) {
	first, second := &capture{}, &capture{}
	pool := NewPool(1, thresholdEvaluator, first.notify, second.notify)
	pool.Start()

	pool.Submit(eventPayload(t, "user-1", "groceries", "200.00"), "user-1")

	require.Eventually(t, func() bool {
		return first.count() == 1 && second.count() == 1
	}, time.Second, 10*time.Millisecond)
	pool.Stop()
}
