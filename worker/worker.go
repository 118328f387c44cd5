package worker

import (
	"context"
	"encoding/json"
	"hash/fnv"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"fincontrol/api/logger"
	"fincontrol/api/models"
)

// Evaluator turns a transaction event into a budget alert. It returns
// (nil, nil) when the event does not cross any threshold.
type Evaluator func(event models.TransactionEvent) (*models.BudgetAlert, error)

// Notifier delivers an alert to the client (SSE broker, WebSocket).
type Notifier func(alert models.BudgetAlert)

// Pool evaluates budget alerts on a fixed set of workers. Events are
// partitioned by user key so one user's events are processed in order.
type Pool struct {
	workers    int
	partitions []chan []byte
	wg         sync.WaitGroup
	ctx        context.Context
	cancelFunc context.CancelFunc

	evaluate Evaluator
	notify   []Notifier

	// Metrics
	mu                 sync.RWMutex
	eventsProcessed    uint64
	alertsEmitted      uint64
	processingDuration uint64
	eventsDropped      uint64
}

func NewPool(workers int, evaluate Evaluator, notify ...Notifier) *Pool {
	ctx, cancel := context.WithCancel(context.Background())
	partitions := make([]chan []byte, workers)
	for i := range partitions {
		partitions[i] = make(chan []byte, 100) // Buffer size of 100 per partition
	}
	return &Pool{
		workers:    workers,
		partitions: partitions,
		ctx:        ctx,
		cancelFunc: cancel,
		evaluate:   evaluate,
		notify:     notify,
	}
}

func (p *Pool) Start() {
	logger.Get().Info("Starting alert worker pool", zap.Int("workers", p.workers))
	for i := range p.partitions {
		p.wg.Add(1)
		go p.worker(i)
	}
}

func (p *Pool) Stop() {
	logger.Get().Info("Stopping alert worker pool")
	p.cancelFunc()
	for _, ch := range p.partitions {
		close(ch)
	}
	p.wg.Wait()
}

// Submit hands a raw event payload to the partition owning key.
func (p *Pool) Submit(job []byte, key string) {
	h := fnv.New32a()
	h.Write([]byte(key))
	partition := int(h.Sum32()) % len(p.partitions)

	select {
	case p.partitions[partition] <- job:
		logger.Get().Debug("job submitted to alert pool", zap.Int("partition", partition))
	case <-p.ctx.Done():
		p.mu.Lock()
		p.eventsDropped++
		p.mu.Unlock()
		logger.Get().Warn("alert pool is stopped, job not submitted")
	}
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	logger.Get().Info("Alert worker started", zap.Int("worker_id", id))

	for {
		select {
		case job, ok := <-p.partitions[id]:
			if !ok {
				logger.Get().Info("Alert worker stopping", zap.Int("worker_id", id))
				return
			}
			p.process(id, job)

		case <-p.ctx.Done():
			logger.Get().Info("Alert worker stopping due to context cancellation",
				zap.Int("worker_id", id))
			return
		}
	}
}

func (p *Pool) process(id int, job []byte) {
	startTime := time.Now()

	var event models.TransactionEvent
	if err := json.Unmarshal(job, &event); err != nil {
		p.mu.Lock()
		p.eventsDropped++
		p.mu.Unlock()
		logger.Get().Error("Failed to unmarshal transaction event",
			zap.Int("worker_id", id),
			zap.Error(err))
		return
	}

	alert, err := p.evaluate(event)
	if err != nil {
		p.mu.Lock()
		p.eventsDropped++
		p.mu.Unlock()
		logger.Get().Error("Failed to evaluate budget alert",
			zap.Int("worker_id", id),
			zap.String("user_id", event.UserID),
			zap.Error(err))
		return
	}

	if alert != nil {
		for _, notify := range p.notify {
			notify(*alert)
		}
		p.mu.Lock()
		p.alertsEmitted++
		p.mu.Unlock()
		logger.Get().Info("budget alert emitted",
			zap.String("user_id", alert.UserID),
			zap.String("category", alert.Category),
			zap.Float64("percent", alert.Percent))
	}

	p.mu.Lock()
	p.eventsProcessed++
	p.processingDuration += uint64(time.Since(startTime).Milliseconds())
	p.mu.Unlock()
}

// MetricsHandler returns the current pool metrics as JSON.
func (p *Pool) MetricsHandler(w http.ResponseWriter, r *http.Request) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var avgProcessingTime float64
	if p.eventsProcessed > 0 {
		avgProcessingTime = float64(p.processingDuration) / float64(p.eventsProcessed)
	}

	metrics := map[string]any{
		"events_processed":  p.eventsProcessed,
		"alerts_emitted":    p.alertsEmitted,
		"events_dropped":    p.eventsDropped,
		"avg_processing_ms": avgProcessingTime,
		"active_workers":    p.workers,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(metrics)
}
