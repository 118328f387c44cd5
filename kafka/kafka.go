package kafka

import (
	"encoding/json"
	"os"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"go.uber.org/zap"

	"fincontrol/api/logger"
	"fincontrol/api/models"
)

var (
	EventProducer *kafka.Producer
	EventTopic    string = "transaction_events"
	GroupID       string = "budget-alert-consumer"
)

func configMap() *kafka.ConfigMap {
	return &kafka.ConfigMap{
		"bootstrap.servers": os.Getenv("KAFKA_BOOTSTRAP_SERVERS"),
		"sasl.username":     os.Getenv("KAFKA_API_KEY"),
		"sasl.password":     os.Getenv("KAFKA_API_SECRET"),
		"security.protocol": "SASL_SSL",
		"sasl.mechanism":    "PLAIN",
	}
}

func InitProducer() error {
	var err error
	EventProducer, err = kafka.NewProducer(configMap())
	if err != nil {
		logger.Get().Error("failed to initialize Kafka producer",
			zap.String("bootstrap_servers", os.Getenv("KAFKA_BOOTSTRAP_SERVERS")),
			zap.Error(err))
		return err
	}

	logger.Get().Info("Kafka producer initialized successfully",
		zap.String("bootstrap_servers", os.Getenv("KAFKA_BOOTSTRAP_SERVERS")))
	return nil
}

// ProduceTransactionEvent publishes an event keyed by user so one user's
// events stay ordered within a partition. Delivery is fire-and-forget:
// budget alerts are advisory and re-derivable from /api/budgets/status.
func ProduceTransactionEvent(event models.TransactionEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := &kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &EventTopic, Partition: kafka.PartitionAny},
		Key:            []byte(event.UserID),
		Value:          payload,
	}

	if err := EventProducer.Produce(msg, nil); err != nil {
		logger.Get().Error("failed to produce transaction event",
			zap.String("topic", EventTopic),
			zap.Error(err))
		return err
	}

	logger.Get().Debug("transaction event produced",
		zap.String("topic", EventTopic),
		zap.String("user_id", event.UserID))
	return nil
}

// StartAlertConsumer subscribes to the event topic and feeds each message
// into the worker pool, keyed by user so a user's events are evaluated in
// order.
func StartAlertConsumer(submit func(job []byte, key string)) error {
	config := configMap()
	config.SetKey("session.timeout.ms", "45000")
	config.SetKey("group.id", GroupID)
	config.SetKey("auto.offset.reset", "latest")

	consumer, err := kafka.NewConsumer(config)
	if err != nil {
		logger.Get().Error("failed to create consumer",
			zap.String("bootstrap_servers", os.Getenv("KAFKA_BOOTSTRAP_SERVERS")),
			zap.Error(err))
		return err
	}

	if err := consumer.Subscribe(EventTopic, nil); err != nil {
		logger.Get().Error("failed to subscribe to topic",
			zap.String("topic", EventTopic),
			zap.Error(err))
		return err
	}

	logger.Get().Info("Kafka consumer started successfully",
		zap.String("topic", EventTopic),
		zap.String("group_id", GroupID))

	go func() {
		for {
			msg, err := consumer.ReadMessage(-1)
			if err != nil {
				logger.Get().Error("consumer error",
					zap.String("topic", EventTopic),
					zap.Error(err))
				continue
			}
			submit(msg.Value, string(msg.Key))
		}
	}()
	return nil
}
