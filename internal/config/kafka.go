package config

import (
	"time"

	"github.com/segmentio/kafka-go"
)

// KafkaBrokers returns the configured broker list. Empty means messaging
// is disabled.
func KafkaBrokers() []string {
	return GetListEnv("KAFKA_BROKERS")
}

func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
	}
}
