package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"carprice-system/internal/config"
	"carprice-system/internal/logger"
	"carprice-system/internal/models"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
)

// Producer публикует события системы оценки в Kafka
type Producer struct {
	producer sarama.SyncProducer
	log      *logger.Logger
	topics   *config.Topics
}

// NewProducer создает продюсер Kafka. Если Kafka выключена в конфигурации,
// возвращается отключенный продюсер, который молча пропускает публикации.
func NewProducer(cfg *config.KafkaConfig, log *logger.Logger) (*Producer, error) {
	if cfg == nil || !cfg.Enabled {
		log.Info("Kafka producer disabled, appraisal events will not be published")
		return &Producer{log: log}, nil
	}

	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = 3
	saramaConfig.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(cfg.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	log.WithField("brokers", cfg.Brokers).Info("Successfully connected to Kafka")

	return &Producer{
		producer: producer,
		log:      log,
		topics:   &cfg.Topics,
	}, nil
}

// Enabled сообщает, публикует ли продюсер события
func (p *Producer) Enabled() bool {
	return p != nil && p.producer != nil
}

// PublishAppraisalCompleted публикует событие о выполненной оценке
func (p *Producer) PublishAppraisalCompleted(appraisal *models.Appraisal) error {
	if !p.Enabled() {
		return nil
	}

	event := models.Event{
		ID:        uuid.New(),
		Type:      models.EventTypeAppraisalCompleted,
		Timestamp: time.Now(),
		Data: models.AppraisalCompletedData{
			AppraisalID:    appraisal.ID,
			AppraisedValue: appraisal.AppraisedValue,
			CreatedAt:      appraisal.CreatedAt,
		},
	}

	return p.publishEvent(p.topics.Appraisals, event)
}

// publishEvent сериализует событие и отправляет его в указанный топик
func (p *Producer) publishEvent(topic string, event models.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(event.ID.String()),
		Value: sarama.ByteEncoder(data),
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to send message to topic %s: %w", topic, err)
	}

	p.log.WithFields(map[string]interface{}{
		"topic":     topic,
		"partition": partition,
		"offset":    offset,
		"event_id":  event.ID,
		"type":      string(event.Type),
	}).Debug("Event published to Kafka")

	return nil
}

// Close закрывает продюсер
func (p *Producer) Close() error {
	if p == nil || p.producer == nil {
		return nil
	}
	return p.producer.Close()
}
