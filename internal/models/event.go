package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EventType представляет тип события
type EventType string

const (
	EventTypeAppraisalCompleted EventType = "appraisal.completed"
)

// Event представляет событие, публикуемое в Kafka
type Event struct {
	ID        uuid.UUID   `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// AppraisalCompletedData представляет полезную нагрузку события об оценке
type AppraisalCompletedData struct {
	AppraisalID    uuid.UUID       `json:"appraisal_id"`
	AppraisedValue decimal.Decimal `json:"appraised_value"`
	CreatedAt      time.Time       `json:"created_at"`
}
