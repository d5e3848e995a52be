package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/Aniket-7751/POS-sub001/pkg/enums"
)

// OutboxEvent is a transactional outbox row consumed by downstream
// reporting and notification pipelines.
type OutboxEvent struct {
	ID            uuid.UUID                 `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	EventType     enums.OutboxEventType     `gorm:"column:event_type;not null" json:"event_type"`
	AggregateType enums.OutboxAggregateType `gorm:"column:aggregate_type;not null" json:"aggregate_type"`
	AggregateID   uuid.UUID                 `gorm:"column:aggregate_id;type:uuid;not null" json:"aggregate_id"`
	Payload       json.RawMessage           `gorm:"column:payload;type:jsonb;not null" json:"payload"`
	PublishedAt   *time.Time                `gorm:"column:published_at" json:"published_at,omitempty"`
	CreatedAt     time.Time                 `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
