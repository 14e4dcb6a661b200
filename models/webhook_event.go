package models

import "time"

// WebhookEvent stores processed gateway event ids so webhook replays are
// no-ops.
type WebhookEvent struct {
	EventID     string    `gorm:"primaryKey;size:128" json:"event_id"`
	EventType   string    `gorm:"size:64;index" json:"event_type"`
	ProcessedAt time.Time `json:"processed_at"`
}
