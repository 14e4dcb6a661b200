package models

import "time"

type Subscriber struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// NewsletterLog records one batch send.
type NewsletterLog struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Subject    string    `gorm:"not null" json:"subject"`
	Body       string    `json:"body"`
	Recipients int       `json:"recipients"`
	Failed     int       `json:"failed"`
	SentAt     time.Time `json:"sent_at"`
}
