package models

import "time"

type Expense struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	Category  string    `gorm:"index" json:"category"` // materials, shipping, rent, ...
	Amount    float64   `gorm:"not null" json:"amount"`
	Note      string    `json:"note"`
	SpentAt   time.Time `gorm:"index" json:"spent_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
