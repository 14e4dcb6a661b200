package models

import "time"

// Employer is the staff registry (the shop's own people, not customers).
type Employer struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"unique" json:"email"`
	Phone     string    `json:"phone"`
	Position  string    `json:"position"`
	Salary    float64   `json:"salary"`
	HiredAt   time.Time `json:"hired_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
