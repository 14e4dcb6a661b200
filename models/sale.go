package models

import "time"

// Sale is one revenue record. Rows are written by admins (manual entry) and
// by the payment webhook on successful payments.
type Sale struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Amount     float64   `gorm:"not null" json:"amount"`
	Source     string    `gorm:"index;size:32" json:"source"` // "stripe", "manual", "shop", ...
	CustomerID uint      `gorm:"index" json:"customer_id"`
	ProductID  uint      `gorm:"index" json:"product_id"`
	Quantity   int       `json:"quantity"`
	SoldAt     time.Time `gorm:"index" json:"sold_at"`
	CreatedAt  time.Time `json:"created_at"`
}
