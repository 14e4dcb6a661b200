package models

import "time"

// CardType is a printable card template customers order custom designs on.
type CardType struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"unique;not null" json:"name"`
	Description string    `json:"description"`
	Price       float64   `gorm:"not null" json:"price"` // per card
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CardOrder struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     uint      `gorm:"index;not null" json:"user_id"`
	CardTypeID uint      `gorm:"index;not null" json:"card_type_id"`
	CardType   *CardType `gorm:"foreignKey:CardTypeID" json:"card_type,omitempty"`

	// Customer-uploaded artwork, served from the uploads dir.
	DesignImage string `gorm:"not null" json:"design_image"`

	Quantity int     `gorm:"not null" json:"quantity"`
	Total    float64 `json:"total"` // card type price x quantity at creation

	CustomerName    string `json:"customer_name"`
	CustomerEmail   string `json:"customer_email"`
	CustomerPhone   string `json:"customer_phone"`
	CustomerAddress string `json:"customer_address"`

	Status OrderStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
