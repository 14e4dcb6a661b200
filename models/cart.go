package models

import "time"

type Cart struct {
	ID        uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint       `gorm:"uniqueIndex" json:"user_id"` // one cart per user
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartItem references exactly one of Product or Gift. The pair
// (cart, product|gift) is the upsert key: adding the same item again
// increments Quantity instead of inserting a second row.
type CartItem struct {
	ID        uint  `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID    uint  `gorm:"index" json:"cart_id"`
	ProductID *uint `gorm:"index" json:"product_id,omitempty"`
	GiftID    *uint `gorm:"index" json:"gift_id,omitempty"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Gift    *Gift    `gorm:"foreignKey:GiftID" json:"gift,omitempty"`

	Quantity int       `gorm:"not null" json:"quantity"`
	AddedAt  time.Time `json:"added_at"`
}
