package models

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string `json:"name"`
	Email    string `gorm:"unique;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Role     Role   `gorm:"type:VARCHAR(10);default:'user'" json:"role"`

	// One-time login code sent by mail, valid until OTPExpiresAt.
	OTPCode      string    `json:"-"`
	OTPExpiresAt time.Time `json:"-"`

	Cart   Cart    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"cart"`
	Orders []Order `gorm:"foreignKey:UserID" json:"orders,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
