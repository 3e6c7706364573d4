package models

import "time"

type UserRole string

const (
	RoleCustomer UserRole = "user"
	RoleAdmin    UserRole = "admin"
)

// Email служит логином.
type User struct {
	ID           string    `gorm:"primaryKey;size:36" bson:"_id" json:"id"`
	Email        string    `gorm:"uniqueIndex;size:255;not null" bson:"email" json:"email"`
	Username     string    `gorm:"size:50;not null" bson:"username" json:"username"`
	PasswordHash string    `gorm:"not null" bson:"password" json:"-"`
	Role         UserRole  `gorm:"type:varchar(20);not null" bson:"role" json:"role"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}
