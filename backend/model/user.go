package model

import (
	"strings"
	"time"

	"healthmate/backend/common"
)

// User is an account that owns uploaded reports. Password holds the bcrypt
// hash and is never serialized.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36" bson:"_id"`
	Name      string    `json:"name" gorm:"size:100" bson:"name"`
	Email     string    `json:"email" gorm:"uniqueIndex;size:255;not null" bson:"email"`
	Password  string    `json:"-" gorm:"size:100;not null" bson:"password"`
	Role      int       `json:"role" gorm:"type:int;default:1" bson:"role"`
	Status    int       `json:"status" gorm:"type:int;default:1" bson:"status"`
	CreatedAt time.Time `json:"created_at" bson:"createdAt"`
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (user *User) IsEnabled() bool {
	return user.Status == common.UserStatusEnabled
}
