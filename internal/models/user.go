package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User is a reference to an identity owned by the authentication subsystem.
type User struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Username    string    `json:"username" gorm:"size:150;uniqueIndex;not null"`
	Name        string    `json:"name" gorm:"size:150"`
	Email       string    `json:"email,omitempty" gorm:"size:254"`
	FirebaseUID *string   `json:"-" gorm:"size:128;uniqueIndex"`
	CreatedAt   time.Time `json:"created_at"`
}

// UserCompact is the author block embedded in post listings
type UserCompact struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

func (u *User) ToCompact() UserCompact {
	return UserCompact{ID: u.ID, Username: u.Username, Name: u.Name}
}

// FirebaseLoginRequest provisions the local user on first login.
type FirebaseLoginRequest struct {
	Username string `json:"username" validate:"omitempty,min=3,max=150,alphanum"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
