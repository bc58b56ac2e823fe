package models

import "time"

// User is a registered account. Passwords are stored as bcrypt hashes only.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:150;not null;uniqueIndex" json:"username"`
	Email        string    `gorm:"size:150;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"size:256;not null" json:"-"`
	IsAdmin      bool      `gorm:"default:false" json:"is_admin"`
	IsBlocked    bool      `gorm:"default:false" json:"is_blocked"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Posts        []Post    `json:"-"`
}
