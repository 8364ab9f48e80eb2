package models

import "time"

// User represents the users table
type User struct {
	UserID       uint      `gorm:"primaryKey;column:user_id" json:"user_id"`
	Email        string    `gorm:"column:email;size:255;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;size:255" json:"-"`
	FullName     string    `gorm:"column:full_name;size:200" json:"full_name"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}
