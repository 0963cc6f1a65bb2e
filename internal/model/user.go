// Package model contains the database models used by the application
package model

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"size:30" json:"name"`
	LastName     string    `gorm:"size:30" json:"last_name"`
	Email        string    `gorm:"size:50;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	EmailConfirm bool      `gorm:"default:false" json:"email_confirm"`
	CreatedAt    time.Time `json:"created_at"`
}
