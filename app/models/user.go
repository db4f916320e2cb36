package models

import "gorm.io/gorm"

// User is the primary user model. UID is the stable external identity
// carried in JWTs and API payloads; the numeric primary key never leaves
// the database layer.
type User struct {
	gorm.Model
	UID          string `gorm:"uniqueIndex;size:64;not null" json:"uid"`
	DisplayName  string `gorm:"size:255"                     json:"displayName"`
	Email        string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PhotoURL     string `gorm:"size:512"                     json:"photoURL,omitempty"`
	PasswordHash string `gorm:"size:255"                     json:"-"` // staff accounts only
	TokenBalance int64  `gorm:"not null;default:2000"        json:"tokenBalance"`
	Role         string `gorm:"size:50;default:user"         json:"role"`
}
