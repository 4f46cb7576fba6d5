package models

import "time"

// ApiToken stores an issued bearer token. Only a salted hash of the
// plaintext is kept; the prefix is a non-secret index used to avoid
// scanning every stored token on each request.
type ApiToken struct {
	ID          uint       `json:"id" gorm:"primarykey"`
	UserID      uint       `json:"user_id" gorm:"not null;index"`
	User        User       `json:"-" gorm:"foreignKey:UserID"`
	Name        string     `json:"name"`
	TokenPrefix string     `json:"token_prefix" gorm:"size:12;index;not null"`
	TokenHash   string     `json:"-" gorm:"not null"`
	LastUsedAt  *time.Time `json:"last_used_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
