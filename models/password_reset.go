package models

import "time"

// PasswordResetToken backs the forgot-password flow. A token is single-use
// and expires ten minutes after creation.
type PasswordResetToken struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	Email     string     `json:"email" gorm:"size:255;not null;index"`
	Token     string     `json:"-" gorm:"size:64;uniqueIndex;not null"`
	Code      string     `json:"-" gorm:"size:6;not null"`
	ExpiresAt time.Time  `json:"expires_at" gorm:"not null"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// TableName specifies the table name for PasswordResetToken
func (PasswordResetToken) TableName() string {
	return "password_reset_tokens"
}

// Usable reports whether the token can still redeem a reset.
func (t *PasswordResetToken) Usable(now time.Time) bool {
	return t.UsedAt == nil && now.Before(t.ExpiresAt)
}
