package model

import "time"

// RefreshToken is an opaque bearer lookup key. Tokens are never deleted,
// rotation and logout only flip is_revoked.
type RefreshToken struct {
	ID        uint      `gorm:"primaryKey;column:id"`
	Token     string    `gorm:"column:token;size:255;uniqueIndex;not null"`
	UserID    uint      `gorm:"column:user_id;index;not null"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null"`
	IsRevoked bool      `gorm:"column:is_revoked;not null;default:false"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

// Expired reports whether the token is past its expiry. The boundary instant
// itself counts as expired.
func (t *RefreshToken) Expired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}

// Usable reports whether the token can still be exchanged.
func (t *RefreshToken) Usable(now time.Time) bool {
	return !t.IsRevoked && !t.Expired(now)
}
