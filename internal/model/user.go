package model

import "time"

type User struct {
	ID           uint       `gorm:"primaryKey;column:id"`
	// Uniqueness is enforced case-insensitively by functional indexes on
	// LOWER(username) and LOWER(email), created during migration.
	Username     string     `gorm:"column:username;size:50;not null"`
	Email        string     `gorm:"column:email;size:100;not null"`
	PasswordHash string     `gorm:"column:password_hash;size:255;not null"`
	FirstName    string     `gorm:"column:first_name;size:50;not null"`
	LastName     string     `gorm:"column:last_name;size:50;not null"`
	Role         Role       `gorm:"column:role;size:20;not null;default:User"`
	IsActive     bool       `gorm:"column:is_active;not null;default:true"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at"`

	RefreshTokens []RefreshToken `gorm:"foreignKey:UserID"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
