package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a registered account
type User struct {
	ID                   string     `gorm:"column:id;type:char(36);primaryKey" json:"id"`
	Email                string     `gorm:"column:email;uniqueIndex;size:191" json:"email"`
	PasswordHash         string     `gorm:"column:password_hash" json:"-"`
	Name                 string     `gorm:"column:name" json:"name"`
	Level                int        `gorm:"column:level;default:1" json:"level"`
	MembershipExpiration *time.Time `gorm:"column:membership_expiration" json:"membership_expiration,omitempty"`
	EmailVerified        bool       `gorm:"column:email_verified;default:false" json:"email_verified"`
	CreatedAt            time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// IsAdmin reports whether the user has admin privileges
func (u *User) IsAdmin() bool {
	return u.Level >= 10
}

// RegisterRequest is the signup payload
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
}

// LoginRequest is the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest carries a refresh token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UpdateUserRequest is the profile update payload
type UpdateUserRequest struct {
	Name *string `json:"name"`
}

// TokenPair is returned on login/refresh
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// UserResponse is the public user projection
type UserResponse struct {
	ID                   string     `json:"id"`
	Email                string     `json:"email"`
	Name                 string     `json:"name"`
	MembershipExpiration *time.Time `json:"membership_expiration,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
}

// ToResponse converts a User to its public projection
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:                   u.ID,
		Email:                u.Email,
		Name:                 u.Name,
		MembershipExpiration: u.MembershipExpiration,
		CreatedAt:            u.CreatedAt,
	}
}
