package models

import "time"

type Customer struct {
	UUID      string    `json:"uuid" db:"uuid"`
	UserName  string    `json:"user_name" db:"user_name"`
	Email     string    `json:"email" db:"email"`
	Password  string    `json:"-" db:"password"` // bcrypt hash, never serialized
	FullName  string    `json:"full_name" db:"full_name"`
	Phone     string    `json:"phone" db:"phone"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type Token struct {
	Token        string    `json:"token" db:"token"`
	CustomerUUID string    `json:"customer_uuid" db:"customer_uuid"`
	ExpiresAt    time.Time `json:"expires_at" db:"expires_at"`
}

type RegisterRequest struct {
	UserName string `json:"user_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type ProfileUpdateRequest struct {
	UserName string `json:"user_name"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}
