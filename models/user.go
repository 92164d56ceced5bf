package models

import "time"

type User struct {
	ID                 string    `json:"id" gorm:"primaryKey"`
	Username           string    `json:"username" gorm:"uniqueIndex;not null"`
	Email              string    `json:"email" gorm:"uniqueIndex;not null"`
	Password           string    `json:"-" gorm:"not null"` // Store hashed password
	FirstName          string    `json:"firstName"`
	LastName           string    `json:"lastName"`
	Role               string    `json:"role" gorm:"not null"`
	IsPremium          bool      `json:"isPremium" gorm:"default:false"`
	LinkedAgronomistID *string   `json:"linkedAgronomistId"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// PublicUser is the wire shape returned by auth endpoints (no password hash).
type PublicUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
	IsPremium bool   `json:"isPremium"`
}

func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		IsPremium: u.IsPremium,
	}
}

type RegisterRequest struct {
	Username        string `json:"username" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Role            string `json:"role" binding:"required,oneof=farmer agronomist"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}
