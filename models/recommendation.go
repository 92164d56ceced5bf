package models

import "time"

type Recommendation struct {
	ID            string     `json:"id" gorm:"primaryKey"`
	UserID        string     `json:"userId" gorm:"index;not null"`
	CropID        string     `json:"cropId" gorm:"not null"`
	ProtocolID    string     `json:"protocolId" gorm:"not null"`
	Title         string     `json:"title" gorm:"not null"`
	Description   string     `json:"description" gorm:"not null"`
	Category      string     `json:"category" gorm:"not null"`
	Status        string     `json:"status" gorm:"default:pending"`
	Priority      string     `json:"priority" gorm:"default:medium"`
	ScheduledDate *time.Time `json:"scheduledDate"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

type CreateRecommendationRequest struct {
	CropID        string     `json:"cropId" binding:"required"`
	ProtocolID    string     `json:"protocolId" binding:"required"`
	Title         string     `json:"title" binding:"required"`
	Description   string     `json:"description" binding:"required"`
	Category      string     `json:"category" binding:"required,oneof=soil_management crop_management pest_management"`
	Status        string     `json:"status" binding:"omitempty,oneof=active pending completed scheduled"`
	Priority      string     `json:"priority" binding:"omitempty,oneof=low medium high"`
	ScheduledDate *time.Time `json:"scheduledDate"`
}

type UpdateRecommendationRequest struct {
	Title         *string    `json:"title"`
	Description   *string    `json:"description"`
	Category      *string    `json:"category" binding:"omitempty,oneof=soil_management crop_management pest_management"`
	Status        *string    `json:"status" binding:"omitempty,oneof=active pending completed scheduled"`
	Priority      *string    `json:"priority" binding:"omitempty,oneof=low medium high"`
	ScheduledDate *time.Time `json:"scheduledDate"`
}
