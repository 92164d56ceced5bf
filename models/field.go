package models

import "time"

// CropField ties monitoring readings back to the user that owns the land.
type CropField struct {
	ID                  string     `json:"id" gorm:"primaryKey"`
	UserID              string     `json:"userId" gorm:"index;not null"`
	Name                string     `json:"name" gorm:"not null"`
	CropID              string     `json:"cropId" gorm:"not null"`
	Area                float64    `json:"area" gorm:"not null"`
	Latitude            *float64   `json:"latitude"`
	Longitude           *float64   `json:"longitude"`
	PlantingDate        *time.Time `json:"plantingDate"`
	ExpectedHarvestDate *time.Time `json:"expectedHarvestDate"`
	GrowthStage         string     `json:"growthStage" gorm:"default:planted"`
	Status              string     `json:"status" gorm:"default:active"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

type CreateCropFieldRequest struct {
	Name                string     `json:"name" binding:"required"`
	CropID              string     `json:"cropId" binding:"required"`
	Area                float64    `json:"area" binding:"required,gt=0"`
	Latitude            *float64   `json:"latitude"`
	Longitude           *float64   `json:"longitude"`
	PlantingDate        *time.Time `json:"plantingDate"`
	ExpectedHarvestDate *time.Time `json:"expectedHarvestDate"`
	GrowthStage         string     `json:"growthStage" binding:"omitempty,oneof=planted germination vegetative flowering fruiting maturation harvest"`
	Status              string     `json:"status" binding:"omitempty,oneof=active inactive harvested"`
}

type UpdateCropFieldRequest struct {
	Name                *string    `json:"name"`
	Area                *float64   `json:"area" binding:"omitempty,gt=0"`
	Latitude            *float64   `json:"latitude"`
	Longitude           *float64   `json:"longitude"`
	PlantingDate        *time.Time `json:"plantingDate"`
	ExpectedHarvestDate *time.Time `json:"expectedHarvestDate"`
	GrowthStage         *string    `json:"growthStage" binding:"omitempty,oneof=planted germination vegetative flowering fruiting maturation harvest"`
	Status              *string    `json:"status" binding:"omitempty,oneof=active inactive harvested"`
}
