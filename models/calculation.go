package models

import "time"

// ProductivityCalculation records one yield estimate, including the external
// statistics value (or the configured fallback) it was based on.
type ProductivityCalculation struct {
	ID                  string    `json:"id" gorm:"primaryKey"`
	UserID              string    `json:"userId" gorm:"index;not null"`
	CropID              string    `json:"cropId" gorm:"not null"`
	Municipality        string    `json:"municipality" gorm:"not null"`
	State               string    `json:"state" gorm:"not null"`
	Area                float64   `json:"area" gorm:"not null"`
	IBGEYield           float64   `json:"ibgeYield"`
	EstimatedProduction float64   `json:"estimatedProduction"`
	EstimatedValue      float64   `json:"estimatedValue"`
	Year                int       `json:"year" gorm:"not null"`
	CreatedAt           time.Time `json:"createdAt"`
}

type CalculateProductivityRequest struct {
	Municipality string  `json:"municipality" binding:"required"`
	State        string  `json:"state" binding:"required"`
	Area         float64 `json:"area" binding:"required,gt=0"`
	CropID       string  `json:"cropId" binding:"required"`
	Year         int     `json:"year"`
}
