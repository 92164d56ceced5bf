package models

import "time"

type Crop struct {
	ID             string    `json:"id" gorm:"primaryKey"`
	Name           string    `json:"name" gorm:"not null"`
	ScientificName string    `json:"scientificName"`
	Category       string    `json:"category"`
	IBGECode       string    `json:"ibgeCode"`
	Emoji          string    `json:"emoji"`
	CreatedAt      time.Time `json:"createdAt"`
}

type ManagementProtocol struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	Type        string    `json:"type" gorm:"not null"`
	CreatedAt   time.Time `json:"createdAt"`
}
