package models

import "time"

type GeospatialAnalysis struct {
	ID              string    `json:"id" gorm:"primaryKey"`
	UserID          string    `json:"userId" gorm:"index;not null"`
	Latitude        *float64  `json:"latitude"`
	Longitude       *float64  `json:"longitude"`
	FileName        string    `json:"fileName"`
	FileType        string    `json:"fileType"`
	FileContent     string    `json:"fileContent"`
	AnalysisResults string    `json:"analysisResults"` // JSON string
	IsPremium       bool      `json:"isPremium" gorm:"default:true"`
	CreatedAt       time.Time `json:"createdAt"`
}

type CreateGeospatialRequest struct {
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	FileName    string   `json:"fileName"`
	FileType    string   `json:"fileType"`
	FileContent string   `json:"fileContent"`
}
