package models

import "time"

// MonitoringData is a single sensor reading for a field. Immutable once
// created; the store stamps Timestamp at ingestion.
type MonitoringData struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	FieldID    string    `json:"fieldId" gorm:"index;not null"`
	SensorType string    `json:"sensorType" gorm:"not null"`
	Value      float64   `json:"value" gorm:"not null"`
	Unit       string    `json:"unit" gorm:"not null"`
	Timestamp  time.Time `json:"timestamp" gorm:"index"`
	CreatedAt  time.Time `json:"createdAt"`
}

type CreateMonitoringDataRequest struct {
	FieldID    string  `json:"fieldId" binding:"required"`
	SensorType string  `json:"sensorType" binding:"required,oneof=soil_moisture soil_temperature air_temperature humidity ph nutrients weather"`
	Value      float64 `json:"value" binding:"required"`
	Unit       string  `json:"unit" binding:"required"`
}
