package models

import "time"

type Alert struct {
	ID             string     `json:"id" gorm:"primaryKey"`
	UserID         string     `json:"userId" gorm:"index;not null"`
	FieldID        *string    `json:"fieldId"`
	Type           string     `json:"type" gorm:"not null"`
	Severity       string     `json:"severity" gorm:"not null"`
	Title          string     `json:"title" gorm:"not null"`
	Message        string     `json:"message" gorm:"not null"`
	IsRead         bool       `json:"isRead" gorm:"default:false"`
	IsResolved     bool       `json:"isResolved" gorm:"default:false"`
	ActionRequired string     `json:"actionRequired"`
	TriggerValue   *float64   `json:"triggerValue"`
	ThresholdValue *float64   `json:"thresholdValue"`
	CreatedAt      time.Time  `json:"createdAt"`
	ResolvedAt     *time.Time `json:"resolvedAt"`
}

type CreateAlertRequest struct {
	FieldID        *string  `json:"fieldId"`
	Type           string   `json:"type" binding:"required,oneof=weather pest disease soil irrigation harvest"`
	Severity       string   `json:"severity" binding:"required,oneof=low medium high critical"`
	Title          string   `json:"title" binding:"required"`
	Message        string   `json:"message" binding:"required"`
	ActionRequired string   `json:"actionRequired"`
	TriggerValue   *float64 `json:"triggerValue"`
	ThresholdValue *float64 `json:"thresholdValue"`
}

type AlertSubscription struct {
	ID                 string    `json:"id" gorm:"primaryKey"`
	UserID             string    `json:"userId" gorm:"index;not null"`
	AlertType          string    `json:"alertType" gorm:"not null"`
	FieldID            *string   `json:"fieldId"`
	IsEnabled          bool      `json:"isEnabled" gorm:"default:true"`
	NotificationMethod string    `json:"notificationMethod" gorm:"default:app"`
	ThresholdSettings  string    `json:"thresholdSettings"` // JSON string for custom thresholds
	CreatedAt          time.Time `json:"createdAt"`
}

type CreateSubscriptionRequest struct {
	AlertType          string  `json:"alertType" binding:"required"`
	FieldID            *string `json:"fieldId"`
	IsEnabled          *bool   `json:"isEnabled"`
	NotificationMethod string  `json:"notificationMethod" binding:"omitempty,oneof=app email sms"`
	ThresholdSettings  string  `json:"thresholdSettings"`
}

type UpdateSubscriptionRequest struct {
	AlertType          *string `json:"alertType"`
	FieldID            *string `json:"fieldId"`
	IsEnabled          *bool   `json:"isEnabled"`
	NotificationMethod *string `json:"notificationMethod" binding:"omitempty,oneof=app email sms"`
	ThresholdSettings  *string `json:"thresholdSettings"`
}
