package models

import "time"

// DeviceToken is a push endpoint. At most one row per
// (user, device type, user agent) is active.
type DeviceToken struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"user_id" gorm:"index:idx_token_fingerprint"`
	Token      string    `json:"token" gorm:"size:512;uniqueIndex"`
	DeviceType string    `json:"device_type" gorm:"size:20;index:idx_token_fingerprint"`
	UserAgent  string    `json:"user_agent" gorm:"size:512;index:idx_token_fingerprint"`
	IsActive   bool      `json:"is_active" gorm:"index"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type RegisterTokenRequest struct {
	Token      string `json:"token" validate:"required,max=512"`
	UserID     uint   `json:"userId"`
	DeviceType string `json:"deviceType" validate:"omitempty,max=20"`
	UserAgent  string `json:"userAgent" validate:"max=512"`
}
