package models

import "time"

// Notification types
const (
	NotificationLike    = "like"
	NotificationComment = "comment"
	NotificationFollow  = "follow"
	NotificationShare   = "share"
)

// Notification is an in-app inbox entry, written alongside each push.
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Type        string    `json:"type" gorm:"size:30;index"`
	ActorID     uint      `json:"actor_id" gorm:"index"`
	RecipientID uint      `json:"recipient_id" gorm:"index"`
	TargetID    uint      `json:"target_id"`
	TargetType  string    `json:"target_type" gorm:"size:20"` // shared_article, comment, user
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	IsRead      bool      `json:"is_read" gorm:"index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}
