package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User is owned by the account service; this service reads it and only writes
// the preference flags and the activity counter.
type User struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	DisplayName      string    `json:"display_name" gorm:"size:100"`
	Email            string    `json:"email" gorm:"uniqueIndex"`
	FirebaseUID      *string   `json:"firebase_uid,omitempty" gorm:"uniqueIndex"`
	IsAdmin          bool      `json:"is_admin"`
	NotifyOnLikes    bool      `json:"notify_on_likes"`
	NotifyOnComments bool      `json:"notify_on_comments"`
	NotifyOnFollow   bool      `json:"notify_on_follow"`
	NotifyOnShare    bool      `json:"notify_on_share"`
	ActivityCount    int       `json:"activity_count"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// NewUser returns a user with every notification preference enabled.
func NewUser(displayName, email string) *User {
	return &User{
		DisplayName:      displayName,
		Email:            email,
		NotifyOnLikes:    true,
		NotifyOnComments: true,
		NotifyOnFollow:   true,
		NotifyOnShare:    true,
	}
}

// UserCompact is the minimal user shape embedded in list responses.
type UserCompact struct {
	ID          uint   `json:"id"`
	DisplayName string `json:"display_name"`
}

func (u *User) ToCompact() UserCompact {
	return UserCompact{ID: u.ID, DisplayName: u.DisplayName}
}

// Preferences are the per-user notification switches.
type Preferences struct {
	NotifyOnLikes    bool `json:"notifyOnLikes"`
	NotifyOnComments bool `json:"notifyOnComments"`
	NotifyOnFollow   bool `json:"notifyOnFollow"`
	NotifyOnShare    bool `json:"notifyOnShare"`
}

func (u *User) Preferences() Preferences {
	return Preferences{
		NotifyOnLikes:    u.NotifyOnLikes,
		NotifyOnComments: u.NotifyOnComments,
		NotifyOnFollow:   u.NotifyOnFollow,
		NotifyOnShare:    u.NotifyOnShare,
	}
}

// UpdatePreferencesRequest only touches the flags that are present.
type UpdatePreferencesRequest struct {
	NotifyOnLikes    *bool `json:"notifyOnLikes"`
	NotifyOnComments *bool `json:"notifyOnComments"`
	NotifyOnFollow   *bool `json:"notifyOnFollow"`
	NotifyOnShare    *bool `json:"notifyOnShare"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
