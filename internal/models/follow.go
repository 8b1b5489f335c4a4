package models

import "time"

// Follow is a directed follow edge.
type Follow struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	FollowerID uint      `json:"follower_id" gorm:"index;uniqueIndex:idx_follower_followed"`
	FollowedID uint      `json:"followed_id" gorm:"index;uniqueIndex:idx_follower_followed"`
	CreatedAt  time.Time `json:"created_at" gorm:"index"`
}

// Block hides the blocked user's content from the blocker.
type Block struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	BlockerID uint      `json:"blocker_id" gorm:"index;uniqueIndex:idx_blocker_blocked"`
	BlockedID uint      `json:"blocked_id" gorm:"index;uniqueIndex:idx_blocker_blocked"`
	Reason    string    `json:"reason,omitempty" gorm:"size:500"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

// ConnectionView is one row of a followers or following list.
type ConnectionView struct {
	UserID      uint      `json:"userId"`
	DisplayName string    `json:"displayName"`
	FollowedAt  time.Time `json:"followedAt"`
}

type BlockedUserView struct {
	UserID      uint      `json:"userId"`
	DisplayName string    `json:"displayName"`
	Reason      string    `json:"reason,omitempty"`
	BlockedAt   time.Time `json:"blockedAt"`
}

type FollowStats struct {
	FollowingCount int64 `json:"followingCount"`
	FollowersCount int64 `json:"followersCount"`
}

type BlockRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}
