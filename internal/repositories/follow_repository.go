package repositories

import (
	"context"
	"fmt"

	"github.com/anonto42/newsroom-social/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowRepository is the follow half of the social graph.
type FollowRepository interface {
	Follow(ctx context.Context, followerID, followedID uint) (models.FollowResult, error)
	Unfollow(ctx context.Context, followerID, followedID uint) (bool, error)
	IsFollowing(ctx context.Context, followerID, followedID uint) (bool, error)
	GetFollowers(ctx context.Context, userID uint) ([]models.ConnectionView, error)
	GetFollowing(ctx context.Context, userID uint) ([]models.ConnectionView, error)
	GetFollowerIDs(ctx context.Context, userID uint) ([]uint, error)
	GetFollowingIDs(ctx context.Context, userID uint) ([]uint, error)
	GetFollowStats(ctx context.Context, userID uint) (models.FollowStats, error)
}

type GormFollowRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) *GormFollowRepository {
	return &GormFollowRepository{db: db}
}

// Follow inserts the edge unless it already exists. The insert is a single
// conditional statement so concurrent follows leave exactly one row.
func (r *GormFollowRepository) Follow(ctx context.Context, followerID, followedID uint) (models.FollowResult, error) {
	if followerID == followedID {
		return models.FollowSelfReference, nil
	}

	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Follow{FollowerID: followerID, FollowedID: followedID})
	if res.Error != nil {
		return 0, fmt.Errorf("follow %d -> %d: %w", followerID, followedID, res.Error)
	}
	if res.RowsAffected == 0 {
		return models.FollowAlreadyFollowing, nil
	}
	return models.FollowCreated, nil
}

func (r *GormFollowRepository) Unfollow(ctx context.Context, followerID, followedID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&models.Follow{})
	if res.Error != nil {
		return false, fmt.Errorf("unfollow %d -> %d: %w", followerID, followedID, res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *GormFollowRepository) IsFollowing(ctx context.Context, followerID, followedID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error
	return count > 0, err
}

// GetFollowers lists the users following userID, newest first.
func (r *GormFollowRepository) GetFollowers(ctx context.Context, userID uint) ([]models.ConnectionView, error) {
	return r.connections(ctx, "follower_id", "followed_id", userID)
}

// GetFollowing lists the users userID follows, newest first.
func (r *GormFollowRepository) GetFollowing(ctx context.Context, userID uint) ([]models.ConnectionView, error) {
	return r.connections(ctx, "followed_id", "follower_id", userID)
}

func (r *GormFollowRepository) connections(ctx context.Context, joinCol, whereCol string, userID uint) ([]models.ConnectionView, error) {
	views := []models.ConnectionView{}
	err := r.db.WithContext(ctx).Table("follows").
		Select("users.id AS user_id, users.display_name AS display_name, follows.created_at AS followed_at").
		Joins("JOIN users ON users.id = follows." + joinCol).
		Where("follows."+whereCol+" = ?", userID).
		Order("follows.created_at DESC, follows.id DESC").
		Scan(&views).Error
	if err != nil {
		return nil, fmt.Errorf("list connections of user %d: %w", userID, err)
	}
	return views, nil
}

func (r *GormFollowRepository) GetFollowerIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("followed_id = ?", userID).
		Order("id").
		Pluck("follower_id", &ids).Error
	return ids, err
}

func (r *GormFollowRepository) GetFollowingIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Order("id").
		Pluck("followed_id", &ids).Error
	return ids, err
}

func (r *GormFollowRepository) GetFollowStats(ctx context.Context, userID uint) (models.FollowStats, error) {
	var stats models.FollowStats
	if err := r.db.WithContext(ctx).Model(&models.Follow{}).Where("follower_id = ?", userID).Count(&stats.FollowingCount).Error; err != nil {
		return stats, err
	}
	if err := r.db.WithContext(ctx).Model(&models.Follow{}).Where("followed_id = ?", userID).Count(&stats.FollowersCount).Error; err != nil {
		return stats, err
	}
	return stats, nil
}
