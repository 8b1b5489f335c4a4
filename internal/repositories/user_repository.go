package repositories

import (
	"context"
	"fmt"

	"github.com/anonto42/newsroom-social/backend/internal/models"
	"gorm.io/gorm"
)

// UserRepository reads users and edits their notification preferences.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error)
	GetPreferences(ctx context.Context, id uint) (models.Preferences, error)
	UpdatePreferences(ctx context.Context, id uint, req models.UpdatePreferencesRequest) (models.Preferences, error)
}

type GormUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// CreateUser exists for seeding and tests; accounts are created elsewhere.
func (r *GormUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *GormUserRepository) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *GormUserRepository) GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("firebase_uid = ?", firebaseUID).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *GormUserRepository) GetPreferences(ctx context.Context, id uint) (models.Preferences, error) {
	user, err := r.GetUserByID(ctx, id)
	if err != nil {
		return models.Preferences{}, err
	}
	return user.Preferences(), nil
}

// UpdatePreferences writes only the flags present in req.
func (r *GormUserRepository) UpdatePreferences(ctx context.Context, id uint, req models.UpdatePreferencesRequest) (models.Preferences, error) {
	updates := map[string]interface{}{}
	if req.NotifyOnLikes != nil {
		updates["notify_on_likes"] = *req.NotifyOnLikes
	}
	if req.NotifyOnComments != nil {
		updates["notify_on_comments"] = *req.NotifyOnComments
	}
	if req.NotifyOnFollow != nil {
		updates["notify_on_follow"] = *req.NotifyOnFollow
	}
	if req.NotifyOnShare != nil {
		updates["notify_on_share"] = *req.NotifyOnShare
	}

	if len(updates) > 0 {
		res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return models.Preferences{}, fmt.Errorf("update preferences of user %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return models.Preferences{}, ErrNotFound
		}
	}
	return r.GetPreferences(ctx, id)
}

// bumpActivity must run on the caller's transaction.
func bumpActivity(tx *gorm.DB, userID uint) error {
	return tx.Model(&models.User{}).Where("id = ?", userID).
		UpdateColumn("activity_count", gorm.Expr("activity_count + ?", 1)).Error
}
