package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anonto42/newsroom-social/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DeviceTokenRepository is the registry of push endpoints.
type DeviceTokenRepository interface {
	RegisterToken(ctx context.Context, userID uint, token, deviceType, userAgent string) error
	GetActiveTokens(ctx context.Context, userID uint) ([]string, error)
	DeactivateToken(ctx context.Context, token string) error
}

type GormDeviceTokenRepository struct {
	db *gorm.DB
}

func NewDeviceTokenRepository(db *gorm.DB) *GormDeviceTokenRepository {
	return &GormDeviceTokenRepository{db: db}
}

// RegisterToken makes token the only active endpoint for the
// (user, device type, user agent) fingerprint. A token already known under
// another fingerprint moves to this one. Inactive history is pruned to the
// most recent row.
func (r *GormDeviceTokenRepository) RegisterToken(ctx context.Context, userID uint, token, deviceType, userAgent string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrEmptyContent
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.DeviceToken{}).
			Where("user_id = ? AND device_type = ? AND user_agent = ?", userID, deviceType, userAgent).
			Where("is_active = ? AND token <> ?", true, token).
			Update("is_active", false).Error; err != nil {
			return err
		}

		now := time.Now()
		row := &models.DeviceToken{
			UserID:     userID,
			Token:      token,
			DeviceType: deviceType,
			UserAgent:  userAgent,
			IsActive:   true,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "token"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"user_id":     userID,
				"device_type": deviceType,
				"user_agent":  userAgent,
				"is_active":   true,
				"updated_at":  now,
			}),
		}).Create(row).Error; err != nil {
			return err
		}

		var inactive []uint
		if err := tx.Model(&models.DeviceToken{}).
			Where("user_id = ? AND device_type = ? AND user_agent = ? AND is_active = ?", userID, deviceType, userAgent, false).
			Order("updated_at DESC, id DESC").
			Pluck("id", &inactive).Error; err != nil {
			return err
		}
		if len(inactive) <= 1 {
			return nil
		}
		return tx.Where("id IN ?", inactive[1:]).Delete(&models.DeviceToken{}).Error
	})
	if err != nil {
		return fmt.Errorf("register token for user %d: %w", userID, err)
	}
	return nil
}

func (r *GormDeviceTokenRepository) GetActiveTokens(ctx context.Context, userID uint) ([]string, error) {
	tokens := []string{}
	err := r.db.WithContext(ctx).Model(&models.DeviceToken{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("updated_at DESC").
		Pluck("token", &tokens).Error
	return tokens, err
}

// DeactivateToken retires a token the push service no longer accepts.
func (r *GormDeviceTokenRepository) DeactivateToken(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Model(&models.DeviceToken{}).
		Where("token = ?", token).
		Update("is_active", false).Error
}
