package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/anonto42/newsroom-social/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BlockRepository is the block half of the social graph. Blocking does not
// touch follow edges.
type BlockRepository interface {
	Block(ctx context.Context, blockerID, blockedID uint, reason string) (models.BlockResult, error)
	Unblock(ctx context.Context, blockerID, blockedID uint) (bool, error)
	IsBlocked(ctx context.Context, blockerID, blockedID uint) (bool, error)
	GetBlockedUsers(ctx context.Context, blockerID uint) ([]models.BlockedUserView, error)
	GetBlockedIDs(ctx context.Context, blockerID uint) ([]uint, error)
}

type GormBlockRepository struct {
	db *gorm.DB
}

func NewBlockRepository(db *gorm.DB) *GormBlockRepository {
	return &GormBlockRepository{db: db}
}

func (r *GormBlockRepository) Block(ctx context.Context, blockerID, blockedID uint, reason string) (models.BlockResult, error) {
	if blockerID == blockedID {
		return models.BlockSelfReference, nil
	}

	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Block{BlockerID: blockerID, BlockedID: blockedID, Reason: strings.TrimSpace(reason)})
	if res.Error != nil {
		return 0, fmt.Errorf("block %d -> %d: %w", blockerID, blockedID, res.Error)
	}
	if res.RowsAffected == 0 {
		return models.BlockAlreadyBlocked, nil
	}
	return models.BlockCreated, nil
}

func (r *GormBlockRepository) Unblock(ctx context.Context, blockerID, blockedID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Delete(&models.Block{})
	if res.Error != nil {
		return false, fmt.Errorf("unblock %d -> %d: %w", blockerID, blockedID, res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *GormBlockRepository) IsBlocked(ctx context.Context, blockerID, blockedID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Block{}).
		Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Count(&count).Error
	return count > 0, err
}

func (r *GormBlockRepository) GetBlockedUsers(ctx context.Context, blockerID uint) ([]models.BlockedUserView, error) {
	views := []models.BlockedUserView{}
	err := r.db.WithContext(ctx).Table("blocks").
		Select("users.id AS user_id, users.display_name AS display_name, blocks.reason AS reason, blocks.created_at AS blocked_at").
		Joins("JOIN users ON users.id = blocks.blocked_id").
		Where("blocks.blocker_id = ?", blockerID).
		Order("blocks.created_at DESC, blocks.id DESC").
		Scan(&views).Error
	if err != nil {
		return nil, fmt.Errorf("list blocked users of %d: %w", blockerID, err)
	}
	return views, nil
}

func (r *GormBlockRepository) GetBlockedIDs(ctx context.Context, blockerID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Block{}).
		Where("blocker_id = ?", blockerID).
		Pluck("blocked_id", &ids).Error
	return ids, err
}
