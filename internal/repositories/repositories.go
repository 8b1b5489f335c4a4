package repositories

import "gorm.io/gorm"

// Repositories bundles every relational store over one connection.
type Repositories struct {
	Users         *GormUserRepository
	Follows       *GormFollowRepository
	Blocks        *GormBlockRepository
	Articles      *GormSharedArticleRepository
	Comments      *GormCommentRepository
	Saved         *GormSavedArticleRepository
	Reports       *GormReportRepository
	DeviceTokens  *GormDeviceTokenRepository
	Notifications *GormNotificationRepository
}

func New(db *gorm.DB) *Repositories {
	return &Repositories{
		Users:         NewUserRepository(db),
		Follows:       NewFollowRepository(db),
		Blocks:        NewBlockRepository(db),
		Articles:      NewSharedArticleRepository(db),
		Comments:      NewCommentRepository(db),
		Saved:         NewSavedArticleRepository(db),
		Reports:       NewReportRepository(db),
		DeviceTokens:  NewDeviceTokenRepository(db),
		Notifications: NewNotificationRepository(db),
	}
}
