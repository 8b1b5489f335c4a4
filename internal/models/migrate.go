package models

import "gorm.io/gorm"

// All lists every relational model, in dependency order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Follow{},
		&Block{},
		&SharedArticle{},
		&Like{},
		&Comment{},
		&SavedArticle{},
		&Report{},
		&DeviceToken{},
		&Notification{},
	}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(All()...)
}
