package repositories

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrEmptyURL           = errors.New("url must not be empty")
	ErrEmptyContent       = errors.New("content must not be empty")
	ErrEmptyReason        = errors.New("reason must not be empty")
	ErrInvalidContentType = errors.New("content type must be news, shared_article or comment")
	ErrInvalidContentID   = errors.New("content id must be positive")
	ErrToggleContention   = errors.New("like toggle did not settle")
)

// translate maps gorm's not-found error onto ErrNotFound.
func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
