package models

import "time"

// News is one article in the public news feed.
type News struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	Title   string    `gorm:"type:text;not null"` // Headline.
	Author  string    `gorm:"type:text;not null"` // Author player username.
	Date    time.Time `gorm:"not null;index"`     // Publication timestamp.
	Content string    `gorm:"type:text"`          // Article body.
	Image   string    `gorm:"type:text"`          // Illustration URL in external blob storage.
}
