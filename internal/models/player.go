package models

import "time"

// Player represents one player or admin identity stored in the database.
type Player struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	Username string `gorm:"type:text;not null;uniqueIndex"` // Unique login name.
	Name     string `gorm:"type:text"`                      // Display name.
	Email    string `gorm:"type:text;not null;uniqueIndex"` // Unique contact address.
	Password string `gorm:"type:text;not null"`             // Hashed password, never the raw secret.

	LoginDate time.Time `gorm:"not null"` // Registration timestamp.

	Country      string `gorm:"type:text"` // Player country.
	Language     string `gorm:"type:text"` // UI language.
	GameLanguage string `gorm:"type:text"` // In-game language.
	ProfileImage string `gorm:"type:text"` // Avatar URL in external blob storage.

	IsVerified bool `gorm:"not null;default:false"` // Stored at registration; no gate enforced.
	IsAdmin    bool `gorm:"not null;default:false"` // Privileged role flag.
	IsDeleted  bool `gorm:"not null;default:false"` // Soft-delete flag.

	// Reset token fields are set and cleared together. A token past its
	// expiration is treated as absent.
	ResetToken           *string    `gorm:"type:text;index"` // Pending password-reset token.
	ResetTokenExpiration *time.Time // Reset token expiry instant.
}

// TableName keeps the table name singular, matching the production schema.
func (Player) TableName() string { return "player" }
