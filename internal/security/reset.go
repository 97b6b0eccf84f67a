package security

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// ResetTokenLifetime is how long a password-reset token stays valid.
const ResetTokenLifetime = time.Hour

// NewResetToken returns a high-entropy single-use password-reset token.
func NewResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
