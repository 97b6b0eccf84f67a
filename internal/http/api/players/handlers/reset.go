package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/platyfa/platyfa-api/internal/mail"
	"github.com/platyfa/platyfa-api/internal/models"
	"github.com/platyfa/platyfa-api/internal/security"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// PasswordResetHandler drives the forgot/reset password flow.
type PasswordResetHandler struct {
	db         *gorm.DB
	mailer     *mail.Client
	clientURL  string
	bcryptCost int
}

// NewPasswordResetHandler constructs a PasswordResetHandler.
func NewPasswordResetHandler(db *gorm.DB, mailer *mail.Client, clientURL string, bcryptCost int) *PasswordResetHandler {
	return &PasswordResetHandler{db: db, mailer: mailer, clientURL: clientURL, bcryptCost: bcryptCost}
}

type forgotRequest struct {
	Email string `json:"email"`
}

// Forgot generates a single-use reset token, stores it on the account and
// mails a reset link. Requesting again overwrites the previous token.
func (h *PasswordResetHandler) Forgot(c *gin.Context) {
	var body forgotRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid json"})
		return
	}
	email := strings.TrimSpace(body.Email)
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "email is required"})
		return
	}

	var player models.Player
	errFind := h.db.WithContext(c.Request.Context()).
		Select("id", "email").
		Where("email = ?", email).
		First(&player).Error
	if errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "user not found"})
			return
		}
		log.WithError(errFind).Error("forgot password: player lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false})
		return
	}

	token, errToken := security.NewResetToken()
	if errToken != nil {
		log.WithError(errToken).Error("forgot password: token generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false})
		return
	}
	expiration := time.Now().UTC().Add(security.ResetTokenLifetime)

	errUpdate := h.db.WithContext(c.Request.Context()).
		Model(&models.Player{}).
		Where("id = ?", player.ID).
		Updates(map[string]any{
			"reset_token":            token,
			"reset_token_expiration": expiration,
		}).Error
	if errUpdate != nil {
		log.WithError(errUpdate).Error("forgot password: token store failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false})
		return
	}

	resetLink := fmt.Sprintf("%s/reset_password/%s", strings.TrimRight(h.clientURL, "/"), token)
	htmlBody, errBody := mail.ResetEmailBody(resetLink)
	if errBody != nil {
		log.WithError(errBody).Error("forgot password: render email failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "error sending email"})
		return
	}
	if errSend := h.mailer.Send(player.Email, mail.ResetSubject, htmlBody); errSend != nil {
		log.WithError(errSend).WithField("email", player.Email).Error("forgot password: send email failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "error sending email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "reset email sent"})
}

type resetRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// Reset consumes a valid token and replaces the password. The token check
// and the clear happen in one conditioned update, so a token can never be
// spent twice even under concurrent requests.
func (h *PasswordResetHandler) Reset(c *gin.Context) {
	var body resetRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid json"})
		return
	}
	if strings.TrimSpace(body.Token) == "" || strings.TrimSpace(body.Password) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "token and password are required"})
		return
	}

	hash, errHash := security.HashPassword(body.Password, h.bcryptCost)
	if errHash != nil {
		log.WithError(errHash).Error("reset password: hash password failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false})
		return
	}

	result := h.db.WithContext(c.Request.Context()).
		Model(&models.Player{}).
		Where("reset_token = ? AND reset_token_expiration > ?", body.Token, time.Now().UTC()).
		Updates(map[string]any{
			"password":               hash,
			"reset_token":            nil,
			"reset_token_expiration": nil,
		})
	if result.Error != nil {
		log.WithError(result.Error).Error("reset password: update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid or expired token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "password has been reset"})
}

// Validate reports whether a reset token is still usable, so the client can
// show the reset form or an error page before asking for a new password.
func (h *PasswordResetHandler) Validate(c *gin.Context) {
	token := c.Param("token")

	var count int64
	errCount := h.db.WithContext(c.Request.Context()).
		Model(&models.Player{}).
		Where("reset_token = ? AND reset_token_expiration > ?", token, time.Now().UTC()).
		Count(&count).Error
	if errCount != nil {
		log.WithError(errCount).Error("validate reset token: lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"valid": false})
		return
	}
	if count == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"valid": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"valid": true})
}
