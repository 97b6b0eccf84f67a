package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	apihttp "github.com/platyfa/platyfa-api/internal/http"
	"github.com/platyfa/platyfa-api/internal/models"
	"github.com/platyfa/platyfa-api/internal/security"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// PlayerHandler handles the account lifecycle and profile routes.
type PlayerHandler struct {
	db         *gorm.DB
	bcryptCost int
}

// NewPlayerHandler constructs a PlayerHandler.
func NewPlayerHandler(db *gorm.DB, bcryptCost int) *PlayerHandler {
	return &PlayerHandler{db: db, bcryptCost: bcryptCost}
}

// playerProfile is the public projection of a player row. The password hash
// and reset token columns never leave the API.
type playerProfile struct {
	ID           uint64 `json:"id"`
	Username     string `json:"username"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Country      string `json:"country"`
	Language     string `json:"language"`
	GameLanguage string `json:"game_language"`
	ProfileImage string `json:"profile_image"`
	IsAdmin      bool   `json:"is_admin"`
	IsDeleted    bool   `json:"is_deleted"`
}

func profileFromModel(p models.Player) playerProfile {
	return playerProfile{
		ID:           p.ID,
		Username:     p.Username,
		Name:         p.Name,
		Email:        p.Email,
		Country:      p.Country,
		Language:     p.Language,
		GameLanguage: p.GameLanguage,
		ProfileImage: p.ProfileImage,
		IsAdmin:      p.IsAdmin,
		IsDeleted:    p.IsDeleted,
	}
}

// Delete soft-deletes an account by id. Any authenticated caller may target
// any id. The row stays in place with is_deleted set, so the account can
// later be restored.
func (h *PlayerHandler) Delete(c *gin.Context) {
	targetID, errParse := strconv.ParseUint(c.Param("id"), 10, 64)
	if errParse != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid player id"})
		return
	}

	// The flag write is idempotent; deleting an already-deleted account is
	// not an error.
	result := h.db.WithContext(c.Request.Context()).
		Model(&models.Player{}).
		Where("id = ?", targetID).
		Update("is_deleted", true)
	if result.Error != nil {
		log.WithError(result.Error).Error("delete player: update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "user not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "account deleted"})
}

// Restore reactivates a soft-deleted account. A deleted player restores
// themselves with the token issued before deletion; an admin may restore any
// account by id.
func (h *PlayerHandler) Restore(c *gin.Context) {
	claims, ok := apihttp.ClaimsFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "token not provided"})
		return
	}

	// Only admins may pick a target; any other caller restores themselves,
	// whatever id the body carries.
	targetID := claims.PlayerID
	var body struct {
		PlayerID uint64 `json:"player_id"`
	}
	if errBind := c.ShouldBindJSON(&body); errBind == nil && body.PlayerID != 0 && claims.IsAdmin {
		targetID = body.PlayerID
	}

	result := h.db.WithContext(c.Request.Context()).
		Model(&models.Player{}).
		Where("id = ?", targetID).
		Update("is_deleted", false)
	if result.Error != nil {
		log.WithError(result.Error).Error("restore player: update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "user not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "account restored"})
}

// updateProfileRequest carries the optional profile fields. Pointer fields
// distinguish "absent" from "set to empty".
type updateProfileRequest struct {
	Username     *string `json:"username"`
	Name         *string `json:"name"`
	Email        *string `json:"email"`
	Password     *string `json:"password"`
	Country      *string `json:"country"`
	Language     *string `json:"language"`
	GameLanguage *string `json:"game_language"`
	ProfileImage *string `json:"profile_image"`
}

// UpdateProfile applies a sparse update to the caller's own row. A body with
// no known fields is rejected rather than silently doing nothing.
func (h *PlayerHandler) UpdateProfile(c *gin.Context) {
	claims, ok := apihttp.ClaimsFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "token not provided"})
		return
	}

	var body updateProfileRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid json"})
		return
	}

	updates := map[string]any{}
	if body.Username != nil {
		username := strings.TrimSpace(*body.Username)
		if username == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "username cannot be empty"})
			return
		}
		updates["username"] = username
	}
	if body.Name != nil {
		updates["name"] = strings.TrimSpace(*body.Name)
	}
	if body.Email != nil {
		email := strings.TrimSpace(*body.Email)
		if email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "email cannot be empty"})
			return
		}
		updates["email"] = email
	}
	if body.Password != nil && strings.TrimSpace(*body.Password) != "" {
		hash, errHash := security.HashPassword(*body.Password, h.bcryptCost)
		if errHash != nil {
			log.WithError(errHash).Error("update profile: hash password failed")
			c.JSON(http.StatusInternalServerError, gin.H{"success": false})
			return
		}
		updates["password"] = hash
	}
	if body.Country != nil {
		updates["country"] = *body.Country
	}
	if body.Language != nil {
		updates["language"] = *body.Language
	}
	if body.GameLanguage != nil {
		updates["game_language"] = *body.GameLanguage
	}
	if body.ProfileImage != nil {
		updates["profile_image"] = *body.ProfileImage
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "no fields to update"})
		return
	}

	errUpdate := h.db.WithContext(c.Request.Context()).
		Model(&models.Player{}).
		Where("id = ?", claims.PlayerID).
		Updates(updates).Error
	if errUpdate != nil {
		log.WithError(errUpdate).Error("update profile: update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "profile updated"})
}

// Get returns one player's public profile by id.
func (h *PlayerHandler) Get(c *gin.Context) {
	playerID, errParse := strconv.ParseUint(c.Param("id"), 10, 64)
	if errParse != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid player id"})
		return
	}

	var player models.Player
	errFind := h.db.WithContext(c.Request.Context()).First(&player, playerID).Error
	if errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "user not found"})
			return
		}
		log.WithError(errFind).Error("get player: lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false})
		return
	}

	c.JSON(http.StatusOK, profileFromModel(player))
}
