package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/platyfa/platyfa-api/internal/models"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// PlayerAdminHandler exposes the back-office player registry.
type PlayerAdminHandler struct {
	db *gorm.DB
}

// NewPlayerAdminHandler constructs a PlayerAdminHandler.
func NewPlayerAdminHandler(db *gorm.DB) *PlayerAdminHandler {
	return &PlayerAdminHandler{db: db}
}

// adminPlayerRow is the registry projection shown to admins. Deleted
// accounts are included so they can be restored from the back office.
type adminPlayerRow struct {
	ID        uint64 `json:"id"`
	Username  string `json:"username"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Country   string `json:"country"`
	IsAdmin   bool   `json:"is_admin"`
	IsDeleted bool   `json:"is_deleted"`
}

// List returns every registered player, deleted accounts included.
func (h *PlayerAdminHandler) List(c *gin.Context) {
	var rows []adminPlayerRow
	errQuery := h.db.WithContext(c.Request.Context()).
		Model(&models.Player{}).
		Select("id", "username", "name", "email", "country", "is_admin", "is_deleted").
		Order("id").
		Scan(&rows).Error
	if errQuery != nil {
		log.WithError(errQuery).Error("list players: query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false})
		return
	}
	if len(rows) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "no players found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "players": rows})
}

type makeAdminRequest struct {
	IsAdmin *bool `json:"is_admin"`
}

// MakeAdmin flips a player's admin flag in either direction. Setting the flag
// to its current value matches no row and returns 400.
func (h *PlayerAdminHandler) MakeAdmin(c *gin.Context) {
	playerID, errParse := strconv.ParseUint(c.Param("id"), 10, 64)
	if errParse != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid player id"})
		return
	}

	var body makeAdminRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil || body.IsAdmin == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "is_admin is required"})
		return
	}

	var player models.Player
	errFind := h.db.WithContext(c.Request.Context()).
		Select("id", "is_admin").
		First(&player, playerID).Error
	if errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "user not found"})
			return
		}
		log.WithError(errFind).Error("make admin: lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false})
		return
	}

	result := h.db.WithContext(c.Request.Context()).
		Model(&models.Player{}).
		Where("id = ? AND is_admin = ?", playerID, !*body.IsAdmin).
		Update("is_admin", *body.IsAdmin)
	if result.Error != nil {
		log.WithError(result.Error).Error("make admin: update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "admin status unchanged"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "admin status updated"})
}
