package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/platyfa/platyfa-api/internal/config"
	"github.com/platyfa/platyfa-api/internal/models"
	"github.com/platyfa/platyfa-api/internal/security"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	db         *gorm.DB
	jwtCfg     config.JWTConfig
	bcryptCost int
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(db *gorm.DB, jwtCfg config.JWTConfig, bcryptCost int) *AuthHandler {
	return &AuthHandler{db: db, jwtCfg: jwtCfg, bcryptCost: bcryptCost}
}

// registerRequest defines the request body for player registration.
type registerRequest struct {
	Username     string `json:"username"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Country      string `json:"country"`
	Language     string `json:"language"`
	GameLanguage string `json:"game_language"`
}

// Register creates a new player account. The account is usable immediately;
// is_verified is stored but no verification gate is enforced. No token is
// issued here, the client logs in afterwards.
func (h *AuthHandler) Register(c *gin.Context) {
	var body registerRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid json"})
		return
	}
	username := strings.TrimSpace(body.Username)
	email := strings.TrimSpace(body.Email)
	password := strings.TrimSpace(body.Password)
	if username == "" || email == "" || password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "missing required fields"})
		return
	}

	var exists models.Player
	errCheck := h.db.WithContext(c.Request.Context()).Select("id").Where("email = ?", email).First(&exists).Error
	if errCheck == nil {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "email already in use"})
		return
	}
	if !errors.Is(errCheck, gorm.ErrRecordNotFound) {
		log.WithError(errCheck).Error("register: email lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false})
		return
	}

	hash, errHash := security.HashPassword(password, h.bcryptCost)
	if errHash != nil {
		log.WithError(errHash).Error("register: hash password failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false})
		return
	}

	player := models.Player{
		Username:     username,
		Name:         strings.TrimSpace(body.Name),
		Email:        email,
		Password:     hash,
		LoginDate:    time.Now().UTC(),
		Country:      body.Country,
		Language:     body.Language,
		GameLanguage: body.GameLanguage,
		IsVerified:   true,
	}
	if errCreate := h.db.WithContext(c.Request.Context()).Create(&player).Error; errCreate != nil {
		// The email pre-check races with concurrent registrations; the unique
		// indexes are the authority, so a duplicate-key insert is a conflict,
		// not a server error.
		if errors.Is(errCreate, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "account already exists"})
			return
		}
		log.WithError(errCreate).Error("register: create player failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Registration successful. Please check your email to verify your account.",
	})
}

// loginRequest defines the request body for login.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login authenticates a player and issues a token carrying a snapshot of the
// account's role and deletion state. A soft-deleted account is rejected
// before the password comparison with a distinct message, so the client can
// branch into the restore flow.
func (h *AuthHandler) Login(c *gin.Context) {
	var body loginRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid json"})
		return
	}

	var player models.Player
	errFind := h.db.WithContext(c.Request.Context()).
		Select("id", "username", "password", "is_deleted", "is_admin").
		Where("username = ?", strings.TrimSpace(body.Username)).
		First(&player).Error
	if errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusForbidden, gin.H{"message": "user incorrect"})
			return
		}
		log.WithError(errFind).Error("login: player lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false})
		return
	}

	if player.IsDeleted {
		c.JSON(http.StatusForbidden, gin.H{"message": "account is deleted"})
		return
	}

	if !security.CheckPassword(player.Password, body.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid password"})
		return
	}

	token, errToken := security.GenerateToken(h.jwtCfg.Secret, player.ID, player.Username, player.IsAdmin, player.IsDeleted)
	if errToken != nil {
		log.WithError(errToken).Error("login: sign token failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "token": token})
}
