package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/platyfa/platyfa-api/internal/models"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// NewsAdminHandler publishes news articles.
type NewsAdminHandler struct {
	db *gorm.DB
}

// NewNewsAdminHandler constructs a NewsAdminHandler.
func NewNewsAdminHandler(db *gorm.DB) *NewsAdminHandler {
	return &NewsAdminHandler{db: db}
}

type addNewsRequest struct {
	Title   string `json:"title"`
	Author  string `json:"author"`
	Content string `json:"content"`
	Image   string `json:"image"`
}

// Add publishes an article to the public feed. The image field is a URL into
// external blob storage; this API stores only the reference.
func (h *NewsAdminHandler) Add(c *gin.Context) {
	var body addNewsRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid json"})
		return
	}
	if strings.TrimSpace(body.Title) == "" || strings.TrimSpace(body.Author) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "title and author are required"})
		return
	}

	article := models.News{
		Title:   strings.TrimSpace(body.Title),
		Author:  strings.TrimSpace(body.Author),
		Date:    time.Now().UTC(),
		Content: body.Content,
		Image:   body.Image,
	}
	if errCreate := h.db.WithContext(c.Request.Context()).Create(&article).Error; errCreate != nil {
		log.WithError(errCreate).Error("add news: insert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "newsId": article.ID})
}
