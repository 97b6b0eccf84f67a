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

// NewsHandler serves the public news feed.
type NewsHandler struct {
	db *gorm.DB
}

// NewNewsHandler constructs a NewsHandler.
func NewNewsHandler(db *gorm.DB) *NewsHandler {
	return &NewsHandler{db: db}
}

// newsItem is one feed entry, joined with the author's player row for the
// profile image.
type newsItem struct {
	ID           uint64    `json:"id"`
	Title        string    `json:"title"`
	Author       string    `json:"author"`
	Date         time.Time `json:"date"`
	Content      string    `json:"content"`
	Image        string    `json:"image"`
	ProfileImage string    `json:"profile_image"`
}

// List returns the news feed, newest first by default. The optional
// ?order=asc query flips the sort.
func (h *NewsHandler) List(c *gin.Context) {
	order := "desc"
	if strings.EqualFold(c.Query("order"), "asc") {
		order = "asc"
	}

	// Articles only surface with a resolvable author row; the id sort breaks
	// ties between same-timestamp articles.
	var items []newsItem
	errQuery := h.db.WithContext(c.Request.Context()).
		Model(&models.News{}).
		Select("news.id, news.title, news.author, news.date, news.content, news.image, player.profile_image").
		Joins("JOIN player ON player.username = news.author").
		Order("news.date " + order + ", news.id " + order).
		Scan(&items).Error
	if errQuery != nil {
		log.WithError(errQuery).Error("list news: query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false})
		return
	}
	if len(items) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "no news found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "news": items})
}
