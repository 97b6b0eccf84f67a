package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/platyfa/platyfa-api/internal/mail"
	"github.com/platyfa/platyfa-api/internal/models"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// PromoHandler sends a promotional article to every active player.
type PromoHandler struct {
	db     *gorm.DB
	mailer *mail.Client
}

// NewPromoHandler constructs a PromoHandler.
func NewPromoHandler(db *gorm.DB, mailer *mail.Client) *PromoHandler {
	return &PromoHandler{db: db, mailer: mailer}
}

type sendPromoRequest struct {
	Title   string `json:"title"`
	Author  string `json:"author"`
	Content string `json:"content"`
	Image   string `json:"image"`
}

// Send mails the given article to every non-deleted player. Delivery is
// serialized with a pause between recipients; a failed recipient is skipped
// and the rest of the batch still goes out.
func (h *PromoHandler) Send(c *gin.Context) {
	var body sendPromoRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid json"})
		return
	}
	if strings.TrimSpace(body.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "title is required"})
		return
	}

	var recipients []string
	errPluck := h.db.WithContext(c.Request.Context()).
		Model(&models.Player{}).
		Where("is_deleted = ?", false).
		Pluck("email", &recipients).Error
	if errPluck != nil {
		log.WithError(errPluck).Error("send promo: recipient query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false})
		return
	}
	if len(recipients) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "no players found"})
		return
	}

	htmlBody, errBody := mail.PromoEmailBody(body.Title, body.Author, body.Content, body.Image)
	if errBody != nil {
		log.WithError(errBody).Error("send promo: render email failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false})
		return
	}

	sent, errSend := h.mailer.Broadcast(c.Request.Context(), recipients, body.Title, htmlBody)
	if errSend != nil {
		log.WithError(errSend).Warnf("send promo: broadcast interrupted after %d of %d", sent, len(recipients))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "sent": sent})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "promotional email sent", "sent": sent})
}
