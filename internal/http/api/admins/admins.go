package admins

import (
	"github.com/gin-gonic/gin"
	"github.com/platyfa/platyfa-api/internal/config"
	apihttp "github.com/platyfa/platyfa-api/internal/http"
	"github.com/platyfa/platyfa-api/internal/http/api/admins/handlers"
	"github.com/platyfa/platyfa-api/internal/mail"
	"gorm.io/gorm"
)

// RegisterAdminRoutes registers the back-office routes under /api/admins.
// Every route requires a valid token with the admin flag.
func RegisterAdminRoutes(r *gin.Engine, conn *gorm.DB, cfg config.Config, mailer *mail.Client) {
	if r == nil || conn == nil {
		return
	}

	group := r.Group("/api/admins")
	group.Use(apihttp.PlayerAuthMiddleware(cfg.JWT), apihttp.AdminOnly())

	playerHandler := handlers.NewPlayerAdminHandler(conn)
	group.GET("", playerHandler.List)
	group.PUT("/make_admin/:id", playerHandler.MakeAdmin)

	newsHandler := handlers.NewNewsAdminHandler(conn)
	group.POST("/add_new", newsHandler.Add)

	statsHandler := handlers.NewStatsHandler(conn)
	group.GET("/stats", statsHandler.Overview)

	promoHandler := handlers.NewPromoHandler(conn, mailer)
	group.POST("/send_promo", promoHandler.Send)
}
