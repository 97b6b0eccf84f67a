package players

import (
	"github.com/gin-gonic/gin"
	"github.com/platyfa/platyfa-api/internal/config"
	apihttp "github.com/platyfa/platyfa-api/internal/http"
	"github.com/platyfa/platyfa-api/internal/http/api/players/handlers"
	"github.com/platyfa/platyfa-api/internal/mail"
	"gorm.io/gorm"
)

// RegisterPlayerRoutes registers public and player-scoped routes under
// /api/players. Registration, login, the news feed, and the password-reset
// flow are public; everything else sits behind the authentication gate.
func RegisterPlayerRoutes(r *gin.Engine, conn *gorm.DB, cfg config.Config, mailer *mail.Client) {
	if r == nil || conn == nil {
		return
	}

	group := r.Group("/api/players")

	authHandler := handlers.NewAuthHandler(conn, cfg.JWT, cfg.BcryptCost)
	group.POST("/register", authHandler.Register)
	group.POST("/login", authHandler.Login)

	resetHandler := handlers.NewPasswordResetHandler(conn, mailer, cfg.ClientURL, cfg.BcryptCost)
	group.POST("/forgot_password", resetHandler.Forgot)
	group.POST("/reset_password", resetHandler.Reset)
	group.GET("/validate_reset_token/:token", resetHandler.Validate)

	newsHandler := handlers.NewNewsHandler(conn)
	group.GET("/news", newsHandler.List)

	authed := group.Group("")
	authed.Use(apihttp.PlayerAuthMiddleware(cfg.JWT))

	playerHandler := handlers.NewPlayerHandler(conn, cfg.BcryptCost)
	authed.DELETE("/delete/:id", playerHandler.Delete)
	authed.POST("/restore", playerHandler.Restore)
	authed.PUT("/update_profile", playerHandler.UpdateProfile)
	authed.GET("/:id", playerHandler.Get)

	sessionHandler := handlers.NewSessionHandler(conn)
	authed.POST("/game_sessions", sessionHandler.Create)
	authed.GET("/game_statistics", sessionHandler.Statistics)
}
