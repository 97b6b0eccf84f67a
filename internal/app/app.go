package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/platyfa/platyfa-api/internal/config"
	"github.com/platyfa/platyfa-api/internal/db"
	apihttp "github.com/platyfa/platyfa-api/internal/http"
	"github.com/platyfa/platyfa-api/internal/http/api/admins"
	"github.com/platyfa/platyfa-api/internal/http/api/players"
	"github.com/platyfa/platyfa-api/internal/mail"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const shutdownGrace = 10 * time.Second

// Migrate opens the database and runs schema migrations, then exits. Used by
// deployments that migrate as a separate step before rolling the server.
func Migrate(cfg config.Config) error {
	conn, err := db.Open(cfg.Database)
	if err != nil {
		return err
	}
	return db.Migrate(conn)
}

// RunServer boots the API server and blocks until ctx is cancelled or the
// listener fails.
func RunServer(ctx context.Context, cfg config.Config) error {
	conn, err := db.Open(cfg.Database)
	if err != nil {
		return err
	}
	if errMigrate := db.Migrate(conn); errMigrate != nil {
		return errMigrate
	}

	mailer, errMail := mail.NewClient(cfg.SMTP, cfg.PromoSendDelay.Std())
	if errMail != nil {
		return errMail
	}

	engine := buildEngine(conn, cfg, mailer)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("listening on %s (database dialect %s)", server.Addr, db.DialectName(conn))
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if errShutdown := server.Shutdown(shutdownCtx); errShutdown != nil {
			return errShutdown
		}
		return nil
	case errServe := <-errCh:
		if errors.Is(errServe, http.ErrServerClosed) {
			return nil
		}
		return errServe
	}
}

// buildEngine assembles the gin engine with middleware and both route trees.
func buildEngine(conn *gorm.DB, cfg config.Config, mailer *mail.Client) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery(), apihttp.CORSMiddleware())

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	players.RegisterPlayerRoutes(engine, conn, cfg, mailer)
	admins.RegisterAdminRoutes(engine, conn, cfg, mailer)
	return engine
}
