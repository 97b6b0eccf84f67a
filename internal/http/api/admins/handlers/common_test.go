package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/platyfa/platyfa-api/internal/config"
	"github.com/platyfa/platyfa-api/internal/db"
	apihttp "github.com/platyfa/platyfa-api/internal/http"
	"github.com/platyfa/platyfa-api/internal/mail"
	"github.com/platyfa/platyfa-api/internal/models"
	"github.com/platyfa/platyfa-api/internal/security"
	"gorm.io/gorm"
)

const testJWTSecret = "admin-handler-test-secret"

var testDBCounter atomic.Int64

// newTestRouter wires the admin route tree the same way the server does,
// against a fresh in-memory database and a disabled mail client.
func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	dsn := fmt.Sprintf("file:admins_%d?mode=memory&cache=shared", testDBCounter.Add(1))
	conn, errOpen := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if errOpen != nil {
		t.Fatalf("open sqlite: %v", errOpen)
	}
	if errMigrate := db.Migrate(conn); errMigrate != nil {
		t.Fatalf("migrate: %v", errMigrate)
	}

	mailer, errMail := mail.NewClient(config.SMTPConfig{}, 0)
	if errMail != nil {
		t.Fatalf("mail client: %v", errMail)
	}

	jwtCfg := config.JWTConfig{Secret: testJWTSecret}
	router := gin.New()
	group := router.Group("/api/admins")
	group.Use(apihttp.PlayerAuthMiddleware(jwtCfg), apihttp.AdminOnly())

	playerHandler := NewPlayerAdminHandler(conn)
	group.GET("", playerHandler.List)
	group.PUT("/make_admin/:id", playerHandler.MakeAdmin)

	newsHandler := NewNewsAdminHandler(conn)
	group.POST("/add_new", newsHandler.Add)

	statsHandler := NewStatsHandler(conn)
	group.GET("/stats", statsHandler.Overview)

	promoHandler := NewPromoHandler(conn, mailer)
	group.POST("/send_promo", promoHandler.Send)

	return router, conn
}

func adminToken(t *testing.T) string {
	t.Helper()

	token, errGen := security.GenerateToken(testJWTSecret, 1, "root", true, false)
	if errGen != nil {
		t.Fatalf("generate admin token: %v", errGen)
	}
	return token
}

func playerToken(t *testing.T) string {
	t.Helper()

	token, errGen := security.GenerateToken(testJWTSecret, 2, "alice", false, false)
	if errGen != nil {
		t.Fatalf("generate player token: %v", errGen)
	}
	return token
}

func seedPlayer(t *testing.T, conn *gorm.DB, username, email string, isAdmin, isDeleted bool) uint64 {
	t.Helper()

	player := models.Player{
		Username:  username,
		Email:     email,
		Password:  "x",
		LoginDate: time.Now().UTC(),
		IsAdmin:   isAdmin,
		IsDeleted: isDeleted,
	}
	if err := conn.Create(&player).Error; err != nil {
		t.Fatalf("seed player %s: %v", username, err)
	}
	return player.ID
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, errMarshal := json.Marshal(body)
		if errMarshal != nil {
			t.Fatalf("marshal body: %v", errMarshal)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	responseRecorder := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	router.ServeHTTP(responseRecorder, req)
	return responseRecorder
}

func decodeBody(t *testing.T, responseRecorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var payload map[string]any
	if errDecode := json.Unmarshal(responseRecorder.Body.Bytes(), &payload); errDecode != nil {
		t.Fatalf("decode response %q: %v", responseRecorder.Body.String(), errDecode)
	}
	return payload
}
