package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/platyfa/platyfa-api/internal/config"
	"github.com/platyfa/platyfa-api/internal/db"
	apihttp "github.com/platyfa/platyfa-api/internal/http"
	"github.com/platyfa/platyfa-api/internal/mail"
	"gorm.io/gorm"
)

const (
	testJWTSecret  = "player-handler-test-secret"
	testBcryptCost = 4
)

var testDBCounter atomic.Int64

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:players_%d?mode=memory&cache=shared", testDBCounter.Add(1))
	conn, errOpen := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if errOpen != nil {
		t.Fatalf("open sqlite: %v", errOpen)
	}
	if errMigrate := db.Migrate(conn); errMigrate != nil {
		t.Fatalf("migrate: %v", errMigrate)
	}
	return conn
}

// newTestRouter wires the player route tree the same way the server does,
// against a fresh in-memory database and a disabled mail client.
func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	conn := openTestDB(t)

	mailer, errMail := mail.NewClient(config.SMTPConfig{}, 0)
	if errMail != nil {
		t.Fatalf("mail client: %v", errMail)
	}

	jwtCfg := config.JWTConfig{Secret: testJWTSecret}
	router := gin.New()
	group := router.Group("/api/players")

	authHandler := NewAuthHandler(conn, jwtCfg, testBcryptCost)
	group.POST("/register", authHandler.Register)
	group.POST("/login", authHandler.Login)

	resetHandler := NewPasswordResetHandler(conn, mailer, "http://localhost:8080", testBcryptCost)
	group.POST("/forgot_password", resetHandler.Forgot)
	group.POST("/reset_password", resetHandler.Reset)
	group.GET("/validate_reset_token/:token", resetHandler.Validate)

	newsHandler := NewNewsHandler(conn)
	group.GET("/news", newsHandler.List)

	authed := group.Group("")
	authed.Use(apihttp.PlayerAuthMiddleware(jwtCfg))

	playerHandler := NewPlayerHandler(conn, testBcryptCost)
	authed.DELETE("/delete/:id", playerHandler.Delete)
	authed.POST("/restore", playerHandler.Restore)
	authed.PUT("/update_profile", playerHandler.UpdateProfile)
	authed.GET("/:id", playerHandler.Get)

	sessionHandler := NewSessionHandler(conn)
	authed.POST("/game_sessions", sessionHandler.Create)
	authed.GET("/game_statistics", sessionHandler.Statistics)

	return router, conn
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

func registerPlayer(t *testing.T, router *gin.Engine, username, email, password string) {
	t.Helper()

	responseRecorder := doJSON(t, router, http.MethodPost, "/api/players/register", "", gin.H{
		"username": username,
		"email":    email,
		"password": password,
	})
	if responseRecorder.Code != http.StatusOK {
		t.Fatalf("register %s: expected status 200, got %d (%s)", username, responseRecorder.Code, responseRecorder.Body.String())
	}
}

func loginPlayer(t *testing.T, router *gin.Engine, username, password string) string {
	t.Helper()

	responseRecorder := doJSON(t, router, http.MethodPost, "/api/players/login", "", gin.H{
		"username": username,
		"password": password,
	})
	if responseRecorder.Code != http.StatusOK {
		t.Fatalf("login %s: expected status 200, got %d (%s)", username, responseRecorder.Code, responseRecorder.Body.String())
	}
	token, ok := decodeBody(t, responseRecorder)["token"].(string)
	if !ok || token == "" {
		t.Fatalf("login %s: missing token in response", username)
	}
	return token
}
