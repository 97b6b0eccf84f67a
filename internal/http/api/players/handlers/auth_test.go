package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/platyfa/platyfa-api/internal/models"
	"github.com/platyfa/platyfa-api/internal/security"
)

func TestRegisterAndLogin(t *testing.T) {
	router, _ := newTestRouter(t)

	registerPlayer(t, router, "alice", "alice@example.com", "s3cret")
	token := loginPlayer(t, router, "alice", "s3cret")

	claims, errParse := security.ParseToken(testJWTSecret, token)
	if errParse != nil {
		t.Fatalf("parse issued token: %v", errParse)
	}
	if claims.Username != "alice" {
		t.Fatalf("expected username alice, got %q", claims.Username)
	}
	if claims.IsAdmin || claims.IsDeleted {
		t.Fatalf("fresh account should be neither admin nor deleted")
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	router, _ := newTestRouter(t)
	registerPlayer(t, router, "alice", "alice@example.com", "s3cret")

	responseRecorder := doJSON(t, router, http.MethodPost, "/api/players/register", "", gin.H{
		"username": "alice2",
		"email":    "alice@example.com",
		"password": "other",
	})

	if responseRecorder.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", responseRecorder.Code)
	}
}

func TestRegisterDuplicateKeyInsertIsConflict(t *testing.T) {
	router, _ := newTestRouter(t)
	registerPlayer(t, router, "alice", "alice@example.com", "s3cret")

	// A distinct email slips past the pre-check, so the insert itself trips
	// the unique username index. That must surface as 409, not 500.
	responseRecorder := doJSON(t, router, http.MethodPost, "/api/players/register", "", gin.H{
		"username": "alice",
		"email":    "alice+other@example.com",
		"password": "other",
	})

	if responseRecorder.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d (%s)", responseRecorder.Code, responseRecorder.Body.String())
	}
}

func TestRegisterRejectsMissingFields(t *testing.T) {
	router, _ := newTestRouter(t)

	responseRecorder := doJSON(t, router, http.MethodPost, "/api/players/register", "", gin.H{
		"username": "alice",
	})

	if responseRecorder.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", responseRecorder.Code)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	router, _ := newTestRouter(t)

	responseRecorder := doJSON(t, router, http.MethodPost, "/api/players/login", "", gin.H{
		"username": "ghost",
		"password": "whatever",
	})

	if responseRecorder.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", responseRecorder.Code)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	router, _ := newTestRouter(t)
	registerPlayer(t, router, "alice", "alice@example.com", "s3cret")

	responseRecorder := doJSON(t, router, http.MethodPost, "/api/players/login", "", gin.H{
		"username": "alice",
		"password": "wrong",
	})

	if responseRecorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", responseRecorder.Code)
	}
}

func TestLoginDeletedAccountRejectedBeforePasswordCheck(t *testing.T) {
	router, conn := newTestRouter(t)
	registerPlayer(t, router, "alice", "alice@example.com", "s3cret")
	if err := conn.Model(&models.Player{}).Where("username = ?", "alice").Update("is_deleted", true).Error; err != nil {
		t.Fatalf("mark deleted: %v", err)
	}

	// Even with the wrong password the deleted state wins, so the client can
	// always tell a deleted account apart from a typo.
	responseRecorder := doJSON(t, router, http.MethodPost, "/api/players/login", "", gin.H{
		"username": "alice",
		"password": "wrong",
	})

	if responseRecorder.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", responseRecorder.Code)
	}
	if msg := decodeBody(t, responseRecorder)["message"]; msg != "account is deleted" {
		t.Fatalf("expected deleted-account message, got %v", msg)
	}
}
