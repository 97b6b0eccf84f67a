package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/platyfa/platyfa-api/internal/models"
)

func TestCreateGameSession(t *testing.T) {
	router, conn := newTestRouter(t)
	registerPlayer(t, router, "alice", "alice@example.com", "s3cret")
	token := loginPlayer(t, router, "alice", "s3cret")

	responseRecorder := doJSON(t, router, http.MethodPost, "/api/players/game_sessions", token, gin.H{
		"level":          "swamp-3",
		"duration_level": 180,
		"game_result":    "win",
		"kills":          12,
		"jumps":          44,
		"frequency_cake": 3,
		"impact_cake":    90,
	})
	if responseRecorder.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d (%s)", responseRecorder.Code, responseRecorder.Body.String())
	}
	if _, ok := decodeBody(t, responseRecorder)["gameSessionId"]; !ok {
		t.Fatalf("expected gameSessionId in response")
	}

	var session models.GameSession
	if err := conn.First(&session).Error; err != nil {
		t.Fatalf("load session: %v", err)
	}
	if session.PlayerID != lookupPlayerID(t, router, token) {
		t.Fatalf("session owner mismatch: got %d", session.PlayerID)
	}
	if session.Level != "swamp-3" || session.Kills != 12 || session.FrequencyCake != 3 {
		t.Fatalf("session fields not stored: %+v", session)
	}
}

func TestCreateGameSessionRejectsBadResult(t *testing.T) {
	router, _ := newTestRouter(t)
	registerPlayer(t, router, "alice", "alice@example.com", "s3cret")
	token := loginPlayer(t, router, "alice", "s3cret")

	responseRecorder := doJSON(t, router, http.MethodPost, "/api/players/game_sessions", token, gin.H{
		"level":       "swamp-3",
		"game_result": "draw",
	})

	if responseRecorder.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", responseRecorder.Code)
	}
}

func TestGameStatisticsEmpty(t *testing.T) {
	router, _ := newTestRouter(t)
	registerPlayer(t, router, "alice", "alice@example.com", "s3cret")
	token := loginPlayer(t, router, "alice", "s3cret")

	responseRecorder := doJSON(t, router, http.MethodGet, "/api/players/game_statistics", token, nil)

	if responseRecorder.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", responseRecorder.Code)
	}
}

func TestGameStatisticsAggregatesByMonth(t *testing.T) {
	router, _ := newTestRouter(t)
	registerPlayer(t, router, "alice", "alice@example.com", "s3cret")
	registerPlayer(t, router, "bob", "bob@example.com", "hunter2")
	aliceToken := loginPlayer(t, router, "alice", "s3cret")
	bobToken := loginPlayer(t, router, "bob", "hunter2")

	for _, upload := range []gin.H{
		{"level": "swamp-3", "duration_level": 100, "game_result": "win", "kills": 5},
		{"level": "swamp-3", "duration_level": 200, "game_result": "loss", "kills": 1},
	} {
		if rec := doJSON(t, router, http.MethodPost, "/api/players/game_sessions", aliceToken, upload); rec.Code != http.StatusOK {
			t.Fatalf("upload: expected status 200, got %d", rec.Code)
		}
	}
	// Bob's session must not leak into Alice's statistics.
	if rec := doJSON(t, router, http.MethodPost, "/api/players/game_sessions", bobToken, gin.H{
		"level": "swamp-3", "duration_level": 999, "game_result": "win",
	}); rec.Code != http.StatusOK {
		t.Fatalf("upload: expected status 200, got %d", rec.Code)
	}

	responseRecorder := doJSON(t, router, http.MethodGet, "/api/players/game_statistics", aliceToken, nil)
	if responseRecorder.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d (%s)", responseRecorder.Code, responseRecorder.Body.String())
	}

	payload := decodeBody(t, responseRecorder)
	rows, ok := payload["statistics"].([]any)
	if !ok || len(rows) != 1 {
		t.Fatalf("expected one monthly row, got %v", payload["statistics"])
	}
	row, ok := rows[0].(map[string]any)
	if !ok {
		t.Fatalf("unexpected row shape: %v", rows[0])
	}
	if month := row["month"]; month != time.Now().UTC().Format("01") {
		t.Fatalf("expected two-digit month label %q, got %v", time.Now().UTC().Format("01"), month)
	}
	if row["sessions"] != float64(2) {
		t.Fatalf("expected 2 sessions, got %v", row["sessions"])
	}
	if row["wins"] != float64(1) {
		t.Fatalf("expected 1 win, got %v", row["wins"])
	}
	if row["losses"] != float64(1) {
		t.Fatalf("expected 1 loss, got %v", row["losses"])
	}
	if row["avg_duration"] != float64(150) {
		t.Fatalf("expected avg duration 150, got %v", row["avg_duration"])
	}
	if row["total_kills"] != float64(6) {
		t.Fatalf("expected 6 kills, got %v", row["total_kills"])
	}
}
