package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/platyfa/platyfa-api/internal/db"
	apihttp "github.com/platyfa/platyfa-api/internal/http"
	"github.com/platyfa/platyfa-api/internal/models"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SessionHandler receives gameplay telemetry and serves per-player
// statistics.
type SessionHandler struct {
	db *gorm.DB
}

// NewSessionHandler constructs a SessionHandler.
func NewSessionHandler(db *gorm.DB) *SessionHandler {
	return &SessionHandler{db: db}
}

// sessionRequest is the telemetry payload the game client uploads at the end
// of a level. The player id comes from the token, never from the body.
type sessionRequest struct {
	Level          string `json:"level"`
	DurationLevel  int64  `json:"duration_level"`
	GameResult     string `json:"game_result"`
	Kills          int64  `json:"kills"`
	Jumps          int64  `json:"jumps"`
	DamageReceived int64  `json:"damage_received"`

	FrequencyBarringtonia int64 `json:"frequency_barringtonia"`
	FrequencySpaggetti    int64 `json:"frequency_spaggetti"`
	FrequencyJelly        int64 `json:"frequency_jelly"`
	FrequencyHotTea       int64 `json:"frequency_hot_tea"`
	FrequencyCake         int64 `json:"frequency_cake"`
	FrequencyMeleeAttack  int64 `json:"frequency_melee_attack"`

	ImpactBarringtonia int64 `json:"impact_barringtonia"`
	ImpactSpaggetti    int64 `json:"impact_spaggetti"`
	ImpactJelly        int64 `json:"impact_jelly"`
	ImpactHotTea       int64 `json:"impact_hot_tea"`
	ImpactCake         int64 `json:"impact_cake"`
	ImpactMeleeAttack  int64 `json:"impact_melee_attack"`
}

// Create stores one telemetry row for the authenticated player.
func (h *SessionHandler) Create(c *gin.Context) {
	claims, ok := apihttp.ClaimsFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "token not provided"})
		return
	}

	var body sessionRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid json"})
		return
	}
	if body.GameResult != models.GameResultWin && body.GameResult != models.GameResultLoss {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "game_result must be win or loss"})
		return
	}

	session := models.GameSession{
		PlayerID:       claims.PlayerID,
		Date:           time.Now().UTC(),
		Level:          body.Level,
		DurationLevel:  body.DurationLevel,
		GameResult:     body.GameResult,
		Kills:          body.Kills,
		Jumps:          body.Jumps,
		DamageReceived: body.DamageReceived,

		FrequencyBarringtonia: body.FrequencyBarringtonia,
		FrequencySpaggetti:    body.FrequencySpaggetti,
		FrequencyJelly:        body.FrequencyJelly,
		FrequencyHotTea:       body.FrequencyHotTea,
		FrequencyCake:         body.FrequencyCake,
		FrequencyMeleeAttack:  body.FrequencyMeleeAttack,

		ImpactBarringtonia: body.ImpactBarringtonia,
		ImpactSpaggetti:    body.ImpactSpaggetti,
		ImpactJelly:        body.ImpactJelly,
		ImpactHotTea:       body.ImpactHotTea,
		ImpactCake:         body.ImpactCake,
		ImpactMeleeAttack:  body.ImpactMeleeAttack,
	}
	if errCreate := h.db.WithContext(c.Request.Context()).Create(&session).Error; errCreate != nil {
		log.WithError(errCreate).Error("create game session: insert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "gameSessionId": session.ID})
}

// monthlyPlayerStat is one aggregate row of a player's monthly activity.
type monthlyPlayerStat struct {
	Month          string  `json:"month"`
	Sessions       int64   `json:"sessions"`
	Wins           int64   `json:"wins"`
	Losses         int64   `json:"losses"`
	AvgDuration    float64 `json:"avg_duration"`
	TotalKills     int64   `json:"total_kills"`
	TotalJumps     int64   `json:"total_jumps"`
	DamageReceived int64   `json:"damage_received"`

	FrequencyBarringtonia int64 `json:"frequency_barringtonia"`
	FrequencySpaggetti    int64 `json:"frequency_spaggetti"`
	FrequencyJelly        int64 `json:"frequency_jelly"`
	FrequencyHotTea       int64 `json:"frequency_hot_tea"`
	FrequencyCake         int64 `json:"frequency_cake"`
	FrequencyMeleeAttack  int64 `json:"frequency_melee_attack"`

	ImpactBarringtonia int64 `json:"impact_barringtonia"`
	ImpactSpaggetti    int64 `json:"impact_spaggetti"`
	ImpactJelly        int64 `json:"impact_jelly"`
	ImpactHotTea       int64 `json:"impact_hot_tea"`
	ImpactCake         int64 `json:"impact_cake"`
	ImpactMeleeAttack  int64 `json:"impact_melee_attack"`
}

// Statistics aggregates the caller's sessions by calendar month.
func (h *SessionHandler) Statistics(c *gin.Context) {
	claims, ok := apihttp.ClaimsFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "token not provided"})
		return
	}

	conn := h.db.WithContext(c.Request.Context())
	monthExpr := db.MonthNameExpr(conn, "date")

	var rows []monthlyPlayerStat
	errQuery := conn.Model(&models.GameSession{}).
		Select(monthExpr+" AS month"+
			", COUNT(*) AS sessions"+
			", SUM(CASE WHEN game_result = ? THEN 1 ELSE 0 END) AS wins"+
			", SUM(CASE WHEN game_result = ? THEN 1 ELSE 0 END) AS losses"+
			", AVG(duration_level) AS avg_duration"+
			", SUM(kills) AS total_kills"+
			", SUM(jumps) AS total_jumps"+
			", SUM(damage_received) AS damage_received"+
			", SUM(frequency_barringtonia) AS frequency_barringtonia"+
			", SUM(frequency_spaggetti) AS frequency_spaggetti"+
			", SUM(frequency_jelly) AS frequency_jelly"+
			", SUM(frequency_hot_tea) AS frequency_hot_tea"+
			", SUM(frequency_cake) AS frequency_cake"+
			", SUM(frequency_melee_attack) AS frequency_melee_attack"+
			", SUM(impact_barringtonia) AS impact_barringtonia"+
			", SUM(impact_spaggetti) AS impact_spaggetti"+
			", SUM(impact_jelly) AS impact_jelly"+
			", SUM(impact_hot_tea) AS impact_hot_tea"+
			", SUM(impact_cake) AS impact_cake"+
			", SUM(impact_melee_attack) AS impact_melee_attack",
			models.GameResultWin, models.GameResultLoss).
		Where("id_player = ?", claims.PlayerID).
		Group(monthExpr).
		Order(db.MonthTruncExpr(conn, "MIN(date)")).
		Scan(&rows).Error
	if errQuery != nil {
		log.WithError(errQuery).Error("game statistics: query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false})
		return
	}
	if len(rows) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "no game sessions found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "statistics": rows})
}
