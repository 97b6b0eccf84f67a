package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/platyfa/platyfa-api/internal/db"
	"github.com/platyfa/platyfa-api/internal/models"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// StatsHandler computes the back-office dashboard aggregates.
type StatsHandler struct {
	db *gorm.DB
}

// NewStatsHandler constructs a StatsHandler.
func NewStatsHandler(db *gorm.DB) *StatsHandler {
	return &StatsHandler{db: db}
}

// monthlyActivity is one month of platform-wide activity.
type monthlyActivity struct {
	Month       string  `json:"month"`
	NewPlayers  int64   `json:"new_players"`
	Sessions    int64   `json:"sessions"`
	AvgDuration float64 `json:"avg_duration"`
}

// levelTrend is one level's popularity and win rate over the last month.
type levelTrend struct {
	Level    string  `json:"level"`
	Sessions int64   `json:"sessions"`
	WinRate  float64 `json:"win_rate"`
}

// itemUsage sums item use and damage across all sessions of the last month.
type itemUsage struct {
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

// Overview returns the dashboard payload: a year of monthly signups and
// session activity, the five most-played levels of the last month with their
// win rates, and the last month's item usage totals.
func (h *StatsHandler) Overview(c *gin.Context) {
	conn := h.db.WithContext(c.Request.Context())
	now := time.Now().UTC()
	yearAgo := now.AddDate(-1, 0, 0)
	monthAgo := now.AddDate(0, -1, 0)

	signupMonth := db.MonthTruncExpr(conn, "login_date")
	var signups []struct {
		Month string
		Count int64
	}
	errSignups := conn.Model(&models.Player{}).
		Select(signupMonth+" AS month, COUNT(*) AS count").
		Where("login_date >= ?", yearAgo).
		Group(signupMonth).
		Order("month").
		Scan(&signups).Error
	if errSignups != nil {
		log.WithError(errSignups).Error("admin stats: signup query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false})
		return
	}

	sessionMonth := db.MonthTruncExpr(conn, "date")
	var sessions []struct {
		Month       string
		Count       int64
		AvgDuration float64
	}
	errSessions := conn.Model(&models.GameSession{}).
		Select(sessionMonth+" AS month, COUNT(*) AS count, AVG(duration_level) AS avg_duration").
		Where("date >= ?", yearAgo).
		Group(sessionMonth).
		Order("month").
		Scan(&sessions).Error
	if errSessions != nil {
		log.WithError(errSessions).Error("admin stats: session query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false})
		return
	}

	activityByMonth := make(map[string]*monthlyActivity)
	monthOrder := make([]string, 0, len(signups)+len(sessions))
	activityFor := func(month string) *monthlyActivity {
		if row, exists := activityByMonth[month]; exists {
			return row
		}
		row := &monthlyActivity{Month: month}
		activityByMonth[month] = row
		monthOrder = append(monthOrder, month)
		return row
	}
	for _, s := range signups {
		activityFor(s.Month).NewPlayers = s.Count
	}
	for _, s := range sessions {
		row := activityFor(s.Month)
		row.Sessions = s.Count
		row.AvgDuration = s.AvgDuration
	}
	activity := make([]monthlyActivity, 0, len(monthOrder))
	for _, month := range monthOrder {
		activity = append(activity, *activityByMonth[month])
	}

	var levels []levelTrend
	errLevels := conn.Model(&models.GameSession{}).
		Select("level, COUNT(*) AS sessions"+
			", AVG(CASE WHEN game_result = ? THEN 1.0 ELSE 0.0 END) AS win_rate",
			models.GameResultWin).
		Where("date >= ?", monthAgo).
		Group("level").
		Order("sessions DESC").
		Limit(5).
		Scan(&levels).Error
	if errLevels != nil {
		log.WithError(errLevels).Error("admin stats: level query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false})
		return
	}

	var items itemUsage
	errItems := conn.Model(&models.GameSession{}).
		Select("COALESCE(SUM(frequency_barringtonia), 0) AS frequency_barringtonia" +
			", COALESCE(SUM(frequency_spaggetti), 0) AS frequency_spaggetti" +
			", COALESCE(SUM(frequency_jelly), 0) AS frequency_jelly" +
			", COALESCE(SUM(frequency_hot_tea), 0) AS frequency_hot_tea" +
			", COALESCE(SUM(frequency_cake), 0) AS frequency_cake" +
			", COALESCE(SUM(frequency_melee_attack), 0) AS frequency_melee_attack" +
			", COALESCE(SUM(impact_barringtonia), 0) AS impact_barringtonia" +
			", COALESCE(SUM(impact_spaggetti), 0) AS impact_spaggetti" +
			", COALESCE(SUM(impact_jelly), 0) AS impact_jelly" +
			", COALESCE(SUM(impact_hot_tea), 0) AS impact_hot_tea" +
			", COALESCE(SUM(impact_cake), 0) AS impact_cake" +
			", COALESCE(SUM(impact_melee_attack), 0) AS impact_melee_attack").
		Where("date >= ?", monthAgo).
		Scan(&items).Error
	if errItems != nil {
		log.WithError(errItems).Error("admin stats: item query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"monthly_activity": activity,
		"level_trends":     levels,
		"item_usage":       items,
	})
}
