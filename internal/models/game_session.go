package models

import "time"

// Game result values recorded per session.
const (
	// GameResultWin marks a won session.
	GameResultWin = "win"
	// GameResultLoss marks a lost session.
	GameResultLoss = "loss"
)

// GameSession is one gameplay-telemetry row uploaded by the game client.
type GameSession struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	PlayerID uint64    `gorm:"column:id_player;not null;index"` // Owning player.
	Date     time.Time `gorm:"not null;index"`                  // Upload timestamp.

	Level         string `gorm:"type:text"` // Level identifier.
	DurationLevel int64  `gorm:"not null"`  // Seconds spent in the level.
	GameResult    string `gorm:"type:text"` // "win" or "loss".

	Kills          int64 `gorm:"not null"` // Enemies defeated.
	Jumps          int64 `gorm:"not null"` // Jump count.
	DamageReceived int64 `gorm:"not null"` // Damage taken.

	FrequencyBarringtonia int64 `gorm:"not null"` // Item uses per session.
	FrequencySpaggetti    int64 `gorm:"not null"`
	FrequencyJelly        int64 `gorm:"not null"`
	FrequencyHotTea       int64 `gorm:"not null"`
	FrequencyCake         int64 `gorm:"not null"`
	FrequencyMeleeAttack  int64 `gorm:"not null"`

	ImpactBarringtonia int64 `gorm:"not null"` // Damage dealt per item.
	ImpactSpaggetti    int64 `gorm:"not null"`
	ImpactJelly        int64 `gorm:"not null"`
	ImpactHotTea       int64 `gorm:"not null"`
	ImpactCake         int64 `gorm:"not null"`
	ImpactMeleeAttack  int64 `gorm:"not null"`
}
