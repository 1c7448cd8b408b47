package db

import (
	"time"

	"gorm.io/datatypes"
)

const (
	EventGameCreated   = "game_created"
	EventRoundCreated  = "round_created"
	EventRoundResolved = "round_resolved"
	EventGameCompleted = "game_completed"
)

type Event struct {
	ID        uint           `gorm:"primaryKey"`
	GameID    uint           `gorm:"index;not null"`
	Game      *Game          `gorm:"constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`
	RoundID   *uint          `gorm:"index"`
	Type      string         `gorm:"size:64;not null"`
	Payload   datatypes.JSON `gorm:"not null"`
	CreatedAt time.Time      `gorm:"not null"`
}
