package db

import "time"

type Game struct {
	ID        uint       `gorm:"primaryKey"`
	Username  string     `gorm:"size:64;index;not null"`
	Score     int        `gorm:"not null;default:0"`
	Status    GameStatus `gorm:"type:integer;index;not null"`
	Rounds    IDList     `gorm:"column:rounds;not null"`
	Version   int        `gorm:"not null"`
	CreatedAt time.Time  `gorm:"not null"`
	UpdatedAt time.Time  `gorm:"not null"`
}
