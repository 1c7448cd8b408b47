package db

import "time"

type Round struct {
	ID               uint        `gorm:"primaryKey"`
	GameID           uint        `gorm:"index;not null"`
	Game             *Game       `gorm:"constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`
	MemeID           uint        `gorm:"index;not null"`
	Meme             *Meme       `gorm:"constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`
	Captions         IDList      `gorm:"column:captions;not null"`
	CorrectCaptionID *uint       `gorm:"column:correct_caption_id"`
	Status           RoundStatus `gorm:"type:integer;not null"`
	Score            int         `gorm:"not null;default:0"`
	Answer           *uint       `gorm:"column:answer"`
	CreatedAt        time.Time   `gorm:"not null"`
	UpdatedAt        time.Time   `gorm:"not null"`
}
