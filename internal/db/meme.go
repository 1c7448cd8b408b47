package db

import "time"

type Meme struct {
	ID        uint      `gorm:"primaryKey"`
	ImageURL  string    `gorm:"column:image_url;size:512;not null"`
	CreatedAt time.Time `gorm:"not null"`
}
