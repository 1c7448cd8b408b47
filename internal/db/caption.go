package db

import "time"

type Caption struct {
	ID        uint      `gorm:"primaryKey"`
	Text      string    `gorm:"size:280;not null"`
	MemeIDs   IDList    `gorm:"column:meme_ids;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// ValidFor reports whether the caption fits the given meme.
func (c Caption) ValidFor(memeID uint) bool {
	return c.MemeIDs.Contains(memeID)
}
