package db

import "time"

// User holds an opaque password verifier and salt; neither is derived here.
type User struct {
	Username  string    `gorm:"primaryKey;size:64"`
	Password  []byte    `gorm:"not null"`
	Salt      []byte    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
	Games     []Game    `gorm:"foreignKey:Username;references:Username;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`
}
