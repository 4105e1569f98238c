package models

import "time"

type Room struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Theme       string    `gorm:"size:255;not null;index" json:"theme"`
	Difficulty  string    `gorm:"size:50;not null" json:"difficulty"`
	Capacity    int       `gorm:"not null" json:"capacity"`
	Duration    int       `gorm:"not null" json:"duration"`
	Description string    `gorm:"type:text" json:"description"`
	ImageURL    string    `gorm:"size:512" json:"image_url"`
	Puzzles     []Puzzle  `gorm:"foreignKey:RoomID" json:"puzzles,omitempty"`
	Sessions    []Session `gorm:"foreignKey:RoomID" json:"sessions,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
