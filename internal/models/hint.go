package models

type Hint struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	PuzzleID uint   `gorm:"not null;index" json:"puzzle_id"`
	Puzzle   Puzzle `gorm:"foreignKey:PuzzleID;constraint:OnDelete:CASCADE" json:"-"`
	Text     string `gorm:"type:text;not null" json:"text"`
}
