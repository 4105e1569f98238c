package models

// Puzzle belongs to a room. SequenceNumber orders puzzles for display only;
// they may be solved in any order.
type Puzzle struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	RoomID         uint   `gorm:"not null;uniqueIndex:idx_puzzle_room_sequence" json:"room_id"`
	Room           Room   `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE" json:"-"`
	Description    string `gorm:"type:text;not null" json:"description"`
	Type           string `gorm:"size:50" json:"type"`
	SequenceNumber int    `gorm:"not null;uniqueIndex:idx_puzzle_room_sequence" json:"sequence_number"`
	Answer         string `gorm:"size:255;not null" json:"-"`
	Hints          []Hint `gorm:"foreignKey:PuzzleID" json:"hints,omitempty"`
}
