package models

import "time"

// PuzzleAttempt is an append-only log entry. Rows are never updated or deleted.
type PuzzleAttempt struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	SessionID       uint      `gorm:"not null;index:idx_attempt_session_puzzle" json:"session_id"`
	PuzzleID        uint      `gorm:"not null;index:idx_attempt_session_puzzle" json:"puzzle_id"`
	UserID          uint      `gorm:"not null;index" json:"user_id"`
	SubmittedAnswer string    `gorm:"type:text;not null" json:"submitted_answer"`
	IsSolved        bool      `gorm:"not null;index:idx_attempt_session_puzzle" json:"is_solved"`
	AttemptedAt     time.Time `gorm:"not null" json:"attempted_at"`
}
