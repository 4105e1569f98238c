package models

import "time"

type Participant struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_participant_user_session" json:"user_id"`
	SessionID uint      `gorm:"not null;uniqueIndex:idx_participant_user_session;index" json:"session_id"`
	JoinedAt  time.Time `gorm:"not null" json:"joined_at"`
}
