package models

import "time"

type SessionStatus string

const (
	SessionStatusUpcoming  SessionStatus = "upcoming"
	SessionStatusCompleted SessionStatus = "completed"
)

// Session is a room booked for a date and time in venue local time.
// Status only ever moves from upcoming to completed.
type Session struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	RoomID    uint          `gorm:"not null;index" json:"room_id"`
	Room      Room          `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE" json:"-"`
	DateTime  time.Time     `gorm:"not null;index" json:"date_time"`
	Status    SessionStatus `gorm:"size:20;not null;default:'upcoming';index" json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}
