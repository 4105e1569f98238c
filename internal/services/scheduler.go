package services

import (
	"context"
	"fmt"
	"time"

	"escape-room-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Accepted layouts for the HTML datetime-local input.
var sessionTimeLayouts = []string{"2006-01-02T15:04", "2006-01-02T15:04:05"}

type SchedulerService struct {
	db    *gorm.DB
	venue *time.Location
	now   func() time.Time
}

func NewSchedulerService(db *gorm.DB, venue *time.Location) *SchedulerService {
	if venue == nil {
		venue = time.Local
	}
	return &SchedulerService{db: db, venue: venue, now: time.Now}
}

// UserSession is a registered session as shown on a user's home page.
type UserSession struct {
	SessionID uint                 `json:"session_id"`
	DateTime  time.Time            `json:"date_time"`
	Status    models.SessionStatus `json:"status"`
	Theme     string               `json:"theme"`
}

// ListUpcoming returns the room's sessions that are still upcoming and in
// the future, earliest first.
func (s *SchedulerService) ListUpcoming(ctx context.Context, roomID uint) ([]models.Session, error) {
	var sessions []models.Session
	if err := s.db.WithContext(ctx).
		Where("room_id = ? AND status = ? AND date_time > ?", roomID, models.SessionStatusUpcoming, s.now().UTC()).
		Order("date_time ASC").
		Find(&sessions).Error; err != nil {
		return nil, storageError("list upcoming sessions", err)
	}
	return sessions, nil
}

func (s *SchedulerService) GetSession(ctx context.Context, sessionID uint) (*models.Session, error) {
	var session models.Session
	if err := s.db.WithContext(ctx).First(&session, sessionID).Error; err != nil {
		return nil, notFoundOr("load session", "session", err)
	}
	return &session, nil
}

func (s *SchedulerService) ListForUser(ctx context.Context, userID uint) ([]UserSession, error) {
	var rows []UserSession
	err := s.db.WithContext(ctx).
		Table("sessions").
		Select("sessions.id AS session_id, sessions.date_time, sessions.status, rooms.theme").
		Joins("JOIN participants ON participants.session_id = sessions.id").
		Joins("JOIN rooms ON rooms.id = sessions.room_id").
		Where("participants.user_id = ?", userID).
		Order("sessions.date_time DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, storageError("list user sessions", err)
	}
	return rows, nil
}

// CreateSession schedules a room. dateTime is a datetime-local value read in
// the venue's timezone.
func (s *SchedulerService) CreateSession(ctx context.Context, actor Identity, roomID uint, dateTime string) (*models.Session, error) {
	if !actor.IsAdmin {
		return nil, ErrForbidden
	}

	at, err := s.ParseVenueTime(dateTime)
	if err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	if err := db.Select("id").First(&models.Room{}, roomID).Error; err != nil {
		return nil, notFoundOr("load room", "room", err)
	}

	session := models.Session{
		RoomID:   roomID,
		DateTime: at.UTC(),
		Status:   models.SessionStatusUpcoming,
	}
	if err := db.Create(&session).Error; err != nil {
		return nil, storageError("create session", err)
	}
	return &session, nil
}

func (s *SchedulerService) ParseVenueTime(value string) (time.Time, error) {
	for _, layout := range sessionTimeLayouts {
		if t, err := time.ParseInLocation(layout, value, s.venue); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: date_time must look like 2006-01-02T15:04", ErrInvalidInput)
}

// MarkCompleted moves a session to completed. It is a no-op on a session
// that is already completed.
func (s *SchedulerService) MarkCompleted(ctx context.Context, sessionID uint) (bool, error) {
	return s.markCompleted(s.db.WithContext(ctx), sessionID)
}

// markCompleted runs on whatever handle it is given so the progress engine
// can call it inside the attempt transaction. It reports whether this call
// performed the transition.
func (s *SchedulerService) markCompleted(db *gorm.DB, sessionID uint) (bool, error) {
	res := db.Model(&models.Session{}).
		Where("id = ? AND status = ?", sessionID, models.SessionStatusUpcoming).
		Update("status", models.SessionStatusCompleted)
	if res.Error != nil {
		return false, storageError("complete session", res.Error)
	}
	if res.RowsAffected > 0 {
		return true, nil
	}

	var count int64
	if err := db.Model(&models.Session{}).Where("id = ?", sessionID).Count(&count).Error; err != nil {
		return false, storageError("load session", err)
	}
	if count == 0 {
		return false, fmt.Errorf("session %w", ErrNotFound)
	}
	return false, nil
}

// lockSession reads the session row and, on stores that support it, holds a
// row lock until the surrounding transaction ends.
func lockSession(tx *gorm.DB, sessionID uint) (*models.Session, error) {
	q := tx
	if tx.Dialector.Name() != "sqlite" {
		q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var session models.Session
	if err := q.First(&session, sessionID).Error; err != nil {
		return nil, notFoundOr("lock session", "session", err)
	}
	return &session, nil
}
