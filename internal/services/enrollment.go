package services

import (
	"context"
	"errors"
	"time"

	"escape-room-backend/internal/metrics"
	"escape-room-backend/internal/models"

	"gorm.io/gorm"
)

type EnrollmentService struct {
	db *gorm.DB
}

func NewEnrollmentService(db *gorm.DB) *EnrollmentService {
	return &EnrollmentService{db: db}
}

// Register enrolls the user in the session. Duplicates are decided by the
// (user, session) unique index at insert time.
func (s *EnrollmentService) Register(ctx context.Context, userID, sessionID uint) (*models.Participant, error) {
	db := s.db.WithContext(ctx)
	if err := db.Select("id").First(&models.Session{}, sessionID).Error; err != nil {
		return nil, notFoundOr("load session", "session", err)
	}

	p := models.Participant{
		UserID:    userID,
		SessionID: sessionID,
		JoinedAt:  time.Now(),
	}
	if err := db.Create(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEnrollment
		}
		return nil, storageError("create participant", err)
	}

	metrics.Enrollments.Inc()
	return &p, nil
}

func (s *EnrollmentService) IsParticipant(ctx context.Context, userID, sessionID uint) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).
		Model(&models.Participant{}).
		Where("user_id = ? AND session_id = ?", userID, sessionID).
		Count(&count).Error; err != nil {
		return false, storageError("check participant", err)
	}
	return count > 0, nil
}
