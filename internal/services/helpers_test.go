package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"escape-room-backend/internal/config"
	"escape-room-backend/internal/database"
	"escape-room-backend/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var admin = Identity{UserID: 1, IsAdmin: true}

type testEnv struct {
	db         *gorm.DB
	auth       *AuthService
	catalog    *CatalogService
	scheduler  *SchedulerService
	enrollment *EnrollmentService
	progress   *ProgressService
	cache      *MemoryProgressCache
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(&config.Config{
		DBDriver:   "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "escape.db"),
		DBLogLevel: "silent",
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)
	env := &testEnv{
		db:         db,
		auth:       NewAuthService(db, "test-secret", time.Hour),
		catalog:    NewCatalogService(db),
		scheduler:  NewSchedulerService(db, time.UTC),
		enrollment: NewEnrollmentService(db),
		cache:      NewMemoryProgressCache(time.Minute),
	}
	env.progress = NewProgressService(db, env.enrollment, env.scheduler, env.catalog, env.cache)
	return env
}

func (e *testEnv) createUser(t *testing.T, username string) uint {
	t.Helper()
	user := models.User{Username: username, PasswordHash: "x"}
	require.NoError(t, e.db.Create(&user).Error)
	return user.ID
}

// createRoom makes a room whose puzzles have the given answers, in sequence order.
func (e *testEnv) createRoom(t *testing.T, theme string, answers ...string) (*models.Room, []models.Puzzle) {
	t.Helper()
	ctx := context.Background()
	room, err := e.catalog.CreateRoom(ctx, admin, RoomInput{
		Theme: theme, Difficulty: "medium", Capacity: 6, Duration: 60,
	})
	require.NoError(t, err)

	puzzles := make([]models.Puzzle, 0, len(answers))
	for i, answer := range answers {
		p, err := e.catalog.CreatePuzzle(ctx, admin, PuzzleInput{
			RoomID: room.ID, Description: "puzzle", Type: "riddle", SequenceNumber: i + 1, Answer: answer,
		})
		require.NoError(t, err)
		puzzles = append(puzzles, *p)
	}
	return room, puzzles
}

func (e *testEnv) createSession(t *testing.T, roomID uint, at time.Time) *models.Session {
	t.Helper()
	session := models.Session{RoomID: roomID, DateTime: at.UTC(), Status: models.SessionStatusUpcoming}
	require.NoError(t, e.db.Create(&session).Error)
	return &session
}

func (e *testEnv) attemptCount(t *testing.T, sessionID uint) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(&models.PuzzleAttempt{}).Where("session_id = ?", sessionID).Count(&n).Error)
	return n
}

func (e *testEnv) sessionStatus(t *testing.T, sessionID uint) models.SessionStatus {
	t.Helper()
	var s models.Session
	require.NoError(t, e.db.First(&s, sessionID).Error)
	return s.Status
}
