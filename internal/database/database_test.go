package database

import (
	"path/filepath"
	"testing"

	"escape-room-backend/internal/config"
	"escape-room-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(&config.Config{DBDriver: "oracle"})
	assert.Error(t, err)
}

func TestParticipantUniqueIndexTranslatesToDuplicatedKey(t *testing.T) {
	db, err := Open(&config.Config{
		DBDriver:   "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "escape.db"),
		DBLogLevel: "silent",
	})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))

	require.NoError(t, db.Create(&models.Participant{UserID: 1, SessionID: 1}).Error)
	err = db.Create(&models.Participant{UserID: 1, SessionID: 1}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	var count int64
	db.Model(&models.Participant{}).Count(&count)
	assert.Equal(t, int64(1), count)
}
