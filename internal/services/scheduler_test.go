package services

import (
	"context"
	"testing"
	"time"
	_ "time/tzdata"

	"escape-room-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListUpcoming(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	env.scheduler.now = func() time.Time { return now }

	room, _ := env.createRoom(t, "Prison", "key")
	other, _ := env.createRoom(t, "Castle", "moat")

	later := env.createSession(t, room.ID, now.Add(48*time.Hour))
	sooner := env.createSession(t, room.ID, now.Add(2*time.Hour))
	env.createSession(t, room.ID, now.Add(-2*time.Hour))
	done := env.createSession(t, room.ID, now.Add(3*time.Hour))
	env.createSession(t, other.ID, now.Add(time.Hour))
	_, err := env.scheduler.MarkCompleted(ctx, done.ID)
	require.NoError(t, err)

	sessions, err := env.scheduler.ListUpcoming(ctx, room.ID)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, sooner.ID, sessions[0].ID)
	assert.Equal(t, later.ID, sessions[1].ID)
}

func TestMarkCompletedIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	room, _ := env.createRoom(t, "Mine", "ore")
	session := env.createSession(t, room.ID, time.Now().Add(time.Hour))

	changed, err := env.scheduler.MarkCompleted(ctx, session.ID)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = env.scheduler.MarkCompleted(ctx, session.ID)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, models.SessionStatusCompleted, env.sessionStatus(t, session.ID))
}

func TestMarkCompletedUnknownSession(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.scheduler.MarkCompleted(context.Background(), 4242)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateSession(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	paris, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)
	env.scheduler.venue = paris

	room, _ := env.createRoom(t, "Opera", "phantom")

	session, err := env.scheduler.CreateSession(ctx, admin, room.ID, "2026-07-14T21:30")
	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusUpcoming, session.Status)
	assert.True(t, session.DateTime.Equal(time.Date(2026, 7, 14, 19, 30, 0, 0, time.UTC)))

	_, err = env.scheduler.CreateSession(ctx, Identity{UserID: 7}, room.ID, "2026-07-14T21:30")
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = env.scheduler.CreateSession(ctx, admin, room.ID, "14/07/2026 21:30")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = env.scheduler.CreateSession(ctx, admin, 999, "2026-07-14T21:30")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListForUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	room, _ := env.createRoom(t, "Circus", "clown")
	early := env.createSession(t, room.ID, time.Now().Add(time.Hour))
	late := env.createSession(t, room.ID, time.Now().Add(24*time.Hour))
	env.createSession(t, room.ID, time.Now().Add(48*time.Hour))
	user := env.createUser(t, "u")
	for _, s := range []*models.Session{early, late} {
		_, err := env.enrollment.Register(ctx, user, s.ID)
		require.NoError(t, err)
	}

	rows, err := env.scheduler.ListForUser(ctx, user)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, late.ID, rows[0].SessionID)
	assert.Equal(t, early.ID, rows[1].SessionID)
	assert.Equal(t, "Circus", rows[0].Theme)
	assert.Equal(t, models.SessionStatusUpcoming, rows[0].Status)
}
