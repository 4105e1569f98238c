package services

import (
	"context"
	"log"
	"strings"
	"time"

	"escape-room-backend/internal/metrics"
	"escape-room-backend/internal/models"

	"gorm.io/gorm"
)

const unsolvedPuzzlesSQL = `
SELECT COUNT(*) FROM puzzles p
WHERE p.room_id = ?
  AND NOT EXISTS (
    SELECT 1 FROM puzzle_attempts a
    WHERE a.session_id = ? AND a.puzzle_id = p.id AND a.is_solved = ?
  )`

const attemptLogVersionSQL = `SELECT COALESCE(MAX(id), 0) FROM puzzle_attempts WHERE session_id = ?`

// ProgressService evaluates answer submissions and keeps a session's derived
// solved and completed state in step with the attempt log.
type ProgressService struct {
	db         *gorm.DB
	enrollment *EnrollmentService
	scheduler  *SchedulerService
	catalog    *CatalogService
	cache      ProgressCache
}

func NewProgressService(db *gorm.DB, enrollment *EnrollmentService, scheduler *SchedulerService, catalog *CatalogService, cache ProgressCache) *ProgressService {
	if cache == nil {
		cache = NewMemoryProgressCache(5 * time.Minute)
	}
	return &ProgressService{
		db:         db,
		enrollment: enrollment,
		scheduler:  scheduler,
		catalog:    catalog,
		cache:      cache,
	}
}

type SubmitResult struct {
	Solved        bool                 `json:"solved"`
	SessionStatus models.SessionStatus `json:"session_status"`
	AttemptID     uint                 `json:"attempt_id"`
}

type PuzzleView struct {
	models.Puzzle
	Solved bool `json:"solved"`
}

type SessionView struct {
	Session         models.Session `json:"session"`
	Theme           string         `json:"theme"`
	Puzzles         []PuzzleView   `json:"puzzles"`
	SolvedPuzzleIDs []uint         `json:"solved_puzzle_ids"`
}

// SubmitAnswer checks an answer and appends it to the attempt log. The
// session row lock, the insert and the completion check share one
// transaction, so the last two answers of a session can never both miss
// completion.
func (s *ProgressService) SubmitAnswer(ctx context.Context, sessionID, puzzleID, userID uint, submitted string) (*SubmitResult, error) {
	if err := s.requireParticipant(ctx, sessionID, Identity{UserID: userID}); err != nil {
		return nil, err
	}

	start := time.Now()
	var result SubmitResult
	completedNow := false

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		session, err := lockSession(tx, sessionID)
		if err != nil {
			return err
		}
		if session.Status == models.SessionStatusCompleted {
			return ErrSessionClosed
		}

		var puzzle models.Puzzle
		if err := tx.Where("room_id = ?", session.RoomID).First(&puzzle, puzzleID).Error; err != nil {
			return notFoundOr("load puzzle", "puzzle", err)
		}

		attempt := models.PuzzleAttempt{
			SessionID:       sessionID,
			PuzzleID:        puzzleID,
			UserID:          userID,
			SubmittedAnswer: submitted,
			IsSolved:        answerMatches(puzzle.Answer, submitted),
			AttemptedAt:     time.Now(),
		}
		if err := tx.Create(&attempt).Error; err != nil {
			return storageError("log attempt", err)
		}

		result.Solved = attempt.IsSolved
		result.AttemptID = attempt.ID
		result.SessionStatus = session.Status

		var unsolved int64
		if err := tx.Raw(unsolvedPuzzlesSQL, session.RoomID, sessionID, true).Scan(&unsolved).Error; err != nil {
			return storageError("count unsolved puzzles", err)
		}
		if unsolved > 0 {
			return nil
		}

		completedNow, err = s.scheduler.markCompleted(tx, sessionID)
		if err != nil {
			return err
		}
		result.SessionStatus = models.SessionStatusCompleted
		return nil
	})
	metrics.ObserveAttemptTx(start)
	if err != nil {
		return nil, err
	}

	// The new attempt id already retires the cached set; this just frees it.
	if err := s.cache.Invalidate(ctx, sessionID); err != nil {
		log.Printf("progress: failed to evict solved cache for session %d: %v", sessionID, err)
	}

	metrics.PuzzleAttempts.WithLabelValues(boolLabel(result.Solved)).Inc()
	if completedNow {
		metrics.SessionsCompleted.Inc()
		log.Printf("progress: session %d completed", sessionID)
	}
	return &result, nil
}

// SolvedPuzzleIDs returns the puzzles with at least one solved attempt in
// the session, ascending.
func (s *ProgressService) SolvedPuzzleIDs(ctx context.Context, sessionID uint) ([]uint, error) {
	version, err := s.attemptLogVersion(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	ids, hit, cacheErr := s.cache.Get(ctx, sessionID, version)
	if cacheErr != nil {
		log.Printf("progress: solved cache read failed for session %d: %v", sessionID, cacheErr)
	}
	if hit {
		metrics.CacheHits.Inc()
		return ids, nil
	}
	metrics.CacheMisses.Inc()

	ids = []uint{}
	if err := s.db.WithContext(ctx).
		Model(&models.PuzzleAttempt{}).
		Where("session_id = ? AND is_solved = ?", sessionID, true).
		Distinct("puzzle_id").
		Order("puzzle_id ASC").
		Pluck("puzzle_id", &ids).Error; err != nil {
		return nil, storageError("list solved puzzles", err)
	}

	if cacheErr == nil {
		if err := s.cache.Set(ctx, sessionID, version, ids); err != nil {
			log.Printf("progress: solved cache write failed for session %d: %v", sessionID, err)
		}
	}
	return ids, nil
}

// attemptLogVersion is the session's highest attempt id, 0 before the first
// attempt. It moves in the same transaction as every attempt insert.
func (s *ProgressService) attemptLogVersion(ctx context.Context, sessionID uint) (uint, error) {
	var version uint
	if err := s.db.WithContext(ctx).Raw(attemptLogVersionSQL, sessionID).Scan(&version).Error; err != nil {
		return 0, storageError("read attempt log version", err)
	}
	return version, nil
}

// GetSessionView assembles what a participant needs to play: the session,
// its room's puzzles with hints in sequence order, and which are solved.
// Admins may view any session.
func (s *ProgressService) GetSessionView(ctx context.Context, sessionID uint, caller Identity) (*SessionView, error) {
	if err := s.requireParticipant(ctx, sessionID, caller); err != nil {
		return nil, err
	}

	session, err := s.scheduler.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	room, err := s.catalog.GetRoom(ctx, session.RoomID)
	if err != nil {
		return nil, err
	}
	puzzles, err := s.catalog.PuzzlesForRoom(ctx, session.RoomID)
	if err != nil {
		return nil, err
	}

	puzzleIDs := make([]uint, len(puzzles))
	for i, p := range puzzles {
		puzzleIDs[i] = p.ID
	}
	hints, err := s.catalog.HintsForPuzzles(ctx, puzzleIDs)
	if err != nil {
		return nil, err
	}

	solved, err := s.SolvedPuzzleIDs(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	solvedSet := make(map[uint]struct{}, len(solved))
	for _, id := range solved {
		solvedSet[id] = struct{}{}
	}

	view := &SessionView{
		Session:         *session,
		Theme:           room.Theme,
		Puzzles:         make([]PuzzleView, 0, len(puzzles)),
		SolvedPuzzleIDs: solved,
	}
	for _, p := range puzzles {
		p.Hints = hints[p.ID]
		_, isSolved := solvedSet[p.ID]
		view.Puzzles = append(view.Puzzles, PuzzleView{Puzzle: p, Solved: isSolved})
	}
	return view, nil
}

// AttemptHistory returns the session's attempt log in submission order.
func (s *ProgressService) AttemptHistory(ctx context.Context, sessionID uint, caller Identity) ([]models.PuzzleAttempt, error) {
	if err := s.requireParticipant(ctx, sessionID, caller); err != nil {
		return nil, err
	}

	var attempts []models.PuzzleAttempt
	if err := s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("id ASC").
		Find(&attempts).Error; err != nil {
		return nil, storageError("list attempts", err)
	}
	return attempts, nil
}

// requireParticipant lets admins through. Everyone else must be enrolled;
// a session that does not exist is reported as NotFound rather than Forbidden.
func (s *ProgressService) requireParticipant(ctx context.Context, sessionID uint, caller Identity) error {
	if caller.IsAdmin {
		return nil
	}
	ok, err := s.enrollment.IsParticipant(ctx, caller.UserID, sessionID)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	if _, err := s.scheduler.GetSession(ctx, sessionID); err != nil {
		return err
	}
	return ErrForbidden
}

// answerMatches compares after lower-casing both sides. Whitespace is significant.
func answerMatches(expected, submitted string) bool {
	return strings.ToLower(expected) == strings.ToLower(submitted)
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
