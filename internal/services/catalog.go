package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"escape-room-backend/internal/models"

	"gorm.io/gorm"
)

const placeholderImageURL = "https://placehold.co/600x400/cccccc/ffffff?text=%s"

// CatalogService owns rooms, puzzles and hints. Reads are open to any
// authenticated caller; mutation requires an admin identity.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

type RoomInput struct {
	Theme       string `json:"theme"`
	Difficulty  string `json:"difficulty"`
	Capacity    int    `json:"capacity"`
	Duration    int    `json:"duration"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

type PuzzleInput struct {
	RoomID         uint   `json:"room_id"`
	Description    string `json:"description"`
	Type           string `json:"type"`
	SequenceNumber int    `json:"sequence_number"`
	Answer         string `json:"answer"`
}

// PuzzleSummary is a row of the admin dashboard puzzle list.
type PuzzleSummary struct {
	PuzzleID    uint   `json:"puzzle_id"`
	Description string `json:"description"`
	Theme       string `json:"theme"`
}

type RoomExport struct {
	RoomInput
	Puzzles []PuzzleExport `json:"puzzles"`
}

type PuzzleExport struct {
	Description    string   `json:"description"`
	Type           string   `json:"type,omitempty"`
	SequenceNumber int      `json:"sequence_number"`
	Answer         string   `json:"answer"`
	Hints          []string `json:"hints,omitempty"`
}

func (s *CatalogService) ListRooms(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	if err := s.db.WithContext(ctx).Order("theme ASC").Find(&rooms).Error; err != nil {
		return nil, storageError("list rooms", err)
	}
	return rooms, nil
}

func (s *CatalogService) GetRoom(ctx context.Context, roomID uint) (*models.Room, error) {
	var room models.Room
	if err := s.db.WithContext(ctx).First(&room, roomID).Error; err != nil {
		return nil, notFoundOr("load room", "room", err)
	}
	return &room, nil
}

// PuzzlesForRoom returns the room's puzzles ordered by sequence number.
func (s *CatalogService) PuzzlesForRoom(ctx context.Context, roomID uint) ([]models.Puzzle, error) {
	var puzzles []models.Puzzle
	if err := s.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("sequence_number ASC").
		Find(&puzzles).Error; err != nil {
		return nil, storageError("list puzzles", err)
	}
	return puzzles, nil
}

func (s *CatalogService) HintsForPuzzle(ctx context.Context, puzzleID uint) ([]models.Hint, error) {
	var hints []models.Hint
	if err := s.db.WithContext(ctx).
		Where("puzzle_id = ?", puzzleID).
		Order("id ASC").
		Find(&hints).Error; err != nil {
		return nil, storageError("list hints", err)
	}
	return hints, nil
}

// HintsForPuzzles loads hints for several puzzles in one query, keyed by puzzle.
func (s *CatalogService) HintsForPuzzles(ctx context.Context, puzzleIDs []uint) (map[uint][]models.Hint, error) {
	byPuzzle := make(map[uint][]models.Hint, len(puzzleIDs))
	if len(puzzleIDs) == 0 {
		return byPuzzle, nil
	}

	var hints []models.Hint
	if err := s.db.WithContext(ctx).
		Where("puzzle_id IN ?", puzzleIDs).
		Order("id ASC").
		Find(&hints).Error; err != nil {
		return nil, storageError("list hints", err)
	}
	for _, h := range hints {
		byPuzzle[h.PuzzleID] = append(byPuzzle[h.PuzzleID], h)
	}
	return byPuzzle, nil
}

func (s *CatalogService) CreateRoom(ctx context.Context, actor Identity, input RoomInput) (*models.Room, error) {
	if !actor.IsAdmin {
		return nil, ErrForbidden
	}
	if strings.TrimSpace(input.Theme) == "" {
		return nil, fmt.Errorf("%w: theme is required", ErrInvalidInput)
	}
	if input.Capacity <= 0 || input.Duration <= 0 {
		return nil, fmt.Errorf("%w: capacity and duration must be positive", ErrInvalidInput)
	}

	room := newRoom(input)
	if err := s.db.WithContext(ctx).Create(&room).Error; err != nil {
		return nil, storageError("create room", err)
	}
	return &room, nil
}

func (s *CatalogService) CreatePuzzle(ctx context.Context, actor Identity, input PuzzleInput) (*models.Puzzle, error) {
	if !actor.IsAdmin {
		return nil, ErrForbidden
	}
	if input.Description == "" || input.Answer == "" {
		return nil, fmt.Errorf("%w: description and answer are required", ErrInvalidInput)
	}

	db := s.db.WithContext(ctx)
	if err := db.Select("id").First(&models.Room{}, input.RoomID).Error; err != nil {
		return nil, notFoundOr("load room", "room", err)
	}

	puzzle := models.Puzzle{
		RoomID:         input.RoomID,
		Description:    input.Description,
		Type:           input.Type,
		SequenceNumber: input.SequenceNumber,
		Answer:         input.Answer,
	}
	if err := db.Create(&puzzle).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateSequence
		}
		return nil, storageError("create puzzle", err)
	}
	return &puzzle, nil
}

func (s *CatalogService) CreateHint(ctx context.Context, actor Identity, puzzleID uint, text string) (*models.Hint, error) {
	if !actor.IsAdmin {
		return nil, ErrForbidden
	}
	if text == "" {
		return nil, fmt.Errorf("%w: hint text is required", ErrInvalidInput)
	}

	db := s.db.WithContext(ctx)
	if err := db.Select("id").First(&models.Puzzle{}, puzzleID).Error; err != nil {
		return nil, notFoundOr("load puzzle", "puzzle", err)
	}

	hint := models.Hint{PuzzleID: puzzleID, Text: text}
	if err := db.Create(&hint).Error; err != nil {
		return nil, storageError("create hint", err)
	}
	return &hint, nil
}

func (s *CatalogService) ListAllPuzzles(ctx context.Context, actor Identity) ([]PuzzleSummary, error) {
	if !actor.IsAdmin {
		return nil, ErrForbidden
	}

	var rows []PuzzleSummary
	err := s.db.WithContext(ctx).
		Table("puzzles").
		Select("puzzles.id AS puzzle_id, puzzles.description, rooms.theme").
		Joins("JOIN rooms ON rooms.id = puzzles.room_id").
		Order("rooms.theme ASC, puzzles.sequence_number ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, storageError("list puzzles", err)
	}
	return rows, nil
}

// ExportRoom includes puzzle answers, so it is admin-only.
func (s *CatalogService) ExportRoom(ctx context.Context, actor Identity, roomID uint) (*RoomExport, error) {
	if !actor.IsAdmin {
		return nil, ErrForbidden
	}

	var room models.Room
	err := s.db.WithContext(ctx).
		Preload("Puzzles", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence_number ASC")
		}).
		Preload("Puzzles.Hints", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		First(&room, roomID).Error
	if err != nil {
		return nil, notFoundOr("load room", "room", err)
	}

	out := &RoomExport{RoomInput: RoomInput{
		Theme:       room.Theme,
		Difficulty:  room.Difficulty,
		Capacity:    room.Capacity,
		Duration:    room.Duration,
		Description: room.Description,
		ImageURL:    room.ImageURL,
	}}
	for _, p := range room.Puzzles {
		pe := PuzzleExport{
			Description:    p.Description,
			Type:           p.Type,
			SequenceNumber: p.SequenceNumber,
			Answer:         p.Answer,
		}
		for _, h := range p.Hints {
			pe.Hints = append(pe.Hints, h.Text)
		}
		out.Puzzles = append(out.Puzzles, pe)
	}
	return out, nil
}

// ImportRoom creates a room with its puzzles and hints in one transaction.
func (s *CatalogService) ImportRoom(ctx context.Context, actor Identity, data RoomExport) (*models.Room, error) {
	if !actor.IsAdmin {
		return nil, ErrForbidden
	}
	if strings.TrimSpace(data.Theme) == "" {
		return nil, fmt.Errorf("%w: theme is required", ErrInvalidInput)
	}
	for _, p := range data.Puzzles {
		if p.Description == "" || p.Answer == "" {
			return nil, fmt.Errorf("%w: puzzle %d needs a description and an answer", ErrInvalidInput, p.SequenceNumber)
		}
	}

	room := newRoom(data.RoomInput)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&room).Error; err != nil {
			return err
		}
		for _, p := range data.Puzzles {
			puzzle := models.Puzzle{
				RoomID:         room.ID,
				Description:    p.Description,
				Type:           p.Type,
				SequenceNumber: p.SequenceNumber,
				Answer:         p.Answer,
			}
			if err := tx.Create(&puzzle).Error; err != nil {
				return err
			}
			for _, text := range p.Hints {
				if err := tx.Create(&models.Hint{PuzzleID: puzzle.ID, Text: text}).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateSequence
		}
		return nil, storageError("import room", err)
	}
	return &room, nil
}

func newRoom(input RoomInput) models.Room {
	imageURL := input.ImageURL
	if imageURL == "" {
		imageURL = fmt.Sprintf(placeholderImageURL, strings.ReplaceAll(input.Theme, " ", "+"))
	}
	return models.Room{
		Theme:       input.Theme,
		Difficulty:  input.Difficulty,
		Capacity:    input.Capacity,
		Duration:    input.Duration,
		Description: input.Description,
		ImageURL:    imageURL,
	}
}
