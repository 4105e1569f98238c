package handlers

import (
	"net/http"

	"escape-room-backend/internal/middleware"
	"escape-room-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	catalog   *services.CatalogService
	scheduler *services.SchedulerService
}

func NewAdminHandler(catalog *services.CatalogService, scheduler *services.SchedulerService) *AdminHandler {
	return &AdminHandler{catalog: catalog, scheduler: scheduler}
}

type DashboardResponse struct {
	Rooms   []Room                   `json:"rooms"`
	Puzzles []services.PuzzleSummary `json:"puzzles"`
}

type CreateSessionRequest struct {
	RoomID   uint   `json:"room_id" binding:"required" example:"1"`
	DateTime string `json:"date_time" binding:"required" example:"2026-11-02T18:30"`
}

type CreateHintRequest struct {
	PuzzleID uint   `json:"puzzle_id" binding:"required" example:"3"`
	Text     string `json:"text" binding:"required" example:"Look under the carpet"`
}

// Dashboard godoc
// @Summary      Admin dashboard
// @Description  All rooms plus every puzzle with its room theme
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} DashboardResponse
// @Failure      403 {object} ErrorResponse
// @Router       /api/v1/admin/dashboard [get]
func (h *AdminHandler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	rooms, err := h.catalog.ListRooms(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	puzzles, err := h.catalog.ListAllPuzzles(ctx, middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, DashboardResponse{Rooms: rooms, Puzzles: puzzles})
}

// CreateRoom godoc
// @Summary      Create a room
// @Description  An empty image_url gets a placeholder image labelled with the theme
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body services.RoomInput true "Room"
// @Success      201 {object} Room
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Router       /api/v1/admin/rooms [post]
func (h *AdminHandler) CreateRoom(c *gin.Context) {
	var req services.RoomInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	room, err := h.catalog.CreateRoom(c.Request.Context(), middleware.CurrentUser(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, room)
}

// CreateSession godoc
// @Summary      Schedule a session
// @Description  date_time is a datetime-local value in the venue timezone
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateSessionRequest true "Session"
// @Success      201 {object} Session
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/admin/sessions [post]
func (h *AdminHandler) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	session, err := h.scheduler.CreateSession(c.Request.Context(), middleware.CurrentUser(c), req.RoomID, req.DateTime)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

// CreatePuzzle godoc
// @Summary      Add a puzzle to a room
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body services.PuzzleInput true "Puzzle"
// @Success      201 {object} Puzzle
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /api/v1/admin/puzzles [post]
func (h *AdminHandler) CreatePuzzle(c *gin.Context) {
	var req services.PuzzleInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	puzzle, err := h.catalog.CreatePuzzle(c.Request.Context(), middleware.CurrentUser(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, puzzle)
}

// CreateHint godoc
// @Summary      Add a hint to a puzzle
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateHintRequest true "Hint"
// @Success      201 {object} Hint
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/admin/hints [post]
func (h *AdminHandler) CreateHint(c *gin.Context) {
	var req CreateHintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	hint, err := h.catalog.CreateHint(c.Request.Context(), middleware.CurrentUser(c), req.PuzzleID, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, hint)
}
