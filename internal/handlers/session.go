package handlers

import (
	"net/http"

	"escape-room-backend/internal/middleware"
	"escape-room-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	scheduler  *services.SchedulerService
	enrollment *services.EnrollmentService
	progress   *services.ProgressService
}

func NewSessionHandler(scheduler *services.SchedulerService, enrollment *services.EnrollmentService, progress *services.ProgressService) *SessionHandler {
	return &SessionHandler{scheduler: scheduler, enrollment: enrollment, progress: progress}
}

type SubmitAnswerRequest struct {
	PuzzleID uint   `json:"puzzle_id" binding:"required" example:"3"`
	Answer   string `json:"answer" example:"Treasure"`
}

// Register godoc
// @Summary      Register for a session
// @Description  Enrolls the caller as a participant of the session
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Session ID"
// @Success      201 {object} Participant
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /api/v1/sessions/{id}/register [post]
func (h *SessionHandler) Register(c *gin.Context) {
	sessionID, ok := parseID(c, "id")
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	participant, err := h.enrollment.Register(c.Request.Context(), user.UserID, sessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, participant)
}

// GetSession godoc
// @Summary      Session view
// @Description  Puzzles of the session's room with hints and solved flags
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Session ID"
// @Success      200 {object} services.SessionView
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/sessions/{id} [get]
func (h *SessionHandler) GetSession(c *gin.Context) {
	sessionID, ok := parseID(c, "id")
	if !ok {
		return
	}

	view, err := h.progress.GetSessionView(c.Request.Context(), sessionID, middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// SubmitAnswer godoc
// @Summary      Submit an answer
// @Description  Checks the answer, logs the attempt and completes the session once every puzzle is solved
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Session ID"
// @Param        request body SubmitAnswerRequest true "Answer"
// @Success      200 {object} services.SubmitResult
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      429 {object} ErrorResponse
// @Router       /api/v1/sessions/{id}/answers [post]
func (h *SessionHandler) SubmitAnswer(c *gin.Context) {
	sessionID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	user := middleware.CurrentUser(c)
	result, err := h.progress.SubmitAnswer(c.Request.Context(), sessionID, req.PuzzleID, user.UserID, req.Answer)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListAttempts godoc
// @Summary      Attempt history
// @Description  Every logged attempt of the session in submission order
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Session ID"
// @Success      200 {array} PuzzleAttempt
// @Failure      403 {object} ErrorResponse
// @Router       /api/v1/sessions/{id}/attempts [get]
func (h *SessionHandler) ListAttempts(c *gin.Context) {
	sessionID, ok := parseID(c, "id")
	if !ok {
		return
	}

	attempts, err := h.progress.AttemptHistory(c.Request.Context(), sessionID, middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, attempts)
}

// MySessions godoc
// @Summary      My sessions
// @Description  Sessions the caller registered for, newest first
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} services.UserSession
// @Router       /api/v1/me/sessions [get]
func (h *SessionHandler) MySessions(c *gin.Context) {
	sessions, err := h.scheduler.ListForUser(c.Request.Context(), middleware.CurrentUser(c).UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessions)
}
