package handlers

import (
	"net/http"

	"escape-room-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type RoomHandler struct {
	catalog   *services.CatalogService
	scheduler *services.SchedulerService
}

func NewRoomHandler(catalog *services.CatalogService, scheduler *services.SchedulerService) *RoomHandler {
	return &RoomHandler{catalog: catalog, scheduler: scheduler}
}

type RoomDetailResponse struct {
	Room             Room      `json:"room"`
	UpcomingSessions []Session `json:"upcoming_sessions"`
}

// ListRooms godoc
// @Summary      List rooms
// @Description  All escape rooms ordered by theme
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} Room
// @Router       /api/v1/rooms [get]
func (h *RoomHandler) ListRooms(c *gin.Context) {
	rooms, err := h.catalog.ListRooms(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// GetRoom godoc
// @Summary      Room details
// @Description  A room with its upcoming sessions, soonest first
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Room ID"
// @Success      200 {object} RoomDetailResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/rooms/{id} [get]
func (h *RoomHandler) GetRoom(c *gin.Context) {
	roomID, ok := parseID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	room, err := h.catalog.GetRoom(ctx, roomID)
	if err != nil {
		respondError(c, err)
		return
	}
	sessions, err := h.scheduler.ListUpcoming(ctx, roomID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, RoomDetailResponse{Room: *room, UpcomingSessions: sessions})
}
