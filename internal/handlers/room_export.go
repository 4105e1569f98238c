package handlers

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"escape-room-backend/internal/middleware"
	"escape-room-backend/internal/services"

	"github.com/gin-gonic/gin"
)

var csvHeader = []string{"sequence_number", "description", "type", "answer", "hints"}

// hintSeparator joins a puzzle's hints into one CSV cell.
const hintSeparator = "|"

// ExportRoom godoc
// @Summary      Export a room
// @Description  Room, puzzles (with answers) and hints as JSON, or puzzles as CSV with format=csv
// @Tags         admin
// @Produce      json
// @Produce      text/csv
// @Security     BearerAuth
// @Param        id path int true "Room ID"
// @Param        format query string false "json or csv"
// @Success      200 {object} services.RoomExport
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/admin/rooms/{id}/export [get]
func (h *AdminHandler) ExportRoom(c *gin.Context) {
	roomID, ok := parseID(c, "id")
	if !ok {
		return
	}

	data, err := h.catalog.ExportRoom(c.Request.Context(), middleware.CurrentUser(c), roomID)
	if err != nil {
		respondError(c, err)
		return
	}

	filename := strings.ReplaceAll(data.Theme, " ", "_")

	if c.DefaultQuery("format", "json") == "csv" {
		c.Header("Content-Type", "text/csv; charset=utf-8")
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))
		if err := writePuzzlesCSV(c.Writer, data.Puzzles); err != nil {
			c.Error(err)
		}
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.json\"", filename))
	c.JSON(http.StatusOK, data)
}

// ImportRoom godoc
// @Summary      Import a room
// @Description  Accepts a JSON export as the request body, or a multipart "file" upload (.json, or .csv with room fields as form values)
// @Tags         admin
// @Accept       json
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Success      201 {object} Room
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /api/v1/admin/rooms/import [post]
func (h *AdminHandler) ImportRoom(c *gin.Context) {
	data, err := readImport(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	room, err := h.catalog.ImportRoom(c.Request.Context(), middleware.CurrentUser(c), data)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, room)
}

func readImport(c *gin.Context) (services.RoomExport, error) {
	var data services.RoomExport

	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		if err := c.ShouldBindJSON(&data); err != nil {
			return data, fmt.Errorf("invalid JSON: %w", err)
		}
		return data, nil
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		return data, fmt.Errorf("file required")
	}
	defer file.Close()

	body, err := io.ReadAll(file)
	if err != nil {
		return data, fmt.Errorf("cannot read file")
	}

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".csv") {
		if err := json.Unmarshal(body, &data); err != nil {
			return data, fmt.Errorf("invalid JSON: %w", err)
		}
		return data, nil
	}

	data.Puzzles, err = parsePuzzlesCSV(body)
	if err != nil {
		return data, err
	}
	data.Theme = c.PostForm("theme")
	data.Difficulty = c.PostForm("difficulty")
	data.Description = c.PostForm("description")
	data.ImageURL = c.PostForm("image_url")
	data.Capacity, _ = strconv.Atoi(c.PostForm("capacity"))
	data.Duration, _ = strconv.Atoi(c.PostForm("duration"))
	return data, nil
}

func writePuzzlesCSV(out io.Writer, puzzles []services.PuzzleExport) error {
	w := csv.NewWriter(out)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, p := range puzzles {
		row := []string{
			strconv.Itoa(p.SequenceNumber),
			p.Description,
			p.Type,
			p.Answer,
			strings.Join(p.Hints, hintSeparator),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func parsePuzzlesCSV(data []byte) ([]services.PuzzleExport, error) {
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("invalid CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("CSV must have header + at least 1 row")
	}

	puzzles := make([]services.PuzzleExport, 0, len(records)-1)
	for i, row := range records[1:] {
		if len(row) < 4 {
			return nil, fmt.Errorf("row %d: expected at least 4 columns", i+2)
		}
		seq, err := strconv.Atoi(strings.TrimSpace(row[0]))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid sequence number %q", i+2, row[0])
		}

		p := services.PuzzleExport{
			SequenceNumber: seq,
			Description:    row[1],
			Type:           strings.TrimSpace(row[2]),
			Answer:         row[3],
		}
		if len(row) > 4 && row[4] != "" {
			p.Hints = strings.Split(row[4], hintSeparator)
		}
		puzzles = append(puzzles, p)
	}
	return puzzles, nil
}
