package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"escape-room-backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRespondErrorStatus(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("session %w", services.ErrNotFound), http.StatusNotFound},
		{services.ErrForbidden, http.StatusForbidden},
		{services.ErrDuplicateEnrollment, http.StatusConflict},
		{services.ErrSessionClosed, http.StatusConflict},
		{services.ErrUsernameTaken, http.StatusConflict},
		{services.ErrDuplicateSequence, http.StatusConflict},
		{services.ErrInvalidCredentials, http.StatusUnauthorized},
		{fmt.Errorf("%w: theme is required", services.ErrInvalidInput), http.StatusBadRequest},
		{fmt.Errorf("%w: insert: %w", services.ErrStorage, errors.New("disk full")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			respondError(c, tt.err)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestRespondErrorHidesStorageDetail(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	respondError(c, fmt.Errorf("%w: insert: %w", services.ErrStorage, errors.New("password=secret")))
	assert.NotContains(t, w.Body.String(), "secret")
}

func TestPuzzlesCSVRoundTrip(t *testing.T) {
	puzzles := []services.PuzzleExport{
		{SequenceNumber: 1, Description: "Find the key, then the lock", Type: "search", Answer: "Brass", Hints: []string{"drawer", "under the rug"}},
		{SequenceNumber: 2, Description: "Cipher", Answer: "42"},
	}

	var buf bytes.Buffer
	require.NoError(t, writePuzzlesCSV(&buf, puzzles))

	parsed, err := parsePuzzlesCSV(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, puzzles, parsed)
}

func TestParsePuzzlesCSVErrors(t *testing.T) {
	_, err := parsePuzzlesCSV([]byte("sequence_number,description,type,answer\n"))
	assert.Error(t, err)

	_, err = parsePuzzlesCSV([]byte("h1,h2,h3,h4\nx,desc,,ans\n"))
	assert.ErrorContains(t, err, "invalid sequence number")

	_, err = parsePuzzlesCSV([]byte("h1,h2\n1,desc\n"))
	assert.ErrorContains(t, err, "expected at least 4 columns")
}

func TestParseID(t *testing.T) {
	r := gin.New()
	r.GET("/rooms/:id", func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id})
	})

	for path, status := range map[string]int{
		"/rooms/5":   http.StatusOK,
		"/rooms/0":   http.StatusBadRequest,
		"/rooms/abc": http.StatusBadRequest,
		"/rooms/-1":  http.StatusBadRequest,
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, status, w.Code, path)
	}
}
