package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, e *Err) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(rec)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	RenderErr(ctx, e)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestRenderErr(t *testing.T) {
	tests := []struct {
		name    string
		err     *Err
		status  int
		message string
	}{
		{"bad request keeps its message", ErrBadRequest(errors.New("title: cannot be blank.")), http.StatusBadRequest, "title: cannot be blank."},
		{"not found", ErrNotFound("announcement", "id", 7), http.StatusNotFound, "announcement with id 7 not found"},
		{"conflict", ErrConflict(errors.New("already registered")), http.StatusConflict, "already registered"},
		{"missing token", ErrUnauthorized(errors.New("no token")), http.StatusUnauthorized, "Authentication required"},
		{"bad token", ErrInvalidToken(errors.New("expired")), http.StatusForbidden, "Invalid or expired token"},
		{"unavailable hides the cause", ErrServiceUnavailable(errors.New("hub stopped")), http.StatusServiceUnavailable, "Service unavailable"},
		{"internal hides the cause", ErrInternalServerError(errors.New("pq: connection refused")), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := render(t, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, false, body["ok"])
			assert.Equal(t, tt.message, body["message"])
			assert.NotContains(t, body, "data")
		})
	}
}
