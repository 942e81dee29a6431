package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func failWith(t *testing.T, err error) (int, ErrorResponse) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	Fail(c, err)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestFail_Mapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"validation", Validation("Invalid column: BOGUS"), 400, "Invalid column: BOGUS"},
		{"not found app error", NotFound("No price list found"), 404, "No price list found"},
		{"wrapped no filter", fmt.Errorf("drug search: %w", ErrNoFilter), 400, "No search query provided"},
		{"invalid page", ErrInvalidPage, 400, "Invalid limit or offset"},
		{"credentials", ErrInvalidCredentials, 401, "Invalid credentials"},
		{"throttled", ErrTooManyAttempts, 429, "Too many failed login attempts"},
		{"bare not found", ErrNotFound, 404, "Record not found"},
		{"unique", &pq.Error{Code: "23505", Detail: "Key exists"}, 409, "Record already exists"},
		{"foreign key", &pq.Error{Code: "23503"}, 400, "Referenced record does not exist"},
		{"not null", &pq.Error{Code: "23502", Message: "null value"}, 400, "Missing required field"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := failWith(t, tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.message, body.Error)
		})
	}
}

func TestFail_StoreErrorPassesMessageThrough(t *testing.T) {
	status, body := failWith(t, errors.New("relation \"dr\" does not exist"))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Internal server error", body.Error)
	assert.Equal(t, "relation \"dr\" does not exist", body.Details)
}

func TestList_Envelope(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	List(c, []string{}, 0)

	assert.JSONEq(t, `{"results":[],"total":0}`, w.Body.String())
}
