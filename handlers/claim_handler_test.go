package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func letterRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewClaimHandler(nil, nil, nil)
	r := gin.New()
	r.POST("/api/claims/:id/letters", h.GenerateLetter)
	return r
}

func TestGenerateLetterRejectsMalformedBody(t *testing.T) {
	r := letterRouter()

	req := httptest.NewRequest(http.MethodPost,
		"/api/claims/"+uuid.NewString()+"/letters",
		strings.NewReader(`{"letter_type": `))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_REQUEST")
}

func TestGenerateLetterRejectsBadClaimID(t *testing.T) {
	r := letterRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/claims/not-a-uuid/letters", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_ID")
}
