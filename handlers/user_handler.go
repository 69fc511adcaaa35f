package handlers

import (
	"net/http"

	"stormdesk-backend/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserHandler handles HTTP requests for adjuster account settings
type UserHandler struct {
	prefsRepo *repository.UserPreferencesRepository
}

// NewUserHandler creates a new user handler
func NewUserHandler(prefsRepo *repository.UserPreferencesRepository) *UserHandler {
	return &UserHandler{prefsRepo: prefsRepo}
}

// GetPreferences handles GET /api/users/:id/preferences
func (h *UserHandler) GetPreferences(c *gin.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid user ID format",
			},
		})
		return
	}

	prefs, err := h.prefsRepo.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "RETRIEVAL_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    prefs,
	})
}

// UpdatePreferencesRequest represents the request body for updating preferences
type UpdatePreferencesRequest struct {
	EmailNotifications *bool `json:"email_notifications"`
	AutoSaveDrafts     *bool `json:"auto_save_drafts"`
}

// UpdatePreferences handles PUT /api/users/:id/preferences
func (h *UserHandler) UpdatePreferences(c *gin.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid user ID format",
			},
		})
		return
	}

	var req UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	// Load current values so a partial body only changes what it names
	prefs, err := h.prefsRepo.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "RETRIEVAL_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	if req.EmailNotifications != nil {
		prefs.EmailNotifications = *req.EmailNotifications
	}
	if req.AutoSaveDrafts != nil {
		prefs.AutoSaveDrafts = *req.AutoSaveDrafts
	}

	if err := h.prefsRepo.Upsert(c.Request.Context(), prefs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPDATE_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    prefs,
	})
}
