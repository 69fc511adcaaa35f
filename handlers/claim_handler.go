package handlers

import (
	"context"
	"io"
	"log"
	"net/http"
	"strconv"

	"stormdesk-backend/models"
	"stormdesk-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ClaimHandler handles HTTP requests for claims
type ClaimHandler struct {
	claimService     *service.ClaimService
	causationService *service.CausationService
	letterService    *service.LetterService
}

// NewClaimHandler creates a new claim handler
func NewClaimHandler(
	claimService *service.ClaimService,
	causationService *service.CausationService,
	letterService *service.LetterService,
) *ClaimHandler {
	return &ClaimHandler{
		claimService:     claimService,
		causationService: causationService,
		letterService:    letterService,
	}
}

// CreateClaimRequest represents the request body for creating a claim
type CreateClaimRequest struct {
	UserID          string `json:"user_id" binding:"required"`
	Status          string `json:"status"`
	ClientName      string `json:"client_name"`
	PropertyAddress string `json:"property_address"`
	CarrierName     string `json:"carrier_name"`
	PolicyNumber    string `json:"policy_number"`
	PerilTested     string `json:"peril_tested"`
	DamageType      string `json:"damage_type"`
}

// CreateClaim handles POST /api/claims
func (h *ClaimHandler) CreateClaim(c *gin.Context) {
	var req CreateClaimRequest
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

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_USER_ID",
				"message": "Invalid user_id format",
			},
		})
		return
	}

	var status models.ClaimStatus
	if req.Status != "" {
		status = models.ClaimStatus(req.Status)
	} else {
		status = models.StatusOpen
	}

	serviceReq := service.CreateClaimRequest{
		UserID: userID,
		Status: status,
	}

	result, err := h.claimService.CreateClaim(c.Request.Context(), serviceReq)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CREATE_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	// Update with intake fields if provided
	if req.ClientName != "" || req.PropertyAddress != "" || req.CarrierName != "" ||
		req.PolicyNumber != "" || req.PerilTested != "" || req.DamageType != "" {
		result.Claim.ClientName = req.ClientName
		result.Claim.PropertyAddress = req.PropertyAddress
		result.Claim.CarrierName = req.CarrierName
		result.Claim.PolicyNumber = req.PolicyNumber
		result.Claim.PerilTested = req.PerilTested
		result.Claim.DamageType = req.DamageType

		updateReq := service.UpdateClaimRequest{
			Claim: result.Claim,
		}
		_, err = h.claimService.UpdateClaim(c.Request.Context(), updateReq)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UPDATE_FAILED",
					"message": err.Error(),
				},
			})
			return
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    result.Claim,
	})
}

// GetClaim handles GET /api/claims/:id
func (h *ClaimHandler) GetClaim(c *gin.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid claim ID format",
			},
		})
		return
	}

	serviceReq := service.GetClaimRequest{
		ID: id,
	}

	result, err := h.claimService.GetClaim(c.Request.Context(), serviceReq)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Claim not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Claim,
	})
}

// ListClaims handles GET /api/claims
func (h *ClaimHandler) ListClaims(c *gin.Context) {
	userIDStr := c.Query("user_id")
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_USER_ID",
				"message": "Valid user_id query parameter is required",
			},
		})
		return
	}

	serviceReq := service.ListClaimsRequest{
		UserID: userID,
		Limit:  50,
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status := models.ClaimStatus(statusStr)
		serviceReq.Status = &status
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 {
		serviceReq.Limit = limit
	}
	if offset, err := strconv.Atoi(c.Query("offset")); err == nil && offset > 0 {
		serviceReq.Offset = offset
	}

	result, err := h.claimService.ListClaims(c.Request.Context(), serviceReq)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "LIST_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Claims,
	})
}

// UpdateClaimRequest represents the request body for updating a claim
type UpdateClaimRequest struct {
	Status              string                 `json:"status"`
	ClientName          string                 `json:"client_name"`
	PropertyAddress     string                 `json:"property_address"`
	CarrierName         string                 `json:"carrier_name"`
	PolicyNumber        string                 `json:"policy_number"`
	PerilTested         string                 `json:"peril_tested"`
	DamageType          string                 `json:"damage_type"`
	EventDate           *string                `json:"event_date"`
	DamageNoticedDate   *string                `json:"damage_noticed_date"`
	WeatherEvidence     *string                `json:"weather_evidence"`
	RoofAge             *string                `json:"roof_age"`
	CarrierBlameTactics []string               `json:"carrier_blame_tactics"`
	IndicatorStates     models.IndicatorStates `json:"indicator_states"`
	RefineInstructions  *string                `json:"refine_instructions"`
}

// UpdateClaim handles PUT /api/claims/:id
func (h *ClaimHandler) UpdateClaim(c *gin.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid claim ID format",
			},
		})
		return
	}

	// Get existing claim
	getReq := service.GetClaimRequest{ID: id}
	result, err := h.claimService.GetClaim(c.Request.Context(), getReq)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Claim not found",
			},
		})
		return
	}

	claim := result.Claim

	var req UpdateClaimRequest
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

	// Update fields if provided
	if req.Status != "" {
		claim.Status = models.ClaimStatus(req.Status)
	}
	if req.ClientName != "" {
		claim.ClientName = req.ClientName
	}
	if req.PropertyAddress != "" {
		claim.PropertyAddress = req.PropertyAddress
	}
	if req.CarrierName != "" {
		claim.CarrierName = req.CarrierName
	}
	if req.PolicyNumber != "" {
		claim.PolicyNumber = req.PolicyNumber
	}
	if req.PerilTested != "" {
		claim.PerilTested = req.PerilTested
	}
	if req.DamageType != "" {
		claim.DamageType = req.DamageType
	}
	if req.EventDate != nil {
		claim.EventDate = req.EventDate
	}
	if req.DamageNoticedDate != nil {
		claim.DamageNoticedDate = req.DamageNoticedDate
	}
	if req.WeatherEvidence != nil {
		claim.WeatherEvidence = req.WeatherEvidence
	}
	if req.RoofAge != nil {
		claim.RoofAge = req.RoofAge
	}
	if req.CarrierBlameTactics != nil {
		claim.CarrierBlameTactics = req.CarrierBlameTactics
	}
	if req.IndicatorStates != nil {
		claim.IndicatorStates = req.IndicatorStates
	}
	if req.RefineInstructions != nil {
		claim.RefineInstructions = req.RefineInstructions
	}

	updateReq := service.UpdateClaimRequest{
		Claim: claim,
	}

	updateResult, err := h.claimService.UpdateClaim(c.Request.Context(), updateReq)
	if err != nil {
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
		"data":    updateResult.Claim,
	})
}

// DeleteClaim handles DELETE /api/claims/:id
func (h *ClaimHandler) DeleteClaim(c *gin.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid claim ID format",
			},
		})
		return
	}

	serviceReq := service.DeleteClaimRequest{ID: id}
	if _, err := h.claimService.DeleteClaim(c.Request.Context(), serviceReq); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DELETE_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"deleted": true},
	})
}

// RunCausation handles POST /api/claims/:id/causation.
// The evaluation is pure computation and runs synchronously.
func (h *ClaimHandler) RunCausation(c *gin.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid claim ID format",
			},
		})
		return
	}

	serviceReq := service.RunAnalysisRequest{
		ClaimID: id,
	}

	result, err := h.causationService.RunAnalysis(c.Request.Context(), serviceReq)
	if err != nil {
		if err == service.ErrClaimNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "NOT_FOUND",
					"message": "Claim not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ANALYSIS_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Analysis,
	})
}

// GenerateLetter handles POST /api/claims/:id/letters
func (h *ClaimHandler) GenerateLetter(c *gin.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid claim ID format",
			},
		})
		return
	}

	var reqBody struct {
		LetterType         string  `json:"letter_type"`
		RefineInstructions *string `json:"refine_instructions"`
	}
	// An empty body is fine (defaults apply); malformed JSON is not
	if err := c.ShouldBindJSON(&reqBody); err != nil && err != io.EOF {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	serviceReq := service.GenerateLetterRequest{
		ClaimID:            id,
		LetterType:         models.LetterType(reqBody.LetterType),
		RefineInstructions: reqBody.RefineInstructions,
	}

	// Create job (synchronous, fast)
	result, err := h.letterService.GenerateLetter(c.Request.Context(), serviceReq)
	if err != nil {
		if err == service.ErrClaimNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "NOT_FOUND",
					"message": "Claim not found",
				},
			})
			return
		}
		if err == service.ErrAnalysisMissing {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ANALYSIS_REQUIRED",
					"message": "Run the causation analysis before drafting a letter",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "GENERATION_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	// Spawn background goroutine for actual processing
	// Use background context (not request context) to avoid cancellation
	go func() {
		bgCtx := context.Background()
		if err := h.letterService.ProcessLetter(bgCtx, result.JobID); err != nil {
			// Error is logged and stored in job.ErrorMessage
			// No need to return to HTTP client (they'll poll status)
			log.Printf("Letter job %s failed: %v", result.JobID, err)
		}
	}()

	// Return immediately (within 100ms)
	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"data": gin.H{
			"job_id":  result.JobID,
			"status":  "pending",
			"message": "Draft job created. Poll /api/jobs/:id for updates.",
		},
	})
}

// GetJobStatus handles GET /api/jobs/:id
func (h *ClaimHandler) GetJobStatus(c *gin.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid job ID format",
			},
		})
		return
	}

	serviceReq := service.GetJobStatusRequest{
		JobID: id,
	}

	result, err := h.letterService.GetJobStatus(c.Request.Context(), serviceReq)
	if err != nil {
		if err == service.ErrJobNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "NOT_FOUND",
					"message": "Draft job not found",
				},
			})
			return
		}
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
		"data":    result.Job,
	})
}
