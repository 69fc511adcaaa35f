package service

import (
	"context"
	"errors"
	"fmt"

	"stormdesk-backend/models"
	"stormdesk-backend/repository"

	"github.com/google/uuid"
)

// ClaimService handles business logic for claims
type ClaimService struct {
	claimRepo *repository.ClaimRepository
	jobRepo   *repository.DraftJobRepository
}

// ClaimServiceOption is a functional option for ClaimService
type ClaimServiceOption func(*ClaimService)

// WithClaimRepository sets the claim repository
func WithClaimRepository(repo *repository.ClaimRepository) ClaimServiceOption {
	return func(s *ClaimService) {
		s.claimRepo = repo
	}
}

// WithDraftJobRepository sets the draft job repository
func WithDraftJobRepository(repo *repository.DraftJobRepository) ClaimServiceOption {
	return func(s *ClaimService) {
		s.jobRepo = repo
	}
}

// NewClaimService creates a new claim service
func NewClaimService(opts ...ClaimServiceOption) *ClaimService {
	s := &ClaimService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateClaimRequest represents a request to create a claim
type CreateClaimRequest struct {
	UserID uuid.UUID
	Status models.ClaimStatus
}

// CreateClaimResult represents the result of creating a claim
type CreateClaimResult struct {
	Claim *models.Claim
}

// CreateClaim creates a new claim with default values
func (s *ClaimService) CreateClaim(ctx context.Context, req CreateClaimRequest) (*CreateClaimResult, error) {
	if s.claimRepo == nil {
		return nil, errors.New("claim repository not set")
	}

	claim := &models.Claim{
		UserID:              req.UserID,
		Status:              req.Status,
		CarrierBlameTactics: []string{},
		IndicatorStates:     make(models.IndicatorStates),
	}

	if claim.Status == "" {
		claim.Status = models.StatusOpen
	}

	err := s.claimRepo.Create(ctx, claim)
	if err != nil {
		return nil, err
	}

	return &CreateClaimResult{Claim: claim}, nil
}

// GetClaimRequest represents a request to get a claim
type GetClaimRequest struct {
	ID uuid.UUID
}

// GetClaimResult represents the result of getting a claim
type GetClaimResult struct {
	Claim *models.Claim
}

// GetClaim retrieves a claim by ID
func (s *ClaimService) GetClaim(ctx context.Context, req GetClaimRequest) (*GetClaimResult, error) {
	if s.claimRepo == nil {
		return nil, errors.New("claim repository not set")
	}

	claim, err := s.claimRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	return &GetClaimResult{Claim: claim}, nil
}

// UpdateClaimRequest represents a request to update a claim
type UpdateClaimRequest struct {
	Claim *models.Claim
}

// UpdateClaimResult represents the result of updating a claim
type UpdateClaimResult struct {
	Claim *models.Claim
}

// UpdateClaim updates a claim
func (s *ClaimService) UpdateClaim(ctx context.Context, req UpdateClaimRequest) (*UpdateClaimResult, error) {
	if s.claimRepo == nil {
		return nil, errors.New("claim repository not set")
	}

	err := s.claimRepo.Update(ctx, req.Claim)
	if err != nil {
		return nil, err
	}

	return &UpdateClaimResult{Claim: req.Claim}, nil
}

// ListClaimsRequest represents a request to list claims
type ListClaimsRequest struct {
	UserID uuid.UUID
	Status *models.ClaimStatus
	Limit  int
	Offset int
}

// ListClaimsResult represents the result of listing claims
type ListClaimsResult struct {
	Claims []*models.Claim
}

// ListClaims lists claims for a user
func (s *ClaimService) ListClaims(ctx context.Context, req ListClaimsRequest) (*ListClaimsResult, error) {
	if s.claimRepo == nil {
		return nil, errors.New("claim repository not set")
	}

	claims, err := s.claimRepo.ListByUserID(ctx, req.UserID, req.Status, req.Limit, req.Offset)
	if err != nil {
		return nil, err
	}

	return &ListClaimsResult{Claims: claims}, nil
}

// DeleteClaimRequest represents a request to delete a claim
type DeleteClaimRequest struct {
	ID uuid.UUID
}

// DeleteClaimResult represents the result of deleting a claim
type DeleteClaimResult struct{}

// DeleteClaim deletes a claim and its draft jobs
func (s *ClaimService) DeleteClaim(ctx context.Context, req DeleteClaimRequest) (*DeleteClaimResult, error) {
	if s.claimRepo == nil {
		return nil, errors.New("claim repository not set")
	}

	// Jobs go first so a polling client never sees a job for a claim that
	// no longer resolves.
	if s.jobRepo != nil {
		if err := s.jobRepo.DeleteByClaimID(ctx, req.ID); err != nil {
			return nil, fmt.Errorf("failed to delete draft jobs for claim: %w", err)
		}
	}

	err := s.claimRepo.Delete(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	return &DeleteClaimResult{}, nil
}
