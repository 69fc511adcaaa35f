package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"stormdesk-backend/causation"
	"stormdesk-backend/models"
	"stormdesk-backend/repository"

	"github.com/google/uuid"
)

// CausationService runs the causation engine against a claim's investigation
// record and persists the analysis. The engine itself is pure; all I/O
// (loading the claim, corroborating weather data, storing the result) lives
// here.
type CausationService struct {
	claimRepo      *repository.ClaimRepository
	stormEventRepo *repository.StormEventRepository
}

// CausationServiceOption is a functional option for CausationService
type CausationServiceOption func(*CausationService)

// CausationWithClaimRepository sets the claim repository
func CausationWithClaimRepository(repo *repository.ClaimRepository) CausationServiceOption {
	return func(s *CausationService) {
		s.claimRepo = repo
	}
}

// CausationWithStormEventRepository sets the storm event repository
func CausationWithStormEventRepository(repo *repository.StormEventRepository) CausationServiceOption {
	return func(s *CausationService) {
		s.stormEventRepo = repo
	}
}

// NewCausationService creates a new causation service
func NewCausationService(opts ...CausationServiceOption) *CausationService {
	s := &CausationService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var (
	ErrClaimNotFound = errors.New("claim not found")
)

// Storm events within this window of the claimed loss date count as
// corroboration.
const weatherCorroborationWindow = 3 * 24 * time.Hour

// RunAnalysisRequest represents a request to analyze a claim
type RunAnalysisRequest struct {
	ClaimID uuid.UUID
}

// RunAnalysisResult represents the result of analyzing a claim
type RunAnalysisResult struct {
	Analysis *models.CausationAnalysis
}

// RunAnalysis loads the claim, evaluates the causation engine against its
// investigation record, persists the analysis on the claim, and returns it.
func (s *CausationService) RunAnalysis(ctx context.Context, req RunAnalysisRequest) (*RunAnalysisResult, error) {
	if s.claimRepo == nil {
		return nil, errors.New("claim repository not set")
	}

	claim, err := s.claimRepo.GetByID(ctx, req.ClaimID)
	if err != nil {
		return nil, ErrClaimNotFound
	}

	form := s.buildFormData(ctx, claim)
	result := causation.Calculate(form)

	analysis := &models.CausationAnalysis{
		Result:     result,
		AnalyzedAt: time.Now().UTC(),
	}

	if err := s.claimRepo.UpdateCausationAnalysis(ctx, claim.ID, analysis); err != nil {
		return nil, fmt.Errorf("failed to store causation analysis: %w", err)
	}

	return &RunAnalysisResult{Analysis: analysis}, nil
}

// buildFormData assembles the engine input from the claim record. When the
// adjuster has not recorded weather evidence, the imported storm event
// catalog is consulted for a corroborating event near the loss date; a miss
// leaves the field empty so the engine reports it as an evidence gap.
func (s *CausationService) buildFormData(ctx context.Context, claim *models.Claim) causation.FormData {
	form := causation.FormData{
		Indicators:          claim.IndicatorStates,
		PerilTested:         claim.PerilTested,
		DamageType:          claim.DamageType,
		EventDate:           derefString(claim.EventDate),
		DamageNoticedDate:   derefString(claim.DamageNoticedDate),
		WeatherEvidence:     derefString(claim.WeatherEvidence),
		RoofAge:             derefString(claim.RoofAge),
		CarrierBlameTactics: claim.CarrierBlameTactics,
	}

	if form.WeatherEvidence == "" {
		form.WeatherEvidence = s.corroborateWeather(ctx, form.PerilTested, form.EventDate)
	}

	return form
}

// corroborateWeather looks up the strongest recorded storm event of the
// claimed peril near the loss date and synthesizes a weather evidence line
// from it. Any failure degrades to an empty string, never an error.
func (s *CausationService) corroborateWeather(ctx context.Context, perilType, eventDate string) string {
	if s.stormEventRepo == nil || perilType == "" || eventDate == "" {
		return ""
	}

	lossDate, err := time.Parse("2006-01-02", eventDate)
	if err != nil {
		log.Printf("Warning: unparseable event date %q, skipping weather corroboration", eventDate)
		return ""
	}

	events, err := s.stormEventRepo.FindByPerilAndDate(
		ctx,
		perilType,
		lossDate.Add(-weatherCorroborationWindow),
		lossDate.Add(weatherCorroborationWindow),
		"", "",
		1,
	)
	if err != nil {
		log.Printf("Warning: storm event lookup failed: %v", err)
		return ""
	}
	if len(events) == 0 {
		return ""
	}

	return formatWeatherEvidence(events[0])
}

// formatWeatherEvidence renders a storm event as a weather evidence line for
// the engine input and the adjuster's report.
func formatWeatherEvidence(event models.StormEvent) string {
	location := event.County
	if event.State != "" {
		if location != "" {
			location += ", "
		}
		location += event.State
	}

	line := fmt.Sprintf("%s recorded a %s event on %s",
		event.Source, event.PerilType, event.EventDate.Format("2006-01-02"))
	if location != "" {
		line += " in " + location
	}
	if event.MaxWindGustMPH != nil {
		line += fmt.Sprintf(" with wind gusts to %.0f mph", *event.MaxWindGustMPH)
	}
	if event.HailSizeIn != nil {
		line += fmt.Sprintf(" and hail to %.2f in", *event.HailSizeIn)
	}
	return line
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
