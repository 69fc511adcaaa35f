package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"stormdesk-backend/models"
	"stormdesk-backend/repository"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
)

// LetterService drafts claim correspondence (demand letters, rebuttals,
// proof-of-loss covers) from a completed causation analysis, using the
// Gemini generation API in a background job.
type LetterService struct {
	claimRepo    *repository.ClaimRepository
	jobRepo      *repository.DraftJobRepository
	geminiClient *genai.Client
}

// LetterServiceOption is a functional option for LetterService
type LetterServiceOption func(*LetterService)

// LetterWithClaimRepository sets the claim repository
func LetterWithClaimRepository(repo *repository.ClaimRepository) LetterServiceOption {
	return func(s *LetterService) {
		s.claimRepo = repo
	}
}

// LetterWithDraftJobRepository sets the draft job repository
func LetterWithDraftJobRepository(repo *repository.DraftJobRepository) LetterServiceOption {
	return func(s *LetterService) {
		s.jobRepo = repo
	}
}

// LetterWithGeminiClient sets the Gemini client
func LetterWithGeminiClient(client *genai.Client) LetterServiceOption {
	return func(s *LetterService) {
		s.geminiClient = client
	}
}

// NewLetterService creates a new letter service
func NewLetterService(opts ...LetterServiceOption) *LetterService {
	s := &LetterService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var (
	ErrAnalysisMissing   = errors.New("claim has no causation analysis")
	ErrJobCreationFailed = errors.New("failed to create draft job")
	ErrGenerationFailed  = errors.New("failed to generate letter content")
	ErrJobNotFound       = errors.New("draft job not found")
)

const (
	generationAPI  = "https://generativelanguage.googleapis.com/v1beta/models/gemini-3-pro-preview:generateContent"
	maxRetries     = 3
	initialBackoff = time.Second
)

// GenerateLetterRequest represents a request to draft a letter
type GenerateLetterRequest struct {
	ClaimID            uuid.UUID
	LetterType         models.LetterType
	RefineInstructions *string // Optional, for regeneration
}

// GenerateLetterResult represents the result of creating a draft job
type GenerateLetterResult struct {
	JobID uuid.UUID
}

// GetJobStatusRequest represents a request to get job status
type GetJobStatusRequest struct {
	JobID uuid.UUID
}

// GetJobStatusResult represents the result of getting job status
type GetJobStatusResult struct {
	Job *models.DraftJob
}

// GenerateLetter creates a draft job and returns immediately.
// This method must complete quickly; the generation work happens in
// ProcessLetter on a background goroutine.
func (s *LetterService) GenerateLetter(
	ctx context.Context,
	req GenerateLetterRequest,
) (*GenerateLetterResult, error) {
	if s.claimRepo == nil {
		return nil, errors.New("claim repository not set")
	}
	if s.jobRepo == nil {
		return nil, errors.New("draft job repository not set")
	}

	claim, err := s.claimRepo.GetByID(ctx, req.ClaimID)
	if err != nil {
		return nil, ErrClaimNotFound
	}

	// A letter argues from the analysis; without one there is nothing to say.
	if claim.CausationAnalysis == nil {
		return nil, ErrAnalysisMissing
	}

	letterType := req.LetterType
	if letterType == "" {
		letterType = models.LetterTypeDemand
	}

	if req.RefineInstructions != nil {
		claim.RefineInstructions = req.RefineInstructions
		if err := s.claimRepo.Update(ctx, claim); err != nil {
			log.Printf("Warning: failed to store refine instructions: %v", err)
		}
	}

	job := &models.DraftJob{
		ID:         uuid.New(),
		ClaimID:    req.ClaimID,
		LetterType: letterType,
		Status:     models.JobStatusPending,
		Steps:      initializeSteps(letterType),
	}

	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, ErrJobCreationFailed
	}

	return &GenerateLetterResult{JobID: job.ID}, nil
}

// GetJobStatus retrieves the status of a draft job
func (s *LetterService) GetJobStatus(
	ctx context.Context,
	req GetJobStatusRequest,
) (*GetJobStatusResult, error) {
	if s.jobRepo == nil {
		return nil, errors.New("draft job repository not set")
	}

	job, err := s.jobRepo.GetByID(ctx, req.JobID)
	if err != nil {
		return nil, ErrJobNotFound
	}

	return &GetJobStatusResult{Job: job}, nil
}

const (
	stepSummarizeAnalysis = "Summarizing Causation Analysis"
	stepAssembleLetter    = "Assembling Letter"
)

// initializeSteps creates the initial drafting steps for a letter type
func initializeSteps(letterType models.LetterType) models.DraftSteps {
	return models.DraftSteps{
		{Name: stepSummarizeAnalysis, Status: "pending"},
		{Name: draftingStepName(letterType), Status: "pending"},
		{Name: stepAssembleLetter, Status: "pending"},
	}
}

// letterTitle returns the human-readable title for a letter type
func letterTitle(letterType models.LetterType) string {
	titles := map[models.LetterType]string{
		models.LetterTypeDemand:           "Demand for Appraisal and Payment",
		models.LetterTypeRebuttal:         "Rebuttal to Carrier Denial",
		models.LetterTypeProofOfLossCover: "Sworn Proof of Loss Cover Letter",
	}
	if title, ok := titles[letterType]; ok {
		return title
	}
	return "Claim Correspondence: " + string(letterType)
}

func draftingStepName(letterType models.LetterType) string {
	return "Drafting " + letterTitle(letterType)
}

// ProcessLetter performs the actual generation work in the background.
// This method runs in a goroutine and can take tens of seconds.
func (s *LetterService) ProcessLetter(ctx context.Context, jobID uuid.UUID) error {
	if s.jobRepo == nil {
		return errors.New("draft job repository not set")
	}
	if s.claimRepo == nil {
		return errors.New("claim repository not set")
	}

	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return fmt.Errorf("failed to load draft job: %w", err)
	}

	claim, err := s.claimRepo.GetByID(ctx, job.ClaimID)
	if err != nil {
		s.markJobFailed(ctx, jobID, "failed to load claim: "+err.Error())
		return err
	}
	if claim.CausationAnalysis == nil {
		s.markJobFailed(ctx, jobID, ErrAnalysisMissing.Error())
		return ErrAnalysisMissing
	}

	if err := s.jobRepo.UpdateStatus(ctx, jobID, models.JobStatusInProgress); err != nil {
		return fmt.Errorf("failed to update job status: %w", err)
	}

	// 1. Summarize the analysis into the prompt
	if err := s.updateStepStatus(ctx, jobID, stepSummarizeAnalysis, "in_progress"); err != nil {
		s.markJobFailed(ctx, jobID, "failed to update step: "+err.Error())
		return err
	}
	prompt := buildLetterPrompt(claim, job.LetterType)
	if err := s.updateStepStatus(ctx, jobID, stepSummarizeAnalysis, "completed"); err != nil {
		s.markJobFailed(ctx, jobID, "failed to update step: "+err.Error())
		return err
	}

	// 2. Draft the letter body
	draftStep := draftingStepName(job.LetterType)
	if err := s.updateStepStatus(ctx, jobID, draftStep, "in_progress"); err != nil {
		s.markJobFailed(ctx, jobID, "failed to update step: "+err.Error())
		return err
	}

	content, err := s.generateWithRetry(ctx, prompt)
	if err != nil {
		s.markJobFailed(ctx, jobID, fmt.Sprintf("failed to draft letter: %v", err))
		return fmt.Errorf("failed to draft letter: %w", err)
	}

	if err := s.updateStepStatus(ctx, jobID, draftStep, "completed"); err != nil {
		s.markJobFailed(ctx, jobID, "failed to update step: "+err.Error())
		return err
	}

	// 3. Assemble and store
	if err := s.updateStepStatus(ctx, jobID, stepAssembleLetter, "in_progress"); err != nil {
		s.markJobFailed(ctx, jobID, "failed to update step: "+err.Error())
		return err
	}

	letter := assembleLetter(claim, job.LetterType, content)

	if err := s.claimRepo.UpdateGeneratedLetter(ctx, claim.ID, letter); err != nil {
		s.markJobFailed(ctx, jobID, "failed to store generated letter: "+err.Error())
		return err
	}

	if err := s.updateStepStatus(ctx, jobID, stepAssembleLetter, "completed"); err != nil {
		s.markJobFailed(ctx, jobID, "failed to update step: "+err.Error())
		return err
	}

	if err := s.jobRepo.Complete(ctx, jobID); err != nil {
		return fmt.Errorf("failed to complete job: %w", err)
	}

	return nil
}

// updateStepStatus updates the status of a specific step in the draft job
func (s *LetterService) updateStepStatus(ctx context.Context, jobID uuid.UUID, stepName, status string) error {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return err
	}

	steps := job.Steps
	var currentStep string
	if job.CurrentStep != nil {
		currentStep = *job.CurrentStep
	}

	for i := range steps {
		if steps[i].Name == stepName {
			steps[i].Status = status
			if status == "in_progress" {
				currentStep = stepName
			}
			break
		}
	}

	return s.jobRepo.UpdateProgress(ctx, jobID, currentStep, steps)
}

// markJobFailed marks a job as failed with an error message
func (s *LetterService) markJobFailed(ctx context.Context, jobID uuid.UUID, errorMessage string) {
	if err := s.jobRepo.Fail(ctx, jobID, errorMessage); err != nil {
		log.Printf("Warning: failed to mark job %s as failed: %v", jobID, err)
	}
}

// buildLetterPrompt renders the structured causation analysis into the
// generation prompt. Every factual assertion the model may use comes from
// the analysis; the prompt forbids inventing evidence.
func buildLetterPrompt(claim *models.Claim, letterType models.LetterType) string {
	analysis := claim.CausationAnalysis.Result

	var facts strings.Builder
	fmt.Fprintf(&facts, "DETERMINATION: %s\n", analysis.Decision)
	fmt.Fprintf(&facts, "DECISION STATEMENT: %s\n", analysis.DecisionStatement)
	fmt.Fprintf(&facts, "CAUSATION STATEMENT: %s\n", analysis.ButForStatement)
	fmt.Fprintf(&facts, "SCORES: wind evidence %d, alternative cause %d, net %d\n",
		analysis.Scoring.WindEvidenceScore,
		analysis.Scoring.AlternativeCauseScore,
		analysis.Scoring.NetScore)

	if len(analysis.TopSupportingIndicators) > 0 {
		facts.WriteString("SUPPORTING EVIDENCE:\n")
		for _, ind := range analysis.TopSupportingIndicators {
			fmt.Fprintf(&facts, "- %s (%d points)\n", ind.Label, ind.AppliedWeight)
		}
	}
	if len(analysis.TopOpposingIndicators) > 0 {
		facts.WriteString("OPPOSING EVIDENCE TO ADDRESS:\n")
		for _, ind := range analysis.TopOpposingIndicators {
			fmt.Fprintf(&facts, "- %s (%d points)\n", ind.Label, ind.AppliedWeight)
		}
	}
	if len(analysis.EvidenceGaps) > 0 {
		facts.WriteString("DOCUMENTATION GAPS (do not assert these as facts):\n")
		for _, gap := range analysis.EvidenceGaps {
			fmt.Fprintf(&facts, "- %s\n", gap)
		}
	}
	if analysis.BaselineSusceptibility != "" {
		fmt.Fprintf(&facts, "ROOF AGE CONTEXT: %s\n", analysis.BaselineSusceptibility)
	}
	if len(claim.CarrierBlameTactics) > 0 {
		facts.WriteString("CARRIER POSITIONS TO REBUT:\n")
		for _, tactic := range claim.CarrierBlameTactics {
			fmt.Fprintf(&facts, "- %s\n", tactic)
		}
	}

	refine := ""
	if claim.RefineInstructions != nil && *claim.RefineInstructions != "" {
		refine = "\nADJUSTER INSTRUCTIONS:\n" + *claim.RefineInstructions + "\n"
	}

	return fmt.Sprintf(`You are a licensed public insurance adjuster drafting formal claim correspondence on behalf of a policyholder.

CLAIM:
Client: %s
Property: %s
Carrier: %s
Policy: %s
Peril: %s
Damage: %s

CAUSATION ANALYSIS (authoritative — use these facts and no others):
%s%s
TASK:
Write the body of a "%s".

OUTPUT REQUIREMENTS:
- Formal business-letter language addressed to the carrier's claims department
- Argue causation strictly from the SUPPORTING EVIDENCE and SCORES above
- Address each OPPOSING EVIDENCE and CARRIER POSITION item directly
- Never assert anything listed under DOCUMENTATION GAPS as established fact
- Use EXACT point values from SCORES; do not estimate or round
- 4-6 paragraphs, no markdown formatting (plain text)
- Do NOT include the date, address block, or signature block - only the body

TONE CONSTRAINTS:
- No hyperbole or marketing language
- Use objective descriptors ("documented", "consistent with", "corroborated")
- Professional and firm, never hostile

Write the letter body now:`,
		claim.ClientName,
		claim.PropertyAddress,
		claim.CarrierName,
		claim.PolicyNumber,
		claim.PerilTested,
		claim.DamageType,
		facts.String(),
		refine,
		letterTitle(letterType),
	)
}

// assembleLetter wraps the generated body with the letter frame
func assembleLetter(claim *models.Claim, letterType models.LetterType, body string) string {
	var builder strings.Builder

	builder.WriteString("RE: ")
	builder.WriteString(letterTitle(letterType))
	builder.WriteString("\n")
	fmt.Fprintf(&builder, "Insured: %s\n", claim.ClientName)
	fmt.Fprintf(&builder, "Property: %s\n", claim.PropertyAddress)
	fmt.Fprintf(&builder, "Policy No.: %s\n", claim.PolicyNumber)
	if claim.EventDate != nil && *claim.EventDate != "" {
		fmt.Fprintf(&builder, "Date of Loss: %s\n", *claim.EventDate)
	}
	builder.WriteString("\n")
	builder.WriteString(strings.TrimSpace(body))
	builder.WriteString("\n")

	return builder.String()
}

// generationRequest mirrors the generateContent REST payload
type generationRequest struct {
	Contents []generationContent `json:"contents"`
	Config   *generationConfig   `json:"generationConfig,omitempty"`
}

type generationContent struct {
	Parts []generationPart `json:"parts"`
}

type generationPart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature float64 `json:"temperature"`
}

type generationResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// generateWithRetry calls the generation API with exponential backoff
func (s *LetterService) generateWithRetry(ctx context.Context, prompt string) (string, error) {
	if s.geminiClient == nil {
		return "", errors.New("gemini client not set")
	}

	var content string
	var err error
	backoff := initialBackoff
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(backoff)
			backoff *= 2
		}

		content, err = s.callGenerationAPI(ctx, prompt, 0.2)
		if err != nil {
			if attempt == maxRetries-1 {
				return "", fmt.Errorf("failed to generate content after %d attempts: %w", maxRetries, err)
			}
			continue
		}
		if content != "" {
			return content, nil
		}
	}

	return "", ErrGenerationFailed
}

// callGenerationAPI performs one generateContent request
func (s *LetterService) callGenerationAPI(ctx context.Context, prompt string, temperature float64) (string, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return "", fmt.Errorf("GEMINI_API_KEY not set")
	}

	reqBody := generationRequest{
		Contents: []generationContent{
			{Parts: []generationPart{{Text: prompt}}},
		},
		Config: &generationConfig{Temperature: temperature},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", generationAPI, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", apiKey)

	client := &http.Client{Timeout: 90 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("API error: %d: %s", resp.StatusCode, string(body))
	}

	var apiResp generationResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(apiResp.Candidates) == 0 || len(apiResp.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}

	var text strings.Builder
	for _, part := range apiResp.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}
	return text.String(), nil
}
