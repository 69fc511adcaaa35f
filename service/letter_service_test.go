package service

import (
	"strings"
	"testing"
	"time"

	"stormdesk-backend/causation"
	"stormdesk-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func analyzedClaim() *models.Claim {
	result := causation.Calculate(causation.FormData{
		Indicators: map[string]causation.IndicatorInput{
			"directional_damage":   {State: causation.StatePresent},
			"uniform_granule_loss": {State: causation.StatePresent},
		},
		PerilTested:         "wind",
		DamageType:          "asphalt shingle roof",
		EventDate:           "2026-04-12",
		CarrierBlameTactics: []string{"wear and tear exclusion"},
	})

	eventDate := "2026-04-12"
	return &models.Claim{
		ID:                  uuid.New(),
		ClientName:          "Dana Whitfield",
		PropertyAddress:     "412 Shoreline Dr, Corpus Christi, TX",
		CarrierName:         "Gulf Shield Mutual",
		PolicyNumber:        "GS-88-1042",
		PerilTested:         "wind",
		DamageType:          "asphalt shingle roof",
		EventDate:           &eventDate,
		CarrierBlameTactics: []string{"wear and tear exclusion"},
		CausationAnalysis: &models.CausationAnalysis{
			Result:     result,
			AnalyzedAt: time.Now(),
		},
	}
}

func TestBuildLetterPromptCarriesAnalysisFacts(t *testing.T) {
	claim := analyzedClaim()

	prompt := buildLetterPrompt(claim, models.LetterTypeDemand)

	assert.Contains(t, prompt, claim.ClientName)
	assert.Contains(t, prompt, claim.CarrierName)
	assert.Contains(t, prompt, string(claim.CausationAnalysis.Result.Decision))
	assert.Contains(t, prompt, claim.CausationAnalysis.Result.DecisionStatement)
	assert.Contains(t, prompt, "wear and tear exclusion")
	assert.Contains(t, prompt, "Demand for Appraisal and Payment")

	// Exact scores must appear so the model cannot invent numbers
	scoring := claim.CausationAnalysis.Result.Scoring
	assert.Contains(t, prompt, "wind evidence 15")
	assert.Contains(t, prompt, "alternative cause 12")
	assert.Equal(t, 15, scoring.WindEvidenceScore)
	assert.Equal(t, 12, scoring.AlternativeCauseScore)
}

func TestBuildLetterPromptIncludesRefineInstructions(t *testing.T) {
	claim := analyzedClaim()
	refine := "Cite the appraisal clause in section 7 of the policy."
	claim.RefineInstructions = &refine

	prompt := buildLetterPrompt(claim, models.LetterTypeRebuttal)

	assert.Contains(t, prompt, refine)
	assert.Contains(t, prompt, "Rebuttal to Carrier Denial")
}

func TestAssembleLetterFrame(t *testing.T) {
	claim := analyzedClaim()

	letter := assembleLetter(claim, models.LetterTypeDemand, "  Body paragraph one.\n\nBody paragraph two.  ")

	lines := strings.Split(letter, "\n")
	require.GreaterOrEqual(t, len(lines), 5)
	assert.Equal(t, "RE: Demand for Appraisal and Payment", lines[0])
	assert.Contains(t, letter, "Insured: Dana Whitfield")
	assert.Contains(t, letter, "Policy No.: GS-88-1042")
	assert.Contains(t, letter, "Date of Loss: 2026-04-12")
	assert.Contains(t, letter, "Body paragraph one.")
	assert.False(t, strings.HasSuffix(letter, " "))
}

func TestLetterTitleFallback(t *testing.T) {
	assert.Equal(t, "Sworn Proof of Loss Cover Letter", letterTitle(models.LetterTypeProofOfLossCover))
	assert.Equal(t, "Claim Correspondence: settlement_memo", letterTitle(models.LetterType("settlement_memo")))
}

func TestInitializeStepsPerLetterType(t *testing.T) {
	steps := initializeSteps(models.LetterTypeRebuttal)

	require.Len(t, steps, 3)
	assert.Equal(t, stepSummarizeAnalysis, steps[0].Name)
	assert.Equal(t, "Drafting Rebuttal to Carrier Denial", steps[1].Name)
	assert.Equal(t, stepAssembleLetter, steps[2].Name)
	for _, step := range steps {
		assert.Equal(t, "pending", step.Status)
	}
}
