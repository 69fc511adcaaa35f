package causation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func formWith(states map[string]IndicatorState) FormData {
	indicators := make(map[string]IndicatorInput, len(states))
	for id, state := range states {
		indicators[id] = IndicatorInput{State: state}
	}
	return FormData{
		Indicators:  indicators,
		PerilTested: "wind",
		DamageType:  "asphalt shingle roof",
	}
}

func TestCalculate_AllUnknown(t *testing.T) {
	result := Calculate(FormData{PerilTested: "wind"})

	assert.False(t, result.MinimumEvidenceMet)
	assert.Equal(t, DecisionIndeterminate, result.Decision)
	assert.Equal(t, 0, result.Scoring.WindEvidenceScore)
	assert.Equal(t, 0, result.Scoring.AlternativeCauseScore)
	assert.Equal(t, 0, result.Scoring.NetScore)
	assert.Empty(t, result.TopSupportingIndicators)
	assert.Empty(t, result.TopOpposingIndicators)

	// One gap per positive core-evidence indicator, then the four general
	// documentation gaps in fixed order.
	corePositive := 0
	for _, ind := range AllIndicators {
		if ind.IsPositive && ind.Category == CategoryCoreEvidence {
			corePositive++
		}
	}
	require.Len(t, result.EvidenceGaps, corePositive+4)
	tail := result.EvidenceGaps[corePositive:]
	assert.Equal(t, []string{
		gapMissingEventDate,
		gapMissingNoticedDate,
		gapMissingWeatherEvidence,
		gapMissingRoofAge,
	}, tail)

	// Gate explanation lists the header plus the four canonical options.
	require.Len(t, result.MinimumEvidenceDetails, len(MinimumEvidenceIndicators)+1)
	assert.Equal(t, minimumEvidenceHeader, result.MinimumEvidenceDetails[0])
}

func TestCalculate_SingleCoreIndicatorMeetsThreshold(t *testing.T) {
	result := Calculate(formWith(map[string]IndicatorState{
		"directional_damage": StatePresent, // weight 15 == threshold
	}))

	assert.True(t, result.MinimumEvidenceMet)
	assert.Equal(t, DecisionSupported, result.Decision)
	assert.Equal(t, 15, result.Scoring.WindEvidenceScore)
	assert.Equal(t, 15, result.Scoring.NetScore)
	require.Len(t, result.MinimumEvidenceDetails, 1)
	assert.Contains(t, result.MinimumEvidenceDetails[0], "Directional damage pattern")
}

func TestCalculate_SingleCoreIndicatorBelowThreshold(t *testing.T) {
	result := Calculate(formWith(map[string]IndicatorState{
		"displaced_ridge_cap": StatePresent, // weight 12 < threshold
	}))

	assert.True(t, result.MinimumEvidenceMet)
	// Alternative score is zero, so the not_supported branch cannot trigger.
	assert.Equal(t, DecisionIndeterminate, result.Decision)
	assert.Equal(t, 12, result.Scoring.NetScore)
}

func TestCalculate_AlternativeCauseDominates(t *testing.T) {
	result := Calculate(formWith(map[string]IndicatorState{
		"improper_installation": StatePresent, // 14
		"uniform_granule_loss":  StatePresent, // 12
	}))

	assert.False(t, result.MinimumEvidenceMet)
	assert.Equal(t, DecisionNotSupported, result.Decision)
	assert.Equal(t, 26, result.Scoring.AlternativeCauseScore)
	assert.Equal(t, -26, result.Scoring.NetScore)
}

func TestCalculate_GateBlocksSupportedRegardlessOfScore(t *testing.T) {
	// High positive score built entirely from indicators outside the
	// minimum-evidence set: supported must stay unreachable.
	result := Calculate(formWith(map[string]IndicatorState{
		"missing_shingles":   StatePresent, // core evidence, not in the gate set
		"debris_impact":      StatePresent,
		"interior_intrusion": StatePresent,
	}))

	assert.Equal(t, 24, result.Scoring.NetScore)
	assert.GreaterOrEqual(t, result.Scoring.NetScore, DecisionThreshold)
	assert.False(t, result.MinimumEvidenceMet)
	assert.Equal(t, DecisionIndeterminate, result.Decision)
}

func TestCalculate_GateMonotonicity(t *testing.T) {
	combos := []map[string]IndicatorState{
		{},
		{"missing_shingles": StatePresent, "debris_impact": StatePresent},
		{"directional_damage": StatePresent},
		{"creased_shingles": StatePresent, "uniform_granule_loss": StatePresent},
		{"improper_installation": StatePresent, "thermal_cracking": StatePresent},
		{"collateral_damage": StatePresent, "missing_shingles": StatePresent, "debris_impact": StatePresent},
	}
	for _, states := range combos {
		result := Calculate(formWith(states))
		if result.Decision == DecisionSupported {
			assert.True(t, result.MinimumEvidenceMet,
				"supported decision without minimum evidence for states %v", states)
		}
	}
}

func TestCalculate_AbsenceNeutrality(t *testing.T) {
	for _, ind := range AllIndicators {
		asAbsent := Calculate(formWith(map[string]IndicatorState{ind.ID: StateAbsent}))
		asUnknown := Calculate(formWith(map[string]IndicatorState{ind.ID: StateUnknown}))

		assert.Equal(t, asUnknown.Scoring, asAbsent.Scoring,
			"absent state moved the score for %s", ind.ID)
		assert.Equal(t, asUnknown.Decision, asAbsent.Decision,
			"absent state changed the decision for %s", ind.ID)
	}
}

func TestCalculate_WeightConservation(t *testing.T) {
	states := map[string]IndicatorState{
		"directional_damage":   StatePresent,
		"creased_shingles":     StatePresent,
		"missing_shingles":     StateAbsent,
		"uniform_granule_loss": StatePresent,
		"prior_damage":         StatePresent,
		"thermal_cracking":     StateUnknown,
	}
	result := Calculate(formWith(states))

	wantWind, wantAlt := 0, 0
	for _, ind := range AllIndicators {
		if states[ind.ID] != StatePresent {
			continue
		}
		if ind.IsPositive {
			wantWind += ind.Weight
		} else {
			wantAlt += ind.Weight
		}
	}

	assert.Equal(t, wantWind, result.Scoring.WindEvidenceScore)
	assert.Equal(t, wantAlt, result.Scoring.AlternativeCauseScore)
	assert.Equal(t, wantWind-wantAlt, result.Scoring.NetScore)

	// The breakdown is the audit trail: applied weights must sum to the
	// same totals.
	sumWind, sumAlt := 0, 0
	for _, b := range result.IndicatorBreakdown {
		if b.IsPositive {
			sumWind += b.AppliedWeight
		} else {
			sumAlt += b.AppliedWeight
		}
	}
	assert.Equal(t, wantWind, sumWind)
	assert.Equal(t, wantAlt, sumAlt)
}

func TestCalculate_Determinism(t *testing.T) {
	form := formWith(map[string]IndicatorState{
		"directional_damage":   StatePresent,
		"uniform_granule_loss": StatePresent,
		"thermal_cracking":     StateAbsent,
	})
	form.RoofAge = "12"
	form.CarrierBlameTactics = []string{"wear and tear", "pre-existing damage"}

	first := Calculate(form)
	second := Calculate(form)
	require.Equal(t, first, second)
}

func TestCalculate_GapCompleteness(t *testing.T) {
	// Every indicator resolved and every documentation field supplied:
	// the gap list must be empty.
	states := make(map[string]IndicatorState)
	for _, ind := range AllIndicators {
		states[ind.ID] = StateAbsent
	}
	form := formWith(states)
	form.EventDate = "2026-04-12"
	form.DamageNoticedDate = "2026-04-14"
	form.WeatherEvidence = "NWS reported 74 mph gusts"
	form.RoofAge = "9"

	result := Calculate(form)
	assert.Empty(t, result.EvidenceGaps)

	// A single unknown negative or supplementary indicator adds no gap.
	form.Indicators["mechanical_damage"] = IndicatorInput{State: StateUnknown}
	form.Indicators["debris_impact"] = IndicatorInput{State: StateUnknown}
	result = Calculate(form)
	assert.Empty(t, result.EvidenceGaps)

	// A single unknown positive core indicator adds exactly one gap line.
	form.Indicators["creased_shingles"] = IndicatorInput{State: StateUnknown}
	result = Calculate(form)
	require.Len(t, result.EvidenceGaps, 1)
	assert.Contains(t, result.EvidenceGaps[0], "Creased, folded, or lifted shingle tabs")
}

func TestCalculate_TopIndicatorBounds(t *testing.T) {
	states := make(map[string]IndicatorState)
	for _, ind := range AllIndicators {
		states[ind.ID] = StatePresent
	}
	result := Calculate(formWith(states))

	assert.LessOrEqual(t, len(result.TopSupportingIndicators), 3)
	assert.LessOrEqual(t, len(result.TopOpposingIndicators), 3)

	for i := 1; i < len(result.TopSupportingIndicators); i++ {
		assert.GreaterOrEqual(t,
			result.TopSupportingIndicators[i-1].AppliedWeight,
			result.TopSupportingIndicators[i].AppliedWeight)
	}

	// Ties retain catalog order: displaced_ridge_cap precedes
	// collateral_damage, both weight 12.
	require.Len(t, result.TopSupportingIndicators, 3)
	assert.Equal(t, "directional_damage", result.TopSupportingIndicators[0].ID)
	assert.Equal(t, "creased_shingles", result.TopSupportingIndicators[1].ID)
	assert.Equal(t, "displaced_ridge_cap", result.TopSupportingIndicators[2].ID)
}

func TestCalculate_BreakdownCoversCatalogInOrder(t *testing.T) {
	result := Calculate(formWith(map[string]IndicatorState{
		"creased_shingles": StatePresent,
	}))

	require.Len(t, result.IndicatorBreakdown, len(AllIndicators))
	for i, ind := range AllIndicators {
		b := result.IndicatorBreakdown[i]
		assert.Equal(t, ind.ID, b.ID)
		assert.Equal(t, ind.Weight, b.Weight)
		assert.Equal(t, ind.IsPositive, b.IsPositive)
		if b.State == StatePresent {
			assert.Equal(t, ind.Weight, b.AppliedWeight)
		} else {
			assert.Zero(t, b.AppliedWeight)
		}
	}
}

func TestCalculate_ThresholdSignSymmetry(t *testing.T) {
	// The positive branch compares the net score, the negative branch the
	// raw alternative-minus-wind difference. They must mirror exactly.
	cases := []struct {
		name   string
		states map[string]IndicatorState
		want   Decision
	}{
		{
			name: "net exactly at threshold",
			states: map[string]IndicatorState{
				"directional_damage": StatePresent, // +15
			},
			want: DecisionSupported,
		},
		{
			name: "difference exactly at threshold",
			states: map[string]IndicatorState{
				"directional_damage":   StatePresent, // +15
				"uniform_granule_loss": StatePresent, // -12
				"thermal_cracking":     StatePresent, // -10
				"prior_damage":         StatePresent, // -8 → difference 15
			},
			want: DecisionNotSupported,
		},
		{
			name: "one point short on each side",
			states: map[string]IndicatorState{
				"creased_shingles": StatePresent, // +14 with gate met
			},
			want: DecisionIndeterminate,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := Calculate(formWith(tc.states))
			assert.Equal(t, tc.want, result.Decision)
			assert.Equal(t,
				result.Scoring.WindEvidenceScore-result.Scoring.AlternativeCauseScore,
				result.Scoring.NetScore)
		})
	}
}

func TestCalculate_Recommendations(t *testing.T) {
	// Gate unmet: fixed core-evidence instruction first, then up to two
	// document suggestions for unknown heavy positive indicators.
	result := Calculate(formWith(nil))
	require.NotEmpty(t, result.WhatWouldChange)
	assert.Equal(t, recommendCoreEvidence, result.WhatWouldChange[0])
	require.Len(t, result.WhatWouldChange, 3)
	assert.Contains(t, result.WhatWouldChange[1], "Directional damage pattern")
	assert.Contains(t, result.WhatWouldChange[1], "(+15 points if present)")
	assert.Contains(t, result.WhatWouldChange[2], "(+14 points if present)")

	// Supported with opposing evidence present: one address line per top
	// opposing indicator.
	result = Calculate(formWith(map[string]IndicatorState{
		"directional_damage":   StatePresent,
		"creased_shingles":     StatePresent,
		"uniform_granule_loss": StatePresent,
	}))
	require.Equal(t, DecisionSupported, result.Decision)
	require.Len(t, result.WhatWouldChange, 1)
	assert.Contains(t, result.WhatWouldChange[0], "Uniform granule loss")

	// Supported with no opposing evidence: nothing to recommend.
	result = Calculate(formWith(map[string]IndicatorState{
		"directional_damage": StatePresent,
		"creased_shingles":   StatePresent,
	}))
	require.Equal(t, DecisionSupported, result.Decision)
	assert.Empty(t, result.WhatWouldChange)
}

func TestCalculate_EmptyInputNeverPanics(t *testing.T) {
	assert.NotPanics(t, func() {
		Calculate(FormData{})
		Calculate(FormData{Indicators: map[string]IndicatorInput{}})
		Calculate(FormData{Indicators: map[string]IndicatorInput{
			"no_such_indicator": {State: "bogus"},
		}})
		Calculate(FormData{RoofAge: "abc", PerilTested: "volcano"})
	})
}
