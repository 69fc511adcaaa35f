// Package causation implements the wind/storm causation-scoring engine: a
// deterministic, side-effect-free rules evaluator that turns a structured
// claim investigation into a coverage-causation determination with a weighted
// evidence score, evidence-gap report, and narrative rationale.
package causation

import (
	"sort"
	"strconv"
	"strings"
)

// IndicatorState is the observed state of a catalog indicator on a claim.
type IndicatorState string

const (
	StatePresent IndicatorState = "present"
	StateAbsent  IndicatorState = "absent"
	StateUnknown IndicatorState = "unknown"
)

// Decision is the three-way causation determination.
type Decision string

const (
	DecisionSupported     Decision = "supported"
	DecisionNotSupported  Decision = "not_supported"
	DecisionIndeterminate Decision = "indeterminate"
)

// IndicatorInput is the per-indicator entry supplied by the caller.
type IndicatorInput struct {
	State IndicatorState `json:"state"`
}

// FormData is the structured investigation input. Indicator entries may cover
// any subset of the catalog; missing entries default to unknown. The optional
// documentation fields feed the evidence-gap report when empty.
type FormData struct {
	Indicators          map[string]IndicatorInput `json:"indicators"`
	PerilTested         string                    `json:"peril_tested"`
	DamageType          string                    `json:"damage_type"`
	EventDate           string                    `json:"event_date"`
	DamageNoticedDate   string                    `json:"damage_noticed_date"`
	WeatherEvidence     string                    `json:"weather_evidence"`
	RoofAge             string                    `json:"roof_age"`
	CarrierBlameTactics []string                  `json:"carrier_blame_tactics"`
}

// IndicatorBreakdown is the per-indicator audit line proving the score.
// AppliedWeight equals Weight only when the state is present.
type IndicatorBreakdown struct {
	ID            string         `json:"id"`
	Label         string         `json:"label"`
	State         IndicatorState `json:"state"`
	Weight        int            `json:"weight"`
	AppliedWeight int            `json:"applied_weight"`
	IsPositive    bool           `json:"is_positive"`
}

// ScoringResult holds the accumulated evidence scores.
type ScoringResult struct {
	WindEvidenceScore     int `json:"wind_evidence_score"`
	AlternativeCauseScore int `json:"alternative_cause_score"`
	NetScore              int `json:"net_score"`
}

// Result is the complete, immutable output of one evaluation.
type Result struct {
	Decision                Decision             `json:"decision"`
	DecisionStatement       string               `json:"decision_statement"`
	ButForStatement         string               `json:"but_for_statement"`
	MinimumEvidenceMet      bool                 `json:"minimum_evidence_met"`
	MinimumEvidenceDetails  []string             `json:"minimum_evidence_details"`
	TopSupportingIndicators []IndicatorBreakdown `json:"top_supporting_indicators"`
	TopOpposingIndicators   []IndicatorBreakdown `json:"top_opposing_indicators"`
	EvidenceGaps            []string             `json:"evidence_gaps"`
	WhatWouldChange         []string             `json:"what_would_change"`
	Scoring                 ScoringResult        `json:"scoring"`
	IndicatorBreakdown      []IndicatorBreakdown `json:"indicator_breakdown"`
	BaselineSusceptibility  string               `json:"baseline_susceptibility"`
	CounterArgumentsSummary string               `json:"counter_arguments_summary,omitempty"`
}

const (
	maxTopIndicators   = 3
	maxDocumentSuggest = 2

	// Recommendation suggestions only cover indicators heavy enough to
	// plausibly move the determination on their own.
	suggestWeightFloor = 12
)

// normalizeState maps any missing or unrecognized entry to unknown. The
// three-state default is explicit: present and absent are non-empty strings
// and must never ride on truthiness.
func normalizeState(inputs map[string]IndicatorInput, id string) IndicatorState {
	entry, ok := inputs[id]
	if !ok {
		return StateUnknown
	}
	switch entry.State {
	case StatePresent, StateAbsent:
		return entry.State
	default:
		return StateUnknown
	}
}

// Calculate evaluates the indicator catalog against the supplied form data
// and returns the causation determination. It is a total function: any
// well-typed input produces a result, including an empty indicator map and a
// non-numeric roof age.
func Calculate(form FormData) Result {
	var (
		breakdown    []IndicatorBreakdown
		evidenceGaps []string
		windScore    int
		altScore     int
	)

	// Per-indicator scoring pass, in catalog order. Absence never scores:
	// absence of evidence is not evidence against causation.
	for _, ind := range AllIndicators {
		state := normalizeState(form.Indicators, ind.ID)

		applied := 0
		switch state {
		case StatePresent:
			applied = ind.Weight
			if ind.IsPositive {
				windScore += ind.Weight
			} else {
				altScore += ind.Weight
			}
		case StateUnknown:
			if ind.IsPositive && ind.Category == CategoryCoreEvidence {
				evidenceGaps = append(evidenceGaps, indicatorGapLine(ind.Label))
			}
		}

		breakdown = append(breakdown, IndicatorBreakdown{
			ID:            ind.ID,
			Label:         ind.Label,
			State:         state,
			Weight:        ind.Weight,
			AppliedWeight: applied,
			IsPositive:    ind.IsPositive,
		})
	}

	// General documentation gaps, appended after indicator gaps in fixed order.
	for _, gap := range []struct {
		value string
		line  string
	}{
		{form.EventDate, gapMissingEventDate},
		{form.DamageNoticedDate, gapMissingNoticedDate},
		{form.WeatherEvidence, gapMissingWeatherEvidence},
		{form.RoofAge, gapMissingRoofAge},
	} {
		if strings.TrimSpace(gap.value) == "" {
			evidenceGaps = append(evidenceGaps, gap.line)
		}
	}

	// Minimum-evidence gate.
	var corePresent []Indicator
	for _, id := range MinimumEvidenceIndicators {
		if normalizeState(form.Indicators, id) != StatePresent {
			continue
		}
		if ind, ok := IndicatorByID(id); ok {
			corePresent = append(corePresent, ind)
		}
	}
	minimumEvidenceMet := len(corePresent) >= 1
	minimumEvidenceDetails := minimumEvidenceLines(minimumEvidenceMet, corePresent)

	scoring := ScoringResult{
		WindEvidenceScore:     windScore,
		AlternativeCauseScore: altScore,
		NetScore:              windScore - altScore,
	}

	topSupporting := topPresent(breakdown, true)
	topOpposing := topPresent(breakdown, false)

	decision := decide(scoring, minimumEvidenceMet)

	peril := PerilLabel(form.PerilTested)
	damage := damageLabel(form.DamageType)

	result := Result{
		Decision:                decision,
		DecisionStatement:       decisionStatement(decision, scoring, minimumEvidenceMet, peril, damage),
		ButForStatement:         butForStatement(decision, peril, damage),
		MinimumEvidenceMet:      minimumEvidenceMet,
		MinimumEvidenceDetails:  minimumEvidenceDetails,
		TopSupportingIndicators: topSupporting,
		TopOpposingIndicators:   topOpposing,
		EvidenceGaps:            evidenceGaps,
		WhatWouldChange:         recommendations(decision, minimumEvidenceMet, breakdown, topOpposing),
		Scoring:                 scoring,
		IndicatorBreakdown:      breakdown,
		BaselineSusceptibility:  baselineSusceptibility(parseRoofAge(form.RoofAge), decision),
		CounterArgumentsSummary: counterArgumentsSummary(len(form.CarrierBlameTactics)),
	}

	return result
}

// decide applies the threshold rule. The gate is a hard override: supported
// is unreachable without minimum evidence, regardless of score. The negative
// branch is phrased against the raw alternative-minus-wind difference, the
// algebraic mirror of the net score.
func decide(s ScoringResult, minimumEvidenceMet bool) Decision {
	if minimumEvidenceMet && s.NetScore >= DecisionThreshold {
		return DecisionSupported
	}
	if s.AlternativeCauseScore-s.WindEvidenceScore >= DecisionThreshold {
		return DecisionNotSupported
	}
	return DecisionIndeterminate
}

// topPresent returns up to three present indicators of the given polarity,
// sorted descending by applied weight. The sort is stable so ties retain
// catalog order.
func topPresent(breakdown []IndicatorBreakdown, positive bool) []IndicatorBreakdown {
	var matched []IndicatorBreakdown
	for _, b := range breakdown {
		if b.State == StatePresent && b.IsPositive == positive {
			matched = append(matched, b)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].AppliedWeight > matched[j].AppliedWeight
	})

	if len(matched) > maxTopIndicators {
		matched = matched[:maxTopIndicators]
	}
	return matched
}

// recommendations builds the whatWouldChange list per the decision outcome.
func recommendations(decision Decision, minimumEvidenceMet bool, breakdown []IndicatorBreakdown, topOpposing []IndicatorBreakdown) []string {
	var out []string

	if decision != DecisionSupported {
		if !minimumEvidenceMet {
			out = append(out, recommendCoreEvidence)
		}
		suggested := 0
		for _, b := range breakdown {
			if suggested >= maxDocumentSuggest {
				break
			}
			if b.State == StateUnknown && b.IsPositive && b.Weight >= suggestWeightFloor {
				out = append(out, documentSuggestion(b.Label, b.Weight))
				suggested++
			}
		}
		return out
	}

	for _, b := range topOpposing {
		out = append(out, addressOpposingSuggestion(b.Label))
	}
	return out
}

// parseRoofAge leniently parses the free-text roof age. Non-numeric input is
// treated as zero, which suppresses the baseline-susceptibility output.
func parseRoofAge(raw string) int {
	age, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || age < 0 {
		return 0
	}
	return age
}
