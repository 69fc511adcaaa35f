package causation

import "fmt"

// All user-facing prose lives here, behind pure formatting helpers, so the
// scoring algorithm and the text generation stay independently testable.

const (
	gapMissingEventDate       = "Date of the storm event — not documented"
	gapMissingNoticedDate     = "Date the damage was first noticed — not documented"
	gapMissingWeatherEvidence = "Corroborating weather data for the loss date — not documented"
	gapMissingRoofAge         = "Age of the roof covering — not documented"

	minimumEvidenceHeader = "No qualifying core wind evidence has been documented. A supported determination requires at least one of:"

	recommendCoreEvidence = "Document at least one core wind indicator (directional pattern, creasing, ridge displacement, or collateral damage) — a supported determination is unreachable without it"
)

func indicatorGapLine(label string) string {
	return fmt.Sprintf("%s — not observed, not documented, or not evaluated", label)
}

func documentSuggestion(label string, weight int) string {
	return fmt.Sprintf("Document %s (+%d points if present)", label, weight)
}

func addressOpposingSuggestion(label string) string {
	return fmt.Sprintf("Address %s with counter-evidence or an expert rebuttal before submission", label)
}

// minimumEvidenceLines explains the gate outcome. When met, one checkmark
// line per satisfied core indicator; when not met, a fixed header plus the
// four canonical qualifying-evidence options.
func minimumEvidenceLines(met bool, corePresent []Indicator) []string {
	if met {
		lines := make([]string, 0, len(corePresent))
		for _, ind := range corePresent {
			lines = append(lines, "✓ "+ind.Label)
		}
		return lines
	}

	lines := []string{minimumEvidenceHeader}
	for _, id := range MinimumEvidenceIndicators {
		if ind, ok := IndicatorByID(id); ok {
			lines = append(lines, "• "+ind.Label)
		}
	}
	return lines
}

// damageLabel normalizes the free-text damaged-component description for use
// in sentences, falling back to a neutral phrase when the intake left it blank.
func damageLabel(damageType string) string {
	if damageType == "" {
		return "insured property"
	}
	return damageType
}

func butForStatement(decision Decision, peril, damage string) string {
	switch decision {
	case DecisionSupported:
		return fmt.Sprintf("But for the %s, the %s would not exhibit the damage documented in this claim.", peril, damage)
	case DecisionNotSupported:
		return fmt.Sprintf("The documented condition of the %s is not attributable to the %s; the damage pattern is explained by a cause that predates or is independent of the event.", damage, peril)
	default:
		return fmt.Sprintf("Whether the %s caused the documented damage to the %s cannot be established on the current record.", peril, damage)
	}
}

func decisionStatement(decision Decision, s ScoringResult, minimumEvidenceMet bool, peril, damage string) string {
	switch decision {
	case DecisionSupported:
		return fmt.Sprintf(
			"The weight of the physical evidence supports the %s as the proximate cause of the documented %s damage. The net evidence score of %d meets the causation threshold of %d.",
			peril, damage, s.NetScore, DecisionThreshold)
	case DecisionNotSupported:
		return fmt.Sprintf(
			"The documented evidence points to a cause other than the %s. Alternative-cause indicators outweigh wind evidence by %d points, meeting the threshold of %d.",
			peril, s.AlternativeCauseScore-s.WindEvidenceScore, DecisionThreshold)
	default:
		if !minimumEvidenceMet {
			return "The investigation is inconclusive. No qualifying core wind indicator has been documented, so a supported determination is not available regardless of score."
		}
		return fmt.Sprintf(
			"The investigation is inconclusive. Core wind evidence exists, but the net score of %d does not reach the causation threshold of %d.",
			s.NetScore, DecisionThreshold)
	}
}

// baselineSusceptibility describes age-related wear expectations for the roof
// covering. Age zero (including unparseable input) suppresses the output.
func baselineSusceptibility(roofAge int, decision Decision) string {
	switch {
	case roofAge <= 0:
		return ""
	case roofAge < 5:
		return fmt.Sprintf(
			"At %d years, the roof covering is early in its service life; baseline wind susceptibility is low and age alone does not explain the documented damage.",
			roofAge)
	case roofAge < 15:
		return fmt.Sprintf(
			"At %d years, granule loss and sealant fatigue are within expected wear under ARMA TB-201 guidance; expected aging of this degree does not preclude storm causation.",
			roofAge)
	default:
		if decision == DecisionSupported {
			return fmt.Sprintf(
				"At %d years, the covering carries elevated baseline susceptibility; the documented wind evidence nevertheless supports storm causation rather than age-related failure.",
				roofAge)
		}
		return fmt.Sprintf(
			"At %d years, the covering carries elevated baseline susceptibility; age-related wear must be ruled out before storm causation can be established.",
			roofAge)
	}
}

// counterArgumentsSummary is a count-only summary line; the tactic content
// itself feeds the correspondence drafts, not this analysis.
func counterArgumentsSummary(tacticCount int) string {
	if tacticCount == 0 {
		return ""
	}
	plural := "tactic"
	if tacticCount > 1 {
		plural = "tactics"
	}
	return fmt.Sprintf("The carrier has raised %d causation-avoidance %s; each is addressed in the rebuttal correspondence for this claim.", tacticCount, plural)
}
