package causation

// IndicatorCategory groups indicators by the role they play in a determination
type IndicatorCategory string

const (
	CategoryCoreEvidence     IndicatorCategory = "core_evidence"
	CategorySupplementary    IndicatorCategory = "supplementary"
	CategoryAlternativeCause IndicatorCategory = "alternative_cause"
)

// Indicator is a single named piece of physical evidence with a fixed point
// weight. IsPositive indicators support wind/storm causation when present;
// the rest support an alternative (non-covered) cause.
type Indicator struct {
	ID         string            `json:"id"`
	Label      string            `json:"label"`
	Weight     int               `json:"weight"`
	IsPositive bool              `json:"is_positive"`
	Category   IndicatorCategory `json:"category"`
}

// AllIndicators is the full evaluable catalog. Order is load-bearing: it
// defines the order of the indicator breakdown in every result, so entries
// are only ever appended.
var AllIndicators = []Indicator{
	{
		ID:         "directional_damage",
		Label:      "Directional damage pattern consistent with documented wind vector",
		Weight:     15,
		IsPositive: true,
		Category:   CategoryCoreEvidence,
	},
	{
		ID:         "creased_shingles",
		Label:      "Creased, folded, or lifted shingle tabs from wind uplift",
		Weight:     14,
		IsPositive: true,
		Category:   CategoryCoreEvidence,
	},
	{
		ID:         "displaced_ridge_cap",
		Label:      "Displaced or detached ridge cap sections",
		Weight:     12,
		IsPositive: true,
		Category:   CategoryCoreEvidence,
	},
	{
		ID:         "collateral_damage",
		Label:      "Collateral storm damage on the same elevation (fencing, siding, soffit, gutters)",
		Weight:     12,
		IsPositive: true,
		Category:   CategoryCoreEvidence,
	},
	{
		ID:         "missing_shingles",
		Label:      "Missing shingles or tabs with clean fracture edges",
		Weight:     10,
		IsPositive: true,
		Category:   CategoryCoreEvidence,
	},
	{
		ID:         "debris_impact",
		Label:      "Wind-borne debris impact marks on roofing or exterior surfaces",
		Weight:     8,
		IsPositive: true,
		Category:   CategorySupplementary,
	},
	{
		ID:         "interior_intrusion",
		Label:      "Interior water intrusion first reported after the storm event",
		Weight:     6,
		IsPositive: true,
		Category:   CategorySupplementary,
	},
	{
		ID:         "uniform_granule_loss",
		Label:      "Uniform granule loss across all slopes regardless of exposure",
		Weight:     12,
		IsPositive: false,
		Category:   CategoryAlternativeCause,
	},
	{
		ID:         "improper_installation",
		Label:      "Improper fastening pattern or installation defects",
		Weight:     14,
		IsPositive: false,
		Category:   CategoryAlternativeCause,
	},
	{
		ID:         "thermal_cracking",
		Label:      "Thermal splitting or craze cracking of the shingle surface",
		Weight:     10,
		IsPositive: false,
		Category:   CategoryAlternativeCause,
	},
	{
		ID:         "prior_damage",
		Label:      "Pre-existing unrepaired damage documented before the loss date",
		Weight:     8,
		IsPositive: false,
		Category:   CategoryAlternativeCause,
	},
	{
		ID:         "mechanical_damage",
		Label:      "Mechanical or foot-traffic damage unrelated to weather",
		Weight:     6,
		IsPositive: false,
		Category:   CategoryAlternativeCause,
	},
}

// DecisionThreshold is the net-score cutoff for a supported determination and,
// mirrored, for a not-supported one. Sits above the heaviest single
// alternative-cause weight so one opposing indicator alone cannot flip a claim.
const DecisionThreshold = 15

// MinimumEvidenceIndicators lists the core wind indicators that qualify for
// the minimum-evidence gate. At least one must be present before a supported
// determination is reachable, regardless of score. All entries are positive
// core-evidence indicators.
var MinimumEvidenceIndicators = []string{
	"directional_damage",
	"creased_shingles",
	"displaced_ridge_cap",
	"collateral_damage",
}

// Perils maps peril codes to display labels for narrative text.
var Perils = map[string]string{
	"wind":           "windstorm",
	"hail":           "hailstorm",
	"hurricane":      "hurricane",
	"tornado":        "tornado",
	"tropical_storm": "tropical storm",
	"derecho":        "derecho",
}

var indicatorsByID = func() map[string]Indicator {
	m := make(map[string]Indicator, len(AllIndicators))
	for _, ind := range AllIndicators {
		m[ind.ID] = ind
	}
	return m
}()

// IndicatorByID looks up a catalog indicator by id.
func IndicatorByID(id string) (Indicator, bool) {
	ind, ok := indicatorsByID[id]
	return ind, ok
}

// PerilLabel resolves a peril code to its display label. Unknown codes fall
// back to the raw code string rather than an error.
func PerilLabel(code string) string {
	if label, ok := Perils[code]; ok {
		return label
	}
	return code
}
