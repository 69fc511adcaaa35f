package causation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecisionStatementBranches(t *testing.T) {
	supported := Calculate(formWith(map[string]IndicatorState{
		"directional_damage": StatePresent,
	}))
	assert.Contains(t, supported.DecisionStatement, "supports the windstorm as the proximate cause")
	assert.Contains(t, supported.ButForStatement, "But for the windstorm")
	assert.Contains(t, supported.ButForStatement, "asphalt shingle roof")

	notSupported := Calculate(formWith(map[string]IndicatorState{
		"improper_installation": StatePresent,
		"uniform_granule_loss":  StatePresent,
	}))
	assert.Contains(t, notSupported.DecisionStatement, "points to a cause other than the windstorm")

	indeterminate := Calculate(formWith(nil))
	assert.Contains(t, indeterminate.DecisionStatement, "inconclusive")
}

// The indeterminate statement varies its second sentence by whether the
// minimum-evidence gate was met.
func TestIndeterminateStatementDependsOnGate(t *testing.T) {
	withoutGate := Calculate(formWith(nil))
	require.Equal(t, DecisionIndeterminate, withoutGate.Decision)
	require.False(t, withoutGate.MinimumEvidenceMet)
	assert.Contains(t, withoutGate.DecisionStatement, "No qualifying core wind indicator")

	withGate := Calculate(formWith(map[string]IndicatorState{
		"displaced_ridge_cap": StatePresent, // gate met, score below threshold
	}))
	require.Equal(t, DecisionIndeterminate, withGate.Decision)
	require.True(t, withGate.MinimumEvidenceMet)
	assert.Contains(t, withGate.DecisionStatement, "Core wind evidence exists")
	assert.NotContains(t, withGate.DecisionStatement, "No qualifying core wind indicator")
}

func TestUnknownPerilDegradesToRawCode(t *testing.T) {
	form := formWith(map[string]IndicatorState{"directional_damage": StatePresent})
	form.PerilTested = "microburst"
	result := Calculate(form)
	assert.Contains(t, result.ButForStatement, "microburst")
}

func TestEmptyDamageTypeFallsBack(t *testing.T) {
	form := formWith(map[string]IndicatorState{"directional_damage": StatePresent})
	form.DamageType = ""
	result := Calculate(form)
	assert.Contains(t, result.ButForStatement, "insured property")
}

func TestBaselineSusceptibilityBands(t *testing.T) {
	base := formWith(map[string]IndicatorState{"directional_damage": StatePresent})

	cases := []struct {
		roofAge string
		want    string
	}{
		{"3", "early in its service life"},
		{"5", "ARMA TB-201"},
		{"14", "ARMA TB-201"},
		{"15", "elevated baseline susceptibility"},
		{"20", "elevated baseline susceptibility"},
	}
	for _, tc := range cases {
		form := base
		form.RoofAge = tc.roofAge
		result := Calculate(form)
		assert.Contains(t, result.BaselineSusceptibility, tc.want, "roof age %s", tc.roofAge)
	}

	// Lenient parse: empty or non-numeric roof age suppresses the output.
	for _, raw := range []string{"", "abc", "-3", "  "} {
		form := base
		form.RoofAge = raw
		result := Calculate(form)
		assert.Empty(t, result.BaselineSusceptibility, "roof age %q", raw)
	}
}

// The oldest band frames age conditionally on the decision outcome.
func TestBaselineSusceptibilityOldRoofFollowsDecision(t *testing.T) {
	supported := formWith(map[string]IndicatorState{"directional_damage": StatePresent})
	supported.RoofAge = "18"
	result := Calculate(supported)
	require.Equal(t, DecisionSupported, result.Decision)
	assert.Contains(t, result.BaselineSusceptibility, "nevertheless supports storm causation")

	inconclusive := formWith(nil)
	inconclusive.RoofAge = "18"
	result = Calculate(inconclusive)
	require.NotEqual(t, DecisionSupported, result.Decision)
	assert.Contains(t, result.BaselineSusceptibility, "must be ruled out")
}

func TestCounterArgumentsSummary(t *testing.T) {
	form := formWith(nil)
	result := Calculate(form)
	// Absent, not empty-but-present: the field is omitted from JSON.
	assert.Empty(t, result.CounterArgumentsSummary)

	form.CarrierBlameTactics = []string{"wear and tear"}
	result = Calculate(form)
	assert.Contains(t, result.CounterArgumentsSummary, "1 causation-avoidance tactic;")

	form.CarrierBlameTactics = []string{"wear and tear", "pre-existing damage", "late notice"}
	result = Calculate(form)
	assert.Contains(t, result.CounterArgumentsSummary, "3 causation-avoidance tactics;")
}
