package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrow/pkg/catalog"
)

func named(name string, score float64) ScoredCrop {
	p := rice()
	p.Name = name
	return ScoredCrop{CropProfile: p, SuitabilityScore: score}
}

func TestRankSortsDescendingAndStable(t *testing.T) {
	in := []ScoredCrop{named("a", 50), named("b", 90), named("c", 50), named("d", 90), named("e", 10)}
	out := Rank(in, SoilSample{Ph: 6, Nitrogen: 80, Phosphorus: 40, Potassium: 40})

	var names []string
	for _, c := range out {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"b", "d", "a", "c", "e"}, names)
	for i := 1; i < len(out); i++ {
		assert.GreaterOrEqual(t, out[i-1].SuitabilityScore, out[i].SuitabilityScore)
	}
	// input untouched
	assert.Equal(t, "a", in[0].Name)
	assert.Empty(t, in[0].Rationale)
}

func TestRationaleTiers(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{86, "highly suitable"},
		{85, "suitable with adjustments"},
		{71, "suitable with adjustments"},
		{70, "moderately suitable, may need amendments"},
		{51, "moderately suitable, may need amendments"},
		{50, "not particularly suitable, consider alternatives"},
	}
	for _, tc := range cases {
		got := Rationale("Rice", tc.score, nil)
		assert.Equal(t, "Rice is "+tc.want+".", got, "score %v", tc.score)
	}
}

func TestViolationsOrder(t *testing.T) {
	s := SoilSample{Ph: 8, Nitrogen: 10, Phosphorus: 90, Potassium: 5}
	vs := Violations(s, rice())
	require.Len(t, vs, 4)
	assert.Equal(t, []string{"ph", "nitrogen", "phosphorus", "potassium"},
		[]string{vs[0].Factor, vs[1].Factor, vs[2].Factor, vs[3].Factor})
	assert.False(t, vs[0].Low)
	assert.True(t, vs[1].Low)
	assert.False(t, vs[2].Low)
	assert.True(t, vs[3].Low)
	assert.Contains(t, vs[0].Sentence, "Soil pH 8 is above the ideal range of 5.5-6.5")
	assert.Contains(t, vs[1].Sentence, "Nitrogen at 10 kg/ha is below the 70-120 kg/ha")

	text := Rationale("Rice", 40, vs)
	iPh := strings.Index(text, "Soil pH")
	iN := strings.Index(text, "Nitrogen at")
	iP := strings.Index(text, "Phosphorus at")
	iK := strings.Index(text, "Potassium at")
	assert.True(t, iPh < iN && iN < iP && iP < iK)
}

func TestViolationsNoneWhenInRange(t *testing.T) {
	s := SoilSample{Ph: 6, Nitrogen: 80, Phosphorus: 40, Potassium: 40}
	assert.Empty(t, Violations(s, rice()))
}

func TestEvaluateBuiltinCatalog(t *testing.T) {
	s := SoilSample{Ph: 6.5, Nitrogen: 70, Phosphorus: 40, Potassium: 40, Temperature: f(27), Humidity: f(65), Rainfall: f(180)}
	out := Evaluate(s, catalog.Builtin())
	require.Len(t, out, len(catalog.Builtin()))
	assert.Equal(t, "Rice", out[0].Name)
	for _, c := range out {
		assert.Equal(t, Confidence(c.SuitabilityScore), c.ConfidencePercentage)
		assert.NotEmpty(t, c.Rationale)
	}
}
