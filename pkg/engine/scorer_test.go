package engine

import (
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrow/pkg/catalog"
)

func f(v float64) *float64 { return &v }

func rice() catalog.CropProfile {
	return catalog.CropProfile{
		Name:             "Rice",
		IdealPh:          catalog.Range{Min: 5.5, Max: 6.5},
		IdealTemperature: catalog.Range{Min: 20, Max: 35},
		IdealRainfall:    catalog.Range{Min: 100, Max: 200},
		NutrientNeeds:    catalog.NutrientNeeds{Nitrogen: catalog.High, Phosphorus: catalog.Medium, Potassium: catalog.Medium},
		CostPerAcre:      25000, YieldPerAcre: 22, UnitPrice: 2183,
	}
}

func TestScoreRiceScenario(t *testing.T) {
	s := SoilSample{Ph: 6.5, Nitrogen: 70, Temperature: f(27), Humidity: f(65), Rainfall: f(180)}
	b := Explain(s, rice())

	assert.Equal(t, 30.0, b.Ph, "upper pH bound is inclusive")
	assert.Equal(t, 25.0, b.Temperature)
	assert.Equal(t, 25.0, b.Rainfall)
	assert.InDelta(t, 18.0, b.Nitrogen, 1e-9)

	score := Score(s, rice())
	assert.InDelta(t, 98.0, score, 1e-9)
	assert.GreaterOrEqual(t, Confidence(score), 95)
	assert.LessOrEqual(t, Confidence(score), 98)
}

func TestScoreMissingWeatherIsNeutral(t *testing.T) {
	s := SoilSample{Ph: 6.0, Nitrogen: 75}
	b := Explain(s, rice())
	assert.Equal(t, 25.0, b.Temperature)
	assert.Equal(t, 25.0, b.Rainfall)
	assert.Equal(t, 100.0, b.Total())
}

func TestScoreCatalogWithoutWeatherRanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "minimal.csv")
	require.NoError(t, os.WriteFile(path, []byte("name,ph_min,ph_max,nitrogen,cost,yield,price\nMillet,5.5,7.5,medium,9000,8,2500\n"), 0o644))
	profiles, err := catalog.LoadFile(path)
	require.NoError(t, err)
	require.Len(t, profiles, 1)

	s := SoilSample{Ph: 6.5, Nitrogen: 50, Temperature: f(27), Rainfall: f(180)}
	b := Explain(s, profiles[0])
	assert.Equal(t, 25.0, b.Temperature)
	assert.Equal(t, 25.0, b.Rainfall)
	assert.Equal(t, 100.0, Score(s, profiles[0]))
}

func TestScoreDecay(t *testing.T) {
	base := SoilSample{Ph: 6.0, Nitrogen: 75, Temperature: f(25), Rainfall: f(150)}

	s := base
	s.Ph = 7.5 // one unit above
	assert.InDelta(t, 20.0, Explain(s, rice()).Ph, 1e-9)
	s.Ph = 12
	assert.Equal(t, 0.0, Explain(s, rice()).Ph)

	s = base
	s.Temperature = f(39) // 4 °C above
	assert.InDelta(t, 15.0, Explain(s, rice()).Temperature, 1e-9)

	s = base
	s.Rainfall = f(50) // 50 mm below
	assert.InDelta(t, 20.0, Explain(s, rice()).Rainfall, 1e-9)

	s = base
	s.Nitrogen = 25 // ordinal 1 against need 3
	assert.Equal(t, 0.0, Explain(s, rice()).Nitrogen)
}

func TestScoreBoundedForExtremeInputs(t *testing.T) {
	extremes := []float64{math.Inf(-1), -1e12, -14, 0, 7, 14, 1e12, math.Inf(1), math.NaN()}
	profiles := append(catalog.Builtin(), rice())
	for _, p := range profiles {
		for _, ph := range extremes {
			for _, n := range extremes {
				for _, w := range extremes {
					s := SoilSample{Ph: ph, Nitrogen: n, Temperature: f(w), Rainfall: f(w)}
					sc := Score(s, p)
					require.False(t, math.IsNaN(sc))
					require.GreaterOrEqual(t, sc, 0.0)
					require.LessOrEqual(t, sc, 100.0)
				}
			}
		}
	}

	r := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 5000; i++ {
		s := SoilSample{
			Ph:          r.Float64() * 14,
			Nitrogen:    r.Float64() * 300,
			Phosphorus:  r.Float64() * 150,
			Potassium:   r.Float64() * 300,
			Temperature: f(r.Float64()*70 - 20),
			Rainfall:    f(r.Float64() * 500),
		}
		for _, p := range profiles {
			sc := Score(s, p)
			require.GreaterOrEqual(t, sc, 0.0)
			require.LessOrEqual(t, sc, 100.0)
		}
	}
}

func TestConfidence(t *testing.T) {
	assert.Equal(t, 98, Confidence(100))
	assert.Equal(t, 96, Confidence(98))
	assert.Equal(t, 59, Confidence(60))
	assert.Equal(t, 0, Confidence(0))
	assert.Equal(t, 0, Confidence(-5))
	assert.Equal(t, 98, Confidence(1e9))
}
