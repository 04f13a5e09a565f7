package engine

import (
	"math"

	"agrow/pkg/catalog"
)

// Point budgets per factor. They add up to 100.
const (
	phPoints       = 30.0
	nitrogenPoints = 20.0
	tempPoints     = 25.0
	rainPoints     = 25.0

	phDecay       = 10.0 // points per pH unit outside the ideal range
	nitrogenDecay = 10.0 // points per ordinal step
	tempDecay     = 2.5  // points per °C
	rainDecay     = 0.1  // points per mm

	nitrogenPerOrdinal = 25.0 // kg/ha per low/medium/high step
)

// SoilSample is one request's soil test plus optional weather readings.
type SoilSample struct {
	Nitrogen    float64  `json:"nitrogen"`
	Phosphorus  float64  `json:"phosphorus"`
	Potassium   float64  `json:"potassium"`
	Temperature *float64 `json:"temperature,omitempty"`
	Humidity    *float64 `json:"humidity,omitempty"`
	Ph          float64  `json:"ph"`
	Rainfall    *float64 `json:"rainfall,omitempty"`
}

type Breakdown struct {
	Ph          float64 `json:"ph"`
	Nitrogen    float64 `json:"nitrogen"`
	Temperature float64 `json:"temperature"`
	Rainfall    float64 `json:"rainfall"`
}

func (b Breakdown) Total() float64 {
	return clamp(b.Ph+b.Nitrogen+b.Temperature+b.Rainfall, 0, 100)
}

// decayed awards full points at distance 0 and loses rate points per unit of distance.
func decayed(points, distance, rate float64) float64 {
	if math.IsNaN(distance) || math.IsInf(distance, 0) {
		return 0
	}
	return clamp(points-distance*rate, 0, points)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

// Explain returns the per-factor points behind Score.
func Explain(s SoilSample, c catalog.CropProfile) Breakdown {
	var b Breakdown
	b.Ph = decayed(phPoints, c.IdealPh.Distance(s.Ph), phDecay)

	soilOrd := s.Nitrogen / nitrogenPerOrdinal
	b.Nitrogen = decayed(nitrogenPoints, math.Abs(soilOrd-c.NutrientNeeds.Nitrogen.Ordinal()), nitrogenDecay)

	// missing weather, or a crop with no range for it, is neutral
	b.Temperature = tempPoints
	if s.Temperature != nil && !c.IdealTemperature.Unset() {
		b.Temperature = decayed(tempPoints, c.IdealTemperature.Distance(*s.Temperature), tempDecay)
	}
	b.Rainfall = rainPoints
	if s.Rainfall != nil && !c.IdealRainfall.Unset() {
		b.Rainfall = decayed(rainPoints, c.IdealRainfall.Distance(*s.Rainfall), rainDecay)
	}
	return b
}

// Score is the 0-100 suitability of crop c for sample s.
func Score(s SoilSample, c catalog.CropProfile) float64 {
	return Explain(s, c).Total()
}

// Confidence dampens a score into the displayed percentage.
func Confidence(score float64) int {
	return int(math.Min(98, math.Round(clamp(score, 0, 100)*0.98)))
}
