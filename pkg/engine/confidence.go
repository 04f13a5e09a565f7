package engine

import (
	"errors"
	"math"
	"math/rand/v2"
	"sort"

	"agrow/pkg/catalog"
)

var ErrEmptyCatalog = errors.New("disease catalog is empty")

// Rand is the randomness used by Simulate. *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

type systemRand struct{}

func (systemRand) Float64() float64 { return rand.Float64() }
func (systemRand) IntN(n int) int   { return rand.IntN(n) }

// SystemRand is safe for concurrent use.
func SystemRand() Rand { return systemRand{} }

type Weather struct {
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
}

type Diagnosis struct {
	catalog.Disease
	Confidence float64 `json:"confidence"`
}

type DiagnosisResult struct {
	MainDisease Diagnosis   `json:"mainDisease"`
	Diseases    []Diagnosis `json:"diseases"`
}

const (
	maxAlternates    = 2
	confidenceCap    = 0.98
	humidityBoost    = 0.10
	temperatureBoost = 0.08
)

// Simulate produces a placeholder diagnosis. The main disease is drawn uniformly
// from the catalog and is not derived from any image; a real classifier would
// replace this call. The main confidence lies in [0.5, 1.0] and every alternate
// in [0, 0.5), so the main pick always ranks first.
func Simulate(r Rand, w *Weather, diseases []catalog.Disease) (DiagnosisResult, error) {
	if len(diseases) == 0 {
		return DiagnosisResult{}, ErrEmptyCatalog
	}
	if r == nil {
		r = SystemRand()
	}

	idx := make([]int, len(diseases))
	for i := range idx {
		idx[i] = i
	}
	// partial Fisher-Yates: idx[0] is the main pick, idx[1:k] the alternates
	k := min(len(idx), 1+maxAlternates)
	for i := 0; i < k; i++ {
		j := i + r.IntN(len(idx)-i)
		idx[i], idx[j] = idx[j], idx[i]
	}

	conf := 0.5 + r.Float64()*0.5
	if w != nil {
		if w.Humidity > 70 {
			conf = math.Min(confidenceCap, conf+r.Float64()*humidityBoost)
		}
		if w.Temperature > 20 && w.Temperature < 30 {
			conf = math.Min(confidenceCap, conf+r.Float64()*temperatureBoost)
		}
	}

	top := Diagnosis{Disease: diseases[idx[0]], Confidence: round3(conf)}
	out := DiagnosisResult{MainDisease: top, Diseases: []Diagnosis{top}}
	for _, i := range idx[1:k] {
		alt := math.Min(round3(r.Float64()*0.5), 0.499)
		out.Diseases = append(out.Diseases, Diagnosis{Disease: diseases[i], Confidence: alt})
	}
	sort.SliceStable(out.Diseases, func(i, j int) bool { return out.Diseases[i].Confidence > out.Diseases[j].Confidence })
	return out, nil
}

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
