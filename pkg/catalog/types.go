package catalog

import (
	"context"
	"math"
	"strings"
)

type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (r Range) Contains(v float64) bool { return v >= r.Min && v <= r.Max }

// Unset reports the zero Range, used for a weather range the catalog left blank.
func (r Range) Unset() bool { return r.Min == 0 && r.Max == 0 }

// Distance is 0 inside the range, otherwise the gap to the nearest bound.
// NaN propagates.
func (r Range) Distance(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return v
	case v < r.Min:
		return r.Min - v
	case v > r.Max:
		return v - r.Max
	}
	return 0
}

type Level string

const (
	Low    Level = "low"
	Medium Level = "medium"
	High   Level = "high"
)

// Ordinal maps low/medium/high to 1/2/3. Unknown levels count as medium.
func (l Level) Ordinal() float64 {
	switch Level(strings.ToLower(string(l))) {
	case Low:
		return 1
	case High:
		return 3
	}
	return 2
}

func ParseLevel(s string) Level {
	switch Level(strings.ToLower(strings.TrimSpace(s))) {
	case Low:
		return Low
	case High:
		return High
	}
	return Medium
}

type Nutrient string

const (
	Nitrogen   Nutrient = "nitrogen"
	Phosphorus Nutrient = "phosphorus"
	Potassium  Nutrient = "potassium"
)

type NutrientNeeds struct {
	Nitrogen   Level `json:"nitrogen"`
	Phosphorus Level `json:"phosphorus"`
	Potassium  Level `json:"potassium"`
}

func (n NutrientNeeds) For(nu Nutrient) Level {
	switch nu {
	case Phosphorus:
		return n.Phosphorus
	case Potassium:
		return n.Potassium
	}
	return n.Nitrogen
}

// CropProfile is read-only reference data. Yield is in market units (quintals) per acre.
type CropProfile struct {
	Name             string        `json:"name"`
	IdealPh          Range         `json:"idealPh"`
	IdealTemperature Range         `json:"idealTemperature"`
	IdealRainfall    Range         `json:"idealRainfall"`
	NutrientNeeds    NutrientNeeds `json:"nutrientNeeds"`
	CostPerAcre      float64       `json:"costPerAcre"`
	YieldPerAcre     float64       `json:"yieldPerAcre"`
	UnitPrice        float64       `json:"unitPrice"`
	Regions          []string      `json:"regions,omitempty"`
	Tips             []string      `json:"tips,omitempty"`
}

func (c CropProfile) GrownIn(region string) bool {
	region = strings.TrimSpace(region)
	if region == "" {
		return false
	}
	for _, r := range c.Regions {
		if strings.EqualFold(r, region) {
			return true
		}
	}
	return false
}

type Disease struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Symptoms    []string `json:"symptoms"`
	Treatment   []string `json:"treatment"`
	Prevention  []string `json:"prevention"`
	Severity    string   `json:"severity"` // low|moderate|high
}

// Source supplies the crop catalog for one request.
type Source interface {
	Profiles(ctx context.Context) ([]CropProfile, error)
}

// Static serves a fixed table; callers get their own copy.
type Static []CropProfile

func (s Static) Profiles(ctx context.Context) ([]CropProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]CropProfile, len(s))
	copy(out, s)
	return out, nil
}

type DiseaseSource interface {
	Diseases(ctx context.Context) ([]Disease, error)
}

// DiseaseTable serves a fixed disease list; callers get their own copy.
type DiseaseTable []Disease

func (t DiseaseTable) Diseases(ctx context.Context) ([]Disease, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]Disease, len(t))
	copy(out, t)
	return out, nil
}
