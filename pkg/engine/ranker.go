package engine

import (
	"fmt"
	"sort"
	"strings"

	"agrow/pkg/catalog"
)

type ScoredCrop struct {
	catalog.CropProfile
	SuitabilityScore     float64 `json:"suitabilityScore"`
	ConfidencePercentage int     `json:"confidencePercentage"`
	Rationale            string  `json:"rationale"`
}

// Violation is one soil factor outside the crop's ideal range.
type Violation struct {
	Factor   string        `json:"factor"`
	Value    float64       `json:"value"`
	Ideal    catalog.Range `json:"ideal"`
	Low      bool          `json:"low"`
	Sentence string        `json:"sentence"`
	Tip      string        `json:"tip"`
}

var nutrientTips = map[catalog.Nutrient][2]string{
	catalog.Nitrogen:   {"Apply urea (46% N) in two or three split doses.", "Skip nitrogen top-dressing this season."},
	catalog.Phosphorus: {"Apply DAP or single super phosphate at sowing.", "Skip phosphatic fertiliser this season."},
	catalog.Potassium:  {"Apply muriate of potash before sowing.", "Skip potash this season."},
}

func fmtNum(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}

// Violations lists out-of-range factors in fixed order: pH, nitrogen, phosphorus, potassium.
func Violations(s SoilSample, c catalog.CropProfile) []Violation {
	var out []Violation
	if !c.IdealPh.Contains(s.Ph) {
		v := Violation{Factor: "ph", Value: s.Ph, Ideal: c.IdealPh, Low: s.Ph < c.IdealPh.Min}
		if v.Low {
			v.Sentence = fmt.Sprintf("Soil pH %s is below the ideal range of %s-%s; apply agricultural lime to raise it.",
				fmtNum(s.Ph), fmtNum(c.IdealPh.Min), fmtNum(c.IdealPh.Max))
			v.Tip = "Apply agricultural lime and retest pH after one season."
		} else {
			v.Sentence = fmt.Sprintf("Soil pH %s is above the ideal range of %s-%s; add elemental sulfur or organic matter to lower it.",
				fmtNum(s.Ph), fmtNum(c.IdealPh.Min), fmtNum(c.IdealPh.Max))
			v.Tip = "Work in gypsum, elemental sulfur or compost to bring pH down."
		}
		out = append(out, v)
	}

	levels := []struct {
		n     catalog.Nutrient
		label string
		value float64
	}{
		{catalog.Nitrogen, "Nitrogen", s.Nitrogen},
		{catalog.Phosphorus, "Phosphorus", s.Phosphorus},
		{catalog.Potassium, "Potassium", s.Potassium},
	}
	for _, l := range levels {
		ideal := catalog.NutrientRange(l.n, c.NutrientNeeds.For(l.n))
		if ideal.Contains(l.value) {
			continue
		}
		v := Violation{Factor: string(l.n), Value: l.value, Ideal: ideal, Low: l.value < ideal.Min}
		tips := nutrientTips[l.n]
		if v.Low {
			v.Sentence = fmt.Sprintf("%s at %s kg/ha is below the %s-%s kg/ha this crop needs.",
				l.label, fmtNum(l.value), fmtNum(ideal.Min), fmtNum(ideal.Max))
			v.Tip = tips[0]
		} else {
			v.Sentence = fmt.Sprintf("%s at %s kg/ha is above the %s-%s kg/ha this crop needs.",
				l.label, fmtNum(l.value), fmtNum(ideal.Min), fmtNum(ideal.Max))
			v.Tip = tips[1]
		}
		out = append(out, v)
	}
	return out
}

func tier(score float64) string {
	switch {
	case score > 85:
		return "highly suitable"
	case score > 70:
		return "suitable with adjustments"
	case score > 50:
		return "moderately suitable, may need amendments"
	}
	return "not particularly suitable, consider alternatives"
}

// Rationale renders the tier sentence followed by one sentence per violation.
func Rationale(name string, score float64, vs []Violation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s is %s.", name, tier(score))
	for _, v := range vs {
		b.WriteString(" ")
		b.WriteString(v.Sentence)
	}
	return b.String()
}

// Rank orders crops by descending score, keeping input order on ties, and fills Rationale.
func Rank(crops []ScoredCrop, s SoilSample) []ScoredCrop {
	out := make([]ScoredCrop, len(crops))
	copy(out, crops)
	sort.SliceStable(out, func(i, j int) bool { return out[i].SuitabilityScore > out[j].SuitabilityScore })
	for i := range out {
		out[i].Rationale = Rationale(out[i].Name, out[i].SuitabilityScore, Violations(s, out[i].CropProfile))
	}
	return out
}

// Evaluate scores every profile against s and ranks the result.
func Evaluate(s SoilSample, profiles []catalog.CropProfile) []ScoredCrop {
	scored := make([]ScoredCrop, 0, len(profiles))
	for _, p := range profiles {
		sc := Score(s, p)
		scored = append(scored, ScoredCrop{CropProfile: p, SuitabilityScore: sc, ConfidencePercentage: Confidence(sc)})
	}
	return Rank(scored, s)
}
