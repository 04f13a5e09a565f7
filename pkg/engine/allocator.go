package engine

import (
	"math"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"agrow/pkg/catalog"
)

// MaxAcresPerCrop caps any single allocation so the plan stays diversified.
const MaxAcresPerCrop = 10

type Allocation struct {
	Crop            string  `json:"crop"`
	Acres           int     `json:"acres"`
	BudgetAllocated float64 `json:"budgetAllocated"`
	ExpectedYield   float64 `json:"expectedYield"`
	ExpectedRevenue float64 `json:"expectedRevenue"`
	ExpectedProfit  float64 `json:"expectedProfit"`
	ROI             float64 `json:"roi"`
	Existing        bool    `json:"existing"`
}

type BudgetPlan struct {
	Allocations          []Allocation `json:"allocations"`
	TotalBudget          float64      `json:"totalBudget"`
	TotalAllocated       float64      `json:"totalAllocated"`
	RemainingBudget      float64      `json:"remainingBudget"`
	TotalExpectedRevenue float64      `json:"totalExpectedRevenue"`
	TotalExpectedProfit  float64      `json:"totalExpectedProfit"`
	OverallROI           float64      `json:"overallRoi"`
	DiversificationLevel string       `json:"diversificationLevel"`
	OverallRisk          string       `json:"overallRisk"`
}

type candidate struct {
	profile  catalog.CropProfile
	price    float64
	roi      float64
	existing bool
}

// ROI is the per-acre return on cost for one crop at the given unit price.
func ROI(c catalog.CropProfile, unitPrice float64) float64 {
	if c.CostPerAcre <= 0 {
		return 0
	}
	return (c.YieldPerAcre*unitPrice - c.CostPerAcre) / c.CostPerAcre
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func usablePrice(v float64) bool { return v > 0 && finite(v) }

// lookupPrice prefers an exact key. Otherwise the case-insensitive matches
// are tried in sorted key order so the result does not depend on map order.
func lookupPrice(prices map[string]float64, name string, def float64) float64 {
	if v, ok := prices[name]; ok && usablePrice(v) {
		return v
	}
	keys := make([]string, 0, len(prices))
	for k := range prices {
		if strings.EqualFold(strings.TrimSpace(k), name) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		if v := prices[k]; usablePrice(v) {
			return v
		}
	}
	return def
}

// Allocate spreads totalBudget over the catalog greedily by ROI. Crops the
// farmer already grows are visited first; each crop gets at most MaxAcresPerCrop.
func Allocate(totalBudget float64, existing []string, profiles []catalog.CropProfile, prices map[string]float64) BudgetPlan {
	grown := map[string]bool{}
	for _, e := range existing {
		grown[strings.ToLower(strings.TrimSpace(e))] = true
	}

	var cands []candidate
	for _, p := range profiles {
		if p.CostPerAcre <= 0 || !finite(p.CostPerAcre, p.YieldPerAcre, p.UnitPrice) {
			continue
		}
		price := lookupPrice(prices, p.Name, p.UnitPrice)
		cands = append(cands, candidate{
			profile:  p,
			price:    price,
			roi:      ROI(p, price),
			existing: grown[strings.ToLower(p.Name)],
		})
	}
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].roi > cands[j].roi })
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].existing && !cands[j].existing })

	if !finite(totalBudget) {
		totalBudget = 0
	}
	budget := decimal.NewFromFloat(totalBudget)
	remaining := budget
	allocated := decimal.Zero
	revenue := decimal.Zero
	profit := decimal.Zero
	plan := BudgetPlan{Allocations: []Allocation{}}

	if budget.IsPositive() {
		for _, c := range cands {
			cost := decimal.NewFromFloat(c.profile.CostPerAcre)
			if remaining.LessThan(cost) {
				continue
			}
			acres := remaining.Div(cost).Floor().IntPart()
			if acres > MaxAcresPerCrop {
				acres = MaxAcresPerCrop
			}
			if acres <= 0 {
				continue
			}
			a := decimal.NewFromInt(acres)
			spent := cost.Mul(a)
			yield := decimal.NewFromFloat(c.profile.YieldPerAcre).Mul(a)
			rev := yield.Mul(decimal.NewFromFloat(c.price))
			prof := rev.Sub(spent)

			remaining = remaining.Sub(spent)
			allocated = allocated.Add(spent)
			revenue = revenue.Add(rev)
			profit = profit.Add(prof)

			plan.Allocations = append(plan.Allocations, Allocation{
				Crop:            c.profile.Name,
				Acres:           int(acres),
				BudgetAllocated: spent.InexactFloat64(),
				ExpectedYield:   yield.InexactFloat64(),
				ExpectedRevenue: rev.InexactFloat64(),
				ExpectedProfit:  prof.InexactFloat64(),
				ROI:             prof.Div(spent).Round(4).InexactFloat64(),
				Existing:        c.existing,
			})
		}
	}

	plan.TotalBudget = totalBudget
	plan.TotalAllocated = allocated.InexactFloat64()
	plan.RemainingBudget = remaining.InexactFloat64()
	plan.TotalExpectedRevenue = revenue.InexactFloat64()
	plan.TotalExpectedProfit = profit.InexactFloat64()
	if allocated.IsPositive() {
		plan.OverallROI = profit.Div(allocated).Round(4).InexactFloat64()
	}
	plan.DiversificationLevel, plan.OverallRisk = diversification(len(plan.Allocations))
	return plan
}

// diversification returns the spread label and the matching risk label.
// A wider spread carries lower risk.
func diversification(n int) (level, risk string) {
	switch {
	case n >= 4:
		return "High", "Low"
	case n >= 2:
		return "Medium", "Medium"
	}
	return "Low", "High"
}
