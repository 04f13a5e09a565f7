package serviceImp

import (
	"time"

	"github.com/xuri/excelize/v2"

	"agrow/pkg/engine"
)

const planSheet = "Budget Plan"

var planHeader = []any{"Crop", "Acres", "Budget Allocated", "Expected Yield", "Expected Revenue", "Expected Profit", "ROI", "Existing"}

// budgetWorkbook lays the plan out as one row per allocation followed by the totals.
func budgetWorkbook(p engine.BudgetPlan, created time.Time) ([]byte, error) {
	x := excelize.NewFile()
	defer x.Close()
	if err := x.SetSheetName(x.GetSheetName(0), planSheet); err != nil {
		return nil, err
	}
	if err := x.SetSheetRow(planSheet, "A1", &planHeader); err != nil {
		return nil, err
	}

	row := 2
	for _, a := range p.Allocations {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, err
		}
		vals := []any{a.Crop, a.Acres, a.BudgetAllocated, a.ExpectedYield, a.ExpectedRevenue, a.ExpectedProfit, a.ROI, a.Existing}
		if err := x.SetSheetRow(planSheet, cell, &vals); err != nil {
			return nil, err
		}
		row++
	}

	row++
	summary := [][]any{
		{"Total Budget", p.TotalBudget},
		{"Total Allocated", p.TotalAllocated},
		{"Remaining Budget", p.RemainingBudget},
		{"Total Expected Revenue", p.TotalExpectedRevenue},
		{"Total Expected Profit", p.TotalExpectedProfit},
		{"Overall ROI", p.OverallROI},
		{"Diversification", p.DiversificationLevel},
		{"Risk", p.OverallRisk},
		{"Generated", created.UTC().Format(time.RFC3339)},
	}
	for _, s := range summary {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, err
		}
		if err := x.SetSheetRow(planSheet, cell, &s); err != nil {
			return nil, err
		}
		row++
	}

	buf, err := x.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
